package otarabic

// joiningTypes lists the joining types of ArabicShaping.txt in ranges of equal
// type, sorted by code point. Join-causing characters are listed as dual-joining.
// Characters not listed are transparent if they are non-spacing or enclosing
// marks or format characters, and non-joining otherwise.
var joiningTypes = [...]joiningRange{
	{0x0600, 0x0605, joiningU},
	{0x0608, 0x0608, joiningU},
	{0x060B, 0x060B, joiningU},
	{0x0620, 0x0620, joiningD},
	{0x0621, 0x0621, joiningU},
	{0x0622, 0x0625, joiningR},
	{0x0626, 0x0626, joiningD},
	{0x0627, 0x0627, joiningR},
	{0x0628, 0x0628, joiningD},
	{0x0629, 0x0629, joiningR},
	{0x062A, 0x062E, joiningD},
	{0x062F, 0x0632, joiningR},
	{0x0633, 0x0647, joiningD},
	{0x0648, 0x0648, joiningR},
	{0x0649, 0x064A, joiningD},
	{0x066E, 0x066F, joiningD},
	{0x0671, 0x0673, joiningR},
	{0x0674, 0x0674, joiningU},
	{0x0675, 0x0677, joiningR},
	{0x0678, 0x0687, joiningD},
	{0x0688, 0x0699, joiningR},
	{0x069A, 0x06BF, joiningD},
	{0x06C0, 0x06C0, joiningR},
	{0x06C1, 0x06C2, joiningD},
	{0x06C3, 0x06CB, joiningR},
	{0x06CC, 0x06CC, joiningD},
	{0x06CD, 0x06CD, joiningR},
	{0x06CE, 0x06CE, joiningD},
	{0x06CF, 0x06CF, joiningR},
	{0x06D0, 0x06D1, joiningD},
	{0x06D2, 0x06D3, joiningR},
	{0x06D5, 0x06D5, joiningR},
	{0x06DD, 0x06DD, joiningU},
	{0x06EE, 0x06EF, joiningR},
	{0x06FA, 0x06FC, joiningD},
	{0x06FF, 0x06FF, joiningD},
	{0x070F, 0x070F, joiningT},
	{0x0710, 0x0710, joiningAlaph},
	{0x0712, 0x0714, joiningD},
	{0x0715, 0x0716, joiningDalathRish},
	{0x0717, 0x0719, joiningR},
	{0x071A, 0x071D, joiningD},
	{0x071E, 0x071E, joiningR},
	{0x071F, 0x0727, joiningD},
	{0x0728, 0x0728, joiningR},
	{0x0729, 0x0729, joiningD},
	{0x072A, 0x072A, joiningDalathRish},
	{0x072B, 0x072B, joiningD},
	{0x072C, 0x072C, joiningR},
	{0x072D, 0x072E, joiningD},
	{0x072F, 0x072F, joiningDalathRish},
	{0x074D, 0x074D, joiningR},
	{0x074E, 0x0758, joiningD},
	{0x0759, 0x075B, joiningR},
	{0x075C, 0x076A, joiningD},
	{0x076B, 0x076C, joiningR},
	{0x076D, 0x0770, joiningD},
	{0x0771, 0x0771, joiningR},
	{0x0772, 0x0772, joiningD},
	{0x0773, 0x0774, joiningR},
	{0x0775, 0x0777, joiningD},
	{0x0778, 0x0779, joiningR},
	{0x077A, 0x077F, joiningD},
	{0x07CA, 0x07EA, joiningD},
	{0x07FA, 0x07FA, joiningD},
	{0x0840, 0x0840, joiningR},
	{0x0841, 0x0845, joiningD},
	{0x0846, 0x0847, joiningR},
	{0x0848, 0x0848, joiningD},
	{0x0849, 0x0849, joiningR},
	{0x084A, 0x0853, joiningD},
	{0x0854, 0x0854, joiningR},
	{0x0855, 0x0855, joiningD},
	{0x0856, 0x0858, joiningR},
	{0x0860, 0x0860, joiningD},
	{0x0861, 0x0861, joiningU},
	{0x0862, 0x0865, joiningD},
	{0x0866, 0x0866, joiningU},
	{0x0867, 0x0867, joiningR},
	{0x0868, 0x0868, joiningD},
	{0x0869, 0x086A, joiningR},
	{0x0870, 0x0882, joiningR},
	{0x0883, 0x0886, joiningD},
	{0x0887, 0x0888, joiningU},
	{0x0889, 0x088D, joiningD},
	{0x088E, 0x088E, joiningR},
	{0x0890, 0x0891, joiningU},
	{0x08A0, 0x08A9, joiningD},
	{0x08AA, 0x08AC, joiningR},
	{0x08AD, 0x08AD, joiningU},
	{0x08AE, 0x08AE, joiningR},
	{0x08AF, 0x08B0, joiningD},
	{0x08B1, 0x08B2, joiningR},
	{0x08B3, 0x08B8, joiningD},
	{0x08B9, 0x08B9, joiningR},
	{0x08BA, 0x08C8, joiningD},
	{0x08E2, 0x08E2, joiningU},
	{0x1806, 0x1806, joiningU},
	{0x1807, 0x1807, joiningD},
	{0x180A, 0x180A, joiningD},
	{0x180E, 0x180E, joiningU},
	{0x1820, 0x1878, joiningD},
	{0x1880, 0x1884, joiningU},
	{0x1885, 0x1886, joiningT},
	{0x1887, 0x18A8, joiningD},
	{0x18AA, 0x18AA, joiningD},
	{0x200C, 0x200C, joiningU},
	{0x200D, 0x200D, joiningD},
	{0x202F, 0x202F, joiningU},
	{0x2066, 0x2069, joiningU},
	{0xA840, 0xA871, joiningD},
	{0xA872, 0xA872, joiningL},
	{0xA873, 0xA873, joiningU},
	{0x10AC0, 0x10AC4, joiningD},
	{0x10AC5, 0x10AC5, joiningR},
	{0x10AC6, 0x10AC6, joiningU},
	{0x10AC7, 0x10AC7, joiningR},
	{0x10AC8, 0x10AC8, joiningU},
	{0x10AC9, 0x10ACA, joiningR},
	{0x10ACB, 0x10ACC, joiningU},
	{0x10ACD, 0x10ACD, joiningL},
	{0x10ACE, 0x10AD2, joiningR},
	{0x10AD3, 0x10AD6, joiningD},
	{0x10AD7, 0x10AD7, joiningL},
	{0x10AD8, 0x10ADC, joiningD},
	{0x10ADD, 0x10ADD, joiningR},
	{0x10ADE, 0x10AE0, joiningD},
	{0x10AE1, 0x10AE1, joiningR},
	{0x10AE2, 0x10AE3, joiningU},
	{0x10AE4, 0x10AE4, joiningR},
	{0x10AEB, 0x10AEE, joiningD},
	{0x10AEF, 0x10AEF, joiningR},
	{0x10B80, 0x10B80, joiningD},
	{0x10B81, 0x10B81, joiningR},
	{0x10B82, 0x10B82, joiningD},
	{0x10B83, 0x10B85, joiningR},
	{0x10B86, 0x10B88, joiningD},
	{0x10B89, 0x10B89, joiningR},
	{0x10B8A, 0x10B8B, joiningD},
	{0x10B8C, 0x10B8C, joiningR},
	{0x10B8D, 0x10B8D, joiningD},
	{0x10B8E, 0x10B8F, joiningR},
	{0x10B90, 0x10B90, joiningD},
	{0x10B91, 0x10B91, joiningR},
	{0x10BA9, 0x10BAC, joiningR},
	{0x10BAD, 0x10BAE, joiningD},
	{0x10BAF, 0x10BAF, joiningU},
	{0x10D00, 0x10D00, joiningL},
	{0x10D01, 0x10D21, joiningD},
	{0x10D22, 0x10D22, joiningR},
	{0x10D23, 0x10D23, joiningD},
	{0x10F30, 0x10F32, joiningD},
	{0x10F33, 0x10F33, joiningR},
	{0x10F34, 0x10F44, joiningD},
	{0x10F45, 0x10F45, joiningU},
	{0x10F51, 0x10F53, joiningD},
	{0x10F54, 0x10F54, joiningR},
	{0x10F70, 0x10F73, joiningD},
	{0x10F74, 0x10F75, joiningR},
	{0x10F76, 0x10F81, joiningD},
	{0x10FB0, 0x10FB0, joiningD},
	{0x10FB1, 0x10FB1, joiningU},
	{0x10FB2, 0x10FB3, joiningD},
	{0x10FB4, 0x10FB6, joiningR},
	{0x10FB7, 0x10FB7, joiningU},
	{0x10FB8, 0x10FB8, joiningD},
	{0x10FB9, 0x10FBA, joiningR},
	{0x10FBB, 0x10FBC, joiningD},
	{0x10FBD, 0x10FBD, joiningR},
	{0x10FBE, 0x10FBF, joiningD},
	{0x10FC0, 0x10FC0, joiningU},
	{0x10FC1, 0x10FC1, joiningD},
	{0x10FC2, 0x10FC3, joiningR},
	{0x10FC4, 0x10FC4, joiningD},
	{0x10FC5, 0x10FC8, joiningU},
	{0x10FC9, 0x10FC9, joiningR},
	{0x10FCA, 0x10FCA, joiningD},
	{0x10FCB, 0x10FCB, joiningL},
	{0x110BD, 0x110BD, joiningU},
	{0x110CD, 0x110CD, joiningU},
	{0x1E900, 0x1E943, joiningD},
	{0x1E94B, 0x1E94B, joiningT},
}
