package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/npillmayer/typeshape/ot"
	"github.com/pterm/pterm"
)

func tableOp(intp *Intp, op *Op) (error, bool) {
	tag := op.arg
	if intp.table = intp.font.Layout.Table(ot.T(tag)); intp.table == nil {
		return errors.New("table not found in font"), false
	}
	tracer().Infof("setting table: %v", tag)
	return nil, false
}

func scriptsOp(intp *Intp, op *Op) (err error, stop bool) {
	if err = intp.checkTable(); err != nil {
		return
	}
	if op.noArg() {
		tags := make([]ot.Tag, len(intp.table.Scripts))
		for i, s := range intp.table.Scripts {
			tags[i] = s.Tag
		}
		pterm.Printf("ScriptList keys: %v\n", tags)
		return
	}
	script := intp.table.Script(ot.T(op.arg))
	if script == nil {
		return fmt.Errorf("script lookup [%s] returns null", ot.T(op.arg)), false
	}
	data := [][]string{{"Language", "Required", "Features"}}
	if script.DefaultLangSys != nil {
		data = append(data, langSysRow("(default)", script.DefaultLangSys))
	}
	for _, rec := range script.LangSys {
		data = append(data, langSysRow(rec.Tag.String(), &rec.LangSys))
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	return
}

func langSysRow(name string, ls *ot.LangSys) []string {
	req := "-"
	if ls.RequiredFeature != ot.NoRequiredFeature {
		req = strconv.Itoa(int(ls.RequiredFeature))
	}
	return []string{name, req, strconv.Itoa(len(ls.FeatureIndices))}
}

func featuresOp(intp *Intp, op *Op) (err error, stop bool) {
	if err = intp.checkTable(); err != nil {
		return
	}
	var indices []uint16
	if op.noArg() {
		for i := range intp.table.Features {
			indices = append(indices, uint16(i))
		}
	} else {
		script := intp.table.Script(ot.T(op.arg))
		if script == nil {
			return fmt.Errorf("script lookup [%s] returns null", ot.T(op.arg)), false
		}
		var lang ot.Tag
		if op.format != "" {
			lang = ot.T(op.format)
		}
		ls := script.LanguageSystem(lang)
		if ls == nil {
			return errors.New("script has no language system"), false
		}
		if ls.RequiredFeature != ot.NoRequiredFeature {
			indices = append(indices, ls.RequiredFeature)
		}
		indices = append(indices, ls.FeatureIndices...)
	}
	printFeatures(intp.table, indices)
	return
}

func lookupsOp(intp *Intp, op *Op) (err error, stop bool) {
	if err = intp.checkTable(); err != nil {
		return
	}
	if op.noArg() {
		printLookupList(intp.table)
	} else if i, err := strconv.Atoi(op.arg); err == nil {
		printLookup(intp.table, i)
	} else {
		tracer().Errorf("Lookup index not numeric: %v\n", op.arg)
		return errors.New("invalid lookup index"), false
	}
	return
}
