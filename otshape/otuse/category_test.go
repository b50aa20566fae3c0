package otuse

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	for cp, cat := range map[rune]category{
		0x1780: catB,     // Khmer ka
		0x17C1: catVPre,  // Khmer vowel sign e
		0x17B6: catVPst,  // Khmer vowel sign aa
		0x17C6: catVMAbv, // Khmer nikahit
		0x17D2: catIS,    // Khmer coeng
		0x17E0: catN,     // Khmer digit zero
		0x1B44: catH,     // Balinese adeg adeg
		0x1B3E: catVPre,  // Balinese vowel sign taling
		0x1B03: catFAbv,  // Balinese surang
		0x1A60: catSk,    // Tai Tham sakot
		0x25CC: catGB,
		0x200C: catZWNJ,
		0x200D: catCGJ,
		'a':    catO,
	} {
		assert.Equal(t, cat, classify(cp), "category of %U", cp)
	}
}

func TestFindClusters(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "typeshape.shaper")
	defer teardown()
	//
	for _, tc := range []struct {
		name    string
		input   []category
		serials []uint16
		types   []clusterType
	}{
		{"B VPre", []category{catB, catVPre},
			[]uint16{1, 1}, []clusterType{standardCluster, standardCluster}},
		{"B H B", []category{catB, catH, catB},
			[]uint16{1, 1, 1}, []clusterType{standardCluster, standardCluster, standardCluster}},
		{"B B", []category{catB, catB},
			[]uint16{1, 2}, []clusterType{standardCluster, standardCluster}},
		{"R B", []category{catR, catB},
			[]uint16{1, 1}, []clusterType{standardCluster, standardCluster}},
		{"B IS", []category{catB, catIS},
			[]uint16{1, 1}, []clusterType{viramaTerminatedCluster, viramaTerminatedCluster}},
		{"N HN N", []category{catN, catHN, catN},
			[]uint16{1, 1, 1}, []clusterType{numeralCluster, numeralCluster, numeralCluster}},
		{"VPre", []category{catVPre},
			[]uint16{1}, []clusterType{brokenCluster}},
		{"O", []category{catO},
			[]uint16{1}, []clusterType{symbolCluster}},
		{"B ZWNJ VAbv", []category{catB, catZWNJ, catVAbv},
			[]uint16{1, 1, 1}, []clusterType{standardCluster, standardCluster, standardCluster}},
		{"B ZWNJ B", []category{catB, catZWNJ, catB},
			[]uint16{1, 2, 3}, []clusterType{standardCluster, nonCluster, standardCluster}},
	} {
		infos := findClusters(tc.input)
		serials := make([]uint16, len(infos))
		types := make([]clusterType, len(infos))
		for i, ci := range infos {
			serials[i], types[i] = ci.serial, ci.typ
		}
		assert.Equal(t, tc.serials, serials, tc.name)
		assert.Equal(t, tc.types, types, tc.name)
	}
}
