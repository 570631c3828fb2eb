// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mesh

import (
	"testing"

	"github.com/cpmech/gosl/chk"
)

// TestStructured1DLinear checks property 1: totalNodes and totalElements for a simple 1D case.
func TestStructured1DLinear(tst *testing.T) {
	cfg := &Config{Dimension: Dim1, Order: Linear, NumElementsX: 10, MaxX: 1.0}
	d, err := Generate(cfg)
	if err != nil {
		tst.Fatalf("unexpected error: %v", err)
	}
	chk.Int(tst, "totalNodes", d.TotalNodes(), 11)
	chk.Int(tst, "totalElements", d.TotalElements(), 10)
	chk.Scalar(tst, "nodesX[10]", 1e-15, d.NodesX[10], 1.0)
	for e, row := range d.Nop {
		if row[0] != e+1 || row[1] != e+2 {
			tst.Fatalf("element %d: unexpected nop %v", e, row)
		}
	}
}

func TestStructured1DQuadratic(tst *testing.T) {
	cfg := &Config{Dimension: Dim1, Order: Quadratic, NumElementsX: 4, MaxX: 1.0}
	d, err := Generate(cfg)
	if err != nil {
		tst.Fatalf("unexpected error: %v", err)
	}
	chk.Int(tst, "totalNodes", d.TotalNodes(), 9)
	chk.Int(tst, "totalElements", d.TotalElements(), 4)
	chk.Ints(tst, "nop[0]", d.Nop[0], []int{1, 2, 3})
	chk.Ints(tst, "nop[1]", d.Nop[1], []int{3, 4, 5})
}

// TestStructured2DQuadratic checks property 1 for the 2D case, plus node validity (property 2).
func TestStructured2DQuadratic(tst *testing.T) {
	cfg := &Config{Dimension: Dim2, Order: Quadratic, NumElementsX: 3, NumElementsY: 2, MaxX: 3, MaxY: 2}
	d, err := Generate(cfg)
	if err != nil {
		tst.Fatalf("unexpected error: %v", err)
	}
	chk.Int(tst, "totalNodes", d.TotalNodes(), (3*2+1)*(2*2+1))
	chk.Int(tst, "totalElements", d.TotalElements(), 6)
	for e, row := range d.Nop {
		for _, g := range row {
			if g < 1 || g > d.TotalNodes() {
				tst.Fatalf("element %d: invalid global node index %d", e, g)
			}
		}
	}
	// every boundary element list must reference valid element indices
	for side, lst := range d.BoundaryElements {
		for _, s := range lst {
			if s.Elem < 0 || s.Elem >= d.TotalElements() {
				tst.Fatalf("side %s: invalid element index %d", side, s.Elem)
			}
		}
	}
}

func TestConfigValidateRejectsBoth(tst *testing.T) {
	cfg := &Config{Dimension: Dim1, Order: Linear, NumElementsX: 4, MaxX: 1, Parsed: &GmshPayload{}}
	if err := cfg.Validate(); err == nil {
		tst.Fatalf("expected a ConfigurationError when both structured params and a payload are set")
	}
}

func TestFromGmshLinearQuad(tst *testing.T) {
	// node tags: 1=(0,0)=BL, 2=(1,0)=BR, 3=(1,1)=TR, 4=(0,1)=TL; the raw connectivity below is
	// the Gmsh-ordered (counter-clockwise from BL) tuple that the quad4 permutation remaps to
	// internal [BL,TL,BR,TR] = [1,4,2,3].
	payload := &GmshPayload{
		NodesX:       []float64{0, 1, 1, 0},
		NodesY:       []float64{0, 0, 1, 1},
		QuadElements: [][]int{{1, 2, 3, 4}},
		BoundaryNodePairs: map[int][][]int{
			10: {{1, 2}}, // bottom edge: tags 1(BL),2(BR)
		},
	}
	res, err := FromGmsh(payload, Linear)
	if err != nil {
		tst.Fatalf("unexpected error: %v", err)
	}
	chk.Ints(tst, "nop[0]", res.Data.Nop[0], []int{1, 4, 2, 3})
	if len(res.Data.BoundaryElements["10"]) != 1 {
		tst.Fatalf("expected one boundary side, got %v", res.Data.BoundaryElements["10"])
	}
	if res.Data.BoundaryElements["10"][0].Code != 0 {
		tst.Fatalf("expected bottom side (code 0), got %d", res.Data.BoundaryElements["10"][0].Code)
	}
}
