// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package frontal

import (
	"math"
	"testing"

	"github.com/cpmech/feacore/bc"
	"github.com/cpmech/feacore/linsolve"
	"github.com/cpmech/feacore/mesh"
	"github.com/cpmech/feacore/model"
	"github.com/cpmech/feacore/shp"
	"github.com/cpmech/gosl/utl"
)

// TestFrontalAgreesWithLU reproduces S6: a 2D quadratic heat problem with Dirichlet data on all
// four sides must agree between the frontal and LU paths to 1e-6 relative.
func TestFrontalAgreesWithLU(tst *testing.T) {
	cfg := &mesh.Config{
		Dimension: mesh.Dim2, Order: mesh.Quadratic,
		NumElementsX: 4, NumElementsY: 3, MaxX: 4, MaxY: 3,
	}
	m, err := mesh.Generate(cfg)
	if err != nil {
		tst.Fatalf("unexpected error: %v", err)
	}
	kind := m.ShapeKind()
	kernel := model.NewHeat(kind)

	bcs := map[string]bc.Spec{
		"0": bc.ConstantTemp(10),
		"1": bc.ConstantTemp(20),
		"2": bc.ConstantTemp(30),
		"3": bc.ConstantTemp(40),
	}
	dof := func(node, component int) int { return node - 1 }

	J, R, aerr := model.AssembleMatrix(kernel, m, nil, 0)
	if aerr != nil {
		tst.Fatalf("unexpected error: %v", aerr)
	}
	if berr := bc.Apply(m, bcs, dof, J, R); berr != nil {
		tst.Fatalf("unexpected error: %v", berr)
	}
	xLU, _, _, lerr := linsolve.Dispatch("lusolve", J, R, linsolve.Options{})
	if lerr != nil {
		tst.Fatalf("unexpected error: %v", lerr)
	}

	// same resolution as bc.Apply: keys in ascending order, a later key overrides a shared node
	var constraints []Constraint
	index := make(map[int]int)
	for _, key := range []string{"0", "1", "2", "3"} {
		spec := bcs[key]
		for _, s := range m.BoundaryElements[key] {
			for _, li := range shp.SideLocalVerts(kind, s.Code) {
				g := m.Nop[s.Elem][li]
				if i, ok := index[g]; ok {
					constraints[i].Value = spec.Value
					continue
				}
				index[g] = len(constraints)
				constraints = append(constraints, Constraint{Node: g, Value: spec.Value})
			}
		}
	}

	solver := New(kernel, m, Options{})
	xFront, ferr2 := solver.Solve(constraints)
	if ferr2 != nil {
		tst.Fatalf("unexpected error: %v", ferr2)
	}

	for i := range xLU {
		denom := utl.Max(1, math.Abs(xLU[i]))
		if d := math.Abs(xLU[i]-xFront[i]) / denom; d > 1e-6 {
			tst.Fatalf("node %d: LU=%g frontal=%g relative diff=%g", i, xLU[i], xFront[i], d)
		}
	}
}
