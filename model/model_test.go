// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package model

import (
	"math"
	"testing"

	"github.com/cpmech/feacore/bc"
	"github.com/cpmech/feacore/linsolve"
	"github.com/cpmech/feacore/mesh"
	"github.com/cpmech/feacore/shp"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/num"
)

// TestHeat1DLinearProfile reproduces S1: 1D linear mesh, Dirichlet 100 at x=0 and 0 at x=1
// should give node i value 100·(1-x_i) to 1e-10.
func TestHeat1DLinearProfile(tst *testing.T) {
	cfg := &mesh.Config{Dimension: mesh.Dim1, Order: mesh.Linear, NumElementsX: 10, MaxX: 1.0}
	m, err := mesh.Generate(cfg)
	if err != nil {
		tst.Fatalf("unexpected error: %v", err)
	}

	k := NewHeat(shp.Dim1Linear)
	J, R, aerr := AssembleMatrix(k, m, nil, 0)
	if aerr != nil {
		tst.Fatalf("unexpected error: %v", aerr)
	}

	bcs := map[string]bc.Spec{
		"0": bc.ConstantTemp(100),
		"1": bc.ConstantTemp(0),
	}
	dof := func(node, component int) int { return node - 1 }
	if berr := bc.Apply(m, bcs, dof, J, R); berr != nil {
		tst.Fatalf("unexpected error: %v", berr)
	}

	x, _, _, lerr := linsolve.Dispatch("lusolve", J, R, linsolve.Options{})
	if lerr != nil {
		tst.Fatalf("unexpected error: %v", lerr)
	}
	for i, xi := range m.NodesX {
		want := 100 * (1 - xi)
		if d := math.Abs(x[i] - want); d > 1e-10 {
			tst.Fatalf("node %d: want %g, got %g (xi=%g)", i, want, x[i], xi)
		}
	}
}

// TestHeatLocalIsSymmetric checks the heat kernel's local matrix is symmetric, as the weak form
// ∫∇Ni·∇Nj dΩ requires.
func TestHeatLocalIsSymmetric(tst *testing.T) {
	k := NewHeat(shp.Dim2Linear)
	x := []float64{0, 0, 1, 1}
	y := []float64{0, 1, 0, 1}
	J, _, err := k.Local(x, y, nil, 0)
	if err != nil {
		tst.Fatalf("unexpected error: %v", err)
	}
	for i := range J {
		for j := range J[i] {
			if d := math.Abs(J[i][j] - J[j][i]); d > 1e-12 {
				tst.Fatalf("J[%d][%d]=%g != J[%d][%d]=%g", i, j, J[i][j], j, i, J[j][i])
			}
		}
	}
}

func TestGenPDE2DNotImplemented(tst *testing.T) {
	k := NewGenPDE2D()
	_, _, err := k.Local([]float64{0, 0, 1, 1}, []float64{0, 1, 0, 1}, nil, 0)
	if err == nil || err.Kind.String() != "NotImplemented" {
		tst.Fatalf("expected NotImplemented, got %v", err)
	}
}

func TestEikonal1DNotImplemented(tst *testing.T) {
	k := NewEikonal(shp.Dim1Linear)
	_, _, err := k.Local([]float64{0, 1}, nil, []float64{0, 1}, 0.5)
	if err == nil || err.Kind.String() != "NotImplemented" {
		tst.Fatalf("expected NotImplemented, got %v", err)
	}
}

// TestEikonalJacobianMatchesFiniteDifference checks J[i][j] == -d(R[i])/d(u[j]) by central
// difference, at a non-trivial gradient and a partially-activated continuation parameter.
func TestEikonalJacobianMatchesFiniteDifference(tst *testing.T) {
	k := NewEikonal(shp.Dim2Quadratic)
	x := []float64{0, 0, 0, 0.5, 1, 1, 1, 0.5, 0.5}
	y := []float64{0, 0.5, 1, 1, 1, 0.5, 0, 0, 0.5}
	u := []float64{0, 0.3, 0.5, 0.9, 1.3, 0.8, 0.4, 0.2, 0.6}
	alpha := 0.5

	J, _, err := k.Local(x, y, u, alpha)
	if err != nil {
		tst.Fatalf("unexpected error: %v", err)
	}

	n := k.Nverts()
	tol := 1e-6
	verb := false
	var tmp float64
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			dnum := num.DerivCen(func(uj float64, args ...interface{}) (res float64) {
				tmp, u[j] = u[j], uj
				_, R, ferr := k.Local(x, y, u, alpha)
				if ferr != nil {
					tst.Fatalf("unexpected error: %v", ferr)
				}
				res, u[j] = R[i], tmp
				return
			}, u[j])
			chk.AnaNum(tst, io.Sf("J[%d][%d]", i, j), tol, -J[i][j], dnum, verb)
		}
	}
}
