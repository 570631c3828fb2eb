// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package shp implements the reference-element machinery: basis functions and their
// natural-coordinate derivatives, Gauss quadrature, and the isoparametric mapping that ties
// them to physical coordinates.
package shp

import (
	"github.com/cpmech/feacore/ferr"
	"github.com/cpmech/gosl/chk"
)

// Kind identifies a (dimension, order) reference element.
type Kind int

const (
	Dim1Linear Kind = iota
	Dim1Quadratic
	Dim2Linear
	Dim2Quadratic
)

// Nverts returns the node count of kind.
func Nverts(kind Kind) int {
	switch kind {
	case Dim1Linear:
		return 2
	case Dim1Quadratic:
		return 3
	case Dim2Linear:
		return 4
	case Dim2Quadratic:
		return 9
	}
	chk.Panic("shp: unknown kind %v", kind)
	return 0
}

// Gndim returns the natural-coordinate dimension of kind (1 or 2).
func Gndim(kind Kind) int {
	switch kind {
	case Dim1Linear, Dim1Quadratic:
		return 1
	case Dim2Linear, Dim2Quadratic:
		return 2
	}
	chk.Panic("shp: unknown kind %v", kind)
	return 0
}

// lagrange3 returns the three quadratic Lagrange interpolants on {0,½,1} and their derivatives
// at natural coordinate c: L1(c)=2c²-3c+1, L2(c)=-4c²+4c, L3(c)=2c²-c.
func lagrange3(c float64) (L [3]float64, dL [3]float64) {
	L[0] = 2*c*c - 3*c + 1
	L[1] = -4*c*c + 4*c
	L[2] = 2*c*c - c
	dL[0] = 4*c - 3
	dL[1] = -8*c + 4
	dL[2] = 4*c - 1
	return
}

// Eval returns the basis functions N and their derivatives w.r.t. natural coordinates at r
// (len(r)==1 for 1D kinds, len(r)==2 for 2D kinds). dNdEta is nil for 1D kinds.
func Eval(kind Kind, r []float64) (N []float64, dNdXi []float64, dNdEta []float64) {
	switch kind {
	case Dim1Linear:
		xi := r[0]
		N = []float64{1 - xi, xi}
		dNdXi = []float64{-1, 1}
		return

	case Dim1Quadratic:
		L, dL := lagrange3(r[0])
		N = []float64{L[0], L[1], L[2]}
		dNdXi = []float64{dL[0], dL[1], dL[2]}
		return

	case Dim2Linear:
		xi, eta := r[0], r[1]
		// node order [0=BL, 1=TL, 2=BR, 3=TR]
		N = []float64{
			(1 - xi) * (1 - eta),
			(1 - xi) * eta,
			xi * (1 - eta),
			xi * eta,
		}
		dNdXi = []float64{
			-(1 - eta),
			-eta,
			(1 - eta),
			eta,
		}
		dNdEta = []float64{
			-(1 - xi),
			(1 - xi),
			-xi,
			xi,
		}
		return

	case Dim2Quadratic:
		Lx, dLx := lagrange3(r[0])
		Ly, dLy := lagrange3(r[1])
		// node order: [BL, L-mid, TL, B-mid, center, T-mid, BR, R-mid, TR] == 3x3
		// lexicographic with xi-index as the outer (row) loop
		xidx := [9]int{0, 0, 0, 1, 1, 1, 2, 2, 2}
		eidx := [9]int{0, 1, 2, 0, 1, 2, 0, 1, 2}
		N = make([]float64, 9)
		dNdXi = make([]float64, 9)
		dNdEta = make([]float64, 9)
		for k := 0; k < 9; k++ {
			i, j := xidx[k], eidx[k]
			N[k] = Lx[i] * Ly[j]
			dNdXi[k] = dLx[i] * Ly[j]
			dNdEta[k] = Lx[i] * dLy[j]
		}
		return
	}
	chk.Panic("shp: unknown kind %v", kind)
	return
}

// Side local-node tables, indexed by side code (0=bottom, 1=left, 2=top, 3=right).
var (
	sides2DQuadratic = map[int][]int{0: {0, 3, 6}, 1: {0, 1, 2}, 2: {2, 5, 8}, 3: {6, 7, 8}}
	sides2DLinear    = map[int][]int{0: {0, 2}, 1: {0, 1}, 2: {1, 3}, 3: {2, 3}}
)

// SideLocalVerts returns the local node indices of side for the given 2D kind.
func SideLocalVerts(kind Kind, side int) []int {
	switch kind {
	case Dim2Linear:
		return sides2DLinear[side]
	case Dim2Quadratic:
		return sides2DQuadratic[side]
	}
	chk.Panic("shp: SideLocalVerts only defined for 2D kinds, got %v", kind)
	return nil
}

// TriangleUnsupported builds the NotImplemented error for triangular elements. No routine in
// this module returns it: Kind has no triangle variants, and the Gmsh adapter skips triangular
// elements at import.
func TriangleUnsupported() *ferr.Error {
	return ferr.New(ferr.NotImplemented, "triangular elements are not supported by the reference-element machinery")
}
