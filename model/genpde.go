// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package model

import (
	"github.com/cpmech/feacore/ferr"
	"github.com/cpmech/feacore/shp"
	"github.com/cpmech/gosl/fun"
	"github.com/cpmech/gosl/la"
)

// GenPDE implements the general 1D linear PDE A(x)u″ + B(x)u′ + C(x)u = D(x). Coefficient
// functions follow gosl/fun's Func contract so a caller can pass gosl's Cte/Prms constants or any
// other fun.Func without feacore needing its own expression parser.
type GenPDE struct {
	Kind       shp.Kind
	A, B, C, D fun.Func
}

// NewGenPDE1D returns a GenPDE kernel for the 1D element kind. 2D is reserved; use
// NewGenPDE2D to get the correctly-failing NotImplemented kernel for that case.
func NewGenPDE1D(kind shp.Kind, A, B, C, D fun.Func) *GenPDE {
	return &GenPDE{Kind: kind, A: A, B: B, C: C, D: D}
}

// NewGenPDE2D returns a kernel that always fails with NotImplemented: the 2D general PDE
// is reserved and must emit NotImplemented.
func NewGenPDE2D() *GenPDE {
	return &GenPDE{Kind: shp.Dim2Linear}
}

// Nverts implements Kernel.
func (o *GenPDE) Nverts() int { return shp.Nverts(o.Kind) }

// Local implements Kernel: diffusion/advection/reaction terms in J, source term in R.
func (o *GenPDE) Local(x, y, u []float64, alpha float64) ([][]float64, []float64, *ferr.Error) {
	if shp.Gndim(o.Kind) != 1 {
		return nil, nil, ferr.New(ferr.NotImplemented, "the general linear PDE model is not implemented in 2D")
	}
	n := o.Nverts()
	J := la.MatAlloc(n, n)
	R := make([]float64, n)

	for _, ip := range shp.GaussPoints(o.Kind) {
		xi, wg := ip[0], ip[1]
		N, dNdXi, _ := shp.Eval(o.Kind, []float64{xi})
		Jdet, dNdx, err := shp.Map1D(x, dNdXi)
		if err != nil {
			return nil, nil, err
		}
		xp := shp.PhysCoord(N, x)
		coef := wg * Jdet
		Aval := o.A.F(0, []float64{xp})
		Bval := o.B.F(0, []float64{xp})
		Cval := o.C.F(0, []float64{xp})
		Dval := o.D.F(0, []float64{xp})

		for i := 0; i < n; i++ {
			R[i] -= coef * Dval * N[i]
			for j := 0; j < n; j++ {
				J[i][j] += coef * Aval * dNdx[i] * dNdx[j]
				J[i][j] -= coef * Bval * dNdx[j] * N[i]
				J[i][j] += coef * Cval * N[i] * N[j]
			}
		}
	}
	return J, R, nil
}
