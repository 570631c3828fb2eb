// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package model

import (
	"math"

	"github.com/cpmech/feacore/ferr"
	"github.com/cpmech/feacore/shp"
	"github.com/cpmech/gosl/la"
)

// defaultNu0 is ν₀, the floor added to the continuation viscosity ν(α)=1-α+ν₀.
const defaultNu0 = 1e-2

// eikonalEps regularises the eikonal Jacobian's 1/|∇u| term near ∇u=0.
const eikonalEps = 1e-8

// Eikonal implements the nonlinear viscous eikonal (front-propagation) equation
// -ν(α)·∇²u + α·(‖∇u‖-1) = 0. It is not implemented in 1D.
type Eikonal struct {
	Kind shp.Kind
	Nu0  float64 // ν₀; zero value selects defaultNu0
}

// NewEikonal returns an Eikonal kernel for the given 2D reference-element kind.
func NewEikonal(kind shp.Kind) *Eikonal { return &Eikonal{Kind: kind} }

// Nverts implements Kernel.
func (o *Eikonal) Nverts() int { return shp.Nverts(o.Kind) }

func (o *Eikonal) nu0() float64 {
	if o.Nu0 != 0 {
		return o.Nu0
	}
	return defaultNu0
}

// Local implements Kernel: u holds the current nodal solution for this element, used to
// interpolate the gradient (sx, sy) at each Gauss point.
func (o *Eikonal) Local(x, y, u []float64, alpha float64) ([][]float64, []float64, *ferr.Error) {
	if shp.Gndim(o.Kind) != 2 {
		return nil, nil, ferr.New(ferr.NotImplemented, "the viscous eikonal model is not implemented in 1D")
	}
	n := o.Nverts()
	J := la.MatAlloc(n, n)
	R := make([]float64, n)
	nu := 1 - alpha + o.nu0()

	for _, ip := range shp.GaussPoints(o.Kind) {
		xi, eta, wg := ip[0], ip[1], ip[2]
		N, dNdXi, dNdEta := shp.Eval(o.Kind, []float64{xi, eta})
		det, dNdx, dNdy, err := shp.Map2D(x, y, dNdXi, dNdEta)
		if err != nil {
			return nil, nil, err
		}

		var sx, sy float64
		for k := 0; k < n; k++ {
			sx += dNdx[k] * u[k]
			sy += dNdy[k] * u[k]
		}
		norm := math.Sqrt(sx*sx + sy*sy)
		denom := math.Sqrt(sx*sx + sy*sy + eikonalEps)
		coef := wg * det

		for i := 0; i < n; i++ {
			R[i] += nu * coef * (dNdx[i]*sx + dNdy[i]*sy)
			if alpha != 0 {
				R[i] += alpha * coef * N[i] * (norm - 1)
			}
			for j := 0; j < n; j++ {
				J[i][j] += -nu * coef * (dNdx[i]*dNdx[j] + dNdy[i]*dNdy[j])
				J[i][j] += -alpha * coef * N[i] * (sx*dNdx[j] + sy*dNdy[j]) / denom
			}
		}
	}
	return J, R, nil
}
