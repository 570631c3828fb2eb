// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shp

import (
	"math"

	"github.com/cpmech/feacore/ferr"
)

// degenerateTol is the determinant threshold below which an element is rejected as degenerate.
const degenerateTol = 1e-12

// Map1D computes the 1D isoparametric mapping at a Gauss point: J = Σ xₙ·∂Nₙ/∂ξ and
// ∂Nₙ/∂x = (∂Nₙ/∂ξ)/J.
func Map1D(x []float64, dNdXi []float64) (J float64, dNdx []float64, err *ferr.Error) {
	for n, xn := range x {
		J += xn * dNdXi[n]
	}
	if math.Abs(J) < degenerateTol {
		return 0, nil, ferr.New(ferr.DegenerateElement, "1D Jacobian determinant too small: |J|=%g", math.Abs(J))
	}
	dNdx = make([]float64, len(dNdXi))
	for n := range dNdXi {
		dNdx[n] = dNdXi[n] / J
	}
	return
}

// Map2D computes the 2D isoparametric mapping at a Gauss point. det may be negative;
// callers must not take its absolute value when using it to scale integrals — the sign carries
// element orientation.
func Map2D(x, y []float64, dNdXi, dNdEta []float64) (det float64, dNdx, dNdy []float64, err *ferr.Error) {
	var xXi, xEta, yXi, yEta float64
	for n := range x {
		xXi += x[n] * dNdXi[n]
		xEta += x[n] * dNdEta[n]
		yXi += y[n] * dNdXi[n]
		yEta += y[n] * dNdEta[n]
	}
	det = xXi*yEta - xEta*yXi
	if math.Abs(det) < degenerateTol {
		return 0, nil, nil, ferr.New(ferr.DegenerateElement, "2D Jacobian determinant too small: |det|=%g", math.Abs(det))
	}
	n := len(dNdXi)
	dNdx = make([]float64, n)
	dNdy = make([]float64, n)
	for i := 0; i < n; i++ {
		dNdx[i] = (yEta*dNdXi[i] - yXi*dNdEta[i]) / det
		dNdy[i] = (xXi*dNdEta[i] - xEta*dNdXi[i]) / det
	}
	return
}

// PhysCoord returns Σₙ Nₙ·xₙ, the physical-coordinate interpolation used to evaluate
// coefficient functions A(x),B(x),C(x),D(x) at a Gauss point.
func PhysCoord(N []float64, x []float64) (xp float64) {
	for n, xn := range x {
		xp += N[n] * xn
	}
	return
}
