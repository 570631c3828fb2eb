// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package model

import (
	"github.com/cpmech/feacore/ferr"
	"github.com/cpmech/feacore/shp"
	"github.com/cpmech/gosl/la"
)

// Heat implements steady heat conduction, ∫∇Ni·∇Nj dΩ, with the negated-stiffness sign
// convention; bc.Apply's 2D Robin side integral adds its h·Ni·Nj term with the same negative
// sign.
type Heat struct {
	Kind shp.Kind
}

// NewHeat returns a Heat kernel for the given reference-element kind.
func NewHeat(kind shp.Kind) *Heat { return &Heat{Kind: kind} }

// Nverts implements Kernel.
func (o *Heat) Nverts() int { return shp.Nverts(o.Kind) }

// Local implements Kernel: J[i][j] += -w·det·∇Ni·∇Nj, R is untouched.
func (o *Heat) Local(x, y, u []float64, alpha float64) ([][]float64, []float64, *ferr.Error) {
	n := o.Nverts()
	J := la.MatAlloc(n, n)
	R := make([]float64, n)

	for _, ip := range shp.GaussPoints(o.Kind) {
		if shp.Gndim(o.Kind) == 1 {
			xi, wg := ip[0], ip[1]
			_, dNdXi, _ := shp.Eval(o.Kind, []float64{xi})
			J1, dNdx, err := shp.Map1D(x, dNdXi)
			if err != nil {
				return nil, nil, err
			}
			for i := 0; i < n; i++ {
				for j := 0; j < n; j++ {
					J[i][j] += -wg * J1 * dNdx[i] * dNdx[j]
				}
			}
			continue
		}
		xi, eta, wg := ip[0], ip[1], ip[2]
		_, dNdXi, dNdEta := shp.Eval(o.Kind, []float64{xi, eta})
		det, dNdx, dNdy, err := shp.Map2D(x, y, dNdXi, dNdEta)
		if err != nil {
			return nil, nil, err
		}
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				J[i][j] += -wg * det * (dNdx[i]*dNdx[j] + dNdy[i]*dNdy[j])
			}
		}
	}
	return J, R, nil
}
