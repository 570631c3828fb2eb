// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shp

import (
	"math"

	"github.com/cpmech/gosl/chk"
)

// Ipoint is one Gauss integration point: natural coordinates followed by its weight, e.g.
// {ξ, w} for 1D kinds or {ξ, η, w} for 2D kinds.
type Ipoint []float64

var (
	q3pt = [3]float64{
		(1 - math.Sqrt(3.0/5.0)) / 2,
		0.5,
		(1 + math.Sqrt(3.0/5.0)) / 2,
	}
	q3wt = [3]float64{5.0 / 18.0, 8.0 / 18.0, 5.0 / 18.0}
)

// GaussPoints returns the integration points and weights for kind: a 1-point rule for
// linear quads (and the 1D linear element), and the 3-point / 3x3-point Gauss-Legendre rule for
// quadratic elements.
func GaussPoints(kind Kind) []Ipoint {
	switch kind {
	case Dim1Linear:
		return []Ipoint{{0.5, 1.0}}

	case Dim1Quadratic:
		ips := make([]Ipoint, 3)
		for i := 0; i < 3; i++ {
			ips[i] = Ipoint{q3pt[i], q3wt[i]}
		}
		return ips

	case Dim2Linear:
		return []Ipoint{{0.5, 0.5, 1.0}}

	case Dim2Quadratic:
		ips := make([]Ipoint, 0, 9)
		for i := 0; i < 3; i++ {
			for j := 0; j < 3; j++ {
				ips = append(ips, Ipoint{q3pt[i], q3pt[j], q3wt[i] * q3wt[j]})
			}
		}
		return ips
	}
	chk.Panic("shp: unknown kind %v", kind)
	return nil
}

// SideGaussPoints returns the 1D integration rule used along an element side: 1 point for
// linear elements, 3 points for quadratic elements.
func SideGaussPoints(order Order) []Ipoint {
	if order == Linear {
		return []Ipoint{{0.5, 1.0}}
	}
	ips := make([]Ipoint, 3)
	for i := 0; i < 3; i++ {
		ips[i] = Ipoint{q3pt[i], q3wt[i]}
	}
	return ips
}

// Order is the element order, independent of dimension; used where a routine only cares about
// linear-vs-quadratic (e.g. picking the side quadrature rule).
type Order int

const (
	Linear Order = iota
	Quadratic
)
