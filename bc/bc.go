// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package bc implements the boundary-condition value types and their application to a global
// Jacobian/residual system.
package bc

import (
	"math"
	"sort"

	"github.com/cpmech/feacore/ferr"
	"github.com/cpmech/feacore/mesh"
	"github.com/cpmech/feacore/shp"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/utl"
)

// Kind identifies a boundary-condition variant.
type Kind int

const (
	KindConstantValue Kind = iota
	KindConvection
	KindNatural
	KindConstantVelocity
)

// Spec is the tagged-variant boundary-condition value: a Kind plus whatever of Value/H/Tinf
// that kind needs.
type Spec struct {
	Kind Kind

	Value float64 // ConstantValue / ConstantTemp

	H, Tinf float64 // Convection (Robin)

	U, V float64 // ConstantVelocity
}

// ConstantValue returns a Dirichlet condition fixing the scalar unknown to v.
func ConstantValue(v float64) Spec { return Spec{Kind: KindConstantValue, Value: v} }

// ConstantTemp is an alias of ConstantValue used by heat-conduction callers.
func ConstantTemp(T float64) Spec { return ConstantValue(T) }

// Convection returns a Robin condition with film coefficient h and ambient value Tinf.
func Convection(h, Tinf float64) Spec { return Spec{Kind: KindConvection, H: h, Tinf: Tinf} }

// StressFree returns a natural condition that performs no assembly work.
func StressFree() Spec { return Spec{Kind: KindNatural} }

// ZeroGradient is an alias of StressFree.
func ZeroGradient() Spec { return StressFree() }

// ConstantVelocity returns a Dirichlet condition fixing both velocity components.
func ConstantVelocity(u, v float64) Spec { return Spec{Kind: KindConstantVelocity, U: u, V: v} }

// DofMap resolves the global equation number of a node's component (0=scalar/ux, 1=uy). Scalar
// problems only ever query component 0.
type DofMap func(node, component int) int

// Apply applies every boundary condition in bcs to (J, R) in a fixed order: Robin
// contributions first, then Dirichlet row elimination (so Dirichlet wins on a shared row).
// Dirichlet keys are applied in ascending key order, so on a node shared by two Dirichlet
// boundaries the value of the later key wins.
func Apply(m *mesh.Data, bcs map[string]Spec, dof DofMap, J [][]float64, R []float64) *ferr.Error {
	for key, spec := range bcs {
		if spec.Kind != KindConvection {
			continue
		}
		sides, ok := m.BoundaryElements[key]
		if !ok {
			return ferr.New(ferr.ConfigurationError, "boundary condition declared on unknown key %q", key)
		}
		if err := applyConvection(m, sides, spec, dof, J, R); err != nil {
			return err
		}
	}

	keys := make([]string, 0, len(bcs))
	for key := range bcs {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		spec := bcs[key]
		switch spec.Kind {
		case KindConstantValue:
			for _, node := range nodesOnBoundary(m, key) {
				pinRow(J, R, dof(node, 0), spec.Value)
			}
		case KindConstantVelocity:
			for _, node := range nodesOnBoundary(m, key) {
				pinRow(J, R, dof(node, 0), spec.U)
				pinRow(J, R, dof(node, 1), spec.V)
			}
		case KindNatural, KindConvection:
			// no further work: natural conditions assemble nothing, convection was
			// already folded into J/R above.
		default:
			io.Pfyel("bc: skipping unknown boundary spec kind on key %q\n", key)
		}
	}
	return nil
}

// PinPressureDOF pins a single equation to value, using the same row-elimination contract as
// Dirichlet BCs.
func PinPressureDOF(J [][]float64, R []float64, eq int, value float64) {
	pinRow(J, R, eq, value)
}

// pinRow zeroes row r of J, sets the diagonal to 1 and R[r] to value.
func pinRow(J [][]float64, R []float64, r int, value float64) {
	row := J[r]
	for j := range row {
		row[j] = 0
	}
	row[r] = 1
	R[r] = value
}

// nodesOnBoundary returns the deduplicated set of global node indices touched by every
// (element, side) pair recorded under key.
func nodesOnBoundary(m *mesh.Data, key string) []int {
	sides := m.BoundaryElements[key]
	var nodes []int
	kind := m.ShapeKind()
	for _, s := range sides {
		var locals []int
		if m.MeshDimension == mesh.Dim1 {
			locals = []int{sideLocal1D(s.Code, kind)}
		} else {
			locals = shp.SideLocalVerts(kind, s.Code)
		}
		for _, li := range locals {
			nodes = append(nodes, m.Nop[s.Elem][li])
		}
	}
	return utl.IntUnique(nodes)
}

// sideLocal1D returns the single local vertex of a 1D element's boundary side: 0=left node,
// last-index=right node.
func sideLocal1D(code int, kind shp.Kind) int {
	if code == 0 {
		return 0
	}
	return shp.Nverts(kind) - 1
}

// applyConvection implements Robin contribution: a point update in 1D, a side integral in 2D.
func applyConvection(m *mesh.Data, sides []mesh.Side, spec Spec, dof DofMap, J [][]float64, R []float64) *ferr.Error {
	if m.MeshDimension == mesh.Dim1 {
		for _, s := range sides {
			kind := m.ShapeKind()
			li := sideLocal1D(s.Code, kind)
			g := m.Nop[s.Elem][li]
			r := dof(g, 0)
			R[r] += -spec.H * spec.Tinf
			J[r][r] += spec.H
		}
		return nil
	}

	kind := m.ShapeKind()
	order := mesh.Linear
	if kind == shp.Dim2Quadratic {
		order = mesh.Quadratic
	}
	ips := shp.SideGaussPoints(order)
	for _, s := range sides {
		x, y := m.Coords(s.Elem)
		locals := shp.SideLocalVerts(kind, s.Code)
		for _, ip := range ips {
			t, wg := ip[0], ip[1]
			xi, eta := sideNaturalPoint(s.Code, t)
			N, dNdXi, dNdEta := shp.Eval(kind, []float64{xi, eta})
			var xt, yt float64
			if s.Code == 0 || s.Code == 2 {
				for n := range x {
					xt += x[n] * dNdXi[n]
					yt += y[n] * dNdXi[n]
				}
			} else {
				for n := range x {
					xt += x[n] * dNdEta[n]
					yt += y[n] * dNdEta[n]
				}
			}
			tangent := math.Sqrt(xt*xt + yt*yt)
			coef := wg * tangent
			for _, i := range locals {
				gi := dof(m.Nop[s.Elem][i], 0)
				R[gi] += -coef * N[i] * spec.H * spec.Tinf
				for _, j := range locals {
					gj := dof(m.Nop[s.Elem][j], 0)
					J[gi][gj] += -coef * N[i] * N[j] * spec.H
				}
			}
		}
	}
	return nil
}

// sideNaturalPoint maps a 1D parametric coordinate t in [0,1] along side code to the element's
// natural coordinates (xi, eta).
func sideNaturalPoint(code int, t float64) (xi, eta float64) {
	switch code {
	case 0: // bottom
		return t, 0
	case 1: // left
		return 0, t
	case 2: // top
		return t, 1
	case 3: // right
		return 1, t
	}
	return 0, 0
}
