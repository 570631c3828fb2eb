// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package model implements the element assembly kernels for the three physics models — heat
// conduction, the general 1D linear PDE, and the nonlinear viscous eikonal equation.
// Every kernel exposes a single per-element "Local" form; AssembleMatrix and AssembleFront wrap
// it into the "matrix" (full global system) and "front" (one element's contribution) forms,
// separating element-local computation from the scatter into the global system.
package model

import (
	"github.com/cpmech/feacore/ferr"
	"github.com/cpmech/feacore/mesh"
	"github.com/cpmech/gosl/la"
)

// Kernel is the per-element contribution shared by every physics model. x, y are the element's
// nodal coordinates (from mesh.Data.Coords); u holds the current nodal solution restricted to
// this element (nil for linear models); alpha is the continuation activation level (ignored by
// models without one).
type Kernel interface {
	Nverts() int
	Local(x, y, u []float64, alpha float64) (localJ [][]float64, localR []float64, err *ferr.Error)
}

// Prepared bundles a generated/adapted mesh with the size N of its global system.
type Prepared struct {
	Mesh *mesh.Data
	N    int
}

// Prepare wraps m with its node count; Alloc then allocates the residual vector and Jacobian
// matrix.
func Prepare(m *mesh.Data) *Prepared {
	return &Prepared{Mesh: m, N: m.TotalNodes()}
}

// Alloc returns a fresh zeroed global Jacobian and residual sized for this mesh.
func (p *Prepared) Alloc() (J [][]float64, R []float64) {
	return la.MatAlloc(p.N, p.N), make([]float64, p.N)
}

// AssembleMatrix produces the full global system by scattering every element's Local
// contribution, the "matrix" form of assembly kernels. u is the current nodal solution
// (nil for linear models); alpha is the continuation level (ignored by linear models).
func AssembleMatrix(k Kernel, m *mesh.Data, u []float64, alpha float64) (J [][]float64, R []float64, err *ferr.Error) {
	p := Prepare(m)
	J, R = p.Alloc()
	for e := 0; e < m.TotalElements(); e++ {
		localJ, localR, lerr := AssembleFront(k, m, e, u, alpha)
		if lerr != nil {
			return nil, nil, lerr
		}
		nop := m.Nop[e]
		for i, gi := range nop {
			R[gi-1] += localR[i]
			for j, gj := range nop {
				J[gi-1][gj-1] += localJ[i][j]
			}
		}
	}
	return J, R, nil
}

// AssembleFront produces element e's local matrix/vector, the "front" form of assembly
// kernels consumed directly by the frontal solver (which owns global node-index bookkeeping via
// its own prefront-signed copy of the NOP).
func AssembleFront(k Kernel, m *mesh.Data, e int, u []float64, alpha float64) (localJ [][]float64, localR []float64, err *ferr.Error) {
	x, y := m.Coords(e)
	var ue []float64
	if u != nil {
		nop := m.Nop[e]
		ue = make([]float64, len(nop))
		for i, g := range nop {
			n := g
			if n < 0 {
				n = -n
			}
			ue[i] = u[n-1]
		}
	}
	return k.Local(x, y, ue, alpha)
}
