// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package mesh implements structured-mesh generation and the Gmsh payload adapter.
package mesh

import (
	"github.com/cpmech/feacore/ferr"
	"github.com/cpmech/feacore/shp"
)

// Dimension is the spatial dimension of a mesh.
type Dimension int

const (
	Dim1 Dimension = 1
	Dim2 Dimension = 2
)

// Order re-exports shp.Order so callers need only import mesh for mesh-level configuration.
type Order = shp.Order

const (
	Linear    = shp.Linear
	Quadratic = shp.Quadratic
)

// Config describes either a structured mesh to generate, or carries a pre-parsed Gmsh payload
// to adapt — never both.
type Config struct {
	Dimension   Dimension `json:"meshDimension"`
	Order       Order     `json:"elementOrder"`
	NumElementsX int      `json:"numElementsX"`
	NumElementsY int      `json:"numElementsY"`
	MaxX        float64   `json:"maxX"`
	MaxY        float64   `json:"maxY"`
	Parsed      *GmshPayload `json:"-"`
}

// Validate enforces the invariant: either the structured parameters are fully provided, or a
// pre-parsed payload is present, not both.
func (c *Config) Validate() *ferr.Error {
	structured := c.NumElementsX > 0 && c.MaxX > 0
	if c.Dimension == Dim2 {
		structured = structured && c.NumElementsY > 0 && c.MaxY > 0
	}
	if c.Parsed != nil && structured {
		return ferr.New(ferr.ConfigurationError, "mesh config carries both structured parameters and a parsed Gmsh payload")
	}
	if c.Parsed == nil && !structured {
		return ferr.New(ferr.ConfigurationError, "mesh config needs either full structured parameters or a parsed Gmsh payload")
	}
	if c.Dimension != Dim1 && c.Dimension != Dim2 {
		return ferr.New(ferr.ConfigurationError, "unknown mesh dimension %v", c.Dimension)
	}
	return nil
}

// ShapeKind returns the shp.Kind corresponding to this mesh's dimension and order.
func (c *Config) ShapeKind() shp.Kind {
	return shapeKind(c.Dimension, c.Order)
}

func shapeKind(dim Dimension, order Order) shp.Kind {
	switch {
	case dim == Dim1 && order == Linear:
		return shp.Dim1Linear
	case dim == Dim1 && order == Quadratic:
		return shp.Dim1Quadratic
	case dim == Dim2 && order == Linear:
		return shp.Dim2Linear
	case dim == Dim2 && order == Quadratic:
		return shp.Dim2Quadratic
	}
	panic("mesh: unreachable dimension/order combination")
}

// orderK returns the number of node-columns spanned per element edge: 1 for linear, 2 for
// quadratic.
func orderK(order Order) int {
	if order == Linear {
		return 1
	}
	return 2
}

// Side is one (elementIndex, sideCode) pair recorded for a boundary. Side codes: 1D
// {0=left, 1=right}; 2D {0=bottom, 1=left, 2=top, 3=right}.
type Side struct {
	Elem int
	Code int
}

// Data is the immutable mesh produced by Generate or FromGmsh.
type Data struct {
	NodesX           []float64
	NodesY           []float64
	Nop              [][]int // 1-based global node indices, one row per element
	BoundaryElements map[string][]Side
	ElementOrder     Order
	MeshDimension    Dimension
}

// TotalElements returns the number of elements in the mesh.
func (d *Data) TotalElements() int { return len(d.Nop) }

// TotalNodes returns the number of nodes in the mesh.
func (d *Data) TotalNodes() int { return len(d.NodesX) }

// ShapeKind returns the shp.Kind of every element in this mesh.
func (d *Data) ShapeKind() shp.Kind {
	return shapeKind(d.MeshDimension, d.ElementOrder)
}

// Coords returns the physical coordinates of element e's local nodes, ready for shp.Map1D /
// shp.Map2D / shp.PhysCoord.
func (d *Data) Coords(e int) (x, y []float64) {
	nop := d.Nop[e]
	x = make([]float64, len(nop))
	for i, g := range nop {
		x[i] = d.NodesX[abs(g)-1]
	}
	if d.MeshDimension == Dim2 {
		y = make([]float64, len(nop))
		for i, g := range nop {
			y[i] = d.NodesY[abs(g)-1]
		}
	}
	return
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
