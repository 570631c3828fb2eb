// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mesh

import (
	"github.com/cpmech/feacore/ferr"
	"github.com/cpmech/gosl/utl"
)

// Generate validates cfg and builds a structured mesh from it; a config carrying a Gmsh
// payload is rejected.
func Generate(cfg *Config) (*Data, *ferr.Error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Parsed != nil {
		return nil, ferr.New(ferr.ConfigurationError, "Generate called with a Gmsh-payload config; use FromGmsh instead")
	}
	if cfg.Dimension == Dim1 {
		return generate1D(cfg), nil
	}
	return generate2D(cfg), nil
}

// generate1D places totalNodesX = numElX+1 (linear) or 2*numElX+1 (quadratic) equally-spaced
// nodes on [0, maxX].
func generate1D(cfg *Config) *Data {
	k := orderK(cfg.Order)
	numEl := cfg.NumElementsX
	totalNodesX := numEl*k + 1
	nodesX := utl.LinSpace(0, cfg.MaxX, totalNodesX)

	nop := make([][]int, numEl)
	for e := 0; e < numEl; e++ {
		if cfg.Order == Linear {
			nop[e] = []int{e + 1, e + 2}
		} else {
			first := 2*e + 1
			nop[e] = []int{first, first + 1, first + 2}
		}
	}

	d := &Data{
		NodesX:        nodesX,
		Nop:           nop,
		ElementOrder:  cfg.Order,
		MeshDimension: Dim1,
	}
	d.BoundaryElements = findBoundaryElements1D(numEl)
	return d
}

func findBoundaryElements1D(numEl int) map[string][]Side {
	return map[string][]Side{
		"0": {{Elem: 0, Code: 0}},
		"1": {{Elem: numEl - 1, Code: 1}},
	}
}

// localXiEta returns, for order, the per-local-node (xi-index, eta-index) pairs used both by
// shp.Eval and by the structured node-numbering scheme: the two describe the same
// lexicographic layout, so the mesh generator and the reference element agree on node order
// without needing a translation table.
func localXiEta(order Order) (xi, eta []int) {
	if order == Linear {
		return []int{0, 0, 1, 1}, []int{0, 1, 0, 1}
	}
	return []int{0, 0, 0, 1, 1, 1, 2, 2, 2}, []int{0, 1, 2, 0, 1, 2, 0, 1, 2}
}

// generate2D generates nodes column-major (y varies fastest); NOP packs each element's local
// nodes in the lexicographic order localXiEta describes.
func generate2D(cfg *Config) *Data {
	k := orderK(cfg.Order)
	numElX, numElY := cfg.NumElementsX, cfg.NumElementsY
	totalNodesX := numElX*k + 1
	totalNodesY := numElY*k + 1
	axisX := utl.LinSpace(0, cfg.MaxX, totalNodesX)
	axisY := utl.LinSpace(0, cfg.MaxY, totalNodesY)

	totalNodes := totalNodesX * totalNodesY
	nodesX := make([]float64, totalNodes)
	nodesY := make([]float64, totalNodes)
	nodeID := func(col, row int) int { return col*totalNodesY + row + 1 } // 1-based, column-major
	for col := 0; col < totalNodesX; col++ {
		for row := 0; row < totalNodesY; row++ {
			id := nodeID(col, row) - 1
			nodesX[id] = axisX[col]
			nodesY[id] = axisY[row]
		}
	}

	xiIdx, etaIdx := localXiEta(cfg.Order)
	nverts := len(xiIdx)
	nop := make([][]int, numElX*numElY)
	for ey := 0; ey < numElY; ey++ {
		for ex := 0; ex < numElX; ex++ {
			e := ey*numElX + ex
			row := make([]int, nverts)
			for n := 0; n < nverts; n++ {
				col := ex*k + xiIdx[n]
				r := ey*k + etaIdx[n]
				row[n] = nodeID(col, r)
			}
			nop[e] = row
		}
	}

	d := &Data{
		NodesX:        nodesX,
		NodesY:        nodesY,
		Nop:           nop,
		ElementOrder:  cfg.Order,
		MeshDimension: Dim2,
	}
	d.BoundaryElements = findBoundaryElements2D(numElX, numElY)
	return d
}

// findBoundaryElements2D sweeps all elements and records (e, side) for each element on the
// domain boundary.
func findBoundaryElements2D(numElX, numElY int) map[string][]Side {
	sides := map[string][]Side{"0": {}, "1": {}, "2": {}, "3": {}}
	for ey := 0; ey < numElY; ey++ {
		for ex := 0; ex < numElX; ex++ {
			e := ey*numElX + ex
			if ey == 0 {
				sides["0"] = append(sides["0"], Side{Elem: e, Code: 0}) // bottom
			}
			if ex == 0 {
				sides["1"] = append(sides["1"], Side{Elem: e, Code: 1}) // left
			}
			if ey == numElY-1 {
				sides["2"] = append(sides["2"], Side{Elem: e, Code: 2}) // top
			}
			if ex == numElX-1 {
				sides["3"] = append(sides["3"], Side{Elem: e, Code: 3}) // right
			}
		}
	}
	return sides
}
