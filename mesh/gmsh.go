// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mesh

import (
	"github.com/cpmech/feacore/ferr"
	"github.com/cpmech/feacore/shp"
	"github.com/cpmech/gosl/io"
)

// PhysicalProp is one entry of a Gmsh payload's physical-group table.
type PhysicalProp struct {
	Tag       int
	Dimension int
	Name      string
}

// GmshPayload is the pre-parsed Gmsh contract feacore consumes; producing it (invoking an
// actual .msh parser) is an external collaborator's job.
type GmshPayload struct {
	NodesX            []float64       // indexed by 0-based node tag-1
	NodesY            []float64       // indexed by 0-based node tag-1
	QuadElements      [][]int         // raw connectivity, 1-based node tags, Gmsh node order
	TriangleElements  [][]int         // raw connectivity, 1-based node tags, Gmsh node order
	PhysicalPropMap   []PhysicalProp
	BoundaryNodePairs map[int][][]int // physical tag -> list of node-tag tuples (pairs or triples)
}

// quad4Perm / quad9Perm implement the remap tables: internal[k] = gmshNodes[perm[k]].
var (
	quad4Perm = [4]int{0, 3, 1, 2}
	quad9Perm = [9]int{0, 7, 3, 4, 8, 6, 1, 5, 2}
)

// AdaptResult carries the outcome of FromGmsh alongside the mesh itself: warnings and a
// histogram of element types that were skipped during import.
type AdaptResult struct {
	Data                 *Data
	Warnings             []string
	SkippedElementTypes  map[string]int
	IncompleteBoundaries []int // physical tags for which at least one node-tuple had no containing element
}

// FromGmsh consumes a pre-parsed Gmsh payload and remaps it into the internal mesh format.
// order selects the element kind: Linear expects 4-node quads (shp.Dim2Linear), Quadratic
// expects 9-node quads (shp.Dim2Quadratic). Quads with any other node count are skipped and
// counted under "malformed-quad".
func FromGmsh(payload *GmshPayload, order Order) (*AdaptResult, *ferr.Error) {
	res := &AdaptResult{SkippedElementTypes: make(map[string]int)}

	if len(payload.TriangleElements) > 0 {
		res.SkippedElementTypes["triangle"] += len(payload.TriangleElements)
		res.Warnings = append(res.Warnings, io.Sf("skipped %d triangular elements: unsupported by the reference-element machinery", len(payload.TriangleElements)))
	}

	var perm []int
	var kind shp.Kind
	if order == Linear {
		perm, kind = quad4Perm[:], shp.Dim2Linear
	} else {
		perm, kind = quad9Perm[:], shp.Dim2Quadratic
	}

	nop := make([][]int, 0, len(payload.QuadElements))
	for _, raw := range payload.QuadElements {
		if len(raw) != len(perm) {
			res.SkippedElementTypes["malformed-quad"]++
			res.Warnings = append(res.Warnings, io.Sf("skipped quad element with %d nodes, expected %d", len(raw), len(perm)))
			continue
		}
		internal := make([]int, len(perm))
		for k, p := range perm {
			internal[k] = raw[p]
		}
		nop = append(nop, internal)
	}

	d := &Data{
		NodesX:        append([]float64(nil), payload.NodesX...),
		NodesY:        append([]float64(nil), payload.NodesY...),
		Nop:           nop,
		ElementOrder:  order,
		MeshDimension: Dim2,
	}

	// index: global node tag -> elements it belongs to, for boundary resolution below
	nodeToElems := make(map[int][]int)
	for e, row := range nop {
		for _, g := range row {
			nodeToElems[g] = append(nodeToElems[g], e)
		}
	}

	boundaries := make(map[string][]Side)
	for tag, tuples := range payload.BoundaryNodePairs {
		key := io.Sf("%d", tag)
		boundaries[key] = []Side{}
		for _, tuple := range tuples {
			e, code, found := resolveSide(tuple, nop, nodeToElems, kind)
			if !found {
				res.IncompleteBoundaries = append(res.IncompleteBoundaries, tag)
				res.Warnings = append(res.Warnings, io.Sf("no containing element found for boundary nodes %v on physical tag %d", tuple, tag))
				continue
			}
			boundaries[key] = append(boundaries[key], Side{Elem: e, Code: code})
		}
	}
	d.BoundaryElements = boundaries
	res.Data = d
	return res, nil
}

// resolveSide finds the element containing every node in tuple, then decides the side from the
// local indices of those nodes, via the candidate elements shared by all nodes.
func resolveSide(tuple []int, nop [][]int, nodeToElems map[int][]int, kind shp.Kind) (elem, code int, found bool) {
	if len(tuple) == 0 {
		return 0, 0, false
	}
	candidates := append([]int(nil), nodeToElems[tuple[0]]...)
	for _, nodeTag := range tuple[1:] {
		candidates = intersect(candidates, nodeToElems[nodeTag])
	}
	for _, e := range candidates {
		localSet := make(map[int]bool, len(tuple))
		for _, nodeTag := range tuple {
			li := localIndex(nop[e], nodeTag)
			if li < 0 {
				localSet = nil
				break
			}
			localSet[li] = true
		}
		if localSet == nil {
			continue
		}
		for side := 0; side < 4; side++ {
			verts := shp.SideLocalVerts(kind, side)
			if sameSet(localSet, verts) {
				return e, side, true
			}
		}
	}
	return 0, 0, false
}

func localIndex(nop []int, nodeTag int) int {
	for i, g := range nop {
		if g == nodeTag {
			return i
		}
	}
	return -1
}

func intersect(a, b []int) []int {
	set := make(map[int]bool, len(b))
	for _, v := range b {
		set[v] = true
	}
	out := make([]int, 0, len(a))
	for _, v := range a {
		if set[v] {
			out = append(out, v)
		}
	}
	return out
}

func sameSet(set map[int]bool, verts []int) bool {
	if len(set) != len(verts) {
		return false
	}
	for _, v := range verts {
		if !set[v] {
			return false
		}
	}
	return true
}
