// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package frontal implements the classical Irons frontal elimination solver: element
// assembly and Gaussian elimination interleave so memory is bounded by the active front width
// rather than the full system size. It follows the low-level, flat-slice, explicit-index style
// of feacore's numerical core rather than the element-object style used elsewhere, because the
// sign-encoded "last appearance" bookkeeping this algorithm needs does not fit an OOP Element
// abstraction cleanly.
package frontal

import (
	"math"

	"github.com/cpmech/feacore/ferr"
	"github.com/cpmech/feacore/mesh"
	"github.com/cpmech/feacore/model"
)

// Constraint pins a global (1-based) node to a prescribed value, the frontal-solver equivalent of
// a Dirichlet row elimination.
type Constraint struct {
	Node  int
	Value float64
}

// Options controls the active-front bookkeeping.
type Options struct {
	FrontMax   int // maximum active front width; default 64
	SumTrigger int // eliminate once this many fully-summed rows have accumulated; default 1
}

func (o Options) withDefaults() Options {
	if o.FrontMax == 0 {
		o.FrontMax = 64
	}
	if o.SumTrigger == 0 {
		o.SumTrigger = 1
	}
	return o
}

// record is one eliminated pivot, streamed forward during elimination and read backward during
// back-substitution.
type record struct {
	kro     int       // global node whose row was eliminated
	lpivco  int       // position of the pivot column within colTags at elimination time
	colTags []int     // snapshot of the front's column tags at elimination time
	qq      []float64 // the normalised pivot row (qq[lpivco] is always 0: it is the unknown being solved, not a coefficient)
}

// Solver drives the frontal method for a single (linear) assembly kernel over a mesh.
type Solver struct {
	Kernel model.Kernel
	Mesh   *mesh.Data
	Opts   Options
}

// New returns a Solver with defaults applied to any zero-valued Options fields.
func New(k model.Kernel, m *mesh.Data, opts Options) *Solver {
	return &Solver{Kernel: k, Mesh: m, Opts: opts.withDefaults()}
}

// Solve runs prefront, elementwise assemble+eliminate, and back-substitution, returning the
// 0-indexed nodal solution (len == Mesh.TotalNodes()).
func (s *Solver) Solve(constraints []Constraint) ([]float64, *ferr.Error) {
	n := s.Mesh.TotalNodes()
	ncod := make([]int, n+1)   // 1-based; 0=free, 1=prescribed-unapplied, 2=applied/solved
	value := make([]float64, n+1)
	for _, c := range constraints {
		ncod[c.Node] = 1
		value[c.Node] = c.Value
	}

	signedNop := s.prefront()

	var colTags, rowTags []int
	var eq [][]float64
	R := make([]float64, n+1)
	var tape []record

	findOrAlloc := func(tags *[]int, g int) (int, *ferr.Error) {
		for i, t := range *tags {
			if iabs(t) == g {
				return i, nil
			}
		}
		if len(*tags) >= s.Opts.FrontMax {
			return 0, ferr.New(ferr.FrontExceeded, "frontal: active front width exceeds %d", s.Opts.FrontMax)
		}
		*tags = append(*tags, g)
		return len(*tags) - 1, nil
	}

	for e := 0; e < s.Mesh.TotalElements(); e++ {
		localJ, localR, err := model.AssembleFront(s.Kernel, s.Mesh, e, nil, 0)
		if err != nil {
			return nil, err
		}
		ngl := signedNop[e]
		nv := len(ngl)
		ldest := make([]int, nv)
		kdest := make([]int, nv)
		for k := 0; k < nv; k++ {
			g := iabs(ngl[k])
			lpos, ferr2 := findOrAlloc(&colTags, g)
			if ferr2 != nil {
				return nil, ferr2
			}
			kpos, ferr3 := findOrAlloc(&rowTags, g)
			if ferr3 != nil {
				return nil, ferr3
			}
			growCols(&eq, len(colTags))
			growRows(&eq, len(rowTags), len(colTags))
			ldest[k], kdest[k] = lpos, kpos
			colTags[lpos] = ngl[k]
			rowTags[kpos] = ngl[k]
		}
		for a := 0; a < nv; a++ {
			R[iabs(ngl[a])] += localR[a]
			for b := 0; b < nv; b++ {
				eq[kdest[a]][ldest[b]] += localJ[a][b]
			}
		}

		applyFullySummedConstraints(rowTags, colTags, eq, R, ncod, value)

		for {
			summed := countNegative(rowTags)
			if summed == 0 {
				break
			}
			if e != s.Mesh.TotalElements()-1 && summed < s.Opts.SumTrigger {
				break
			}
			if ferr4 := eliminateOne(&rowTags, &colTags, &eq, R, &tape); ferr4 != nil {
				return nil, ferr4
			}
		}
	}

	// drain the remaining front
	for len(rowTags) > 0 {
		if err := eliminateOne(&rowTags, &colTags, &eq, R, &tape); err != nil {
			return nil, err
		}
	}

	sk := backSubstitute(tape, R, n)
	return sk, nil
}

// prefront scans elements in reverse order, negating the first occurrence found (i.e. a node's
// last appearance walking the element stream forward) so the main loop can recognise when a row
// or column becomes fully summed.
func (s *Solver) prefront() [][]int {
	n := s.Mesh.TotalNodes()
	seen := make([]bool, n+1)
	out := make([][]int, len(s.Mesh.Nop))
	for e := len(s.Mesh.Nop) - 1; e >= 0; e-- {
		row := append([]int(nil), s.Mesh.Nop[e]...)
		for i, g := range row {
			if !seen[g] {
				seen[g] = true
				row[i] = -g
			}
		}
		out[e] = row
	}
	return out
}

// applyFullySummedConstraints implements step 5: for each fully-summed row whose node
// carries an unapplied Dirichlet constraint, zero the row, set the diagonal-equivalent column
// entry to 1, set the RHS to the prescribed value, and mark it applied.
func applyFullySummedConstraints(rowTags, colTags []int, eq [][]float64, R []float64, ncod []int, value []float64) {
	for r, t := range rowTags {
		if t >= 0 {
			continue
		}
		g := -t
		if ncod[g] != 1 {
			continue
		}
		for c := range eq[r] {
			eq[r][c] = 0
		}
		for c, ct := range colTags {
			if iabs(ct) == g {
				eq[r][c] = 1
				break
			}
		}
		R[g] = value[g]
		ncod[g] = 2
	}
}

// eliminateOne picks a pivot among the fully-summed rows/columns and eliminates it, streaming
// the record needed for back-substitution onto tape.
func eliminateOne(rowTags, colTags *[]int, eq *[][]float64, R []float64, tape *[]record) *ferr.Error {
	pr := -1
	for i, t := range *rowTags {
		if t < 0 {
			pr = i
			break
		}
	}
	if pr == -1 {
		return ferr.New(ferr.NoSummedRows, "frontal: no fully-summed row available for elimination")
	}
	g := -(*rowTags)[pr]
	pc := -1
	for i, t := range *colTags {
		if iabs(t) == g {
			pc = i
			break
		}
	}
	if pc == -1 {
		return ferr.New(ferr.NoSummedRows, "frontal: pivot node %d has no matching column in the front", g)
	}

	pivot := (*eq)[pr][pc]
	if math.Abs(pivot) < 1e-4 {
		bestR, bestC, best := pr, pc, pivot
		for i, rt := range *rowTags {
			if rt >= 0 {
				continue
			}
			for j, ct := range *colTags {
				if ct >= 0 {
					continue
				}
				v := (*eq)[i][j]
				if math.Abs(v) > math.Abs(best) {
					best, bestR, bestC = v, i, j
				}
			}
		}
		pr, pc, pivot = bestR, bestC, best
		g = iabs((*rowTags)[pr])
	}
	if math.Abs(pivot) < 1e-10 {
		return ferr.New(ferr.SingularMatrix, "frontal: pivot too small |piv|=%g at node %d", math.Abs(pivot), g)
	}

	row := (*eq)[pr]
	for c := range row {
		row[c] /= pivot
	}
	R[g] /= pivot

	colSnap := append([]int(nil), (*colTags)...)
	qq := append([]float64(nil), row...)
	qq[pc] = 0

	for i := range *rowTags {
		if i == pr {
			continue
		}
		factor := (*eq)[i][pc]
		if factor == 0 {
			continue
		}
		other := (*eq)[i]
		for c := range other {
			other[c] -= factor * row[c]
		}
		R[iabs((*rowTags)[i])] -= factor * R[g]
	}

	*tape = append(*tape, record{kro: g, lpivco: pc, colTags: colSnap, qq: qq})

	// compact: drop the eliminated row and column from the active front
	*rowTags = append((*rowTags)[:pr], (*rowTags)[pr+1:]...)
	newEq := make([][]float64, 0, len(*eq))
	for i, r := range *eq {
		if i == pr {
			continue
		}
		newEq = append(newEq, append(r[:pc:pc], r[pc+1:]...))
	}
	*eq = newEq
	*colTags = append((*colTags)[:pc], (*colTags)[pc+1:]...)
	return nil
}

// backSubstitute unwinds tape in reverse, recovering the newly-released node at each step. R holds each eliminated node's RHS frozen at the moment it was pivoted,
// since no later elimination step ever touches a row that has already left the front.
func backSubstitute(tape []record, R []float64, n int) []float64 {
	sk := make([]float64, n+1)
	for i := len(tape) - 1; i >= 0; i-- {
		rec := tape[i]
		lco := iabs(rec.colTags[rec.lpivco])
		var sum float64
		for l, ct := range rec.colTags {
			if l == rec.lpivco {
				continue
			}
			sum += rec.qq[l] * sk[iabs(ct)]
		}
		sk[lco] = R[rec.kro] - sum
	}
	return sk[1:]
}

func countNegative(tags []int) int {
	c := 0
	for _, t := range tags {
		if t < 0 {
			c++
		}
	}
	return c
}

func growCols(eq *[][]float64, width int) {
	for i := range *eq {
		for len((*eq)[i]) < width {
			(*eq)[i] = append((*eq)[i], 0)
		}
	}
}

func growRows(eq *[][]float64, height, width int) {
	for len(*eq) < height {
		*eq = append(*eq, make([]float64, width))
	}
}

func iabs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
