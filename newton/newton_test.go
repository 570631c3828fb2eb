// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package newton

import (
	"math"
	"testing"

	"github.com/cpmech/feacore/ferr"
)

// linearAssembler reproduces a linear system A·x = b as a Newton residual R = b - A·x, J = A,
// so a single Newton step should land on the exact solution.
type linearAssembler struct {
	A [][]float64
	b []float64
}

func (o linearAssembler) Assemble(x []float64, alpha float64) ([][]float64, []float64, *ferr.Error) {
	R := make([]float64, len(o.b))
	for i := range R {
		sum := o.b[i]
		for j := range x {
			sum -= o.A[i][j] * x[j]
		}
		R[i] = sum
	}
	return o.A, R, nil
}

func TestSolveConvergesInOneStep(tst *testing.T) {
	a := linearAssembler{
		A: [][]float64{{2, 0}, {0, 2}},
		b: []float64{4, 6},
	}
	res, err := Solve(a, []float64{0, 0}, 0, Options{})
	if err != nil {
		tst.Fatalf("unexpected error: %v", err)
	}
	if !res.Converged {
		tst.Fatalf("expected convergence")
	}
	if math.Abs(res.X[0]-2) > 1e-9 || math.Abs(res.X[1]-3) > 1e-9 {
		tst.Fatalf("unexpected solution: %v", res.X)
	}
}

func TestSolveDiverges(tst *testing.T) {
	a := linearAssembler{
		A: [][]float64{{1e-6, 0}, {0, 1e-6}},
		b: []float64{1e3, 1e3},
	}
	_, err := Solve(a, []float64{0, 0}, 0, Options{MaxIter: 5})
	if err == nil {
		tst.Fatalf("expected a Diverged error for a huge first step")
	}
	if err.Kind.String() != "Diverged" {
		tst.Fatalf("expected Diverged kind, got %v", err.Kind)
	}
}

// alphaTrackingAssembler records every alpha value Continuation drives it with.
type alphaTrackingAssembler struct {
	A     [][]float64
	seen  []float64
	bBase float64
}

func (o *alphaTrackingAssembler) Assemble(x []float64, alpha float64) ([][]float64, []float64, *ferr.Error) {
	o.seen = append(o.seen, alpha)
	b := o.bBase * alpha
	R := []float64{b - o.A[0][0]*x[0]}
	return o.A, R, nil
}

func TestContinuationSweepsAlpha(tst *testing.T) {
	a := &alphaTrackingAssembler{A: [][]float64{{2}}, bBase: 10}
	res, err := Continuation(a, []float64{0}, Options{})
	if err != nil {
		tst.Fatalf("unexpected error: %v", err)
	}
	want := []float64{0, 0.2, 0.4, 0.6, 0.8, 1.0}
	// each Newton run assembles at least once per level, so compare the distinct levels in order
	var levels []float64
	for _, s := range a.seen {
		if len(levels) == 0 || s != levels[len(levels)-1] {
			levels = append(levels, s)
		}
	}
	if len(levels) != len(want) {
		tst.Fatalf("expected %d distinct alpha levels, got %v", len(want), levels)
	}
	for i, w := range want {
		if math.Abs(levels[i]-w) > 1e-12 {
			tst.Fatalf("alpha[%d]: expected %g, got %g", i, w, levels[i])
		}
	}
	if math.Abs(res.X[0]-5) > 1e-6 {
		tst.Fatalf("expected final x=5 at alpha=1, got %v", res.X)
	}
}
