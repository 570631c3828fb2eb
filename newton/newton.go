// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package newton implements the Newton-Raphson driver and its continuation wrapper over an
// activation parameter α: an iteration-count field, a tolerance pair, and an optional verbose
// trace, driving the (J, R) ← assemble(x, α) contract every feacore model exposes.
package newton

import (
	"github.com/cpmech/feacore/ferr"
	"github.com/cpmech/feacore/linsolve"
	"github.com/cpmech/feacore/numeric"
	"github.com/cpmech/gosl/io"
)

// Assembler produces the Jacobian and residual at the current solution x and activation level α
// (unused by models without continuation), applying boundary conditions internally.
type Assembler interface {
	Assemble(x []float64, alpha float64) (J [][]float64, R []float64, err *ferr.Error)
}

// Options controls the Newton loop and which linear-solve method drives each iteration.
type Options struct {
	MaxIter      int     // default 100
	Tol          float64 // default 1e-4
	DivergeAt    float64 // default 1e2
	LinearMethod string  // default "lusolve"
	Verbose      bool
}

func (o Options) withDefaults() Options {
	if o.MaxIter == 0 {
		o.MaxIter = 100
	}
	if o.Tol == 0 {
		o.Tol = 1e-4
	}
	if o.DivergeAt == 0 {
		o.DivergeAt = 1e2
	}
	if o.LinearMethod == "" {
		o.LinearMethod = "lusolve"
	}
	return o
}

// Result reports what happened at the end of a Newton run.
type Result struct {
	X         []float64
	Iters     int
	Converged bool
}

// Solve runs the Newton loop at a single (fixed) activation level alpha, starting from
// x0. x0 is not modified; the returned X is a fresh slice.
func Solve(a Assembler, x0 []float64, alpha float64, opts Options) (Result, *ferr.Error) {
	opts = opts.withDefaults()
	x := make([]float64, len(x0))
	copy(x, x0)
	dx := make([]float64, len(x0))

	for it := 1; it <= opts.MaxIter; it++ {
		for i := range x {
			x[i] += dx[i]
		}

		J, R, err := a.Assemble(x, alpha)
		if err != nil {
			return Result{}, err
		}

		next, _, converged, lerr := linsolve.Dispatch(opts.LinearMethod, J, R, linsolve.Options{})
		if lerr != nil {
			return Result{}, lerr
		}
		if !converged && opts.LinearMethod != "lusolve" {
			return Result{}, ferr.New(ferr.DidNotConverge, "newton: linear solve did not converge at iteration %d", it)
		}
		dx = next

		residual := numeric.Norm(dx)
		if opts.Verbose {
			io.Pf("newton: it=%d alpha=%g |dx|=%g\n", it, alpha, residual)
		}
		if residual <= opts.Tol {
			for i := range x {
				x[i] += dx[i]
			}
			return Result{X: x, Iters: it, Converged: true}, nil
		}
		if residual > opts.DivergeAt {
			return Result{}, ferr.New(ferr.Diverged, "newton: diverged at iteration %d with |dx|=%g", it, residual)
		}
	}
	return Result{}, ferr.New(ferr.DidNotConverge, "newton: did not converge within %d iterations", opts.MaxIter)
}

// Continuation runs the continuation loop: for α in {0, 1/N, …, 1} with N=5, Newton is run to
// convergence and x is carried over as the next initial guess. The caller observes only the final x.
func Continuation(a Assembler, x0 []float64, opts Options) (Result, *ferr.Error) {
	const N = 5
	x := x0
	var result Result
	for k := 0; k <= N; k++ {
		alpha := float64(k) / float64(N)
		res, err := Solve(a, x, alpha, opts)
		if err != nil {
			return Result{}, err
		}
		x = res.X
		result = res
	}
	return result, nil
}
