// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package linsolve dispatches the global linear solve by method name: dense LU with
// partial pivoting, CPU Jacobi, or an external collaborator sharing the Jacobi contract.
package linsolve

import (
	"github.com/cpmech/feacore/ferr"
	"github.com/cpmech/feacore/numeric"
)

// DefaultMaxIter and DefaultTol are the high-level dispatcher's Jacobi defaults; callers
// may override both via Options.
const (
	DefaultMaxIter = 10000
	DefaultTol     = 1e-3
)

// Options controls the iterative methods; zero value selects the defaults above.
type Options struct {
	MaxIter int
	Tol     float64
	X0      []float64 // initial guess for iterative methods; nil means all-zeros
}

func (o Options) withDefaults(n int) Options {
	if o.MaxIter == 0 {
		o.MaxIter = DefaultMaxIter
	}
	if o.Tol == 0 {
		o.Tol = DefaultTol
	}
	if o.X0 == nil {
		o.X0 = make([]float64, n)
	}
	return o
}

// ExternalSolver is the asynchronous boundary an out-of-process collaborator (e.g. a GPU kernel)
// must satisfy to be registered as a method under Dispatch.
// It shares the Jacobi contract: (A, b, x0, maxIter, tol) → (x, iters, converged).
type ExternalSolver interface {
	Solve(A [][]float64, b, x0 []float64, maxIter int, tol float64) (x []float64, iters int, converged bool, err error)
}

// solverFunc is the uniform shape every registered method is adapted to.
type solverFunc func(A [][]float64, b []float64, opts Options) (x []float64, iters int, converged bool, ferr *ferr.Error)

var methods = make(map[string]solverFunc)

func init() {
	methods["lusolve"] = func(A [][]float64, b []float64, opts Options) ([]float64, int, bool, *ferr.Error) {
		x, err := numeric.LUSolve(A, b)
		if err != nil {
			return nil, 0, false, err
		}
		return x, 1, true, nil
	}
	methods["jacobi"] = func(A [][]float64, b []float64, opts Options) ([]float64, int, bool, *ferr.Error) {
		opts = opts.withDefaults(len(b))
		x, iters, converged := numeric.JacobiIterate(A, b, opts.X0, opts.MaxIter, opts.Tol)
		return x, iters, converged, nil
	}
}

// RegisterExternal wires an out-of-process collaborator (e.g. "jacobi-gpu") under name, so
// Dispatch(name, ...) routes to it exactly like a built-in method.
func RegisterExternal(name string, solver ExternalSolver) {
	methods[name] = func(A [][]float64, b []float64, opts Options) ([]float64, int, bool, *ferr.Error) {
		opts = opts.withDefaults(len(b))
		x, iters, converged, err := solver.Solve(A, b, opts.X0, opts.MaxIter, opts.Tol)
		if err != nil {
			return nil, iters, false, ferr.New(ferr.DidNotConverge, "external solver %q failed: %v", name, err)
		}
		return x, iters, converged, nil
	}
}

// Dispatch solves A·x = b by the named method. Unknown method names fail with
// ConfigurationError rather than silently falling back to a default.
func Dispatch(method string, A [][]float64, b []float64, opts Options) (x []float64, iters int, converged bool, err *ferr.Error) {
	fn, ok := methods[method]
	if !ok {
		return nil, 0, false, ferr.New(ferr.ConfigurationError, "linsolve: unknown method %q", method)
	}
	return fn(A, b, opts)
}

// Registered reports whether method is currently wired, for callers that want to validate a
// solver-method configuration before running a simulation.
func Registered(method string) bool {
	_, ok := methods[method]
	return ok
}
