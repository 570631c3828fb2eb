// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package linsolve

import "testing"

func TestDispatchLU(tst *testing.T) {
	A := [][]float64{{2, 0}, {0, 2}}
	b := []float64{4, 6}
	x, iters, converged, err := Dispatch("lusolve", A, b, Options{})
	if err != nil {
		tst.Fatalf("unexpected error: %v", err)
	}
	if !converged || iters != 1 {
		tst.Fatalf("expected a single converged LU pass, got iters=%d converged=%v", iters, converged)
	}
	if x[0] != 2 || x[1] != 3 {
		tst.Fatalf("unexpected solution: %v", x)
	}
}

func TestDispatchJacobi(tst *testing.T) {
	A := [][]float64{{4, 1}, {1, 3}}
	b := []float64{5, 4}
	x, _, converged, err := Dispatch("jacobi", A, b, Options{MaxIter: 100, Tol: 1e-8})
	if err != nil {
		tst.Fatalf("unexpected error: %v", err)
	}
	if !converged {
		tst.Fatalf("expected Jacobi to converge on a diagonally-dominant system")
	}
	if d := x[0] - 1; d > 1e-4 || d < -1e-4 {
		tst.Fatalf("unexpected x0: %g", x[0])
	}
	if d := x[1] - 1; d > 1e-4 || d < -1e-4 {
		tst.Fatalf("unexpected x1: %g", x[1])
	}
}

func TestDispatchUnknownMethod(tst *testing.T) {
	_, _, _, err := Dispatch("nope", nil, nil, Options{})
	if err == nil {
		tst.Fatalf("expected a ConfigurationError for an unknown method")
	}
}

func TestRegisteredBuiltins(tst *testing.T) {
	if !Registered("lusolve") || !Registered("jacobi") {
		tst.Fatalf("expected built-in methods to be registered")
	}
	if Registered("jacobi-gpu") {
		tst.Fatalf("jacobi-gpu must not be registered until an external collaborator calls RegisterExternal")
	}
}
