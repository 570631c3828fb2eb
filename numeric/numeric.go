// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package numeric implements the small numerical utilities every solver layer in feacore is
// built on: the Euclidean norm, dense LU factorisation/solve, and Jacobi iteration.
package numeric

import (
	"math"

	"github.com/cpmech/feacore/ferr"
	"github.com/cpmech/gosl/la"
)

// Norm returns the Euclidean (L2) norm of v.
func Norm(v []float64) float64 {
	return la.VecNorm(v)
}

// LUSolve solves J·x = R with dense Gaussian elimination and partial pivoting, for a single RHS.
// The factorisation works on a copy: neither J nor R is modified. Fails with SingularMatrix if a
// pivot falls below 1e-10 even after row interchange.
func LUSolve(J [][]float64, R []float64) ([]float64, *ferr.Error) {
	n := len(R)
	A := la.MatAlloc(n, n)
	la.MatCopy(A, 1, J)
	b := make([]float64, n)
	copy(b, R)

	for k := 0; k < n; k++ {
		// partial pivoting: find largest-magnitude entry in column k, rows k..n-1
		piv := k
		best := math.Abs(A[k][k])
		for i := k + 1; i < n; i++ {
			if math.Abs(A[i][k]) > best {
				best = math.Abs(A[i][k])
				piv = i
			}
		}
		if best < 1e-10 {
			return nil, ferr.AtRowCol(ferr.SingularMatrix, k, k, "LU pivot too small: |piv|=%g", best)
		}
		if piv != k {
			A[k], A[piv] = A[piv], A[k]
			b[k], b[piv] = b[piv], b[k]
		}

		// eliminate below the pivot
		for i := k + 1; i < n; i++ {
			factor := A[i][k] / A[k][k]
			if factor == 0 {
				continue
			}
			for j := k; j < n; j++ {
				A[i][j] -= factor * A[k][j]
			}
			b[i] -= factor * b[k]
		}
	}

	// back-substitution
	x := make([]float64, n)
	for i := n - 1; i >= 0; i-- {
		sum := b[i]
		for j := i + 1; j < n; j++ {
			sum -= A[i][j] * x[j]
		}
		x[i] = sum / A[i][i]
	}
	return x, nil
}

// JacobiIterate runs the Jacobi method: x^{k+1}_i = (b_i - Σ_{j≠i} A_ij x^k_j) / A_ii, stopping
// when max_i |x^{k+1}_i - x^k_i| < tol. Returns the final iterate, the iteration count,
// and whether it converged within maxIter.
func JacobiIterate(A [][]float64, b []float64, x0 []float64, maxIter int, tol float64) (x []float64, iters int, converged bool) {
	n := len(b)
	x = make([]float64, n)
	copy(x, x0)
	next := make([]float64, n)
	for k := 0; k < maxIter; k++ {
		maxDelta := 0.0
		for i := 0; i < n; i++ {
			sum := b[i]
			for j := 0; j < n; j++ {
				if j != i {
					sum -= A[i][j] * x[j]
				}
			}
			next[i] = sum / A[i][i]
			if d := math.Abs(next[i] - x[i]); d > maxDelta {
				maxDelta = d
			}
		}
		copy(x, next)
		iters = k + 1
		if maxDelta < tol {
			return x, iters, true
		}
	}
	return x, iters, false
}
