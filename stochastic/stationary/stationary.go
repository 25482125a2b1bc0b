// Copyright 2024 Fantom Foundation
// This file is part of Aida Testing Infrastructure for Sonic
//
// Aida is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Aida is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with Aida. If not, see <http://www.gnu.org/licenses/>.

// Package stationary computes stationary distributions of context trees.
package stationary

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// estimationEps is the tolerance for an eigenvalue of one.
const estimationEps = 1e-9

// ComputeDistribution computes the stationary distribution of a
// row-stochastic matrix, i.e. the left eigenvector for eigenvalue one
// normalized to sum one.
func ComputeDistribution(M [][]float64) ([]float64, error) {
	a, err := newDense(M)
	if err != nil {
		return nil, err
	}
	n := len(M)

	var eig mat.Eigen
	if ok := eig.Factorize(a, mat.EigenLeft); !ok {
		return nil, fmt.Errorf("eigen-value decomposition failed")
	}

	// the eigenvalue of one is not necessarily the first
	k := -1
	for i, v := range eig.Values(nil) {
		if math.Abs(real(v)-1.0) < estimationEps && math.Abs(imag(v)) < estimationEps {
			k = i
		}
	}
	if k == -1 {
		return nil, fmt.Errorf("eigen-decomposition failed; no eigenvalue of one found")
	}

	var ev mat.CDense
	eig.LeftVectorsTo(&ev)

	total := complex128(0)
	for i := 0; i < n; i++ {
		total += ev.At(i, k)
	}
	if math.Abs(imag(total)) > estimationEps {
		return nil, fmt.Errorf("eigen-decomposition failed; eigen-vector is a complex number")
	}

	distribution := make([]float64, n)
	for i := range distribution {
		distribution[i] = math.Abs(real(ev.At(i, k)) / real(total))
	}
	return distribution, nil
}

// StepMatrix returns P^steps of a row-stochastic matrix P, i.e. entry (i,j)
// is the probability of reaching state j from state i in exactly steps
// transitions. Zero steps give the identity.
func StepMatrix(M [][]float64, steps int) ([][]float64, error) {
	if steps < 0 {
		return nil, fmt.Errorf("invalid number of steps %d", steps)
	}
	a, err := newDense(M)
	if err != nil {
		return nil, err
	}
	var p mat.Dense
	p.Pow(a, steps)
	n := len(M)
	res := make([][]float64, n)
	for i := range res {
		res[i] = mat.Row(nil, i, &p)
	}
	return res, nil
}

// newDense copies a square matrix into a dense matrix.
func newDense(M [][]float64) (*mat.Dense, error) {
	n := len(M)
	if n == 0 {
		return nil, fmt.Errorf("empty transition matrix")
	}
	a := mat.NewDense(n, n, nil)
	for i, row := range M {
		if len(row) != n {
			return nil, fmt.Errorf("transition matrix is not square; row %d has %d entries", i, len(row))
		}
		a.SetRow(i, row)
	}
	return a, nil
}
