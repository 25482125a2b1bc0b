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

package stochastic

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// LawTolerance is the accepted deviation of a law's sum from one.
const LawTolerance = 1e-9

// Law is a probability vector indexed in alphabet order.
type Law []float64

// ValidateLaw checks that a law has one non-negative finite entry per
// symbol and sums to one within LawTolerance.
func ValidateLaw(a *Alphabet, law []float64) error {
	if len(law) != a.Size() {
		return fmt.Errorf("%w: law has %d entries, alphabet has %d symbols", ErrAlphabetMismatch, len(law), a.Size())
	}
	for i, p := range law {
		if math.IsNaN(p) || math.IsInf(p, 0) || p < 0.0 {
			return fmt.Errorf("%w: entry %v for symbol %v", ErrMalformedLaw, p, a.Label(Symbol(i)))
		}
	}
	sum := floats.Sum(law)
	if sum == 0.0 {
		return ErrZeroSumLaw
	}
	if math.Abs(sum-1.0) > LawTolerance {
		return fmt.Errorf("%w: sum is %v", ErrMalformedLaw, sum)
	}
	return nil
}

// NormalizeLaw divides non-negative weights by their sum. It is used for
// the uniform-random generation of trees and for collaborators that
// explicitly ask for normalization; validated inputs are never normalized.
func NormalizeLaw(weights []float64) (Law, error) {
	for _, w := range weights {
		if math.IsNaN(w) || math.IsInf(w, 0) || w < 0.0 {
			return nil, fmt.Errorf("%w: weight %v", ErrMalformedLaw, w)
		}
	}
	sum := floats.Sum(weights)
	if sum == 0.0 {
		return nil, ErrZeroSumLaw
	}
	law := make(Law, len(weights))
	copy(law, weights)
	floats.Scale(1.0/sum, law)
	return law, nil
}

// Clone returns a copy of the law.
func (l Law) Clone() Law {
	c := make(Law, len(l))
	copy(c, l)
	return c
}
