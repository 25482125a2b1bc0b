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

import "fmt"

// Source is a random source producing uniform numbers in [0,1).
// A *rand.Rand satisfies it; there is no process-wide default source.
type Source interface {
	Float64() float64
}

// Sample selects the symbol whose cumulative probability first reaches u.
// It returns -1 if the law cannot be sampled (e.g. all entries are zero).
func Sample(law Law, u float64) int {
	// Use Kahan's sum for summing values
	// in case we have a combination of very small
	// and very large values.
	sum := float64(0.0)
	c := float64(0.0)
	k := -1
	for j := 0; j < len(law); j++ {
		y := law[j] - c
		t := sum + y
		c = (t - sum) - y
		sum = t
		if u < sum {
			return j
		}
		// If the cumulative sum ends slightly below one, the last
		// non-zero entry is taken.
		if law[j] > 0.0 {
			k = j
		}
	}
	return k
}

// Draw samples a symbol from a law using one uniform number of src.
func Draw(src Source, law Law) (Symbol, error) {
	u := src.Float64()
	i := Sample(law, u)
	if i < 0 {
		return 0, fmt.Errorf("%w: cannot sample from %v", ErrMalformedLaw, law)
	}
	return Symbol(i), nil
}
