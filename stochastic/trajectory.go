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
)

// Trajectory is an immutable sequence of symbols over an alphabet.
type Trajectory struct {
	alphabet *Alphabet
	symbols  []Symbol
}

// NewTrajectory converts observed labels into a trajectory.
func NewTrajectory(a *Alphabet, labels []string) (*Trajectory, error) {
	symbols := make([]Symbol, len(labels))
	for i, label := range labels {
		s, err := a.Symbol(label)
		if err != nil {
			return nil, fmt.Errorf("position %d: %w", i, err)
		}
		symbols[i] = s
	}
	return &Trajectory{alphabet: a, symbols: symbols}, nil
}

// NewTrajectoryFromSymbols creates a trajectory from symbol indices. The
// slice is copied.
func NewTrajectoryFromSymbols(a *Alphabet, symbols []Symbol) (*Trajectory, error) {
	for i, s := range symbols {
		if !a.Contains(s) {
			return nil, fmt.Errorf("position %d: %w: index %d", i, ErrInvalidSymbol, s)
		}
	}
	copied := make([]Symbol, len(symbols))
	copy(copied, symbols)
	return &Trajectory{alphabet: a, symbols: copied}, nil
}

// Alphabet returns the alphabet of the trajectory.
func (t *Trajectory) Alphabet() *Alphabet {
	return t.alphabet
}

// Len returns the number of symbols.
func (t *Trajectory) Len() int {
	return len(t.symbols)
}

// At returns the symbol at position i.
func (t *Trajectory) At(i int) Symbol {
	return t.symbols[i]
}

// Window returns the context of order k preceding position i, i.e.,
// (x[i-k], ..., x[i-1]). The result shares no memory with the trajectory.
func (t *Trajectory) Window(i int, k int) Context {
	ctx := make(Context, k)
	copy(ctx, t.symbols[i-k:i])
	return ctx
}

// Symbols returns a copy of the symbols.
func (t *Trajectory) Symbols() []Symbol {
	symbols := make([]Symbol, len(t.symbols))
	copy(symbols, t.symbols)
	return symbols
}

// Labels returns the labels of the trajectory for display.
func (t *Trajectory) Labels() []string {
	labels := make([]string, len(t.symbols))
	for i, s := range t.symbols {
		labels[i] = t.alphabet.Label(s)
	}
	return labels
}

// Frequencies counts the occurrences of each symbol.
func (t *Trajectory) Frequencies() []uint64 {
	freq := make([]uint64, t.alphabet.Size())
	for _, s := range t.symbols {
		freq[s]++
	}
	return freq
}
