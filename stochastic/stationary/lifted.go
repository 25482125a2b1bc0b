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

package stationary

import (
	"fmt"

	"github.com/Fantom-foundation/Aida-Markov/stochastic"
	"github.com/Fantom-foundation/Aida-Markov/stochastic/contexttree"
)

// MaxLiftedStates bounds the number of states m^K of a lifted chain.
const MaxLiftedStates = 1 << 10

// TransitionMatrix lifts a complete tree of order K to a first-order chain
// over its m^K contexts: context (x1,...,xK) moves to (x2,...,xK,a) with
// probability p(a|x1,...,xK). States are indexed by context code.
func TransitionMatrix(tree *contexttree.Tree) ([][]float64, error) {
	a := tree.Alphabet()
	k := tree.Order()
	n, err := stochastic.NumContexts(a, k)
	if err != nil {
		return nil, err
	}
	if n > MaxLiftedStates {
		return nil, fmt.Errorf("%w %d; lifted chain has %d states (limit %d)", stochastic.ErrInvalidOrder, k, n, MaxLiftedStates)
	}
	M := make([][]float64, n)
	for code := uint64(0); code < n; code++ {
		law, err := tree.Lookup(stochastic.DecodeContext(a, code, k))
		if err != nil {
			return nil, err
		}
		M[code] = make([]float64, n)
		for s, p := range law {
			M[code][stochastic.ShiftContext(a, code, k, stochastic.Symbol(s))] += p
		}
	}
	return M, nil
}

// ContextDistribution returns the stationary distribution over the
// contexts of a complete tree, indexed by context code.
func ContextDistribution(tree *contexttree.Tree) ([]float64, error) {
	M, err := TransitionMatrix(tree)
	if err != nil {
		return nil, err
	}
	return ComputeDistribution(M)
}

// SymbolDistribution returns the stationary distribution of single
// symbols, the marginal of the newest symbol of a context.
func SymbolDistribution(tree *contexttree.Tree) ([]float64, error) {
	pi, err := ContextDistribution(tree)
	if err != nil {
		return nil, err
	}
	m := uint64(tree.Alphabet().Size())
	dist := make([]float64, m)
	for code, p := range pi {
		dist[uint64(code)%m] += p
	}
	return dist, nil
}

// SymbolStepMatrix returns for every context of a complete tree, indexed
// by context code, the law of the symbol emitted after the given number of
// steps. Step one is the law of the tree itself.
func SymbolStepMatrix(tree *contexttree.Tree, steps int) ([][]float64, error) {
	if steps < 1 {
		return nil, fmt.Errorf("invalid number of steps %d; at least one step is required", steps)
	}
	M, err := TransitionMatrix(tree)
	if err != nil {
		return nil, err
	}
	P, err := StepMatrix(M, steps)
	if err != nil {
		return nil, err
	}
	m := tree.Alphabet().Size()
	res := make([][]float64, len(P))
	for code, row := range P {
		res[code] = make([]float64, m)
		// the newest symbol of the reached context is the emitted one
		for to, p := range row {
			res[code][to%m] += p
		}
	}
	return res, nil
}
