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

// Package simulator draws trajectories from a context tree of order K and
// an initial law. The first K symbols are drawn independently from the
// initial law; every following symbol is drawn from the law of the K most
// recent symbols.
package simulator

import (
	"fmt"

	"github.com/Fantom-foundation/Aida-Markov/stochastic"
	"github.com/Fantom-foundation/Aida-Markov/stochastic/contexttree"
)

// Generator produces the symbols of one trajectory lazily. A generator is
// not resumable; a new realization requires a new generator and a freshly
// seeded source.
type Generator struct {
	pi     stochastic.Law
	tree   *contexttree.Tree
	length int
	rg     stochastic.Source

	produced int
	window   stochastic.Context // K most recent symbols, oldest first
	current  stochastic.Symbol
	err      error
}

// New validates the configuration of a simulation run and returns a
// generator for a trajectory of the given length.
func New(a *stochastic.Alphabet, pi []float64, tree *contexttree.Tree, length int, rg stochastic.Source) (*Generator, error) {
	if tree == nil {
		return nil, fmt.Errorf("simulator: missing context tree")
	}
	if rg == nil {
		return nil, fmt.Errorf("simulator: missing random source")
	}
	if !tree.Alphabet().Equal(a) {
		return nil, fmt.Errorf("%w: tree is defined over %v, simulation over %v", stochastic.ErrAlphabetMismatch, tree.Alphabet(), a)
	}
	if err := stochastic.ValidateLaw(a, pi); err != nil {
		return nil, fmt.Errorf("initial law: %w", err)
	}
	k := tree.Order()
	if length < k {
		return nil, fmt.Errorf("%w: length %d, order %d", stochastic.ErrInsufficientLength, length, k)
	}
	law := make(stochastic.Law, len(pi))
	copy(law, pi)
	return &Generator{
		pi:     law,
		tree:   tree,
		length: length,
		rg:     rg,
		window: make(stochastic.Context, 0, k),
	}, nil
}

// Next draws the next symbol. It returns false once the trajectory is
// complete or an error occurred; see Error.
func (g *Generator) Next() bool {
	if g.err != nil || g.produced >= g.length {
		return false
	}
	k := g.tree.Order()

	var law stochastic.Law
	if g.produced < k {
		law = g.pi
	} else {
		var err error
		law, err = g.tree.Lookup(g.window)
		if err != nil {
			g.err = err
			return false
		}
	}

	s, err := stochastic.Draw(g.rg, law)
	if err != nil {
		g.err = fmt.Errorf("step %d: %w", g.produced, err)
		return false
	}

	// slide the window
	if len(g.window) == k {
		copy(g.window, g.window[1:])
		g.window[k-1] = s
	} else {
		g.window = append(g.window, s)
	}
	g.current = s
	g.produced++
	return true
}

// Value returns the most recently drawn symbol.
func (g *Generator) Value() stochastic.Symbol {
	return g.current
}

// Produced returns the number of symbols drawn so far.
func (g *Generator) Produced() int {
	return g.produced
}

// Error returns the error that stopped the generator, if any.
func (g *Generator) Error() error {
	return g.err
}

// Run simulates a trajectory of the given length. An unknown context
// in the tree is returned as is, so sparse trees fail with
// stochastic.ErrUnknownContext.
func Run(a *stochastic.Alphabet, pi []float64, tree *contexttree.Tree, length int, rg stochastic.Source) (*stochastic.Trajectory, error) {
	g, err := New(a, pi, tree, length, rg)
	if err != nil {
		return nil, err
	}
	symbols := make([]stochastic.Symbol, 0, length)
	for g.Next() {
		symbols = append(symbols, g.Value())
	}
	if err := g.Error(); err != nil {
		return nil, err
	}
	return stochastic.NewTrajectoryFromSymbols(a, symbols)
}
