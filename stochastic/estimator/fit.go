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

// Package estimator computes maximum-likelihood context trees of an
// assumed order from an observed trajectory by counting transitions.
package estimator

import (
	"fmt"

	"github.com/Fantom-foundation/Aida-Markov/stochastic"
	"github.com/Fantom-foundation/Aida-Markov/stochastic/contexttree"
)

// Result is the maximum-likelihood fit of one order to one trajectory.
type Result struct {
	Order         int               // assumed order k
	LogLikelihood float64           // maximized log-likelihood (natural log)
	Tree          *contexttree.Tree // sparse tree of relative frequencies
	Counts        *Counts           // transition counts the fit is based on
	Samples       int               // number of counted windows, n-k
}

// Fit estimates a flat context tree of order k from a trajectory.
func Fit(traj *stochastic.Trajectory, k int) (*Result, error) {
	return FitLayout(traj, k, contexttree.Flat)
}

// FitLayout estimates a context tree of order k in the given layout.
func FitLayout(traj *stochastic.Trajectory, k int, layout contexttree.Layout) (*Result, error) {
	if err := stochastic.ValidateOrder(traj.Alphabet(), k); err != nil {
		return nil, err
	}
	if traj.Len() <= k {
		return nil, fmt.Errorf("%w: %d symbols observed, order %d needs more than %d", stochastic.ErrInsufficientData, traj.Len(), k, k)
	}
	counts, err := Count(traj, k)
	if err != nil {
		return nil, err
	}
	return FromCounts(counts, layout)
}

// FromCounts completes a fit from counts, e.g. merged from chunks.
func FromCounts(counts *Counts, layout contexttree.Layout) (*Result, error) {
	if counts.Samples() == 0 {
		return nil, fmt.Errorf("%w: no windows counted for order %d", stochastic.ErrInsufficientData, counts.Order())
	}
	tree, err := counts.Tree(layout)
	if err != nil {
		return nil, err
	}
	return &Result{
		Order:         counts.Order(),
		LogLikelihood: counts.LogLikelihood(),
		Tree:          tree,
		Counts:        counts,
		Samples:       int(counts.Samples()),
	}, nil
}
