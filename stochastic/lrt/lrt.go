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

// Package lrt compares context-tree models of orders k and k+1 fitted to
// the same trajectory with a likelihood-ratio test against the chi-square
// distribution.
package lrt

import (
	"fmt"
	"math"

	"github.com/Fantom-foundation/Aida-Markov/stochastic"
	"github.com/Fantom-foundation/Aida-Markov/stochastic/contexttree"
	"github.com/Fantom-foundation/Aida-Markov/stochastic/estimator"
	"gonum.org/v1/gonum/stat/distuv"
)

// NegativeStatisticNote is attached to results with LR < 0.
const NegativeStatisticNote = "likelihood ratio is negative; the chi-square tail at a negative point is 1"

// Result of comparing order k with order k+1.
type Result struct {
	Order             int        // k
	AltOrder          int        // k+1
	LogLikelihood     float64    // l_k
	AltLogLikelihood  float64    // l_{k+1}
	LR                float64    // 2 (l_{k+1} - l_k)
	DF                float64    // degrees of freedom
	Convention        Convention // how DF was obtained
	PValue            float64    // upper chi-square tail at LR
	NegativeStatistic bool       // LR < 0
	Note              string
}

// Significant checks whether order k is rejected in favour of k+1 at level alpha.
func (r *Result) Significant(alpha float64) bool {
	return r.PValue < alpha
}

// PValue returns the upper tail 1 - CDF(lr) of the chi-square distribution
// with df degrees of freedom.
func PValue(lr float64, df float64) (float64, error) {
	if err := checkDegreesOfFreedom(df); err != nil {
		return 0, err
	}
	if math.IsNaN(lr) {
		return 0, fmt.Errorf("likelihood ratio is not a number")
	}
	// the CDF is zero on (-inf, 0]
	if lr <= 0 {
		return 1, nil
	}
	return distuv.ChiSquared{K: df, Src: nil}.Survival(lr), nil
}

// Compare fits orders k and k+1 to a trajectory and compares them.
func Compare(traj *stochastic.Trajectory, k int, opts Options) (*Result, error) {
	fitK, err := estimator.Fit(traj, k)
	if err != nil {
		return nil, err
	}
	fitK1, err := estimator.Fit(traj, k+1)
	if err != nil {
		return nil, err
	}
	return CompareFits(fitK, fitK1, opts)
}

// CompareFits compares two fits of neighbouring orders of the same trajectory.
func CompareFits(fitK *estimator.Result, fitK1 *estimator.Result, opts Options) (*Result, error) {
	if fitK1.Order != fitK.Order+1 {
		return nil, fmt.Errorf("%w: cannot compare order %d with order %d", stochastic.ErrInvalidOrder, fitK.Order, fitK1.Order)
	}
	if !fitK.Counts.Alphabet().Equal(fitK1.Counts.Alphabet()) {
		return nil, fmt.Errorf("%w: fits use different alphabets", stochastic.ErrAlphabetMismatch)
	}
	if fitK.Samples != fitK1.Samples+1 {
		return nil, fmt.Errorf("fits are not from the same trajectory: %d and %d windows", fitK.Samples, fitK1.Samples)
	}
	df, err := DegreesOfFreedom(fitK, fitK1, opts)
	if err != nil {
		return nil, err
	}
	lr := 2 * (fitK1.LogLikelihood - fitK.LogLikelihood)
	p, err := PValue(lr, df)
	if err != nil {
		return nil, err
	}
	res := &Result{
		Order:            fitK.Order,
		AltOrder:         fitK1.Order,
		LogLikelihood:    fitK.LogLikelihood,
		AltLogLikelihood: fitK1.LogLikelihood,
		LR:               lr,
		DF:               df,
		Convention:       opts.Convention,
		PValue:           p,
	}
	if lr < 0 {
		res.NegativeStatistic = true
		res.Note = NegativeStatisticNote
	}
	return res, nil
}

// Sweep compares every pair of neighbouring orders k, k+1 for k = 1 up to
// maxOrder-1. Each order is fitted once.
func Sweep(traj *stochastic.Trajectory, maxOrder int, opts Options) ([]*Result, error) {
	cache, err := estimator.NewCache(traj, estimator.DefaultCacheSize, contexttree.Flat)
	if err != nil {
		return nil, err
	}
	return SweepCached(cache, maxOrder, opts)
}

// SweepCached is Sweep on the trajectory of a fit cache.
func SweepCached(cache *estimator.Cache, maxOrder int, opts Options) ([]*Result, error) {
	if maxOrder < 2 {
		return nil, fmt.Errorf("%w %d; a sweep needs a maximum order of at least two", stochastic.ErrInvalidOrder, maxOrder)
	}
	results := make([]*Result, 0, maxOrder-1)
	for k := 1; k < maxOrder; k++ {
		fitK, err := cache.Fit(k)
		if err != nil {
			return nil, err
		}
		fitK1, err := cache.Fit(k + 1)
		if err != nil {
			return nil, err
		}
		res, err := CompareFits(fitK, fitK1, opts)
		if err != nil {
			return nil, fmt.Errorf("order %d against %d: %w", k, k+1, err)
		}
		results = append(results, res)
	}
	return results, nil
}

// SelectOrder returns the smallest order whose comparison with the next
// order is not significant at level alpha. If every step is significant,
// the largest compared order is returned.
func SelectOrder(results []*Result, alpha float64) (int, error) {
	if len(results) == 0 {
		return 0, fmt.Errorf("no comparisons to select an order from")
	}
	if !(alpha > 0 && alpha < 1) {
		return 0, fmt.Errorf("significance level %v is not in (0,1)", alpha)
	}
	for _, r := range results {
		if !r.Significant(alpha) {
			return r.Order, nil
		}
	}
	return results[len(results)-1].AltOrder, nil
}
