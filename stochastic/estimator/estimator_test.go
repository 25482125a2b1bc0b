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

package estimator

import (
	"errors"
	"math"
	"math/rand"
	"strings"
	"testing"

	"github.com/Fantom-foundation/Aida-Markov/stochastic"
	"github.com/Fantom-foundation/Aida-Markov/stochastic/contexttree"
	"github.com/Fantom-foundation/Aida-Markov/stochastic/simulator"
)

const exampleSequence = "A,A,B,C,A,A,B,A,C,B,A,C,C,A,B"

func newExampleTrajectory(t *testing.T) *stochastic.Trajectory {
	a, err := stochastic.NewAlphabet("A", "B", "C")
	if err != nil {
		t.Fatalf("Expected an alphabet. Error: %v", err)
	}
	traj, err := stochastic.NewTrajectory(a, strings.Split(exampleSequence, ","))
	if err != nil {
		t.Fatalf("Expected a trajectory. Error: %v", err)
	}
	return traj
}

func mustContext(t *testing.T, a *stochastic.Alphabet, labels ...string) stochastic.Context {
	ctx, err := stochastic.ParseContext(a, labels)
	if err != nil {
		t.Fatalf("Expected a context. Error: %v", err)
	}
	return ctx
}

// TestEstimator_ExampleCounts checks the counts of the 15-symbol example
// sequence for order three.
func TestEstimator_ExampleCounts(t *testing.T) {
	traj := newExampleTrajectory(t)
	a := traj.Alphabet()
	res, err := Fit(traj, 3)
	if err != nil {
		t.Fatalf("Fit failed. Error: %v", err)
	}
	counts := res.Counts
	c := mustContext(t, a, "A", "A", "B")
	if n := counts.Transition(c, 2); n != 1 {
		t.Fatalf("Expected N((A,A,B),C) = 1. Got %v.", n)
	}
	if n := counts.Total(c); n != 2 {
		t.Fatalf("Expected N(A,A,B) = 2. Got %v.", n)
	}
	if n := counts.Total(mustContext(t, a, "B", "A", "C")); n != 2 {
		t.Fatalf("Expected N(B,A,C) = 2. Got %v.", n)
	}
	if n := counts.Total(mustContext(t, a, "C", "C", "C")); n != 0 {
		t.Fatalf("Expected unobserved context to have no count. Got %v.", n)
	}
	if counts.Len() != 10 || res.Samples != 12 {
		t.Fatalf("Expected 10 contexts and 12 windows. Got %v and %v.", counts.Len(), res.Samples)
	}

	// every total is the sum of its row
	for _, ctx := range counts.Contexts() {
		sum := uint64(0)
		for s := 0; s < a.Size(); s++ {
			sum += counts.Transition(ctx, stochastic.Symbol(s))
		}
		if sum != counts.Total(ctx) {
			t.Fatalf("Row of %v sums to %v, total is %v.", ctx.Format(a), sum, counts.Total(ctx))
		}
	}

	if want := 4 * math.Log(0.5); math.Abs(res.LogLikelihood-want) > 1e-12 {
		t.Fatalf("Expected log-likelihood %v. Got %v.", want, res.LogLikelihood)
	}
	if fp := counts.FreeParameters(); fp != 2 {
		t.Fatalf("Expected 2 free parameters. Got %v.", fp)
	}
}

// TestEstimator_FittedTree checks the relative frequencies of the fitted tree.
func TestEstimator_FittedTree(t *testing.T) {
	traj := newExampleTrajectory(t)
	for _, layout := range []contexttree.Layout{contexttree.Flat, contexttree.Nested} {
		res, err := FitLayout(traj, 3, layout)
		if err != nil {
			t.Fatalf("Fit failed. Error: %v", err)
		}
		if res.Tree.IsComplete() || res.Tree.Len() != 10 {
			t.Fatalf("Expected a sparse tree with 10 contexts. Got %v.", res.Tree.Len())
		}
		law, err := res.Tree.LookupLabels("A", "A", "B")
		if err != nil {
			t.Fatalf("Lookup failed. Error: %v", err)
		}
		if law[0] != 0.5 || law[1] != 0.0 || law[2] != 0.5 {
			t.Fatalf("Unexpected law %v.", law)
		}
		if _, err := res.Tree.LookupLabels("C", "C", "C"); !errors.Is(err, stochastic.ErrUnknownContext) {
			t.Fatalf("Expected ErrUnknownContext. Got %v.", err)
		}
	}

	res1, _ := Fit(traj, 1)
	res2, _ := Fit(traj, 2)
	if math.Abs(res1.LogLikelihood-(-13.621371043387194)) > 1e-9 {
		t.Fatalf("Unexpected log-likelihood of order 1: %v.", res1.LogLikelihood)
	}
	if math.Abs(res2.LogLikelihood-6*math.Log(0.5)) > 1e-9 {
		t.Fatalf("Unexpected log-likelihood of order 2: %v.", res2.LogLikelihood)
	}
}

// TestEstimator_Deterministic checks that fitting twice gives bit-identical results.
func TestEstimator_Deterministic(t *testing.T) {
	a, _ := stochastic.NewAlphabet("0", "1", "2", "3")
	rg := rand.New(rand.NewSource(999))
	tree, _ := contexttree.BuildUniformRandom(a, 2, rg, contexttree.Flat)
	traj, err := simulator.Run(a, []float64{0.25, 0.25, 0.25, 0.25}, tree, 5000, rg)
	if err != nil {
		t.Fatalf("Simulation failed. Error: %v", err)
	}
	for k := 1; k <= 4; k++ {
		x, err := Fit(traj, k)
		if err != nil {
			t.Fatalf("Fit failed. Error: %v", err)
		}
		y, _ := FitLayout(traj, k, contexttree.Nested)
		if math.Float64bits(x.LogLikelihood) != math.Float64bits(y.LogLikelihood) {
			t.Fatalf("Log-likelihoods differ: %v vs %v.", x.LogLikelihood, y.LogLikelihood)
		}
		if !x.Tree.Equal(y.Tree) {
			t.Fatalf("Fitted trees differ for order %v.", k)
		}
	}
}

// TestEstimator_ChunkedCounting checks that counts of disjoint ranges merge
// to the counts of the whole trajectory.
func TestEstimator_ChunkedCounting(t *testing.T) {
	a, _ := stochastic.NewAlphabet("A", "B", "C")
	rg := rand.New(rand.NewSource(42))
	tree, _ := contexttree.BuildUniformRandom(a, 3, rg, contexttree.Nested)
	traj, err := simulator.Run(a, []float64{0.2, 0.3, 0.5}, tree, 1001, rg)
	if err != nil {
		t.Fatalf("Simulation failed. Error: %v", err)
	}
	for k := 1; k <= 4; k++ {
		full, err := Count(traj, k)
		if err != nil {
			t.Fatalf("Counting failed. Error: %v", err)
		}
		merged, _ := NewCounts(a, k)
		for from := 0; from < traj.Len(); from += 97 {
			to := from + 97
			if to > traj.Len() {
				to = traj.Len()
			}
			chunk, err := CountRange(traj, k, from, to)
			if err != nil {
				t.Fatalf("Counting range [%v,%v) failed. Error: %v", from, to, err)
			}
			if err := merged.Merge(chunk); err != nil {
				t.Fatalf("Merge failed. Error: %v", err)
			}
		}
		if merged.Samples() != full.Samples() || merged.Len() != full.Len() {
			t.Fatalf("Merged counts differ: %v/%v windows, %v/%v contexts.",
				merged.Samples(), full.Samples(), merged.Len(), full.Len())
		}
		for _, ctx := range full.Contexts() {
			x, y := full.Row(ctx), merged.Row(ctx)
			for i := range x {
				if x[i] != y[i] {
					t.Fatalf("Counts of %v differ: %v vs %v.", ctx.Format(a), x, y)
				}
			}
		}
		if full.LogLikelihood() != merged.LogLikelihood() {
			t.Fatalf("Log-likelihood of merged counts differs.")
		}
	}
}

// TestEstimator_MergeMismatch checks that counts of different orders are not merged.
func TestEstimator_MergeMismatch(t *testing.T) {
	traj := newExampleTrajectory(t)
	x, _ := Count(traj, 1)
	y, _ := Count(traj, 2)
	if err := x.Merge(y); !errors.Is(err, stochastic.ErrInvalidOrder) {
		t.Fatalf("Expected ErrInvalidOrder. Got %v.", err)
	}
	b, _ := stochastic.NewAlphabet("A", "B")
	z, _ := NewCounts(b, 1)
	if err := x.Merge(z); !errors.Is(err, stochastic.ErrAlphabetMismatch) {
		t.Fatalf("Expected ErrAlphabetMismatch. Got %v.", err)
	}
}

// TestEstimator_InvalidInput checks the preconditions of a fit.
func TestEstimator_InvalidInput(t *testing.T) {
	traj := newExampleTrajectory(t)
	if _, err := Fit(traj, 0); !errors.Is(err, stochastic.ErrInvalidOrder) {
		t.Fatalf("Expected ErrInvalidOrder. Got %v.", err)
	}
	if _, err := Fit(traj, 15); !errors.Is(err, stochastic.ErrInsufficientData) {
		t.Fatalf("Expected ErrInsufficientData. Got %v.", err)
	}
	if _, err := Fit(traj, 14); err != nil {
		t.Fatalf("Expected a fit with a single window. Error: %v", err)
	}
	if _, err := CountRange(traj, 1, 5, 2); err == nil {
		t.Fatalf("Expected an error for an inverted range.")
	}
}

// TestEstimator_HighOrderFit checks that orders whose m^k contexts exceed
// the range of a context code still fit sparsely.
func TestEstimator_HighOrderFit(t *testing.T) {
	a, _ := stochastic.NewAlphabet("A", "B", "C")
	rg := rand.New(rand.NewSource(7))
	symbols := make([]stochastic.Symbol, 100)
	for i := range symbols {
		symbols[i] = stochastic.Symbol(rg.Intn(a.Size()))
	}
	traj, err := stochastic.NewTrajectoryFromSymbols(a, symbols)
	if err != nil {
		t.Fatalf("Expected a trajectory. Error: %v", err)
	}
	if _, err := stochastic.NumContexts(a, 40); err == nil {
		t.Fatalf("Expected 3^40 contexts to exceed the code range.")
	}

	flat, err := Fit(traj, 40)
	if err != nil {
		t.Fatalf("Fit failed. Error: %v", err)
	}
	if flat.Samples != 60 || flat.Counts.Samples() != 60 {
		t.Fatalf("Expected 60 windows. Got %v.", flat.Samples)
	}
	if got := flat.Counts.Total(traj.Window(40, 40)); got == 0 {
		t.Fatalf("Expected the first window to be counted.")
	}
	if flat.Tree.IsComplete() {
		t.Fatalf("Expected a sparse tree.")
	}

	nested, err := FitLayout(traj, 40, contexttree.Nested)
	if err != nil {
		t.Fatalf("Fit failed. Error: %v", err)
	}
	if !flat.Tree.Equal(nested.Tree) {
		t.Fatalf("Fitted trees differ between layouts.")
	}
	if math.Float64bits(flat.LogLikelihood) != math.Float64bits(nested.LogLikelihood) {
		t.Fatalf("Log-likelihoods differ: %v vs %v.", flat.LogLikelihood, nested.LogLikelihood)
	}

	// contexts are reported in ascending order
	contexts := flat.Counts.Contexts()
	for i := 1; i < len(contexts); i++ {
		if !(contexts[i-1].Key() < contexts[i].Key()) {
			t.Fatalf("Contexts are not ascending at %v.", i)
		}
	}
}

// TestEstimator_SimulateFromSparseFit checks that simulating from a fitted
// tree fails on the first unobserved context.
func TestEstimator_SimulateFromSparseFit(t *testing.T) {
	traj := newExampleTrajectory(t)
	res, err := Fit(traj, 3)
	if err != nil {
		t.Fatalf("Fit failed. Error: %v", err)
	}
	a := traj.Alphabet()

	// (C,C,C) never occurs in the example, seeding with C reaches it at once
	_, err = simulator.Run(a, []float64{0.0, 0.0, 1.0}, res.Tree, 10, rand.New(rand.NewSource(1)))
	if !errors.Is(err, stochastic.ErrUnknownContext) {
		t.Fatalf("Expected ErrUnknownContext. Got %v.", err)
	}
	if !stochastic.IsModelError(err) {
		t.Fatalf("Expected a model error.")
	}
}

// TestEstimator_Cache checks that cached fits are reused.
func TestEstimator_Cache(t *testing.T) {
	traj := newExampleTrajectory(t)
	cache, err := NewCache(traj, 2, contexttree.Flat)
	if err != nil {
		t.Fatalf("Failed to create cache. Error: %v", err)
	}
	x, _ := cache.Fit(1)
	y, _ := cache.Fit(1)
	if x != y || cache.Misses() != 1 {
		t.Fatalf("Expected a cached fit. Misses: %v.", cache.Misses())
	}
	_, _ = cache.Fit(2)
	_, _ = cache.Fit(3)
	_, _ = cache.Fit(1)
	if cache.Misses() != 4 {
		t.Fatalf("Expected the evicted fit to be recomputed. Misses: %v.", cache.Misses())
	}
	if _, err := cache.Fit(0); !errors.Is(err, stochastic.ErrInvalidOrder) {
		t.Fatalf("Expected ErrInvalidOrder. Got %v.", err)
	}
	if _, err := NewCache(traj, 0, contexttree.Flat); err == nil {
		t.Fatalf("Expected an error for an empty cache.")
	}
}
