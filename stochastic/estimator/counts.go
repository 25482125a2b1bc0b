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
	"fmt"
	"math"
	"sort"

	"github.com/Fantom-foundation/Aida-Markov/stochastic"
	"github.com/Fantom-foundation/Aida-Markov/stochastic/contexttree"
)

// Counts holds the transition counts of a trajectory for an order k. Only
// observed contexts have an entry.
type Counts struct {
	alphabet    *stochastic.Alphabet
	order       int
	transitions map[stochastic.ContextKey][]uint64 // context -> next-symbol frequencies
	totals      map[stochastic.ContextKey]uint64   // context -> number of occurrences
	samples     uint64              // number of counted windows
}

// NewCounts creates empty transition counts.
func NewCounts(a *stochastic.Alphabet, k int) (*Counts, error) {
	if err := stochastic.ValidateOrder(a, k); err != nil {
		return nil, err
	}
	return &Counts{
		alphabet:    a,
		order:       k,
		transitions: map[stochastic.ContextKey][]uint64{},
		totals:      map[stochastic.ContextKey]uint64{},
	}, nil
}

// Count counts all windows of length k+1 of a trajectory.
func Count(traj *stochastic.Trajectory, k int) (*Counts, error) {
	return CountRange(traj, k, k, traj.Len())
}

// CountRange counts the windows whose predicted symbol lies in [from, to).
// A window reads the k symbols before its target, so ranges may be counted
// independently and merged as long as their targets do not overlap.
// Targets before position k have no complete context and are skipped.
func CountRange(traj *stochastic.Trajectory, k int, from int, to int) (*Counts, error) {
	c, err := NewCounts(traj.Alphabet(), k)
	if err != nil {
		return nil, err
	}
	if from < 0 || to > traj.Len() || from > to {
		return nil, fmt.Errorf("invalid range [%d,%d) for trajectory of length %d", from, to, traj.Len())
	}
	if from < k {
		from = k
	}
	if from >= to {
		return c, nil
	}

	for t := from; t < to; t++ {
		c.add(traj.Window(t, k).Key(), traj.At(t))
	}
	return c, nil
}

// add counts one occurrence of symbol s after the context with the given key.
func (c *Counts) add(code stochastic.ContextKey, s stochastic.Symbol) {
	row, ok := c.transitions[code]
	if !ok {
		row = make([]uint64, c.alphabet.Size())
		c.transitions[code] = row
	}
	row[s]++
	c.totals[code]++
	c.samples++
}

// Merge adds the counts of another range of the same trajectory.
func (c *Counts) Merge(o *Counts) error {
	if !c.alphabet.Equal(o.alphabet) {
		return fmt.Errorf("%w: cannot merge counts over %v into counts over %v", stochastic.ErrAlphabetMismatch, o.alphabet, c.alphabet)
	}
	if c.order != o.order {
		return fmt.Errorf("%w: cannot merge counts of order %d into counts of order %d", stochastic.ErrInvalidOrder, o.order, c.order)
	}
	for code, row := range o.transitions {
		dst, ok := c.transitions[code]
		if !ok {
			dst = make([]uint64, len(row))
			c.transitions[code] = dst
		}
		for i, n := range row {
			dst[i] += n
		}
		c.totals[code] += o.totals[code]
	}
	c.samples += o.samples
	return nil
}

// Alphabet returns the alphabet of the counts.
func (c *Counts) Alphabet() *stochastic.Alphabet {
	return c.alphabet
}

// Order returns the order k.
func (c *Counts) Order() int {
	return c.order
}

// Samples returns the number of counted windows.
func (c *Counts) Samples() uint64 {
	return c.samples
}

// Len returns the number of observed contexts.
func (c *Counts) Len() int {
	return len(c.totals)
}

// Transition returns N(ctx, s), the number of times s followed ctx.
func (c *Counts) Transition(ctx stochastic.Context, s stochastic.Symbol) uint64 {
	code, ok := c.code(ctx)
	if !ok || !c.alphabet.Contains(s) {
		return 0
	}
	row, ok := c.transitions[code]
	if !ok {
		return 0
	}
	return row[s]
}

// Total returns N(ctx), the number of times ctx was followed by any symbol.
func (c *Counts) Total(ctx stochastic.Context) uint64 {
	code, ok := c.code(ctx)
	if !ok {
		return 0
	}
	return c.totals[code]
}

// Row returns a copy of the next-symbol frequencies of a context.
func (c *Counts) Row(ctx stochastic.Context) []uint64 {
	row := make([]uint64, c.alphabet.Size())
	if code, ok := c.code(ctx); ok {
		copy(row, c.transitions[code])
	}
	return row
}

func (c *Counts) code(ctx stochastic.Context) (stochastic.ContextKey, bool) {
	if len(ctx) != c.order {
		return "", false
	}
	for _, s := range ctx {
		if !c.alphabet.Contains(s) {
			return "", false
		}
	}
	return ctx.Key(), true
}

// codes returns the keys of the observed contexts in ascending order.
func (c *Counts) codes() []stochastic.ContextKey {
	codes := make([]stochastic.ContextKey, 0, len(c.totals))
	for code := range c.totals {
		codes = append(codes, code)
	}
	sort.Slice(codes, func(i, j int) bool { return codes[i] < codes[j] })
	return codes
}

// Contexts returns the observed contexts in ascending order.
func (c *Counts) Contexts() []stochastic.Context {
	codes := c.codes()
	contexts := make([]stochastic.Context, len(codes))
	for i, code := range codes {
		contexts[i] = code.Context()
	}
	return contexts
}

// FreeParameters returns the number of free parameters of the fitted
// model, i.e. for every observed context the number of observed next
// symbols minus one.
func (c *Counts) FreeParameters() int {
	n := 0
	for _, row := range c.transitions {
		nonzero := 0
		for _, f := range row {
			if f > 0 {
				nonzero++
			}
		}
		n += nonzero - 1
	}
	return n
}

// LogLikelihood returns the maximized log-likelihood
// sum_c sum_a N(c,a) ln(N(c,a)/N(c)). Zero counts are skipped and contexts
// are summed in ascending order so the result is bit-reproducible.
func (c *Counts) LogLikelihood() float64 {
	ll := 0.0
	for _, code := range c.codes() {
		total := float64(c.totals[code])
		for _, f := range c.transitions[code] {
			if f == 0 {
				continue
			}
			n := float64(f)
			ll += n * math.Log(n/total)
		}
	}
	return ll
}

// Tree returns the sparse tree of relative frequencies N(c,a)/N(c).
func (c *Counts) Tree(layout contexttree.Layout) (*contexttree.Tree, error) {
	b, err := contexttree.NewBuilder(c.alphabet, c.order, layout)
	if err != nil {
		return nil, err
	}
	for _, code := range c.codes() {
		total := float64(c.totals[code])
		law := make([]float64, c.alphabet.Size())
		for i, f := range c.transitions[code] {
			law[i] = float64(f) / total
		}
		if err := b.Add(code.Context(), law); err != nil {
			return nil, err
		}
	}
	return b.Build(), nil
}
