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

package contexttree

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Fantom-foundation/Aida-Markov/stochastic"
)

// MaxCompleteContexts bounds the number of contexts of a complete tree.
const MaxCompleteContexts = 1 << 24

// Entry is a context given by its labels (oldest first) and its law.
type Entry struct {
	Context []string  `json:"context" yaml:"context" validate:"required"`
	Law     []float64 `json:"law" yaml:"law" validate:"required"`
}

// Builder adds validated entries to a tree.
type Builder struct {
	tree *Tree
}

// NewBuilder creates a builder for a tree of order k.
func NewBuilder(a *stochastic.Alphabet, k int, layout Layout) (*Builder, error) {
	t, err := newTree(a, k, layout)
	if err != nil {
		return nil, err
	}
	return &Builder{tree: t}, nil
}

// Add validates a law and inserts it for a context.
func (b *Builder) Add(ctx stochastic.Context, law []float64) error {
	if err := b.tree.checkContext(ctx); err != nil {
		return err
	}
	if err := stochastic.ValidateLaw(b.tree.alphabet, law); err != nil {
		return fmt.Errorf("context %v: %w", ctx.Format(b.tree.alphabet), err)
	}
	c := make(stochastic.Law, len(law))
	copy(c, law)
	if !b.tree.store.put(ctx, c) {
		return fmt.Errorf("%w %v", stochastic.ErrDuplicateContext, ctx.Format(b.tree.alphabet))
	}
	return nil
}

// Build returns the tree. The builder must not be used afterwards.
func (b *Builder) Build() *Tree {
	t := b.tree
	b.tree = nil
	return t
}

// BuildExplicit creates a tree from explicitly given laws. Every context
// must have K labels of the alphabet and every law must be a valid
// probability law. The mapping may be partial.
func BuildExplicit(a *stochastic.Alphabet, k int, entries []Entry, layout Layout) (*Tree, error) {
	b, err := NewBuilder(a, k, layout)
	if err != nil {
		return nil, err
	}
	for _, e := range entries {
		if len(e.Context) != k {
			return nil, fmt.Errorf("%w: context (%v) has %d symbols, expected %d",
				stochastic.ErrInvalidOrder, strings.Join(e.Context, ","), len(e.Context), k)
		}
		ctx, err := stochastic.ParseContext(a, e.Context)
		if err != nil {
			return nil, err
		}
		if err := b.Add(ctx, e.Law); err != nil {
			return nil, err
		}
	}
	return b.Build(), nil
}

// ContextSeparator joins the labels of a context in the keys of BuildExplicitMap.
const ContextSeparator = ","

// BuildExplicitMap is BuildExplicit for laws keyed by the labels of their
// context joined with ContextSeparator, e.g. "A,A,B".
func BuildExplicitMap(a *stochastic.Alphabet, k int, laws map[string][]float64, layout Layout) (*Tree, error) {
	keys := make([]string, 0, len(laws))
	for key := range laws {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	entries := make([]Entry, len(keys))
	for i, key := range keys {
		labels := strings.Split(key, ContextSeparator)
		for j := range labels {
			labels[j] = strings.TrimSpace(labels[j])
		}
		entries[i] = Entry{Context: labels, Law: laws[key]}
	}
	return BuildExplicit(a, k, entries, layout)
}

// BuildUniformRandom creates a complete tree whose laws are m uniform
// draws from rg normalized to one. Contexts are visited in ascending code
// order, hence the tree is reproducible for a seeded source.
func BuildUniformRandom(a *stochastic.Alphabet, k int, rg stochastic.Source, layout Layout) (*Tree, error) {
	return buildComplete(a, k, layout, func() (stochastic.Law, error) {
		weights := make([]float64, a.Size())
		for i := range weights {
			weights[i] = rg.Float64()
		}
		return stochastic.NormalizeLaw(weights)
	})
}

// BuildUniform creates a complete tree where every law is uniform.
func BuildUniform(a *stochastic.Alphabet, k int, layout Layout) (*Tree, error) {
	return buildComplete(a, k, layout, func() (stochastic.Law, error) {
		law := make(stochastic.Law, a.Size())
		for i := range law {
			law[i] = 1.0 / float64(a.Size())
		}
		return law, nil
	})
}

// buildComplete fills all m^K contexts with laws produced by next.
func buildComplete(a *stochastic.Alphabet, k int, layout Layout, next func() (stochastic.Law, error)) (*Tree, error) {
	n, err := stochastic.NumContexts(a, k)
	if err != nil {
		return nil, err
	}
	if n > MaxCompleteContexts {
		return nil, fmt.Errorf("%w %d; a complete tree would have %d contexts (limit %d)", stochastic.ErrInvalidOrder, k, n, MaxCompleteContexts)
	}
	t, err := newTree(a, k, layout)
	if err != nil {
		return nil, err
	}
	for code := uint64(0); code < n; code++ {
		law, err := next()
		if err != nil {
			return nil, err
		}
		t.store.put(stochastic.DecodeContext(a, code, k), law)
	}
	return t, nil
}
