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

// Package contexttree maps contexts of a fixed order K to the law of the
// next symbol. A tree is complete if every one of the m^K contexts has an
// entry (trees for simulation) and sparse otherwise (estimated trees).
package contexttree

import (
	"errors"
	"fmt"

	"github.com/Fantom-foundation/Aida-Markov/stochastic"
)

// Tree is a context tree of order K over an alphabet. It is immutable
// once built; laws are copied on the way in and on the way out.
type Tree struct {
	alphabet *stochastic.Alphabet
	order    int
	layout   Layout
	store    store
}

// newTree creates an empty tree with a validated order.
func newTree(a *stochastic.Alphabet, k int, layout Layout) (*Tree, error) {
	if err := stochastic.ValidateOrder(a, k); err != nil {
		return nil, err
	}
	if layout != Flat && layout != Nested {
		return nil, fmt.Errorf("unknown layout %v", layout)
	}
	return &Tree{
		alphabet: a,
		order:    k,
		layout:   layout,
		store:    newStore(layout, a, k),
	}, nil
}

// Alphabet returns the alphabet of the tree.
func (t *Tree) Alphabet() *stochastic.Alphabet {
	return t.alphabet
}

// Order returns the order K.
func (t *Tree) Order() int {
	return t.order
}

// Layout returns the physical layout.
func (t *Tree) Layout() Layout {
	return t.layout
}

// Len returns the number of contexts with an entry.
func (t *Tree) Len() int {
	return t.store.size()
}

// IsComplete checks whether all m^K contexts have an entry.
func (t *Tree) IsComplete() bool {
	n, err := stochastic.NumContexts(t.alphabet, t.order)
	return err == nil && uint64(t.store.size()) == n
}

// checkContext validates length and symbols of a context.
func (t *Tree) checkContext(ctx stochastic.Context) error {
	if len(ctx) != t.order {
		return fmt.Errorf("%w: context of length %d used with a tree of order %d", stochastic.ErrInvalidOrder, len(ctx), t.order)
	}
	for _, s := range ctx {
		if !t.alphabet.Contains(s) {
			return fmt.Errorf("%w: index %d", stochastic.ErrInvalidSymbol, s)
		}
	}
	return nil
}

// Lookup returns the law of an exact context match. A context without an
// entry fails with ErrUnknownContext; no default law is substituted.
func (t *Tree) Lookup(ctx stochastic.Context) (stochastic.Law, error) {
	if err := t.checkContext(ctx); err != nil {
		return nil, err
	}
	law, ok := t.store.get(ctx)
	if !ok {
		return nil, fmt.Errorf("%w %v", stochastic.ErrUnknownContext, ctx.Format(t.alphabet))
	}
	return law.Clone(), nil
}

// LookupLabels is Lookup for a context given by its labels.
func (t *Tree) LookupLabels(labels ...string) (stochastic.Law, error) {
	ctx, err := stochastic.ParseContext(t.alphabet, labels)
	if err != nil {
		return nil, err
	}
	return t.Lookup(ctx)
}

// Contains checks whether a context has an entry.
func (t *Tree) Contains(ctx stochastic.Context) bool {
	if t.checkContext(ctx) != nil {
		return false
	}
	_, ok := t.store.get(ctx)
	return ok
}

// Walk visits all entries in ascending context order. The law passed to fn
// must not be modified.
func (t *Tree) Walk(fn func(ctx stochastic.Context, law stochastic.Law) error) error {
	return t.store.walk(fn)
}

// Contexts returns all contexts with an entry in ascending order.
func (t *Tree) Contexts() []stochastic.Context {
	contexts := make([]stochastic.Context, 0, t.store.size())
	_ = t.store.walk(func(ctx stochastic.Context, _ stochastic.Law) error {
		contexts = append(contexts, ctx)
		return nil
	})
	return contexts
}

// Flatten returns the tree in the flat layout.
func (t *Tree) Flatten() *Tree {
	return t.relayout(Flat)
}

// Nest returns the tree in the nested layout.
func (t *Tree) Nest() *Tree {
	return t.relayout(Nested)
}

// relayout copies all entries into a fresh store of the given layout.
func (t *Tree) relayout(layout Layout) *Tree {
	c := &Tree{
		alphabet: t.alphabet,
		order:    t.order,
		layout:   layout,
		store:    newStore(layout, t.alphabet, t.order),
	}
	_ = t.store.walk(func(ctx stochastic.Context, law stochastic.Law) error {
		c.store.put(ctx, law.Clone())
		return nil
	})
	return c
}

// Equal checks whether two trees describe the same mapping, independent
// of their layouts.
func (t *Tree) Equal(o *Tree) bool {
	if t == o {
		return true
	}
	if t == nil || o == nil {
		return false
	}
	if !t.alphabet.Equal(o.alphabet) || t.order != o.order || t.Len() != o.Len() {
		return false
	}
	err := t.store.walk(func(ctx stochastic.Context, law stochastic.Law) error {
		other, ok := o.store.get(ctx)
		if !ok || len(other) != len(law) {
			return errMismatch
		}
		for i := range law {
			if law[i] != other[i] {
				return errMismatch
			}
		}
		return nil
	})
	return err == nil
}

var errMismatch = errors.New("contexttree: mismatch")
