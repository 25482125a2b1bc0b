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

// Layout selects the physical storage of a context tree.
type Layout int

const (
	Flat   Layout = iota // one map keyed by the encoded K-tuple
	Nested               // K levels of per-symbol children, oldest symbol outermost
)

// String returns the name of the layout.
func (l Layout) String() string {
	switch l {
	case Flat:
		return "flat"
	case Nested:
		return "nested"
	}
	return fmt.Sprintf("layout(%d)", int(l))
}

// ParseLayout converts a layout name into a layout.
func ParseLayout(name string) (Layout, error) {
	switch strings.ToLower(name) {
	case "flat", "":
		return Flat, nil
	case "nested", "tree":
		return Nested, nil
	}
	return Flat, fmt.Errorf("unknown layout %q; use flat or nested", name)
}

// store is the storage strategy behind a Tree. Contexts passed to a store
// have already been validated against the alphabet and order.
type store interface {
	get(ctx stochastic.Context) (stochastic.Law, bool)
	put(ctx stochastic.Context, law stochastic.Law) bool // false if ctx already exists
	size() int
	// walk visits all entries in ascending context-code order.
	walk(fn func(ctx stochastic.Context, law stochastic.Law) error) error
}

func newStore(layout Layout, a *stochastic.Alphabet, k int) store {
	if layout == Nested {
		return &nestedStore{alphabet: a, order: k, root: newNode(a.Size())}
	}
	return &flatStore{entries: map[stochastic.ContextKey]stochastic.Law{}}
}

// flatStore keeps all laws in a single map keyed by the encoded K-tuple.
type flatStore struct {
	entries map[stochastic.ContextKey]stochastic.Law
}

func (s *flatStore) get(ctx stochastic.Context) (stochastic.Law, bool) {
	law, ok := s.entries[ctx.Key()]
	return law, ok
}

func (s *flatStore) put(ctx stochastic.Context, law stochastic.Law) bool {
	code := ctx.Key()
	if _, ok := s.entries[code]; ok {
		return false
	}
	s.entries[code] = law
	return true
}

func (s *flatStore) size() int {
	return len(s.entries)
}

func (s *flatStore) walk(fn func(ctx stochastic.Context, law stochastic.Law) error) error {
	codes := make([]stochastic.ContextKey, 0, len(s.entries))
	for code := range s.entries {
		codes = append(codes, code)
	}
	sort.Slice(codes, func(i, j int) bool { return codes[i] < codes[j] })
	for _, code := range codes {
		if err := fn(code.Context(), s.entries[code]); err != nil {
			return err
		}
	}
	return nil
}

// node is a level of the nested layout. Inner nodes have children,
// leaves at depth K hold the law.
type node struct {
	children []*node
	law      stochastic.Law
}

func newNode(m int) *node {
	return &node{children: make([]*node, m)}
}

// nestedStore keeps the laws in a trie walked from the oldest symbol.
type nestedStore struct {
	alphabet *stochastic.Alphabet
	order    int
	root     *node
	n        int
}

func (s *nestedStore) get(ctx stochastic.Context) (stochastic.Law, bool) {
	n := s.root
	for _, sym := range ctx {
		n = n.children[sym]
		if n == nil {
			return nil, false
		}
	}
	return n.law, n.law != nil
}

func (s *nestedStore) put(ctx stochastic.Context, law stochastic.Law) bool {
	n := s.root
	for depth, sym := range ctx {
		if n.children[sym] == nil {
			if depth == len(ctx)-1 {
				n.children[sym] = &node{}
			} else {
				n.children[sym] = newNode(s.alphabet.Size())
			}
		}
		n = n.children[sym]
	}
	if n.law != nil {
		return false
	}
	n.law = law
	s.n++
	return true
}

func (s *nestedStore) size() int {
	return s.n
}

func (s *nestedStore) walk(fn func(ctx stochastic.Context, law stochastic.Law) error) error {
	path := make(stochastic.Context, 0, s.order)
	var visit func(n *node) error
	visit = func(n *node) error {
		if len(path) == s.order {
			ctx := make(stochastic.Context, len(path))
			copy(ctx, path)
			return fn(ctx, n.law)
		}
		for sym, child := range n.children {
			if child == nil {
				continue
			}
			path = append(path, stochastic.Symbol(sym))
			if err := visit(child); err != nil {
				return err
			}
			path = path[:len(path)-1]
		}
		return nil
	}
	return visit(s.root)
}
