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
	"encoding/binary"
	"fmt"
	"math"
	"strings"
)

// Context is the tuple of the K most recent symbols, oldest first.
type Context []Symbol

// Equal checks whether two contexts match position by position.
func (c Context) Equal(d Context) bool {
	if len(c) != len(d) {
		return false
	}
	for i := range c {
		if c[i] != d[i] {
			return false
		}
	}
	return true
}

// Labels converts a context into its labels.
func (c Context) Labels(a *Alphabet) []string {
	labels := make([]string, len(c))
	for i, s := range c {
		labels[i] = a.Label(s)
	}
	return labels
}

// Format renders a context as (A,A,B).
func (c Context) Format(a *Alphabet) string {
	return "(" + strings.Join(c.Labels(a), ",") + ")"
}

// ContextKey is a comparable encoding of a context of any order. Keys of
// contexts of the same order sort like their context codes.
type ContextKey string

// keyWidth is the number of bytes per symbol in a ContextKey.
const keyWidth = 4

// Key encodes the context into a map key.
func (c Context) Key() ContextKey {
	buf := make([]byte, keyWidth*len(c))
	for i, s := range c {
		binary.BigEndian.PutUint32(buf[keyWidth*i:], uint32(s))
	}
	return ContextKey(buf)
}

// Context decodes the key back into its context.
func (k ContextKey) Context() Context {
	ctx := make(Context, len(k)/keyWidth)
	for i := range ctx {
		ctx[i] = Symbol(binary.BigEndian.Uint32([]byte(k[keyWidth*i : keyWidth*(i+1)])))
	}
	return ctx
}

// ValidateOrder checks that k is at least one. Sparse trees and counts
// accept any such order; use NumContexts where all m^k contexts have to
// be enumerated.
func ValidateOrder(a *Alphabet, k int) error {
	if k < 1 {
		return fmt.Errorf("%w %d; order must be at least one", ErrInvalidOrder, k)
	}
	return nil
}

// NextContext returns the context following ctx in ascending code order
// and false if ctx is the largest context of its order.
func NextContext(a *Alphabet, ctx Context) (Context, bool) {
	next := make(Context, len(ctx))
	copy(next, ctx)
	for i := len(next) - 1; i >= 0; i-- {
		if int(next[i])+1 < a.Size() {
			next[i]++
			return next, true
		}
		next[i] = 0
	}
	return nil, false
}

// NumContexts returns m^k, the number of contexts of order k. It fails if
// the contexts cannot be enumerated by a context code.
func NumContexts(a *Alphabet, k int) (uint64, error) {
	if err := ValidateOrder(a, k); err != nil {
		return 0, err
	}
	m := uint64(a.Size())
	n := uint64(1)
	for i := 0; i < k; i++ {
		if n > math.MaxInt64/m {
			return 0, fmt.Errorf("%w %d; %d^%d contexts cannot be enumerated", ErrInvalidOrder, k, m, k)
		}
		n *= m
	}
	return n, nil
}

// ParseContext converts labels into a context of the alphabet.
func ParseContext(a *Alphabet, labels []string) (Context, error) {
	ctx := make(Context, len(labels))
	for i, label := range labels {
		s, err := a.Symbol(label)
		if err != nil {
			return nil, fmt.Errorf("context (%v): %w", strings.Join(labels, ","), err)
		}
		ctx[i] = s
	}
	return ctx, nil
}

// EncodeContext computes the code of a context with Horner's scheme where
// the oldest symbol is the most significant digit in base m.
func EncodeContext(a *Alphabet, ctx Context) (uint64, error) {
	m := uint64(a.Size())
	code := uint64(0)
	for _, s := range ctx {
		if !a.Contains(s) {
			return 0, fmt.Errorf("%w: index %d", ErrInvalidSymbol, s)
		}
		code = code*m + uint64(s)
	}
	return code, nil
}

// DecodeContext converts a context code of order k back into its context.
func DecodeContext(a *Alphabet, code uint64, k int) Context {
	m := uint64(a.Size())
	ctx := make(Context, k)
	for i := k - 1; i >= 0; i-- {
		ctx[i] = Symbol(code % m)
		code /= m
	}
	return ctx
}

// ShiftContext computes the code of the context that follows ctx once
// symbol s is observed, i.e., (x2,...,xk,s) for ctx=(x1,...,xk).
func ShiftContext(a *Alphabet, code uint64, k int, s Symbol) uint64 {
	m := uint64(a.Size())
	// drop the most significant (oldest) digit
	high := uint64(1)
	for i := 1; i < k; i++ {
		high *= m
	}
	return (code%high)*m + uint64(s)
}
