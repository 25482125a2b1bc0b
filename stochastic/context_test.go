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
	"errors"
	"testing"
)

// TestContext_EncodeDecode checks whether number encoding/decoding of contexts works.
func TestContext_EncodeDecode(t *testing.T) {
	a, _ := NewAlphabet("A", "B", "C")
	k := 3
	n, err := NumContexts(a, k)
	if err != nil || n != 27 {
		t.Fatalf("Expected 27 contexts. Got %v (error: %v).", n, err)
	}
	for code := uint64(0); code < n; code++ {
		ctx := DecodeContext(a, code, k)
		if len(ctx) != k {
			t.Fatalf("Expected context of length %v. Got %v.", k, len(ctx))
		}
		back, err := EncodeContext(a, ctx)
		if err != nil {
			t.Fatalf("Failed to encode context. Error: %v", err)
		}
		if back != code {
			t.Fatalf("Encoding mismatch: %v != %v.", back, code)
		}
	}

	// the oldest symbol is the most significant digit
	ctx, err := ParseContext(a, []string{"B", "A", "A"})
	if err != nil {
		t.Fatalf("Failed to parse context. Error: %v", err)
	}
	if code, _ := EncodeContext(a, ctx); code != 9 {
		t.Fatalf("Expected code 9 for (B,A,A). Got %v.", code)
	}
	if ctx.Format(a) != "(B,A,A)" {
		t.Fatalf("Unexpected rendering %v.", ctx.Format(a))
	}
}

// TestContext_Shift checks that shifting a context appends the newest symbol.
func TestContext_Shift(t *testing.T) {
	a, _ := NewAlphabet("A", "B", "C")
	ctx, _ := ParseContext(a, []string{"A", "B", "C"})
	code, _ := EncodeContext(a, ctx)
	next := DecodeContext(a, ShiftContext(a, code, 3, 0), 3)
	want, _ := ParseContext(a, []string{"B", "C", "A"})
	if !next.Equal(want) {
		t.Fatalf("Expected %v. Got %v.", want.Format(a), next.Format(a))
	}

	// order one replaces the single symbol
	if got := ShiftContext(a, 2, 1, 1); got != 1 {
		t.Fatalf("Expected code 1. Got %v.", got)
	}
}

// TestContext_Key checks that keys round-trip and sort like context codes
// for orders beyond the range of a code.
func TestContext_Key(t *testing.T) {
	a, _ := NewAlphabet("A", "B", "C")
	k := 3
	n, _ := NumContexts(a, k)
	var prev ContextKey
	for code := uint64(0); code < n; code++ {
		ctx := DecodeContext(a, code, k)
		key := ctx.Key()
		if !key.Context().Equal(ctx) {
			t.Fatalf("Key of %v decodes to %v.", ctx.Format(a), key.Context().Format(a))
		}
		if code > 0 && !(prev < key) {
			t.Fatalf("Key of %v does not sort after its predecessor.", ctx.Format(a))
		}
		prev = key
	}

	long := make(Context, 64)
	long[63] = 2
	if got := long.Key().Context(); !got.Equal(long) {
		t.Fatalf("Key of an order 64 context does not round-trip.")
	}
}

// TestContext_Next checks the successor of a context in code order.
func TestContext_Next(t *testing.T) {
	a, _ := NewAlphabet("A", "B", "C")
	ctx, _ := ParseContext(a, []string{"A", "C", "C"})
	next, ok := NextContext(a, ctx)
	want, _ := ParseContext(a, []string{"B", "A", "A"})
	if !ok || !next.Equal(want) {
		t.Fatalf("Expected %v. Got %v.", want.Format(a), next.Format(a))
	}
	last, _ := ParseContext(a, []string{"C", "C", "C"})
	if _, ok := NextContext(a, last); ok {
		t.Fatalf("Expected no successor for %v.", last.Format(a))
	}
}

// TestContext_InvalidOrder checks the boundaries of the order.
func TestContext_InvalidOrder(t *testing.T) {
	a, _ := NewAlphabet("A", "B", "C")
	if err := ValidateOrder(a, 0); !errors.Is(err, ErrInvalidOrder) {
		t.Fatalf("Expected ErrInvalidOrder for order zero. Got %v.", err)
	}
	if err := ValidateOrder(a, -1); !errors.Is(err, ErrInvalidOrder) {
		t.Fatalf("Expected ErrInvalidOrder for a negative order. Got %v.", err)
	}
	if err := ValidateOrder(a, 64); err != nil {
		t.Fatalf("Unexpected error for a high order. Got %v.", err)
	}
	if _, err := NumContexts(a, 64); !errors.Is(err, ErrInvalidOrder) {
		t.Fatalf("Expected ErrInvalidOrder for an order without encodable contexts. Got %v.", err)
	}
	if _, err := ParseContext(a, []string{"A", "X"}); !errors.Is(err, ErrInvalidSymbol) {
		t.Fatalf("Expected ErrInvalidSymbol. Got %v.", err)
	}
}

// TestTrajectory_New checks the conversion of labels into trajectories.
func TestTrajectory_New(t *testing.T) {
	a, _ := NewAlphabet("A", "B", "C")
	traj, err := NewTrajectory(a, []string{"A", "C", "C", "B"})
	if err != nil {
		t.Fatalf("Expected a trajectory. Error: %v", err)
	}
	if traj.Len() != 4 || traj.At(1) != 2 {
		t.Fatalf("Unexpected trajectory %v.", traj.Labels())
	}
	window := traj.Window(3, 2)
	if window[0] != 2 || window[1] != 2 {
		t.Fatalf("Unexpected window %v.", window.Format(a))
	}
	freq := traj.Frequencies()
	if freq[0] != 1 || freq[1] != 1 || freq[2] != 2 {
		t.Fatalf("Unexpected frequencies %v.", freq)
	}
	if _, err := NewTrajectory(a, []string{"A", "D"}); !errors.Is(err, ErrInvalidSymbol) {
		t.Fatalf("Expected ErrInvalidSymbol. Got %v.", err)
	}
	if _, err := NewTrajectoryFromSymbols(a, []Symbol{0, 3}); !errors.Is(err, ErrInvalidSymbol) {
		t.Fatalf("Expected ErrInvalidSymbol. Got %v.", err)
	}
}
