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
	"fmt"
	"sort"
	"strings"
	"unicode"
)

// Symbol is the index of a label in its alphabet.
type Symbol int

// Alphabet is an immutable ordered set of at least two distinct labels.
type Alphabet struct {
	labels []string          // labels in alphabet order
	index  map[string]Symbol // label -> symbol
}

// IsLabelSeparator reports whether r separates labels in trajectory files
// and explicit context keys. Labels never contain a separator.
func IsLabelSeparator(r rune) bool {
	return r == ',' || r == ';' || unicode.IsSpace(r)
}

// NewAlphabet creates an alphabet from a list of distinct, non-empty labels
// without separators.
func NewAlphabet(labels ...string) (*Alphabet, error) {
	if len(labels) < 2 {
		return nil, fmt.Errorf("%w; got %d label(s)", ErrAlphabetTooSmall, len(labels))
	}
	a := &Alphabet{
		labels: make([]string, len(labels)),
		index:  make(map[string]Symbol, len(labels)),
	}
	for i, label := range labels {
		if label == "" || strings.IndexFunc(label, IsLabelSeparator) >= 0 {
			return nil, fmt.Errorf("%w %q; labels must be non-empty and free of commas, semicolons and white space", ErrInvalidLabel, label)
		}
		if _, ok := a.index[label]; ok {
			return nil, fmt.Errorf("%w %q", ErrDuplicateSymbol, label)
		}
		a.labels[i] = label
		a.index[label] = Symbol(i)
	}
	return a, nil
}

// InferAlphabet builds the alphabet of all distinct labels occurring in
// an observation, sorted lexicographically.
func InferAlphabet(observed []string) (*Alphabet, error) {
	seen := map[string]struct{}{}
	labels := []string{}
	for _, label := range observed {
		if _, ok := seen[label]; !ok {
			seen[label] = struct{}{}
			labels = append(labels, label)
		}
	}
	sort.Strings(labels)
	return NewAlphabet(labels...)
}

// Size returns the number of symbols m.
func (a *Alphabet) Size() int {
	return len(a.labels)
}

// Label returns the label of a symbol.
func (a *Alphabet) Label(s Symbol) string {
	return a.labels[s]
}

// Labels returns a copy of all labels in alphabet order.
func (a *Alphabet) Labels() []string {
	labels := make([]string, len(a.labels))
	copy(labels, a.labels)
	return labels
}

// Symbol returns the symbol of a label.
func (a *Alphabet) Symbol(label string) (Symbol, error) {
	s, ok := a.index[label]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrInvalidSymbol, label)
	}
	return s, nil
}

// Contains checks whether a symbol index is valid for the alphabet.
func (a *Alphabet) Contains(s Symbol) bool {
	return s >= 0 && int(s) < len(a.labels)
}

// Equal checks whether two alphabets have the same labels in the same order.
func (a *Alphabet) Equal(b *Alphabet) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil || len(a.labels) != len(b.labels) {
		return false
	}
	for i := range a.labels {
		if a.labels[i] != b.labels[i] {
			return false
		}
	}
	return true
}

// String renders the alphabet as {A,B,C}.
func (a *Alphabet) String() string {
	s := "{"
	for i, label := range a.labels {
		if i > 0 {
			s += ","
		}
		s += label
	}
	return s + "}"
}
