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

// Package modelfile reads and writes descriptions of context-tree chains
// as YAML or JSON files.
//
// A model file names the alphabet, the order, the initial law and either
// explicit transition laws per context or random: true for a tree of
// uniformly drawn laws:
//
//	alphabet: [A, B, C]
//	order: 1
//	layout: nested
//	initial: [0.5, 0.3, 0.2]
//	transitions:
//	  - context: [A]
//	    law: [0.7, 0.2, 0.1]
//	  ...
package modelfile

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/Fantom-foundation/Aida-Markov/stochastic"
	"github.com/Fantom-foundation/Aida-Markov/stochastic/contexttree"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Format of a model file.
type Format int

const (
	YAML Format = iota
	JSON
)

// Model is the file representation of a chain.
type Model struct {
	Alphabet    []string            `json:"alphabet" yaml:"alphabet" validate:"required"`
	Order       int                 `json:"order" yaml:"order"`
	Layout      string              `json:"layout,omitempty" yaml:"layout,omitempty" validate:"omitempty,oneof=flat nested"`
	Initial     []float64           `json:"initial" yaml:"initial" validate:"required"`
	Random      bool                `json:"random,omitempty" yaml:"random,omitempty"`
	Transitions []contexttree.Entry `json:"transitions,omitempty" yaml:"transitions,omitempty" validate:"required_unless=Random true,dive"`
}

// Chain is a validated model ready for simulation.
type Chain struct {
	Alphabet *stochastic.Alphabet
	Initial  stochastic.Law
	Tree     *contexttree.Tree
}

var modelValidate = validator.New()

// FormatOf derives the format of a file from its extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return YAML, nil
	case ".json":
		return JSON, nil
	}
	return YAML, fmt.Errorf("unknown model file format %q; use .yaml, .yml or .json", filepath.Ext(path))
}

// Load reads and structurally validates a model file.
func Load(path string) (*Model, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	m, err := Decode(f, format)
	if err != nil {
		return nil, fmt.Errorf("cannot read model file %v; %w", path, err)
	}
	return m, nil
}

// Decode reads and structurally validates a model. Unknown fields are rejected.
func Decode(r io.Reader, format Format) (*Model, error) {
	m := new(Model)
	switch format {
	case YAML:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		if err := dec.Decode(m); err != nil {
			return nil, err
		}
	case JSON:
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		if err := dec.Decode(m); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unknown model format %d", format)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

// NewModel describes a chain by its explicit laws.
func NewModel(initial []float64, tree *contexttree.Tree) *Model {
	a := tree.Alphabet()
	m := &Model{
		Alphabet: a.Labels(),
		Order:    tree.Order(),
		Layout:   tree.Layout().String(),
		Initial:  append([]float64(nil), initial...),
	}
	_ = tree.Walk(func(ctx stochastic.Context, law stochastic.Law) error {
		m.Transitions = append(m.Transitions, contexttree.Entry{
			Context: ctx.Labels(a),
			Law:     law.Clone(),
		})
		return nil
	})
	return m
}

// Save writes a model in the format given by the file extension.
func (m *Model) Save(path string) error {
	format, err := FormatOf(path)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := m.Encode(f, format); err != nil {
		f.Close()
		return fmt.Errorf("cannot write model file %v; %w", path, err)
	}
	return f.Close()
}

// Encode writes a model in the given format.
func (m *Model) Encode(w io.Writer, format Format) error {
	switch format {
	case YAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(m); err != nil {
			return err
		}
		return enc.Close()
	case JSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(m)
	}
	return fmt.Errorf("unknown model format %d", format)
}

// Validate checks the structure of a model. The content (alphabet,
// laws, order) is checked when the chain is built.
func (m *Model) Validate() error {
	return modelValidate.Struct(m)
}

// Build creates the chain of a model. rg is only used by random models.
func (m *Model) Build(rg stochastic.Source) (*Chain, error) {
	a, err := stochastic.NewAlphabet(m.Alphabet...)
	if err != nil {
		return nil, err
	}
	if err := stochastic.ValidateLaw(a, m.Initial); err != nil {
		return nil, fmt.Errorf("initial law: %w", err)
	}
	layout, err := contexttree.ParseLayout(m.Layout)
	if err != nil {
		return nil, err
	}

	var tree *contexttree.Tree
	if m.Random {
		if rg == nil {
			return nil, fmt.Errorf("random model needs a random source")
		}
		tree, err = contexttree.BuildUniformRandom(a, m.Order, rg, layout)
	} else {
		tree, err = contexttree.BuildExplicit(a, m.Order, m.Transitions, layout)
	}
	if err != nil {
		return nil, err
	}
	initial := make(stochastic.Law, len(m.Initial))
	copy(initial, m.Initial)
	return &Chain{Alphabet: a, Initial: initial, Tree: tree}, nil
}

// MissingContext returns the smallest context without a law, if any.
// Simulating a chain with a missing context fails once it is reached.
func (c *Chain) MissingContext() (stochastic.Context, bool) {
	if c.Tree.IsComplete() {
		return nil, false
	}
	// contexts are walked in ascending order, so the first gap is the answer
	candidate := make(stochastic.Context, c.Tree.Order())
	for _, ctx := range c.Tree.Contexts() {
		if !ctx.Equal(candidate) {
			return candidate, true
		}
		next, ok := stochastic.NextContext(c.Alphabet, candidate)
		if !ok {
			return nil, false
		}
		candidate = next
	}
	return candidate, true
}
