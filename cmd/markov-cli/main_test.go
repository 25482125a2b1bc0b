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

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/Fantom-foundation/Aida-Markov/stochastic"
	"github.com/Fantom-foundation/Aida-Markov/stochastic/modelfile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testModel = `
alphabet: [A, B, C]
order: 1
initial: [0.5, 0.3, 0.2]
transitions:
  - context: [A]
    law: [0.7, 0.2, 0.1]
  - context: [B]
    law: [0.3, 0.4, 0.3]
  - context: [C]
    law: [0.2, 0.3, 0.5]
`

// runMarkov runs the markov app and returns its output.
func runMarkov(t *testing.T, args ...string) (string, error) {
	var out bytes.Buffer
	app := initMarkovApp()
	app.Writer = &out
	err := app.Run(append([]string{"markov"}, args...))
	return out.String(), err
}

func TestMarkovCli_SimulateAndEstimate(t *testing.T) {
	dir := t.TempDir()
	model := filepath.Join(dir, "model.yaml")
	require.NoError(t, os.WriteFile(model, []byte(testModel), 0644))

	traj := filepath.Join(dir, "trajectory.txt.gz")
	_, err := runMarkov(t, "simulate", "--model", model, "--length", "3000", "--random-seed", "17", "--output", traj, "--log", "critical")
	require.NoError(t, err)

	fitted := filepath.Join(dir, "fit.json")
	out, err := runMarkov(t, "estimate", "--order", "1", "--alphabet", "A,B,C", "--output", fitted, "--log", "critical", traj)
	require.NoError(t, err)
	assert.Contains(t, out, "Context")
	assert.Contains(t, out, "(A)")

	m, err := modelfile.Load(fitted)
	require.NoError(t, err)
	chain, err := m.Build(nil)
	require.NoError(t, err)
	require.True(t, chain.Tree.IsComplete())

	law, err := chain.Tree.LookupLabels("A")
	require.NoError(t, err)
	assert.InDelta(t, 0.7, law[0], 0.05)
	assert.InDelta(t, 0.2, law[1], 0.05)
	assert.InDelta(t, 0.1, law[2], 0.05)

	// the same seed reproduces the trajectory
	first, err := runMarkov(t, "simulate", "--model", model, "--length", "50", "--random-seed", "3", "--log", "critical")
	require.NoError(t, err)
	second, err := runMarkov(t, "simulate", "--model", model, "--length", "50", "--random-seed", "3", "--log", "critical")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestMarkovCli_OrderTests(t *testing.T) {
	dir := t.TempDir()
	traj := filepath.Join(dir, "trajectory.txt")
	_, err := runMarkov(t, "simulate", "--uniform-random", "--alphabet", "A,B,C", "--order", "1",
		"--length", "5000", "--random-seed", "5", "--output", traj, "--log", "critical")
	require.NoError(t, err)

	_, err = runMarkov(t, "order-test", "--log", "critical", traj)
	assert.ErrorIs(t, err, stochastic.ErrInvalidDegreesOfFreedom, "a convention must be chosen")

	report := filepath.Join(dir, "report.txt")
	out, err := runMarkov(t, "order-test", "--df-convention", "nominal", "--output", report, "--log", "critical", traj)
	require.NoError(t, err)
	assert.Contains(t, out, "p-value")
	written, err := os.ReadFile(report)
	require.NoError(t, err)
	assert.Contains(t, string(written), "p-value")

	out, err = runMarkov(t, "select-order", "--df-convention", "nested", "--max-order", "3", "--alpha", "0.001", "--log", "critical", traj)
	require.NoError(t, err)
	assert.Contains(t, out, "Selected order: 1")

	_, err = runMarkov(t, "select-order", "--df-convention", "nested", "--max-order", "1", "--log", "critical", traj)
	assert.ErrorIs(t, err, stochastic.ErrInvalidOrder)
}

func TestMarkovCli_Stationary(t *testing.T) {
	out, err := runMarkov(t, "stationary", "--uniform-random", "--alphabet", "A,B", "--order", "2", "--random-seed", "1", "--log", "critical")
	require.NoError(t, err)
	assert.Contains(t, out, "Symbol")
	assert.Contains(t, out, "(A,B)")

	_, err = runMarkov(t, "stationary", "--log", "critical")
	assert.Error(t, err, "a chain is required")
}

func TestMarkovCli_StationarySteps(t *testing.T) {
	dir := t.TempDir()
	model := filepath.Join(dir, "model.yaml")
	require.NoError(t, os.WriteFile(model, []byte(testModel), 0644))

	out, err := runMarkov(t, "stationary", "--model", model, "--steps", "2", "--log", "critical")
	require.NoError(t, err)
	assert.Contains(t, out, "after 2 steps")
	// A reaches A with 0.7*0.7 + 0.2*0.3 + 0.1*0.2 in two steps
	assert.Contains(t, out, "0.570000")

	report := filepath.Join(dir, "stationary.txt")
	out, err = runMarkov(t, "stationary", "--model", model, "--steps", "2", "--quiet", "--output", report, "--log", "critical")
	require.NoError(t, err)
	assert.Empty(t, out)
	written, err := os.ReadFile(report)
	require.NoError(t, err)
	assert.Contains(t, string(written), "after 2 steps")

	_, err = runMarkov(t, "stationary", "--model", model, "--steps", "-1", "--log", "critical")
	assert.Error(t, err)
}

func TestMarkovCli_SparseModel(t *testing.T) {
	dir := t.TempDir()
	model := filepath.Join(dir, "sparse.yaml")
	require.NoError(t, os.WriteFile(model, []byte(`
alphabet: [A, B]
order: 1
initial: [0, 1]
transitions:
  - context: [A]
    law: [0.5, 0.5]
`), 0644))

	_, err := runMarkov(t, "simulate", "--model", model, "--length", "10", "--random-seed", "1", "--log", "critical")
	assert.ErrorIs(t, err, stochastic.ErrUnknownContext)
}
