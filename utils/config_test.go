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

package utils

import (
	"errors"
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/Fantom-foundation/Aida-Markov/logger"
	"github.com/Fantom-foundation/Aida-Markov/stochastic"
	"github.com/Fantom-foundation/Aida-Markov/stochastic/contexttree"
	"github.com/Fantom-foundation/Aida-Markov/stochastic/lrt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
	"go.uber.org/mock/gomock"
)

// prepareMockCliContext creates a cli context for a command using all
// markov flags. The flags given in set are marked as set by the user.
func prepareMockCliContext(t *testing.T, set map[string]string, args ...string) *cli.Context {
	flagSet := flag.NewFlagSet("utils_config_test", 0)
	flagSet.Float64(AlphaFlag.Name, AlphaFlag.Value, AlphaFlag.Usage)
	flagSet.String(AlphabetFlag.Name, "", AlphabetFlag.Usage)
	flagSet.Float64(DegreesOfFreedomFlag.Name, 0, DegreesOfFreedomFlag.Usage)
	flagSet.String(DfConventionFlag.Name, "", DfConventionFlag.Usage)
	flagSet.String(LayoutFlag.Name, LayoutFlag.Value, LayoutFlag.Usage)
	flagSet.Int(OrderFlag.Name, OrderFlag.Value, OrderFlag.Usage)
	flagSet.Int64(RandomSeedFlag.Name, RandomSeedFlag.Value, RandomSeedFlag.Usage)
	flagSet.Int(StepsFlag.Name, StepsFlag.Value, StepsFlag.Usage)
	flagSet.String(logger.LogLevelFlag.Name, "critical", logger.LogLevelFlag.Usage)
	for name, value := range set {
		require.NoError(t, flagSet.Set(name, value))
	}
	require.NoError(t, flagSet.Parse(args))

	ctx := cli.NewContext(cli.NewApp(), flagSet, nil)
	ctx.Command = &cli.Command{
		Name: "test_command",
		Flags: []cli.Flag{
			&AlphaFlag,
			&AlphabetFlag,
			&DegreesOfFreedomFlag,
			&DfConventionFlag,
			&LayoutFlag,
			&OrderFlag,
			&RandomSeedFlag,
			&StepsFlag,
			&logger.LogLevelFlag,
		},
	}
	return ctx
}

func TestUtilsConfig_NewConfig(t *testing.T) {
	ctx := prepareMockCliContext(t, map[string]string{
		OrderFlag.Name:        "3",
		AlphabetFlag.Name:     "A, B,C",
		RandomSeedFlag.Name:   "999",
		DfConventionFlag.Name: "nested",
	})

	cfg, err := NewConfig(ctx, NoArgs)
	require.NoError(t, err)

	assert.Equal(t, 3, cfg.Order)
	assert.Equal(t, int64(999), cfg.RandomSeed)
	assert.Equal(t, []string{"A", "B", "C"}, cfg.AlphabetLabels())
	assert.Equal(t, 0.05, cfg.Alpha)
	// flags not used by the command keep their defaults
	assert.Equal(t, 1000, cfg.Length)
	assert.Equal(t, 4, cfg.MaxOrder)

	opts, err := cfg.TestOptions()
	require.NoError(t, err)
	assert.Equal(t, lrt.Nested, opts.Convention)
}

func TestUtilsConfig_RandomSeed(t *testing.T) {
	cfg, err := NewConfig(prepareMockCliContext(t, nil), NoArgs)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, cfg.RandomSeed, int64(0), "a negative seed must be replaced")
}

func TestUtilsConfig_DegreesOfFreedomImpliesCustom(t *testing.T) {
	cfg, err := NewConfig(prepareMockCliContext(t, map[string]string{DegreesOfFreedomFlag.Name: "6"}), NoArgs)
	require.NoError(t, err)
	assert.Equal(t, lrt.Custom.String(), cfg.DfConvention)

	opts, err := cfg.TestOptions()
	require.NoError(t, err)
	assert.Equal(t, lrt.Custom, opts.Convention)
	assert.Equal(t, 6.0, opts.DegreesOfFreedom)
}

func TestUtilsConfig_NoConvention(t *testing.T) {
	cfg, err := NewConfig(prepareMockCliContext(t, nil), NoArgs)
	require.NoError(t, err)
	_, err = cfg.TestOptions()
	if !errors.Is(err, stochastic.ErrInvalidDegreesOfFreedom) {
		t.Fatalf("Expected ErrInvalidDegreesOfFreedom without a convention. Got %v.", err)
	}
}

func TestUtilsConfig_InvalidValues(t *testing.T) {
	_, err := NewConfig(prepareMockCliContext(t, map[string]string{AlphaFlag.Name: "1.5"}), NoArgs)
	assert.Error(t, err)

	_, err = NewConfig(prepareMockCliContext(t, map[string]string{LayoutFlag.Name: "hash"}), NoArgs)
	assert.Error(t, err)

	_, err = NewConfig(prepareMockCliContext(t, map[string]string{StepsFlag.Name: "-1"}), NoArgs)
	assert.Error(t, err)
}

func TestUtilsConfig_PathArgument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trajectory.txt")
	require.NoError(t, os.WriteFile(path, []byte("A,B\n"), 0644))

	cfg, err := NewConfig(prepareMockCliContext(t, nil, path), PathArg)
	require.NoError(t, err)
	assert.Equal(t, path, cfg.ArgPath)

	_, err = NewConfig(prepareMockCliContext(t, nil), PathArg)
	assert.Error(t, err, "missing path argument")

	_, err = NewConfig(prepareMockCliContext(t, nil, filepath.Join(t.TempDir(), "missing.txt")), PathArg)
	assert.Error(t, err, "path does not exist")

	_, err = NewConfig(prepareMockCliContext(t, nil, path), NoArgs)
	assert.Error(t, err, "unexpected argument")
}

func TestUtilsConfig_ReportNewConfig(t *testing.T) {
	ctrl := gomock.NewController(t)
	log := logger.NewMockLogger(ctrl)

	cfg := NewTestConfig(t, 2, 7)
	cfg.ModelFile = "model.yaml"
	cc := &configContext{cfg: cfg, log: log}

	gomock.InOrder(
		log.EXPECT().Noticef("Run config:"),
		log.EXPECT().Infof("Model file: %v", "model.yaml"),
	)
	log.EXPECT().Infof(gomock.Any(), gomock.Any()).AnyTimes()

	cc.reportNewConfig()
}

func TestUtilsConfig_InitialLaw(t *testing.T) {
	cfg := NewTestConfig(t, 1, 1)
	law, err := cfg.InitialLaw(4)
	require.NoError(t, err)
	assert.Equal(t, []float64{0.25, 0.25, 0.25, 0.25}, law)

	cfg.Initial = "0.5, 0.25,0.25"
	law, err = cfg.InitialLaw(3)
	require.NoError(t, err)
	assert.Equal(t, []float64{0.5, 0.25, 0.25}, law)

	cfg.Initial = "0.5,x"
	_, err = cfg.InitialLaw(2)
	assert.Error(t, err)

	layout, err := cfg.TreeLayout()
	require.NoError(t, err)
	assert.Equal(t, contexttree.Flat, layout)
}
