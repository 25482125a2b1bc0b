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
	"fmt"
	"math/rand"
	"os"
	"strconv"
	"strings"
	"testing"

	"github.com/Fantom-foundation/Aida-Markov/logger"
	"github.com/Fantom-foundation/Aida-Markov/stochastic"
	"github.com/Fantom-foundation/Aida-Markov/stochastic/contexttree"
	"github.com/Fantom-foundation/Aida-Markov/stochastic/lrt"
	"github.com/urfave/cli/v2"
)

type ArgumentMode int

// An enums of argument modes used by markov subcommands
const (
	NoArgs  ArgumentMode = iota // requires no arguments
	PathArg                     // requires 1 argument: path to file
)

// Config represents execution configuration for the markov tools.
type Config struct {
	AppName     string
	CommandName string

	Alpha            float64 // significance level of order tests
	Alphabet         string  // comma-separated symbol labels
	ArgPath          string  // path to file given as argument
	DegreesOfFreedom float64 // degrees of freedom of the custom convention
	DfConvention     string  // convention for degrees of freedom
	Initial          string  // comma-separated initial law
	Layout           string  // storage layout of context trees
	Length           int     // length of simulated trajectories
	LogLevel         string  // level of the logging of the app action
	MaxOrder         int     // largest order of an order sweep
	ModelFile        string  // path to a model file
	Order            int     // order of the chain
	Output           string  // output file
	Quiet            bool    // disable console reports
	RandomSeed       int64   // seed of the random source
	Steps            int     // number of steps of the n-step laws
	UniformRandom    bool    // draw a random tree instead of reading a model
}

type configContext struct {
	cfg       *Config         // run configuration
	log       logger.Logger   // logger for printing logs in config functions
	ctx       *cli.Context    // command line context for accessing flags and command line arguments
	specified map[string]bool // flags given by the user
}

func NewConfigContext(cfg *Config, ctx *cli.Context) *configContext {
	return &configContext{
		log:       logger.NewLogger(cfg.LogLevel, "Config"),
		cfg:       cfg,
		ctx:       ctx,
		specified: map[string]bool{},
	}
}

// NewTestConfig creates a new config for test purpose
func NewTestConfig(t *testing.T, order int, seed int64) *Config {
	t.Helper()
	return &Config{
		Alpha:      0.05,
		Layout:     "flat",
		Length:     1000,
		LogLevel:   "Critical",
		MaxOrder:   4,
		Order:      order,
		RandomSeed: seed,
	}
}

// NewConfig creates and initializes Config with commandline arguments.
func NewConfig(ctx *cli.Context, mode ArgumentMode) (*Config, error) {
	// create config with user flag values, if not set default values are used
	cfg, specified, err := createConfigFromFlags(ctx)
	if err != nil {
		return nil, fmt.Errorf("cannot create config from flags; %v", err)
	}

	// create config context for sharing common arguments
	cc := NewConfigContext(cfg, ctx)
	cc.specified = specified

	if err = cc.updateConfigArgs(ctx.Args().Slice(), mode); err != nil {
		return cfg, fmt.Errorf("unable to parse cli arguments; %v", err)
	}

	if err = cc.adjustMissingConfigValues(); err != nil {
		return nil, fmt.Errorf("cannot adjust missing config values; %v", err)
	}

	cc.reportNewConfig()

	return cfg, nil
}

// updateConfigArgs checks the positional arguments of a command.
func (cc *configContext) updateConfigArgs(args []string, mode ArgumentMode) error {
	switch mode {
	case NoArgs:
		if len(args) != 0 {
			return fmt.Errorf("command takes no arguments; got %v", args)
		}
	case PathArg:
		if len(args) != 1 {
			return errors.New("path argument is required to run this command")
		}

		_, err := os.Stat(args[0])
		if err != nil {
			if os.IsNotExist(err) {
				return fmt.Errorf("given path (%v) argument does not exist", args[0])
			}
			return fmt.Errorf("cannot read argument path (%v)", err)
		}

		cc.cfg.ArgPath = args[0]
	default:
		return errors.New("unknown mode; unable to process commandline arguments")
	}
	return nil
}

// adjustMissingConfigValues fill the missing values in the config
func (cc *configContext) adjustMissingConfigValues() error {
	cfg := cc.cfg
	log := cc.log

	if cfg.RandomSeed < 0 {
		cfg.RandomSeed = int64(rand.Uint32())
	}

	// an explicit number of degrees of freedom selects the custom convention
	if cc.specified[DegreesOfFreedomFlag.Name] && cfg.DfConvention == "" {
		cfg.DfConvention = lrt.Custom.String()
		log.Info("set degrees-of-freedom convention to custom")
	}
	if cc.specified[DegreesOfFreedomFlag.Name] && !strings.EqualFold(cfg.DfConvention, lrt.Custom.String()) {
		log.Warningf("--%v is ignored by the %v convention", DegreesOfFreedomFlag.Name, cfg.DfConvention)
	}

	if cfg.Alpha <= 0 || cfg.Alpha >= 1 {
		return fmt.Errorf("significance level %v is not in (0,1)", cfg.Alpha)
	}
	if _, err := contexttree.ParseLayout(cfg.Layout); err != nil {
		return err
	}
	if cfg.Steps < 0 {
		return fmt.Errorf("number of steps %v is negative", cfg.Steps)
	}
	return nil
}

// reportNewConfig logs out the state of config in current run
func (cc *configContext) reportNewConfig() {
	cfg := cc.cfg
	log := cc.log

	log.Noticef("Run config:")
	if cfg.ModelFile != "" {
		log.Infof("Model file: %v", cfg.ModelFile)
	}
	if cfg.ArgPath != "" {
		log.Infof("Trajectory file: %v", cfg.ArgPath)
	}
	if cfg.Alphabet != "" {
		log.Infof("Alphabet: %v", cfg.Alphabet)
	}
	log.Infof("Order: %v, max order: %v", cfg.Order, cfg.MaxOrder)
	log.Infof("Tree layout: %v", cfg.Layout)
	log.Infof("Random seed: %v", cfg.RandomSeed)
	if cfg.DfConvention != "" {
		log.Infof("Degrees of freedom: %v convention", cfg.DfConvention)
	}
	log.Infof("Significance level: %v", cfg.Alpha)
}

// AlphabetLabels returns the labels of the alphabet flag, or nil if none were given.
func (cfg *Config) AlphabetLabels() []string {
	if strings.TrimSpace(cfg.Alphabet) == "" {
		return nil
	}
	labels := strings.Split(cfg.Alphabet, ",")
	for i := range labels {
		labels[i] = strings.TrimSpace(labels[i])
	}
	return labels
}

// NewAlphabet creates the configured alphabet, or nil if none was given.
func (cfg *Config) NewAlphabet() (*stochastic.Alphabet, error) {
	labels := cfg.AlphabetLabels()
	if labels == nil {
		return nil, nil
	}
	return stochastic.NewAlphabet(labels...)
}

// InitialLaw parses the configured initial law. Without one, the uniform
// law over m symbols is returned.
func (cfg *Config) InitialLaw(m int) ([]float64, error) {
	if strings.TrimSpace(cfg.Initial) == "" {
		law := make([]float64, m)
		for i := range law {
			law[i] = 1.0 / float64(m)
		}
		return law, nil
	}
	return ParseFloats(cfg.Initial)
}

// TreeLayout returns the configured layout of context trees.
func (cfg *Config) TreeLayout() (contexttree.Layout, error) {
	return contexttree.ParseLayout(cfg.Layout)
}

// TestOptions returns the options of likelihood-ratio tests.
func (cfg *Config) TestOptions() (lrt.Options, error) {
	if cfg.DfConvention == "" {
		return lrt.Options{}, fmt.Errorf("%w: choose one with --%v", stochastic.ErrInvalidDegreesOfFreedom, DfConventionFlag.Name)
	}
	c, err := lrt.ParseConvention(cfg.DfConvention)
	if err != nil {
		return lrt.Options{}, err
	}
	return lrt.Options{Convention: c, DegreesOfFreedom: cfg.DegreesOfFreedom}, nil
}

// ParseFloats parses a comma-separated list of numbers.
func ParseFloats(list string) ([]float64, error) {
	fields := strings.Split(list, ",")
	values := make([]float64, len(fields))
	for i, field := range fields {
		v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
		if err != nil {
			return nil, fmt.Errorf("cannot parse %q as a number; %v", field, err)
		}
		values[i] = v
	}
	return values, nil
}
