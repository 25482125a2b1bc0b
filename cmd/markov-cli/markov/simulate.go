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

package markov

import (
	"math/rand"

	"github.com/Fantom-foundation/Aida-Markov/logger"
	"github.com/Fantom-foundation/Aida-Markov/stochastic/simulator"
	"github.com/Fantom-foundation/Aida-Markov/stochastic/trajectoryio"
	"github.com/Fantom-foundation/Aida-Markov/utils"
	"github.com/urfave/cli/v2"
)

// MarkovSimulateCommand data structure for the simulate app.
var MarkovSimulateCommand = cli.Command{
	Action:    markovSimulateAction,
	Name:      "simulate",
	Usage:     "simulates a trajectory of a context-tree chain",
	ArgsUsage: "",
	Flags: []cli.Flag{
		&utils.ModelFileFlag,
		&utils.UniformRandomFlag,
		&utils.AlphabetFlag,
		&utils.OrderFlag,
		&utils.InitialLawFlag,
		&utils.LayoutFlag,
		&utils.LengthFlag,
		&utils.RandomSeedFlag,
		&utils.OutputFlag,
		&logger.LogLevelFlag,
	},
	Description: `
The simulate command draws a trajectory from the chain of a model file
(--model) or from a tree of uniformly random laws (--uniform-random).
The first K symbols are drawn from the initial law, every further symbol
from the law of the K preceding ones. The trajectory is printed or
written to --output.`,
}

// markovSimulateAction simulates a trajectory.
func markovSimulateAction(ctx *cli.Context) error {
	cfg, err := utils.NewConfig(ctx, utils.NoArgs)
	if err != nil {
		return err
	}
	log := logger.NewLogger(cfg.LogLevel, "Markov Simulate")

	rg := rand.New(rand.NewSource(cfg.RandomSeed))
	chain, err := loadChain(cfg, rg, log)
	if err != nil {
		return err
	}

	log.Infof("Simulate %v symbols of an order-%v chain", cfg.Length, chain.Tree.Order())
	traj, err := simulator.Run(chain.Alphabet, chain.Initial, chain.Tree, cfg.Length, rg)
	if err != nil {
		return err
	}

	if cfg.Output == "" {
		return trajectoryio.Format(ctx.App.Writer, traj)
	}
	log.Noticef("Write trajectory file %v", cfg.Output)
	return trajectoryio.Write(cfg.Output, traj)
}
