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
	"fmt"
	"math/rand"

	"github.com/Fantom-foundation/Aida-Markov/logger"
	"github.com/Fantom-foundation/Aida-Markov/stochastic"
	"github.com/Fantom-foundation/Aida-Markov/stochastic/stationary"
	"github.com/Fantom-foundation/Aida-Markov/utils"
	"github.com/urfave/cli/v2"
)

// MarkovStationaryCommand data structure for the stationary app.
var MarkovStationaryCommand = cli.Command{
	Action:    markovStationaryAction,
	Name:      "stationary",
	Usage:     "computes the stationary distribution of a context-tree chain",
	ArgsUsage: "",
	Flags: []cli.Flag{
		&utils.ModelFileFlag,
		&utils.UniformRandomFlag,
		&utils.AlphabetFlag,
		&utils.OrderFlag,
		&utils.LayoutFlag,
		&utils.RandomSeedFlag,
		&utils.StepsFlag,
		&utils.OutputFlag,
		&utils.QuietFlag,
		&logger.LogLevelFlag,
	},
	Description: `
The stationary command lifts a complete chain of order K to a first-order
chain over its contexts and prints the stationary distribution of the
symbols and of the contexts. With --steps n it also prints, for every
context, the law of the symbol emitted n steps later.`,
}

// markovStationaryAction computes a stationary distribution.
func markovStationaryAction(ctx *cli.Context) error {
	cfg, err := utils.NewConfig(ctx, utils.NoArgs)
	if err != nil {
		return err
	}
	log := logger.NewLogger(cfg.LogLevel, "Markov Stationary")

	chain, err := loadChain(cfg, rand.New(rand.NewSource(cfg.RandomSeed)), log)
	if err != nil {
		return err
	}
	a := chain.Alphabet
	k := chain.Tree.Order()

	contexts, err := stationary.ContextDistribution(chain.Tree)
	if err != nil {
		return err
	}
	m := uint64(a.Size())
	symbols := make([]float64, m)
	labels := make([]string, len(contexts))
	for code, p := range contexts {
		symbols[uint64(code)%m] += p
		labels[code] = stochastic.DecodeContext(a, uint64(code), k).Format(a)
	}

	var steps [][]float64
	if cfg.Steps > 0 {
		steps, err = stationary.SymbolStepMatrix(chain.Tree, cfg.Steps)
		if err != nil {
			return err
		}
	}

	report := func() string {
		out := utils.DistributionTable("Symbol", a.Labels(), symbols)
		if k > 1 {
			out += utils.DistributionTable("Context", labels, contexts)
		}
		if steps != nil {
			out += fmt.Sprintf("Laws of the symbol emitted after %d steps\n", cfg.Steps)
			out += utils.LawTable("Context", labels, a.Labels(), steps)
		}
		return out
	}
	printers := utils.NewPrinters().
		AddPrintToConsole(cfg.Quiet, ctx.App.Writer, report).
		AddPrintToFile(cfg.Output, report)
	defer printers.Close()
	return printers.Print()
}
