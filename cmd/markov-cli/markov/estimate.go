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
	"github.com/Fantom-foundation/Aida-Markov/logger"
	"github.com/Fantom-foundation/Aida-Markov/stochastic"
	"github.com/Fantom-foundation/Aida-Markov/stochastic/estimator"
	"github.com/Fantom-foundation/Aida-Markov/stochastic/modelfile"
	"github.com/Fantom-foundation/Aida-Markov/utils"
	"github.com/urfave/cli/v2"
)

// MarkovEstimateCommand data structure for the estimator app.
var MarkovEstimateCommand = cli.Command{
	Action:    markovEstimateAction,
	Name:      "estimate",
	Usage:     "estimates the context tree of a trajectory",
	ArgsUsage: "<trajectory-file>",
	Flags: []cli.Flag{
		&utils.AlphabetFlag,
		&utils.OrderFlag,
		&utils.LayoutFlag,
		&utils.OutputFlag,
		&utils.QuietFlag,
		&logger.LogLevelFlag,
	},
	Description: `
The estimate command requires one argument:
<trajectory-file>

<trajectory-file> lists the symbols of a trajectory separated by commas,
semicolons or whitespace; .gz and .bz2 files are decompressed.
The command prints the transition frequencies and the maximum-likelihood
laws of order --order. With --output the fitted chain is written as a
model file whose initial law are the symbol frequencies.`,
}

// markovEstimateAction fits a context tree to a trajectory.
func markovEstimateAction(ctx *cli.Context) error {
	cfg, err := utils.NewConfig(ctx, utils.PathArg)
	if err != nil {
		return err
	}
	log := logger.NewLogger(cfg.LogLevel, "Markov Estimate")

	traj, err := readTrajectory(cfg, log)
	if err != nil {
		return err
	}
	layout, err := cfg.TreeLayout()
	if err != nil {
		return err
	}
	fit, err := estimator.FitLayout(traj, cfg.Order, layout)
	if err != nil {
		return err
	}
	log.Noticef("Order %v: %v windows, %v observed contexts, log-likelihood %v",
		fit.Order, fit.Samples, fit.Counts.Len(), fit.LogLikelihood)

	printers := utils.NewPrinters().AddPrintToConsole(cfg.Quiet, ctx.App.Writer, func() string {
		return utils.CountsTable(fit.Counts) + utils.TreeTable(fit.Tree)
	})
	defer printers.Close()
	if err := printers.Print(); err != nil {
		return err
	}

	if cfg.Output == "" {
		return nil
	}
	frequencies := traj.Frequencies()
	weights := make([]float64, len(frequencies))
	for i, f := range frequencies {
		weights[i] = float64(f)
	}
	initial, err := stochastic.NormalizeLaw(weights)
	if err != nil {
		return err
	}
	if !fit.Tree.IsComplete() {
		log.Warningf("Fitted tree has %v of all contexts; simulating it may fail", fit.Tree.Len())
	}
	log.Noticef("Write model file %v", cfg.Output)
	return modelfile.NewModel(initial, fit.Tree).Save(cfg.Output)
}
