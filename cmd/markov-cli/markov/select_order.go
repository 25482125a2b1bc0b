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
	"time"

	"github.com/Fantom-foundation/Aida-Markov/logger"
	"github.com/Fantom-foundation/Aida-Markov/stochastic/estimator"
	"github.com/Fantom-foundation/Aida-Markov/stochastic/lrt"
	"github.com/Fantom-foundation/Aida-Markov/utils"
	"github.com/urfave/cli/v2"
)

// MarkovSelectOrderCommand data structure for the select-order app.
var MarkovSelectOrderCommand = cli.Command{
	Action:    markovSelectOrderAction,
	Name:      "select-order",
	Usage:     "selects the order of a trajectory by a sweep of likelihood-ratio tests",
	ArgsUsage: "<trajectory-file>",
	Flags: []cli.Flag{
		&utils.AlphabetFlag,
		&utils.MaxOrderFlag,
		&utils.LayoutFlag,
		&utils.DfConventionFlag,
		&utils.DegreesOfFreedomFlag,
		&utils.AlphaFlag,
		&utils.OutputFlag,
		&utils.QuietFlag,
		&logger.LogLevelFlag,
	},
	Description: `
The select-order command requires one argument:
<trajectory-file>

It compares the orders k and k+1 for k = 1, ..., --max-order - 1 and
selects the smallest order that is not rejected at level --alpha.`,
}

// markovSelectOrderAction runs an order sweep.
func markovSelectOrderAction(ctx *cli.Context) error {
	cfg, err := utils.NewConfig(ctx, utils.PathArg)
	if err != nil {
		return err
	}
	log := logger.NewLogger(cfg.LogLevel, "Markov Select-Order")

	opts, err := cfg.TestOptions()
	if err != nil {
		return err
	}
	layout, err := cfg.TreeLayout()
	if err != nil {
		return err
	}
	traj, err := readTrajectory(cfg, log)
	if err != nil {
		return err
	}

	start := time.Now()
	cache, err := estimator.NewCache(traj, estimator.DefaultCacheSize, layout)
	if err != nil {
		return err
	}
	results, err := lrt.SweepCached(cache, cfg.MaxOrder, opts)
	if err != nil {
		return err
	}
	order, err := lrt.SelectOrder(results, cfg.Alpha)
	if err != nil {
		return err
	}
	hours, minutes, seconds := logger.ParseTime(time.Since(start))
	log.Infof("Fitted %v orders in %vh %vm %vs", cache.Misses(), hours, minutes, seconds)
	log.Noticef("Selected order %v at level %v", order, cfg.Alpha)

	report := func() string {
		return utils.TestTable(results, cfg.Alpha)
	}
	printers := utils.NewPrinters().
		AddPrintToConsole(cfg.Quiet, ctx.App.Writer, report).
		AddPrintToConsole(cfg.Quiet, ctx.App.Writer, func() string { return fmt.Sprintf("Selected order: %d", order) }).
		AddPrintToFile(cfg.Output, report)
	defer printers.Close()
	return printers.Print()
}
