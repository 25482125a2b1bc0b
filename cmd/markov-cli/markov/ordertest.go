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
	"github.com/Fantom-foundation/Aida-Markov/stochastic/lrt"
	"github.com/Fantom-foundation/Aida-Markov/utils"
	"github.com/urfave/cli/v2"
)

// MarkovOrderTestCommand data structure for the order-test app.
var MarkovOrderTestCommand = cli.Command{
	Action:    markovOrderTestAction,
	Name:      "order-test",
	Usage:     "tests order k against order k+1 with a likelihood-ratio test",
	ArgsUsage: "<trajectory-file>",
	Flags: []cli.Flag{
		&utils.AlphabetFlag,
		&utils.OrderFlag,
		&utils.DfConventionFlag,
		&utils.DegreesOfFreedomFlag,
		&utils.AlphaFlag,
		&utils.OutputFlag,
		&utils.QuietFlag,
		&logger.LogLevelFlag,
	},
	Description: `
The order-test command requires one argument:
<trajectory-file>

It fits orders --order and --order+1 to the trajectory and compares them
with the likelihood ratio LR = 2 (l(k+1) - l(k)) against a chi-square
law. The degrees of freedom must be chosen with --df-convention
(nominal, nested, effective) or given with --df.`,
}

// markovOrderTestAction runs a single likelihood-ratio test.
func markovOrderTestAction(ctx *cli.Context) error {
	cfg, err := utils.NewConfig(ctx, utils.PathArg)
	if err != nil {
		return err
	}
	log := logger.NewLogger(cfg.LogLevel, "Markov Order-Test")

	opts, err := cfg.TestOptions()
	if err != nil {
		return err
	}
	traj, err := readTrajectory(cfg, log)
	if err != nil {
		return err
	}
	res, err := lrt.Compare(traj, cfg.Order, opts)
	if err != nil {
		return err
	}
	if res.NegativeStatistic {
		log.Warning(res.Note)
	}
	log.Noticef("LR = %v, df = %v, p-value = %v", res.LR, res.DF, res.PValue)

	report := func() string {
		return utils.TestTable([]*lrt.Result{res}, cfg.Alpha)
	}
	printers := utils.NewPrinters().
		AddPrintToConsole(cfg.Quiet, ctx.App.Writer, report).
		AddPrintToFile(cfg.Output, report)
	defer printers.Close()
	return printers.Print()
}
