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
	"github.com/urfave/cli/v2"
)

// Command line options for the markov tools.
var (
	AlphaFlag = cli.Float64Flag{
		Name:  "alpha",
		Usage: "significance level of order tests",
		Value: 0.05,
	}
	AlphabetFlag = cli.StringFlag{
		Name:  "alphabet",
		Usage: "comma-separated symbol labels, e.g. A,B,C (inferred from data if omitted)",
	}
	DegreesOfFreedomFlag = cli.Float64Flag{
		Name:  "df",
		Usage: "degrees of freedom of the chi-square reference (implies --df-convention custom)",
	}
	DfConventionFlag = cli.StringFlag{
		Name:  "df-convention",
		Usage: "degrees of freedom of order tests: nominal ((m-1)m^k), nested ((m-1)m^(k+1)-(m-1)m^k), effective or custom",
	}
	InitialLawFlag = cli.StringFlag{
		Name:  "initial",
		Usage: "comma-separated initial law, e.g. 0.5,0.3,0.2 (uniform if omitted)",
	}
	LayoutFlag = cli.StringFlag{
		Name:  "layout",
		Usage: "storage layout of context trees (flat or nested)",
		Value: "flat",
	}
	LengthFlag = cli.IntFlag{
		Name:  "length",
		Usage: "length of a simulated trajectory",
		Value: 1000,
	}
	MaxOrderFlag = cli.IntFlag{
		Name:  "max-order",
		Usage: "largest order compared by an order sweep",
		Value: 4,
	}
	ModelFileFlag = cli.PathFlag{
		Name:  "model",
		Usage: "model file (.yaml, .yml or .json)",
	}
	OrderFlag = cli.IntFlag{
		Name:  "order",
		Usage: "order K of the chain",
		Value: 1,
	}
	OutputFlag = cli.PathFlag{
		Name:  "output",
		Usage: "output file (.gz and .bz2 are compressed)",
	}
	QuietFlag = cli.BoolFlag{
		Name:  "quiet",
		Usage: "disable printing of reports to the console",
	}
	RandomSeedFlag = cli.Int64Flag{
		Name:  "random-seed",
		Usage: "set random seed",
		Value: -1,
	}
	StepsFlag = cli.IntFlag{
		Name:  "steps",
		Usage: "also print the laws of the symbol emitted after this many steps from every context",
	}
	UniformRandomFlag = cli.BoolFlag{
		Name:  "uniform-random",
		Usage: "draw a random complete tree instead of reading a model file",
	}
)
