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
	"fmt"
	"os"

	"github.com/Fantom-foundation/Aida-Markov/cmd/markov-cli/markov"
	"github.com/urfave/cli/v2"
)

// initMarkovApp initializes a markov-cli app. This function is
// called by the main function and unit tests.
func initMarkovApp() *cli.App {
	return &cli.App{
		Name:      "Aida Context-Tree Markov Chains",
		HelpName:  "markov",
		Copyright: "(c) 2024 Fantom Foundation",
		Flags:     []cli.Flag{},
		Commands: []*cli.Command{
			&markov.MarkovSimulateCommand,
			&markov.MarkovEstimateCommand,
			&markov.MarkovOrderTestCommand,
			&markov.MarkovSelectOrderCommand,
			&markov.MarkovStationaryCommand,
		},
	}
}

// main implements "markov" cli application.
func main() {
	app := initMarkovApp()
	if err := app.Run(os.Args); err != nil {
		code := 1
		fmt.Fprintln(os.Stderr, err)
		os.Exit(code)
	}
}
