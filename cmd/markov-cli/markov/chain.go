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
	"errors"
	"fmt"

	"github.com/Fantom-foundation/Aida-Markov/logger"
	"github.com/Fantom-foundation/Aida-Markov/stochastic"
	"github.com/Fantom-foundation/Aida-Markov/stochastic/modelfile"
	"github.com/Fantom-foundation/Aida-Markov/stochastic/trajectoryio"
	"github.com/Fantom-foundation/Aida-Markov/utils"
)

// chainFlags are the flags selecting the chain of a command.
var chainFlags = []string{utils.ModelFileFlag.Name, utils.UniformRandomFlag.Name}

// loadChain creates the chain given either by a model file or by a
// uniformly random tree over the configured alphabet.
func loadChain(cfg *utils.Config, rg stochastic.Source, log logger.Logger) (*modelfile.Chain, error) {
	var model *modelfile.Model
	switch {
	case cfg.ModelFile != "" && cfg.UniformRandom:
		return nil, fmt.Errorf("--%v and --%v are mutually exclusive", chainFlags[0], chainFlags[1])
	case cfg.ModelFile != "":
		log.Infof("Read model file %v", cfg.ModelFile)
		m, err := modelfile.Load(cfg.ModelFile)
		if err != nil {
			return nil, err
		}
		model = m
	case cfg.UniformRandom:
		labels := cfg.AlphabetLabels()
		if labels == nil {
			return nil, fmt.Errorf("--%v is required with --%v", utils.AlphabetFlag.Name, chainFlags[1])
		}
		initial, err := cfg.InitialLaw(len(labels))
		if err != nil {
			return nil, err
		}
		model = &modelfile.Model{
			Alphabet: labels,
			Order:    cfg.Order,
			Layout:   cfg.Layout,
			Initial:  initial,
			Random:   true,
		}
		if err := model.Validate(); err != nil {
			return nil, err
		}
	default:
		return nil, errors.New("missing chain; use --" + chainFlags[0] + " or --" + chainFlags[1])
	}

	chain, err := model.Build(rg)
	if err != nil {
		return nil, err
	}
	if ctx, missing := chain.MissingContext(); missing {
		log.Warningf("Context %v has no law; a simulation fails once it is reached", ctx.Format(chain.Alphabet))
	}
	return chain, nil
}

// readTrajectory reads the trajectory given as argument.
func readTrajectory(cfg *utils.Config, log logger.Logger) (*stochastic.Trajectory, error) {
	a, err := cfg.NewAlphabet()
	if err != nil {
		return nil, err
	}
	log.Infof("Read trajectory file %v", cfg.ArgPath)
	traj, err := trajectoryio.Read(cfg.ArgPath, a)
	if err != nil {
		return nil, err
	}
	log.Infof("Trajectory has %v symbols over alphabet %v", traj.Len(), traj.Alphabet())
	return traj, nil
}
