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
	"fmt"
	"reflect"

	"github.com/Fantom-foundation/Aida-Markov/logger"
	"github.com/urfave/cli/v2"
)

// createConfigFromFlags returns Config instance with user specified values or the default ones
func createConfigFromFlags(ctx *cli.Context) (*Config, map[string]bool, error) {
	cfg := &Config{
		AppName:     ctx.App.HelpName,
		CommandName: ctx.Command.Name,
	}

	// string of this map has to exactly match the name of the field in Config struct
	cfgFlags := map[string]interface{}{
		"Alpha":            AlphaFlag,
		"Alphabet":         AlphabetFlag,
		"DegreesOfFreedom": DegreesOfFreedomFlag,
		"DfConvention":     DfConventionFlag,
		"Initial":          InitialLawFlag,
		"Layout":           LayoutFlag,
		"Length":           LengthFlag,
		"LogLevel":         logger.LogLevelFlag,
		"MaxOrder":         MaxOrderFlag,
		"ModelFile":        ModelFileFlag,
		"Order":            OrderFlag,
		"Output":           OutputFlag,
		"Quiet":            QuietFlag,
		"RandomSeed":       RandomSeedFlag,
		"Steps":            StepsFlag,
		"UniformRandom":    UniformRandomFlag,
	}

	cfgValue := reflect.ValueOf(cfg).Elem()

	specifiedFlags := make(map[string]bool)

	for cfgName, flag := range cfgFlags {
		value, isSpecified, flagName := getFlagValue(ctx, flag)
		if isSpecified {
			specifiedFlags[flagName] = true
		}

		field := cfgValue.FieldByName(cfgName)
		if !field.IsValid() {
			return nil, nil, fmt.Errorf("field %s is not valid", cfgName)
		}
		if !field.CanSet() {
			return nil, nil, fmt.Errorf("field %s cannot be set", cfgName)
		}

		field.Set(reflect.ValueOf(value))
	}

	return cfg, specifiedFlags, nil
}

// getFlagValue returns value specified by user if flag is present in cli context, otherwise return default flag value
func getFlagValue(ctx *cli.Context, flag interface{}) (interface{}, bool, string) {
	if ctx.Command != nil {
		for _, cmdFlag := range ctx.Command.Flags {
			name := cmdFlag.Names()[0]
			switch f := flag.(type) {
			case cli.IntFlag:
				if name == f.Name {
					return ctx.Int(f.Name), ctx.IsSet(f.Name), f.Name
				}
			case cli.Int64Flag:
				if name == f.Name {
					return ctx.Int64(f.Name), ctx.IsSet(f.Name), f.Name
				}
			case cli.Float64Flag:
				if name == f.Name {
					return ctx.Float64(f.Name), ctx.IsSet(f.Name), f.Name
				}
			case cli.StringFlag:
				if name == f.Name {
					return ctx.String(f.Name), ctx.IsSet(f.Name), f.Name
				}
			case cli.PathFlag:
				if name == f.Name {
					return ctx.Path(f.Name), ctx.IsSet(f.Name), f.Name
				}
			case cli.BoolFlag:
				if name == f.Name {
					return ctx.Bool(f.Name), ctx.IsSet(f.Name), f.Name
				}
			}
		}
	}

	// If flag not found, return the default value of the flag and false
	switch f := flag.(type) {
	case cli.IntFlag:
		return f.Value, false, f.Name
	case cli.Int64Flag:
		return f.Value, false, f.Name
	case cli.Float64Flag:
		return f.Value, false, f.Name
	case cli.StringFlag:
		return f.Value, false, f.Name
	case cli.PathFlag:
		return f.Value, false, f.Name
	case cli.BoolFlag:
		return f.Value, false, f.Name
	}
	return nil, false, ""
}
