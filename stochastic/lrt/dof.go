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

package lrt

import (
	"fmt"
	"math"
	"strings"

	"github.com/Fantom-foundation/Aida-Markov/stochastic"
	"github.com/Fantom-foundation/Aida-Markov/stochastic/estimator"
)

// Convention names the way the degrees of freedom of a comparison of
// orders k and k+1 over an alphabet of size m are obtained.
type Convention int

const (
	Unspecified Convention = iota // rejected; a convention must be chosen
	Nominal                       // (m-1) m^k
	Nested                        // (m-1) m^(k+1) - (m-1) m^k
	Effective                     // difference of free parameters of the two fits
	Custom                        // Options.DegreesOfFreedom
)

var conventionNames = map[Convention]string{
	Unspecified: "unspecified",
	Nominal:     "nominal",
	Nested:      "nested",
	Effective:   "effective",
	Custom:      "custom",
}

// String returns the name of a convention.
func (c Convention) String() string {
	if name, ok := conventionNames[c]; ok {
		return name
	}
	return fmt.Sprintf("convention(%d)", int(c))
}

// ParseConvention converts a name into a convention.
func ParseConvention(name string) (Convention, error) {
	for c, n := range conventionNames {
		if c != Unspecified && strings.EqualFold(n, name) {
			return c, nil
		}
	}
	return Unspecified, fmt.Errorf("unknown degrees-of-freedom convention %q; use nominal, nested, effective or custom", name)
}

// Options configure a likelihood-ratio test.
type Options struct {
	Convention       Convention
	DegreesOfFreedom float64 // only used by Custom
}

// NominalDegreesOfFreedom returns (m-1) m^k.
func NominalDegreesOfFreedom(m int, k int) float64 {
	return float64(m-1) * math.Pow(float64(m), float64(k))
}

// NestedDegreesOfFreedom returns (m-1) m^(k+1) - (m-1) m^k, the difference
// of the parameter counts of complete models of orders k+1 and k.
func NestedDegreesOfFreedom(m int, k int) float64 {
	return float64(m-1)*math.Pow(float64(m), float64(k+1)) - NominalDegreesOfFreedom(m, k)
}

// DegreesOfFreedom returns the degrees of freedom for comparing two fits
// of neighbouring orders under the chosen convention.
func DegreesOfFreedom(fitK *estimator.Result, fitK1 *estimator.Result, opts Options) (float64, error) {
	m := fitK.Counts.Alphabet().Size()
	k := fitK.Order
	var df float64
	switch opts.Convention {
	case Nominal:
		df = NominalDegreesOfFreedom(m, k)
	case Nested:
		df = NestedDegreesOfFreedom(m, k)
	case Effective:
		df = float64(fitK1.Counts.FreeParameters() - fitK.Counts.FreeParameters())
	case Custom:
		df = opts.DegreesOfFreedom
	default:
		return 0, fmt.Errorf("%w: no convention chosen", stochastic.ErrInvalidDegreesOfFreedom)
	}
	if err := checkDegreesOfFreedom(df); err != nil {
		return 0, fmt.Errorf("%v convention: %w", opts.Convention, err)
	}
	return df, nil
}

func checkDegreesOfFreedom(df float64) error {
	if math.IsNaN(df) || math.IsInf(df, 0) || df <= 0 {
		return fmt.Errorf("%w %v", stochastic.ErrInvalidDegreesOfFreedom, df)
	}
	return nil
}
