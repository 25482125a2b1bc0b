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

package stochastic

import "errors"

// Configuration errors are raised when caller-supplied data violates a
// precondition. They are returned wrapped with the offending context or row,
// hence callers must match them with errors.Is.
var (
	// ErrInvalidOrder is returned for an order smaller than one or an order
	// whose number of contexts cannot be encoded.
	ErrInvalidOrder = errors.New("stochastic: invalid order")

	// ErrAlphabetTooSmall is returned for alphabets with fewer than two symbols.
	ErrAlphabetTooSmall = errors.New("stochastic: alphabet needs at least two symbols")

	// ErrDuplicateSymbol is returned when an alphabet label occurs twice.
	ErrDuplicateSymbol = errors.New("stochastic: duplicate symbol")

	// ErrInvalidLabel is returned for an empty label or a label containing a
	// separator of trajectory files or context keys.
	ErrInvalidLabel = errors.New("stochastic: invalid label")

	// ErrInvalidSymbol is returned for a label or index outside of the alphabet.
	ErrInvalidSymbol = errors.New("stochastic: symbol not in alphabet")

	// ErrAlphabetMismatch is returned when a vector, context or model does not
	// match the size or identity of the alphabet it is used with.
	ErrAlphabetMismatch = errors.New("stochastic: alphabet mismatch")

	// ErrMalformedLaw is returned for probability vectors with negative or
	// non-finite entries or with a sum that is not one within LawTolerance.
	ErrMalformedLaw = errors.New("stochastic: malformed probability law")

	// ErrZeroSumLaw is returned for probability vectors summing to zero.
	ErrZeroSumLaw = errors.New("stochastic: probability law sums to zero")

	// ErrDuplicateContext is returned when a context is specified twice.
	ErrDuplicateContext = errors.New("stochastic: duplicate context")

	// ErrInsufficientLength is returned when a requested trajectory is
	// shorter than the order of the chain.
	ErrInsufficientLength = errors.New("stochastic: trajectory length smaller than order")

	// ErrInsufficientData is returned when an observed trajectory has no
	// more symbols than the order to be estimated.
	ErrInsufficientData = errors.New("stochastic: not enough data for order")
)

// Model errors are structural inconsistencies discovered at runtime.
var (
	// ErrUnknownContext is returned when a context has no entry in a
	// context tree. Sparse trees never substitute a default law.
	ErrUnknownContext = errors.New("stochastic: unknown context")

	// ErrInvalidDegreesOfFreedom is returned for a non-positive or
	// unspecified number of degrees of freedom.
	ErrInvalidDegreesOfFreedom = errors.New("stochastic: invalid degrees of freedom")
)

var configurationErrors = []error{
	ErrInvalidOrder,
	ErrAlphabetTooSmall,
	ErrDuplicateSymbol,
	ErrInvalidLabel,
	ErrInvalidSymbol,
	ErrAlphabetMismatch,
	ErrMalformedLaw,
	ErrZeroSumLaw,
	ErrDuplicateContext,
	ErrInsufficientLength,
	ErrInsufficientData,
}

var modelErrors = []error{
	ErrUnknownContext,
	ErrInvalidDegreesOfFreedom,
}

// IsConfigurationError reports whether err stems from invalid caller input.
func IsConfigurationError(err error) bool {
	return matchesAny(err, configurationErrors)
}

// IsModelError reports whether err stems from a structural model inconsistency.
func IsModelError(err error) bool {
	return matchesAny(err, modelErrors)
}

func matchesAny(err error, targets []error) bool {
	if err == nil {
		return false
	}
	for _, target := range targets {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
