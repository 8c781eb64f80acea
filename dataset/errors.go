// SPDX-License-Identifier: MIT
// Package dataset — sentinel errors.
// All failures wrap one of these; callers match with errors.Is.

package dataset

import "errors"

var (
	// ErrBadManifest reports an unreadable, unparsable or semantically
	// invalid manifest.yaml.
	ErrBadManifest = errors.New("dataset: invalid manifest")

	// ErrBadFraction reports split fractions outside [0,1] or summing
	// past 1.
	ErrBadFraction = errors.New("dataset: invalid split fractions")

	// ErrBadBatchSize reports a non-positive mini-batch size.
	ErrBadBatchSize = errors.New("dataset: batch size must be positive")

	// ErrBadIndex reports a batch index outside [0, Len).
	ErrBadIndex = errors.New("dataset: batch index out of range")

	// ErrNoGraphs reports an operation over an empty graph list.
	ErrNoGraphs = errors.New("dataset: no graphs")

	// ErrBadRange reports a normalization range with lo >= hi.
	ErrBadRange = errors.New("dataset: invalid normalization range")

	// ErrBadSize reports non-positive or mismatched graph dimensions.
	ErrBadSize = errors.New("dataset: invalid dimensions")
)
