// SPDX-License-Identifier: MIT
// Package dataset — functional options shared by Open, Save and NewBatcher.

package dataset

import (
	"io"
	"log/slog"
	"math/rand"
)

// Option customizes dataset operations.
type Option func(*options)

type options struct {
	logger *slog.Logger
	rng    *rand.Rand
}

// gatherOptions applies opts over the defaults: the process-wide slog logger
// and no shuffling.
func gatherOptions(opts ...Option) options {
	o := options{logger: slog.Default()}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	return o
}

// WithLogger routes progress logging to l instead of slog.Default.
// A nil l silences the operation.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l == nil {
			l = slog.New(slog.NewTextHandler(io.Discard, nil))
		}
		o.logger = l
	}
}

// WithShuffle enables deterministic shuffling with the given seed; for a
// Batcher this randomizes the batch composition once per Reshuffle call.
func WithShuffle(seed int64) Option {
	return func(o *options) { o.rng = rand.New(rand.NewSource(seed)) }
}
