// SPDX-License-Identifier: MIT

// Package dataset composes persisted graph directories into train/valid/test
// material for a message-passing learner.
//
// A dataset on disk is one directory holding a manifest.yaml plus one
// sub-directory per graph in the gio layout. The manifest captures the
// caller-side knowledge the per-graph directories deliberately omit (problem
// type, aggregation mode, codec) together with split fractions, batch size
// and the shuffle seed, so a dataset round-trips as a single self-describing
// tree.
//
// On top of the loaded graph list the package offers the classic composition
// pipeline: deterministic index splitting, min-max feature normalization
// fitted on the training portion only, and a Batcher that merges each
// mini-batch into one disjoint-union graph and hands it over as a
// learner-ready tensor snapshot.
package dataset
