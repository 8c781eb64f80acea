// SPDX-License-Identifier: MIT
// Package graph: sentinel error set.
// Validation failures are raised at construction or at SetAggregation and
// never silently corrected. All sentinels carry the "graph: ..." prefix and
// are matched via errors.Is; call sites may wrap them with fmt.Errorf for
// context.

package graph

import "errors"

var (
	// ErrUnknownAggregation is returned for any aggregation keyword outside
	// {sum, normalized, average}.
	ErrUnknownAggregation = errors.New("graph: unknown aggregation mode")

	// ErrUnknownProblem is returned for any problem keyword outside
	// {n, a, g}.
	ErrUnknownProblem = errors.New("graph: unknown problem type")

	// ErrNilInput indicates a nil or empty mandatory matrix
	// (nodes, arcs or targets) at construction.
	ErrNilInput = errors.New("graph: nil or empty input matrix")

	// ErrMaskLength indicates that set/output mask lengths disagree with
	// each other or with the maskable-unit count of the problem type.
	ErrMaskLength = errors.New("graph: mask length mismatch")

	// ErrWeightLength indicates that len(sampleWeights) does not equal the
	// number of target rows.
	ErrWeightLength = errors.New("graph: sample weight length mismatch")

	// ErrArcEndpoint indicates an arc endpoint that is not an integral
	// node index within [0, NumNodes).
	ErrArcEndpoint = errors.New("graph: arc endpoint out of range")

	// ErrDimensionMismatch indicates incompatible matrix dimensions
	// (arc matrix narrower than two columns, precomputed matrix of the
	// wrong shape, merge inputs with differing label widths).
	ErrDimensionMismatch = errors.New("graph: dimension mismatch")

	// ErrIncidence indicates a precomputed ArcNode matrix that violates
	// the incidence structure: each row must hold exactly one entry whose
	// column is that arc's destination node.
	ErrIncidence = errors.New("graph: invalid incidence structure")

	// ErrNilGraph indicates a nil *Graph in a merge list or receiver
	// position.
	ErrNilGraph = errors.New("graph: nil graph")

	// ErrEmptyList indicates an empty merge input list.
	ErrEmptyList = errors.New("graph: empty graph list")
)
