// SPDX-License-Identifier: MIT
// Package gio: sentinel error set. File-system failures are propagated
// wrapped; these sentinels mark the format-level failures on top of them.

package gio

import "errors"

var (
	// ErrMissingArray indicates that a mandatory array file (nodes, arcs
	// or targets) is absent from a graph directory.
	ErrMissingArray = errors.New("gio: missing mandatory array file")

	// ErrBadNodeGraph indicates a NodeGraph file that is not a valid
	// stacked 3×K data/row/col array.
	ErrBadNodeGraph = errors.New("gio: malformed NodeGraph array")

	// ErrBadText indicates a text array file that is empty, ragged or
	// non-numeric.
	ErrBadText = errors.New("gio: malformed text array")

	// ErrBadCodec indicates an unrecognized codec keyword.
	ErrBadCodec = errors.New("gio: unknown codec")

	// ErrNilGraph indicates a nil *graph.Graph passed to a save entry.
	ErrNilGraph = errors.New("gio: nil graph")
)
