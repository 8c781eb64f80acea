// SPDX-License-Identifier: MIT
// Package gio — codec selector and path-based merge.

package gio

import (
	"fmt"

	"github.com/gognn/gognn/graph"
)

// Codec names one of the two physical encodings of the directory format.
type Codec string

const (
	// Binary is the NumPy .npy encoding.
	Binary Codec = "npy"
	// Text is the delimited-text encoding.
	Text Codec = "txt"
)

// Valid reports whether c is a recognized codec keyword.
func (c Codec) Valid() bool { return c == Binary || c == Text }

// Save persists g into dir using the codec (Text uses DefaultFormat).
// Errors: ErrBadCodec, plus the underlying codec's failures.
func (c Codec) Save(dir string, g *graph.Graph) error {
	switch c {
	case Binary:
		return Save(dir, g)
	case Text:
		return SaveText(dir, g, DefaultFormat)
	default:
		return fmt.Errorf("gio: codec %q: %w", c, ErrBadCodec)
	}
}

// Load reconstructs a graph from dir using the codec.
// Errors: ErrBadCodec, plus the underlying codec's failures.
func (c Codec) Load(dir string, problem graph.Problem, agg graph.Aggregation) (*graph.Graph, error) {
	switch c {
	case Binary:
		return Load(dir, problem, agg)
	case Text:
		return LoadText(dir, problem, agg)
	default:
		return nil, fmt.Errorf("gio: codec %q: %w", c, ErrBadCodec)
	}
}

// MergePaths loads every directory in paths under the codec and merges the
// results in list order; the graph-level merge semantics (endpoint
// shifting, block-diagonal NodeGraph) live in graph.Merge.
// Errors: ErrBadCodec, any load failure, graph.ErrEmptyList and friends.
// Complexity: O(total size of the graphs).
func MergePaths(paths []string, problem graph.Problem, agg graph.Aggregation, codec Codec) (*graph.Graph, error) {
	if !codec.Valid() {
		return nil, fmt.Errorf("gio.MergePaths: codec %q: %w", codec, ErrBadCodec)
	}

	graphs := make([]*graph.Graph, 0, len(paths))
	for _, dir := range paths {
		g, err := codec.Load(dir, problem, agg)
		if err != nil {
			return nil, fmt.Errorf("gio.MergePaths: %s: %w", dir, err)
		}
		graphs = append(graphs, g)
	}

	return graph.Merge(graphs, problem, agg)
}
