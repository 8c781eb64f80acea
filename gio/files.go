// SPDX-License-Identifier: MIT
// Package gio — shared file-layout constants and helpers for both codecs.

package gio

import (
	"fmt"
	"math"
	"os"

	"gonum.org/v1/gonum/mat"

	"github.com/gognn/gognn/graph"
	"github.com/gognn/gognn/sparse"
)

// Array file stems; the codec appends its extension.
const (
	fileNodes         = "nodes"
	fileArcs          = "arcs"
	fileTargets       = "targets"
	fileSetMask       = "set_mask"
	fileOutputMask    = "output_mask"
	fileSampleWeights = "sample_weights"
	fileNodeGraph     = "NodeGraph"
)

// nodeGraphStackRows is the row count of the stacked NodeGraph array:
// row 0 = values, row 1 = row indices, row 2 = column indices.
const nodeGraphStackRows = 3

// dirPerm is the permission mode for freshly created graph directories.
const dirPerm = 0o755

// resetDir wipes dir (if present) and recreates it empty. Any file-system
// failure aborts; there is no rollback.
func resetDir(dir string) error {
	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("gio: reset %s: %w", dir, err)
	}
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return fmt.Errorf("gio: create %s: %w", dir, err)
	}

	return nil
}

// anyFalse reports whether a mask has at least one false entry, i.e. whether
// it deviates from the all-true default and must be persisted.
func anyFalse(mask []bool) bool {
	for _, b := range mask {
		if !b {
			return true
		}
	}

	return false
}

// anyNotOne reports whether a weight vector deviates from the uniform-1
// default and must be persisted.
func anyNotOne(w []float64) bool {
	for _, v := range w {
		if v != 1 {
			return true
		}
	}

	return false
}

// nodeGraphStack converts a non-degenerate NodeGraph into its stacked 3×K
// persisted form. The second return is false when the matrix is degenerate
// (absent, entryless, or a single-target graph) and must be omitted.
func nodeGraphStack(g *graph.Graph) (*mat.Dense, bool) {
	ng := g.NodeGraph()
	if ng.Empty() || ng.NNZ() == 0 || g.NumTargets() <= 1 {
		return nil, false
	}

	data, row, col := ng.Triplets()
	stack := mat.NewDense(nodeGraphStackRows, len(data), nil)
	for k := range data {
		stack.Set(0, k, data[k])
		stack.Set(1, k, float64(row[k]))
		stack.Set(2, k, float64(col[k]))
	}

	return stack, true
}

// nodeGraphFromStack rebuilds a sparse NodeGraph from its stacked 3×K form.
// The shape is inferred from the indices (every node carries an entry, so
// max(row)+1 recovers N; max(col)+1 recovers the sub-graph count), matching
// the producer in nodeGraphStack.
// Errors: ErrBadNodeGraph on a wrong row count or non-integral indices.
func nodeGraphFromStack(stack *mat.Dense) (*sparse.COO, error) {
	rows, k := stack.Dims()
	if rows != nodeGraphStackRows || k == 0 {
		return nil, fmt.Errorf("gio: stack is %d×%d: %w", rows, k, ErrBadNodeGraph)
	}

	data := make([]float64, k)
	row := make([]int, k)
	col := make([]int, k)
	maxRow, maxCol := 0, 0
	for i := 0; i < k; i++ {
		data[i] = stack.At(0, i)
		r, c := stack.At(1, i), stack.At(2, i)
		if r != math.Trunc(r) || c != math.Trunc(c) || r < 0 || c < 0 {
			return nil, fmt.Errorf("gio: entry %d has indices (%g,%g): %w", i, r, c, ErrBadNodeGraph)
		}
		row[i], col[i] = int(r), int(c)
		if row[i] > maxRow {
			maxRow = row[i]
		}
		if col[i] > maxCol {
			maxCol = col[i]
		}
	}

	ng, err := sparse.FromTriplets(maxRow+1, maxCol+1, data, row, col)
	if err != nil {
		return nil, fmt.Errorf("gio: %w", err)
	}

	return ng, nil
}

// exists reports whether path names an existing file.
func exists(path string) bool {
	_, err := os.Stat(path)

	return err == nil
}
