// SPDX-License-Identifier: MIT
// Package graph — batch composition.
//
// Merge concatenates many graphs into one block-structured multigraph:
// nodes, targets, masks and weights are stacked in list order, arc endpoint
// indices are shifted by the cumulative node count of the preceding graphs,
// and the NodeGraph of the result is the block-diagonal composition of the
// inputs' NodeGraphs, preserving node→subgraph attribution after the merge.
//
// The block-diagonal NodeGraph is built whenever any input carries one,
// regardless of the problem type: a merged graph keeps its per-subgraph
// bookkeeping even under node- or arc-based supervision, and an all-absent
// input list simply yields an absent NodeGraph.

package graph

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/gognn/gognn/sparse"
)

// Merge composes the input graphs, in list order, into a single Graph under
// the given problem type and aggregation mode.
// Stage 1 (Validate): non-empty list, non-nil members, agreeing label widths.
// Stage 2 (Execute): stack arrays, shift arc endpoints, block-diag NodeGraph.
// Stage 3 (Finalize): rebuild through NewWithMatrices (fresh incidence under
// the requested mode).
// Errors: ErrEmptyList, ErrNilGraph, ErrDimensionMismatch, plus anything the
// constructor raises.
// Complexity: O(total graph size + total arcs log total arcs).
func Merge(graphs []*Graph, problem Problem, agg Aggregation) (*Graph, error) {
	if len(graphs) == 0 {
		return nil, fmt.Errorf("graph.Merge: %w", ErrEmptyList)
	}

	first := graphs[0]
	var totalNodes, totalArcs, totalTargets, totalUnits int
	for i, g := range graphs {
		if g == nil {
			return nil, fmt.Errorf("graph.Merge: element %d: %w", i, ErrNilGraph)
		}
		if g.DimNodeLabel() != first.DimNodeLabel() ||
			g.DimArcLabel() != first.DimArcLabel() ||
			g.DimTarget() != first.DimTarget() {
			return nil, fmt.Errorf("graph.Merge: element %d label widths differ: %w", i, ErrDimensionMismatch)
		}
		totalNodes += g.NumNodes()
		totalArcs += g.NumArcs()
		totalTargets += g.NumTargets()
		totalUnits += problem.maskUnits(g.NumNodes(), g.NumArcs())
	}

	nodes := mat.NewDense(totalNodes, first.DimNodeLabel(), nil)
	arcs := mat.NewDense(totalArcs, ArcEndpointCols+first.DimArcLabel(), nil)
	targets := mat.NewDense(totalTargets, first.DimTarget(), nil)
	setMask := make([]bool, 0, totalUnits)
	outputMask := make([]bool, 0, totalUnits)
	weights := make([]float64, 0, totalTargets)
	nodeGraphs := make([]*sparse.COO, 0, len(graphs))

	var nodeOff, arcOff, targetOff int
	for _, g := range graphs {
		copyRows(nodes, nodeOff, g.nodes)
		copyRows(targets, targetOff, g.targets)

		// Shift endpoint indices into the merged node numbering; labels
		// pass through untouched.
		numArcs, arcCols := g.arcs.Dims()
		for i := 0; i < numArcs; i++ {
			arcs.Set(arcOff+i, arcSrcCol, g.arcs.At(i, arcSrcCol)+float64(nodeOff))
			arcs.Set(arcOff+i, arcDstCol, g.arcs.At(i, arcDstCol)+float64(nodeOff))
			for j := ArcEndpointCols; j < arcCols; j++ {
				arcs.Set(arcOff+i, j, g.arcs.At(i, j))
			}
		}

		setMask = append(setMask, g.setMask...)
		outputMask = append(outputMask, g.outputMask...)
		weights = append(weights, g.sampleWeights...)
		nodeGraphs = append(nodeGraphs, g.nodeGraph)

		nodeOff += g.NumNodes()
		arcOff += numArcs
		targetOff += g.NumTargets()
	}

	nodeGraph, err := sparse.BlockDiag(nodeGraphs...)
	if err != nil {
		return nil, fmt.Errorf("graph.Merge: %w", err)
	}

	return NewWithMatrices(nodes, arcs, targets, problem, agg, nil, nodeGraph,
		WithSetMask(setMask), WithOutputMask(outputMask), WithSampleWeights(weights))
}

// copyRows copies src into dst starting at row offset off. Shapes are
// guaranteed compatible by Merge's width validation.
func copyRows(dst *mat.Dense, off int, src *mat.Dense) {
	rows, cols := src.Dims()
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			dst.Set(off+i, j, src.At(i, j))
		}
	}
}
