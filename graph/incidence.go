// SPDX-License-Identifier: MIT
// Package graph — sparse incidence and adjacency builders.
//
// Contract (shared by every aggregation mode):
//   - ArcNode has shape (A, N): row = arc ordinal, column = destination
//     node index, exactly one entry per row. Right-multiplying a per-arc
//     message matrix against it aggregates incoming messages per node.
//   - Adjacency has shape (N, N): the same weights keyed by
//     (source, destination) pairs; multi-arcs between the same pair
//     collapse by summation.
//   - Weights: sum ⇒ 1; normalized ⇒ 1/A; average ⇒ 1/indegree(dest), so
//     the weights of arcs terminating at one node sum to 1.
//
// Isolated nodes simply have an all-zero ArcNode column; node ordering is
// preserved.

package graph

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/gognn/gognn/sparse"
)

// BuildIncidence builds the A×N arc-to-node incidence matrix from an arc
// matrix (first two columns = endpoint indices) under the given aggregation
// mode.
// Stage 1 (Validate): aggregation keyword, endpoint integrality and bounds.
// Stage 2 (Execute): one weighted triplet per arc at (ordinal, destination).
// Errors: ErrUnknownAggregation, ErrDimensionMismatch, ErrArcEndpoint.
// Determinism: triplets are emitted in arc order.
// Complexity: O(A) time, O(A + N) space.
func BuildIncidence(arcs *mat.Dense, numNodes int, mode Aggregation) (*sparse.COO, error) {
	if !mode.Valid() {
		return nil, fmt.Errorf("graph.BuildIncidence(%q): %w", mode, ErrUnknownAggregation)
	}
	// Incidence uses destinations only; sources feed BuildAdjacency.
	_, dst, err := arcEndpoints(arcs, numNodes)
	if err != nil {
		return nil, fmt.Errorf("graph.BuildIncidence: %w", err)
	}

	numArcs := len(dst)
	weights := incidenceWeights(dst, numArcs, numNodes, mode)

	an, err := sparse.New(numArcs, numNodes)
	if err != nil {
		return nil, fmt.Errorf("graph.BuildIncidence: %w", err)
	}
	for i, d := range dst {
		// Row i carries exactly one entry: this arc delivers its message
		// to exactly one destination node.
		if err = an.Append(i, d, weights[i]); err != nil {
			return nil, fmt.Errorf("graph.BuildIncidence: %w", err)
		}
	}

	return an, nil
}

// BuildAdjacency builds the N×N aggregation-weighted adjacency matrix as the
// arc-collapsed form of arcNode: the weight of arc i is re-keyed from
// (i, dst) to (src, dst), and parallel arcs between the same node pair are
// summed into one canonical entry.
// Errors: ErrDimensionMismatch, ErrArcEndpoint, ErrIncidence when arcNode
// does not hold exactly one entry per arc row at that arc's destination.
// Complexity: O(A log A) time (canonical sort), O(A) space.
func BuildAdjacency(arcs *mat.Dense, numNodes int, arcNode *sparse.COO) (*sparse.COO, error) {
	src, dst, err := arcEndpoints(arcs, numNodes)
	if err != nil {
		return nil, fmt.Errorf("graph.BuildAdjacency: %w", err)
	}
	weights, err := incidenceRowValues(arcNode, dst)
	if err != nil {
		return nil, fmt.Errorf("graph.BuildAdjacency: %w", err)
	}

	adj, err := sparse.New(numNodes, numNodes)
	if err != nil {
		return nil, fmt.Errorf("graph.BuildAdjacency: %w", err)
	}
	for i := range src {
		if err = adj.Append(src[i], dst[i], weights[i]); err != nil {
			return nil, fmt.Errorf("graph.BuildAdjacency: %w", err)
		}
	}

	// Collapse multi-arcs between identical (src,dst) pairs by summation.
	return adj.Canonicalize(), nil
}

// buildNodeGraph returns the uniform N×1 node-to-graph pooling column for a
// single graph-based graph: each entry 1/N, so pooling averages node states
// into one graph-level readout row.
func buildNodeGraph(numNodes int) (*sparse.COO, error) {
	ng, err := sparse.New(numNodes, 1)
	if err != nil {
		return nil, err
	}
	w := 1.0 / float64(numNodes)
	for i := 0; i < numNodes; i++ {
		if err = ng.Append(i, 0, w); err != nil {
			return nil, err
		}
	}

	return ng, nil
}

// emptyNodeGraph returns the canonical "absent" 0×0 NodeGraph used by
// node- and arc-based problems.
func emptyNodeGraph() *sparse.COO {
	ng, _ := sparse.New(0, 0) // shape (0,0) never fails validation

	return ng
}

// incidenceWeights computes the per-arc incidence weight vector for a mode.
// Callers guarantee mode validity and endpoint bounds.
func incidenceWeights(dst []int, numArcs, numNodes int, mode Aggregation) []float64 {
	weights := make([]float64, numArcs)
	switch mode {
	case AggSum:
		for i := range weights {
			weights[i] = 1
		}
	case AggNormalized:
		inv := 1.0 / float64(numArcs)
		for i := range weights {
			weights[i] = inv
		}
	case AggAverage:
		// In-degree per destination node, then 1/indeg for each arc:
		// arcs sharing a destination contribute 1 in total at that node.
		indeg := make([]int, numNodes)
		for _, d := range dst {
			indeg[d]++
		}
		for i, d := range dst {
			weights[i] = 1.0 / float64(indeg[d])
		}
	}

	return weights
}

// incidenceRowValues extracts the single stored value of each arcNode row,
// validating the one-entry-per-row invariant and the destination column.
func incidenceRowValues(arcNode *sparse.COO, dst []int) ([]float64, error) {
	if arcNode == nil {
		return nil, ErrNilGraph
	}
	if arcNode.Rows() != len(dst) {
		return nil, fmt.Errorf("arc rows %d vs incidence rows %d: %w", len(dst), arcNode.Rows(), ErrDimensionMismatch)
	}

	values := make([]float64, len(dst))
	seen := make([]bool, len(dst))
	for k := 0; k < arcNode.NNZ(); k++ {
		i, j, v, err := arcNode.Triplet(k)
		if err != nil {
			return nil, err
		}
		if seen[i] || j != dst[i] {
			return nil, fmt.Errorf("row %d: %w", i, ErrIncidence)
		}
		seen[i] = true
		values[i] = v
	}
	for i, ok := range seen {
		if !ok {
			return nil, fmt.Errorf("row %d has no entry: %w", i, ErrIncidence)
		}
	}

	return values, nil
}

// arcEndpoints validates the arc matrix layout and extracts integral
// endpoint indices. Every endpoint must be an integer value in [0, numNodes).
func arcEndpoints(arcs *mat.Dense, numNodes int) (src, dst []int, err error) {
	if arcs == nil {
		return nil, nil, ErrNilInput
	}
	numArcs, cols := arcs.Dims()
	if cols < ArcEndpointCols {
		return nil, nil, fmt.Errorf("arc matrix has %d columns: %w", cols, ErrDimensionMismatch)
	}

	src = make([]int, numArcs)
	dst = make([]int, numArcs)
	for i := 0; i < numArcs; i++ {
		if src[i], err = nodeIndex(arcs.At(i, arcSrcCol), numNodes); err != nil {
			return nil, nil, fmt.Errorf("arc %d source: %w", i, err)
		}
		if dst[i], err = nodeIndex(arcs.At(i, arcDstCol), numNodes); err != nil {
			return nil, nil, fmt.Errorf("arc %d destination: %w", i, err)
		}
	}

	return src, dst, nil
}

// nodeIndex converts a float endpoint cell into a validated node index.
func nodeIndex(v float64, numNodes int) (int, error) {
	if v != math.Trunc(v) || v < 0 || int(v) >= numNodes {
		return 0, fmt.Errorf("value %g with %d nodes: %w", v, numNodes, ErrArcEndpoint)
	}

	return int(v), nil
}
