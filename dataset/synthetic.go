// SPDX-License-Identifier: MIT
// Package dataset — seeded synthetic graph generation.
// Useful for smoke tests and capacity checks when no real dataset is at
// hand; the same seed always yields the same graph.

package dataset

import (
	"fmt"
	"math/rand"

	"gonum.org/v1/gonum/mat"

	"github.com/gognn/gognn/graph"
)

// Synthetic builds one random graph: numArcs arcs drawn uniformly over the
// node set (self-loops avoided when numNodes > 1), labels and targets drawn
// uniformly from [0,1). The target row count follows the problem type: one
// per node, per arc, or a single graph-level row.
// Errors: ErrBadSize, graph.ErrUnknownProblem, graph.ErrUnknownAggregation.
// Complexity: O(numNodes·dimNodeLabel + numArcs·dimArcLabel).
func Synthetic(numNodes, numArcs, dimNodeLabel, dimArcLabel, dimTarget int,
	problem graph.Problem, agg graph.Aggregation, seed int64) (*graph.Graph, error) {
	if numNodes < 1 || numArcs < 1 || dimNodeLabel < 1 || dimArcLabel < 0 || dimTarget < 1 {
		return nil, fmt.Errorf("dataset: synthetic %d nodes, %d arcs, dims %d/%d/%d: %w",
			numNodes, numArcs, dimNodeLabel, dimArcLabel, dimTarget, ErrBadSize)
	}
	if !problem.Valid() {
		return nil, fmt.Errorf("dataset: synthetic problem %q: %w", problem, graph.ErrUnknownProblem)
	}

	rng := rand.New(rand.NewSource(seed))

	nodes := mat.NewDense(numNodes, dimNodeLabel, nil)
	fillUniform(nodes, rng)

	arcs := mat.NewDense(numArcs, graph.ArcEndpointCols+dimArcLabel, nil)
	for i := 0; i < numArcs; i++ {
		src := rng.Intn(numNodes)
		dst := rng.Intn(numNodes)
		for numNodes > 1 && dst == src {
			dst = rng.Intn(numNodes)
		}
		arcs.Set(i, 0, float64(src))
		arcs.Set(i, 1, float64(dst))
		for j := 0; j < dimArcLabel; j++ {
			arcs.Set(i, graph.ArcEndpointCols+j, rng.Float64())
		}
	}

	targetRows := numNodes
	switch problem {
	case graph.ArcBased:
		targetRows = numArcs
	case graph.GraphBased:
		targetRows = 1
	}
	targets := mat.NewDense(targetRows, dimTarget, nil)
	fillUniform(targets, rng)

	return graph.New(nodes, arcs, targets, problem, agg)
}

// SyntheticList builds count graphs from consecutive seeds starting at seed.
func SyntheticList(count, numNodes, numArcs, dimNodeLabel, dimArcLabel, dimTarget int,
	problem graph.Problem, agg graph.Aggregation, seed int64) ([]*graph.Graph, error) {
	if count < 1 {
		return nil, fmt.Errorf("dataset: synthetic list of %d: %w", count, ErrBadSize)
	}

	graphs := make([]*graph.Graph, count)
	for i := range graphs {
		g, err := Synthetic(numNodes, numArcs, dimNodeLabel, dimArcLabel, dimTarget, problem, agg, seed+int64(i))
		if err != nil {
			return nil, err
		}
		graphs[i] = g
	}

	return graphs, nil
}

// fillUniform fills every entry of m with a uniform [0,1) draw.
func fillUniform(m *mat.Dense, rng *rand.Rand) {
	rows, cols := m.Dims()
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			m.Set(i, j, rng.Float64())
		}
	}
}
