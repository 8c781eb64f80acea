// SPDX-License-Identifier: MIT
// Package graph — the Graph container.
//
// Two explicit construction paths exist, each with its own validation
// obligations:
//   - New derives ArcNode, Adjacency and NodeGraph from the raw arc list;
//   - NewWithMatrices accepts precomputed ArcNode and/or NodeGraph matrices
//     (the load and merge paths) and validates their structure against the
//     raw arrays instead of deriving them.
//
// All constructor inputs are deep-copied: a Graph owns its arrays
// exclusively, and every getter hands back a defensive copy.

package graph

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/gognn/gognn/sparse"
)

// Graph is the canonical host-memory representation of one graph (or a
// merged multigraph): feature arrays, supervision arrays and the derived
// sparse matrices consumed by the aggregation loop.
type Graph struct {
	problem Problem
	agg     Aggregation

	nodes   *mat.Dense // N × DimNodeLabel
	arcs    *mat.Dense // A × (2 + DimArcLabel)
	targets *mat.Dense // target rows × DimTarget

	setMask       []bool    // active dataset split, len = maskable units
	outputMask    []bool    // known-target units, len = len(setMask)
	sampleWeights []float64 // per-target loss weight, len = target rows

	arcNode   *sparse.COO // A × N incidence, one entry per row
	adjacency *sparse.COO // N × N, canonical (multi-arcs collapsed)
	nodeGraph *sparse.COO // N × G pooling, 0×0 unless graph-based/merged
}

// New constructs a Graph from raw arrays, deriving every sparse matrix.
// Stage 1 (Validate): problem/aggregation keywords, array presence, mask and
// weight lengths.
// Stage 2 (Execute): build ArcNode and Adjacency under the aggregation mode;
// build the uniform NodeGraph column for graph-based problems.
// Errors: ErrUnknownProblem, ErrUnknownAggregation, ErrNilInput,
// ErrDimensionMismatch, ErrArcEndpoint, ErrMaskLength, ErrWeightLength.
// Complexity: O(N + A log A + T).
func New(nodes, arcs, targets *mat.Dense, problem Problem, agg Aggregation, opts ...Option) (*Graph, error) {
	g, err := newBase(nodes, arcs, targets, problem, agg, opts...)
	if err != nil {
		return nil, err
	}

	if g.arcNode, err = BuildIncidence(g.arcs, g.NumNodes(), agg); err != nil {
		return nil, err
	}
	if g.adjacency, err = BuildAdjacency(g.arcs, g.NumNodes(), g.arcNode); err != nil {
		return nil, err
	}
	if problem == GraphBased {
		if g.nodeGraph, err = buildNodeGraph(g.NumNodes()); err != nil {
			return nil, fmt.Errorf("graph.New: %w", err)
		}
	} else {
		g.nodeGraph = emptyNodeGraph()
	}

	return g, nil
}

// NewWithMatrices constructs a Graph accepting precomputed sparse matrices.
// arcNode == nil derives the incidence from the arcs; a supplied arcNode is
// validated against the one-entry-per-row/destination-column invariant.
// nodeGraph == nil (or empty) falls back to the derived default; a supplied
// nodeGraph must have one row per node.
// Adjacency is always re-derived: it is a pure function of the arcs and the
// incidence weights.
// Errors: everything New returns, plus ErrIncidence for a malformed arcNode.
// Complexity: O(N + A log A + T + nnz).
func NewWithMatrices(nodes, arcs, targets *mat.Dense, problem Problem, agg Aggregation,
	arcNode, nodeGraph *sparse.COO, opts ...Option) (*Graph, error) {
	g, err := newBase(nodes, arcs, targets, problem, agg, opts...)
	if err != nil {
		return nil, err
	}

	if arcNode == nil {
		if g.arcNode, err = BuildIncidence(g.arcs, g.NumNodes(), agg); err != nil {
			return nil, err
		}
	} else {
		if arcNode.Rows() != g.NumArcs() || arcNode.Cols() != g.NumNodes() {
			return nil, fmt.Errorf("graph.NewWithMatrices: ArcNode %d×%d for %d arcs, %d nodes: %w",
				arcNode.Rows(), arcNode.Cols(), g.NumArcs(), g.NumNodes(), ErrDimensionMismatch)
		}
		g.arcNode = arcNode.Clone()
	}
	if g.adjacency, err = BuildAdjacency(g.arcs, g.NumNodes(), g.arcNode); err != nil {
		return nil, err
	}

	switch {
	case nodeGraph == nil || nodeGraph.Empty():
		if problem == GraphBased {
			if g.nodeGraph, err = buildNodeGraph(g.NumNodes()); err != nil {
				return nil, fmt.Errorf("graph.NewWithMatrices: %w", err)
			}
		} else {
			g.nodeGraph = emptyNodeGraph()
		}
	case nodeGraph.Rows() != g.NumNodes():
		return nil, fmt.Errorf("graph.NewWithMatrices: NodeGraph has %d rows for %d nodes: %w",
			nodeGraph.Rows(), g.NumNodes(), ErrDimensionMismatch)
	default:
		g.nodeGraph = nodeGraph.Clone()
	}

	return g, nil
}

// newBase validates keywords, arrays, masks and weights, and deep-copies the
// dense inputs. Shared by both construction paths.
func newBase(nodes, arcs, targets *mat.Dense, problem Problem, agg Aggregation, opts ...Option) (*Graph, error) {
	if !problem.Valid() {
		return nil, fmt.Errorf("graph: problem %q: %w", problem, ErrUnknownProblem)
	}
	if !agg.Valid() {
		return nil, fmt.Errorf("graph: aggregation %q: %w", agg, ErrUnknownAggregation)
	}
	if nodes == nil || arcs == nil || targets == nil {
		return nil, fmt.Errorf("graph: %w", ErrNilInput)
	}
	numNodes, _ := nodes.Dims()
	numArcs, arcCols := arcs.Dims()
	targetRows, _ := targets.Dims()
	if numNodes == 0 || numArcs == 0 || targetRows == 0 {
		return nil, fmt.Errorf("graph: %w", ErrNilInput)
	}
	if arcCols < ArcEndpointCols {
		return nil, fmt.Errorf("graph: arc matrix has %d columns: %w", arcCols, ErrDimensionMismatch)
	}

	o := gatherOptions(opts...)

	units := problem.maskUnits(numNodes, numArcs)
	setMask := o.setMask
	if setMask == nil {
		setMask = allTrue(units)
	}
	outputMask := o.outputMask
	if outputMask == nil {
		outputMask = allTrue(len(setMask))
	}
	if len(setMask) != units {
		return nil, fmt.Errorf("graph: set mask length %d, %d maskable units: %w", len(setMask), units, ErrMaskLength)
	}
	if len(setMask) != len(outputMask) {
		return nil, fmt.Errorf("graph: set mask %d vs output mask %d: %w", len(setMask), len(outputMask), ErrMaskLength)
	}

	weights := o.sampleWeights
	if weights == nil {
		weights = make([]float64, targetRows)
		for i := range weights {
			weights[i] = o.uniformWeight
		}
	}
	if len(weights) != targetRows {
		return nil, fmt.Errorf("graph: %d weights for %d targets: %w", len(weights), targetRows, ErrWeightLength)
	}

	g := &Graph{
		problem:       problem,
		agg:           agg,
		nodes:         mat.DenseCopyOf(nodes),
		arcs:          mat.DenseCopyOf(arcs),
		targets:       mat.DenseCopyOf(targets),
		setMask:       setMask,
		outputMask:    outputMask,
		sampleWeights: weights,
	}

	return g, nil
}

// SetAggregation re-derives ArcNode and Adjacency under the new policy in
// place. This is the one sanctioned post-construction mutation.
// Errors: ErrUnknownAggregation; the receiver is untouched on failure.
func (g *Graph) SetAggregation(agg Aggregation) error {
	if g == nil {
		return ErrNilGraph
	}
	if !agg.Valid() {
		return fmt.Errorf("graph.SetAggregation(%q): %w", agg, ErrUnknownAggregation)
	}

	arcNode, err := BuildIncidence(g.arcs, g.NumNodes(), agg)
	if err != nil {
		return err
	}
	adjacency, err := BuildAdjacency(g.arcs, g.NumNodes(), arcNode)
	if err != nil {
		return err
	}

	g.agg = agg
	g.arcNode = arcNode
	g.adjacency = adjacency

	return nil
}

// Copy produces a fully independent Graph with identical arrays; no buffer
// is shared with the original. Complexity: O(size of the graph).
func (g *Graph) Copy() (*Graph, error) {
	if g == nil {
		return nil, ErrNilGraph
	}

	// Reconstruction through the precomputed-matrix path revalidates
	// nothing beyond shapes and avoids rebuilding incidence weights.
	return NewWithMatrices(g.nodes, g.arcs, g.targets, g.problem, g.agg,
		g.arcNode, g.nodeGraph,
		WithSetMask(g.setMask), WithOutputMask(g.outputMask), WithSampleWeights(g.sampleWeights))
}

// ---- Dimension getters (O(1)) ----

// NumNodes returns N, the node count.
func (g *Graph) NumNodes() int { r, _ := g.nodes.Dims(); return r }

// NumArcs returns A, the arc count.
func (g *Graph) NumArcs() int { r, _ := g.arcs.Dims(); return r }

// NumTargets returns the number of target rows.
func (g *Graph) NumTargets() int { r, _ := g.targets.Dims(); return r }

// DimNodeLabel returns the node feature width.
func (g *Graph) DimNodeLabel() int { _, c := g.nodes.Dims(); return c }

// DimArcLabel returns the arc label width (endpoint columns excluded).
func (g *Graph) DimArcLabel() int { _, c := g.arcs.Dims(); return c - ArcEndpointCols }

// DimTarget returns the target width.
func (g *Graph) DimTarget() int { _, c := g.targets.Dims(); return c }

// Problem returns the supervision granularity.
func (g *Graph) Problem() Problem { return g.problem }

// Aggregation returns the current aggregation mode.
func (g *Graph) Aggregation() Aggregation { return g.agg }

// ---- Defensive-copy getters: callers can never corrupt internal state ----

// Nodes returns a copy of the N×DimNodeLabel node feature matrix.
func (g *Graph) Nodes() *mat.Dense { return mat.DenseCopyOf(g.nodes) }

// Arcs returns a copy of the A×(2+DimArcLabel) arc matrix.
func (g *Graph) Arcs() *mat.Dense { return mat.DenseCopyOf(g.arcs) }

// Targets returns a copy of the target matrix.
func (g *Graph) Targets() *mat.Dense { return mat.DenseCopyOf(g.targets) }

// SetMask returns a copy of the active-split mask.
func (g *Graph) SetMask() []bool { return append([]bool(nil), g.setMask...) }

// OutputMask returns a copy of the known-target mask.
func (g *Graph) OutputMask() []bool { return append([]bool(nil), g.outputMask...) }

// SampleWeights returns a copy of the per-target weights.
func (g *Graph) SampleWeights() []float64 { return append([]float64(nil), g.sampleWeights...) }

// ArcNode returns a copy of the A×N incidence matrix.
func (g *Graph) ArcNode() *sparse.COO { return g.arcNode.Clone() }

// Adjacency returns a copy of the N×N adjacency matrix.
func (g *Graph) Adjacency() *sparse.COO { return g.adjacency.Clone() }

// NodeGraph returns a copy of the N×G pooling matrix (0×0 when absent).
func (g *Graph) NodeGraph() *sparse.COO { return g.nodeGraph.Clone() }

// String renders a compact one-line summary for logs and debugging.
func (g *Graph) String() string {
	set := "mixed"
	if isAllTrue(g.setMask) {
		set = "all"
	}

	return fmt.Sprintf("graph(n=%d, a=%d, ndim=%d, adim=%d, tdim=%d, set=%s, mode=%s)",
		g.NumNodes(), g.NumArcs(), g.DimNodeLabel(), g.DimArcLabel(), g.DimTarget(), set, g.agg)
}

// allTrue returns a fresh all-true mask of length n.
func allTrue(n int) []bool {
	m := make([]bool, n)
	for i := range m {
		m[i] = true
	}

	return m
}

// isAllTrue reports whether every mask entry is set.
func isAllTrue(mask []bool) bool {
	for _, b := range mask {
		if !b {
			return false
		}
	}

	return true
}
