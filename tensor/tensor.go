// SPDX-License-Identifier: MIT

// Package tensor materializes a graph.Graph into the immutable, consumer
// ready snapshot used by the iterative aggregation loop.
//
// Adjacency, ArcNode and NodeGraph are stored TRANSPOSED relative to the
// Graph versions, with canonical (row-major sorted, deduplicated) triplet
// order: the aggregation step computes sparse-dense products of the
// transposed incidence matrices against per-node/per-arc message matrices,
// so the snapshot carries them product-ready.
//
// Fields are exported for direct consumption; the read-only contract is by
// convention, mirroring the container's immutability. Use Copy for an
// independent snapshot.
package tensor

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/gognn/gognn/graph"
	"github.com/gognn/gognn/sparse"
)

var (
	// ErrNilGraph indicates a nil source graph in FromGraph.
	ErrNilGraph = errors.New("tensor: nil source graph")

	// ErrNilTensor indicates a nil *Tensor receiver.
	ErrNilTensor = errors.New("tensor: nil tensor")

	// ErrShapeMismatch indicates incompatible operand shapes in SpMM.
	ErrShapeMismatch = errors.New("tensor: shape mismatch")
)

// Tensor is a device-ready snapshot of one graph (or merged batch).
type Tensor struct {
	Nodes   *mat.Dense // N × DimNodeLabel
	Arcs    *mat.Dense // A × (2 + DimArcLabel)
	Targets *mat.Dense // target rows × DimTarget

	SetMask       []bool
	OutputMask    []bool
	SampleWeights []float64

	// Transposed, canonicalized sparse matrices: N×A incidence, N×N
	// adjacency, G×N pooling (0×0 when the source carries none).
	ArcNode   *sparse.COO
	Adjacency *sparse.COO
	NodeGraph *sparse.COO

	Aggregation graph.Aggregation
}

// FromGraph produces a snapshot of g. The source graph is not mutated; the
// snapshot shares no storage with it (the Graph getters already hand out
// defensive copies, and the sparse matrices are rebuilt transposed).
// Errors: ErrNilGraph.
// Complexity: O(size of the graph + nnz log nnz).
func FromGraph(g *graph.Graph) (*Tensor, error) {
	if g == nil {
		return nil, ErrNilGraph
	}

	return &Tensor{
		Nodes:         g.Nodes(),
		Arcs:          g.Arcs(),
		Targets:       g.Targets(),
		SetMask:       g.SetMask(),
		OutputMask:    g.OutputMask(),
		SampleWeights: g.SampleWeights(),
		ArcNode:       transposed(g.ArcNode()),
		Adjacency:     transposed(g.Adjacency()),
		NodeGraph:     transposed(g.NodeGraph()),
		Aggregation:   g.Aggregation(),
	}, nil
}

// Copy yields an independent snapshot with the same values.
// Errors: ErrNilTensor.
// Complexity: O(size of the snapshot).
func (t *Tensor) Copy() (*Tensor, error) {
	if t == nil {
		return nil, ErrNilTensor
	}

	return &Tensor{
		Nodes:         mat.DenseCopyOf(t.Nodes),
		Arcs:          mat.DenseCopyOf(t.Arcs),
		Targets:       mat.DenseCopyOf(t.Targets),
		SetMask:       append([]bool(nil), t.SetMask...),
		OutputMask:    append([]bool(nil), t.OutputMask...),
		SampleWeights: append([]float64(nil), t.SampleWeights...),
		ArcNode:       t.ArcNode.Clone(),
		Adjacency:     t.Adjacency.Clone(),
		NodeGraph:     t.NodeGraph.Clone(),
		Aggregation:   t.Aggregation,
	}, nil
}

// ---- Dimension getters (O(1)) ----

// NumNodes returns N.
func (t *Tensor) NumNodes() int { r, _ := t.Nodes.Dims(); return r }

// NumArcs returns A.
func (t *Tensor) NumArcs() int { r, _ := t.Arcs.Dims(); return r }

// NumTargets returns the number of target rows.
func (t *Tensor) NumTargets() int { r, _ := t.Targets.Dims(); return r }

// DimNodeLabel returns the node feature width.
func (t *Tensor) DimNodeLabel() int { _, c := t.Nodes.Dims(); return c }

// DimArcLabel returns the arc label width.
func (t *Tensor) DimArcLabel() int { _, c := t.Arcs.Dims(); return c - graph.ArcEndpointCols }

// DimTarget returns the target width.
func (t *Tensor) DimTarget() int { _, c := t.Targets.Dims(); return c }

// String renders a compact one-line summary for logs and debugging.
func (t *Tensor) String() string {
	set := "mixed"
	if allSet(t.SetMask) {
		set = "all"
	}

	return fmt.Sprintf("graph_tensor(n=%d, a=%d, ndim=%d, adim=%d, tdim=%d, set=%s, mode=%s)",
		t.NumNodes(), t.NumArcs(), t.DimNodeLabel(), t.DimArcLabel(), t.DimTarget(), set, t.Aggregation)
}

// SpMM computes the sparse × dense product a·b, the aggregation-loop kernel
// the transposed snapshot matrices feed: out[i,:] += v · b[j,:] for every
// triplet (i, j, v) of a. Duplicate triplets contribute additively.
// Errors: ErrNilTensor on nil operands, ErrShapeMismatch when
// a.Cols != rows(b).
// Determinism: accumulation follows stored triplet order; canonical
// matrices make it reproducible.
// Complexity: O(nnz · cols(b)).
func SpMM(a *sparse.COO, b *mat.Dense) (*mat.Dense, error) {
	if a == nil || b == nil {
		return nil, fmt.Errorf("tensor.SpMM: %w", ErrNilTensor)
	}
	rows, cols := b.Dims()
	if a.Cols() != rows {
		return nil, fmt.Errorf("tensor.SpMM: %d×%d by %d×%d: %w", a.Rows(), a.Cols(), rows, cols, ErrShapeMismatch)
	}

	out := mat.NewDense(a.Rows(), cols, nil)
	for k := 0; k < a.NNZ(); k++ {
		i, j, v, err := a.Triplet(k)
		if err != nil {
			return nil, fmt.Errorf("tensor.SpMM: %w", err)
		}
		for c := 0; c < cols; c++ {
			out.Set(i, c, out.At(i, c)+v*b.At(j, c))
		}
	}

	return out, nil
}

// transposed returns the canonical transposed form of c.
func transposed(c *sparse.COO) *sparse.COO {
	return c.Transpose().Canonicalize()
}

// allSet reports whether every mask entry is true.
func allSet(mask []bool) bool {
	for _, b := range mask {
		if !b {
			return false
		}
	}

	return true
}
