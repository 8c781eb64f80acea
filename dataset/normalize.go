// SPDX-License-Identifier: MIT
// Package dataset — min-max feature scaling.
// Statistics are fitted on the training graphs only and the resulting affine
// map is applied unchanged to the validation and test graphs, so no
// information leaks across the split boundary.

package dataset

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/gognn/gognn/graph"
)

// featureStats holds per-column extrema of node and arc labels over the
// training graphs. Arc endpoint columns are never scaled.
type featureStats struct {
	nodeMin, nodeMax []float64
	arcMin, arcMax   []float64
}

// Normalize maps every node and arc label column into [lo, hi] using min-max
// statistics of the training graphs, and returns rescaled copies of all
// three slices; the inputs are left untouched. A column that is constant
// across the training set maps to lo everywhere. Arc endpoints, targets,
// masks, weights and the sparse matrices carry over unchanged.
// Errors: ErrBadRange, ErrNoGraphs, ErrBadSize on label-width disagreement.
// Complexity: O(total size of the graphs).
func Normalize(train, valid, test []*graph.Graph, lo, hi float64) (tr, va, te []*graph.Graph, err error) {
	if lo >= hi {
		return nil, nil, nil, fmt.Errorf("dataset: normalize to [%g,%g]: %w", lo, hi, ErrBadRange)
	}
	if len(train) == 0 {
		return nil, nil, nil, fmt.Errorf("dataset: normalize: %w", ErrNoGraphs)
	}

	stats, err := fitStats(train)
	if err != nil {
		return nil, nil, nil, err
	}

	scale := func(graphs []*graph.Graph) ([]*graph.Graph, error) {
		out := make([]*graph.Graph, len(graphs))
		for i, g := range graphs {
			s, serr := rescale(g, stats, lo, hi)
			if serr != nil {
				return nil, serr
			}
			out[i] = s
		}

		return out, nil
	}

	if tr, err = scale(train); err != nil {
		return nil, nil, nil, err
	}
	if va, err = scale(valid); err != nil {
		return nil, nil, nil, err
	}
	if te, err = scale(test); err != nil {
		return nil, nil, nil, err
	}

	return tr, va, te, nil
}

// fitStats accumulates per-column extrema over the training graphs.
func fitStats(train []*graph.Graph) (*featureStats, error) {
	ndim := train[0].DimNodeLabel()
	adim := train[0].DimArcLabel()

	s := &featureStats{
		nodeMin: filled(ndim, math.Inf(1)),
		nodeMax: filled(ndim, math.Inf(-1)),
		arcMin:  filled(adim, math.Inf(1)),
		arcMax:  filled(adim, math.Inf(-1)),
	}

	for _, g := range train {
		if g.DimNodeLabel() != ndim || g.DimArcLabel() != adim {
			return nil, fmt.Errorf("dataset: normalize: node/arc label widths %d/%d vs %d/%d: %w",
				g.DimNodeLabel(), g.DimArcLabel(), ndim, adim, ErrBadSize)
		}
		nodes, arcs := g.Nodes(), g.Arcs()
		for j := 0; j < ndim; j++ {
			col := mat.Col(nil, j, nodes)
			s.nodeMin[j] = math.Min(s.nodeMin[j], floats.Min(col))
			s.nodeMax[j] = math.Max(s.nodeMax[j], floats.Max(col))
		}
		for j := 0; j < adim; j++ {
			col := mat.Col(nil, graph.ArcEndpointCols+j, arcs)
			s.arcMin[j] = math.Min(s.arcMin[j], floats.Min(col))
			s.arcMax[j] = math.Max(s.arcMax[j], floats.Max(col))
		}
	}

	return s, nil
}

// rescale rebuilds one graph with affinely mapped node and arc labels.
func rescale(g *graph.Graph, s *featureStats, lo, hi float64) (*graph.Graph, error) {
	if g.DimNodeLabel() != len(s.nodeMin) || g.DimArcLabel() != len(s.arcMin) {
		return nil, fmt.Errorf("dataset: normalize: node/arc label widths %d/%d vs %d/%d: %w",
			g.DimNodeLabel(), g.DimArcLabel(), len(s.nodeMin), len(s.arcMin), ErrBadSize)
	}

	nodes := g.Nodes()
	rows, _ := nodes.Dims()
	for j := 0; j < len(s.nodeMin); j++ {
		for i := 0; i < rows; i++ {
			nodes.Set(i, j, affine(nodes.At(i, j), s.nodeMin[j], s.nodeMax[j], lo, hi))
		}
	}

	arcs := g.Arcs()
	rows, _ = arcs.Dims()
	for j := 0; j < len(s.arcMin); j++ {
		c := graph.ArcEndpointCols + j
		for i := 0; i < rows; i++ {
			arcs.Set(i, c, affine(arcs.At(i, c), s.arcMin[j], s.arcMax[j], lo, hi))
		}
	}

	// Endpoints are untouched, so the incidence and pooling matrices stay
	// valid and transfer as-is.
	return graph.NewWithMatrices(nodes, arcs, g.Targets(), g.Problem(), g.Aggregation(),
		g.ArcNode(), g.NodeGraph(),
		graph.WithSetMask(g.SetMask()), graph.WithOutputMask(g.OutputMask()),
		graph.WithSampleWeights(g.SampleWeights()))
}

// affine maps x from [min,max] into [lo,hi]; a degenerate source interval
// collapses to lo.
func affine(x, min, max, lo, hi float64) float64 {
	if max <= min {
		return lo
	}

	return lo + (x-min)*(hi-lo)/(max-min)
}

// filled returns a slice of n copies of v.
func filled(n int, v float64) []float64 {
	s := make([]float64, n)
	for i := range s {
		s[i] = v
	}

	return s
}
