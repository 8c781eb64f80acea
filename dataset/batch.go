// SPDX-License-Identifier: MIT
// Package dataset — mini-batch iteration.
// Each batch is the disjoint union of its member graphs (graph.Merge) frozen
// into a tensor snapshot, so the learner sees one graph per step regardless
// of the batch size.

package dataset

import (
	"fmt"
	"math/rand"

	"github.com/gognn/gognn/graph"
	"github.com/gognn/gognn/tensor"
)

// Batcher cuts a fixed graph list into merged mini-batches. The iteration
// order is the identity unless WithShuffle was supplied; Reshuffle redraws
// the order between epochs.
type Batcher struct {
	graphs  []*graph.Graph
	problem graph.Problem
	agg     graph.Aggregation
	size    int
	order   []int
	rng     *rand.Rand
}

// NewBatcher validates the inputs and prepares the first epoch's order.
// Errors: ErrNoGraphs, ErrBadBatchSize, graph.ErrUnknownProblem,
// graph.ErrUnknownAggregation.
func NewBatcher(graphs []*graph.Graph, problem graph.Problem, agg graph.Aggregation, size int, opts ...Option) (*Batcher, error) {
	if len(graphs) == 0 {
		return nil, fmt.Errorf("dataset: batcher: %w", ErrNoGraphs)
	}
	if size <= 0 {
		return nil, fmt.Errorf("dataset: batcher size %d: %w", size, ErrBadBatchSize)
	}
	if !problem.Valid() {
		return nil, fmt.Errorf("dataset: batcher problem %q: %w", problem, graph.ErrUnknownProblem)
	}
	if !agg.Valid() {
		return nil, fmt.Errorf("dataset: batcher aggregation %q: %w", agg, graph.ErrUnknownAggregation)
	}

	o := gatherOptions(opts...)
	b := &Batcher{
		graphs:  append([]*graph.Graph(nil), graphs...),
		problem: problem,
		agg:     agg,
		size:    size,
		order:   identity(len(graphs)),
		rng:     o.rng,
	}
	b.Reshuffle()

	return b, nil
}

// Len returns the number of batches in one epoch.
func (b *Batcher) Len() int {
	return (len(b.graphs) + b.size - 1) / b.size
}

// NumGraphs returns the number of graphs behind the batcher.
func (b *Batcher) NumGraphs() int { return len(b.graphs) }

// Batch merges the i-th mini-batch into one graph and returns its tensor
// snapshot. The final batch may be short.
// Errors: ErrBadIndex, plus merge and snapshot failures.
// Complexity: O(size of the batch).
func (b *Batcher) Batch(i int) (*tensor.Tensor, error) {
	if i < 0 || i >= b.Len() {
		return nil, fmt.Errorf("dataset: batch %d of %d: %w", i, b.Len(), ErrBadIndex)
	}

	lo := i * b.size
	hi := lo + b.size
	if hi > len(b.order) {
		hi = len(b.order)
	}

	members := make([]*graph.Graph, 0, hi-lo)
	for _, k := range b.order[lo:hi] {
		members = append(members, b.graphs[k])
	}

	merged, err := graph.Merge(members, b.problem, b.agg)
	if err != nil {
		return nil, fmt.Errorf("dataset: batch %d: %w", i, err)
	}

	return tensor.FromGraph(merged)
}

// Reshuffle redraws the iteration order for the next epoch. Without a
// configured shuffle seed the order stays the identity.
func (b *Batcher) Reshuffle() {
	if b.rng == nil {
		return
	}
	b.rng.Shuffle(len(b.order), func(i, j int) {
		b.order[i], b.order[j] = b.order[j], b.order[i]
	})
}

// identity returns [0, 1, ..., n-1].
func identity(n int) []int {
	s := make([]int, n)
	for i := range s {
		s[i] = i
	}

	return s
}
