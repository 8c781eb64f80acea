// SPDX-License-Identifier: MIT

// Package graph: domain types shared across constructors, builders and
// persistence. String-backed constants keep logs and manifests readable with
// the same single-letter / keyword vocabulary the datasets were produced with.
package graph

// Problem declares the supervision granularity of a graph: one target per
// node, per arc, or per constituent sub-graph.
type Problem string

const (
	// NodeBased supervises individual nodes ("n").
	NodeBased Problem = "n"
	// ArcBased supervises individual arcs ("a").
	ArcBased Problem = "a"
	// GraphBased supervises whole (sub-)graphs ("g").
	GraphBased Problem = "g"
)

// Valid reports whether p is one of the recognized problem types.
func (p Problem) Valid() bool {
	return p == NodeBased || p == ArcBased || p == GraphBased
}

// maskUnits returns the number of maskable units for the problem: arcs for
// arc-based supervision, nodes otherwise.
func (p Problem) maskUnits(numNodes, numArcs int) int {
	if p == ArcBased {
		return numArcs
	}

	return numNodes
}

// Aggregation selects the incoming-message weighting policy used when the
// ArcNode and Adjacency matrices are built.
type Aggregation string

const (
	// AggSum weights every arc 1: aggregation yields the plain sum of
	// incoming messages.
	AggSum Aggregation = "sum"
	// AggNormalized weights every arc 1/A (A = arc count): aggregation
	// yields messages normalized by the total number of arcs.
	AggNormalized Aggregation = "normalized"
	// AggAverage weights each arc 1/indegree(destination): weights of arcs
	// sharing a destination sum to 1, yielding the average incoming message.
	AggAverage Aggregation = "average"
)

// Valid reports whether a is one of the recognized aggregation modes.
func (a Aggregation) Valid() bool {
	return a == AggSum || a == AggNormalized || a == AggAverage
}

// Arc matrix layout: the first two columns carry integer endpoint indices,
// the remainder is the arc label.
const (
	arcSrcCol = 0 // source node index column
	arcDstCol = 1 // destination node index column

	// ArcEndpointCols is the number of leading arc-matrix columns reserved
	// for endpoint indices.
	ArcEndpointCols = 2
)
