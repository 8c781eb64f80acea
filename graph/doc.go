// Package graph implements the host-memory container for one learning graph
// (or a merged multigraph) used by message-passing relational models.
//
// The graph package provides:
//
//   - Graph: ordered node/arc feature matrices, supervised targets, dataset
//     and output masks, per-target sample weights, and the derived sparse
//     matrices consumed by neighbor aggregation (ArcNode incidence,
//     Adjacency, NodeGraph pooling).
//   - BuildIncidence / BuildAdjacency: deterministic sparse builders under a
//     selectable aggregation policy (sum, normalized, average).
//   - Merge: block composition of many graphs into one globally consistent
//     multigraph with renumbered arc endpoints.
//
// A Graph is constructed once and treated as immutable afterwards;
// SetAggregation is the single sanctioned in-place mutation and rebuilds the
// derived matrices. Every getter returns a defensive copy, so caller-held
// references never alias internal state.
//
// Arc layout convention: arcs is an A×(2+DimArcLabel) matrix whose first two
// columns hold the integer source and destination node indices, followed by
// the arc label.
package graph
