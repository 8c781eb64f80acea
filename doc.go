// Package gognn hosts the data-plane containers of a message-passing graph
// learner: dense feature arrays, the sparse matrices that drive neighborhood
// aggregation, and the plumbing that moves both between disk, host memory
// and a training loop.
//
// The module is organized as flat top-level packages:
//
//	sparse/  — coordinate-format sparse matrices (transpose, canonicalize,
//	           block-diagonal composition, dense bridges)
//	graph/   — the Graph container: nodes, arcs, targets, masks, weights,
//	           plus the derived ArcNode, Adjacency and NodeGraph matrices
//	           and the disjoint-union Merge
//	tensor/  — frozen, transposed snapshots of a Graph ready for the
//	           aggregation loop, with a sparse×dense multiply kernel
//	gio/     — directory persistence in interchangeable binary (.npy) and
//	           text codecs
//	dataset/ — manifest-driven dataset composition: load, split, normalize
//	           and mini-batch graphs into tensors
//
// Model construction, gradients and the training driver itself live outside
// this module; everything here is the data they consume.
package gognn
