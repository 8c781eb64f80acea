// Package sparse provides a minimal COO (coordinate / triplet) sparse matrix
// for graph-tensor materialization.
//
// The sparse package provides:
//
//   - COO: a (row, col, value) triplet list with a declared shape, the
//     portable substrate behind incidence, adjacency and node-to-graph
//     matrices.
//   - Canonicalize: deterministic row-major reordering with duplicate
//     summation, the step that prepares a matrix for sparse-dense products.
//   - Transpose and BlockDiag: the two structural operations needed when
//     batching many graphs into one.
//   - ToDense / FromDense: converters to gonum's mat.Dense for dense math
//     and for test assertions.
//
// Triplets are kept explicit rather than hidden behind a native sparse type
// so that persistence (a stacked data/row/col array on disk) and the
// transpose-and-reorder step stay fully specified and portable.
//
// COO values are additive: duplicate (row, col) entries are legal and denote
// summation, exactly as in a matrix product against the triplet list.
package sparse
