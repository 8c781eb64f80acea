// SPDX-License-Identifier: MIT
// Package sparse — COO triplet matrix implementation.
//
// Invariants maintained by every constructor and operation:
//   - rows >= 0, cols >= 0 (a 0×0 COO is the canonical "absent" matrix);
//   - len(data) == len(row) == len(col);
//   - every (row[k], col[k]) lies inside the declared shape;
//   - every data[k] is finite.
//
// Duplicate (row, col) pairs are legal: values are additive and collapse
// under Canonicalize.

package sparse

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"
)

// COO is a sparse matrix in coordinate (triplet) format with a declared
// shape. The zero value is an empty 0×0 matrix and is ready to use.
type COO struct {
	rows, cols int       // declared shape
	data       []float64 // nonzero values, parallel to row/col
	row, col   []int     // triplet coordinates
}

// New returns an empty rows×cols COO matrix.
// Errors: ErrBadShape if rows or cols is negative.
// Complexity: O(1).
func New(rows, cols int) (*COO, error) {
	if rows < 0 || cols < 0 {
		return nil, fmt.Errorf("sparse.New(%d,%d): %w", rows, cols, ErrBadShape)
	}

	return &COO{rows: rows, cols: cols}, nil
}

// FromTriplets builds a COO matrix from parallel triplet slices.
// The slices are copied; the caller keeps ownership of its arguments.
// Stage 1 (Validate): shape, slice-length agreement, bounds, finiteness.
// Stage 2 (Finalize): copy buffers into a fresh COO.
// Errors: ErrBadShape, ErrOutOfRange, ErrNaNInf.
// Complexity: O(nnz).
func FromTriplets(rows, cols int, data []float64, row, col []int) (*COO, error) {
	if rows < 0 || cols < 0 {
		return nil, fmt.Errorf("sparse.FromTriplets: %w", ErrBadShape)
	}
	if len(data) != len(row) || len(data) != len(col) {
		return nil, fmt.Errorf("sparse.FromTriplets: ragged triplets: %w", ErrBadShape)
	}
	for k := range data {
		if row[k] < 0 || row[k] >= rows || col[k] < 0 || col[k] >= cols {
			return nil, fmt.Errorf("sparse.FromTriplets: entry %d at (%d,%d): %w", k, row[k], col[k], ErrOutOfRange)
		}
		if isNonFinite(data[k]) {
			return nil, fmt.Errorf("sparse.FromTriplets: entry %d: %w", k, ErrNaNInf)
		}
	}

	c := &COO{
		rows: rows,
		cols: cols,
		data: append([]float64(nil), data...),
		row:  append([]int(nil), row...),
		col:  append([]int(nil), col...),
	}

	return c, nil
}

// Rows returns the declared row count. Complexity: O(1).
func (c *COO) Rows() int { return c.rows }

// Cols returns the declared column count. Complexity: O(1).
func (c *COO) Cols() int { return c.cols }

// NNZ returns the number of stored triplets (duplicates included).
// Complexity: O(1).
func (c *COO) NNZ() int { return len(c.data) }

// Empty reports whether the matrix has a degenerate shape (no addressable
// cells). An Empty COO stands for "matrix absent" throughout the module.
// Complexity: O(1).
func (c *COO) Empty() bool { return c == nil || c.rows == 0 || c.cols == 0 }

// Triplet returns the k-th stored triplet as (row, col, value).
// Errors: ErrOutOfRange if k is not a valid triplet ordinal.
// Complexity: O(1).
func (c *COO) Triplet(k int) (int, int, float64, error) {
	if k < 0 || k >= len(c.data) {
		return 0, 0, 0, fmt.Errorf("sparse.Triplet(%d): %w", k, ErrOutOfRange)
	}

	return c.row[k], c.col[k], c.data[k], nil
}

// Triplets returns copies of the triplet slices (data, row, col).
// The returned slices share no storage with the matrix, so callers may
// mutate them freely; this is the persistence-facing accessor.
// Complexity: O(nnz).
func (c *COO) Triplets() (data []float64, row, col []int) {
	data = append([]float64(nil), c.data...)
	row = append([]int(nil), c.row...)
	col = append([]int(nil), c.col...)

	return data, row, col
}

// Append adds one triplet (i, j, v).
// Errors: ErrOutOfRange for indices outside the declared shape,
// ErrNaNInf for non-finite values.
// Complexity: amortized O(1).
func (c *COO) Append(i, j int, v float64) error {
	if i < 0 || i >= c.rows || j < 0 || j >= c.cols {
		return fmt.Errorf("sparse.Append(%d,%d): %w", i, j, ErrOutOfRange)
	}
	if isNonFinite(v) {
		return fmt.Errorf("sparse.Append(%d,%d): %w", i, j, ErrNaNInf)
	}
	c.data = append(c.data, v)
	c.row = append(c.row, i)
	c.col = append(c.col, j)

	return nil
}

// Clone returns a deep copy sharing no storage with the receiver.
// Complexity: O(nnz).
func (c *COO) Clone() *COO {
	if c == nil {
		return nil
	}

	return &COO{
		rows: c.rows,
		cols: c.cols,
		data: append([]float64(nil), c.data...),
		row:  append([]int(nil), c.row...),
		col:  append([]int(nil), c.col...),
	}
}

// Transpose returns a new cols×rows matrix with every triplet's coordinates
// swapped. The receiver is not modified. Triplet order is preserved; apply
// Canonicalize afterwards when a sorted layout is required.
// Complexity: O(nnz).
func (c *COO) Transpose() *COO {
	t := &COO{
		rows: c.cols,
		cols: c.rows,
		data: append([]float64(nil), c.data...),
		row:  append([]int(nil), c.col...),
		col:  append([]int(nil), c.row...),
	}

	return t
}

// Canonicalize returns an equivalent matrix with triplets sorted row-major
// (row asc, then col asc) and duplicate coordinates merged by summation.
// This is the reorder step required before the matrix participates in a
// sparse-dense product on the consumer side.
// Stage 1 (Prepare): build a permutation sorted by (row, col).
// Stage 2 (Execute): emit triplets in order, folding equal coordinates.
// Determinism: stable for any input triplet order.
// Complexity: O(nnz log nnz) time, O(nnz) space.
func (c *COO) Canonicalize() *COO {
	n := len(c.data)
	perm := make([]int, n)
	for k := range perm {
		perm[k] = k
	}
	sort.Slice(perm, func(a, b int) bool {
		ka, kb := perm[a], perm[b]
		if c.row[ka] != c.row[kb] {
			return c.row[ka] < c.row[kb]
		}

		return c.col[ka] < c.col[kb]
	})

	out := &COO{rows: c.rows, cols: c.cols}
	for _, k := range perm {
		last := len(out.data) - 1
		// Fold into the previous triplet when the coordinate repeats.
		if last >= 0 && out.row[last] == c.row[k] && out.col[last] == c.col[k] {
			out.data[last] += c.data[k]
			continue
		}
		out.data = append(out.data, c.data[k])
		out.row = append(out.row, c.row[k])
		out.col = append(out.col, c.col[k])
	}

	return out
}

// ColSums returns the per-column sums of the matrix as a dense vector of
// length Cols. Duplicates contribute additively, matching product semantics.
// Complexity: O(nnz + cols).
func (c *COO) ColSums() []float64 {
	sums := make([]float64, c.cols)
	for k := range c.data {
		sums[c.col[k]] += c.data[k]
	}

	return sums
}

// BlockDiag composes matrices into one block-diagonal matrix: block i is
// placed at row offset sum(rows of blocks < i) and the analogous column
// offset. Empty (0×0) blocks contribute nothing and shift no offsets, so a
// list of all-empty blocks yields an empty matrix.
// Errors: ErrNilMatrix on a nil block.
// Complexity: O(total nnz).
func BlockDiag(blocks ...*COO) (*COO, error) {
	var totalRows, totalCols int
	for i, b := range blocks {
		if b == nil {
			return nil, fmt.Errorf("sparse.BlockDiag: block %d: %w", i, ErrNilMatrix)
		}
		totalRows += b.rows
		totalCols += b.cols
	}

	out := &COO{rows: totalRows, cols: totalCols}
	var rowOff, colOff int
	for _, b := range blocks {
		for k := range b.data {
			out.data = append(out.data, b.data[k])
			out.row = append(out.row, b.row[k]+rowOff)
			out.col = append(out.col, b.col[k]+colOff)
		}
		rowOff += b.rows
		colOff += b.cols
	}

	return out, nil
}

// ToDense materializes the matrix as a gonum mat.Dense, summing duplicate
// triplets into their shared cell.
// Errors: ErrBadShape when the matrix is empty (gonum rejects 0-sized Dense).
// Complexity: O(rows*cols + nnz).
func (c *COO) ToDense() (*mat.Dense, error) {
	if c.Empty() {
		return nil, fmt.Errorf("sparse.ToDense: empty matrix: %w", ErrBadShape)
	}
	d := mat.NewDense(c.rows, c.cols, nil)
	for k := range c.data {
		d.Set(c.row[k], c.col[k], d.At(c.row[k], c.col[k])+c.data[k])
	}

	return d, nil
}

// FromDense extracts the nonzero entries of d into a COO matrix in row-major
// order (already canonical).
// Errors: ErrNilMatrix on nil input, ErrNaNInf on non-finite entries.
// Complexity: O(rows*cols).
func FromDense(d mat.Matrix) (*COO, error) {
	if d == nil {
		return nil, fmt.Errorf("sparse.FromDense: %w", ErrNilMatrix)
	}
	r, cl := d.Dims()
	out := &COO{rows: r, cols: cl}
	for i := 0; i < r; i++ {
		for j := 0; j < cl; j++ {
			v := d.At(i, j)
			if isNonFinite(v) {
				return nil, fmt.Errorf("sparse.FromDense: (%d,%d): %w", i, j, ErrNaNInf)
			}
			if v == 0 {
				continue
			}
			out.data = append(out.data, v)
			out.row = append(out.row, i)
			out.col = append(out.col, j)
		}
	}

	return out, nil
}

// isNonFinite reports whether v is NaN or ±Inf.
func isNonFinite(v float64) bool {
	return math.IsNaN(v) || math.IsInf(v, 0)
}
