package sparse_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/gognn/gognn/sparse"
)

// TestNewValidation covers shape validation at construction.
func TestNewValidation(t *testing.T) {
	_, err := sparse.New(-1, 3)
	require.ErrorIs(t, err, sparse.ErrBadShape)

	c, err := sparse.New(0, 0)
	require.NoError(t, err)
	require.True(t, c.Empty())
	require.Equal(t, 0, c.NNZ())
}

func TestAppendBoundsAndFiniteness(t *testing.T) {
	c, err := sparse.New(2, 3)
	require.NoError(t, err)

	require.NoError(t, c.Append(0, 0, 1.5))
	require.NoError(t, c.Append(1, 2, -2))
	require.Equal(t, 2, c.NNZ())

	require.ErrorIs(t, c.Append(2, 0, 1), sparse.ErrOutOfRange)
	require.ErrorIs(t, c.Append(0, 3, 1), sparse.ErrOutOfRange)
	require.ErrorIs(t, c.Append(-1, 0, 1), sparse.ErrOutOfRange)

	nan := 0.0
	nan /= nan
	require.ErrorIs(t, c.Append(0, 0, nan), sparse.ErrNaNInf)
}

func TestFromTriplets(t *testing.T) {
	c, err := sparse.FromTriplets(3, 3, []float64{1, 2}, []int{0, 2}, []int{1, 2})
	require.NoError(t, err)
	require.Equal(t, 2, c.NNZ())

	// Ragged slices.
	_, err = sparse.FromTriplets(3, 3, []float64{1}, []int{0, 1}, []int{0, 1})
	require.ErrorIs(t, err, sparse.ErrBadShape)

	// Out-of-bounds coordinate.
	_, err = sparse.FromTriplets(2, 2, []float64{1}, []int{2}, []int{0})
	require.ErrorIs(t, err, sparse.ErrOutOfRange)
}

// TestCloneIndependence verifies no storage aliasing between original and clone.
func TestCloneIndependence(t *testing.T) {
	c, _ := sparse.New(2, 2)
	require.NoError(t, c.Append(0, 1, 7))

	cl := c.Clone()
	require.NoError(t, cl.Append(1, 0, 9))

	require.Equal(t, 1, c.NNZ())
	require.Equal(t, 2, cl.NNZ())

	// Mutating returned triplet slices must not touch the matrix either.
	data, _, _ := c.Triplets()
	data[0] = -1
	d2, _, _ := c.Triplets()
	require.Equal(t, 7.0, d2[0])
}

func TestTransposeTwiceIsIdentity(t *testing.T) {
	c, _ := sparse.New(2, 3)
	require.NoError(t, c.Append(0, 2, 4))
	require.NoError(t, c.Append(1, 0, 5))

	tt := c.Transpose()
	require.Equal(t, 3, tt.Rows())
	require.Equal(t, 2, tt.Cols())

	back := tt.Transpose()
	require.Equal(t, c.Rows(), back.Rows())
	require.Equal(t, c.Cols(), back.Cols())

	d1, r1, c1 := c.Triplets()
	d2, r2, c2 := back.Triplets()
	require.Equal(t, d1, d2)
	require.Equal(t, r1, r2)
	require.Equal(t, c1, c2)
}

// TestCanonicalize checks row-major ordering and duplicate summation.
func TestCanonicalize(t *testing.T) {
	c, _ := sparse.New(3, 3)
	require.NoError(t, c.Append(2, 1, 1))
	require.NoError(t, c.Append(0, 2, 2))
	require.NoError(t, c.Append(2, 1, 3)) // duplicate of the first entry
	require.NoError(t, c.Append(0, 0, 4))

	canon := c.Canonicalize()
	require.Equal(t, 3, canon.NNZ())

	data, row, col := canon.Triplets()
	require.Equal(t, []int{0, 0, 2}, row)
	require.Equal(t, []int{0, 2, 1}, col)
	require.Equal(t, []float64{4, 2, 4}, data)

	// Source is untouched.
	require.Equal(t, 4, c.NNZ())
}

func TestColSums(t *testing.T) {
	c, _ := sparse.New(2, 3)
	require.NoError(t, c.Append(0, 1, 0.5))
	require.NoError(t, c.Append(1, 1, 0.5))
	require.NoError(t, c.Append(1, 2, 2))

	require.Equal(t, []float64{0, 1, 2}, c.ColSums())
}

func TestBlockDiag(t *testing.T) {
	a, _ := sparse.New(2, 1)
	require.NoError(t, a.Append(0, 0, 0.5))
	require.NoError(t, a.Append(1, 0, 0.5))

	b, _ := sparse.New(3, 1)
	require.NoError(t, b.Append(0, 0, 1.0/3))
	require.NoError(t, b.Append(1, 0, 1.0/3))
	require.NoError(t, b.Append(2, 0, 1.0/3))

	empty, _ := sparse.New(0, 0)

	out, err := sparse.BlockDiag(a, empty, b)
	require.NoError(t, err)
	require.Equal(t, 5, out.Rows())
	require.Equal(t, 2, out.Cols())
	require.Equal(t, 5, out.NNZ())

	_, row, col := out.Triplets()
	require.Equal(t, []int{0, 1, 2, 3, 4}, row)
	require.Equal(t, []int{0, 0, 1, 1, 1}, col)

	// All-empty composition stays empty.
	e2, err := sparse.BlockDiag(empty, empty)
	require.NoError(t, err)
	require.True(t, e2.Empty())

	_, err = sparse.BlockDiag(a, nil)
	require.ErrorIs(t, err, sparse.ErrNilMatrix)
}

func TestDenseRoundTrip(t *testing.T) {
	d := mat.NewDense(2, 3, []float64{0, 1, 0, 2, 0, 3})

	c, err := sparse.FromDense(d)
	require.NoError(t, err)
	require.Equal(t, 3, c.NNZ())

	back, err := c.ToDense()
	require.NoError(t, err)
	require.True(t, mat.Equal(d, back))

	// Duplicates sum on densification.
	dup, _ := sparse.New(1, 1)
	require.NoError(t, dup.Append(0, 0, 1))
	require.NoError(t, dup.Append(0, 0, 2))
	dd, err := dup.ToDense()
	require.NoError(t, err)
	require.Equal(t, 3.0, dd.At(0, 0))

	// Empty matrices refuse densification.
	empty, _ := sparse.New(0, 4)
	_, err = empty.ToDense()
	require.ErrorIs(t, err, sparse.ErrBadShape)
}
