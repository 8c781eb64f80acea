package graph_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/gognn/gognn/graph"
)

// twoGraphFixture returns two small graph-based graphs with matching widths.
func twoGraphFixture(t *testing.T) (*graph.Graph, *graph.Graph) {
	t.Helper()

	n1 := mat.NewDense(2, 1, []float64{1, 2})
	a1 := mat.NewDense(1, 3, []float64{0, 1, 0.1})
	t1 := mat.NewDense(1, 1, []float64{1})
	g1, err := graph.New(n1, a1, t1, graph.GraphBased, graph.AggSum)
	require.NoError(t, err)

	n2 := mat.NewDense(3, 1, []float64{3, 4, 5})
	a2 := mat.NewDense(2, 3, []float64{0, 2, 0.2, 1, 2, 0.3})
	t2 := mat.NewDense(1, 1, []float64{0})
	g2, err := graph.New(n2, a2, t2, graph.GraphBased, graph.AggSum)
	require.NoError(t, err)

	return g1, g2
}

// TestMergeShiftsEndpoints: node count adds up, g1's arcs are unchanged and
// g2's endpoints are shifted by g1.NumNodes().
func TestMergeShiftsEndpoints(t *testing.T) {
	g1, g2 := twoGraphFixture(t)

	m, err := graph.Merge([]*graph.Graph{g1, g2}, graph.GraphBased, graph.AggSum)
	require.NoError(t, err)

	require.Equal(t, 5, m.NumNodes())
	require.Equal(t, 3, m.NumArcs())
	require.Equal(t, 2, m.NumTargets())

	arcs := m.Arcs()
	// g1's arc unchanged.
	require.Equal(t, 0.0, arcs.At(0, 0))
	require.Equal(t, 1.0, arcs.At(0, 1))
	require.Equal(t, 0.1, arcs.At(0, 2))
	// g2's arcs shifted by 2.
	require.Equal(t, 2.0, arcs.At(1, 0))
	require.Equal(t, 4.0, arcs.At(1, 1))
	require.Equal(t, 3.0, arcs.At(2, 0))
	require.Equal(t, 4.0, arcs.At(2, 1))

	// Node features stack in list order.
	nodes := m.Nodes()
	require.Equal(t, []float64{1, 2, 3, 4, 5}, []float64{
		nodes.At(0, 0), nodes.At(1, 0), nodes.At(2, 0), nodes.At(3, 0), nodes.At(4, 0),
	})
}

// TestMergeBlockDiagonalNodeGraph: node→subgraph attribution is preserved,
// column sums stay 1 per constituent sub-graph.
func TestMergeBlockDiagonalNodeGraph(t *testing.T) {
	g1, g2 := twoGraphFixture(t)

	m, err := graph.Merge([]*graph.Graph{g1, g2}, graph.GraphBased, graph.AggSum)
	require.NoError(t, err)

	ng := m.NodeGraph()
	require.Equal(t, 5, ng.Rows())
	require.Equal(t, 2, ng.Cols())

	sums := ng.ColSums()
	require.InDelta(t, 1, sums[0], tol)
	require.InDelta(t, 1, sums[1], tol)

	// Entries in column 0 are 1/2 (two nodes), column 1 are 1/3 (three).
	for k := 0; k < ng.NNZ(); k++ {
		i, j, v, err := ng.Triplet(k)
		require.NoError(t, err)
		if j == 0 {
			require.Less(t, i, 2)
			require.InDelta(t, 0.5, v, tol)
		} else {
			require.GreaterOrEqual(t, i, 2)
			require.InDelta(t, 1.0/3.0, v, tol)
		}
	}
}

// TestMergeNodeBased: merging node-based graphs keeps masks and weights in
// list order and yields an absent NodeGraph.
func TestMergeNodeBased(t *testing.T) {
	n1 := mat.NewDense(2, 1, []float64{1, 2})
	a1 := mat.NewDense(1, 2, []float64{0, 1})
	t1 := mat.NewDense(2, 1, []float64{1, 0})
	g1, err := graph.New(n1, a1, t1, graph.NodeBased, graph.AggSum,
		graph.WithSetMask([]bool{true, false}),
		graph.WithSampleWeights([]float64{2, 3}))
	require.NoError(t, err)

	n2 := mat.NewDense(2, 1, []float64{3, 4})
	a2 := mat.NewDense(1, 2, []float64{1, 0})
	t2 := mat.NewDense(2, 1, []float64{0, 1})
	g2, err := graph.New(n2, a2, t2, graph.NodeBased, graph.AggSum)
	require.NoError(t, err)

	m, err := graph.Merge([]*graph.Graph{g1, g2}, graph.NodeBased, graph.AggSum)
	require.NoError(t, err)

	require.Equal(t, []bool{true, false, true, true}, m.SetMask())
	require.Equal(t, []float64{2, 3, 1, 1}, m.SampleWeights())
	require.True(t, m.NodeGraph().Empty())
}

func TestMergeRejectsBadInput(t *testing.T) {
	g1, g2 := twoGraphFixture(t)

	_, err := graph.Merge(nil, graph.GraphBased, graph.AggSum)
	require.ErrorIs(t, err, graph.ErrEmptyList)

	_, err = graph.Merge([]*graph.Graph{g1, nil}, graph.GraphBased, graph.AggSum)
	require.ErrorIs(t, err, graph.ErrNilGraph)

	// Differing target widths.
	n3 := mat.NewDense(2, 1, []float64{1, 2})
	a3 := mat.NewDense(1, 3, []float64{0, 1, 0.5})
	t3 := mat.NewDense(1, 2, []float64{1, 0})
	g3, err := graph.New(n3, a3, t3, graph.GraphBased, graph.AggSum)
	require.NoError(t, err)
	_, err = graph.Merge([]*graph.Graph{g2, g3}, graph.GraphBased, graph.AggSum)
	require.ErrorIs(t, err, graph.ErrDimensionMismatch)
}
