package dataset_test

import (
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/gognn/gognn/dataset"
	"github.com/gognn/gognn/gio"
	"github.com/gognn/gognn/graph"
)

const tol = 1e-12

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func manifestFixture() dataset.Manifest {
	return dataset.Manifest{
		Problem:       graph.GraphBased,
		Aggregation:   graph.AggAverage,
		Codec:         gio.Binary,
		BatchSize:     2,
		TrainFraction: 0.5,
		ValidFraction: 0.25,
		Seed:          7,
	}
}

func TestManifestRoundTrip(t *testing.T) {
	dir := t.TempDir()
	want := manifestFixture()
	require.NoError(t, dataset.SaveManifest(dir, want))

	got, err := dataset.LoadManifest(dir)
	require.NoError(t, err)
	require.Equal(t, want, got)
}

func TestManifestDefaults(t *testing.T) {
	dir := t.TempDir()
	m := dataset.Manifest{Problem: graph.NodeBased, Aggregation: graph.AggSum}
	require.NoError(t, dataset.SaveManifest(dir, m))

	got, err := dataset.LoadManifest(dir)
	require.NoError(t, err)
	require.Equal(t, gio.Binary, got.Codec)
	require.Equal(t, dataset.DefaultBatchSize, got.BatchSize)
	require.InDelta(t, dataset.DefaultTrainFraction, got.TrainFraction, tol)
	require.InDelta(t, dataset.DefaultValidFraction, got.ValidFraction, tol)
}

func TestManifestValidation(t *testing.T) {
	bad := manifestFixture()
	bad.Problem = "x"
	require.ErrorIs(t, bad.Validate(), dataset.ErrBadManifest)

	bad = manifestFixture()
	bad.Codec = "json"
	require.ErrorIs(t, bad.Validate(), dataset.ErrBadManifest)

	bad = manifestFixture()
	bad.TrainFraction = 0.9
	bad.ValidFraction = 0.3
	require.ErrorIs(t, bad.Validate(), dataset.ErrBadFraction)

	bad = manifestFixture()
	bad.BatchSize = -1
	require.ErrorIs(t, bad.Validate(), dataset.ErrBadBatchSize)

	_, err := dataset.LoadManifest(t.TempDir())
	require.ErrorIs(t, err, dataset.ErrBadManifest)
}

func TestSplitPartition(t *testing.T) {
	train, valid, test, err := dataset.Split(10, 0.7, 0.2, 42)
	require.NoError(t, err)
	require.Len(t, train, 7)
	require.Len(t, valid, 2)
	require.Len(t, test, 1)

	seen := map[int]bool{}
	for _, idx := range [][]int{train, valid, test} {
		for _, i := range idx {
			require.False(t, seen[i], "index %d assigned twice", i)
			seen[i] = true
		}
	}
	require.Len(t, seen, 10)

	// Same seed, same partition.
	train2, valid2, test2, err := dataset.Split(10, 0.7, 0.2, 42)
	require.NoError(t, err)
	require.Equal(t, train, train2)
	require.Equal(t, valid, valid2)
	require.Equal(t, test, test2)
}

func TestSplitValidation(t *testing.T) {
	_, _, _, err := dataset.Split(0, 0.5, 0.2, 1)
	require.ErrorIs(t, err, dataset.ErrNoGraphs)

	_, _, _, err = dataset.Split(10, 0.8, 0.4, 1)
	require.ErrorIs(t, err, dataset.ErrBadFraction)

	_, _, _, err = dataset.Split(10, -0.1, 0.2, 1)
	require.ErrorIs(t, err, dataset.ErrBadFraction)
}

// trainScaleFixture: node labels span [0,4] in column 0, constant in
// column 1; arc labels span [1,3].
func trainScaleFixture(t *testing.T) *graph.Graph {
	t.Helper()
	nodes := mat.NewDense(3, 2, []float64{0, 5, 2, 5, 4, 5})
	arcs := mat.NewDense(2, 3, []float64{0, 1, 1, 1, 2, 3})
	targets := mat.NewDense(3, 1, []float64{0, 1, 0})
	g, err := graph.New(nodes, arcs, targets, graph.NodeBased, graph.AggSum)
	require.NoError(t, err)

	return g
}

func TestNormalizeTrainRange(t *testing.T) {
	g := trainScaleFixture(t)

	tr, va, te, err := dataset.Normalize([]*graph.Graph{g}, nil, nil, 0, 1)
	require.NoError(t, err)
	require.Len(t, tr, 1)
	require.Empty(t, va)
	require.Empty(t, te)

	nodes := tr[0].Nodes()
	require.InDelta(t, 0.0, nodes.At(0, 0), tol)
	require.InDelta(t, 0.5, nodes.At(1, 0), tol)
	require.InDelta(t, 1.0, nodes.At(2, 0), tol)
	// Constant column collapses to the lower bound.
	for i := 0; i < 3; i++ {
		require.InDelta(t, 0.0, nodes.At(i, 1), tol)
	}

	arcs := tr[0].Arcs()
	require.InDelta(t, 0.0, arcs.At(0, 2), tol)
	require.InDelta(t, 1.0, arcs.At(1, 2), tol)
	// Endpoints stay integral node indices.
	require.InDelta(t, 0.0, arcs.At(0, 0), tol)
	require.InDelta(t, 1.0, arcs.At(0, 1), tol)

	// The source graph is untouched.
	require.InDelta(t, 4.0, g.Nodes().At(2, 0), tol)
}

func TestNormalizeAppliesTrainStatsToTest(t *testing.T) {
	train := trainScaleFixture(t)

	// A test graph whose column-0 value 8 lies outside the training range
	// [0,4]: the same affine map must push it past the upper bound.
	nodes := mat.NewDense(2, 2, []float64{8, 5, 2, 5})
	arcs := mat.NewDense(1, 3, []float64{0, 1, 2})
	targets := mat.NewDense(2, 1, []float64{1, 0})
	test, err := graph.New(nodes, arcs, targets, graph.NodeBased, graph.AggSum)
	require.NoError(t, err)

	_, _, te, err := dataset.Normalize([]*graph.Graph{train}, nil, []*graph.Graph{test}, 0, 1)
	require.NoError(t, err)
	require.InDelta(t, 2.0, te[0].Nodes().At(0, 0), tol)
	require.InDelta(t, 0.5, te[0].Nodes().At(1, 0), tol)
}

func TestNormalizeValidation(t *testing.T) {
	g := trainScaleFixture(t)

	_, _, _, err := dataset.Normalize([]*graph.Graph{g}, nil, nil, 1, 1)
	require.ErrorIs(t, err, dataset.ErrBadRange)

	_, _, _, err = dataset.Normalize(nil, nil, nil, 0, 1)
	require.ErrorIs(t, err, dataset.ErrNoGraphs)

	// Mismatched label width in the valid slice.
	nodes := mat.NewDense(2, 3, []float64{1, 2, 3, 4, 5, 6})
	arcs := mat.NewDense(1, 3, []float64{0, 1, 2})
	targets := mat.NewDense(2, 1, []float64{1, 0})
	wide, err := graph.New(nodes, arcs, targets, graph.NodeBased, graph.AggSum)
	require.NoError(t, err)
	_, _, _, err = dataset.Normalize([]*graph.Graph{g}, []*graph.Graph{wide}, nil, 0, 1)
	require.ErrorIs(t, err, dataset.ErrBadSize)
}

func TestSyntheticDeterminism(t *testing.T) {
	a, err := dataset.Synthetic(6, 10, 3, 1, 2, graph.GraphBased, graph.AggNormalized, 99)
	require.NoError(t, err)
	b, err := dataset.Synthetic(6, 10, 3, 1, 2, graph.GraphBased, graph.AggNormalized, 99)
	require.NoError(t, err)

	require.True(t, mat.Equal(a.Nodes(), b.Nodes()))
	require.True(t, mat.Equal(a.Arcs(), b.Arcs()))
	require.True(t, mat.Equal(a.Targets(), b.Targets()))

	require.Equal(t, 6, a.NumNodes())
	require.Equal(t, 10, a.NumArcs())
	require.Equal(t, 3, a.DimNodeLabel())
	require.Equal(t, 1, a.DimArcLabel())
	require.Equal(t, 1, a.NumTargets()) // graph-based: single target row
	require.Equal(t, 2, a.DimTarget())
}

func TestSyntheticTargetRows(t *testing.T) {
	n, err := dataset.Synthetic(4, 6, 1, 0, 1, graph.NodeBased, graph.AggSum, 1)
	require.NoError(t, err)
	require.Equal(t, 4, n.NumTargets())

	a, err := dataset.Synthetic(4, 6, 1, 0, 1, graph.ArcBased, graph.AggSum, 1)
	require.NoError(t, err)
	require.Equal(t, 6, a.NumTargets())

	_, err = dataset.Synthetic(0, 6, 1, 0, 1, graph.NodeBased, graph.AggSum, 1)
	require.ErrorIs(t, err, dataset.ErrBadSize)
}

func TestBatcherCoversEveryGraphOnce(t *testing.T) {
	graphs, err := dataset.SyntheticList(5, 4, 6, 2, 1, 1, graph.GraphBased, graph.AggAverage, 3)
	require.NoError(t, err)

	b, err := dataset.NewBatcher(graphs, graph.GraphBased, graph.AggAverage, 2)
	require.NoError(t, err)
	require.Equal(t, 3, b.Len())
	require.Equal(t, 5, b.NumGraphs())

	totalNodes, totalTargets := 0, 0
	for i := 0; i < b.Len(); i++ {
		ts, berr := b.Batch(i)
		require.NoError(t, berr)
		totalNodes += ts.NumNodes()
		totalTargets += ts.NumTargets()
	}
	require.Equal(t, 5*4, totalNodes)
	require.Equal(t, 5, totalTargets) // one target row per member graph

	// Final short batch holds the single leftover graph.
	last, err := b.Batch(2)
	require.NoError(t, err)
	require.Equal(t, 4, last.NumNodes())

	_, err = b.Batch(3)
	require.ErrorIs(t, err, dataset.ErrBadIndex)
}

func TestBatcherShuffleDeterminism(t *testing.T) {
	graphs, err := dataset.SyntheticList(6, 3, 4, 1, 0, 1, graph.NodeBased, graph.AggSum, 11)
	require.NoError(t, err)

	b1, err := dataset.NewBatcher(graphs, graph.NodeBased, graph.AggSum, 2, dataset.WithShuffle(5))
	require.NoError(t, err)
	b2, err := dataset.NewBatcher(graphs, graph.NodeBased, graph.AggSum, 2, dataset.WithShuffle(5))
	require.NoError(t, err)

	for i := 0; i < b1.Len(); i++ {
		t1, err1 := b1.Batch(i)
		require.NoError(t, err1)
		t2, err2 := b2.Batch(i)
		require.NoError(t, err2)
		require.True(t, mat.Equal(t1.Nodes, t2.Nodes), "batch %d", i)
	}
}

func TestBatcherValidation(t *testing.T) {
	graphs, err := dataset.SyntheticList(2, 3, 4, 1, 0, 1, graph.NodeBased, graph.AggSum, 1)
	require.NoError(t, err)

	_, err = dataset.NewBatcher(nil, graph.NodeBased, graph.AggSum, 2)
	require.ErrorIs(t, err, dataset.ErrNoGraphs)

	_, err = dataset.NewBatcher(graphs, graph.NodeBased, graph.AggSum, 0)
	require.ErrorIs(t, err, dataset.ErrBadBatchSize)

	_, err = dataset.NewBatcher(graphs, "x", graph.AggSum, 2)
	require.ErrorIs(t, err, graph.ErrUnknownProblem)
}

func TestDatasetSaveOpenRoundTrip(t *testing.T) {
	graphs, err := dataset.SyntheticList(4, 5, 8, 2, 1, 1, graph.GraphBased, graph.AggAverage, 21)
	require.NoError(t, err)

	dir := filepath.Join(t.TempDir(), "ds")
	m := manifestFixture()
	log := dataset.WithLogger(quietLogger())
	require.NoError(t, dataset.Save(dir, m, graphs, log))

	ds, err := dataset.Open(dir, log)
	require.NoError(t, err)
	require.Equal(t, m, ds.Manifest)
	require.Len(t, ds.Graphs, 4)
	for i, g := range ds.Graphs {
		require.True(t, mat.Equal(graphs[i].Nodes(), g.Nodes()), "graph %d", i)
		require.True(t, mat.Equal(graphs[i].Targets(), g.Targets()), "graph %d", i)
	}

	// Manifest-driven split: 0.5/0.25 over 4 graphs.
	train, valid, test, err := ds.Split()
	require.NoError(t, err)
	require.Len(t, train, 2)
	require.Len(t, valid, 1)
	require.Len(t, test, 1)

	// Manifest-driven batcher.
	b, err := ds.Batcher(train, dataset.WithShuffle(m.Seed))
	require.NoError(t, err)
	require.Equal(t, 1, b.Len())

	_, err = dataset.Open(t.TempDir(), log)
	require.ErrorIs(t, err, dataset.ErrBadManifest)
}
