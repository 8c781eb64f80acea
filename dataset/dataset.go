// SPDX-License-Identifier: MIT
// Package dataset — directory-level load and save.
// A dataset directory is manifest.yaml plus one gio sub-directory per graph;
// sub-directories load in lexical order so indices are stable across runs.

package dataset

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/gognn/gognn/graph"
)

// Dataset is a manifest plus the graphs loaded under it, in lexical
// sub-directory order.
type Dataset struct {
	Manifest Manifest
	Graphs   []*graph.Graph
	Dir      string
}

// Open loads the manifest and every graph sub-directory under dir.
// Progress is reported on the configured logger (slog.Default unless
// WithLogger overrides it).
// Errors: ErrBadManifest, ErrNoGraphs, plus any gio load failure.
// Complexity: O(total size of the graphs).
func Open(dir string, opts ...Option) (*Dataset, error) {
	o := gatherOptions(opts...)

	m, err := LoadManifest(dir)
	if err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("dataset: read %s: %w", dir, err)
	}

	var graphs []*graph.Graph
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		sub := filepath.Join(dir, e.Name())
		g, lerr := m.Codec.Load(sub, m.Problem, m.Aggregation)
		if lerr != nil {
			return nil, fmt.Errorf("dataset: load %s: %w", sub, lerr)
		}
		o.logger.Debug("dataset: graph loaded", slog.String("dir", sub),
			slog.Int("nodes", g.NumNodes()), slog.Int("arcs", g.NumArcs()))
		graphs = append(graphs, g)
	}
	if len(graphs) == 0 {
		return nil, fmt.Errorf("dataset: %s has no graph directories: %w", dir, ErrNoGraphs)
	}

	o.logger.Info("dataset: opened", slog.String("dir", dir),
		slog.Int("graphs", len(graphs)), slog.String("problem", string(m.Problem)),
		slog.String("aggregation", string(m.Aggregation)))

	return &Dataset{Manifest: m, Graphs: graphs, Dir: dir}, nil
}

// Save writes a dataset directory: the manifest plus one sub-directory per
// graph, named graph_0000, graph_0001, ... so a later Open restores the same
// order. The directory is created if absent; existing graph sub-directories
// are overwritten by the codec's own reset.
func Save(dir string, m Manifest, graphs []*graph.Graph, opts ...Option) error {
	if len(graphs) == 0 {
		return fmt.Errorf("dataset: save: %w", ErrNoGraphs)
	}
	o := gatherOptions(opts...)

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("dataset: create %s: %w", dir, err)
	}
	if err := SaveManifest(dir, m); err != nil {
		return err
	}
	m.fillDefaults()

	for i, g := range graphs {
		sub := filepath.Join(dir, fmt.Sprintf("graph_%04d", i))
		if err := m.Codec.Save(sub, g); err != nil {
			return fmt.Errorf("dataset: save %s: %w", sub, err)
		}
	}

	o.logger.Info("dataset: saved", slog.String("dir", dir), slog.Int("graphs", len(graphs)))

	return nil
}

// Split partitions the loaded graphs into train/valid/test slices using the
// manifest's fractions and seed.
func (d *Dataset) Split() (train, valid, test []*graph.Graph, err error) {
	ti, vi, si, err := Split(len(d.Graphs), d.Manifest.TrainFraction, d.Manifest.ValidFraction, d.Manifest.Seed)
	if err != nil {
		return nil, nil, nil, err
	}

	return pick(d.Graphs, ti), pick(d.Graphs, vi), pick(d.Graphs, si), nil
}

// Batcher builds a mini-batch iterator over graphs with the manifest's
// problem, aggregation and batch size.
func (d *Dataset) Batcher(graphs []*graph.Graph, opts ...Option) (*Batcher, error) {
	return NewBatcher(graphs, d.Manifest.Problem, d.Manifest.Aggregation, d.Manifest.BatchSize, opts...)
}

// pick gathers graphs[i] for each index in order.
func pick(graphs []*graph.Graph, idx []int) []*graph.Graph {
	out := make([]*graph.Graph, len(idx))
	for k, i := range idx {
		out[k] = graphs[i]
	}

	return out
}
