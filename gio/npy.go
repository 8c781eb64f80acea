// SPDX-License-Identifier: MIT
// Package gio — binary codec on the NumPy .npy disk format (npyio).
// Matrices are written as 2-D <f8 arrays, masks as 1-D bool arrays and
// weights as 1-D <f8 arrays, so directories stay interchangeable with the
// numpy-based tooling that produced the original datasets.

package gio

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sbinet/npyio"
	"gonum.org/v1/gonum/mat"

	"github.com/gognn/gognn/graph"
)

const npyExt = ".npy"

// Save persists g into dir in the binary codec.
// Stage 1 (Reset): wipe and recreate the directory.
// Stage 2 (Execute): write mandatory arrays, then each optional array that
// deviates from its default.
// Errors: ErrNilGraph; any file-system or encoding failure aborts the save.
// Complexity: O(size of the graph).
func Save(dir string, g *graph.Graph) error {
	if g == nil {
		return fmt.Errorf("gio.Save: %w", ErrNilGraph)
	}
	if err := resetDir(dir); err != nil {
		return err
	}

	if err := writeNpy(dir, fileNodes, g.Nodes()); err != nil {
		return err
	}
	if err := writeNpy(dir, fileArcs, g.Arcs()); err != nil {
		return err
	}
	if err := writeNpy(dir, fileTargets, g.Targets()); err != nil {
		return err
	}

	if mask := g.SetMask(); anyFalse(mask) {
		if err := writeNpy(dir, fileSetMask, mask); err != nil {
			return err
		}
	}
	if mask := g.OutputMask(); anyFalse(mask) {
		if err := writeNpy(dir, fileOutputMask, mask); err != nil {
			return err
		}
	}
	if w := g.SampleWeights(); anyNotOne(w) {
		if err := writeNpy(dir, fileSampleWeights, w); err != nil {
			return err
		}
	}
	if stack, ok := nodeGraphStack(g); ok {
		if err := writeNpy(dir, fileNodeGraph, stack); err != nil {
			return err
		}
	}

	return nil
}

// Load reconstructs a graph from dir under the externally supplied problem
// type and aggregation mode (neither is persisted).
// Missing optional files fall back to their defaults inside the graph
// constructor; a missing mandatory file is an ErrMissingArray.
// Complexity: O(size of the graph).
func Load(dir string, problem graph.Problem, agg graph.Aggregation) (*graph.Graph, error) {
	nodes, err := readNpyDense(dir, fileNodes)
	if err != nil {
		return nil, err
	}
	arcs, err := readNpyDense(dir, fileArcs)
	if err != nil {
		return nil, err
	}
	targets, err := readNpyDense(dir, fileTargets)
	if err != nil {
		return nil, err
	}

	var opts []graph.Option
	if path := filepath.Join(dir, fileSetMask+npyExt); exists(path) {
		mask, merr := readNpyBools(path)
		if merr != nil {
			return nil, merr
		}
		opts = append(opts, graph.WithSetMask(mask))
	}
	if path := filepath.Join(dir, fileOutputMask+npyExt); exists(path) {
		mask, merr := readNpyBools(path)
		if merr != nil {
			return nil, merr
		}
		opts = append(opts, graph.WithOutputMask(mask))
	}
	if path := filepath.Join(dir, fileSampleWeights+npyExt); exists(path) {
		weights, werr := readNpyFloats(path)
		if werr != nil {
			return nil, werr
		}
		opts = append(opts, graph.WithSampleWeights(weights))
	}

	if path := filepath.Join(dir, fileNodeGraph+npyExt); exists(path) {
		stack, serr := readNpyDensePath(path)
		if serr != nil {
			return nil, serr
		}
		ng, serr := nodeGraphFromStack(stack)
		if serr != nil {
			return nil, serr
		}

		return graph.NewWithMatrices(nodes, arcs, targets, problem, agg, nil, ng, opts...)
	}

	return graph.New(nodes, arcs, targets, problem, agg, opts...)
}

// writeNpy writes one value (matrix or slice) as stem.npy inside dir.
func writeNpy(dir, stem string, v interface{}) error {
	path := filepath.Join(dir, stem+npyExt)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("gio: create %s: %w", path, err)
	}
	if err = npyio.Write(f, v); err != nil {
		f.Close()

		return fmt.Errorf("gio: write %s: %w", path, err)
	}

	return f.Close()
}

// readNpyDense reads a mandatory 2-D array stem.npy from dir.
func readNpyDense(dir, stem string) (*mat.Dense, error) {
	path := filepath.Join(dir, stem+npyExt)
	if !exists(path) {
		return nil, fmt.Errorf("gio: %s: %w", path, ErrMissingArray)
	}

	return readNpyDensePath(path)
}

// readNpyDensePath reads a 2-D float64 array from an existing file.
func readNpyDensePath(path string) (*mat.Dense, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("gio: open %s: %w", path, err)
	}
	defer f.Close()

	var m mat.Dense
	if err = npyio.Read(f, &m); err != nil {
		return nil, fmt.Errorf("gio: read %s: %w", path, err)
	}

	return &m, nil
}

// readNpyBools reads a 1-D bool array.
func readNpyBools(path string) ([]bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("gio: open %s: %w", path, err)
	}
	defer f.Close()

	var v []bool
	if err = npyio.Read(f, &v); err != nil {
		return nil, fmt.Errorf("gio: read %s: %w", path, err)
	}

	return v, nil
}

// readNpyFloats reads a 1-D float64 array.
func readNpyFloats(path string) ([]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("gio: open %s: %w", path, err)
	}
	defer f.Close()

	var v []float64
	if err = npyio.Read(f, &v); err != nil {
		return nil, fmt.Errorf("gio: read %s: %w", path, err)
	}

	return v, nil
}
