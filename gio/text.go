// SPDX-License-Identifier: MIT
// Package gio — delimited-text codec.
// One row per line, space-separated values rendered with a configurable
// numeric verb (DefaultFormat unless overridden); vectors are written one
// value per line, masks as 0/1. The logical content matches the binary
// codec exactly, within the chosen format's precision.

package gio

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/mat"

	"github.com/gognn/gognn/graph"
)

const (
	txtExt = ".txt"

	// DefaultFormat is the numeric verb used when SaveText receives an
	// empty format string.
	DefaultFormat = "%.10g"

	// colSep separates values within one text row.
	colSep = " "
)

// SaveText persists g into dir in the text codec. An empty format selects
// DefaultFormat. Directory handling and omission rules match Save.
// Complexity: O(size of the graph).
func SaveText(dir string, g *graph.Graph, format string) error {
	if g == nil {
		return fmt.Errorf("gio.SaveText: %w", ErrNilGraph)
	}
	if format == "" {
		format = DefaultFormat
	}
	if err := resetDir(dir); err != nil {
		return err
	}

	if err := writeTextDense(dir, fileNodes, g.Nodes(), format); err != nil {
		return err
	}
	if err := writeTextDense(dir, fileArcs, g.Arcs(), format); err != nil {
		return err
	}
	if err := writeTextDense(dir, fileTargets, g.Targets(), format); err != nil {
		return err
	}

	if mask := g.SetMask(); anyFalse(mask) {
		if err := writeTextFloats(dir, fileSetMask, maskToFloats(mask), format); err != nil {
			return err
		}
	}
	if mask := g.OutputMask(); anyFalse(mask) {
		if err := writeTextFloats(dir, fileOutputMask, maskToFloats(mask), format); err != nil {
			return err
		}
	}
	if w := g.SampleWeights(); anyNotOne(w) {
		if err := writeTextFloats(dir, fileSampleWeights, w, format); err != nil {
			return err
		}
	}
	if stack, ok := nodeGraphStack(g); ok {
		if err := writeTextDense(dir, fileNodeGraph, stack, format); err != nil {
			return err
		}
	}

	return nil
}

// LoadText reconstructs a graph from a text-codec directory under the
// supplied problem type and aggregation mode.
// Complexity: O(size of the graph).
func LoadText(dir string, problem graph.Problem, agg graph.Aggregation) (*graph.Graph, error) {
	nodes, err := readTextDense(dir, fileNodes)
	if err != nil {
		return nil, err
	}
	arcs, err := readTextDense(dir, fileArcs)
	if err != nil {
		return nil, err
	}
	targets, err := readTextDense(dir, fileTargets)
	if err != nil {
		return nil, err
	}

	var opts []graph.Option
	if path := filepath.Join(dir, fileSetMask+txtExt); exists(path) {
		vals, merr := readTextFloatsPath(path)
		if merr != nil {
			return nil, merr
		}
		opts = append(opts, graph.WithSetMask(floatsToMask(vals)))
	}
	if path := filepath.Join(dir, fileOutputMask+txtExt); exists(path) {
		vals, merr := readTextFloatsPath(path)
		if merr != nil {
			return nil, merr
		}
		opts = append(opts, graph.WithOutputMask(floatsToMask(vals)))
	}
	if path := filepath.Join(dir, fileSampleWeights+txtExt); exists(path) {
		weights, werr := readTextFloatsPath(path)
		if werr != nil {
			return nil, werr
		}
		opts = append(opts, graph.WithSampleWeights(weights))
	}

	if path := filepath.Join(dir, fileNodeGraph+txtExt); exists(path) {
		stack, serr := readTextDensePath(path)
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

// writeTextDense writes a matrix, one row per line.
func writeTextDense(dir, stem string, m *mat.Dense, format string) error {
	path := filepath.Join(dir, stem+txtExt)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("gio: create %s: %w", path, err)
	}

	w := bufio.NewWriter(f)
	rows, cols := m.Dims()
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			if j > 0 {
				if _, err = w.WriteString(colSep); err != nil {
					f.Close()

					return fmt.Errorf("gio: write %s: %w", path, err)
				}
			}
			if _, err = fmt.Fprintf(w, format, m.At(i, j)); err != nil {
				f.Close()

				return fmt.Errorf("gio: write %s: %w", path, err)
			}
		}
		if err = w.WriteByte('\n'); err != nil {
			f.Close()

			return fmt.Errorf("gio: write %s: %w", path, err)
		}
	}
	if err = w.Flush(); err != nil {
		f.Close()

		return fmt.Errorf("gio: flush %s: %w", path, err)
	}

	return f.Close()
}

// writeTextFloats writes a vector, one value per line.
func writeTextFloats(dir, stem string, v []float64, format string) error {
	m := mat.NewDense(len(v), 1, v)

	return writeTextDense(dir, stem, m, format)
}

// readTextDense reads a mandatory matrix stem.txt from dir.
func readTextDense(dir, stem string) (*mat.Dense, error) {
	path := filepath.Join(dir, stem+txtExt)
	if !exists(path) {
		return nil, fmt.Errorf("gio: %s: %w", path, ErrMissingArray)
	}

	return readTextDensePath(path)
}

// readTextDensePath parses a rectangular whitespace-delimited numeric file.
// Errors: ErrBadText on an empty, ragged or non-numeric file.
func readTextDensePath(path string) (*mat.Dense, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("gio: open %s: %w", path, err)
	}
	defer f.Close()

	var values []float64
	rows, cols := 0, -1
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue // tolerate trailing blank lines
		}
		if cols == -1 {
			cols = len(fields)
		} else if len(fields) != cols {
			return nil, fmt.Errorf("gio: %s row %d has %d values, want %d: %w", path, rows, len(fields), cols, ErrBadText)
		}
		for _, s := range fields {
			v, perr := strconv.ParseFloat(s, 64)
			if perr != nil {
				return nil, fmt.Errorf("gio: %s row %d: %q: %w", path, rows, s, ErrBadText)
			}
			values = append(values, v)
		}
		rows++
	}
	if err = sc.Err(); err != nil {
		return nil, fmt.Errorf("gio: read %s: %w", path, err)
	}
	if rows == 0 {
		return nil, fmt.Errorf("gio: %s is empty: %w", path, ErrBadText)
	}

	return mat.NewDense(rows, cols, values), nil
}

// readTextFloatsPath reads a one-column text vector.
func readTextFloatsPath(path string) ([]float64, error) {
	m, err := readTextDensePath(path)
	if err != nil {
		return nil, err
	}
	rows, cols := m.Dims()
	if cols != 1 {
		return nil, fmt.Errorf("gio: %s has %d columns, want 1: %w", path, cols, ErrBadText)
	}

	v := make([]float64, rows)
	for i := range v {
		v[i] = m.At(i, 0)
	}

	return v, nil
}

// maskToFloats renders a bool mask as 0/1 values for the text codec.
func maskToFloats(mask []bool) []float64 {
	v := make([]float64, len(mask))
	for i, b := range mask {
		if b {
			v[i] = 1
		}
	}

	return v
}

// floatsToMask parses 0/1 values back into a bool mask (nonzero ⇒ true).
func floatsToMask(v []float64) []bool {
	mask := make([]bool, len(v))
	for i, x := range v {
		mask[i] = x != 0
	}

	return mask
}
