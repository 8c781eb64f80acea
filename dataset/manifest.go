// SPDX-License-Identifier: MIT
// Package dataset — manifest.yaml handling.
// The manifest is the one place the problem type and aggregation mode live:
// per-graph directories never persist them, so a dataset directory without a
// manifest is not loadable.

package dataset

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/gognn/gognn/gio"
	"github.com/gognn/gognn/graph"
)

// ManifestFile is the manifest's file name inside a dataset directory.
const ManifestFile = "manifest.yaml"

// Default manifest values applied to fields the
// YAML omits.
const (
	DefaultBatchSize     = 32
	DefaultTrainFraction = 0.7
	DefaultValidFraction = 0.2
)

// Manifest describes one dataset directory.
type Manifest struct {
	Problem       graph.Problem     `yaml:"problem"`
	Aggregation   graph.Aggregation `yaml:"aggregation"`
	Codec         gio.Codec         `yaml:"codec"`
	BatchSize     int               `yaml:"batch_size"`
	TrainFraction float64           `yaml:"train_fraction"`
	ValidFraction float64           `yaml:"valid_fraction"`
	Seed          int64             `yaml:"seed"`
}

// fillDefaults fills omitted fields with defaults. The codec defaults to the
// binary encoding.
func (m *Manifest) fillDefaults() {
	if m.Codec == "" {
		m.Codec = gio.Binary
	}
	if m.BatchSize == 0 {
		m.BatchSize = DefaultBatchSize
	}
	if m.TrainFraction == 0 && m.ValidFraction == 0 {
		m.TrainFraction = DefaultTrainFraction
		m.ValidFraction = DefaultValidFraction
	}
}

// Validate checks every field after fillDefaults has run.
// Errors: ErrBadManifest, ErrBadFraction, ErrBadBatchSize.
func (m *Manifest) Validate() error {
	if !m.Problem.Valid() {
		return fmt.Errorf("dataset: problem %q: %w", m.Problem, ErrBadManifest)
	}
	if !m.Aggregation.Valid() {
		return fmt.Errorf("dataset: aggregation %q: %w", m.Aggregation, ErrBadManifest)
	}
	if !m.Codec.Valid() {
		return fmt.Errorf("dataset: codec %q: %w", m.Codec, ErrBadManifest)
	}
	if m.BatchSize <= 0 {
		return fmt.Errorf("dataset: batch size %d: %w", m.BatchSize, ErrBadBatchSize)
	}
	if err := checkFractions(m.TrainFraction, m.ValidFraction); err != nil {
		return err
	}

	return nil
}

// LoadManifest reads and validates dir/manifest.yaml.
func LoadManifest(dir string) (Manifest, error) {
	path := filepath.Join(dir, ManifestFile)
	raw, err := os.ReadFile(path)
	if err != nil {
		return Manifest{}, fmt.Errorf("dataset: read %s: %w", path, ErrBadManifest)
	}

	var m Manifest
	if err = yaml.Unmarshal(raw, &m); err != nil {
		return Manifest{}, fmt.Errorf("dataset: parse %s: %v: %w", path, err, ErrBadManifest)
	}
	m.fillDefaults()
	if err = m.Validate(); err != nil {
		return Manifest{}, err
	}

	return m, nil
}

// SaveManifest writes dir/manifest.yaml; dir must already exist.
func SaveManifest(dir string, m Manifest) error {
	m.fillDefaults()
	if err := m.Validate(); err != nil {
		return err
	}

	raw, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("dataset: encode manifest: %w", err)
	}
	path := filepath.Join(dir, ManifestFile)
	if err = os.WriteFile(path, raw, 0o644); err != nil {
		return fmt.Errorf("dataset: write %s: %w", path, err)
	}

	return nil
}

// checkFractions validates a train/valid fraction pair.
func checkFractions(trainFrac, validFrac float64) error {
	if trainFrac < 0 || validFrac < 0 || trainFrac+validFrac > 1 {
		return fmt.Errorf("dataset: train=%g valid=%g: %w", trainFrac, validFrac, ErrBadFraction)
	}

	return nil
}
