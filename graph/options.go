// SPDX-License-Identifier: MIT

// Package graph: functional construction options.
// Options cover only the optional per-graph arrays (masks and sample
// weights); the derived matrices have their own explicit construction path
// (NewWithMatrices) so that each path's validation obligations stay visible.
// Defaults mirror the dataset convention: all units in the active set, all
// targets known, every target weighted 1.
package graph

// Option mutates construction options. Setters are idempotent; the last
// writer wins when the same option is applied twice.
type Option func(*options)

// defaultUniformWeight is the sample weight broadcast to every target when
// no weight option is supplied.
const defaultUniformWeight = 1.0

// options is the resolved optional-array configuration. Unexported by
// design: public entry points accept ...Option.
type options struct {
	setMask       []bool    // nil ⇒ all units in the active set
	outputMask    []bool    // nil ⇒ every unit's target is known
	sampleWeights []float64 // nil ⇒ uniformWeight broadcast over targets
	uniformWeight float64   // broadcast value when sampleWeights == nil
}

// WithSetMask marks which maskable units belong to the active dataset split.
// Length must equal the problem's maskable-unit count (nodes, or arcs for
// arc-based problems); validated at construction. The slice is copied.
func WithSetMask(mask []bool) Option {
	return func(o *options) { o.setMask = append([]bool(nil), mask...) }
}

// WithOutputMask marks which maskable units have a known target.
// Must be exactly as long as the set mask; validated at construction.
// The slice is copied.
func WithOutputMask(mask []bool) Option {
	return func(o *options) { o.outputMask = append([]bool(nil), mask...) }
}

// WithSampleWeights supplies one loss weight per target row.
// Length must equal the target row count; validated at construction.
// The slice is copied. Overrides any WithUniformWeight.
func WithSampleWeights(w []float64) Option {
	return func(o *options) { o.sampleWeights = append([]float64(nil), w...) }
}

// WithUniformWeight broadcasts a single scalar weight over every target row,
// the scalar-broadcast form accepted by the data model. Ignored when
// WithSampleWeights is also present.
func WithUniformWeight(w float64) Option {
	return func(o *options) { o.uniformWeight = w }
}

// gatherOptions resolves setters against defaults; last-writer-wins.
func gatherOptions(opts ...Option) options {
	o := options{uniformWeight: defaultUniformWeight}
	for _, set := range opts {
		set(&o)
	}

	return o
}
