// SPDX-License-Identifier: MIT
// Package sparse: sentinel error set.
// All public operations return these sentinels (possibly wrapped with
// call-site context via fmt.Errorf("...: %w", ErrX)); tests and callers
// match them with errors.Is. No user-triggered condition panics.

package sparse

import "errors"

var (
	// ErrBadShape is returned when a requested shape is invalid
	// (negative rows or cols), or when a triplet array set is ragged.
	ErrBadShape = errors.New("sparse: invalid shape")

	// ErrOutOfRange indicates a triplet index outside the declared shape.
	ErrOutOfRange = errors.New("sparse: index out of range")

	// ErrNaNInf signals a NaN or ±Inf value where finite values are
	// required by the numeric policy (Append, FromDense).
	ErrNaNInf = errors.New("sparse: NaN or Inf encountered")

	// ErrNilMatrix indicates a nil *COO receiver or argument.
	ErrNilMatrix = errors.New("sparse: nil matrix")

	// ErrShapeMismatch indicates incompatible shapes between operands,
	// e.g. a product where a.Cols != b.Rows.
	ErrShapeMismatch = errors.New("sparse: shape mismatch")
)
