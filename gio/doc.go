// Package gio persists graphs as directories of array files and restores
// them.
//
// Layout (one directory per graph):
//
//   - always present: nodes, arcs, targets;
//   - present only when non-default: set_mask (omitted when all-true),
//     output_mask (omitted when all-true), sample_weights (omitted when
//     uniformly 1), NodeGraph (omitted when degenerate; stored as a stacked
//     3×K data/row/col array and rebuilt into sparse form on load).
//
// Two physical encodings share this logical content: a binary NumPy .npy
// codec (byte-compatible with numpy.save) and a delimited-text codec with a
// configurable numeric format (default %.10g).
//
// The problem type and aggregation mode are never persisted — the caller
// supplies both on load. Saving wipes the target directory first and then
// repopulates it; a crash mid-save leaves an obviously incomplete directory,
// never a corrupted-but-plausible one. No retry or rollback exists at this
// layer.
package gio
