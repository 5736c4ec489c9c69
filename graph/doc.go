// SPDX-License-Identifier: EPL-2.0

// Package graph manages the audio processing chain: a process-wide output
// Context, a per-element source binding table, and a Manager that wires
// source → gain → pre-gain → filter bands → analyzer → device on demand.
//
// EnsureGraph is idempotent: overlapping and repeated calls converge to a
// single correctly wired chain, the Context is created at most once per
// process, and each playback element gets at most one source node for the
// process lifetime.
package graph
