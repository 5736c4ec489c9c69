// SPDX-License-Identifier: EPL-2.0

// Package visual consumes analyzer snapshots and renders them for a
// terminal: a cancellable self-rescheduling Loop pulls frequency and
// waveform data at display rate and hands rendered frames to a sink.
package visual
