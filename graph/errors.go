// SPDX-License-Identifier: EPL-2.0

package graph

import "errors"

var (
	// ErrContextUnavailable means the output device context could not be
	// created or brought up. The failure is surfaced, never retried
	// internally; a later EnsureGraph may try again.
	ErrContextUnavailable = errors.New("graph: output context unavailable")

	// ErrManagerDisposed is returned by operations on a closed Manager.
	// Disposal is terminal; build a new Manager instead.
	ErrManagerDisposed = errors.New("graph: manager disposed")
)
