// SPDX-License-Identifier: EPL-2.0

package player

import (
	"errors"
	"fmt"
)

// ErrPlaybackRejected reports a Play call that cannot start playback, e.g.
// when the element has no media loaded or has been closed. It is returned to
// the caller once; the element never retries on its own.
var ErrPlaybackRejected = errors.New("player: playback rejected")

// FaultCode classifies media failures by origin.
type FaultCode int

const (
	// FaultAborted means the operation was cut short by the caller, for
	// example by closing the element while it was in use.
	FaultAborted FaultCode = iota + 1
	// FaultNetwork means the media resource could not be fetched or read.
	FaultNetwork
	// FaultDecode means the resource was fetched but its content could not
	// be decoded.
	FaultDecode
	// FaultUnsupported means no decoder is registered for the resource.
	FaultUnsupported
	// FaultUnknown covers failures that fit none of the above.
	FaultUnknown
)

func (c FaultCode) String() string {
	switch c {
	case FaultAborted:
		return "aborted"
	case FaultNetwork:
		return "network"
	case FaultDecode:
		return "decode"
	case FaultUnsupported:
		return "unsupported"
	default:
		return "unknown"
	}
}

// MediaError is the error surface of the playback element. Every failure of
// loading, seeking or reading media carries one, with Code telling the caller
// which class of fault occurred.
type MediaError struct {
	Code FaultCode
	Op   string
	Err  error
}

func (e *MediaError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("player: %s: %s", e.Op, e.Code)
	}
	return fmt.Sprintf("player: %s: %s: %v", e.Op, e.Code, e.Err)
}

func (e *MediaError) Unwrap() error { return e.Err }
