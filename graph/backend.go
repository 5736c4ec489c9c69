// SPDX-License-Identifier: EPL-2.0

package graph

import "io"

// Backend is the slice of the platform audio layer the Context needs. It is
// an interface so the device can be faked in tests the same way format
// decoders fake their codecs.
type Backend interface {
	// Ready is closed once the device is prepared to accept players.
	Ready() <-chan struct{}
	// Err reports a device initialization failure, valid after Ready.
	Err() error
	// Resume starts (or restarts) device output.
	Resume() error
	// Suspend halts device output without releasing the device.
	Suspend() error
	// NewPlayer creates a player pulling 16-bit little-endian PCM from r.
	NewPlayer(r io.Reader) Player
}

// Player is a device-side consumer of a PCM byte stream.
type Player interface {
	Play()
	Pause()
	IsPlaying() bool
	Close() error
}

// newBackend builds the production device backend. Tests swap it for a fake.
var newBackend = func(sampleRate, channels int) (Backend, error) {
	return newOtoBackend(sampleRate, channels)
}
