// SPDX-License-Identifier: EPL-2.0

package graph

import (
	"context"
	"fmt"
	"io"
	"sync"
)

// Output device format shared by every chain in the process.
const (
	DeviceSampleRate = 44100
	DeviceChannels   = 2
)

// ContextState tracks the output context lifecycle. There is no closed
// state: once created the context lives for the rest of the process.
type ContextState int

const (
	// ContextSuspended means the device exists but output is not confirmed
	// running yet.
	ContextSuspended ContextState = iota + 1
	// ContextRunning means the device is up and consuming samples.
	ContextRunning
)

// Context is the process-wide handle on the output device. At most one
// exists per process; every Manager shares it.
type Context struct {
	mu      sync.Mutex
	state   ContextState
	backend Backend

	sampleRate int
	channels   int
}

var (
	contextMu      sync.Mutex
	defaultContext *Context
)

// AcquireContext returns the process-wide output context, creating it on
// first use. Creation failure wraps ErrContextUnavailable and leaves no
// context behind, so a later call can try again.
func AcquireContext() (*Context, error) {
	contextMu.Lock()
	defer contextMu.Unlock()

	if defaultContext != nil {
		return defaultContext, nil
	}

	b, err := newBackend(DeviceSampleRate, DeviceChannels)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrContextUnavailable, err)
	}

	defaultContext = &Context{
		state:      ContextSuspended,
		backend:    b,
		sampleRate: DeviceSampleRate,
		channels:   DeviceChannels,
	}
	return defaultContext, nil
}

func (c *Context) SampleRate() int { return c.sampleRate }
func (c *Context) Channels() int   { return c.channels }

func (c *Context) State() ContextState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Resume waits for the device to become ready and starts output. It is the
// only blocking step of graph construction; ctx bounds the wait. Resuming an
// already running context is a no-op.
func (c *Context) Resume(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == ContextRunning {
		return nil
	}

	select {
	case <-c.backend.Ready():
	case <-ctx.Done():
		return ctx.Err()
	}

	if err := c.backend.Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrContextUnavailable, err)
	}
	if err := c.backend.Resume(); err != nil {
		return fmt.Errorf("%w: %v", ErrContextUnavailable, err)
	}

	c.state = ContextRunning
	return nil
}

// Suspend halts device output. The context stays valid and resumable.
func (c *Context) Suspend() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != ContextRunning {
		return nil
	}
	if err := c.backend.Suspend(); err != nil {
		return fmt.Errorf("%w", err)
	}
	c.state = ContextSuspended
	return nil
}

// NewPlayer creates a device player pulling PCM bytes from r.
func (c *Context) NewPlayer(r io.Reader) Player {
	return c.backend.NewPlayer(r)
}
