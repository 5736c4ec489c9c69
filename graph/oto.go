// SPDX-License-Identifier: EPL-2.0

package graph

import (
	"io"

	"github.com/ebitengine/oto/v3"
)

// otoBackend drives the output device through oto. oto enforces one context
// per process, which is exactly the Context lifecycle this package promises.
type otoBackend struct {
	ctx   *oto.Context
	ready chan struct{}
}

func newOtoBackend(sampleRate, channels int) (*otoBackend, error) {
	op := &oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: channels,
		Format:       oto.FormatSignedInt16LE,
	}

	ctx, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, err
	}
	return &otoBackend{ctx: ctx, ready: ready}, nil
}

func (b *otoBackend) Ready() <-chan struct{} { return b.ready }

// Err is always nil: oto reports creation failures from NewContext directly.
func (b *otoBackend) Err() error { return nil }

func (b *otoBackend) Resume() error  { return b.ctx.Resume() }
func (b *otoBackend) Suspend() error { return b.ctx.Suspend() }

func (b *otoBackend) NewPlayer(r io.Reader) Player {
	return b.ctx.NewPlayer(r)
}
