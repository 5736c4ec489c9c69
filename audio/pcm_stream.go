// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"encoding/binary"
	"sync"

	"github.com/ik5/auviz/utils"
)

// PCMStream adapts a Source to the io.Reader the output device pulls from,
// converting float32 samples to interleaved 16-bit little-endian PCM.
//
// The device keeps pulling for the life of the process, so PCMStream never
// reports EOF: whenever the upstream produces no samples (detached input,
// paused element, exhausted stream) it emits silence instead. The upstream
// source may be swapped at any time while the device is reading.
type PCMStream struct {
	mu  sync.Mutex
	src Source

	channels int
	tmp      []float32
}

// NewPCMStream creates a sink with the given channel count. The channel
// count is fixed by the output device, not by the current source.
func NewPCMStream(channels int) *PCMStream {
	return &PCMStream{
		channels: channels,
		tmp:      make([]float32, 4096),
	}
}

// SetSource swaps the upstream source. A nil source produces silence.
func (p *PCMStream) SetSource(src Source) {
	p.mu.Lock()
	p.src = src
	p.mu.Unlock()
}

// Source returns the current upstream source, or nil if detached.
func (p *PCMStream) Source() Source {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.src
}

func (p *PCMStream) Channels() int { return p.channels }

// Read implements io.Reader. len(b) should be a multiple of 2*channels;
// trailing odd bytes are zero-filled.
func (p *PCMStream) Read(b []byte) (int, error) {
	samples := len(b) / 2

	p.mu.Lock()
	src := p.src
	p.mu.Unlock()

	if cap(p.tmp) < samples {
		p.tmp = make([]float32, samples)
	}
	buf := p.tmp[:samples]

	n := 0
	if src != nil {
		// Best effort: a single short read upstream must not starve the
		// device, so the remainder of the buffer is silence.
		got, err := src.ReadSamples(buf)
		if err == nil || got > 0 {
			n = got
		}
	}

	for i := 0; i < n; i++ {
		binary.LittleEndian.PutUint16(b[2*i:2*i+2], uint16(utils.Float32ToInt16(buf[i])))
	}
	for i := n * 2; i < len(b); i++ {
		b[i] = 0
	}

	return len(b), nil
}
