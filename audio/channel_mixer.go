// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"
)

// ChannelMixer adapts the channel count of src to a fixed output layout.
// A mono input is duplicated across the output channels, a multi-channel
// input headed for mono is averaged, and otherwise the first min(in, out)
// channels are copied with missing ones zero-filled.
//
// Like Resampler it owns its source: the source is fixed at construction
// and closed by Close.
type ChannelMixer struct {
	src Source
	in  int
	out int

	tmp []float32
}

func NewChannelMixer(src Source, channels int) *ChannelMixer {
	return &ChannelMixer{
		src: src,
		in:  src.Channels(),
		out: channels,
	}
}

func (m *ChannelMixer) SampleRate() int { return m.src.SampleRate() }
func (m *ChannelMixer) Channels() int   { return m.out }
func (m *ChannelMixer) BufSize() int    { return m.src.BufSize() }

func (m *ChannelMixer) Close() error {
	err := m.src.Close()
	if err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}

func (m *ChannelMixer) ReadSamples(dst []float32) (int, error) {
	if len(dst)%m.out != 0 {
		return 0, ErrInvalidDstSize
	}
	if m.in == m.out {
		return m.src.ReadSamples(dst)
	}

	frames := len(dst) / m.out
	need := frames * m.in
	if cap(m.tmp) < need {
		m.tmp = make([]float32, need)
	}
	buf := m.tmp[:need]

	n, err := m.src.ReadSamples(buf)
	if err != nil && err != io.EOF {
		return 0, fmt.Errorf("%w", err)
	}
	got := n / m.in

	for f := 0; f < got; f++ {
		switch {
		case m.in == 1:
			for c := 0; c < m.out; c++ {
				dst[f*m.out+c] = buf[f]
			}
		case m.out == 1:
			var sum float32
			for c := 0; c < m.in; c++ {
				sum += buf[f*m.in+c]
			}
			dst[f] = sum / float32(m.in)
		default:
			for c := 0; c < m.out; c++ {
				if c < m.in {
					dst[f*m.out+c] = buf[f*m.in+c]
				} else {
					dst[f*m.out+c] = 0
				}
			}
		}
	}

	return got * m.out, err
}
