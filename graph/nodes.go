// SPDX-License-Identifier: EPL-2.0

package graph

import (
	"sync"

	"github.com/ik5/auviz/audio"
	"github.com/ik5/auviz/eq"
	"github.com/ik5/auviz/player"
)

// stage is a rewireable link in the chain: anything whose upstream can be
// attached, swapped or detached. Detaching an already detached stage is a
// no-op, which is what makes the full-rewire connection plan safe.
type stage interface {
	SetSource(src audio.Source)
}

// SourceNode feeds a playback element into the chain, adapted to the device
// format: channels are remixed and the stream is resampled when the media
// format differs from the device format. One SourceNode exists per element
// per process; the binding table enforces that.
type SourceNode struct {
	elem *player.Element
	out  audio.Source
}

func newSourceNode(elem *player.Element, sampleRate, channels int) *SourceNode {
	var out audio.Source = elem
	if elem.Channels() != channels && elem.Channels() > 0 {
		out = audio.NewChannelMixer(out, channels)
	}
	if elem.SampleRate() != sampleRate && elem.SampleRate() > 0 {
		out = audio.NewResampler(out, sampleRate)
	}
	return &SourceNode{elem: elem, out: out}
}

// Element returns the playback element this node is bound to.
func (n *SourceNode) Element() *player.Element { return n.elem }

func (n *SourceNode) SampleRate() int { return n.out.SampleRate() }
func (n *SourceNode) Channels() int   { return n.out.Channels() }
func (n *SourceNode) BufSize() int    { return n.out.BufSize() }
func (n *SourceNode) Close() error    { return nil }

func (n *SourceNode) ReadSamples(dst []float32) (int, error) {
	return n.out.ReadSamples(dst)
}

// FilterNode runs one EQ band over the samples pulled through it.
type FilterNode struct {
	mu   sync.RWMutex
	src  audio.Source
	band *eq.Band
}

func newFilterNode(band *eq.Band) *FilterNode {
	return &FilterNode{band: band}
}

// Band exposes the underlying filter for retuning.
func (f *FilterNode) Band() *eq.Band { return f.band }

func (f *FilterNode) SetSource(src audio.Source) {
	f.mu.Lock()
	f.src = src
	f.mu.Unlock()
}

// Source returns the current upstream source, or nil if detached.
func (f *FilterNode) Source() audio.Source {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.src
}

func (f *FilterNode) SampleRate() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if f.src == nil {
		return 0
	}
	return f.src.SampleRate()
}

func (f *FilterNode) Channels() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if f.src == nil {
		return 0
	}
	return f.src.Channels()
}

func (f *FilterNode) BufSize() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if f.src == nil {
		return 4096
	}
	return f.src.BufSize()
}

// Close detaches the node. The band and its filter state stay intact.
func (f *FilterNode) Close() error {
	f.SetSource(nil)
	return nil
}

func (f *FilterNode) ReadSamples(dst []float32) (int, error) {
	f.mu.RLock()
	src := f.src
	f.mu.RUnlock()

	if src == nil {
		return 0, nil
	}

	n, err := src.ReadSamples(dst)
	if n > 0 {
		f.band.Process(dst[:n], src.Channels())
	}
	return n, err
}
