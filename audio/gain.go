// SPDX-License-Identifier: EPL-2.0

package audio

import "sync"

// Gain scales every sample pulled through it by a linear factor. It is a
// rewireable stage: the upstream source may be attached, swapped or detached
// at any time, and the factor may change between reads.
type Gain struct {
	mu   sync.RWMutex
	src  Source
	gain float64
}

// NewGain creates a detached gain stage with the given linear factor.
// Negative factors are treated as zero.
func NewGain(gain float64) *Gain {
	g := &Gain{}
	g.SetGain(gain)
	return g
}

// SetSource swaps the upstream source. A nil source detaches the stage;
// a detached stage reads zero samples.
func (g *Gain) SetSource(src Source) {
	g.mu.Lock()
	g.src = src
	g.mu.Unlock()
}

// Source returns the current upstream source, or nil if detached.
func (g *Gain) Source() Source {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.src
}

// SetGain changes the linear factor applied to subsequent reads.
func (g *Gain) SetGain(gain float64) {
	if gain < 0 {
		gain = 0
	}
	g.mu.Lock()
	g.gain = gain
	g.mu.Unlock()
}

func (g *Gain) Gain() float64 {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.gain
}

func (g *Gain) SampleRate() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if g.src == nil {
		return 0
	}
	return g.src.SampleRate()
}

func (g *Gain) Channels() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if g.src == nil {
		return 0
	}
	return g.src.Channels()
}

func (g *Gain) BufSize() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if g.src == nil {
		return 4096
	}
	return g.src.BufSize()
}

// Close detaches the stage. The upstream source is not closed; its owner is.
func (g *Gain) Close() error {
	g.SetSource(nil)
	return nil
}

func (g *Gain) ReadSamples(dst []float32) (int, error) {
	g.mu.RLock()
	src := g.src
	gain := float32(g.gain)
	g.mu.RUnlock()

	if src == nil {
		return 0, nil
	}

	n, err := src.ReadSamples(dst)
	for i := 0; i < n; i++ {
		dst[i] *= gain
	}
	return n, err
}
