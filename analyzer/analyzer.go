// SPDX-License-Identifier: EPL-2.0

package analyzer

import (
	"math"
	"math/cmplx"
	"sync"

	"github.com/mjibson/go-dsp/fft"
	"github.com/mjibson/go-dsp/window"

	"github.com/ik5/auviz/audio"
)

const (
	DefaultFFTSize   = 2048
	DefaultSmoothing = 0.8

	// Snapshot dB range, mapped onto the full byte range.
	minDecibels = -100.0
	maxDecibels = -30.0
)

// validFFTSizes are the accepted analysis window sizes.
var validFFTSizes = map[int]bool{256: true, 512: true, 1024: true, 2048: true, 4096: true}

// ValidFFTSize reports whether n is an accepted analysis window size.
func ValidFFTSize(n int) bool { return validFFTSizes[n] }

// Analyzer is a passthrough Source stage exposing spectral and waveform
// snapshots of the signal passing through it. The upstream source may be
// attached, swapped or detached at any time; with no upstream the node
// produces no samples and snapshots decay toward silence.
type Analyzer struct {
	mu  sync.Mutex
	src audio.Source

	fftSize   int
	smoothing float64

	win      []float64 // Hann window, len == fftSize
	winSum   float64
	ring     []float64 // mono mix of the most recent samples
	write    int
	smoothed []float64 // smoothed linear magnitudes, len == fftSize/2
	primed   bool

	frame []float64 // scratch window for FFT input
}

// New creates an analyzer with the default window size and smoothing.
func New() *Analyzer {
	a := &Analyzer{smoothing: DefaultSmoothing}
	a.resize(DefaultFFTSize)
	return a
}

// SetSource swaps the upstream source. Nil detaches the node.
func (a *Analyzer) SetSource(src audio.Source) {
	a.mu.Lock()
	a.src = src
	a.mu.Unlock()
}

// Source returns the current upstream source, or nil if detached.
func (a *Analyzer) Source() audio.Source {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.src
}

// FFTSize returns the current analysis window size.
func (a *Analyzer) FFTSize() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.fftSize
}

// FrequencyBinCount is the length of a frequency snapshot: FFTSize/2.
func (a *Analyzer) FrequencyBinCount() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.fftSize / 2
}

// SetFFTSize changes the analysis window. Only 256, 512, 1024, 2048 and
// 4096 are accepted. Changing the size clears the ring and the smoothing
// history.
func (a *Analyzer) SetFFTSize(n int) error {
	if !validFFTSizes[n] {
		return ErrInvalidFFTSize
	}

	a.mu.Lock()
	if n != a.fftSize {
		a.resize(n)
	}
	a.mu.Unlock()
	return nil
}

// SetSmoothing sets the temporal smoothing constant, clamped to [0, 0.99].
// 0 disables smoothing entirely.
func (a *Analyzer) SetSmoothing(tc float64) {
	if tc < 0 {
		tc = 0
	} else if tc > 0.99 {
		tc = 0.99
	}

	a.mu.Lock()
	a.smoothing = tc
	a.mu.Unlock()
}

// Smoothing returns the current smoothing constant.
func (a *Analyzer) Smoothing() float64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.smoothing
}

// resize rebuilds all window-sized buffers. Callers hold a.mu (or own a
// still-unshared Analyzer).
func (a *Analyzer) resize(n int) {
	a.fftSize = n
	a.win = window.Hann(n)

	a.winSum = 0
	for _, w := range a.win {
		a.winSum += w
	}

	a.ring = make([]float64, n)
	a.write = 0
	a.smoothed = make([]float64, n/2)
	a.primed = false
	a.frame = make([]float64, n)
}

// SampleRate reports the upstream rate, or 0 when detached.
func (a *Analyzer) SampleRate() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.src == nil {
		return 0
	}
	return a.src.SampleRate()
}

// Channels reports the upstream channel count, or 0 when detached.
func (a *Analyzer) Channels() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.src == nil {
		return 0
	}
	return a.src.Channels()
}

func (a *Analyzer) BufSize() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.src == nil {
		return 0
	}
	return a.src.BufSize()
}

// Close detaches the node. The upstream source is not closed: the node
// does not own its input.
func (a *Analyzer) Close() error {
	a.SetSource(nil)
	return nil
}

// ReadSamples pulls from the upstream source, records a mono mix of what
// passed through, and hands the samples on unchanged.
func (a *Analyzer) ReadSamples(dst []float32) (int, error) {
	a.mu.Lock()
	src := a.src
	a.mu.Unlock()

	if src == nil {
		return 0, nil
	}

	n, err := src.ReadSamples(dst)
	if n > 0 {
		a.record(dst[:n], src.Channels())
	}
	return n, err
}

func (a *Analyzer) record(samples []float32, channels int) {
	if channels < 1 {
		channels = 1
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	frames := len(samples) / channels
	for f := 0; f < frames; f++ {
		sum := 0.0
		for ch := 0; ch < channels; ch++ {
			sum += float64(samples[f*channels+ch])
		}

		a.ring[a.write] = sum / float64(channels)
		a.write++
		if a.write >= a.fftSize {
			a.write = 0
		}
	}
}

// FrequencyData fills dst with the current frequency snapshot: one byte
// per bin, 0 = minDecibels and below, 255 = maxDecibels and above. It
// copies min(len(dst), FrequencyBinCount) bytes and returns the count.
func (a *Analyzer) FrequencyData(dst []byte) int {
	a.mu.Lock()
	defer a.mu.Unlock()

	// Unload the ring, oldest first, into the FFT frame with the window
	// applied.
	read := a.write
	for i := 0; i < a.fftSize; i++ {
		a.frame[i] = a.ring[read] * a.win[i]
		read++
		if read >= a.fftSize {
			read = 0
		}
	}

	spectrum := fft.FFTReal(a.frame)

	bins := a.fftSize / 2
	for k := 0; k < bins; k++ {
		// Amplitude-normalize so a full-scale sine lands near 0 dBFS.
		mag := 2 * cmplx.Abs(spectrum[k]) / a.winSum

		if a.primed {
			a.smoothed[k] = a.smoothing*a.smoothed[k] + (1-a.smoothing)*mag
		} else {
			a.smoothed[k] = mag
		}
	}
	a.primed = true

	n := min(len(dst), bins)
	for k := 0; k < n; k++ {
		dst[k] = quantizeDB(a.smoothed[k])
	}
	return n
}

// TimeDomainData fills dst with the newest FFTSize mono samples mapped to
// bytes with silence at 128. It copies min(len(dst), FFTSize) bytes and
// returns the count.
func (a *Analyzer) TimeDomainData(dst []byte) int {
	a.mu.Lock()
	defer a.mu.Unlock()

	n := min(len(dst), a.fftSize)

	read := a.write
	// Skip ahead so the n copied bytes are the newest n samples.
	read = (read + a.fftSize - n) % a.fftSize

	for i := 0; i < n; i++ {
		x := a.ring[read]
		if x > 1 {
			x = 1
		} else if x < -1 {
			x = -1
		}
		dst[i] = byte(math.Round((x + 1) * 127.5))

		read++
		if read >= a.fftSize {
			read = 0
		}
	}
	return n
}

func quantizeDB(mag float64) byte {
	const eps = 1e-12

	db := 20 * math.Log10(math.Max(mag, eps))
	v := (db - minDecibels) / (maxDecibels - minDecibels) * 255
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return byte(v)
}
