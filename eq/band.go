// SPDX-License-Identifier: EPL-2.0

package eq

import (
	"math"
	"math/cmplx"
	"sync"
)

const (
	// NumBands is the size of the standard 1/3-octave bank.
	NumBands = 31

	// DefaultQ approximates 1/3-octave bandwidth for a peaking filter.
	DefaultQ = 4.31

	// GainLimitDB bounds band gain to [-GainLimitDB, +GainLimitDB].
	GainLimitDB = 15.0
)

// centerFrequencies is the ISO 1/3-octave series, 20 Hz to 20 kHz.
var centerFrequencies = [NumBands]float64{
	20, 25, 31.5, 40, 50, 63, 80, 100, 125, 160,
	200, 250, 315, 400, 500, 630, 800, 1000, 1250, 1600,
	2000, 2500, 3150, 4000, 5000, 6300, 8000, 10000, 12500, 16000,
	20000,
}

// CenterFrequencies returns a copy of the standard band center table.
func CenterFrequencies() [NumBands]float64 {
	return centerFrequencies
}

// Band is a peaking biquad filter with a fixed center frequency and Q and a
// live-retunable gain. It processes interleaved samples with independent
// state per channel.
type Band struct {
	mu sync.RWMutex

	freq       float64
	q          float64
	sampleRate float64
	gainDB     float64

	// Normalized coefficients (a0 == 1).
	b0, b1, b2, a1, a2 float64

	// Direct form I state, one set per channel.
	x1, x2, y1, y2 []float64
}

// NewBand creates a peaking band at freq Hz for the given sample rate.
// The initial gain is 0 dB (unity).
func NewBand(freq, q float64, sampleRate int) *Band {
	b := &Band{
		freq:       freq,
		q:          q,
		sampleRate: float64(sampleRate),
	}
	b.computeCoefficients(0)
	return b
}

// StandardBands builds the 31-band 1/3-octave bank at the given sample rate.
// All bands start flat.
func StandardBands(sampleRate int) []*Band {
	bands := make([]*Band, NumBands)
	for i, freq := range centerFrequencies {
		bands[i] = NewBand(freq, DefaultQ, sampleRate)
	}
	return bands
}

// Frequency returns the fixed center frequency in Hz.
func (b *Band) Frequency() float64 { return b.freq }

// Q returns the fixed quality factor.
func (b *Band) Q() float64 { return b.q }

// GainDB returns the last-set gain in dB.
func (b *Band) GainDB() float64 {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.gainDB
}

// SetGainDB retunes the band. Out-of-range values are clamped to
// [-GainLimitDB, GainLimitDB]. Filter state is preserved.
func (b *Band) SetGainDB(db float64) {
	if db > GainLimitDB {
		db = GainLimitDB
	} else if db < -GainLimitDB {
		db = -GainLimitDB
	}

	b.mu.Lock()
	b.computeCoefficients(db)
	b.mu.Unlock()
}

// computeCoefficients derives RBJ peaking coefficients. Callers hold b.mu.
func (b *Band) computeCoefficients(gainDB float64) {
	a := math.Pow(10, gainDB/40)
	w0 := 2 * math.Pi * b.freq / b.sampleRate
	alpha := math.Sin(w0) / (2 * b.q)
	cosW0 := math.Cos(w0)

	a0 := 1 + alpha/a

	b.gainDB = gainDB
	b.b0 = (1 + alpha*a) / a0
	b.b1 = -2 * cosW0 / a0
	b.b2 = (1 - alpha*a) / a0
	b.a1 = -2 * cosW0 / a0
	b.a2 = (1 - alpha/a) / a0
}

// Process filters interleaved samples in place. channels must match the
// stream's interleaving; the per-channel state grows on first use.
func (b *Band) Process(samples []float32, channels int) {
	if channels < 1 {
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if len(b.x1) < channels {
		b.x1 = append(b.x1, make([]float64, channels-len(b.x1))...)
		b.x2 = append(b.x2, make([]float64, channels-len(b.x2))...)
		b.y1 = append(b.y1, make([]float64, channels-len(b.y1))...)
		b.y2 = append(b.y2, make([]float64, channels-len(b.y2))...)
	}

	frames := len(samples) / channels
	for f := 0; f < frames; f++ {
		for ch := 0; ch < channels; ch++ {
			x := float64(samples[f*channels+ch])
			y := b.b0*x + b.b1*b.x1[ch] + b.b2*b.x2[ch] - b.a1*b.y1[ch] - b.a2*b.y2[ch]

			b.x2[ch] = b.x1[ch]
			b.x1[ch] = x
			b.y2[ch] = b.y1[ch]
			b.y1[ch] = y

			samples[f*channels+ch] = float32(y)
		}
	}
}

// Reset clears filter state without touching the tuning.
func (b *Band) Reset() {
	b.mu.Lock()
	for i := range b.x1 {
		b.x1[i], b.x2[i], b.y1[i], b.y2[i] = 0, 0, 0, 0
	}
	b.mu.Unlock()
}

// Response evaluates the filter's magnitude response at freq Hz. At the
// center frequency a peaking filter's response equals its design gain.
func (b *Band) Response(freq float64) float64 {
	b.mu.RLock()
	defer b.mu.RUnlock()

	w := 2 * math.Pi * freq / b.sampleRate
	z1 := complex(math.Cos(-w), math.Sin(-w))
	z2 := z1 * z1

	num := complex(b.b0, 0) + complex(b.b1, 0)*z1 + complex(b.b2, 0)*z2
	den := complex(1, 0) + complex(b.a1, 0)*z1 + complex(b.a2, 0)*z2

	return cmplx.Abs(num) / cmplx.Abs(den)
}
