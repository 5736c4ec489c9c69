// SPDX-License-Identifier: EPL-2.0

package graph

import (
	"github.com/ik5/auviz/analyzer"
	"github.com/ik5/auviz/eq"
)

// The setters below are safe to call at any point in the Manager lifecycle.
// Each clamps its input, stores it, and pushes it into the live node when
// one exists; before the graph is built the stored value is applied by
// EnsureGraph on construction.

// SetVolume sets the output gain, clamped to [0, 1].
func (m *Manager) SetVolume(v float64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.params.Volume = clamp(v, 0, 1)
	if m.volume != nil {
		m.volume.SetGain(m.params.Volume)
	}
}

// SetPreGain sets the gain ahead of the EQ, clamped to [0, 2].
func (m *Manager) SetPreGain(v float64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.params.PreGain = clamp(v, 0, 2)
	if m.pre != nil {
		m.pre.SetGain(m.params.PreGain)
	}
}

// SetBandGain sets one EQ band's gain in dB, clamped to ±eq.GainLimitDB.
// Band indices outside [0, eq.NumBands) are ignored. The gain is retained
// while the EQ is bypassed.
func (m *Manager) SetBandGain(band int, db float64) {
	if band < 0 || band >= eq.NumBands {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.setBandGain(band, db)
}

// SetBandGains sets every band at once, index-aligned with
// eq.CenterFrequencies.
func (m *Manager) SetBandGains(gains [eq.NumBands]float64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, db := range gains {
		m.setBandGain(i, db)
	}
}

func (m *Manager) setBandGain(band int, db float64) {
	m.params.BandGains[band] = clamp(db, -eq.GainLimitDB, eq.GainLimitDB)
	if m.bands[band] != nil {
		m.bands[band].Band().SetGainDB(m.params.BandGains[band])
	}
}

// BandGain returns the stored gain of one band in dB.
func (m *Manager) BandGain(band int) float64 {
	if band < 0 || band >= eq.NumBands {
		return 0
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.params.BandGains[band]
}

// SetEQEnabled switches the band segment in or out of the chain. Bypassing
// rewires a built chain immediately and never resets band gains.
func (m *Manager) SetEQEnabled(on bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.params.EQEnabled == on {
		return
	}
	m.params.EQEnabled = on
	if m.state == StateReady {
		m.rewire()
	}
}

// EQEnabled reports whether the band segment is in the chain.
func (m *Manager) EQEnabled() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.params.EQEnabled
}

// SetFFTSize sets the analysis window size. Invalid sizes are rejected with
// analyzer.ErrInvalidFFTSize and leave the stored value untouched.
func (m *Manager) SetFFTSize(n int) error {
	if !analyzer.ValidFFTSize(n) {
		return analyzer.ErrInvalidFFTSize
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.params.FFTSize = n
	if m.an != nil {
		return m.an.SetFFTSize(n)
	}
	return nil
}

// SetSmoothing sets the analyzer smoothing constant, clamped to [0, 0.99].
func (m *Manager) SetSmoothing(tc float64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.params.Smoothing = clamp(tc, 0, 0.99)
	if m.an != nil {
		m.an.SetSmoothing(m.params.Smoothing)
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
