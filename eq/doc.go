// SPDX-License-Identifier: EPL-2.0

// Package eq implements the peaking filter bands of the graphic equalizer.
//
// A Band is a single biquad peaking filter (RBJ cookbook design) with a
// fixed center frequency and quality factor and a retunable gain. Bands are
// created once per graph lifetime; changing a band's gain recomputes the
// filter coefficients in place without resetting filter state, so retuning
// during playback never causes a click from a state reset.
//
// StandardBands builds the canonical 31-band 1/3-octave bank from 20 Hz to
// 20 kHz with Q 4.31, which approximates 1/3-octave bandwidth for a peaking
// response.
package eq
