// SPDX-License-Identifier: EPL-2.0

// Package analyzer implements the graph's analysis node: a passthrough
// stage that taps the signal flowing through it and serves byte-quantized
// frequency- and time-domain snapshots on demand.
//
// The node never alters the audio. Every ReadSamples call mixes the pulled
// frames down to mono into an internal ring buffer; FrequencyData and
// TimeDomainData read the newest window of that ring, so snapshots are
// pull-based and ephemeral. Frequency magnitudes are Hann-windowed FFT bins
// smoothed over time by the smoothing constant and mapped from the
// [-100, -30] dBFS range onto bytes; time-domain bytes center silence at
// 128.
package analyzer
