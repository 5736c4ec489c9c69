// SPDX-License-Identifier: EPL-2.0

// Package audio provides the low-level streaming primitives the playback
// graph is built from.
//
// The Source interface is the universal stage contract:
//
//	type Source interface {
//	    SampleRate() int
//	    Channels() int
//	    ReadSamples(dst []float32) (int, error)
//	    BufSize() int
//	    Close() error
//	}
//
// Decoders, the resampler, the mono mixer and every node in the processing
// graph implement or consume Source, so stages compose into pull-based
// pipelines: the output device pulls from the sink, the sink pulls from the
// analyzer, and so on back to the decoder.
//
// # Sample format
//
// Samples are interleaved float32 in [-1.0, 1.0]. 0.0 is silence. The
// normalized form keeps intermediate stages free of bit-depth concerns;
// conversion to the device's 16-bit PCM happens once, in PCMStream.
//
// # Resampling
//
// Resampler converts a Source to a target rate with cubic interpolation.
// The graph uses it to match decoder output to the output device rate:
//
//	resampled := audio.NewResampler(src, 44100)
//
// # Decoder registry
//
// The Registry maps a file extension to its Decoder so the player can pick
// a codec without importing every format package:
//
//	registry := audio.NewRegistry()
//	registry.Register(".wav", wav.Decoder{})
//
// # Error handling
//
// ReadSamples returns io.EOF when the stream is exhausted. Any other error
// is a real fault in the source or the processing stage.
package audio
