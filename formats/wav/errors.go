package wav

import "errors"

var (
	// ErrNotWavFile indicates the input lacks a valid RIFF/WAVE header.
	ErrNotWavFile = errors.New("not a WAV file")

	// ErrUnsupportedWavLayout indicates a channel or rate layout the
	// decoder cannot handle.
	ErrUnsupportedWavLayout = errors.New("unsupported WAV layout")

	// ErrOnlyPCM16bitSupported indicates a bit depth other than 16.
	ErrOnlyPCM16bitSupported = errors.New("only PCM 16-bit supported")

	// ErrUnsupportedWavChunks indicates chunk data the decoder cannot read.
	ErrUnsupportedWavChunks = errors.New("unsupported WAV chunks")
)
