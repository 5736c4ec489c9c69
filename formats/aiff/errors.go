package aiff

import "errors"

var (
	// ErrNotAiffFile indicates the input lacks a valid FORM/AIFF header.
	ErrNotAiffFile = errors.New("not an AIFF file")

	// ErrOnlyPCM16bitSupported indicates a bit depth other than 16.
	ErrOnlyPCM16bitSupported = errors.New("only 16-bit PCM AIFF is supported")

	// ErrUnsupportedAiffLayout indicates a channel or rate layout the
	// decoder cannot handle.
	ErrUnsupportedAiffLayout = errors.New("unsupported AIFF layout")

	// ErrUnsupportedAiffChunks indicates chunk data the decoder cannot
	// handle.
	ErrUnsupportedAiffChunks = errors.New("unsupported or malformed AIFF chunks")
)
