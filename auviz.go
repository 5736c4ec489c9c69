// SPDX-License-Identifier: EPL-2.0

// Package auviz is an audio playback engine: format decoders behind a shared
// Source interface, a managed processing chain (gain, 31-band EQ, analyzer)
// feeding the output device, and terminal visualization of the analyzed
// signal.
//
// Subpackages do the work; this package wires the defaults together.
package auviz

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ik5/auviz/audio"
	"github.com/ik5/auviz/formats/aiff"
	"github.com/ik5/auviz/formats/mp3"
	"github.com/ik5/auviz/formats/vorbis"
	"github.com/ik5/auviz/formats/wav"
	"github.com/ik5/auviz/player"
)

// DefaultRegistry holds every decoder this module ships.
var DefaultRegistry = NewDefaultRegistry()

// NewDefaultRegistry builds a registry with all built-in formats registered.
func NewDefaultRegistry() *audio.Registry {
	reg := audio.NewRegistry()
	reg.Register(".wav", wav.Decoder{})
	reg.Register(".mp3", mp3.Decoder{})
	reg.Register(".ogg", vorbis.Decoder{})
	reg.Register(".oga", vorbis.Decoder{})
	reg.Register(".aiff", aiff.Decoder{})
	reg.Register(".aif", aiff.Decoder{})
	return reg
}

// Load opens path and decodes it with the default registry. Closing the
// returned source also closes the underlying file.
func Load(path string) (audio.Source, error) {
	ext := filepath.Ext(path)
	dec, ok := DefaultRegistry.Get(ext)
	if !ok {
		return nil, fmt.Errorf("%w: %q", audio.ErrNoDecoder, ext)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	src, err := dec.Decode(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return &fileSource{Source: src, f: f}, nil
}

// fileSource ties the lifetime of the backing file to the source.
type fileSource struct {
	audio.Source
	f *os.File
}

func (s *fileSource) Close() error {
	err := s.Source.Close()
	if cerr := s.f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}

// OpenElement opens path as a playback element with the default registry.
func OpenElement(path string) (*player.Element, error) {
	return player.Open(path, DefaultRegistry)
}
