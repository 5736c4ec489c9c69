// SPDX-License-Identifier: EPL-2.0

package player

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/ik5/auviz/audio"
)

// Element plays back a single local media file. It is itself an audio.Source:
// the processing chain pulls samples from it, and while the element is paused
// (or has reached the end of the media) it yields silence so the chain keeps
// running at a steady rate.
//
// All methods are safe for concurrent use; the output device pulls samples
// from a different goroutine than the one driving the transport controls.
type Element struct {
	mu sync.Mutex

	path string
	reg  *audio.Registry

	src        audio.Source
	file       *os.File
	sampleRate int
	channels   int
	frames     int64 // total frames, 0 when the codec cannot tell

	pos     int64 // frames consumed since the start of the media
	playing bool
	ended   bool
	closed  bool

	skipBuf []float32
}

// Open loads the media at path, picking a decoder from reg by the file
// extension. Failures carry a *MediaError: FaultUnsupported when no decoder
// matches, FaultNetwork when the file cannot be read, FaultDecode when the
// decoder rejects the content.
func Open(path string, reg *audio.Registry) (*Element, error) {
	e := &Element{path: path, reg: reg}
	if err := e.load(); err != nil {
		return nil, err
	}
	return e, nil
}

// load opens the file and decodes it from the start. Callers hold e.mu,
// except for Open where the element is not yet shared.
func (e *Element) load() error {
	dec, ok := e.reg.Get(filepath.Ext(e.path))
	if !ok {
		return &MediaError{Code: FaultUnsupported, Op: "open " + e.path}
	}

	f, err := os.Open(e.path)
	if err != nil {
		return &MediaError{Code: FaultNetwork, Op: "open " + e.path, Err: err}
	}

	src, err := dec.Decode(f)
	if err != nil {
		f.Close()
		return &MediaError{Code: FaultDecode, Op: "decode " + e.path, Err: err}
	}

	e.src = src
	e.file = f
	e.sampleRate = src.SampleRate()
	e.channels = src.Channels()
	e.frames = 0
	if sized, ok := src.(audio.Sized); ok {
		e.frames = sized.Frames()
	}
	return nil
}

func (e *Element) SampleRate() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.sampleRate
}

func (e *Element) Channels() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.channels
}

func (e *Element) BufSize() int { return 4096 }

// Path returns the media location the element was opened with.
func (e *Element) Path() string { return e.path }

// Play starts (or resumes) consuming media on subsequent reads. It returns
// ErrPlaybackRejected when there is nothing to play.
func (e *Element) Play() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed || e.src == nil {
		return fmt.Errorf("%w", ErrPlaybackRejected)
	}
	e.playing = true
	return nil
}

// Pause stops consuming media; subsequent reads yield silence.
func (e *Element) Pause() {
	e.mu.Lock()
	e.playing = false
	e.mu.Unlock()
}

func (e *Element) Playing() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.playing
}

// Ended reports whether playback ran off the end of the media. Seeking
// backwards clears it.
func (e *Element) Ended() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.ended
}

// Position is the playback offset within the media.
func (e *Element) Position() time.Duration {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.sampleRate == 0 {
		return 0
	}
	return framesToDuration(e.pos, e.sampleRate)
}

// Duration is the total media length, or 0 when the codec cannot tell.
func (e *Element) Duration() time.Duration {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.sampleRate == 0 || e.frames == 0 {
		return 0
	}
	return framesToDuration(e.frames, e.sampleRate)
}

// Seek moves playback to the given offset, clamped to the media bounds.
// Codecs with native seeking are seeked in place; the rest are reopened and
// skipped forward. Play/pause state is preserved across the seek.
func (e *Element) Seek(to time.Duration) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed || e.src == nil {
		return &MediaError{Code: FaultAborted, Op: "seek " + e.path}
	}

	if to < 0 {
		to = 0
	}
	frame := durationToFrames(to, e.sampleRate)
	if e.frames > 0 && frame > e.frames {
		frame = e.frames
	}

	if s, ok := e.src.(audio.Seekable); ok {
		err := s.SeekFrame(frame)
		if err == nil {
			e.pos = frame
			e.ended = e.frames > 0 && frame >= e.frames
			return nil
		}
		if !errors.Is(err, audio.ErrSeekUnsupported) {
			return &MediaError{Code: FaultDecode, Op: "seek " + e.path, Err: err}
		}
	}

	return e.reopenAt(frame)
}

// reopenAt rebuilds the decoder from the start of the file and discards
// frames until the target offset. Callers hold e.mu.
func (e *Element) reopenAt(frame int64) error {
	oldSrc, oldFile := e.src, e.file
	if err := e.load(); err != nil {
		// The element keeps its previous stream on failure.
		e.src, e.file = oldSrc, oldFile
		return err
	}
	oldSrc.Close()
	oldFile.Close()

	if e.skipBuf == nil {
		e.skipBuf = make([]float32, 4096-4096%e.channels)
	}

	remaining := frame * int64(e.channels)
	for remaining > 0 {
		want := int64(len(e.skipBuf))
		if want > remaining {
			want = remaining
		}
		n, err := e.src.ReadSamples(e.skipBuf[:want])
		remaining -= int64(n)
		if err == io.EOF {
			break
		}
		if err != nil {
			return &MediaError{Code: FaultDecode, Op: "seek " + e.path, Err: err}
		}
	}

	e.pos = frame - remaining/int64(e.channels)
	e.ended = e.frames > 0 && e.pos >= e.frames
	return nil
}

// ReadSamples implements audio.Source. While paused, ended or closed it
// fills dst with silence and reports success, so a downstream device never
// starves. It never returns io.EOF.
func (e *Element) ReadSamples(dst []float32) (int, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.playing || e.closed || e.src == nil {
		zero(dst)
		return len(dst), nil
	}

	n, err := e.src.ReadSamples(dst)
	e.pos += int64(n) / int64(e.channels)

	switch {
	case err == io.EOF:
		e.playing = false
		e.ended = true
	case err != nil:
		e.playing = false
		return n, &MediaError{Code: FaultDecode, Op: "read " + e.path, Err: err}
	}

	// Short reads pad with silence; the chain expects a full buffer.
	zero(dst[n:])
	return len(dst), nil
}

// Close releases the decoder and the underlying file. The element stays
// usable as a silent source so an already-wired chain keeps running.
func (e *Element) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return nil
	}
	e.closed = true
	e.playing = false

	var err error
	if e.src != nil {
		err = e.src.Close()
		e.src = nil
	}
	if e.file != nil {
		if cerr := e.file.Close(); err == nil {
			err = cerr
		}
		e.file = nil
	}
	if err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}

func zero(s []float32) {
	for i := range s {
		s[i] = 0
	}
}

func framesToDuration(frames int64, rate int) time.Duration {
	return time.Duration(frames) * time.Second / time.Duration(rate)
}

func durationToFrames(d time.Duration, rate int) int64 {
	return int64(d) * int64(rate) / int64(time.Second)
}
