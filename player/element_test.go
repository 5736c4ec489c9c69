package player

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ik5/auviz/audio"
	"github.com/ik5/auviz/formats/wav"
)

func testRegistry() *audio.Registry {
	reg := audio.NewRegistry()
	reg.Register(".wav", wav.Decoder{})
	return reg
}

// writeStepWAV writes a mono 16-bit WAV whose first half is silence and
// second half holds the value 16384 (0.5 after float conversion), so tests
// can tell which region of the media a read landed in.
func writeStepWAV(t *testing.T, sampleRate, frames int) string {
	t.Helper()

	samples := make([]int16, frames)
	for i := frames / 2; i < frames; i++ {
		samples[i] = 16384
	}

	path := filepath.Join(t.TempDir(), "step.wav")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("creating fixture: %v", err)
	}
	defer f.Close()

	if err := wav.WriteWAV16(f, sampleRate, samples); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	return path
}

func TestOpen_UnsupportedExtension(t *testing.T) {
	t.Parallel()

	_, err := Open("song.xyz", testRegistry())

	var me *MediaError
	if !errors.As(err, &me) {
		t.Fatalf("Open() error = %v, want *MediaError", err)
	}
	if me.Code != FaultUnsupported {
		t.Errorf("fault code = %v, want %v", me.Code, FaultUnsupported)
	}
}

func TestOpen_MissingFile(t *testing.T) {
	t.Parallel()

	_, err := Open(filepath.Join(t.TempDir(), "missing.wav"), testRegistry())

	var me *MediaError
	if !errors.As(err, &me) {
		t.Fatalf("Open() error = %v, want *MediaError", err)
	}
	if me.Code != FaultNetwork {
		t.Errorf("fault code = %v, want %v", me.Code, FaultNetwork)
	}
}

func TestOpen_CorruptContent(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "bogus.wav")
	if err := os.WriteFile(path, []byte("not a riff file at all"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := Open(path, testRegistry())

	var me *MediaError
	if !errors.As(err, &me) {
		t.Fatalf("Open() error = %v, want *MediaError", err)
	}
	if me.Code != FaultDecode {
		t.Errorf("fault code = %v, want %v", me.Code, FaultDecode)
	}
}

func TestElement_PausedYieldsSilence(t *testing.T) {
	t.Parallel()

	e, err := Open(writeStepWAV(t, 8000, 8000), testRegistry())
	if err != nil {
		t.Fatal(err)
	}
	defer e.Close()

	dst := make([]float32, 256)
	for i := range dst {
		dst[i] = 1 // must be overwritten
	}
	n, err := e.ReadSamples(dst)
	if err != nil {
		t.Fatalf("ReadSamples() error = %v", err)
	}
	if n != len(dst) {
		t.Fatalf("ReadSamples() n = %d, want %d", n, len(dst))
	}
	for i, v := range dst {
		if v != 0 {
			t.Fatalf("paused sample %d = %v, want 0", i, v)
		}
	}
	if e.Position() != 0 {
		t.Errorf("Position() advanced while paused: %v", e.Position())
	}
}

func TestElement_PlayAdvancesPosition(t *testing.T) {
	t.Parallel()

	e, err := Open(writeStepWAV(t, 8000, 8000), testRegistry())
	if err != nil {
		t.Fatal(err)
	}
	defer e.Close()

	if err := e.Play(); err != nil {
		t.Fatalf("Play() error = %v", err)
	}

	dst := make([]float32, 800)
	if _, err := e.ReadSamples(dst); err != nil {
		t.Fatalf("ReadSamples() error = %v", err)
	}

	if got, want := e.Position(), 100*time.Millisecond; got != want {
		t.Errorf("Position() = %v, want %v", got, want)
	}
	if got, want := e.Duration(), time.Second; got != want {
		t.Errorf("Duration() = %v, want %v", got, want)
	}
}

func TestElement_EndOfMediaPausesAndSilences(t *testing.T) {
	t.Parallel()

	e, err := Open(writeStepWAV(t, 8000, 400), testRegistry())
	if err != nil {
		t.Fatal(err)
	}
	defer e.Close()

	if err := e.Play(); err != nil {
		t.Fatal(err)
	}

	dst := make([]float32, 1024)
	if _, err := e.ReadSamples(dst); err != nil {
		t.Fatalf("ReadSamples() error = %v", err)
	}
	// The media had 400 frames; the rest of the buffer must be silence.
	for i := 400; i < len(dst); i++ {
		if dst[i] != 0 {
			t.Fatalf("sample %d past end = %v, want 0", i, dst[i])
		}
	}

	if !e.Ended() {
		t.Error("Ended() = false after consuming all media")
	}
	if e.Playing() {
		t.Error("Playing() = true after end of media")
	}

	if _, err := e.ReadSamples(dst); err != nil {
		t.Fatalf("ReadSamples() after end error = %v", err)
	}
}

func TestElement_SeekReopensAndSkips(t *testing.T) {
	t.Parallel()

	// WAV sources have no native seek, so this exercises reopen-and-skip.
	e, err := Open(writeStepWAV(t, 8000, 8000), testRegistry())
	if err != nil {
		t.Fatal(err)
	}
	defer e.Close()

	if err := e.Seek(750 * time.Millisecond); err != nil {
		t.Fatalf("Seek() error = %v", err)
	}
	if got, want := e.Position(), 750*time.Millisecond; got != want {
		t.Fatalf("Position() after seek = %v, want %v", got, want)
	}

	if err := e.Play(); err != nil {
		t.Fatal(err)
	}
	dst := make([]float32, 64)
	if _, err := e.ReadSamples(dst); err != nil {
		t.Fatal(err)
	}
	// 750ms is inside the step region, so samples must read 0.5.
	if dst[0] != 0.5 {
		t.Errorf("sample after seek = %v, want 0.5", dst[0])
	}
}

func TestElement_SeekClampsToBounds(t *testing.T) {
	t.Parallel()

	e, err := Open(writeStepWAV(t, 8000, 8000), testRegistry())
	if err != nil {
		t.Fatal(err)
	}
	defer e.Close()

	if err := e.Seek(-time.Second); err != nil {
		t.Fatalf("Seek(-1s) error = %v", err)
	}
	if e.Position() != 0 {
		t.Errorf("Position() after negative seek = %v, want 0", e.Position())
	}

	if err := e.Seek(time.Hour); err != nil {
		t.Fatalf("Seek(1h) error = %v", err)
	}
	if got, want := e.Position(), time.Second; got != want {
		t.Errorf("Position() after overshoot seek = %v, want %v", got, want)
	}
	if !e.Ended() {
		t.Error("Ended() = false after seeking to the end")
	}
}

func TestElement_PlayAfterCloseRejected(t *testing.T) {
	t.Parallel()

	e, err := Open(writeStepWAV(t, 8000, 400), testRegistry())
	if err != nil {
		t.Fatal(err)
	}
	if err := e.Close(); err != nil {
		t.Fatal(err)
	}

	if err := e.Play(); !errors.Is(err, ErrPlaybackRejected) {
		t.Errorf("Play() after Close error = %v, want ErrPlaybackRejected", err)
	}

	// A closed element stays a valid silent source for an attached chain.
	dst := make([]float32, 16)
	if n, err := e.ReadSamples(dst); err != nil || n != len(dst) {
		t.Errorf("ReadSamples() after Close = (%d, %v), want (%d, nil)", n, err, len(dst))
	}
}
