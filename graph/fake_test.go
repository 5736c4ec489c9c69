package graph

import (
	"io"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/ik5/auviz/audio"
	"github.com/ik5/auviz/formats/wav"
	"github.com/ik5/auviz/player"
)

// fakeBackend is an inert device: it records lifecycle calls and hands out
// fakePlayers that never pull on their own.
type fakeBackend struct {
	mu       sync.Mutex
	ready    chan struct{}
	initErr  error
	resumes  int
	suspends int
	players  []*fakePlayer
}

func newFakeBackend() *fakeBackend {
	fb := &fakeBackend{ready: make(chan struct{})}
	close(fb.ready)
	return fb
}

func (f *fakeBackend) Ready() <-chan struct{} { return f.ready }

func (f *fakeBackend) Err() error { return f.initErr }

func (f *fakeBackend) Resume() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.resumes++
	return nil
}

func (f *fakeBackend) Suspend() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.suspends++
	return nil
}

func (f *fakeBackend) NewPlayer(r io.Reader) Player {
	f.mu.Lock()
	defer f.mu.Unlock()
	p := &fakePlayer{r: r}
	f.players = append(f.players, p)
	return p
}

func (f *fakeBackend) playerCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.players)
}

type fakePlayer struct {
	mu      sync.Mutex
	r       io.Reader
	playing bool
	closed  bool
}

func (p *fakePlayer) Play() {
	p.mu.Lock()
	p.playing = true
	p.mu.Unlock()
}

func (p *fakePlayer) Pause() {
	p.mu.Lock()
	p.playing = false
	p.mu.Unlock()
}

func (p *fakePlayer) IsPlaying() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.playing
}

func (p *fakePlayer) Close() error {
	p.mu.Lock()
	p.closed = true
	p.mu.Unlock()
	return nil
}

func (p *fakePlayer) isClosed() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.closed
}

// installBackend resets the process-wide context and binding table and wires
// make as the device constructor, restoring everything when the test ends.
// Tests using it share globals and must not run in parallel.
func installBackend(t *testing.T, build func(sampleRate, channels int) (Backend, error)) {
	t.Helper()

	origNew := newBackend

	contextMu.Lock()
	origCtx := defaultContext
	defaultContext = nil
	contextMu.Unlock()

	bindingsMu.Lock()
	origBindings := bindings
	bindings = map[*player.Element]*SourceNode{}
	bindingsMu.Unlock()

	newBackend = build

	t.Cleanup(func() {
		newBackend = origNew

		contextMu.Lock()
		defaultContext = origCtx
		contextMu.Unlock()

		bindingsMu.Lock()
		bindings = origBindings
		bindingsMu.Unlock()
	})
}

func installFakeBackend(t *testing.T) *fakeBackend {
	t.Helper()

	fb := newFakeBackend()
	installBackend(t, func(_, _ int) (Backend, error) { return fb, nil })
	return fb
}

// openToneElement opens a mono 8 kHz element holding a constant 0.5 signal,
// so the source node has to remix and resample for the device.
func openToneElement(t *testing.T) *player.Element {
	t.Helper()

	samples := make([]int16, 8000)
	for i := range samples {
		samples[i] = 16384
	}

	path := filepath.Join(t.TempDir(), "tone.wav")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("creating fixture: %v", err)
	}
	if err := wav.WriteWAV16(f, 8000, samples); err != nil {
		f.Close()
		t.Fatalf("writing fixture: %v", err)
	}
	f.Close()

	reg := audio.NewRegistry()
	reg.Register(".wav", wav.Decoder{})

	e, err := player.Open(path, reg)
	if err != nil {
		t.Fatalf("opening fixture: %v", err)
	}
	t.Cleanup(func() { e.Close() })
	return e
}
