// SPDX-License-Identifier: EPL-2.0

package graph

import (
	"context"
	"sync"

	"github.com/ik5/auviz/analyzer"
	"github.com/ik5/auviz/audio"
	"github.com/ik5/auviz/eq"
	"github.com/ik5/auviz/player"
)

// State tracks a Manager through its lifecycle.
type State int

const (
	// StateUninitialized means no graph has been built yet. A failed
	// EnsureGraph leaves the Manager here, so the caller may retry.
	StateUninitialized State = iota
	// StateReady means the chain is wired and the device is pulling.
	StateReady
	// StateDisposed is terminal; a new Manager picks up the existing
	// Context and bindings.
	StateDisposed
)

// Params holds every live parameter of the chain. Values are stored clamped
// and survive graph teardown: setting a parameter before the graph exists is
// safe, and EnsureGraph applies the stored values when it builds the nodes.
type Params struct {
	Volume    float64 // output gain, [0, 1]
	PreGain   float64 // gain ahead of the EQ, [0, 2]
	BandGains [eq.NumBands]float64
	EQEnabled bool
	FFTSize   int
	Smoothing float64
}

func defaultParams() Params {
	return Params{
		Volume:    1,
		PreGain:   1,
		EQEnabled: true,
		FFTSize:   analyzer.DefaultFFTSize,
		Smoothing: analyzer.DefaultSmoothing,
	}
}

// Manager owns one processing chain. It creates its nodes lazily on the
// first successful EnsureGraph and rewires them in full on every call, so
// repeated and overlapping calls converge to a single correct chain.
type Manager struct {
	mu     sync.Mutex
	state  State
	params Params

	elem *player.Element
	ctx  *Context

	source *SourceNode
	volume *audio.Gain
	pre    *audio.Gain
	bands  [eq.NumBands]*FilterNode
	an     *analyzer.Analyzer
	sink   *audio.PCMStream
	dev    Player
}

func NewManager() *Manager {
	return &Manager{params: defaultParams()}
}

func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Params returns a copy of the stored parameters.
func (m *Manager) Params() Params {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.params
}

// Attach selects the playback element the chain feeds from. The next
// EnsureGraph wires it; attaching a different element later rewires the
// chain onto it while the previous element's binding stays registered.
func (m *Manager) Attach(elem *player.Element) {
	m.mu.Lock()
	m.elem = elem
	m.mu.Unlock()
}

// Element returns the currently attached playback element, or nil.
func (m *Manager) Element() *player.Element {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.elem
}

// Analyzer returns the analysis node, or nil until the graph is built.
func (m *Manager) Analyzer() *analyzer.Analyzer {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.an
}

// EnsureGraph brings the chain up and wires it end to end. It is a no-op
// when no element is attached. On the first successful call it creates the
// process Context (waiting for device readiness, bounded by ctx), the
// element's source binding, and the chain nodes; every call then applies
// the full connection plan, detaching and relinking every stage. A failure
// leaves the Manager uninitialized and retryable.
func (m *Manager) EnsureGraph(ctx context.Context) error {
	m.mu.Lock()
	if m.state == StateDisposed {
		m.mu.Unlock()
		return ErrManagerDisposed
	}
	if m.elem == nil {
		m.mu.Unlock()
		return nil
	}
	if m.ctx == nil {
		c, err := AcquireContext()
		if err != nil {
			m.mu.Unlock()
			return err
		}
		m.ctx = c
	}
	out := m.ctx
	m.mu.Unlock()

	// The readiness wait is the one suspension point of graph construction.
	// It runs outside m.mu so Analyzer() and the live setters never contend
	// with a parked device wait.
	if err := out.Resume(ctx); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	// Re-validate: the Manager may have been disposed or detached while the
	// lock was released.
	if m.state == StateDisposed {
		return ErrManagerDisposed
	}
	if m.elem == nil {
		return nil
	}

	m.source = bindingFor(m.elem, m.ctx.SampleRate(), m.ctx.Channels())

	if m.volume == nil {
		m.volume = audio.NewGain(m.params.Volume)
	}
	if m.pre == nil {
		m.pre = audio.NewGain(m.params.PreGain)
	}
	if m.bands[0] == nil {
		for i, b := range eq.StandardBands(m.ctx.SampleRate()) {
			b.SetGainDB(m.params.BandGains[i])
			m.bands[i] = newFilterNode(b)
		}
	}
	if m.an == nil {
		m.an = analyzer.New()
		if err := m.an.SetFFTSize(m.params.FFTSize); err != nil {
			return err
		}
		m.an.SetSmoothing(m.params.Smoothing)
	}
	if m.sink == nil {
		m.sink = audio.NewPCMStream(m.ctx.Channels())
	}
	if m.dev == nil {
		m.dev = m.ctx.NewPlayer(m.sink)
	}

	m.rewire()

	if !m.dev.IsPlaying() {
		m.dev.Play()
	}
	m.state = StateReady
	return nil
}

// connectionPlan lists the chain stages in pull order after the source:
// volume, pre-gain, the band segment unless bypassed, analyzer, sink.
func connectionPlan(volume, pre *audio.Gain, bands []*FilterNode, an *analyzer.Analyzer, sink *audio.PCMStream, eqEnabled bool) []stage {
	stages := make([]stage, 0, len(bands)+4)
	stages = append(stages, volume, pre)
	if eqEnabled {
		for _, b := range bands {
			stages = append(stages, b)
		}
	}
	return append(stages, an, sink)
}

// rewire detaches every stage the Manager owns, then relinks the chain per
// the connection plan. Callers hold m.mu.
func (m *Manager) rewire() {
	for _, s := range m.allStages() {
		s.SetSource(nil)
	}

	var prev audio.Source = m.source
	for _, s := range connectionPlan(m.volume, m.pre, m.bands[:], m.an, m.sink, m.params.EQEnabled) {
		s.SetSource(prev)
		if src, ok := s.(audio.Source); ok {
			prev = src
		}
	}
}

// allStages lists every rewireable stage, wired or not. Callers hold m.mu.
func (m *Manager) allStages() []stage {
	stages := make([]stage, 0, len(m.bands)+4)
	if m.volume != nil {
		stages = append(stages, m.volume)
	}
	if m.pre != nil {
		stages = append(stages, m.pre)
	}
	for _, b := range m.bands {
		if b != nil {
			stages = append(stages, b)
		}
	}
	if m.an != nil {
		stages = append(stages, m.an)
	}
	if m.sink != nil {
		stages = append(stages, m.sink)
	}
	return stages
}

// Close tears the chain down: every stage is detached, the device player is
// stopped and released, and node references are dropped so a later Manager
// builds fresh ones. The process Context and the element bindings survive.
func (m *Manager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state == StateDisposed {
		return nil
	}

	for _, s := range m.allStages() {
		s.SetSource(nil)
	}

	var err error
	if m.dev != nil {
		m.dev.Pause()
		err = m.dev.Close()
	}

	m.source = nil
	m.volume = nil
	m.pre = nil
	m.bands = [eq.NumBands]*FilterNode{}
	m.an = nil
	m.sink = nil
	m.dev = nil

	m.state = StateDisposed
	return err
}
