// SPDX-License-Identifier: EPL-2.0

package visual

import (
	"sync"
	"time"
)

// DefaultInterval is roughly a display refresh.
const DefaultInterval = 33 * time.Millisecond

// Analyzer is the slice of the analysis node the loop consumes.
type Analyzer interface {
	FFTSize() int
	FrequencyBinCount() int
	FrequencyData(dst []byte) int
	TimeDomainData(dst []byte) int
}

// Loop drives rendering at display rate. Each tick pulls fresh snapshots
// from the analyzer and emits one rendered frame; it then reschedules itself
// unless stopped. Cancellation is checked before every reschedule: Stop
// prevents the next tick without interrupting one already in flight, and no
// tick ever runs after Stop returns.
//
// The analyzer is fetched anew every tick. While it is nil (the graph is not
// built yet, or was torn down) the loop renders nothing but keeps ticking,
// so it picks the analyzer up again as soon as one exists.
type Loop struct {
	interval time.Duration
	renderer *Renderer
	source   func() Analyzer
	emit     func(frame string)

	mu      sync.Mutex
	mode    Mode
	started bool

	stop     chan struct{}
	done     chan struct{}
	stopOnce sync.Once

	freq []byte
	wave []byte
}

// NewLoop creates a stopped loop. source is consulted each tick for the
// current analyzer and may return nil; emit receives every rendered frame.
func NewLoop(interval time.Duration, renderer *Renderer, source func() Analyzer, emit func(string)) *Loop {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Loop{
		interval: interval,
		renderer: renderer,
		source:   source,
		emit:     emit,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

func (l *Loop) SetMode(m Mode) {
	l.mu.Lock()
	l.mode = m
	l.mu.Unlock()
}

func (l *Loop) Mode() Mode {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.mode
}

// Start launches the loop. Starting twice is a no-op.
func (l *Loop) Start() {
	l.mu.Lock()
	if l.started {
		l.mu.Unlock()
		return
	}
	l.started = true
	l.mu.Unlock()

	go l.run()
}

func (l *Loop) run() {
	defer close(l.done)

	timer := time.NewTimer(l.interval)
	defer timer.Stop()

	for {
		select {
		case <-l.stop:
			return
		case <-timer.C:
		}

		l.tick()

		select {
		case <-l.stop:
			return
		default:
		}
		timer.Reset(l.interval)
	}
}

// Stop cancels the loop and waits for it to wind down. An in-flight tick
// finishes; no further tick runs. Stopping twice is safe.
func (l *Loop) Stop() {
	l.stopOnce.Do(func() { close(l.stop) })

	l.mu.Lock()
	started := l.started
	l.mu.Unlock()
	if started {
		<-l.done
	}
}

func (l *Loop) tick() {
	an := l.source()
	if an == nil {
		return
	}

	mode := l.Mode()

	var freq, wave []byte
	if mode == ModeBars || mode == ModeBarsWave {
		if n := an.FrequencyBinCount(); len(l.freq) != n {
			l.freq = make([]byte, n)
		}
		an.FrequencyData(l.freq)
		freq = l.freq
	}
	if mode == ModeWave || mode == ModeBarsWave {
		if n := an.FFTSize(); len(l.wave) != n {
			l.wave = make([]byte, n)
		}
		an.TimeDomainData(l.wave)
		wave = l.wave
	}

	l.emit(l.renderer.Frame(mode, freq, wave))
}
