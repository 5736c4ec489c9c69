// SPDX-License-Identifier: EPL-2.0

package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ik5/auviz/eq"
	"github.com/ik5/auviz/graph"
	"github.com/ik5/auviz/player"
	"github.com/ik5/auviz/visual"
)

const (
	visWidth  = 62
	visHeight = 10

	seekStep   = 5 * time.Second
	volumeStep = 0.05
	gainStep   = 1.0
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	bandStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("117"))
	activeStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("213"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

type frameMsg string

type graphMsg struct{ err error }

type statusTickMsg time.Time

type model struct {
	elem *player.Element
	mgr  *graph.Manager
	loop *visual.Loop

	frame   string
	band    int // selected EQ band
	lastErr error
}

func newModel(elem *player.Element, mgr *graph.Manager) *model {
	return &model{elem: elem, mgr: mgr}
}

func (m *model) Init() tea.Cmd {
	return tea.Batch(m.ensureGraph(), statusTick())
}

func (m *model) ensureGraph() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return graphMsg{err: m.mgr.EnsureGraph(ctx)}
	}
}

func statusTick() tea.Cmd {
	return tea.Tick(500*time.Millisecond, func(t time.Time) tea.Msg {
		return statusTickMsg(t)
	})
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case frameMsg:
		m.frame = string(msg)
		return m, nil

	case graphMsg:
		m.lastErr = msg.err
		return m, nil

	case statusTickMsg:
		return m, statusTick()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case " ":
		if m.elem.Playing() {
			m.elem.Pause()
			return m, nil
		}
		if err := m.elem.Play(); err != nil {
			m.lastErr = err
			return m, nil
		}
		// Playing requires a wired chain; ensure is idempotent.
		return m, m.ensureGraph()

	case "left":
		m.seekBy(-seekStep)
	case "right":
		m.seekBy(seekStep)

	case "up":
		m.mgr.SetVolume(m.mgr.Params().Volume + volumeStep)
	case "down":
		m.mgr.SetVolume(m.mgr.Params().Volume - volumeStep)

	case "[", "shift+tab":
		m.band = (m.band + eq.NumBands - 1) % eq.NumBands
	case "]", "tab":
		m.band = (m.band + 1) % eq.NumBands

	case "+", "=":
		m.mgr.SetBandGain(m.band, m.mgr.BandGain(m.band)+gainStep)
	case "-", "_":
		m.mgr.SetBandGain(m.band, m.mgr.BandGain(m.band)-gainStep)
	case "0":
		m.mgr.SetBandGain(m.band, 0)

	case "e":
		m.mgr.SetEQEnabled(!m.mgr.EQEnabled())

	case "m":
		if m.loop != nil {
			m.loop.SetMode(m.loop.Mode().Next())
		}
	}
	return m, nil
}

func (m *model) seekBy(d time.Duration) {
	if err := m.elem.Seek(m.elem.Position() + d); err != nil {
		m.lastErr = err
	}
}

func (m *model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("auviz — "+m.elem.Path()) + "\n")
	b.WriteString(m.statusLine() + "\n\n")

	if m.frame != "" {
		b.WriteString(m.frame + "\n\n")
	}

	b.WriteString(m.eqLine() + "\n")
	if m.lastErr != nil {
		b.WriteString(errorStyle.Render(m.lastErr.Error()) + "\n")
	}
	b.WriteString(helpStyle.Render(
		"space play/pause · ←/→ seek · ↑/↓ volume · tab/[ ] band · +/- gain · 0 flat · e eq · m mode · q quit"))
	return b.String()
}

func (m *model) statusLine() string {
	state := "paused"
	if m.elem.Playing() {
		state = "playing"
	} else if m.elem.Ended() {
		state = "ended"
	}

	eqState := "eq on"
	if !m.mgr.EQEnabled() {
		eqState = "eq off"
	}

	return statusStyle.Render(fmt.Sprintf("%s  %s / %s  vol %.0f%%  %s",
		state,
		formatClock(m.elem.Position()),
		formatClock(m.elem.Duration()),
		m.mgr.Params().Volume*100,
		eqState,
	))
}

// eqLine draws a compact slider per band, the selected one highlighted with
// its center frequency and gain spelled out.
func (m *model) eqLine() string {
	chars := []rune("▁▂▃▄▅▆▇█")
	freqs := eq.CenterFrequencies()

	var b strings.Builder
	for i := 0; i < eq.NumBands; i++ {
		gain := m.mgr.BandGain(i)
		idx := int((gain + eq.GainLimitDB) / (2 * eq.GainLimitDB) * float64(len(chars)-1))
		if idx < 0 {
			idx = 0
		} else if idx >= len(chars) {
			idx = len(chars) - 1
		}

		cell := string(chars[idx])
		if i == m.band {
			b.WriteString(activeStyle.Render(cell))
		} else {
			b.WriteString(bandStyle.Render(cell))
		}
	}

	b.WriteString("  ")
	b.WriteString(activeStyle.Render(fmt.Sprintf("%s %+.0f dB", formatFrequency(freqs[m.band]), m.mgr.BandGain(m.band))))
	return b.String()
}

func formatClock(d time.Duration) string {
	d = d.Round(time.Second)
	return fmt.Sprintf("%d:%02d", int(d.Minutes()), int(d.Seconds())%60)
}

func formatFrequency(hz float64) string {
	if hz >= 1000 {
		return fmt.Sprintf("%.3gkHz", hz/1000)
	}
	return fmt.Sprintf("%.0fHz", hz)
}
