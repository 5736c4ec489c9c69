// SPDX-License-Identifier: EPL-2.0

package visual

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Mode selects what a frame shows.
type Mode int

const (
	ModeBars Mode = iota
	ModeWave
	ModeBarsWave
)

func (m Mode) String() string {
	switch m {
	case ModeBars:
		return "bars"
	case ModeWave:
		return "wave"
	case ModeBarsWave:
		return "bars+wave"
	default:
		return "unknown"
	}
}

// Next cycles to the following mode.
func (m Mode) Next() Mode {
	switch m {
	case ModeBars:
		return ModeWave
	case ModeWave:
		return ModeBarsWave
	default:
		return ModeBars
	}
}

var barChars = []rune(" ▁▂▃▄▅▆▇█")

// rowColors is the bottom-to-top gradient for spectrum bars.
var rowColors = []lipgloss.Color{"28", "34", "40", "112", "154", "184", "214", "208"}

var waveStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))

// Renderer draws analyzer snapshots into fixed-size text frames.
type Renderer struct {
	width  int
	height int
}

func NewRenderer(width, height int) *Renderer {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	return &Renderer{width: width, height: height}
}

// Frame renders one frame for the given mode. freq holds frequency snapshot
// bytes, wave time-domain bytes; each may be empty when the mode ignores it.
func (r *Renderer) Frame(mode Mode, freq, wave []byte) string {
	switch mode {
	case ModeWave:
		return r.Wave(wave)
	case ModeBarsWave:
		return r.Bars(freq) + "\n" + r.Wave(wave)
	default:
		return r.Bars(freq)
	}
}

// Bars renders a frequency snapshot as vertical bars across the full width,
// one column per group of bins, sub-cell resolution via partial block runes.
func (r *Renderer) Bars(freq []byte) string {
	levels := make([]float64, r.width)
	for col := range levels {
		levels[col] = float64(columnLevel(freq, col, r.width)) / 255
	}

	rows := make([]string, r.height)
	for row := 0; row < r.height; row++ {
		var line strings.Builder
		for col := 0; col < r.width; col++ {
			level := levels[col] * float64(r.height)
			fromBottom := float64(r.height - 1 - row)

			idx := 0
			if level > fromBottom+1 {
				idx = len(barChars) - 1
			} else if level > fromBottom {
				idx = int((level - fromBottom) * float64(len(barChars)-1))
			}
			line.WriteRune(barChars[idx])
		}
		style := lipgloss.NewStyle().Foreground(rowColor(row, r.height))
		rows[row] = style.Render(line.String())
	}
	return strings.Join(rows, "\n")
}

// Wave renders a time-domain snapshot as a polyline: one point per column,
// byte 128 on the middle row.
func (r *Renderer) Wave(wave []byte) string {
	grid := make([][]rune, r.height)
	for i := range grid {
		grid[i] = make([]rune, r.width)
		for j := range grid[i] {
			grid[i][j] = ' '
		}
	}

	prev := -1
	for col := 0; col < r.width; col++ {
		v := columnLevel(wave, col, r.width)
		row := int(math.Round(float64(255-v) / 255 * float64(r.height-1)))
		grid[row][col] = '█'

		// Connect vertical jumps so the line stays contiguous.
		if prev >= 0 {
			lo, hi := prev, row
			if lo > hi {
				lo, hi = hi, lo
			}
			for y := lo + 1; y < hi; y++ {
				grid[y][col] = '│'
			}
		}
		prev = row
	}

	rows := make([]string, r.height)
	for i, line := range grid {
		rows[i] = waveStyle.Render(string(line))
	}
	return strings.Join(rows, "\n")
}

// columnLevel maps column col of width to a representative byte of data:
// the maximum of the bins that fall into the column.
func columnLevel(data []byte, col, width int) byte {
	if len(data) == 0 {
		return 0
	}
	lo := col * len(data) / width
	hi := (col + 1) * len(data) / width
	if hi <= lo {
		hi = lo + 1
	}
	if hi > len(data) {
		hi = len(data)
	}

	var level byte
	for _, v := range data[lo:hi] {
		if v > level {
			level = v
		}
	}
	return level
}

func rowColor(row, height int) lipgloss.Color {
	// Top rows get the hot end of the gradient.
	idx := (height - 1 - row) * len(rowColors) / height
	if idx >= len(rowColors) {
		idx = len(rowColors) - 1
	}
	return rowColors[idx]
}
