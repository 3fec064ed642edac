// model.go — the bubbletea Model driving the terminal shader preview.
//
// Grounded on gosuda-erago's cmd/erago Model/Update/View shape: a
// tea.Program ticks the model on a timer, Update advances `time` and
// re-runs the renderer over a small grid, and View renders each pixel
// as a lipgloss-styled block. Every tick is exactly one call to
// Renderer.Execute — the core evaluates; this file only paints it.
package main

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/anarchy-lang/anarchy"
)

type tickMsg time.Time

type model struct {
	renderer   *anarchy.Renderer
	cols, rows uint32
	clock      float64
	random     float64
	fps        float64
	lastErr    error
	frame      []byte
}

func newModel(r *anarchy.Renderer, cols, rows uint32, random, fps float64) model {
	return model{renderer: r, cols: cols, rows: rows, random: random, fps: fps}
}

func (m model) Init() tea.Cmd {
	return tickCmd(m.fps)
}

func tickCmd(fps float64) tea.Cmd {
	return tea.Tick(time.Duration(float64(time.Second)/fps), func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg.(type) {
	case tea.KeyMsg:
		return m, tea.Quit
	case tickMsg:
		m.clock += 1.0 / m.fps
		m.lastErr = nil
		buf := make([]byte, 4*int(m.cols)*int(m.rows))
		if rerr := m.renderer.Execute(buf, m.cols, m.rows, m.clock, m.random); rerr != nil {
			m.lastErr = rerr
			return m, tickCmd(m.fps)
		}
		m.frame = buf
		return m, tickCmd(m.fps)
	}
	return m, nil
}

func (m model) View() tea.View {
	if m.lastErr != nil {
		v := tea.NewView(fmt.Sprintf("shader error: %v\n(press any key to quit)\n", m.lastErr))
		v.AltScreen = true
		return v
	}
	if m.frame == nil {
		v := tea.NewView("warming up...\n")
		v.AltScreen = true
		return v
	}
	var b strings.Builder
	for y := uint32(0); y < m.rows; y++ {
		for x := uint32(0); x < m.cols; x++ {
			off := 4 * (y*m.cols + x)
			r, g, bb := m.frame[off], m.frame[off+1], m.frame[off+2]
			b.WriteString(blockStyle(r, g, bb).Render("  "))
		}
		b.WriteByte('\n')
	}
	b.WriteString("\npress any key to quit\n")
	v := tea.NewView(b.String())
	v.AltScreen = true
	return v
}

// blockStyle renders an RGB triple as a lipgloss style whose
// background is the nearest color in the terminal's 256-color cube,
// found via go-colorful's perceptual Lab distance (the same technique
// gosuda-erago uses to downsample truecolor art for terminal output).
func blockStyle(r, g, b byte) lipgloss.Style {
	target := colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}
	best := 16
	bestDist := 1e9
	for i := 16; i < 232; i++ {
		c := ansi256Color(i)
		d := target.DistanceLab(c)
		if d < bestDist {
			bestDist = d
			best = i
		}
	}
	return lipgloss.NewStyle().Background(lipgloss.Color(fmt.Sprintf("%d", best)))
}

// ansi256Color returns the RGB color of the terminal-256 palette's
// 6x6x6 color cube entries (indices 16..231).
func ansi256Color(i int) colorful.Color {
	if i < 16 || i > 231 {
		return colorful.Color{}
	}
	n := i - 16
	levels := [6]float64{0, 95.0 / 255, 135.0 / 255, 175.0 / 255, 215.0 / 255, 255.0 / 255}
	r := levels[n/36]
	g := levels[(n/6)%6]
	bl := levels[n%6]
	return colorful.Color{R: r, G: g, B: bl}
}
