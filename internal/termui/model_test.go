package termui

import (
	"image"
	"image/color"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/iburimskiy/fluid-meter/internal/config"
	"github.com/iburimskiy/fluid-meter/internal/fluid"
)

func newSizedModel(t *testing.T) (*Model, *time.Duration) {
	t.Helper()
	m := New(Options{})
	now := new(time.Duration)
	m.now = func() time.Duration { return *now }
	m.Update(tea.WindowSizeMsg{Width: 40, Height: 22})
	if m.err != nil {
		t.Fatal(m.err)
	}
	return m, now
}

func tickFor(m *Model, now *time.Duration, d time.Duration) {
	for elapsed := time.Duration(0); elapsed < d; elapsed += 50 * time.Millisecond {
		*now += 50 * time.Millisecond
		m.Update(tickMsg{})
	}
}

func press(m *Model, s string) tea.Cmd {
	var msg tea.KeyMsg
	switch s {
	case "up":
		msg = tea.KeyMsg{Type: tea.KeyUp}
	case " ":
		msg = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
	_, cmd := m.Update(msg)
	return cmd
}

func TestViewBeforeSize(t *testing.T) {
	m := New(Options{})
	if v := m.View(); strings.Contains(v, halfBlock) {
		t.Errorf("unsized view drew the canvas: %q", v)
	}
	if m.Init() == nil {
		t.Error("Init returned no tick")
	}
}

func TestWindowSizeMountsCanvas(t *testing.T) {
	m, now := newSizedModel(t)
	if m.meter.State() != fluid.Running {
		t.Fatalf("state = %v", m.meter.State())
	}
	if w, h := m.surface.Size(); w != 40 || h != 40 {
		t.Fatalf("canvas = %dx%d", w, h)
	}

	tickFor(m, now, 10*time.Second)
	if got := m.meter.CurrentPercentage(); got != 50 {
		t.Errorf("current = %v, want 50", got)
	}

	view := m.View()
	lines := strings.Split(view, "\n")
	if len(lines) < 20+chromeLines {
		t.Errorf("view has %d lines", len(lines))
	}
	if !strings.Contains(lines[0], halfBlock) {
		t.Errorf("first line is not canvas: %q", lines[0])
	}

	m.Update(tea.WindowSizeMsg{Width: 30, Height: 12})
	if w, h := m.surface.Size(); w != 30 || h != 20 {
		t.Errorf("resized canvas = %dx%d", w, h)
	}
}

func TestViewCachedBetweenFrames(t *testing.T) {
	m, now := newSizedModel(t)
	tickFor(m, now, time.Second)
	m.View()
	v := m.artVersion
	m.View()
	if m.artVersion != v {
		t.Error("view re-rendered an unchanged surface")
	}
}

func TestKeys(t *testing.T) {
	m, _ := newSizedModel(t)

	press(m, "up")
	if got := m.meter.Percentage(); got != 50+config.PercentageStep {
		t.Errorf("percentage = %v", got)
	}
	press(m, "j")
	if got := m.meter.Percentage(); got != 50 {
		t.Errorf("percentage = %v", got)
	}

	before := m.bg.Filling()
	press(m, "b")
	if m.bg.Filling() == before || m.meter.Options().DrawBubbles == before {
		t.Error("b did not toggle bubbles")
	}

	press(m, " ")
	if m.meter.State() != fluid.Stopped {
		t.Errorf("space: state = %v", m.meter.State())
	}
	press(m, " ")
	if m.meter.State() != fluid.Running {
		t.Errorf("space again: state = %v", m.meter.State())
	}

	color := m.bg.LevelColor()
	press(m, "c")
	if got := m.bg.LevelColor(); got[0] == color[0] && got[1] == color[1] && got[2] == color[2] {
		t.Errorf("c kept level color %v", got)
	}

	press(m, "t")
	if got := m.meter.Options().TopMargin; got != 10 {
		t.Errorf("top margin = %v, want 10", got)
	}

	if cmd := press(m, "q"); cmd == nil {
		t.Error("q did not quit")
	}
	if m.meter.State() != fluid.Stopped {
		t.Errorf("quit left the meter %v", m.meter.State())
	}
}

func TestRenderHalfBlocks(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 3, 3))
	for x := range 3 {
		img.SetRGBA(x, 0, color.RGBA{R: 255, A: 255})
		img.SetRGBA(x, 1, color.RGBA{B: 255, A: 255})
	}
	out := renderHalfBlocks(img)
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("lines = %d", len(lines))
	}
	for i, l := range lines {
		if n := strings.Count(l, halfBlock); n != 3 {
			t.Errorf("line %d has %d cells", i, n)
		}
	}
}
