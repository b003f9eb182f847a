// Package termui hosts a fluid background in a terminal with bubbletea.
// Two canvas pixels share one character cell through the upper half block.
package termui

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	colorful "github.com/lucasb-eyer/go-colorful"
	"go.uber.org/zap"

	"github.com/iburimskiy/fluid-meter/internal/background"
	"github.com/iburimskiy/fluid-meter/internal/config"
	"github.com/iburimskiy/fluid-meter/internal/fluid"
	"github.com/iburimskiy/fluid-meter/internal/raster"
)

const (
	chromeLines = 2
	marginStep  = 0.25
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#008000")).
			Padding(0, 1)

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))
)

type tickMsg time.Time

// Options configures a Model.
type Options struct {
	Settings *config.Settings
	Logger   *zap.Logger
}

// Model is the bubbletea model. It is also the fluid.Container of the
// background it shows: ticks are the display refresh.
type Model struct {
	log   *zap.Logger
	meter *fluid.Meter
	bg    *background.Background

	surface *raster.Surface
	pending []fluid.FrameFunc
	now     func() time.Duration

	keys keyMap
	help help.Model

	width, height int
	hue           float64
	err           error

	art        string
	artVersion uint64
}

var _ fluid.Container = (*Model)(nil)

func New(opts Options) *Model {
	s := opts.Settings
	if s == nil {
		s = config.Default()
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	meter := fluid.New(fluid.WithLogger(log.Named("meter")))
	bg := background.New(meter, log)
	bg.SetValue(s.Percentage)
	bg.SetFilling(s.Meter.DrawBubbles)
	bg.SetLevelColor(s.LevelColor)
	bg.SetBackgroundColor(s.BackgroundColor)
	// Not mounted yet, so these only record the values.
	_ = bg.SetRandomStart(s.Meter.RandomStart)
	_ = bg.SetTopMargin(s.Meter.TopMargin)

	start := time.Now()
	return &Model{
		log:   log,
		meter: meter,
		bg:    bg,
		now:   func() time.Duration { return time.Since(start) },
		keys:  defaultKeyMap(),
		help:  help.New(),
	}
}

func (m *Model) Mount(width, height int) fluid.Surface {
	m.surface = raster.New(width, height)
	m.artVersion = 0
	return m.surface
}

func (m *Model) RequestFrame(fn fluid.FrameFunc) {
	m.pending = append(m.pending, fn)
}

func (m *Model) refresh() {
	run := m.pending
	m.pending = nil
	now := m.now()
	for _, fn := range run {
		fn(now)
	}
}

func tick() tea.Cmd {
	return tea.Tick(config.TerminalRefresh, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m *Model) Init() tea.Cmd {
	return tick()
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)

	case tickMsg:
		m.refresh()
		return m, tick()

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.meter.Stop()
			return m, tea.Quit
		case key.Matches(msg, m.keys.Up):
			m.bg.SetValue(m.meter.Percentage() + config.PercentageStep)
		case key.Matches(msg, m.keys.Down):
			m.bg.SetValue(m.meter.Percentage() - config.PercentageStep)
		case key.Matches(msg, m.keys.Bubbles):
			m.bg.SetFilling(!m.bg.Filling())
		case key.Matches(msg, m.keys.Pause):
			if m.meter.State() == fluid.Running {
				m.meter.Stop()
			} else {
				m.meter.Start()
			}
		case key.Matches(msg, m.keys.Color):
			m.hue = math.Mod(m.hue+config.HueStep, 360)
			r, g, b := colorful.Hsv(m.hue, 0.8, 0.9).RGB255()
			m.bg.SetLevelColor([]float64{float64(r), float64(g), float64(b)})
		case key.Matches(msg, m.keys.Random):
			m.err = m.bg.SetRandomStart(!m.bg.Options().RandomStart)
		case key.Matches(msg, m.keys.Margin):
			m.err = m.bg.SetTopMargin(m.nextMargin())
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		}
	}
	return m, nil
}

// resize maps the terminal to canvas pixels and mounts the background on
// the first usable size.
func (m *Model) resize(cols, rows int) {
	m.width, m.height = cols, rows
	m.help.Width = cols
	size := fluid.Size{
		Width:  max(cols, config.TerminalMinSize),
		Height: max(rows-chromeLines, config.TerminalMinSize/2) * 2,
	}
	m.bg.SetSize(size)
	if m.surface != nil {
		return
	}
	if err := m.bg.Mount(m); err != nil {
		m.err = err
		m.log.Error("mount failed", zap.Error(err))
	}
}

// nextMargin cycles the top margin through quarters of the canvas height.
func (m *Model) nextMargin() float64 {
	h := float64(m.bg.Size().Height)
	if h <= 0 {
		return 0
	}
	next := m.bg.Options().TopMargin + h*marginStep
	if next >= h {
		return 0
	}
	return next
}

func (m *Model) View() string {
	if m.surface == nil {
		return "sizing terminal..."
	}

	if v := m.surface.Version(); v != m.artVersion || m.art == "" {
		m.art = renderHalfBlocks(m.surface.Image())
		m.artVersion = v
	}

	var b strings.Builder
	b.WriteString(m.art)
	b.WriteString("\n")
	b.WriteString(titleStyle.Render("fluid"))
	b.WriteString(" ")
	b.WriteString(statusStyle.Render(m.status()))
	if m.err != nil {
		b.WriteString(" ")
		b.WriteString(errorStyle.Render(m.err.Error()))
	}
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m *Model) status() string {
	s := fmt.Sprintf("%3.0f%% -> %3.0f%% %s", m.meter.CurrentPercentage(), m.meter.Percentage(), m.meter.State())
	if m.bg.Filling() {
		s += " | bubbles"
	}
	if o := m.bg.Options(); o.RandomStart {
		s += " | random"
	}
	return s
}
