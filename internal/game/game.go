// Package game hosts a fluid meter in an Ebitengine window.
package game

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/ncruces/zenity"
	"go.uber.org/zap"

	"github.com/iburimskiy/fluid-meter/internal/colorutil"
	"github.com/iburimskiy/fluid-meter/internal/config"
	"github.com/iburimskiy/fluid-meter/internal/fluid"
)

// Options configures a Game.
type Options struct {
	Settings *config.Settings

	// Preferences may be nil; the game then remembers nothing.
	Preferences *PreferencesManager
	Logger      *zap.Logger

	// AudioFile, when set, is played at start and drives the level.
	AudioFile string
}

// Game is the ebiten.Game showing one meter scaled to the window.
type Game struct {
	log      *zap.Logger
	settings *config.Settings
	prefs    *PreferencesManager

	meter *fluid.Meter
	host  *Host
	audio *audioOut

	side       int
	outW, outH int
	hue        float64
	level      float64 // smoothed audio level
	lastErr    error
}

// DefaultPreferences derives the first-run preferences from s.
func DefaultPreferences(s *config.Settings) Preferences {
	return Preferences{
		Percentage:  s.Percentage,
		LevelColor:  s.LevelColor,
		DrawBubbles: s.Meter.DrawBubbles,
	}
}

// New initializes the meter and audio. The meter starts running.
func New(opts Options) (*Game, error) {
	s := opts.Settings
	if s == nil {
		s = config.Default()
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	prefs := opts.Preferences
	if prefs == nil {
		prefs = NewPreferencesManager(nil, DefaultPreferences(s), log)
	}

	g := &Game{
		log:      log,
		settings: s,
		prefs:    prefs,
		host:     NewHost(),
		audio:    newAudioOut(log, s.Sound),
		side:     min(s.Window.Width, s.Window.Height),
	}
	g.meter = fluid.New(
		fluid.WithLogger(log.Named("meter")),
		fluid.WithBubblePop(g.audio.pop),
	)

	p := prefs.Get()
	meterOpts := s.Meter
	meterOpts.Width, meterOpts.Height, meterOpts.Size = g.side, g.side, float64(g.side)
	meterOpts.DrawBubbles = p.DrawBubbles
	if err := g.meter.Init(fluid.Env{Container: g.host, FillPercentage: p.Percentage, Options: meterOpts}); err != nil {
		return nil, fmt.Errorf("init meter: %w", err)
	}
	g.meter.SetLevelColor(p.LevelColor)
	g.meter.SetBackgroundColor(s.BackgroundColor)

	if s.Sound.Enabled {
		if err := g.audio.enablePops(p.Muted); err != nil {
			log.Warn("sound disabled", zap.Error(err))
		}
	}
	if opts.AudioFile != "" {
		if err := g.audio.open(opts.AudioFile); err != nil {
			return nil, fmt.Errorf("open audio: %w", err)
		}
	}
	return g, nil
}

// Meter exposes the hosted meter.
func (g *Game) Meter() *fluid.Meter {
	return g.meter
}

func (g *Game) Update() error {
	switch {
	case ebiten.IsWindowBeingClosed(),
		inpututil.IsKeyJustPressed(ebiten.KeyEscape),
		inpututil.IsKeyJustPressed(ebiten.KeyQ):
		g.Close()
		return ebiten.Termination
	case inpututil.IsKeyJustPressed(ebiten.KeyUp):
		g.setPercentage(g.meter.Percentage() + config.PercentageStep)
	case inpututil.IsKeyJustPressed(ebiten.KeyDown):
		g.setPercentage(g.meter.Percentage() - config.PercentageStep)
	case inpututil.IsKeyJustPressed(ebiten.KeyB):
		g.toggleBubbles()
	case inpututil.IsKeyJustPressed(ebiten.KeySpace):
		g.togglePause()
	case inpututil.IsKeyJustPressed(ebiten.KeyH):
		g.hue += config.HueStep
		g.setLevelColor(hueLevelColor(g.hue))
	case inpututil.IsKeyJustPressed(ebiten.KeyM):
		g.toggleMute()
	case inpututil.IsKeyJustPressed(ebiten.KeyC):
		g.lastErr = g.pickColorDialog()
	case inpututil.IsKeyJustPressed(ebiten.KeyO):
		g.lastErr = g.openAudioDialog()
	}

	if lvl, ok := g.audio.level(); ok {
		g.level = config.SmoothingFactor*g.level + (1-config.SmoothingFactor)*lvl
		g.meter.SetPercentage(g.level)
	}
	return nil
}

// Draw is the display refresh: pending meter frames run here, then the
// meter surface is centered on the screen.
func (g *Game) Draw(screen *ebiten.Image) {
	g.host.Refresh()

	if s := g.host.Surface(); s != nil && s.Image() != nil {
		w, h := s.Size()
		off := centerOffset(g.outW, g.outH, w, h)
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(off.X, off.Y)
		screen.DrawImage(s.Image(), op)
	}
	ebitenutil.DebugPrintAt(screen, g.status(), 12, 12)
}

// Layout keeps the meter square, sized to the shorter window side.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.outW, g.outH = outsideWidth, outsideHeight
	if side := min(outsideWidth, outsideHeight); side != g.side {
		g.side = side
		g.meter.ResizeCanvas(fluid.Size{Width: side, Height: side})
	}
	return outsideWidth, outsideHeight
}

// Close saves preferences and stops audio.
func (g *Game) Close() {
	g.meter.Stop()
	g.prefs.SetPercentage(g.meter.Percentage())
	g.prefs.SetDrawBubbles(g.meter.Options().DrawBubbles)
	if err := g.prefs.Save(); err != nil {
		g.log.Warn("failed to save preferences", zap.Error(err))
	}
	g.audio.close()
}

func (g *Game) setPercentage(p float64) {
	g.meter.SetPercentage(p)
	g.prefs.SetPercentage(g.meter.Percentage())
}

func (g *Game) setLevelColor(c []float64) {
	g.meter.SetLevelColor(c)
	g.prefs.SetLevelColor(c)
}

func (g *Game) toggleBubbles() {
	draw := !g.meter.Options().DrawBubbles
	g.meter.SetDrawBubbles(draw)
	g.prefs.SetDrawBubbles(draw)
}

// togglePause pauses the audio track when one plays, the meter otherwise.
func (g *Game) togglePause() {
	if g.audio.track != nil {
		g.audio.togglePause()
		return
	}
	if g.meter.State() == fluid.Running {
		g.meter.Stop()
	} else {
		g.meter.Start()
	}
}

func (g *Game) toggleMute() {
	if g.audio.pops == nil {
		return
	}
	muted := !g.audio.muted()
	g.audio.setMuted(muted)
	g.prefs.SetMuted(muted)
}

func (g *Game) pickColorDialog() error {
	_, fg := g.meter.Layers()
	current, _ := colorutil.ToColor(fg.FillStyle)

	c, err := zenity.SelectColor(
		zenity.Title("Level color"),
		zenity.Color(current),
	)
	if err != nil {
		if errors.Is(err, zenity.ErrCanceled) {
			return nil
		}
		return err
	}
	cf, ok := colorful.MakeColor(c)
	if !ok {
		return nil
	}
	r, gg, b := cf.RGB255()
	g.setLevelColor([]float64{float64(r), float64(gg), float64(b)})
	return nil
}

func (g *Game) openAudioDialog() error {
	filename, err := zenity.SelectFile(
		zenity.Title("Open Audio File"),
		zenity.FileFilters{{
			Name:     "Audio",
			Patterns: []string{"*.wav", "*.mp3", "*.flac"},
		}},
	)
	if err != nil {
		if errors.Is(err, zenity.ErrCanceled) {
			return nil
		}
		return err
	}
	g.level = g.meter.CurrentPercentage()
	return g.audio.open(filename)
}

func (g *Game) status() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%3.0f%% -> %3.0f%% %s", g.meter.CurrentPercentage(), g.meter.Percentage(), g.meter.State())
	if g.meter.Options().DrawBubbles {
		b.WriteString(" | bubbles")
	}
	if g.audio.pops != nil && g.audio.muted() {
		b.WriteString(" | muted")
	}
	if t := g.audio.track; t != nil {
		fmt.Fprintf(&b, " | %s %s", t.name, formatPosition(t.position(), t.duration))
	}
	if g.lastErr != nil {
		b.WriteString(" | Error: " + g.lastErr.Error())
	}
	return b.String()
}
