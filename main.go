package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/quasilyte/gdata/v2"
	_ "github.com/silbinarywolf/preferdiscretegpu"
	"go.uber.org/zap"

	"github.com/iburimskiy/fluid-meter/internal/config"
	"github.com/iburimskiy/fluid-meter/internal/game"
)

func main() {
	var (
		configFile = flag.String("config", "", "Path to a YAML settings file")
		audioFile  = flag.String("audio", "", "Audio file (wav, mp3, flac) whose loudness drives the level")
		logFile    = flag.String("log", "", "Log file path (stderr when empty, \"off\" to disable)")
		debug      = flag.Bool("debug", false, "Debug logging")
		noPrefs    = flag.Bool("no-prefs", false, "Do not load or save preferences")
	)
	flag.Parse()

	if err := run(*configFile, *audioFile, *logFile, *debug, *noPrefs); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(configFile, audioFile, logFile string, debug, noPrefs bool) error {
	s, err := config.Load(configFile)
	if err != nil {
		return err
	}
	log, err := config.NewLogger(debug, logFile)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	var store *gdata.Manager
	if !noPrefs {
		store, err = gdata.Open(gdata.Config{AppName: config.PreferencesApp})
		if err != nil {
			log.Warn("preferences unavailable", zap.Error(err))
			store = nil
		}
	}
	prefs := game.NewPreferencesManager(store, game.DefaultPreferences(s), log.Named("prefs"))

	g, err := game.New(game.Options{
		Settings:    s,
		Preferences: prefs,
		Logger:      log,
		AudioFile:   audioFile,
	})
	if err != nil {
		return err
	}

	ebiten.SetWindowSize(s.Window.Width, s.Window.Height)
	ebiten.SetWindowTitle(s.Window.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowClosingHandled(true)

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}
