// Command fluidterm shows a fluid level background in the terminal.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/iburimskiy/fluid-meter/internal/config"
	"github.com/iburimskiy/fluid-meter/internal/termui"
)

func main() {
	var (
		configFile = flag.String("config", "", "Path to a YAML settings file")
		percentage = flag.Float64("percentage", -1, "Initial fill level 0-100 (overrides the settings file)")
		bubbles    = flag.Bool("bubbles", true, "Draw bubbles")
		logFile    = flag.String("log", "off", "Log file path, or \"off\"")
		debug      = flag.Bool("debug", false, "Debug logging")
	)
	flag.Parse()

	if err := run(*configFile, *percentage, *bubbles, *logFile, *debug); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(configFile string, percentage float64, bubbles bool, logFile string, debug bool) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New("stdout is not a terminal")
	}

	s, err := config.Load(configFile)
	if err != nil {
		return err
	}
	if percentage >= 0 {
		s.Percentage = min(percentage, 100)
	}
	s.Meter.DrawBubbles = bubbles

	log, err := config.NewLogger(debug, logFile)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()
	log.Info("starting fluidterm", zap.String("config", configFile), zap.Float64("percentage", s.Percentage))

	p := tea.NewProgram(termui.New(termui.Options{Settings: s, Logger: log}), tea.WithAltScreen())
	_, err = p.Run()
	return err
}
