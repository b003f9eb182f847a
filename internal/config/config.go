package config

import "time"

const (
	WindowWidth  = 480
	WindowHeight = 480
	WindowTitle  = "Fluid Meter - Up/Down: level, B: bubbles, C: color, O: audio, Space: pause, Esc/Q: quit"

	// Keyboard control
	PercentageStep = 5
	HueStep        = 30

	// Audio level mode
	LevelRingSize   = 8192
	LevelWindow     = 2048
	SmoothingFactor = 0.6

	// Bubble pop sound
	PopSampleRate = 44100
	PopBuffer     = time.Second / 20
	PopFrequency  = 880
	PopDecay      = 40 * time.Millisecond
	PopVoices     = 8

	// Terminal host
	TerminalRefresh = time.Second / 60
	TerminalMinSize = 8

	PreferencesApp = "fluid_meter"
)
