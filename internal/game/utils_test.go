package game

import (
	"testing"
	"time"
)

func TestHsvToRgb(t *testing.T) {
	tests := []struct {
		h, s, v float64
		r, g, b uint8
	}{
		{0, 1, 1, 255, 0, 0},
		{120, 1, 1, 0, 255, 0},
		{240, 1, 1, 0, 0, 255},
		{360, 1, 1, 255, 0, 0},
		{-120, 1, 1, 0, 0, 255},
		{60, 0, 1, 255, 255, 255},
		{200, 1, 0, 0, 0, 0},
	}
	for _, tt := range tests {
		r, g, b := hsvToRgb(tt.h, tt.s, tt.v)
		if r != tt.r || g != tt.g || b != tt.b {
			t.Errorf("hsvToRgb(%v, %v, %v) = %d,%d,%d want %d,%d,%d", tt.h, tt.s, tt.v, r, g, b, tt.r, tt.g, tt.b)
		}
	}
}

func TestHueLevelColor(t *testing.T) {
	c := hueLevelColor(0)
	if len(c) != 3 || c[0] <= c[1] || c[0] <= c[2] {
		t.Errorf("hue 0 = %v", c)
	}
}

func TestFormatPosition(t *testing.T) {
	if got := formatPosition(75*time.Second, 10*time.Minute); got != "01:15/10:00" {
		t.Errorf("got %q", got)
	}
	if got := formatDuration(-time.Second); got != "00:00" {
		t.Errorf("negative = %q", got)
	}
}

func TestCenterOffset(t *testing.T) {
	tests := []struct {
		outW, outH, w, h int
		x, y             float64
	}{
		{640, 480, 480, 480, 80, 0},
		{300, 500, 300, 300, 0, 100},
		{100, 100, 100, 100, 0, 0},
		{101, 100, 100, 100, 0.5, 0},
	}
	for _, tt := range tests {
		off := centerOffset(tt.outW, tt.outH, tt.w, tt.h)
		if off.X != tt.x || off.Y != tt.y {
			t.Errorf("centerOffset(%d, %d, %d, %d) = (%v, %v), want (%v, %v)",
				tt.outW, tt.outH, tt.w, tt.h, off.X, off.Y, tt.x, tt.y)
		}
	}
}
