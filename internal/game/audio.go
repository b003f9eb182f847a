package game

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync/atomic"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/flac"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/speaker"
	"github.com/faiface/beep/wav"
	"go.uber.org/zap"

	"github.com/iburimskiy/fluid-meter/internal/config"
)

const popSilence = 1e-4

var ErrUnsupportedAudio = errors.New("unsupported audio file")

// popSynth is an endless beep.Streamer mixing short decaying sine pops.
// trigger may be called from any goroutine; everything else runs on the
// speaker goroutine.
type popSynth struct {
	sampleRate beep.SampleRate
	volume     float64
	decay      float64
	pending    atomic.Int32
	voices     []popVoice
}

type popVoice struct {
	phase, step, amp float64
}

func newPopSynth(sr beep.SampleRate, volume float64) *popSynth {
	return &popSynth{
		sampleRate: sr,
		volume:     volume,
		decay:      math.Exp(-1 / float64(max(sr.N(config.PopDecay), 1))),
	}
}

func (p *popSynth) trigger() {
	if p.pending.Load() < config.PopVoices {
		p.pending.Add(1)
	}
}

func (p *popSynth) Stream(samples [][2]float64) (int, bool) {
	for n := p.pending.Swap(0); n > 0 && len(p.voices) < config.PopVoices; n-- {
		freq := config.PopFrequency * (1 + 0.25*float64(len(p.voices)))
		p.voices = append(p.voices, popVoice{
			step: 2 * math.Pi * freq / float64(p.sampleRate),
			amp:  p.volume,
		})
	}
	for i := range samples {
		var v float64
		for j := range p.voices {
			vo := &p.voices[j]
			v += vo.amp * math.Sin(vo.phase)
			vo.phase += vo.step
			vo.amp *= p.decay
		}
		samples[i] = [2]float64{v, v}
	}
	p.voices = slices.DeleteFunc(p.voices, func(v popVoice) bool { return v.amp < popSilence })
	return len(samples), true
}

func (p *popSynth) Err() error { return nil }

// track is an audio file playing through a levelTap.
type track struct {
	name     string
	file     *os.File
	streamer beep.StreamSeekCloser
	format   beep.Format
	tap      *levelTap
	ctrl     *beep.Ctrl
	duration time.Duration
	done     atomic.Bool
}

func (t *track) position() time.Duration {
	return t.format.SampleRate.D(t.tap.Played())
}

func (t *track) close() {
	_ = t.streamer.Close()
	_ = t.file.Close()
}

// audioOut owns the speaker. It runs at one sample rate and resamples
// files recorded at another.
type audioOut struct {
	log        *zap.Logger
	sampleRate beep.SampleRate
	volume     float64
	ready      bool

	pops    *popSynth
	popCtrl *beep.Ctrl
	track   *track
}

func newAudioOut(log *zap.Logger, sound config.Sound) *audioOut {
	return &audioOut{
		log:        log,
		sampleRate: beep.SampleRate(config.PopSampleRate),
		volume:     sound.Volume,
	}
}

func (a *audioOut) init() error {
	if a.ready {
		return nil
	}
	if err := speaker.Init(a.sampleRate, a.sampleRate.N(config.PopBuffer)); err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}
	a.ready = true
	return nil
}

// enablePops starts the pop synth. Pops stay muted until setMuted(false)
// when muted is set.
func (a *audioOut) enablePops(muted bool) error {
	if a.pops != nil {
		a.setMuted(muted)
		return nil
	}
	if err := a.init(); err != nil {
		return err
	}
	a.pops = newPopSynth(a.sampleRate, a.volume)
	a.popCtrl = &beep.Ctrl{Streamer: a.pops, Paused: muted}
	speaker.Play(a.popCtrl)
	return nil
}

func (a *audioOut) pop() {
	if a.pops != nil && !a.muted() {
		a.pops.trigger()
	}
}

func (a *audioOut) muted() bool {
	if a.popCtrl == nil {
		return true
	}
	speaker.Lock()
	defer speaker.Unlock()
	return a.popCtrl.Paused
}

func (a *audioOut) setMuted(muted bool) {
	if a.popCtrl == nil {
		return
	}
	speaker.Lock()
	a.popCtrl.Paused = muted
	speaker.Unlock()
}

// open decodes path and plays it, replacing the current track.
func (a *audioOut) open(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}

	var (
		streamer beep.StreamSeekCloser
		format   beep.Format
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".wav":
		streamer, format, err = wav.Decode(f)
	case ".mp3":
		streamer, format, err = mp3.Decode(f)
	case ".flac":
		streamer, format, err = flac.Decode(f)
	default:
		_ = f.Close()
		return fmt.Errorf("%w: %s", ErrUnsupportedAudio, ext)
	}
	if err != nil {
		_ = f.Close()
		return fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}
	if err := a.init(); err != nil {
		_ = streamer.Close()
		_ = f.Close()
		return err
	}
	a.stopTrack()

	t := &track{
		name:     filepath.Base(path),
		file:     f,
		streamer: streamer,
		format:   format,
		tap:      newLevelTap(streamer, config.LevelRingSize),
		duration: format.SampleRate.D(streamer.Len()),
	}
	var out beep.Streamer = t.tap
	if format.SampleRate != a.sampleRate {
		out = beep.Resample(4, format.SampleRate, a.sampleRate, out)
	}
	t.ctrl = &beep.Ctrl{Streamer: out}
	a.track = t

	speaker.Play(beep.Seq(t.ctrl, beep.Callback(func() {
		t.done.Store(true)
	})))
	a.log.Info("playing audio",
		zap.String("file", t.name),
		zap.Duration("duration", t.duration),
		zap.Int("sampleRate", int(format.SampleRate)))
	return nil
}

// togglePause pauses or resumes the current track and reports whether it
// is paused now.
func (a *audioOut) togglePause() bool {
	if a.track == nil {
		return false
	}
	speaker.Lock()
	a.track.ctrl.Paused = !a.track.ctrl.Paused
	paused := a.track.ctrl.Paused
	speaker.Unlock()
	return paused
}

// level returns the loudness of the current track, false when nothing is
// playing.
func (a *audioOut) level() (float64, bool) {
	if a.track == nil {
		return 0, false
	}
	if a.track.done.Load() {
		a.log.Info("audio finished", zap.String("file", a.track.name))
		a.track.close()
		a.track = nil
		return 0, false
	}
	return a.track.tap.level(config.LevelWindow), true
}

func (a *audioOut) stopTrack() {
	if a.track == nil {
		return
	}
	speaker.Lock()
	a.track.ctrl.Streamer = nil
	speaker.Unlock()
	a.track.close()
	a.track = nil
}

func (a *audioOut) close() {
	if a.ready {
		a.stopTrack()
	}
}
