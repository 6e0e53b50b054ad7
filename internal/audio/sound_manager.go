// Package audio plays short synthesized cues for game events.
// Audio is optional: every method is a no-op until Initialize succeeds.
package audio

import (
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/tui-flappy/internal/core"
)

const sampleRate = beep.SampleRate(44100)

// Cue identifies a sound effect.
type Cue int

const (
	CueFlap Cue = iota
	CueCrash
	CueHighScore
)

// SoundManager mixes cue streamers onto the speaker.
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	ctrl        *beep.Ctrl
	initialized bool
}

// NewSoundManager creates a sound manager. Call Initialize before use.
func NewSoundManager() *SoundManager {
	return &SoundManager{
		mixer: &beep.Mixer{},
	}
}

// Initialize opens the speaker. It fails on hosts without an audio device.
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return err
	}

	sm.ctrl = &beep.Ctrl{Streamer: sm.mixer}
	speaker.Play(sm.ctrl)
	sm.initialized = true
	return nil
}

// Cleanup silences pending cues.
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	speaker.Lock()
	sm.ctrl.Paused = true
	sm.mixer.Clear()
	speaker.Unlock()

	// beep has no speaker Close; the paused ctrl keeps the device quiet
	sm.initialized = false
}

// Play queues a cue.
func (sm *SoundManager) Play(c Cue) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	speaker.Lock()
	sm.mixer.Add(cueStreamer(c))
	speaker.Unlock()
}

// PlayEvent plays the cue bound to a game event, if any.
func (sm *SoundManager) PlayEvent(e core.Event) {
	if c, ok := EventCue(e); ok {
		sm.Play(c)
	}
}

// EventCue maps game events to cues.
func EventCue(e core.Event) (Cue, bool) {
	switch e {
	case core.EventFlap:
		return CueFlap, true
	case core.EventCrash:
		return CueCrash, true
	case core.EventNewHighScore:
		return CueHighScore, true
	default:
		return 0, false
	}
}

func cueStreamer(c Cue) beep.Streamer {
	switch c {
	case CueFlap:
		return beep.Take(sampleRate.N(80*time.Millisecond), NewSweepGenerator(sampleRate, 520, 880, 30))
	case CueCrash:
		return beep.Take(sampleRate.N(350*time.Millisecond), NewSweepGenerator(sampleRate, 220, 60, 8))
	case CueHighScore:
		return beep.Seq(
			beep.Take(sampleRate.N(90*time.Millisecond), NewSweepGenerator(sampleRate, 660, 660, 12)),
			beep.Take(sampleRate.N(90*time.Millisecond), NewSweepGenerator(sampleRate, 880, 880, 12)),
			beep.Take(sampleRate.N(180*time.Millisecond), NewSweepGenerator(sampleRate, 1320, 1320, 8)),
		)
	default:
		return beep.Silence(0)
	}
}

// SweepGenerator is a sine tone gliding from one frequency to another
// over one second, shaped by an exponential decay.
type SweepGenerator struct {
	sr       beep.SampleRate
	from, to float64
	decay    float64
	pos      int
	phase    float64
}

// NewSweepGenerator creates a sweep generator. decay is the envelope rate per second.
func NewSweepGenerator(sr beep.SampleRate, from, to, decay float64) *SweepGenerator {
	return &SweepGenerator{sr: sr, from: from, to: to, decay: decay}
}

func (g *SweepGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)

		freq := g.from + (g.to-g.from)*math.Min(t, 1)
		g.phase += 2 * math.Pi * freq / float64(g.sr)

		sample := 0.25 * math.Exp(-t*g.decay) * math.Sin(g.phase)

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *SweepGenerator) Err() error {
	return nil
}
