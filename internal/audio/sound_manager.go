// Package audio plays short synthesized cues for gameplay events.
package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/dogdash/internal/core"
)

const (
	sampleRate = beep.SampleRate(48000)
)

// Cues maps gameplay events to the tone they trigger.
var Cues = map[core.Event]ToneSpec{
	core.EventJump: {
		Wave: WaveSine, FromHz: 400, ToHz: 800, Sweep: 100 * time.Millisecond,
		Gain: 0.12, Duration: 150 * time.Millisecond,
	},
	core.EventDeath: {
		Wave: WaveSawtooth, FromHz: 300, ToHz: 50, Sweep: 300 * time.Millisecond,
		Gain: 0.15, Duration: 300 * time.Millisecond,
	},
	core.EventPadBoost: {
		Wave: WaveSine, FromHz: 300, ToHz: 900, Sweep: 150 * time.Millisecond,
		Gain: 0.15, Duration: 200 * time.Millisecond,
	},
	core.EventWin: {
		Wave: WaveSquare, FromHz: 523, ToHz: 1046, Sweep: 250 * time.Millisecond,
		Gain: 0.08, Duration: 400 * time.Millisecond,
	},
}

// SoundManager plays event cues through the system speaker.
// Every method is safe to call before Initialize or after a failed one;
// the game runs silently in that case.
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
}

// NewSoundManager creates a new sound manager
func NewSoundManager() *SoundManager {
	return &SoundManager{
		mixer: &beep.Mixer{},
	}
}

// Initialize opens the speaker.
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	if err := speaker.Init(sampleRate, sampleRate.N(time.Millisecond*100)); err != nil {
		return err
	}

	speaker.Play(sm.mixer)
	sm.initialized = true
	return nil
}

// Cleanup silences everything still playing.
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	speaker.Lock()
	sm.mixer.Clear()
	speaker.Unlock()
	sm.initialized = false
}

// HandleEvent implements core.EventSink. Events without a cue are ignored.
func (sm *SoundManager) HandleEvent(e core.Event) {
	spec, ok := Cues[e]
	if !ok {
		return
	}
	sm.Play(spec)
}

// Play mixes a one-shot tone into the output.
func (sm *SoundManager) Play(spec ToneSpec) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	speaker.Lock()
	sm.mixer.Add(NewTone(sampleRate, spec))
	speaker.Unlock()
}
