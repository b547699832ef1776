package audio

import (
	"math"
	"testing"
	"time"

	"github.com/gopxl/beep"

	"github.com/vovakirdan/dogdash/internal/core"
)

// TestSoundManagerGracefulDegradation verifies cues don't panic when the
// speaker was never opened.
func TestSoundManagerGracefulDegradation(t *testing.T) {
	sm := NewSoundManager()

	defer func() {
		if r := recover(); r != nil {
			t.Errorf("Sound operations panicked without initialization: %v", r)
		}
	}()

	for _, e := range []core.Event{core.EventJump, core.EventDeath, core.EventPadBoost, core.EventWin, core.EventLand} {
		sm.HandleEvent(e)
	}
	sm.Cleanup()
}

func TestCuesCoverAudioEvents(t *testing.T) {
	for _, e := range []core.Event{core.EventJump, core.EventDeath, core.EventPadBoost, core.EventWin} {
		if _, ok := Cues[e]; !ok {
			t.Errorf("No cue for %q", e)
		}
	}
}

func TestToneLength(t *testing.T) {
	sr := beep.SampleRate(8000)
	tone := NewTone(sr, Cues[core.EventJump])

	if tone.Len() != sr.N(150*time.Millisecond) {
		t.Fatalf("Len = %d, want %d", tone.Len(), sr.N(150*time.Millisecond))
	}

	buf := make([][2]float64, 256)
	total := 0
	for {
		n, ok := tone.Stream(buf)
		total += n
		if !ok {
			break
		}
	}
	if total != tone.Len() {
		t.Errorf("Streamed %d samples, want %d", total, tone.Len())
	}
	if err := tone.Err(); err != nil {
		t.Errorf("Err() = %v", err)
	}
}

func TestToneSweep(t *testing.T) {
	sr := beep.SampleRate(8000)
	tone := NewTone(sr, Cues[core.EventDeath])

	if got := tone.FrequencyAt(0); got != 300 {
		t.Errorf("Start frequency = %v, want 300", got)
	}
	if got := tone.FrequencyAt(tone.Len()); math.Abs(got-50) > 1e-9 {
		t.Errorf("End frequency = %v, want 50", got)
	}

	mid := tone.FrequencyAt(tone.Len() / 2)
	if mid >= 300 || mid <= 50 {
		t.Errorf("Mid frequency %v outside the sweep", mid)
	}
	if g0, g1 := tone.GainAt(0), tone.GainAt(tone.Len()/2); g1 >= g0 {
		t.Errorf("Gain did not decay: %v then %v", g0, g1)
	}
}

func TestToneAmplitudeBounded(t *testing.T) {
	sr := beep.SampleRate(8000)
	for e, spec := range Cues {
		tone := NewTone(sr, spec)
		buf := make([][2]float64, tone.Len())
		n, _ := tone.Stream(buf)
		for i := 0; i < n; i++ {
			if math.Abs(buf[i][0]) > spec.Gain+1e-9 || buf[i][0] != buf[i][1] {
				t.Fatalf("%s: sample %d = %v out of range", e, i, buf[i])
			}
		}
	}
}
