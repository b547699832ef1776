package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
)

// Waveform selects the oscillator shape of a Tone.
type Waveform uint8

const (
	WaveSine Waveform = iota
	WaveSawtooth
	WaveSquare
)

// ToneSpec describes a one-shot sweep: frequency and gain both ramp
// exponentially from their start to their end values.
type ToneSpec struct {
	Wave      Waveform
	FromHz    float64
	ToHz      float64
	Sweep     time.Duration // Time to reach ToHz, then held
	Gain      float64
	Duration  time.Duration // Gain decays to silence over this span
	floorGain float64
}

// Tone streams a single ToneSpec and then ends.
type Tone struct {
	spec  ToneSpec
	sr    beep.SampleRate
	pos   int
	total int
	phase float64
}

// NewTone creates a streamer for spec at sample rate sr.
func NewTone(sr beep.SampleRate, spec ToneSpec) *Tone {
	if spec.floorGain == 0 {
		spec.floorGain = 0.001
	}
	return &Tone{
		spec:  spec,
		sr:    sr,
		total: sr.N(spec.Duration),
	}
}

// Len returns the tone length in samples.
func (t *Tone) Len() int {
	return t.total
}

// expRamp interpolates from a to b exponentially, p in [0, 1].
func expRamp(a, b, p float64) float64 {
	return a * math.Pow(b/a, p)
}

// FrequencyAt returns the oscillator frequency at sample i.
func (t *Tone) FrequencyAt(i int) float64 {
	sweep := t.sr.N(t.spec.Sweep)
	if sweep <= 0 || i >= sweep {
		return t.spec.ToHz
	}
	return expRamp(t.spec.FromHz, t.spec.ToHz, float64(i)/float64(sweep))
}

// GainAt returns the amplitude at sample i.
func (t *Tone) GainAt(i int) float64 {
	if t.total <= 0 {
		return 0
	}
	return expRamp(t.spec.Gain, t.spec.floorGain, math.Min(1, float64(i)/float64(t.total)))
}

// Stream implements beep.Streamer.
func (t *Tone) Stream(samples [][2]float64) (n int, ok bool) {
	if t.pos >= t.total {
		return 0, false
	}

	for i := range samples {
		if t.pos >= t.total {
			return i, true
		}

		var v float64
		switch t.spec.Wave {
		case WaveSawtooth:
			v = 2*t.phase - 1
		case WaveSquare:
			v = 1
			if t.phase >= 0.5 {
				v = -1
			}
		default:
			v = math.Sin(2 * math.Pi * t.phase)
		}
		v *= t.GainAt(t.pos)

		samples[i][0] = v
		samples[i][1] = v

		t.phase += t.FrequencyAt(t.pos) / float64(t.sr)
		t.phase -= math.Floor(t.phase)
		t.pos++
	}

	return len(samples), true
}

// Err implements beep.Streamer.
func (t *Tone) Err() error {
	return nil
}
