package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
)

// Wave is an oscillator shape.
type Wave int

const (
	WaveSine Wave = iota
	WaveTriangle
	WaveSquare
	WaveSaw
)

// Envelope shapes a tone's amplitude over its lifetime.
type Envelope int

const (
	EnvelopeLinear      Envelope = iota // Straight fade to zero
	EnvelopeExponential                 // Fast initial drop
)

// Tone is a finite streamer that sweeps from From to To Hz over its
// duration and fades out.
type Tone struct {
	wave     Wave
	env      Envelope
	from, to float64
	gain     float64
	total    int
	pos      int
	phase    float64
	rate     beep.SampleRate
}

// NewTone returns a tone of the given shape. Set from == to for a fixed pitch.
func NewTone(wave Wave, env Envelope, from, to float64, d time.Duration, gain float64, rate beep.SampleRate) *Tone {
	return &Tone{
		wave:  wave,
		env:   env,
		from:  from,
		to:    to,
		gain:  gain,
		total: max(rate.N(d), 1),
		rate:  rate,
	}
}

// Len returns the tone length in samples.
func (t *Tone) Len() int {
	return t.total
}

func (t *Tone) Stream(samples [][2]float64) (n int, ok bool) {
	if t.pos >= t.total {
		return 0, false
	}

	for i := range samples {
		if t.pos >= t.total {
			break
		}
		progress := float64(t.pos) / float64(t.total)
		freq := t.from + (t.to-t.from)*progress

		// Integrate the phase so the sweep has no discontinuities
		t.phase += freq / float64(t.rate)
		t.phase -= math.Floor(t.phase)

		sample := t.gain * t.envelope(progress) * oscillate(t.wave, t.phase)
		samples[i][0] = sample
		samples[i][1] = sample
		t.pos++
		n++
	}
	return n, true
}

func (t *Tone) Err() error {
	return nil
}

func (t *Tone) envelope(progress float64) float64 {
	if t.env == EnvelopeExponential {
		return math.Exp(-5 * progress)
	}
	return 1 - progress
}

// oscillate evaluates one period of the wave at phase in [0, 1).
func oscillate(w Wave, phase float64) float64 {
	switch w {
	case WaveTriangle:
		return 1 - 4*math.Abs(phase-0.5)
	case WaveSquare:
		if phase < 0.5 {
			return 1
		}
		return -1
	case WaveSaw:
		return 2*phase - 1
	default:
		return math.Sin(2 * math.Pi * phase)
	}
}

// Note frequencies used by the cues.
const (
	noteC5 = 523.25
	noteE5 = 659.25
	noteG5 = 783.99
)

// flapSound is a short chirp.
func flapSound(rate beep.SampleRate) beep.Streamer {
	return NewTone(WaveTriangle, EnvelopeLinear, 800, 800, 50*time.Millisecond, 0.3, rate)
}

// scoreSound is a rising C major arpeggio.
func scoreSound(rate beep.SampleRate) beep.Streamer {
	note := func(freq float64) beep.Streamer {
		return NewTone(WaveSquare, EnvelopeLinear, freq, freq, 50*time.Millisecond, 0.15, rate)
	}
	return beep.Seq(note(noteC5), note(noteE5), note(noteG5))
}

// crashSound is a falling sawtooth sweep.
func crashSound(rate beep.SampleRate) beep.Streamer {
	return NewTone(WaveSaw, EnvelopeExponential, 400, 100, 500*time.Millisecond, 0.3, rate)
}
