package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
)

// waveType selects the oscillator shape.
type waveType int

const (
	waveSine waveType = iota
	waveSquare
)

// oscillator generates a fixed-length raw wave.
type oscillator struct {
	freq     float64
	phase    float64
	duration int
	position int
	wave     waveType
	rate     beep.SampleRate
}

// newOscillator creates a finite oscillator streamer.
func newOscillator(freq float64, duration time.Duration, wave waveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     freq,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, false
		}

		var val float64
		switch o.wave {
		case waveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case waveSquare:
			if o.phase < 0.5 {
				val = 1.0
			} else {
				val = -1.0
			}
		}

		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(o.rate)
		o.phase = o.phase - math.Floor(o.phase) // Keep in [0, 1)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies a linear decay and overall gain to a wrapped streamer,
// so cues end without a click.
type envelope struct {
	streamer beep.Streamer
	gain     float64
	total    int
	position int
}

func newEnvelope(s beep.Streamer, gain float64, duration time.Duration, rate beep.SampleRate) beep.Streamer {
	return &envelope{streamer: s, gain: gain, total: rate.N(duration)}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		decay := 1.0 - float64(e.position)/float64(e.total)
		if decay < 0 {
			decay = 0
		}
		samples[i][0] *= e.gain * decay
		samples[i][1] *= e.gain * decay
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// tone builds one enveloped note.
func tone(freq float64, d time.Duration, wave waveType, gain float64, rate beep.SampleRate) beep.Streamer {
	return newEnvelope(newOscillator(freq, d, wave, rate), gain, d, rate)
}

// cueStreamer synthesizes the streamer for a cue from scratch, so every
// trigger starts at the beginning.
func cueStreamer(cue Cue, gain float64, rate beep.SampleRate) beep.Streamer {
	switch cue {
	case CueShoot:
		return tone(440, 80*time.Millisecond, waveSquare, gain*0.5, rate)
	case CueBounce:
		return tone(330, 50*time.Millisecond, waveSine, gain*0.6, rate)
	case CuePop:
		return beep.Seq(
			tone(660, 70*time.Millisecond, waveSine, gain, rate),
			tone(880, 90*time.Millisecond, waveSine, gain, rate),
		)
	case CueDrop:
		return beep.Seq(
			tone(392, 60*time.Millisecond, waveSine, gain*0.8, rate),
			tone(262, 100*time.Millisecond, waveSine, gain*0.8, rate),
		)
	case CueLost:
		return beep.Seq(
			tone(220, 180*time.Millisecond, waveSquare, gain*0.7, rate),
			tone(174, 300*time.Millisecond, waveSquare, gain*0.7, rate),
		)
	case CueWon:
		return beep.Seq(
			tone(523, 120*time.Millisecond, waveSine, gain, rate),
			tone(659, 120*time.Millisecond, waveSine, gain, rate),
			tone(784, 200*time.Millisecond, waveSine, gain, rate),
		)
	}
	return nil
}
