package audio

import (
	"math"
	"testing"
	"time"

	"github.com/gopxl/beep"
)

// drain pulls a streamer to exhaustion and returns every sample.
func drain(s beep.Streamer) [][2]float64 {
	var out [][2]float64
	buf := make([][2]float64, 512)
	for {
		n, ok := s.Stream(buf)
		out = append(out, buf[:n]...)
		if !ok {
			return out
		}
	}
}

func TestOscillatorLength(t *testing.T) {
	rate := beep.SampleRate(44100)
	d := 100 * time.Millisecond

	got := len(drain(newOscillator(440, d, waveSine, rate)))
	if want := rate.N(d); got != want {
		t.Errorf("sample count = %d, want %d", got, want)
	}
}

func TestOscillatorBounded(t *testing.T) {
	rate := beep.SampleRate(44100)
	for _, wave := range []waveType{waveSine, waveSquare} {
		for _, s := range drain(newOscillator(440, 50*time.Millisecond, wave, rate)) {
			if math.Abs(s[0]) > 1.0 || math.Abs(s[1]) > 1.0 {
				t.Fatalf("wave %d produced out-of-range sample %v", wave, s)
			}
		}
	}
}

func TestEnvelopeDecays(t *testing.T) {
	rate := beep.SampleRate(44100)
	d := 100 * time.Millisecond

	// A square wave has constant unit magnitude, so any amplitude change
	// comes from the envelope alone.
	samples := drain(tone(440, d, waveSquare, 0.5, rate))

	first := math.Abs(samples[0][0])
	last := math.Abs(samples[len(samples)-1][0])
	if first <= last {
		t.Errorf("no decay: first = %v, last = %v", first, last)
	}
	if first > 0.5+1e-9 {
		t.Errorf("gain exceeded: first sample = %v", first)
	}
	if last > 0.01 {
		t.Errorf("cue ends audibly: last sample = %v", last)
	}
}

func TestCueStreamers(t *testing.T) {
	rate := beep.SampleRate(44100)
	for cue := Cue(0); cue < numCues; cue++ {
		s := cueStreamer(cue, 1.0, rate)
		if s == nil {
			t.Fatalf("cue %d has no streamer", cue)
		}
		if len(drain(s)) == 0 {
			t.Errorf("cue %d produced no samples", cue)
		}
	}
}

func TestNilManagerIsSilent(t *testing.T) {
	var m *Manager
	// Must not panic; a headless or muted game carries a nil manager.
	m.Play(CuePop)
	m.Close()
}
