// Package audio plays short synthesized cues through the system speaker.
package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

// Cue identifies one game sound.
type Cue uint8

const (
	CueShoot Cue = iota
	CueBounce
	CuePop
	CueDrop
	CueLost
	CueWon

	numCues
)

// Manager owns the speaker and mixer. A nil Manager is valid and silent,
// so headless and muted runs need no special casing at call sites.
type Manager struct {
	mu     sync.Mutex
	mixer  *beep.Mixer
	ctrls  [numCues]*beep.Ctrl
	rate   beep.SampleRate
	volume float64
}

// NewManager initializes the speaker and starts the mixer.
func NewManager(sampleRate int, volume float64) (*Manager, error) {
	rate := beep.SampleRate(sampleRate)
	if err := speaker.Init(rate, rate.N(time.Millisecond*50)); err != nil {
		return nil, err
	}

	m := &Manager{
		mixer:  &beep.Mixer{},
		rate:   rate,
		volume: volume,
	}
	speaker.Play(m.mixer)
	return m, nil
}

// Play triggers a cue. A cue already playing restarts from the beginning:
// the old streamer is silenced and a fresh one takes its slot.
func (m *Manager) Play(cue Cue) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if old := m.ctrls[cue]; old != nil {
		old.Paused = true
	}

	ctrl := &beep.Ctrl{Streamer: cueStreamer(cue, m.volume, m.rate)}
	m.ctrls[cue] = ctrl
	m.mixer.Add(ctrl)
}

// Close silences all cues and clears the mixer.
func (m *Manager) Close() {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.ctrls {
		if m.ctrls[i] != nil {
			m.ctrls[i].Paused = true
			m.ctrls[i] = nil
		}
	}
	m.mixer.Clear()
}
