// Package audio plays the game's sound cues on the default output device.
// Every cue is fire-and-forget: it is queued on a mixer and the call
// returns at once. Without an audio device all cues are silent.
package audio

import (
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

const (
	sampleRate = beep.SampleRate(44100)

	// Cues beyond this many overlapping streamers are dropped
	maxVoices = 8
)

// SoundManager implements engine.Sounds on a beep mixer.
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
	muted       bool
}

// NewSoundManager creates a sound manager. Call Initialize to open the device.
func NewSoundManager() *SoundManager {
	return &SoundManager{
		mixer: &beep.Mixer{},
	}
}

// Initialize opens the audio device. It is a no-op when already initialized.
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return fmt.Errorf("audio: cannot open speaker: %w", err)
	}

	speaker.Play(sm.mixer)
	sm.initialized = true
	return nil
}

// Cleanup silences every queued cue.
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	speaker.Lock()
	sm.mixer.Clear()
	speaker.Unlock()

	// beep cannot close the speaker, so only the mixer is released
	sm.initialized = false
}

// SetMuted drops every cue while muted is true.
func (sm *SoundManager) SetMuted(muted bool) {
	sm.mu.Lock()
	sm.muted = muted
	sm.mu.Unlock()
}

// Active reports whether cues reach the device.
func (sm *SoundManager) Active() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.initialized && !sm.muted
}

// Flap plays the flap chirp.
func (sm *SoundManager) Flap() {
	sm.play(flapSound)
}

// Score plays the score arpeggio.
func (sm *SoundManager) Score() {
	sm.play(scoreSound)
}

// Crash plays the falling crash sweep.
func (sm *SoundManager) Crash() {
	sm.play(crashSound)
}

func (sm *SoundManager) play(build func(beep.SampleRate) beep.Streamer) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized || sm.muted {
		return
	}

	streamer := build(sampleRate)

	speaker.Lock()
	defer speaker.Unlock()
	if sm.mixer.Len() >= maxVoices {
		return
	}
	sm.mixer.Add(streamer)
}
