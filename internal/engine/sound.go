package engine

// Sounds receives fire-and-forget audio cues.
// Implementations must return without waiting for playback.
type Sounds interface {
	Flap()
	Score()
	Crash()
}

// NopSounds is a silent Sounds implementation.
type NopSounds struct{}

func (NopSounds) Flap()  {}
func (NopSounds) Score() {}
func (NopSounds) Crash() {}

// cues guards the simulation against a misbehaving sink.
type cues struct {
	sink Sounds
}

func (c cues) flap()  { c.play(c.sink.Flap) }
func (c cues) score() { c.play(c.sink.Score) }
func (c cues) crash() { c.play(c.sink.Crash) }

func (c cues) play(cue func()) {
	defer func() { _ = recover() }()
	cue()
}
