package host

import "github.com/vovakirdan/ballflaps/internal/engine"

// Autopilot flaps on behalf of a player. It keeps the ball hovering just
// below the middle of the next gap. It does not dodge bullets.
type Autopilot struct {
	// Offset below the gap center where the ball should be caught.
	// A flap lifts the ball about 60 units with the default physics.
	Offset float64
}

// NewAutopilot returns an autopilot tuned for the default physics.
func NewAutopilot() Autopilot {
	return Autopilot{Offset: 30}
}

// ShouldFlap reports whether to flap before the next tick.
func (a Autopilot) ShouldFlap(s engine.Snapshot) bool {
	if s.Status != engine.StatusPlaying || s.Paused {
		return false
	}
	return s.Ball.VelocityY > 0 && s.Ball.Y > a.target(s)
}

// target is the catch height for the first obstacle the ball has not
// cleared yet, or the playfield middle when there is none.
func (a Autopilot) target(s engine.Snapshot) float64 {
	for _, o := range s.Obstacles {
		if o.Right() > s.Ball.X-s.HitboxRadius {
			return o.GapY + o.GapHeight/2 + a.Offset
		}
	}
	return s.Height/2 + a.Offset
}
