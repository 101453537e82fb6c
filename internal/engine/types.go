package engine

import "github.com/vovakirdan/ballflaps/internal/core"

// Ball is the player. X never changes during a session; the world scrolls instead.
type Ball struct {
	X, Y      float64 // Center position
	Radius    float64 // Visual radius
	VelocityY float64 // Positive = falling
}

// Obstacle is a full-height column with a vertical gap the ball must pass through.
type Obstacle struct {
	X         float64 // Left edge
	Width     float64
	GapY      float64 // Top of the gap
	GapHeight float64
	Scored    bool // Whether passing this obstacle has been counted
}

// Right returns the x-coordinate of the obstacle's right edge.
func (o Obstacle) Right() float64 {
	return o.X + o.Width
}

// GapBottom returns the y-coordinate of the bottom of the gap.
func (o Obstacle) GapBottom() float64 {
	return o.GapY + o.GapHeight
}

// Bullet is a projectile travelling right from the shooter.
type Bullet struct {
	X, Y          float64 // Top-left corner
	Width, Height float64
}

// Box returns the bullet's collision box.
func (b Bullet) Box() core.Box {
	return core.NewBox(b.X, b.Y, b.Width, b.Height)
}

// Direction is the shooter's vertical patrol direction.
type Direction int

const (
	Down Direction = iota
	Up
)

// String returns a human-readable name for the direction.
func (d Direction) String() string {
	if d == Up {
		return "up"
	}
	return "down"
}

// ShooterSlot holds either NoShooter or a Shooter.
// Callers handle both cases with a type switch or ActiveShooter.
type ShooterSlot interface {
	isShooterSlot()
}

// NoShooter means the challenge threshold has not been reached yet.
type NoShooter struct{}

// Shooter patrols the left edge and fires bullets once the challenge starts.
type Shooter struct {
	X, Y          float64 // Top-left corner
	Width, Height float64
	Direction     Direction
}

func (NoShooter) isShooterSlot() {}
func (Shooter) isShooterSlot()   {}

// ActiveShooter returns the shooter held by slot, if any.
func ActiveShooter(slot ShooterSlot) (Shooter, bool) {
	s, ok := slot.(Shooter)
	return s, ok
}

// Status is the engine's lifecycle state.
type Status int

const (
	StatusIdle    Status = iota // No session started yet
	StatusPlaying               // Session running (possibly paused)
	StatusOver                  // Collision happened; waiting for reset
)

// String returns a human-readable name for the status.
func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusPlaying:
		return "playing"
	case StatusOver:
		return "over"
	default:
		return "unknown"
	}
}

// Cause identifies what ended a session.
type Cause int

const (
	CauseNone Cause = iota
	CauseFloor
	CauseCeiling
	CauseObstacle
	CauseBullet
)

// String returns a human-readable name for the cause.
func (c Cause) String() string {
	switch c {
	case CauseNone:
		return "none"
	case CauseFloor:
		return "floor"
	case CauseCeiling:
		return "ceiling"
	case CauseObstacle:
		return "obstacle"
	case CauseBullet:
		return "bullet"
	default:
		return "unknown"
	}
}

// ScoreEvent is emitted on the tick an obstacle is passed.
type ScoreEvent struct {
	Score int // Score after the increment
}

// GameOverEvent is emitted exactly once per session, on the colliding tick.
type GameOverEvent struct {
	Score int // Final committed score
	Cause Cause
	Frame uint64
}

// Snapshot is the render snapshot: every entity the presentation layer draws.
// Slices are copies and safe to keep across ticks.
type Snapshot struct {
	Width, Height float64 // Playfield size
	Ball          Ball
	HitboxRadius  float64
	Obstacles     []Obstacle
	Shooter       ShooterSlot
	Bullets       []Bullet
	Score         int
	Frame         uint64
	Status        Status
	Paused        bool
}

// TickResult is returned by Engine.Tick.
type TickResult struct {
	Snapshot Snapshot
	Scored   *ScoreEvent    // Non-nil when the score changed this tick
	GameOver *GameOverEvent // Non-nil on the colliding tick only
}
