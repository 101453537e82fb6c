// Package engine implements the Ball Flaps simulation: gravity, scrolling
// obstacles, the late-game shooter and its bullets, collisions and scoring.
// It is driven one Tick per display frame and never blocks.
// An Engine is not safe for concurrent use.
package engine

import (
	"fmt"
	"slices"

	"github.com/vovakirdan/ballflaps/internal/config"
)

// Engine owns all gameplay state for one player.
type Engine struct {
	cfg    config.GameConfig
	rng    Source
	sounds cues

	width, height float64

	ball      Ball
	obstacles []Obstacle // Oldest (leftmost) first
	shooter   ShooterSlot
	bullets   []Bullet

	frame   uint64
	score   int
	paused  bool
	over    bool
	started bool
}

// Option configures an Engine.
type Option func(*Engine)

// WithSource sets the random source used for gap placement.
func WithSource(src Source) Option {
	return func(e *Engine) {
		e.rng = src
	}
}

// WithSeed seeds the random source used for gap placement.
func WithSeed(seed int64) Option {
	return func(e *Engine) {
		e.rng = NewSource(seed)
	}
}

// WithSounds sets the sink for flap, score and crash cues.
func WithSounds(s Sounds) Option {
	return func(e *Engine) {
		if s != nil {
			e.sounds = cues{sink: s}
		}
	}
}

// New validates cfg and returns an idle, paused engine.
// A session begins with SetPaused(false) followed by Reset.
func New(cfg config.GameConfig, opts ...Option) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("engine: %w", err)
	}

	e := &Engine{
		cfg:     cfg,
		sounds:  cues{sink: NopSounds{}},
		shooter: NoShooter{},
		paused:  true,
		width:   cfg.Playfield.Width,
		height:  cfg.Playfield.Height,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.rng == nil {
		e.rng = NewSource(0)
	}
	return e, nil
}

// Config returns the constants the engine was built with.
func (e *Engine) Config() config.GameConfig {
	return e.cfg
}

// Reset discards all state and starts a fresh session on a playfield of the
// given size. The pause flag is left as it is.
func (e *Engine) Reset(width, height float64) error {
	if err := config.CheckPlayfield(e.cfg.Obstacles, width, height); err != nil {
		return fmt.Errorf("engine: %w", err)
	}
	if e.cfg.Shooter.Height >= height {
		return fmt.Errorf("engine: %w: shooter height %g does not fit playfield height %g",
			config.ErrInvalidConfig, e.cfg.Shooter.Height, height)
	}

	e.width = width
	e.height = height
	e.reset()
	return nil
}

// reset rebuilds the session using the current playfield size.
func (e *Engine) reset() {
	e.ball = Ball{
		X:      e.width * e.cfg.Ball.XFraction,
		Y:      e.height / 2,
		Radius: e.cfg.Ball.Radius,
	}
	e.obstacles = []Obstacle{e.newObstacle(e.width, e.cfg.Obstacles.InitialMargin)}
	e.shooter = NoShooter{}
	e.bullets = nil
	e.frame = 0
	e.score = 0
	e.over = false
	e.started = true
}

// Flap sets the ball's velocity to the jump impulse.
// It does nothing unless a session is running.
func (e *Engine) Flap() {
	if !e.running() {
		return
	}
	e.ball.VelocityY = e.cfg.Physics.JumpImpulse
	e.sounds.flap()
}

// SetPaused freezes or releases the simulation. Releasing a paused engine
// that already has a session restarts it from scratch; there is no resume
// in place.
func (e *Engine) SetPaused(paused bool) {
	if e.paused && !paused && e.started {
		e.reset()
	}
	e.paused = paused
}

// Paused reports whether Tick is currently frozen.
func (e *Engine) Paused() bool {
	return e.paused
}

// Status reports the engine's lifecycle state.
func (e *Engine) Status() Status {
	switch {
	case !e.started:
		return StatusIdle
	case e.over:
		return StatusOver
	default:
		return StatusPlaying
	}
}

// Score returns the current committed score.
func (e *Engine) Score() int {
	return e.score
}

func (e *Engine) running() bool {
	return e.started && !e.paused && !e.over
}

// Tick advances the simulation by one frame. While paused, idle or over it
// returns the current snapshot and leaves every field untouched.
func (e *Engine) Tick() TickResult {
	if !e.running() {
		return TickResult{Snapshot: e.Snapshot()}
	}

	e.frame++

	// Explicit Euler, no sub-stepping
	e.ball.VelocityY += e.cfg.Physics.Gravity
	e.ball.Y += e.ball.VelocityY

	e.scrollObstacles()
	e.spawnObstacle()

	e.updateShooter()
	e.updateBullets()

	var result TickResult

	if cause := e.collide(); cause != CauseNone {
		e.over = true
		e.sounds.crash()
		result.GameOver = &GameOverEvent{Score: e.score, Cause: cause, Frame: e.frame}
		result.Snapshot = e.Snapshot()
		return result
	}

	if e.scoreNext() {
		result.Scored = &ScoreEvent{Score: e.score}
		e.sounds.score()
	}

	result.Snapshot = e.Snapshot()
	return result
}

// Snapshot returns a copy of the current render state.
func (e *Engine) Snapshot() Snapshot {
	return Snapshot{
		Width:        e.width,
		Height:       e.height,
		Ball:         e.ball,
		HitboxRadius: e.cfg.Ball.HitboxRadius,
		Obstacles:    slices.Clone(e.obstacles),
		Shooter:      e.shooter,
		Bullets:      slices.Clone(e.bullets),
		Score:        e.score,
		Frame:        e.frame,
		Status:       e.Status(),
		Paused:       e.paused,
	}
}
