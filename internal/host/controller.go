// Package host drives a simulation session: the start, play and game-over
// flow around the engine, input queuing, best-score bookkeeping and the
// frame loop.
package host

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/ballflaps/internal/engine"
)

// ErrInvalidTransition is returned when a command does not apply to the
// current state, such as restarting a game that is still running.
var ErrInvalidTransition = errors.New("invalid state transition")

// State is the controller's position in the session flow.
type State int

const (
	StateIdle State = iota
	StatePlaying
	StateGameOver
)

// String returns a human-readable name for the state.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StatePlaying:
		return "playing"
	case StateGameOver:
		return "game over"
	default:
		return "unknown"
	}
}

// Controller owns an engine and moves it through Idle -> Playing ->
// GameOver -> Playing. Flap may be called from any goroutine; every other
// method belongs to the goroutine that calls Frame.
type Controller struct {
	eng    *engine.Engine
	best   BestScores
	logger *log.Logger
	flaps  FlapQueue

	onScore    func(int)
	onGameOver func(engine.GameOverEvent)

	state         State
	bestScore     int
	width, height float64
	last          engine.TickResult
	sessions      int
}

// ControllerOption configures a Controller.
type ControllerOption func(*Controller)

// WithLogger sets the logger for session events and collaborator failures.
func WithLogger(l *log.Logger) ControllerOption {
	return func(c *Controller) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithScoreCallback is called with the new score every time it changes.
func WithScoreCallback(fn func(score int)) ControllerOption {
	return func(c *Controller) {
		c.onScore = fn
	}
}

// WithGameOverCallback is called once per session when it ends.
func WithGameOverCallback(fn func(engine.GameOverEvent)) ControllerOption {
	return func(c *Controller) {
		c.onGameOver = fn
	}
}

// NewController wraps eng. The best score is read from best once, here; if
// that fails the controller starts from zero.
func NewController(eng *engine.Engine, best BestScores, opts ...ControllerOption) *Controller {
	cfg := eng.Config()
	c := &Controller{
		eng:    eng,
		best:   best,
		logger: log.New(io.Discard),
		width:  cfg.Playfield.Width,
		height: cfg.Playfield.Height,
	}
	for _, opt := range opts {
		opt(c)
	}

	if best != nil {
		score, err := best.Best()
		if err != nil {
			c.logger.Warn("could not read best score", "error", err)
		} else {
			c.bestScore = score
		}
	}
	c.last = engine.TickResult{Snapshot: eng.Snapshot()}
	return c
}

// Start begins the first session on a playfield of the given size.
func (c *Controller) Start(width, height float64) error {
	if c.state != StateIdle {
		return fmt.Errorf("host: cannot start while %s: %w", c.state, ErrInvalidTransition)
	}

	c.eng.SetPaused(false)
	if err := c.eng.Reset(width, height); err != nil {
		c.eng.SetPaused(true)
		return fmt.Errorf("host: cannot start: %w", err)
	}
	c.width, c.height = width, height
	c.begin()
	return nil
}

// Restart begins a new session after a game over.
func (c *Controller) Restart() error {
	if c.state != StateGameOver {
		return fmt.Errorf("host: cannot restart while %s: %w", c.state, ErrInvalidTransition)
	}

	snap := c.eng.Snapshot()
	if snap.Width != c.width || snap.Height != c.height {
		if err := c.eng.Reset(c.width, c.height); err != nil {
			return fmt.Errorf("host: cannot restart: %w", err)
		}
	}
	// Unpausing the frozen engine resets it
	c.eng.SetPaused(false)
	c.begin()
	return nil
}

func (c *Controller) begin() {
	c.flaps.Drain()
	c.state = StatePlaying
	c.sessions++
	c.last = engine.TickResult{Snapshot: c.eng.Snapshot()}
	c.logger.Info("session started", "session", c.sessions, "best", c.bestScore)
}

// Flap queues a flap for the next frame. Safe for concurrent use.
func (c *Controller) Flap() {
	c.flaps.Push()
}

// Frame applies queued flaps and advances the engine by one tick.
// Outside of Playing it returns the last result without events.
func (c *Controller) Frame() engine.TickResult {
	flaps := c.flaps.Drain()
	if c.state != StatePlaying {
		return engine.TickResult{Snapshot: c.last.Snapshot}
	}

	if flaps > 0 {
		c.eng.Flap()
	}

	res := c.eng.Tick()
	c.last = res

	if res.Scored != nil && c.onScore != nil {
		c.onScore(res.Scored.Score)
	}
	if res.GameOver != nil {
		c.finish(*res.GameOver)
		res.Snapshot = c.last.Snapshot
	}
	return res
}

// finish freezes the final frame and records the best score.
func (c *Controller) finish(ev engine.GameOverEvent) {
	c.eng.SetPaused(true)
	c.state = StateGameOver
	c.last.Snapshot = c.eng.Snapshot()

	c.logger.Info("game over",
		"session", c.sessions,
		"score", ev.Score,
		"cause", ev.Cause,
		"frames", ev.Frame,
	)

	if ev.Score > c.bestScore {
		c.bestScore = ev.Score
		c.logger.Info("new best score", "score", ev.Score)
		if c.best != nil {
			if err := c.best.SaveBest(ev.Score); err != nil {
				c.logger.Warn("could not save best score", "score", ev.Score, "error", err)
			}
		}
	}

	if c.onGameOver != nil {
		c.onGameOver(ev)
	}
}

// Resize records a new playfield size. It takes effect on the next start
// or restart; a running session keeps its size.
func (c *Controller) Resize(width, height float64) {
	c.width, c.height = width, height
}

// Status returns the controller's current state.
func (c *Controller) Status() State {
	return c.state
}

// Best returns the best score seen so far, including this process.
func (c *Controller) Best() int {
	return c.bestScore
}

// Snapshot returns the most recent render snapshot.
func (c *Controller) Snapshot() engine.Snapshot {
	return c.last.Snapshot
}
