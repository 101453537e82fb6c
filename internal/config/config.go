// Package config provides YAML-based game configuration loading and
// validation for Ball Flaps. All values are read once at startup.
package config

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidConfig is returned when a configuration cannot produce a
// playable session (empty random ranges, gaps taller than the playfield).
var ErrInvalidConfig = errors.New("invalid game config")

// GameConfig contains every simulation constant.
type GameConfig struct {
	Playfield PlayfieldConfig `yaml:"playfield"`
	Physics   PhysicsConfig   `yaml:"physics"`
	Ball      BallConfig      `yaml:"ball"`
	Obstacles ObstacleConfig  `yaml:"obstacles"`
	Shooter   ShooterConfig   `yaml:"shooter"`
	Bullets   BulletConfig    `yaml:"bullets"`
}

// PlayfieldConfig defines the logical playfield size in simulation units.
type PlayfieldConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// PhysicsConfig defines the ball's vertical kinematics per tick.
type PhysicsConfig struct {
	Gravity     float64 `yaml:"gravity"`      // Added to velocity every tick
	JumpImpulse float64 `yaml:"jump_impulse"` // Velocity set by a flap (negative = up)
}

// BallConfig defines the ball's size and fixed horizontal position.
type BallConfig struct {
	Radius       float64 `yaml:"radius"`        // Visual radius
	HitboxRadius float64 `yaml:"hitbox_radius"` // Collision radius, not larger than Radius
	XFraction    float64 `yaml:"x_fraction"`    // Horizontal position as a fraction of width
}

// ObstacleConfig defines obstacle geometry and generation.
type ObstacleConfig struct {
	Width         float64 `yaml:"width"`
	GapMin        float64 `yaml:"gap_min"`
	GapMax        float64 `yaml:"gap_max"`
	Spacing       float64 `yaml:"spacing"`
	ScrollSpeed   float64 `yaml:"scroll_speed"`
	InitialMargin float64 `yaml:"initial_margin"` // Gap margin for the first obstacle
	SpawnMargin   float64 `yaml:"spawn_margin"`   // Gap margin for every later obstacle
}

// ShooterConfig defines the patrolling shooter.
type ShooterConfig struct {
	ChallengeScore int     `yaml:"challenge_score"` // Score at which the shooter appears
	Width          float64 `yaml:"width"`
	Height         float64 `yaml:"height"`
	Speed          float64 `yaml:"speed"`
}

// BulletConfig defines projectiles fired by the shooter.
type BulletConfig struct {
	Width    float64 `yaml:"width"`
	Height   float64 `yaml:"height"`
	Speed    float64 `yaml:"speed"`
	FireRate int     `yaml:"fire_rate"` // Frames between shots
}

// Validate checks the configuration and reports every problem at once.
// The returned error wraps ErrInvalidConfig.
func (c GameConfig) Validate() error {
	var problems []string
	check := func(ok bool, format string, args ...any) {
		if !ok {
			problems = append(problems, fmt.Sprintf(format, args...))
		}
	}

	check(c.Playfield.Width > 0, "playfield.width must be positive, got %g", c.Playfield.Width)
	check(c.Playfield.Height > 0, "playfield.height must be positive, got %g", c.Playfield.Height)

	check(c.Physics.Gravity > 0, "physics.gravity must be positive, got %g", c.Physics.Gravity)
	check(c.Physics.JumpImpulse < 0, "physics.jump_impulse must be negative (upward), got %g", c.Physics.JumpImpulse)

	check(c.Ball.Radius > 0, "ball.radius must be positive, got %g", c.Ball.Radius)
	check(c.Ball.HitboxRadius > 0 && c.Ball.HitboxRadius < c.Ball.Radius,
		"ball.hitbox_radius must be in (0, radius), got %g", c.Ball.HitboxRadius)
	check(c.Ball.XFraction > 0 && c.Ball.XFraction < 1,
		"ball.x_fraction must be in (0, 1), got %g", c.Ball.XFraction)

	o := c.Obstacles
	check(o.Width > 0, "obstacles.width must be positive, got %g", o.Width)
	check(o.GapMin > 0, "obstacles.gap_min must be positive, got %g", o.GapMin)
	check(o.GapMin <= o.GapMax, "obstacles.gap_min (%g) must not exceed gap_max (%g)", o.GapMin, o.GapMax)
	check(o.Spacing > 0, "obstacles.spacing must be positive, got %g", o.Spacing)
	check(o.ScrollSpeed > 0, "obstacles.scroll_speed must be positive, got %g", o.ScrollSpeed)
	check(o.InitialMargin >= 0, "obstacles.initial_margin must not be negative, got %g", o.InitialMargin)
	check(o.SpawnMargin >= 0, "obstacles.spawn_margin must not be negative, got %g", o.SpawnMargin)
	if msg := playfieldProblem(o, c.Playfield.Width, c.Playfield.Height); msg != "" {
		problems = append(problems, msg)
	}

	s := c.Shooter
	check(s.ChallengeScore >= 0, "shooter.challenge_score must not be negative, got %d", s.ChallengeScore)
	check(s.Width > 0 && s.Height > 0, "shooter size must be positive, got %gx%g", s.Width, s.Height)
	check(s.Speed > 0, "shooter.speed must be positive, got %g", s.Speed)
	check(s.Height < c.Playfield.Height, "shooter.height (%g) must be below playfield height (%g)", s.Height, c.Playfield.Height)

	b := c.Bullets
	check(b.Width > 0 && b.Height > 0, "bullet size must be positive, got %gx%g", b.Width, b.Height)
	check(b.Speed > 0, "bullets.speed must be positive, got %g", b.Speed)
	check(b.FireRate > 0, "bullets.fire_rate must be positive, got %d", b.FireRate)

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(problems, "; "))
	}
	return nil
}

// CheckPlayfield reports whether the largest gap plus either margin fits in
// a playfield of the given size, and whether it is wide enough for a new
// obstacle to spawn before the previous one leaves.
func CheckPlayfield(o ObstacleConfig, width, height float64) error {
	if msg := playfieldProblem(o, width, height); msg != "" {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, msg)
	}
	return nil
}

func playfieldProblem(o ObstacleConfig, width, height float64) string {
	if width <= 0 || height <= 0 {
		return fmt.Sprintf("playfield %gx%g must be positive", width, height)
	}
	// The newest obstacle must cross the spawn line before it scrolls off
	if width+o.Width < o.Spacing+o.ScrollSpeed {
		return fmt.Sprintf("playfield width (%g) plus obstacle width (%g) must reach spacing (%g) plus scroll speed (%g)",
			width, o.Width, o.Spacing, o.ScrollSpeed)
	}
	margin := max(o.InitialMargin, o.SpawnMargin)
	if o.GapMax+2*margin >= height {
		return fmt.Sprintf("gap_max (%g) plus margins (2x%g) must be below playfield height (%g)",
			o.GapMax, margin, height)
	}
	return ""
}
