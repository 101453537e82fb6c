package config

import (
	_ "embed"
)

//go:embed defaults/ballflaps.yaml
var defaultYAML []byte

// DefaultConfig returns the built-in game constants.
func DefaultConfig() GameConfig {
	return GameConfig{
		Playfield: PlayfieldConfig{
			Width:  480,
			Height: 640,
		},
		Physics: PhysicsConfig{
			Gravity:     0.5,
			JumpImpulse: -8,
		},
		Ball: BallConfig{
			Radius:       15,
			HitboxRadius: 12,
			XFraction:    0.25,
		},
		Obstacles: ObstacleConfig{
			Width:         80,
			GapMin:        200,
			GapMax:        240,
			Spacing:       300,
			ScrollSpeed:   2.5,
			InitialMargin: 50,
			SpawnMargin:   75,
		},
		Shooter: ShooterConfig{
			ChallengeScore: 999,
			Width:          20,
			Height:         50,
			Speed:          1.5,
		},
		Bullets: BulletConfig{
			Width:    20,
			Height:   5,
			Speed:    4,
			FireRate: 120, // 2 seconds at 60fps
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultYAML
}
