package render

import "github.com/vovakirdan/ballflaps/internal/engine"

// Changes lists the structural differences between two snapshots.
type Changes struct {
	ObstaclesChanged bool // An obstacle was added or retired
	BulletsChanged   bool // A bullet was fired or left the playfield
	ShooterAppeared  bool
}

// Structural reports whether anything beyond positions changed.
func (c Changes) Structural() bool {
	return c.ObstaclesChanged || c.BulletsChanged || c.ShooterAppeared
}

// Detect compares two consecutive snapshots.
func Detect(prev, next engine.Snapshot) Changes {
	_, had := engine.ActiveShooter(prev.Shooter)
	_, has := engine.ActiveShooter(next.Shooter)

	return Changes{
		ObstaclesChanged: obstaclesChanged(prev.Obstacles, next.Obstacles),
		BulletsChanged:   len(prev.Bullets) != len(next.Bullets),
		ShooterAppeared:  !had && has,
	}
}

// obstaclesChanged also catches a retire and a spawn on the same tick by
// comparing the oldest obstacle's gap.
func obstaclesChanged(prev, next []engine.Obstacle) bool {
	if len(prev) != len(next) {
		return true
	}
	if len(prev) == 0 {
		return false
	}
	return prev[0].GapY != next[0].GapY || prev[0].GapHeight != next[0].GapHeight
}
