package engine

import "github.com/vovakirdan/ballflaps/internal/core"

// collide reports the first collision in priority order: floor/ceiling,
// obstacles, bullets. All checks use the hitbox radius, not the visual one.
func (e *Engine) collide() Cause {
	r := e.cfg.Ball.HitboxRadius
	b := e.ball

	switch {
	case b.Y > e.height-r:
		return CauseFloor
	case b.Y < r:
		return CauseCeiling
	}

	for _, o := range e.obstacles {
		if hitsObstacle(b, r, o) {
			return CauseObstacle
		}
	}

	hitbox := core.BoxAround(b.X, b.Y, r)
	for _, bullet := range e.bullets {
		if hitbox.Overlaps(bullet.Box()) {
			return CauseBullet
		}
	}

	return CauseNone
}

// hitsObstacle reports whether a ball with hitbox radius r is inside the
// obstacle's column and not fully inside its gap.
func hitsObstacle(b Ball, r float64, o Obstacle) bool {
	if b.X+r <= o.X || b.X-r >= o.Right() {
		return false
	}
	return b.Y-r < o.GapY || b.Y+r > o.GapBottom()
}

// scoreNext counts the first unscored obstacle whose right edge is behind
// the ball. At most one obstacle is scored per tick.
func (e *Engine) scoreNext() bool {
	for i := range e.obstacles {
		o := &e.obstacles[i]
		if !o.Scored && o.Right() < e.ball.X {
			o.Scored = true
			e.score++
			return true
		}
	}
	return false
}
