package engine

import "slices"

// newObstacle creates an obstacle at x with a random gap.
// The gap plus margin on both sides fits inside the playfield.
func (e *Engine) newObstacle(x, margin float64) Obstacle {
	o := e.cfg.Obstacles
	gapHeight := o.GapMin + e.rng.Float64()*(o.GapMax-o.GapMin)
	gapY := e.rng.Float64()*(e.height-gapHeight-2*margin) + margin

	return Obstacle{
		X:         x,
		Width:     o.Width,
		GapY:      gapY,
		GapHeight: gapHeight,
	}
}

// scrollObstacles moves every obstacle left and drops the oldest once it is
// fully off screen.
func (e *Engine) scrollObstacles() {
	speed := e.cfg.Obstacles.ScrollSpeed
	for i := range e.obstacles {
		e.obstacles[i].X -= speed
	}

	if len(e.obstacles) > 0 && e.obstacles[0].Right() < 0 {
		e.obstacles = slices.Delete(e.obstacles, 0, 1)
	}
}

// spawnObstacle appends a new obstacle one spacing behind the newest once
// the newest has scrolled far enough left.
func (e *Engine) spawnObstacle() {
	if len(e.obstacles) == 0 {
		panic("engine: obstacle list is empty; generation must keep one pending")
	}

	spacing := e.cfg.Obstacles.Spacing
	last := e.obstacles[len(e.obstacles)-1]
	if last.X < e.width-spacing {
		e.obstacles = append(e.obstacles, e.newObstacle(last.X+spacing, e.cfg.Obstacles.SpawnMargin))
	}
}
