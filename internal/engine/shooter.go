package engine

import "github.com/vovakirdan/ballflaps/internal/core"

// updateShooter spawns, moves and fires the shooter once the score has
// reached the challenge threshold.
func (e *Engine) updateShooter() {
	cfg := e.cfg.Shooter
	if e.score < cfg.ChallengeScore {
		return
	}

	s, ok := ActiveShooter(e.shooter)
	if !ok {
		s = Shooter{
			X:         0,
			Y:         e.height / 2,
			Width:     cfg.Width,
			Height:    cfg.Height,
			Direction: Down,
		}
	}

	s = s.patrol(cfg.Speed, e.height-s.Height)
	e.shooter = s

	if e.frame%uint64(e.cfg.Bullets.FireRate) == 0 {
		e.bullets = append(e.bullets, s.fire(e.cfg.Bullets.Width, e.cfg.Bullets.Height))
	}
}

// patrol moves the shooter one step and reverses it at the top (0) or
// bottom bound. The position is clamped, so it never passes a bound.
func (s Shooter) patrol(speed, bottom float64) Shooter {
	if s.Direction == Down {
		s.Y += speed
	} else {
		s.Y -= speed
	}

	s.Y = core.ClampF(s.Y, 0, bottom)
	switch s.Y {
	case bottom:
		s.Direction = Up
	case 0:
		s.Direction = Down
	}
	return s
}

// fire returns a bullet leaving the shooter's right edge, vertically centered.
func (s Shooter) fire(width, height float64) Bullet {
	return Bullet{
		X:      s.X + s.Width,
		Y:      s.Y + s.Height/2 - height/2,
		Width:  width,
		Height: height,
	}
}

// updateBullets moves bullets right and drops those past the right edge.
func (e *Engine) updateBullets() {
	speed := e.cfg.Bullets.Speed
	kept := e.bullets[:0]
	for _, b := range e.bullets {
		b.X += speed
		if b.X < e.width {
			kept = append(kept, b)
		}
	}
	e.bullets = kept
}
