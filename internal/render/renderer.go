// Package render draws engine snapshots into a core.Screen.
// Playfield coordinates are scaled to whatever cell grid the screen has.
package render

import (
	"fmt"
	"math"

	"github.com/vovakirdan/ballflaps/internal/core"
	"github.com/vovakirdan/ballflaps/internal/engine"
)

// Visual elements
const (
	BallChar     = '●'
	ColumnChar   = '█'
	ColumnCap    = '▓'
	ShooterChar  = '▐'
	BulletChar   = '━'
	GroundChar   = '▀'
	hudRows      = 1 // Score line
	groundRows   = 1
	messagePadX  = 2
	messageBoxH  = 2 // Border rows
	minFieldRows = 4
)

// column is the cached cell layout of one obstacle.
// Only the gap rows are cached; x is recomputed as the column scrolls.
type column struct {
	gapTop, gapBottom int // First and last open row
}

// Renderer draws snapshots. It keeps a cached obstacle layout that is
// rebuilt only when obstacles are added or retired or the screen changes.
type Renderer struct {
	ball core.BallColor
	best int

	prev     engine.Snapshot
	columns  []column
	cellW    int
	cellH    int
	rebuilds int
}

// New returns a renderer drawing the ball in the given color.
func New(ball core.BallColor) *Renderer {
	return &Renderer{ball: ball}
}

// SetBallColor changes the ball color.
func (r *Renderer) SetBallColor(c core.BallColor) {
	r.ball = c
}

// SetBest sets the best score shown in the HUD.
func (r *Renderer) SetBest(best int) {
	r.best = best
}

// Rebuilds returns how many times the obstacle layout was rebuilt.
func (r *Renderer) Rebuilds() int {
	return r.rebuilds
}

// viewport maps playfield units to screen cells.
type viewport struct {
	sx, sy float64
	top    int // First playfield row
	rows   int
}

func (v viewport) x(px float64) int { return int(math.Floor(px * v.sx)) }
func (v viewport) y(py float64) int { return v.top + int(math.Floor(py*v.sy)) }

func newViewport(dst *core.Screen, s engine.Snapshot) viewport {
	rows := max(dst.Height()-hudRows-groundRows, minFieldRows)
	return viewport{
		sx:   float64(dst.Width()) / s.Width,
		sy:   float64(rows) / s.Height,
		top:  hudRows,
		rows: rows,
	}
}

// Draw renders s into dst, replacing its contents.
func (r *Renderer) Draw(dst *core.Screen, s engine.Snapshot) {
	dst.Clear()
	if s.Width <= 0 || s.Height <= 0 {
		return
	}
	v := newViewport(dst, s)

	if Detect(r.prev, s).ObstaclesChanged || len(r.columns) != len(s.Obstacles) ||
		r.cellW != dst.Width() || r.cellH != dst.Height() {
		r.layout(v, s.Obstacles)
		r.cellW, r.cellH = dst.Width(), dst.Height()
	}
	r.prev = s

	for i, o := range s.Obstacles {
		r.drawColumn(dst, v, o, r.columns[i])
	}

	switch sh := s.Shooter.(type) {
	case engine.Shooter:
		x0, x1 := v.x(sh.X), v.x(sh.X+sh.Width)
		y0, y1 := v.y(sh.Y), v.y(sh.Y+sh.Height)
		dst.DrawRect(core.NewRect(x0, y0, max(x1-x0, 1), max(y1-y0, 1)), ShooterChar, core.ColorRed)
	case engine.NoShooter:
		// Not yet in the challenge phase
	}

	for _, b := range s.Bullets {
		x0, x1 := v.x(b.X), v.x(b.X+b.Width)
		dst.DrawHLine(x0, v.y(b.Y+b.Height/2), max(x1-x0, 1), BulletChar, core.ColorBrightRed)
	}

	r.drawBall(dst, v, s.Ball)

	dst.DrawHLine(0, dst.Height()-1, dst.Width(), GroundChar, core.ColorGray)
	r.drawHUD(dst, s)

	if s.Status == engine.StatusOver {
		best := max(r.best, s.Score)
		DrawMessage(dst, core.ColorBrightRed,
			"GAME OVER",
			fmt.Sprintf("Score: %d  Best: %d", s.Score, best),
			"R to restart  Q to quit",
		)
	}
}

func (r *Renderer) layout(v viewport, obstacles []engine.Obstacle) {
	r.columns = r.columns[:0]
	bottom := v.top + v.rows
	for _, o := range obstacles {
		r.columns = append(r.columns, column{
			gapTop:    core.Clamp(v.y(o.GapY), v.top, bottom),
			gapBottom: core.Clamp(v.y(o.GapBottom())-1, v.top-1, bottom-1),
		})
	}
	r.rebuilds++
}

func (r *Renderer) drawColumn(dst *core.Screen, v viewport, o engine.Obstacle, c column) {
	x0 := v.x(o.X)
	w := max(v.x(o.Right())-x0, 1)
	bottom := v.top + v.rows

	for y := v.top; y < c.gapTop; y++ {
		dst.DrawHLine(x0, y, w, ColumnChar, core.ColorGreen)
	}
	for y := c.gapBottom + 1; y < bottom; y++ {
		dst.DrawHLine(x0, y, w, ColumnChar, core.ColorGreen)
	}

	// Caps on the gap edges
	if c.gapTop > v.top {
		dst.DrawHLine(x0, c.gapTop-1, w, ColumnCap, core.ColorBrightGreen)
	}
	if c.gapBottom+1 < bottom {
		dst.DrawHLine(x0, c.gapBottom+1, w, ColumnCap, core.ColorBrightGreen)
	}
}

// drawBall fills every cell whose center lies inside the scaled ball.
// The center cell is always drawn so a tiny screen still shows the ball.
func (r *Renderer) drawBall(dst *core.Screen, v viewport, b engine.Ball) {
	color := r.ball.Cell()
	cx, cy := b.X*v.sx, b.Y*v.sy
	rx, ry := max(b.Radius*v.sx, 0.5), max(b.Radius*v.sy, 0.5)

	for y := int(math.Floor(cy - ry)); y <= int(math.Ceil(cy+ry)); y++ {
		for x := int(math.Floor(cx - rx)); x <= int(math.Ceil(cx+rx)); x++ {
			dx := (float64(x) + 0.5 - cx) / rx
			dy := (float64(y) + 0.5 - cy) / ry
			if dx*dx+dy*dy <= 1 {
				dst.SetColored(x, v.top+y, BallChar, color)
			}
		}
	}
	dst.SetColored(v.x(b.X), v.y(b.Y), BallChar, color)
}

func (r *Renderer) drawHUD(dst *core.Screen, s engine.Snapshot) {
	dst.DrawHLine(0, 0, dst.Width(), ' ', core.ColorDefault)
	dst.DrawTextColored(1, 0, fmt.Sprintf("Score: %d", s.Score), core.ColorBrightWhite)

	right := fmt.Sprintf("Best: %d", max(r.best, s.Score))
	dst.DrawTextColored(dst.Width()-len(right)-1, 0, right, core.ColorYellow)
}

// DrawMessage draws a bordered box with one centered line per entry.
// The first line is drawn in the given color, the rest in white.
func DrawMessage(dst *core.Screen, c core.Color, lines ...string) {
	width := 0
	for _, l := range lines {
		width = max(width, len([]rune(l)))
	}

	boxW := width + 2*messagePadX + 2
	boxH := len(lines) + messageBoxH
	box := core.NewRect((dst.Width()-boxW)/2, (dst.Height()-boxH)/2, boxW, boxH)

	dst.DrawRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box, core.ColorWhite)

	for i, l := range lines {
		lc := core.ColorWhite
		if i == 0 {
			lc = c
		}
		x := box.X + (boxW-len([]rune(l)))/2
		dst.DrawTextColored(x, box.Y+1+i, l, lc)
	}
}
