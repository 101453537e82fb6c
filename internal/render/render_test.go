package render

import (
	"strings"
	"testing"

	"github.com/vovakirdan/ballflaps/internal/config"
	"github.com/vovakirdan/ballflaps/internal/core"
	"github.com/vovakirdan/ballflaps/internal/engine"
)

func playingSnapshot(t *testing.T) (*engine.Engine, engine.Snapshot) {
	t.Helper()
	e, err := engine.New(config.DefaultConfig(), engine.WithSeed(1))
	if err != nil {
		t.Fatalf("engine.New() error: %v", err)
	}
	e.SetPaused(false)
	if err := e.Reset(480, 640); err != nil {
		t.Fatalf("Reset() error: %v", err)
	}
	return e, e.Snapshot()
}

func TestDrawGroundAndBall(t *testing.T) {
	_, s := playingSnapshot(t)
	screen := core.NewScreen(48, 24)

	r := New(core.BallPink)
	r.Draw(screen, s)

	for x := 0; x < 48; x++ {
		if screen.Get(x, 23) != GroundChar {
			t.Fatalf("ground missing at x=%d, got %q", x, screen.Get(x, 23))
		}
	}

	// 120 * 48/480 = 12; 1 + 320 * 22/640 = 12
	cell := screen.GetCell(12, 12)
	if cell.Rune != BallChar || cell.Color != core.BallPink.Cell() {
		t.Errorf("ball cell = %+v, expected pink ball", cell)
	}

	if !strings.Contains(screen.Row(0), "Score: 0") {
		t.Errorf("HUD row = %q, expected score", screen.Row(0))
	}
}

func TestDrawBallColor(t *testing.T) {
	_, s := playingSnapshot(t)
	screen := core.NewScreen(48, 24)

	r := New(core.BallRed)
	r.SetBallColor(core.BallBlue)
	r.Draw(screen, s)

	if c := screen.GetCell(12, 12).Color; c != core.BallBlue.Cell() {
		t.Errorf("ball color = %v, expected blue", c)
	}
}

func TestDrawColumn(t *testing.T) {
	s := engine.Snapshot{
		Width:     480,
		Height:    640,
		Ball:      engine.Ball{X: 120, Y: 320, Radius: 15},
		Shooter:   engine.NoShooter{},
		Obstacles: []engine.Obstacle{{X: 240, Width: 80, GapY: 160, GapHeight: 320}},
		Status:    engine.StatusPlaying,
	}
	screen := core.NewScreen(48, 18) // 16 playfield rows, 40 units per row

	New(core.BallYellow).Draw(screen, s)

	// Columns 24..31, open rows 5..12
	tests := []struct {
		x, y     int
		expected rune
	}{
		{24, 1, ColumnChar},
		{31, 3, ColumnChar},
		{28, 4, ColumnCap},
		{28, 5, ' '},
		{28, 12, ' '},
		{28, 13, ColumnCap},
		{28, 16, ColumnChar},
		{32, 1, ' '},
		{23, 1, ' '},
	}
	for _, tc := range tests {
		if got := screen.Get(tc.x, tc.y); got != tc.expected {
			t.Errorf("cell (%d, %d) = %q, expected %q", tc.x, tc.y, got, tc.expected)
		}
	}
}

func TestDrawShooterAndBullets(t *testing.T) {
	s := engine.Snapshot{
		Width:   480,
		Height:  640,
		Ball:    engine.Ball{X: 120, Y: 320, Radius: 15},
		Shooter: engine.Shooter{X: 0, Y: 320, Width: 20, Height: 50},
		Bullets: []engine.Bullet{{X: 300, Y: 100, Width: 20, Height: 5}},
		Status:  engine.StatusPlaying,
	}
	screen := core.NewScreen(48, 18)

	New(core.BallYellow).Draw(screen, s)

	// 1 + floor(320/40) = 9
	if c := screen.GetCell(0, 9); c.Rune != ShooterChar || c.Color != core.ColorRed {
		t.Errorf("shooter cell = %+v, expected red shooter", c)
	}
	// 1 + floor(102.5/40) = 3
	if c := screen.GetCell(30, 3); c.Rune != BulletChar {
		t.Errorf("bullet cell = %+v, expected bullet", c)
	}
}

func TestDrawGameOver(t *testing.T) {
	_, s := playingSnapshot(t)
	s.Status = engine.StatusOver
	s.Score = 7

	screen := core.NewScreen(60, 24)
	r := New(core.BallYellow)
	r.SetBest(12)
	r.Draw(screen, s)

	text := screen.String()
	if !strings.Contains(text, "GAME OVER") {
		t.Error("game over box missing")
	}
	if !strings.Contains(text, "Score: 7  Best: 12") {
		t.Errorf("game over box should show score and best:\n%s", text)
	}
}

func TestLayoutRebuiltOnlyOnStructuralChange(t *testing.T) {
	e, s := playingSnapshot(t)
	screen := core.NewScreen(48, 24)
	r := New(core.BallYellow)

	r.Draw(screen, s)
	if r.Rebuilds() != 1 {
		t.Fatalf("first draw should build the layout, rebuilds = %d", r.Rebuilds())
	}

	for i := 0; i < 10; i++ {
		e.Flap()
		r.Draw(screen, e.Tick().Snapshot)
	}
	if r.Rebuilds() != 1 {
		t.Errorf("scrolling alone should not rebuild, rebuilds = %d", r.Rebuilds())
	}

	screen.Resize(60, 30)
	r.Draw(screen, e.Snapshot())
	if r.Rebuilds() != 2 {
		t.Errorf("resize should rebuild, rebuilds = %d", r.Rebuilds())
	}
}

func TestDetect(t *testing.T) {
	base := engine.Snapshot{
		Obstacles: []engine.Obstacle{{X: 100, GapY: 50, GapHeight: 200}},
		Shooter:   engine.NoShooter{},
	}

	moved := base
	moved.Obstacles = []engine.Obstacle{{X: 97.5, GapY: 50, GapHeight: 200}}

	spawned := base
	spawned.Obstacles = append([]engine.Obstacle{}, base.Obstacles[0], engine.Obstacle{X: 400, GapY: 90, GapHeight: 210})

	swapped := base
	swapped.Obstacles = []engine.Obstacle{{X: 400, GapY: 90, GapHeight: 210}}

	fired := base
	fired.Bullets = []engine.Bullet{{X: 20}}

	armed := base
	armed.Shooter = engine.Shooter{Height: 50}

	tests := []struct {
		name       string
		prev, next engine.Snapshot
		expected   Changes
	}{
		{"scroll only", base, moved, Changes{}},
		{"obstacle spawned", base, spawned, Changes{ObstaclesChanged: true}},
		{"retire and spawn on one tick", base, swapped, Changes{ObstaclesChanged: true}},
		{"bullet fired", base, fired, Changes{BulletsChanged: true}},
		{"bullet gone", fired, base, Changes{BulletsChanged: true}},
		{"shooter appeared", base, armed, Changes{ShooterAppeared: true}},
		{"shooter stays", armed, armed, Changes{}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Detect(tc.prev, tc.next)
			if got != tc.expected {
				t.Errorf("Detect() = %+v, expected %+v", got, tc.expected)
			}
			if got.Structural() != (tc.expected != Changes{}) {
				t.Errorf("Structural() = %v", got.Structural())
			}
		})
	}
}

func TestDrawMessageCentered(t *testing.T) {
	screen := core.NewScreen(30, 9)
	DrawMessage(screen, core.ColorYellow, "HI", "there")

	// width 5, box 5+4+2 = 11 wide, 4 tall
	if screen.Get(9, 2) != '┌' || screen.Get(19, 5) != '┘' {
		t.Errorf("box corners misplaced:\n%s", screen.String())
	}
	if c := screen.GetCell(13, 3); c.Rune != 'H' || c.Color != core.ColorYellow {
		t.Errorf("title cell = %+v, expected yellow H", c)
	}
}
