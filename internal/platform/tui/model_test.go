package tui

import (
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/ballflaps/internal/config"
	"github.com/vovakirdan/ballflaps/internal/core"
	"github.com/vovakirdan/ballflaps/internal/host"
	"github.com/vovakirdan/ballflaps/internal/storage"
)

func newTestModel(t *testing.T, store *storage.Store) Model {
	t.Helper()
	m, err := NewModel(Options{
		Game:    config.DefaultConfig(),
		Runtime: core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 7},
		Store:   store,
		Player:  "tester",
	})
	if err != nil {
		t.Fatalf("NewModel() error: %v", err)
	}
	return m
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T, expected Model", next)
	}
	return nm, cmd
}

func TestModelStartsIdle(t *testing.T) {
	m := newTestModel(t, nil)
	if m.phase != phaseStart {
		t.Errorf("phase = %v, expected start screen", m.phase)
	}
	if m.Controller().Status() != host.StateIdle {
		t.Errorf("controller = %v, expected idle", m.Controller().Status())
	}
	if m.Init() != nil {
		t.Error("Init should not schedule ticks before the game starts")
	}
}

func TestModelEnterStartsGame(t *testing.T) {
	m := newTestModel(t, nil)

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.phase != phasePlaying {
		t.Fatalf("phase = %v, expected playing", m.phase)
	}
	if m.Controller().Status() != host.StatePlaying {
		t.Errorf("controller = %v, expected playing", m.Controller().Status())
	}
	if cmd == nil {
		t.Error("starting should schedule the first tick")
	}
}

func TestModelIgnoresStaleTicks(t *testing.T) {
	m := newTestModel(t, nil)
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	m, _ = update(t, m, TickMsg{Gen: m.gen})
	frame := m.Controller().Snapshot().Frame
	if frame != 1 {
		t.Fatalf("frame = %d after one tick, expected 1", frame)
	}

	m, cmd := update(t, m, TickMsg{Gen: m.gen - 1})
	if got := m.Controller().Snapshot().Frame; got != frame {
		t.Errorf("stale tick advanced the frame to %d", got)
	}
	if cmd != nil {
		t.Error("stale tick should not reschedule")
	}
}

func TestModelColorPicker(t *testing.T) {
	m := newTestModel(t, nil)
	if m.ball != core.DefaultBallColor {
		t.Fatalf("ball = %v, expected default", m.ball)
	}

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRight})
	if want := core.NextBallColor(core.DefaultBallColor, 1); m.ball != want {
		t.Errorf("after right, ball = %v, expected %v", m.ball, want)
	}

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	if want := core.NextBallColor(core.DefaultBallColor, -1); m.ball != want {
		t.Errorf("after two lefts, ball = %v, expected %v", m.ball, want)
	}
}

func TestModelGameOverRecordsScore(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	defer store.Close()

	m := newTestModel(t, store)
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	// Without flaps the ball drops to the floor well within this budget
	for i := 0; i < 1000 && m.phase == phasePlaying; i++ {
		m, _ = update(t, m, TickMsg{Gen: m.gen})
	}
	if m.phase != phaseOver {
		t.Fatalf("phase = %v, expected game over", m.phase)
	}
	if m.Controller().Status() != host.StateGameOver {
		t.Errorf("controller = %v, expected game over", m.Controller().Status())
	}

	scores, err := store.TopScores(storage.GameID, 10)
	if err != nil {
		t.Fatalf("TopScores() error: %v", err)
	}
	if len(scores) != 1 {
		t.Fatalf("expected 1 recorded session, got %d", len(scores))
	}
	if scores[0].Player != "tester" || scores[0].Cause != "floor" {
		t.Errorf("recorded %+v, expected a floor crash by tester", scores[0])
	}

	// A tick from the finished loop is ignored
	frame := m.Controller().Snapshot().Frame
	m, _ = update(t, m, TickMsg{Gen: m.gen - 1})
	if m.Controller().Snapshot().Frame != frame {
		t.Error("ticks after game over should not advance the engine")
	}

	// R starts a fresh session
	m, cmd := update(t, m, runeKey('r'))
	if m.phase != phasePlaying || cmd == nil {
		t.Errorf("restart: phase = %v, tick scheduled = %v", m.phase, cmd != nil)
	}
	if m.Controller().Snapshot().Frame != 0 {
		t.Errorf("restart should reset the frame counter")
	}
}

func TestModelScoreboardRoundTrip(t *testing.T) {
	m := newTestModel(t, nil)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.phase != phaseScores {
		t.Fatalf("phase = %v, expected scoreboard", m.phase)
	}
	if m.View() == "" {
		t.Error("scoreboard view should not be empty")
	}

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.phase != phaseStart {
		t.Errorf("phase = %v, expected back on the start screen", m.phase)
	}
}

func TestModelQuit(t *testing.T) {
	m := newTestModel(t, nil)
	m, cmd := update(t, m, runeKey('q'))
	if !m.quitting || cmd == nil {
		t.Error("q should quit")
	}
	if m.View() != "" {
		t.Error("view should be empty after quitting")
	}
}

func TestModelViewSizes(t *testing.T) {
	m := newTestModel(t, nil)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 40, Height: 12})
	if m.screen.Width() != 40 || m.screen.Height() != 12 {
		t.Errorf("screen = %dx%d, expected 40x12", m.screen.Width(), m.screen.Height())
	}
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.View() == "" {
		t.Error("playing view should not be empty")
	}
}

type mutableSounds struct {
	muted []bool
}

func (s *mutableSounds) Flap()               {}
func (s *mutableSounds) Score()              {}
func (s *mutableSounds) Crash()              {}
func (s *mutableSounds) SetMuted(muted bool) { s.muted = append(s.muted, muted) }

func TestModelMuteToggle(t *testing.T) {
	sounds := &mutableSounds{}
	m, err := NewModel(Options{
		Game:    config.DefaultConfig(),
		Runtime: core.RuntimeConfig{ScreenW: 80, ScreenH: 24, Seed: 1},
		Sounds:  sounds,
	})
	if err != nil {
		t.Fatalf("NewModel() error: %v", err)
	}

	m, _ = update(t, m, runeKey('m'))
	m, _ = update(t, m, runeKey('m'))
	if len(sounds.muted) != 2 || !sounds.muted[0] || sounds.muted[1] {
		t.Errorf("SetMuted calls = %v, expected [true false]", sounds.muted)
	}
	if m.phase != phaseStart {
		t.Errorf("mute should not change the phase, got %v", m.phase)
	}
}

func TestModelFallsBackToDefaultRuntime(t *testing.T) {
	m, err := NewModel(Options{Game: config.DefaultConfig()})
	if err != nil {
		t.Fatalf("NewModel() error: %v", err)
	}
	def := core.DefaultConfig()
	if m.screen.Width() != def.ScreenW || m.screen.Height() != def.ScreenH {
		t.Errorf("screen = %dx%d, expected %dx%d", m.screen.Width(), m.screen.Height(), def.ScreenW, def.ScreenH)
	}
	if m.opts.Runtime.TickRate != def.TickRate {
		t.Errorf("TickRate = %d, expected %d", m.opts.Runtime.TickRate, def.TickRate)
	}
}
