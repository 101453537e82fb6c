package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/ballflaps/internal/config"
	"github.com/vovakirdan/ballflaps/internal/core"
	"github.com/vovakirdan/ballflaps/internal/engine"
	"github.com/vovakirdan/ballflaps/internal/host"
	"github.com/vovakirdan/ballflaps/internal/render"
	"github.com/vovakirdan/ballflaps/internal/storage"
)

// phase is the screen currently shown.
type phase int

const (
	phaseStart phase = iota
	phasePlaying
	phaseOver
	phaseScores
)

// Options configures a game model.
type Options struct {
	Game    config.GameConfig
	Runtime core.RuntimeConfig
	Ball    core.BallColor
	Sounds  engine.Sounds  // nil means silent
	Store   *storage.Store // nil keeps the best score in memory only
	Player  string
	Logger  *log.Logger

	// Renderer sets the color profile of the output; nil means local stdout.
	Renderer *lipgloss.Renderer
}

// Model is the Bubble Tea model for one player.
type Model struct {
	opts     Options
	ctrl     *host.Controller
	renderer *render.Renderer
	screen   *core.Screen
	palette  *Palette
	keys     *KeyMapper
	logger   *log.Logger

	phase     phase
	prevPhase phase // Where the scoreboard returns to
	ball      core.BallColor
	gen       int // Tick loop generation
	scores    ScoreboardModel
	muted     bool
	quitting  bool
	lastErr   error
}

// NewModel creates the engine and controller for one player.
func NewModel(opts Options) (Model, error) {
	defaults := core.DefaultConfig()
	if opts.Runtime.TickRate <= 0 {
		opts.Runtime.TickRate = defaults.TickRate
	}
	if opts.Runtime.ScreenW <= 0 || opts.Runtime.ScreenH <= 0 {
		opts.Runtime.ScreenW, opts.Runtime.ScreenH = defaults.ScreenW, defaults.ScreenH
	}
	if opts.Ball == "" {
		opts.Ball = core.DefaultBallColor
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	engOpts := []engine.Option{engine.WithSeed(opts.Runtime.Seed)}
	if opts.Sounds != nil {
		engOpts = append(engOpts, engine.WithSounds(opts.Sounds))
	}
	eng, err := engine.New(opts.Game, engOpts...)
	if err != nil {
		return Model{}, fmt.Errorf("tui: %w", err)
	}

	var best host.BestScores = host.NewMemoryBest(0)
	if opts.Store != nil {
		best = opts.Store.ForGame(storage.GameID)
	}

	renderer := render.New(opts.Ball)
	ctrl := host.NewController(eng, best, host.WithLogger(logger.With("player", opts.Player)))
	renderer.SetBest(ctrl.Best())

	return Model{
		opts:     opts,
		ctrl:     ctrl,
		renderer: renderer,
		screen:   core.NewScreen(opts.Runtime.ScreenW, opts.Runtime.ScreenH),
		palette:  NewPalette(opts.Renderer),
		keys:     NewKeyMapper(),
		logger:   logger,
		ball:     opts.Ball,
	}, nil
}

// Init shows the start screen; ticking begins when the game starts.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.opts.Runtime.ScreenW = msg.Width
		m.opts.Runtime.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		if m.phase == phaseScores {
			return m.updateScores(msg)
		}
		return m, nil

	case TickMsg:
		return m.handleTick(msg)

	case tea.KeyMsg:
		if m.phase == phaseScores {
			return m.updateScores(msg)
		}
		return m.handleKey(msg)
	}

	return m, nil
}

// handleKey processes keyboard input outside the scoreboard.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	action, isQuit := m.keys.MapKey(msg)
	if isQuit {
		m.quitting = true
		return m, tea.Quit
	}
	if action == core.ActionMute {
		m.toggleMute()
		return m, nil
	}

	switch m.phase {
	case phaseStart:
		switch action {
		case core.ActionColorPrev:
			m.setBall(core.NextBallColor(m.ball, -1))
		case core.ActionColorNext:
			m.setBall(core.NextBallColor(m.ball, 1))
		case core.ActionConfirm, core.ActionFlap:
			return m.begin()
		case core.ActionScoreboard:
			return m.openScores()
		}

	case phasePlaying:
		if action == core.ActionFlap {
			m.ctrl.Flap()
		}

	case phaseOver:
		switch action {
		case core.ActionRestart, core.ActionConfirm:
			return m.begin()
		case core.ActionBack:
			m.phase = phaseStart
		case core.ActionScoreboard:
			return m.openScores()
		}
	}

	return m, nil
}

// muter is implemented by sound sinks that can be silenced.
type muter interface {
	SetMuted(muted bool)
}

func (m *Model) toggleMute() {
	if sm, ok := m.opts.Sounds.(muter); ok {
		m.muted = !m.muted
		sm.SetMuted(m.muted)
	}
}

func (m *Model) setBall(c core.BallColor) {
	m.ball = c
	m.renderer.SetBallColor(c)
}

// begin starts or restarts a session and a new tick loop.
func (m Model) begin() (tea.Model, tea.Cmd) {
	var err error
	if m.ctrl.Status() == host.StateIdle {
		w, h := m.opts.Game.Playfield.Width, m.opts.Game.Playfield.Height
		err = m.ctrl.Start(w, h)
	} else {
		err = m.ctrl.Restart()
	}
	if err != nil {
		m.lastErr = err
		m.logger.Error("cannot start session", "error", err)
		return m, nil
	}

	m.phase = phasePlaying
	m.gen++
	return m, tickCmd(m.opts.Runtime.TickRate, m.gen)
}

// handleTick runs one frame of the current loop.
func (m Model) handleTick(msg TickMsg) (tea.Model, tea.Cmd) {
	if msg.Gen != m.gen || m.phase != phasePlaying {
		return m, nil
	}

	res := m.ctrl.Frame()
	if res.GameOver != nil {
		m.finish(*res.GameOver)
		return m, nil
	}
	return m, tickCmd(m.opts.Runtime.TickRate, m.gen)
}

// finish stops the tick loop and records the session.
func (m *Model) finish(ev engine.GameOverEvent) {
	m.phase = phaseOver
	m.gen++
	m.renderer.SetBest(m.ctrl.Best())

	if m.opts.Store == nil {
		return
	}
	_, err := m.opts.Store.SaveScore(storage.ScoreEntry{
		Player: m.opts.Player,
		Score:  ev.Score,
		Cause:  ev.Cause.String(),
		Frames: ev.Frame,
	})
	if err != nil {
		m.logger.Warn("could not record session", "error", err)
	}
}

func (m Model) openScores() (tea.Model, tea.Cmd) {
	m.prevPhase = m.phase
	m.phase = phaseScores
	m.scores = NewScoreboardModel(m.opts.Store, m.screen.Width(), m.screen.Height())
	return m, m.scores.Init()
}

func (m Model) updateScores(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.scores.Update(msg)
	if sb, ok := next.(ScoreboardModel); ok {
		m.scores = sb
	}

	switch {
	case m.scores.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case m.scores.IsGoingBack():
		m.phase = m.prevPhase
		return m, nil
	}
	return m, cmd
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.draw()

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".ballflaps", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("ballflaps_%s.txt", timestamp))

	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// draw renders the current phase into the screen buffer.
func (m *Model) draw() {
	switch m.phase {
	case phaseStart:
		m.drawStart()
	default:
		m.renderer.Draw(m.screen, m.ctrl.Snapshot())
	}
}

func (m *Model) drawStart() {
	s := m.screen
	s.Clear()
	s.DrawHLine(0, s.Height()-1, s.Width(), render.GroundChar, core.ColorGray)

	render.DrawMessage(s, core.ColorBrightYellow,
		"BALL FLAPS",
		"",
		fmt.Sprintf("Best: %d", m.ctrl.Best()),
		"",
		"Enter start   Space flap",
		"←/→ color   Tab scores   M mute   Q quit",
	)

	// Color picker below the box
	picker := fmt.Sprintf("◀  %c %s  ▶", render.BallChar, m.ball)
	s.DrawTextCentered(s.Height()/2+6, picker, m.ball.Cell())

	if m.lastErr != nil {
		s.DrawTextCentered(s.Height()-2, m.lastErr.Error(), core.ColorRed)
	}
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.phase == phaseScores {
		return m.scores.View()
	}

	m.draw()
	return m.palette.Render(m.screen)
}

// Controller exposes the session controller, mainly for tests.
func (m Model) Controller() *host.Controller {
	return m.ctrl
}

// Run starts the Bubble Tea program for a local player.
func Run(opts Options) error {
	model, err := NewModel(opts)
	if err != nil {
		return err
	}

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err = p.Run()
	return err
}
