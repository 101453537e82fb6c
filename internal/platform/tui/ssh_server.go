package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/vovakirdan/ballflaps/internal/config"
	"github.com/vovakirdan/ballflaps/internal/core"
	"github.com/vovakirdan/ballflaps/internal/storage"
)

// shutdownGrace bounds how long Serve waits for open sessions on exit.
const shutdownGrace = 10 * time.Second

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	Address     string        // host:port, e.g. ":23234"
	HostKeyPath string        // Generated at ~/.ballflaps/host_key when empty
	DBPath      string        // Shared leaderboard
	IdleTimeout time.Duration // Idle connections are closed after this

	Game     config.GameConfig // Constants every session plays with
	TickRate int
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		DBPath:      "~/.ballflaps/scores.db",
		IdleTimeout: 30 * time.Minute,
		Game:        config.DefaultConfig(),
		TickRate:    60,
	}
}

// SSHServer serves one independent game per SSH session. Sessions share
// only the leaderboard.
type SSHServer struct {
	cfg    SSHServerConfig
	server *ssh.Server
	store  *storage.Store // nil when the database could not be opened
	logger *log.Logger
	active atomic.Int32
}

// NewSSHServer creates a new SSH server with the given configuration.
// A nil logger logs to stderr.
func NewSSHServer(cfg SSHServerConfig, logger *log.Logger) (*SSHServer, error) {
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "ballflaps-ssh",
		})
	}

	hostKey, err := hostKeyPath(cfg.HostKeyPath)
	if err != nil {
		return nil, err
	}

	srv := &SSHServer{cfg: cfg, logger: logger}

	// Sessions still play without storage, they just keep no scores
	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		logger.Warn("leaderboard disabled", "db", cfg.DBPath, "error", err)
	} else {
		srv.store = store
	}

	srv.server, err = wish.NewServer(
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKey),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.newSession),
			srv.trackSession,
		),
	)
	if err != nil {
		srv.closeStore()
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}
	return srv, nil
}

// hostKeyPath resolves the key location and makes sure its directory exists.
func hostKeyPath(path string) (string, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("cannot get home directory: %w", err)
		}
		path = filepath.Join(home, ".ballflaps", "host_key")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return "", fmt.Errorf("cannot create host key directory: %w", err)
	}
	return path, nil
}

// newSession builds the game for one connection, sized to its PTY and
// styled for its terminal.
func (s *SSHServer) newSession(sess ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sess.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sess.User())
		return nil, nil
	}

	model, err := NewModel(Options{
		Game: s.cfg.Game,
		Runtime: core.RuntimeConfig{
			ScreenW:  pty.Window.Width,
			ScreenH:  pty.Window.Height,
			TickRate: s.cfg.TickRate,
			Seed:     time.Now().UnixNano(),
		},
		Store:    s.store,
		Player:   sess.User(),
		Logger:   s.logger,
		Renderer: bubbletea.MakeRenderer(sess),
	})
	if err != nil {
		s.logger.Error("cannot create session", "user", sess.User(), "error", err)
		return nil, nil
	}
	return model, []tea.ProgramOption{tea.WithAltScreen()}
}

// trackSession logs connects and disconnects with the number of open sessions.
func (s *SSHServer) trackSession(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		start := time.Now()
		s.logger.Info("session started",
			"user", sess.User(),
			"remote", sess.RemoteAddr().String(),
			"active", s.active.Add(1),
		)
		defer func() {
			s.logger.Info("session ended",
				"user", sess.User(),
				"duration", time.Since(start).Round(time.Second),
				"active", s.active.Add(-1),
			)
		}()
		next(sess)
	}
}

// Serve accepts connections until ctx is done, then shuts down gracefully.
func (s *SSHServer) Serve(ctx context.Context) error {
	s.logger.Info("starting SSH server", "address", s.cfg.Address, "leaderboard", s.store != nil)

	errc := make(chan error, 1)
	go func() {
		err := s.server.ListenAndServe()
		if errors.Is(err, ssh.ErrServerClosed) {
			err = nil
		}
		errc <- err
	}()

	select {
	case err := <-errc:
		s.closeStore()
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down...", "active", s.active.Load())
	return s.Shutdown()
}

// Shutdown stops the server, waiting up to shutdownGrace for sessions.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()

	err := s.server.Shutdown(ctx)
	s.closeStore()
	return err
}

func (s *SSHServer) closeStore() {
	if s.store != nil {
		s.store.Close()
		s.store = nil
	}
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.cfg.Address
}
