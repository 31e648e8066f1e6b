package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sync/atomic"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/vovakirdan/couch-arcade/internal/core"
	"github.com/vovakirdan/couch-arcade/internal/storage"
)

// SSHServerConfig configures `arcade serve`.
type SSHServerConfig struct {
	Address string
	// HostKeyPath defaults to ~/.arcade/host_key, generated on first start.
	HostKeyPath string
	DBPath      string
	IdleTimeout time.Duration
	// MaxSessions caps concurrent couches. Zero means no cap.
	MaxSessions int

	// Runtime is copied into every connection. Screen size comes from the
	// client's PTY and the seed from the connection time.
	Runtime core.RuntimeConfig
}

// DefaultSSHServerConfig returns the settings `arcade serve` starts from.
func DefaultSSHServerConfig() SSHServerConfig {
	rt := core.DefaultConfig()
	rt.KeyHold = DefaultKeyHold
	return SSHServerConfig{
		Address:     ":23234",
		DBPath:      "~/.arcade/scores.db",
		IdleTimeout: 30 * time.Minute,
		MaxSessions: 32,
		Runtime:     rt,
	}
}

// SSHServer serves the arcade over SSH. Each connection is one couch:
// both players share the remote keyboard and the server's scoreboard.
type SSHServer struct {
	cfg    SSHServerConfig
	srv    *ssh.Server
	store  *storage.Store
	logger *log.Logger
	active atomic.Int32
}

func hostKeyPath(p string) (string, error) {
	if p != "" {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot get home directory: %w", err)
	}
	return filepath.Join(home, ".arcade", "host_key"), nil
}

// NewSSHServer builds the server. A scoreboard that fails to open is
// logged and the arcade runs without one.
func NewSSHServer(cfg SSHServerConfig, logger *log.Logger) (*SSHServer, error) {
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true, Prefix: "arcade-ssh"})
	}

	keyPath, err := hostKeyPath(cfg.HostKeyPath)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(keyPath), 0o700); err != nil {
		return nil, fmt.Errorf("cannot create host key directory: %w", err)
	}

	s := &SSHServer{cfg: cfg, logger: logger}
	if s.store, err = storage.Open(cfg.DBPath); err != nil {
		logger.Warn("scoreboard unavailable", "db", cfg.DBPath, "error", err)
		s.store = nil
	}

	// Middleware runs last-to-first: the gate sees the connection before
	// the program starts.
	s.srv, err = wish.NewServer(
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(keyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(s.newCouch),
			s.gate,
		),
	)
	if err != nil {
		s.closeStore()
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}
	return s, nil
}

// newCouch starts a session for one connection sized to its PTY.
func (s *SSHServer) newCouch(sess ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sess.Pty()
	if !ok {
		wish.Fatalln(sess, "arcade needs a terminal: connect with ssh -t")
		return nil, nil
	}

	cfg := s.cfg.Runtime
	cfg.ScreenW, cfg.ScreenH = pty.Window.Width, pty.Window.Height
	cfg.Seed = time.Now().UnixNano()

	model := NewSessionModel(s.store, cfg, s.logger.With("user", sess.User()))
	return model, []tea.ProgramOption{tea.WithAltScreen(), tea.WithMouseCellMotion()}
}

// gate enforces MaxSessions and logs each couch coming and going.
func (s *SSHServer) gate(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		n := s.active.Add(1)
		defer s.active.Add(-1)

		l := s.logger.With("user", sess.User(), "remote", sess.RemoteAddr().String())
		if s.cfg.MaxSessions > 0 && int(n) > s.cfg.MaxSessions {
			l.Warn("arcade full", "active", n-1)
			wish.Fatalln(sess, "the arcade is full, try again later")
			return
		}

		start := time.Now()
		l.Info("couch opened", "active", n)
		next(sess)
		l.Info("couch closed", "after", time.Since(start).Round(time.Second))
	}
}

// Active returns the number of connected sessions.
func (s *SSHServer) Active() int {
	return int(s.active.Load())
}

// ListenAndServe serves until SIGINT or SIGTERM, then shuts down.
func (s *SSHServer) ListenAndServe() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("arcade listening", "address", s.cfg.Address)
		errc <- s.srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		s.closeStore()
		if errors.Is(err, ssh.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}
	s.logger.Info("shutting down", "active", s.Active())
	return s.Shutdown()
}

// Shutdown waits up to ten seconds for sessions to end, then closes the
// scoreboard.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	err := s.srv.Shutdown(ctx)
	s.closeStore()
	return err
}

func (s *SSHServer) closeStore() {
	if s.store != nil {
		s.store.Close()
		s.store = nil
	}
}

// Addr returns the configured listen address.
func (s *SSHServer) Addr() string {
	return s.cfg.Address
}
