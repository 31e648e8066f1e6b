package main

import (
	"fmt"
	"net"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/couch-arcade/internal/logging"
	"github.com/vovakirdan/couch-arcade/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout time.Duration
	flagMaxSessions int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Host the arcade over SSH",
	Long: `Host the arcade over SSH. Every connection is its own couch: the two
players share the connecting keyboard and land on the title menu. All
connections share this server's scoreboard.

The host key is read from --host-key, or generated at ~/.arcade/host_key.

Examples:
  arcade serve
  arcade serve --ssh :2222 --max-sessions 8
  arcade serve --db /var/lib/arcade/scores.db --log-file /var/log/arcade.log

Players connect with:
  ssh -t host -p 23234`,
	Run: runServe,
}

func init() {
	def := tui.DefaultSSHServerConfig()
	f := serveCmd.Flags()
	f.StringVar(&flagSSHAddr, "ssh", def.Address, "listen address (host:port)")
	f.StringVar(&flagHostKey, "host-key", "", "host key file (generated when empty)")
	f.DurationVar(&flagIdleTimeout, "idle-timeout", def.IdleTimeout, "disconnect idle sessions after this long")
	f.IntVar(&flagMaxSessions, "max-sessions", def.MaxSessions, "concurrent sessions allowed (0 for no cap)")
}

func runServe(_ *cobra.Command, _ []string) {
	cfg := tui.DefaultSSHServerConfig()
	cfg.Address = flagSSHAddr
	cfg.HostKeyPath = flagHostKey
	cfg.DBPath = flagDBPath
	cfg.IdleTimeout = flagIdleTimeout
	cfg.MaxSessions = flagMaxSessions
	cfg.Runtime.TickRate = flagFPS
	cfg.Runtime.ConfigPath = flagConfig

	// The server owns no screen, so logs go to stderr unless a file is named.
	logger, closer := openLogger("arcade-ssh")
	defer closer.Close()
	if flagLogFile == "" {
		var err error
		if logger, err = logging.New(os.Stderr, "arcade-ssh", flagLogLevel); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	server, err := tui.NewSSHServer(cfg, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating server: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("arcade on %s, join with: ssh -t localhost -p %s (ctrl+c stops)\n", cfg.Address, port(cfg.Address))

	if err := server.ListenAndServe(); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}

// port returns the port part of a listen address.
func port(addr string) string {
	if _, p, err := net.SplitHostPort(addr); err == nil {
		return p
	}
	return addr
}
