package main

import (
	"fmt"
	"net"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/gunpong/internal/platform/tui"
	"github.com/vovakirdan/gunpong/internal/pong"
	"github.com/vovakirdan/gunpong/internal/storage"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
	flagServeAI     bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the GunPong SSH server",
	Long: `Start an SSH server that allows users to connect and play.

Each SSH connection gets its own match. Both paddles share the connecting
keyboard, so a session starts against the AI unless --ai=false is given.
Finished matches from all sessions go to the same history database.
Sessions have no sound.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.gunpong/host_key

Examples:
  gunpong serve                           # Listen on :23235 with auto-generated key
  gunpong serve --ssh :2222               # Listen on port 2222
  gunpong serve --host-key ./my_host_key  # Use specific host key
  gunpong serve --db ./matches.db         # Use specific database

Users can connect with:
  ssh localhost -p 23235`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23235", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
	serveCmd.Flags().BoolVar(&flagServeAI, "ai", true, "Start sessions in 1vAI mode")
}

func runServe(_ *cobra.Command, _ []string) error {
	game, err := loadConfig()
	if err != nil {
		return err
	}

	logger, err := newLogger(os.Stderr, "gunpong-ssh")
	if err != nil {
		return err
	}

	cfg := tui.SSHServerConfig{
		Address:     flagSSHAddr,
		HostKeyPath: flagHostKey,
		IdleTimeout: time.Duration(flagIdleTimeout) * time.Minute,
		Game:        game,
		TickRate:    flagFPS,
		Mode:        pong.OneVsOne,
	}
	if flagServeAI {
		cfg.Mode = pong.OneVsAI
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open match history", "error", err)
		// Continue without storage
		store = nil
	}

	server, err := tui.NewSSHServer(cfg, store, logger)
	if err != nil {
		if store != nil {
			store.Close()
		}
		return fmt.Errorf("creating server: %w", err)
	}

	fmt.Printf("Starting GunPong SSH server on %s\n", cfg.Address)
	fmt.Printf("Connect with: ssh localhost -p %s\n", port(cfg.Address))
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	return nil
}

// port returns the port of a host:port address.
func port(addr string) string {
	if _, p, err := net.SplitHostPort(addr); err == nil {
		return p
	}
	return addr
}
