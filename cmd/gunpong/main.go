// gunpong is a two-player Pong for the terminal where each paddle also
// carries a gun: a hit freezes the opposing paddle for a few seconds.
//
// Usage:
//
//	gunpong play             - Play on this terminal
//	gunpong serve            - Start SSH server for remote play
//	gunpong history          - Show recent matches and win totals
//	gunpong defaults         - Print the built-in configuration
//
// Global flags:
//
//	--fps <rate>        - Set tick rate (default: 60)
//	--seed <value>      - Set RNG seed for reproducible gameplay
//	--db <path>         - Set database path (default: ~/.gunpong/matches.db)
//	--config <path>     - Load game settings from a YAML file
//	--log-file <path>   - Write logs to a file
//	--log-level <level> - debug, info, warn or error
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/gunpong/internal/config"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagConfig   string
	flagLogFile  string
	flagLogLevel string
)

// Environment variables that provide flag defaults, usually from .env.
const (
	envDB       = "GUNPONG_DB"
	envConfig   = "GUNPONG_CONFIG"
	envLogLevel = "GUNPONG_LOG_LEVEL"
)

func main() {
	// A missing .env is the common case
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "gunpong",
	Short: "GunPong - Pong with guns in your terminal",
	Long: `GunPong is classic two-paddle Pong where both players can also fire
at the opposing paddle. A hit freezes it for five seconds; each gun then
needs three seconds to reload. First to five goals wins.

Available commands:
  play      - Play on this terminal, 1v1 or against the AI
  serve     - Start SSH server for remote play
  history   - View recent matches and win totals
  defaults  - Print the built-in configuration

Examples:
  gunpong play
  gunpong play --ai
  gunpong serve --ssh :2222
  gunpong history --limit 20
  gunpong defaults > configs/gunpong.yaml`,
	PersistentPreRun: applyEnvDefaults,
	SilenceUsage:     true,
	SilenceErrors:    true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.gunpong/matches.db", "Path to match history database (env "+envDB+")")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to game config YAML (env "+envConfig+")")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error (env "+envLogLevel+")")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(defaultsCmd)
}

// applyEnvDefaults fills flags the user did not set from the environment.
func applyEnvDefaults(cmd *cobra.Command, _ []string) {
	flags := cmd.Flags()
	for name, env := range map[string]string{
		"db":        envDB,
		"config":    envConfig,
		"log-level": envLogLevel,
	} {
		if flags.Changed(name) {
			continue
		}
		if v, ok := os.LookupEnv(env); ok && v != "" {
			//nolint:errcheck // Flag names are fixed above
			flags.Set(name, v)
		}
	}
}

// newLogger builds a logger writing to w at the configured level.
func newLogger(w io.Writer, prefix string) (*log.Logger, error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           level,
	}), nil
}

// openLogFile returns the --log-file writer, or io.Discard when unset so the
// alternate screen stays clean.
func openLogFile() (io.Writer, func(), error) {
	if flagLogFile == "" {
		return io.Discard, func() {}, nil
	}
	f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot open log file: %w", err)
	}
	return f, func() { f.Close() }, nil
}

// loadConfig loads the game configuration from --config.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return config.Config{}, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}
