package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/gunpong/internal/audio"
	"github.com/vovakirdan/gunpong/internal/core"
	"github.com/vovakirdan/gunpong/internal/platform/tui"
	"github.com/vovakirdan/gunpong/internal/pong"
	"github.com/vovakirdan/gunpong/internal/storage"
)

var (
	flagAI     bool
	flagMute   bool
	flagVolume float64
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play on this terminal",
	Long: `Start a match on this terminal.

Controls:
  W/S        - Left paddle up/down
  D          - Left gun
  Up/Down    - Right paddle up/down
  Left       - Right gun
  Space      - Start or resume
  P          - Pause
  R          - Reset the match
  M          - Switch between 1v1 and 1vAI
  ?          - Full help
  Ctrl+S     - Save a screenshot to ~/.gunpong/screenshots
  Ctrl+Y     - Copy the frame to the clipboard
  Q/Ctrl+C   - Quit

Examples:
  gunpong play
  gunpong play --ai
  gunpong play --mute --fps 30
  gunpong play --config ./fast.yaml --log-file gunpong.log --log-level debug`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagAI, "ai", false, "Let the computer play the right paddle")
	playCmd.Flags().BoolVar(&flagMute, "mute", false, "Disable sound")
	playCmd.Flags().Float64Var(&flagVolume, "volume", 0.6, "Sound volume from 0 to 1")
}

func runPlay(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logOut, closeLog, err := openLogFile()
	if err != nil {
		return err
	}
	defer closeLog()
	logger, err := newLogger(logOut, "gunpong")
	if err != nil {
		return err
	}

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	opts := tui.Options{
		Config: cfg,
		Runtime: core.RuntimeConfig{
			ScreenW:  width,
			ScreenH:  height,
			TickRate: flagFPS,
			Seed:     flagSeed,
		},
		Mode:          pong.OneVsOne,
		Logger:        logger,
		ScreenshotDir: tui.DefaultScreenshotDir(),
		Clipboard:     true,
	}
	if flagAI {
		opts.Mode = pong.OneVsAI
	}

	// Open match history
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open match history: %v\n", err)
		logger.Warn("match history disabled", "err", err)
		// Continue without storage - game still works
	} else {
		opts.Store = store
		defer store.Close()
	}

	if !flagMute {
		player := audio.NewPlayer(flagVolume)
		if err := player.Initialize(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
			logger.Warn("sound disabled", "err", err)
		} else {
			opts.Audio = player
			defer player.Close()
		}
	}

	logger.Info("starting match", "mode", opts.Mode, "size", fmt.Sprintf("%dx%d", width, height), "fps", flagFPS)
	if err := tui.Run(opts); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}
