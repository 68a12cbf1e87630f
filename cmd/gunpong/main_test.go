package main

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/gunpong/internal/storage"
)

func TestApplyEnvDefaults(t *testing.T) {
	t.Setenv(envDB, "/tmp/env.db")
	t.Setenv(envLogLevel, "debug")

	cmd := &cobra.Command{Use: "test"}
	var db, cfg, level string
	cmd.Flags().StringVar(&db, "db", "default.db", "")
	cmd.Flags().StringVar(&cfg, "config", "", "")
	cmd.Flags().StringVar(&level, "log-level", "info", "")

	if err := cmd.Flags().Parse([]string{"--log-level", "warn"}); err != nil {
		t.Fatal(err)
	}
	applyEnvDefaults(cmd, nil)

	if db != "/tmp/env.db" {
		t.Errorf("db = %q, expected value from %s", db, envDB)
	}
	if level != "warn" {
		t.Errorf("log-level = %q, an explicit flag must win over the environment", level)
	}
	if cfg != "" {
		t.Errorf("config = %q, expected unset", cfg)
	}
}

func TestPort(t *testing.T) {
	tests := []struct {
		addr string
		want string
	}{
		{":23235", "23235"},
		{"0.0.0.0:2222", "2222"},
		{"[::1]:22", "22"},
		{"localhost", "localhost"},
	}
	for _, tc := range tests {
		if got := port(tc.addr); got != tc.want {
			t.Errorf("port(%q) = %q, expected %q", tc.addr, got, tc.want)
		}
	}
}

func TestNewLoggerRejectsUnknownLevel(t *testing.T) {
	old := flagLogLevel
	t.Cleanup(func() { flagLogLevel = old })

	flagLogLevel = "loud"
	if _, err := newLogger(io.Discard, "x"); err == nil {
		t.Error("expected an error for an unknown level")
	}

	flagLogLevel = "debug"
	if _, err := newLogger(io.Discard, "x"); err != nil {
		t.Errorf("newLogger(debug) = %v", err)
	}
}

func TestCommandsReturnErrors(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	if err := os.WriteFile(blocker, nil, 0o600); err != nil {
		t.Fatal(err)
	}

	oldDB, oldConfig := flagDBPath, flagConfig
	t.Cleanup(func() { flagDBPath, flagConfig = oldDB, oldConfig })

	// The parent of the database is a regular file
	flagDBPath = filepath.Join(blocker, "matches.db")
	if err := runHistory(nil, nil); err == nil {
		t.Error("runHistory should report an unusable database")
	}

	flagConfig = filepath.Join(dir, "missing.yaml")
	if err := runPlay(nil, nil); err == nil {
		t.Error("runPlay should report a missing config")
	}
	if err := runServe(nil, nil); err == nil {
		t.Error("runServe should report a missing config")
	}
}

func TestHistoryClearClosesStore(t *testing.T) {
	oldDB, oldClear := flagDBPath, flagClear
	t.Cleanup(func() { flagDBPath, flagClear = oldDB, oldClear })

	flagDBPath = filepath.Join(t.TempDir(), "matches.db")
	flagClear = true
	if err := runHistory(nil, nil); err != nil {
		t.Fatalf("runHistory --clear = %v", err)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		t.Fatalf("database should be reusable after the command: %v", err)
	}
	defer store.Close()
	if matches, err := store.RecentMatches(10); err != nil || len(matches) != 0 {
		t.Errorf("RecentMatches() = %v, %v after clear", matches, err)
	}
}
