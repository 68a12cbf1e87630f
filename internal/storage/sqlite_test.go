package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreReopenSkipsAppliedMigrations(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	first, err := Open(dbPath)
	if err != nil {
		t.Fatalf("first Open() failed: %v", err)
	}
	if _, err := first.SaveMatch(MatchResult{Mode: "1v1", LeftScore: 5, Winner: "Left"}); err != nil {
		t.Fatalf("SaveMatch() failed: %v", err)
	}
	first.Close()

	second, err := Open(dbPath)
	if err != nil {
		t.Fatalf("second Open() failed: %v", err)
	}
	defer second.Close()

	matches, err := second.RecentMatches(10)
	if err != nil {
		t.Fatalf("RecentMatches() failed: %v", err)
	}
	if len(matches) != 1 {
		t.Errorf("Expected 1 match after reopen, got %d", len(matches))
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)
	finished := time.UnixMilli(1_700_000_123_456)

	id, err := store.SaveMatch(MatchResult{
		Mode:       "1vAI",
		LeftScore:  3,
		RightScore: 5,
		Winner:     "Right",
		Duration:   95*time.Second + 250*time.Millisecond,
		FinishedAt: finished,
	})
	if err != nil {
		t.Fatalf("SaveMatch() failed: %v", err)
	}
	if id <= 0 {
		t.Errorf("Expected a positive ID, got %d", id)
	}

	matches, err := store.RecentMatches(10)
	if err != nil {
		t.Fatalf("RecentMatches() failed: %v", err)
	}
	if len(matches) != 1 {
		t.Fatalf("Expected 1 match, got %d", len(matches))
	}

	got := matches[0]
	if got.ID != id || got.Mode != "1vAI" || got.LeftScore != 3 || got.RightScore != 5 || got.Winner != "Right" {
		t.Errorf("Round trip mismatch: %+v", got)
	}
	if got.Duration != 95250*time.Millisecond {
		t.Errorf("Duration = %v, expected 1m35.25s", got.Duration)
	}
	if !got.FinishedAt.Equal(finished) {
		t.Errorf("FinishedAt = %v, expected %v", got.FinishedAt, finished)
	}
}

func TestStoreRecentMatchesOrderAndLimit(t *testing.T) {
	store := openTestStore(t)
	base := time.UnixMilli(1_700_000_000_000)

	for i := 0; i < 5; i++ {
		_, err := store.SaveMatch(MatchResult{
			Mode:       "1v1",
			LeftScore:  5,
			RightScore: i,
			Winner:     "Left",
			FinishedAt: base.Add(time.Duration(i) * time.Minute),
		})
		if err != nil {
			t.Fatalf("SaveMatch() failed: %v", err)
		}
	}

	matches, err := store.RecentMatches(3)
	if err != nil {
		t.Fatalf("RecentMatches() failed: %v", err)
	}
	if len(matches) != 3 {
		t.Fatalf("Expected 3 matches with limit, got %d", len(matches))
	}

	// Newest first: right scores 4, 3, 2
	for i, want := range []int{4, 3, 2} {
		if matches[i].RightScore != want {
			t.Errorf("matches[%d].RightScore = %d, expected %d", i, matches[i].RightScore, want)
		}
	}

	all, _ := store.RecentMatches(0)
	if len(all) != 5 {
		t.Errorf("Default limit should return all 5 matches, got %d", len(all))
	}
}

func TestStoreSaveDefaultsFinishedAt(t *testing.T) {
	store := openTestStore(t)
	before := time.Now().Add(-time.Second)

	if _, err := store.SaveMatch(MatchResult{Mode: "1v1", Winner: "Left", LeftScore: 5}); err != nil {
		t.Fatalf("SaveMatch() failed: %v", err)
	}

	matches, _ := store.RecentMatches(1)
	if len(matches) != 1 || matches[0].FinishedAt.Before(before) {
		t.Errorf("FinishedAt should default to now, got %+v", matches)
	}
}

func TestStoreStats(t *testing.T) {
	store := openTestStore(t)

	results := []MatchResult{
		{Mode: "1v1", Winner: "Left", LeftScore: 5, Duration: time.Minute},
		{Mode: "1v1", Winner: "Left", LeftScore: 5, Duration: time.Minute},
		{Mode: "1v1", Winner: "Right", RightScore: 5, Duration: 30 * time.Second},
		{Mode: "1vAI", Winner: "Right", RightScore: 5, Duration: 2 * time.Minute},
	}
	for _, r := range results {
		if _, err := store.SaveMatch(r); err != nil {
			t.Fatalf("SaveMatch() failed: %v", err)
		}
	}

	stats, err := store.Stats()
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}

	if stats.Matches != 4 || stats.LeftWins != 2 || stats.RightWins != 2 {
		t.Errorf("Totals = %d matches, %d-%d, expected 4 matches, 2-2", stats.Matches, stats.LeftWins, stats.RightWins)
	}

	pvp := stats.ByMode["1v1"]
	if pvp == nil {
		t.Fatal("Missing 1v1 stats")
	}
	if pvp.Matches != 3 || pvp.LeftWins != 2 || pvp.RightWins != 1 {
		t.Errorf("1v1 stats = %+v", pvp)
	}
	if pvp.Played != 150*time.Second {
		t.Errorf("1v1 played = %v, expected 2m30s", pvp.Played)
	}

	ai := stats.ByMode["1vAI"]
	if ai == nil || ai.Matches != 1 || ai.RightWins != 1 {
		t.Errorf("1vAI stats = %+v", ai)
	}
}

func TestStoreStatsEmpty(t *testing.T) {
	store := openTestStore(t)

	stats, err := store.Stats()
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if stats.Matches != 0 || len(stats.ByMode) != 0 {
		t.Errorf("Expected empty stats, got %+v", stats)
	}
}

func TestStoreClearMatches(t *testing.T) {
	store := openTestStore(t)

	store.SaveMatch(MatchResult{Mode: "1v1", Winner: "Left"})
	store.SaveMatch(MatchResult{Mode: "1vAI", Winner: "Right"})

	if err := store.ClearMatches(); err != nil {
		t.Fatalf("ClearMatches() failed: %v", err)
	}

	matches, _ := store.RecentMatches(10)
	if len(matches) != 0 {
		t.Errorf("Expected 0 matches after clear, got %d", len(matches))
	}
}

func TestStoreNestedPath(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	// Verify nested directories were created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}
