package tui

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/gunpong/internal/pong"
	"github.com/vovakirdan/gunpong/internal/storage"
)

type fakeSaver struct {
	saved []storage.MatchResult
	err   error
}

func (f *fakeSaver) SaveMatch(m storage.MatchResult) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	f.saved = append(f.saved, m)
	return int64(len(f.saved)), nil
}

func TestStoreSinkSavesWonMatches(t *testing.T) {
	saver := &fakeSaver{}
	sink := StoreSink{Store: saver}

	finished := time.Unix(1_700_000_000, 0)
	for _, kind := range []pong.EventKind{pong.EventScore, pong.EventGoalScored, pong.EventShotFired} {
		sink.Notify(pong.Event{Kind: kind, Side: pong.Left})
	}
	sink.Notify(pong.Event{
		Kind:       pong.EventMatchWon,
		Side:       pong.Left,
		Mode:       pong.OneVsAI,
		LeftScore:  5,
		RightScore: 2,
		At:         finished,
		Played:     90 * time.Second,
	})

	if len(saver.saved) != 1 {
		t.Fatalf("saved %d matches, expected 1", len(saver.saved))
	}
	want := storage.MatchResult{
		Mode:       "1vAI",
		LeftScore:  5,
		RightScore: 2,
		Winner:     "Left",
		Duration:   90 * time.Second,
		FinishedAt: finished,
	}
	if saver.saved[0] != want {
		t.Errorf("saved %+v, expected %+v", saver.saved[0], want)
	}
}

func TestStoreSinkLogsFailures(t *testing.T) {
	var buf bytes.Buffer
	sink := StoreSink{
		Store:  &fakeSaver{err: errors.New("disk full")},
		Logger: log.New(&buf),
	}

	sink.Notify(pong.Event{Kind: pong.EventMatchWon, Side: pong.Right})

	if !strings.Contains(buf.String(), "disk full") {
		t.Errorf("log should mention the failure, got %q", buf.String())
	}
}

func TestStoreSinkWithoutStore(t *testing.T) {
	// Must not panic
	StoreSink{}.Notify(pong.Event{Kind: pong.EventMatchWon})
}

func TestLogSink(t *testing.T) {
	var buf bytes.Buffer
	logger := log.New(&buf)
	logger.SetLevel(log.DebugLevel)

	LogSink{Logger: logger}.Notify(pong.Event{Kind: pong.EventFrozen, Side: pong.Right, LeftScore: 1})

	out := buf.String()
	if !strings.Contains(out, "match event") || !strings.Contains(out, "Frozen") {
		t.Errorf("unexpected log output %q", out)
	}

	// Debug events stay quiet at the default level
	buf.Reset()
	LogSink{Logger: log.New(&buf)}.Notify(pong.Event{Kind: pong.EventFrozen})
	if buf.Len() != 0 {
		t.Errorf("expected no output at info level, got %q", buf.String())
	}

	LogSink{}.Notify(pong.Event{})
}
