package tui

import (
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/gunpong/internal/pong"
	"github.com/vovakirdan/gunpong/internal/storage"
)

// LogSink writes every match event to a logger at debug level.
type LogSink struct {
	Logger *log.Logger
}

// Notify implements pong.Sink.
func (s LogSink) Notify(e pong.Event) {
	if s.Logger == nil {
		return
	}
	s.Logger.Debug("match event",
		"kind", e.Kind,
		"side", e.Side,
		"score", e.String(),
		"mode", e.Mode,
	)
}

// ResultSaver is the part of the store a StoreSink needs.
type ResultSaver interface {
	SaveMatch(m storage.MatchResult) (int64, error)
}

// StoreSink records every won match. Failures are logged and the game
// goes on.
type StoreSink struct {
	Store  ResultSaver
	Logger *log.Logger
}

// Notify implements pong.Sink.
func (s StoreSink) Notify(e pong.Event) {
	if e.Kind != pong.EventMatchWon || s.Store == nil {
		return
	}
	id, err := s.Store.SaveMatch(resultFromEvent(e))
	if s.Logger == nil {
		return
	}
	if err != nil {
		s.Logger.Warn("cannot save match", "err", err)
		return
	}
	s.Logger.Info("match saved", "id", id, "winner", e.Side, "score", e.String())
}

func resultFromEvent(e pong.Event) storage.MatchResult {
	return storage.MatchResult{
		Mode:       e.Mode.String(),
		LeftScore:  e.LeftScore,
		RightScore: e.RightScore,
		Winner:     e.Side.String(),
		Duration:   e.Played,
		FinishedAt: e.At,
	}
}

var (
	_ pong.Sink   = LogSink{}
	_ pong.Sink   = StoreSink{}
	_ ResultSaver = (*storage.Store)(nil)
)
