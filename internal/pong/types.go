// Package pong implements a two-sided Pong match in which the players can
// also shoot the opposing paddle to freeze it for a few seconds.
//
// The simulation runs in arena units (800x500 by default) and knows nothing
// about terminals: input arrives as a core.InputSnapshot, output leaves as a
// Frame for a Renderer and as Events for a Sink.
package pong

import "time"

// Side identifies a paddle.
type Side int

const (
	Left Side = iota
	Right
)

// String returns the display name of the side.
func (s Side) String() string {
	switch s {
	case Left:
		return "Left"
	case Right:
		return "Right"
	default:
		return "Unknown"
	}
}

// Opposite returns the other side.
func (s Side) Opposite() Side {
	if s == Left {
		return Right
	}
	return Left
}

// Mode selects who controls the right paddle.
type Mode int

const (
	OneVsOne Mode = iota
	OneVsAI
)

// String returns the HUD label of the mode.
func (m Mode) String() string {
	if m == OneVsAI {
		return "1vAI"
	}
	return "1v1"
}

// Phase is the match lifecycle state.
type Phase int

const (
	PhaseIdle     Phase = iota // Not started, or paused
	PhaseRunning               // Physics advances every tick
	PhaseFinished              // Someone reached the win score
)

// String returns a human-readable name for the phase.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "Idle"
	case PhaseRunning:
		return "Running"
	case PhaseFinished:
		return "Finished"
	default:
		return "Unknown"
	}
}

// Paddle is a vertical bat. Y is the top edge.
type Paddle struct {
	Side Side
	Y    float64
}

// Ball is the rally ball.
type Ball struct {
	X, Y   float64
	VX, VY float64
}

// Bullet is a projectile travelling horizontally away from its shooter.
type Bullet struct {
	X, Y float64
	VX   float64
	From Side
}

// GunState is the per-side weapon state.
type GunState struct {
	Ready   bool
	ReadyAt time.Time // Zero while ready
}

// FreezeState is the per-side debuff state.
type FreezeState struct {
	Frozen    bool
	ExpiresAt time.Time // Zero while not frozen
}

// MatchState is a snapshot of the scoreboard and lifecycle.
type MatchState struct {
	LeftScore  int
	RightScore int
	Phase      Phase
	Mode       Mode
	Winner     Side
	HasWinner  bool
}

// Running reports whether physics is advancing.
func (s MatchState) Running() bool {
	return s.Phase == PhaseRunning
}

// Score returns the score of one side.
func (s MatchState) Score(side Side) int {
	if side == Left {
		return s.LeftScore
	}
	return s.RightScore
}

// effectKind distinguishes the timed effects kept per side.
type effectKind int

const (
	effectGunCooldown effectKind = iota
	effectFreeze
)

// effectKey keys the timer registry.
type effectKey struct {
	side Side
	kind effectKind
}
