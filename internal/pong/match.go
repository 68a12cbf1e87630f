package pong

import (
	"math/rand"
	"time"

	"github.com/vovakirdan/gunpong/internal/config"
	"github.com/vovakirdan/gunpong/internal/core"
	"github.com/vovakirdan/gunpong/internal/effects"
)

// Match owns the whole simulation state of one game.
// It is not safe for concurrent use; the game loop owns it.
type Match struct {
	cfg    config.Config
	rng    *rand.Rand
	sink   Sink
	timers *effects.Registry[effectKey]

	ball    Ball
	paddles [2]Paddle
	bullets []Bullet
	guns    [2]GunState
	freezes [2]FreezeState

	state MatchState

	now       time.Time     // Latest time seen by Tick or a control call
	resumedAt time.Time     // Start of the current running stretch
	pausedAt  time.Time     // Set while timers are held by a pause
	played    time.Duration // Running time before resumedAt
}

// New creates a match in the Idle phase with both guns ready.
// The config is assumed valid. A nil sink discards events.
func New(cfg config.Config, seed int64, sink Sink) *Match {
	if sink == nil {
		sink = discard{}
	}
	m := &Match{
		cfg:    cfg,
		rng:    rand.New(rand.NewSource(seed)),
		sink:   sink,
		timers: effects.NewRegistry[effectKey](cfg.RearmPolicy()),
		paddles: [2]Paddle{
			{Side: Left},
			{Side: Right},
		},
		guns: [2]GunState{
			{Ready: true},
			{Ready: true},
		},
	}
	m.Reset()
	return m
}

// Start moves Idle to Running. It does nothing when running or finished.
func (m *Match) Start(now time.Time) {
	if m.state.Phase != PhaseIdle {
		return
	}
	m.now = now
	if !m.pausedAt.IsZero() {
		m.shiftTimers(now.Sub(m.pausedAt))
		m.pausedAt = time.Time{}
	}
	m.state.Phase = PhaseRunning
	m.resumedAt = now
}

// Pause moves Running to Idle. Entity state is kept as is.
// Timers keep running unless timers.pause_timers is set.
func (m *Match) Pause(now time.Time) {
	if m.state.Phase != PhaseRunning {
		return
	}
	m.now = now
	m.played += now.Sub(m.resumedAt)
	m.state.Phase = PhaseIdle
	if m.cfg.Timers.PauseTimers {
		m.pausedAt = now
	}
}

// Reset zeroes the score, centers the paddles, serves a fresh ball and
// clears in-flight bullets. Gun cooldowns and freezes are left alone.
func (m *Match) Reset() {
	if m.state.Phase == PhaseRunning && m.cfg.Timers.PauseTimers {
		m.pausedAt = m.now
	}
	m.state.LeftScore = 0
	m.state.RightScore = 0
	m.state.HasWinner = false
	m.state.Winner = Left
	m.state.Phase = PhaseIdle
	m.played = 0

	center := m.cfg.Arena.Height/2 - m.cfg.Paddle.Height/2
	m.paddles[Left].Y = center
	m.paddles[Right].Y = center

	clear(m.bullets)
	m.bullets = m.bullets[:0]
	m.serve()
}

// ToggleMode switches between 1v1 and 1vAI and resets the match.
func (m *Match) ToggleMode() {
	if m.state.Mode == OneVsOne {
		m.state.Mode = OneVsAI
	} else {
		m.state.Mode = OneVsOne
	}
	m.Reset()
}

// RecordGoal credits side with a goal. The winning goal finishes the match;
// any other goal serves a new ball. It does nothing once finished.
func (m *Match) RecordGoal(side Side) {
	if m.state.Phase == PhaseFinished {
		return
	}
	if side == Left {
		m.state.LeftScore++
	} else {
		m.state.RightScore++
	}
	m.emit(EventGoalScored, side, m.now)

	if m.state.Score(side) >= m.cfg.Match.WinScore {
		if m.state.Phase == PhaseRunning {
			m.played += m.now.Sub(m.resumedAt)
		}
		m.state.Winner = side
		m.state.HasWinner = true
		m.state.Phase = PhaseFinished
		m.emit(EventMatchWon, side, m.now)
		return
	}
	m.serve()
}

// Tick advances the match to now: due timers always expire, then one
// physics step runs if the match is running.
func (m *Match) Tick(now time.Time, in core.InputSnapshot) {
	m.now = now
	if m.pausedAt.IsZero() {
		m.expire(now)
	}
	if m.state.Phase != PhaseRunning {
		return
	}
	m.step(now, in)
	m.assertInvariants()
}

// State returns a copy of the scoreboard.
func (m *Match) State() MatchState {
	return m.state
}

// Mode returns the current control mode.
func (m *Match) Mode() Mode {
	return m.state.Mode
}

// Gun returns the weapon state of one side.
func (m *Match) Gun(side Side) GunState {
	return m.guns[side]
}

// Freeze returns the freeze state of one side.
func (m *Match) Freeze(side Side) FreezeState {
	return m.freezes[side]
}

// Ball returns the ball.
func (m *Match) Ball() Ball {
	return m.ball
}

// Paddle returns one paddle.
func (m *Match) Paddle(side Side) Paddle {
	return m.paddles[side]
}

// Bullets returns a copy of the in-flight bullets.
func (m *Match) Bullets() []Bullet {
	out := make([]Bullet, len(m.bullets))
	copy(out, m.bullets)
	return out
}

// Played returns the running time of the match up to now.
func (m *Match) Played(now time.Time) time.Duration {
	if m.state.Phase == PhaseRunning {
		return m.played + now.Sub(m.resumedAt)
	}
	return m.played
}

// Frame returns the render view of the current state.
func (m *Match) Frame() Frame {
	return Frame{
		ArenaW:      m.cfg.Arena.Width,
		ArenaH:      m.cfg.Arena.Height,
		PaddleW:     m.cfg.Paddle.Width,
		PaddleH:     m.cfg.Paddle.Height,
		Margin:      m.cfg.Paddle.Margin,
		BallRadius:  m.cfg.Ball.Radius,
		Ball:        m.ball,
		LeftY:       m.paddles[Left].Y,
		RightY:      m.paddles[Right].Y,
		Bullets:     m.Bullets(),
		LeftFrozen:  m.freezes[Left].Frozen,
		RightFrozen: m.freezes[Right].Frozen,
		State:       m.state,
	}
}

// Render hands the current frame to r.
func (m *Match) Render(r Renderer) {
	r.Draw(m.Frame())
}

// serve puts the ball at the center with a random diagonal direction.
// Each axis gets its own draw.
func (m *Match) serve() {
	speed := m.cfg.Ball.Speed
	m.ball = Ball{
		X:  m.cfg.Arena.Width / 2,
		Y:  m.cfg.Arena.Height / 2,
		VX: randomSign(m.rng) * speed,
		VY: randomSign(m.rng) * speed,
	}
}

func randomSign(rng *rand.Rand) float64 {
	if rng.Float64() > 0.5 {
		return 1
	}
	return -1
}

// expire applies every timer due at now.
func (m *Match) expire(now time.Time) {
	for _, key := range m.timers.Advance(now) {
		switch key.kind {
		case effectGunCooldown:
			if m.guns[key.side].Ready {
				continue
			}
			m.guns[key.side] = GunState{Ready: true}
			m.emit(EventGunReady, key.side, now)
		case effectFreeze:
			if !m.freezes[key.side].Frozen {
				continue
			}
			m.freezes[key.side] = FreezeState{}
			m.emit(EventUnfrozen, key.side, now)
		}
	}
}

// shiftTimers pushes every pending deadline later by d.
func (m *Match) shiftTimers(d time.Duration) {
	if d <= 0 {
		return
	}
	m.timers.Shift(d)
	for i := range m.guns {
		if !m.guns[i].Ready {
			m.guns[i].ReadyAt = m.guns[i].ReadyAt.Add(d)
		}
		if m.freezes[i].Frozen {
			m.freezes[i].ExpiresAt = m.freezes[i].ExpiresAt.Add(d)
		}
	}
}

func (m *Match) emit(kind EventKind, side Side, at time.Time) {
	m.sink.Notify(Event{
		Kind:       kind,
		Side:       side,
		Mode:       m.state.Mode,
		LeftScore:  m.state.LeftScore,
		RightScore: m.state.RightScore,
		At:         at,
		Played:     m.Played(at),
	})
}
