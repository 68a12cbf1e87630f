package pong

import (
	"fmt"
	"time"

	"github.com/vovakirdan/gunpong/internal/core"
)

// step advances a running match by one tick.
func (m *Match) step(now time.Time, in core.InputSnapshot) {
	m.movePaddles(in)
	if in.Consume(core.ActionLeftFire) {
		m.Shoot(Left, now)
	}
	// The AI never fires
	if m.state.Mode == OneVsOne && in.Consume(core.ActionRightFire) {
		m.Shoot(Right, now)
	}
	m.moveBall()
	m.moveBullets(now)
}

// movePaddles applies held movement keys, or the AI for the right paddle.
// Frozen paddles ignore movement.
func (m *Match) movePaddles(in core.InputSnapshot) {
	m.movePlayer(Left, in, core.ActionLeftUp, core.ActionLeftDown)
	if m.state.Mode == OneVsAI {
		m.steerAI()
	} else {
		m.movePlayer(Right, in, core.ActionRightUp, core.ActionRightDown)
	}
	m.clampPaddle(Left)
	m.clampPaddle(Right)
}

func (m *Match) movePlayer(side Side, in core.InputSnapshot, up, down core.Action) {
	if m.freezes[side].Frozen {
		return
	}
	if in.Held(up) {
		m.paddles[side].Y -= m.cfg.Paddle.Speed
	}
	if in.Held(down) {
		m.paddles[side].Y += m.cfg.Paddle.Speed
	}
}

func (m *Match) clampPaddle(side Side) {
	m.paddles[side].Y = core.ClampF(m.paddles[side].Y, 0, m.cfg.Arena.Height-m.cfg.Paddle.Height)
}

// span returns the vertical extent of a paddle.
func (m *Match) span(side Side) core.Span {
	return core.Span{Top: m.paddles[side].Y, Height: m.cfg.Paddle.Height}
}

// face returns the x coordinate of a paddle's inner face.
func (m *Match) face(side Side) float64 {
	if side == Left {
		return m.cfg.Paddle.Margin + m.cfg.Paddle.Width
	}
	return m.cfg.Arena.Width - m.cfg.Paddle.Margin - m.cfg.Paddle.Width
}

// Muzzle returns where a side's bullets spawn.
func (m *Match) Muzzle(side Side) core.Vec {
	return core.Vec{X: m.face(side), Y: m.span(side).Center()}
}

// Shoot fires a bullet from side if its gun is ready and starts the
// cooldown. It reports whether a bullet was fired.
func (m *Match) Shoot(side Side, now time.Time) bool {
	gun := &m.guns[side]
	if !gun.Ready {
		return false
	}

	muzzle := m.Muzzle(side)
	vx := m.cfg.Bullet.Speed
	if side == Right {
		vx = -vx
	}
	m.bullets = append(m.bullets, Bullet{X: muzzle.X, Y: muzzle.Y, VX: vx, From: side})

	gun.Ready = false
	gun.ReadyAt = now.Add(m.cfg.Timers.GunCooldown)
	m.timers.Arm(effectKey{side: side, kind: effectGunCooldown}, gun.ReadyAt)
	m.emit(EventShotFired, side, now)
	return true
}

// moveBall integrates the ball and resolves walls, paddles and goals.
func (m *Match) moveBall() {
	b := &m.ball
	r := m.cfg.Ball.Radius
	b.X += b.VX
	b.Y += b.VY

	// Walls flip direction without correcting position
	if b.Y-r < 0 || b.Y+r > m.cfg.Arena.Height {
		b.VY = -b.VY
	}

	if b.X-r < m.face(Left) && m.span(Left).ContainsOpen(b.Y) {
		b.VX = -b.VX
		b.X = m.face(Left) + r
		m.emit(EventPaddleHit, Left, m.now)
	}
	if b.X+r > m.face(Right) && m.span(Right).ContainsOpen(b.Y) {
		b.VX = -b.VX
		b.X = m.face(Right) - r
		m.emit(EventPaddleHit, Right, m.now)
	}

	// RecordGoal may serve a new ball, so each check reads the current one
	if m.ball.X < 0 {
		m.emit(EventScore, Right, m.now)
		m.RecordGoal(Right)
	}
	if m.ball.X > m.cfg.Arena.Width {
		m.emit(EventScore, Left, m.now)
		m.RecordGoal(Left)
	}
}

// moveBullets integrates bullets, freezing any paddle they hit.
// The slice is filtered in place.
func (m *Match) moveBullets(now time.Time) {
	kept := m.bullets[:0]
	for _, b := range m.bullets {
		b.X += b.VX
		target := b.From.Opposite()
		if m.bulletHits(b, target) {
			m.freeze(target, now)
			continue
		}
		if b.X < 0 || b.X > m.cfg.Arena.Width {
			continue
		}
		kept = append(kept, b)
	}
	clear(m.bullets[len(kept):])
	m.bullets = kept
}

func (m *Match) bulletHits(b Bullet, target Side) bool {
	tol := m.cfg.Bullet.HitTolerance
	if !m.span(target).ContainsOpen(b.Y) {
		return false
	}
	if target == Right {
		return b.X+tol >= m.face(Right)
	}
	return b.X-tol <= m.face(Left)
}

// freeze disables a paddle for the freeze duration. Re-freezing an already
// frozen paddle re-arms the timer under the registry's policy.
func (m *Match) freeze(side Side, now time.Time) {
	key := effectKey{side: side, kind: effectFreeze}
	m.timers.Arm(key, now.Add(m.cfg.Timers.Freeze))
	// Under the legacy policy an older hit may thaw the paddle first
	expires, _ := m.timers.Deadline(key)
	m.freezes[side] = FreezeState{Frozen: true, ExpiresAt: expires}
	m.emit(EventFrozen, side, now)
}

// assertInvariants panics on states the step rules make impossible.
func (m *Match) assertInvariants() {
	maxY := m.cfg.Arena.Height - m.cfg.Paddle.Height
	for _, p := range m.paddles {
		if p.Y < 0 || p.Y > maxY {
			panic(fmt.Sprintf("pong: invariant violated: %s paddle y=%v outside [0,%v]", p.Side, p.Y, maxY))
		}
	}
	for _, b := range m.bullets {
		if b.X < 0 || b.X > m.cfg.Arena.Width {
			panic(fmt.Sprintf("pong: invariant violated: bullet x=%v outside arena", b.X))
		}
	}
	win := m.cfg.Match.WinScore
	if m.state.LeftScore > win || m.state.RightScore > win {
		panic(fmt.Sprintf("pong: invariant violated: score %d:%d beyond win score %d", m.state.LeftScore, m.state.RightScore, win))
	}
}
