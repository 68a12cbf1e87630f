package pong

// steerAI moves the right paddle toward the ball with a random aim error.
// A frozen paddle does not move and does not draw from the RNG.
func (m *Match) steerAI() {
	if m.freezes[Right].Frozen {
		return
	}
	ai := m.cfg.AI
	aim := (m.rng.Float64() - 0.5) * 2 * ai.Jitter
	center := m.span(Right).Center()
	m.paddles[Right].Y += aiDelta(center, m.ball.Y, aim, ai.DeadZone, m.cfg.Paddle.Speed*ai.SpeedFactor)
}

// aiDelta returns the paddle movement for one tick. The paddle stays put
// while its center is within deadZone of the aimed-at point.
func aiDelta(center, ballY, aim, deadZone, speed float64) float64 {
	switch {
	case center < ballY-deadZone+aim:
		return speed
	case center > ballY+deadZone+aim:
		return -speed
	default:
		return 0
	}
}
