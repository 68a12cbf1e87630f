package pong

// Frame is a read-only view of everything a renderer draws.
type Frame struct {
	ArenaW, ArenaH float64
	PaddleW        float64
	PaddleH        float64
	Margin         float64
	BallRadius     float64

	Ball    Ball
	LeftY   float64
	RightY  float64
	Bullets []Bullet // Copy, safe to keep

	LeftFrozen  bool
	RightFrozen bool
	State       MatchState
}

// PaddleY returns the top edge of one paddle.
func (f Frame) PaddleY(side Side) float64 {
	if side == Left {
		return f.LeftY
	}
	return f.RightY
}

// Frozen reports whether a paddle is frozen.
func (f Frame) Frozen(side Side) bool {
	if side == Left {
		return f.LeftFrozen
	}
	return f.RightFrozen
}

// Renderer draws frames. Draw is called once per rendered frame.
type Renderer interface {
	Draw(f Frame)
}
