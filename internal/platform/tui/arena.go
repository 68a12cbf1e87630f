package tui

import (
	"github.com/vovakirdan/gunpong/internal/core"
	"github.com/vovakirdan/gunpong/internal/pong"
)

// Arena glyphs
const (
	PaddleChar = '█'
	BallChar   = '●'
	BulletChar = '•'
	NetChar    = '┆'
)

// ArenaRenderer draws frames into a boxed area of a screen buffer.
// The arena is scaled to fit the box interior, so any terminal size works.
type ArenaRenderer struct {
	screen *core.Screen
	area   core.Rect
}

var _ pong.Renderer = (*ArenaRenderer)(nil)

// NewArenaRenderer creates a renderer drawing into area of screen.
func NewArenaRenderer(screen *core.Screen, area core.Rect) *ArenaRenderer {
	return &ArenaRenderer{screen: screen, area: area}
}

// SetArea moves the box, e.g. after a resize.
func (r *ArenaRenderer) SetArea(area core.Rect) {
	r.area = area
}

// Inner returns the box interior the arena is scaled onto.
func (r *ArenaRenderer) Inner() core.Rect {
	return core.NewRect(r.area.X+1, r.area.Y+1, r.area.W-2, r.area.H-2)
}

// Draw implements pong.Renderer.
func (r *ArenaRenderer) Draw(f pong.Frame) {
	if r.area.W < 3 || r.area.H < 3 {
		return
	}
	inner := r.Inner()
	sc := core.Scaler{ArenaW: f.ArenaW, ArenaH: f.ArenaH, Cols: inner.W, Rows: inner.H}

	r.screen.DrawRect(inner, ' ', core.ColorDefault)
	r.screen.DrawBox(r.area, core.ColorGray)

	// Net
	netX := inner.X + inner.W/2
	for y := 0; y < inner.H; y += 2 {
		r.screen.SetColored(netX, inner.Y+y, NetChar, core.ColorGray)
	}

	for _, b := range f.Bullets {
		cx, cy := sc.Cell(b.X, b.Y)
		r.screen.SetColored(inner.X+cx, inner.Y+cy, BulletChar, core.ColorYellow)
	}

	r.drawPaddle(f, sc, inner, pong.Left, f.Margin+f.PaddleW/2)
	r.drawPaddle(f, sc, inner, pong.Right, f.ArenaW-f.Margin-f.PaddleW/2)

	bx, by := sc.Cell(f.Ball.X, f.Ball.Y)
	r.screen.SetColored(inner.X+bx, inner.Y+by, BallChar, core.ColorWhite)
}

func (r *ArenaRenderer) drawPaddle(f pong.Frame, sc core.Scaler, inner core.Rect, side pong.Side, centerX float64) {
	color := core.ColorGreen
	if side == pong.Right {
		color = core.ColorRed
	}
	if f.Frozen(side) {
		color = core.ColorCyan
	}

	cx, top := sc.Cell(centerX, f.PaddleY(side))
	rows := sc.RowSpan(f.PaddleH)
	for i := range rows {
		y := top + i
		if y >= inner.H {
			break
		}
		r.screen.SetColored(inner.X+cx, inner.Y+y, PaddleChar, color)
	}
}
