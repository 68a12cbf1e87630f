// Package core provides fundamental types and utilities shared by the simulation
// and the terminal platform. It has no external dependencies (especially no
// Bubble Tea) so game logic stays pure and testable.
package core

// Vec is a point or velocity in arena units.
type Vec struct {
	X, Y float64
}

// Add returns v translated by d.
func (v Vec) Add(d Vec) Vec {
	return Vec{X: v.X + d.X, Y: v.Y + d.Y}
}

// Span is an open vertical interval (Top, Top+Height) in arena units.
// Paddles use it for hit tests: a point exactly on an edge does not hit.
type Span struct {
	Top    float64
	Height float64
}

// Bottom returns the lower edge of the span.
func (s Span) Bottom() float64 {
	return s.Top + s.Height
}

// Center returns the vertical midpoint of the span.
func (s Span) Center() float64 {
	return s.Top + s.Height/2
}

// ContainsOpen reports whether y lies strictly inside the span.
func (s Span) ContainsOpen(y float64) bool {
	return y > s.Top && y < s.Bottom()
}

// Rect represents an axis-aligned box in screen cells.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Contains returns true if the point (x, y) is inside this rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// Scaler maps arena coordinates onto a grid of screen cells.
type Scaler struct {
	ArenaW, ArenaH float64
	Cols, Rows     int
}

// Cell returns the screen cell holding the arena point (x, y).
// Results are clamped to the grid so edge points stay visible.
func (s Scaler) Cell(x, y float64) (int, int) {
	if s.ArenaW <= 0 || s.ArenaH <= 0 || s.Cols <= 0 || s.Rows <= 0 {
		return 0, 0
	}
	cx := int(x / s.ArenaW * float64(s.Cols))
	cy := int(y / s.ArenaH * float64(s.Rows))
	return Clamp(cx, 0, s.Cols-1), Clamp(cy, 0, s.Rows-1)
}

// RowSpan returns the number of rows an arena height h covers, at least 1.
func (s Scaler) RowSpan(h float64) int {
	if s.ArenaH <= 0 {
		return 1
	}
	n := int(h/s.ArenaH*float64(s.Rows) + 0.5)
	if n < 1 {
		return 1
	}
	return n
}
