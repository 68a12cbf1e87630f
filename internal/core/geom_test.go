package core

import "testing"

func TestSpanContainsOpen(t *testing.T) {
	s := Span{Top: 210, Height: 80}

	tests := []struct {
		name     string
		y        float64
		expected bool
	}{
		{"center", 250, true},
		{"just inside top", 210.5, true},
		{"top edge (exclusive)", 210, false},
		{"bottom edge (exclusive)", 290, false},
		{"above", 100, false},
		{"below", 400, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := s.ContainsOpen(tc.y)
			if result != tc.expected {
				t.Errorf("ContainsOpen(%v) = %v, expected %v", tc.y, result, tc.expected)
			}
		})
	}

	if s.Bottom() != 290 {
		t.Errorf("Bottom() = %v, expected 290", s.Bottom())
	}
	if s.Center() != 250 {
		t.Errorf("Center() = %v, expected 250", s.Center())
	}
}

func TestVecAdd(t *testing.T) {
	v := Vec{X: 795, Y: 250}.Add(Vec{X: 6, Y: -6})
	if v.X != 801 || v.Y != 244 {
		t.Errorf("Add() = %+v, expected {801 244}", v)
	}
}

func TestRectContains(t *testing.T) {
	r := NewRect(10, 10, 20, 15)

	tests := []struct {
		name     string
		x, y     int
		expected bool
	}{
		{"inside", 15, 15, true},
		{"top-left corner", 10, 10, true},
		{"bottom-right edge (exclusive)", 30, 25, false},
		{"outside left", 5, 15, false},
		{"outside right", 35, 15, false},
		{"outside top", 15, 5, false},
		{"outside bottom", 15, 30, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := r.Contains(tc.x, tc.y)
			if result != tc.expected {
				t.Errorf("Contains(%d, %d) = %v, expected %v", tc.x, tc.y, result, tc.expected)
			}
		})
	}
}

func TestRectEdges(t *testing.T) {
	r := NewRect(5, 10, 20, 15)

	if r.Right() != 25 {
		t.Errorf("Right() = %d, expected 25", r.Right())
	}
	if r.Bottom() != 25 {
		t.Errorf("Bottom() = %d, expected 25", r.Bottom())
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, min, max, expected int
	}{
		{5, 0, 10, 5},   // within range
		{-5, 0, 10, 0},  // below min
		{15, 0, 10, 10}, // above max
		{0, 0, 10, 0},   // at min
		{10, 0, 10, 10}, // at max
	}

	for _, tc := range tests {
		result := Clamp(tc.val, tc.min, tc.max)
		if result != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.min, tc.max, result, tc.expected)
		}
	}
}

func TestClampF(t *testing.T) {
	tests := []struct {
		val, min, max, expected float64
	}{
		{5.5, 0.0, 10.0, 5.5},
		{-9, 0.0, 420.0, 0.0},
		{429, 0.0, 420.0, 420.0},
	}

	for _, tc := range tests {
		result := ClampF(tc.val, tc.min, tc.max)
		if result != tc.expected {
			t.Errorf("ClampF(%f, %f, %f) = %f, expected %f", tc.val, tc.min, tc.max, result, tc.expected)
		}
	}
}

func TestScalerCell(t *testing.T) {
	s := Scaler{ArenaW: 800, ArenaH: 500, Cols: 80, Rows: 25}

	tests := []struct {
		name   string
		x, y   float64
		cx, cy int
	}{
		{"origin", 0, 0, 0, 0},
		{"center", 400, 250, 40, 12},
		{"far edge clamps", 800, 500, 79, 24},
		{"negative clamps", -30, -5, 0, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cx, cy := s.Cell(tc.x, tc.y)
			if cx != tc.cx || cy != tc.cy {
				t.Errorf("Cell(%v, %v) = (%d, %d), expected (%d, %d)", tc.x, tc.y, cx, cy, tc.cx, tc.cy)
			}
		})
	}

	if got := s.RowSpan(80); got != 4 {
		t.Errorf("RowSpan(80) = %d, expected 4", got)
	}
	if got := s.RowSpan(1); got != 1 {
		t.Errorf("RowSpan(1) = %d, expected 1", got)
	}
}
