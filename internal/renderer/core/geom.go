package core

// ScreenPos represents a position in logical cells (0-indexed).
type ScreenPos struct {
	Row int
	Col int
}

// NewScreenPos creates a screen position.
func NewScreenPos(row, col int) ScreenPos {
	return ScreenPos{Row: row, Col: col}
}

// Add returns a new position offset by the given delta.
func (p ScreenPos) Add(dRow, dCol int) ScreenPos {
	return ScreenPos{Row: p.Row + dRow, Col: p.Col + dCol}
}

// Scale multiplies both coordinates by factor.
func (p ScreenPos) Scale(factor int) ScreenPos {
	return ScreenPos{Row: p.Row * factor, Col: p.Col * factor}
}

// ScreenRect represents a rectangular region. Bottom and Right are exclusive.
type ScreenRect struct {
	Top    int
	Left   int
	Bottom int
	Right  int
}

// RectFromSize creates a rectangle from position and size.
func RectFromSize(top, left, height, width int) ScreenRect {
	return ScreenRect{Top: top, Left: left, Bottom: top + height, Right: left + width}
}

// RectAt creates a rectangle with its top-left corner at pos.
func RectAt(pos ScreenPos, width, height int) ScreenRect {
	return RectFromSize(pos.Row, pos.Col, height, width)
}

// Width returns the width of the rectangle.
func (r ScreenRect) Width() int {
	if r.Right <= r.Left {
		return 0
	}
	return r.Right - r.Left
}

// Height returns the height of the rectangle.
func (r ScreenRect) Height() int {
	if r.Bottom <= r.Top {
		return 0
	}
	return r.Bottom - r.Top
}

// IsEmpty returns true if the rectangle has no area.
func (r ScreenRect) IsEmpty() bool {
	return r.Width() <= 0 || r.Height() <= 0
}

// TopLeft returns the top-left corner.
func (r ScreenRect) TopLeft() ScreenPos {
	return ScreenPos{Row: r.Top, Col: r.Left}
}

// Contains returns true if pos is within the rectangle.
func (r ScreenRect) Contains(pos ScreenPos) bool {
	return pos.Row >= r.Top && pos.Row < r.Bottom &&
		pos.Col >= r.Left && pos.Col < r.Right
}

// ContainsRect returns true if other is entirely within r.
func (r ScreenRect) ContainsRect(other ScreenRect) bool {
	return other.Top >= r.Top && other.Bottom <= r.Bottom &&
		other.Left >= r.Left && other.Right <= r.Right
}

// Intersects returns true if two rectangles overlap.
func (r ScreenRect) Intersects(other ScreenRect) bool {
	return r.Left < other.Right && r.Right > other.Left &&
		r.Top < other.Bottom && r.Bottom > other.Top
}

// Translate moves the rectangle by the given delta.
func (r ScreenRect) Translate(dRow, dCol int) ScreenRect {
	return ScreenRect{
		Top:    r.Top + dRow,
		Left:   r.Left + dCol,
		Bottom: r.Bottom + dRow,
		Right:  r.Right + dCol,
	}
}

// Expand returns a rectangle grown by n cells on every side.
func (r ScreenRect) Expand(n int) ScreenRect {
	return ScreenRect{Top: r.Top - n, Left: r.Left - n, Bottom: r.Bottom + n, Right: r.Right + n}
}

// Lerp interpolates between r and other. t is clamped to [0, 1].
func (r ScreenRect) Lerp(other ScreenRect, t float64) ScreenRect {
	t = ClampAlpha(t)
	mix := func(a, b int) int {
		v := float64(a) + (float64(b)-float64(a))*t
		if v < 0 {
			return int(v - 0.5)
		}
		return int(v + 0.5)
	}
	return ScreenRect{
		Top:    mix(r.Top, other.Top),
		Left:   mix(r.Left, other.Left),
		Bottom: mix(r.Bottom, other.Bottom),
		Right:  mix(r.Right, other.Right),
	}
}

// Equals returns true if two rectangles are identical.
func (r ScreenRect) Equals(other ScreenRect) bool {
	return r == other
}
