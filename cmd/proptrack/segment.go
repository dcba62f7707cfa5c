package main

import (
	"math"

	"github.com/dshills/proptrack/internal/property"
	"github.com/dshills/proptrack/internal/renderer/core"
)

// cellAspect is the height of a terminal cell in units of its width.
const cellAspect = 2.0

// segment is the measured line from the origin to the end point, in cell
// widths with y growing downward.
type segment struct {
	x0, y0 float64
	x1, y1 float64
}

func (s *segment) setOrigin(pos core.ScreenPos) {
	s.x0, s.y0 = float64(pos.Col), float64(pos.Row)*cellAspect
	s.x1, s.y1 = s.x0, s.y0
}

func (s *segment) setEnd(pos core.ScreenPos) {
	s.x1, s.y1 = float64(pos.Col), float64(pos.Row)*cellAspect
}

func (s *segment) origin() core.ScreenPos {
	return core.NewScreenPos(int(math.Round(s.y0/cellAspect)), int(math.Round(s.x0)))
}

func (s *segment) end() core.ScreenPos {
	return core.NewScreenPos(int(math.Round(s.y1/cellAspect)), int(math.Round(s.x1)))
}

func (s *segment) length() float64 {
	return math.Hypot(s.x1-s.x0, s.y1-s.y0)
}

// angle returns the direction in degrees, counter-clockwise from east.
func (s *segment) angle() float64 {
	if s.length() == 0 {
		return 0
	}
	deg := math.Atan2(s.y0-s.y1, s.x1-s.x0) * 180 / math.Pi
	if deg < 0 {
		deg += 360
	}
	return deg
}

func (s *segment) setPolar(length, deg float64) {
	length = max(length, 0)
	rad := deg * math.Pi / 180
	s.x1 = s.x0 + length*math.Cos(rad)
	s.y1 = s.y0 - length*math.Sin(rad)
}

// points returns the cells covered by the segment.
func (s *segment) points() []core.ScreenPos {
	a, b := s.origin(), s.end()
	steps := max(abs(b.Row-a.Row), abs(b.Col-a.Col))
	if steps == 0 {
		return []core.ScreenPos{a}
	}
	pts := make([]core.ScreenPos, 0, steps+1)
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		pts = append(pts, core.NewScreenPos(
			a.Row+int(math.Round(t*float64(b.Row-a.Row))),
			a.Col+int(math.Round(t*float64(b.Col-a.Col)))))
	}
	return pts
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// lengthBinding edits the segment length, keeping its direction.
type lengthBinding struct{ s *segment }

func (b lengthBinding) GetValue() float64 { return b.s.length() }

func (b lengthBinding) SetValue(v float64, hint property.Hint) {
	if hint.IsRelative() {
		v += b.s.length()
	}
	b.s.setPolar(v, b.s.angle())
}

// angleBinding edits the segment direction, keeping its length.
type angleBinding struct{ s *segment }

func (b angleBinding) GetValue() float64 { return b.s.angle() }

func (b angleBinding) SetValue(v float64, hint property.Hint) {
	if hint.IsRelative() {
		v += b.s.angle()
	}
	b.s.setPolar(b.s.length(), math.Mod(v, 360))
}
