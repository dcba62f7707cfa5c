package overlay

import "github.com/dshills/proptrack/internal/renderer/core"

// DefaultPointerGap is the clearance kept around the pointer, in cells.
const DefaultPointerGap = 1

// Placement lists what an ideally placed window must not cover.
type Placement struct {
	// Pointer is the current pointer position, avoided when HasPointer is set.
	Pointer    core.ScreenPos
	HasPointer bool

	// Gap is the clearance kept around the pointer.
	Gap int

	// Obstructions are fixed chrome rectangles to keep clear of.
	Obstructions []core.ScreenRect

	// Bounds confines the window. An empty rectangle means unbounded.
	Bounds core.ScreenRect
}

// IdealPosition nudges a width x height window from desired so that it does
// not sit under the pointer or over any obstruction, staying inside Bounds.
// When no candidate is clear, the clamped desired position is returned.
func IdealPosition(desired core.ScreenPos, width, height int, p Placement) core.ScreenPos {
	avoid := make([]core.ScreenRect, 0, len(p.Obstructions)+1)
	if p.HasPointer {
		avoid = append(avoid, core.RectAt(p.Pointer, 1, 1).Expand(max(p.Gap, 0)))
	}
	avoid = append(avoid, p.Obstructions...)

	for _, cand := range candidates(desired, width, height, p, avoid) {
		pos := clampTo(cand, width, height, p.Bounds)
		if isClear(core.RectAt(pos, width, height), avoid) {
			return pos
		}
	}
	return clampTo(desired, width, height, p.Bounds)
}

func candidates(desired core.ScreenPos, width, height int, p Placement, avoid []core.ScreenRect) []core.ScreenPos {
	out := []core.ScreenPos{desired}
	if p.HasPointer {
		gap := max(p.Gap, 0) + 1
		ptr := p.Pointer
		out = append(out,
			core.ScreenPos{Row: ptr.Row + gap, Col: ptr.Col + gap},
			core.ScreenPos{Row: ptr.Row - gap - height + 1, Col: ptr.Col + gap},
			core.ScreenPos{Row: ptr.Row + gap, Col: ptr.Col - gap - width + 1},
			core.ScreenPos{Row: ptr.Row - gap - height + 1, Col: ptr.Col - gap - width + 1},
		)
	}
	rect := core.RectAt(desired, width, height)
	for _, a := range avoid {
		if !rect.Intersects(a) {
			continue
		}
		out = append(out,
			core.ScreenPos{Row: a.Bottom, Col: desired.Col},
			core.ScreenPos{Row: desired.Row, Col: a.Right},
			core.ScreenPos{Row: a.Top - height, Col: desired.Col},
			core.ScreenPos{Row: desired.Row, Col: a.Left - width},
		)
	}
	return out
}

func isClear(r core.ScreenRect, avoid []core.ScreenRect) bool {
	for _, a := range avoid {
		if r.Intersects(a) {
			return false
		}
	}
	return true
}

func clampTo(pos core.ScreenPos, width, height int, bounds core.ScreenRect) core.ScreenPos {
	if bounds.IsEmpty() {
		return pos
	}
	pos.Col = max(min(pos.Col, bounds.Right-width), bounds.Left)
	pos.Row = max(min(pos.Row, bounds.Bottom-height), bounds.Top)
	return pos
}
