package overlay

import (
	"time"

	"github.com/dshills/proptrack/internal/renderer/backend"
	"github.com/dshills/proptrack/internal/renderer/core"
)

// Window is an always-on-top, alpha-blended surface anchored at a logical
// position. Position, size and hit rectangles are logical cells; the scale
// factor is applied only when compositing and hit testing device points.
type Window struct {
	id       string
	priority Priority

	pos    core.ScreenPos
	canvas *Canvas
	alpha  float64
	scale  int

	closeRect core.ScreenRect
	moveRect  core.ScreenRect

	visible    bool
	mouseState MouseState

	anim   *animationRun
	onDone func()
}

type animationRun struct {
	desc     Animation
	start    time.Time
	progress float64
}

// NewWindow creates a hidden, fully opaque window.
func NewWindow(id string, width, height int) *Window {
	return &Window{
		id:       id,
		priority: PriorityNormal,
		canvas:   NewCanvas(width, height),
		alpha:    1,
		scale:    1,
	}
}

// ID returns the window identifier.
func (w *Window) ID() string { return w.id }

// Priority returns the stacking priority.
func (w *Window) Priority() Priority { return w.priority }

// SetPriority changes the stacking priority.
func (w *Window) SetPriority(p Priority) { w.priority = p }

// Canvas returns the drawing surface of the window.
func (w *Window) Canvas() *Canvas { return w.canvas }

// Position returns the logical top-left corner.
func (w *Window) Position() core.ScreenPos { return w.pos }

// SetPosition moves the window without animation.
func (w *Window) SetPosition(pos core.ScreenPos) { w.pos = pos }

// Size returns the logical size.
func (w *Window) Size() (width, height int) { return w.canvas.Size() }

// Resize changes the logical size. Canvas content is discarded.
func (w *Window) Resize(width, height int) {
	cw, ch := w.canvas.Size()
	if cw == width && ch == height {
		return
	}
	w.canvas.Resize(width, height)
}

// Rect returns the logical screen rectangle covered by the window.
func (w *Window) Rect() core.ScreenRect {
	width, height := w.canvas.Size()
	return core.RectAt(w.pos, width, height)
}

// DeviceRect returns the rectangle covered on the device surface.
func (w *Window) DeviceRect() core.ScreenRect {
	width, height := w.canvas.Size()
	return core.RectAt(w.pos.Scale(w.scale), width*w.scale, height*w.scale)
}

// Alpha returns the global opacity in [0, 1].
func (w *Window) Alpha() float64 { return w.alpha }

// SetAlpha sets the global opacity, clamped to [0, 1].
func (w *Window) SetAlpha(alpha float64) { w.alpha = core.ClampAlpha(alpha) }

// ScaleFactor returns the device cells per logical cell.
func (w *Window) ScaleFactor() int { return w.scale }

// SetScaleFactor sets the device cells per logical cell.
func (w *Window) SetScaleFactor(scale int) { w.scale = max(scale, 1) }

// SetCloseRect sets the close hit rectangle in window-local logical cells.
func (w *Window) SetCloseRect(r core.ScreenRect) { w.closeRect = r }

// CloseRect returns the close hit rectangle.
func (w *Window) CloseRect() core.ScreenRect { return w.closeRect }

// SetMoveRect sets the move (drag) hit rectangle in window-local logical cells.
func (w *Window) SetMoveRect(r core.ScreenRect) { w.moveRect = r }

// MoveRect returns the move hit rectangle.
func (w *Window) MoveRect() core.ScreenRect { return w.moveRect }

// Show makes the window visible.
func (w *Window) Show() { w.visible = true }

// Hide hides the window.
func (w *Window) Hide() { w.visible = false }

// IsVisible returns true if the window is shown.
func (w *Window) IsVisible() bool { return w.visible }

// MouseState returns the mouse handling state.
func (w *Window) MouseState() MouseState { return w.mouseState }

// SetMouseState enables or disables pointer interaction.
func (w *Window) SetMouseState(s MouseState) { w.mouseState = s }

// ToLogical converts a device point to a logical point.
func (w *Window) ToLogical(device core.ScreenPos) core.ScreenPos {
	return core.ScreenPos{Row: floorDiv(device.Row, w.scale), Col: floorDiv(device.Col, w.scale)}
}

// HitTest reports which part of the window lies under the device point.
func (w *Window) HitTest(device core.ScreenPos) HitArea {
	if !w.visible || w.mouseState == MouseDisabled {
		return HitNone
	}
	logical := w.ToLogical(device)
	local := core.ScreenPos{Row: logical.Row - w.pos.Row, Col: logical.Col - w.pos.Col}
	if w.canvas.Cell(local.Row, local.Col).Rune == 0 {
		return HitNone
	}
	switch {
	case w.closeRect.Contains(local):
		return HitClose
	case w.moveRect.Contains(local):
		return HitMove
	default:
		return HitBody
	}
}

// Composite draws the window onto dst when it is visible.
func (w *Window) Composite(dst backend.Backend) {
	if !w.visible {
		return
	}
	w.canvas.Composite(dst, w.pos, w.alpha, w.scale)
}

// OnAnimationDone registers a callback invoked when an animation completes.
func (w *Window) OnAnimationDone(fn func()) { w.onDone = fn }

// StartAnimation begins an animation at now, replacing any running one.
// The first frame is applied immediately. A non-positive duration applies
// the final frame and completes at once.
func (w *Window) StartAnimation(a Animation, now time.Time) error {
	if err := a.Validate(); err != nil {
		return err
	}
	w.anim = &animationRun{desc: a, start: now}
	w.Tick(now)
	return nil
}

// Tick advances the running animation and reports whether it is still running.
func (w *Window) Tick(now time.Time) bool {
	run := w.anim
	if run == nil {
		return false
	}
	progress := 1.0
	if run.desc.Duration > 0 {
		progress = core.ClampAlpha(float64(now.Sub(run.start)) / float64(run.desc.Duration))
	}
	run.progress = progress
	w.applyFrame(run.desc, progress)
	if progress < 1 {
		return true
	}
	// A Draw callback may have started a new animation.
	if w.anim == run {
		w.anim = nil
		if w.onDone != nil {
			w.onDone()
		}
	}
	return w.anim != nil
}

// StopAnimation stops the running animation, leaving the window at its last
// rendered position and alpha.
func (w *Window) StopAnimation() {
	w.anim = nil
}

// IsAnimating returns true while an animation is running.
func (w *Window) IsAnimating() bool { return w.anim != nil }

// AnimationProgress returns the progress of the running animation, or 0.
func (w *Window) AnimationProgress() float64 {
	if w.anim == nil {
		return 0
	}
	return w.anim.progress
}

func (w *Window) applyFrame(a Animation, progress float64) {
	if a.Fade != nil {
		w.SetAlpha(a.Fade.ValueAt(progress))
	}
	if a.Move != nil {
		rect := a.Move.Start.Lerp(a.Move.End, progress)
		w.pos = rect.TopLeft()
		if !rect.IsEmpty() {
			w.Resize(rect.Width(), rect.Height())
		}
	}
	if a.Fade != nil && a.Fade.Draw != nil {
		a.Fade.Draw(w.alpha)
	}
	if a.Move != nil && a.Move.Draw != nil {
		a.Move.Draw(w.Rect())
	}
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
