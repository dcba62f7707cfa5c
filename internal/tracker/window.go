package tracker

import (
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/dshills/proptrack/internal/renderer/backend"
	"github.com/dshills/proptrack/internal/renderer/core"
	"github.com/dshills/proptrack/internal/renderer/overlay"
	"github.com/dshills/proptrack/internal/tracker/field"
)

type animKind uint8

const (
	animNone animKind = iota
	animFade
	animMove
)

type rowSpan struct {
	item   *field.Item
	top    int
	height int
}

// layout is the geometry of the last rendered frame, in window cells.
type layout struct {
	cols   field.ColumnWidths
	rows   []rowSpan
	width  int
	height int
	left   int
	frame  bool
}

func (t *Tracker) computeLayout() layout {
	theme := t.EffectiveTheme()
	names := t.showNames()

	var lay layout
	lay.frame = theme.DrawFrame
	frame := 0
	if lay.frame {
		frame = 1
	}
	lay.left = frame
	if !theme.SmallFont {
		lay.left++
	}

	row := frame
	for it := range t.EnumerateVisibleItems() {
		lay.cols = lay.cols.Merge(it.ColumnWidths(names))
		h := it.Height()
		lay.rows = append(lay.rows, rowSpan{item: it, top: row, height: h})
		row += h
	}
	lay.width = max(lay.cols.RowWidth(), 1) + 2*lay.left
	if lay.frame {
		lay.width = max(lay.width, 4)
	}
	lay.height = max(row+frame, 1)
	return lay
}

// render lays out the visible rows and paints them into the window canvas.
func (t *Tracker) render() {
	lay := t.computeLayout()
	t.layout = lay
	t.window.Resize(lay.width, lay.height)

	colors := t.EffectiveTheme().Colors(t.darkMode)
	base := core.NewStyle(colors.Text, colors.Background)
	cv := t.window.Canvas()
	cv.Fill(base)

	if lay.frame {
		drawFrame(cv, lay.width, lay.height, core.NewStyle(colors.Frame, colors.Background))
		t.window.SetCloseRect(core.RectFromSize(0, lay.width-2, 1, 1))
		t.window.SetMoveRect(core.RectFromSize(0, 0, 1, lay.width-2))
	} else {
		t.window.SetCloseRect(core.ScreenRect{})
		t.window.SetMoveRect(core.ScreenRect{})
	}

	names := t.showNames()
	inner := lay.cols.RowWidth()
	for _, r := range lay.rows {
		r.item.Draw(field.DrawContext{
			Canvas:    cv,
			Row:       r.top,
			Left:      lay.left,
			Width:     inner,
			Columns:   lay.cols,
			Selected:  r.item == t.selected,
			ShowNames: names,
			Style:     base,
		})
	}
}

func drawFrame(cv *overlay.Canvas, width, height int, style core.Style) {
	bar := strings.Repeat("─", max(width-2, 0))
	cv.DrawText(0, 0, "┌"+bar+"┐", style)
	cv.DrawText(height-1, 0, "└"+bar+"┘", style)
	for row := 1; row < height-1; row++ {
		cv.SetCell(row, 0, core.NewStyledCell('│', style))
		cv.SetCell(row, width-1, core.NewStyledCell('│', style))
	}
	cv.SetCell(0, width-2, core.NewStyledCell('×', style))
}

// Draw repaints the tracker and composites it onto dst. While Running the
// items are synchronized first.
func (t *Tracker) Draw(dst backend.Backend) {
	scale := max(dst.ScaleFactor(), 1)
	t.window.SetScaleFactor(scale)
	if !t.fixedBounds {
		w, h := dst.Size()
		t.bounds = core.RectFromSize(0, 0, h/scale, w/scale)
	}
	if t.active == nil && !t.transitioning {
		t.Synchronize()
	}
	t.render()
	t.dirty = false
	if t.hidden {
		return
	}
	t.window.Composite(dst)
}

// Tick advances animations and reports whether a redraw is needed.
func (t *Tracker) Tick(now time.Time) bool {
	animating := t.window.Tick(now)
	return animating || t.dirty
}

// IsVisible reports whether the tracker is shown.
func (t *Tracker) IsVisible() bool { return !t.hidden }

// Show shows a hidden tracker with a fade in. The first show places the
// window by the ideal-position rule.
func (t *Tracker) Show() {
	if !t.hidden {
		return
	}
	t.hidden = false
	t.render()
	if !t.placed {
		t.window.SetPosition(t.idealPosition(t.desiredPosition()))
		t.placed = true
	}
	t.window.Show()
	t.fadeTarget = t.targetAlpha()
	t.startAnimation(animFade, overlay.FadeIn(t.cfg.FadeDuration, t.fadeTarget), t.markDirty)
	t.requestRedraw()
}

// Hide hides the tracker. An edit in progress is rejected first.
func (t *Tracker) Hide() {
	if t.hidden {
		return
	}
	if t.active != nil {
		if err := t.DeactivateEditMode(Reject, nil, KeepAsItIs); err != nil {
			t.logger.Debug("hide refused", zap.Error(err))
			return
		}
	}
	t.hidden = true
	t.window.StopAnimation()
	t.animKind = animNone
	t.window.Hide()
	t.dragging = false
	t.hovering = false
	t.window.SetAlpha(t.targetAlpha())
	t.fadeTarget = t.window.Alpha()
	t.requestRedraw()
}

// SetPosition anchors the tracker at pos. The window is placed at the
// anchor plus the configured offset, animated over durationMs when
// animated is set. A pinned tracker, or one not shown yet, records the
// anchor without moving.
func (t *Tracker) SetPosition(pos core.ScreenPos, animated bool, durationMs int) {
	t.anchor = pos
	if t.pinned || !t.placed {
		return
	}
	d := time.Duration(durationMs) * time.Millisecond
	t.moveWindow(t.desiredPosition(), animated && d > 0, d)
}

// Anchor returns the last position passed to SetPosition.
func (t *Tracker) Anchor() core.ScreenPos { return t.anchor }

// SetPointer records the pointer position used for placement and hover.
func (t *Tracker) SetPointer(pos core.ScreenPos) {
	t.pointer, t.hasPointer = pos, true
	t.updateHover()
}

// SetObstructions sets rectangles the window keeps clear of when placed.
func (t *Tracker) SetObstructions(rects ...core.ScreenRect) {
	t.obstructions = append(t.obstructions[:0], rects...)
}

// SetBounds confines placement to r. An empty rectangle restores the
// default of the host surface size seen at Draw.
func (t *Tracker) SetBounds(r core.ScreenRect) {
	t.bounds = r
	t.fixedBounds = !r.IsEmpty()
}

// MoveToVisiblePosition moves the window back inside the bounds when any
// part of it lies outside.
func (t *Tracker) MoveToVisiblePosition() {
	if t.bounds.IsEmpty() || t.bounds.ContainsRect(t.window.Rect()) {
		return
	}
	t.moveWindow(t.idealPosition(t.window.Position()), t.cfg.QuickAnimation > 0, t.cfg.QuickAnimation)
}

// StayInVisiblePosition pins the window. A pinned tracker ignores
// SetPosition and is kept inside the bounds.
func (t *Tracker) StayInVisiblePosition(stay bool) {
	t.pinned = stay
	if stay {
		t.MoveToVisiblePosition()
	}
}

// IsPinned reports whether StayInVisiblePosition is in effect.
func (t *Tracker) IsPinned() bool { return t.pinned }

// RefreshFade fades the window toward its target alpha. While Running the
// window fades out when the pointer hovers it.
func (t *Tracker) RefreshFade() {
	target := t.targetAlpha()
	if target == t.fadeTarget && (t.window.IsAnimating() || t.window.Alpha() == target) {
		return
	}
	t.fadeTarget = target
	if t.hidden {
		t.window.SetAlpha(target)
		return
	}
	if t.animKind == animMove {
		return
	}
	fade := overlay.Animation{
		Duration: t.cfg.FadeDuration,
		Fade: &overlay.FadeAnimation{
			Keyframes: []overlay.Keyframe{{Progress: 0, Value: t.window.Alpha()}, {Progress: 1, Value: target}},
		},
	}
	t.startAnimation(animFade, fade, t.markDirty)
}

func (t *Tracker) targetAlpha() float64 {
	if t.active == nil && t.hovering {
		return t.globalAlpha * t.cfg.HoverAlpha
	}
	return t.globalAlpha
}

func (t *Tracker) desiredPosition() core.ScreenPos {
	return t.anchor.Add(t.cfg.Offset.Row, t.cfg.Offset.Col)
}

func (t *Tracker) placement() overlay.Placement {
	return overlay.Placement{
		Pointer:      t.pointer,
		HasPointer:   t.hasPointer,
		Gap:          overlay.DefaultPointerGap,
		Obstructions: t.obstructions,
		Bounds:       t.bounds,
	}
}

func (t *Tracker) idealPosition(desired core.ScreenPos) core.ScreenPos {
	w, h := t.window.Size()
	return overlay.IdealPosition(desired, w, h, t.placement())
}

// relocate moves the window to its ideal position after the row set changed.
func (t *Tracker) relocate() {
	t.render()
	desired := t.desiredPosition()
	if t.pinned {
		desired = t.window.Position()
	}
	t.moveWindow(t.idealPosition(desired), t.cfg.QuickAnimation > 0, t.cfg.QuickAnimation)
}

func (t *Tracker) moveWindow(target core.ScreenPos, animated bool, d time.Duration) {
	if !animated || t.hidden {
		if t.animKind == animMove {
			t.window.StopAnimation()
			t.animKind = animNone
		}
		t.window.SetPosition(target)
		t.requestRedraw()
		return
	}
	cur := t.window.Rect()
	move := overlay.Animation{
		Duration: d,
		Move: &overlay.MoveAnimation{
			Start: cur,
			End:   core.RectAt(target, cur.Width(), cur.Height()),
		},
	}
	t.startAnimation(animMove, move, t.markDirty)
}

func (t *Tracker) startAnimation(kind animKind, a overlay.Animation, draw func()) {
	if a.Fade != nil && a.Fade.Draw == nil {
		a.Fade.Draw = func(float64) { draw() }
	}
	if a.Move != nil && a.Move.Draw == nil {
		a.Move.Draw = func(core.ScreenRect) { draw() }
	}
	t.animKind = kind
	if err := t.window.StartAnimation(a, t.now()); err != nil {
		t.animKind = animNone
		t.logger.Warn("animation rejected", zap.Error(err))
	}
}

func (t *Tracker) animationDone() {
	kind := t.animKind
	t.animKind = animNone
	t.dirty = true
	if kind == animMove {
		t.RefreshFade()
	}
}

func (t *Tracker) markDirty() { t.dirty = true }

func (t *Tracker) applyMouseState() {
	if t.active == nil && t.cfg.ClickThrough {
		t.window.SetMouseState(overlay.MouseDisabled)
		return
	}
	t.window.SetMouseState(overlay.MouseEnabled)
}
