package tracker

import (
	"slices"

	"github.com/dshills/proptrack/internal/renderer/backend"
	"github.com/dshills/proptrack/internal/renderer/core"
	"github.com/dshills/proptrack/internal/renderer/overlay"
	"github.com/dshills/proptrack/internal/tracker/field"
)

// HandleMouse processes a mouse event in device cells and reports whether
// the tracker consumed it. While Running with click through enabled only
// hover is tracked and every event passes to the canvas.
func (t *Tracker) HandleMouse(ev backend.Event) bool {
	if ev.Type != backend.EventMouse {
		return false
	}
	device := core.NewScreenPos(ev.MouseY, ev.MouseX)
	logical := t.window.ToLogical(device)
	t.pointer, t.hasPointer = logical, true
	t.updateHover()

	left := ev.MouseButton == backend.MouseLeft
	pressed := left && !t.buttonDown
	t.buttonDown = left

	if t.dragging {
		if !left {
			t.dragging = false
			return true
		}
		pos := t.window.Position()
		t.window.SetPosition(pos.Add(logical.Row-t.dragFrom.Row, logical.Col-t.dragFrom.Col))
		t.dragFrom = logical
		t.requestRedraw()
		return true
	}

	hit := t.window.HitTest(device)
	if hit == overlay.HitNone {
		return false
	}
	switch {
	case pressed && hit == overlay.HitClose:
		t.Hide()
		if t.hooks.OnClose != nil {
			t.hooks.OnClose()
		}
	case pressed && hit == overlay.HitMove:
		t.dragging = true
		t.dragFrom = logical
	case pressed && hit == overlay.HitBody:
		t.clickItem(t.itemAt(logical))
	case ev.MouseButton == backend.MouseRight && hit == overlay.HitBody:
		if t.hooks.OnContextMenu != nil {
			t.hooks.OnContextMenu(t.itemAt(logical), logical)
		}
	}
	return true
}

// ToolTipText returns the tooltip of the item under a logical position.
// When names are hidden an item without a tooltip reports its label.
func (t *Tracker) ToolTipText(pos core.ScreenPos) string {
	if t.hidden {
		return ""
	}
	it := t.itemAt(pos)
	if it == nil {
		return ""
	}
	if tip := it.ToolTip(); tip != "" {
		return tip
	}
	if !t.showNames() {
		return it.Label()
	}
	return ""
}

func (t *Tracker) updateHover() {
	hovering := !t.hidden && t.hasPointer && t.window.Rect().Contains(t.pointer)
	if hovering == t.hovering {
		return
	}
	t.hovering = hovering
	t.RefreshFade()
}

// itemAt returns the item drawn at a logical position, or nil.
// Rows of removed items are never reported.
func (t *Tracker) itemAt(pos core.ScreenPos) *field.Item {
	if !t.window.Rect().Contains(pos) {
		return nil
	}
	row := pos.Row - t.window.Position().Row
	for _, r := range t.layout.rows {
		if row >= r.top && row < r.top+r.height {
			if !slices.Contains(t.items, r.item) {
				return nil
			}
			return r.item
		}
	}
	return nil
}

func (t *Tracker) clickItem(it *field.Item) {
	if it == nil || !it.IsActivable(true) || t.transitioning {
		return
	}
	if !slices.Contains(t.items, it) {
		return
	}
	if t.active != nil {
		if it != t.active {
			_ = t.switchActive(it)
		}
		return
	}
	_ = t.SelectItem(it)
	_, _ = t.activate(it)
}
