package tracker

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/dshills/proptrack/internal/property"
	"github.com/dshills/proptrack/internal/tracker/field"
	"github.com/dshills/proptrack/internal/tracker/palette"
)

// ActivateEditMode switches to Editing on the selected item, or on the
// first enabled editable item when the selection cannot be edited. It
// returns the live control, or nil when activation is not possible.
func (t *Tracker) ActivateEditMode() palette.Control {
	c, err := t.TryActivateEditMode()
	if err != nil {
		t.logger.Debug("activate edit mode refused", zap.Error(err))
	}
	return c
}

// TryActivateEditMode is ActivateEditMode with the reason for a refusal.
func (t *Tracker) TryActivateEditMode() (palette.Control, error) {
	if t.transitioning {
		return nil, ErrTransitionInProgress
	}
	if t.active != nil {
		return nil, ErrNotRunning
	}
	if len(t.items) == 0 {
		return nil, ErrEmpty
	}
	target := t.selected
	if target == nil || !target.IsActivable(true) {
		target = t.firstActivable(true)
	}
	if target == nil {
		return nil, ErrNoEditableItem
	}
	return t.activate(target)
}

// DeactivateEditMode leaves Editing. Accept pushes the edited value with
// the tracker hint override, or the hint recorded from the last control
// change. A non-nil accepted item is announced through OnInputAccept; the
// value of the active item is the one pushed. RemoveFromIdealPosition
// relocates the window afterwards.
func (t *Tracker) DeactivateEditMode(vh ValueHandling, accepted *field.Item, ph PositionHandling) error {
	if t.transitioning {
		t.logger.Debug("deactivate refused", zap.Error(ErrTransitionInProgress))
		return ErrTransitionInProgress
	}
	if t.active == nil {
		t.logger.Debug("deactivate refused", zap.Error(ErrNotEditing))
		return ErrNotEditing
	}
	t.deactivate(vh, accepted, ph)
	return nil
}

func (t *Tracker) activate(it *field.Item) (palette.Control, error) {
	t.transitioning = true
	defer func() { t.transitioning = false }()

	it.Synchronize()
	c, err := it.Activate(t.palette)
	if err != nil {
		t.logger.Warn("control creation failed",
			zap.String("item", it.Label()),
			zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrActivationFailed, err)
	}

	t.active = it
	if t.selected != it {
		t.selected = it
		t.notifySelection()
	}
	t.showAll = !t.cfg.EditMinimized
	t.installed = t.inEditHandler
	t.hovering = false
	t.applyMouseState()
	t.RefreshFade()
	t.requestRedraw()
	t.logger.Debug("edit mode activated", zap.String("item", it.Label()))

	if t.hooks.OnActivateEditMode != nil {
		t.hooks.OnActivateEditMode(it)
	}
	return c, nil
}

func (t *Tracker) deactivate(vh ValueHandling, accepted *field.Item, ph PositionHandling) {
	t.transitioning = true
	defer func() { t.transitioning = false }()

	it := t.active
	if vh == Accept {
		hint := t.hint
		if hint == property.NoInfo {
			hint = it.RecordedHint()
		}
		text := it.InputText()
		if it.Commit(hint) {
			t.palette.Record(it.HistoryKey(), text)
		}
	}
	if accepted != nil && t.hooks.OnInputAccept != nil {
		t.hooks.OnInputAccept(accepted)
	}

	it.Deactivate(t.palette)
	t.palette.Close()
	t.active = nil
	t.showAll = false
	if vh == Reject {
		it.Synchronize()
	}

	t.installed = t.runningHandler
	t.applyMouseState()
	if ph == RemoveFromIdealPosition {
		t.relocate()
	}
	t.RefreshFade()
	t.requestRedraw()
	t.logger.Debug("edit mode deactivated",
		zap.String("item", it.Label()),
		zap.Stringer("handling", vh),
		zap.Stringer("position", ph))

	if t.hooks.OnDeactivateEditMode != nil {
		t.hooks.OnDeactivateEditMode(it, vh)
	}
}

// switchActive accepts the current edit and activates next.
func (t *Tracker) switchActive(next *field.Item) error {
	if t.transitioning {
		return ErrTransitionInProgress
	}
	if t.active != nil {
		t.deactivate(Accept, nil, KeepAsItIs)
	}
	_, err := t.activate(next)
	return err
}

// SetNextActivableItem activates the next enabled editable item, wrapping
// around. An edit in progress is accepted first.
func (t *Tracker) SetNextActivableItem() error {
	return t.SetNextActivableItemFrom(true)
}

// SetPrevActivableItem is SetNextActivableItem in reverse.
func (t *Tracker) SetPrevActivableItem() error {
	return t.SetPrevActivableItemFrom(true)
}

// SetNextActivableItemFrom moves forward. With skipDisabled false,
// disabled editable items are visited too.
func (t *Tracker) SetNextActivableItemFrom(skipDisabled bool) error {
	return t.step(1, skipDisabled)
}

// SetPrevActivableItemFrom moves backward.
func (t *Tracker) SetPrevActivableItemFrom(skipDisabled bool) error {
	return t.step(-1, skipDisabled)
}

// SetFirstActivableItem activates the first enabled editable item.
func (t *Tracker) SetFirstActivableItem() error {
	return t.moveTo(t.firstActivable(true))
}

// SetLastActivableItem activates the last enabled editable item.
func (t *Tracker) SetLastActivableItem() error {
	return t.moveTo(t.lastActivable(true))
}

// IsFirstActivableItemActive reports whether the active item is the first
// enabled editable item.
func (t *Tracker) IsFirstActivableItemActive() bool {
	return t.active != nil && t.active == t.firstActivable(true)
}

// IsLastActivableItemActive reports whether the active item is the last
// enabled editable item.
func (t *Tracker) IsLastActivableItemActive() bool {
	return t.active != nil && t.active == t.lastActivable(true)
}

func (t *Tracker) step(dir int, skipDisabled bool) error {
	if t.transitioning {
		return ErrTransitionInProgress
	}
	from := t.active
	if from == nil {
		from = t.selected
	}
	n := len(t.items)
	start := -1
	for i, it := range t.items {
		if it == from {
			start = i
			break
		}
	}
	var next *field.Item
	if start < 0 {
		if dir > 0 {
			next = t.firstActivable(skipDisabled)
		} else {
			next = t.lastActivable(skipDisabled)
		}
	} else {
		for k := 1; k <= n; k++ {
			it := t.items[((start+dir*k)%n+n)%n]
			if it.IsActivable(skipDisabled) {
				next = it
				break
			}
		}
	}
	return t.moveTo(next)
}

func (t *Tracker) moveTo(next *field.Item) error {
	if t.transitioning {
		return ErrTransitionInProgress
	}
	if next == nil {
		return ErrNoEditableItem
	}
	if t.active == nil {
		_, err := t.activate(next)
		return err
	}
	if next == t.active {
		return nil
	}
	err := t.switchActive(next)
	if errors.Is(err, ErrActivationFailed) {
		t.logger.Warn("traversal left edit mode", zap.Error(err))
	}
	return err
}

func (t *Tracker) firstActivable(skipDisabled bool) *field.Item {
	for _, it := range t.items {
		if it.IsActivable(skipDisabled) {
			return it
		}
	}
	return nil
}

func (t *Tracker) lastActivable(skipDisabled bool) *field.Item {
	for i := len(t.items) - 1; i >= 0; i-- {
		if t.items[i].IsActivable(skipDisabled) {
			return t.items[i]
		}
	}
	return nil
}
