package tracker

import (
	"fmt"
	"iter"
	"slices"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/dshills/proptrack/internal/logging"
	"github.com/dshills/proptrack/internal/property"
	"github.com/dshills/proptrack/internal/renderer/core"
	"github.com/dshills/proptrack/internal/renderer/overlay"
	"github.com/dshills/proptrack/internal/tracker/field"
	"github.com/dshills/proptrack/internal/tracker/palette"
)

// Hooks are notifications fired by the tracker. Nil hooks are skipped.
// Hooks run synchronously; mode changes requested from a hook fired during
// a transition are rejected with ErrTransitionInProgress.
type Hooks struct {
	OnActivateEditMode   func(item *field.Item)
	OnDeactivateEditMode func(item *field.Item, vh ValueHandling)
	OnInputAccept        func(item *field.Item)
	OnSelectionChanged   func(item *field.Item)
	OnItemCommitted      func(item *field.Item, hint property.Hint)
	OnContextMenu        func(item *field.Item, pos core.ScreenPos)
	OnClose              func()
	OnRedrawRequested    func()
}

// Tracker is an overlay of property rows that follows the pointer and can
// switch into an edit mode.
type Tracker struct {
	id         uuid.UUID
	cfg        Config
	hooks      Hooks
	baseLogger *zap.Logger
	logger     *zap.Logger
	now        func() time.Time

	items    []*field.Item
	selected *field.Item
	active   *field.Item
	host     *itemHost

	palette *palette.Palette
	window  *overlay.Window

	inEditHandler  KeyboardHandler
	runningHandler KeyboardHandler
	installed      KeyboardHandler

	hint           property.Hint
	hintGuards     []*HintGuard
	idleSuppressed bool
	idleGuards     []*IdleGuard
	idlePending    bool
	transitioning  bool

	hidden      bool
	placed      bool
	pinned      bool
	showAll     bool
	globalAlpha float64
	overrides   ThemeOverrides
	darkMode    bool

	anchor       core.ScreenPos
	pointer      core.ScreenPos
	hasPointer   bool
	bounds       core.ScreenRect
	fixedBounds  bool
	obstructions []core.ScreenRect

	hovering   bool
	fadeTarget float64
	animKind   animKind
	buttonDown bool
	dragging   bool
	dragFrom   core.ScreenPos

	layout layout
	dirty  bool
}

// New creates a hidden tracker in Running state.
func New(opts ...Option) *Tracker {
	t := &Tracker{
		id:  uuid.New(),
		cfg: DefaultConfig(),
		now: time.Now,
	}
	for _, opt := range opts {
		opt(t)
	}

	t.logger = logging.WithComponent(t.baseLogger, "tracker").With(zap.Stringer("tracker", t.id))
	if t.palette == nil {
		t.palette = palette.New()
	}
	t.host = &itemHost{t: t}
	t.hidden = true
	t.globalAlpha = core.ClampAlpha(t.cfg.Theme.Opacity)
	t.fadeTarget = t.globalAlpha

	t.window = overlay.NewWindow("tracker-"+t.id.String(), 1, 1)
	t.window.SetPriority(overlay.PriorityHigh)
	t.window.SetAlpha(t.globalAlpha)
	t.window.OnAnimationDone(t.animationDone)

	t.inEditHandler = NewInEditHandler(t)
	t.runningHandler = NewRunningHandler(t)
	t.installed = t.runningHandler
	t.applyMouseState()
	t.dirty = true
	return t
}

// ID returns the tracker instance identifier.
func (t *Tracker) ID() uuid.UUID { return t.id }

// Config returns the tracker configuration.
func (t *Tracker) Config() Config { return t.cfg }

// Window returns the overlay window of the tracker.
func (t *Tracker) Window() *overlay.Window { return t.window }

// Palette returns the edit palette.
func (t *Tracker) Palette() *palette.Palette { return t.palette }

// State returns the current mode.
func (t *Tracker) State() State {
	if t.active != nil {
		return StateEditing
	}
	return StateRunning
}

// IsInEditMode reports whether an item is active.
func (t *Tracker) IsInEditMode() bool { return t.active != nil }

// ActiveItem returns the active item, or nil while Running.
func (t *Tracker) ActiveItem() *field.Item { return t.active }

// Hint returns the hint in effect.
func (t *Tracker) Hint() property.Hint { return t.hint }

// Len returns the number of items.
func (t *Tracker) Len() int { return len(t.items) }

// AddItem appends an item and synchronizes it with its property.
func (t *Tracker) AddItem(it *field.Item) error {
	if it == nil {
		return ErrNilItem
	}
	if slices.Contains(t.items, it) {
		return ErrDuplicateItem
	}
	if err := it.Attach(t.host); err != nil {
		return fmt.Errorf("add item %q: %w", it.Label(), err)
	}
	t.items = append(t.items, it)
	if t.selected == nil {
		t.selected = it
	}
	it.Synchronize()
	t.requestRedraw()
	return nil
}

// RemoveItem removes an item. Removing the active item rejects its edit
// first.
func (t *Tracker) RemoveItem(it *field.Item) error {
	idx := slices.Index(t.items, it)
	if idx < 0 {
		return ErrNotMember
	}
	if it == t.active {
		if err := t.DeactivateEditMode(Reject, nil, KeepAsItIs); err != nil {
			return err
		}
	}
	t.items = slices.Delete(t.items, idx, idx+1)
	it.Detach()
	t.layout.rows = slices.DeleteFunc(t.layout.rows, func(r rowSpan) bool { return r.item == it })
	if t.selected == it {
		t.selected = nil
		if len(t.items) > 0 {
			t.selected = t.items[min(idx, len(t.items)-1)]
		}
		t.notifySelection()
	}
	t.requestRedraw()
	return nil
}

// SwapItems exchanges the display positions of two items.
func (t *Tracker) SwapItems(a, b *field.Item) error {
	i, j := slices.Index(t.items, a), slices.Index(t.items, b)
	if i < 0 || j < 0 {
		return ErrNotMember
	}
	t.items[i], t.items[j] = t.items[j], t.items[i]
	t.requestRedraw()
	return nil
}

// EnumerateAllItems yields all items in display order.
func (t *Tracker) EnumerateAllItems() iter.Seq[*field.Item] {
	return func(yield func(*field.Item) bool) {
		for _, it := range t.items {
			if !yield(it) {
				return
			}
		}
	}
}

// EnumerateVisibleItems yields the items currently shown: those visible on
// their own, plus editable items while edit mode shows all rows.
func (t *Tracker) EnumerateVisibleItems() iter.Seq[*field.Item] {
	return func(yield func(*field.Item) bool) {
		for _, it := range t.items {
			if t.isShown(it) && !yield(it) {
				return
			}
		}
	}
}

func (t *Tracker) isShown(it *field.Item) bool {
	return it.IsVisible() || (t.showAll && it.IsEditable())
}

// SelectedItem returns the selected item, or nil when empty.
func (t *Tracker) SelectedItem() *field.Item { return t.selected }

// SelectItem selects an item. While Editing, selecting another enabled
// editable item accepts the current edit and activates it.
func (t *Tracker) SelectItem(it *field.Item) error {
	if !slices.Contains(t.items, it) {
		return ErrNotMember
	}
	if t.active != nil {
		if it == t.active {
			return nil
		}
		if !it.IsActivable(true) {
			return ErrNoEditableItem
		}
		return t.switchActive(it)
	}
	if t.selected != it {
		t.selected = it
		t.notifySelection()
		t.requestRedraw()
	}
	return nil
}

// Synchronize re-reads the property of every item.
func (t *Tracker) Synchronize() {
	changed := false
	for _, it := range t.items {
		if it.Synchronize() {
			changed = true
		}
	}
	if changed {
		t.requestRedraw()
	}
}

// SetGlobalOpacity sets the window alpha, clamped to [0, 1].
func (t *Tracker) SetGlobalOpacity(alpha float64) {
	t.globalAlpha = core.ClampAlpha(alpha)
	t.RefreshFade()
}

// GlobalOpacity returns the window alpha preference.
func (t *Tracker) GlobalOpacity() float64 { return t.globalAlpha }

// SetShowParameterNames controls whether labels are shown while editing.
func (t *Tracker) SetShowParameterNames(show bool) {
	t.cfg.ShowParameterNames = show
	t.requestRedraw()
}

// SetAlwaysShowParameterNames controls whether labels are shown while
// Running.
func (t *Tracker) SetAlwaysShowParameterNames(show bool) {
	t.cfg.AlwaysShowParameterNames = show
	t.requestRedraw()
}

// SetEditTrackerSizePreference controls whether edit mode keeps the
// Running row set (minimized) or shows every editable item.
func (t *Tracker) SetEditTrackerSizePreference(minimized bool) {
	t.cfg.EditMinimized = minimized
}

// IsDecimalSeparator reports whether r separates the fraction of a number.
func (t *Tracker) IsDecimalSeparator(r rune) bool {
	return r == t.cfg.DecimalSeparator || r == '.'
}

// NeedsRedraw reports whether the tracker changed since the last Draw.
func (t *Tracker) NeedsRedraw() bool { return t.dirty }

func (t *Tracker) showNames() bool {
	return t.cfg.AlwaysShowParameterNames || (t.cfg.ShowParameterNames && t.active != nil)
}

func (t *Tracker) requestRedraw() {
	t.dirty = true
	if t.hooks.OnRedrawRequested != nil {
		t.hooks.OnRedrawRequested()
	}
}

func (t *Tracker) notifySelection() {
	if t.hooks.OnSelectionChanged != nil {
		t.hooks.OnSelectionChanged(t.selected)
	}
}

// itemHost is the callback surface handed to items.
type itemHost struct {
	t *Tracker
}

func (h *itemHost) Hint() property.Hint    { return h.t.hint }
func (h *itemHost) DecimalSeparator() rune { return h.t.cfg.DecimalSeparator }
func (h *itemHost) Logger() *zap.Logger    { return h.t.logger }
func (h *itemHost) RequestRedraw()         { h.t.requestRedraw() }

func (h *itemHost) ItemCommitted(it *field.Item, hint property.Hint) {
	h.t.logger.Debug("value committed",
		zap.String("item", it.Label()),
		zap.Stringer("hint", hint))
	if h.t.hooks.OnItemCommitted != nil {
		h.t.hooks.OnItemCommitted(it, hint)
	}
}
