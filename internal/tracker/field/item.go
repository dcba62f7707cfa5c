package field

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/dshills/proptrack/internal/property"
	"github.com/dshills/proptrack/internal/tracker/palette"
)

// Host is the callback surface a tracker hands to each item it owns.
type Host interface {
	// Hint returns the hint currently in effect on the tracker.
	Hint() property.Hint

	// DecimalSeparator returns the separator used to format numbers.
	DecimalSeparator() rune

	// Logger returns the tracker logger.
	Logger() *zap.Logger

	// RequestRedraw asks the tracker to repaint.
	RequestRedraw()

	// ItemCommitted reports that an item pushed a value to its binding.
	ItemCommitted(it *Item, hint property.Hint)
}

// Item is one row of a tracker.
type Item struct {
	kind    Kind
	label   string
	icon    rune
	tooltip string

	visible                bool
	enabled                bool
	acceptEnabled          bool
	returnToRunningEnabled bool

	host  Host
	stale bool

	num  *numberState
	intg *intState
	str  *stringState
	enum *enumState
	note *noteState
}

func newItem(kind Kind, label string) *Item {
	return &Item{
		kind:                   kind,
		label:                  label,
		visible:                true,
		enabled:                true,
		acceptEnabled:          true,
		returnToRunningEnabled: true,
	}
}

// Kind returns the row type.
func (it *Item) Kind() Kind { return it.kind }

// Label returns the parameter name.
func (it *Item) Label() string { return it.label }

// SetLabel changes the parameter name.
func (it *Item) SetLabel(label string) {
	it.label = label
	it.redraw()
}

// Icon returns the icon rune, or 0.
func (it *Item) Icon() rune { return it.icon }

// SetIcon changes the icon rune.
func (it *Item) SetIcon(icon rune) {
	it.icon = icon
	it.redraw()
}

// ToolTip returns the tooltip text.
func (it *Item) ToolTip() string { return it.tooltip }

// SetToolTip changes the tooltip text.
func (it *Item) SetToolTip(text string) { it.tooltip = text }

// IsVisible returns the item's own visibility flag.
func (it *Item) IsVisible() bool { return it.visible }

// SetVisible changes the item's own visibility flag.
func (it *Item) SetVisible(v bool) {
	it.visible = v
	it.redraw()
}

// IsEnabled returns true if the item accepts input.
func (it *Item) IsEnabled() bool { return it.enabled }

// SetEnabled enables or disables the item.
func (it *Item) SetEnabled(v bool) {
	it.enabled = v
	it.redraw()
}

// IsAcceptEnabled returns true if Enter may accept this item.
func (it *Item) IsAcceptEnabled() bool { return it.acceptEnabled }

// SetAcceptEnabled controls whether Enter may accept this item.
func (it *Item) SetAcceptEnabled(v bool) { it.acceptEnabled = v }

// IsReturnToRunningEnabled returns true if Escape may return to running mode.
func (it *Item) IsReturnToRunningEnabled() bool { return it.returnToRunningEnabled }

// SetReturnToRunningEnabled controls whether Escape may return to running mode.
func (it *Item) SetReturnToRunningEnabled(v bool) { it.returnToRunningEnabled = v }

// IsEditable reports whether the kind can ever become active.
func (it *Item) IsEditable() bool { return caps(it.kind).editable }

// IsActivable reports whether traversal may land on the item.
func (it *Item) IsActivable(skipDisabled bool) bool {
	return it.IsEditable() && (it.enabled || !skipDisabled)
}

// Host returns the owning tracker callbacks, or nil when unparented.
func (it *Item) Host() Host { return it.host }

// Attach parents the item.
func (it *Item) Attach(h Host) error {
	if it.host != nil {
		return ErrAlreadyParented
	}
	it.host = h
	return nil
}

// Detach clears the back-reference to the tracker.
func (it *Item) Detach() {
	it.host = nil
}

// IsStale reports whether the last binding access failed.
func (it *Item) IsStale() bool { return it.stale }

// IsInInput reports whether the item's own live control exists.
func (it *Item) IsInInput() bool { return it.control() != nil }

// Synchronize re-reads the bound property. A stale or failing binding is
// treated as no change and retried on the next call.
func (it *Item) Synchronize() bool {
	changed := false
	it.guard("synchronize", func() {
		changed = caps(it.kind).synchronize(it)
	})
	return changed
}

// Activate materializes the live control in p, preloaded with the cached value.
func (it *Item) Activate(p *palette.Palette) (palette.Control, error) {
	if !it.IsEditable() {
		return nil, fmt.Errorf("%w: %s", ErrNotEditable, it.kind)
	}
	if it.IsInInput() {
		return nil, ErrInInput
	}
	c, err := caps(it.kind).activate(it, p)
	if err != nil {
		return nil, err
	}
	p.Attach(it)
	return c, nil
}

// Deactivate tears down the live control only. The binding is untouched.
func (it *Item) Deactivate(p *palette.Palette) {
	if !it.IsInInput() {
		return
	}
	p.Detach(it)
	caps(it.kind).deactivate(it)
}

// IsChanged reports whether the edited value differs from the cached one.
func (it *Item) IsChanged() bool {
	return caps(it.kind).changed(it)
}

// RecordedHint returns the hint of the last control change.
func (it *Item) RecordedHint() property.Hint {
	switch it.kind {
	case KindDouble:
		return it.num.hint
	case KindInt:
		return it.intg.hint
	case KindString:
		return it.str.hint
	default:
		return property.NoInfo
	}
}

// Commit pushes the edited value with hint when it changed. Disabled items
// and unavailable bindings never commit.
func (it *Item) Commit(hint property.Hint) bool {
	if !it.enabled || !it.IsChanged() {
		return false
	}
	committed := false
	it.guard("commit", func() {
		committed = caps(it.kind).commit(it, hint)
	})
	if committed && it.host != nil {
		it.host.ItemCommitted(it, hint)
	}
	return committed
}

// ValueChanged implements palette.Observer. Events from controls other
// than the item's own are ignored.
func (it *Item) ValueChanged(c palette.Change) {
	if c.Control == nil || c.Control != it.control() {
		return
	}
	caps(it.kind).observe(it, c)
	it.redraw()
}

// ColumnWidths returns the item's layout contribution.
func (it *Item) ColumnWidths(showNames bool) ColumnWidths {
	return caps(it.kind).columns(it, showNames)
}

// Height returns the number of rows the item occupies.
func (it *Item) Height() int {
	return caps(it.kind).height(it)
}

// Draw paints the item.
func (it *Item) Draw(ctx DrawContext) {
	caps(it.kind).draw(it, ctx)
}

func (it *Item) control() palette.Control {
	switch it.kind {
	case KindDouble:
		if it.num.control != nil {
			return it.num.control
		}
	case KindInt:
		if it.intg.control != nil {
			return it.intg.control
		}
	case KindString:
		if it.str.control != nil {
			return it.str.control
		}
	case KindEnum:
		if it.enum.control != nil {
			return it.enum.control
		}
	}
	return nil
}

func (it *Item) logger() *zap.Logger {
	if it.host == nil {
		return zap.NewNop()
	}
	return it.host.Logger()
}

func (it *Item) redraw() {
	if it.host != nil {
		it.host.RequestRedraw()
	}
}

// guard runs a binding access. A panicking binding marks the item stale
// instead of propagating.
func (it *Item) guard(op string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			it.stale = true
			it.logger().Warn("property binding failed",
				zap.String("op", op),
				zap.String("item", it.label),
				zap.Any("panic", r))
		}
	}()
	fn()
}

// available checks a binding's Availability and marks the item stale.
func (it *Item) available(binding any, op string) bool {
	if property.IsAvailable(binding) {
		return true
	}
	if !it.stale {
		it.logger().Warn("property binding unavailable",
			zap.String("op", op),
			zap.String("item", it.label))
	}
	it.stale = true
	return false
}
