package tracker

import (
	"slices"

	"github.com/dshills/proptrack/internal/input/key"
	"github.com/dshills/proptrack/internal/tracker/field"
)

// Result is the outcome of a keyboard handler call.
type Result struct {
	// Handled stops further routing of the key.
	Handled bool

	// Target, when set on a handled result, makes the tracker activate the
	// item and replay the key into its control.
	Target *field.Item
}

// Pass is the result of a key the handler does not consume.
var Pass = Result{}

// Consumed is the result of a key the handler consumed.
var Consumed = Result{Handled: true}

// KeyboardHandler receives keys routed by the tracker. Exactly one of the
// tracker's two handlers is installed at any time.
type KeyboardHandler interface {
	KeyPressed(ev key.Event) Result
	ModifierPressed(mod key.Modifier) Result
}

// InEditHandler is the default handler installed while Editing.
type InEditHandler struct {
	t *Tracker
}

// NewInEditHandler creates the default in-edit handler for t.
func NewInEditHandler(t *Tracker) *InEditHandler {
	return &InEditHandler{t: t}
}

// KeyPressed handles traversal, accept and reject keys.
func (h *InEditHandler) KeyPressed(ev key.Event) Result {
	t := h.t
	keys := t.cfg.Keys
	active := t.active
	if active == nil {
		return Pass
	}
	switch {
	case ev.Matches(keys.Accept):
		if !active.IsAcceptEnabled() {
			return Consumed
		}
		_ = t.DeactivateEditMode(Accept, active, RemoveFromIdealPosition)
	case ev.Matches(keys.Reject):
		if !active.IsReturnToRunningEnabled() {
			return Consumed
		}
		_ = t.DeactivateEditMode(Reject, nil, KeepAsItIs)
	case ev.Matches(keys.Prev):
		_ = t.SetPrevActivableItem()
	case ev.Matches(keys.Next):
		_ = t.SetNextActivableItem()
	case ev.Matches(keys.First):
		_ = t.SetFirstActivableItem()
	case ev.Matches(keys.Last):
		_ = t.SetLastActivableItem()
	default:
		return Pass
	}
	return Consumed
}

// ModifierPressed passes all modifiers through.
func (h *InEditHandler) ModifierPressed(key.Modifier) Result { return Pass }

// RunningHandler is the default handler installed while Running.
type RunningHandler struct {
	t *Tracker
}

// NewRunningHandler creates the default running handler for t.
func NewRunningHandler(t *Tracker) *RunningHandler {
	return &RunningHandler{t: t}
}

// KeyPressed activates edit mode on the activate key, and with direct
// input on digits, signs and the decimal separator.
func (h *RunningHandler) KeyPressed(ev key.Event) Result {
	t := h.t
	if ev.Matches(t.cfg.Keys.Activate) {
		if t.ActivateEditMode() == nil {
			return Pass
		}
		return Consumed
	}
	if t.cfg.DirectInput && t.isDirectInput(ev) {
		if target := t.directInputTarget(); target != nil {
			return Result{Handled: true, Target: target}
		}
	}
	return Pass
}

// ModifierPressed passes all modifiers through.
func (h *RunningHandler) ModifierPressed(key.Modifier) Result { return Pass }

func (t *Tracker) isDirectInput(ev key.Event) bool {
	if !ev.IsRune() || ev.IsModified() {
		return false
	}
	r := ev.Rune
	return (r >= '0' && r <= '9') || r == '+' || r == '-' || t.IsDecimalSeparator(r)
}

func (t *Tracker) directInputTarget() *field.Item {
	if t.selected != nil && t.selected.IsActivable(true) {
		return t.selected
	}
	return t.firstActivable(true)
}

// SetInEditKeyboardHandler replaces the in-edit handler. Nil restores the
// default.
func (t *Tracker) SetInEditKeyboardHandler(h KeyboardHandler) {
	if h == nil {
		h = NewInEditHandler(t)
	}
	wasInstalled := t.installed == t.inEditHandler
	t.inEditHandler = h
	if wasInstalled {
		t.installed = h
	}
}

// SetRunningModeKeyboardHandler replaces the running handler. Nil restores
// the default.
func (t *Tracker) SetRunningModeKeyboardHandler(h KeyboardHandler) {
	if h == nil {
		h = NewRunningHandler(t)
	}
	wasInstalled := t.installed == t.runningHandler
	t.runningHandler = h
	if wasInstalled {
		t.installed = h
	}
}

// InstalledKeyboardHandler returns the handler receiving keys.
func (t *Tracker) InstalledKeyboardHandler() KeyboardHandler { return t.installed }

// HandleKey routes a key through the installed handler. Keys the handler
// passes go to the live control while Editing. Hidden trackers ignore keys.
func (t *Tracker) HandleKey(ev key.Event) bool {
	if t.hidden {
		return false
	}
	res := t.installed.KeyPressed(ev)
	if res.Handled {
		if res.Target != nil {
			t.redirect(res.Target, ev)
		}
		return true
	}
	if t.active == nil {
		return false
	}
	if c := t.palette.Control(); c != nil && c.HandleKey(ev) {
		t.requestRedraw()
		return true
	}
	return false
}

// HandleModifier routes a modifier-only press through the installed
// handler.
func (t *Tracker) HandleModifier(mod key.Modifier) bool {
	if t.hidden {
		return false
	}
	return t.installed.ModifierPressed(mod).Handled
}

// redirect activates target if needed and replays ev into its control.
func (t *Tracker) redirect(target *field.Item, ev key.Event) {
	if !slices.Contains(t.items, target) || !target.IsActivable(true) {
		return
	}
	var err error
	switch {
	case t.active == target:
	case t.active != nil:
		err = t.switchActive(target)
	default:
		if t.transitioning {
			return
		}
		_, err = t.activate(target)
	}
	if err != nil || t.active != target {
		return
	}
	if c := t.palette.Control(); c != nil && c.HandleKey(ev) {
		t.requestRedraw()
	}
}
