package tracker

import (
	"testing"

	"github.com/dshills/proptrack/internal/input/key"
	"github.com/dshills/proptrack/internal/tracker/field"
	"github.com/dshills/proptrack/internal/tracker/palette"
)

func controlText(t *testing.T, tr *Tracker) string {
	t.Helper()
	c, ok := tr.Palette().Control().(*palette.NumberEdit)
	if !ok {
		t.Fatalf("control = %T, want *palette.NumberEdit", tr.Palette().Control())
	}
	return c.Text()
}

func TestHiddenTrackerIgnoresKeys(t *testing.T) {
	tr, _ := newTestTracker(t)
	newGeometry(t, tr)
	if press(tr, "Tab") {
		t.Error("hidden tracker handled Tab")
	}
	if tr.IsInEditMode() {
		t.Error("hidden tracker entered edit mode")
	}
}

func TestRunningHandlerActivates(t *testing.T) {
	tr, _ := newTestTracker(t)
	g := newGeometry(t, tr)
	tr.Show()

	if _, ok := tr.InstalledKeyboardHandler().(*RunningHandler); !ok {
		t.Fatalf("installed = %T, want *RunningHandler", tr.InstalledKeyboardHandler())
	}
	if !press(tr, "Tab") {
		t.Fatal("Tab not handled")
	}
	if tr.ActiveItem() != g.lengthItem {
		t.Fatalf("ActiveItem() = %v, want Length", tr.ActiveItem())
	}
	if _, ok := tr.InstalledKeyboardHandler().(*InEditHandler); !ok {
		t.Errorf("installed = %T, want *InEditHandler", tr.InstalledKeyboardHandler())
	}

	tr.HandleKey(key.NewRuneEvent('3', key.ModNone))
	if got := controlText(t, tr); got != "3" {
		t.Errorf("control text = %q, want 3", got)
	}
	if !press(tr, "Escape") {
		t.Error("Escape not handled")
	}
	if tr.IsInEditMode() {
		t.Error("still editing after Escape")
	}
	if g.length.SetCount() != 0 {
		t.Errorf("Escape pushed %d values", g.length.SetCount())
	}
	if _, ok := tr.InstalledKeyboardHandler().(*RunningHandler); !ok {
		t.Errorf("installed after Escape = %T, want *RunningHandler", tr.InstalledKeyboardHandler())
	}
}

func TestDirectInputReplaysKey(t *testing.T) {
	tr, _ := newTestTracker(t)
	g := newGeometry(t, tr)
	tr.Show()

	if !tr.HandleKey(key.NewRuneEvent('5', key.ModNone)) {
		t.Fatal("digit not handled")
	}
	if tr.ActiveItem() != g.lengthItem {
		t.Fatalf("ActiveItem() = %v, want Length", tr.ActiveItem())
	}
	if got := controlText(t, tr); got != "5" {
		t.Errorf("control text = %q, want 5", got)
	}
	tr.HandleKey(key.NewRuneEvent('.', key.ModNone))
	tr.HandleKey(key.NewRuneEvent('5', key.ModNone))
	press(tr, "Enter")

	if tr.IsInEditMode() {
		t.Fatal("still editing after Enter")
	}
	call, ok := g.length.LastCall()
	if !ok || call.Value != 5.5 {
		t.Errorf("pushed %v, want 5.5", call.Value)
	}
}

func TestDirectInputDisabled(t *testing.T) {
	cfg := testConfig()
	cfg.DirectInput = false
	tr, _ := newTestTracker(t, WithConfig(cfg))
	newGeometry(t, tr)
	tr.Show()
	if tr.HandleKey(key.NewRuneEvent('5', key.ModNone)) {
		t.Error("digit handled with direct input off")
	}
	if tr.IsInEditMode() {
		t.Error("digit started editing with direct input off")
	}
}

func TestInEditTraversalKeys(t *testing.T) {
	tr, _ := newTestTracker(t)
	g := newGeometry(t, tr)
	tr.Show()
	tr.ActivateEditMode()

	tests := []struct {
		spec string
		want *field.Item
	}{
		{"Tab", g.angleItem},
		{"<S-Tab>", g.lengthItem},
		{"Ctrl+End", g.angleItem},
		{"Ctrl+Home", g.lengthItem},
	}
	for _, tt := range tests {
		if !press(tr, tt.spec) {
			t.Errorf("%s not handled", tt.spec)
		}
		if tr.ActiveItem() != tt.want {
			t.Errorf("after %s active = %q, want %q", tt.spec, tr.ActiveItem().Label(), tt.want.Label())
		}
	}
}

func TestAcceptAndRejectCanBeDisabled(t *testing.T) {
	tr, _ := newTestTracker(t)
	g := newGeometry(t, tr)
	g.lengthItem.SetAcceptEnabled(false)
	g.lengthItem.SetReturnToRunningEnabled(false)
	tr.Show()
	tr.ActivateEditMode()

	if !press(tr, "Enter") || !tr.IsInEditMode() {
		t.Error("Enter left edit mode with accept disabled")
	}
	if !press(tr, "Escape") || !tr.IsInEditMode() {
		t.Error("Escape left edit mode with return to running disabled")
	}
}

type scriptedHandler struct {
	target    *field.Item
	keys      []key.Event
	modifiers []key.Modifier
}

func (h *scriptedHandler) KeyPressed(ev key.Event) Result {
	h.keys = append(h.keys, ev)
	if ev.IsDigit() {
		return Result{Handled: true, Target: h.target}
	}
	return Pass
}

func (h *scriptedHandler) ModifierPressed(mod key.Modifier) Result {
	h.modifiers = append(h.modifiers, mod)
	return Consumed
}

func TestCustomRunningHandler(t *testing.T) {
	tr, _ := newTestTracker(t)
	g := newGeometry(t, tr)
	tr.Show()

	h := &scriptedHandler{target: g.angleItem}
	tr.SetRunningModeKeyboardHandler(h)
	if tr.InstalledKeyboardHandler() != h {
		t.Fatal("custom running handler not installed")
	}
	if !tr.HandleModifier(key.ModCtrl) {
		t.Error("HandleModifier() = false, want consumed")
	}
	if len(h.modifiers) != 1 {
		t.Errorf("handler saw %d modifiers, want 1", len(h.modifiers))
	}

	tr.HandleKey(key.NewRuneEvent('7', key.ModNone))
	if tr.ActiveItem() != g.angleItem {
		t.Fatalf("redirect activated %v, want Angle", tr.ActiveItem())
	}
	if got := controlText(t, tr); got != "7" {
		t.Errorf("replayed control text = %q, want 7", got)
	}

	tr.SetRunningModeKeyboardHandler(nil)
	if _, ok := tr.InstalledKeyboardHandler().(*InEditHandler); !ok {
		t.Errorf("replacing the idle slot changed the installed handler to %T", tr.InstalledKeyboardHandler())
	}
	press(tr, "Escape")
	if _, ok := tr.InstalledKeyboardHandler().(*RunningHandler); !ok {
		t.Errorf("installed = %T, want default *RunningHandler", tr.InstalledKeyboardHandler())
	}
}

func TestCustomInEditHandler(t *testing.T) {
	tr, _ := newTestTracker(t)
	newGeometry(t, tr)
	tr.Show()
	tr.ActivateEditMode()

	h := &scriptedHandler{}
	tr.SetInEditKeyboardHandler(h)
	if tr.InstalledKeyboardHandler() != h {
		t.Fatal("custom in-edit handler not installed while editing")
	}
	press(tr, "Escape")
	if !tr.IsInEditMode() {
		t.Error("custom handler passed Escape but the tracker left edit mode")
	}
	if len(h.keys) != 1 {
		t.Errorf("handler saw %d keys, want 1", len(h.keys))
	}
}
