package tracker

import (
	"errors"
	"fmt"
	"slices"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/dshills/proptrack/internal/input/key"
	"github.com/dshills/proptrack/internal/property"
	"github.com/dshills/proptrack/internal/tracker/field"
	"github.com/dshills/proptrack/internal/tracker/palette"
)

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// testConfig disables animations so state is observable right away.
func testConfig() Config {
	cfg := DefaultConfig()
	cfg.FadeDuration = 0
	cfg.QuickAnimation = 0
	return cfg
}

func newTestTracker(t *testing.T, opts ...Option) (*Tracker, *observer.ObservedLogs) {
	t.Helper()
	obs, logs := observer.New(zapcore.DebugLevel)
	base := []Option{
		WithConfig(testConfig()),
		WithLogger(zap.New(obs)),
		WithClock(func() time.Time { return epoch }),
	}
	return New(append(base, opts...)...), logs
}

func mustAdd(t *testing.T, tr *Tracker, items ...*field.Item) {
	t.Helper()
	for _, it := range items {
		if err := tr.AddItem(it); err != nil {
			t.Fatalf("AddItem(%q) error = %v", it.Label(), err)
		}
	}
}

func typeInto(c palette.Control, text string) {
	for _, r := range text {
		c.HandleKey(key.NewRuneEvent(r, key.ModNone))
	}
}

func press(tr *Tracker, spec string) bool {
	return tr.HandleKey(key.MustParse(spec))
}

type geometry struct {
	length, angle *property.Value[float64]
	lengthItem    *field.Item
	angleItem     *field.Item
}

func newGeometry(t *testing.T, tr *Tracker) geometry {
	t.Helper()
	g := geometry{
		length: property.NewValue(2.5),
		angle:  property.NewValue(45.0),
	}
	g.lengthItem = field.NewLength("Length", g.length)
	g.angleItem = field.NewAngle("Angle", g.angle)
	mustAdd(t, tr, g.lengthItem, g.angleItem)
	return g
}

func TestStateString(t *testing.T) {
	tests := []struct {
		give fmt.Stringer
		want string
	}{
		{StateRunning, "running"},
		{StateEditing, "editing"},
		{Accept, "accept"},
		{Reject, "reject"},
		{KeepAsItIs, "keep"},
		{RemoveFromIdealPosition, "relocate"},
	}
	for _, tt := range tests {
		if got := tt.give.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestRejectLeavesPropertiesUnchanged(t *testing.T) {
	tr, _ := newTestTracker(t)
	num := property.NewValue(2.5)
	count := property.NewValue(3)
	name := property.NewValue("wall")
	items := []*field.Item{
		field.NewLength("Length", num),
		field.NewInt("Count", count),
		field.NewString("Name", name),
	}
	mustAdd(t, tr, items...)

	for _, it := range items {
		if err := tr.SelectItem(it); err != nil {
			t.Fatalf("SelectItem() error = %v", err)
		}
		c := tr.ActivateEditMode()
		if c == nil {
			t.Fatalf("ActivateEditMode() on %q returned nil", it.Label())
		}
		typeInto(c, "9")
		if err := tr.DeactivateEditMode(Reject, nil, KeepAsItIs); err != nil {
			t.Fatalf("DeactivateEditMode() error = %v", err)
		}
		if tr.State() != StateRunning {
			t.Errorf("State() = %v, want running", tr.State())
		}
	}

	if num.SetCount()+count.SetCount()+name.SetCount() != 0 {
		t.Errorf("reject pushed values: %d %d %d", num.SetCount(), count.SetCount(), name.SetCount())
	}
	if tr.Palette().IsOpen() {
		t.Error("palette still open after reject")
	}
}

func TestLengthAngleAcceptScenario(t *testing.T) {
	var accepted []*field.Item
	tr, _ := newTestTracker(t, WithHooks(Hooks{
		OnInputAccept: func(it *field.Item) { accepted = append(accepted, it) },
	}))
	g := newGeometry(t, tr)

	if got := g.lengthItem.DisplayValue(); got != "2.500" {
		t.Fatalf("Length display = %q, want 2.500", got)
	}
	if got := g.angleItem.DisplayValue(); got != "45.0" {
		t.Fatalf("Angle display = %q, want 45.0", got)
	}

	c := tr.ActivateEditMode()
	if tr.ActiveItem() != g.lengthItem {
		t.Fatalf("ActiveItem() = %v, want Length", tr.ActiveItem())
	}
	typeInto(c, "3.75")
	if err := tr.DeactivateEditMode(Accept, g.lengthItem, KeepAsItIs); err != nil {
		t.Fatalf("DeactivateEditMode() error = %v", err)
	}

	if g.length.SetCount() != 1 {
		t.Fatalf("Length SetCount() = %d, want 1", g.length.SetCount())
	}
	call, _ := g.length.LastCall()
	if call.Value != 3.75 {
		t.Errorf("Length SetValue(%v), want 3.75", call.Value)
	}
	if call.Hint != property.ContinueInputWithNumericValue {
		t.Errorf("Length hint = %v, want %v", call.Hint, property.ContinueInputWithNumericValue)
	}
	if g.angle.SetCount() != 0 {
		t.Errorf("Angle SetCount() = %d, want 0", g.angle.SetCount())
	}
	if len(accepted) != 1 || accepted[0] != g.lengthItem {
		t.Errorf("OnInputAccept calls = %v, want [Length]", accepted)
	}
}

func TestAcceptUnchangedDoesNotPush(t *testing.T) {
	tr, _ := newTestTracker(t)
	g := newGeometry(t, tr)
	tr.ActivateEditMode()
	_ = tr.DeactivateEditMode(Accept, nil, KeepAsItIs)
	if g.length.SetCount() != 0 {
		t.Errorf("SetCount() = %d, want 0", g.length.SetCount())
	}
}

func TestAcceptedItemOtherThanActive(t *testing.T) {
	var accepted *field.Item
	tr, _ := newTestTracker(t, WithHooks(Hooks{
		OnInputAccept: func(it *field.Item) { accepted = it },
	}))
	g := newGeometry(t, tr)
	typeInto(tr.ActivateEditMode(), "7")
	_ = tr.DeactivateEditMode(Accept, g.angleItem, KeepAsItIs)

	if g.length.SetCount() != 1 {
		t.Errorf("active item SetCount() = %d, want 1", g.length.SetCount())
	}
	if g.angle.SetCount() != 0 {
		t.Errorf("accepted item SetCount() = %d, want 0", g.angle.SetCount())
	}
	if accepted != g.angleItem {
		t.Errorf("OnInputAccept item = %v, want Angle", accepted)
	}
}

func TestHintGuardOverridesRecordedHint(t *testing.T) {
	tr, _ := newTestTracker(t)
	g := newGeometry(t, tr)
	typeInto(tr.ActivateEditMode(), "4")

	guard := tr.GuardHint(property.ContinueInputWithFocusLost)
	_ = tr.DeactivateEditMode(Accept, nil, KeepAsItIs)
	guard.Release()

	call, _ := g.length.LastCall()
	if call.Hint != property.ContinueInputWithFocusLost {
		t.Errorf("hint = %v, want %v", call.Hint, property.ContinueInputWithFocusLost)
	}
	if tr.Hint() != property.NoInfo {
		t.Errorf("Hint() after Release = %v, want %v", tr.Hint(), property.NoInfo)
	}
}

func TestGuardsRestoreObservedValue(t *testing.T) {
	tr, logs := newTestTracker(t)

	outer := tr.GuardHint(property.ContinueInput)
	inner := tr.GuardHint(property.EndInput)
	if tr.Hint() != property.EndInput {
		t.Fatalf("Hint() = %v, want %v", tr.Hint(), property.EndInput)
	}
	inner.Release()
	inner.Release()
	if tr.Hint() != property.ContinueInput {
		t.Errorf("Hint() after inner = %v, want %v", tr.Hint(), property.ContinueInput)
	}
	outer.Release()
	if tr.Hint() != property.NoInfo {
		t.Errorf("Hint() after outer = %v, want %v", tr.Hint(), property.NoInfo)
	}
	if n := logs.FilterLevelExact(zapcore.ErrorLevel).Len(); n != 0 {
		t.Errorf("ordered release logged %d errors", n)
	}

	first := tr.GuardHint(property.ContinueInputWithFocusLost)
	second := tr.GuardHint(property.EndInput)
	first.Release()
	if tr.Hint() != property.EndInput {
		t.Errorf("misordered Release changed the hint to %v, want %v", tr.Hint(), property.EndInput)
	}
	second.Release()
	if tr.Hint() != property.NoInfo {
		t.Errorf("Hint() after both released = %v, want %v", tr.Hint(), property.NoInfo)
	}
	if n := logs.FilterMessage("hint guard released out of order").Len(); n != 1 {
		t.Errorf("misordered release logged %d times, want 1", n)
	}

	a := tr.SuppressIdle()
	b := tr.SuppressIdle()
	a.Release()
	if !tr.IsIdleSuppressed() {
		t.Error("misordered idle release lifted suppression while b is held")
	}
	b.Release()
	if tr.IsIdleSuppressed() {
		t.Error("IsIdleSuppressed() = true after both released")
	}
	if n := logs.FilterMessage("idle guard released out of order").Len(); n != 1 {
		t.Errorf("misordered idle release logged %d times, want 1", n)
	}
}

func TestIdleSuppressedIsReplayed(t *testing.T) {
	tr, _ := newTestTracker(t)
	g := newGeometry(t, tr)

	guard := tr.SuppressIdle()
	g.length.Set(8)
	if tr.Idle() {
		t.Error("Idle() ran while suppressed")
	}
	if !tr.IdlePending() {
		t.Error("IdlePending() = false after suppressed Idle")
	}
	if got := g.lengthItem.DisplayValue(); got != "2.500" {
		t.Errorf("display during suppression = %q, want 2.500", got)
	}
	guard.Release()

	if !tr.Idle() {
		t.Error("Idle() did not run after Release")
	}
	if tr.IdlePending() {
		t.Error("IdlePending() = true after replay")
	}
	if got := g.lengthItem.DisplayValue(); got != "8.000" {
		t.Errorf("display after replay = %q, want 8.000", got)
	}
}

func TestTraversalIsCyclic(t *testing.T) {
	tr, _ := newTestTracker(t)
	a := field.NewLength("A", property.NewValue(1.0))
	b := field.NewAngle("B", property.NewValue(2.0))
	c := field.NewInt("C", property.NewValue(3))
	mustAdd(t, tr, a, field.NewNote("note"), b, field.NewSeparator(), c)

	if err := tr.SetNextActivableItem(); err != nil {
		t.Fatalf("SetNextActivableItem() error = %v", err)
	}
	if tr.State() != StateEditing || tr.ActiveItem() != b {
		t.Fatalf("Next while running: state %v active %v, want editing B", tr.State(), tr.ActiveItem())
	}
	if !tr.Palette().IsOpen() {
		t.Error("Next while running created no control")
	}

	var visited []string
	for i := 0; i < 3; i++ {
		_ = tr.SetNextActivableItem()
		visited = append(visited, tr.ActiveItem().Label())
	}
	if want := []string{"C", "A", "B"}; !slices.Equal(visited, want) {
		t.Errorf("editing traversal = %v, want %v", visited, want)
	}
	_ = tr.SetPrevActivableItem()
	if !tr.IsFirstActivableItemActive() {
		t.Error("IsFirstActivableItemActive() = false")
	}

	_ = tr.SetPrevActivableItem()
	if !tr.IsLastActivableItemActive() {
		t.Errorf("after Prev from first, active = %q, want C", tr.ActiveItem().Label())
	}
	_ = tr.SetFirstActivableItem()
	if tr.ActiveItem() != a {
		t.Errorf("SetFirstActivableItem() active = %q, want A", tr.ActiveItem().Label())
	}
	_ = tr.SetLastActivableItem()
	if tr.ActiveItem() != c {
		t.Errorf("SetLastActivableItem() active = %q, want C", tr.ActiveItem().Label())
	}

	if err := tr.DeactivateEditMode(Reject, nil, KeepAsItIs); err != nil {
		t.Fatalf("DeactivateEditMode() error = %v", err)
	}
	if err := tr.SetFirstActivableItem(); err != nil {
		t.Fatalf("SetFirstActivableItem() error = %v", err)
	}
	if tr.ActiveItem() != a {
		t.Errorf("SetFirstActivableItem() while running active = %v, want A", tr.ActiveItem())
	}
}

func TestTraversalSkipsDisabled(t *testing.T) {
	tr, _ := newTestTracker(t)
	a := field.NewLength("A", property.NewValue(1.0))
	b := field.NewLength("B", property.NewValue(2.0))
	c := field.NewLength("C", property.NewValue(3.0))
	b.SetEnabled(false)
	mustAdd(t, tr, a, b, c)

	_ = tr.SetNextActivableItem()
	if tr.ActiveItem() != c {
		t.Errorf("Next from A = %v, want C", tr.ActiveItem())
	}
	_ = tr.SetNextActivableItem()
	if tr.ActiveItem() != a {
		t.Errorf("Next from C = %v, want A", tr.ActiveItem())
	}
	_ = tr.SetNextActivableItemFrom(false)
	if tr.ActiveItem() != b {
		t.Errorf("non-skipping Next from A = %v, want B", tr.ActiveItem())
	}
}

func TestActivateSkipsDisabledItems(t *testing.T) {
	tr, _ := newTestTracker(t)
	a := field.NewLength("A", property.NewValue(1.0))
	b := field.NewLength("B", property.NewValue(2.0))
	a.SetEnabled(false)
	mustAdd(t, tr, a, b)

	tr.ActivateEditMode()
	if tr.ActiveItem() != b {
		t.Errorf("ActiveItem() = %v, want the enabled B", tr.ActiveItem())
	}
	if err := tr.DeactivateEditMode(Reject, nil, KeepAsItIs); err != nil {
		t.Fatalf("DeactivateEditMode() error = %v", err)
	}

	b.SetEnabled(false)
	c, err := tr.TryActivateEditMode()
	if c != nil || !errors.Is(err, ErrNoEditableItem) {
		t.Errorf("TryActivateEditMode() = %v, %v, want nil, ErrNoEditableItem", c, err)
	}
	if tr.State() != StateRunning || tr.Palette().IsOpen() {
		t.Errorf("all disabled: state %v palette open %v, want running and closed", tr.State(), tr.Palette().IsOpen())
	}
	if err := tr.SetNextActivableItem(); !errors.Is(err, ErrNoEditableItem) {
		t.Errorf("SetNextActivableItem() error = %v, want ErrNoEditableItem", err)
	}
}

func TestTraversalAcceptsCurrentEdit(t *testing.T) {
	tr, _ := newTestTracker(t)
	g := newGeometry(t, tr)
	typeInto(tr.ActivateEditMode(), "6")
	if err := tr.SetNextActivableItem(); err != nil {
		t.Fatalf("SetNextActivableItem() error = %v", err)
	}
	if g.length.SetCount() != 1 {
		t.Errorf("Length SetCount() = %d, want 1", g.length.SetCount())
	}
	if tr.ActiveItem() != g.angleItem {
		t.Errorf("ActiveItem() = %v, want Angle", tr.ActiveItem())
	}
	if !tr.Palette().IsOpen() {
		t.Error("palette closed after traversal")
	}
}

func TestActivateRefusals(t *testing.T) {
	tr, _ := newTestTracker(t)
	if _, err := tr.TryActivateEditMode(); !errors.Is(err, ErrEmpty) {
		t.Errorf("empty TryActivateEditMode() error = %v, want ErrEmpty", err)
	}
	mustAdd(t, tr, field.NewNote("hello"), field.NewSeparator())
	if c := tr.ActivateEditMode(); c != nil {
		t.Errorf("ActivateEditMode() = %v, want nil", c)
	}
	if _, err := tr.TryActivateEditMode(); !errors.Is(err, ErrNoEditableItem) {
		t.Errorf("TryActivateEditMode() error = %v, want ErrNoEditableItem", err)
	}
	if tr.State() != StateRunning {
		t.Errorf("State() = %v, want running", tr.State())
	}
	if err := tr.DeactivateEditMode(Accept, nil, KeepAsItIs); !errors.Is(err, ErrNotEditing) {
		t.Errorf("DeactivateEditMode() while running error = %v, want ErrNotEditing", err)
	}
}

func TestActivatePrefersEditableSelection(t *testing.T) {
	tr, _ := newTestTracker(t)
	note := field.NewNote("info")
	num := field.NewLength("L", property.NewValue(1.0))
	mustAdd(t, tr, note, num)
	if tr.SelectedItem() != note {
		t.Fatalf("SelectedItem() = %v, want first added", tr.SelectedItem())
	}
	tr.ActivateEditMode()
	if tr.ActiveItem() != num {
		t.Errorf("ActiveItem() = %v, want first editable", tr.ActiveItem())
	}
	if _, err := tr.TryActivateEditMode(); !errors.Is(err, ErrNotRunning) {
		t.Errorf("second TryActivateEditMode() error = %v, want ErrNotRunning", err)
	}
}

func TestNestedTransitionRejected(t *testing.T) {
	var nestedActivate, nestedDeactivate error
	var tr *Tracker
	tr, _ = newTestTracker(t, WithHooks(Hooks{
		OnActivateEditMode: func(*field.Item) {
			_, nestedActivate = tr.TryActivateEditMode()
		},
		OnDeactivateEditMode: func(*field.Item, ValueHandling) {
			nestedDeactivate = tr.DeactivateEditMode(Reject, nil, KeepAsItIs)
		},
	}))
	newGeometry(t, tr)

	tr.ActivateEditMode()
	if !errors.Is(nestedActivate, ErrTransitionInProgress) {
		t.Errorf("nested activate error = %v, want ErrTransitionInProgress", nestedActivate)
	}
	if tr.State() != StateEditing {
		t.Fatalf("State() = %v, want editing", tr.State())
	}
	_ = tr.DeactivateEditMode(Reject, nil, KeepAsItIs)
	if !errors.Is(nestedDeactivate, ErrTransitionInProgress) {
		t.Errorf("nested deactivate error = %v, want ErrTransitionInProgress", nestedDeactivate)
	}
	if tr.State() != StateRunning {
		t.Errorf("State() = %v, want running", tr.State())
	}
}

func TestControlCreationFailureStaysRunning(t *testing.T) {
	failing := func(palette.Spec) (palette.Control, error) {
		return nil, errors.New("no widget toolkit")
	}
	tr, logs := newTestTracker(t, WithPaletteFactory(failing))
	g := newGeometry(t, tr)

	_, err := tr.TryActivateEditMode()
	if !errors.Is(err, ErrActivationFailed) {
		t.Fatalf("TryActivateEditMode() error = %v, want ErrActivationFailed", err)
	}
	if !errors.Is(err, palette.ErrCreateControl) {
		t.Errorf("error %v does not wrap ErrCreateControl", err)
	}
	if tr.State() != StateRunning {
		t.Errorf("State() = %v, want running", tr.State())
	}
	if tr.InstalledKeyboardHandler() != tr.runningHandler {
		t.Error("running handler not installed after failure")
	}
	if g.lengthItem.IsInInput() || g.angleItem.IsInInput() {
		t.Error("an item is in input after failure")
	}
	if logs.FilterMessage("control creation failed").Len() != 1 {
		t.Error("failure not logged")
	}
}

func TestEnumSynchronizeScenario(t *testing.T) {
	tr, _ := newTestTracker(t)
	layer := property.NewValue("B")
	item := field.NewEnum("Layer", layer, []field.Choice[string]{
		{Label: "A", Value: "A"},
		{Label: "B", Value: "B"},
		{Label: "C", Value: "C"},
	})
	mustAdd(t, tr, item)

	c := tr.ActivateEditMode()
	popup, ok := c.(*palette.Popup)
	if !ok {
		t.Fatalf("control = %T, want *palette.Popup", c)
	}
	if popup.Selected() != 2 {
		t.Errorf("Selected() = %d, want 2", popup.Selected())
	}

	rec := &changeRecorder{}
	tr.Palette().Attach(rec)
	layer.Set("C")
	tr.Synchronize()
	if popup.Selected() != 3 {
		t.Errorf("Selected() after Synchronize = %d, want 3", popup.Selected())
	}
	if rec.n != 0 {
		t.Errorf("Synchronize emitted %d change events, want 0", rec.n)
	}
	if layer.SetCount() != 0 {
		t.Errorf("Synchronize pushed %d values", layer.SetCount())
	}

	popup.HandleKey(key.MustParse("Up"))
	call, ok := layer.LastCall()
	if !ok || call.Value != "B" {
		t.Errorf("selection pushed %v, want B", call.Value)
	}
}

type changeRecorder struct{ n int }

func (r *changeRecorder) ValueChanged(palette.Change) { r.n++ }

func TestItemMembership(t *testing.T) {
	tr, _ := newTestTracker(t)
	a := field.NewLength("A", property.NewValue(1.0))
	b := field.NewLength("B", property.NewValue(2.0))
	mustAdd(t, tr, a, b)

	if err := tr.AddItem(a); !errors.Is(err, ErrDuplicateItem) {
		t.Errorf("duplicate AddItem() error = %v, want ErrDuplicateItem", err)
	}
	if err := tr.AddItem(nil); !errors.Is(err, ErrNilItem) {
		t.Errorf("AddItem(nil) error = %v, want ErrNilItem", err)
	}
	other, _ := newTestTracker(t)
	if err := other.AddItem(a); !errors.Is(err, field.ErrAlreadyParented) {
		t.Errorf("AddItem() of foreign item error = %v, want ErrAlreadyParented", err)
	}

	if err := tr.SwapItems(a, b); err != nil {
		t.Fatalf("SwapItems() error = %v", err)
	}
	if got := slices.Collect(tr.EnumerateAllItems()); !slices.Equal(got, []*field.Item{b, a}) {
		t.Errorf("order after swap = %v", got)
	}

	tr.ActivateEditMode()
	typeInto(tr.Palette().Control(), "5")
	if err := tr.RemoveItem(a); err != nil {
		t.Fatalf("RemoveItem() error = %v", err)
	}
	if tr.IsInEditMode() {
		t.Error("still editing after removing the active item")
	}
	if a.Host() != nil {
		t.Error("removed item keeps its host")
	}
	if tr.SelectedItem() != b {
		t.Errorf("SelectedItem() = %v, want B", tr.SelectedItem())
	}
	if err := tr.RemoveItem(a); !errors.Is(err, ErrNotMember) {
		t.Errorf("second RemoveItem() error = %v, want ErrNotMember", err)
	}
	_ = tr.RemoveItem(b)
	if tr.SelectedItem() != nil {
		t.Error("SelectedItem() of empty tracker is not nil")
	}
}

func TestEditShowsAllEditableItems(t *testing.T) {
	tr, _ := newTestTracker(t)
	g := newGeometry(t, tr)
	g.angleItem.SetVisible(false)
	hidden := field.NewNote("hidden note")
	hidden.SetVisible(false)
	mustAdd(t, tr, hidden)

	visible := func() []*field.Item { return slices.Collect(tr.EnumerateVisibleItems()) }
	if got := visible(); !slices.Equal(got, []*field.Item{g.lengthItem}) {
		t.Errorf("running visible = %d items, want Length only", len(got))
	}
	tr.ActivateEditMode()
	if got := visible(); !slices.Equal(got, []*field.Item{g.lengthItem, g.angleItem}) {
		t.Errorf("editing visible = %d items, want Length and Angle", len(got))
	}
	_ = tr.DeactivateEditMode(Reject, nil, KeepAsItIs)

	tr.SetEditTrackerSizePreference(true)
	tr.ActivateEditMode()
	if got := visible(); len(got) != 1 {
		t.Errorf("minimized editing visible = %d items, want 1", len(got))
	}
}

func TestDecimalSeparator(t *testing.T) {
	cfg := testConfig()
	cfg.DecimalSeparator = ','
	tr, _ := newTestTracker(t, WithConfig(cfg))
	for _, tt := range []struct {
		r    rune
		want bool
	}{{',', true}, {'.', true}, {'5', false}} {
		if got := tr.IsDecimalSeparator(tt.r); got != tt.want {
			t.Errorf("IsDecimalSeparator(%q) = %v, want %v", tt.r, got, tt.want)
		}
	}
	g := newGeometry(t, tr)
	if got := g.lengthItem.DisplayValue(); got != "2,500" {
		t.Errorf("display = %q, want 2,500", got)
	}
}
