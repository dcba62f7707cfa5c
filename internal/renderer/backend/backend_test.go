package backend

import (
	"testing"

	"github.com/dshills/proptrack/internal/input/key"
	"github.com/dshills/proptrack/internal/renderer/core"
)

func TestNullBackendInit(t *testing.T) {
	b := NewNullBackend(80, 24)
	if err := b.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	w, h := b.Size()
	if w != 80 || h != 24 {
		t.Errorf("expected size (80, 24), got (%d, %d)", w, h)
	}
	if got := b.ScaleFactor(); got != 1 {
		t.Errorf("ScaleFactor() = %d, want 1", got)
	}
}

func TestNullBackendSetGetCell(t *testing.T) {
	b := NewNullBackend(80, 24)
	_ = b.Init()

	cell := core.NewStyledCell('X', core.DefaultStyle().WithForeground(core.ColorWhite))
	b.SetCell(10, 5, cell)

	if got := b.GetCell(10, 5); !got.Equals(cell) {
		t.Errorf("cell mismatch: expected %+v, got %+v", cell, got)
	}

	// Out of bounds should be ignored/return empty
	b.SetCell(-1, 0, cell)
	b.SetCell(100, 0, cell)
	if got := b.GetCell(-1, 0); !got.Equals(core.EmptyCell()) {
		t.Error("out of bounds should return empty cell")
	}
}

func TestNullBackendUsableBeforeInit(t *testing.T) {
	b := NewNullBackend(4, 3)
	cell := core.NewStyledCell('Z', core.DefaultStyle())
	b.SetCell(3, 2, cell)
	if got := b.GetCell(3, 2); !got.Equals(cell) {
		t.Errorf("GetCell() before Init = %+v, want %+v", got, cell)
	}
	if got := b.GetCell(0, 0); !got.Equals(core.EmptyCell()) {
		t.Errorf("GetCell(0, 0) before Init = %+v, want empty", got)
	}
}

func TestNullBackendFill(t *testing.T) {
	b := NewNullBackend(20, 10)
	_ = b.Init()

	cell := core.NewStyledCell('.', core.DefaultStyle())
	b.Fill(core.RectFromSize(-2, 3, 5, 4), cell)

	if got := b.GetCell(4, 1); !got.Equals(cell) {
		t.Error("cell inside rect should be filled")
	}
	if got := b.GetCell(0, 0); got.Equals(cell) {
		t.Error("cell outside rect should not be filled")
	}
	if got := b.Row(0); got != "   ....             " {
		t.Errorf("Row(0) = %q", got)
	}
}

func TestNullBackendClearAndShow(t *testing.T) {
	b := NewNullBackend(5, 2)
	_ = b.Init()
	b.SetCell(1, 1, core.NewStyledCell('Z', core.DefaultStyle()))
	b.Clear()
	b.Show()

	if got := b.Row(1); got != "     " {
		t.Errorf("Row(1) after Clear = %q", got)
	}
	if got := b.ShowCount(); got != 1 {
		t.Errorf("ShowCount() = %d, want 1", got)
	}
}

func TestNullBackendResize(t *testing.T) {
	b := NewNullBackend(10, 5)
	_ = b.Init()
	b.Resize(30, 8)

	w, h := b.Size()
	if w != 30 || h != 8 {
		t.Errorf("Size() after Resize = (%d, %d)", w, h)
	}
	ev := b.PollEvent()
	if ev.Type != EventResize || ev.Width != 30 || ev.Height != 8 {
		t.Errorf("PollEvent() = %+v, want resize 30x8", ev)
	}
}

func TestNullBackendPostEvent(t *testing.T) {
	b := NewNullBackend(10, 5)
	want := Event{Type: EventKey, Key: key.NewSpecialEvent(key.KeyTab, key.ModShift)}
	b.PostEvent(want)

	got := b.PollEvent()
	if got.Type != EventKey || got.Key != want.Key {
		t.Errorf("PollEvent() = %+v, want %+v", got, want)
	}
}

func TestNullBackendScaleFactor(t *testing.T) {
	b := NewNullBackend(10, 5)
	b.SetScaleFactor(2)
	if got := b.ScaleFactor(); got != 2 {
		t.Errorf("ScaleFactor() = %d, want 2", got)
	}
	b.SetScaleFactor(0)
	if got := b.ScaleFactor(); got != 1 {
		t.Errorf("ScaleFactor() = %d, want 1 after invalid value", got)
	}
}

func TestEventTypeString(t *testing.T) {
	tests := []struct {
		typ  EventType
		want string
	}{
		{EventNone, "none"},
		{EventKey, "key"},
		{EventMouse, "mouse"},
		{EventResize, "resize"},
		{EventInterrupt, "interrupt"},
	}
	for _, tt := range tests {
		if got := tt.typ.String(); got != tt.want {
			t.Errorf("EventType(%d).String() = %q, want %q", tt.typ, got, tt.want)
		}
	}
}
