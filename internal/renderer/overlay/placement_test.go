package overlay

import (
	"testing"

	"github.com/dshills/proptrack/internal/renderer/core"
)

func TestIdealPosition(t *testing.T) {
	bounds := core.RectFromSize(0, 0, 20, 40)
	tests := []struct {
		name    string
		desired core.ScreenPos
		p       Placement
		want    core.ScreenPos
	}{
		{
			name:    "nothing to avoid",
			desired: core.NewScreenPos(5, 5),
			p:       Placement{Bounds: bounds},
			want:    core.NewScreenPos(5, 5),
		},
		{
			name:    "moves off the pointer",
			desired: core.NewScreenPos(5, 5),
			p:       Placement{Pointer: core.NewScreenPos(5, 5), HasPointer: true, Gap: 1},
			want:    core.NewScreenPos(7, 7),
		},
		{
			name:    "pointer in bottom right corner",
			desired: core.NewScreenPos(18, 38),
			p:       Placement{Pointer: core.NewScreenPos(18, 38), HasPointer: true, Gap: 1, Bounds: bounds},
			want:    core.NewScreenPos(14, 30),
		},
		{
			name:    "slides below a toolbar",
			desired: core.NewScreenPos(0, 5),
			p:       Placement{Obstructions: []core.ScreenRect{core.RectFromSize(0, 0, 2, 40)}, Bounds: bounds},
			want:    core.NewScreenPos(2, 5),
		},
		{
			name:    "clamped into bounds",
			desired: core.NewScreenPos(-4, 35),
			p:       Placement{Bounds: bounds},
			want:    core.NewScreenPos(0, 30),
		},
		{
			name:    "no clear spot falls back to desired",
			desired: core.NewScreenPos(3, 3),
			p:       Placement{Obstructions: []core.ScreenRect{bounds}, Bounds: bounds},
			want:    core.NewScreenPos(3, 3),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := IdealPosition(tt.desired, 10, 3, tt.p)
			if got != tt.want {
				t.Errorf("IdealPosition() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestIdealPositionIsPure(t *testing.T) {
	obstructions := []core.ScreenRect{core.RectFromSize(0, 0, 2, 40)}
	p := Placement{Obstructions: obstructions, Bounds: core.RectFromSize(0, 0, 20, 40)}
	first := IdealPosition(core.NewScreenPos(0, 5), 10, 3, p)
	second := IdealPosition(core.NewScreenPos(0, 5), 10, 3, p)
	if first != second {
		t.Errorf("IdealPosition() not deterministic: %+v vs %+v", first, second)
	}
	if len(obstructions) != 1 || obstructions[0] != core.RectFromSize(0, 0, 2, 40) {
		t.Error("IdealPosition() mutated its input")
	}
}
