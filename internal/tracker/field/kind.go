// Package field implements the rows of a property tracker.
//
// Every row is an *Item whose behavior is selected by its Kind through a
// capability table, so the set of row types is closed and each one supplies
// the complete set of operations. Value-bearing kinds bind to a property
// and keep a cached copy of the last value read, which is how an edit
// session decides whether anything changed.
package field

import (
	"errors"
	"fmt"

	"github.com/dshills/proptrack/internal/property"
	"github.com/dshills/proptrack/internal/tracker/palette"
)

// Field errors
var (
	ErrAlreadyParented = errors.New("item already belongs to a tracker")
	ErrNotEditable     = errors.New("item kind is not editable")
	ErrInInput         = errors.New("item already has a live control")
	ErrUnavailable     = errors.New("bound property is unavailable")
)

// Kind is the closed set of row types.
type Kind uint8

const (
	KindDouble Kind = iota
	KindInt
	KindString
	KindEnum
	KindNote
	KindSeparator
)

// AllKinds lists every Kind in declaration order.
var AllKinds = []Kind{KindDouble, KindInt, KindString, KindEnum, KindNote, KindSeparator}

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindDouble:
		return "double"
	case KindInt:
		return "int"
	case KindString:
		return "string"
	case KindEnum:
		return "enum"
	case KindNote:
		return "note"
	case KindSeparator:
		return "separator"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// capabilities is the per-kind operation table.
type capabilities struct {
	editable bool

	// synchronize re-reads the binding and reports whether the cache changed.
	synchronize func(it *Item) bool

	// activate creates the live control in the palette.
	activate func(it *Item, p *palette.Palette) (palette.Control, error)

	// deactivate drops the live control reference without touching the binding.
	deactivate func(it *Item)

	// commit pushes the edited value and reports whether SetValue was called.
	commit func(it *Item, hint property.Hint) bool

	// changed reports whether the edited value differs from the cache.
	changed func(it *Item) bool

	// observe records a change event of the item's own control.
	observe func(it *Item, c palette.Change)

	columns func(it *Item, showNames bool) ColumnWidths
	height  func(it *Item) int
	draw    func(it *Item, ctx DrawContext)
}

var table = map[Kind]capabilities{
	KindDouble: {
		editable:    true,
		synchronize: syncDouble,
		activate:    activateDouble,
		deactivate:  func(it *Item) { it.num.control = nil },
		commit:      commitDouble,
		changed:     changedDouble,
		observe:     observeDouble,
		columns:     valueColumns,
		height:      oneRow,
		draw:        drawValueRow,
	},
	KindInt: {
		editable:    true,
		synchronize: syncInt,
		activate:    activateInt,
		deactivate:  func(it *Item) { it.intg.control = nil },
		commit:      commitInt,
		changed:     changedInt,
		observe:     observeInt,
		columns:     valueColumns,
		height:      oneRow,
		draw:        drawValueRow,
	},
	KindString: {
		editable:    true,
		synchronize: syncString,
		activate:    activateString,
		deactivate:  func(it *Item) { it.str.control = nil },
		commit:      commitString,
		changed:     changedString,
		observe:     observeString,
		columns:     valueColumns,
		height:      oneRow,
		draw:        drawValueRow,
	},
	KindEnum: {
		editable:    true,
		synchronize: syncEnum,
		activate:    activateEnum,
		deactivate:  func(it *Item) { it.enum.control = nil },
		commit:      func(*Item, property.Hint) bool { return false },
		changed:     func(*Item) bool { return false },
		observe:     observeEnum,
		columns:     valueColumns,
		height:      oneRow,
		draw:        drawValueRow,
	},
	KindNote: {
		synchronize: func(*Item) bool { return false },
		activate:    notEditable,
		deactivate:  func(*Item) {},
		commit:      func(*Item, property.Hint) bool { return false },
		changed:     func(*Item) bool { return false },
		observe:     func(*Item, palette.Change) {},
		columns:     noteColumns,
		height:      noteHeight,
		draw:        drawNote,
	},
	KindSeparator: {
		synchronize: func(*Item) bool { return false },
		activate:    notEditable,
		deactivate:  func(*Item) {},
		commit:      func(*Item, property.Hint) bool { return false },
		changed:     func(*Item) bool { return false },
		observe:     func(*Item, palette.Change) {},
		columns:     func(*Item, bool) ColumnWidths { return ColumnWidths{} },
		height:      oneRow,
		draw:        drawSeparator,
	},
}

func notEditable(it *Item, _ *palette.Palette) (palette.Control, error) {
	return nil, fmt.Errorf("%w: %s", ErrNotEditable, it.kind)
}

func oneRow(*Item) int { return 1 }

func caps(k Kind) capabilities {
	c, ok := table[k]
	if !ok {
		panic(fmt.Sprintf("field: no capabilities for %v", k))
	}
	return c
}
