package field

import (
	"strings"

	"github.com/dshills/proptrack/internal/renderer/core"
	"github.com/dshills/proptrack/internal/renderer/overlay"
	"github.com/dshills/proptrack/internal/tracker/palette"
)

// ColumnWidths is the layout contribution of a row, in cells.
// Span is the width of content that ignores the columns, such as a note.
type ColumnWidths struct {
	Icon     int
	Name     int
	Value    int
	Trailing int
	Span     int
}

// Merge returns the per-column maximum of c and o.
func (c ColumnWidths) Merge(o ColumnWidths) ColumnWidths {
	return ColumnWidths{
		Icon:     max(c.Icon, o.Icon),
		Name:     max(c.Name, o.Name),
		Value:    max(c.Value, o.Value),
		Trailing: max(c.Trailing, o.Trailing),
		Span:     max(c.Span, o.Span),
	}
}

// NameOffset returns the column where names start.
func (c ColumnWidths) NameOffset() int {
	if c.Icon == 0 {
		return 0
	}
	return c.Icon + 1
}

// ValueOffset returns the column where values start.
func (c ColumnWidths) ValueOffset() int {
	x := c.NameOffset()
	if c.Name > 0 {
		x += c.Name + 1
	}
	return x
}

// TrailingOffset returns the column where unit suffixes start.
func (c ColumnWidths) TrailingOffset() int {
	return c.ValueOffset() + c.Value
}

// RowWidth returns the width needed to lay out every column.
func (c ColumnWidths) RowWidth() int {
	return max(c.TrailingOffset()+c.Trailing, c.Span)
}

// DrawContext carries what an item needs to paint itself.
type DrawContext struct {
	Canvas    *overlay.Canvas
	Row       int
	Left      int
	Width     int
	Columns   ColumnWidths
	Selected  bool
	ShowNames bool
	Style     core.Style
}

func valueColumns(it *Item, showNames bool) ColumnWidths {
	cw := ColumnWidths{
		Value:    core.StringWidth(it.DisplayValue()),
		Trailing: core.StringWidth(it.Suffix()),
	}
	if it.icon != 0 {
		cw.Icon = core.RuneWidth(it.icon)
	}
	if showNames {
		cw.Name = core.StringWidth(it.label)
	}
	if c := it.control(); c != nil {
		cw.Value = max(cw.Value, core.StringWidth(inputDisplay(it, c))+1)
	}
	return cw
}

// inputDisplay returns the control text shown in the value column.
// The unit suffix stays in the trailing column.
func inputDisplay(it *Item, c palette.Control) string {
	if c.Kind() == palette.KindPopup {
		return c.Display()
	}
	return it.InputText()
}

func rowStyle(it *Item, ctx DrawContext) core.Style {
	style := ctx.Style
	switch {
	case ctx.Selected:
		style = style.Bold()
	case !it.enabled:
		style = style.Italic()
	}
	return style
}

func drawValueRow(it *Item, ctx DrawContext) {
	style := rowStyle(it, ctx)
	cols := ctx.Columns
	cv := ctx.Canvas

	if it.icon != 0 && cols.Icon > 0 {
		cv.DrawText(ctx.Row, ctx.Left, string(it.icon), style)
	}
	if ctx.ShowNames && cols.Name > 0 {
		cv.DrawText(ctx.Row, ctx.Left+cols.NameOffset(), core.Truncate(it.label, cols.Name), style)
	}

	x := ctx.Left + cols.ValueOffset()
	if c := it.control(); c != nil {
		text := core.Truncate(inputDisplay(it, c), cols.Value)
		input := style
		input.Attributes |= core.AttrUnderline
		cv.DrawText(ctx.Row, x, text, input)
		if c.Kind() != palette.KindPopup {
			cursor := min(x+c.Cursor(), x+cols.Value-1)
			cell := cv.Cell(ctx.Row, cursor)
			if cell.Rune == 0 {
				cell = core.NewStyledCell(' ', style)
			}
			cell.Style = cell.Style.Reverse()
			cv.SetCell(ctx.Row, cursor, cell)
		}
	} else {
		text := core.Truncate(it.DisplayValue(), cols.Value)
		if it.kind == KindDouble || it.kind == KindInt {
			x += cols.Value - core.StringWidth(text)
		}
		cv.DrawText(ctx.Row, x, text, style)
	}

	if suffix := it.Suffix(); suffix != "" {
		cv.DrawText(ctx.Row, ctx.Left+cols.TrailingOffset(), suffix, style)
	}
}

func noteColumns(it *Item, _ bool) ColumnWidths {
	w := 0
	for _, line := range it.note.lines {
		w = max(w, core.StringWidth(line))
	}
	return ColumnWidths{Span: w}
}

func noteHeight(it *Item) int {
	return max(len(it.note.lines), 1)
}

func drawNote(it *Item, ctx DrawContext) {
	style := ctx.Style.Dim()
	for i, line := range it.note.lines {
		ctx.Canvas.DrawText(ctx.Row+i, ctx.Left, core.Truncate(line, ctx.Width), style)
	}
}

func drawSeparator(_ *Item, ctx DrawContext) {
	ctx.Canvas.DrawText(ctx.Row, ctx.Left, strings.Repeat("─", max(ctx.Width, 0)), ctx.Style.Dim())
}
