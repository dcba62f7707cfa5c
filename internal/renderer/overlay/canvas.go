package overlay

import (
	"github.com/rivo/uniseg"

	"github.com/dshills/proptrack/internal/renderer/backend"
	"github.com/dshills/proptrack/internal/renderer/core"
)

// Canvas is the logical cell grid a window draws into.
// A zero Cell is transparent, which makes non-rectangular windows possible.
type Canvas struct {
	width, height int
	cells         []core.Cell
}

// NewCanvas creates a transparent canvas.
func NewCanvas(width, height int) *Canvas {
	c := &Canvas{}
	c.Resize(width, height)
	return c
}

// Size returns the canvas dimensions.
func (c *Canvas) Size() (width, height int) {
	return c.width, c.height
}

// Resize reallocates the canvas. Content is discarded.
func (c *Canvas) Resize(width, height int) {
	c.width = max(width, 0)
	c.height = max(height, 0)
	c.cells = make([]core.Cell, c.width*c.height)
}

// Clear makes every cell transparent.
func (c *Canvas) Clear() {
	clear(c.cells)
}

// Fill paints every cell blank with style.
func (c *Canvas) Fill(style core.Style) {
	blank := core.NewStyledCell(' ', style)
	for i := range c.cells {
		c.cells[i] = blank
	}
}

// SetCell sets one cell. Out of range positions are ignored.
func (c *Canvas) SetCell(row, col int, cell core.Cell) {
	if row < 0 || row >= c.height || col < 0 || col >= c.width {
		return
	}
	c.cells[row*c.width+col] = cell
}

// Cell returns the cell at row, col, or a transparent cell when out of range.
func (c *Canvas) Cell(row, col int) core.Cell {
	if row < 0 || row >= c.height || col < 0 || col >= c.width {
		return core.Cell{}
	}
	return c.cells[row*c.width+col]
}

// DrawText writes text starting at row, col and returns the columns used.
// Text is clipped at the right edge; wide graphemes occupy two columns.
func (c *Canvas) DrawText(row, col int, text string, style core.Style) int {
	start := col
	state := -1
	for len(text) > 0 && col < c.width {
		var cluster string
		var width int
		cluster, text, width, state = uniseg.FirstGraphemeClusterInString(text, state)
		if width == 0 {
			continue
		}
		if col+width > c.width {
			break
		}
		r := []rune(cluster)[0]
		c.SetCell(row, col, core.Cell{Rune: r, Width: width, Style: style})
		for i := 1; i < width; i++ {
			c.SetCell(row, col+i, core.Cell{Rune: ' ', Width: 0, Style: style})
		}
		col += width
	}
	return col - start
}

// Composite blends the canvas over dst with its top-left at origin (logical
// cells), scaled by scale device cells per logical cell.
func (c *Canvas) Composite(dst backend.Backend, origin core.ScreenPos, alpha float64, scale int) {
	alpha = core.ClampAlpha(alpha)
	if alpha == 0 {
		return
	}
	scale = max(scale, 1)
	for row := 0; row < c.height; row++ {
		for col := 0; col < c.width; col++ {
			top := c.cells[row*c.width+col]
			// Transparent cells and wide-glyph continuations are skipped.
			if top.Rune == 0 || top.Width == 0 {
				continue
			}
			baseY := (origin.Row + row) * scale
			baseX := (origin.Col + col) * scale
			for dy := 0; dy < scale; dy++ {
				for dx := 0; dx < scale; dx++ {
					cell := top
					if dx > 0 || dy > 0 {
						cell.Rune, cell.Width = ' ', 1
					}
					x, y := baseX+dx, baseY+dy
					dst.SetCell(x, y, BlendCell(cell, dst.GetCell(x, y), alpha))
				}
			}
		}
	}
}

// BlendCell composites top over under with the given alpha.
// Blank top cells let the underlying glyph show through, tinted toward the
// window background.
func BlendCell(top, under core.Cell, alpha float64) core.Cell {
	if alpha >= 1 {
		return top
	}
	out := top
	out.Style.Background = top.Style.Background.Over(under.Style.Background, alpha)
	if top.Rune == ' ' && under.Rune != 0 && under.Rune != ' ' {
		out.Rune = under.Rune
		out.Width = under.Width
		out.Style.Foreground = top.Style.Background.Over(under.Style.Foreground, alpha)
		out.Style.Attributes = under.Style.Attributes
		return out
	}
	out.Style.Foreground = top.Style.Foreground.Over(under.Style.Background, alpha)
	return out
}
