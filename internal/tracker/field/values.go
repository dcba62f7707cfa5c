package field

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dshills/proptrack/internal/property"
	"github.com/dshills/proptrack/internal/tracker/palette"
)

// Precisions of the predefined numeric rows.
const (
	LengthPrecision = 3
	AnglePrecision  = 1
	DegreeSuffix    = "°"
)

type numberState struct {
	binding   property.Double
	precision int
	suffix    string

	cached   float64
	edited   float64
	valid    bool
	relative bool
	hint     property.Hint
	control  *palette.NumberEdit
}

type intState struct {
	binding property.Int

	cached   int
	edited   int
	valid    bool
	relative bool
	hint     property.Hint
	control  *palette.IntEdit
}

type stringState struct {
	binding property.String

	cached  string
	edited  string
	hint    property.Hint
	control *palette.TextEdit
}

type enumState struct {
	binding any
	choices []palette.Choice
	index   func() int
	set     func(index int, hint property.Hint)

	selected int
	control  *palette.Popup
}

type noteState struct {
	lines []string
}

// Choice is one legal value of an enum row.
type Choice[V comparable] struct {
	Icon  rune
	Label string
	Value V
}

// NewReal creates a numeric row with the given precision and unit suffix.
func NewReal(label string, binding property.Double, precision int, suffix string) *Item {
	it := newItem(KindDouble, label)
	it.num = &numberState{binding: binding, precision: max(precision, 0), suffix: suffix}
	return it
}

// NewLength creates a length row shown with three decimals.
func NewLength(label string, binding property.Double) *Item {
	return NewReal(label, binding, LengthPrecision, "")
}

// NewAngle creates an angle row shown with one decimal and a degree sign.
func NewAngle(label string, binding property.Double) *Item {
	return NewReal(label, binding, AnglePrecision, DegreeSuffix)
}

// NewInt creates an integer row.
func NewInt(label string, binding property.Int) *Item {
	it := newItem(KindInt, label)
	it.intg = &intState{binding: binding}
	return it
}

// NewString creates a text row.
func NewString(label string, binding property.String) *Item {
	it := newItem(KindString, label)
	it.str = &stringState{binding: binding}
	return it
}

// NewEnum creates a row choosing among fixed values. The popup selection
// follows the bound value by linear scan over choices.
func NewEnum[V comparable](label string, binding property.Enum[V], choices []Choice[V]) *Item {
	it := newItem(KindEnum, label)
	values := make([]V, len(choices))
	display := make([]palette.Choice, len(choices))
	for i, c := range choices {
		values[i] = c.Value
		display[i] = palette.Choice{Icon: c.Icon, Label: c.Label}
	}
	it.enum = &enumState{
		binding: binding,
		choices: display,
		index: func() int {
			v := binding.GetValue()
			for i := range values {
				if values[i] == v {
					return i + 1
				}
			}
			return 0
		},
		set: func(index int, hint property.Hint) {
			binding.SetValue(values[index-1], hint)
		},
	}
	return it
}

// NewNote creates a static text row. Newlines start additional rows.
func NewNote(text string) *Item {
	it := newItem(KindNote, "")
	it.note = &noteState{lines: strings.Split(text, "\n")}
	return it
}

// NewSeparator creates a horizontal rule.
func NewSeparator() *Item {
	return newItem(KindSeparator, "")
}

// SetNoteText replaces the text of a note row.
func (it *Item) SetNoteText(text string) {
	if it.kind != KindNote {
		return
	}
	it.note.lines = strings.Split(text, "\n")
	it.redraw()
}

// Precision returns the decimals shown by a numeric row.
func (it *Item) Precision() int {
	if it.kind != KindDouble {
		return 0
	}
	return it.num.precision
}

// Suffix returns the unit suffix of a numeric row.
func (it *Item) Suffix() string {
	if it.kind != KindDouble {
		return ""
	}
	return it.num.suffix
}

// SelectedIndex returns the 1-based choice matching the bound value of an
// enum row, 0 when none matches.
func (it *Item) SelectedIndex() int {
	if it.kind != KindEnum {
		return 0
	}
	return it.enum.selected
}

// Control returns the item's live control, or nil.
func (it *Item) Control() palette.Control {
	return it.control()
}

// InputText returns the raw text of the live control, or "".
func (it *Item) InputText() string {
	switch it.kind {
	case KindDouble:
		if it.num.control != nil {
			return it.num.control.Text()
		}
	case KindInt:
		if it.intg.control != nil {
			return it.intg.control.Text()
		}
	case KindString:
		if it.str.control != nil {
			return it.str.control.Text()
		}
	}
	return ""
}

// DisplayValue returns the cached value formatted for display.
func (it *Item) DisplayValue() string {
	switch it.kind {
	case KindDouble:
		return formatNumber(it.num.cached, it.num.precision, it.separator())
	case KindInt:
		return strconv.Itoa(it.intg.cached)
	case KindString:
		return it.str.cached
	case KindEnum:
		if it.enum.selected == 0 {
			return ""
		}
		c := it.enum.choices[it.enum.selected-1]
		if c.Icon != 0 {
			return string(c.Icon) + " " + c.Label
		}
		return c.Label
	case KindNote:
		return strings.Join(it.note.lines, "\n")
	default:
		return ""
	}
}

func (it *Item) separator() rune {
	if it.host == nil {
		return '.'
	}
	return it.host.DecimalSeparator()
}

func formatNumber(v float64, precision int, sep rune) string {
	s := strconv.FormatFloat(v, 'f', precision, 64)
	if sep != 0 && sep != '.' {
		s = strings.Replace(s, ".", string(sep), 1)
	}
	return s
}

// HistoryKey names the input history shared by rows of the same kind and label.
func (it *Item) HistoryKey() string {
	return it.kind.String() + ":" + it.label
}

func wrongControl(c palette.Control) error {
	return fmt.Errorf("%w: unexpected control %T", palette.ErrCreateControl, c)
}

// Double

func syncDouble(it *Item) bool {
	s := it.num
	if !it.available(s.binding, "synchronize") {
		return false
	}
	v := s.binding.GetValue()
	it.stale = false
	changed := v != s.cached
	s.cached = v
	return changed
}

func activateDouble(it *Item, p *palette.Palette) (palette.Control, error) {
	s := it.num
	c, err := p.Open(palette.Spec{
		Kind:             palette.KindNumber,
		Number:           s.cached,
		Precision:        s.precision,
		Suffix:           s.suffix,
		DecimalSeparator: it.separator(),
		HistoryKey:       it.HistoryKey(),
	})
	if err != nil {
		return nil, err
	}
	ctrl, ok := c.(*palette.NumberEdit)
	if !ok {
		p.Close()
		return nil, wrongControl(c)
	}
	s.control = ctrl
	s.edited, s.valid, s.relative, s.hint = s.cached, true, false, property.NoInfo
	return ctrl, nil
}

func observeDouble(it *Item, c palette.Change) {
	s := it.num
	s.edited, s.valid = s.control.Value()
	s.relative = s.control.IsRelative()
	s.hint = c.Hint
}

func changedDouble(it *Item) bool {
	s := it.num
	return s.valid && (s.relative || s.edited != s.cached)
}

func commitDouble(it *Item, hint property.Hint) bool {
	s := it.num
	if !it.available(s.binding, "commit") {
		return false
	}
	s.binding.SetValue(s.edited, hint)
	if !s.relative {
		s.cached = s.edited
	}
	return true
}

// Int

func syncInt(it *Item) bool {
	s := it.intg
	if !it.available(s.binding, "synchronize") {
		return false
	}
	v := s.binding.GetValue()
	it.stale = false
	changed := v != s.cached
	s.cached = v
	return changed
}

func activateInt(it *Item, p *palette.Palette) (palette.Control, error) {
	s := it.intg
	c, err := p.Open(palette.Spec{Kind: palette.KindInteger, Integer: s.cached, HistoryKey: it.HistoryKey()})
	if err != nil {
		return nil, err
	}
	ctrl, ok := c.(*palette.IntEdit)
	if !ok {
		p.Close()
		return nil, wrongControl(c)
	}
	s.control = ctrl
	s.edited, s.valid, s.relative, s.hint = s.cached, true, false, property.NoInfo
	return ctrl, nil
}

func observeInt(it *Item, c palette.Change) {
	s := it.intg
	s.edited, s.valid = s.control.Value()
	s.relative = s.control.IsRelative()
	s.hint = c.Hint
}

func changedInt(it *Item) bool {
	s := it.intg
	return s.valid && (s.relative || s.edited != s.cached)
}

func commitInt(it *Item, hint property.Hint) bool {
	s := it.intg
	if !it.available(s.binding, "commit") {
		return false
	}
	s.binding.SetValue(s.edited, hint)
	if !s.relative {
		s.cached = s.edited
	}
	return true
}

// String

func syncString(it *Item) bool {
	s := it.str
	if !it.available(s.binding, "synchronize") {
		return false
	}
	v := s.binding.GetValue()
	it.stale = false
	changed := v != s.cached
	s.cached = v
	return changed
}

func activateString(it *Item, p *palette.Palette) (palette.Control, error) {
	s := it.str
	c, err := p.Open(palette.Spec{Kind: palette.KindText, Text: s.cached, HistoryKey: it.HistoryKey()})
	if err != nil {
		return nil, err
	}
	ctrl, ok := c.(*palette.TextEdit)
	if !ok {
		p.Close()
		return nil, wrongControl(c)
	}
	s.control = ctrl
	s.edited, s.hint = s.cached, property.NoInfo
	return ctrl, nil
}

func observeString(it *Item, c palette.Change) {
	s := it.str
	s.edited = s.control.Text()
	s.hint = c.Hint
}

func changedString(it *Item) bool {
	return it.str.edited != it.str.cached
}

func commitString(it *Item, hint property.Hint) bool {
	s := it.str
	if !it.available(s.binding, "commit") {
		return false
	}
	s.binding.SetValue(s.edited, hint)
	s.cached = s.edited
	return true
}

// Enum

func syncEnum(it *Item) bool {
	s := it.enum
	if !it.available(s.binding, "synchronize") {
		return false
	}
	idx := s.index()
	it.stale = false
	changed := idx != s.selected
	s.selected = idx
	if s.control != nil {
		s.control.SetSelected(idx)
	}
	return changed
}

func activateEnum(it *Item, p *palette.Palette) (palette.Control, error) {
	s := it.enum
	c, err := p.Open(palette.Spec{Kind: palette.KindPopup, Choices: s.choices, Selected: s.selected})
	if err != nil {
		return nil, err
	}
	ctrl, ok := c.(*palette.Popup)
	if !ok {
		p.Close()
		return nil, wrongControl(c)
	}
	s.control = ctrl
	return ctrl, nil
}

// observeEnum pushes a new selection immediately with the tracker hint.
func observeEnum(it *Item, _ palette.Change) {
	s := it.enum
	idx := s.control.Selected()
	if idx == 0 || idx == s.selected || !it.enabled {
		return
	}
	if !it.available(s.binding, "commit") {
		return
	}
	hint := property.NoInfo
	if it.host != nil {
		hint = it.host.Hint()
	}
	pushed := false
	it.guard("commit", func() {
		s.set(idx, hint)
		pushed = true
	})
	if !pushed {
		return
	}
	s.selected = idx
	if it.host != nil {
		it.host.ItemCommitted(it, hint)
	}
}
