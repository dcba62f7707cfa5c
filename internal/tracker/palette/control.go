package palette

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dshills/proptrack/internal/input/key"
	"github.com/dshills/proptrack/internal/property"
)

// Kind identifies a control type.
type Kind uint8

const (
	KindNumber Kind = iota
	KindInteger
	KindText
	KindPopup
)

// String returns the control kind name.
func (k Kind) String() string {
	switch k {
	case KindNumber:
		return "number"
	case KindInteger:
		return "integer"
	case KindText:
		return "text"
	case KindPopup:
		return "popup"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// Choice is one entry of a popup.
type Choice struct {
	Icon  rune
	Label string
}

// Spec describes the control to create and its initial value.
type Spec struct {
	Kind Kind

	// Number, Precision and Suffix configure KindNumber.
	Number    float64
	Precision int
	Suffix    string

	// DecimalSeparator is accepted in addition to '.'. Zero means '.'.
	DecimalSeparator rune

	// Integer configures KindInteger.
	Integer int

	// Text configures KindText.
	Text string

	// Choices and Selected (1-based, 0 for none) configure KindPopup.
	Choices  []Choice
	Selected int

	// HistoryKey selects the input history offered with Up/Down.
	HistoryKey string
}

// Change is delivered to observers after every edit.
type Change struct {
	Control Control
	Hint    property.Hint
}

// Control is a live input control hosted by a Palette.
type Control interface {
	// Kind returns the control type.
	Kind() Kind

	// HandleKey applies a key press and reports whether it was consumed.
	HandleKey(ev key.Event) bool

	// Display returns the text to render for the control.
	Display() string

	// Cursor returns the cursor column within Display.
	Cursor() int

	bind(notify func(Change), history []string)
}

// base carries observer wiring and history recall shared by the editors.
type base struct {
	notify  func(Change)
	history []string
	recall  int
}

func (b *base) bind(notify func(Change), history []string) {
	b.notify = notify
	b.history = history
	b.recall = -1
}

func (b *base) emit(c Control, hint property.Hint) {
	if b.notify != nil {
		b.notify(Change{Control: c, Hint: hint})
	}
}

// recallHistory steps through the history and returns the entry to show.
func (b *base) recallHistory(older bool) (string, bool) {
	if len(b.history) == 0 {
		return "", false
	}
	next := b.recall
	if older {
		next++
	} else {
		next--
	}
	if next < 0 || next >= len(b.history) {
		return "", false
	}
	b.recall = next
	return b.history[next], true
}

// textBuffer is an append-only line editor with replace-on-first-type.
type textBuffer struct {
	text  string
	fresh bool
}

func (t *textBuffer) insert(r rune) {
	if t.fresh {
		t.text = ""
		t.fresh = false
	}
	t.text += string(r)
}

func (t *textBuffer) backspace() bool {
	t.fresh = false
	if t.text == "" {
		return false
	}
	_, size := utf8.DecodeLastRuneInString(t.text)
	t.text = t.text[:len(t.text)-size]
	return true
}

func (t *textBuffer) set(s string) {
	t.text = s
	t.fresh = false
}

// NumberEdit edits a floating point value.
// A leading sign marks the input as relative.
type NumberEdit struct {
	base
	buf       textBuffer
	precision int
	suffix    string
	sep       rune
}

// NewNumberEdit creates a number editor preloaded with value.
func NewNumberEdit(value float64, precision int, suffix string, sep rune) *NumberEdit {
	if sep == 0 {
		sep = '.'
	}
	n := &NumberEdit{precision: max(precision, 0), suffix: suffix, sep: sep}
	n.buf = textBuffer{text: n.format(value), fresh: true}
	return n
}

func (n *NumberEdit) format(v float64) string {
	s := strconv.FormatFloat(v, 'f', n.precision, 64)
	if n.sep != '.' {
		s = strings.Replace(s, ".", string(n.sep), 1)
	}
	return s
}

// Kind returns KindNumber.
func (n *NumberEdit) Kind() Kind { return KindNumber }

// Text returns the raw input text.
func (n *NumberEdit) Text() string { return n.buf.text }

// Display returns the input followed by the unit suffix.
func (n *NumberEdit) Display() string { return n.buf.text + n.suffix }

// Cursor returns the column after the last typed character.
func (n *NumberEdit) Cursor() int { return utf8.RuneCountInString(n.buf.text) }

// IsRelative reports whether the input starts with a sign.
func (n *NumberEdit) IsRelative() bool {
	return strings.HasPrefix(n.buf.text, "+") || strings.HasPrefix(n.buf.text, "-")
}

// Value parses the input. ok is false while the text is not a number.
func (n *NumberEdit) Value() (v float64, ok bool) {
	s := strings.ReplaceAll(n.buf.text, string(n.sep), ".")
	v, err := strconv.ParseFloat(s, 64)
	return v, err == nil
}

// Hint returns the hint matching the current input.
func (n *NumberEdit) Hint() property.Hint {
	if n.IsRelative() {
		return property.ContinueInputWithRelativeInput
	}
	return property.ContinueInputWithNumericValue
}

// HandleKey accepts digits, one decimal separator, and a leading sign.
func (n *NumberEdit) HandleKey(ev key.Event) bool {
	switch {
	case ev.Matches(key.NewSpecialEvent(key.KeyBackspace, key.ModNone)):
		if !n.buf.backspace() {
			return true
		}
	case ev.Key == key.KeyUp || ev.Key == key.KeyDown:
		text, ok := n.recallHistory(ev.Key == key.KeyUp)
		if !ok {
			return true
		}
		n.buf.set(text)
	case ev.IsDigit():
		n.buf.insert(ev.Rune)
	case ev.IsChar() && (ev.Rune == '+' || ev.Rune == '-'):
		if !n.buf.fresh && n.buf.text != "" {
			return false
		}
		n.buf.insert(ev.Rune)
	case ev.IsChar() && (ev.Rune == '.' || ev.Rune == n.sep):
		if !n.buf.fresh && strings.ContainsAny(n.buf.text, "."+string(n.sep)) {
			return true
		}
		n.buf.insert(n.sep)
	default:
		return false
	}
	n.emit(n, n.Hint())
	return true
}

// IntEdit edits an integer value.
type IntEdit struct {
	base
	buf textBuffer
}

// NewIntEdit creates an integer editor preloaded with value.
func NewIntEdit(value int) *IntEdit {
	return &IntEdit{buf: textBuffer{text: strconv.Itoa(value), fresh: true}}
}

// Kind returns KindInteger.
func (e *IntEdit) Kind() Kind { return KindInteger }

// Text returns the raw input text.
func (e *IntEdit) Text() string { return e.buf.text }

// Display returns the input text.
func (e *IntEdit) Display() string { return e.buf.text }

// Cursor returns the column after the last typed character.
func (e *IntEdit) Cursor() int { return utf8.RuneCountInString(e.buf.text) }

// IsRelative reports whether the input starts with a sign.
func (e *IntEdit) IsRelative() bool {
	return strings.HasPrefix(e.buf.text, "+") || strings.HasPrefix(e.buf.text, "-")
}

// Value parses the input. ok is false while the text is not an integer.
func (e *IntEdit) Value() (int, bool) {
	v, err := strconv.Atoi(e.buf.text)
	return v, err == nil
}

// Hint returns the hint matching the current input.
func (e *IntEdit) Hint() property.Hint {
	if e.IsRelative() {
		return property.ContinueInputWithRelativeInput
	}
	return property.ContinueInputWithNumericValue
}

// HandleKey accepts digits and a leading sign.
func (e *IntEdit) HandleKey(ev key.Event) bool {
	switch {
	case ev.Matches(key.NewSpecialEvent(key.KeyBackspace, key.ModNone)):
		if !e.buf.backspace() {
			return true
		}
	case ev.Key == key.KeyUp || ev.Key == key.KeyDown:
		text, ok := e.recallHistory(ev.Key == key.KeyUp)
		if !ok {
			return true
		}
		e.buf.set(text)
	case ev.IsDigit():
		e.buf.insert(ev.Rune)
	case ev.IsChar() && (ev.Rune == '+' || ev.Rune == '-'):
		if !e.buf.fresh && e.buf.text != "" {
			return false
		}
		e.buf.insert(ev.Rune)
	default:
		return false
	}
	e.emit(e, e.Hint())
	return true
}

// TextEdit edits free text.
type TextEdit struct {
	base
	buf textBuffer
}

// NewTextEdit creates a text editor preloaded with text.
func NewTextEdit(text string) *TextEdit {
	return &TextEdit{buf: textBuffer{text: text, fresh: true}}
}

// Kind returns KindText.
func (e *TextEdit) Kind() Kind { return KindText }

// Text returns the current text.
func (e *TextEdit) Text() string { return e.buf.text }

// Display returns the current text.
func (e *TextEdit) Display() string { return e.buf.text }

// Cursor returns the column after the last typed character.
func (e *TextEdit) Cursor() int { return utf8.RuneCountInString(e.buf.text) }

// HandleKey accepts printable characters.
func (e *TextEdit) HandleKey(ev key.Event) bool {
	switch {
	case ev.Matches(key.NewSpecialEvent(key.KeyBackspace, key.ModNone)):
		if !e.buf.backspace() {
			return true
		}
	case ev.Key == key.KeyUp || ev.Key == key.KeyDown:
		text, ok := e.recallHistory(ev.Key == key.KeyUp)
		if !ok {
			return true
		}
		e.buf.set(text)
	case ev.IsChar():
		e.buf.insert(ev.Rune)
	default:
		return false
	}
	e.emit(e, property.ContinueInput)
	return true
}

// Popup selects one of a fixed list of choices.
type Popup struct {
	base
	choices  []Choice
	selected int
}

// NewPopup creates a popup with a 1-based selection (0 for none).
func NewPopup(choices []Choice, selected int) *Popup {
	p := &Popup{choices: append([]Choice(nil), choices...)}
	p.SetSelected(selected)
	return p
}

// Kind returns KindPopup.
func (p *Popup) Kind() Kind { return KindPopup }

// Choices returns the popup entries.
func (p *Popup) Choices() []Choice { return p.choices }

// Selected returns the 1-based selection, 0 when nothing is selected.
func (p *Popup) Selected() int { return p.selected }

// SetSelected changes the selection without notifying observers.
// Out of range values clear the selection.
func (p *Popup) SetSelected(index int) {
	if index < 1 || index > len(p.choices) {
		index = 0
	}
	p.selected = index
}

// Display returns the label of the selected choice.
func (p *Popup) Display() string {
	if p.selected == 0 {
		return ""
	}
	c := p.choices[p.selected-1]
	if c.Icon != 0 {
		return string(c.Icon) + " " + c.Label
	}
	return c.Label
}

// Cursor is always 0 for a popup.
func (p *Popup) Cursor() int { return 0 }

// HandleKey moves the selection with the arrow keys or by typing the first
// letter of a label. Every change notifies observers.
func (p *Popup) HandleKey(ev key.Event) bool {
	if len(p.choices) == 0 {
		return false
	}
	next := p.selected
	switch {
	case ev.Key == key.KeyDown || ev.Key == key.KeyRight:
		next = p.selected%len(p.choices) + 1
	case ev.Key == key.KeyUp || ev.Key == key.KeyLeft:
		next = p.selected - 1
		if next < 1 {
			next = len(p.choices)
		}
	case ev.IsChar():
		next = p.matchPrefix(ev.Rune)
		if next == 0 {
			return true
		}
	default:
		return false
	}
	if next != p.selected {
		p.selected = next
		p.emit(p, property.NoInfo)
	}
	return true
}

// matchPrefix finds the next choice after the selection whose label starts with r.
func (p *Popup) matchPrefix(r rune) int {
	r = unicode.ToLower(r)
	n := len(p.choices)
	for i := 1; i <= n; i++ {
		idx := (p.selected+i-1)%n + 1
		first, _ := utf8.DecodeRuneInString(p.choices[idx-1].Label)
		if unicode.ToLower(first) == r {
			return idx
		}
	}
	return 0
}
