package key

import (
	"strings"
	"unicode"
)

// Event represents a single key press.
type Event struct {
	// Key identifies the key pressed.
	Key Key

	// Rune is the character for KeyRune events.
	Rune rune

	// Modifiers contains the active modifier keys.
	Modifiers Modifier
}

// NewRuneEvent creates a key event for a character.
func NewRuneEvent(r rune, mods Modifier) Event {
	return Event{Key: KeyRune, Rune: r, Modifiers: mods}
}

// NewSpecialEvent creates a key event for a special key.
func NewSpecialEvent(k Key, mods Modifier) Event {
	return Event{Key: k, Modifiers: mods}
}

// IsRune returns true if this is a character key event.
func (e Event) IsRune() bool {
	return e.Key == KeyRune && e.Rune != 0
}

// IsChar returns true if this is an unmodified printable character.
func (e Event) IsChar() bool {
	return e.IsRune() && !e.IsModified() && unicode.IsPrint(e.Rune)
}

// IsDigit returns true for an unmodified 0-9 key.
func (e Event) IsDigit() bool {
	return e.IsRune() && !e.IsModified() && e.Rune >= '0' && e.Rune <= '9'
}

// IsModified returns true if any modifier is pressed.
// For character events Shift alone does not count, since it selects the character.
func (e Event) IsModified() bool {
	if e.IsRune() {
		return e.Modifiers&(ModCtrl|ModAlt|ModMeta) != 0
	}
	return e.Modifiers != ModNone
}

// Matches reports whether e is the key press described by binding.
// Shift is ignored on character keys.
func (e Event) Matches(binding Event) bool {
	if e.Key != binding.Key {
		return false
	}
	if e.Key == KeyRune {
		mask := ModCtrl | ModAlt | ModMeta
		return e.Rune == binding.Rune && e.Modifiers&mask == binding.Modifiers&mask
	}
	return e.Modifiers == binding.Modifiers
}

// String returns a canonical Vim-style representation, e.g. "<S-Tab>" or "a".
func (e Event) String() string {
	if e.IsRune() && !e.IsModified() {
		if e.Rune == ' ' {
			return "<Space>"
		}
		return string(e.Rune)
	}

	var parts []string
	if e.Modifiers.Has(ModCtrl) {
		parts = append(parts, "C")
	}
	if e.Modifiers.Has(ModAlt) {
		parts = append(parts, "A")
	}
	if e.Modifiers.Has(ModMeta) {
		parts = append(parts, "M")
	}
	if e.Modifiers.Has(ModShift) && !e.IsRune() {
		parts = append(parts, "S")
	}

	switch e.Key {
	case KeyRune:
		parts = append(parts, string(e.Rune))
	case KeyEscape:
		parts = append(parts, "Esc")
	case KeyEnter:
		parts = append(parts, "CR")
	default:
		parts = append(parts, e.Key.String())
	}
	return "<" + strings.Join(parts, "-") + ">"
}
