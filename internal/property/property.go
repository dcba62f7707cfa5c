// Package property defines the bindings that connect tracker fields to
// document values, and the Hint attached to every value a field produces.
package property

// Hint tells the value owner how to interpret a value just produced.
// It accompanies a single SetValue call and is never stored as state.
type Hint uint8

const (
	// NoInfo carries no instruction.
	NoInfo Hint = iota

	// ContinueInput means more input follows.
	ContinueInput

	// ContinueInputWithNumericValue means a number was typed.
	ContinueInputWithNumericValue

	// ContinueInputWithFocusLost means input continues after the field lost focus.
	ContinueInputWithFocusLost

	// ContinueInputWithRelativeInput means the value is an offset, not absolute.
	ContinueInputWithRelativeInput

	// EndInput means the input sequence is complete.
	EndInput
)

var hintNames = [...]string{
	NoInfo:                         "NoInfo",
	ContinueInput:                  "ContinueInput",
	ContinueInputWithNumericValue:  "ContinueInputWithNumericValue",
	ContinueInputWithFocusLost:     "ContinueInputWithFocusLost",
	ContinueInputWithRelativeInput: "ContinueInputWithRelativeInput",
	EndInput:                       "EndInput",
}

// String returns the hint name.
func (h Hint) String() string {
	if int(h) < len(hintNames) {
		return hintNames[h]
	}
	return "Hint(?)"
}

// IsRelative reports whether the value is an offset.
func (h Hint) IsRelative() bool {
	return h == ContinueInputWithRelativeInput
}

// Binding is the get/set contract between a field and a document value.
// There is no error channel: the owner keeps the value valid.
type Binding[V any] interface {
	GetValue() V
	SetValue(value V, hint Hint)
}

// Double binds a floating point value such as a length or an angle.
type Double interface {
	Binding[float64]
}

// Int binds an integer value.
type Int interface {
	Binding[int]
}

// String binds a text value.
type String interface {
	Binding[string]
}

// Enum binds a value chosen from a fixed set of choices.
type Enum[V comparable] interface {
	Binding[V]
}

// Availability is optionally implemented by bindings whose target can
// disappear, for example when the document element was deleted.
// An unavailable binding is neither read nor written.
type Availability interface {
	Available() bool
}

// IsAvailable reports whether b can be used. Bindings that do not
// implement Availability are always available.
func IsAvailable(b any) bool {
	if a, ok := b.(Availability); ok {
		return a.Available()
	}
	return true
}
