package tracker

// State is the tracker mode.
type State uint8

const (
	// StateRunning mirrors properties and follows the pointer.
	StateRunning State = iota

	// StateEditing has one active item with a live control.
	StateEditing
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StateEditing:
		return "editing"
	default:
		return "unknown"
	}
}

// ValueHandling selects what happens to the edited value on deactivation.
type ValueHandling uint8

const (
	// Accept pushes the edited value to the property.
	Accept ValueHandling = iota

	// Reject discards the edited value.
	Reject
)

// String returns the value handling name.
func (v ValueHandling) String() string {
	if v == Accept {
		return "accept"
	}
	return "reject"
}

// PositionHandling selects whether deactivation moves the window.
type PositionHandling uint8

const (
	// KeepAsItIs leaves the window where it is.
	KeepAsItIs PositionHandling = iota

	// RemoveFromIdealPosition relocates the window by the ideal-position rule.
	RemoveFromIdealPosition
)

// String returns the position handling name.
func (p PositionHandling) String() string {
	if p == KeepAsItIs {
		return "keep"
	}
	return "relocate"
}
