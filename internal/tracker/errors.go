package tracker

import "errors"

var (
	// ErrTransitionInProgress is returned when a mode change is requested
	// while another one is still running, e.g. from a notification hook.
	ErrTransitionInProgress = errors.New("tracker: transition in progress")

	// ErrNotRunning is returned when an operation requires Running state.
	ErrNotRunning = errors.New("tracker: not in running mode")

	// ErrNotEditing is returned when an operation requires Editing state.
	ErrNotEditing = errors.New("tracker: not in edit mode")

	// ErrEmpty is returned when the tracker has no items.
	ErrEmpty = errors.New("tracker: no items")

	// ErrNoEditableItem is returned when no item can become active.
	ErrNoEditableItem = errors.New("tracker: no editable item")

	// ErrActivationFailed is returned when the active item could not create
	// its control. The tracker stays in Running state.
	ErrActivationFailed = errors.New("tracker: activation failed")

	// ErrNilItem is returned when a nil item is passed.
	ErrNilItem = errors.New("tracker: nil item")

	// ErrDuplicateItem is returned when an item is added twice.
	ErrDuplicateItem = errors.New("tracker: item already added")

	// ErrNotMember is returned for items the tracker does not own.
	ErrNotMember = errors.New("tracker: item not in tracker")
)
