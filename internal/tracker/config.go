package tracker

import (
	"time"

	"go.uber.org/zap"

	"github.com/dshills/proptrack/internal/input/key"
	"github.com/dshills/proptrack/internal/renderer/core"
	"github.com/dshills/proptrack/internal/tracker/palette"
)

// KeyBindings holds the keys of the default handlers.
type KeyBindings struct {
	Next     key.Event
	Prev     key.Event
	First    key.Event
	Last     key.Event
	Accept   key.Event
	Reject   key.Event
	Activate key.Event
}

// DefaultKeyBindings returns the standard bindings.
func DefaultKeyBindings() KeyBindings {
	return KeyBindings{
		Next:     key.MustParse("Tab"),
		Prev:     key.MustParse("<S-Tab>"),
		First:    key.MustParse("Ctrl+Home"),
		Last:     key.MustParse("Ctrl+End"),
		Accept:   key.MustParse("Enter"),
		Reject:   key.MustParse("Escape"),
		Activate: key.MustParse("Tab"),
	}
}

// Config holds tracker preferences.
type Config struct {
	Theme ThemeConfig
	Keys  KeyBindings

	// DirectInput lets digits, signs and the decimal separator start
	// editing from Running state.
	DirectInput bool

	// DecimalSeparator is used to format and parse numbers.
	DecimalSeparator rune

	// EditMinimized keeps the row set unchanged when editing starts.
	EditMinimized bool

	// ShowParameterNames shows item labels while editing.
	ShowParameterNames bool

	// AlwaysShowParameterNames shows item labels in Running state too.
	AlwaysShowParameterNames bool

	// ClickThrough lets mouse events pass to the canvas while Running.
	ClickThrough bool

	// Offset is added to the anchor to place the window.
	Offset core.ScreenPos

	QuickAnimation time.Duration
	FadeDuration   time.Duration

	// HoverAlpha scales the opacity while the pointer hovers the window in
	// Running state.
	HoverAlpha float64
}

// DefaultConfig returns the default tracker configuration.
func DefaultConfig() Config {
	return Config{
		Theme:              DefaultTheme(),
		Keys:               DefaultKeyBindings(),
		DirectInput:        true,
		DecimalSeparator:   '.',
		ShowParameterNames: true,
		ClickThrough:       true,
		Offset:             core.NewScreenPos(1, 2),
		QuickAnimation:     120 * time.Millisecond,
		FadeDuration:       200 * time.Millisecond,
		HoverAlpha:         0.35,
	}
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithConfig replaces the tracker configuration.
func WithConfig(cfg Config) Option {
	return func(t *Tracker) {
		t.cfg = cfg
	}
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(t *Tracker) {
		t.baseLogger = l
	}
}

// WithHooks sets the notification hooks.
func WithHooks(h Hooks) Option {
	return func(t *Tracker) {
		t.hooks = h
	}
}

// WithPaletteFactory sets the factory used to create live controls.
func WithPaletteFactory(f palette.Factory) Option {
	return func(t *Tracker) {
		t.palette = palette.NewWithFactory(f)
	}
}

// WithClock sets the time source used to start animations.
func WithClock(now func() time.Time) Option {
	return func(t *Tracker) {
		t.now = now
	}
}
