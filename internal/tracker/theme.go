package tracker

import "github.com/dshills/proptrack/internal/renderer/core"

// ColorSet is the palette of one appearance.
type ColorSet struct {
	Text       core.Color
	Background core.Color
	Frame      core.Color
}

// ThemeConfig describes how trackers are painted.
type ThemeConfig struct {
	Light ColorSet
	Dark  ColorSet

	// Opacity is the initial global alpha of new trackers.
	Opacity float64

	DrawFrame bool

	// SmallFont drops the horizontal padding inside the frame.
	SmallFont bool
}

// DefaultTheme returns the built-in theme.
func DefaultTheme() ThemeConfig {
	return ThemeConfig{
		Light: ColorSet{
			Text:       core.MustHex("#1e1e1e"),
			Background: core.MustHex("#f4f4ec"),
			Frame:      core.MustHex("#8a8a80"),
		},
		Dark: ColorSet{
			Text:       core.MustHex("#e8e8e8"),
			Background: core.MustHex("#2b2d30"),
			Frame:      core.MustHex("#5c6066"),
		},
		Opacity:   0.9,
		DrawFrame: true,
	}
}

// Colors returns the color set for the appearance.
func (c ThemeConfig) Colors(dark bool) ColorSet {
	if dark {
		return c.Dark
	}
	return c.Light
}

// ThemeOverrides holds per-tracker replacements. Nil fields fall back to
// the tracker theme.
type ThemeOverrides struct {
	LightText       *core.Color
	LightBackground *core.Color
	LightFrame      *core.Color
	DarkText        *core.Color
	DarkBackground  *core.Color
	DarkFrame       *core.Color
	DrawFrame       *bool
}

// Apply layers the overrides over base.
func (o ThemeOverrides) Apply(base ThemeConfig) ThemeConfig {
	pick := func(dst *core.Color, src *core.Color) {
		if src != nil {
			*dst = *src
		}
	}
	pick(&base.Light.Text, o.LightText)
	pick(&base.Light.Background, o.LightBackground)
	pick(&base.Light.Frame, o.LightFrame)
	pick(&base.Dark.Text, o.DarkText)
	pick(&base.Dark.Background, o.DarkBackground)
	pick(&base.Dark.Frame, o.DarkFrame)
	if o.DrawFrame != nil {
		base.DrawFrame = *o.DrawFrame
	}
	return base
}

// Theme returns the tracker theme without per-tracker overrides.
func (t *Tracker) Theme() ThemeConfig { return t.cfg.Theme }

// SetTheme replaces the tracker theme. Overrides stay in effect.
func (t *Tracker) SetTheme(theme ThemeConfig) {
	t.cfg.Theme = theme
	t.requestRedraw()
}

// ResetTheme restores the built-in theme and drops all overrides.
func (t *Tracker) ResetTheme() {
	t.cfg.Theme = DefaultTheme()
	t.overrides = ThemeOverrides{}
	t.requestRedraw()
}

// EffectiveTheme returns the theme with overrides applied.
func (t *Tracker) EffectiveTheme() ThemeConfig {
	return t.overrides.Apply(t.cfg.Theme)
}

// SetCustomTextColor overrides the text color of both appearances.
func (t *Tracker) SetCustomTextColor(light, dark core.Color) {
	t.overrides.LightText, t.overrides.DarkText = &light, &dark
	t.requestRedraw()
}

// SetCustomBackgroundColor overrides the background of both appearances.
func (t *Tracker) SetCustomBackgroundColor(light, dark core.Color) {
	t.overrides.LightBackground, t.overrides.DarkBackground = &light, &dark
	t.requestRedraw()
}

// SetCustomFrameColor overrides the frame color of both appearances.
func (t *Tracker) SetCustomFrameColor(light, dark core.Color) {
	t.overrides.LightFrame, t.overrides.DarkFrame = &light, &dark
	t.requestRedraw()
}

// SetCustomDrawFrame overrides whether the frame is drawn.
func (t *Tracker) SetCustomDrawFrame(draw bool) {
	t.overrides.DrawFrame = &draw
	t.requestRedraw()
}

// ClearCustomColors drops all per-tracker overrides.
func (t *Tracker) ClearCustomColors() {
	t.overrides = ThemeOverrides{}
	t.requestRedraw()
}

// SetDarkMode selects the dark appearance.
func (t *Tracker) SetDarkMode(dark bool) {
	t.darkMode = dark
	t.requestRedraw()
}

// IsDarkMode reports whether the dark appearance is selected.
func (t *Tracker) IsDarkMode() bool { return t.darkMode }

// ForegroundColor returns the effective text color.
func (t *Tracker) ForegroundColor() core.Color {
	return t.EffectiveTheme().Colors(t.darkMode).Text
}

// BackgroundColor returns the effective background color.
func (t *Tracker) BackgroundColor() core.Color {
	return t.EffectiveTheme().Colors(t.darkMode).Background
}

// FrameColor returns the effective frame color.
func (t *Tracker) FrameColor() core.Color {
	return t.EffectiveTheme().Colors(t.darkMode).Frame
}
