package config

import (
	"time"
	"unicode/utf8"

	"github.com/dshills/proptrack/internal/input/key"
	"github.com/dshills/proptrack/internal/logging"
	"github.com/dshills/proptrack/internal/renderer/core"
	"github.com/dshills/proptrack/internal/tracker"
)

// Config is the complete proptrack configuration.
type Config struct {
	Logging LoggingSection `toml:"logging" yaml:"logging"`
	Theme   ThemeSection   `toml:"theme" yaml:"theme"`
	Timing  TimingSection  `toml:"timing" yaml:"timing"`
	Tracker TrackerSection `toml:"tracker" yaml:"tracker"`
	Keys    KeysSection    `toml:"keys" yaml:"keys"`
}

// LoggingSection configures the logger.
type LoggingSection struct {
	Level    string   `toml:"level" yaml:"level"`
	Encoding string   `toml:"encoding" yaml:"encoding"`
	Output   []string `toml:"output" yaml:"output"`
}

// ColorSection holds hex colors for one appearance.
type ColorSection struct {
	Text       string `toml:"text" yaml:"text"`
	Background string `toml:"background" yaml:"background"`
	Frame      string `toml:"frame" yaml:"frame"`
}

// ThemeSection configures tracker painting.
type ThemeSection struct {
	Light     ColorSection `toml:"light" yaml:"light"`
	Dark      ColorSection `toml:"dark" yaml:"dark"`
	DarkMode  bool         `toml:"dark_mode" yaml:"dark_mode"`
	Opacity   float64      `toml:"opacity" yaml:"opacity"`
	DrawFrame bool         `toml:"draw_frame" yaml:"draw_frame"`
	SmallFont bool         `toml:"small_font" yaml:"small_font"`
}

// TimingSection holds animation timings in milliseconds.
type TimingSection struct {
	QuickAnimationMs int `toml:"quick_animation_ms" yaml:"quick_animation_ms"`
	FadeMs           int `toml:"fade_ms" yaml:"fade_ms"`
}

// TrackerSection holds tracker behavior preferences.
type TrackerSection struct {
	DirectInput              bool    `toml:"direct_input" yaml:"direct_input"`
	ShowParameterNames       bool    `toml:"show_parameter_names" yaml:"show_parameter_names"`
	AlwaysShowParameterNames bool    `toml:"always_show_parameter_names" yaml:"always_show_parameter_names"`
	EditMinimized            bool    `toml:"edit_minimized" yaml:"edit_minimized"`
	ClickThrough             bool    `toml:"click_through" yaml:"click_through"`
	DecimalSeparator         string  `toml:"decimal_separator" yaml:"decimal_separator"`
	HoverAlpha               float64 `toml:"hover_alpha" yaml:"hover_alpha"`
}

// KeysSection holds key specs such as "Tab", "<S-Tab>" or "Ctrl+Home".
type KeysSection struct {
	Next     string `toml:"next" yaml:"next"`
	Prev     string `toml:"prev" yaml:"prev"`
	First    string `toml:"first" yaml:"first"`
	Last     string `toml:"last" yaml:"last"`
	Accept   string `toml:"accept" yaml:"accept"`
	Reject   string `toml:"reject" yaml:"reject"`
	Activate string `toml:"activate" yaml:"activate"`
}

// Default returns the built-in configuration.
func Default() *Config {
	tc := tracker.DefaultConfig()
	theme := tc.Theme
	lc := logging.DefaultConfig()
	return &Config{
		Logging: LoggingSection{
			Level:    lc.Level,
			Encoding: lc.Encoding,
			Output:   lc.OutputPaths,
		},
		Theme: ThemeSection{
			Light:     colorSection(theme.Light),
			Dark:      colorSection(theme.Dark),
			Opacity:   theme.Opacity,
			DrawFrame: theme.DrawFrame,
			SmallFont: theme.SmallFont,
		},
		Timing: TimingSection{
			QuickAnimationMs: int(tc.QuickAnimation / time.Millisecond),
			FadeMs:           int(tc.FadeDuration / time.Millisecond),
		},
		Tracker: TrackerSection{
			DirectInput:              tc.DirectInput,
			ShowParameterNames:       tc.ShowParameterNames,
			AlwaysShowParameterNames: tc.AlwaysShowParameterNames,
			EditMinimized:            tc.EditMinimized,
			ClickThrough:             tc.ClickThrough,
			DecimalSeparator:         string(tc.DecimalSeparator),
			HoverAlpha:               tc.HoverAlpha,
		},
		Keys: KeysSection{
			Next:     tc.Keys.Next.String(),
			Prev:     tc.Keys.Prev.String(),
			First:    tc.Keys.First.String(),
			Last:     tc.Keys.Last.String(),
			Accept:   tc.Keys.Accept.String(),
			Reject:   tc.Keys.Reject.String(),
			Activate: tc.Keys.Activate.String(),
		},
	}
}

func colorSection(c tracker.ColorSet) ColorSection {
	return ColorSection{
		Text:       c.Text.String(),
		Background: c.Background.String(),
		Frame:      c.Frame.String(),
	}
}

// ReadTimesPref converts a millisecond preference to a duration of at
// least one millisecond.
func ReadTimesPref(ms int) time.Duration {
	return time.Duration(max(ms, 1)) * time.Millisecond
}

// QuickAnimation returns the relocation animation duration.
func (t TimingSection) QuickAnimation() time.Duration { return ReadTimesPref(t.QuickAnimationMs) }

// Fade returns the fade animation duration.
func (t TimingSection) Fade() time.Duration { return ReadTimesPref(t.FadeMs) }

// LoggingConfig returns the logger configuration.
func (c *Config) LoggingConfig() logging.Config {
	return logging.Config{
		Level:       c.Logging.Level,
		Encoding:    c.Logging.Encoding,
		OutputPaths: c.Logging.Output,
	}
}

// ThemeConfig converts the theme section.
func (c *Config) ThemeConfig() (tracker.ThemeConfig, error) {
	light, err := c.Theme.Light.colorSet("theme.light")
	if err != nil {
		return tracker.ThemeConfig{}, err
	}
	dark, err := c.Theme.Dark.colorSet("theme.dark")
	if err != nil {
		return tracker.ThemeConfig{}, err
	}
	if c.Theme.Opacity < 0 || c.Theme.Opacity > 1 {
		return tracker.ThemeConfig{}, invalid("theme.opacity", c.Theme.Opacity, "must be within [0, 1]")
	}
	return tracker.ThemeConfig{
		Light:     light,
		Dark:      dark,
		Opacity:   c.Theme.Opacity,
		DrawFrame: c.Theme.DrawFrame,
		SmallFont: c.Theme.SmallFont,
	}, nil
}

func (s ColorSection) colorSet(path string) (tracker.ColorSet, error) {
	var out tracker.ColorSet
	fields := []struct {
		name string
		hex  string
		dst  *core.Color
	}{
		{"text", s.Text, &out.Text},
		{"background", s.Background, &out.Background},
		{"frame", s.Frame, &out.Frame},
	}
	for _, f := range fields {
		c, err := core.ColorFromHex(f.hex)
		if err != nil {
			return out, invalid(path+"."+f.name, f.hex, err.Error())
		}
		*f.dst = c
	}
	return out, nil
}

// KeyBindings parses the key section.
func (c *Config) KeyBindings() (tracker.KeyBindings, error) {
	var kb tracker.KeyBindings
	fields := []struct {
		name string
		spec string
		dst  *key.Event
	}{
		{"next", c.Keys.Next, &kb.Next},
		{"prev", c.Keys.Prev, &kb.Prev},
		{"first", c.Keys.First, &kb.First},
		{"last", c.Keys.Last, &kb.Last},
		{"accept", c.Keys.Accept, &kb.Accept},
		{"reject", c.Keys.Reject, &kb.Reject},
		{"activate", c.Keys.Activate, &kb.Activate},
	}
	for _, f := range fields {
		ev, err := key.Parse(f.spec)
		if err != nil {
			return kb, invalid("keys."+f.name, f.spec, err.Error())
		}
		*f.dst = ev
	}
	return kb, nil
}

// TrackerConfig converts the configuration for tracker.WithConfig.
func (c *Config) TrackerConfig() (tracker.Config, error) {
	tc := tracker.DefaultConfig()

	theme, err := c.ThemeConfig()
	if err != nil {
		return tc, err
	}
	keys, err := c.KeyBindings()
	if err != nil {
		return tc, err
	}
	sep, size := utf8.DecodeRuneInString(c.Tracker.DecimalSeparator)
	if size == 0 || size != len(c.Tracker.DecimalSeparator) {
		return tc, invalid("tracker.decimal_separator", c.Tracker.DecimalSeparator, "must be a single character")
	}
	if c.Tracker.HoverAlpha < 0 || c.Tracker.HoverAlpha > 1 {
		return tc, invalid("tracker.hover_alpha", c.Tracker.HoverAlpha, "must be within [0, 1]")
	}

	tc.Theme = theme
	tc.Keys = keys
	tc.DirectInput = c.Tracker.DirectInput
	tc.DecimalSeparator = sep
	tc.EditMinimized = c.Tracker.EditMinimized
	tc.ShowParameterNames = c.Tracker.ShowParameterNames
	tc.AlwaysShowParameterNames = c.Tracker.AlwaysShowParameterNames
	tc.ClickThrough = c.Tracker.ClickThrough
	tc.HoverAlpha = c.Tracker.HoverAlpha
	tc.QuickAnimation = c.Timing.QuickAnimation()
	tc.FadeDuration = c.Timing.Fade()
	return tc, nil
}

// Validate checks every section that has a syntax or range.
func (c *Config) Validate() error {
	_, err := c.TrackerConfig()
	return err
}
