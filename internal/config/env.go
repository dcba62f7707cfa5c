package config

import (
	"strconv"
	"strings"

	"github.com/dshills/proptrack/internal/logging"
)

// EnvPrefix prefixes every environment variable read by ApplyEnv.
const EnvPrefix = "PROPTRACK_"

// LookupFunc looks up an environment variable, like os.LookupEnv.
type LookupFunc func(key string) (string, bool)

type envSetter func(c *Config, value string) error

// envMapping maps environment variables to settings.
var envMapping = map[string]envSetter{
	logging.LevelEnvVar: func(c *Config, v string) error {
		c.Logging.Level = v
		return nil
	},
	EnvPrefix + "LOG_ENCODING": func(c *Config, v string) error {
		c.Logging.Encoding = v
		return nil
	},
	EnvPrefix + "DARK_MODE":  boolSetter("theme.dark_mode", func(c *Config) *bool { return &c.Theme.DarkMode }),
	EnvPrefix + "DRAW_FRAME": boolSetter("theme.draw_frame", func(c *Config) *bool { return &c.Theme.DrawFrame }),
	EnvPrefix + "SMALL_FONT": boolSetter("theme.small_font", func(c *Config) *bool { return &c.Theme.SmallFont }),
	EnvPrefix + "OPACITY":    floatSetter("theme.opacity", func(c *Config) *float64 { return &c.Theme.Opacity }),
	EnvPrefix + "FADE_MS":    intSetter("timing.fade_ms", func(c *Config) *int { return &c.Timing.FadeMs }),
	EnvPrefix + "QUICK_ANIMATION_MS": intSetter("timing.quick_animation_ms",
		func(c *Config) *int { return &c.Timing.QuickAnimationMs }),
	EnvPrefix + "DIRECT_INPUT": boolSetter("tracker.direct_input",
		func(c *Config) *bool { return &c.Tracker.DirectInput }),
	EnvPrefix + "EDIT_MINIMIZED": boolSetter("tracker.edit_minimized",
		func(c *Config) *bool { return &c.Tracker.EditMinimized }),
	EnvPrefix + "SHOW_PARAMETER_NAMES": boolSetter("tracker.show_parameter_names",
		func(c *Config) *bool { return &c.Tracker.ShowParameterNames }),
	EnvPrefix + "DECIMAL_SEPARATOR": func(c *Config, v string) error {
		c.Tracker.DecimalSeparator = v
		return nil
	},
}

// ApplyEnv overrides settings from PROPTRACK_* variables. Empty values are
// treated as set.
func (c *Config) ApplyEnv(lookup LookupFunc) error {
	if lookup == nil {
		return nil
	}
	for name, set := range envMapping {
		v, ok := lookup(name)
		if !ok {
			continue
		}
		if err := set(c, v); err != nil {
			return err
		}
	}
	return nil
}

func boolSetter(path string, field func(*Config) *bool) envSetter {
	return func(c *Config, v string) error {
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return invalid(path, v, "not a boolean")
		}
		*field(c) = b
		return nil
	}
}

func intSetter(path string, field func(*Config) *int) envSetter {
	return func(c *Config, v string) error {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return invalid(path, v, "not an integer")
		}
		*field(c) = n
		return nil
	}
}

func floatSetter(path string, field func(*Config) *float64) envSetter {
	return func(c *Config, v string) error {
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return invalid(path, v, "not a number")
		}
		*field(c) = f
		return nil
	}
}
