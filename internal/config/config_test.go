package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dshills/proptrack/internal/input/key"
	"github.com/dshills/proptrack/internal/renderer/core"
	"github.com/dshills/proptrack/internal/tracker"
)

func noEnv(string) (string, bool) { return "", false }

func envMap(m map[string]string) LookupFunc {
	return func(k string) (string, bool) {
		v, ok := m[k]
		return v, ok
	}
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	return path
}

func TestDefaultMatchesTrackerDefaults(t *testing.T) {
	cfg, err := LoadWithEnv("", noEnv)
	if err != nil {
		t.Fatalf("LoadWithEnv() error = %v", err)
	}
	tc, err := cfg.TrackerConfig()
	if err != nil {
		t.Fatalf("TrackerConfig() error = %v", err)
	}
	want := tracker.DefaultConfig()
	if tc.Theme != want.Theme {
		t.Errorf("Theme = %+v, want %+v", tc.Theme, want.Theme)
	}
	if tc.Keys != want.Keys {
		t.Errorf("Keys = %+v, want %+v", tc.Keys, want.Keys)
	}
	if tc.FadeDuration != want.FadeDuration || tc.QuickAnimation != want.QuickAnimation {
		t.Errorf("timings = %v/%v, want %v/%v", tc.FadeDuration, tc.QuickAnimation, want.FadeDuration, want.QuickAnimation)
	}
	if tc.DecimalSeparator != '.' || !tc.DirectInput {
		t.Errorf("tracker section = %q %v", tc.DecimalSeparator, tc.DirectInput)
	}
}

func TestLoadTOML(t *testing.T) {
	path := writeFile(t, "proptrack.toml", `
[logging]
level = "debug"

[theme]
opacity = 0.5
draw_frame = false

[theme.dark]
text = "#ffffff"

[timing]
fade_ms = 0
quick_animation_ms = 250

[tracker]
decimal_separator = ","
edit_minimized = true

[keys]
accept = "Ctrl+Enter"
`)
	cfg, err := LoadWithEnv(path, noEnv)
	if err != nil {
		t.Fatalf("LoadWithEnv() error = %v", err)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want debug", cfg.Logging.Level)
	}
	tc, err := cfg.TrackerConfig()
	if err != nil {
		t.Fatalf("TrackerConfig() error = %v", err)
	}
	if tc.Theme.Opacity != 0.5 || tc.Theme.DrawFrame {
		t.Errorf("theme = %+v", tc.Theme)
	}
	if tc.Theme.Dark.Text != core.ColorWhite {
		t.Errorf("Dark.Text = %v, want white", tc.Theme.Dark.Text)
	}
	if tc.Theme.Dark.Background != tracker.DefaultTheme().Dark.Background {
		t.Error("unset dark background lost its default")
	}
	if tc.FadeDuration != time.Millisecond {
		t.Errorf("FadeDuration = %v, want clamped to 1ms", tc.FadeDuration)
	}
	if tc.QuickAnimation != 250*time.Millisecond {
		t.Errorf("QuickAnimation = %v, want 250ms", tc.QuickAnimation)
	}
	if tc.DecimalSeparator != ',' || !tc.EditMinimized {
		t.Errorf("tracker = %q %v", tc.DecimalSeparator, tc.EditMinimized)
	}
	if want := key.NewSpecialEvent(key.KeyEnter, key.ModCtrl); tc.Keys.Accept != want {
		t.Errorf("Keys.Accept = %v, want %v", tc.Keys.Accept, want)
	}
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, "proptrack.yaml", `
theme:
  dark_mode: true
  light:
    background: "#101010"
tracker:
  direct_input: false
keys:
  next: "<C-n>"
`)
	cfg, err := LoadWithEnv(path, noEnv)
	if err != nil {
		t.Fatalf("LoadWithEnv() error = %v", err)
	}
	if !cfg.Theme.DarkMode {
		t.Error("DarkMode = false, want true")
	}
	tc, err := cfg.TrackerConfig()
	if err != nil {
		t.Fatalf("TrackerConfig() error = %v", err)
	}
	if tc.Theme.Light.Background != core.MustHex("#101010") {
		t.Errorf("Light.Background = %v", tc.Theme.Light.Background)
	}
	if tc.DirectInput {
		t.Error("DirectInput = true, want false")
	}
	if want := key.NewRuneEvent('n', key.ModCtrl); tc.Keys.Next != want {
		t.Errorf("Keys.Next = %v, want %v", tc.Keys.Next, want)
	}
}

func TestEmptyYAMLKeepsDefaults(t *testing.T) {
	path := writeFile(t, "empty.yml", "")
	cfg, err := LoadWithEnv(path, noEnv)
	if err != nil {
		t.Fatalf("LoadWithEnv() error = %v", err)
	}
	if cfg.Theme.Opacity != Default().Theme.Opacity {
		t.Errorf("Opacity = %v, want default", cfg.Theme.Opacity)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	path := writeFile(t, "proptrack.toml", "[theme]\nopacity = 0.5\n")
	cfg, err := LoadWithEnv(path, envMap(map[string]string{
		"PROPTRACK_OPACITY":     "0.25",
		"PROPTRACK_LOG_LEVEL":   "warn",
		"PROPTRACK_DARK_MODE":   "true",
		"PROPTRACK_FADE_MS":     "40",
		"PROPTRACK_UNRELATED_X": "ignored",
	}))
	if err != nil {
		t.Fatalf("LoadWithEnv() error = %v", err)
	}
	if cfg.Theme.Opacity != 0.25 {
		t.Errorf("Opacity = %v, want 0.25", cfg.Theme.Opacity)
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("Logging.Level = %q, want warn", cfg.Logging.Level)
	}
	if !cfg.Theme.DarkMode {
		t.Error("DarkMode = false, want true")
	}
	if cfg.Timing.Fade() != 40*time.Millisecond {
		t.Errorf("Fade() = %v, want 40ms", cfg.Timing.Fade())
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		env     map[string]string
		wantErr error
	}{
		{"unsupported extension", "proptrack.ini", "x=1", nil, ErrUnsupportedFormat},
		{"opacity out of range", "a.toml", "[theme]\nopacity = 2.0\n", nil, ErrInvalidValue},
		{"bad color", "b.toml", "[theme.light]\ntext = \"#zzz\"\n", nil, ErrInvalidValue},
		{"bad key", "c.yaml", "keys:\n  accept: \"Hyper+Q\"\n", nil, ErrInvalidValue},
		{"long separator", "d.toml", "[tracker]\ndecimal_separator = \"..\"\n", nil, ErrInvalidValue},
		{"bad env bool", "e.toml", "", map[string]string{"PROPTRACK_DRAW_FRAME": "maybe"}, ErrInvalidValue},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, tt.file, tt.content)
			_, err := LoadWithEnv(path, envMap(tt.env))
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("LoadWithEnv() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := LoadWithEnv(filepath.Join(t.TempDir(), "none.toml"), noEnv)
	if !errors.Is(err, ErrFileNotFound) {
		t.Errorf("error = %v, want ErrFileNotFound", err)
	}
}

func TestParseErrorPosition(t *testing.T) {
	path := writeFile(t, "broken.toml", "[theme]\nopacity = = 1\n")
	_, err := LoadWithEnv(path, noEnv)
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("error = %v, want *ParseError", err)
	}
	if pe.Path != path || pe.Line != 2 {
		t.Errorf("ParseError = %s:%d, want %s:2", pe.Path, pe.Line, path)
	}
	if pe.Unwrap() == nil {
		t.Error("Unwrap() = nil")
	}

	path = writeFile(t, "broken.yaml", "theme:\n  opacity: [1\n")
	_, err = LoadWithEnv(path, noEnv)
	if !errors.As(err, &pe) {
		t.Fatalf("yaml error = %v, want *ParseError", err)
	}
	if pe.Line == 0 {
		t.Errorf("yaml ParseError has no line: %v", pe)
	}
}

func TestUnknownFieldsRejected(t *testing.T) {
	path := writeFile(t, "typo.toml", "[theme]\nopacty = 0.3\n")
	_, err := LoadWithEnv(path, noEnv)
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Errorf("error = %v, want *ParseError", err)
	}

	path = writeFile(t, "typo.yaml", "theme:\n  opacty: 0.3\n")
	_, err = LoadWithEnv(path, noEnv)
	if !errors.As(err, &pe) {
		t.Errorf("yaml error = %v, want *ParseError", err)
	}
}

func TestReadTimesPref(t *testing.T) {
	tests := []struct {
		ms   int
		want time.Duration
	}{
		{-5, time.Millisecond},
		{0, time.Millisecond},
		{1, time.Millisecond},
		{120, 120 * time.Millisecond},
	}
	for _, tt := range tests {
		if got := ReadTimesPref(tt.ms); got != tt.want {
			t.Errorf("ReadTimesPref(%d) = %v, want %v", tt.ms, got, tt.want)
		}
	}
}

func TestFormatString(t *testing.T) {
	if FormatTOML.String() != "toml" || FormatYAML.String() != "yaml" || Format(9).String() != "unknown" {
		t.Error("Format.String() mismatch")
	}
}

func TestLoggingConfig(t *testing.T) {
	cfg := Default()
	cfg.Logging.Output = []string{"/tmp/x.log"}
	lc := cfg.LoggingConfig()
	if lc.Level != "info" || len(lc.OutputPaths) != 1 || lc.OutputPaths[0] != "/tmp/x.log" {
		t.Errorf("LoggingConfig() = %+v", lc)
	}
}
