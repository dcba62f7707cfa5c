// Package core provides shared cell, color, and geometry types for the
// renderer subsystem. It sits below backend and overlay so that both can
// exchange cells without an import cycle.
package core

import (
	"fmt"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Color represents a true color or the surface's default color.
type Color struct {
	R, G, B uint8
	// Default indicates the surface's default color. RGB is ignored.
	Default bool
}

// ColorDefault represents the surface's default color.
var ColorDefault = Color{Default: true}

// Common colors.
var (
	ColorBlack = Color{R: 0, G: 0, B: 0}
	ColorWhite = Color{R: 255, G: 255, B: 255}
	ColorGray  = Color{R: 128, G: 128, B: 128}
)

// ColorFromRGB creates a true color from RGB components.
func ColorFromRGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b}
}

// ColorFromHex creates a color from "#RGB" or "#RRGGBB" (the leading '#' is optional).
func ColorFromHex(hex string) (Color, error) {
	s := strings.TrimSpace(hex)
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	if len(s) != 4 && len(s) != 7 {
		return Color{}, fmt.Errorf("invalid hex color length: %s", hex)
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return Color{}, fmt.Errorf("invalid hex color: %s", hex)
	}
	r, g, b := c.RGB255()
	return Color{R: r, G: g, B: b}, nil
}

// MustHex is ColorFromHex for package-level defaults. It panics on bad input.
func MustHex(hex string) Color {
	c, err := ColorFromHex(hex)
	if err != nil {
		panic(err)
	}
	return c
}

// IsDefault returns true if this is the default color.
func (c Color) IsDefault() bool {
	return c.Default
}

// Equals returns true if two colors are equal.
func (c Color) Equals(other Color) bool {
	if c.Default || other.Default {
		return c.Default == other.Default
	}
	return c.R == other.R && c.G == other.G && c.B == other.B
}

// String returns "default" or the "#RRGGBB" form.
func (c Color) String() string {
	if c.Default {
		return "default"
	}
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// MarshalText implements encoding.TextMarshaler.
func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler for config files.
func (c *Color) UnmarshalText(text []byte) error {
	s := strings.TrimSpace(string(text))
	if strings.EqualFold(s, "default") || s == "" {
		*c = ColorDefault
		return nil
	}
	parsed, err := ColorFromHex(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

func (c Color) colorful() colorful.Color {
	return colorful.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}
}

// Over composites c with the given alpha over the backdrop color.
// An alpha of 1 yields c, 0 yields the backdrop. A default color on either
// side cannot be blended, so the more opaque side wins.
func (c Color) Over(backdrop Color, alpha float64) Color {
	alpha = ClampAlpha(alpha)
	if c.Default || backdrop.Default {
		if alpha >= 0.5 {
			return c
		}
		return backdrop
	}
	blended := backdrop.colorful().BlendRgb(c.colorful(), alpha).Clamped()
	r, g, b := blended.RGB255()
	return Color{R: r, G: g, B: b}
}

// ClampAlpha limits an alpha value to [0, 1].
func ClampAlpha(alpha float64) float64 {
	switch {
	case alpha < 0:
		return 0
	case alpha > 1:
		return 1
	default:
		return alpha
	}
}
