// Package overlay provides floating, alpha-blended windows composited over
// a backend surface, with fade/move animation and placement helpers.
package overlay

import (
	"errors"
	"time"

	"github.com/dshills/proptrack/internal/renderer/core"
)

// Overlay errors
var (
	ErrEmptyAnimation    = errors.New("animation has neither fade nor move")
	ErrInvalidKeyframes  = errors.New("keyframes must be ordered by progress within [0, 1]")
	ErrDuplicateWindowID = errors.New("window id already registered")
)

// Priority represents the stacking order of windows.
// Higher priority windows are composited on top.
type Priority uint8

const (
	PriorityLow      Priority = 50
	PriorityNormal   Priority = 100
	PriorityHigh     Priority = 150
	PriorityCritical Priority = 200
)

// HitArea identifies which part of a window a point falls on.
type HitArea uint8

const (
	HitNone HitArea = iota
	HitBody
	HitClose
	HitMove
)

// String returns the string representation of the hit area.
func (h HitArea) String() string {
	switch h {
	case HitBody:
		return "body"
	case HitClose:
		return "close"
	case HitMove:
		return "move"
	default:
		return "none"
	}
}

// MouseState controls whether a window reacts to the pointer.
// A disabled window lets mouse events fall through to the canvas below.
type MouseState uint8

const (
	MouseEnabled MouseState = iota
	MouseDisabled
)

// String returns the string representation of the mouse state.
func (m MouseState) String() string {
	if m == MouseDisabled {
		return "disabled"
	}
	return "enabled"
}

// Keyframe is one (progress, value) pair of a fade curve.
type Keyframe struct {
	Progress float64
	Value    float64
}

// FadeAnimation animates the window alpha along a keyframe curve.
type FadeAnimation struct {
	Keyframes []Keyframe

	// Draw is invoked once per tick with the alpha just applied.
	Draw func(alpha float64)
}

// ValueAt interpolates the curve linearly at progress.
// Values before the first or after the last keyframe are held.
func (f FadeAnimation) ValueAt(progress float64) float64 {
	kf := f.Keyframes
	if len(kf) == 0 {
		return 1
	}
	if progress <= kf[0].Progress {
		return kf[0].Value
	}
	for i := 1; i < len(kf); i++ {
		if progress <= kf[i].Progress {
			prev, next := kf[i-1], kf[i]
			span := next.Progress - prev.Progress
			if span <= 0 {
				return next.Value
			}
			t := (progress - prev.Progress) / span
			return prev.Value + (next.Value-prev.Value)*t
		}
	}
	return kf[len(kf)-1].Value
}

func (f FadeAnimation) validate() error {
	last := 0.0
	for _, k := range f.Keyframes {
		if k.Progress < 0 || k.Progress > 1 || k.Progress < last {
			return ErrInvalidKeyframes
		}
		last = k.Progress
	}
	return nil
}

// MoveAnimation moves the window from Start to End.
type MoveAnimation struct {
	Start core.ScreenRect
	End   core.ScreenRect

	// Draw is invoked once per tick with the rectangle just applied.
	Draw func(rect core.ScreenRect)
}

// Animation describes a fade and/or move over Duration.
type Animation struct {
	Duration time.Duration
	Fade     *FadeAnimation
	Move     *MoveAnimation
}

// Validate checks the descriptor for obvious mistakes.
func (a Animation) Validate() error {
	if a.Fade == nil && a.Move == nil {
		return ErrEmptyAnimation
	}
	if a.Fade != nil {
		return a.Fade.validate()
	}
	return nil
}

// FadeIn returns a linear fade from 0 to alpha.
func FadeIn(d time.Duration, alpha float64) Animation {
	return Animation{
		Duration: d,
		Fade:     &FadeAnimation{Keyframes: []Keyframe{{0, 0}, {1, alpha}}},
	}
}

// FadeOut returns a linear fade from alpha to 0.
func FadeOut(d time.Duration, alpha float64) Animation {
	return Animation{
		Duration: d,
		Fade:     &FadeAnimation{Keyframes: []Keyframe{{0, alpha}, {1, 0}}},
	}
}
