package tracker

import (
	"slices"

	"go.uber.org/zap"

	"github.com/dshills/proptrack/internal/property"
)

// HintGuard overrides the tracker hint until released.
type HintGuard struct {
	t        *Tracker
	prev     property.Hint
	released bool
}

// GuardHint sets the hint used for property pushes and returns a guard
// that restores the previous hint:
//
//	defer t.GuardHint(property.ContinueInputWithFocusLost).Release()
func (t *Tracker) GuardHint(h property.Hint) *HintGuard {
	g := &HintGuard{t: t, prev: t.hint}
	t.hint = h
	t.hintGuards = append(t.hintGuards, g)
	return g
}

// Release restores the hint observed when the guard was created. Guards
// must be released in reverse order. A misordered release is logged and
// hands its observed hint to the guard above it, so releasing every guard
// always restores the hint seen by the outermost one.
func (g *HintGuard) Release() {
	if g.released {
		return
	}
	g.released = true
	t := g.t
	idx := slices.Index(t.hintGuards, g)
	if idx < 0 {
		return
	}
	if top := len(t.hintGuards) - 1; idx != top {
		t.logger.Error("hint guard released out of order",
			zap.Int("depth", len(t.hintGuards)),
			zap.Int("index", idx))
		t.hintGuards[idx+1].prev = g.prev
	} else {
		t.hint = g.prev
	}
	t.hintGuards = slices.Delete(t.hintGuards, idx, idx+1)
}

// IdleGuard suppresses idle processing until released.
type IdleGuard struct {
	t        *Tracker
	prev     bool
	released bool
}

// SuppressIdle suppresses Idle and returns a guard that restores the
// previous suppression state.
func (t *Tracker) SuppressIdle() *IdleGuard {
	g := &IdleGuard{t: t, prev: t.idleSuppressed}
	t.idleSuppressed = true
	t.idleGuards = append(t.idleGuards, g)
	return g
}

// Release restores the suppression state observed when the guard was
// created. Misordered releases behave as for HintGuard.
func (g *IdleGuard) Release() {
	if g.released {
		return
	}
	g.released = true
	t := g.t
	idx := slices.Index(t.idleGuards, g)
	if idx < 0 {
		return
	}
	if top := len(t.idleGuards) - 1; idx != top {
		t.logger.Error("idle guard released out of order",
			zap.Int("depth", len(t.idleGuards)),
			zap.Int("index", idx))
		t.idleGuards[idx+1].prev = g.prev
	} else {
		t.idleSuppressed = g.prev
	}
	t.idleGuards = slices.Delete(t.idleGuards, idx, idx+1)
}

// IsIdleSuppressed reports whether an IdleGuard is in effect.
func (t *Tracker) IsIdleSuppressed() bool { return t.idleSuppressed }

// IdlePending reports whether a suppressed idle is waiting for replay.
func (t *Tracker) IdlePending() bool { return t.idlePending }

// Idle synchronizes all items and requests a redraw. While suppressed, or
// during a transition, the call is recorded and replayed by the next
// unsuppressed Idle. It reports whether processing ran.
func (t *Tracker) Idle() bool {
	if t.idleSuppressed || t.transitioning {
		t.idlePending = true
		return false
	}
	if t.idlePending {
		t.logger.Debug("replaying suppressed idle")
	}
	t.idlePending = false
	t.Synchronize()
	t.requestRedraw()
	return true
}
