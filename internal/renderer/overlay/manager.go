package overlay

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/dshills/proptrack/internal/renderer/backend"
	"github.com/dshills/proptrack/internal/renderer/core"
)

// Manager keeps the floating windows of a surface in stacking order and
// composites them over the canvas.
type Manager struct {
	mu sync.RWMutex

	// windows contains all registered windows, keyed by ID.
	windows map[string]*Window

	// order contains window IDs in insertion order; sorted lazily by priority.
	order []string

	// needsSort indicates order needs re-sorting.
	needsSort bool
}

// NewManager creates a new window manager.
func NewManager() *Manager {
	return &Manager{windows: make(map[string]*Window)}
}

// Add registers a window.
func (m *Manager) Add(w *Window) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.windows[w.ID()]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateWindowID, w.ID())
	}
	m.windows[w.ID()] = w
	m.order = append(m.order, w.ID())
	m.needsSort = true
	return nil
}

// Remove unregisters a window by ID.
func (m *Manager) Remove(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.windows[id]; !ok {
		return false
	}
	delete(m.windows, id)
	for i, wid := range m.order {
		if wid == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return true
}

// Get returns a window by ID.
func (m *Manager) Get(id string) (*Window, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	w, ok := m.windows[id]
	return w, ok
}

// Count returns the number of registered windows.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.windows)
}

// Clear removes all windows.
func (m *Manager) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.windows = make(map[string]*Window)
	m.order = nil
	m.needsSort = false
}

// Windows returns the windows from bottom to top.
func (m *Manager) Windows() []*Window {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ensureSorted()

	out := make([]*Window, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, m.windows[id])
	}
	return out
}

// Composite draws every visible window onto dst, lowest priority first.
func (m *Manager) Composite(dst backend.Backend) {
	for _, w := range m.Windows() {
		w.Composite(dst)
	}
}

// HitTest returns the top-most window under the device point.
func (m *Manager) HitTest(device core.ScreenPos) (*Window, HitArea) {
	windows := m.Windows()
	for i := len(windows) - 1; i >= 0; i-- {
		if hit := windows[i].HitTest(device); hit != HitNone {
			return windows[i], hit
		}
	}
	return nil, HitNone
}

// Tick advances all running animations and reports whether any is still running.
func (m *Manager) Tick(now time.Time) bool {
	running := false
	for _, w := range m.Windows() {
		if w.Tick(now) {
			running = true
		}
	}
	return running
}

// ensureSorted sorts order by priority. Must be called with lock held.
func (m *Manager) ensureSorted() {
	if !m.needsSort {
		return
	}
	sort.SliceStable(m.order, func(i, j int) bool {
		return m.windows[m.order[i]].Priority() < m.windows[m.order[j]].Priority()
	})
	m.needsSort = false
}

// Invalidate marks the stacking order stale after a priority change.
func (m *Manager) Invalidate() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.needsSort = true
}
