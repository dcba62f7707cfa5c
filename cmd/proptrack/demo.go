package main

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/dshills/proptrack/internal/config"
	"github.com/dshills/proptrack/internal/input/key"
	"github.com/dshills/proptrack/internal/logging"
	"github.com/dshills/proptrack/internal/property"
	"github.com/dshills/proptrack/internal/renderer/backend"
	"github.com/dshills/proptrack/internal/renderer/core"
	"github.com/dshills/proptrack/internal/renderer/overlay"
	"github.com/dshills/proptrack/internal/tracker"
	"github.com/dshills/proptrack/internal/tracker/field"
)

const frameInterval = 33 * time.Millisecond

// Interrupt payloads posted to the event loop.
type (
	tickMsg   struct{ now time.Time }
	quitMsg   struct{}
	reloadMsg struct {
		cfg *config.Config
		err error
	}
)

type layer int

const (
	layerSketch layer = iota
	layerDimensions
	layerFinal
)

// demo owns the canvas, the tracker and the legend bar.
type demo struct {
	term     backend.Backend
	logger   *zap.Logger
	tracker  *tracker.Tracker
	overlays *overlay.Manager
	legend   *overlay.Window

	seg    segment
	name   *property.Value[string]
	layer  *property.Value[layer]
	copies *property.Value[int]

	syncPending bool
	buttonDown  bool
	status      string
	tip         string
	quit        bool
}

func newDemo(term backend.Backend, cfg *config.Config, logger *zap.Logger) (*demo, error) {
	tc, err := cfg.TrackerConfig()
	if err != nil {
		return nil, err
	}

	d := &demo{
		term:     term,
		logger:   logging.WithComponent(logger, "demo"),
		overlays: overlay.NewManager(),
		legend:   overlay.NewWindow("legend", 1, 1),
		name:     property.NewValue("segment"),
		layer:    property.NewValue(layerSketch),
		copies:   property.NewValue(1),
	}
	d.legend.SetPriority(overlay.PriorityLow)
	d.legend.Show()
	if err := d.overlays.Add(d.legend); err != nil {
		return nil, err
	}

	d.tracker = tracker.New(
		tracker.WithConfig(tc),
		tracker.WithLogger(logger),
		tracker.WithHooks(tracker.Hooks{
			OnActivateEditMode: func(it *field.Item) {
				d.setStatus("editing " + it.Label())
			},
			OnDeactivateEditMode: func(_ *field.Item, vh tracker.ValueHandling) {
				d.setStatus("edit " + vh.String() + "ed")
			},
			OnItemCommitted: func(it *field.Item, hint property.Hint) {
				d.setStatus(fmt.Sprintf("%s = %s%s (%s)", it.Label(), it.DisplayValue(), it.Suffix(), hint))
			},
			OnContextMenu: func(it *field.Item, _ core.ScreenPos) {
				if it != nil {
					d.setStatus("context menu on " + it.Label())
				}
			},
			OnClose: func() {
				d.setStatus("tracker closed, press h to show it again")
			},
		}),
	)
	d.tracker.SetDarkMode(cfg.Theme.DarkMode)

	items := []*field.Item{
		field.NewLength("Length", lengthBinding{&d.seg}),
		field.NewAngle("Angle", angleBinding{&d.seg}),
		field.NewSeparator(),
		field.NewString("Name", d.name),
		field.NewEnum("Layer", d.layer, []field.Choice[layer]{
			{Icon: '✎', Label: "Sketch", Value: layerSketch},
			{Icon: '↔', Label: "Dimensions", Value: layerDimensions},
			{Icon: '■', Label: "Final", Value: layerFinal},
		}),
		field.NewInt("Copies", d.copies),
		field.NewNote("Tab edits, Enter accepts"),
	}
	items[0].SetToolTip("distance from the origin, in cell widths")
	items[1].SetToolTip("direction, counter-clockwise from east")
	for _, it := range items {
		if err := d.tracker.AddItem(it); err != nil {
			return nil, err
		}
	}

	w, h := term.Size()
	center := core.NewScreenPos(h/2, w/2)
	d.seg.setOrigin(center)
	d.layoutLegend()
	d.tracker.SetPosition(center, false, 0)
	return d, nil
}

func (d *demo) run(ctx context.Context) {
	go d.ticker(ctx)
	d.tracker.Show()
	d.draw()
	for !d.quit {
		if d.handleEvent(d.term.PollEvent()) && !d.quit {
			d.draw()
		}
	}
}

// ticker wakes the event loop for animations until ctx is done.
func (d *demo) ticker(ctx context.Context) {
	t := time.NewTicker(frameInterval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			d.term.PostEvent(backend.Event{Type: backend.EventInterrupt, Data: quitMsg{}})
			return
		case now := <-t.C:
			d.term.PostEvent(backend.Event{Type: backend.EventInterrupt, Data: tickMsg{now: now}})
		}
	}
}

// handleEvent processes one event and reports whether a redraw is needed.
func (d *demo) handleEvent(ev backend.Event) bool {
	switch ev.Type {
	case backend.EventKey:
		return d.handleKey(ev.Key)
	case backend.EventMouse:
		return d.handleMouse(ev)
	case backend.EventResize:
		d.layoutLegend()
		return true
	case backend.EventInterrupt:
		switch msg := ev.Data.(type) {
		case tickMsg:
			return d.tick(msg.now)
		case reloadMsg:
			d.applyConfig(msg.cfg, msg.err)
			return true
		case quitMsg:
			d.quit = true
		}
	}
	return false
}

func (d *demo) tick(now time.Time) bool {
	redraw := d.overlays.Tick(now)
	if d.tracker.Tick(now) {
		redraw = true
	}
	if d.syncPending && d.tracker.Idle() {
		d.syncPending = false
		redraw = true
	}
	return redraw
}

func (d *demo) handleKey(ev key.Event) bool {
	if d.tracker.IsInEditMode() && ev.Matches(d.tracker.Config().Keys.Accept) {
		g := d.tracker.GuardHint(property.EndInput)
		defer g.Release()
	}
	if d.tracker.HandleKey(ev) {
		return true
	}
	if d.tracker.IsInEditMode() {
		return false
	}

	switch {
	case ev.Matches(key.NewRuneEvent('q', key.ModNone)), ev.Matches(key.NewRuneEvent('c', key.ModCtrl)):
		d.quit = true
		return false
	case ev.Matches(key.NewRuneEvent('h', key.ModNone)):
		if d.tracker.IsVisible() {
			d.tracker.Hide()
		} else {
			d.tracker.Show()
		}
	case ev.Matches(key.NewRuneEvent('d', key.ModNone)):
		d.tracker.SetDarkMode(!d.tracker.IsDarkMode())
	case ev.Matches(key.NewRuneEvent('p', key.ModNone)):
		d.tracker.StayInVisiblePosition(!d.tracker.IsPinned())
		if d.tracker.IsPinned() {
			d.setStatus("tracker pinned")
		} else {
			d.setStatus("tracker follows the pointer")
		}
	case ev.Matches(key.NewRuneEvent('n', key.ModNone)):
		cfg := d.tracker.Config()
		d.tracker.SetAlwaysShowParameterNames(!cfg.AlwaysShowParameterNames)
	default:
		return false
	}
	return true
}

func (d *demo) handleMouse(ev backend.Event) bool {
	consumed := d.tracker.HandleMouse(ev)
	pos := core.NewScreenPos(ev.MouseY, ev.MouseX)
	d.tip = d.tracker.ToolTipText(d.tracker.Window().ToLogical(pos))
	if consumed || d.tracker.IsInEditMode() {
		return true
	}

	left := ev.MouseButton == backend.MouseLeft
	pressed := left && !d.buttonDown
	d.buttonDown = left
	if pressed {
		d.seg.setOrigin(pos)
	} else {
		d.seg.setEnd(pos)
	}
	d.syncPending = true
	d.tracker.SetPointer(pos)
	d.tracker.SetPosition(pos, false, 0)
	return true
}

func (d *demo) applyConfig(cfg *config.Config, err error) {
	if err != nil {
		d.setStatus("config reload failed: " + err.Error())
		return
	}
	g := d.tracker.SuppressIdle()
	defer g.Release()

	tc, err := cfg.TrackerConfig()
	if err != nil {
		d.setStatus("config reload failed: " + err.Error())
		return
	}
	d.tracker.SetTheme(tc.Theme)
	d.tracker.SetDarkMode(cfg.Theme.DarkMode)
	d.tracker.SetShowParameterNames(tc.ShowParameterNames)
	d.tracker.SetAlwaysShowParameterNames(tc.AlwaysShowParameterNames)
	d.tracker.SetEditTrackerSizePreference(tc.EditMinimized)
	d.logger.Info("theme reloaded", zap.Bool("dark", cfg.Theme.DarkMode))
	d.setStatus("configuration reloaded")
}

func (d *demo) setStatus(s string) {
	d.status = s
	d.logger.Debug("status", zap.String("text", s))
}

func (d *demo) layoutLegend() {
	w, h := d.term.Size()
	d.legend.Resize(max(w, 1), 1)
	d.legend.SetPosition(core.NewScreenPos(max(h-1, 0), 0))
	d.tracker.SetObstructions(d.legend.Rect())
}

func (d *demo) draw() {
	d.term.Clear()
	d.drawCanvas()
	d.drawLegend()
	d.overlays.Composite(d.term)
	d.tracker.Draw(d.term)
	d.term.Show()
}

func (d *demo) drawCanvas() {
	w, h := d.term.Size()
	dot := core.NewStyledCell('·', core.DefaultStyle().Dim())
	for y := 0; y < h; y += 2 {
		for x := 0; x < w; x += 4 {
			d.term.SetCell(x, y, dot)
		}
	}
	line := core.NewStyledCell('•', core.DefaultStyle())
	for _, p := range d.seg.points() {
		d.term.SetCell(p.Col, p.Row, line)
	}
	o := d.seg.origin()
	d.term.SetCell(o.Col, o.Row, core.NewStyledCell('+', core.DefaultStyle().Bold()))
}

func (d *demo) drawLegend() {
	cv := d.legend.Canvas()
	style := core.DefaultStyle().Reverse()
	cv.Fill(style)
	text := " " + d.tracker.State().String()
	if d.status != "" {
		text += " | " + d.status
	}
	if d.tip != "" {
		text += " | " + d.tip
	}
	cv.DrawText(0, 0, core.Truncate(text, d.legend.Rect().Width()), style)
}
