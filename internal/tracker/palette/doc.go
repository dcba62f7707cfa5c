// Package palette hosts the single live input control of a tracker edit
// session.
//
// A Palette holds at most one Control at a time. Controls are created by a
// Factory from a Spec, preloaded with the field's current value, and report
// every edit to the observers attached to the palette together with the
// Hint describing the value:
//
//	p := palette.New()
//	ctrl, err := p.Open(palette.Spec{Kind: palette.KindNumber, Number: 2.5, Precision: 3})
//	p.Attach(observer)
//	ctrl.HandleKey(key.NewRuneEvent('3', key.ModNone))
//	p.Close()
//
// Controls never touch a document value themselves. Committing is the
// field's job.
package palette
