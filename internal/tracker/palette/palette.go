package palette

import (
	"errors"
	"fmt"
)

// Palette errors
var (
	ErrAlreadyOpen   = errors.New("palette already hosts a control")
	ErrCreateControl = errors.New("control creation failed")
	ErrUnknownKind   = errors.New("unknown control kind")
)

// Observer receives value-changed notifications from the hosted control.
type Observer interface {
	ValueChanged(c Change)
}

// Factory creates controls. Hosts can replace it to decorate controls or to
// simulate resource exhaustion.
type Factory func(spec Spec) (Control, error)

// DefaultFactory creates the built-in controls.
func DefaultFactory(spec Spec) (Control, error) {
	switch spec.Kind {
	case KindNumber:
		return NewNumberEdit(spec.Number, spec.Precision, spec.Suffix, spec.DecimalSeparator), nil
	case KindInteger:
		return NewIntEdit(spec.Integer), nil
	case KindText:
		return NewTextEdit(spec.Text), nil
	case KindPopup:
		return NewPopup(spec.Choices, spec.Selected), nil
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnknownKind, spec.Kind)
	}
}

// Palette hosts at most one live control at a time.
type Palette struct {
	factory   Factory
	control   Control
	observers []Observer
	histories map[string]*History
}

// New creates an empty palette using DefaultFactory.
func New() *Palette {
	return NewWithFactory(DefaultFactory)
}

// NewWithFactory creates an empty palette with a custom factory.
func NewWithFactory(f Factory) *Palette {
	if f == nil {
		f = DefaultFactory
	}
	return &Palette{
		factory:   f,
		histories: make(map[string]*History),
	}
}

// Open creates the control described by spec and hosts it.
func (p *Palette) Open(spec Spec) (Control, error) {
	if p.control != nil {
		return nil, ErrAlreadyOpen
	}
	c, err := p.factory(spec)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCreateControl, spec.Kind, err)
	}
	if c == nil {
		return nil, fmt.Errorf("%w: %s: factory returned no control", ErrCreateControl, spec.Kind)
	}
	var recent []string
	if spec.HistoryKey != "" {
		recent = p.History(spec.HistoryKey).Recent(0)
	}
	c.bind(p.notify, recent)
	p.control = c
	return c, nil
}

// Close destroys the hosted control. Observers stay attached.
func (p *Palette) Close() {
	if p.control == nil {
		return
	}
	p.control.bind(nil, nil)
	p.control = nil
}

// Control returns the hosted control, or nil.
func (p *Palette) Control() Control {
	return p.control
}

// IsOpen reports whether a control is hosted.
func (p *Palette) IsOpen() bool {
	return p.control != nil
}

// Attach adds an observer. Attaching the same observer twice has no effect.
func (p *Palette) Attach(o Observer) {
	for _, existing := range p.observers {
		if existing == o {
			return
		}
	}
	p.observers = append(p.observers, o)
}

// Detach removes an observer.
func (p *Palette) Detach(o Observer) {
	for i, existing := range p.observers {
		if existing == o {
			p.observers = append(p.observers[:i], p.observers[i+1:]...)
			return
		}
	}
}

// ObserverCount returns the number of attached observers.
func (p *Palette) ObserverCount() int {
	return len(p.observers)
}

// History returns the input history for key, creating it on first use.
func (p *Palette) History(key string) *History {
	h, ok := p.histories[key]
	if !ok {
		h = NewHistory(0)
		p.histories[key] = h
	}
	return h
}

// Record adds an accepted input to the history for key.
func (p *Palette) Record(key, text string) {
	if key == "" {
		return
	}
	p.History(key).Add(text)
}

func (p *Palette) notify(c Change) {
	for _, o := range append([]Observer(nil), p.observers...) {
		o.ValueChanged(c)
	}
}
