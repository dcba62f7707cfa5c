package property

// SetCall records one SetValue invocation.
type SetCall[V any] struct {
	Value V
	Hint  Hint
}

// Value is an in-memory binding for hosts and tests. It records every
// SetValue call and can be invalidated to simulate a deleted element.
type Value[V any] struct {
	value     V
	invalid   bool
	calls     []SetCall[V]
	onChange  func(V, Hint)
	panicRead bool
}

// NewValue creates an available binding holding v.
func NewValue[V any](v V) *Value[V] {
	return &Value[V]{value: v}
}

// GetValue returns the current value.
func (p *Value[V]) GetValue() V {
	if p.panicRead {
		panic("property: value read after its owner was destroyed")
	}
	return p.value
}

// SetValue stores v and records the call.
func (p *Value[V]) SetValue(v V, hint Hint) {
	p.value = v
	p.calls = append(p.calls, SetCall[V]{Value: v, Hint: hint})
	if p.onChange != nil {
		p.onChange(v, hint)
	}
}

// Set changes the value from the document side without recording a call.
func (p *Value[V]) Set(v V) {
	p.value = v
}

// OnChange registers a callback invoked after every SetValue.
func (p *Value[V]) OnChange(fn func(V, Hint)) {
	p.onChange = fn
}

// Available reports whether the binding target still exists.
func (p *Value[V]) Available() bool {
	return !p.invalid
}

// Invalidate marks the binding target as gone.
func (p *Value[V]) Invalidate() {
	p.invalid = true
}

// Restore makes an invalidated binding available again.
func (p *Value[V]) Restore() {
	p.invalid = false
	p.panicRead = false
}

// Break makes GetValue panic, simulating a binding whose owner was
// destroyed without notice.
func (p *Value[V]) Break() {
	p.panicRead = true
}

// SetCount returns the number of SetValue calls.
func (p *Value[V]) SetCount() int {
	return len(p.calls)
}

// Calls returns a copy of the recorded SetValue calls.
func (p *Value[V]) Calls() []SetCall[V] {
	out := make([]SetCall[V], len(p.calls))
	copy(out, p.calls)
	return out
}

// LastCall returns the most recent SetValue call.
func (p *Value[V]) LastCall() (SetCall[V], bool) {
	if len(p.calls) == 0 {
		return SetCall[V]{}, false
	}
	return p.calls[len(p.calls)-1], true
}
