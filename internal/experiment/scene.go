package experiment

import (
	"fmt"

	"github.com/san-kum/springlab/internal/reactive"
	"github.com/san-kum/springlab/internal/spring"
)

// Quantity is one named value a scene exposes to the presentation layer.
type Quantity struct {
	Name     string
	Label    string
	Unit     string
	Property *reactive.Property[float64]
	Writable bool
	// Range is the span a presentation layer should clamp writes into.
	Range func() spring.Range
}

// Span is the drawn extent of one spring. Row groups springs that share a
// line in a diagram.
type Span struct {
	Name        string
	Row         int
	Left, Right float64
}

// Scene gives a uniform, name-based view over any spring system.
type Scene struct {
	name       string
	quantities []Quantity
	index      map[string]int
	spans      func() []Span
	reset      func()
	dispose    func()
}

func newScene(name string, reset, dispose func(), quantities ...Quantity) *Scene {
	s := &Scene{name: name, quantities: quantities, index: make(map[string]int), reset: reset, dispose: dispose}
	for i, q := range quantities {
		s.index[q.Name] = i
	}
	return s
}

func (s *Scene) Name() string {
	return s.name
}

// Quantities returns the scene's quantities in display order.
func (s *Scene) Quantities() []Quantity {
	return s.quantities
}

func (s *Scene) Quantity(name string) (Quantity, error) {
	i, ok := s.index[name]
	if !ok {
		return Quantity{}, fmt.Errorf("scene %s: unknown quantity: %s", s.name, name)
	}
	return s.quantities[i], nil
}

func (s *Scene) Get(name string) (float64, error) {
	q, err := s.Quantity(name)
	if err != nil {
		return 0, err
	}
	return q.Property.Get(), nil
}

// Set writes a quantity and returns any invariant violation as an error.
// Quantities the system drives internally cannot be written.
func (s *Scene) Set(name string, v float64) error {
	q, err := s.Quantity(name)
	if err != nil {
		return err
	}
	if !q.Writable {
		return &reactive.PropertyError{Property: q.Property.Name(), Value: v, Wrapped: reactive.ErrReadOnly}
	}
	return reactive.Catch(func() { q.Property.Set(v) })
}

// SetClamped clamps v into the quantity's range before writing it, the way a
// slider would.
func (s *Scene) SetClamped(name string, v float64) error {
	q, err := s.Quantity(name)
	if err != nil {
		return err
	}
	if q.Range != nil {
		v = q.Range().Clamp(v)
	}
	return s.Set(name, v)
}

// Watch calls fn now and after every change of any named quantity. Changes
// that arrive while fn runs are folded into one more call. The caller owns
// the returned link and must unlink it before the scene is disposed.
func (s *Scene) Watch(fn func(), names ...string) (*reactive.Multilink, error) {
	if len(names) == 0 {
		return nil, fmt.Errorf("scene %s: watch needs at least one quantity", s.name)
	}
	sources := make([]reactive.Notifier, 0, len(names))
	for _, name := range names {
		q, err := s.Quantity(name)
		if err != nil {
			return nil, err
		}
		sources = append(sources, q.Property)
	}
	return reactive.MultilinkAll(sources, fn), nil
}

// Spans returns the current spring extents, top row first.
func (s *Scene) Spans() []Span {
	if s.spans == nil {
		return nil
	}
	return s.spans()
}

// Values snapshots every quantity.
func (s *Scene) Values() map[string]float64 {
	out := make(map[string]float64, len(s.quantities))
	for _, q := range s.quantities {
		out[q.Name] = q.Property.Get()
	}
	return out
}

func (s *Scene) Reset() {
	s.reset()
}

func (s *Scene) Dispose() {
	s.dispose()
}
