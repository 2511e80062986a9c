package reactive

// kind distinguishes the property variants sharing one implementation.
type kind int

const (
	kindPrimary kind = iota
	kindDerived
	kindLocked
)

// ListenerID identifies a subscription on a property.
type ListenerID uint64

// Listener receives the new and previous value of a property.
type Listener[T any] func(value, old T)

type subscriber[T any] struct {
	id     ListenerID
	fn     Listener[T]
	active bool
}

// Notifier is implemented by every property regardless of its value type.
// It lets multi-source observers subscribe without knowing T.
type Notifier interface {
	Name() string
	notify(fn func()) ListenerID
	Unsubscribe(id ListenerID) bool
}

// Property is an observable value. The zero value is not usable; create
// properties with NewProperty or one of the Derive functions.
type Property[T comparable] struct {
	name    string
	value   T
	initial T
	kind    kind

	// subs keeps subscription order; removed entries stay as inactive
	// tombstones until compact drops them.
	subs   []*subscriber[T]
	index  map[ListenerID]*subscriber[T]
	dead   int
	nextID ListenerID

	// delivering counts delivery loops in flight on this property.
	delivering int

	// gen counts stored changes; a delivery loop stops once it is superseded.
	gen uint64

	validate func(T) bool
	bounds   func(T) bool

	// dispose releases the source subscriptions of a derived property.
	dispose func()
}

// Option configures a property at construction.
type Option[T comparable] func(*Property[T])

// WithValidator rejects values for which fn returns false with ErrInvalidValue.
func WithValidator[T comparable](fn func(T) bool) Option[T] {
	return func(p *Property[T]) { p.validate = fn }
}

// WithBounds rejects values for which fn returns false with ErrRangeViolation.
func WithBounds[T comparable](fn func(T) bool) Option[T] {
	return func(p *Property[T]) { p.bounds = fn }
}

// NewProperty creates a writable property holding initial.
// The initial value is checked against the options and panics like Set.
func NewProperty[T comparable](name string, initial T, opts ...Option[T]) *Property[T] {
	p := &Property[T]{name: name, value: initial, initial: initial}
	for _, opt := range opts {
		opt(p)
	}
	p.check(initial)
	return p
}

// Name returns the diagnostic name of the property.
func (p *Property[T]) Name() string {
	return p.name
}

// Get returns the current value.
func (p *Property[T]) Get() T {
	return p.value
}

// Initial returns the value the property was created with.
func (p *Property[T]) Initial() T {
	return p.initial
}

// ReadOnly reports whether Set is disallowed.
func (p *Property[T]) ReadOnly() bool {
	return p.kind != kindPrimary
}

// Set stores value and notifies subscribers if it differs from the current
// value. It panics with ErrReadOnly on derived and locked properties, and with
// ErrInvalidValue or ErrRangeViolation when an option rejects the value.
func (p *Property[T]) Set(value T) {
	if p.kind != kindPrimary {
		Fail(p.name, value, ErrReadOnly)
	}
	p.set(value)
}

// Reset restores the initial value through the normal Set path.
// Derived and locked properties are left untouched.
func (p *Property[T]) Reset() {
	if p.kind != kindPrimary {
		return
	}
	p.set(p.initial)
}

// Lock turns the property into a guarded anchor. Every later Set panics with
// ErrReadOnly and leaves the value unchanged.
func (p *Property[T]) Lock() {
	if p.kind == kindPrimary {
		p.kind = kindLocked
	}
}

// Own locks the property like Lock and returns the only writer left. The
// owner uses it to drive a value that nobody else may write.
func (p *Property[T]) Own() func(T) {
	p.Lock()
	return p.set
}

// Subscribe registers fn to run after every change, in subscription order.
func (p *Property[T]) Subscribe(fn Listener[T]) ListenerID {
	if p.index == nil {
		p.index = make(map[ListenerID]*subscriber[T])
	}
	p.nextID++
	s := &subscriber[T]{id: p.nextID, fn: fn, active: true}
	p.subs = append(p.subs, s)
	p.index[s.id] = s
	return s.id
}

// Unsubscribe removes a subscription in amortized constant time. It reports
// whether id was registered. A listener removed while a notification is in
// flight is not called again.
func (p *Property[T]) Unsubscribe(id ListenerID) bool {
	s, ok := p.index[id]
	if !ok {
		return false
	}
	s.active = false
	delete(p.index, id)
	p.dead++
	p.compact()
	return true
}

// compact drops tombstones once they make up half of subs. It never runs
// while a delivery loop is indexing subs.
func (p *Property[T]) compact() {
	if p.delivering > 0 || p.dead*2 < len(p.subs) {
		return
	}
	live := make([]*subscriber[T], 0, len(p.index))
	for _, s := range p.subs {
		if s.active {
			live = append(live, s)
		}
	}
	p.subs = live
	p.dead = 0
}

// Listeners returns the number of active subscriptions.
func (p *Property[T]) Listeners() int {
	return len(p.index)
}

// Dispose drops every subscriber and, for derived properties, the source
// subscriptions.
func (p *Property[T]) Dispose() {
	for _, s := range p.subs {
		s.active = false
	}
	p.subs = nil
	p.index = nil
	p.dead = 0
	if p.dispose != nil {
		p.dispose()
		p.dispose = nil
	}
}

func (p *Property[T]) notify(fn func()) ListenerID {
	return p.Subscribe(func(T, T) { fn() })
}

func (p *Property[T]) check(value T) {
	if p.validate != nil && !p.validate(value) {
		Fail(p.name, value, ErrInvalidValue)
	}
	if p.bounds != nil && !p.bounds(value) {
		Fail(p.name, value, ErrRangeViolation)
	}
}

// set checks and stores value, then notifies subscribers in order. Listeners
// added during delivery wait for the next change.
//
// When a listener stores a newer value in the same property, the nested set
// delivers it to every subscriber and the outer loop stops there. Subscribers
// after that listener never see the superseded value: each subscriber ends on
// the settled value and is not called twice with values that were already
// replaced.
func (p *Property[T]) set(value T) {
	p.check(value)
	old := p.value
	if old == value {
		return
	}
	p.value = value
	p.gen++
	gen := p.gen

	p.delivering++
	defer func() {
		p.delivering--
		p.compact()
	}()
	n := len(p.subs)
	for i := 0; i < n && i < len(p.subs); i++ {
		if p.gen != gen {
			return
		}
		if s := p.subs[i]; s.active {
			s.fn(value, old)
		}
	}
}
