package interaction

import (
	"sync"
	"sync/atomic"
)

// AnyCancellable cancels the subscription behind a Sink. Cancel is idempotent.
type AnyCancellable struct {
	cancel func()
	done   atomic.Bool
}

// NewAnyCancellable wraps fn so it runs at most once.
func NewAnyCancellable(fn func()) *AnyCancellable {
	return &AnyCancellable{cancel: fn}
}

// Cancel runs the wrapped cancel function the first time it is called.
func (c *AnyCancellable) Cancel() {
	if c.done.Swap(true) {
		return
	}
	if c.cancel != nil {
		c.cancel()
	}
}

// Cancelled reports whether Cancel has been called.
func (c *AnyCancellable) Cancelled() bool {
	return c.done.Load()
}

// Store adds c to bag so it is cancelled with the rest of the bag.
func (c *AnyCancellable) Store(bag *Bag) {
	bag.Add(c)
}

// Sink attaches a Subscriber that calls fn for every signal and returns the handle
// that cancels it. The caller must keep the handle, typically in a Bag, for as long as
// it wants signals.
func Sink(p Publisher, fn func()) *AnyCancellable {
	s := &sink{fn: fn}
	p.Attach(s)
	return NewAnyCancellable(s.cancel)
}

type sink struct {
	mu  sync.Mutex
	sub Subscription

	// cancelled before the subscription arrived
	early bool

	fn func()
}

func (s *sink) OnSubscribe(sub Subscription) {
	s.mu.Lock()
	if s.early {
		s.mu.Unlock()
		sub.Cancel()
		return
	}
	s.sub = sub
	s.mu.Unlock()

	sub.Request(Unlimited)
}

func (s *sink) OnSignal() Demand {
	if s.fn != nil {
		s.fn()
	}
	return None
}

func (s *sink) cancel() {
	s.mu.Lock()
	sub := s.sub
	s.sub = nil
	s.early = sub == nil
	s.mu.Unlock()

	if sub != nil {
		sub.Cancel()
	}
}

// Bag owns a set of cancellables, like a view that keeps its subscriptions alive until
// it goes away.
type Bag struct {
	mu    sync.Mutex
	items []Cancellable
}

// Add stores c in the bag. Nil values are ignored.
func (b *Bag) Add(c Cancellable) {
	if c == nil {
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.items = append(b.items, c)
}

// Len returns the number of stored cancellables.
func (b *Bag) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()

	return len(b.items)
}

// CancelAll cancels every stored cancellable and empties the bag.
func (b *Bag) CancelAll() {
	b.mu.Lock()
	items := b.items
	b.items = nil
	b.mu.Unlock()

	for _, c := range items {
		c.Cancel()
	}
}
