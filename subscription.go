package interaction

import (
	"sync"
	"sync/atomic"
)

// subscription bridges one EventSource registration to one Subscriber.
//
// The subscriber is held through an atomic pointer that Cancel swaps to nil. A firing
// that loads nil treats the subscription as cancelled, so once Cancel returns no new
// OnSignal call can start. A call that had already loaded the subscriber when Cancel
// ran may still finish.
type subscription struct {
	subscriber atomic.Pointer[subscriberRef]

	source EventSource
	event  EventID

	// mu guards the registration handle so that activate and Cancel racing on
	// different goroutines never leave a listener behind.
	mu         sync.Mutex
	handle     Handle
	registered bool
}

type subscriberRef struct {
	s Subscriber
}

// newSubscription binds s to event on source. A nil s yields a subscription that is
// already inert.
func newSubscription(s Subscriber, source EventSource, event EventID) *subscription {
	sub := &subscription{
		source: source,
		event:  event,
	}
	if s != nil {
		sub.subscriber.Store(&subscriberRef{s: s})
	}
	return sub
}

// activate registers the subscription as the source's listener for its event, unless
// it was cancelled first.
func (s *subscription) activate() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.subscriber.Load() == nil || s.registered {
		return
	}

	h := s.source.Register(s.event, s.receive)
	if h.IsZero() {
		return
	}
	s.handle = h
	s.registered = true
}

// receive is called by the source once per firing. The returned demand is dropped:
// the source cannot be throttled, so there is nothing to apply it to.
func (s *subscription) receive() {
	ref := s.subscriber.Load()
	if ref == nil {
		return
	}
	_ = ref.s.OnSignal()
}

// Request is a no-op. Emission is driven by the source, one signal per firing.
func (s *subscription) Request(Demand) {}

// Cancel unregisters from the source and releases the subscriber. Only the first call
// does anything; later calls, or calls after the source was closed, return quietly.
func (s *subscription) Cancel() {
	if s.subscriber.Swap(nil) == nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.registered {
		return
	}
	s.source.Unregister(s.handle)
	s.registered = false
	s.handle = Handle{}
}

// Cancelled reports whether the subscription no longer delivers signals.
func (s *subscription) Cancelled() bool {
	return s.subscriber.Load() == nil
}
