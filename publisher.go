package interaction

// Publisher describes a stream of signals produced by one event on one EventSource.
// It holds no subscriber state and can be attached to any number of times; every
// Attach makes an independent registration. The stream never fails and never
// completes on its own.
type Publisher struct {
	source EventSource
	event  EventID
}

// PublisherFor packages source and event into a Publisher. It has no side effects.
func PublisherFor(source EventSource, event EventID) Publisher {
	return Publisher{source: source, event: event}
}

// Attach subscribes s. OnSubscribe is called with the new Subscription before the
// subscription is registered with the source, so it always precedes the first
// OnSignal. Cancelling from within OnSubscribe means nothing is ever registered.
//
// Attaching a nil Subscriber, or attaching through a Publisher with no source, does
// nothing.
func (p Publisher) Attach(s Subscriber) {
	if s == nil || p.source == nil {
		return
	}

	sub := newSubscription(s, p.source, p.event)
	s.OnSubscribe(sub)
	sub.activate()
}

// Event returns the event identifier the publisher observes.
func (p Publisher) Event() EventID {
	return p.event
}

// Source returns the EventSource the publisher observes.
func (p Publisher) Source() EventSource {
	return p.source
}
