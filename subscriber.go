package interaction

// Subscriber receives a Subscription once, when it attaches to a Publisher, and then one
// OnSignal call per event firing until the subscription is cancelled.
type Subscriber interface {
	OnSubscribe(s Subscription)

	// OnSignal is called once per firing. The returned Demand is ignored by the
	// publishers in this package.
	OnSignal() Demand
}

// Subscription is the live link between one Subscriber and one source registration.
type Subscription interface {
	Cancellable

	// Request records interest in more signals. Delivery is source driven, so this
	// never gates or buffers anything.
	Request(d Demand)
}

// Cancellable is anything that can be cancelled. Cancel must be safe to call more than once.
type Cancellable interface {
	Cancel()
}
