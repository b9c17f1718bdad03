package interaction

import (
	"io"
	"log/slog"
	"sync"

	"github.com/jeremyforan/go-interaction-publisher/metrics"
)

// Control is an in-process EventSource. It owns a listener table keyed by registration
// handle and fires events synchronously on the goroutine that calls Fire.
//
// A Control stands in for whatever the host environment uses to deliver interaction
// events, such as a UI button. The host calls Fire; consumers observe it through
// Publisher.
type Control struct {

	// mutex to protect the listener table and the closed flag.
	mu sync.RWMutex

	// listeners keyed by registration handle.
	listeners map[Handle]registration

	// order of registration per event, so firings visit listeners deterministically.
	order map[EventID][]Handle

	closed bool

	logger  *slog.Logger
	metrics *metrics.Metrics
}

type registration struct {
	event    EventID
	listener Listener
}

// NewControl creates an empty Control.
func NewControl() *Control {
	return &Control{
		listeners: make(map[Handle]registration),
		order:     make(map[EventID][]Handle),
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// Register adds l as a listener for event and returns its handle. Registering with a
// closed Control, or with a nil listener, returns the zero Handle.
func (c *Control) Register(event EventID, l Listener) Handle {
	if l == nil {
		return Handle{}
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		c.logger.Warn("register on closed control", "event", event)
		return Handle{}
	}

	h := newHandle()
	c.listeners[h] = registration{event: event, listener: l}
	c.order[event] = append(c.order[event], h)
	c.metrics.Registered()

	c.logger.Debug("registered listener", "event", event, "handle", h)
	return h
}

// Unregister removes the listener registered under h.
// If the handle is unknown, already removed, or the Control is closed, it does nothing.
func (c *Control) Unregister(h Handle) {
	if h.IsZero() {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	reg, ok := c.listeners[h]
	if !ok {
		return
	}
	delete(c.listeners, h)

	handles := c.order[reg.event]
	for i := range handles {
		if handles[i] == h {
			c.order[reg.event] = append(handles[:i:i], handles[i+1:]...)
			break
		}
	}
	if len(c.order[reg.event]) == 0 {
		delete(c.order, reg.event)
	}
	c.metrics.Unregistered(1)

	c.logger.Debug("unregistered listener", "event", reg.event, "handle", h)
}

// Fire calls every listener registered for event, in registration order, before
// returning. Listeners run without the table lock held, so they may register or
// unregister listeners, including themselves. A listener added during a firing is
// first called on the next firing; one removed during a firing is not called if it has
// not been reached yet.
func (c *Control) Fire(event EventID) {
	c.mu.RLock()
	if c.closed {
		c.mu.RUnlock()
		return
	}
	snapshot := make([]Handle, len(c.order[event]))
	copy(snapshot, c.order[event])
	logger, m := c.logger, c.metrics
	c.mu.RUnlock()

	m.Fired(string(event), len(snapshot))
	if len(snapshot) == 0 {
		logger.Debug("no listeners to notify", "event", event)
		return
	}

	for _, h := range snapshot {
		l, ok := c.lookup(h)
		if !ok {
			continue
		}
		l()
	}
}

// Close drops every listener. Later firings do nothing and later registrations return
// the zero Handle. Close is idempotent.
func (c *Control) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	c.closed = true

	n := len(c.listeners)
	c.listeners = make(map[Handle]registration)
	c.order = make(map[EventID][]Handle)
	c.metrics.Unregistered(n)

	c.logger.Info("control closed", "listeners", n)
}

// Closed reports whether Close has been called.
func (c *Control) Closed() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.closed
}

// ListenerCount returns the number of listeners registered for event.
func (c *Control) ListenerCount(event EventID) int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.order[event])
}

// Len returns the total number of registered listeners across all events.
func (c *Control) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.listeners)
}

// Publisher returns a Publisher of signals for event on this Control.
func (c *Control) Publisher(event EventID) Publisher {
	return PublisherFor(c, event)
}

// SetLogger sets the structured logger for the control.
func (c *Control) SetLogger(logger *slog.Logger) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.logger = logger
}

// Logger returns the structured logger for the control.
func (c *Control) Logger() *slog.Logger {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.logger
}

// SetMetrics attaches Prometheus instrumentation. A nil value disables it.
func (c *Control) SetMetrics(m *metrics.Metrics) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.metrics = m
}

func (c *Control) lookup(h Handle) (Listener, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	reg, ok := c.listeners[h]
	return reg.listener, ok
}
