package interaction

import "github.com/google/uuid"

// Listener is invoked synchronously every time the event it was registered for fires.
type Listener func()

// Handle identifies a single listener registration. The zero Handle identifies nothing.
type Handle struct {
	id uuid.UUID
}

func newHandle() Handle {
	return Handle{id: uuid.New()}
}

// IsZero reports whether h refers to no registration.
func (h Handle) IsZero() bool {
	return h.id == uuid.Nil
}

func (h Handle) String() string {
	return h.id.String()
}

// EventSource is anything that can register listeners for named events and call them,
// any number of times, on whatever goroutine the event originates.
//
// Unregister must tolerate handles it does not know about, including handles that
// were already removed or that belong to a source that has since been closed.
type EventSource interface {
	Register(event EventID, l Listener) Handle
	Unregister(h Handle)
}
