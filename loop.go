package interaction

import "sync"

// Loop is a single-goroutine host event loop for a Control. Events sent on the channel
// returned by Start are fired one at a time, in the order they were sent, so
// subscribers of that control see signals in send order.
type Loop struct {
	control    *Control
	eventChan  chan EventID
	shutdownWg sync.WaitGroup
	once       sync.Once
}

// NewLoop creates a Loop that fires events on control with an unbuffered channel.
func NewLoop(control *Control) *Loop {
	return &Loop{
		control:   control,
		eventChan: make(chan EventID),
	}
}

// NewLoopWithBuffer creates a Loop whose event channel holds up to bufferSize pending events.
func NewLoopWithBuffer(control *Control, bufferSize int) *Loop {
	return &Loop{
		control:   control,
		eventChan: make(chan EventID, bufferSize),
	}
}

// Start returns a *send-only* channel so callers can post events but not read them. It
// fires each event on the control until the channel is closed by Stop. Calling Start
// more than once returns the same channel without starting a second goroutine.
func (l *Loop) Start() chan<- EventID {
	l.once.Do(func() {
		l.shutdownWg.Add(1)
		go func() {
			defer l.shutdownWg.Done()
			for event := range l.eventChan {
				l.control.Fire(event)
			}
		}()
	})
	return l.eventChan
}

// Stop closes the event channel and waits for every queued event to be fired. Stop must
// be called once, after Start, and no events may be sent afterwards.
func (l *Loop) Stop() {
	close(l.eventChan)
	l.shutdownWg.Wait()
}
