package interaction

import (
	"sync"
	"sync/atomic"
	"testing"
	"testing/synctest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublisherFor(t *testing.T) {
	t.Run("PackagesSourceAndEvent", func(t *testing.T) {
		c := NewControl()
		pub := PublisherFor(c, PrimaryActivation)

		assert.Equal(t, PrimaryActivation, pub.Event())
		assert.Same(t, c, pub.Source())
	})

	t.Run("HasNoSideEffects", func(t *testing.T) {
		c := NewControl()
		_ = c.Publisher(PrimaryActivation)
		_ = c.Publisher(ValueChanged)

		assert.Equal(t, 0, c.Len())
	})
}

func TestAttach(t *testing.T) {
	t.Run("DeliversOneSignalPerFiring", func(t *testing.T) {
		for _, n := range []int{0, 1, 5, 100} {
			c := NewControl()
			sub := NewSubscriberMock()
			c.Publisher(PrimaryActivation).Attach(sub)

			for i := 0; i < n; i++ {
				c.Fire(PrimaryActivation)
			}

			assert.Equal(t, n, sub.Signals(), "firings: %d", n)
		}
	})

	t.Run("SubscribeBeforeFirstSignal", func(t *testing.T) {
		c := NewControl()
		sub := NewSubscriberMock()
		c.Publisher(PrimaryActivation).Attach(sub)

		c.Fire(PrimaryActivation)
		c.Fire(PrimaryActivation)

		assert.Equal(t, []string{"subscribe", "signal", "signal"}, sub.Log())
	})

	t.Run("FiringInsideOnSubscribeIsNotDelivered", func(t *testing.T) {
		c := NewControl()
		sub := NewSubscriberMock()
		sub.onSubscribe = func(Subscription) { c.Fire(PrimaryActivation) }

		c.Publisher(PrimaryActivation).Attach(sub)
		c.Fire(PrimaryActivation)

		assert.Equal(t, []string{"subscribe", "signal"}, sub.Log())
	})

	t.Run("IgnoresOtherEvents", func(t *testing.T) {
		c := NewControl()
		sub := NewSubscriberMock()
		c.Publisher(PrimaryActivation).Attach(sub)

		c.Fire(ValueChanged)
		c.Fire(EditingDidEnd)

		assert.Equal(t, 0, sub.Signals())
	})

	t.Run("NoReplayOfEarlierFirings", func(t *testing.T) {
		c := NewControl()
		c.Fire(PrimaryActivation)
		c.Fire(PrimaryActivation)
		c.Fire(PrimaryActivation)

		sub := NewSubscriberMock()
		c.Publisher(PrimaryActivation).Attach(sub)

		assert.Equal(t, 0, sub.Signals())
		assert.Equal(t, []string{"subscribe"}, sub.Log())
	})

	t.Run("NilSubscriber", func(t *testing.T) {
		c := NewControl()
		assert.NotPanics(t, func() {
			c.Publisher(PrimaryActivation).Attach(nil)
		})
		assert.Equal(t, 0, c.Len())
	})

	t.Run("ZeroPublisher", func(t *testing.T) {
		sub := NewSubscriberMock()
		assert.NotPanics(t, func() {
			Publisher{}.Attach(sub)
		})
		assert.Empty(t, sub.Log())
	})

	t.Run("DemandIsIgnored", func(t *testing.T) {
		c := NewControl()
		sub := NewSubscriberMock()
		sub.demand = None
		c.Publisher(PrimaryActivation).Attach(sub)

		sub.Subscription().Request(Max(1))
		c.Fire(PrimaryActivation)
		c.Fire(PrimaryActivation)
		c.Fire(PrimaryActivation)

		assert.Equal(t, 3, sub.Signals())
	})
}

func TestIndependentSubscriptions(t *testing.T) {
	t.Run("CancellingOneLeavesTheOther", func(t *testing.T) {
		c := NewControl()
		pub := c.Publisher(PrimaryActivation)

		a := NewSubscriberMock()
		b := NewSubscriberMock()
		pub.Attach(a)
		pub.Attach(b)
		require.Equal(t, 2, c.ListenerCount(PrimaryActivation))

		c.Fire(PrimaryActivation)
		a.Subscription().Cancel()
		c.Fire(PrimaryActivation)
		c.Fire(PrimaryActivation)

		assert.Equal(t, 1, a.Signals())
		assert.Equal(t, 3, b.Signals())
		assert.Equal(t, 1, c.ListenerCount(PrimaryActivation))
	})

	t.Run("SameSubscriberAttachedTwice", func(t *testing.T) {
		c := NewControl()
		sub := NewSubscriberMock()
		pub := c.Publisher(PrimaryActivation)
		pub.Attach(sub)
		pub.Attach(sub)

		c.Fire(PrimaryActivation)

		assert.Equal(t, 2, sub.Signals())
		assert.Len(t, sub.Subscriptions(), 2)
	})

	t.Run("FreshPublisherAfterCancel", func(t *testing.T) {
		c := NewControl()

		a := NewSubscriberMock()
		c.Publisher(PrimaryActivation).Attach(a)
		c.Fire(PrimaryActivation)
		c.Fire(PrimaryActivation)
		require.Equal(t, 2, a.Signals())
		a.Subscription().Cancel()

		b := NewSubscriberMock()
		c.Publisher(PrimaryActivation).Attach(b)
		c.Fire(PrimaryActivation)

		assert.Equal(t, 1, b.Signals())
		assert.Equal(t, 2, a.Signals())
	})
}

func TestConcurrentAttachAndCancel(t *testing.T) {
	t.Run("ListenerTableStaysConsistent", func(t *testing.T) {
		synctest.Test(t, func(t *testing.T) {
			c := NewControl()
			pub := c.Publisher(PrimaryActivation)

			subs := make([]*SubscriberMock, 50)
			var wg sync.WaitGroup
			for i := range subs {
				subs[i] = NewSubscriberMock()
				wg.Add(1)
				go func(s *SubscriberMock) {
					defer wg.Done()
					pub.Attach(s)
				}(subs[i])
			}
			wg.Wait()
			require.Equal(t, 50, c.ListenerCount(PrimaryActivation))

			for i := 0; i < 25; i++ {
				wg.Add(1)
				go func(s *SubscriberMock) {
					defer wg.Done()
					s.Subscription().Cancel()
				}(subs[i])
			}
			wg.Wait()

			c.Fire(PrimaryActivation)

			assert.Equal(t, 25, c.ListenerCount(PrimaryActivation))
			for i, s := range subs {
				want := 1
				if i < 25 {
					want = 0
				}
				assert.Equal(t, want, s.Signals(), "subscriber %d", i)
			}
		})
	})

	t.Run("FiringWhileCancelling", func(t *testing.T) {
		c := NewControl()
		pub := c.Publisher(PrimaryActivation)

		subs := make([]*SubscriberMock, 20)
		for i := range subs {
			subs[i] = NewSubscriberMock()
			pub.Attach(subs[i])
		}

		var stop atomic.Bool
		var wg sync.WaitGroup
		wg.Add(1)
		go func() {
			defer wg.Done()
			for !stop.Load() {
				c.Fire(PrimaryActivation)
			}
		}()

		for _, s := range subs {
			s.Subscription().Cancel()
		}
		stop.Store(true)
		wg.Wait()

		counts := make([]int, len(subs))
		for i, s := range subs {
			counts[i] = s.Signals()
		}

		c.Fire(PrimaryActivation)
		for i, s := range subs {
			assert.Equal(t, counts[i], s.Signals())
		}
		assert.Equal(t, 0, c.Len())
	})
}

// SubscriberMock records the order of the notifications it receives.
type SubscriberMock struct {
	mu      sync.Mutex
	log     []string
	subs    []Subscription
	signals int

	demand      Demand
	onSubscribe func(Subscription)
	onSignal    func()
}

func NewSubscriberMock() *SubscriberMock {
	return &SubscriberMock{demand: Unlimited}
}

func (s *SubscriberMock) OnSubscribe(sub Subscription) {
	s.mu.Lock()
	s.log = append(s.log, "subscribe")
	s.subs = append(s.subs, sub)
	f := s.onSubscribe
	s.mu.Unlock()

	if f != nil {
		f(sub)
	}
}

func (s *SubscriberMock) OnSignal() Demand {
	s.mu.Lock()
	s.log = append(s.log, "signal")
	s.signals++
	f := s.onSignal
	s.mu.Unlock()

	if f != nil {
		f()
	}
	return s.demand
}

// Subscription returns the most recent subscription received.
func (s *SubscriberMock) Subscription() Subscription {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.subs) == 0 {
		return nil
	}
	return s.subs[len(s.subs)-1]
}

func (s *SubscriberMock) Subscriptions() []Subscription {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := make([]Subscription, len(s.subs))
	copy(result, s.subs)
	return result
}

func (s *SubscriberMock) Signals() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.signals
}

func (s *SubscriberMock) Log() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := make([]string, len(s.log))
	copy(result, s.log)
	return result
}
