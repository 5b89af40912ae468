package eventbus

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"filegrip/internal/domain"
)

func TestPublishDeliversToSubscriber(t *testing.T) {
	bus := New()
	defer bus.Close()

	received := make(chan DomainEvent, 1)
	bus.Subscribe(EventFeedPageLoaded, func(e DomainEvent) {
		received <- e
	})

	bus.Publish(FeedPageLoadedEvent{Page: 3})

	select {
	case e := <-received:
		ev, ok := e.(FeedPageLoadedEvent)
		require.True(t, ok)
		require.Equal(t, 3, ev.Page)
	case <-time.After(time.Second):
		t.Fatal("event not delivered")
	}
}

func TestEventsDeliveredInPublishOrder(t *testing.T) {
	bus := New()
	defer bus.Close()

	var mu sync.Mutex
	var pages []int
	bus.Subscribe(EventFeedPageLoaded, func(e DomainEvent) {
		mu.Lock()
		pages = append(pages, e.(FeedPageLoadedEvent).Page)
		mu.Unlock()
	})

	for i := 1; i <= 5; i++ {
		bus.Publish(FeedPageLoadedEvent{Page: i})
	}

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(pages) == 5
	}, time.Second, 5*time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	require.Equal(t, []int{1, 2, 3, 4, 5}, pages)
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	bus := New()
	defer bus.Close()

	first := make(chan DomainEvent, 4)
	second := make(chan DomainEvent, 4)
	unsubFirst := bus.Subscribe(EventError, func(e DomainEvent) { first <- e })
	bus.Subscribe(EventError, func(e DomainEvent) { second <- e })

	unsubFirst()
	bus.Publish(domain.ErrorEvent{Message: "after unsubscribe"})

	select {
	case <-second:
	case <-time.After(time.Second):
		t.Fatal("remaining subscriber should still receive events")
	}

	select {
	case <-first:
		t.Fatal("unsubscribed handler received an event")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestPanickingHandlerDoesNotKillDispatch(t *testing.T) {
	bus := New()
	defer bus.Close()

	received := make(chan DomainEvent, 1)
	bus.Subscribe(EventError, func(e DomainEvent) { panic("boom") })
	bus.Subscribe(EventError, func(e DomainEvent) { received <- e })

	bus.Publish(domain.ErrorEvent{Message: "still delivered"})

	select {
	case <-received:
	case <-time.After(time.Second):
		t.Fatal("event not delivered after handler panic")
	}
}

func TestCloseWaitsForInFlightHandler(t *testing.T) {
	bus := New()

	started := make(chan struct{})
	forwarded := make(chan DomainEvent, 1)
	bus.Subscribe(EventError, func(e DomainEvent) {
		close(started)
		time.Sleep(50 * time.Millisecond)
		forwarded <- e
	})

	bus.Publish(domain.ErrorEvent{Message: "slow handler"})
	<-started

	// Once Close returns the dispatcher is done, so closing a channel the
	// handler sends on must be safe.
	bus.Close()
	close(forwarded)

	e, ok := <-forwarded
	require.True(t, ok, "handler must finish before Close returns")
	require.Equal(t, EventError, e.Type())

	bus.Close() // closing again is a no-op
}

func TestSubscriberOnlySeesItsEventType(t *testing.T) {
	bus := New()
	defer bus.Close()

	received := make(chan DomainEvent, 2)
	bus.Subscribe(EventConfigSaved, func(e DomainEvent) { received <- e })

	bus.Publish(FeedPageLoadedEvent{Page: 1})
	bus.Publish(ConfigSavedEvent{})

	select {
	case e := <-received:
		require.Equal(t, EventConfigSaved, e.Type())
	case <-time.After(time.Second):
		t.Fatal("event not delivered")
	}

	select {
	case e := <-received:
		t.Fatalf("unexpected extra event: %v", e.Type())
	case <-time.After(100 * time.Millisecond):
	}
}
