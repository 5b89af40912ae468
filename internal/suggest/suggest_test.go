package suggest

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"filegrip/internal/catalog"
	"filegrip/internal/domain"
	"filegrip/internal/eventbus"
)

type fetchCall struct {
	query   string
	perPage int
}

// fakeFetcher answers Search calls from a per-query response function and
// records every call it sees.
type fakeFetcher struct {
	mu      sync.Mutex
	calls   []fetchCall
	respond func(query string, perPage int) ([]domain.FileRecord, error)
}

func (f *fakeFetcher) Search(ctx context.Context, q domain.Query, page, perPage int) ([]domain.FileRecord, error) {
	f.mu.Lock()
	f.calls = append(f.calls, fetchCall{query: q.Text, perPage: perPage})
	f.mu.Unlock()
	return f.respond(q.Text, perPage)
}

func (f *fakeFetcher) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func records(names ...string) []domain.FileRecord {
	out := make([]domain.FileRecord, len(names))
	for i, n := range names {
		out[i] = domain.FileRecord{ID: n, FileName: n}
	}
	return out
}

func collectReady(t *testing.T, bus eventbus.EventBus) chan eventbus.SuggestionsReadyEvent {
	t.Helper()
	ch := make(chan eventbus.SuggestionsReadyEvent, 8)
	bus.Subscribe(eventbus.EventSuggestionsReady, func(e eventbus.DomainEvent) {
		ch <- e.(eventbus.SuggestionsReadyEvent)
	})
	return ch
}

func nextReady(t *testing.T, ch chan eventbus.SuggestionsReadyEvent) eventbus.SuggestionsReadyEvent {
	t.Helper()
	select {
	case ev := <-ch:
		return ev
	case <-time.After(2 * time.Second):
		t.Fatal("no suggestions event published")
		return eventbus.SuggestionsReadyEvent{}
	}
}

func TestEnoughDirectMatchesSkipsFallback(t *testing.T) {
	bus := eventbus.New()
	defer bus.Close()
	ready := collectReady(t, bus)

	fetcher := &fakeFetcher{
		respond: func(query string, perPage int) ([]domain.FileRecord, error) {
			return records("a.pdf", "b.pdf", "c.pdf", "d.pdf", "e.pdf", "f.pdf"), nil
		},
	}

	engine := NewEngine(fetcher, bus)
	seq := engine.Lookup(context.Background(), "report")

	ev := nextReady(t, ready)
	require.Equal(t, seq, ev.Seq)
	require.Len(t, ev.Records, 6)
	require.Equal(t, 1, fetcher.callCount(), "enough direct matches should skip the fuzzy pool")
}

func TestFewDirectMatchesUsesFuzzyPool(t *testing.T) {
	bus := eventbus.New()
	defer bus.Close()
	ready := collectReady(t, bus)

	fetcher := &fakeFetcher{
		respond: func(query string, perPage int) ([]domain.FileRecord, error) {
			if perPage == catalog.SuggestPageSize {
				return records("catalog.pdf"), nil
			}
			// Fuzzy pool: one close name, one far name.
			return records("catt", "completely-different-thing"), nil
		},
	}

	engine := NewEngine(fetcher, bus)
	engine.Lookup(context.Background(), "cat")

	ev := nextReady(t, ready)
	require.Equal(t, 2, fetcher.callCount(), "sparse direct matches should fetch the pool")
	require.Len(t, ev.Records, 1)
	require.Equal(t, "catt", ev.Records[0].FileName, "only close names survive ranking")
}

func TestResultsCappedAtMaxSuggestions(t *testing.T) {
	bus := eventbus.New()
	defer bus.Close()
	ready := collectReady(t, bus)

	many := make([]string, 20)
	for i := range many {
		many[i] = "report.pdf"
	}
	fetcher := &fakeFetcher{
		respond: func(query string, perPage int) ([]domain.FileRecord, error) {
			return records(many...), nil
		},
	}

	engine := NewEngine(fetcher, bus)
	engine.Lookup(context.Background(), "report")

	ev := nextReady(t, ready)
	require.Len(t, ev.Records, MaxSuggestions)
}

func TestEmptyQueryPublishesEmptyImmediately(t *testing.T) {
	bus := eventbus.New()
	defer bus.Close()
	ready := collectReady(t, bus)

	fetcher := &fakeFetcher{
		respond: func(query string, perPage int) ([]domain.FileRecord, error) {
			return records("should-not-be-fetched"), nil
		},
	}

	engine := NewEngine(fetcher, bus)
	seq := engine.Lookup(context.Background(), "   ")

	ev := nextReady(t, ready)
	require.Equal(t, seq, ev.Seq)
	require.Empty(t, ev.Records)
	require.Zero(t, fetcher.callCount(), "blank query must not hit the backend")
}

func TestStaleLookupDiscarded(t *testing.T) {
	bus := eventbus.New()
	defer bus.Close()
	ready := collectReady(t, bus)

	release := make(chan struct{})
	fetcher := &fakeFetcher{
		respond: func(query string, perPage int) ([]domain.FileRecord, error) {
			if query == "slow" {
				<-release
				return records("slow-result.pdf", "s2", "s3", "s4", "s5"), nil
			}
			return records("fast-result.pdf", "f2", "f3", "f4", "f5"), nil
		},
	}

	engine := NewEngine(fetcher, bus)
	engine.Lookup(context.Background(), "slow")
	fastSeq := engine.Lookup(context.Background(), "fast")

	ev := nextReady(t, ready)
	require.Equal(t, fastSeq, ev.Seq)
	require.Equal(t, "fast-result.pdf", ev.Records[0].FileName)

	// Let the superseded lookup finish; it must not publish.
	close(release)
	select {
	case ev := <-ready:
		t.Fatalf("stale lookup published: seq %d", ev.Seq)
	case <-time.After(200 * time.Millisecond):
	}
}

func TestFailurePublishesSuggestionsFailed(t *testing.T) {
	bus := eventbus.New()
	defer bus.Close()

	failed := make(chan eventbus.SuggestionsFailedEvent, 1)
	bus.Subscribe(eventbus.EventSuggestionsFailed, func(e eventbus.DomainEvent) {
		failed <- e.(eventbus.SuggestionsFailedEvent)
	})

	fetcher := &fakeFetcher{
		respond: func(query string, perPage int) ([]domain.FileRecord, error) {
			return nil, errors.New("backend down")
		},
	}

	engine := NewEngine(fetcher, bus)
	seq := engine.Lookup(context.Background(), "report")

	select {
	case ev := <-failed:
		require.Equal(t, seq, ev.Seq)
	case <-time.After(2 * time.Second):
		t.Fatal("no failure event published")
	}
}
