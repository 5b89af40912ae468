package feed

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"filegrip/internal/catalog"
	"filegrip/internal/domain"
	"filegrip/internal/eventbus"
)

// pagedLoad serves pages out of a synthetic dataset of total records.
func pagedLoad(total int) LoadFunc {
	return func(ctx context.Context, q domain.Query, page, perPage int) ([]domain.FileRecord, error) {
		start := (page - 1) * perPage
		if start >= total {
			return nil, nil
		}
		end := start + perPage
		if end > total {
			end = total
		}
		records := make([]domain.FileRecord, 0, end-start)
		for i := start; i < end; i++ {
			records = append(records, domain.FileRecord{
				ID:       fmt.Sprintf("%d", i),
				FileName: fmt.Sprintf("file-%03d.pdf", i),
			})
		}
		return records, nil
	}
}

func waitFor(t *testing.T, cond func() bool, msg string) {
	t.Helper()
	require.Eventually(t, cond, 2*time.Second, 5*time.Millisecond, msg)
}

func TestFullPageAdvancesPagination(t *testing.T) {
	bus := eventbus.New()
	defer bus.Close()

	c := New(pagedLoad(35), bus)

	require.True(t, c.LoadNext(context.Background()))
	waitFor(t, func() bool { return c.Len() == catalog.FeedPageSize }, "first page should load")
	require.Equal(t, 2, c.Page(), "full page should advance the page counter")
	require.False(t, c.Exhausted())

	require.True(t, c.LoadNext(context.Background()))
	waitFor(t, func() bool { return c.Len() == 35 }, "second page should load")
	require.True(t, c.Exhausted(), "short page should exhaust the feed")
}

func TestShortFirstPageExhausts(t *testing.T) {
	bus := eventbus.New()
	defer bus.Close()

	c := New(pagedLoad(15), bus)

	require.True(t, c.LoadNext(context.Background()))
	waitFor(t, func() bool { return c.Exhausted() }, "feed should be exhausted")
	require.Equal(t, 15, c.Len())
	require.Equal(t, 1, c.Page(), "page counter should not advance past a short page")

	require.False(t, c.LoadNext(context.Background()), "exhausted feed should refuse loads")
}

func TestLoadNextNoOpWhileInFlight(t *testing.T) {
	bus := eventbus.New()
	defer bus.Close()

	release := make(chan struct{})
	load := func(ctx context.Context, q domain.Query, page, perPage int) ([]domain.FileRecord, error) {
		<-release
		return pagedLoad(40)(ctx, q, page, perPage)
	}

	c := New(load, bus)

	require.True(t, c.LoadNext(context.Background()))
	require.False(t, c.LoadNext(context.Background()), "overlapping load must be refused")

	close(release)
	waitFor(t, func() bool { return c.Len() == catalog.FeedPageSize }, "gated page should land")
}

func TestResetDiscardsInFlightPage(t *testing.T) {
	bus := eventbus.New()
	defer bus.Close()

	release := make(chan struct{})
	done := make(chan struct{})
	load := func(ctx context.Context, q domain.Query, page, perPage int) ([]domain.FileRecord, error) {
		<-release
		defer close(done)
		return pagedLoad(40)(ctx, q, page, perPage)
	}

	c := New(load, bus)
	require.True(t, c.LoadNext(context.Background()))

	c.Reset()
	close(release)
	<-done

	// Give the stale goroutine a moment to (incorrectly) apply its page.
	time.Sleep(50 * time.Millisecond)
	require.Zero(t, c.Len(), "page from before the reset must be dropped")
	require.Equal(t, 1, c.Page())
}

func TestSetQueryResetsState(t *testing.T) {
	bus := eventbus.New()
	defer bus.Close()

	c := New(pagedLoad(40), bus)
	require.True(t, c.LoadNext(context.Background()))
	waitFor(t, func() bool { return c.Len() == catalog.FeedPageSize }, "first page should load")

	c.SetQuery(domain.Query{Text: "report"})
	require.Zero(t, c.Len())
	require.Equal(t, 1, c.Page())
	require.False(t, c.Exhausted())
	require.Equal(t, "report", c.Query().Text)
}

func TestShouldLoadMore(t *testing.T) {
	bus := eventbus.New()
	defer bus.Close()

	c := New(pagedLoad(40), bus)

	require.False(t, c.ShouldLoadMore(0), "no load before the first page has been applied")

	require.True(t, c.LoadNext(context.Background()))
	waitFor(t, func() bool { return c.Len() == catalog.FeedPageSize }, "first page should load")

	require.False(t, c.ShouldLoadMore(13), "selection far from the bottom should not load")
	require.True(t, c.ShouldLoadMore(14), "selection within the threshold should load")
	require.True(t, c.ShouldLoadMore(19))
}

func TestLoadFailurePublishesEventAndAllowsRetry(t *testing.T) {
	bus := eventbus.New()
	defer bus.Close()

	failures := make(chan eventbus.DomainEvent, 1)
	bus.Subscribe(eventbus.EventFeedLoadFailed, func(e eventbus.DomainEvent) {
		failures <- e
	})

	boom := errors.New("boom")
	load := func(ctx context.Context, q domain.Query, page, perPage int) ([]domain.FileRecord, error) {
		return nil, boom
	}

	c := New(load, bus)
	require.True(t, c.LoadNext(context.Background()))

	select {
	case e := <-failures:
		ev, ok := e.(eventbus.FeedLoadFailedEvent)
		require.True(t, ok)
		require.Equal(t, 1, ev.Page)
	case <-time.After(2 * time.Second):
		t.Fatal("no failure event published")
	}

	waitFor(t, func() bool { return !c.InFlight() }, "failure should clear the in-flight flag")
	require.True(t, c.LoadNext(context.Background()), "the next scroll should retry")
}

func TestEmptyFeed(t *testing.T) {
	bus := eventbus.New()
	defer bus.Close()

	c := New(pagedLoad(0), bus)
	require.False(t, c.Empty(), "empty is only reported after a load")

	require.True(t, c.LoadNext(context.Background()))
	waitFor(t, func() bool { return c.Empty() }, "zero-result feed should report empty")
}
