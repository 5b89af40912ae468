// Package feed owns the incrementally loaded, paginated result list.
package feed

import (
	"context"
	"log"
	"sync"

	"filegrip/internal/catalog"
	"filegrip/internal/domain"
	"filegrip/internal/eventbus"
)

// ScrollThreshold is how many rows from the bottom of the rendered feed the
// selection may get before the next page is requested.
const ScrollThreshold = 6

// LoadFunc fetches one page of records for the current query state.
type LoadFunc func(ctx context.Context, q domain.Query, page, perPage int) ([]domain.FileRecord, error)

// Controller owns the feed's query state and pagination. The page counter
// advances only after a full page comes back; any shorter page marks the feed
// exhausted until the next Reset. A single in-flight flag prevents overlapping
// loads. Load failures clear the flag and are otherwise ignored, so the next
// qualifying scroll retries naturally; there is no scheduled retry.
type Controller struct {
	mu sync.Mutex

	load LoadFunc
	bus  eventbus.EventBus

	query     domain.Query
	page      int
	perPage   int
	exhausted bool
	inFlight  bool
	loaded    bool // at least one page applied since the last reset
	epoch     uint64

	records []domain.FileRecord
}

// New creates a feed controller. Events (page loaded, load failed) are
// published on the bus after the controller's own state has been updated.
func New(load LoadFunc, bus eventbus.EventBus) *Controller {
	return &Controller{
		load:    load,
		bus:     bus,
		page:    1,
		perPage: catalog.FeedPageSize,
	}
}

// Query returns the current query state.
func (c *Controller) Query() domain.Query {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.query
}

// SetQuery replaces the query state and resets pagination. It does not start
// a load; call LoadNext (or use ResetAndLoad).
func (c *Controller) SetQuery(q domain.Query) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.query = q
	c.resetLocked()
}

// Reset clears the rendered records, restores page 1 and clears the exhausted
// flag, regardless of prior state. An in-flight load keeps running but its
// result is discarded when it lands.
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.resetLocked()
}

func (c *Controller) resetLocked() {
	c.records = nil
	c.page = 1
	c.exhausted = false
	c.inFlight = false
	c.loaded = false
	c.epoch++
}

// ResetAndLoad resets pagination and triggers the first page load.
func (c *Controller) ResetAndLoad(ctx context.Context) {
	c.Reset()
	c.LoadNext(ctx)
}

// LoadNext requests the next page in the background. It is a no-op while a
// load is in flight or after the feed is exhausted. Returns whether a load
// was started.
func (c *Controller) LoadNext(ctx context.Context) bool {
	c.mu.Lock()
	if c.inFlight || c.exhausted {
		c.mu.Unlock()
		return false
	}
	c.inFlight = true
	page := c.page
	query := c.query
	epoch := c.epoch
	perPage := c.perPage
	c.mu.Unlock()

	go func() {
		records, err := c.load(ctx, query, page, perPage)

		c.mu.Lock()
		if epoch != c.epoch {
			// The feed was reset while this page was in flight; drop it.
			c.mu.Unlock()
			return
		}
		c.inFlight = false
		if err != nil {
			c.mu.Unlock()
			log.Printf("feed: loading page %d: %v", page, err)
			c.bus.Publish(eventbus.FeedLoadFailedEvent{Page: page, Err: err})
			return
		}

		c.records = append(c.records, records...)
		c.loaded = true
		if len(records) < perPage {
			c.exhausted = true
		} else {
			c.page++
		}
		c.mu.Unlock()

		c.bus.Publish(eventbus.FeedPageLoadedEvent{Page: page, Records: records})
	}()

	return true
}

// ShouldLoadMore reports whether moving the selection to the given record
// index puts it close enough to the bottom to trigger the next page.
func (c *Controller) ShouldLoadMore(selectedIndex int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.inFlight || c.exhausted || !c.loaded {
		return false
	}
	return len(c.records)-selectedIndex <= ScrollThreshold
}

// Records returns the records rendered so far.
func (c *Controller) Records() []domain.FileRecord {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]domain.FileRecord, len(c.records))
	copy(out, c.records)
	return out
}

// Len returns the number of records loaded so far.
func (c *Controller) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.records)
}

// Exhausted reports whether the end of the result set has been reached.
func (c *Controller) Exhausted() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.exhausted
}

// InFlight reports whether a page load is currently running.
func (c *Controller) InFlight() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inFlight
}

// Empty reports whether the feed finished loading with zero results; the UI
// renders the "no results" placeholder off this.
func (c *Controller) Empty() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loaded && c.exhausted && len(c.records) == 0
}

// Page returns the next page number to be requested.
func (c *Controller) Page() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.page
}
