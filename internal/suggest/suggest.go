// Package suggest computes ranked autosuggestions for the search box.
package suggest

import (
	"context"
	"log"
	"strings"
	"sync/atomic"
	"time"

	"filegrip/internal/catalog"
	"filegrip/internal/domain"
	"filegrip/internal/eventbus"
	"filegrip/internal/fuzzy"
)

const (
	// Debounce is how long typing must pause before a lookup is issued.
	Debounce = 220 * time.Millisecond

	// MaxSuggestions is the most suggestions ever rendered.
	MaxSuggestions = 8

	// minDirect is the direct-match count below which the fuzzy pool kicks in.
	minDirect = 5

	// keepClosest is how many of the closest fuzzy candidates survive ranking
	// before the distance threshold is applied.
	keepClosest = 12
)

// Fetcher is the slice of the catalog client the engine needs.
type Fetcher interface {
	Search(ctx context.Context, q domain.Query, page, perPage int) ([]domain.FileRecord, error)
}

// Engine runs suggestion lookups. Every lookup carries a monotonically
// increasing sequence number; a response whose sequence is no longer the
// latest is dropped, so rapid typing cannot overwrite fresh suggestions with
// stale ones. Network failures clear the suggestion list silently.
type Engine struct {
	fetcher Fetcher
	bus     eventbus.EventBus
	seq     atomic.Uint64
}

// NewEngine creates a suggestion engine publishing results on the bus.
func NewEngine(fetcher Fetcher, bus eventbus.EventBus) *Engine {
	return &Engine{fetcher: fetcher, bus: bus}
}

// Lookup starts a suggestion lookup for query in the background and returns
// its sequence number. An empty (all-whitespace) query publishes an empty
// result immediately, which also invalidates any lookup still in flight.
func (e *Engine) Lookup(ctx context.Context, query string) uint64 {
	query = strings.TrimSpace(query)
	seq := e.seq.Add(1)

	if query == "" {
		e.bus.Publish(eventbus.SuggestionsReadyEvent{Seq: seq, Query: ""})
		return seq
	}

	go e.lookup(ctx, seq, query)
	return seq
}

func (e *Engine) lookup(ctx context.Context, seq uint64, query string) {
	records, err := e.fetcher.Search(ctx, domain.Query{Text: query}, 1, catalog.SuggestPageSize)
	if err != nil {
		e.fail(seq, query, err)
		return
	}

	if len(records) < minDirect {
		pool, err := e.fetcher.Search(ctx, domain.Query{Text: query}, 1, catalog.SuggestPoolSize)
		if err != nil {
			e.fail(seq, query, err)
			return
		}

		ranked := fuzzy.Rank(query, pool, keepClosest)
		records = records[:0]
		for _, c := range ranked {
			records = append(records, c.Record)
		}
	}

	if len(records) > MaxSuggestions {
		records = records[:MaxSuggestions]
	}

	if !e.current(seq) {
		return
	}
	e.bus.Publish(eventbus.SuggestionsReadyEvent{Seq: seq, Query: query, Records: records})
}

func (e *Engine) fail(seq uint64, query string, err error) {
	log.Printf("suggest: lookup %q: %v", query, err)
	if !e.current(seq) {
		return
	}
	e.bus.Publish(eventbus.SuggestionsFailedEvent{Seq: seq, Err: err})
}

// current reports whether seq is still the latest issued lookup.
func (e *Engine) current(seq uint64) bool {
	return e.seq.Load() == seq
}

// Seq returns the sequence number of the most recent lookup.
func (e *Engine) Seq() uint64 {
	return e.seq.Load()
}
