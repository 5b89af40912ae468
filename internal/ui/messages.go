package ui

import (
	"time"

	"filegrip/internal/eventbus"
)

// EventMsg wraps a domain event for the UI
type EventMsg struct {
	Event eventbus.DomainEvent
}

// tickMsg is sent on a timer for animations
type tickMsg time.Time

// suggestDebounceMsg fires when typing has paused long enough to look up
// suggestions. Stale generations are ignored.
type suggestDebounceMsg struct {
	gen uint64
}

// sidebarTimeoutMsg closes the sidebar after a period of inactivity
type sidebarTimeoutMsg struct {
	gen uint64
}

// linkOpenedMsg contains the result of resolving and opening a bot link
type linkOpenedMsg struct {
	link string
	err  error
}

// pagerDoneMsg contains the result of a detail pager session
type pagerDoneMsg struct {
	err error
}
