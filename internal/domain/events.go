package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventFeedPageLoaded    EventType = "FeedPageLoaded"
	EventFeedLoadFailed    EventType = "FeedLoadFailed"
	EventSuggestionsReady  EventType = "SuggestionsReady"
	EventSuggestionsFailed EventType = "SuggestionsFailed"
	EventDeepLinkOpened    EventType = "DeepLinkOpened"
	EventConfigLoaded      EventType = "ConfigLoaded"
	EventConfigSaved       EventType = "ConfigSaved"
	EventConfigChanged     EventType = "ConfigChanged"
	EventError             EventType = "Error"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// FeedPageLoadedEvent is emitted when a feed page has been fetched
type FeedPageLoadedEvent struct {
	Page    int
	Records []FileRecord
}

func (e FeedPageLoadedEvent) Type() EventType { return EventFeedPageLoaded }

// FeedLoadFailedEvent is emitted when a feed page fetch fails
type FeedLoadFailedEvent struct {
	Page int
	Err  error
}

func (e FeedLoadFailedEvent) Type() EventType { return EventFeedLoadFailed }

// SuggestionsReadyEvent carries ranked suggestions for a query
type SuggestionsReadyEvent struct {
	Seq     uint64 // lookup sequence number, stale responses are discarded
	Query   string
	Records []FileRecord
}

func (e SuggestionsReadyEvent) Type() EventType { return EventSuggestionsReady }

// SuggestionsFailedEvent is emitted when a suggestion lookup fails
type SuggestionsFailedEvent struct {
	Seq uint64
	Err error
}

func (e SuggestionsFailedEvent) Type() EventType { return EventSuggestionsFailed }

// DeepLinkOpenedEvent is emitted after a deep link has been handed to the OS
type DeepLinkOpenedEvent struct {
	RecordID string
	URL      string
}

func (e DeepLinkOpenedEvent) Type() EventType { return EventDeepLinkOpened }

// ConfigLoadedEvent is emitted when configuration is loaded
type ConfigLoadedEvent struct {
	DarkMode bool
}

func (e ConfigLoadedEvent) Type() EventType { return EventConfigLoaded }

// ConfigSavedEvent is emitted when configuration is saved
type ConfigSavedEvent struct{}

func (e ConfigSavedEvent) Type() EventType { return EventConfigSaved }

// ConfigChangedEvent is emitted when the config file changed on disk
type ConfigChangedEvent struct {
	DarkMode bool
}

func (e ConfigChangedEvent) Type() EventType { return EventConfigChanged }

// ErrorEvent is emitted when a background operation fails
type ErrorEvent struct {
	Message string
	Err     error
}

func (e ErrorEvent) Type() EventType { return EventError }
