package state

import (
	"filegrip/internal/domain"
)

// AppState contains all the application state the views render from. Feed
// records are mirrored here from the feed controller after every page event;
// the controller stays the owner of pagination.
type AppState struct {
	// Feed data
	Records []domain.FileRecord

	// Selection state
	SelectedIndex  int
	ViewportOffset int // offset for scrolling
	ViewportHeight int // available height for the result list

	// Query state mirrored for rendering
	SearchQuery string
	YearFilter  int
	TypeFilter  string
	Sort        domain.SortOrder

	// Suggestion state
	Suggestions     []domain.FileRecord
	SuggestionIndex int // highlighted suggestion, -1 for none
	AppliedSeq      uint64

	// Overlay state
	ShowSidebar bool
	ShowModal   bool
	ModalRecord *domain.FileRecord
	ShowHelp    bool

	// Appearance
	DarkMode bool

	// Feed status flags for rendering
	Loading   bool
	Exhausted bool
	NoResults bool

	StatusMessage string
}

// NewAppState creates a new application state
func NewAppState() *AppState {
	return &AppState{
		Sort:            domain.SortDesc,
		SuggestionIndex: -1,
		ViewportHeight:  20, // Default
	}
}

// SetRecords replaces the rendered records, clamping the selection.
func (s *AppState) SetRecords(records []domain.FileRecord) {
	s.Records = records
	if s.SelectedIndex >= len(records) {
		s.SelectedIndex = len(records) - 1
	}
	if s.SelectedIndex < 0 {
		s.SelectedIndex = 0
	}
}

// SelectedRecord returns the currently selected record, if any.
func (s *AppState) SelectedRecord() (domain.FileRecord, bool) {
	if s.SelectedIndex < 0 || s.SelectedIndex >= len(s.Records) {
		return domain.FileRecord{}, false
	}
	return s.Records[s.SelectedIndex], true
}

// SetSuggestions replaces the suggestion list and resets the highlight.
func (s *AppState) SetSuggestions(records []domain.FileRecord) {
	s.Suggestions = records
	s.SuggestionIndex = -1
}

// ClearSuggestions hides the suggestion list.
func (s *AppState) ClearSuggestions() {
	s.Suggestions = nil
	s.SuggestionIndex = -1
}

// MoveSuggestion moves the suggestion highlight, wrapping around.
func (s *AppState) MoveSuggestion(delta int) {
	if len(s.Suggestions) == 0 {
		return
	}
	s.SuggestionIndex += delta
	if s.SuggestionIndex < 0 {
		s.SuggestionIndex = len(s.Suggestions) - 1
	}
	if s.SuggestionIndex >= len(s.Suggestions) {
		s.SuggestionIndex = 0
	}
}

// HighlightedSuggestion returns the highlighted suggestion, if any.
func (s *AppState) HighlightedSuggestion() (domain.FileRecord, bool) {
	if s.SuggestionIndex < 0 || s.SuggestionIndex >= len(s.Suggestions) {
		return domain.FileRecord{}, false
	}
	return s.Suggestions[s.SuggestionIndex], true
}

// ClampScroll keeps the selection inside the viewport.
func (s *AppState) ClampScroll() {
	if s.SelectedIndex < s.ViewportOffset {
		s.ViewportOffset = s.SelectedIndex
	}
	if s.SelectedIndex >= s.ViewportOffset+s.ViewportHeight {
		s.ViewportOffset = s.SelectedIndex - s.ViewportHeight + 1
	}
	if s.ViewportOffset < 0 {
		s.ViewportOffset = 0
	}
}
