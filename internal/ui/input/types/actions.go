package types

// Navigation actions
type NavigateAction struct {
	Direction string // "up", "down", "pageup", "pagedown", "home", "end"
}

func (a NavigateAction) Type() string { return "navigate" }

// Mode transition actions
type ChangeModeAction struct {
	Mode Mode
}

func (a ChangeModeAction) Type() string { return "change_mode" }

// Text input actions
type UpdateTextAction struct {
	Text string
}

func (a UpdateTextAction) Type() string { return "update_text" }

type SubmitTextAction struct {
	Text string
	Mode Mode // Which mode submitted the text
}

func (a SubmitTextAction) Type() string { return "submit_text" }

type CancelTextAction struct{}

func (a CancelTextAction) Type() string { return "cancel_text" }

// Suggestion actions
type MoveSuggestionAction struct {
	Direction string // "up" or "down"
}

func (a MoveSuggestionAction) Type() string { return "move_suggestion" }

type AcceptSuggestionAction struct{}

func (a AcceptSuggestionAction) Type() string { return "accept_suggestion" }

// Overlay actions
type ToggleSidebarAction struct{}

func (a ToggleSidebarAction) Type() string { return "toggle_sidebar" }

// CloseOverlayAction closes the topmost overlay; the modal takes priority
// over the sidebar.
type CloseOverlayAction struct{}

func (a CloseOverlayAction) Type() string { return "close_overlay" }

type OpenModalAction struct{}

func (a OpenModalAction) Type() string { return "open_modal" }

type ToggleHelpAction struct{}

func (a ToggleHelpAction) Type() string { return "toggle_help" }

// Record actions
type OpenDeepLinkAction struct{}

func (a OpenDeepLinkAction) Type() string { return "open_deep_link" }

type ShowDetailsAction struct{}

func (a ShowDetailsAction) Type() string { return "show_details" }

// Feed actions
type RefreshAction struct{}

func (a RefreshAction) Type() string { return "refresh" }

type ToggleSortAction struct{}

func (a ToggleSortAction) Type() string { return "toggle_sort" }

type ClearFiltersAction struct{}

func (a ClearFiltersAction) Type() string { return "clear_filters" }

// Appearance actions
type ToggleDarkModeAction struct{}

func (a ToggleDarkModeAction) Type() string { return "toggle_dark_mode" }

type QuitAction struct {
	Force bool // true for Ctrl+C, false for 'q'
}

func (a QuitAction) Type() string { return "quit" }
