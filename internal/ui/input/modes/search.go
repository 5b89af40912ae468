package modes

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"filegrip/internal/ui/input/types"
)

// SearchMode is the query box. While typing, Up/Down walk the suggestion
// list and Enter either accepts the highlighted suggestion or submits the
// typed query.
type SearchMode struct {
	TextInputMode
}

func NewSearchMode(ti *textinput.Model) *SearchMode {
	return &SearchMode{
		TextInputMode: NewTextInputMode(types.ModeSearch, "search", "Search: ", ti),
	}
}

func (m *SearchMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	switch msg.Type {
	case tea.KeyUp:
		if ctx.SuggestionCount() > 0 {
			return []types.Action{types.MoveSuggestionAction{Direction: "up"}}, true
		}
		return nil, true

	case tea.KeyDown:
		if ctx.SuggestionCount() > 0 {
			return []types.Action{types.MoveSuggestionAction{Direction: "down"}}, true
		}
		return nil, true

	case tea.KeyEnter:
		return []types.Action{
			types.AcceptSuggestionAction{},
			types.ChangeModeAction{Mode: types.ModeNormal},
		}, true
	}

	return m.TextInputMode.HandleKey(msg, ctx)
}
