package modes

import (
	tea "github.com/charmbracelet/bubbletea"

	"filegrip/internal/ui/input/types"
)

type NormalMode struct{}

func NewNormalMode() *NormalMode {
	return &NormalMode{}
}

func (m *NormalMode) Name() string {
	return "normal"
}

func (m *NormalMode) Enter(ctx types.Context) []types.Action {
	return nil
}

func (m *NormalMode) Exit(ctx types.Context) []types.Action {
	return nil
}

func (m *NormalMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return []types.Action{types.QuitAction{Force: true}}, true

	case tea.KeyEsc:
		if ctx.ModalOpen() || ctx.SidebarOpen() || ctx.HelpOpen() {
			return []types.Action{types.CloseOverlayAction{}}, true
		}
		return nil, false

	case tea.KeyUp:
		return []types.Action{types.NavigateAction{Direction: "up"}}, true

	case tea.KeyDown:
		return []types.Action{types.NavigateAction{Direction: "down"}}, true

	case tea.KeyPgUp:
		return []types.Action{types.NavigateAction{Direction: "pageup"}}, true

	case tea.KeyPgDown:
		return []types.Action{types.NavigateAction{Direction: "pagedown"}}, true

	case tea.KeyHome:
		return []types.Action{types.NavigateAction{Direction: "home"}}, true

	case tea.KeyEnd:
		return []types.Action{types.NavigateAction{Direction: "end"}}, true

	case tea.KeyEnter:
		if ctx.TotalItems() > 0 {
			return []types.Action{types.OpenModalAction{}}, true
		}
		return nil, false

	case tea.KeyTab:
		return []types.Action{types.ToggleSidebarAction{}}, true
	}

	switch msg.String() {
	case "j":
		return []types.Action{types.NavigateAction{Direction: "down"}}, true

	case "k":
		return []types.Action{types.NavigateAction{Direction: "up"}}, true

	case "g":
		return []types.Action{types.NavigateAction{Direction: "home"}}, true

	case "G":
		return []types.Action{types.NavigateAction{Direction: "end"}}, true

	case "/":
		return []types.Action{types.ChangeModeAction{Mode: types.ModeSearch}}, true

	case "b":
		return []types.Action{types.ToggleSidebarAction{}}, true

	case "y":
		return []types.Action{types.ChangeModeAction{Mode: types.ModeYear}}, true

	case "t":
		return []types.Action{types.ChangeModeAction{Mode: types.ModeType}}, true

	case "s":
		return []types.Action{types.ToggleSortAction{}}, true

	case "c":
		return []types.Action{types.ClearFiltersAction{}}, true

	case "o":
		if ctx.TotalItems() > 0 {
			return []types.Action{types.OpenDeepLinkAction{}}, true
		}
		return nil, false

	case "v":
		if ctx.TotalItems() > 0 {
			return []types.Action{types.ShowDetailsAction{}}, true
		}
		return nil, false

	case "r":
		return []types.Action{types.RefreshAction{}}, true

	case "d":
		return []types.Action{types.ToggleDarkModeAction{}}, true

	case "?":
		return []types.Action{types.ToggleHelpAction{}}, true

	case "q":
		if ctx.ModalOpen() || ctx.SidebarOpen() || ctx.HelpOpen() {
			return []types.Action{types.CloseOverlayAction{}}, true
		}
		return []types.Action{types.QuitAction{}}, true
	}

	return nil, false
}
