package modes

import (
	"github.com/charmbracelet/bubbles/textinput"

	"filegrip/internal/ui/input/types"
)

// YearMode collects the year filter value.
type YearMode struct {
	TextInputMode
}

func NewYearMode(ti *textinput.Model) *YearMode {
	return &YearMode{
		TextInputMode: NewTextInputMode(types.ModeYear, "year", "Year: ", ti),
	}
}
