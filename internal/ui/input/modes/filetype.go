package modes

import (
	"github.com/charmbracelet/bubbles/textinput"

	"filegrip/internal/ui/input/types"
)

// TypeMode collects the file-type filter value.
type TypeMode struct {
	TextInputMode
}

func NewTypeMode(ti *textinput.Model) *TypeMode {
	return &TypeMode{
		TextInputMode: NewTextInputMode(types.ModeType, "type", "Type: ", ti),
	}
}
