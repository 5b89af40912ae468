package views

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Title         lipgloss.Style
	Dim           lipgloss.Style
	Status        lipgloss.Style
	Filter        lipgloss.Style
	Main          lipgloss.Style
	Help          lipgloss.Style
	Card          lipgloss.Style
	CardSelected  lipgloss.Style
	CardName      lipgloss.Style
	CardCaption   lipgloss.Style
	CardMeta      lipgloss.Style
	SearchBox     lipgloss.Style
	Suggestion    lipgloss.Style
	SuggestionSel lipgloss.Style
	Sidebar       lipgloss.Style
	SidebarTitle  lipgloss.Style
	ModalBox      lipgloss.Style
	EndMarker     lipgloss.Style
	Error         lipgloss.Style
}

// NewStyles builds the style set for the given theme. Dark mode swaps the
// palette; layout stays identical.
func NewStyles(dark bool) *Styles {
	p := lightPalette
	if dark {
		p = darkPalette
	}

	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.accent).
			MarginBottom(1),
		Dim:    lipgloss.NewStyle().Foreground(p.dim),
		Status: lipgloss.NewStyle().Foreground(p.dim).MarginTop(1),
		Filter: lipgloss.NewStyle().Foreground(p.warn),
		Main:   lipgloss.NewStyle().Padding(1, 2),
		Help:   lipgloss.NewStyle().Faint(true),
		Card: lipgloss.NewStyle().
			PaddingLeft(2),
		CardSelected: lipgloss.NewStyle().
			PaddingLeft(0).
			Background(p.selectionBg),
		CardName:    lipgloss.NewStyle().Bold(true).Foreground(p.text),
		CardCaption: lipgloss.NewStyle().Foreground(p.muted),
		CardMeta:    lipgloss.NewStyle().Foreground(p.dim).Italic(true),
		SearchBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.accent).
			Padding(0, 1),
		Suggestion:    lipgloss.NewStyle().PaddingLeft(2).Foreground(p.muted),
		SuggestionSel: lipgloss.NewStyle().PaddingLeft(2).Foreground(p.text).Background(p.selectionBg).Bold(true),
		Sidebar: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(p.dim).
			Padding(1, 2),
		SidebarTitle: lipgloss.NewStyle().Bold(true).Foreground(p.accent).MarginBottom(1),
		ModalBox: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(p.accent).
			Padding(1, 2),
		EndMarker: lipgloss.NewStyle().Foreground(p.dim).Italic(true),
		Error:     lipgloss.NewStyle().Foreground(p.err),
	}
}

// palette holds the color slots a theme fills in
type palette struct {
	text        lipgloss.Color
	muted       lipgloss.Color
	dim         lipgloss.Color
	accent      lipgloss.Color
	warn        lipgloss.Color
	err         lipgloss.Color
	selectionBg lipgloss.Color
}

var lightPalette = palette{
	text:        lipgloss.Color("235"),
	muted:       lipgloss.Color("240"),
	dim:         lipgloss.Color("246"),
	accent:      lipgloss.Color("27"),
	warn:        lipgloss.Color("130"),
	err:         lipgloss.Color("124"),
	selectionBg: lipgloss.Color("153"),
}

var darkPalette = palette{
	text:        lipgloss.Color("252"),
	muted:       lipgloss.Color("247"),
	dim:         lipgloss.Color("241"),
	accent:      lipgloss.Color("99"),
	warn:        lipgloss.Color("214"),
	err:         lipgloss.Color("203"),
	selectionBg: lipgloss.Color("238"),
}

// TypeIcon returns a marker glyph for a file type tag.
func TypeIcon(fileType string) string {
	switch fileType {
	case "pdf":
		return "▤"
	case "mp4", "mkv", "avi", "webm":
		return "▶"
	case "zip", "rar", "7z", "tar", "gz":
		return "▣"
	case "mp3", "flac":
		return "♪"
	default:
		return "•"
	}
}
