package views

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"filegrip/internal/domain"
)

// ViewState contains all the state needed for rendering
type ViewState struct {
	Width  int
	Height int

	Records        []domain.FileRecord
	SelectedIndex  int
	ViewportOffset int
	ViewportHeight int

	SearchQuery string
	YearFilter  int
	TypeFilter  string
	Sort        domain.SortOrder

	InputActive bool
	InputPrompt string
	InputView   string // rendered textinput

	Suggestions     []domain.FileRecord
	SuggestionIndex int

	ShowSidebar bool
	ShowModal   bool
	ModalRecord *domain.FileRecord
	ShowHelp    bool

	Loading   bool
	Exhausted bool
	NoResults bool
	DarkMode  bool

	StatusMessage string
}

// Renderer handles all view rendering
type Renderer struct {
	styles       *Styles
	cardRender   *CardRenderer
	sideRender   *SidebarRenderer
	popupRender  *PopupRenderer
	spinnerStart time.Time
}

// NewRenderer creates a new renderer for the given theme
func NewRenderer(dark bool) *Renderer {
	r := &Renderer{spinnerStart: time.Now()}
	r.SetTheme(dark)
	return r
}

// SetTheme rebuilds the style set; called when dark mode toggles.
func (r *Renderer) SetTheme(dark bool) {
	r.styles = NewStyles(dark)
	r.cardRender = NewCardRenderer(r.styles)
	r.sideRender = NewSidebarRenderer(r.styles)
	r.popupRender = NewPopupRenderer(r.styles)
}

// Styles exposes the active style set.
func (r *Renderer) Styles() *Styles {
	return r.styles
}

// Render produces the complete view
func (r *Renderer) Render(state ViewState) string {
	content := &strings.Builder{}

	content.WriteString(r.renderTitle(state))
	content.WriteString("\n")
	content.WriteString(r.renderSearchBox(state))
	content.WriteString("\n")

	if state.InputActive && len(state.Suggestions) > 0 {
		content.WriteString(r.renderSuggestions(state))
		content.WriteString("\n")
	} else {
		content.WriteString(r.renderFeed(state))
	}

	content.WriteString("\n")
	content.WriteString(r.renderStatus(state))

	main := r.styles.Main.Render(content.String())

	if state.ShowSidebar {
		side := r.sideRender.Render(state.YearFilter, state.TypeFilter, state.Sort, state.DarkMode, state.Height)
		main = lipgloss.JoinHorizontal(lipgloss.Top, main, side)
	}

	if state.ShowHelp {
		help := r.renderHelp()
		return r.popupRender.RenderOverlay(main, help, state.Width, state.Height)
	}

	if state.ShowModal && state.ModalRecord != nil {
		modal := r.popupRender.RenderRecordModal(*state.ModalRecord, min(state.Width, 72))
		return r.popupRender.RenderOverlay(main, modal, state.Width, state.Height)
	}

	return main
}

func (r *Renderer) renderTitle(state ViewState) string {
	logo := r.styles.Title.Render("filegrip")

	indicators := []string{}
	if state.Loading {
		frames := []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}
		frame := int(time.Since(r.spinnerStart).Milliseconds()/80) % len(frames)
		indicators = append(indicators, fmt.Sprintf("%s loading", frames[frame]))
	}
	if state.YearFilter != 0 {
		indicators = append(indicators, r.styles.Filter.Render(fmt.Sprintf("[year: %d]", state.YearFilter)))
	}
	if state.TypeFilter != "" {
		indicators = append(indicators, r.styles.Filter.Render(fmt.Sprintf("[type: %s]", state.TypeFilter)))
	}
	if state.Sort == domain.SortAsc {
		indicators = append(indicators, r.styles.Dim.Render("[oldest first]"))
	}

	if len(indicators) == 0 {
		return logo
	}

	right := strings.Join(indicators, " ")
	termWidth := state.Width
	if termWidth <= 0 {
		termWidth = 80
	}
	padding := termWidth - 4 - lipgloss.Width(logo) - lipgloss.Width(right)
	if padding < 2 {
		padding = 2
	}
	return logo + strings.Repeat(" ", padding) + right
}

func (r *Renderer) renderSearchBox(state ViewState) string {
	if state.InputActive {
		return r.styles.SearchBox.Render(state.InputPrompt + state.InputView)
	}
	if state.SearchQuery != "" {
		return r.styles.SearchBox.Render("Search: " + state.SearchQuery + r.styles.Dim.Render("  (/ to edit)"))
	}
	return r.styles.SearchBox.Render(r.styles.Dim.Render("Press / to search"))
}

func (r *Renderer) renderSuggestions(state ViewState) string {
	var b strings.Builder
	for i, s := range state.Suggestions {
		line := fmt.Sprintf("%s %s", TypeIcon(s.ResolvedType()), truncate(s.FileName, state.Width-10))
		if i == state.SuggestionIndex {
			b.WriteString(r.styles.SuggestionSel.Render(line))
		} else {
			b.WriteString(r.styles.Suggestion.Render(line))
		}
		b.WriteString("\n")
	}
	b.WriteString(r.styles.Dim.Render("\n↑/↓ choose · enter search · esc cancel"))
	return b.String()
}

func (r *Renderer) renderFeed(state ViewState) string {
	if state.NoResults {
		return r.styles.Dim.Render("No results. Try another query or clear the filters with c.")
	}
	if len(state.Records) == 0 {
		if state.Loading {
			return r.styles.Dim.Render("Loading…")
		}
		return r.styles.Dim.Render("Nothing here yet.")
	}

	var b strings.Builder
	end := state.ViewportOffset + state.ViewportHeight
	if end > len(state.Records) {
		end = len(state.Records)
	}

	width := state.Width
	if width <= 0 {
		width = 80
	}

	for i := state.ViewportOffset; i < end; i++ {
		b.WriteString(r.cardRender.Render(state.Records[i], i == state.SelectedIndex, width))
		b.WriteString("\n")
	}

	if state.Exhausted && end == len(state.Records) {
		b.WriteString(r.styles.EndMarker.Render("— end of results —"))
		b.WriteString("\n")
	}

	return b.String()
}

func (r *Renderer) renderStatus(state ViewState) string {
	if state.StatusMessage != "" {
		return r.styles.Status.Render(state.StatusMessage)
	}

	var pos string
	if len(state.Records) > 0 {
		pos = fmt.Sprintf("%d/%d", state.SelectedIndex+1, len(state.Records))
	}
	return r.styles.Status.Render(pos + "  ? help · tab filters · q quit")
}

func (r *Renderer) renderHelp() string {
	keys := [][2]string{
		{"/", "search"},
		{"↑/↓, j/k", "move selection"},
		{"enter", "record details"},
		{"o", "open bot link"},
		{"v", "view details in pager"},
		{"tab, b", "toggle filter sidebar"},
		{"y / t / s", "year, type, sort"},
		{"c", "clear filters"},
		{"d", "toggle dark mode"},
		{"r", "reload feed"},
		{"q", "quit"},
	}

	var b strings.Builder
	b.WriteString(r.styles.SidebarTitle.Render("filegrip help"))
	b.WriteString("\n")
	for _, k := range keys {
		b.WriteString(fmt.Sprintf("  %-12s %s\n", k[0], r.styles.Dim.Render(k[1])))
	}
	return r.styles.ModalBox.Render(b.String())
}
