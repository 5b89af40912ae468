package views

import (
	"fmt"
	"strings"

	"filegrip/internal/domain"
)

// SidebarRenderer renders the collapsible filter panel
type SidebarRenderer struct {
	styles *Styles
}

// NewSidebarRenderer creates a new sidebar renderer
func NewSidebarRenderer(styles *Styles) *SidebarRenderer {
	return &SidebarRenderer{styles: styles}
}

// Render renders the sidebar panel with the active filters and the keys that
// change them.
func (sr *SidebarRenderer) Render(year int, fileType string, sort domain.SortOrder, darkMode bool, height int) string {
	var b strings.Builder

	b.WriteString(sr.styles.SidebarTitle.Render("Filters"))
	b.WriteString("\n")

	yearVal := "any"
	if year != 0 {
		yearVal = fmt.Sprintf("%d", year)
	}
	typeVal := "any"
	if fileType != "" {
		typeVal = fileType
	}
	sortVal := "newest first"
	if sort == domain.SortAsc {
		sortVal = "oldest first"
	}
	theme := "light"
	if darkMode {
		theme = "dark"
	}

	b.WriteString(fmt.Sprintf("y  year   %s\n", sr.styles.Filter.Render(yearVal)))
	b.WriteString(fmt.Sprintf("t  type   %s\n", sr.styles.Filter.Render(typeVal)))
	b.WriteString(fmt.Sprintf("s  sort   %s\n", sr.styles.Filter.Render(sortVal)))
	b.WriteString(fmt.Sprintf("d  theme  %s\n", sr.styles.Filter.Render(theme)))
	b.WriteString("\n")
	b.WriteString(sr.styles.Dim.Render("c  clear filters"))
	b.WriteString("\n")
	b.WriteString(sr.styles.Dim.Render("esc/q  close"))

	panel := sr.styles.Sidebar.Render(b.String())
	return panel
}
