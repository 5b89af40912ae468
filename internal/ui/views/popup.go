package views

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"filegrip/internal/domain"
)

// PopupRenderer handles popup/modal rendering
type PopupRenderer struct {
	styles *Styles
}

// NewPopupRenderer creates a new popup renderer
func NewPopupRenderer(styles *Styles) *PopupRenderer {
	return &PopupRenderer{styles: styles}
}

// RenderRecordModal renders the record-details modal content.
func (pr *PopupRenderer) RenderRecordModal(rec domain.FileRecord, width int) string {
	var b strings.Builder

	b.WriteString(pr.styles.CardName.Render(truncate(rec.FileName, width-10)))
	b.WriteString("\n\n")

	b.WriteString(fmt.Sprintf("type  %s\n", rec.ResolvedType()))
	if rec.Year != 0 {
		b.WriteString(fmt.Sprintf("year  %d\n", rec.Year))
	}
	if rec.FileSize > 0 {
		b.WriteString(fmt.Sprintf("size  %s\n", humanSize(rec.FileSize)))
	}
	b.WriteString(fmt.Sprintf("id    %s\n", rec.ID))

	if caption := strings.TrimSpace(rec.Caption); caption != "" {
		b.WriteString("\n")
		b.WriteString(pr.styles.CardCaption.Render(wrap(caption, width-12)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(pr.styles.Dim.Render("o open link · v full view · esc close"))

	return pr.styles.ModalBox.Render(b.String())
}

// RenderOverlay centers popup over base, dimming the base content.
func (pr *PopupRenderer) RenderOverlay(base, popup string, width, height int) string {
	dimmed := desaturateANSI(base)
	baseLines := strings.Split(dimmed, "\n")
	for len(baseLines) < height {
		baseLines = append(baseLines, "")
	}

	popupLines := strings.Split(popup, "\n")
	popupW := lipgloss.Width(popup)
	popupH := len(popupLines)

	x := (width - popupW) / 2
	if x < 0 {
		x = 0
	}
	y := (height - popupH) / 2
	if y < 0 {
		y = 0
	}

	for i, pl := range popupLines {
		row := y + i
		if row >= len(baseLines) {
			break
		}
		baseLines[row] = spliceLine(baseLines[row], pl, x)
	}

	return strings.Join(baseLines, "\n")
}

// spliceLine overlays overlay onto line starting at visible column x. Styled
// base lines are flattened to plain text first; the overlay keeps its styling.
func spliceLine(line, overlay string, x int) string {
	plain := ansiRE.ReplaceAllString(line, "")
	runes := []rune(plain)
	for len(runes) < x {
		runes = append(runes, ' ')
	}
	left := string(runes[:x])

	overW := lipgloss.Width(overlay)
	var right string
	if x+overW < len(runes) {
		right = string(runes[x+overW:])
	}

	return left + overlay + right
}

// ANSI escape sequence regex to strip styles/colors
var ansiRE = regexp.MustCompile(`\x1b\[[0-9;]*m`)

// desaturateANSI strips ANSI color/style codes and recolors text dim gray
func desaturateANSI(s string) string {
	plain := ansiRE.ReplaceAllString(s, "")
	lines := strings.Split(plain, "\n")
	style := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	for i, line := range lines {
		lines[i] = style.Render(line)
	}
	return strings.Join(lines, "\n")
}

// wrap breaks s into lines no wider than max
func wrap(s string, max int) string {
	if max < 8 {
		max = 8
	}
	words := strings.Fields(s)
	var lines []string
	var cur string
	for _, w := range words {
		if cur == "" {
			cur = w
			continue
		}
		if lipgloss.Width(cur)+1+lipgloss.Width(w) > max {
			lines = append(lines, cur)
			cur = w
			continue
		}
		cur += " " + w
	}
	if cur != "" {
		lines = append(lines, cur)
	}
	return strings.Join(lines, "\n")
}
