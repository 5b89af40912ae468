package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"filegrip/internal/domain"
)

// CardRenderer renders one result card per catalog record
type CardRenderer struct {
	styles *Styles
}

// NewCardRenderer creates a new card renderer
func NewCardRenderer(styles *Styles) *CardRenderer {
	return &CardRenderer{styles: styles}
}

// Render renders a record as a two-line card. The selected card gets a
// pointer and a highlighted background on its title line.
func (cr *CardRenderer) Render(rec domain.FileRecord, selected bool, width int) string {
	icon := TypeIcon(rec.ResolvedType())
	name := truncate(rec.FileName, width-8)

	title := fmt.Sprintf("%s %s", icon, cr.styles.CardName.Render(name))
	if selected {
		title = cr.styles.CardSelected.Render("▸ " + title)
	} else {
		title = cr.styles.Card.Render(title)
	}

	meta := cr.renderMeta(rec)
	line2 := cr.styles.Card.Render("  " + meta)

	if caption := strings.TrimSpace(rec.Caption); caption != "" {
		styled := cr.styles.CardCaption.Render(truncate(caption, width-10))
		line2 = cr.styles.Card.Render("  " + styled + "  " + meta)
	}

	return title + "\n" + line2
}

func (cr *CardRenderer) renderMeta(rec domain.FileRecord) string {
	parts := []string{rec.ResolvedType()}
	if rec.Year != 0 {
		parts = append(parts, fmt.Sprintf("%d", rec.Year))
	}
	if rec.FileSize > 0 {
		parts = append(parts, humanSize(rec.FileSize))
	}
	return cr.styles.CardMeta.Render(strings.Join(parts, " · "))
}

// humanSize formats a byte count for display
func humanSize(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(n)/float64(div), "KMGTPE"[exp])
}

// truncate shortens s to max visible cells, appending an ellipsis
func truncate(s string, max int) string {
	if max <= 1 {
		return s
	}
	if lipgloss.Width(s) <= max {
		return s
	}
	runes := []rune(s)
	if len(runes) > max-1 {
		runes = runes[:max-1]
	}
	return string(runes) + "…"
}
