package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/noborus/ov/oviewer"

	"filegrip/internal/domain"
)

// PagerOps shows record details in the ov pager, suspending the TUI for the
// duration of the pager session.
type PagerOps struct {
	program *tea.Program // reference to Bubble Tea program for terminal management
}

// NewPagerOps creates a new pager operations instance
func NewPagerOps() *PagerOps {
	return &PagerOps{}
}

// SetProgram sets the program reference for terminal management
func (p *PagerOps) SetProgram(program *tea.Program) {
	p.program = program
}

// ShowInPager shows content using the ov pager
func (p *PagerOps) ShowInPager(content string) error {
	if p.program == nil {
		return fmt.Errorf("program not set")
	}

	// Release terminal control to run ov
	if err := p.program.ReleaseTerminal(); err != nil {
		return err
	}

	// Ensure terminal is restored even if ov fails
	defer func() {
		// Small delay to ensure ov has fully exited before restoring terminal
		time.Sleep(100 * time.Millisecond)
		_ = p.program.RestoreTerminal()
	}()

	reader := strings.NewReader(content)

	root, err := oviewer.NewRoot(reader)
	if err != nil {
		return err
	}

	// Configure ov to not write on exit (to avoid messing with our screen)
	config := oviewer.NewConfig()
	config.IsWriteOnExit = false
	config.IsWriteOriginal = false
	root.SetConfig(config)

	return root.Run()
}

// RecordDetailsText renders the full detail text for the pager view.
func RecordDetailsText(rec domain.FileRecord) string {
	var b strings.Builder

	b.WriteString(rec.FileName)
	b.WriteString("\n")
	b.WriteString(strings.Repeat("=", len([]rune(rec.FileName))))
	b.WriteString("\n\n")

	b.WriteString(fmt.Sprintf("id:    %s\n", rec.ID))
	b.WriteString(fmt.Sprintf("type:  %s\n", rec.ResolvedType()))
	if rec.Year != 0 {
		b.WriteString(fmt.Sprintf("year:  %d\n", rec.Year))
	}
	if rec.FileSize > 0 {
		b.WriteString(fmt.Sprintf("size:  %d bytes\n", rec.FileSize))
	}

	if caption := strings.TrimSpace(rec.Caption); caption != "" {
		b.WriteString("\n")
		b.WriteString(caption)
		b.WriteString("\n")
	}

	return b.String()
}
