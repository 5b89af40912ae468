// Package deeplink builds and opens messaging-bot links for catalog records.
package deeplink

import (
	"fmt"
	"os/exec"
	"runtime"
)

// DefaultTemplate is the bot URL prefix the record id is appended to.
const DefaultTemplate = "https://t.me/filegripbot?start=file_"

// Build appends the record identifier to the bot URL template. The template
// is used as-is; no encoding is applied since ids are opaque tokens.
func Build(template, recordID string) string {
	if template == "" {
		template = DefaultTemplate
	}
	return template + recordID
}

// Open hands the URL to the operating system's default browser. No response
// is consumed; the messaging app owns everything past this point.
func Open(url string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("opening %s: %w", url, err)
	}
	// Detach; the browser process outlives us and we never wait on it.
	go func() { _ = cmd.Wait() }()
	return nil
}
