package deeplink

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuildAppendsID(t *testing.T) {
	link := Build("https://t.me/somebot?start=file_", "64f1a2b3")
	require.Equal(t, "https://t.me/somebot?start=file_64f1a2b3", link)
}

func TestBuildEmptyTemplateUsesDefault(t *testing.T) {
	link := Build("", "abc")
	require.Equal(t, DefaultTemplate+"abc", link)
}
