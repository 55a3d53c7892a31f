package display

import (
	_ "embed"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/term"
)

//go:embed banner.txt
var bannerArt string

// RenderBanner centres the banner art, and the restaurant name under it,
// in the current terminal. Replace banner.txt to change the art.
func RenderBanner(restaurant string) string {
	return centredBanner(terminalColumns(), restaurant)
}

func centredBanner(columns int, restaurant string) string {
	art := BannerStyle.Render(strings.TrimRight(bannerArt, "\n"))
	block := lipgloss.JoinVertical(lipgloss.Center, art, "", hintStyle.Render(restaurant))
	if restaurant == "" {
		block = art
	}
	return lipgloss.PlaceHorizontal(columns, lipgloss.Center, block)
}

// terminalColumns falls back to 80 when stdout is not a terminal.
func terminalColumns() int {
	if w, _, err := term.GetSize(os.Stdout.Fd()); err == nil && w > 0 {
		return w
	}
	return 80
}
