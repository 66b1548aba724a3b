package display

import (
	_ "embed"
	"os"
	"strings"

	"github.com/charmbracelet/x/term"
)

//go:embed banner.txt
var bannerRaw string

// RenderBanner returns the banner centred for the current terminal.
func RenderBanner() string {
	return centerBanner(bannerRaw, termWidth())
}

func centerBanner(raw string, width int) string {
	lines := strings.Split(strings.TrimRight(raw, "\n"), "\n")

	artW := 0
	for _, l := range lines {
		artW = max(artW, len(l))
	}
	pad := ""
	if width > artW {
		pad = strings.Repeat(" ", (width-artW)/2)
	}

	var b strings.Builder
	for _, l := range lines {
		b.WriteString(pad)
		b.WriteString(BannerStyle.Render(l))
		b.WriteByte('\n')
	}
	return b.String()
}

// termWidth returns the terminal column count, or 80 as fallback.
func termWidth() int {
	if w, _, err := term.GetSize(os.Stdout.Fd()); err == nil && w > 0 {
		return w
	}
	return 80
}
