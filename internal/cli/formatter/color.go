package formatter

import (
	"fmt"
	"strings"

	"github.com/bside-ms/bside-nexus-sub000/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

// Predefined lipgloss styles.
var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// WarningIndicator returns a colored break-compliance indicator.
func WarningIndicator(w domain.BreakWarning) string {
	switch w {
	case domain.BreakUnder45:
		return StyleRed.Render("● BREAK < 45 MIN")
	case domain.BreakUnder30:
		return StyleYellow.Render("● BREAK < 30 MIN")
	case domain.BreakOK:
		return StyleGreen.Render("● BREAK OK")
	default:
		return StyleDim.Render("● UNKNOWN")
	}
}

// EntryTypeBadge returns a colored label for a punch type.
func EntryTypeBadge(t domain.EntryType) string {
	switch t {
	case domain.EntryStart:
		return StyleGreen.Render("▶ start")
	case domain.EntryStop:
		return StyleRed.Render("■ stop")
	case domain.EntryPause:
		return StyleYellow.Render("❚ pause")
	case domain.EntryPauseEnd:
		return StyleBlue.Render("▶ resume")
	default:
		return StyleDim.Render(string(t))
	}
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", len(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

// Dim renders text in the muted/dim color.
func Dim(text string) string {
	return StyleDim.Render(text)
}

// Bold renders text in bold with the foreground color.
func Bold(text string) string {
	return StyleBold.Render(text)
}
