package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme colors - blue theme
var (
	PrimaryColor = lipgloss.Color("#5B9BD5") // Blue
	AccentColor  = lipgloss.Color("#00D4AA") // Teal accent

	SuccessColor = lipgloss.Color("#2ECC71") // Green
	WarningColor = lipgloss.Color("#F1C40F") // Yellow
	ErrorColor   = lipgloss.Color("#E74C3C") // Red
	InfoColor    = lipgloss.Color("#5B9BD5") // Blue

	TextColor    = lipgloss.Color("#FFFFFF") // White
	SubtextColor = lipgloss.Color("#B0B0B0") // Light gray
	MutedColor   = lipgloss.Color("#6C6C6C") // Dark gray
	DimColor     = lipgloss.Color("#4A4A4A") // Dimmed
)

// Base styles
var (
	BoldStyle = lipgloss.NewStyle().Bold(true)

	PrimaryStyle = lipgloss.NewStyle().
			Foreground(PrimaryColor).
			Bold(true)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(SuccessColor).
			Bold(true)

	WarningStyle = lipgloss.NewStyle().
			Foreground(WarningColor).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ErrorColor).
			Bold(true)

	InfoStyle = lipgloss.NewStyle().
			Foreground(InfoColor).
			Bold(true)

	WhiteStyle = lipgloss.NewStyle().
			Foreground(TextColor)

	GrayStyle = lipgloss.NewStyle().
			Foreground(SubtextColor)

	DimStyle = lipgloss.NewStyle().
			Foreground(DimColor)
)

// Component styles
var (
	BannerStyle = lipgloss.NewStyle().
			Foreground(PrimaryColor).
			Bold(true)

	SectionTitleStyle = lipgloss.NewStyle().
				Foreground(TextColor).
				Bold(true)

	BorderStyle = lipgloss.NewStyle().
			Foreground(PrimaryColor).
			Bold(true)
)

// Status icons
const (
	IconSuccess = "✓"
	IconWarning = "⚠"
	IconError   = "✗"
	IconInfo    = "ℹ"
	IconBullet  = "•"
)

// Progress bar characters
const (
	ProgressFull  = "█"
	ProgressEmpty = "░"
)

// DefaultWidth is the default terminal width for formatting
const DefaultWidth = 60

// RenderBanner returns the styled ASCII banner
func RenderBanner() string {
	banner := `██████╗  ██████╗  ██████╗██╗  ██╗ ██████╗ ██████╗ ███████╗
██╔══██╗██╔═══██╗██╔════╝██║ ██╔╝██╔═══██╗██╔══██╗██╔════╝
██║  ██║██║   ██║██║     █████╔╝ ██║   ██║██████╔╝███████╗
██║  ██║██║   ██║██║     ██╔═██╗ ██║   ██║██╔═══╝ ╚════██║
██████╔╝╚██████╔╝╚██████╗██║  ██╗╚██████╔╝██║     ███████║
╚═════╝  ╚═════╝  ╚═════╝╚═╝  ╚═╝ ╚═════╝ ╚═╝     ╚══════╝`
	return BannerStyle.Render(banner)
}

// RenderSubtitle returns the styled subtitle
func RenderSubtitle() string {
	return BoldStyle.Foreground(TextColor).Render("              Container Stats Agent")
}

// RenderStatus returns a styled status message
func RenderStatus(status, message string) string {
	var icon string
	var style lipgloss.Style

	switch status {
	case "success":
		icon = IconSuccess
		style = SuccessStyle
	case "warning":
		icon = IconWarning
		style = WarningStyle
	case "error":
		icon = IconError
		style = ErrorStyle
	default:
		icon = IconInfo
		style = InfoStyle
	}

	return "  " + style.Render(icon) + " " + WhiteStyle.Render(message)
}

// RenderProgressBar returns a styled progress bar
func RenderProgressBar(percent float64, width int) string {
	if width <= 0 {
		width = 20
	}

	filled := int(percent / 100 * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}

	empty := width - filled

	var barStyle lipgloss.Style
	switch {
	case percent >= 90:
		barStyle = ErrorStyle
	case percent >= 70:
		barStyle = WarningStyle
	default:
		barStyle = SuccessStyle
	}

	return barStyle.Render(strings.Repeat(ProgressFull, filled)) +
		DimStyle.Render(strings.Repeat(ProgressEmpty, empty))
}
