// internal/ui/styles.go
package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/nhath/ezquery/internal/config"
	"github.com/nhath/ezquery/internal/ui/components/historylist"
	"github.com/nhath/ezquery/internal/ui/components/table"
)

var (
	textPrimary   lipgloss.Color
	textSecondary lipgloss.Color
	textFaint     lipgloss.Color

	accentColor    lipgloss.Color
	successColor   lipgloss.Color
	errorColor     lipgloss.Color
	highlightColor lipgloss.Color
	warningColor   lipgloss.Color

	bgPrimary   lipgloss.Color
	bgSecondary lipgloss.Color
	cardBg      lipgloss.Color

	// Styles
	StatusBarStyle  lipgloss.Style
	ModeStyle       lipgloss.Style
	FocusStyle      lipgloss.Style
	InfoStyle       lipgloss.Style
	MetaStyle       lipgloss.Style
	InputStyle      lipgloss.Style
	PromptStyle     lipgloss.Style
	SelectedStyle   lipgloss.Style
	SuccessStyle    lipgloss.Style
	ErrorStyle      lipgloss.Style
	ErrorBadgeStyle lipgloss.Style
	WarningStyle    lipgloss.Style
	PopupStyle      lipgloss.Style
	GridHeaderStyle lipgloss.Style
)

// Color getter functions for use in components
func TextPrimary() lipgloss.Color    { return textPrimary }
func TextSecondary() lipgloss.Color  { return textSecondary }
func TextFaint() lipgloss.Color      { return textFaint }
func AccentColor() lipgloss.Color    { return accentColor }
func SuccessColor() lipgloss.Color   { return successColor }
func ErrorColor() lipgloss.Color     { return errorColor }
func HighlightColor() lipgloss.Color { return highlightColor }
func WarningColor() lipgloss.Color   { return warningColor }
func BgPrimary() lipgloss.Color      { return bgPrimary }
func BgSecondary() lipgloss.Color    { return bgSecondary }
func CardBg() lipgloss.Color         { return cardBg }

// InitStyles initializes the global styles from a theme palette
func InitStyles(theme config.Theme) {
	textPrimary = lipgloss.Color(theme.TextPrimary)
	textSecondary = lipgloss.Color(theme.TextSecondary)
	textFaint = lipgloss.Color(theme.TextFaint)

	accentColor = lipgloss.Color(theme.Accent)
	successColor = lipgloss.Color(theme.Success)
	errorColor = lipgloss.Color(theme.Error)
	highlightColor = lipgloss.Color(theme.Highlight)
	warningColor = lipgloss.Color(theme.Warning)

	bgPrimary = lipgloss.Color(theme.BgPrimary)
	bgSecondary = lipgloss.Color(theme.BgSecondary)
	cardBg = lipgloss.Color(theme.CardBg)

	StatusBarStyle = lipgloss.NewStyle().
		Foreground(textPrimary).
		Background(bgSecondary)

	ModeStyle = lipgloss.NewStyle().
		Bold(true).
		Padding(0, 1).
		Background(successColor).
		Foreground(bgPrimary)

	FocusStyle = lipgloss.NewStyle().
		Bold(true).
		Padding(0, 1).
		Background(accentColor).
		Foreground(bgPrimary)

	InfoStyle = lipgloss.NewStyle().
		Padding(0, 1).
		Background(cardBg).
		Foreground(textPrimary)

	MetaStyle = lipgloss.NewStyle().
		Foreground(textFaint).
		Italic(true)

	InputStyle = lipgloss.NewStyle().
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(textFaint)

	PromptStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(accentColor).
		MarginRight(1)

	SelectedStyle = lipgloss.NewStyle().
		Foreground(highlightColor).
		Bold(true)

	SuccessStyle = lipgloss.NewStyle().
		Background(successColor).
		Foreground(bgPrimary).
		Padding(0, 1)

	ErrorStyle = lipgloss.NewStyle().
		Foreground(errorColor).
		Bold(true)

	ErrorBadgeStyle = lipgloss.NewStyle().
		Background(errorColor).
		Foreground(textPrimary).
		Padding(0, 1)

	WarningStyle = lipgloss.NewStyle().
		Foreground(bgPrimary).
		Background(warningColor).
		Bold(true).
		Padding(0, 1)

	PopupStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(highlightColor).
		Padding(1, 2)

	GridHeaderStyle = lipgloss.NewStyle().
		Foreground(highlightColor).
		Bold(true)
}

// gridStyles are the bubble-table cell styles for the active palette
func gridStyles() table.Styles {
	return table.Styles{
		Base:      lipgloss.NewStyle().Foreground(textPrimary).BorderForeground(textFaint),
		Header:    GridHeaderStyle,
		Highlight: SelectedStyle,
		Null:      lipgloss.NewStyle().Foreground(textFaint).Italic(true),
		Number:    lipgloss.NewStyle().Foreground(textSecondary),
		Bool:      lipgloss.NewStyle().Foreground(warningColor),
		Text:      lipgloss.NewStyle().Foreground(textPrimary),
	}
}

// historyStyles are the history list styles for the active palette
func historyStyles() historylist.Styles {
	return historylist.Styles{
		Item:     lipgloss.NewStyle().PaddingLeft(1),
		Selected: lipgloss.NewStyle().PaddingLeft(1).Background(cardBg),
		Prompt:   lipgloss.NewStyle().Foreground(successColor).Bold(true),
		Meta:     lipgloss.NewStyle().Foreground(textFaint),
		Empty:    MetaStyle,
	}
}
