// Package styles contains Lip Gloss style definitions.
package styles

import "github.com/charmbracelet/lipgloss"

var (
	// Text hierarchy
	TextPrimaryColor   = lipgloss.AdaptiveColor{Light: "#1F1F1F", Dark: "#CCCCCC"}
	TextSecondaryColor = lipgloss.AdaptiveColor{Light: "#555555", Dark: "#BBBBBB"}
	TextMutedColor     = lipgloss.AdaptiveColor{Light: "#9A9A9A", Dark: "#696969"} // spillover days, hints

	BorderDefaultColor = lipgloss.AdaptiveColor{Light: "#C8C8C8", Dark: "#696969"}
	BorderFocusColor   = lipgloss.AdaptiveColor{Light: "#54A0FF", Dark: "#54A0FF"}

	StatusSuccessColor = lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"}
	StatusWarningColor = lipgloss.AdaptiveColor{Light: "#D4A017", Dark: "#FECA57"}
	StatusErrorColor   = lipgloss.AdaptiveColor{Light: "#FF6B6B", Dark: "#FF8787"}

	// Calendar
	TodayColor       = lipgloss.AdaptiveColor{Light: "#8839EF", Dark: "#CBA6F7"}
	ActiveDayColor   = lipgloss.AdaptiveColor{Light: "#1E66F5", Dark: "#89B4FA"}
	DropTargetColor  = lipgloss.AdaptiveColor{Light: "#40A02B", Dark: "#A6E3A1"}
	SelectedRowBg    = lipgloss.AdaptiveColor{Light: "#DCE6F8", Dark: "#2E3F5C"}
	FocusedRowMarker = lipgloss.AdaptiveColor{Light: "#000000", Dark: "#FFFFFF"}
	NotesColor       = lipgloss.AdaptiveColor{Light: "#DF8E1D", Dark: "#F9E2AF"}

	// Toasts
	ToastBorderSuccessColor = StatusSuccessColor
	ToastBorderErrorColor   = StatusErrorColor
	ToastBorderInfoColor    = BorderFocusColor
	ToastBorderWarnColor    = StatusWarningColor

	// Form
	FormTextInputBorderColor        = lipgloss.AdaptiveColor{Light: "#C8C8C8", Dark: "#8C8C8C"}
	FormTextInputFocusedBorderColor = lipgloss.AdaptiveColor{Light: "#000", Dark: "#FFF"}

	OverlayBorderColor = lipgloss.AdaptiveColor{Light: "#C8C8C8", Dark: "#8C8C8C"}

	SelectionIndicatorStyle = lipgloss.NewStyle().Bold(true).Foreground(FocusedRowMarker)

	TitleStyle = lipgloss.NewStyle().Bold(true).Foreground(TextPrimaryColor)

	WeekdayStyle = lipgloss.NewStyle().Foreground(TextSecondaryColor).Bold(true)

	DayNumberStyle = lipgloss.NewStyle().Foreground(TextPrimaryColor)

	SpilloverStyle = lipgloss.NewStyle().Foreground(TextMutedColor)

	TodayStyle = lipgloss.NewStyle().Foreground(TodayColor).Bold(true)

	NotesStyle = lipgloss.NewStyle().Foreground(NotesColor).Italic(true)

	SelectedRowStyle = lipgloss.NewStyle().Background(SelectedRowBg).Foreground(TextPrimaryColor)

	HintStyle = lipgloss.NewStyle().Foreground(TextMutedColor)

	StatusBarStyle = lipgloss.NewStyle().
			Foreground(TextSecondaryColor).
			Padding(0, 1)

	StaleStyle = lipgloss.NewStyle().Foreground(StatusWarningColor)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(StatusErrorColor).
			Bold(true)

	DragIndicatorStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(DropTargetColor).
				Padding(0, 1)

	OverlayStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(OverlayBorderColor).
			Padding(1, 2)
)
