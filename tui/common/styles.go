package common

import "github.com/charmbracelet/lipgloss"

var (
	// AppTitleStyle styles the application title.
	AppTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#8AADF4")).
			Padding(1, 2, 0, 1)

	// TaglineStyle styles the app's tagline.
	TaglineStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#555555")).
			Italic(true).
			MarginLeft(1)

	// AuthorStyle styles post and comment author names.
	AuthorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#7DC4E4"))

	// TitleStyle styles post titles.
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#CAD3F5"))

	// TimestampStyle styles timestamps.
	TimestampStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6E738D"))

	// ContentStyle styles body text.
	ContentStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#CAD3F5"))

	// VisibilityStyle styles the post visibility badge.
	VisibilityStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A6DA95")).
			MarginLeft(1)

	// SelectedStyle highlights the currently selected list item.
	SelectedStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#8AADF4")).
			Padding(0, 1)

	// UnselectedStyle gives unselected items a subtle greyed-out border.
	UnselectedStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#45475A")).
			Padding(0, 1)

	// OwnBadgeStyle highlights content that belongs to the user.
	OwnBadgeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A6DA95")).
			Bold(true).
			MarginLeft(1)

	// StatusBarStyle styles the bottom status bar.
	StatusBarStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6E738D")).
			Padding(1, 0, 0, 0)

	// PaginationStyle styles the "page x of y" line.
	PaginationStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6E738D")).
			MarginLeft(1)

	// ConfirmStyle styles destructive confirmation prompts.
	ConfirmStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ED8796")).
			Bold(true).
			Padding(0, 1)

	// ErrorStyle styles error messages.
	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ED8796")).
			Bold(true)

	// SuccessStyle styles success messages.
	SuccessStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A6DA95")).
			Bold(true)

	// PlaceholderStyle styles missing-data placeholders.
	PlaceholderStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#45475A")).
				Italic(true)
)
