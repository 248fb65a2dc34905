package compose

import (
	"strings"

	"github.com/blogmates/blogmates-tui/tui/common"
)

// View renders the compose form.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(common.AppTitleStyle.Render("✍ New post") + "\n\n")

	b.WriteString("  " + common.TimestampStyle.Render("Title") + "\n")
	b.WriteString("  " + m.title.View() + "\n\n")

	b.WriteString("  " + common.TimestampStyle.Render("Body") + "\n")
	b.WriteString(m.content.View() + "\n\n")

	b.WriteString("  Visibility: " + common.VisibilityStyle.Render("["+string(m.visibility)+"]") + "\n")

	if m.err != nil {
		b.WriteString("\n  " + common.ErrorStyle.Render(m.err.Error()) + "\n")
	}

	b.WriteString(common.StatusBarStyle.Render(
		"  ctrl+d: publish • ctrl+v: visibility • ctrl+e: $EDITOR • tab: switch field • esc: cancel"))

	return b.String()
}
