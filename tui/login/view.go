package login

import (
	"strings"

	"github.com/blogmates/blogmates-tui/tui/common"
)

// View renders the login or signup form.
func (m Model) View() string {
	var b strings.Builder

	title := common.AppTitleStyle.Render("✍ blogmates")
	tagline := common.TaglineStyle.Render("<blog with your mates>")
	b.WriteString(title + tagline + "\n\n")

	if m.mode == signupMode {
		b.WriteString(common.TitleStyle.Render("  Sign up") + "\n\n")
	} else {
		b.WriteString(common.TitleStyle.Render("  Log in") + "\n\n")
	}

	labels := map[int]string{
		fieldUsername:  "Username",
		fieldEmail:     "Email",
		fieldPassword:  "Password",
		fieldPassword2: "Repeat",
	}
	for _, idx := range m.visibleFields() {
		b.WriteString("  " + common.TimestampStyle.Render(labels[idx]) + "\n")
		b.WriteString("  " + m.inputs[idx].View() + "\n")
	}

	b.WriteString("\n")
	if m.submitting {
		b.WriteString("  " + common.PlaceholderStyle.Render("Submitting...") + "\n")
	}
	if m.err != nil {
		b.WriteString("  " + common.ErrorStyle.Render(m.err.Error()) + "\n")
	}
	if m.status != "" {
		b.WriteString("  " + common.SuccessStyle.Render(m.status) + "\n")
	}

	help := "enter: submit • tab: next field • ctrl+s: switch to sign up • ctrl+c: quit"
	if m.mode == signupMode {
		help = "enter: submit • tab: next field • ctrl+s: switch to log in • ctrl+c: quit"
	}
	b.WriteString(common.StatusBarStyle.Render("  " + help))

	return b.String()
}
