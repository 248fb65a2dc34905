package search

import (
	"fmt"
	"strings"

	"github.com/blogmates/blogmates-tui/tui/common"
)

// View renders the query input and both result halves.
func (m Model) View() string {
	var b strings.Builder

	title := common.AppTitleStyle.Render("✍ blogmates")
	b.WriteString(title + "\n\n")

	b.WriteString("  " + m.query.View() + "\n\n")

	if m.lastTerm == "" {
		b.WriteString("  " + common.PlaceholderStyle.Render("Type a query and press enter.") + "\n")
		b.WriteString(m.helpView())
		return b.String()
	}

	b.WriteString(m.renderUsers())
	b.WriteString("\n")
	b.WriteString(m.renderPosts())

	b.WriteString(m.helpView())
	return b.String()
}

func (m Model) renderUsers() string {
	var b strings.Builder

	header := "Users"
	if m.active == usersHalf && !m.typing {
		header = "[Users]"
	}
	b.WriteString("  " + common.TitleStyle.Render(header) + "\n")

	switch {
	case m.users.Loading && len(m.users.Items) == 0:
		b.WriteString(fmt.Sprintf("  %s Searching...\n", m.spinner.View()))
	case m.users.Err != nil && len(m.users.Items) == 0:
		b.WriteString("  " + common.ErrorStyle.Render(fmt.Sprintf("Error: %v", m.users.Err)) + "\n")
	case len(m.users.Items) == 0:
		b.WriteString("  " + common.PlaceholderStyle.Render("No users found.") + "\n")
	default:
		for i, u := range m.users.Items {
			line := common.AuthorStyle.Render("@"+u.Username) + "  " + common.TimestampStyle.Render(u.DisplayName())
			if m.active == usersHalf && !m.typing && i == m.cursor {
				line = common.SelectedStyle.Render(line)
			} else {
				line = "  " + line
			}
			b.WriteString(line + "\n")
		}
		if pg := common.PageIndicator(m.users.Current, m.users.TotalPages); pg != "" {
			b.WriteString(common.PaginationStyle.Render(pg) + "\n")
		}
	}
	return b.String()
}

func (m Model) renderPosts() string {
	var b strings.Builder

	header := "Posts"
	if m.active == postsHalf && !m.typing {
		header = "[Posts]"
	}
	b.WriteString("  " + common.TitleStyle.Render(header) + "\n")

	switch {
	case m.posts.Loading && len(m.posts.Items) == 0:
		b.WriteString(fmt.Sprintf("  %s Searching...\n", m.spinner.View()))
	case m.posts.Err != nil && len(m.posts.Items) == 0:
		b.WriteString("  " + common.ErrorStyle.Render(fmt.Sprintf("Error: %v", m.posts.Err)) + "\n")
	case len(m.posts.Items) == 0:
		b.WriteString("  " + common.PlaceholderStyle.Render("No posts found.") + "\n")
	default:
		for i, p := range m.posts.Items {
			item := fmt.Sprintf("%s  %s\n%s",
				common.TitleStyle.Render(p.Title),
				common.AuthorStyle.Render("@"+p.AuthorName),
				common.ContentStyle.Render(common.Preview(p.Content)))
			if m.active == postsHalf && !m.typing && i == m.cursor {
				item = common.SelectedStyle.Render(item)
			} else {
				item = common.UnselectedStyle.Render(item)
			}
			b.WriteString(item + "\n")
		}
		if pg := common.PageIndicator(m.posts.Current, m.posts.TotalPages); pg != "" {
			b.WriteString(common.PaginationStyle.Render(pg) + "\n")
		}
	}
	return b.String()
}

func (m Model) helpView() string {
	if m.typing {
		return common.StatusBarStyle.Render("  enter: search • esc: results")
	}
	return common.StatusBarStyle.Render("  /: edit query • tab: users/posts • j/k: focus • enter: open • ←/→: page • esc: back")
}
