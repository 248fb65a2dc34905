package profile

import (
	"fmt"
	"strings"

	"github.com/blogmates/blogmates-tui/domain"
	"github.com/blogmates/blogmates-tui/tui/common"
)

// View renders the profile with its active section.
func (m Model) View() string {
	var b strings.Builder

	title := common.AppTitleStyle.Render("✍ blogmates")
	b.WriteString(title + "\n\n")

	if m.loading && m.user.ID == 0 {
		b.WriteString(fmt.Sprintf("  %s Loading profile...\n", m.spinner.View()))
		return b.String()
	}

	b.WriteString(m.renderHeader())

	if m.editing {
		b.WriteString("\n" + m.renderEditForm())
		return b.String()
	}

	b.WriteString("\n" + m.renderSection())

	if m.err != nil {
		b.WriteString("\n  " + common.ErrorStyle.Render(m.err.Error()) + "\n")
	}

	b.WriteString(m.helpView())
	return b.String()
}

func (m Model) renderHeader() string {
	u := m.user
	var b strings.Builder

	name := common.TitleStyle.Render(u.DisplayName())
	handle := common.AuthorStyle.Render("@" + u.Username)
	if m.IsOwn() {
		handle += common.OwnBadgeStyle.Render("(you)")
	}
	b.WriteString("  " + name + "  " + handle + "\n")

	counts := fmt.Sprintf("%d followers • %d following", u.FollowerCount, u.FollowingCount)
	b.WriteString("  " + common.TimestampStyle.Render(counts) + "\n")

	if u.Biography != "" {
		b.WriteString("  " + common.ContentStyle.Render(u.Biography) + "\n")
	}
	if len(u.Avatar) > 0 {
		b.WriteString("  " + common.PlaceholderStyle.Render(fmt.Sprintf("[avatar: %s, %d bytes]", u.AvatarMIME, len(u.Avatar))) + "\n")
	}

	if !m.IsOwn() {
		var status string
		switch u.Friendship {
		case domain.FriendshipFollowing:
			status = common.SuccessStyle.Render("following") + common.TimestampStyle.Render("  f: unfollow")
		case domain.FriendshipRequestSent:
			status = common.PlaceholderStyle.Render("request sent")
		default:
			status = common.TimestampStyle.Render("f: send follow request")
		}
		b.WriteString("  " + status + "\n")
	}
	if m.actionInFlight {
		b.WriteString("  " + common.PlaceholderStyle.Render("Working...") + "\n")
	}

	return b.String()
}

func (m Model) renderEditForm() string {
	var b strings.Builder
	b.WriteString("  " + common.TitleStyle.Render("Edit profile") + "\n\n")
	b.WriteString("  " + common.TimestampStyle.Render("Biography") + "\n")
	b.WriteString(m.bioInput.View() + "\n\n")
	b.WriteString("  " + common.TimestampStyle.Render("Avatar") + "\n")
	b.WriteString("  " + m.avatarPath.View() + "\n")
	if m.saving {
		b.WriteString("\n  " + common.PlaceholderStyle.Render("Saving...") + "\n")
	}
	if m.err != nil {
		b.WriteString("\n  " + common.ErrorStyle.Render(m.err.Error()) + "\n")
	}
	b.WriteString(common.StatusBarStyle.Render("  ctrl+d: save • tab: switch field • esc: cancel"))
	return b.String()
}

func (m Model) renderSection() string {
	var b strings.Builder

	if m.IsOwn() {
		tabs := []string{"posts", "requests", "followers", "following"}
		var rendered []string
		for i, t := range tabs {
			if section(i) == m.section {
				rendered = append(rendered, common.TitleStyle.Render("["+t+"]"))
			} else {
				rendered = append(rendered, common.TimestampStyle.Render(t))
			}
		}
		b.WriteString("  " + strings.Join(rendered, "  ") + "\n\n")
	} else {
		b.WriteString("  " + common.TitleStyle.Render("Posts") + "\n\n")
	}

	switch m.section {
	case sectionPosts:
		b.WriteString(m.renderPosts())
	case sectionRequests:
		b.WriteString(m.renderRequests())
	case sectionFollowers:
		b.WriteString(m.renderEdges(m.followers))
	case sectionFollowing:
		b.WriteString(m.renderEdges(m.following))
	}
	return b.String()
}

func (m Model) renderPosts() string {
	var b strings.Builder
	switch {
	case m.pager.Loading && len(m.pager.Items) == 0:
		b.WriteString(fmt.Sprintf("  %s Loading posts...\n", m.spinner.View()))
	case m.pager.Err != nil && len(m.pager.Items) == 0:
		b.WriteString("  " + common.ErrorStyle.Render(fmt.Sprintf("Error: %v", m.pager.Err)) + "\n")
	case len(m.pager.Items) == 0:
		b.WriteString("  " + common.PlaceholderStyle.Render("No posts.") + "\n")
	default:
		for i, p := range m.pager.Items {
			item := fmt.Sprintf("%s %s\n%s",
				common.TitleStyle.Render(p.Title),
				common.VisibilityStyle.Render("["+string(p.Visibility)+"]"),
				common.ContentStyle.Render(common.Preview(p.Content)))
			if m.section == sectionPosts && i == m.cursor {
				item = common.SelectedStyle.Render(item)
			} else {
				item = common.UnselectedStyle.Render(item)
			}
			b.WriteString(item + "\n")
		}
		if pg := common.PageIndicator(m.pager.Current, m.pager.TotalPages); pg != "" {
			b.WriteString(common.PaginationStyle.Render(pg) + "\n")
		}
	}
	return b.String()
}

func (m Model) renderRequests() string {
	var b strings.Builder

	if len(m.received) == 0 {
		b.WriteString("  " + common.PlaceholderStyle.Render("No pending requests.") + "\n")
	}
	for i, r := range m.received {
		line := fmt.Sprintf("%s wants to follow you  %s",
			common.AuthorStyle.Render("@"+r.SenderName),
			common.TimestampStyle.Render(common.FormatTime(r.CreatedAt)))
		if i == m.cursor {
			line = common.SelectedStyle.Render(line + "\n" + common.TimestampStyle.Render("a: accept • x: decline"))
		} else {
			line = common.UnselectedStyle.Render(line)
		}
		b.WriteString(line + "\n")
	}

	if len(m.sent) > 0 {
		b.WriteString("\n  " + common.TimestampStyle.Render("Sent, awaiting reply:") + "\n")
		for _, r := range m.sent {
			b.WriteString("  " + common.PlaceholderStyle.Render("@"+r.SenderName) + "\n")
		}
	}
	return b.String()
}

func (m Model) renderEdges(edges []domain.FollowEdge) string {
	var b strings.Builder
	if len(edges) == 0 {
		b.WriteString("  " + common.PlaceholderStyle.Render("Nobody here yet.") + "\n")
	}
	for i, e := range edges {
		line := common.AuthorStyle.Render("@" + e.Username)
		if i == m.cursor {
			line = common.SelectedStyle.Render(line)
		} else {
			line = "  " + line
		}
		b.WriteString(line + "\n")
	}
	return b.String()
}

func (m Model) helpView() string {
	items := []string{"esc: back", "r: refresh"}
	if m.IsOwn() {
		items = append([]string{"tab: section", "e: edit", "ctrl+l: log out"}, items...)
		if m.section == sectionRequests && len(m.received) > 0 {
			items = append([]string{"a: accept", "x: decline"}, items...)
		}
		if m.section == sectionPosts {
			items = append([]string{"enter: open", "←/→: page"}, items...)
		}
	} else {
		items = append([]string{"f: follow/unfollow", "enter: open"}, items...)
	}
	return common.StatusBarStyle.Render("  " + strings.Join(items, " • "))
}
