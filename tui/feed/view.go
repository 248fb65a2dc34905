package feed

import (
	"fmt"
	"strings"

	"github.com/blogmates/blogmates-tui/domain"
	"github.com/blogmates/blogmates-tui/tui/common"
)

// View renders the feed as a string.
func (m Model) View() string {
	var b strings.Builder

	title := common.AppTitleStyle.Render("✍ blogmates")
	tagline := common.TaglineStyle.Render("<blog with your mates>")
	b.WriteString(title + tagline + "\n\n")

	switch {
	case m.pager.Loading && m.itemCount() == 0:
		b.WriteString(fmt.Sprintf("  %s Loading posts...\n", m.spinner.View()))
	case m.pager.Err != nil && m.itemCount() == 0:
		b.WriteString(common.ErrorStyle.Render(fmt.Sprintf("  Error: %v", m.pager.Err)))
		b.WriteString("\n\n  Press r to retry.\n")
	case m.itemCount() == 0:
		b.WriteString("  No posts yet. Press n to write the first one!\n")
	default:
		for i, it := range m.pending {
			b.WriteString(m.renderPending(it, i == m.cursor))
			b.WriteString("\n")
		}
		for i, p := range m.pager.Items {
			b.WriteString(m.renderPost(p, len(m.pending)+i == m.cursor))
			b.WriteString("\n")
		}
		if m.pager.Err != nil {
			b.WriteString(common.ErrorStyle.Render(fmt.Sprintf("  Error: %v", m.pager.Err)) + "\n")
		}
		if pg := common.PageIndicator(m.pager.Current, m.pager.TotalPages); pg != "" {
			b.WriteString(common.PaginationStyle.Render(pg) + "\n")
		}
	}

	if m.pager.Loading && m.itemCount() > 0 {
		b.WriteString(fmt.Sprintf("  %s Refreshing...\n", m.spinner.View()))
	}

	b.WriteString(m.helpView())
	return b.String()
}

func (m Model) renderPost(p domain.Post, selected bool) string {
	author := common.AuthorStyle.Render("@" + p.AuthorName)
	if m.isOwn(p) {
		author += common.OwnBadgeStyle.Render("(you)")
	}
	timestamp := common.TimestampStyle.Render(common.FormatTime(p.CreatedAt))
	visibility := common.VisibilityStyle.Render("[" + string(p.Visibility) + "]")

	content := p.Content
	expandHint := ""
	if common.IsLongContent(content) {
		if m.expanded[p.ID] {
			expandHint = common.PlaceholderStyle.Render("  x: collapse")
		} else {
			content = common.Preview(content)
			expandHint = common.PlaceholderStyle.Render("  x: expand")
		}
	}

	likeIcon := "♡"
	if m.likedByMe[p.ID] {
		likeIcon = "♥"
	}
	meta := fmt.Sprintf("%s %d  💬 %d", likeIcon, m.likeCounts[p.ID], m.commentCounts[p.ID])
	if m.deleting[p.ID] {
		meta += common.ConfirmStyle.Render(" (deleting...)")
	}

	item := fmt.Sprintf("%s  %s%s\n%s\n%s\n%s%s",
		author, timestamp, visibility,
		common.TitleStyle.Render(p.Title),
		common.ContentStyle.Render(content),
		common.TimestampStyle.Render(meta), expandHint)

	if selected {
		rendered := common.SelectedStyle.Render(item)
		if m.confirmDelete {
			rendered += "\n" + common.ConfirmStyle.Render("  Delete this post? (y/n)")
		}
		return rendered
	}
	return common.UnselectedStyle.Render(item)
}

func (m Model) renderPending(it pendingItem, selected bool) string {
	label := common.ConfirmStyle.Render(" (posting...)")
	if it.Status == statusFailed {
		label = common.ErrorStyle.Render(fmt.Sprintf(" (failed: %v)", it.Err))
	}
	item := fmt.Sprintf("%s%s\n%s\n%s",
		common.AuthorStyle.Render("@you"), label,
		common.TitleStyle.Render(it.Post.Title),
		common.ContentStyle.Render(common.Preview(it.Post.Content)))

	if selected {
		return common.SelectedStyle.Render(item)
	}
	return common.UnselectedStyle.Render(item)
}

func (m Model) helpView() string {
	items := []string{
		"j/k: focus",
		"enter: open",
		"n: new post",
		"l: like",
		"u: author",
		"←/→: page",
		"r: refresh",
		"s: search",
		"p: profile",
	}
	if p, ok := m.selectedPost(); ok && m.isOwn(p) {
		items = append(items, "d: delete")
	}
	items = append(items, "q: quit")
	return common.StatusBarStyle.Render("  " + strings.Join(items, " • "))
}
