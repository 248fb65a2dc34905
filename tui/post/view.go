package post

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/blogmates/blogmates-tui/tui/common"
)

var cardStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(lipgloss.Color("#8AADF4")).
	Padding(1, 2).
	MarginLeft(2).
	Width(74)

// View renders the post detail: post card, likes popup or comment thread.
func (m Model) View() string {
	var b strings.Builder

	title := common.AppTitleStyle.Render("✍ blogmates")
	b.WriteString(title + "\n\n")

	b.WriteString(m.renderPostCard())

	if m.showLikes {
		b.WriteString("\n" + m.renderLikesPopup())
		b.WriteString("\n" + common.StatusBarStyle.Render("  esc: close"))
		return b.String()
	}

	b.WriteString("\n" + m.renderComments())

	if m.composing {
		b.WriteString("\n  " + common.TimestampStyle.Render("Comment") + "\n")
		b.WriteString("  " + m.commentInput.View() + "\n")
		if m.posting {
			b.WriteString("  " + common.PlaceholderStyle.Render("Posting...") + "\n")
		}
	}

	if m.err != nil {
		b.WriteString("\n  " + common.ErrorStyle.Render(m.err.Error()) + "\n")
	}

	b.WriteString(m.helpView())
	return b.String()
}

func (m Model) renderPostCard() string {
	p := m.post

	var card strings.Builder
	card.WriteString(common.AuthorStyle.Render("@"+p.AuthorName) + " " +
		common.TimestampStyle.Render(common.FormatTime(p.CreatedAt)) +
		common.VisibilityStyle.Render("["+string(p.Visibility)+"]") + "\n\n")
	card.WriteString(common.TitleStyle.Render(p.Title) + "\n\n")
	card.WriteString(common.ContentStyle.Width(66).Render(p.Content) + "\n\n")

	likeIcon := "♡"
	if m.postLiked {
		likeIcon = "♥"
	}
	meta := fmt.Sprintf("%s %d likes  💬 %d comments", likeIcon, m.postLikeCount, m.pager.TotalCount)
	card.WriteString(common.TimestampStyle.Render(meta))

	style := cardStyle
	if m.cursor == 0 {
		style = style.BorderForeground(lipgloss.Color("#FFFFFF"))
	}
	return style.Render(card.String())
}

func (m Model) renderLikesPopup() string {
	var b strings.Builder
	b.WriteString("  " + common.TitleStyle.Render("Liked by") + "\n")
	switch {
	case m.likesLoading:
		b.WriteString(fmt.Sprintf("  %s Loading...\n", m.spinner.View()))
	case m.likesErr != nil:
		b.WriteString("  " + common.ErrorStyle.Render(m.likesErr.Error()) + "\n")
	case len(m.likeNames) == 0:
		b.WriteString("  " + common.PlaceholderStyle.Render("No likes yet.") + "\n")
	default:
		for _, name := range m.likeNames {
			b.WriteString("  " + common.AuthorStyle.Render("@"+name) + "\n")
		}
	}
	return b.String()
}

func (m Model) renderComments() string {
	var b strings.Builder
	b.WriteString("  " + common.TitleStyle.Render("Comments") + "\n")

	switch {
	case m.pager.Loading && len(m.pager.Items) == 0:
		b.WriteString(fmt.Sprintf("  %s Loading comments...\n", m.spinner.View()))
	case m.pager.Err != nil && len(m.pager.Items) == 0:
		b.WriteString("  " + common.ErrorStyle.Render(fmt.Sprintf("Error: %v", m.pager.Err)) + "\n")
	case len(m.pager.Items) == 0:
		b.WriteString("  " + common.PlaceholderStyle.Render("No comments yet. Press c to write one.") + "\n")
	default:
		for i, c := range m.pager.Items {
			author := common.AuthorStyle.Render("@" + c.AuthorName)
			timestamp := common.TimestampStyle.Render(common.FormatTime(c.CreatedAt))

			likeIcon := "♡"
			if m.commentLiked[c.ID] {
				likeIcon = "♥"
			}
			meta := common.TimestampStyle.Render(fmt.Sprintf("%s %d", likeIcon, m.commentLikes[c.ID]))

			item := fmt.Sprintf("%s %s\n%s\n%s",
				author, timestamp, common.ContentStyle.Render(c.Content), meta)

			if m.cursor == i+1 {
				item = common.SelectedStyle.Render(item)
				if m.confirmDelete {
					item += "\n" + common.ConfirmStyle.Render("  Delete this comment? (y/n)")
				}
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

func (m Model) helpView() string {
	items := []string{
		"c: comment",
		"l: like",
		"v: likes",
		"j/k: focus",
		"←/→: page",
		"r: refresh",
		"u: author",
		"esc: back",
	}
	if c, ok := m.selectedComment(); ok && m.canDeleteComment(c) {
		items = append(items, "d: delete")
	}
	return common.StatusBarStyle.Render("  " + strings.Join(items, " • "))
}
