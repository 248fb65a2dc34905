package post

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/blogmates/blogmates-tui/domain"
)

func (m Model) fetchComments(seq, page int) tea.Cmd {
	blog := m.blog
	postID := m.post.ID
	size := m.pager.PageSize
	return func() tea.Msg {
		p, err := blog.Comments(context.Background(), postID, page, size)
		if err != nil {
			return commentsErrMsg{seq: seq, err: err}
		}
		return commentsLoadedMsg{seq: seq, page: p}
	}
}

func (m Model) fetchPostMeta() tea.Cmd {
	blog := m.blog
	postID := m.post.ID
	info := m.session.Snapshot()
	myID := 0
	if info.HasUser {
		myID = info.User.ID
	}
	return func() tea.Msg {
		likes, err := blog.PostLikes(context.Background(), postID)
		if err != nil {
			return postMetaMsg{}
		}
		liked := false
		for _, l := range likes {
			if myID != 0 && l.UserID == myID {
				liked = true
				break
			}
		}
		return postMetaMsg{count: len(likes), liked: liked}
	}
}

func (m Model) fetchCommentMeta(seq int, comments []domain.Comment) tea.Cmd {
	if len(comments) == 0 {
		return nil
	}
	blog := m.blog
	info := m.session.Snapshot()
	myID := 0
	if info.HasUser {
		myID = info.User.ID
	}
	ids := make([]int, 0, len(comments))
	for _, c := range comments {
		ids = append(ids, c.ID)
	}
	return func() tea.Msg {
		likes := make(map[int]int, len(ids))
		liked := make(map[int]bool, len(ids))
		for _, id := range ids {
			ls, err := blog.CommentLikes(context.Background(), id)
			if err != nil {
				continue
			}
			likes[id] = len(ls)
			for _, l := range ls {
				if myID != 0 && l.UserID == myID {
					liked[id] = true
					break
				}
			}
		}
		return commentMetaMsg{seq: seq, likes: likes, liked: liked}
	}
}

// fetchLikeNames resolves the post's like list to display names. Lookups
// that fail fall back to the numeric user ID.
func (m Model) fetchLikeNames() tea.Cmd {
	blog := m.blog
	profiles := m.profiles
	postID := m.post.ID
	return func() tea.Msg {
		likes, err := blog.PostLikes(context.Background(), postID)
		if err != nil {
			return likesLoadedMsg{err: err}
		}
		names := make([]string, 0, len(likes))
		for _, l := range likes {
			u, err := profiles.ProfileByID(context.Background(), l.UserID)
			if err != nil || u.Username == "" {
				names = append(names, fmt.Sprintf("user #%d", l.UserID))
				continue
			}
			names = append(names, u.Username)
		}
		return likesLoadedMsg{names: names}
	}
}
