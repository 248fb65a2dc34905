package feed

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/blogmates/blogmates-tui/domain"
)

func (m Model) fetchPosts(seq, page int) tea.Cmd {
	blog := m.blog
	size := m.pager.PageSize
	return func() tea.Msg {
		p, err := blog.Posts(context.Background(), page, size)
		if err != nil {
			return postsErrMsg{seq: seq, err: err}
		}
		return postsLoadedMsg{seq: seq, page: p}
	}
}

// fetchMeta loads like and comment data for every post on the page. One
// command per page, not per post, so a stale page produces a single stale
// message that the seq check drops.
func (m Model) fetchMeta(seq int, posts []domain.Post) tea.Cmd {
	if len(posts) == 0 {
		return nil
	}
	blog := m.blog
	info := m.session.Snapshot()
	myID := 0
	if info.HasUser {
		myID = info.User.ID
	}
	ids := make([]int, 0, len(posts))
	for _, p := range posts {
		ids = append(ids, p.ID)
	}
	log := m.log
	return func() tea.Msg {
		likes := make(map[int]int, len(ids))
		comments := make(map[int]int, len(ids))
		liked := make(map[int]bool, len(ids))
		for _, id := range ids {
			if ls, err := blog.PostLikes(context.Background(), id); err == nil {
				likes[id] = len(ls)
				for _, l := range ls {
					if myID != 0 && l.UserID == myID {
						liked[id] = true
						break
					}
				}
			} else {
				log.WithField("post", id).WithError(err).Warn("skipping like meta")
			}
			if n, err := blog.CommentCount(context.Background(), id); err == nil {
				comments[id] = n
			} else {
				log.WithField("post", id).WithError(err).Warn("skipping comment count")
			}
		}
		return metaLoadedMsg{seq: seq, likes: likes, comments: comments, liked: liked}
	}
}

// fetchAuthors warms the profile cache for authors not yet seen. Best
// effort: a failed lookup just leaves the username uncached.
func (m Model) fetchAuthors(posts []domain.Post) tea.Cmd {
	names := make([]string, 0, len(posts))
	for _, p := range posts {
		names = append(names, p.AuthorName)
	}
	missing := m.cache.Missing(names)
	if len(missing) == 0 {
		return nil
	}
	profiles := m.profiles
	cache := m.cache
	log := m.log
	return func() tea.Msg {
		for _, name := range missing {
			if u, err := profiles.ProfileByUsername(context.Background(), name); err == nil {
				cache.Put(u)
			} else {
				log.WithField("username", name).WithError(err).Warn("skipping author lookup")
			}
		}
		return authorsLoadedMsg{}
	}
}
