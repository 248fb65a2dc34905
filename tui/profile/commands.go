package profile

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

func (m Model) fetchProfile() tea.Cmd {
	profiles := m.profiles
	username := m.username
	own := m.IsOwn()
	return func() tea.Msg {
		if own {
			user, err := profiles.CurrentUser(context.Background())
			return profileLoadedMsg{user: user, err: err}
		}
		user, err := profiles.ProfileByUsername(context.Background(), username)
		return profileLoadedMsg{user: user, err: err}
	}
}

func (m Model) loadPosts(page int) (Model, tea.Cmd) {
	seq, ok := m.pager.Load(page)
	if !ok {
		return m, nil
	}
	m.lastSeq = seq
	return m, m.fetchPosts(seq, page)
}

func (m Model) goTo(page int) (Model, tea.Cmd) {
	seq, ok := m.pager.GoToPage(page)
	if !ok {
		return m, nil
	}
	m.lastSeq = seq
	return m, m.fetchPosts(seq, page)
}

func (m Model) fetchPosts(seq, page int) tea.Cmd {
	blog := m.blog
	size := m.pager.PageSize
	username := m.username
	if username == "" {
		info := m.session.Snapshot()
		username = info.User.Username
	}
	return func() tea.Msg {
		p, err := blog.PostsByUser(context.Background(), username, page, size)
		if err != nil {
			return postsErrMsg{seq: seq, err: err}
		}
		return postsLoadedMsg{seq: seq, page: p}
	}
}

func (m Model) fetchRequests() tea.Cmd {
	follow := m.follow
	return func() tea.Msg {
		received, err := follow.PendingReceived(context.Background())
		if err != nil {
			return requestsLoadedMsg{err: err}
		}
		sent, err := follow.PendingSent(context.Background())
		if err != nil {
			return requestsLoadedMsg{err: err}
		}
		return requestsLoadedMsg{received: received, sent: sent}
	}
}

func (m Model) fetchEdges() tea.Cmd {
	follow := m.follow
	return func() tea.Msg {
		followers, err := follow.Followers(context.Background())
		if err != nil {
			return edgesLoadedMsg{err: err}
		}
		following, err := follow.Following(context.Background())
		if err != nil {
			return edgesLoadedMsg{err: err}
		}
		return edgesLoadedMsg{followers: followers, following: following}
	}
}

// readAvatar loads an image file and infers the MIME type from the
// extension. The backend stores the bytes base64-encoded.
func readAvatar(path string) ([]byte, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("reading avatar: %w", err)
	}
	var mime string
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		mime = "image/png"
	case ".jpg", ".jpeg":
		mime = "image/jpeg"
	case ".gif":
		mime = "image/gif"
	case ".webp":
		mime = "image/webp"
	default:
		return nil, "", fmt.Errorf("unsupported image type: %s", filepath.Ext(path))
	}
	return data, mime, nil
}
