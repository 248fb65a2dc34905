package feed

import (
	"context"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"

	"github.com/blogmates/blogmates-tui/app"
	"github.com/blogmates/blogmates-tui/domain"
	"github.com/blogmates/blogmates-tui/tui/common"
)

// --- Item status ---

type itemStatus int

const (
	statusPendingCreate itemStatus = iota
	statusFailed
)

// pendingItem is an optimistic post shown above the page until the server
// confirms or rejects it.
type pendingItem struct {
	LocalID string
	Post    domain.Post
	Status  itemStatus
	Err     error
}

// --- Messages ---

// OpenPostMsg asks the root to open the post detail view.
type OpenPostMsg struct {
	Post domain.Post
}

// OpenProfileMsg asks the root to open the selected author's profile.
type OpenProfileMsg struct {
	Username string
}

// AddOptimisticPostMsg inserts a pending post at the top of the feed while
// the create request is in flight.
type AddOptimisticPostMsg struct {
	LocalID string
	Post    domain.Post
}

// CreateResultMsg resolves an optimistic post: on success the feed reloads
// the current page so server ordering and totals win.
type CreateResultMsg struct {
	LocalID string
	Post    domain.Post
	Err     error
}

type postsLoadedMsg struct {
	seq  int
	page domain.Page[domain.Post]
}

type postsErrMsg struct {
	seq int
	err error
}

// metaLoadedMsg carries per-post like and comment data for one page.
type metaLoadedMsg struct {
	seq      int
	likes    map[int]int
	comments map[int]int
	liked    map[int]bool
}

type authorsLoadedMsg struct{}

type likeResultMsg struct {
	postID int
	liked  bool // The state we tried to reach.
	err    error
}

type deleteResultMsg struct {
	postID int
	err    error
}

// --- Model ---

// Model holds the state for the paginated feed view.
type Model struct {
	blog     app.BlogService
	profiles app.ProfileService
	cache    *app.ProfileCache
	session  *app.Session
	log      *logrus.Logger

	pager   *app.Paginator[domain.Post]
	lastSeq int

	pending []pendingItem
	cursor  int

	expanded      map[int]bool
	likeCounts    map[int]int
	commentCounts map[int]int
	likedByMe     map[int]bool
	liking        map[int]bool
	deleting      map[int]bool
	confirmDelete bool

	keys    common.KeyMap
	spinner spinner.Model
	width   int
}

// New creates a feed model with injected dependencies.
func New(blog app.BlogService, profiles app.ProfileService, cache *app.ProfileCache, session *app.Session, log *logrus.Logger, pageSize int) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#8AADF4"))

	return Model{
		blog:          blog,
		profiles:      profiles,
		cache:         cache,
		session:       session,
		log:           log,
		pager:         app.NewPaginator[domain.Post](pageSize),
		expanded:      make(map[int]bool),
		likeCounts:    make(map[int]int),
		commentCounts: make(map[int]int),
		likedByMe:     make(map[int]bool),
		liking:        make(map[int]bool),
		deleting:      make(map[int]bool),
		keys:          common.DefaultKeyMap(),
		spinner:       s,
	}
}

// Init starts the first page fetch.
func (m Model) Init() tea.Cmd {
	seq, ok := m.pager.Load(1)
	if !ok {
		return m.spinner.Tick
	}
	return tea.Batch(m.fetchPosts(seq, 1), m.spinner.Tick)
}

// Refresh re-fetches the current page, e.g. after a post or comment mutation
// elsewhere changed the totals.
func (m Model) Refresh() (Model, tea.Cmd) {
	seq, ok := m.pager.Reload()
	if !ok {
		return m.loadPage(1)
	}
	m.lastSeq = seq
	return m, m.fetchPosts(seq, m.pager.Current)
}

// Update handles messages for the feed view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case postsLoadedMsg:
		if !m.pager.Apply(msg.seq, msg.page) {
			return m, nil
		}
		m.lastSeq = msg.seq
		m.cursor = 0
		m.confirmDelete = false
		m.expanded = make(map[int]bool)
		return m, tea.Batch(
			m.fetchMeta(msg.seq, msg.page.Items),
			m.fetchAuthors(msg.page.Items),
		)

	case postsErrMsg:
		m.pager.Fail(msg.seq, msg.err)
		return m, nil

	case metaLoadedMsg:
		if msg.seq != m.lastSeq {
			return m, nil
		}
		m.likeCounts = msg.likes
		m.commentCounts = msg.comments
		m.likedByMe = msg.liked
		return m, nil

	case authorsLoadedMsg:
		return m, nil

	case AddOptimisticPostMsg:
		m.pending = append([]pendingItem{{LocalID: msg.LocalID, Post: msg.Post, Status: statusPendingCreate}}, m.pending...)
		m.cursor = 0
		return m, nil

	case CreateResultMsg:
		if msg.Err != nil {
			for i := range m.pending {
				if m.pending[i].LocalID == msg.LocalID {
					m.pending[i].Status = statusFailed
					m.pending[i].Err = msg.Err
				}
			}
			return m, nil
		}
		m.pending = removePending(m.pending, msg.LocalID)
		return m.Refresh()

	case likeResultMsg:
		delete(m.liking, msg.postID)
		if msg.err != nil {
			// Revert the optimistic flip.
			if msg.liked {
				m.likedByMe[msg.postID] = false
				m.likeCounts[msg.postID]--
			} else {
				m.likedByMe[msg.postID] = true
				m.likeCounts[msg.postID]++
			}
		}
		return m, nil

	case deleteResultMsg:
		delete(m.deleting, msg.postID)
		if msg.err != nil {
			m.pager.Err = msg.err
			return m, nil
		}
		return m.Refresh()

	case tea.KeyMsg:
		return m.updateKey(msg)
	}

	return m, nil
}

func (m Model) updateKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if m.confirmDelete {
		switch msg.String() {
		case "y":
			m.confirmDelete = false
			if p, ok := m.selectedPost(); ok {
				return m.deletePost(p.ID)
			}
			return m, nil
		case "n", "esc":
			m.confirmDelete = false
			return m, nil
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Refresh):
		return m.Refresh()

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor < m.itemCount()-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.NextPage):
		return m.goTo(m.pager.Current + 1)

	case key.Matches(msg, m.keys.PrevPage):
		return m.goTo(m.pager.Current - 1)

	case key.Matches(msg, m.keys.Expand):
		if p, ok := m.selectedPost(); ok && common.IsLongContent(p.Content) {
			m.expanded[p.ID] = !m.expanded[p.ID]
		}

	case key.Matches(msg, m.keys.Like):
		if p, ok := m.selectedPost(); ok {
			return m.toggleLike(p.ID)
		}

	case key.Matches(msg, m.keys.Delete):
		if p, ok := m.selectedPost(); ok && m.isOwn(p) && !m.deleting[p.ID] {
			m.confirmDelete = true
		}

	case key.Matches(msg, m.keys.Open):
		if p, ok := m.selectedPost(); ok {
			post := p
			return m, func() tea.Msg { return OpenPostMsg{Post: post} }
		}

	case msg.String() == "u":
		if p, ok := m.selectedPost(); ok && p.AuthorName != "" {
			name := p.AuthorName
			return m, func() tea.Msg { return OpenProfileMsg{Username: name} }
		}
	}

	return m, nil
}

func (m Model) goTo(page int) (Model, tea.Cmd) {
	seq, ok := m.pager.GoToPage(page)
	if !ok {
		return m, nil
	}
	m.lastSeq = seq
	return m, m.fetchPosts(seq, page)
}

func (m Model) loadPage(page int) (Model, tea.Cmd) {
	seq, ok := m.pager.Load(page)
	if !ok {
		return m, nil
	}
	m.lastSeq = seq
	return m, m.fetchPosts(seq, page)
}

func (m Model) toggleLike(postID int) (Model, tea.Cmd) {
	if m.liking[postID] {
		return m, nil
	}
	m.liking[postID] = true
	target := !m.likedByMe[postID]
	// Optimistic flip; likeResultMsg reverts on failure.
	m.likedByMe[postID] = target
	if target {
		m.likeCounts[postID]++
	} else {
		m.likeCounts[postID]--
	}
	blog := m.blog
	return m, func() tea.Msg {
		var err error
		if target {
			err = blog.LikePost(context.Background(), postID)
		} else {
			err = blog.UnlikePost(context.Background(), postID)
		}
		return likeResultMsg{postID: postID, liked: target, err: err}
	}
}

func (m Model) deletePost(postID int) (Model, tea.Cmd) {
	m.deleting[postID] = true
	blog := m.blog
	return m, func() tea.Msg {
		err := blog.DeletePost(context.Background(), postID)
		return deleteResultMsg{postID: postID, err: err}
	}
}

// --- Accessors ---

func (m Model) itemCount() int {
	return len(m.pending) + len(m.pager.Items)
}

// selectedPost returns the highlighted server-side post. Pending items are
// not selectable targets for like/delete/open.
func (m Model) selectedPost() (domain.Post, bool) {
	idx := m.cursor - len(m.pending)
	if idx < 0 || idx >= len(m.pager.Items) {
		return domain.Post{}, false
	}
	return m.pager.Items[idx], true
}

func (m Model) isOwn(p domain.Post) bool {
	info := m.session.Snapshot()
	return info.HasUser && info.User.ID == p.AuthorID
}

// ConfirmingDelete reports whether the delete prompt is open.
func (m Model) ConfirmingDelete() bool {
	return m.confirmDelete
}

// Loading reports whether a page fetch is in flight.
func (m Model) Loading() bool {
	return m.pager.Loading
}

// Err returns the current page error, if any.
func (m Model) Err() error {
	return m.pager.Err
}

// Posts returns the current page's posts.
func (m Model) Posts() []domain.Post {
	return m.pager.Items
}

// CurrentPage returns the 1-based page number, 0 before the first load.
func (m Model) CurrentPage() int {
	return m.pager.Current
}

func removePending(items []pendingItem, localID string) []pendingItem {
	out := items[:0]
	for _, it := range items {
		if it.LocalID != localID {
			out = append(out, it)
		}
	}
	return out
}
