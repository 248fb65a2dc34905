package post

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/blogmates/blogmates-tui/app"
	"github.com/blogmates/blogmates-tui/domain"
	"github.com/blogmates/blogmates-tui/tui/common"
)

// --- Messages ---

// BackMsg asks the root to return to the previous view.
type BackMsg struct{}

// OpenProfileMsg asks the root to open a commenter's profile.
type OpenProfileMsg struct {
	Username string
}

type commentsLoadedMsg struct {
	seq  int
	page domain.Page[domain.Comment]
}

type commentsErrMsg struct {
	seq int
	err error
}

// commentMetaMsg carries per-comment like data for one page.
type commentMetaMsg struct {
	seq   int
	likes map[int]int
	liked map[int]bool
}

type postMetaMsg struct {
	count int
	liked bool
}

type commentPostedMsg struct {
	err error
}

type commentDeletedMsg struct {
	err error
}

type postLikeResultMsg struct {
	liked bool
	err   error
}

type commentLikeResultMsg struct {
	commentID int
	liked     bool
	err       error
}

// likesLoadedMsg resolves the like list into display names.
type likesLoadedMsg struct {
	names []string
	err   error
}

// --- Model ---

// Model holds the state for the post detail view: the post itself, its
// paginated comments and the likes popup.
type Model struct {
	blog     app.BlogService
	profiles app.ProfileService
	session  *app.Session

	post    domain.Post
	pager   *app.Paginator[domain.Comment]
	lastSeq int

	// cursor 0 is the post card, 1..len(comments) the comments.
	cursor int

	postLikeCount int
	postLiked     bool
	likingPost    bool

	commentLikes  map[int]int
	commentLiked  map[int]bool
	likingComment map[int]bool

	composing    bool
	commentInput textinput.Model
	posting      bool

	confirmDelete   bool
	deletingComment bool

	showLikes    bool
	likeNames    []string
	likesLoading bool
	likesErr     error

	keys    common.KeyMap
	spinner spinner.Model
	err     error
}

// New creates a detail model for the given post.
func New(blog app.BlogService, profiles app.ProfileService, session *app.Session, p domain.Post, pageSize int) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#8AADF4"))

	ti := textinput.New()
	ti.Placeholder = "Write a comment"
	ti.CharLimit = 500

	return Model{
		blog:          blog,
		profiles:      profiles,
		session:       session,
		post:          p,
		pager:         app.NewPaginator[domain.Comment](pageSize),
		commentLikes:  make(map[int]int),
		commentLiked:  make(map[int]bool),
		likingComment: make(map[int]bool),
		commentInput:  ti,
		keys:          common.DefaultKeyMap(),
		spinner:       s,
	}
}

// Init fetches the first comment page and the post's like data.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.fetchPostMeta(), m.spinner.Tick}
	if seq, ok := m.pager.Load(1); ok {
		cmds = append(cmds, m.fetchComments(seq, 1))
	}
	return tea.Batch(cmds...)
}

// Update handles messages for the detail view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case commentsLoadedMsg:
		if !m.pager.Apply(msg.seq, msg.page) {
			return m, nil
		}
		m.lastSeq = msg.seq
		if m.cursor > len(m.pager.Items) {
			m.cursor = len(m.pager.Items)
		}
		return m, m.fetchCommentMeta(msg.seq, msg.page.Items)

	case commentsErrMsg:
		m.pager.Fail(msg.seq, msg.err)
		return m, nil

	case commentMetaMsg:
		if msg.seq != m.lastSeq {
			return m, nil
		}
		m.commentLikes = msg.likes
		m.commentLiked = msg.liked
		return m, nil

	case postMetaMsg:
		m.postLikeCount = msg.count
		m.postLiked = msg.liked
		return m, nil

	case commentPostedMsg:
		m.posting = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.composing = false
		m.commentInput.SetValue("")
		m.err = nil
		return m.reloadComments()

	case commentDeletedMsg:
		m.deletingComment = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		return m.reloadComments()

	case postLikeResultMsg:
		m.likingPost = false
		if msg.err != nil {
			if msg.liked {
				m.postLiked = false
				m.postLikeCount--
			} else {
				m.postLiked = true
				m.postLikeCount++
			}
		}
		return m, nil

	case commentLikeResultMsg:
		delete(m.likingComment, msg.commentID)
		if msg.err != nil {
			if msg.liked {
				m.commentLiked[msg.commentID] = false
				m.commentLikes[msg.commentID]--
			} else {
				m.commentLiked[msg.commentID] = true
				m.commentLikes[msg.commentID]++
			}
		}
		return m, nil

	case likesLoadedMsg:
		m.likesLoading = false
		m.likeNames = msg.names
		m.likesErr = msg.err
		return m, nil

	case tea.KeyMsg:
		return m.updateKey(msg)
	}

	if m.composing {
		var cmd tea.Cmd
		m.commentInput, cmd = m.commentInput.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) updateKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if m.showLikes {
		if msg.String() == "esc" || msg.String() == "q" {
			m.showLikes = false
		}
		return m, nil
	}

	if m.composing {
		switch msg.String() {
		case "esc":
			m.composing = false
			m.err = nil
			return m, nil
		case "enter":
			return m.submitComment()
		}
		var cmd tea.Cmd
		m.commentInput, cmd = m.commentInput.Update(msg)
		return m, cmd
	}

	if m.confirmDelete {
		switch msg.String() {
		case "y":
			m.confirmDelete = false
			if c, ok := m.selectedComment(); ok {
				return m.deleteComment(c.ID)
			}
			return m, nil
		case "n", "esc":
			m.confirmDelete = false
			return m, nil
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Back):
		return m, func() tea.Msg { return BackMsg{} }

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.pager.Items) {
			m.cursor++
		}

	case key.Matches(msg, m.keys.Refresh):
		return m.reloadComments()

	case key.Matches(msg, m.keys.NextPage):
		return m.goTo(m.pager.Current + 1)

	case key.Matches(msg, m.keys.PrevPage):
		return m.goTo(m.pager.Current - 1)

	case key.Matches(msg, m.keys.Comment):
		m.composing = true
		m.err = nil
		return m, m.commentInput.Focus()

	case key.Matches(msg, m.keys.Like):
		if c, ok := m.selectedComment(); ok {
			return m.toggleCommentLike(c.ID)
		}
		return m.togglePostLike()

	case key.Matches(msg, m.keys.Delete):
		if c, ok := m.selectedComment(); ok && m.canDeleteComment(c) && !m.deletingComment {
			m.confirmDelete = true
		}

	case msg.String() == "v":
		m.showLikes = true
		m.likesLoading = true
		m.likeNames = nil
		m.likesErr = nil
		return m, m.fetchLikeNames()

	case msg.String() == "u":
		if c, ok := m.selectedComment(); ok && c.AuthorName != "" {
			name := c.AuthorName
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
	return m, m.fetchComments(seq, page)
}

func (m Model) reloadComments() (Model, tea.Cmd) {
	seq, ok := m.pager.Reload()
	if !ok {
		return m, nil
	}
	m.lastSeq = seq
	return m, m.fetchComments(seq, m.pager.Current)
}

func (m Model) submitComment() (Model, tea.Cmd) {
	content := strings.TrimSpace(m.commentInput.Value())
	if content == "" {
		m.err = domain.ErrEmptyComment
		return m, nil
	}
	m.posting = true
	blog := m.blog
	postID := m.post.ID
	return m, func() tea.Msg {
		_, err := blog.CreateComment(context.Background(), postID, content)
		return commentPostedMsg{err: err}
	}
}

func (m Model) deleteComment(commentID int) (Model, tea.Cmd) {
	m.deletingComment = true
	blog := m.blog
	postID := m.post.ID
	return m, func() tea.Msg {
		err := blog.DeleteComment(context.Background(), postID, commentID)
		return commentDeletedMsg{err: err}
	}
}

func (m Model) togglePostLike() (Model, tea.Cmd) {
	if m.likingPost {
		return m, nil
	}
	m.likingPost = true
	target := !m.postLiked
	m.postLiked = target
	if target {
		m.postLikeCount++
	} else {
		m.postLikeCount--
	}
	blog := m.blog
	postID := m.post.ID
	return m, func() tea.Msg {
		var err error
		if target {
			err = blog.LikePost(context.Background(), postID)
		} else {
			err = blog.UnlikePost(context.Background(), postID)
		}
		return postLikeResultMsg{liked: target, err: err}
	}
}

func (m Model) toggleCommentLike(commentID int) (Model, tea.Cmd) {
	if m.likingComment[commentID] {
		return m, nil
	}
	m.likingComment[commentID] = true
	target := !m.commentLiked[commentID]
	m.commentLiked[commentID] = target
	if target {
		m.commentLikes[commentID]++
	} else {
		m.commentLikes[commentID]--
	}
	blog := m.blog
	return m, func() tea.Msg {
		var err error
		if target {
			err = blog.LikeComment(context.Background(), commentID)
		} else {
			err = blog.UnlikeComment(context.Background(), commentID)
		}
		return commentLikeResultMsg{commentID: commentID, liked: target, err: err}
	}
}

// --- Accessors ---

// selectedComment returns the highlighted comment; cursor 0 is the post card.
func (m Model) selectedComment() (domain.Comment, bool) {
	idx := m.cursor - 1
	if idx < 0 || idx >= len(m.pager.Items) {
		return domain.Comment{}, false
	}
	return m.pager.Items[idx], true
}

// canDeleteComment allows removing own comments anywhere and any comment on
// own posts.
func (m Model) canDeleteComment(c domain.Comment) bool {
	info := m.session.Snapshot()
	if !info.HasUser {
		return false
	}
	return c.AuthorID == info.User.ID || m.post.AuthorID == info.User.ID
}

// Post returns the post under view.
func (m Model) Post() domain.Post {
	return m.post
}

// Comments returns the current comment page.
func (m Model) Comments() []domain.Comment {
	return m.pager.Items
}

// Err returns the current view error, if any.
func (m Model) Err() error {
	return m.err
}
