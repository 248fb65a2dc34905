package profile

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/blogmates/blogmates-tui/app"
	"github.com/blogmates/blogmates-tui/domain"
	"github.com/blogmates/blogmates-tui/tui/common"
)

// --- Sections ---

type section int

const (
	sectionPosts section = iota
	sectionRequests
	sectionFollowers
	sectionFollowing
)

// --- Messages ---

// BackMsg asks the root to return to the previous view.
type BackMsg struct{}

// OpenPostMsg asks the root to open one of the profile's posts.
type OpenPostMsg struct {
	Post domain.Post
}

// LoggedOutMsg tells the root the logout round-trip finished.
type LoggedOutMsg struct {
	Err error
}

type profileLoadedMsg struct {
	user domain.User
	err  error
}

type postsLoadedMsg struct {
	seq  int
	page domain.Page[domain.Post]
}

type postsErrMsg struct {
	seq int
	err error
}

type requestsLoadedMsg struct {
	received []domain.FollowRequest
	sent     []domain.FollowRequest
	err      error
}

type edgesLoadedMsg struct {
	followers []domain.FollowEdge
	following []domain.FollowEdge
	err       error
}

// followActionMsg resolves any follow-graph mutation. The affected
// aggregates are refetched rather than patched locally.
type followActionMsg struct {
	err error
}

type updateResultMsg struct {
	user domain.User
	err  error
}

// --- Model ---

// Model holds the state for a profile view, own or foreign.
type Model struct {
	auth     app.AuthService
	profiles app.ProfileService
	follow   app.FollowService
	blog     app.BlogService
	cache    *app.ProfileCache
	session  *app.Session

	username string // Whose profile; empty means own.
	user     domain.User
	loading  bool
	err      error

	pager   *app.Paginator[domain.Post]
	lastSeq int

	received  []domain.FollowRequest
	sent      []domain.FollowRequest
	followers []domain.FollowEdge
	following []domain.FollowEdge

	section section
	cursor  int

	editing    bool
	bioInput   textarea.Model
	avatarPath textinput.Model
	editFocus  int // 0 bio, 1 avatar path
	saving     bool

	actionInFlight bool

	keys    common.KeyMap
	spinner spinner.Model
}

// New creates a profile model. An empty username shows the session user's
// own profile with request management.
func New(auth app.AuthService, profiles app.ProfileService, follow app.FollowService, blog app.BlogService, cache *app.ProfileCache, session *app.Session, username string, pageSize int) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#8AADF4"))

	bio := textarea.New()
	bio.Placeholder = "Tell your mates about yourself"
	bio.SetWidth(60)
	bio.SetHeight(4)

	avatar := textinput.New()
	avatar.Placeholder = "path to image (optional)"
	avatar.CharLimit = 512

	return Model{
		auth:       auth,
		profiles:   profiles,
		follow:     follow,
		blog:       blog,
		cache:      cache,
		session:    session,
		username:   username,
		loading:    true,
		pager:      app.NewPaginator[domain.Post](pageSize),
		bioInput:   bio,
		avatarPath: avatar,
		keys:       common.DefaultKeyMap(),
		spinner:    s,
	}
}

// IsOwn reports whether this is the session user's own profile.
func (m Model) IsOwn() bool {
	if m.username == "" {
		return true
	}
	info := m.session.Snapshot()
	return info.HasUser && info.User.Username == m.username
}

// Init fetches the profile and, for own profiles, the follow aggregates.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.fetchProfile(), m.spinner.Tick}
	if m.IsOwn() {
		cmds = append(cmds, m.fetchRequests(), m.fetchEdges())
	}
	return tea.Batch(cmds...)
}

// Update handles messages for the profile view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case profileLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.user = msg.user
		m.cache.Put(msg.user)
		if m.IsOwn() {
			m.session.SetUser(msg.user)
		}
		// Posts follow once we know the username is resolvable.
		return m.loadPosts(1)

	case postsLoadedMsg:
		if !m.pager.Apply(msg.seq, msg.page) {
			return m, nil
		}
		m.lastSeq = msg.seq
		if m.section == sectionPosts {
			m.cursor = 0
		}
		return m, nil

	case postsErrMsg:
		m.pager.Fail(msg.seq, msg.err)
		return m, nil

	case requestsLoadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.received = msg.received
		m.sent = msg.sent
		return m, nil

	case edgesLoadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.followers = msg.followers
		m.following = msg.following
		return m, nil

	case followActionMsg:
		m.actionInFlight = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		// Counts, friendship status and request lists all changed
		// server-side; refetch everything this view shows.
		cmds := []tea.Cmd{m.fetchProfile()}
		if m.IsOwn() {
			cmds = append(cmds, m.fetchRequests(), m.fetchEdges())
		}
		return m, tea.Batch(cmds...)

	case updateResultMsg:
		m.saving = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.editing = false
		m.user = msg.user
		m.cache.Put(msg.user)
		m.session.SetUser(msg.user)
		return m, nil

	case tea.KeyMsg:
		return m.updateKey(msg)
	}

	if m.editing {
		return m.updateEditInputs(msg)
	}
	return m, nil
}

func (m Model) updateKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if m.editing {
		switch msg.String() {
		case "esc":
			m.editing = false
			m.err = nil
			return m, nil
		case "tab":
			m.editFocus = (m.editFocus + 1) % 2
			if m.editFocus == 0 {
				m.avatarPath.Blur()
				return m, m.bioInput.Focus()
			}
			m.bioInput.Blur()
			return m, m.avatarPath.Focus()
		case "ctrl+d":
			return m.saveProfile()
		}
		return m.updateEditInputs(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Back):
		return m, func() tea.Msg { return BackMsg{} }

	case key.Matches(msg, m.keys.Refresh):
		return m, m.Init()

	case msg.String() == "tab":
		if m.IsOwn() {
			m.section = (m.section + 1) % 4
			m.cursor = 0
		}
		return m, nil

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor < m.sectionLen()-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.NextPage):
		if m.section == sectionPosts {
			return m.goTo(m.pager.Current + 1)
		}

	case key.Matches(msg, m.keys.PrevPage):
		if m.section == sectionPosts {
			return m.goTo(m.pager.Current - 1)
		}

	case key.Matches(msg, m.keys.Open):
		if m.section == sectionPosts {
			if m.cursor < len(m.pager.Items) {
				post := m.pager.Items[m.cursor]
				return m, func() tea.Msg { return OpenPostMsg{Post: post} }
			}
		}

	case msg.String() == "e":
		if m.IsOwn() {
			m.editing = true
			m.editFocus = 0
			m.bioInput.SetValue(m.user.Biography)
			m.avatarPath.SetValue("")
			return m, m.bioInput.Focus()
		}

	case msg.String() == "f":
		if !m.IsOwn() {
			return m.followAction()
		}

	case msg.String() == "a":
		if m.IsOwn() && m.section == sectionRequests {
			if r, ok := m.selectedReceived(); ok {
				return m.acceptRequest(r.ID)
			}
		}

	case msg.String() == "x":
		if m.IsOwn() && m.section == sectionRequests {
			if r, ok := m.selectedReceived(); ok {
				return m.declineRequest(r.ID)
			}
		}

	case key.Matches(msg, m.keys.Logout):
		if m.IsOwn() {
			auth := m.auth
			return m, func() tea.Msg {
				return LoggedOutMsg{Err: auth.LogOut(context.Background())}
			}
		}
	}

	return m, nil
}

func (m Model) updateEditInputs(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	if m.editFocus == 0 {
		m.bioInput, cmd = m.bioInput.Update(msg)
	} else {
		m.avatarPath, cmd = m.avatarPath.Update(msg)
	}
	return m, cmd
}

// followAction dispatches on the friendship status: not connected sends a
// request, following unfollows, a sent request is a no-op.
func (m Model) followAction() (Model, tea.Cmd) {
	if m.actionInFlight || m.user.ID == 0 {
		return m, nil
	}
	follow := m.follow
	userID := m.user.ID
	switch m.user.Friendship {
	case domain.FriendshipNone:
		m.actionInFlight = true
		return m, func() tea.Msg {
			return followActionMsg{err: follow.SendRequest(context.Background(), userID)}
		}
	case domain.FriendshipFollowing:
		m.actionInFlight = true
		return m, func() tea.Msg {
			return followActionMsg{err: follow.Unfollow(context.Background(), userID)}
		}
	default: // Request already sent; nothing to do.
		return m, nil
	}
}

func (m Model) acceptRequest(requestID int) (Model, tea.Cmd) {
	if m.actionInFlight {
		return m, nil
	}
	m.actionInFlight = true
	follow := m.follow
	return m, func() tea.Msg {
		return followActionMsg{err: follow.Accept(context.Background(), requestID)}
	}
}

func (m Model) declineRequest(requestID int) (Model, tea.Cmd) {
	if m.actionInFlight {
		return m, nil
	}
	m.actionInFlight = true
	follow := m.follow
	return m, func() tea.Msg {
		return followActionMsg{err: follow.Decline(context.Background(), requestID)}
	}
}

func (m Model) saveProfile() (Model, tea.Cmd) {
	bio := strings.TrimSpace(m.bioInput.Value())
	path := strings.TrimSpace(m.avatarPath.Value())

	update := app.ProfileUpdate{}
	if bio != m.user.Biography {
		update.Biography = &bio
	}
	if path != "" {
		data, mime, err := readAvatar(path)
		if err != nil {
			m.err = err
			return m, nil
		}
		update.Avatar = data
		update.AvatarMIME = mime
	}
	if update.Biography == nil && update.Avatar == nil {
		m.editing = false
		return m, nil
	}

	m.saving = true
	profiles := m.profiles
	return m, func() tea.Msg {
		user, err := profiles.UpdateProfile(context.Background(), update)
		return updateResultMsg{user: user, err: err}
	}
}

// --- Accessors ---

func (m Model) sectionLen() int {
	switch m.section {
	case sectionPosts:
		return len(m.pager.Items)
	case sectionRequests:
		return len(m.received)
	case sectionFollowers:
		return len(m.followers)
	case sectionFollowing:
		return len(m.following)
	}
	return 0
}

func (m Model) selectedReceived() (domain.FollowRequest, bool) {
	if m.cursor < 0 || m.cursor >= len(m.received) {
		return domain.FollowRequest{}, false
	}
	return m.received[m.cursor], true
}

// User returns the loaded profile record.
func (m Model) User() domain.User {
	return m.user
}

// Err returns the current view error, if any.
func (m Model) Err() error {
	return m.err
}
