package search

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

// Result page sizes differ per half: users render as one-line entries,
// posts as full cards.
const (
	userPageSize = 11
	blogPageSize = 3
)

// --- Messages ---

// OpenProfileMsg asks the root to open a found user's profile.
type OpenProfileMsg struct {
	Username string
}

// OpenPostMsg asks the root to open a found post.
type OpenPostMsg struct {
	Post domain.Post
}

// BackMsg asks the root to return to the feed.
type BackMsg struct{}

// resultsMsg carries both halves of one search round-trip. Each half has
// its own sequence so user and post pagination stay independent.
type resultsMsg struct {
	userSeq int
	blogSeq int
	res     app.SearchResult
}

type errMsg struct {
	userSeq int
	blogSeq int
	err     error
}

// --- Model ---

type half int

const (
	usersHalf half = iota
	postsHalf
)

// Model holds the state for the search view: a query input and two
// independently paginated result halves.
type Model struct {
	search app.SearchService

	query    textinput.Model
	typing   bool // Query input focused.
	lastTerm string

	users    *app.Paginator[domain.User]
	posts    *app.Paginator[domain.Post]
	userSeq  int
	blogSeq  int
	active   half
	cursor   int

	keys    common.KeyMap
	spinner spinner.Model
}

// New creates a search model with the query input focused.
func New(search app.SearchService) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#8AADF4"))

	ti := textinput.New()
	ti.Placeholder = "Search users and posts"
	ti.CharLimit = 200
	ti.Focus()

	return Model{
		search:  search,
		query:   ti,
		typing:  true,
		users:   app.NewPaginator[domain.User](userPageSize),
		posts:   app.NewPaginator[domain.Post](blogPageSize),
		keys:    common.DefaultKeyMap(),
		spinner: s,
	}
}

// Init starts the cursor blink.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick)
}

// Update handles messages for the search view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case resultsMsg:
		usersOK := m.users.Apply(msg.userSeq, msg.res.Users)
		postsOK := m.posts.Apply(msg.blogSeq, msg.res.Posts)
		if usersOK || postsOK {
			m.cursor = 0
		}
		return m, nil

	case errMsg:
		m.users.Fail(msg.userSeq, msg.err)
		m.posts.Fail(msg.blogSeq, msg.err)
		return m, nil

	case tea.KeyMsg:
		return m.updateKey(msg)
	}

	if m.typing {
		var cmd tea.Cmd
		m.query, cmd = m.query.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) updateKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if m.typing {
		switch msg.String() {
		case "esc":
			m.typing = false
			m.query.Blur()
			return m, nil
		case "enter":
			return m.newSearch()
		}
		var cmd tea.Cmd
		m.query, cmd = m.query.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Back):
		return m, func() tea.Msg { return BackMsg{} }

	case msg.String() == "/":
		m.typing = true
		return m, m.query.Focus()

	case msg.String() == "tab":
		if m.active == usersHalf {
			m.active = postsHalf
		} else {
			m.active = usersHalf
		}
		m.cursor = 0
		return m, nil

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor < m.activeLen()-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.NextPage):
		return m.pageActive(1)

	case key.Matches(msg, m.keys.PrevPage):
		return m.pageActive(-1)

	case key.Matches(msg, m.keys.Open):
		if m.active == usersHalf {
			if m.cursor < len(m.users.Items) {
				name := m.users.Items[m.cursor].Username
				return m, func() tea.Msg { return OpenProfileMsg{Username: name} }
			}
		} else if m.cursor < len(m.posts.Items) {
			post := m.posts.Items[m.cursor]
			return m, func() tea.Msg { return OpenPostMsg{Post: post} }
		}
	}

	return m, nil
}

// newSearch resets both halves and queries page 1 of each.
func (m Model) newSearch() (Model, tea.Cmd) {
	term := strings.TrimSpace(m.query.Value())
	if term == "" {
		return m, nil
	}
	m.lastTerm = term
	m.typing = false
	m.query.Blur()
	m.users.Reset()
	m.posts.Reset()

	userSeq, _ := m.users.Load(1)
	blogSeq, _ := m.posts.Load(1)
	m.userSeq = userSeq
	m.blogSeq = blogSeq
	return m, m.fetch(term, userSeq, 1, blogSeq, 1)
}

// pageActive pages the focused half; the other half reloads its current
// page since the backend answers both in one call.
func (m Model) pageActive(delta int) (Model, tea.Cmd) {
	if m.lastTerm == "" {
		return m, nil
	}
	var userPage, blogPage int

	if m.active == usersHalf {
		target := m.users.Current + delta
		seq, ok := m.users.GoToPage(target)
		if !ok {
			return m, nil
		}
		m.userSeq = seq
		userPage = target
		blogSeq, ok := m.posts.Reload()
		if !ok {
			blogSeq, _ = m.posts.Load(1)
		}
		m.blogSeq = blogSeq
		blogPage = m.posts.Current
		if blogPage < 1 {
			blogPage = 1
		}
	} else {
		target := m.posts.Current + delta
		seq, ok := m.posts.GoToPage(target)
		if !ok {
			return m, nil
		}
		m.blogSeq = seq
		blogPage = target
		userSeq, ok := m.users.Reload()
		if !ok {
			userSeq, _ = m.users.Load(1)
		}
		m.userSeq = userSeq
		userPage = m.users.Current
		if userPage < 1 {
			userPage = 1
		}
	}

	return m, m.fetch(m.lastTerm, m.userSeq, userPage, m.blogSeq, blogPage)
}

func (m Model) fetch(term string, userSeq, userPage, blogSeq, blogPage int) tea.Cmd {
	search := m.search
	return func() tea.Msg {
		res, err := search.Search(context.Background(), term, userPage, userPageSize, blogPage, blogPageSize)
		if err != nil {
			return errMsg{userSeq: userSeq, blogSeq: blogSeq, err: err}
		}
		return resultsMsg{userSeq: userSeq, blogSeq: blogSeq, res: res}
	}
}

func (m Model) activeLen() int {
	if m.active == usersHalf {
		return len(m.users.Items)
	}
	return len(m.posts.Items)
}

// Users returns the current user results.
func (m Model) Users() []domain.User {
	return m.users.Items
}

// Posts returns the current post results.
func (m Model) Posts() []domain.Post {
	return m.posts.Items
}
