package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/blogmates/blogmates-tui/app"
	"github.com/blogmates/blogmates-tui/domain"
	"github.com/blogmates/blogmates-tui/infra/config"
	"github.com/blogmates/blogmates-tui/infra/editor"
	"github.com/blogmates/blogmates-tui/tui/common"
	"github.com/blogmates/blogmates-tui/tui/compose"
	"github.com/blogmates/blogmates-tui/tui/feed"
	"github.com/blogmates/blogmates-tui/tui/login"
	"github.com/blogmates/blogmates-tui/tui/post"
	"github.com/blogmates/blogmates-tui/tui/profile"
	"github.com/blogmates/blogmates-tui/tui/search"
)

// Deps holds all dependencies the TUI needs. Plain struct, not a DI
// container.
type Deps struct {
	Auth     app.AuthService
	Profiles app.ProfileService
	Follow   app.FollowService
	Blog     app.BlogService
	Search   app.SearchService

	Session *app.Session
	Cache   *app.ProfileCache
	Editor  *editor.EnvEditor
	Log     *logrus.Logger

	// TokenExpiry reads the expiry claim from an access token; zero time
	// when the token is unreadable.
	TokenExpiry func(access string) time.Time

	PageSize  int
	StatePath string
	LastView  string
}

// AuthExpiredMsg is injected from outside the program (via Program.Send)
// when a request's token refresh failed for good.
type AuthExpiredMsg struct{}

type activeView int

const (
	loginView activeView = iota
	feedView
	composeView
	postView
	profileView
	searchView
)

type bootstrapMsg struct {
	info app.SessionInfo
}

type createDoneMsg struct {
	localID string
	post    domain.Post
	err     error
}

// App is the root Bubble Tea model. It routes between sub-views and owns
// the session lifecycle.
type App struct {
	deps   Deps
	active activeView
	back   []activeView // View stack for esc navigation.

	booting bool

	login   login.Model
	feed    feed.Model
	compose compose.Model
	post    post.Model
	profile profile.Model
	search  search.Model

	keys    common.KeyMap
	spinner spinner.Model
	status  string // Transient status message.
}

// NewApp creates the root model with all dependencies wired.
func NewApp(deps Deps) App {
	s := spinner.New()
	s.Spinner = spinner.Dot

	return App{
		deps:    deps,
		active:  loginView,
		booting: true,
		login:   login.New(deps.Auth, deps.Profiles),
		keys:    common.DefaultKeyMap(),
		spinner: s,
	}
}

// Init attempts a silent refresh before showing anything interactive.
func (a App) Init() tea.Cmd {
	deps := a.deps
	return tea.Batch(
		func() tea.Msg {
			info := deps.Session.Bootstrap(context.Background(), deps.Auth, deps.Profiles)
			return bootstrapMsg{info: info}
		},
		a.spinner.Tick,
	)
}

// Update handles messages and routes to the active sub-model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case bootstrapMsg:
		a.booting = false
		if msg.info.State == app.StateAuthenticated {
			a.deps.Log.WithField("user", msg.info.User.Username).Info("session restored")
			return a.enterStartView()
		}
		a.active = loginView
		return a, a.login.Init()

	case AuthExpiredMsg:
		a.deps.Session.Clear()
		a.deps.Log.Warn("session expired")
		a.active = loginView
		a.back = nil
		a.status = "Session expired. Please log in again."
		a.login = login.New(a.deps.Auth, a.deps.Profiles)
		return a, a.login.Init()

	case login.AuthenticatedMsg:
		a.deps.Session.SetAuthenticated(a.deps.TokenExpiry(msg.Access))
		a.deps.Session.SetUser(msg.User)
		a.deps.Log.WithField("user", msg.User.Username).Info("logged in")
		a.status = ""
		return a.enterStartView()

	case tea.KeyMsg:
		if model, cmd, handled := a.handleGlobalKey(msg); handled {
			return model, cmd
		}

	case spinner.TickMsg:
		if a.booting {
			var cmd tea.Cmd
			a.spinner, cmd = a.spinner.Update(msg)
			return a, cmd
		}

	// --- Cross-view navigation ---

	case feed.OpenPostMsg:
		return a.openPost(msg.Post)
	case search.OpenPostMsg:
		return a.openPost(msg.Post)
	case profile.OpenPostMsg:
		return a.openPost(msg.Post)

	case feed.OpenProfileMsg:
		return a.openProfile(msg.Username)
	case post.OpenProfileMsg:
		return a.openProfile(msg.Username)
	case search.OpenProfileMsg:
		return a.openProfile(msg.Username)

	case post.BackMsg, profile.BackMsg, search.BackMsg:
		return a.goBack()

	// --- Compose round-trip ---

	case compose.DoneMsg:
		a.active = feedView
		if msg.Cancelled {
			a.status = "Cancelled."
			return a, nil
		}
		localID := uuid.NewString()
		draft := domain.Post{Title: msg.Title, Content: msg.Content, Visibility: msg.Visibility}
		a.feed, _ = a.feed.Update(feed.AddOptimisticPostMsg{LocalID: localID, Post: draft})
		a.status = "Publishing..."
		blog := a.deps.Blog
		return a, func() tea.Msg {
			p, err := blog.CreatePost(context.Background(), draft.Title, draft.Content, draft.Visibility)
			return createDoneMsg{localID: localID, post: p, err: err}
		}

	case createDoneMsg:
		if msg.err != nil {
			a.deps.Log.WithError(msg.err).Error("create post failed")
			a.status = "Error: " + msg.err.Error()
		} else {
			a.status = "Published!"
		}
		var cmd tea.Cmd
		a.feed, cmd = a.feed.Update(feed.CreateResultMsg{LocalID: msg.localID, Post: msg.post, Err: msg.err})
		return a, cmd

	case profile.LoggedOutMsg:
		a.deps.Session.Clear()
		a.deps.Log.Info("logged out")
		a.active = loginView
		a.back = nil
		a.status = ""
		a.login = login.New(a.deps.Auth, a.deps.Profiles)
		return a, a.login.Init()
	}

	return a.delegate(msg)
}

// handleGlobalKey covers quit and top-level view switching. Views with
// focused text inputs never reach here for printable keys because those
// views run first in delegate order only for non-key messages; so global
// keys are limited to control chords and the feed's nav keys.
func (a App) handleGlobalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd, bool) {
	if msg.String() == "ctrl+c" {
		a.saveUIState()
		return a, tea.Quit, true
	}

	// Remaining globals only make sense on the feed, which has no text
	// input to swallow them. A pending delete confirmation owns the
	// keyboard.
	if a.active != feedView || a.booting || a.feed.ConfirmingDelete() {
		return a, nil, false
	}

	switch {
	case key.Matches(msg, a.keys.Quit):
		a.saveUIState()
		return a, tea.Quit, true

	case key.Matches(msg, a.keys.New):
		a.status = ""
		a.compose = compose.New(a.deps.Editor)
		a.active = composeView
		return a, a.compose.Init(), true

	case key.Matches(msg, a.keys.Search):
		a.status = ""
		a.search = search.New(a.deps.Search)
		a.back = append(a.back, a.active)
		a.active = searchView
		return a, a.search.Init(), true

	case key.Matches(msg, a.keys.Profile):
		model, cmd := a.pushProfile("")
		return model, cmd, true
	}

	return a, nil, false
}

func (a App) enterStartView() (tea.Model, tea.Cmd) {
	a.back = nil
	a.feed = feed.New(a.deps.Blog, a.deps.Profiles, a.deps.Cache, a.deps.Session, a.deps.Log, a.deps.PageSize)
	a.active = feedView
	initCmd := a.feed.Init()

	switch a.deps.LastView {
	case "search":
		a.search = search.New(a.deps.Search)
		a.back = append(a.back, feedView)
		a.active = searchView
		return a, tea.Batch(initCmd, a.search.Init())
	case "profile":
		model, cmd := a.pushProfile("")
		root := model.(App)
		return root, tea.Batch(initCmd, cmd)
	default:
		return a, initCmd
	}
}

func (a App) openPost(p domain.Post) (tea.Model, tea.Cmd) {
	a.post = post.New(a.deps.Blog, a.deps.Profiles, a.deps.Session, p, a.deps.PageSize)
	a.back = append(a.back, a.active)
	a.active = postView
	return a, a.post.Init()
}

func (a App) openProfile(username string) (tea.Model, tea.Cmd) {
	return a.pushProfile(username)
}

func (a App) pushProfile(username string) (tea.Model, tea.Cmd) {
	a.profile = profile.New(a.deps.Auth, a.deps.Profiles, a.deps.Follow, a.deps.Blog, a.deps.Cache, a.deps.Session, username, a.deps.PageSize)
	a.back = append(a.back, a.active)
	a.active = profileView
	return a, a.profile.Init()
}

func (a App) goBack() (tea.Model, tea.Cmd) {
	if len(a.back) == 0 {
		a.active = feedView
		return a, nil
	}
	a.active = a.back[len(a.back)-1]
	a.back = a.back[:len(a.back)-1]
	return a, nil
}

func (a App) saveUIState() {
	view := "feed"
	switch a.active {
	case searchView:
		view = "search"
	case profileView:
		view = "profile"
	}
	if a.deps.StatePath == "" {
		return
	}
	if err := config.SaveUIState(a.deps.StatePath, config.UIState{LastView: view, PageSize: a.deps.PageSize}); err != nil {
		a.deps.Log.WithError(err).Warn("saving ui state failed")
	}
}

// delegate routes any unhandled message to the active sub-model.
func (a App) delegate(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.active {
	case loginView:
		a.login, cmd = a.login.Update(msg)
	case feedView:
		a.feed, cmd = a.feed.Update(msg)
	case composeView:
		a.compose, cmd = a.compose.Update(msg)
	case postView:
		a.post, cmd = a.post.Update(msg)
	case profileView:
		a.profile, cmd = a.profile.Update(msg)
	case searchView:
		a.search, cmd = a.search.Update(msg)
	}
	return a, cmd
}

// View renders the active sub-model.
func (a App) View() string {
	if a.booting {
		return "\n  " + a.spinner.View() + " Connecting...\n"
	}

	var s string
	switch a.active {
	case loginView:
		s = a.login.View()
	case feedView:
		s = a.feed.View()
	case composeView:
		s = a.compose.View()
	case postView:
		s = a.post.View()
	case profileView:
		s = a.profile.View()
	case searchView:
		s = a.search.View()
	}

	if a.status != "" {
		s += "\n" + common.StatusBarStyle.Render("  "+a.status)
	}
	return s
}
