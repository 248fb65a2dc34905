package login

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/blogmates/blogmates-tui/app"
	"github.com/blogmates/blogmates-tui/domain"
)

// --- Mode ---

type mode int

const (
	loginMode mode = iota
	signupMode
)

// --- Messages ---

// AuthenticatedMsg is sent to the root when a login round-trip succeeds.
// Access carries the raw access token so the root can read its expiry claim.
type AuthenticatedMsg struct {
	Access string
	User   domain.User
}

type loginResultMsg struct {
	tokens app.Tokens
	user   domain.User
	err    error
}

type signupResultMsg struct {
	message string
	err     error
}

// --- Model ---

// Model holds the state for the combined login/signup view.
type Model struct {
	auth     app.AuthService
	profiles app.ProfileService

	mode       mode
	inputs     []textinput.Model
	focus      int
	submitting bool
	status     string
	err        error
}

// Field order per mode. Login uses the first two, signup all four.
const (
	fieldUsername = iota
	fieldPassword
	fieldEmail
	fieldPassword2
)

// New creates the login view, starting in login mode.
func New(auth app.AuthService, profiles app.ProfileService) Model {
	username := textinput.New()
	username.Placeholder = "username"
	username.CharLimit = 64
	username.Focus()

	password := textinput.New()
	password.Placeholder = "password"
	password.EchoMode = textinput.EchoPassword
	password.CharLimit = 128

	email := textinput.New()
	email.Placeholder = "email"
	email.CharLimit = 128

	password2 := textinput.New()
	password2.Placeholder = "repeat password"
	password2.EchoMode = textinput.EchoPassword
	password2.CharLimit = 128

	return Model{
		auth:     auth,
		profiles: profiles,
		inputs:   []textinput.Model{username, password, email, password2},
	}
}

// Init starts the cursor blink.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) fieldCount() int {
	if m.mode == signupMode {
		return 4
	}
	return 2
}

// visibleFields returns the input indices in display order for the active mode.
func (m Model) visibleFields() []int {
	if m.mode == signupMode {
		return []int{fieldUsername, fieldEmail, fieldPassword, fieldPassword2}
	}
	return []int{fieldUsername, fieldPassword}
}

// Update handles messages for the login view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loginResultMsg:
		m.submitting = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		access := msg.tokens.Access
		user := msg.user
		return m, func() tea.Msg { return AuthenticatedMsg{Access: access, User: user} }

	case signupResultMsg:
		m.submitting = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		// Drop back to the login form with the username kept.
		m.mode = loginMode
		m.status = msg.message
		m.err = nil
		m.inputs[fieldPassword].SetValue("")
		m.inputs[fieldPassword2].SetValue("")
		m.focus = 1
		return m, m.refocus()

	case tea.KeyMsg:
		if m.submitting {
			return m, nil
		}
		switch msg.String() {
		case "tab", "down":
			m.focus = (m.focus + 1) % m.fieldCount()
			return m, m.refocus()
		case "shift+tab", "up":
			m.focus = (m.focus - 1 + m.fieldCount()) % m.fieldCount()
			return m, m.refocus()
		case "ctrl+s":
			m.toggleMode()
			return m, m.refocus()
		case "enter":
			if m.focus < m.fieldCount()-1 {
				m.focus++
				return m, m.refocus()
			}
			return m.submit()
		}
	}

	// Delegate typing to the focused input.
	fields := m.visibleFields()
	var cmd tea.Cmd
	idx := fields[m.focus]
	m.inputs[idx], cmd = m.inputs[idx].Update(msg)
	return m, cmd
}

func (m *Model) toggleMode() {
	if m.mode == loginMode {
		m.mode = signupMode
	} else {
		m.mode = loginMode
	}
	m.focus = 0
	m.err = nil
	m.status = ""
}

// refocus moves textinput focus to match m.focus.
func (m *Model) refocus() tea.Cmd {
	fields := m.visibleFields()
	var cmd tea.Cmd
	for i, idx := range fields {
		if i == m.focus {
			cmd = m.inputs[idx].Focus()
		} else {
			m.inputs[idx].Blur()
		}
	}
	return cmd
}

func (m Model) submit() (Model, tea.Cmd) {
	username := strings.TrimSpace(m.inputs[fieldUsername].Value())
	password := m.inputs[fieldPassword].Value()

	if m.mode == signupMode {
		in := app.SignUpInput{
			Username:  username,
			Email:     strings.TrimSpace(m.inputs[fieldEmail].Value()),
			Password:  password,
			Password2: m.inputs[fieldPassword2].Value(),
		}
		if in.Username == "" || in.Email == "" || in.Password == "" {
			m.err = errAllFieldsRequired
			return m, nil
		}
		if in.Password != in.Password2 {
			m.err = errPasswordMismatch
			return m, nil
		}
		m.submitting = true
		m.err = nil
		auth := m.auth
		return m, func() tea.Msg {
			message, err := auth.SignUp(context.Background(), in)
			return signupResultMsg{message: message, err: err}
		}
	}

	if username == "" || password == "" {
		m.err = errCredentialsRequired
		return m, nil
	}
	m.submitting = true
	m.err = nil
	auth := m.auth
	profiles := m.profiles
	return m, func() tea.Msg {
		tokens, err := auth.LogIn(context.Background(), username, password)
		if err != nil {
			return loginResultMsg{err: err}
		}
		user, err := profiles.CurrentUser(context.Background())
		if err != nil {
			return loginResultMsg{err: err}
		}
		return loginResultMsg{tokens: tokens, user: user}
	}
}

// Submitting reports whether a request is in flight.
func (m Model) Submitting() bool {
	return m.submitting
}

// Err returns the current form error, if any.
func (m Model) Err() error {
	return m.err
}
