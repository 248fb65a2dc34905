package compose

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/blogmates/blogmates-tui/domain"
	"github.com/blogmates/blogmates-tui/infra/editor"
)

// --- Messages ---

// DoneMsg is sent when composing is complete (submit or cancel).
type DoneMsg struct {
	Title      string
	Content    string
	Visibility domain.Visibility
	Cancelled  bool
}

// editorFinishedMsg is sent after the external editor exits.
type editorFinishedMsg struct {
	tmpPath string
	err     error
}

// --- Model ---

type focusArea int

const (
	focusTitle focusArea = iota
	focusContent
)

// Model holds the state for the compose view.
type Model struct {
	editor *editor.EnvEditor

	title      textinput.Model
	content    textarea.Model
	visibility domain.Visibility
	focus      focusArea
	err        error
}

// New creates a compose model for a fresh post.
func New(ed *editor.EnvEditor) Model {
	ti := textinput.New()
	ti.Placeholder = "Title"
	ti.CharLimit = 200
	ti.Focus()

	ta := textarea.New()
	ta.Placeholder = "What's on your mind?"
	ta.SetWidth(72)
	ta.SetHeight(10)

	return Model{
		editor:     ed,
		title:      ti,
		content:    ta,
		visibility: domain.VisibilityPublic,
	}
}

// Init starts the cursor blink.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages for the compose view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case editorFinishedMsg:
		if msg.err != nil {
			m.err = fmt.Errorf("editor: %w", msg.err)
			return m, nil
		}
		content, err := m.editor.ReadContent(msg.tmpPath)
		if err != nil {
			m.err = err
			return m, nil
		}
		if content != "" {
			m.content.SetValue(content)
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, done(DoneMsg{Cancelled: true})

		case "tab":
			if m.focus == focusTitle {
				m.focus = focusContent
				m.title.Blur()
				return m, m.content.Focus()
			}
			m.focus = focusTitle
			m.content.Blur()
			return m, m.title.Focus()

		case "ctrl+v":
			m.visibility = m.visibility.Next()
			return m, nil

		case "ctrl+e":
			return m, m.launchEditor()

		case "ctrl+d":
			return m.submit()

		case "enter":
			// Enter in the title jumps to the body; in the body it's a newline.
			if m.focus == focusTitle {
				m.focus = focusContent
				m.title.Blur()
				return m, m.content.Focus()
			}
		}
	}

	var cmd tea.Cmd
	if m.focus == focusTitle {
		m.title, cmd = m.title.Update(msg)
	} else {
		m.content, cmd = m.content.Update(msg)
	}
	return m, cmd
}

func (m Model) submit() (Model, tea.Cmd) {
	draft := domain.Post{
		Title:      strings.TrimSpace(m.title.Value()),
		Content:    strings.TrimSpace(m.content.Value()),
		Visibility: m.visibility,
	}
	if err := draft.Validate(); err != nil {
		m.err = err
		return m, nil
	}
	return m, done(DoneMsg{
		Title:      draft.Title,
		Content:    draft.Content,
		Visibility: draft.Visibility,
	})
}

// launchEditor hands the body draft to $EDITOR via tea.ExecProcess, which
// suspends Bubble Tea's raw terminal mode while the editor runs.
func (m *Model) launchEditor() tea.Cmd {
	cmd, tmpPath, err := m.editor.Cmd(m.content.Value())
	if err != nil {
		return func() tea.Msg {
			return editorFinishedMsg{err: fmt.Errorf("preparing editor: %w", err)}
		}
	}
	return tea.ExecProcess(cmd, func(err error) tea.Msg {
		return editorFinishedMsg{tmpPath: tmpPath, err: err}
	})
}

// Err returns the current form error, if any.
func (m Model) Err() error {
	return m.err
}

// done wraps a DoneMsg into a tea.Cmd for immediate delivery.
func done(msg DoneMsg) tea.Cmd {
	return func() tea.Msg { return msg }
}
