package search

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/blogmates/blogmates-tui/app"
	"github.com/blogmates/blogmates-tui/domain"
)

type stubSearch struct {
	res   app.SearchResult
	err   error
	calls int

	lastQuery    string
	lastUserPage int
	lastBlogPage int
}

func (s *stubSearch) Search(_ context.Context, query string, userPage, userSize, blogPage, blogSize int) (app.SearchResult, error) {
	s.calls++
	s.lastQuery = query
	s.lastUserPage = userPage
	s.lastBlogPage = blogPage
	if s.err != nil {
		return app.SearchResult{}, s.err
	}
	res := s.res
	res.Users.Number = userPage
	res.Posts.Number = blogPage
	return res, nil
}

func twoHalfResult() app.SearchResult {
	return app.SearchResult{
		Users: domain.Page[domain.User]{
			Items:      []domain.User{{ID: 2, Username: "ana"}, {ID: 3, Username: "bob"}},
			TotalCount: 2,
			TotalPages: 2,
			Number:     1,
			Size:       userPageSize,
		},
		Posts: domain.Page[domain.Post]{
			Items:      []domain.Post{{ID: 10, Title: "hello", AuthorName: "ana"}},
			TotalCount: 1,
			TotalPages: 3,
			Number:     1,
			Size:       blogPageSize,
		},
	}
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func typeText(m Model, text string) Model {
	for _, r := range text {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

func searched(t *testing.T, svc *stubSearch) Model {
	t.Helper()
	m := New(svc)
	m = typeText(m, "go")
	m, cmd := m.Update(keyMsg("enter"))
	if cmd == nil {
		t.Fatalf("expected search command")
	}
	m, _ = m.Update(cmd())
	return m
}

func TestSearch_EmptyQueryIsNoOp(t *testing.T) {
	svc := &stubSearch{res: twoHalfResult()}
	m := New(svc)

	_, cmd := m.Update(keyMsg("enter"))
	if cmd != nil {
		t.Fatalf("expected no command for empty query")
	}
	if svc.calls != 0 {
		t.Fatalf("search should not be called")
	}
}

func TestSearch_PopulatesBothHalves(t *testing.T) {
	svc := &stubSearch{res: twoHalfResult()}
	m := searched(t, svc)

	if svc.lastQuery != "go" {
		t.Fatalf("unexpected query: %q", svc.lastQuery)
	}
	if len(m.Users()) != 2 || len(m.Posts()) != 1 {
		t.Fatalf("expected both halves populated")
	}
	if m.users.TotalPages != 2 || m.posts.TotalPages != 3 {
		t.Fatalf("expected page metadata applied")
	}
}

func TestSearch_HalvesPageIndependently(t *testing.T) {
	svc := &stubSearch{res: twoHalfResult()}
	m := searched(t, svc)

	// Page the posts half; users stay on their page.
	m, _ = m.Update(keyMsg("tab")) // focus posts
	m, cmd := m.Update(keyMsg("right"))
	if cmd == nil {
		t.Fatalf("expected page command")
	}
	m, _ = m.Update(cmd())

	if svc.lastBlogPage != 2 {
		t.Fatalf("expected blog page 2, got %d", svc.lastBlogPage)
	}
	if svc.lastUserPage != 1 {
		t.Fatalf("expected user page kept at 1, got %d", svc.lastUserPage)
	}
	if m.posts.Current != 2 || m.users.Current != 1 {
		t.Fatalf("unexpected pages: users=%d posts=%d", m.users.Current, m.posts.Current)
	}
}

func TestSearch_PageOutOfRangeIsNoOp(t *testing.T) {
	svc := &stubSearch{res: twoHalfResult()}
	m := searched(t, svc)

	calls := svc.calls
	// Users half has 2 pages; going left from page 1 is a no-op.
	_, cmd := m.Update(keyMsg("left"))
	if cmd != nil {
		t.Fatalf("expected no command before page 1")
	}
	if svc.calls != calls {
		t.Fatalf("expected no extra search calls")
	}
}

func TestSearch_StaleResultDropped(t *testing.T) {
	svc := &stubSearch{res: twoHalfResult()}
	m := searched(t, svc)

	// Issue two new searches; the first response is stale.
	m, _ = m.Update(keyMsg("/"))
	m = typeText(m, "x")
	m, cmd1 := m.Update(keyMsg("enter"))
	stale := cmd1()

	m, _ = m.Update(keyMsg("/"))
	m = typeText(m, "y")
	m, cmd2 := m.Update(keyMsg("enter"))
	fresh := cmd2()

	m, _ = m.Update(stale)
	if len(m.Users()) != 0 {
		t.Fatalf("stale results should be dropped")
	}
	m, _ = m.Update(fresh)
	if len(m.Users()) != 2 {
		t.Fatalf("fresh results should apply")
	}
}

func TestSearch_ErrorRecordedOnBothHalves(t *testing.T) {
	svc := &stubSearch{res: twoHalfResult()}
	m := searched(t, svc)

	svc.err = errors.New("boom")
	m, _ = m.Update(keyMsg("/"))
	m = typeText(m, "z")
	m, cmd := m.Update(keyMsg("enter"))
	m, _ = m.Update(cmd())

	if m.users.Err == nil || m.posts.Err == nil {
		t.Fatalf("expected error on both halves")
	}
}

func TestOpen_UserEmitsProfile(t *testing.T) {
	svc := &stubSearch{res: twoHalfResult()}
	m := searched(t, svc)

	_, cmd := m.Update(keyMsg("enter"))
	if cmd == nil {
		t.Fatalf("expected open command")
	}
	msg, ok := cmd().(OpenProfileMsg)
	if !ok {
		t.Fatalf("expected OpenProfileMsg, got %T", cmd())
	}
	if msg.Username != "ana" {
		t.Fatalf("unexpected username: %q", msg.Username)
	}
}

func TestOpen_PostEmitsPost(t *testing.T) {
	svc := &stubSearch{res: twoHalfResult()}
	m := searched(t, svc)

	m, _ = m.Update(keyMsg("tab"))
	_, cmd := m.Update(keyMsg("enter"))
	if cmd == nil {
		t.Fatalf("expected open command")
	}
	msg, ok := cmd().(OpenPostMsg)
	if !ok {
		t.Fatalf("expected OpenPostMsg, got %T", cmd())
	}
	if msg.Post.ID != 10 {
		t.Fatalf("unexpected post: %+v", msg.Post)
	}
}
