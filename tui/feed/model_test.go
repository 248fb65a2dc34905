package feed

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/blogmates/blogmates-tui/app"
	"github.com/blogmates/blogmates-tui/domain"
)

type stubBlog struct {
	page      domain.Page[domain.Post]
	pagesErr  error
	likeErr   error
	deleteErr error

	likes    map[int][]domain.Like
	comments map[int]int

	postsCalls  int
	likeCalls   int
	unlikeCalls int
	deleteCalls int
}

func (s *stubBlog) CreatePost(_ context.Context, title, content string, vis domain.Visibility) (domain.Post, error) {
	return domain.Post{ID: 99, Title: title, Content: content, Visibility: vis}, nil
}

func (s *stubBlog) Posts(context.Context, int, int) (domain.Page[domain.Post], error) {
	s.postsCalls++
	if s.pagesErr != nil {
		return domain.Page[domain.Post]{}, s.pagesErr
	}
	return s.page, nil
}

func (s *stubBlog) Post(_ context.Context, id int) (domain.Post, error) {
	return domain.Post{ID: id}, nil
}

func (s *stubBlog) DeletePost(context.Context, int) error {
	s.deleteCalls++
	return s.deleteErr
}

func (s *stubBlog) PostsByUser(context.Context, string, int, int) (domain.Page[domain.Post], error) {
	return s.page, s.pagesErr
}

func (s *stubBlog) CreateComment(_ context.Context, postID int, content string) (domain.Comment, error) {
	return domain.Comment{PostID: postID, Content: content}, nil
}

func (s *stubBlog) Comments(context.Context, int, int, int) (domain.Page[domain.Comment], error) {
	return domain.Page[domain.Comment]{}, nil
}

func (s *stubBlog) DeleteComment(context.Context, int, int) error { return nil }

func (s *stubBlog) CommentCount(_ context.Context, postID int) (int, error) {
	return s.comments[postID], nil
}

func (s *stubBlog) LikePost(context.Context, int) error {
	s.likeCalls++
	return s.likeErr
}

func (s *stubBlog) UnlikePost(context.Context, int) error {
	s.unlikeCalls++
	return s.likeErr
}

func (s *stubBlog) PostLikes(_ context.Context, postID int) ([]domain.Like, error) {
	return s.likes[postID], nil
}

func (s *stubBlog) PostLikeCount(_ context.Context, postID int) (int, error) {
	return len(s.likes[postID]), nil
}

func (s *stubBlog) LikeComment(context.Context, int) error   { return nil }
func (s *stubBlog) UnlikeComment(context.Context, int) error { return nil }

func (s *stubBlog) CommentLikes(context.Context, int) ([]domain.Like, error) {
	return nil, nil
}

func (s *stubBlog) CommentLikeCount(context.Context, int) (int, error) { return 0, nil }

type stubProfiles struct {
	user domain.User
	err  error
}

func (s *stubProfiles) CurrentUser(context.Context) (domain.User, error) { return s.user, s.err }

func (s *stubProfiles) ProfileByUsername(_ context.Context, name string) (domain.User, error) {
	if s.err != nil {
		return domain.User{}, s.err
	}
	return domain.User{ID: 42, Username: name}, nil
}

func (s *stubProfiles) ProfileByID(context.Context, int) (domain.User, error) {
	return s.user, s.err
}

func (s *stubProfiles) UpdateProfile(context.Context, app.ProfileUpdate) (domain.User, error) {
	return s.user, s.err
}

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func testSession() *app.Session {
	s := app.NewSession()
	s.SetAuthenticated(time.Time{})
	s.SetUser(domain.User{ID: 1, Username: "me"})
	return s
}

func twoPostPage() domain.Page[domain.Post] {
	return domain.Page[domain.Post]{
		Items: []domain.Post{
			{ID: 10, Title: "first", Content: "hello", AuthorID: 1, AuthorName: "me"},
			{ID: 11, Title: "second", Content: "world", AuthorID: 2, AuthorName: "ana"},
		},
		TotalCount: 2,
		TotalPages: 1,
		Number:     1,
		Size:       10,
	}
}

// loaded builds a model with one applied page.
func loaded(t *testing.T, blog *stubBlog) Model {
	t.Helper()
	m := New(blog, &stubProfiles{}, app.NewProfileCache(), testSession(), testLogger(), 10)
	m, cmd := m.Refresh()
	if cmd == nil {
		t.Fatalf("expected fetch command")
	}
	msg := cmd()
	res, ok := msg.(postsLoadedMsg)
	if !ok {
		t.Fatalf("expected postsLoadedMsg, got %T", msg)
	}
	m, _ = m.Update(res)
	return m
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func TestLoad_AppliesPage(t *testing.T) {
	blog := &stubBlog{page: twoPostPage()}
	m := loaded(t, blog)

	if len(m.Posts()) != 2 {
		t.Fatalf("expected 2 posts, got %d", len(m.Posts()))
	}
	if m.Loading() {
		t.Fatalf("expected loading cleared")
	}
	if m.CurrentPage() != 1 {
		t.Fatalf("expected page 1, got %d", m.CurrentPage())
	}
}

func TestLoad_StaleResponseDropped(t *testing.T) {
	blog := &stubBlog{page: twoPostPage()}
	m := New(blog, &stubProfiles{}, app.NewProfileCache(), testSession(), testLogger(), 10)

	m, cmd1 := m.Refresh()
	stale := cmd1().(postsLoadedMsg)

	m, cmd2 := m.Refresh()
	fresh := cmd2().(postsLoadedMsg)

	m, _ = m.Update(stale)
	if len(m.Posts()) != 0 {
		t.Fatalf("stale page should have been dropped")
	}
	m, _ = m.Update(fresh)
	if len(m.Posts()) != 2 {
		t.Fatalf("fresh page should have been applied")
	}
}

func TestLoadError_KeepsPriorItems(t *testing.T) {
	blog := &stubBlog{page: twoPostPage()}
	m := loaded(t, blog)

	blog.pagesErr = errors.New("boom")
	m, cmd := m.Refresh()
	m, _ = m.Update(cmd())

	if m.Err() == nil {
		t.Fatalf("expected error recorded")
	}
	if len(m.Posts()) != 2 {
		t.Fatalf("expected prior items kept, got %d", len(m.Posts()))
	}
}

func TestPageNavigation_OutOfRangeIsNoOp(t *testing.T) {
	blog := &stubBlog{page: twoPostPage()} // TotalPages == 1
	m := loaded(t, blog)

	calls := blog.postsCalls
	m, cmd := m.Update(keyMsg("right"))
	if cmd != nil {
		t.Fatalf("expected no command past the last page")
	}
	m, cmd = m.Update(keyMsg("left"))
	if cmd != nil {
		t.Fatalf("expected no command before page 1")
	}
	if blog.postsCalls != calls {
		t.Fatalf("expected no extra fetches")
	}
}

func TestLikeToggle_OptimisticAndReverts(t *testing.T) {
	blog := &stubBlog{page: twoPostPage()}
	m := loaded(t, blog)

	m, cmd := m.Update(keyMsg("l"))
	if cmd == nil {
		t.Fatalf("expected like command")
	}
	if !m.likedByMe[10] || m.likeCounts[10] != 1 {
		t.Fatalf("expected optimistic like")
	}

	// In-flight guard.
	if _, second := m.Update(keyMsg("l")); second != nil {
		t.Fatalf("expected no second command while in flight")
	}

	blog.likeErr = errors.New("boom")
	res := likeResultMsg{postID: 10, liked: true, err: blog.likeErr}
	m, _ = m.Update(res)
	if m.likedByMe[10] || m.likeCounts[10] != 0 {
		t.Fatalf("expected revert on failure")
	}
}

func TestDelete_RequiresConfirmAndReloads(t *testing.T) {
	blog := &stubBlog{page: twoPostPage()}
	m := loaded(t, blog)

	m, _ = m.Update(keyMsg("d"))
	if !m.confirmDelete {
		t.Fatalf("expected confirm prompt for own post")
	}

	m, cmd := m.Update(keyMsg("y"))
	if cmd == nil {
		t.Fatalf("expected delete command")
	}
	msg := cmd()
	if blog.deleteCalls != 1 {
		t.Fatalf("expected one delete call")
	}

	m, cmd = m.Update(msg)
	if cmd == nil {
		t.Fatalf("expected reload after delete")
	}
}

func TestDelete_NotOfferedForForeignPost(t *testing.T) {
	blog := &stubBlog{page: twoPostPage()}
	m := loaded(t, blog)

	m, _ = m.Update(keyMsg("down")) // cursor to ana's post
	m, _ = m.Update(keyMsg("d"))
	if m.confirmDelete {
		t.Fatalf("delete should not be offered for another user's post")
	}
}

func TestOptimisticCreate_SuccessReloadsPage(t *testing.T) {
	blog := &stubBlog{page: twoPostPage()}
	m := loaded(t, blog)

	m, _ = m.Update(AddOptimisticPostMsg{LocalID: "tmp-1", Post: domain.Post{Title: "draft"}})
	if len(m.pending) != 1 {
		t.Fatalf("expected one pending item")
	}

	m, cmd := m.Update(CreateResultMsg{LocalID: "tmp-1", Post: domain.Post{ID: 12}})
	if len(m.pending) != 0 {
		t.Fatalf("expected pending cleared on success")
	}
	if cmd == nil {
		t.Fatalf("expected reload command")
	}
}

func TestOptimisticCreate_FailureMarksItem(t *testing.T) {
	blog := &stubBlog{page: twoPostPage()}
	m := loaded(t, blog)

	m, _ = m.Update(AddOptimisticPostMsg{LocalID: "tmp-1", Post: domain.Post{Title: "draft"}})
	m, _ = m.Update(CreateResultMsg{LocalID: "tmp-1", Err: errors.New("boom")})

	if len(m.pending) != 1 || m.pending[0].Status != statusFailed {
		t.Fatalf("expected failed pending item, got %+v", m.pending)
	}
}

func TestEnter_EmitsOpenPost(t *testing.T) {
	blog := &stubBlog{page: twoPostPage()}
	m := loaded(t, blog)

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

func TestMeta_StaleSeqDropped(t *testing.T) {
	blog := &stubBlog{
		page:     twoPostPage(),
		likes:    map[int][]domain.Like{10: {{UserID: 1}}},
		comments: map[int]int{10: 3},
	}
	m := loaded(t, blog)

	metaCmd := m.fetchMeta(m.lastSeq, m.Posts())
	meta := metaCmd().(metaLoadedMsg)

	// A newer load supersedes the displayed page.
	m, cmd := m.Refresh()
	m, _ = m.Update(cmd().(postsLoadedMsg))

	m, _ = m.Update(meta)
	if m.commentCounts[10] == 3 {
		t.Fatalf("stale meta should not apply")
	}

	fresh := m.fetchMeta(m.lastSeq, m.Posts())().(metaLoadedMsg)
	m, _ = m.Update(fresh)
	if m.likeCounts[10] != 1 || !m.likedByMe[10] || m.commentCounts[10] != 3 {
		t.Fatalf("expected fresh meta applied: %+v", m.likeCounts)
	}
}

func TestFetchAuthors_FailureIsLoggedNotFatal(t *testing.T) {
	blog := &stubBlog{page: twoPostPage()}
	var buf bytes.Buffer
	log := logrus.New()
	log.SetOutput(&buf)

	cache := app.NewProfileCache()
	m := New(blog, &stubProfiles{err: errors.New("profile down")}, cache, testSession(), log, 10)

	cmd := m.fetchAuthors(twoPostPage().Items)
	if cmd == nil {
		t.Fatalf("expected author fetch")
	}
	if _, ok := cmd().(authorsLoadedMsg); !ok {
		t.Fatalf("failed lookups must still complete the fetch")
	}
	if _, ok := cache.Get("ana"); ok {
		t.Fatalf("failed lookup must leave the cache cold")
	}
	if out := buf.String(); !strings.Contains(out, "ana") || !strings.Contains(out, "profile down") {
		t.Fatalf("expected skipped lookup logged, got %q", out)
	}
}

func TestFetchAuthors_WarmsCacheOnce(t *testing.T) {
	blog := &stubBlog{page: twoPostPage()}
	cache := app.NewProfileCache()
	m := New(blog, &stubProfiles{}, cache, testSession(), testLogger(), 10)

	cmd := m.fetchAuthors(twoPostPage().Items)
	if cmd == nil {
		t.Fatalf("expected author fetch for uncached names")
	}
	cmd()

	if _, ok := cache.Get("ana"); !ok {
		t.Fatalf("expected ana cached")
	}
	if again := m.fetchAuthors(twoPostPage().Items); again != nil {
		t.Fatalf("expected no refetch once cached")
	}
}
