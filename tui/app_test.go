package tui

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/blogmates/blogmates-tui/app"
	"github.com/blogmates/blogmates-tui/domain"
	"github.com/blogmates/blogmates-tui/infra/editor"
	"github.com/blogmates/blogmates-tui/tui/compose"
	"github.com/blogmates/blogmates-tui/tui/feed"
	"github.com/blogmates/blogmates-tui/tui/login"
	"github.com/blogmates/blogmates-tui/tui/post"
)

type stubAuth struct {
	refreshErr error
}

func (s *stubAuth) SignUp(context.Context, app.SignUpInput) (string, error) { return "", nil }

func (s *stubAuth) LogIn(context.Context, string, string) (app.Tokens, error) {
	return app.Tokens{Access: "acc"}, nil
}

func (s *stubAuth) LogOut(context.Context) error  { return nil }
func (s *stubAuth) Refresh(context.Context) error { return s.refreshErr }

type stubProfiles struct {
	user domain.User
	err  error
}

func (s *stubProfiles) CurrentUser(context.Context) (domain.User, error) { return s.user, s.err }

func (s *stubProfiles) ProfileByUsername(context.Context, string) (domain.User, error) {
	return s.user, s.err
}

func (s *stubProfiles) ProfileByID(context.Context, int) (domain.User, error) {
	return s.user, s.err
}

func (s *stubProfiles) UpdateProfile(context.Context, app.ProfileUpdate) (domain.User, error) {
	return s.user, s.err
}

type stubFollow struct{}

func (stubFollow) SendRequest(context.Context, int) error { return nil }

func (stubFollow) PendingReceived(context.Context) ([]domain.FollowRequest, error) {
	return nil, nil
}

func (stubFollow) PendingSent(context.Context) ([]domain.FollowRequest, error) { return nil, nil }
func (stubFollow) Accept(context.Context, int) error                           { return nil }
func (stubFollow) Decline(context.Context, int) error                          { return nil }
func (stubFollow) Unfollow(context.Context, int) error                         { return nil }
func (stubFollow) Followers(context.Context) ([]domain.FollowEdge, error)      { return nil, nil }
func (stubFollow) Following(context.Context) ([]domain.FollowEdge, error)      { return nil, nil }

type stubBlog struct {
	createErr   error
	createCalls int
}

func (s *stubBlog) CreatePost(_ context.Context, title, content string, vis domain.Visibility) (domain.Post, error) {
	s.createCalls++
	if s.createErr != nil {
		return domain.Post{}, s.createErr
	}
	return domain.Post{ID: 5, Title: title, Content: content, Visibility: vis}, nil
}

func (s *stubBlog) Posts(context.Context, int, int) (domain.Page[domain.Post], error) {
	return domain.Page[domain.Post]{TotalPages: 1, Number: 1}, nil
}

func (s *stubBlog) Post(context.Context, int) (domain.Post, error) { return domain.Post{}, nil }
func (s *stubBlog) DeletePost(context.Context, int) error          { return nil }

func (s *stubBlog) PostsByUser(context.Context, string, int, int) (domain.Page[domain.Post], error) {
	return domain.Page[domain.Post]{}, nil
}

func (s *stubBlog) CreateComment(context.Context, int, string) (domain.Comment, error) {
	return domain.Comment{}, nil
}

func (s *stubBlog) Comments(context.Context, int, int, int) (domain.Page[domain.Comment], error) {
	return domain.Page[domain.Comment]{}, nil
}

func (s *stubBlog) DeleteComment(context.Context, int, int) error  { return nil }
func (s *stubBlog) CommentCount(context.Context, int) (int, error) { return 0, nil }
func (s *stubBlog) LikePost(context.Context, int) error            { return nil }
func (s *stubBlog) UnlikePost(context.Context, int) error          { return nil }

func (s *stubBlog) PostLikes(context.Context, int) ([]domain.Like, error) { return nil, nil }
func (s *stubBlog) PostLikeCount(context.Context, int) (int, error)       { return 0, nil }
func (s *stubBlog) LikeComment(context.Context, int) error                { return nil }
func (s *stubBlog) UnlikeComment(context.Context, int) error              { return nil }

func (s *stubBlog) CommentLikes(context.Context, int) ([]domain.Like, error) { return nil, nil }
func (s *stubBlog) CommentLikeCount(context.Context, int) (int, error)       { return 0, nil }

type stubSearch struct{}

func (stubSearch) Search(context.Context, string, int, int, int, int) (app.SearchResult, error) {
	return app.SearchResult{}, nil
}

func discardLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func testDeps(auth *stubAuth, blog *stubBlog) Deps {
	return Deps{
		Auth:        auth,
		Profiles:    &stubProfiles{user: domain.User{ID: 1, Username: "me"}},
		Follow:      stubFollow{},
		Blog:        blog,
		Search:      stubSearch{},
		Session:     app.NewSession(),
		Cache:       app.NewProfileCache(),
		Editor:      editor.NewEnvEditor(),
		Log:         discardLogger(),
		TokenExpiry: func(string) time.Time { return time.Time{} },
		PageSize:    10,
	}
}

func TestBootstrap_RefreshFailureShowsLogin(t *testing.T) {
	deps := testDeps(&stubAuth{refreshErr: errors.New("401")}, &stubBlog{})
	a := NewApp(deps)

	info := deps.Session.Bootstrap(context.Background(), deps.Auth, deps.Profiles)
	model, _ := a.Update(bootstrapMsg{info: info})
	root := model.(App)

	if root.active != loginView {
		t.Fatalf("expected login view")
	}
	if deps.Session.Snapshot().State != app.StateUnauthenticated {
		t.Fatalf("expected unauthenticated session")
	}
}

func TestBootstrap_SilentRefreshEntersFeed(t *testing.T) {
	deps := testDeps(&stubAuth{}, &stubBlog{})
	a := NewApp(deps)

	info := deps.Session.Bootstrap(context.Background(), deps.Auth, deps.Profiles)
	model, cmd := a.Update(bootstrapMsg{info: info})
	root := model.(App)

	if root.active != feedView {
		t.Fatalf("expected feed view")
	}
	if cmd == nil {
		t.Fatalf("expected feed init command")
	}
	snap := deps.Session.Snapshot()
	if snap.State != app.StateAuthenticated || snap.User.Username != "me" {
		t.Fatalf("unexpected session: %+v", snap)
	}
}

func TestLogin_AuthenticatedEntersFeed(t *testing.T) {
	deps := testDeps(&stubAuth{refreshErr: errors.New("401")}, &stubBlog{})
	a := NewApp(deps)
	a.booting = false

	model, cmd := a.Update(login.AuthenticatedMsg{Access: "acc", User: domain.User{ID: 1, Username: "me"}})
	root := model.(App)

	if root.active != feedView {
		t.Fatalf("expected feed view")
	}
	if cmd == nil {
		t.Fatalf("expected feed init command")
	}
	if deps.Session.Snapshot().State != app.StateAuthenticated {
		t.Fatalf("expected authenticated session")
	}
}

func TestAuthExpired_ReturnsToLogin(t *testing.T) {
	deps := testDeps(&stubAuth{}, &stubBlog{})
	a := NewApp(deps)
	info := deps.Session.Bootstrap(context.Background(), deps.Auth, deps.Profiles)
	model, _ := a.Update(bootstrapMsg{info: info})
	a = model.(App)

	model, _ = a.Update(AuthExpiredMsg{})
	root := model.(App)

	if root.active != loginView {
		t.Fatalf("expected login view after expiry")
	}
	if deps.Session.Snapshot().State != app.StateUnauthenticated {
		t.Fatalf("expected session cleared")
	}
	if root.status == "" {
		t.Fatalf("expected expiry notice")
	}
}

func TestComposeDone_OptimisticCreateRoundTrip(t *testing.T) {
	blog := &stubBlog{}
	deps := testDeps(&stubAuth{}, blog)
	a := NewApp(deps)
	info := deps.Session.Bootstrap(context.Background(), deps.Auth, deps.Profiles)
	model, _ := a.Update(bootstrapMsg{info: info})
	a = model.(App)

	model, cmd := a.Update(compose.DoneMsg{Title: "t", Content: "c", Visibility: domain.VisibilityPublic})
	a = model.(App)
	if a.active != feedView {
		t.Fatalf("expected feed view")
	}
	if cmd == nil {
		t.Fatalf("expected create command")
	}

	res := cmd()
	done, ok := res.(createDoneMsg)
	if !ok {
		t.Fatalf("expected createDoneMsg, got %T", res)
	}
	if blog.createCalls != 1 {
		t.Fatalf("expected one create call")
	}

	model, _ = a.Update(done)
	a = model.(App)
	if a.status != "Published!" {
		t.Fatalf("unexpected status: %q", a.status)
	}
}

func TestComposeDone_CancelledSkipsCreate(t *testing.T) {
	blog := &stubBlog{}
	deps := testDeps(&stubAuth{}, blog)
	a := NewApp(deps)
	info := deps.Session.Bootstrap(context.Background(), deps.Auth, deps.Profiles)
	model, _ := a.Update(bootstrapMsg{info: info})
	a = model.(App)

	model, cmd := a.Update(compose.DoneMsg{Cancelled: true})
	a = model.(App)
	if cmd != nil {
		t.Fatalf("expected no command on cancel")
	}
	if blog.createCalls != 0 {
		t.Fatalf("create should not be called")
	}
}

func TestOpenPost_AndBack(t *testing.T) {
	deps := testDeps(&stubAuth{}, &stubBlog{})
	a := NewApp(deps)
	info := deps.Session.Bootstrap(context.Background(), deps.Auth, deps.Profiles)
	model, _ := a.Update(bootstrapMsg{info: info})
	a = model.(App)

	model, cmd := a.Update(feed.OpenPostMsg{Post: domain.Post{ID: 7, Title: "t"}})
	a = model.(App)
	if a.active != postView {
		t.Fatalf("expected post view")
	}
	if cmd == nil {
		t.Fatalf("expected post init command")
	}

	model, _ = a.Update(post.BackMsg{})
	a = model.(App)
	if a.active != feedView {
		t.Fatalf("expected return to feed")
	}
}
