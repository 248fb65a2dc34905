package app

import (
	"context"

	"github.com/blogmates/blogmates-tui/domain"
)

// SignUpInput carries the signup form fields. Password2 is verified by the
// backend, not here.
type SignUpInput struct {
	Username  string
	Email     string
	Password  string
	Password2 string
}

// Tokens is the login response body. The backend also sets both tokens as
// cookies; the body copy is only used to read claims client-side.
type Tokens struct {
	Access  string
	Refresh string
}

// ProfileUpdate holds the mutable profile fields. Nil pointers mean
// "leave unchanged".
type ProfileUpdate struct {
	Username   *string
	FirstName  *string
	LastName   *string
	Biography  *string
	Avatar     []byte
	AvatarMIME string
}

// SearchResult is the two independently paginated halves of a search.
type SearchResult struct {
	Users domain.Page[domain.User]
	Posts domain.Page[domain.Post]
}

// AuthService covers signup, login, logout and silent refresh.
type AuthService interface {
	SignUp(ctx context.Context, in SignUpInput) (string, error)
	LogIn(ctx context.Context, username, password string) (Tokens, error)
	LogOut(ctx context.Context) error

	// Refresh silently renews the access token using the refresh cookie.
	Refresh(ctx context.Context) error
}

// ProfileService reads and updates user records.
type ProfileService interface {
	// CurrentUser returns the authenticated user's own record.
	CurrentUser(ctx context.Context) (domain.User, error)

	ProfileByUsername(ctx context.Context, username string) (domain.User, error)
	ProfileByID(ctx context.Context, id int) (domain.User, error)
	UpdateProfile(ctx context.Context, in ProfileUpdate) (domain.User, error)
}

// FollowService manages the follow graph.
type FollowService interface {
	SendRequest(ctx context.Context, receiverID int) error
	PendingReceived(ctx context.Context) ([]domain.FollowRequest, error)
	PendingSent(ctx context.Context) ([]domain.FollowRequest, error)

	// Accept and Decline are one-shot; the affected aggregates must be
	// refetched afterwards rather than patched locally.
	Accept(ctx context.Context, requestID int) error
	Decline(ctx context.Context, requestID int) error

	Unfollow(ctx context.Context, userID int) error
	Followers(ctx context.Context) ([]domain.FollowEdge, error)
	Following(ctx context.Context) ([]domain.FollowEdge, error)
}

// BlogService covers posts, comments and likes.
type BlogService interface {
	CreatePost(ctx context.Context, title, content string, vis domain.Visibility) (domain.Post, error)
	Posts(ctx context.Context, page, size int) (domain.Page[domain.Post], error)
	Post(ctx context.Context, id int) (domain.Post, error)
	DeletePost(ctx context.Context, id int) error
	PostsByUser(ctx context.Context, username string, page, size int) (domain.Page[domain.Post], error)

	CreateComment(ctx context.Context, postID int, content string) (domain.Comment, error)
	Comments(ctx context.Context, postID, page, size int) (domain.Page[domain.Comment], error)
	DeleteComment(ctx context.Context, postID, commentID int) error
	CommentCount(ctx context.Context, postID int) (int, error)

	LikePost(ctx context.Context, postID int) error
	UnlikePost(ctx context.Context, postID int) error
	PostLikes(ctx context.Context, postID int) ([]domain.Like, error)
	PostLikeCount(ctx context.Context, postID int) (int, error)

	LikeComment(ctx context.Context, commentID int) error
	UnlikeComment(ctx context.Context, commentID int) error
	CommentLikes(ctx context.Context, commentID int) ([]domain.Like, error)
	CommentLikeCount(ctx context.Context, commentID int) (int, error)
}

// SearchService queries users and posts in one call.
type SearchService interface {
	Search(ctx context.Context, query string, userPage, userSize, blogPage, blogSize int) (SearchResult, error)
}
