package blogmates

import (
	"encoding/base64"
	"time"

	"github.com/blogmates/blogmates-tui/domain"
)

// Wire shapes, named after the backend's JSON fields.

type userPayload struct {
	ID                int    `json:"id"`
	Username          string `json:"username"`
	Email             string `json:"email"`
	FirstName         string `json:"first_name"`
	LastName          string `json:"last_name"`
	FollowerCount     int    `json:"follower_count"`
	FollowingCount    int    `json:"following_count"`
	ProfilePicture    string `json:"profile_picture"` // base64
	ProfilePictureCT  string `json:"profile_picture_content_type"`
	FriendshipStatus  string `json:"friendship_status"`
	Biography         string `json:"biography"`
}

func (p userPayload) toDomain() domain.User {
	avatar, err := base64.StdEncoding.DecodeString(p.ProfilePicture)
	if err != nil {
		avatar = nil
	}
	return domain.User{
		ID:             p.ID,
		Username:       p.Username,
		Email:          p.Email,
		FirstName:      p.FirstName,
		LastName:       p.LastName,
		Biography:      p.Biography,
		FollowerCount:  p.FollowerCount,
		FollowingCount: p.FollowingCount,
		Avatar:         avatar,
		AvatarMIME:     p.ProfilePictureCT,
		Friendship:     domain.FriendshipStatus(p.FriendshipStatus),
	}
}

type postPayload struct {
	ID         int    `json:"id"`
	Title      string `json:"title"`
	Content    string `json:"content"`
	Visibility string `json:"visibility"`
	Author     int    `json:"author"`
	AuthorName string `json:"author_name"`
	CreatedAt  string `json:"created_at"`
	UpdatedAt  string `json:"updated_at"`
}

func (p postPayload) toDomain() domain.Post {
	return domain.Post{
		ID:         p.ID,
		Title:      p.Title,
		Content:    p.Content,
		Visibility: domain.Visibility(p.Visibility),
		AuthorID:   p.Author,
		AuthorName: p.AuthorName,
		CreatedAt:  parseTime(p.CreatedAt),
		UpdatedAt:  parseTime(p.UpdatedAt),
	}
}

type commentPayload struct {
	ID         int    `json:"id"`
	BlogEntry  int    `json:"blog_entry"`
	Content    string `json:"content"`
	Author     int    `json:"author"`
	AuthorName string `json:"author_name"`
	CreatedAt  string `json:"created_at"`
	UpdatedAt  string `json:"updated_at"`
}

func (p commentPayload) toDomain(postID int) domain.Comment {
	id := p.BlogEntry
	if id == 0 {
		id = postID
	}
	return domain.Comment{
		ID:         p.ID,
		PostID:     id,
		Content:    p.Content,
		AuthorID:   p.Author,
		AuthorName: p.AuthorName,
		CreatedAt:  parseTime(p.CreatedAt),
		UpdatedAt:  parseTime(p.UpdatedAt),
	}
}

type likePayload struct {
	User      int    `json:"user"`
	CreatedAt string `json:"created_at"`
}

func (p likePayload) toDomain() domain.Like {
	return domain.Like{UserID: p.User, CreatedAt: parseTime(p.CreatedAt)}
}

type followRequestPayload struct {
	ID         int    `json:"id"`
	SenderID   int    `json:"sender_id"`
	SenderName string `json:"sender_name"`
	CreatedAt  string `json:"created_at"`
}

func (p followRequestPayload) toDomain() domain.FollowRequest {
	return domain.FollowRequest{
		ID:         p.ID,
		SenderID:   p.SenderID,
		SenderName: p.SenderName,
		CreatedAt:  parseTime(p.CreatedAt),
	}
}

// pagePayload is the backend's paginated envelope. current_page and
// page_size are not always echoed, so toPage falls back to the request
// parameters.
type pagePayload[T any] struct {
	Count       int `json:"count"`
	TotalPages  int `json:"total_pages"`
	CurrentPage int `json:"current_page"`
	PageSize    int `json:"page_size"`
	Results     []T `json:"results"`
}

func toPage[T, U any](p pagePayload[T], page, size int, conv func(T) U) domain.Page[U] {
	items := make([]U, 0, len(p.Results))
	for _, r := range p.Results {
		items = append(items, conv(r))
	}
	number := p.CurrentPage
	if number == 0 {
		number = page
	}
	pageSize := p.PageSize
	if pageSize == 0 {
		pageSize = size
	}
	return domain.Page[U]{
		Items:      items,
		TotalCount: p.Count,
		TotalPages: p.TotalPages,
		Number:     number,
		Size:       pageSize,
	}
}

// parseTime is best-effort; list rendering tolerates the zero time.
func parseTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
