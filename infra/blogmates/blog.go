package blogmates

import (
	"context"
	"fmt"
	"strings"

	"github.com/blogmates/blogmates-tui/domain"
)

// blogService implements app.BlogService against the blogmates API.
type blogService struct {
	client *Client
}

// NewBlogService creates a BlogService backed by the given client.
func NewBlogService(client *Client) *blogService {
	return &blogService{client: client}
}

func (s *blogService) CreatePost(ctx context.Context, title, content string, vis domain.Visibility) (domain.Post, error) {
	draft := domain.Post{Title: title, Content: content, Visibility: vis}
	if err := draft.Validate(); err != nil {
		return domain.Post{}, err
	}

	body := struct {
		Title      string `json:"title"`
		Content    string `json:"content"`
		Visibility string `json:"visibility"`
	}{strings.TrimSpace(title), content, string(vis)}

	var out postPayload
	if err := s.client.post(ctx, "/posts/", body, &out); err != nil {
		return domain.Post{}, fmt.Errorf("creating post: %w", err)
	}
	return out.toDomain(), nil
}

func (s *blogService) Posts(ctx context.Context, page, size int) (domain.Page[domain.Post], error) {
	var out pagePayload[postPayload]
	path := fmt.Sprintf("/posts/?page=%d&page_size=%d", page, size)
	if err := s.client.get(ctx, path, &out); err != nil {
		return domain.Page[domain.Post]{}, fmt.Errorf("fetching posts: %w", err)
	}
	return toPage(out, page, size, postPayload.toDomain), nil
}

func (s *blogService) Post(ctx context.Context, id int) (domain.Post, error) {
	if id <= 0 {
		return domain.Post{}, fmt.Errorf("invalid post id")
	}
	var out postPayload
	if err := s.client.get(ctx, fmt.Sprintf("/posts/%d/", id), &out); err != nil {
		return domain.Post{}, fmt.Errorf("fetching post %d: %w", id, err)
	}
	return out.toDomain(), nil
}

func (s *blogService) DeletePost(ctx context.Context, id int) error {
	if id <= 0 {
		return fmt.Errorf("invalid post id")
	}
	if err := s.client.delete(ctx, fmt.Sprintf("/posts/%d/", id)); err != nil {
		return fmt.Errorf("deleting post %d: %w", id, err)
	}
	return nil
}

func (s *blogService) PostsByUser(ctx context.Context, username string, page, size int) (domain.Page[domain.Post], error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return domain.Page[domain.Post]{}, fmt.Errorf("invalid username")
	}

	body := struct {
		Username string `json:"username"`
	}{username}

	var out pagePayload[postPayload]
	path := fmt.Sprintf("/user-posts/?page=%d&page_size=%d", page, size)
	if err := s.client.post(ctx, path, body, &out); err != nil {
		return domain.Page[domain.Post]{}, fmt.Errorf("fetching posts by %s: %w", username, err)
	}
	return toPage(out, page, size, postPayload.toDomain), nil
}

func (s *blogService) CreateComment(ctx context.Context, postID int, content string) (domain.Comment, error) {
	if postID <= 0 {
		return domain.Comment{}, fmt.Errorf("invalid post id")
	}
	if strings.TrimSpace(content) == "" {
		return domain.Comment{}, domain.ErrEmptyComment
	}

	body := struct {
		Content string `json:"content"`
	}{content}

	var out commentPayload
	if err := s.client.post(ctx, fmt.Sprintf("/posts/%d/comments/", postID), body, &out); err != nil {
		return domain.Comment{}, fmt.Errorf("creating comment: %w", err)
	}
	return out.toDomain(postID), nil
}

func (s *blogService) Comments(ctx context.Context, postID, page, size int) (domain.Page[domain.Comment], error) {
	if postID <= 0 {
		return domain.Page[domain.Comment]{}, fmt.Errorf("invalid post id")
	}
	var out pagePayload[commentPayload]
	path := fmt.Sprintf("/posts/%d/comments/?page=%d&page_size=%d", postID, page, size)
	if err := s.client.get(ctx, path, &out); err != nil {
		return domain.Page[domain.Comment]{}, fmt.Errorf("fetching comments: %w", err)
	}
	return toPage(out, page, size, func(p commentPayload) domain.Comment {
		return p.toDomain(postID)
	}), nil
}

func (s *blogService) DeleteComment(ctx context.Context, postID, commentID int) error {
	if postID <= 0 || commentID <= 0 {
		return fmt.Errorf("invalid comment reference")
	}
	if err := s.client.delete(ctx, fmt.Sprintf("/posts/%d/comments/%d/", postID, commentID)); err != nil {
		return fmt.Errorf("deleting comment %d: %w", commentID, err)
	}
	return nil
}

func (s *blogService) CommentCount(ctx context.Context, postID int) (int, error) {
	if postID <= 0 {
		return 0, fmt.Errorf("invalid post id")
	}
	var out struct {
		CommentCount int `json:"comment_count"`
	}
	if err := s.client.get(ctx, fmt.Sprintf("/posts/%d/comments/count/", postID), &out); err != nil {
		return 0, fmt.Errorf("fetching comment count: %w", err)
	}
	return out.CommentCount, nil
}

func (s *blogService) LikePost(ctx context.Context, postID int) error {
	return s.like(ctx, fmt.Sprintf("/posts/%d/like/", postID), postID)
}

func (s *blogService) UnlikePost(ctx context.Context, postID int) error {
	return s.unlike(ctx, fmt.Sprintf("/posts/%d/like/", postID), postID)
}

func (s *blogService) PostLikes(ctx context.Context, postID int) ([]domain.Like, error) {
	return s.likes(ctx, fmt.Sprintf("/posts/%d/likes/", postID), postID)
}

func (s *blogService) PostLikeCount(ctx context.Context, postID int) (int, error) {
	return s.likeCount(ctx, fmt.Sprintf("/posts/%d/likes/count/", postID), postID)
}

func (s *blogService) LikeComment(ctx context.Context, commentID int) error {
	return s.like(ctx, fmt.Sprintf("/comments/%d/like/", commentID), commentID)
}

func (s *blogService) UnlikeComment(ctx context.Context, commentID int) error {
	return s.unlike(ctx, fmt.Sprintf("/comments/%d/like/", commentID), commentID)
}

func (s *blogService) CommentLikes(ctx context.Context, commentID int) ([]domain.Like, error) {
	return s.likes(ctx, fmt.Sprintf("/comments/%d/likes/", commentID), commentID)
}

func (s *blogService) CommentLikeCount(ctx context.Context, commentID int) (int, error) {
	return s.likeCount(ctx, fmt.Sprintf("/comments/%d/likes/count/", commentID), commentID)
}

func (s *blogService) like(ctx context.Context, path string, id int) error {
	if id <= 0 {
		return fmt.Errorf("invalid subject id")
	}
	if err := s.client.post(ctx, path, nil, nil); err != nil {
		return fmt.Errorf("liking: %w", err)
	}
	return nil
}

func (s *blogService) unlike(ctx context.Context, path string, id int) error {
	if id <= 0 {
		return fmt.Errorf("invalid subject id")
	}
	if err := s.client.delete(ctx, path); err != nil {
		return fmt.Errorf("unliking: %w", err)
	}
	return nil
}

func (s *blogService) likes(ctx context.Context, path string, id int) ([]domain.Like, error) {
	if id <= 0 {
		return nil, fmt.Errorf("invalid subject id")
	}
	var out []likePayload
	if err := s.client.get(ctx, path, &out); err != nil {
		return nil, fmt.Errorf("fetching likes: %w", err)
	}
	likes := make([]domain.Like, 0, len(out))
	for _, p := range out {
		likes = append(likes, p.toDomain())
	}
	return likes, nil
}

func (s *blogService) likeCount(ctx context.Context, path string, id int) (int, error) {
	if id <= 0 {
		return 0, fmt.Errorf("invalid subject id")
	}
	var out struct {
		LikeCount int `json:"like_count"`
	}
	if err := s.client.get(ctx, path, &out); err != nil {
		return 0, fmt.Errorf("fetching like count: %w", err)
	}
	return out.LikeCount, nil
}
