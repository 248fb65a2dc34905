package blogmates

import (
	"context"
	"fmt"

	"github.com/blogmates/blogmates-tui/domain"
)

// followService implements app.FollowService against the blogmates API.
type followService struct {
	client *Client
}

// NewFollowService creates a FollowService backed by the given client.
func NewFollowService(client *Client) *followService {
	return &followService{client: client}
}

func (s *followService) SendRequest(ctx context.Context, receiverID int) error {
	if receiverID <= 0 {
		return fmt.Errorf("invalid receiver id")
	}
	body := struct {
		ReceiverID int `json:"receiver_id"`
	}{receiverID}
	if err := s.client.post(ctx, "/send-follow-request/", body, nil); err != nil {
		return fmt.Errorf("sending follow request: %w", err)
	}
	return nil
}

func (s *followService) PendingReceived(ctx context.Context) ([]domain.FollowRequest, error) {
	return s.pending(ctx, "/pending-follow-requests/")
}

func (s *followService) PendingSent(ctx context.Context) ([]domain.FollowRequest, error) {
	return s.pending(ctx, "/pending-sent-follow-requests/")
}

func (s *followService) pending(ctx context.Context, path string) ([]domain.FollowRequest, error) {
	var out []followRequestPayload
	if err := s.client.get(ctx, path, &out); err != nil {
		return nil, fmt.Errorf("fetching pending requests: %w", err)
	}
	reqs := make([]domain.FollowRequest, 0, len(out))
	for _, p := range out {
		reqs = append(reqs, p.toDomain())
	}
	return reqs, nil
}

func (s *followService) Accept(ctx context.Context, requestID int) error {
	if requestID <= 0 {
		return fmt.Errorf("invalid request id")
	}
	if err := s.client.post(ctx, fmt.Sprintf("/accept-follow-request/%d/", requestID), nil, nil); err != nil {
		return fmt.Errorf("accepting follow request: %w", err)
	}
	return nil
}

func (s *followService) Decline(ctx context.Context, requestID int) error {
	if requestID <= 0 {
		return fmt.Errorf("invalid request id")
	}
	if err := s.client.delete(ctx, fmt.Sprintf("/remove-follow-request/%d/", requestID)); err != nil {
		return fmt.Errorf("declining follow request: %w", err)
	}
	return nil
}

func (s *followService) Unfollow(ctx context.Context, userID int) error {
	if userID <= 0 {
		return fmt.Errorf("invalid user id")
	}
	if err := s.client.delete(ctx, fmt.Sprintf("/unfollow/%d/", userID)); err != nil {
		return fmt.Errorf("unfollowing user: %w", err)
	}
	return nil
}

func (s *followService) Followers(ctx context.Context) ([]domain.FollowEdge, error) {
	return s.edges(ctx, "/followers/")
}

func (s *followService) Following(ctx context.Context) ([]domain.FollowEdge, error) {
	return s.edges(ctx, "/following/")
}

func (s *followService) edges(ctx context.Context, path string) ([]domain.FollowEdge, error) {
	var out []struct {
		ID       int    `json:"id"`
		Username string `json:"username"`
	}
	if err := s.client.get(ctx, path, &out); err != nil {
		return nil, fmt.Errorf("fetching follow list: %w", err)
	}
	edges := make([]domain.FollowEdge, 0, len(out))
	for _, e := range out {
		edges = append(edges, domain.FollowEdge{ID: e.ID, Username: e.Username})
	}
	return edges, nil
}
