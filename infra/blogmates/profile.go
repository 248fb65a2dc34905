package blogmates

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/blogmates/blogmates-tui/app"
	"github.com/blogmates/blogmates-tui/domain"
)

// profileService implements app.ProfileService against the blogmates API.
type profileService struct {
	client *Client
}

// NewProfileService creates a ProfileService backed by the given client.
func NewProfileService(client *Client) *profileService {
	return &profileService{client: client}
}

func (s *profileService) CurrentUser(ctx context.Context) (domain.User, error) {
	var out userPayload
	if err := s.client.get(ctx, "/user/", &out); err != nil {
		return domain.User{}, fmt.Errorf("fetching current user: %w", err)
	}
	return out.toDomain(), nil
}

func (s *profileService) ProfileByUsername(ctx context.Context, username string) (domain.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return domain.User{}, fmt.Errorf("invalid username")
	}

	body := struct {
		Username string `json:"username"`
	}{username}

	var out userPayload
	if err := s.client.post(ctx, "/profile/", body, &out); err != nil {
		return domain.User{}, fmt.Errorf("fetching profile %s: %w", username, err)
	}
	return out.toDomain(), nil
}

func (s *profileService) ProfileByID(ctx context.Context, id int) (domain.User, error) {
	if id <= 0 {
		return domain.User{}, fmt.Errorf("invalid user id")
	}
	var out userPayload
	if err := s.client.get(ctx, fmt.Sprintf("/profile/?user_id=%d", id), &out); err != nil {
		return domain.User{}, fmt.Errorf("fetching profile %d: %w", id, err)
	}
	return out.toDomain(), nil
}

func (s *profileService) UpdateProfile(ctx context.Context, in app.ProfileUpdate) (domain.User, error) {
	body := map[string]any{}
	if in.Username != nil {
		body["username"] = *in.Username
	}
	if in.FirstName != nil {
		body["first_name"] = *in.FirstName
	}
	if in.LastName != nil {
		body["last_name"] = *in.LastName
	}
	if in.Biography != nil {
		body["biography"] = *in.Biography
	}
	if len(in.Avatar) > 0 {
		body["profile_picture"] = base64.StdEncoding.EncodeToString(in.Avatar)
		body["profile_picture_content_type"] = in.AvatarMIME
	}
	if len(body) == 0 {
		return domain.User{}, fmt.Errorf("nothing to update")
	}

	var out userPayload
	if err := s.client.patch(ctx, "/profile/", body, &out); err != nil {
		return domain.User{}, fmt.Errorf("updating profile: %w", err)
	}
	return out.toDomain(), nil
}
