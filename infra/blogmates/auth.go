package blogmates

import (
	"context"
	"fmt"
	"strings"

	"github.com/blogmates/blogmates-tui/app"
)

// authService implements app.AuthService against the blogmates API.
type authService struct {
	client *Client
}

// NewAuthService creates an AuthService backed by the given client.
func NewAuthService(client *Client) *authService {
	return &authService{client: client}
}

func (s *authService) SignUp(ctx context.Context, in app.SignUpInput) (string, error) {
	body := struct {
		Username  string `json:"username"`
		Email     string `json:"email"`
		Password  string `json:"password"`
		Password2 string `json:"password2"`
	}{in.Username, in.Email, in.Password, in.Password2}

	var out struct {
		Message string `json:"message"`
	}
	if err := s.client.post(ctx, "/signup/", body, &out); err != nil {
		return "", fmt.Errorf("signing up: %w", err)
	}
	return out.Message, nil
}

func (s *authService) LogIn(ctx context.Context, username, password string) (app.Tokens, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return app.Tokens{}, fmt.Errorf("username and password are required")
	}

	body := struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}{username, password}

	// The backend sets both tokens as cookies; the body copy is only kept
	// for claim inspection.
	var out struct {
		Access  string `json:"access"`
		Refresh string `json:"refresh"`
	}
	if err := s.client.post(ctx, tokenObtainPath, body, &out); err != nil {
		return app.Tokens{}, fmt.Errorf("logging in: %w", err)
	}
	return app.Tokens{Access: out.Access, Refresh: out.Refresh}, nil
}

func (s *authService) LogOut(ctx context.Context) error {
	if err := s.client.post(ctx, "/logout/", nil, nil); err != nil {
		return fmt.Errorf("logging out: %w", err)
	}
	return nil
}

func (s *authService) Refresh(ctx context.Context) error {
	// Targets the refresh endpoint directly; the client never
	// refresh-retries this path.
	if err := s.client.post(ctx, refreshPath, nil, nil); err != nil {
		return fmt.Errorf("refreshing token: %w", err)
	}
	return nil
}
