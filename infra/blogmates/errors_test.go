package blogmates

import (
	"errors"
	"fmt"
	"testing"
)

func TestNewRequestError_PrefersErrorField(t *testing.T) {
	e := newRequestError(400, []byte(`{"error": "bad title", "message": "ignored"}`))
	if e.Message != "bad title" {
		t.Fatalf("expected error field, got %q", e.Message)
	}
}

func TestNewRequestError_FallsBackThroughFields(t *testing.T) {
	if e := newRequestError(400, []byte(`{"message": "taken"}`)); e.Message != "taken" {
		t.Fatalf("expected message field, got %q", e.Message)
	}
	if e := newRequestError(404, []byte(`{"detail": "Not found."}`)); e.Message != "Not found." {
		t.Fatalf("expected detail field, got %q", e.Message)
	}
	if e := newRequestError(500, []byte(`<html>oops</html>`)); e.Message != "" {
		t.Fatalf("non-JSON body must leave message empty, got %q", e.Message)
	}
}

func TestUserMessage_VerbatimWhenPresentElseFallback(t *testing.T) {
	withMsg := fmt.Errorf("creating post: %w", &RequestError{Status: 400, Message: "Title is required"})
	if got := UserMessage(withMsg, "Error creating post"); got != "Title is required" {
		t.Fatalf("expected verbatim backend message, got %q", got)
	}

	bare := fmt.Errorf("creating post: %w", &RequestError{Status: 500})
	if got := UserMessage(bare, "Error creating post"); got != "Error creating post" {
		t.Fatalf("expected fallback, got %q", got)
	}

	if got := UserMessage(errors.New("dial tcp: refused"), "Error creating post"); got != "Error creating post" {
		t.Fatalf("transport errors must use the fallback, got %q", got)
	}
}
