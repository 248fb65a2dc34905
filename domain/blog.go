package domain

import (
	"strings"
	"time"
)

// Visibility is a post's access level.
type Visibility string

const (
	VisibilityPublic  Visibility = "public"
	VisibilityFriends Visibility = "friends"
	VisibilityJournal Visibility = "journal"
)

// Next cycles through visibility levels, for the compose form.
func (v Visibility) Next() Visibility {
	switch v {
	case VisibilityPublic:
		return VisibilityFriends
	case VisibilityFriends:
		return VisibilityJournal
	default:
		return VisibilityPublic
	}
}

// Post is a single blog entry.
type Post struct {
	ID         int
	Title      string
	Content    string
	Visibility Visibility
	AuthorID   int
	AuthorName string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Validate checks the fields the submit form duplicates from the backend.
func (p Post) Validate() error {
	if strings.TrimSpace(p.Title) == "" {
		return ErrEmptyTitle
	}
	if strings.TrimSpace(p.Content) == "" {
		return ErrEmptyContent
	}
	return nil
}

// Comment is scoped to a post and shares Post's ownership rules.
type Comment struct {
	ID         int
	PostID     int
	Content    string
	AuthorID   int
	AuthorName string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Like is a membership fact: (subject, user) pairs are unique and toggled,
// never edited.
type Like struct {
	UserID    int
	CreatedAt time.Time
}
