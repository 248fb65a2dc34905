package domain

import (
	"strings"
	"time"
)

// FriendshipStatus is the viewer's relationship to another user,
// as reported by the backend on profile records.
type FriendshipStatus string

const (
	FriendshipNone        FriendshipStatus = ""
	FriendshipRequestSent FriendshipStatus = "request_sent"
	FriendshipFollowing   FriendshipStatus = "following"
)

// User is a blogmates account. ID and Username are immutable identity;
// the rest are mutable profile fields owned by the backend.
type User struct {
	ID             int
	Username       string
	Email          string
	FirstName      string
	LastName       string
	Biography      string
	FollowerCount  int
	FollowingCount int
	Avatar         []byte // Raw image bytes; empty if the user has none.
	AvatarMIME     string
	Friendship     FriendshipStatus
}

// DisplayName returns the user's full name, falling back to the username.
func (u User) DisplayName() string {
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name == "" {
		return u.Username
	}
	return name
}

// FollowRequest is a pending edge in the follow graph. It is resolved
// (accepted or declined) exactly once.
type FollowRequest struct {
	ID         int
	SenderID   int
	SenderName string
	CreatedAt  time.Time
}

// FollowEdge is a single follower/following list entry.
type FollowEdge struct {
	ID       int
	Username string
}
