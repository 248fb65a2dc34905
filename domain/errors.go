package domain

import "errors"

var (
	// ErrUnauthorized indicates missing or invalid credentials.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrEmptyTitle indicates the user submitted a post without a title.
	ErrEmptyTitle = errors.New("title cannot be empty")

	// ErrEmptyContent indicates the user submitted a post without content.
	ErrEmptyContent = errors.New("content cannot be empty")

	// ErrEmptyComment indicates the user submitted an empty comment.
	ErrEmptyComment = errors.New("comment cannot be empty")
)
