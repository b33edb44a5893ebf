package application

import "errors"

// Service-level failures. Handlers translate these to HTTP statuses and
// the fixed messages the API exposes.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrTokenExpired       = errors.New("expired verification token")
	ErrAlreadyVerified    = errors.New("email already verified")
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("email already registered")

	ErrMovieNotFound  = errors.New("movie not found")
	ErrDuplicateMovie = errors.New("movie with this title and release date already exists")

	ErrCommentNotFound = errors.New("comment not found")
	ErrReplyToReply    = errors.New("replies to replies are not allowed")
)
