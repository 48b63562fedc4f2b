package apperrors

import "errors"

// Common errors
var (
	// Validation errors
	ErrInvalidInput = errors.New("invalid input")

	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrPermissionDenied   = errors.New("permission denied")
)

// Student errors
var (
	ErrStudentNotFound          = errors.New("student not found")
	ErrStudentAlreadyRegistered = errors.New("register number already registered")
)

// Voting errors
var (
	ErrInvalidCandidate = errors.New("unrecognized candidate")
	ErrAlreadyVoted     = errors.New("student has already voted")
	ErrVotingClosed     = errors.New("voting is not open")
)
