package session

import "errors"

var (
	// ErrUserNotFound is returned for names no loaded file has created
	ErrUserNotFound = errors.New("user not found")
	// ErrCodeNotFound is returned for code names with no loaded table
	ErrCodeNotFound = errors.New("code not found")
)
