package service

import "errors"

var (
	// ErrSessionNotFound is returned for unknown session ids
	ErrSessionNotFound = errors.New("session not found")
	// ErrUnsupportedFile is returned for uploads that are not CSV, image or MP4 files
	ErrUnsupportedFile = errors.New("unsupported file type")
	// ErrExampleNotFound is returned for names missing from the example catalog
	ErrExampleNotFound = errors.New("example not found")
)
