package loaders

import "errors"

// Load failure taxonomy. ErrFetch covers reading the file from disk,
// ErrParse covers decoding its contents. Callers match with errors.Is.
var (
	ErrFetch = errors.New("asset fetch failed")
	ErrParse = errors.New("asset parse failed")
)
