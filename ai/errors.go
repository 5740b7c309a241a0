package ai

import "errors"

var (
	// ErrNoChunks indicates a synthesis request with no input chunks.
	ErrNoChunks = errors.New("no text chunks provided")

	// ErrEmptyResponse indicates the model returned no choices.
	ErrEmptyResponse = errors.New("model returned no content")
)
