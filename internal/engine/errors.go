package engine

import (
	"errors"
	"fmt"
)

var (
	ErrNoClient        = errors.New("no language model client configured")
	ErrEmptyCompletion = errors.New("language model returned an empty reply")
)

// GenerationError describes why the remote path did not produce a reply.
type GenerationError struct {
	Stage string
	Err   error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("remote generation failed at %s: %v", e.Stage, e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }
