package repository

import (
	"context"
	"errors"
)

// ErrContentNotFound is returned by a ContentSource when the file does not exist.
var ErrContentNotFound = errors.New("content not found")

// ContentSource fetches raw lesson files by name.
type ContentSource interface {
	Name() string
	Fetch(ctx context.Context, file string) ([]byte, error)
}

type Metrics interface {
	RecordCalculation(profitable bool)
	RecordLessonLoad(source, result string)
	RecordError(kind string)
	RecordLatency(op string, seconds float64)
}
