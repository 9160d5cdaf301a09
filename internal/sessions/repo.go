package sessions

import (
	"context"
	"errors"
	"time"
)

var ErrNotFound = errors.New("unlock session not found")

type Repo interface {
	Create(ctx context.Context, s Session) error
	Get(ctx context.Context, id string) (Session, error)
	Touch(ctx context.Context, id string, at time.Time) error
	Count(ctx context.Context) (int64, error)
	DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// durable is implemented by repos whose sessions outlive the process.
type durable interface {
	Durable() bool
}
