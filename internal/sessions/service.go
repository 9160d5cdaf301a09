package sessions

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Service struct {
	Repo  Repo
	now   func() time.Time
	newID func() string
}

func NewService(repo Repo) *Service {
	return &Service{
		Repo:  repo,
		now:   func() time.Time { return time.Now().UTC() },
		newID: uuid.NewString,
	}
}

// Durable reports whether the registry outlives the process. A memory
// registry is emptied by every restart, so its absence of a session proves
// nothing about a signed token.
func (s *Service) Durable() bool {
	if s == nil {
		return false
	}
	d, ok := s.Repo.(durable)
	return ok && d.Durable()
}

// Start records a new unlock for the given client.
func (s *Service) Start(ctx context.Context, clientHash, userAgent string) (Session, error) {
	if s == nil || s.Repo == nil {
		return Session{}, errors.New("sessions service not configured")
	}
	if strings.TrimSpace(clientHash) == "" {
		return Session{}, errors.New("client hash is required")
	}
	now := s.now()
	session := Session{
		ID:         s.newID(),
		ClientHash: clientHash,
		UserAgent:  truncate(userAgent, 512),
		CreatedAt:  now,
		LastSeenAt: now,
	}
	if err := s.Repo.Create(ctx, session); err != nil {
		return Session{}, err
	}
	return session, nil
}

// Resume returns the session for id and refreshes its last-seen time.
func (s *Service) Resume(ctx context.Context, id string) (Session, error) {
	if s == nil || s.Repo == nil {
		return Session{}, errors.New("sessions service not configured")
	}
	if _, err := uuid.Parse(id); err != nil {
		return Session{}, ErrNotFound
	}
	session, err := s.Repo.Get(ctx, id)
	if err != nil {
		return Session{}, err
	}
	now := s.now()
	if err := s.Repo.Touch(ctx, id, now); err != nil {
		return Session{}, err
	}
	session.LastSeenAt = now
	return session, nil
}

// Count returns the number of recorded unlocks.
func (s *Service) Count(ctx context.Context) (int64, error) {
	if s == nil || s.Repo == nil {
		return 0, errors.New("sessions service not configured")
	}
	return s.Repo.Count(ctx)
}

// Prune deletes sessions not seen within maxAge.
func (s *Service) Prune(ctx context.Context, maxAge time.Duration) (int64, error) {
	if s == nil || s.Repo == nil {
		return 0, errors.New("sessions service not configured")
	}
	if maxAge <= 0 {
		return 0, errors.New("max age must be positive")
	}
	return s.Repo.DeleteBefore(ctx, s.now().Add(-maxAge))
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return strings.ToValidUTF8(s[:n], "")
}
