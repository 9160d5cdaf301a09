// Package gate implements the single-password view gate.
//
// The gate is a UX deterrent for casual browsing, not an authorization
// mechanism: the unlocked flag lives with the client and the secret is shared
// by every visitor. Nothing here should be used to protect sensitive data.
package gate

import (
	"context"
	"crypto/subtle"
	"errors"
	"time"
)

const (
	// FlagKey is the storage key of the persisted unlock flag.
	FlagKey = "biography-authenticated"
	// FlagUnlocked is the only value that reads as unlocked.
	FlagUnlocked = "true"

	// DefaultSecret is the shared password.
	DefaultSecret = "qpwoeiruty"
	// DefaultDelay is the pause before an attempt result is reported.
	DefaultDelay = 500 * time.Millisecond
)

var (
	// ErrIncorrectPassword is the single, generic failure of an unlock attempt.
	ErrIncorrectPassword = errors.New("incorrect password")
	// ErrNotReady is returned when an attempt is made before Init.
	ErrNotReady = errors.New("gate not initialized")
)

// State is the gate lifecycle.
type State int

const (
	Loading State = iota
	Locked
	Unlocked
)

func (s State) String() string {
	switch s {
	case Loading:
		return "loading"
	case Locked:
		return "locked"
	case Unlocked:
		return "unlocked"
	default:
		return "unknown"
	}
}

// FlagStore is the client-local key/value storage that remembers an unlock.
type FlagStore interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

// Config controls a Gate.
type Config struct {
	Enabled bool
	Secret  string
	Delay   time.Duration
}

// DefaultConfig returns an enabled gate with the stock secret and delay.
func DefaultConfig() Config {
	return Config{Enabled: true, Secret: DefaultSecret, Delay: DefaultDelay}
}

// Gate is the per-visitor state machine Loading -> Locked -> Unlocked.
// Unlocked is terminal.
type Gate struct {
	cfg   Config
	flags FlagStore
	state State
	sleep func(context.Context, time.Duration) error
}

// New builds a gate in the Loading state.
func New(cfg Config, flags FlagStore) *Gate {
	if cfg.Secret == "" {
		cfg.Secret = DefaultSecret
	}
	if cfg.Delay < 0 {
		cfg.Delay = 0
	}
	return &Gate{cfg: cfg, flags: flags, state: Loading, sleep: sleepContext}
}

// State returns the current state.
func (g *Gate) State() State {
	return g.state
}

// Init reads the persisted flag and settles in Locked or Unlocked. A disabled
// gate is always Unlocked and never touches storage.
func (g *Gate) Init(ctx context.Context) (State, error) {
	if g.state != Loading {
		return g.state, nil
	}
	if !g.cfg.Enabled {
		g.state = Unlocked
		return g.state, nil
	}
	g.state = Locked
	if g.flags == nil {
		return g.state, nil
	}
	value, ok, err := g.flags.Get(ctx, FlagKey)
	if err != nil {
		return g.state, err
	}
	if ok && value == FlagUnlocked {
		g.state = Unlocked
	}
	return g.state, nil
}

// AttemptUnlock compares candidate to the shared secret after the UX delay.
// On a match the flag is persisted and the gate becomes Unlocked; otherwise
// it stays Locked, nothing is persisted and ErrIncorrectPassword is returned.
func (g *Gate) AttemptUnlock(ctx context.Context, candidate string) error {
	switch g.state {
	case Loading:
		return ErrNotReady
	case Unlocked:
		return nil
	}
	if err := g.sleep(ctx, g.cfg.Delay); err != nil {
		return err
	}
	if subtle.ConstantTimeCompare([]byte(candidate), []byte(g.cfg.Secret)) != 1 {
		return ErrIncorrectPassword
	}
	if g.flags != nil {
		if err := g.flags.Set(ctx, FlagKey, FlagUnlocked); err != nil {
			return err
		}
	}
	g.state = Unlocked
	return nil
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
