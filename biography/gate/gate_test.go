package gate

import (
	"context"
	"errors"
	"testing"
	"time"
)

func newTestGate(cfg Config, flags FlagStore) *Gate {
	g := New(cfg, flags)
	g.sleep = func(ctx context.Context, d time.Duration) error { return ctx.Err() }
	return g
}

func TestFreshSessionIsLocked(t *testing.T) {
	flags := NewMemoryFlags()
	g := newTestGate(DefaultConfig(), flags)
	if g.State() != Loading {
		t.Fatalf("expected Loading before Init, got %s", g.State())
	}
	state, err := g.Init(context.Background())
	if err != nil {
		t.Fatalf("Init: %v", err)
	}
	if state != Locked {
		t.Fatalf("expected Locked, got %s", state)
	}
}

func TestCorrectPasswordUnlocksAndPersists(t *testing.T) {
	ctx := context.Background()
	flags := NewMemoryFlags()
	g := newTestGate(DefaultConfig(), flags)
	if _, err := g.Init(ctx); err != nil {
		t.Fatalf("Init: %v", err)
	}

	if err := g.AttemptUnlock(ctx, "qpwoeiruty"); err != nil {
		t.Fatalf("AttemptUnlock: %v", err)
	}
	if g.State() != Unlocked {
		t.Fatalf("expected Unlocked, got %s", g.State())
	}
	v, ok, _ := flags.Get(ctx, FlagKey)
	if !ok || v != FlagUnlocked {
		t.Fatalf("expected persisted flag, got %q ok=%v", v, ok)
	}

	// a new visit with the same storage starts unlocked
	next := newTestGate(DefaultConfig(), flags)
	if state, _ := next.Init(ctx); state != Unlocked {
		t.Fatalf("expected persisted unlock, got %s", state)
	}
}

func TestWrongPasswordStaysLocked(t *testing.T) {
	ctx := context.Background()
	flags := NewMemoryFlags()
	g := newTestGate(DefaultConfig(), flags)
	if _, err := g.Init(ctx); err != nil {
		t.Fatalf("Init: %v", err)
	}

	for _, candidate := range []string{"", "QPWOEIRUTY", "qpwoeirut", "qpwoeiruty "} {
		err := g.AttemptUnlock(ctx, candidate)
		if !errors.Is(err, ErrIncorrectPassword) {
			t.Fatalf("AttemptUnlock(%q): expected ErrIncorrectPassword, got %v", candidate, err)
		}
		if g.State() != Locked {
			t.Fatalf("expected Locked after %q, got %s", candidate, g.State())
		}
	}
	if _, ok, _ := flags.Get(ctx, FlagKey); ok {
		t.Fatal("failed attempts must not persist anything")
	}
}

func TestNonTrueFlagReadsLocked(t *testing.T) {
	ctx := context.Background()
	flags := NewMemoryFlags()
	_ = flags.Set(ctx, FlagKey, "yes")
	g := newTestGate(DefaultConfig(), flags)
	if state, _ := g.Init(ctx); state != Locked {
		t.Fatalf("expected Locked for non-true flag, got %s", state)
	}
}

func TestDisabledGateIsUnlockedWithoutReading(t *testing.T) {
	g := newTestGate(Config{Enabled: false}, failingFlags{})
	state, err := g.Init(context.Background())
	if err != nil {
		t.Fatalf("Init: %v", err)
	}
	if state != Unlocked {
		t.Fatalf("expected Unlocked, got %s", state)
	}
}

func TestAttemptBeforeInit(t *testing.T) {
	g := newTestGate(DefaultConfig(), NewMemoryFlags())
	if err := g.AttemptUnlock(context.Background(), DefaultSecret); !errors.Is(err, ErrNotReady) {
		t.Fatalf("expected ErrNotReady, got %v", err)
	}
}

func TestAttemptHonoursCancellation(t *testing.T) {
	g := New(Config{Enabled: true, Delay: time.Hour}, NewMemoryFlags())
	ctx, cancel := context.WithCancel(context.Background())
	if _, err := g.Init(ctx); err != nil {
		t.Fatalf("Init: %v", err)
	}
	cancel()
	if err := g.AttemptUnlock(ctx, DefaultSecret); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if g.State() != Locked {
		t.Fatalf("expected Locked, got %s", g.State())
	}
}

type failingFlags struct{}

func (failingFlags) Get(context.Context, string) (string, bool, error) {
	return "", false, errors.New("should not be called")
}

func (failingFlags) Set(context.Context, string, string) error {
	return errors.New("should not be called")
}
