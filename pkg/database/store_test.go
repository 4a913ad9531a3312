package database

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ghuser/itemstack/pkg/logger"
)

// flakyDriver fails the first failures Connect calls, then succeeds.
type flakyDriver struct {
	failures int32
	attempts atomic.Int32
	pingErr  error
	closed   atomic.Bool
}

func (d *flakyDriver) Connect(context.Context) error {
	if n := d.attempts.Add(1); n <= d.failures {
		return errors.New("connection refused")
	}
	return nil
}

func (d *flakyDriver) Ping(context.Context) error { return d.pingErr }

func (d *flakyDriver) Close(context.Context) error {
	d.closed.Store(true)
	return nil
}

func mustTarget(t *testing.T, raw string) Target {
	t.Helper()
	target, err := ParseTarget(raw)
	if err != nil {
		t.Fatalf("parse target: %v", err)
	}
	return target
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatal("condition not met before deadline")
}

func TestStore_RetriesUntilConnected(t *testing.T) {
	d := &flakyDriver{failures: 3}
	s := newStore(mustTarget(t, "mongodb://localhost:27017/myappdb"), d, logger.Discard(), WithRetryDelay(time.Millisecond))

	if s.Connected() {
		t.Fatal("store must not be connected before Start")
	}

	s.Start(context.Background())
	waitFor(t, s.Connected)

	if got := d.attempts.Load(); got != 4 {
		t.Fatalf("expected 4 attempts, got %d", got)
	}
	if err := s.Close(context.Background()); err != nil {
		t.Fatalf("close: %v", err)
	}
	if !d.closed.Load() {
		t.Fatal("expected driver to be closed")
	}
}

func TestStore_RetryStopsOnCancel(t *testing.T) {
	d := &flakyDriver{failures: 1 << 30}
	s := newStore(mustTarget(t, "mongodb://localhost:27017/myappdb"), d, logger.Discard(), WithRetryDelay(time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	s.Start(ctx)
	waitFor(t, func() bool { return d.attempts.Load() >= 3 })
	cancel()

	select {
	case <-s.done:
	case <-time.After(2 * time.Second):
		t.Fatal("connect loop did not stop after cancel")
	}
	if s.Connected() {
		t.Fatal("store must not report connected")
	}
	if err := s.Close(context.Background()); err != nil {
		t.Fatalf("close: %v", err)
	}
	if d.closed.Load() {
		t.Fatal("driver that never connected must not be closed")
	}
}

func TestStore_NotConnectedAccessors(t *testing.T) {
	s := newStore(mustTarget(t, "mongodb://localhost:27017/myappdb"), &flakyDriver{}, logger.Discard())

	if err := s.Ping(context.Background()); !errors.Is(err, ErrNotConnected) {
		t.Fatalf("Ping: expected ErrNotConnected, got %v", err)
	}
	if _, err := s.Mongo(); !errors.Is(err, ErrNotConnected) {
		t.Fatalf("Mongo: expected ErrNotConnected, got %v", err)
	}
	if _, err := s.Postgres(); !errors.Is(err, ErrNotConnected) {
		t.Fatalf("Postgres: expected ErrNotConnected, got %v", err)
	}
}

func TestStore_PingPropagatesDriverError(t *testing.T) {
	d := &flakyDriver{pingErr: errors.New("socket closed")}
	s := newStore(mustTarget(t, "mongodb://localhost:27017/myappdb"), d, logger.Discard())
	if err := s.Connect(context.Background()); err != nil {
		t.Fatalf("connect: %v", err)
	}

	if err := s.Ping(context.Background()); err == nil {
		t.Fatal("expected ping error")
	}
}

func TestStore_WrongKindAccessor(t *testing.T) {
	s := New(mustTarget(t, "memory://"), logger.Discard())
	if err := s.Connect(context.Background()); err != nil {
		t.Fatalf("connect: %v", err)
	}

	if _, err := s.Mongo(); err == nil || errors.Is(err, ErrNotConnected) {
		t.Fatalf("expected kind mismatch error, got %v", err)
	}
	if _, err := s.Postgres(); err == nil || errors.Is(err, ErrNotConnected) {
		t.Fatalf("expected kind mismatch error, got %v", err)
	}
	if err := s.Ping(context.Background()); err != nil {
		t.Fatalf("memory ping: %v", err)
	}
}

func TestWithRetryDelay_IgnoresNonPositive(t *testing.T) {
	s := newStore(mustTarget(t, "memory://"), memoryDriver{}, logger.Discard(), WithRetryDelay(0))
	if s.retryDelay != DefaultRetryDelay {
		t.Fatalf("expected default delay, got %v", s.retryDelay)
	}
}

func TestStore_OnConnectFailureRetries(t *testing.T) {
	d := &flakyDriver{}
	var hookCalls atomic.Int32
	hook := func(context.Context) error {
		if hookCalls.Add(1) == 1 {
			return errors.New("migration failed")
		}
		return nil
	}
	s := newStore(mustTarget(t, "postgres://localhost:5432/items"), d, logger.Discard(),
		WithRetryDelay(time.Millisecond), WithOnConnect(hook))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	s.Start(ctx)
	defer s.Close(context.Background()) //nolint:errcheck

	waitFor(t, s.Connected)
	if n := hookCalls.Load(); n != 2 {
		t.Errorf("hook calls = %d, want 2", n)
	}
	if n := d.attempts.Load(); n != 2 {
		t.Errorf("driver connects = %d, want 2", n)
	}
}
