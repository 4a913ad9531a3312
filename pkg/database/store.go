// Package database owns the process-wide store connection: it parses the
// connection target, keeps retrying the initial connect on a fixed delay, and
// exposes a readiness flag plus typed driver handles to the repositories.
//
// A Store is created once at startup and injected into the request layer
// through app.Application. Requests arriving before the first successful
// connect fail fast with ErrNotConnected; they are never queued.
package database

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/ghuser/itemstack/pkg/logger"
)

const (
	// DefaultRetryDelay is the fixed pause between connection attempts.
	DefaultRetryDelay = 5 * time.Second

	connectTimeout = 5 * time.Second
)

// ErrNotConnected is returned by every accessor until the first connect succeeds.
var ErrNotConnected = errors.New("database not connected")

// driver is implemented by each supported store kind.
type driver interface {
	Connect(ctx context.Context) error
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

// Store is the single long-lived handle to the item store.
type Store struct {
	target     Target
	driver     driver
	log        logger.Logger
	retryDelay time.Duration
	onConnect  func(context.Context) error
	connected  atomic.Bool

	cancel context.CancelFunc
	done   chan struct{}
}

// Option customises a Store.
type Option func(*Store)

// WithRetryDelay overrides DefaultRetryDelay. Non-positive values are ignored.
func WithRetryDelay(d time.Duration) Option {
	return func(s *Store) {
		if d > 0 {
			s.retryDelay = d
		}
	}
}

// WithOnConnect runs fn after the driver connects and before the store is marked
// ready. An error closes the driver and counts as a failed attempt, so the
// connect loop retries it. Used to apply schema migrations.
func WithOnConnect(fn func(context.Context) error) Option {
	return func(s *Store) {
		s.onConnect = fn
	}
}

// New returns an unconnected Store for target. Call Start to begin connecting.
func New(target Target, log logger.Logger, opts ...Option) *Store {
	var d driver
	switch target.Kind() {
	case KindMongo:
		d = &mongoDriver{uri: target.URI(), name: target.Name()}
	case KindPostgres:
		d = &postgresDriver{uri: target.URI()}
	default:
		d = memoryDriver{}
	}
	return newStore(target, d, log, opts...)
}

func newStore(target Target, d driver, log logger.Logger, opts ...Option) *Store {
	s := &Store{
		target:     target,
		driver:     d,
		log:        log,
		retryDelay: DefaultRetryDelay,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start launches the background connect loop and returns immediately.
// The loop retries every retry delay, without limit, until it succeeds or
// ctx is cancelled. Each failure is logged.
func (s *Store) Start(ctx context.Context) {
	ctx, s.cancel = context.WithCancel(ctx)
	s.done = make(chan struct{})
	go s.connectWithRetry(ctx)
}

func (s *Store) connectWithRetry(ctx context.Context) {
	defer close(s.done)

	for attempt := 1; ; attempt++ {
		err := s.Connect(ctx)
		if err == nil || ctx.Err() != nil {
			return
		}
		s.log.Error("database connection failed, retrying",
			"target", s.target.Redacted(),
			"attempt", attempt,
			"retry_in", s.retryDelay.String(),
			"error", err,
		)

		timer := time.NewTimer(s.retryDelay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}
	}
}

// Connect performs a single connection attempt and marks the store ready on success.
func (s *Store) Connect(ctx context.Context) error {
	if s.connected.Load() {
		return nil
	}
	if err := s.driver.Connect(ctx); err != nil {
		return fmt.Errorf("connect %s: %w", s.target.Kind(), err)
	}
	if s.onConnect != nil {
		if err := s.onConnect(ctx); err != nil {
			_ = s.driver.Close(ctx)
			return fmt.Errorf("prepare %s: %w", s.target.Kind(), err)
		}
	}
	s.connected.Store(true)
	s.log.Info("connected to database",
		"kind", string(s.target.Kind()),
		"target", s.target.Redacted(),
	)
	return nil
}

// Connected reports whether the initial connection has been established.
func (s *Store) Connected() bool {
	return s.connected.Load()
}

// Target returns the parsed connection target.
func (s *Store) Target() Target {
	return s.target
}

// Ping checks the live connection. Satisfies httpx.HealthChecker.
func (s *Store) Ping(ctx context.Context) error {
	if !s.connected.Load() {
		return ErrNotConnected
	}
	if err := s.driver.Ping(ctx); err != nil {
		return fmt.Errorf("database ping: %w", err)
	}
	return nil
}

// Close stops the connect loop and releases the driver.
func (s *Store) Close(ctx context.Context) error {
	if s.cancel != nil {
		s.cancel()
		<-s.done
	}
	if !s.connected.Swap(false) {
		return nil
	}
	if err := s.driver.Close(ctx); err != nil {
		return fmt.Errorf("database close: %w", err)
	}
	return nil
}
