package session

import (
	"context"
	"errors"

	"github.com/gorilla/sessions"
)

// contextKey is an unexported type to prevent key collisions in context.
type contextKey string

const sessionKey contextKey = "session"

// ErrSessionNotFound is returned when the Load middleware did not run.
var ErrSessionNotFound = errors.New("session not found in context")

// FromCtx returns the session attached by Load.
func FromCtx(ctx context.Context) (*sessions.Session, error) {
	s, ok := ctx.Value(sessionKey).(*sessions.Session)
	if !ok || s == nil {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

// WithSession returns a new context carrying s.
func WithSession(ctx context.Context, s *sessions.Session) context.Context {
	return context.WithValue(ctx, sessionKey, s)
}
