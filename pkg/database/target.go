package database

import (
	"fmt"
	"net/url"
	"strings"
)

// Kind identifies the store driver selected by the connection URL scheme.
type Kind string

// Supported store kinds.
const (
	KindMongo    Kind = "mongodb"
	KindPostgres Kind = "postgres"
	KindMemory   Kind = "memory"
)

// redactedPassword replaces the password in every display form of a Target.
const redactedPassword = "****"

// Target is a parsed store connection URL. The raw URL is only handed to drivers;
// every display accessor is built from components with the password masked.
type Target struct {
	raw  string
	u    *url.URL
	kind Kind
}

// ParseTarget parses a connection URL and selects the driver from its scheme:
// mongodb and mongodb+srv → MongoDB, postgres and postgresql → Postgres, memory → in-process.
func ParseTarget(raw string) (Target, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return Target{}, fmt.Errorf("parse database url: %w", err)
	}

	var kind Kind
	switch strings.ToLower(u.Scheme) {
	case "mongodb", "mongodb+srv":
		kind = KindMongo
	case "postgres", "postgresql":
		kind = KindPostgres
	case "memory":
		kind = KindMemory
	default:
		return Target{}, fmt.Errorf("unsupported database scheme %q", u.Scheme)
	}

	return Target{raw: raw, u: u, kind: kind}, nil
}

// Kind returns the driver kind.
func (t Target) Kind() Kind {
	return t.kind
}

// URI returns the connection URL including credentials. Pass it to drivers only.
func (t Target) URI() string {
	return t.raw
}

// Redacted returns the connection URL with any password replaced by "****".
// The userinfo is rebuilt from the username so the secret is never formatted.
func (t Target) Redacted() string {
	if t.u == nil {
		return ""
	}
	display := *t.u
	user := display.User
	display.User = nil
	s := display.String()
	if user == nil {
		return s
	}

	userinfo := url.User(user.Username()).String()
	if _, ok := user.Password(); ok {
		userinfo += ":" + redactedPassword
	}
	prefix := display.Scheme + "://"
	return prefix + userinfo + "@" + strings.TrimPrefix(s, prefix)
}

// Name returns the database name: the first path segment without query parameters.
// Memory targets without a path are named "memory".
func (t Target) Name() string {
	if t.u == nil {
		return ""
	}
	name := strings.Trim(t.u.Path, "/")
	if i := strings.Index(name, "/"); i >= 0 {
		name = name[:i]
	}
	if name == "" && t.kind == KindMemory {
		return string(KindMemory)
	}
	return name
}

// AuthEnabled reports whether the URL carries credentials.
func (t Target) AuthEnabled() bool {
	return t.u != nil && t.u.User != nil && t.u.User.Username() != ""
}
