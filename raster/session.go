package raster

import (
	"errors"
	"fmt"
	"sync"
)

// -----------------------------------------------------------------------------
// Session
// -----------------------------------------------------------------------------

// Session holds the engine handle and the active object-store credential
// slot for one execution context.
//
// A session is created once, reused across reads, and torn down by the
// hosting application. The credential slot is the only shared mutable
// state: scoped reads install alternate credentials and revert them on
// every exit path. Concurrent reads installing distinct credentials on
// one session must be serialized by the caller.
type Session struct {
	engine  Engine
	appName string

	mu         sync.Mutex
	closed     bool
	creds      *Credentials
	credScheme string
}

// SessionContext is the per-call view of a session handed to the engine.
type SessionContext struct {
	// AppName identifies the hosting application to the engine.
	AppName string

	// Credentials are the scoped alternate credentials, nil when none
	// are installed.
	Credentials *Credentials

	// CredentialScheme is the URI scheme the credentials were installed
	// for, empty when Credentials is nil.
	CredentialScheme string
}

// SessionOption configures session construction.
type SessionOption func(*Session)

// WithAppName sets the application name reported to the engine.
// Default: "rasterlift".
func WithAppName(name string) SessionOption {
	return func(s *Session) {
		s.appName = name
	}
}

// NewSession creates a session bound to the given engine.
func NewSession(engine Engine, opts ...SessionOption) (*Session, error) {
	if engine == nil {
		return nil, errors.New("raster: engine is required")
	}

	s := &Session{
		engine:  engine,
		appName: "rasterlift",
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Close marks the session closed. Subsequent reads fail with
// ErrSessionClosed. Close is idempotent.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

// acquire returns the engine and a context snapshot, failing when the
// session is closed. The snapshot carries the credential slot as it stands
// at call time.
func (s *Session) acquire() (Engine, *SessionContext, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, nil, fmt.Errorf("raster: %w", ErrSessionClosed)
	}
	return s.engine, &SessionContext{
		AppName:          s.appName,
		Credentials:      s.creds,
		CredentialScheme: s.credScheme,
	}, nil
}

// scopedCredentials reports the active slot contents. Test hook and
// diagnostic accessor; nil means unset.
func (s *Session) scopedCredentials() (*Credentials, string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.creds, s.credScheme
}

// pushCredentials installs creds in the session slot for the given URI
// scheme and returns a restore function reverting the slot to its prior
// state (including "unset").
//
// The restore is idempotent: the first call reverts, later calls are
// no-ops. If the slot no longer holds the pushed credentials at restore
// time, the slot was modified outside the scope and the restore fails
// with ErrCredentialScopeCorrupted instead of clobbering it.
func (s *Session) pushCredentials(creds *Credentials, scheme string) (func() error, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, fmt.Errorf("raster: %w", ErrSessionClosed)
	}

	prev, prevScheme := s.creds, s.credScheme
	s.creds, s.credScheme = creds, scheme

	restored := false
	return func() error {
		s.mu.Lock()
		defer s.mu.Unlock()
		if restored {
			return nil
		}
		restored = true
		if s.creds != creds || s.credScheme != scheme {
			return fmt.Errorf("raster: %w", ErrCredentialScopeCorrupted)
		}
		s.creds, s.credScheme = prev, prevScheme
		return nil
	}, nil
}
