// Package session caches the authentication token and user profile that
// gate the protected views. The backend remains the source of truth for
// identity; everything here is a local convenience cache.
package session

import (
	"github.com/white3332/ai-planner/internal/domain"
)

// Session is the locally cached authentication state.
type Session struct {
	Token string
	User  domain.UserProfile
}

// Store reads and writes the cached session. Implementations must treat
// malformed stored payloads as absence of a session, never as a failure.
type Store interface {
	// Current returns the cached session, or (nil, nil) when signed out.
	Current() (*Session, error)
	Save(s Session) error
	Clear() error
}

// Memory is an in-memory Store for tests.
type Memory struct {
	s *Session
}

// NewMemory returns an empty in-memory store. Pass a session to seed it.
func NewMemory(seed ...Session) *Memory {
	m := &Memory{}
	if len(seed) > 0 {
		s := seed[0]
		m.s = &s
	}
	return m
}

func (m *Memory) Current() (*Session, error) {
	if m.s == nil {
		return nil, nil
	}
	s := *m.s
	return &s, nil
}

func (m *Memory) Save(s Session) error {
	m.s = &s
	return nil
}

func (m *Memory) Clear() error {
	m.s = nil
	return nil
}
