// Package session keeps authenticated identities on the server, keyed by an
// opaque signed cookie.
package session

import (
	"context"
	"errors"
	"time"
)

var (
	ErrNotFound      = errors.New("session not found")
	ErrInvalidCookie = errors.New("invalid session cookie")
)

// Identity is the minimal user record kept in a session.
type Identity struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type Session struct {
	ID        string    `json:"id"`
	User      Identity  `json:"user"`
	CreatedAt time.Time `json:"createdAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}

// Store persists sessions by id. Load returns ErrNotFound for unknown or
// expired sessions.
type Store interface {
	Load(ctx context.Context, id string) (*Session, error)
	Save(ctx context.Context, s *Session) error
	Destroy(ctx context.Context, id string) error
}
