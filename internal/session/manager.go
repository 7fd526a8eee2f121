package session

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
)

const DefaultCookieName = "storefront.sid"

// Manager binds a Store to the session cookie of HTTP requests.
type Manager struct {
	store      Store
	codec      *Codec
	cookieName string
	ttl        time.Duration
	secure     bool
	now        func() time.Time
}

type Option func(*Manager)

func WithCookieName(name string) Option {
	return func(m *Manager) { m.cookieName = name }
}

func WithSecureCookie(secure bool) Option {
	return func(m *Manager) { m.secure = secure }
}

func NewManager(store Store, secret string, ttl time.Duration, opts ...Option) *Manager {
	m := &Manager{
		store:      store,
		codec:      NewCodec(secret),
		cookieName: DefaultCookieName,
		ttl:        ttl,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Manager) CookieName() string {
	return m.cookieName
}

// Load returns the session referenced by the request cookie. A missing,
// tampered or unknown cookie yields ErrNotFound.
func (m *Manager) Load(ctx context.Context, r *http.Request) (*Session, error) {
	cookie, err := r.Cookie(m.cookieName)
	if err != nil {
		return nil, ErrNotFound
	}

	id, err := m.codec.Decode(cookie.Value)
	if err != nil {
		return nil, ErrNotFound
	}

	return m.store.Load(ctx, id)
}

// Start stores a fresh session for user and sets its cookie. Any session the
// request already carried is destroyed first.
func (m *Manager) Start(ctx context.Context, w http.ResponseWriter, r *http.Request, user Identity) (*Session, error) {
	if previous, err := m.Load(ctx, r); err == nil {
		if err := m.store.Destroy(ctx, previous.ID); err != nil {
			return nil, err
		}
	} else if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	now := m.now()
	s := &Session{
		ID:        uuid.NewString(),
		User:      user,
		CreatedAt: now,
		ExpiresAt: now.Add(m.ttl),
	}
	if err := m.store.Save(ctx, s); err != nil {
		return nil, err
	}

	value, err := m.codec.Encode(s.ID)
	if err != nil {
		return nil, err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     m.cookieName,
		Value:    value,
		Path:     "/",
		Expires:  s.ExpiresAt,
		MaxAge:   int(m.ttl.Seconds()),
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return s, nil
}

// Destroy removes the request's session, if any, and expires the cookie.
func (m *Manager) Destroy(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	s, err := m.Load(ctx, r)
	switch {
	case err == nil:
		if err := m.store.Destroy(ctx, s.ID); err != nil {
			return err
		}
	case !errors.Is(err, ErrNotFound):
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     m.cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}
