package internal

import (
	"context"
	"crypto/rand"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/bbyeodagung/web/pkg/cookie"
	"github.com/bbyeodagung/web/pkg/id"
	"github.com/bbyeodagung/web/pkg/logger"
	"github.com/bbyeodagung/web/pkg/session"
)

const (
	DefaultSessionCookieName = "__sid"
	// DefaultSessionMaxAge is in seconds.
	DefaultSessionMaxAge = 4000

	// touchInterval throttles last-activity writes to the store.
	touchInterval = time.Minute
)

// SessionManager ties a session.Store to the signed cookie that carries the
// session token.
type SessionManager struct {
	store   session.Store
	cookies *cookie.Manager
	log     *slog.Logger
	name    string
	maxAge  int
}

type SessionOption func(*SessionManager)

// NewSessionManager uses the App's cookie manager unless
// WithSessionCookies supplies one. Either way it needs a secret.
func NewSessionManager(store session.Store, opts ...SessionOption) *SessionManager {
	sm := &SessionManager{
		store:  store,
		log:    logger.NewNope(),
		name:   DefaultSessionCookieName,
		maxAge: DefaultSessionMaxAge,
	}
	for _, opt := range opts {
		opt(sm)
	}
	return sm
}

func WithSessionCookieName(name string) SessionOption {
	return func(sm *SessionManager) {
		if name != "" {
			sm.name = name
		}
	}
}

// WithSessionMaxAge sets both the cookie Max-Age and the store expiry.
// Sub-second values are ignored.
func WithSessionMaxAge(d time.Duration) SessionOption {
	return func(sm *SessionManager) {
		if s := int(d.Seconds()); s > 0 {
			sm.maxAge = s
		}
	}
}

func WithSessionCookies(m *cookie.Manager) SessionOption {
	return func(sm *SessionManager) {
		if m != nil {
			sm.cookies = m
		}
	}
}

func (sm *SessionManager) setDefaults(l *slog.Logger, m *cookie.Manager) {
	if l != nil {
		sm.log = l
	}
	if sm.cookies == nil {
		sm.cookies = m
	}
}

// MaxAge is the session lifetime in seconds.
func (sm *SessionManager) MaxAge() int { return sm.maxAge }

func (sm *SessionManager) Store() session.Store { return sm.store }

// LoadSession resolves the request's session cookie. A missing, forged or
// expired cookie is not an error; the visitor is just anonymous.
func (sm *SessionManager) LoadSession(ctx context.Context, r *http.Request) (*session.Session, error) {
	token, err := sm.cookies.GetSigned(r, sm.name)
	if errors.Is(err, cookie.ErrBadSig) {
		sm.log.WarnContext(ctx, "session cookie signature mismatch")
	}
	if errors.Is(err, cookie.ErrNotFound) || errors.Is(err, cookie.ErrBadSig) || (err == nil && token == "") {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	sess, err := sm.store.Get(ctx, token)
	if errors.Is(err, session.ErrNotFound) || errors.Is(err, session.ErrExpired) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if now := time.Now(); now.Sub(sess.LastActiveAt) > touchInterval {
		if err := sm.store.Touch(ctx, sess.ID, now); err != nil {
			sm.log.WarnContext(ctx, "failed to touch session", slog.Any("error", err))
		} else {
			sess.LastActiveAt = now
		}
	}
	return sess, nil
}

// CreateSession stores a new anonymous session stamped with the client
// address and user agent.
func (sm *SessionManager) CreateSession(ctx context.Context, r *http.Request) (*session.Session, error) {
	expires := time.Now().Add(time.Duration(sm.maxAge) * time.Second)
	sess := session.New(id.NewULID(), rand.Text(), expires)
	sess.IP = clientIP(r)
	sess.UserAgent = r.UserAgent()

	if err := sm.store.Create(ctx, sess); err != nil {
		return nil, err
	}
	sess.ClearDirty()
	return sess, nil
}

// SaveSession (re)writes the cookie; it does not touch the store.
func (sm *SessionManager) SaveSession(w http.ResponseWriter, sess *session.Session) error {
	return sm.cookies.SetSigned(w, sm.name, sess.Token, sm.maxAge)
}

// RotateToken gives sess a new token in the store. On failure the old
// token stays in place.
func (sm *SessionManager) RotateToken(ctx context.Context, sess *session.Session) error {
	prev := sess.Token
	sess.Token = rand.Text()
	sess.MarkDirty()
	if err := sm.store.Update(ctx, sess); err != nil {
		sess.Token = prev
		return err
	}
	sess.ClearDirty()
	return nil
}

// DeleteSession expires the cookie on the client.
func (sm *SessionManager) DeleteSession(w http.ResponseWriter) {
	sm.cookies.Delete(w, sm.name)
}

func clientIP(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
