// Package cookie writes plain, signed and encrypted cookies that share one
// set of attributes.
package cookie

import (
	"errors"
	"net/http"
)

var (
	ErrNotFound  = errors.New("cookie: not found")
	ErrNoSecret  = errors.New("cookie: secret required")
	ErrBadSecret = errors.New("cookie: secret must be 32+ bytes")
	ErrBadSig    = errors.New("cookie: invalid signature")
	ErrDecrypt   = errors.New("cookie: decryption failed")
)

// MinSecretLen is the shortest secret WithSecret accepts.
const MinSecretLen = 32

// Manager stamps its attributes on every cookie it writes. Signed and
// encrypted cookies need a secret and fail with ErrNoSecret otherwise.
type Manager struct {
	keys  *keys
	attrs http.Cookie
}

type Option func(*Manager)

// New returns a Manager writing Path=/; HttpOnly; SameSite=Lax cookies
// unless options say otherwise.
func New(opts ...Option) *Manager {
	m := &Manager{attrs: http.Cookie{
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// ValidateSecret reports whether WithSecret would accept secret.
func ValidateSecret(secret string) error {
	switch {
	case secret == "":
		return ErrNoSecret
	case len(secret) < MinSecretLen:
		return ErrBadSecret
	}
	return nil
}

// WithSecret enables SetSigned and SetEncrypted. An invalid secret leaves
// them disabled.
func WithSecret(secret string) Option {
	return func(m *Manager) {
		if ValidateSecret(secret) != nil {
			return
		}
		if k, err := deriveKeys([]byte(secret)); err == nil {
			m.keys = k
		}
	}
}

func WithDomain(domain string) Option {
	return func(m *Manager) { m.attrs.Domain = domain }
}

func WithPath(path string) Option {
	return func(m *Manager) {
		if path != "" {
			m.attrs.Path = path
		}
	}
}

// WithSecure marks cookies HTTPS-only; production turns it on.
func WithSecure(secure bool) Option {
	return func(m *Manager) { m.attrs.Secure = secure }
}

func WithHTTPOnly(httpOnly bool) Option {
	return func(m *Manager) { m.attrs.HttpOnly = httpOnly }
}

func WithSameSite(ss http.SameSite) Option {
	return func(m *Manager) { m.attrs.SameSite = ss }
}

// HasSecret reports whether signed and encrypted cookies are available.
func (m *Manager) HasSecret() bool { return m.keys != nil }

// Get returns the raw value of the named request cookie.
func (m *Manager) Get(r *http.Request, name string) (string, error) {
	c, err := r.Cookie(name)
	if errors.Is(err, http.ErrNoCookie) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return c.Value, nil
}

// Set writes a plain cookie. A zero maxAge lasts for the browser session.
func (m *Manager) Set(w http.ResponseWriter, name, value string, maxAge int) {
	c := m.attrs
	c.Name, c.Value, c.MaxAge = name, value, maxAge
	http.SetCookie(w, &c)
}

// Delete tells the browser to drop the cookie.
func (m *Manager) Delete(w http.ResponseWriter, name string) {
	m.Set(w, name, "", -1)
}
