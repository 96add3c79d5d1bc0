package internal

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/bbyeodagung/web/pkg/cookie"
	"github.com/bbyeodagung/web/pkg/session"
)

// Flashes

func (c *requestContext) AddFlash(kind, message string) {
	st := c.state
	if st.flashOut == nil {
		st.flashOut = cookie.Flashes{}
	}
	st.flashOut.Add(kind, message)

	if st.flashHooked {
		return
	}
	st.flashHooked = true
	c.w.OnBeforeWrite(func() {
		// PopFlashes may already have queued a delete for the same cookie.
		unsetCookie(c.w.Header(), cookie.FlashCookieName)
		if err := c.app.cookieManager.SetFlashes(c.w, st.flashOut); err != nil {
			c.LogError("failed to write flash messages", slog.Any("error", err))
		}
	})
}

func (c *requestContext) Flashes() cookie.Flashes {
	st := c.state
	if !st.popped {
		st.popped = true
		f, err := c.app.cookieManager.PopFlashes(c.w, c.r)
		if err != nil {
			c.LogWarn("failed to read flash messages", slog.Any("error", err))
		}
		st.flashIn = f
	}
	return st.flashIn
}

// unsetCookie drops queued Set-Cookie lines for name.
func unsetCookie(h http.Header, name string) {
	lines := h.Values("Set-Cookie")
	h.Del("Set-Cookie")
	for _, line := range lines {
		if !strings.HasPrefix(line, name+"=") {
			h.Add("Set-Cookie", line)
		}
	}
}

// Sessions

func (c *requestContext) Session() (*session.Session, error) {
	sm := c.app.sessionManager
	if sm == nil {
		return nil, session.ErrNotConfigured
	}
	c.saveOnWrite()

	st := c.state
	if !st.loaded {
		sess, err := sm.LoadSession(c.Context(), c.r)
		if err != nil {
			return nil, err
		}
		st.session, st.loaded = sess, true
	}
	return st.session, nil
}

// saveOnWrite persists a changed session right before the header goes out.
func (c *requestContext) saveOnWrite() {
	st := c.state
	if st.saveHooked {
		return
	}
	st.saveHooked = true
	c.w.OnBeforeWrite(func() {
		sess := st.session
		if sess == nil || !sess.IsDirty() {
			return
		}
		if err := c.app.sessionManager.Store().Update(c.Context(), sess); err != nil {
			c.LogError("failed to save session", slog.Any("error", err))
			return
		}
		sess.ClearDirty()
	})
}

// openSession returns the current session, starting one if there is none.
// A started session has no cookie yet; the caller writes it.
func (c *requestContext) openSession() (sess *session.Session, started bool, err error) {
	if sess, err = c.Session(); err != nil || sess != nil {
		return sess, false, err
	}
	if sess, err = c.app.sessionManager.CreateSession(c.Context(), c.r); err != nil {
		return nil, false, err
	}
	c.state.session = sess
	return sess, true, nil
}

func (c *requestContext) UserID() string {
	sess, err := c.Session()
	if err != nil || sess == nil || !sess.IsAuthenticated() {
		return ""
	}
	return *sess.UserID
}

func (c *requestContext) IsAuthenticated() bool { return c.UserID() != "" }

func (c *requestContext) IsCurrentUser(id string) bool {
	uid := c.UserID()
	return uid != "" && uid == id
}

func (c *requestContext) AuthenticateSession(userID string) error {
	sess, started, err := c.openSession()
	if err != nil {
		return err
	}
	sess.SetUser(userID)

	sm := c.app.sessionManager
	if started {
		// A fresh token has not been sent yet.
		if err := sm.Store().Update(c.Context(), sess); err != nil {
			return err
		}
		sess.ClearDirty()
	} else if err := sm.RotateToken(c.Context(), sess); err != nil {
		return err
	}

	// Only the post-login token may go out.
	unsetCookie(c.w.Header(), sm.name)
	return sm.SaveSession(c.w, sess)
}

func (c *requestContext) SessionValue(key string) (any, error) {
	sess, err := c.Session()
	if err != nil {
		return nil, err
	}
	if sess == nil {
		return nil, session.ErrNotFound
	}
	v, _ := sess.GetValue(key)
	return v, nil
}

func (c *requestContext) SetSessionValue(key string, val any) error {
	sess, started, err := c.openSession()
	if err != nil {
		return err
	}
	sess.SetValue(key, val)
	if started {
		return c.app.sessionManager.SaveSession(c.w, sess)
	}
	return nil
}

func (c *requestContext) DestroySession() error {
	sess, err := c.Session()
	if err != nil {
		return err
	}
	sm := c.app.sessionManager
	if sess != nil {
		if err := sm.Store().Delete(c.Context(), sess.ID); err != nil {
			return err
		}
	}
	sm.DeleteSession(c.w)
	c.state.session, c.state.loaded = nil, true
	return nil
}

func (c *requestContext) DestroyUserSessions(userID string) error {
	sm := c.app.sessionManager
	if sm == nil {
		return session.ErrNotConfigured
	}
	self := c.IsCurrentUser(userID)
	if err := sm.Store().DeleteByUserID(c.Context(), userID); err != nil {
		return err
	}
	if self {
		sm.DeleteSession(c.w)
		c.state.session = nil
	}
	return nil
}
