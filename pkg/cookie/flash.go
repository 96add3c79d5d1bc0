package cookie

import (
	"encoding/json"
	"errors"
	"net/http"
)

// FlashCookieName holds pending flash messages between two requests.
const FlashCookieName = "_flash"

// Flashes groups one-shot messages by kind ("success", "error", ...).
type Flashes map[string][]string

// Add appends a message of the given kind.
func (f Flashes) Add(kind, message string) {
	f[kind] = append(f[kind], message)
}

// Empty reports whether no message is pending.
func (f Flashes) Empty() bool {
	for _, msgs := range f {
		if len(msgs) > 0 {
			return false
		}
	}
	return true
}

// SetFlashes stores f for the next request, replacing any pending set.
func (m *Manager) SetFlashes(w http.ResponseWriter, f Flashes) error {
	if f.Empty() {
		m.Delete(w, FlashCookieName)
		return nil
	}
	data, err := json.Marshal(f)
	if err != nil {
		return err
	}
	return m.SetEncrypted(w, FlashCookieName, string(data), 0)
}

// PopFlashes returns pending flash messages and expires the cookie.
// A missing or unreadable cookie yields an empty set.
func (m *Manager) PopFlashes(w http.ResponseWriter, r *http.Request) (Flashes, error) {
	f := Flashes{}
	raw, err := m.GetEncrypted(r, FlashCookieName)
	switch {
	case errors.Is(err, ErrNotFound):
		return f, nil
	case errors.Is(err, ErrDecrypt):
		m.Delete(w, FlashCookieName)
		return f, nil
	case err != nil:
		return f, err
	}

	m.Delete(w, FlashCookieName)
	if err := json.Unmarshal([]byte(raw), &f); err != nil {
		return Flashes{}, nil
	}
	return f, nil
}
