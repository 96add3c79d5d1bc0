package cookie

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/hkdf"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"net/http"
	"strings"
)

var b64 = base64.RawURLEncoding

// keys holds independent signing and sealing keys derived from the secret.
type keys struct {
	mac  []byte
	aead cipher.AEAD
}

func deriveKeys(secret []byte) (*keys, error) {
	mac, err := hkdf.Key(sha256.New, secret, nil, "cookie signing", 32)
	if err != nil {
		return nil, err
	}
	enc, err := hkdf.Key(sha256.New, secret, nil, "cookie encryption", 32)
	if err != nil {
		return nil, err
	}
	block, err := aes.NewCipher(enc)
	if err != nil {
		return nil, err
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	return &keys{mac: mac, aead: aead}, nil
}

// signature covers the cookie name too, so a value signed for one cookie
// is rejected under another.
func (k *keys) signature(name string, value []byte) []byte {
	h := hmac.New(sha256.New, k.mac)
	h.Write([]byte(name))
	h.Write([]byte{0})
	h.Write(value)
	return h.Sum(nil)
}

// SetSigned writes value readable but tamper-evident: base64(value) "."
// base64(HMAC-SHA256).
func (m *Manager) SetSigned(w http.ResponseWriter, name, value string, maxAge int) error {
	if m.keys == nil {
		return ErrNoSecret
	}
	v := []byte(value)
	m.Set(w, name, b64.EncodeToString(v)+"."+b64.EncodeToString(m.keys.signature(name, v)), maxAge)
	return nil
}

// GetSigned returns the value written by SetSigned, or ErrBadSig if the
// cookie was altered or signed with another secret.
func (m *Manager) GetSigned(r *http.Request, name string) (string, error) {
	if m.keys == nil {
		return "", ErrNoSecret
	}
	raw, err := m.Get(r, name)
	if err != nil {
		return "", err
	}
	encValue, encSig, ok := strings.Cut(raw, ".")
	if !ok {
		return "", ErrBadSig
	}
	value, err1 := b64.DecodeString(encValue)
	sig, err2 := b64.DecodeString(encSig)
	if err1 != nil || err2 != nil || !hmac.Equal(sig, m.keys.signature(name, value)) {
		return "", ErrBadSig
	}
	return string(value), nil
}

// SetEncrypted seals value with AES-GCM. The cookie name is the additional
// data, so the ciphertext cannot be replayed under another name.
func (m *Manager) SetEncrypted(w http.ResponseWriter, name, value string, maxAge int) error {
	if m.keys == nil {
		return ErrNoSecret
	}
	nonce := make([]byte, m.keys.aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return err
	}
	sealed := m.keys.aead.Seal(nonce, nonce, []byte(value), []byte(name))
	m.Set(w, name, b64.EncodeToString(sealed), maxAge)
	return nil
}

// GetEncrypted opens a cookie written by SetEncrypted.
func (m *Manager) GetEncrypted(r *http.Request, name string) (string, error) {
	if m.keys == nil {
		return "", ErrNoSecret
	}
	raw, err := m.Get(r, name)
	if err != nil {
		return "", err
	}
	data, err := b64.DecodeString(raw)
	n := m.keys.aead.NonceSize()
	if err != nil || len(data) < n {
		return "", ErrDecrypt
	}
	plain, err := m.keys.aead.Open(nil, data[:n], data[n:], []byte(name))
	if err != nil {
		return "", ErrDecrypt
	}
	return string(plain), nil
}
