// Package id generates time-sortable identifiers for sessions and requests.
package id

import (
	"crypto/rand"
	"encoding/binary"
	"time"
)

// Crockford's Base32 alphabet (no I, L, O, U).
const crockfordBase32 = "0123456789ABCDEFGHJKMNPQRSTVWXYZ"

// ulidLen is 10 timestamp chars followed by 16 entropy chars.
const ulidLen = 26

// NewULID returns a 26-character ULID. IDs generated in different
// milliseconds sort lexicographically by creation time.
func NewULID() string {
	return newULIDAt(time.Now())
}

func newULIDAt(t time.Time) string {
	var entropy [10]byte
	if _, err := rand.Read(entropy[:]); err != nil {
		binary.BigEndian.PutUint64(entropy[:8], uint64(t.UnixNano()))
	}

	var out [ulidLen]byte

	ms := uint64(t.UnixMilli())
	for i := 9; i >= 0; i-- {
		out[i] = crockfordBase32[ms&0x1F]
		ms >>= 5
	}

	// 80 bits of entropy as 16 groups of 5 bits, most significant first.
	hi := binary.BigEndian.Uint16(entropy[0:2])
	lo := binary.BigEndian.Uint64(entropy[2:10])
	for i := ulidLen - 1; i >= 10; i-- {
		out[i] = crockfordBase32[lo&0x1F]
		lo = lo>>5 | uint64(hi&0x1F)<<59
		hi >>= 5
	}

	return string(out[:])
}
