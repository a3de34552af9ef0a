package daily

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"errors"
	"time"
)

// DateKey returns YYYY-MM-DD in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// WordIndex returns a deterministic index for a date using HMAC(salt, YYYY-MM-DD) % n.
func WordIndex(date time.Time, salt string, n int) int {
	if n <= 0 {
		return 0
	}
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(DateKey(date)))
	sum := h.Sum(nil)
	// take first 8 bytes to uint64 for modulus distribution
	return int(binary.BigEndian.Uint64(sum[:8]) % uint64(n))
}

// Picker selects the solo secret as a word of the day: every round started
// on the same UTC date with the same salt and word list gets the same word.
type Picker struct {
	Salt string
	Now  func() time.Time // defaults to time.Now
}

// Pick returns the word of the day from list. list must be in a stable
// order (the dictionary keeps it sorted).
func (p Picker) Pick(list []string) (string, error) {
	if len(list) == 0 {
		return "", errors.New("daily: no candidates")
	}
	now := time.Now
	if p.Now != nil {
		now = p.Now
	}
	return list[WordIndex(now(), p.Salt, len(list))], nil
}
