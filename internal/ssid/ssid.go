package ssid

import (
	"bytes"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
)

// MaxBytes is the size of a SHA-1 digest, the longest suffix a target can hold.
const MaxBytes = 20

var (
	// ErrInvalidLength is returned for odd-length input or input longer than
	// MaxBytes worth of hex.
	ErrInvalidLength = errors.New("invalid SSID length")
	// ErrInvalidCharacter is returned when the input holds a non hex digit.
	ErrInvalidCharacter = errors.New("invalid SSID")
)

// Target is an immutable digest suffix constraint: the last Len() bytes of a
// candidate digest must equal Bytes().
type Target struct {
	b [MaxBytes]byte
	n int
}

// Parse validates s and decodes it into a Target. Length is checked before
// characters. Input is case-insensitive.
func Parse(s string) (Target, error) {
	if len(s)%2 != 0 || len(s)/2 > MaxBytes {
		return Target{}, fmt.Errorf("%w: %d hex characters", ErrInvalidLength, len(s))
	}
	for i := 0; i < len(s); i++ {
		if !isHexDigit(s[i]) {
			return Target{}, fmt.Errorf("%w: %q at offset %d", ErrInvalidCharacter, s[i], i)
		}
	}
	return Decode(strings.ToUpper(s)), nil
}

// Decode turns validated hex digits into a Target without further checks.
//
// Nibbles are placed by the parity of the number of characters still to be
// read, not by the position from the start: when the remaining count is odd
// the digit starts a new byte as its high nibble, otherwise it is ORed in as
// the low nibble and the byte is complete. For even-length input this is
// plain left-to-right pairing. For odd-length input the first digit forms a
// byte on its own (as its low nibble), and only len(s)/2 decoded bytes count
// toward the target.
func Decode(s string) Target {
	var t Target
	out := make([]byte, 0, (len(s)+1)/2)
	var cur byte
	remaining := len(s)
	for i := 0; i < len(s); i++ {
		remaining--
		nib := nibble(s[i])
		if remaining%2 == 1 {
			cur = nib << 4
			continue
		}
		cur |= nib
		out = append(out, cur)
		cur = 0
	}
	t.n = len(s) / 2
	if t.n > MaxBytes {
		t.n = MaxBytes
	}
	copy(t.b[:], out)
	return t
}

// Len is the number of digest bytes the target constrains.
func (t Target) Len() int { return t.n }

// Bytes returns a copy of the constrained suffix.
func (t Target) Bytes() []byte {
	out := make([]byte, t.n)
	copy(out, t.b[:t.n])
	return out
}

// Matches reports whether the last Len() bytes of digest equal the target.
// A zero-length target matches every digest.
func (t Target) Matches(digest [MaxBytes]byte) bool {
	return bytes.Equal(digest[MaxBytes-t.n:], t.b[:t.n])
}

// String renders the target as uppercase hex.
func (t Target) String() string {
	return strings.ToUpper(hex.EncodeToString(t.b[:t.n]))
}

func isHexDigit(c byte) bool {
	return ('0' <= c && c <= '9') || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}

func nibble(c byte) byte {
	switch {
	case '0' <= c && c <= '9':
		return c - '0'
	case 'A' <= c && c <= 'F':
		return c - 'A' + 10
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10
	}
	return 0
}
