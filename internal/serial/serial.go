// Package serial encodes router serial numbers of the form CP YY WW XXX into
// the 12-byte buffer whose SHA-1 digest yields both the SSID suffix and the
// default key.
package serial

import (
	"crypto/sha1"
	"encoding/hex"
	"strings"
)

const (
	// Length is the size of an encoded candidate.
	Length = 12
	// WeeksPerYear bounds the week field, which always runs 1..52.
	WeeksPerYear = 52
	// DigestSize is the SHA-1 output size.
	DigestSize = sha1.Size
	// DefaultKeySize is the number of leading digest bytes that form the key.
	DefaultKeySize = 5
)

// Alphabet holds the symbols of the three trailing serial characters, in
// enumeration order.
const Alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

const hexDigits = "0123456789ABCDEF"

// Candidate is one encoded serial. Layout:
//
//	0-1   "CP"
//	2-3   year digits
//	4-5   week digits
//	6-11  three symbols, each as two hex digits of its ASCII code
type Candidate [Length]byte

// Encode builds the candidate for the given fields. The year digits are
// formed with a bitwise OR against '0' and the week digits with an addition;
// both are kept as-is so digests match existing keys bit for bit.
func Encode(year, week int, x1, x2, x3 byte) Candidate {
	var c Candidate
	c[0] = 'C'
	c[1] = 'P'
	c[2] = byte(year/10 | '0')
	c[3] = byte(year%10 | '0')
	c[4] = byte(week/10 + '0')
	c[5] = byte(week%10 + '0')
	putSymbol(c[6:8], x1)
	putSymbol(c[8:10], x2)
	putSymbol(c[10:12], x3)
	return c
}

func putSymbol(dst []byte, s byte) {
	dst[0] = hexDigits[s>>4]
	dst[1] = hexDigits[s&0x0f]
}

// Digest returns the SHA-1 digest of the candidate.
func (c Candidate) Digest() [DigestSize]byte {
	return sha1.Sum(c[:])
}

// Label renders the serial as printed on the device label, e.g. CP0512ABC.
func (c Candidate) Label() string {
	var b strings.Builder
	b.Grow(9)
	b.Write(c[:6])
	for i := 6; i < Length; i += 2 {
		v, err := hex.DecodeString(string(c[i : i+2]))
		if err != nil || len(v) != 1 {
			b.WriteByte('?')
			continue
		}
		b.WriteByte(v[0])
	}
	return b.String()
}

// String returns the raw 12 encoded bytes.
func (c Candidate) String() string { return string(c[:]) }

// Key renders the first size bytes of digest as uppercase hex. size is
// clamped to the digest length.
func Key(digest [DigestSize]byte, size int) string {
	if size > DigestSize {
		size = DigestSize
	}
	if size < 0 {
		size = 0
	}
	return strings.ToUpper(hex.EncodeToString(digest[:size]))
}
