package fingerprint

import (
	"crypto/md5"
	"encoding/hex"
)

// Sum returns the lowercase hex rendering of the 128-bit digest of data.
func Sum(data []byte) string {
	digest := md5.Sum(data)
	return hex.EncodeToString(digest[:])
}

// SumString fingerprints the UTF-8 bytes of s.
func SumString(s string) string {
	return Sum([]byte(s))
}

// Short returns the first n characters of the fingerprint of s. It is used
// for directory-name suffixes where the full digest would be unwieldy. n is
// clamped to the digest length.
func Short(s string, n int) string {
	full := SumString(s)
	if n <= 0 || n > len(full) {
		return full
	}
	return full[:n]
}
