package util

import (
	"crypto/rand"
	"encoding/hex"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// IDLength is the length of job, upload and result identifiers.
const IDLength = 12

func RandomString(n int) string {
	bytes := make([]byte, (n+1)/2)
	rand.Read(bytes)
	return hex.EncodeToString(bytes)[:n]
}

// NewID returns a fresh opaque identifier.
func NewID() string {
	return RandomString(IDLength)
}

// BaseName strips the directory and the last extension from a file name.
func BaseName(fileName string) string {
	base := filepath.Base(fileName)
	if ext := filepath.Ext(base); ext != "" && ext != base {
		base = strings.TrimSuffix(base, ext)
	}
	return base
}

// Truncate cuts s to at most n runes.
func Truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n])
}
