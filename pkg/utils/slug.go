package utils

import (
	"fmt"
	"math/rand"
	"strings"
	"time"
)

const slugAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// NewInvoiceID returns an identifier like "inv_1770000000000000000".
// Uniqueness within a store instance comes from the nanosecond clock.
func NewInvoiceID() string {
	return fmt.Sprintf("inv_%d", time.Now().UnixNano())
}

// Slugify lowercases s and collapses runs of non-alphanumerics into
// single hyphens. Returns "" when nothing usable remains.
func Slugify(s string) string {
	var b strings.Builder
	lastHyphen := true
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

// SlugFromClientName builds a shareable slug like "john-smith-feb2026"
// from the client name and the issue month. Returns "" when the name
// contains nothing usable.
func SlugFromClientName(name string, issued time.Time) string {
	base := Slugify(name)
	if base == "" {
		return ""
	}
	return base + "-" + strings.ToLower(issued.Format("Jan2006"))
}

// RandomSlug returns a fixed-length lowercase-alphanumeric slug.
func RandomSlug(length int) string {
	if length <= 0 {
		length = 8
	}
	out := make([]byte, length)
	for i := range out {
		out[i] = slugAlphabet[rand.Intn(len(slugAlphabet))]
	}
	return string(out)
}
