// Package naming builds the public names uploaded files are stored under.
package naming

import (
	"crypto/rand"
	"math/big"
	"strings"
)

const (
	alphabet     = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
	prefixLength = 4
)

var alphabetSize = big.NewInt(int64(len(alphabet)))

// Generate returns "{prefix}-{original}" where prefix is four characters
// drawn uniformly from [A-Za-z0-9]. Collisions are not checked here.
func Generate(original string) string {
	return Prefix() + "-" + original
}

// Prefix returns a fresh random alphanumeric prefix.
func Prefix() string {
	var b strings.Builder
	b.Grow(prefixLength)
	for i := 0; i < prefixLength; i++ {
		n, err := rand.Int(rand.Reader, alphabetSize)
		if err != nil {
			// crypto/rand only fails when the OS entropy source is broken.
			panic("naming: reading random source: " + err.Error())
		}
		b.WriteByte(alphabet[n.Int64()])
	}
	return b.String()
}

// Sanitize reduces a client-supplied filename to its last path element.
// Both '/' and '\' count as separators. Empty, "." and ".." are rejected.
//
// Note: embedding the raw client name would let "../" sequences escape the
// storage directory, so uploads always go through Sanitize first.
func Sanitize(raw string) (string, bool) {
	name := raw
	if i := strings.LastIndexAny(name, `/\`); i >= 0 {
		name = name[i+1:]
	}

	switch name {
	case "", ".", "..":
		return "", false
	}
	if strings.ContainsRune(name, 0) {
		return "", false
	}
	return name, true
}
