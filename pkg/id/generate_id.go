package id

import (
	"crypto/rand"
	"encoding/hex"
	"regexp"
)

// ClientIDLen is the length of a client id in hex characters.
const ClientIDLen = 32

var reClientID = regexp.MustCompile(`^[a-f0-9]{32}$`)

// NewClientID returns a random lowercase hex id identifying one browser.
func NewClientID() string {
	b := make([]byte, ClientIDLen/2)
	if _, err := rand.Read(b); err != nil {
		panic("id: crypto/rand unavailable: " + err.Error())
	}
	return hex.EncodeToString(b)
}

// Valid reports whether s has the shape NewClientID produces.
func Valid(s string) bool { return reClientID.MatchString(s) }
