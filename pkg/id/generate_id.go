package id

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"math/big"
)

// NewID32 returns exactly 32 hex characters (no separators/prefixes).
func NewID32() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

// NewToken returns a 48-char hex string for opaque download tokens.
// Not derivable from any public identifier.
func NewToken() string {
	b := make([]byte, 24)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

// NewOTPCode returns a uniformly random 6-digit code in [100000, 999999].
func NewOTPCode() string {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		// crypto/rand only errors when the OS entropy source is broken
		panic(err)
	}
	return fmt.Sprintf("%06d", n.Int64()+100000)
}

// NewApplicationNumber builds a public application number like "PMC-2026-483920".
func NewApplicationNumber(year int) string {
	return fmt.Sprintf("PMC-%04d-%s", year, NewOTPCode())
}
