// Package otp generates and hashes one-time codes and verification references.
package otp

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"math/big"

	"golang.org/x/crypto/pbkdf2"
)

const (
	CodeLength      = 6
	ReferencePrefix = "vrf_"

	hashIterations = 4096
	hashKeyLength  = 32
	referenceBytes = 24
)

var codeSpace = big.NewInt(1_000_000)

// Generate returns a uniformly random zero-padded 6-digit code.
func Generate() (string, error) {
	n, err := rand.Int(rand.Reader, codeSpace)
	if err != nil {
		return "", fmt.Errorf("generate otp: %w", err)
	}
	return fmt.Sprintf("%0*d", CodeLength, n.Int64()), nil
}

// Hash derives the stored form of code. The same code and salt always hash
// to the same hex string.
func Hash(code, salt string) string {
	key := pbkdf2.Key([]byte(code), []byte(salt), hashIterations, hashKeyLength, sha256.New)
	return hex.EncodeToString(key)
}

// Compare reports whether code hashes to stored, in constant time.
func Compare(code, salt, stored string) bool {
	if stored == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(Hash(code, salt)), []byte(stored)) == 1
}

// NewReference returns an opaque url-safe correlation token.
func NewReference() (string, error) {
	b := make([]byte, referenceBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate reference: %w", err)
	}
	return ReferencePrefix + base64.RawURLEncoding.EncodeToString(b), nil
}
