// Package cryptox holds the hashing primitives used to store issued PINs
// without keeping the cleartext around.
package cryptox

import (
	"crypto/subtle"

	"golang.org/x/crypto/argon2"
)

// HashPin derives a fixed-size digest for a short numeric PIN using argon2id
// with the given salt. A short PIN has very little entropy, so a memory-hard
// KDF is used instead of a plain hash.
func HashPin(pin string, salt []byte) []byte {
	return argon2.IDKey([]byte(pin), salt, 1, 64*1024, 4, 32)
}

// CheckPin reports whether pin hashes to the expected digest under salt.
// The comparison is constant-time.
func CheckPin(expected []byte, pin string, salt []byte) bool {
	candidate := HashPin(pin, salt)
	return subtle.ConstantTimeCompare(expected, candidate) == 1
}
