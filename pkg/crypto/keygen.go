// Package crypto provides key generation helpers for the airdock bootstrap.
package crypto

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

// FernetKeySize is the raw key length used by the orchestration platform
// to encrypt sensitive stored values (connections, variables).
const FernetKeySize = 32

// RandomBytes returns n cryptographically-secure random bytes.
func RandomBytes(n int) ([]byte, error) {
	b := make([]byte, n)
	_, err := rand.Read(b)
	return b, err
}

// GenerateFernetKey returns a fresh symmetric key in the URL-safe base64
// encoding the platform expects.
func GenerateFernetKey() (string, error) {
	raw, err := RandomBytes(FernetKeySize)
	if err != nil {
		return "", fmt.Errorf("failed to generate fernet key: %w", err)
	}
	return base64.URLEncoding.EncodeToString(raw), nil
}
