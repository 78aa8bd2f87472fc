package onewelcome

import (
	"encoding/hex"
	"encoding/json"

	"golang.org/x/crypto/blake2b"
)

// Fingerprint returns the hex encoded BLAKE2b-256 digest of data.
func Fingerprint(data []byte) string {
	sum := blake2b.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// FingerprintValue fingerprints the JSON encoding of v. Map keys are sorted
// by encoding/json, which makes the encoding canonical for wire maps.
func FingerprintValue(v any) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", &SerializationError{Err: err}
	}
	return Fingerprint(b), nil
}
