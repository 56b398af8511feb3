package credential

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/pbkdf2"
)

const (
	saltBytes  = 16
	iterations = 100_000
	keyLength  = sha256.Size
)

// Hash derives a salted PBKDF2 record for the password. Each call draws a
// fresh random salt, so hashing the same password twice yields different
// records that both verify.
func Hash(password string) (string, error) {
	raw := make([]byte, saltBytes)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}
	return hashWithSalt(password, hex.EncodeToString(raw)), nil
}

// Verify reports whether the password matches a record produced by Hash.
// The derived-key comparison is constant time.
func Verify(password, record string) bool {
	salt, storedKey, found := strings.Cut(record, "$")
	if !found {
		return false
	}
	_, computedKey, _ := strings.Cut(hashWithSalt(password, salt), "$")
	return hmac.Equal([]byte(storedKey), []byte(computedKey))
}

// hashWithSalt is deterministic for a given salt and password; Verify depends
// on that. Record layout is saltHex "$" derivedKeyHex.
func hashWithSalt(password, salt string) string {
	key := pbkdf2.Key([]byte(password), []byte(salt), iterations, keyLength, sha256.New)
	return salt + "$" + hex.EncodeToString(key)
}
