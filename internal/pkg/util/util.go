package util

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"math/big"
	"time"
)

// GenerateTimestampWithPrefix builds a sortable identifier like
// "CO1693526400000123" from the current time plus a random suffix.
func GenerateTimestampWithPrefix(prefix string) string {
	n, _ := rand.Int(rand.Reader, big.NewInt(1000))
	return fmt.Sprintf("%s%d%03d", prefix, time.Now().UnixMilli(), n.Int64())
}

// GenerateSecureToken returns byteLen cryptographically random bytes,
// hex-encoded.
func GenerateSecureToken(byteLen int) (string, error) {
	buff := make([]byte, byteLen)
	if _, err := rand.Read(buff); err != nil {
		return "", err
	}

	return hex.EncodeToString(buff), nil
}
