package util

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

const resetTokenBytes = 32

// GenerateResetToken returns the token mailed to the user and the digest
// that is persisted in its place.
func GenerateResetToken() (plain, hash string, err error) {
	buf := make([]byte, resetTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", "", err
	}
	plain = hex.EncodeToString(buf)
	return plain, HashResetToken(plain), nil
}

func HashResetToken(token string) string {
	sum := sha256.Sum256([]byte(strings.TrimSpace(token)))
	return hex.EncodeToString(sum[:])
}

// LooksLikeResetToken reports whether value has the shape of a generated
// token, so obviously bogus input never reaches the database.
func LooksLikeResetToken(value string) bool {
	if len(value) != resetTokenBytes*2 {
		return false
	}
	_, err := hex.DecodeString(value)
	return err == nil
}
