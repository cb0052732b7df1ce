package utility

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/pbkdf2"
)

const (
	passwordSaltBytes = 16
	passwordHashIter  = 10000
	passwordKeyLen    = 32
)

// HashPassword sinh salt ngẫu nhiên và hash mật khẩu bằng PBKDF2-SHA256.
// Kết quả có dạng "salt$hash" (hex).
func HashPassword(password string) (string, error) {
	salt := make([]byte, passwordSaltBytes)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}

	hash := pbkdf2.Key([]byte(password), salt, passwordHashIter, passwordKeyLen, sha256.New)
	return hex.EncodeToString(salt) + "$" + hex.EncodeToString(hash), nil
}

// VerifyPassword kiểm tra mật khẩu với chuỗi "salt$hash" đã lưu.
func VerifyPassword(password string, stored string) bool {
	parts := strings.SplitN(stored, "$", 2)
	if len(parts) != 2 {
		return false
	}

	salt, err := hex.DecodeString(parts[0])
	if err != nil {
		return false
	}
	expected, err := hex.DecodeString(parts[1])
	if err != nil {
		return false
	}

	hash := pbkdf2.Key([]byte(password), salt, passwordHashIter, passwordKeyLen, sha256.New)
	return subtle.ConstantTimeCompare(hash, expected) == 1
}
