package services

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"strings"

	"golang.org/x/crypto/pbkdf2"
)

const (
	pbkdf2Iterations = 600000
	pbkdf2SaltLen    = 16
	pbkdf2KeyLen     = 32
)

// HashPassword хеширует пароль PBKDF2-SHA256 со случайной солью.
// Формат хранения: hex(salt)$hex(hash)
func HashPassword(plain string) (string, error) {
	salt := make([]byte, pbkdf2SaltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}
	hash := pbkdf2.Key([]byte(plain), salt, pbkdf2Iterations, pbkdf2KeyLen, sha256.New)
	return hex.EncodeToString(salt) + "$" + hex.EncodeToString(hash), nil
}

// CheckPassword пересчитывает хеш с сохраненной солью и сравнивает за константное время
func CheckPassword(plain, stored string) (bool, error) {
	parts := strings.Split(stored, "$")
	if len(parts) != 2 {
		return false, errors.New("invalid password hash format")
	}
	salt, err := hex.DecodeString(parts[0])
	if err != nil {
		return false, err
	}
	expected, err := hex.DecodeString(parts[1])
	if err != nil {
		return false, err
	}
	hash := pbkdf2.Key([]byte(plain), salt, pbkdf2Iterations, pbkdf2KeyLen, sha256.New)
	return subtle.ConstantTimeCompare(hash, expected) == 1, nil
}
