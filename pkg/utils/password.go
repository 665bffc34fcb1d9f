package utils

import (
	"crypto/hmac"
	"crypto/sha512"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

const (
	PasswordSchemeHMACSHA512 = "hmac-sha512"
	PasswordSchemeBcrypt     = "bcrypt"

	saltSize = 64
)

var ErrMalformedHash = errors.New("malformed password hash")

// PasswordHasher produces and checks the stored form of a password.
type PasswordHasher interface {
	Hash(password string) (string, error)
	// Verify returns ErrMalformedHash when encoded is not in the scheme's format.
	Verify(password, encoded string) (bool, error)
}

func NewPasswordHasher(scheme string) (PasswordHasher, error) {
	switch strings.ToLower(scheme) {
	case "", PasswordSchemeHMACSHA512:
		return HMACSHA512Hasher{}, nil
	case PasswordSchemeBcrypt:
		return BcryptHasher{Cost: bcrypt.DefaultCost}, nil
	default:
		return nil, fmt.Errorf("unknown password scheme %q", scheme)
	}
}

// HMACSHA512Hasher stores "base64(HMAC-SHA512(salt, password)):base64(salt)" with a 64-byte random salt.
type HMACSHA512Hasher struct{}

func (HMACSHA512Hasher) Hash(password string) (string, error) {
	salt, err := RandomBytes(saltSize)
	if err != nil {
		return "", err
	}
	hash := computeHMAC(salt, password)
	return base64.StdEncoding.EncodeToString(hash) + ":" + base64.StdEncoding.EncodeToString(salt), nil
}

func (HMACSHA512Hasher) Verify(password, encoded string) (bool, error) {
	parts := strings.Split(encoded, ":")
	if len(parts) != 2 {
		return false, ErrMalformedHash
	}

	storedHash, err := base64.StdEncoding.DecodeString(parts[0])
	if err != nil {
		return false, ErrMalformedHash
	}
	salt, err := base64.StdEncoding.DecodeString(parts[1])
	if err != nil {
		return false, ErrMalformedHash
	}

	computed := computeHMAC(salt, password)
	return subtle.ConstantTimeCompare(computed, storedHash) == 1, nil
}

func computeHMAC(salt []byte, password string) []byte {
	mac := hmac.New(sha512.New, salt)
	mac.Write([]byte(password))
	return mac.Sum(nil)
}

type BcryptHasher struct {
	Cost int
}

func (h BcryptHasher) Hash(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), h.Cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func (h BcryptHasher) Verify(password, encoded string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(encoded), []byte(password))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, ErrMalformedHash
	}
}
