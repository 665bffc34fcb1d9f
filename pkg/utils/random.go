package utils

import (
	"crypto/rand"
	"fmt"
)

// RandomBytes อ่าน n bytes จาก crypto/rand (ใช้ทำ salt)
func RandomBytes(n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return nil, fmt.Errorf("read random bytes: %w", err)
	}
	return b, nil
}
