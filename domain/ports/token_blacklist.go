package ports

import (
	"context"
	"time"
)

// TokenBlacklist เก็บ jti ของ token ที่ logout แล้วจนกว่า token จะหมดอายุ
type TokenBlacklist interface {
	Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}
