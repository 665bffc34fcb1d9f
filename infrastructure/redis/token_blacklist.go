package redis

import (
	"context"
	"time"

	"task-manager-api/domain/ports"
)

const revokedTokenPrefix = "auth:revoked:"

// keyValueStore คือส่วนของ Client ที่ blacklist ใช้
type keyValueStore interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Exists(ctx context.Context, key string) (bool, error)
}

// TokenBlacklist เก็บ jti ที่ถูก revoke ไว้ใน Redis พร้อม TTL เท่าอายุที่เหลือของ token
type TokenBlacklist struct {
	store keyValueStore
	now   func() time.Time
}

var _ ports.TokenBlacklist = (*TokenBlacklist)(nil)

func NewTokenBlacklist(client *Client) *TokenBlacklist {
	return &TokenBlacklist{store: client, now: time.Now}
}

func (b *TokenBlacklist) Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error {
	ttl := expiresAt.Sub(b.now())
	if ttl <= 0 {
		// token หมดอายุไปแล้ว ไม่ต้องเก็บ
		return nil
	}
	return b.store.Set(ctx, revokedTokenKey(tokenID), "1", ttl)
}

func (b *TokenBlacklist) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	return b.store.Exists(ctx, revokedTokenKey(tokenID))
}

func revokedTokenKey(tokenID string) string {
	return revokedTokenPrefix + tokenID
}
