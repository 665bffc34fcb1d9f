package redis

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryStore struct {
	values map[string]time.Duration
}

func (m *memoryStore) Set(_ context.Context, key string, _ interface{}, expiration time.Duration) error {
	m.values[key] = expiration
	return nil
}

func (m *memoryStore) Exists(_ context.Context, key string) (bool, error) {
	_, ok := m.values[key]
	return ok, nil
}

func TestTokenBlacklist(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	store := &memoryStore{values: map[string]time.Duration{}}
	blacklist := &TokenBlacklist{store: store, now: func() time.Time { return now }}
	ctx := context.Background()

	require.NoError(t, blacklist.Revoke(ctx, "jti-1", now.Add(90*time.Minute)))
	assert.Equal(t, 90*time.Minute, store.values["auth:revoked:jti-1"])

	revoked, err := blacklist.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)

	revoked, err = blacklist.IsRevoked(ctx, "jti-2")
	require.NoError(t, err)
	assert.False(t, revoked)

	// token ที่หมดอายุแล้วไม่ถูกเก็บ
	require.NoError(t, blacklist.Revoke(ctx, "jti-old", now.Add(-time.Minute)))
	assert.NotContains(t, store.values, "auth:revoked:jti-old")
}
