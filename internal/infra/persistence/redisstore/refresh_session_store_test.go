package redisstore

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"jobhub/internal/domain/entity"
	"jobhub/internal/domain/repository"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (*RefreshSessionStore, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewRefreshSessionStore(client, "test"), mr
}

func newSession(userID uuid.UUID, hash string, expiresAt time.Time) *entity.RefreshSession {
	return &entity.RefreshSession{UserID: userID, TokenHash: hash, ExpiresAt: expiresAt}
}

func TestRefreshSessionStore_ReplaceSupersedesPriorSession(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()
	userID := uuid.New()
	expiresAt := time.Now().Add(time.Hour).Truncate(time.Millisecond)

	require.NoError(t, store.Replace(ctx, newSession(userID, "hash-1", expiresAt)))
	require.NoError(t, store.Replace(ctx, newSession(userID, "hash-2", expiresAt)))

	_, err := store.FindByTokenHash(ctx, "hash-1")
	assert.ErrorIs(t, err, repository.ErrRefreshSessionNotFound)

	session, err := store.FindByTokenHash(ctx, "hash-2")
	require.NoError(t, err)
	assert.Equal(t, userID, session.UserID)
	assert.Equal(t, "hash-2", session.TokenHash)
	assert.True(t, expiresAt.Equal(session.ExpiresAt))
	assert.NotEqual(t, uuid.Nil, session.ID)
}

func TestRefreshSessionStore_ConcurrentReplaceLeavesOneSession(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()
	userID := uuid.New()
	expiresAt := time.Now().Add(time.Hour)

	hashes := []string{"a", "b", "c", "d", "e", "f", "g", "h"}
	var wg sync.WaitGroup
	for _, hash := range hashes {
		wg.Add(1)
		go func(hash string) {
			defer wg.Done()
			assert.NoError(t, store.Replace(ctx, newSession(userID, hash, expiresAt)))
		}(hash)
	}
	wg.Wait()

	live := 0
	for _, hash := range hashes {
		if _, err := store.FindByTokenHash(ctx, hash); err == nil {
			live++
		}
	}
	assert.Equal(t, 1, live)

	indexCount := 0
	for _, key := range mr.Keys() {
		if strings.HasPrefix(key, store.tokenKeyPrefix()) {
			indexCount++
		}
	}
	assert.Equal(t, 1, indexCount)
}

func TestRefreshSessionStore_RotateIsCompareAndSwap(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()
	userID := uuid.New()
	expiresAt := time.Now().Add(time.Hour)

	require.NoError(t, store.Replace(ctx, newSession(userID, "old", expiresAt)))

	require.NoError(t, store.Rotate(ctx, "old", newSession(userID, "new", expiresAt)))
	err := store.Rotate(ctx, "old", newSession(userID, "other", expiresAt))
	assert.ErrorIs(t, err, repository.ErrRefreshSessionNotFound)

	_, err = store.FindByTokenHash(ctx, "old")
	assert.ErrorIs(t, err, repository.ErrRefreshSessionNotFound)
	_, err = store.FindByTokenHash(ctx, "other")
	assert.ErrorIs(t, err, repository.ErrRefreshSessionNotFound)

	session, err := store.FindByTokenHash(ctx, "new")
	require.NoError(t, err)
	assert.Equal(t, userID, session.UserID)
}

func TestRefreshSessionStore_DeleteByTokenHashAndUserID(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()
	first, second := uuid.New(), uuid.New()
	expiresAt := time.Now().Add(time.Hour)

	require.NoError(t, store.Replace(ctx, newSession(first, "first", expiresAt)))
	require.NoError(t, store.Replace(ctx, newSession(second, "second", expiresAt)))

	require.NoError(t, store.DeleteByTokenHash(ctx, "first"))
	require.NoError(t, store.DeleteByTokenHash(ctx, "first"), "deleting twice is not an error")
	_, err := store.FindByTokenHash(ctx, "first")
	assert.ErrorIs(t, err, repository.ErrRefreshSessionNotFound)

	require.NoError(t, store.DeleteByUserID(ctx, second))
	require.NoError(t, store.DeleteByUserID(ctx, second))
	_, err = store.FindByTokenHash(ctx, "second")
	assert.ErrorIs(t, err, repository.ErrRefreshSessionNotFound)
}

func TestRefreshSessionStore_ExpiredSessionStaysVisibleUntilSwept(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()
	now := time.Now()

	expired := uuid.New()
	live := uuid.New()
	require.NoError(t, store.Replace(ctx, newSession(expired, "expired", now.Add(-time.Minute))))
	require.NoError(t, store.Replace(ctx, newSession(live, "live", now.Add(time.Hour))))

	session, err := store.FindByTokenHash(ctx, "expired")
	require.NoError(t, err)
	assert.True(t, session.IsExpired(now))

	deleted, err := store.DeleteExpired(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	_, err = store.FindByTokenHash(ctx, "expired")
	assert.ErrorIs(t, err, repository.ErrRefreshSessionNotFound)
	_, err = store.FindByTokenHash(ctx, "live")
	assert.NoError(t, err)
}

func TestRefreshSessionStore_KeysExpireAfterGrace(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Replace(ctx, newSession(uuid.New(), "short", time.Now().Add(time.Minute))))

	mr.FastForward(time.Minute + expiryGrace + time.Second)

	_, err := store.FindByTokenHash(ctx, "short")
	assert.ErrorIs(t, err, repository.ErrRefreshSessionNotFound)
}
