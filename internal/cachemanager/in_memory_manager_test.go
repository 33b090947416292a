package cachemanager

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type login struct {
	Username string
	Password string
}

type sessionKey string

func TestNewInMemoryCacheManager(t *testing.T) {
	require.NotPanics(t, func() {
		NewInMemoryCacheManager[string, string]("test", DefaultExpiration, DefaultCleanupInterval)
	})
}

func TestInMemoryCacheManager_GetExistingValue_StructType(t *testing.T) {
	cache := NewInMemoryCacheManager[string, login]("credentials", DefaultExpiration, DefaultCleanupInterval)
	want := login{Username: "printer", Password: "secret"}
	cache.Set(context.Background(), "credentials", want, DefaultExpiration)

	got, ok := cache.Get(context.Background(), "credentials")
	require.True(t, ok)
	require.Equal(t, want, got)
}

func TestInMemoryCacheManager_TypedKey(t *testing.T) {
	cache := NewInMemoryCacheManager[sessionKey, string]("sessions", DefaultExpiration, DefaultCleanupInterval)
	cache.Set(context.Background(), sessionKey("ybs"), "cookie", DefaultExpiration)

	got, ok := cache.Get(context.Background(), "ybs")
	require.True(t, ok)
	require.Equal(t, "cookie", got)
}

func TestInMemoryCacheManager_GetWithNoExistingValue(t *testing.T) {
	cache := NewInMemoryCacheManager[string, string]("credentials", DefaultExpiration, DefaultCleanupInterval)

	got, ok := cache.Get(context.Background(), "credentials")
	require.False(t, ok)
	require.Empty(t, got)
}

func TestInMemoryCacheManager_GetWithExistingInvalidValueType(t *testing.T) {
	cache := NewInMemoryCacheManager[string, string]("credentials", DefaultExpiration, DefaultCleanupInterval)

	cache.cache.Set("credentials", 123, DefaultExpiration)

	got, ok := cache.Get(context.Background(), "credentials")
	require.False(t, ok)
	require.Empty(t, got)
}

func TestInMemoryCacheManager_Expires(t *testing.T) {
	cache := NewInMemoryCacheManager[string, string]("credentials", DefaultExpiration, DefaultCleanupInterval)
	cache.Set(context.Background(), "credentials", "secret", 20*time.Millisecond)

	require.Eventually(t, func() bool {
		_, ok := cache.Get(context.Background(), "credentials")
		return !ok
	}, time.Second, 10*time.Millisecond)
}

func TestInMemoryCacheManager_GetWithRefresh_WithNoExistingValue(t *testing.T) {
	cache := NewInMemoryCacheManager[string, string]("credentials", DefaultExpiration, DefaultCleanupInterval)

	got, ok := cache.GetWithRefresh(context.Background(), "credentials", time.Hour)
	require.False(t, ok)
	require.Equal(t, "", got)
}

func TestInMemoryCacheManager_GetWithRefresh_ExtendsTTL(t *testing.T) {
	cache := NewInMemoryCacheManager[string, string]("credentials", DefaultExpiration, DefaultCleanupInterval)
	cache.Set(context.Background(), "credentials", "secret", 50*time.Millisecond)

	got, ok := cache.GetWithRefresh(context.Background(), "credentials", time.Hour)
	require.True(t, ok)
	require.Equal(t, "secret", got)

	time.Sleep(80 * time.Millisecond)
	_, ok = cache.Get(context.Background(), "credentials")
	require.True(t, ok, "refresh should have extended the ttl")
}

func TestInMemoryCacheManager_DeleteWithNoKeysDoesNothing(t *testing.T) {
	cache := NewInMemoryCacheManager[string, string]("credentials", DefaultExpiration, DefaultCleanupInterval)

	err := cache.Delete(context.Background())
	require.NoError(t, err)
}

func TestInMemoryCacheManager_DeleteExistingValue(t *testing.T) {
	cache := NewInMemoryCacheManager[string, string]("credentials", DefaultExpiration, DefaultCleanupInterval)
	cache.Set(context.Background(), "credentials", "secret", DefaultExpiration)

	err := cache.Delete(context.Background(), "credentials")
	require.NoError(t, err)

	got, ok := cache.Get(context.Background(), "credentials")
	require.False(t, ok)
	require.Equal(t, "", got)
}

func TestInMemoryCacheManager_Flush(t *testing.T) {
	cache := NewInMemoryCacheManager[string, string]("credentials", DefaultExpiration, DefaultCleanupInterval)
	cache.Set(context.Background(), "a", "1", DefaultExpiration)
	cache.Set(context.Background(), "b", "2", DefaultExpiration)

	require.NoError(t, cache.Flush(context.Background()))

	_, ok := cache.Get(context.Background(), "a")
	require.False(t, ok)
	_, ok = cache.Get(context.Background(), "b")
	require.False(t, ok)
}
