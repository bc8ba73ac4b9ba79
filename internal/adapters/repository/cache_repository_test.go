package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestCache(t *testing.T) (*miniredis.Miniredis, *CacheRepositoryImpl) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return mr, &CacheRepositoryImpl{client: client}
}

func TestCacheSetGetDelete(t *testing.T) {
	_, cache := newTestCache(t)
	ctx := context.Background()

	if err := cache.Set(ctx, "k", "42", time.Minute); err != nil {
		t.Fatalf("Set: %v", err)
	}

	value, ok, err := cache.Get(ctx, "k")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !ok || value != "42" {
		t.Fatalf("Get = (%q, %t), want (42, true)", value, ok)
	}

	if err := cache.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	if _, ok, err := cache.Get(ctx, "k"); err != nil || ok {
		t.Fatalf("Get after delete = (ok=%t, err=%v), want miss", ok, err)
	}
}

func TestCacheMissIsNotAnError(t *testing.T) {
	_, cache := newTestCache(t)

	value, ok, err := cache.Get(context.Background(), "absent")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if ok || value != "" {
		t.Fatalf("Get = (%q, %t), want empty miss", value, ok)
	}
}

func TestCacheExpiry(t *testing.T) {
	mr, cache := newTestCache(t)
	ctx := context.Background()

	if err := cache.Set(ctx, "k", "1", time.Second); err != nil {
		t.Fatalf("Set: %v", err)
	}

	mr.FastForward(2 * time.Second)

	if _, ok, err := cache.Get(ctx, "k"); err != nil || ok {
		t.Fatalf("Get after expiry = (ok=%t, err=%v), want miss", ok, err)
	}
}
