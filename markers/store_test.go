package markers

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestRedis(t *testing.T) *redis.Client {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	return redis.NewClient(&redis.Options{Addr: mr.Addr()})
}

func testMarkers() Markers {
	return Markers{
		AdminAuthenticated: true,
		AdminLoginTime:     time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
		AdminToken:         "tok",
	}
}

func runStoreContract(t *testing.T, store Store) {
	t.Helper()
	ctx := context.Background()

	if _, present, err := store.Get(ctx); err != nil || present {
		t.Fatalf("fresh store: present=%t err=%v", present, err)
	}

	want := testMarkers()
	if err := store.Put(ctx, want); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	got, present, err := store.Get(ctx)
	if err != nil || !present {
		t.Fatalf("Get after Put: present=%t err=%v", present, err)
	}
	if got.AdminAuthenticated != want.AdminAuthenticated ||
		got.AdminToken != want.AdminToken ||
		!got.AdminLoginTime.Equal(want.AdminLoginTime) {
		t.Errorf("markers = %+v, want %+v", got, want)
	}

	// Put replaces, not merges.
	second := Markers{AdminAuthenticated: true, AdminLoginTime: want.AdminLoginTime}
	if err := store.Put(ctx, second); err != nil {
		t.Fatalf("second Put failed: %v", err)
	}
	got, _, _ = store.Get(ctx)
	if got.AdminToken != "" {
		t.Errorf("token must not survive a replacing Put, got %q", got.AdminToken)
	}

	if err := store.Clear(ctx); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if _, present, err := store.Get(ctx); err != nil || present {
		t.Fatalf("after Clear: present=%t err=%v", present, err)
	}

	// Clear is idempotent.
	if err := store.Clear(ctx); err != nil {
		t.Fatalf("second Clear failed: %v", err)
	}
}

func TestMemoryStoreContract(t *testing.T) {
	runStoreContract(t, NewMemoryStore())
}

func TestRedisStoreContract(t *testing.T) {
	runStoreContract(t, NewRedisStore(newTestRedis(t), "af"))
}

func TestRedisStoreKeyPrefix(t *testing.T) {
	rdb := newTestRedis(t)
	ctx := context.Background()

	a := NewRedisStore(rdb, "tenant-a")
	b := NewRedisStore(rdb, "tenant-b")

	if err := a.Put(ctx, testMarkers()); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	if _, present, _ := b.Get(ctx); present {
		t.Error("prefixes must isolate marker sets")
	}
}

func TestRedisStoreCorruptBlobTreatedAsAbsent(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis: %v", err)
	}
	t.Cleanup(mr.Close)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	store := NewRedisStore(rdb, "af")
	if err := mr.Set("af:markers:admin", "{not json"); err != nil {
		t.Fatalf("seed corrupt value: %v", err)
	}

	_, present, err := store.Get(context.Background())
	if err != nil {
		t.Fatalf("corrupt blob must not error: %v", err)
	}
	if present {
		t.Error("corrupt blob must read as absent")
	}
}

func TestRedisStoreDefaultPrefix(t *testing.T) {
	store := NewRedisStore(newTestRedis(t), "")
	if store.key != "af:markers:admin" {
		t.Errorf("key = %q", store.key)
	}
}
