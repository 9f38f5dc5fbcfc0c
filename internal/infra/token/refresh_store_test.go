package token

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newRedisStore(t *testing.T) (*RedisRefreshTokenStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisRefreshTokenStore(client, ""), mr
}

func TestRedisRefreshStoreLifecycle(t *testing.T) {
	store, _ := newRedisStore(t)
	ctx := context.Background()

	if err := store.Save(ctx, "a@b", "jti-1", time.Now().Add(time.Hour)); err != nil {
		t.Fatalf("Save: %v", err)
	}
	ok, err := store.Exists(ctx, "a@b", "jti-1")
	if err != nil || !ok {
		t.Fatalf("Exists = %v, %v; want true", ok, err)
	}

	// Outro jti do mesmo admin não conta.
	ok, _ = store.Exists(ctx, "a@b", "jti-2")
	if ok {
		t.Fatal("jti nunca gravado não deveria existir")
	}

	if err := store.Delete(ctx, "a@b", "jti-1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	ok, _ = store.Exists(ctx, "a@b", "jti-1")
	if ok {
		t.Fatal("jti removido não deveria existir")
	}
}

func TestRedisRefreshStoreHonorsTTL(t *testing.T) {
	store, mr := newRedisStore(t)
	ctx := context.Background()

	if err := store.Save(ctx, "a@b", "jti-curto", time.Now().Add(30*time.Second)); err != nil {
		t.Fatalf("Save: %v", err)
	}

	mr.FastForward(time.Minute)

	ok, err := store.Exists(ctx, "a@b", "jti-curto")
	if err != nil {
		t.Fatalf("Exists: %v", err)
	}
	if ok {
		t.Fatal("a chave deveria expirar junto com o token")
	}
}

func TestRedisRefreshStoreEmptyTokenID(t *testing.T) {
	store, _ := newRedisStore(t)
	ctx := context.Background()

	if err := store.Save(ctx, "a@b", "", time.Now().Add(time.Hour)); err == nil {
		t.Fatal("salvar sem jti deveria falhar")
	}
	if err := store.Delete(ctx, "a@b", ""); err != nil {
		t.Fatalf("remover jti vazio deveria ser no-op: %v", err)
	}
	if ok, err := store.Exists(ctx, "a@b", ""); err != nil || ok {
		t.Fatalf("Exists de jti vazio = %v, %v; want false", ok, err)
	}
}
