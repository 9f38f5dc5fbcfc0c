package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newRedisLimiter(t *testing.T) (*RedisLimiter, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisLimiter(client, "test"), mr
}

func TestRedisLimiterBlocksAfterLimit(t *testing.T) {
	limiter, _ := newRedisLimiter(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		res, err := limiter.Allow(ctx, "ip:1.2.3.4", 3, time.Minute)
		if err != nil {
			t.Fatalf("Allow #%d: %v", i+1, err)
		}
		if !res.Allowed {
			t.Fatalf("requisição %d dentro do limite foi bloqueada", i+1)
		}
		if res.Remaining != 3-(i+1) {
			t.Fatalf("Remaining = %d após %d requisições", res.Remaining, i+1)
		}
	}

	res, err := limiter.Allow(ctx, "ip:1.2.3.4", 3, time.Minute)
	if err != nil {
		t.Fatalf("Allow: %v", err)
	}
	if res.Allowed {
		t.Fatal("a quarta requisição deveria ser bloqueada")
	}
	if res.RetryAfter <= 0 {
		t.Fatalf("RetryAfter = %v, deveria ser positivo", res.RetryAfter)
	}
}

func TestRedisLimiterWindowResets(t *testing.T) {
	limiter, mr := newRedisLimiter(t)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if _, err := limiter.Allow(ctx, "ip:reset", 1, time.Minute); err != nil {
			t.Fatalf("Allow: %v", err)
		}
	}

	mr.FastForward(2 * time.Minute)

	res, err := limiter.Allow(ctx, "ip:reset", 1, time.Minute)
	if err != nil {
		t.Fatalf("Allow: %v", err)
	}
	if !res.Allowed {
		t.Fatal("a janela expirada deveria liberar a chave de novo")
	}
}

func TestRedisLimiterKeysAreIndependent(t *testing.T) {
	limiter, _ := newRedisLimiter(t)
	ctx := context.Background()

	if _, err := limiter.Allow(ctx, "ip:a", 1, time.Minute); err != nil {
		t.Fatalf("Allow: %v", err)
	}
	res, err := limiter.Allow(ctx, "ip:b", 1, time.Minute)
	if err != nil {
		t.Fatalf("Allow: %v", err)
	}
	if !res.Allowed {
		t.Fatal("chaves diferentes não deveriam compartilhar contador")
	}
}

func TestLimiterZeroLimitDisables(t *testing.T) {
	limiter, _ := newRedisLimiter(t)
	res, err := limiter.Allow(context.Background(), "ip:x", 0, time.Minute)
	if err != nil || !res.Allowed {
		t.Fatalf("limite zero deveria desligar o limitador: %+v, %v", res, err)
	}

	mem := NewMemoryLimiter()
	res, err = mem.Allow(context.Background(), "ip:x", 0, time.Minute)
	if err != nil || !res.Allowed {
		t.Fatalf("limite zero deveria desligar o limitador em memória: %+v, %v", res, err)
	}
}

func TestMemoryLimiterBlocksAfterLimit(t *testing.T) {
	limiter := NewMemoryLimiter()
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		res, err := limiter.Allow(ctx, "ip:mem", 2, time.Minute)
		if err != nil || !res.Allowed {
			t.Fatalf("requisição %d deveria passar: %+v, %v", i+1, res, err)
		}
	}

	res, err := limiter.Allow(ctx, "ip:mem", 2, time.Minute)
	if err != nil {
		t.Fatalf("Allow: %v", err)
	}
	if res.Allowed {
		t.Fatal("a terceira requisição deveria ser bloqueada")
	}

	count, remaining := limiter.Peek("ip:mem")
	if count != 3 || remaining <= 0 {
		t.Fatalf("Peek = %d, %v", count, remaining)
	}
}

func TestMemoryLimiterWindowResets(t *testing.T) {
	limiter := NewMemoryLimiter()
	ctx := context.Background()

	if _, err := limiter.Allow(ctx, "ip:janela", 1, time.Millisecond); err != nil {
		t.Fatalf("Allow: %v", err)
	}
	time.Sleep(5 * time.Millisecond)

	res, err := limiter.Allow(ctx, "ip:janela", 1, time.Millisecond)
	if err != nil || !res.Allowed {
		t.Fatalf("janela expirada deveria liberar: %+v, %v", res, err)
	}
}
