package cache

import (
	"context"
	"testing"

	"github.com/salon-next/internal/config"
)

func TestInitRedisDisabled(t *testing.T) {
	if err := InitRedis(&config.RedisConfig{Enabled: false}); err != nil {
		t.Fatalf("init disabled redis failed: %v", err)
	}
	if Enabled() || Client() != nil {
		t.Fatalf("disabled redis should expose no client")
	}
	if err := Ping(context.Background()); err != nil {
		t.Fatalf("ping on disabled redis should be a no-op, got %v", err)
	}
}

func TestInitRedisPrefixAndKey(t *testing.T) {
	if err := InitRedis(&config.RedisConfig{Enabled: true, Host: "127.0.0.1", Port: 6379}); err != nil {
		t.Fatalf("init redis failed: %v", err)
	}
	t.Cleanup(func() { _ = Close() })

	if got := Key("rate:redeem"); got != "salon:rate:redeem" {
		t.Fatalf("key want salon:rate:redeem got %s", got)
	}
	if got := Key("  "); got != "salon" {
		t.Fatalf("empty key want prefix got %s", got)
	}
}

func TestClientOptionsDefaults(t *testing.T) {
	opts := clientOptions(&config.RedisConfig{Host: " ", DB: 2})
	if opts.Addr != "127.0.0.1:6379" || opts.DB != 2 {
		t.Fatalf("unexpected options: addr=%s db=%d", opts.Addr, opts.DB)
	}
	if opts.DialTimeout <= 0 || opts.ReadTimeout <= 0 {
		t.Fatalf("timeouts should be set")
	}
}
