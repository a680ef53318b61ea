package cache

import (
	"context"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/salon-next/internal/config"

	"github.com/redis/go-redis/v9"
)

const (
	defaultKeyPrefix  = "salon"
	redisDialTimeout  = 3 * time.Second
	redisIOTimeout    = 2 * time.Second
	redisPingDeadline = 2 * time.Second
)

var (
	redisClient *redis.Client
	redisPrefix = defaultKeyPrefix
)

// InitRedis 按配置创建客户端；未启用时清空已有客户端
func InitRedis(cfg *config.RedisConfig) error {
	if cfg == nil || !cfg.Enabled {
		redisClient = nil
		return nil
	}
	redisPrefix = strings.TrimSpace(cfg.Prefix)
	if redisPrefix == "" {
		redisPrefix = defaultKeyPrefix
	}
	redisClient = redis.NewClient(clientOptions(cfg))
	return nil
}

func clientOptions(cfg *config.RedisConfig) *redis.Options {
	host := strings.TrimSpace(cfg.Host)
	if host == "" {
		host = "127.0.0.1"
	}
	port := cfg.Port
	if port <= 0 {
		port = 6379
	}
	return &redis.Options{
		Addr:         net.JoinHostPort(host, strconv.Itoa(port)),
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  redisDialTimeout,
		ReadTimeout:  redisIOTimeout,
		WriteTimeout: redisIOTimeout,
	}
}

// Enabled Redis 是否可用
func Enabled() bool {
	return redisClient != nil
}

// Client 当前客户端，未启用时为 nil
func Client() *redis.Client {
	return redisClient
}

// Ping 探测连通性
func Ping(ctx context.Context) error {
	if !Enabled() {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, redisPingDeadline)
	defer cancel()
	return redisClient.Ping(ctx).Err()
}

// Close 关闭客户端
func Close() error {
	if !Enabled() {
		return nil
	}
	client := redisClient
	redisClient = nil
	return client.Close()
}

// Key 拼接业务前缀
func Key(key string) string {
	return buildKey(key)
}

func buildKey(key string) string {
	key = strings.TrimSpace(key)
	switch {
	case key == "":
		return redisPrefix
	case redisPrefix == "":
		return key
	default:
		return redisPrefix + ":" + key
	}
}
