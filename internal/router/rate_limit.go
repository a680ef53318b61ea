package router

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/salon-next/internal/config"
	"github.com/salon-next/internal/http/response"
	"github.com/salon-next/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// RateLimitKeyFunc 生成限流 key 的函数
type RateLimitKeyFunc func(*gin.Context) string

// RateLimitRule 固定窗口限流规则
type RateLimitRule struct {
	Prefix        string
	WindowSeconds int
	MaxRequests   int
	Message       string
}

// NewRateLimitRule 由配置生成规则
func NewRateLimitRule(prefix string, cfg config.RateLimitConfig, message string) RateLimitRule {
	return RateLimitRule{
		Prefix:        prefix,
		WindowSeconds: cfg.WindowSeconds,
		MaxRequests:   cfg.MaxRequests,
		Message:       message,
	}
}

func (r RateLimitRule) disabled() bool {
	return r.WindowSeconds <= 0 || r.MaxRequests <= 0
}

func (r RateLimitRule) window() time.Duration {
	return time.Duration(r.WindowSeconds) * time.Second
}

// windowDecision 单个窗口内的判定结果
type windowDecision struct {
	allowed    bool
	remaining  int
	retryAfter int
}

// decide 根据窗口计数与剩余 TTL 判定是否放行
func (r RateLimitRule) decide(count int64, ttl time.Duration) windowDecision {
	remaining := r.MaxRequests - int(count)
	if remaining >= 0 {
		return windowDecision{allowed: true, remaining: remaining}
	}
	wait := int(ttl / time.Second)
	if wait < 1 {
		wait = r.WindowSeconds
	}
	if wait < 1 {
		wait = 1
	}
	return windowDecision{retryAfter: wait}
}

// hitWindow 计数加一；窗口 key 无过期时间时补设
func hitWindow(ctx context.Context, client *redis.Client, key string, window time.Duration) (int64, time.Duration, error) {
	var incr *redis.IntCmd
	var ttl *redis.DurationCmd
	if _, err := client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, key)
		ttl = pipe.TTL(ctx, key)
		return nil
	}); err != nil {
		return 0, 0, err
	}
	remaining := ttl.Val()
	if remaining < 0 {
		if err := client.Expire(ctx, key, window).Err(); err != nil {
			return 0, 0, err
		}
		remaining = window
	}
	return incr.Val(), remaining, nil
}

// RateLimitMiddleware Redis 固定窗口限流；client 为空或 Redis 出错时放行
func RateLimitMiddleware(client *redis.Client, rule RateLimitRule, keyFunc RateLimitKeyFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		if client == nil || rule.disabled() {
			c.Next()
			return
		}

		key := ""
		if keyFunc != nil {
			key = strings.TrimSpace(keyFunc(c))
		}
		if key == "" {
			key = c.ClientIP()
		}
		if rule.Prefix != "" {
			key = rule.Prefix + ":" + key
		}

		count, ttl, err := hitWindow(c.Request.Context(), client, key, rule.window())
		if err != nil {
			logger.Warnw("rate_limit_unavailable", "key", key, "error", err)
			c.Next()
			return
		}

		decision := rule.decide(count, ttl)
		c.Header("X-RateLimit-Limit", strconv.Itoa(rule.MaxRequests))
		if decision.allowed {
			c.Header("X-RateLimit-Remaining", strconv.Itoa(decision.remaining))
			c.Next()
			return
		}

		msg := strings.TrimSpace(rule.Message)
		if msg == "" {
			msg = "Too many requests"
		}
		c.Header("X-RateLimit-Remaining", "0")
		c.Header("Retry-After", strconv.Itoa(decision.retryAfter))
		logger.Infow("rate_limit_rejected", "key", key, "count", count)
		response.Abort(c, response.WrapError(response.CodeTooManyRequests, response.KindRateLimited,
			fmt.Sprintf("%s, retry in %d seconds", msg, decision.retryAfter), nil))
	}
}

// KeyByIP 使用 IP 作为限流 key
func KeyByIP(c *gin.Context) string {
	return c.ClientIP()
}

// KeyByIPAndParam 路由参数 + IP
func KeyByIPAndParam(param string) RateLimitKeyFunc {
	return func(c *gin.Context) string {
		return joinKey(c.Param(param), c.ClientIP())
	}
}

// KeyByIPAndJSONField JSON 字段（小写）+ IP，读取后恢复请求体
func KeyByIPAndJSONField(field string) RateLimitKeyFunc {
	return func(c *gin.Context) string {
		return joinKey(strings.ToLower(peekJSONField(c, field)), c.ClientIP())
	}
}

func joinKey(value, ip string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ip
	}
	return value + "|" + ip
}

func peekJSONField(c *gin.Context, field string) string {
	if c == nil || c.Request == nil || c.Request.Body == nil {
		return ""
	}
	body, err := io.ReadAll(c.Request.Body)
	c.Request.Body = io.NopCloser(bytes.NewReader(body))
	if err != nil || len(body) == 0 {
		return ""
	}
	var payload map[string]json.RawMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	var text string
	if err := json.Unmarshal(payload[field], &text); err != nil {
		return ""
	}
	return strings.TrimSpace(text)
}
