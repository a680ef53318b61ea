package queue

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/salon-next/internal/config"
	"github.com/salon-next/internal/constants"
	"github.com/salon-next/internal/logger"

	"github.com/hibiken/asynq"
)

const (
	// DefaultQueue 默认队列名称
	DefaultQueue = constants.QueueDefault
	// CriticalQueue 高优先级队列（核销审计）
	CriticalQueue = constants.QueueCritical

	redeemedMaxRetry  = 5
	redeemedTimeout   = 30 * time.Second
	redeemedRetention = 24 * time.Hour
	shutdownTimeout   = 8 * time.Second
)

// Client 队列客户端封装，未启用时所有投递均为空操作
type Client struct {
	client *asynq.Client
}

// NewClient 创建队列客户端
func NewClient(cfg *config.QueueConfig) (*Client, error) {
	if cfg == nil || !cfg.Enabled {
		return &Client{}, nil
	}
	return &Client{client: asynq.NewClient(buildRedisOpt(cfg))}, nil
}

// Enabled 判断是否启用
func (c *Client) Enabled() bool {
	return c != nil && c.client != nil
}

// Close 关闭客户端
func (c *Client) Close() error {
	if !c.Enabled() {
		return nil
	}
	return c.client.Close()
}

// EnqueueVoucherRedeemed 投递核销审计任务；同一次核销重复投递只入队一次
func (c *Client) EnqueueVoucherRedeemed(payload VoucherRedeemedPayload, opts ...asynq.Option) error {
	if !c.Enabled() {
		return nil
	}
	task, err := NewVoucherRedeemedTask(payload)
	if err != nil {
		return err
	}
	options := append([]asynq.Option{
		asynq.Queue(CriticalQueue),
		asynq.TaskID(RedemptionTaskID(payload)),
		asynq.MaxRetry(redeemedMaxRetry),
		asynq.Timeout(redeemedTimeout),
		asynq.Retention(redeemedRetention),
	}, opts...)
	if _, err := c.client.Enqueue(task, options...); err != nil {
		if errors.Is(err, asynq.ErrTaskIDConflict) {
			logger.Debugw("queue_voucher_redeemed_duplicate", "voucher_id", payload.VoucherID, "used_count", payload.UsedCount)
			return nil
		}
		return err
	}
	return nil
}

// RedemptionTaskID 以优惠券与核销后次数确定唯一任务
func RedemptionTaskID(payload VoucherRedeemedPayload) string {
	return fmt.Sprintf("%s:%s:%d", TaskVoucherRedeemed, strings.TrimSpace(payload.VoucherID), payload.UsedCount)
}

// BuildServerConfig 生成队列服务配置，日志与失败回调接入 zap
func BuildServerConfig(cfg *config.QueueConfig) (asynq.RedisClientOpt, asynq.Config) {
	concurrency := 10
	if cfg != nil && cfg.Concurrency > 0 {
		concurrency = cfg.Concurrency
	}
	var configured map[string]int
	if cfg != nil {
		configured = cfg.Queues
	}
	return buildRedisOpt(cfg), asynq.Config{
		Concurrency:     concurrency,
		Queues:          queueWeights(configured),
		ShutdownTimeout: shutdownTimeout,
		Logger:          logger.S(),
		ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
			retried, _ := asynq.GetRetryCount(ctx)
			logger.Warnw("queue_task_failed", "task_type", task.Type(), "retried", retried, "error", err)
		}),
	}
}

// queueWeights 丢弃非正权重；为空时使用 default:1 critical:2
func queueWeights(configured map[string]int) map[string]int {
	weights := make(map[string]int, len(configured))
	for name, weight := range configured {
		name = strings.TrimSpace(name)
		if name == "" || weight <= 0 {
			continue
		}
		weights[name] = weight
	}
	if len(weights) == 0 {
		return map[string]int{DefaultQueue: 1, CriticalQueue: 2}
	}
	return weights
}

func buildRedisOpt(cfg *config.QueueConfig) asynq.RedisClientOpt {
	opt := asynq.RedisClientOpt{Addr: "127.0.0.1:6379"}
	if cfg == nil {
		return opt
	}
	host := strings.TrimSpace(cfg.Host)
	if host == "" {
		host = "127.0.0.1"
	}
	port := cfg.Port
	if port <= 0 {
		port = 6379
	}
	opt.Addr = fmt.Sprintf("%s:%d", host, port)
	opt.Password = cfg.Password
	opt.DB = cfg.DB
	return opt
}
