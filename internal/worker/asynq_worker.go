package worker

import (
	"context"
	"errors"
	"fmt"

	"github.com/salon-next/internal/logger"
	"github.com/salon-next/internal/provider"
	"github.com/salon-next/internal/queue"
	"github.com/salon-next/internal/service"

	"github.com/hibiken/asynq"
)

// Consumer 异步任务消费者
type Consumer struct {
	*provider.Container
}

// NewConsumer 创建消费者
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register 注册消费者
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskVoucherRedeemed, c.handleVoucherRedeemed)
}

func (c *Consumer) handleVoucherRedeemed(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_voucher_redeemed_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	payload, err := queue.ParseVoucherRedeemedPayload(task.Payload())
	if err != nil {
		logger.Warnw("worker_voucher_redeemed_unmarshal_failed", "error", err)
		return fmt.Errorf("%w: %v", asynq.SkipRetry, err)
	}
	if c.VoucherService == nil {
		logger.Warnw("worker_voucher_redeemed_skip_service_nil", "voucher_id", payload.VoucherID)
		return nil
	}
	if err := c.VoucherService.RecordRedemption(payload); err != nil {
		var verr *service.ValidationError
		if errors.As(err, &verr) {
			logger.Debugw("worker_voucher_redeemed_skip_invalid_payload", "field", verr.Field, "message", verr.Message)
			return fmt.Errorf("%w: %v", asynq.SkipRetry, err)
		}
		logger.Warnw("worker_voucher_redeemed_record_failed",
			"voucher_id", payload.VoucherID,
			"code", payload.Code,
			"error", err,
		)
		return err
	}
	return nil
}
