package worker

import (
	"context"
	"errors"
	"time"

	"github.com/salon-next/internal/config"
	"github.com/salon-next/internal/logger"
	"github.com/salon-next/internal/queue"

	"github.com/hibiken/asynq"
)

const voucherReportInterval = 10 * time.Minute

// Service 异步队列服务，托管 asynq server 与定时报告
type Service struct {
	server   *asynq.Server
	mux      *asynq.ServeMux
	consumer *Consumer
	interval time.Duration
}

// NewService 创建异步队列服务，队列未启用时报错
func NewService(cfg *config.QueueConfig, consumer *Consumer) (*Service, error) {
	if cfg == nil || !cfg.Enabled {
		return nil, errors.New("queue disabled")
	}
	if consumer == nil {
		return nil, errors.New("consumer is nil")
	}
	opt, serverCfg := queue.BuildServerConfig(cfg)
	mux := asynq.NewServeMux()
	mux.Use(taskLogMiddleware)
	consumer.Register(mux)
	return &Service{
		server:   asynq.NewServer(opt, serverCfg),
		mux:      mux,
		consumer: consumer,
		interval: voucherReportInterval,
	}, nil
}

// Name 服务名称
func (s *Service) Name() string {
	return "worker"
}

// Start 启动消费并阻塞到 ctx 结束
func (s *Service) Start(ctx context.Context) error {
	if s == nil || s.server == nil || s.mux == nil {
		return errors.New("worker not initialized")
	}
	if err := s.server.Start(s.mux); err != nil {
		return err
	}
	if s.consumer.Container != nil && s.consumer.VoucherService != nil {
		go s.runVoucherReportLoop(ctx)
	}
	<-ctx.Done()
	return nil
}

// Stop 等待进行中的任务结束，超出 ctx 期限时直接返回
func (s *Service) Stop(ctx context.Context) error {
	if s == nil || s.server == nil {
		return nil
	}
	done := make(chan struct{})
	go func() {
		s.server.Shutdown()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// taskLogMiddleware 记录每个任务的耗时与结果
func taskLogMiddleware(next asynq.Handler) asynq.Handler {
	return asynq.HandlerFunc(func(ctx context.Context, task *asynq.Task) error {
		started := time.Now()
		err := next.ProcessTask(ctx, task)
		taskID, _ := asynq.GetTaskID(ctx)
		if err != nil {
			logger.Warnw("worker_task_failed", "task_type", task.Type(), "task_id", taskID, "elapsed", time.Since(started), "error", err)
			return err
		}
		logger.Debugw("worker_task_done", "task_type", task.Type(), "task_id", taskID, "elapsed", time.Since(started))
		return nil
	})
}

// runVoucherReportLoop 定期输出优惠券使用概况
func (s *Service) runVoucherReportLoop(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		s.reportVoucherUsage()
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func (s *Service) reportVoucherUsage() {
	stats, err := s.consumer.VoucherService.GetStats()
	if err != nil {
		logger.Warnw("worker_voucher_report_failed", "error", err)
		return
	}
	logger.Infow("worker_voucher_report",
		"total_vouchers", stats.TotalVouchers,
		"active_vouchers", stats.ActiveVouchers,
		"expired_vouchers", stats.ExpiredVouchers,
		"total_usage", stats.TotalUsage,
	)
}
