package worker

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/salon-next/internal/config"
	"github.com/salon-next/internal/models"
	"github.com/salon-next/internal/provider"
	"github.com/salon-next/internal/queue"

	"github.com/glebarez/sqlite"
	"github.com/hibiken/asynq"
	"gorm.io/gorm"
)

func setupConsumerTest(t *testing.T) (*Consumer, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:worker_%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Voucher{}, &models.VoucherRedemption{}, &models.SalonService{}); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	return NewConsumer(provider.NewContainerWithDB(&config.Config{}, db, nil)), db
}

func TestHandleVoucherRedeemedStoresRedemption(t *testing.T) {
	consumer, db := setupConsumerTest(t)

	task, err := queue.NewVoucherRedeemedTask(queue.VoucherRedeemedPayload{
		VoucherID:  "6a1f7f5e-0000-4000-8000-000000000001",
		Code:       "SAVE10",
		UsedCount:  3,
		UsageLimit: 3,
		RedeemedAt: time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("build task failed: %v", err)
	}
	if err := consumer.handleVoucherRedeemed(context.Background(), task); err != nil {
		t.Fatalf("handle task failed: %v", err)
	}

	var rows []models.VoucherRedemption
	if err := db.Find(&rows).Error; err != nil {
		t.Fatalf("load redemptions failed: %v", err)
	}
	if len(rows) != 1 || rows[0].Code != "SAVE10" || rows[0].UsedCount != 3 {
		t.Fatalf("unexpected redemption rows: %+v", rows)
	}
}

func TestHandleVoucherRedeemedSkipsRetryOnBadPayload(t *testing.T) {
	consumer, _ := setupConsumerTest(t)

	err := consumer.handleVoucherRedeemed(context.Background(), asynq.NewTask(queue.TaskVoucherRedeemed, []byte("{not json")))
	if !errors.Is(err, asynq.SkipRetry) {
		t.Fatalf("malformed payload should skip retry, got %v", err)
	}

	task, err := queue.NewVoucherRedeemedTask(queue.VoucherRedeemedPayload{Code: "SAVE10"})
	if err != nil {
		t.Fatalf("build task failed: %v", err)
	}
	err = consumer.handleVoucherRedeemed(context.Background(), task)
	if !errors.Is(err, asynq.SkipRetry) {
		t.Fatalf("missing voucher id should skip retry, got %v", err)
	}
}

func TestNewServiceRequiresEnabledQueue(t *testing.T) {
	if _, err := NewService(&config.QueueConfig{}, &Consumer{}); err == nil {
		t.Fatalf("disabled queue should not build a worker")
	}
	if _, err := NewService(&config.QueueConfig{Enabled: true}, nil); err == nil {
		t.Fatalf("nil consumer should not build a worker")
	}
}

func TestTaskLogMiddlewarePassesResult(t *testing.T) {
	boom := errors.New("boom")
	calls := 0
	handler := taskLogMiddleware(asynq.HandlerFunc(func(context.Context, *asynq.Task) error {
		calls++
		if calls == 1 {
			return boom
		}
		return nil
	}))
	task := asynq.NewTask(queue.TaskVoucherRedeemed, nil)

	if err := handler.ProcessTask(context.Background(), task); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped handler error, got %v", err)
	}
	if err := handler.ProcessTask(context.Background(), task); err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if calls != 2 {
		t.Fatalf("handler should run twice, ran %d", calls)
	}
}

func TestServiceStopWithoutServer(t *testing.T) {
	var svc *Service
	if err := svc.Stop(context.Background()); err != nil {
		t.Fatalf("nil service stop should be a no-op, got %v", err)
	}
	if err := (&Service{}).Start(context.Background()); err == nil {
		t.Fatalf("uninitialized service should refuse to start")
	}
}
