package queue

import (
	"testing"
	"time"

	"github.com/salon-next/internal/config"
)

func TestVoucherRedeemedTaskRoundTrip(t *testing.T) {
	at := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	task, err := NewVoucherRedeemedTask(VoucherRedeemedPayload{
		VoucherID:  "v-1",
		Code:       "SAVE10",
		UsedCount:  3,
		UsageLimit: 5,
		RedeemedAt: at,
	})
	if err != nil {
		t.Fatalf("new task failed: %v", err)
	}
	if task.Type() != TaskVoucherRedeemed {
		t.Fatalf("task type want %s got %s", TaskVoucherRedeemed, task.Type())
	}

	payload, err := ParseVoucherRedeemedPayload(task.Payload())
	if err != nil {
		t.Fatalf("parse payload failed: %v", err)
	}
	if payload.Code != "SAVE10" || payload.UsedCount != 3 || !payload.RedeemedAt.Equal(at) {
		t.Fatalf("unexpected payload: %+v", payload)
	}
}

func TestDisabledClientSkipsEnqueue(t *testing.T) {
	client, err := NewClient(&config.QueueConfig{Enabled: false})
	if err != nil {
		t.Fatalf("new client failed: %v", err)
	}
	if client.Enabled() {
		t.Fatalf("client should be disabled")
	}
	if err := client.EnqueueVoucherRedeemed(VoucherRedeemedPayload{VoucherID: "v-1"}); err != nil {
		t.Fatalf("disabled enqueue should be a no-op, got %v", err)
	}

	var nilClient *Client
	if nilClient.Enabled() {
		t.Fatalf("nil client should be disabled")
	}
}

func TestBuildServerConfigDefaults(t *testing.T) {
	opt, cfg := BuildServerConfig(&config.QueueConfig{Host: " redis.local ", Port: 6380})
	if opt.Addr != "redis.local:6380" {
		t.Fatalf("addr want redis.local:6380 got %s", opt.Addr)
	}
	if cfg.Concurrency != 10 {
		t.Fatalf("concurrency want 10 got %d", cfg.Concurrency)
	}
	if cfg.Queues[CriticalQueue] != 2 || cfg.Queues[DefaultQueue] != 1 {
		t.Fatalf("unexpected queues: %+v", cfg.Queues)
	}
}

func TestBuildServerConfigWiresLoggingAndWeights(t *testing.T) {
	_, cfg := BuildServerConfig(&config.QueueConfig{
		Concurrency: 4,
		Queues:      map[string]int{"critical": 6, " default ": 3, "low": 0, "": 2},
	})
	if cfg.Concurrency != 4 {
		t.Fatalf("concurrency want 4 got %d", cfg.Concurrency)
	}
	if len(cfg.Queues) != 2 || cfg.Queues["critical"] != 6 || cfg.Queues["default"] != 3 {
		t.Fatalf("unexpected queues: %+v", cfg.Queues)
	}
	if cfg.Logger == nil || cfg.ErrorHandler == nil {
		t.Fatalf("logger and error handler should be set")
	}
	if cfg.ShutdownTimeout <= 0 {
		t.Fatalf("shutdown timeout should be positive")
	}
}

func TestRedemptionTaskIDPerUsage(t *testing.T) {
	first := RedemptionTaskID(VoucherRedeemedPayload{VoucherID: " v-1 ", UsedCount: 1})
	again := RedemptionTaskID(VoucherRedeemedPayload{VoucherID: "v-1", UsedCount: 1})
	second := RedemptionTaskID(VoucherRedeemedPayload{VoucherID: "v-1", UsedCount: 2})
	if first != again {
		t.Fatalf("same redemption should share task id: %s vs %s", first, again)
	}
	if first == second {
		t.Fatalf("different usages should not share task id")
	}
}
