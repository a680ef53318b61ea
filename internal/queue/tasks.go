package queue

import (
	"encoding/json"
	"time"

	"github.com/salon-next/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskVoucherRedeemed 优惠券核销审计任务
	TaskVoucherRedeemed = constants.TaskVoucherRedeemed
)

// VoucherRedeemedPayload 核销任务载荷（核销成功后的快照）
type VoucherRedeemedPayload struct {
	VoucherID  string    `json:"voucher_id"`
	Code       string    `json:"code"`
	UsedCount  int       `json:"used_count"`
	UsageLimit int       `json:"usage_limit"`
	RedeemedAt time.Time `json:"redeemed_at"`
}

// NewVoucherRedeemedTask 创建核销审计任务
func NewVoucherRedeemedTask(payload VoucherRedeemedPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskVoucherRedeemed, body), nil
}

// ParseVoucherRedeemedPayload 解析核销任务载荷
func ParseVoucherRedeemedPayload(body []byte) (VoucherRedeemedPayload, error) {
	var payload VoucherRedeemedPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return VoucherRedeemedPayload{}, err
	}
	return payload, nil
}
