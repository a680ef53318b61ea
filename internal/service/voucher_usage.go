package service

import (
	"errors"
	"strings"
	"time"

	"github.com/salon-next/internal/logger"
	"github.com/salon-next/internal/models"
	"github.com/salon-next/internal/queue"
)

// IncrementUsage 原子地记录一次使用：成功返回 true，次数已满返回 false 且不修改数据
func (s *VoucherService) IncrementUsage(id string) (bool, error) {
	if !isVoucherID(id) {
		return false, ErrVoucherNotFound
	}
	id = strings.TrimSpace(id)
	ok, err := s.repo.IncrementUsedCount(id)
	if err != nil {
		return false, wrapStorage("voucher_increment_usage", err)
	}
	if ok {
		return true, nil
	}
	// 未命中：区分记录不存在与次数已满
	existing, err := s.repo.GetByID(id)
	if err != nil {
		return false, wrapStorage("voucher_get", err)
	}
	if existing == nil {
		return false, ErrVoucherNotFound
	}
	return false, nil
}

// checkRedeemable 校验启用状态与有效期
func checkRedeemable(voucher *models.Voucher, now time.Time) error {
	switch {
	case !voucher.Active:
		return ErrVoucherInactive
	case !voucher.Started(now):
		return ErrVoucherNotStarted
	case voucher.Expired(now):
		return ErrVoucherExpired
	}
	return nil
}

// Redeem 核销优惠券：校验可用性后原子扣减次数，核销记录取本次扣减后的次数快照
func (s *VoucherService) Redeem(id string) (*models.Voucher, error) {
	voucher, err := s.load(id)
	if err != nil {
		return nil, err
	}
	now := s.now()
	if err := checkRedeemable(voucher, now); err != nil {
		logger.Infow("voucher_redeem_refused", "voucher_id", voucher.ID, "code", voucher.Code, "reason", err.Error())
		return nil, err
	}

	redeemed, err := s.repo.ConsumeUsage(voucher.ID)
	if err != nil {
		return nil, wrapStorage("voucher_consume_usage", err)
	}
	if redeemed == nil {
		if _, err := s.load(voucher.ID); err != nil {
			return nil, err
		}
		logger.Infow("voucher_redeem_refused", "voucher_id", voucher.ID, "code", voucher.Code, "reason", ErrVoucherExhausted.Error())
		return nil, ErrVoucherExhausted
	}
	redeemed.Decorate(now)
	logger.Infow("voucher_redeemed",
		"voucher_id", redeemed.ID,
		"code", redeemed.Code,
		"used_count", redeemed.UsedCount,
		"usage_limit", redeemed.UsageLimit,
	)

	payload := queue.VoucherRedeemedPayload{
		VoucherID:  redeemed.ID,
		Code:       redeemed.Code,
		UsedCount:  redeemed.UsedCount,
		UsageLimit: redeemed.UsageLimit,
		RedeemedAt: now,
	}
	if s.queueClient.Enabled() {
		if err := s.queueClient.EnqueueVoucherRedeemed(payload); err != nil {
			logger.Warnw("voucher_enqueue_redeemed_failed", "voucher_id", redeemed.ID, "error", err)
		}
	} else if err := s.RecordRedemption(payload); err != nil {
		logger.Warnw("voucher_record_redemption_failed", "voucher_id", redeemed.ID, "error", err)
	}
	return redeemed, nil
}

// RecordRedemption 写入核销审计记录
func (s *VoucherService) RecordRedemption(payload queue.VoucherRedeemedPayload) error {
	if s.redemptionRepo == nil {
		return errors.New("redemption repository is not configured")
	}
	if strings.TrimSpace(payload.VoucherID) == "" {
		return newValidationError("voucherId", "Voucher id is required")
	}
	redeemedAt := payload.RedeemedAt
	if redeemedAt.IsZero() {
		redeemedAt = s.now()
	}
	record := &models.VoucherRedemption{
		VoucherID:  payload.VoucherID,
		Code:       payload.Code,
		UsedCount:  payload.UsedCount,
		UsageLimit: payload.UsageLimit,
		RedeemedAt: redeemedAt,
	}
	if err := s.redemptionRepo.Create(record); err != nil {
		return wrapStorage("voucher_redemption_create", err)
	}
	if payload.UsageLimit > 0 && payload.UsedCount >= payload.UsageLimit {
		logger.Infow("voucher_usage_exhausted", "voucher_id", payload.VoucherID, "code", payload.Code, "usage_limit", payload.UsageLimit)
	}
	return nil
}

// ListRedemptions 分页查询核销记录
func (s *VoucherService) ListRedemptions(id string, page, pageSize int) ([]models.VoucherRedemption, int64, error) {
	voucher, err := s.load(id)
	if err != nil {
		return nil, 0, err
	}
	if s.redemptionRepo == nil {
		return []models.VoucherRedemption{}, 0, nil
	}
	items, total, err := s.redemptionRepo.ListByVoucher(voucher.ID, page, pageSize)
	if err != nil {
		return nil, 0, wrapStorage("voucher_redemption_list", err)
	}
	return items, total, nil
}
