package service

import (
	"strings"

	"github.com/salon-next/internal/models"
)

// QuoteInput 试算输入
type QuoteInput struct {
	Code     string       `json:"code"`
	Subtotal models.Money `json:"subtotal"`
}

// VoucherQuote 试算结果
type VoucherQuote struct {
	Voucher  *models.Voucher `json:"voucher"`
	Discount models.Money    `json:"discount"`
	Total    models.Money    `json:"total"`
}

// ComputeDiscount 计算优惠金额：百分比券受 maxDiscount 封顶，结果不超过小计
func ComputeDiscount(voucher *models.Voucher, subtotal models.Money) models.Money {
	zero := models.ZeroMoney()
	if voucher == nil || !subtotal.IsPositive() {
		return zero
	}
	amount := voucher.Discount
	if !voucher.IsFixed() {
		amount = subtotal.Percent(voucher.Discount)
		if voucher.MaxDiscount != nil {
			amount = amount.Clamp(zero, *voucher.MaxDiscount)
		}
	}
	return amount.Clamp(zero, subtotal)
}

// Quote 按优惠码试算，不修改使用次数
func (s *VoucherService) Quote(input QuoteInput) (*VoucherQuote, error) {
	code := strings.ToUpper(strings.TrimSpace(input.Code))
	if code == "" {
		return nil, newValidationError("code", "Voucher code is required")
	}
	if input.Subtotal.IsNegative() {
		return nil, newValidationError("subtotal", "Subtotal cannot be negative")
	}

	voucher, err := s.repo.GetByCode(code)
	if err != nil {
		return nil, wrapStorage("voucher_get_by_code", err)
	}
	if voucher == nil {
		return nil, ErrVoucherNotFound
	}

	now := s.now()
	if err := checkRedeemable(voucher, now); err != nil {
		return nil, err
	}
	if voucher.Exhausted() {
		return nil, ErrVoucherExhausted
	}
	if input.Subtotal.Decimal.LessThan(voucher.MinSpend.Decimal) {
		return nil, ErrVoucherMinSpend
	}

	discount := ComputeDiscount(voucher, input.Subtotal)
	voucher.Decorate(now)
	return &VoucherQuote{
		Voucher:  voucher,
		Discount: discount,
		Total:    input.Subtotal.Sub(discount),
	}, nil
}
