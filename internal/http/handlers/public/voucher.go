package public

import (
	"github.com/salon-next/internal/http/handlers/shared"
	"github.com/salon-next/internal/http/response"
	"github.com/salon-next/internal/service"

	"github.com/gin-gonic/gin"
)

// QuoteVoucher 按优惠码试算折扣
func (h *Handler) QuoteVoucher(c *gin.Context) {
	var req service.QuoteInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	quote, err := h.VoucherService.Quote(req)
	if err != nil {
		respondRedeemError(c, err)
		return
	}
	response.Success(c, quote)
}

// RedeemVoucher 核销优惠券
func (h *Handler) RedeemVoucher(c *gin.Context) {
	voucher, err := h.VoucherService.Redeem(c.Param("id"))
	if err != nil {
		respondRedeemError(c, err)
		return
	}
	shared.RequestLog(c).Infow("voucher_redeem_succeeded", "voucher_id", voucher.ID, "used_count", voucher.UsedCount)
	response.Success(c, gin.H{"redeemed": true, "voucher": voucher})
}
