package admin

import (
	"strings"

	"github.com/salon-next/internal/http/handlers/shared"
	"github.com/salon-next/internal/http/response"
	"github.com/salon-next/internal/service"

	"github.com/gin-gonic/gin"
)

// ListVouchers 获取优惠券列表
func (h *Handler) ListVouchers(c *gin.Context) {
	vouchers, err := h.VoucherService.List(service.VoucherListInput{
		Category: c.Query("category"),
		Active:   shared.QueryBool(c, "active"),
		Usable:   strings.EqualFold(strings.TrimSpace(c.Query("usable")), "true"),
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, gin.H{"vouchers": vouchers})
}

// CreateVoucher 创建优惠券
func (h *Handler) CreateVoucher(c *gin.Context) {
	var req service.VoucherInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	voucher, err := h.VoucherService.Create(req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Created(c, voucher)
}

// GetVoucherStats 获取优惠券统计
func (h *Handler) GetVoucherStats(c *gin.Context) {
	stats, err := h.VoucherService.GetStats()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, stats)
}

// GetVoucher 获取优惠券详情
func (h *Handler) GetVoucher(c *gin.Context) {
	voucher, err := h.VoucherService.GetByID(c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, gin.H{"voucher": voucher, "message": "Voucher retrieved successfully"})
}

// UpdateVoucher 更新优惠券
func (h *Handler) UpdateVoucher(c *gin.Context) {
	var req service.VoucherInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	voucher, err := h.VoucherService.Update(c.Param("id"), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, gin.H{"voucher": voucher, "message": "Voucher is successfully updated"})
}

// DeleteVoucher 删除优惠券
func (h *Handler) DeleteVoucher(c *gin.Context) {
	if err := h.VoucherService.Delete(c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, gin.H{"message": "Voucher deleted successfully"})
}

// ListVoucherRedemptions 获取优惠券核销记录
func (h *Handler) ListVoucherRedemptions(c *gin.Context) {
	page, pageSize := shared.Pagination(c)
	items, total, err := h.VoucherService.ListRedemptions(c.Param("id"), page, pageSize)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.SuccessWithPage(c, items, len(items), response.NewPagination(page, pageSize, total))
}
