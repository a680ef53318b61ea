package admin

import (
	"github.com/salon-next/internal/http/response"
	"github.com/salon-next/internal/service"

	"github.com/gin-gonic/gin"
)

// UpdateServiceStatusRequest 上架状态请求
type UpdateServiceStatusRequest struct {
	Active *bool `json:"active" binding:"required"`
}

// CreateService 创建服务项目
func (h *Handler) CreateService(c *gin.Context) {
	var req service.SalonServiceInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	svc, err := h.CatalogService.Create(req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Created(c, gin.H{"success": true, "data": svc})
}

// UpdateService 更新服务项目
func (h *Handler) UpdateService(c *gin.Context) {
	var req service.SalonServiceInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	svc, err := h.CatalogService.Update(c.Param("id"), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, gin.H{"success": true, "data": svc})
}

// UpdateServiceStatus 切换服务项目上架状态
func (h *Handler) UpdateServiceStatus(c *gin.Context) {
	var req UpdateServiceStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	svc, err := h.CatalogService.SetActive(c.Param("id"), *req.Active)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	requestLog(c).Infow("admin_service_status_updated", "service_id", svc.ID, "active", svc.Active)
	response.Success(c, gin.H{"success": true, "data": svc})
}

// DeleteService 删除服务项目
func (h *Handler) DeleteService(c *gin.Context) {
	if err := h.CatalogService.Delete(c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, gin.H{"success": true, "data": gin.H{}})
}
