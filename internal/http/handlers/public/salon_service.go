package public

import (
	"github.com/salon-next/internal/http/handlers/shared"
	"github.com/salon-next/internal/http/response"
	"github.com/salon-next/internal/service"

	"github.com/gin-gonic/gin"
)

// ListServices 获取服务项目列表
func (h *Handler) ListServices(c *gin.Context) {
	page, pageSize := shared.Pagination(c)
	items, total, err := h.CatalogService.List(service.SalonServiceListInput{
		Category: c.Query("category"),
		Active:   shared.QueryBool(c, "active"),
		Search:   c.Query("search"),
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.SuccessWithPage(c, items, len(items), response.NewPagination(page, pageSize, total))
}

// GetService 获取服务项目详情
func (h *Handler) GetService(c *gin.Context) {
	svc, err := h.CatalogService.GetByID(c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, gin.H{"success": true, "data": svc})
}
