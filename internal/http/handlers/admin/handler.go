package admin

import "github.com/salon-next/internal/provider"

// Handler 管理接口处理器入口
// 说明：优惠券与服务项目的增删改、统计与核销记录查询。
type Handler struct {
	*provider.Container
}

// New 创建管理处理器
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
