package public

import "github.com/salon-next/internal/provider"

// Handler 前台接口处理器入口
// 说明：服务项目浏览、优惠券试算与核销。
type Handler struct {
	*provider.Container
}

// New 创建前台处理器
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
