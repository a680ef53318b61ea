package repository

import "time"

// VoucherListFilter 查询优惠券列表的过滤条件
type VoucherListFilter struct {
	Category string
	Active   *bool
	Usable   bool      // 仅返回启用、未过期且未用尽的优惠券
	Now      time.Time // Usable 判定时刻，零值取当前时间
}

// SalonServiceListFilter 查询服务项目列表的过滤条件
type SalonServiceListFilter struct {
	Page     int
	PageSize int
	Category string
	Active   *bool
	Search   string
}
