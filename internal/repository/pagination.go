package repository

import "gorm.io/gorm"

// Page 列表查询的分页窗口
type Page struct {
	Number int
	Size   int
}

// Offset 计算偏移量，页码从 1 开始
func (p Page) Offset() int {
	if p.Number < 1 {
		return 0
	}
	return (p.Number - 1) * p.Size
}

// paginate 返回分页 scope；Size 不大于 0 时返回全部
func paginate(p Page) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if p.Size <= 0 {
			return db
		}
		return db.Offset(p.Offset()).Limit(p.Size)
	}
}
