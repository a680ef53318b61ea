package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SalonService 沙龙服务项目
type SalonService struct {
	ID          string    `gorm:"primaryKey;type:varchar(36)" json:"_id"`         // 主键
	Name        string    `gorm:"size:100;uniqueIndex;not null" json:"name"`      // 名称
	Description string    `gorm:"type:text;not null" json:"description"`          // 描述
	Price       Money     `gorm:"type:decimal(20,2);not null" json:"price"`       // 价格
	Duration    int       `gorm:"not null" json:"duration"`                       // 时长（分钟）
	Category    string    `gorm:"size:20;index;not null" json:"category"`         // 分类
	Active      bool      `gorm:"index;not null" json:"active"`                   // 是否上架
	CreatedAt   time.Time `gorm:"index" json:"createdAt"`                         // 创建时间
	UpdatedAt   time.Time `json:"updatedAt"`                                      // 更新时间
}

// TableName 指定表名
func (SalonService) TableName() string {
	return "services"
}

// BeforeCreate 分配主键
func (s *SalonService) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}
