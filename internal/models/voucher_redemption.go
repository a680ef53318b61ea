package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// VoucherRedemption 优惠券核销记录（由异步任务写入）
type VoucherRedemption struct {
	ID         string    `gorm:"primaryKey;type:varchar(36)" json:"_id"`    // 主键
	VoucherID  string    `gorm:"index;type:varchar(36);not null" json:"voucherId"` // 优惠券ID
	Code       string    `gorm:"size:20;not null" json:"code"`              // 核销时的优惠码
	UsedCount  int       `gorm:"not null" json:"usedCount"`                 // 核销后的已用次数
	UsageLimit int       `gorm:"not null" json:"usageLimit"`                // 核销时的上限
	RedeemedAt time.Time `gorm:"index;not null" json:"redeemedAt"`          // 核销时间
	CreatedAt  time.Time `json:"createdAt"`                                 // 写入时间
}

// TableName 指定表名
func (VoucherRedemption) TableName() string {
	return "voucher_redemptions"
}

// BeforeCreate 分配主键
func (r *VoucherRedemption) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	r.RedeemedAt = r.RedeemedAt.UTC()
	return nil
}
