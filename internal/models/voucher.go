package models

import (
	"math"
	"time"

	"github.com/salon-next/internal/constants"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Voucher 优惠券（折扣凭证）
type Voucher struct {
	ID          string    `gorm:"primaryKey;type:varchar(36)" json:"_id"`                                   // 主键（UUID）
	Code        string    `gorm:"size:20;uniqueIndex;not null" json:"code"`                                 // 优惠码（大写）
	Title       string    `gorm:"size:50;not null" json:"title"`                                            // 标题
	Description string    `gorm:"size:200" json:"description"`                                              // 描述
	Discount    Money     `gorm:"type:decimal(20,2);not null" json:"discount"`                              // 折扣值（百分比或固定金额）
	Type        string    `gorm:"size:16;not null" json:"type"`                                             // 类型（percentage/fixed）
	ValidFrom   time.Time `gorm:"not null" json:"validFrom"`                                                // 生效时间
	ValidUntil  time.Time `gorm:"index;not null" json:"validUntil"`                                         // 失效时间
	MinSpend    Money     `gorm:"type:decimal(20,2);not null;default:0" json:"minSpend"`                    // 最低消费
	MaxDiscount *Money    `gorm:"type:decimal(20,2)" json:"maxDiscount"`                                    // 最高优惠（仅百分比）
	UsageLimit  int       `gorm:"not null" json:"usageLimit"`                                               // 总使用上限
	UsedCount   int       `gorm:"not null;default:0;check:used_count >= 0 AND used_count <= usage_limit" json:"usedCount"` // 已使用次数
	Category    string    `gorm:"size:20;index;not null" json:"category"`                                   // 分类
	Active      bool      `gorm:"index;not null" json:"active"`                                             // 是否启用
	CreatedAt   time.Time `gorm:"index" json:"createdAt"`                                                   // 创建时间
	UpdatedAt   time.Time `json:"updatedAt"`                                                                // 更新时间

	IsExpired       bool `gorm:"-" json:"isExpired"`
	IsUsable        bool `gorm:"-" json:"isUsable"`
	UsagePercentage int  `gorm:"-" json:"usagePercentage"`
}

// TableName 指定表名
func (Voucher) TableName() string {
	return "vouchers"
}

// BeforeCreate 分配主键
func (v *Voucher) BeforeCreate(tx *gorm.DB) error {
	if v.ID == "" {
		v.ID = uuid.NewString()
	}
	return nil
}

// BeforeSave 时间统一存储为 UTC，保证 sqlite 文本比较有序
func (v *Voucher) BeforeSave(tx *gorm.DB) error {
	v.ValidFrom = v.ValidFrom.UTC()
	v.ValidUntil = v.ValidUntil.UTC()
	return nil
}

// Expired 是否已过期
func (v *Voucher) Expired(now time.Time) bool {
	return v.ValidUntil.Before(now)
}

// Started 是否已到生效时间
func (v *Voucher) Started(now time.Time) bool {
	return !v.ValidFrom.After(now)
}

// Exhausted 是否已用尽
func (v *Voucher) Exhausted() bool {
	return v.UsedCount >= v.UsageLimit
}

// Usable 是否可用：启用、未过期且仍有剩余次数
func (v *Voucher) Usable(now time.Time) bool {
	return v.Active && !v.Expired(now) && v.UsedCount < v.UsageLimit
}

// Usage 使用百分比（四舍五入）
func (v *Voucher) Usage() int {
	if v.UsageLimit <= 0 {
		return 0
	}
	return int(math.Round(float64(v.UsedCount) / float64(v.UsageLimit) * 100))
}

// IsFixed 是否为固定金额券
func (v *Voucher) IsFixed() bool {
	return v.Type == constants.VoucherTypeFixed
}

// Decorate 填充派生字段
func (v *Voucher) Decorate(now time.Time) {
	if v == nil {
		return
	}
	v.IsExpired = v.Expired(now)
	v.IsUsable = v.Usable(now)
	v.UsagePercentage = v.Usage()
}

// DecorateVouchers 批量填充派生字段
func DecorateVouchers(vouchers []Voucher, now time.Time) {
	for i := range vouchers {
		vouchers[i].Decorate(now)
	}
}
