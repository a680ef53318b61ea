package repository

import (
	"github.com/salon-next/internal/models"

	"gorm.io/gorm"
)

// VoucherRedemptionRepository 核销记录数据访问接口
type VoucherRedemptionRepository interface {
	Create(redemption *models.VoucherRedemption) error
	ListByVoucher(voucherID string, page, pageSize int) ([]models.VoucherRedemption, int64, error)
}

// GormVoucherRedemptionRepository GORM 实现
type GormVoucherRedemptionRepository struct {
	db *gorm.DB
}

// NewVoucherRedemptionRepository 创建核销记录仓库
func NewVoucherRedemptionRepository(db *gorm.DB) *GormVoucherRedemptionRepository {
	return &GormVoucherRedemptionRepository{db: db}
}

// Create 写入核销记录
func (r *GormVoucherRedemptionRepository) Create(redemption *models.VoucherRedemption) error {
	return r.db.Create(redemption).Error
}

// ListByVoucher 按优惠券分页查询核销记录
func (r *GormVoucherRedemptionRepository) ListByVoucher(voucherID string, page, pageSize int) ([]models.VoucherRedemption, int64, error) {
	redemptions := make([]models.VoucherRedemption, 0)
	query := r.db.Model(&models.VoucherRedemption{}).Where("voucher_id = ?", voucherID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	window := Page{Number: page, Size: pageSize}
	if err := query.Scopes(paginate(window)).Order("redeemed_at desc").Find(&redemptions).Error; err != nil {
		return nil, 0, err
	}
	return redemptions, total, nil
}
