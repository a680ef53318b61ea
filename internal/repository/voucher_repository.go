package repository

import (
	"errors"
	"time"

	"github.com/salon-next/internal/models"

	"gorm.io/gorm"
)

// VoucherRepository 优惠券数据访问接口
type VoucherRepository interface {
	GetByID(id string) (*models.Voucher, error)
	GetByCode(code string) (*models.Voucher, error)
	Create(voucher *models.Voucher) error
	Update(voucher *models.Voucher) error
	Delete(id string) (bool, error)
	List(filter VoucherListFilter) ([]models.Voucher, error)
	IncrementUsedCount(id string) (bool, error)
	ConsumeUsage(id string) (*models.Voucher, error)
	Stats(now time.Time) (VoucherStatsRow, error)
}

// VoucherStatsRow 优惠券统计聚合结果
type VoucherStatsRow struct {
	TotalVouchers   int64 `gorm:"column:total_vouchers"`
	ActiveVouchers  int64 `gorm:"column:active_vouchers"`
	TotalUsage      int64 `gorm:"column:total_usage"`
	ExpiredVouchers int64 `gorm:"column:expired_vouchers"`
}

// voucherUpdatableColumns 常规更新允许写入的列（used_count 仅由核销路径修改）
var voucherUpdatableColumns = []string{
	"code",
	"title",
	"description",
	"discount",
	"type",
	"valid_from",
	"valid_until",
	"min_spend",
	"max_discount",
	"usage_limit",
	"category",
	"active",
	"updated_at",
}

// GormVoucherRepository GORM 实现
type GormVoucherRepository struct {
	db *gorm.DB
}

// NewVoucherRepository 创建优惠券仓库
func NewVoucherRepository(db *gorm.DB) *GormVoucherRepository {
	return &GormVoucherRepository{db: db}
}

// WithTx 绑定事务
func (r *GormVoucherRepository) WithTx(tx *gorm.DB) *GormVoucherRepository {
	if tx == nil {
		return r
	}
	return &GormVoucherRepository{db: tx}
}

// GetByID 根据ID获取优惠券
func (r *GormVoucherRepository) GetByID(id string) (*models.Voucher, error) {
	var voucher models.Voucher
	if err := r.db.Where("id = ?", id).First(&voucher).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &voucher, nil
}

// GetByCode 根据优惠码获取优惠券
func (r *GormVoucherRepository) GetByCode(code string) (*models.Voucher, error) {
	var voucher models.Voucher
	if err := r.db.Where("code = ?", code).First(&voucher).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &voucher, nil
}

// Create 创建优惠券
func (r *GormVoucherRepository) Create(voucher *models.Voucher) error {
	return translateWriteError(r.db.Create(voucher).Error)
}

// Update 更新优惠券（不包含 used_count）
func (r *GormVoucherRepository) Update(voucher *models.Voucher) error {
	voucher.UpdatedAt = time.Now()
	result := r.db.Model(voucher).Select(voucherUpdatableColumns).Updates(voucher)
	return translateWriteError(result.Error)
}

// Delete 物理删除优惠券，返回是否有记录被删除
func (r *GormVoucherRepository) Delete(id string) (bool, error) {
	result := r.db.Where("id = ?", id).Delete(&models.Voucher{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// List 获取优惠券列表
func (r *GormVoucherRepository) List(filter VoucherListFilter) ([]models.Voucher, error) {
	vouchers := make([]models.Voucher, 0)
	query := r.db.Model(&models.Voucher{})

	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Active != nil {
		query = query.Where("active = ?", *filter.Active)
	}
	if filter.Usable {
		now := filter.Now
		if now.IsZero() {
			now = time.Now()
		}
		query = query.Where("active = ?", true).
			Where("valid_until >= ?", now.UTC()).
			Where("used_count < usage_limit")
	}

	if err := query.Order("created_at desc").Find(&vouchers).Error; err != nil {
		return nil, err
	}
	return vouchers, nil
}

// IncrementUsedCount 条件自增使用次数，仅当 used_count < usage_limit 时生效
func (r *GormVoucherRepository) IncrementUsedCount(id string) (bool, error) {
	result := r.db.Model(&models.Voucher{}).
		Where("id = ?", id).
		Where("used_count < usage_limit").
		UpdateColumns(map[string]interface{}{
			"used_count": gorm.Expr("used_count + ?", 1),
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

// ConsumeUsage 在同一事务内自增并读回记录，返回值即本次核销产生的次数；次数已满或记录不存在时返回 nil
func (r *GormVoucherRepository) ConsumeUsage(id string) (*models.Voucher, error) {
	var consumed *models.Voucher
	err := r.db.Transaction(func(tx *gorm.DB) error {
		txRepo := r.WithTx(tx)
		ok, err := txRepo.IncrementUsedCount(id)
		if err != nil || !ok {
			return err
		}
		consumed, err = txRepo.GetByID(id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return consumed, nil
}

// Stats 单次聚合计算优惠券统计
func (r *GormVoucherRepository) Stats(now time.Time) (VoucherStatsRow, error) {
	var row VoucherStatsRow
	now = now.UTC()
	err := r.db.Model(&models.Voucher{}).
		Select(`COUNT(*) AS total_vouchers,
			COALESCE(SUM(CASE WHEN active = ? AND valid_until > ? THEN 1 ELSE 0 END), 0) AS active_vouchers,
			COALESCE(SUM(used_count), 0) AS total_usage,
			COALESCE(SUM(CASE WHEN valid_until < ? THEN 1 ELSE 0 END), 0) AS expired_vouchers`,
			true, now, now).
		Scan(&row).Error
	if err != nil {
		return VoucherStatsRow{}, err
	}
	return row, nil
}
