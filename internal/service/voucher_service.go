package service

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/salon-next/internal/constants"
	"github.com/salon-next/internal/logger"
	"github.com/salon-next/internal/models"
	"github.com/salon-next/internal/queue"
	"github.com/salon-next/internal/repository"

	"github.com/google/uuid"
)

// VoucherService 优惠券服务：存储、核销台账与统计
type VoucherService struct {
	repo           repository.VoucherRepository
	redemptionRepo repository.VoucherRedemptionRepository
	queueClient    *queue.Client
	now            func() time.Time
}

// NewVoucherService 创建优惠券服务
func NewVoucherService(repo repository.VoucherRepository, redemptionRepo repository.VoucherRedemptionRepository, queueClient *queue.Client) *VoucherService {
	return &VoucherService{
		repo:           repo,
		redemptionRepo: redemptionRepo,
		queueClient:    queueClient,
		now:            time.Now,
	}
}

// OptionalMoney 可显式置空的金额字段（区分未传与 null）
type OptionalMoney struct {
	Set   bool
	Value *models.Money
}

// UnmarshalJSON 记录字段已传入，null 表示清空
func (o *OptionalMoney) UnmarshalJSON(b []byte) error {
	o.Set = true
	if string(b) == "null" {
		o.Value = nil
		return nil
	}
	var m models.Money
	if err := json.Unmarshal(b, &m); err != nil {
		return err
	}
	o.Value = &m
	return nil
}

// VoucherInput 创建/更新优惠券输入，未传字段保持原值
type VoucherInput struct {
	Code        *string          `json:"code"`
	Title       *string          `json:"title"`
	Description *string          `json:"description"`
	Discount    *models.Money    `json:"discount"`
	Type        *string          `json:"type"`
	ValidFrom   *models.FlexTime `json:"validFrom"`
	ValidUntil  *models.FlexTime `json:"validUntil"`
	MinSpend    *models.Money    `json:"minSpend"`
	MaxDiscount OptionalMoney    `json:"maxDiscount"`
	UsageLimit  *int             `json:"usageLimit"`
	Category    *string          `json:"category"`
	Active      *bool            `json:"active"`
}

// VoucherListInput 优惠券列表筛选
type VoucherListInput struct {
	Category string
	Active   *bool
	Usable   bool
}

// VoucherStats 优惠券统计
type VoucherStats struct {
	TotalVouchers   int64 `json:"totalVouchers"`
	ActiveVouchers  int64 `json:"activeVouchers"`
	TotalUsage      int64 `json:"totalUsage"`
	ExpiredVouchers int64 `json:"expiredVouchers"`
}

// mergeVoucherInput 将输入中已传入的字段覆盖到 fields
func mergeVoucherInput(fields *VoucherFields, input VoucherInput) {
	if input.Code != nil {
		fields.Code = *input.Code
	}
	if input.Title != nil {
		fields.Title = *input.Title
	}
	if input.Description != nil {
		fields.Description = *input.Description
	}
	if input.Discount != nil {
		fields.Discount = models.MoneyPtr(*input.Discount)
	}
	if input.Type != nil {
		fields.Type = *input.Type
	}
	if input.ValidFrom != nil {
		from := input.ValidFrom.Time
		fields.ValidFrom = &from
	}
	if input.ValidUntil != nil {
		until := input.ValidUntil.Time
		fields.ValidUntil = &until
	}
	if input.MinSpend != nil {
		fields.MinSpend = *input.MinSpend
	}
	if input.MaxDiscount.Set {
		fields.MaxDiscount = input.MaxDiscount.Value
	}
	if input.UsageLimit != nil {
		limit := *input.UsageLimit
		fields.UsageLimit = &limit
	}
	if input.Category != nil {
		fields.Category = *input.Category
	}
	if input.Active != nil {
		fields.Active = *input.Active
	}
}

// isVoucherID 优惠券ID为 UUID，格式不合法视为不存在
func isVoucherID(id string) bool {
	_, err := uuid.Parse(strings.TrimSpace(id))
	return err == nil
}

// Create 创建优惠券
func (s *VoucherService) Create(input VoucherInput) (*models.Voucher, error) {
	fields := VoucherFields{
		Type:     constants.VoucherTypePercentage,
		Category: constants.VoucherCategoryGeneral,
		Active:   true,
	}
	mergeVoucherInput(&fields, input)
	fields = NormalizeVoucher(fields)
	if err := ValidateVoucher(fields); err != nil {
		return nil, err
	}

	exist, err := s.repo.GetByCode(fields.Code)
	if err != nil {
		return nil, wrapStorage("voucher_get_by_code", err)
	}
	if exist != nil {
		return nil, ErrVoucherCodeDuplicate
	}

	voucher := &models.Voucher{}
	applyVoucherFields(voucher, fields)
	voucher.UsedCount = 0
	if err := s.repo.Create(voucher); err != nil {
		if repository.IsDuplicateKeyError(err) {
			return nil, ErrVoucherCodeDuplicate
		}
		return nil, wrapStorage("voucher_create", err)
	}

	voucher.Decorate(s.now())
	logger.Infow("voucher_created", "voucher_id", voucher.ID, "code", voucher.Code, "type", voucher.Type)
	return voucher, nil
}

// GetByID 获取优惠券详情
func (s *VoucherService) GetByID(id string) (*models.Voucher, error) {
	voucher, err := s.load(id)
	if err != nil {
		return nil, err
	}
	voucher.Decorate(s.now())
	return voucher, nil
}

// List 获取优惠券列表
func (s *VoucherService) List(input VoucherListInput) ([]models.Voucher, error) {
	now := s.now()
	vouchers, err := s.repo.List(repository.VoucherListFilter{
		Category: strings.ToLower(strings.TrimSpace(input.Category)),
		Active:   input.Active,
		Usable:   input.Usable,
		Now:      now,
	})
	if err != nil {
		return nil, wrapStorage("voucher_list", err)
	}
	models.DecorateVouchers(vouchers, now)
	return vouchers, nil
}

// Update 合并部分字段后重新规范化与校验
func (s *VoucherService) Update(id string, input VoucherInput) (*models.Voucher, error) {
	existing, err := s.load(id)
	if err != nil {
		return nil, err
	}

	fields := fieldsFromVoucher(existing)
	mergeVoucherInput(&fields, input)
	fields = NormalizeVoucher(fields)
	if err := ValidateVoucher(fields); err != nil {
		return nil, err
	}

	if fields.Code != existing.Code {
		dup, err := s.repo.GetByCode(fields.Code)
		if err != nil {
			return nil, wrapStorage("voucher_get_by_code", err)
		}
		if dup != nil && dup.ID != existing.ID {
			return nil, ErrVoucherCodeDuplicate
		}
	}

	applyVoucherFields(existing, fields)
	if err := s.repo.Update(existing); err != nil {
		if repository.IsDuplicateKeyError(err) {
			return nil, ErrVoucherCodeDuplicate
		}
		return nil, wrapStorage("voucher_update", err)
	}

	existing.Decorate(s.now())
	logger.Infow("voucher_updated", "voucher_id", existing.ID, "code", existing.Code)
	return existing, nil
}

// Delete 物理删除优惠券
func (s *VoucherService) Delete(id string) error {
	if !isVoucherID(id) {
		return ErrVoucherNotFound
	}
	removed, err := s.repo.Delete(strings.TrimSpace(id))
	if err != nil {
		return wrapStorage("voucher_delete", err)
	}
	if !removed {
		return ErrVoucherNotFound
	}
	logger.Infow("voucher_deleted", "voucher_id", id)
	return nil
}

// GetStats 单次聚合获取统计
func (s *VoucherService) GetStats() (*VoucherStats, error) {
	row, err := s.repo.Stats(s.now())
	if err != nil {
		return nil, wrapStorage("voucher_stats", err)
	}
	return &VoucherStats{
		TotalVouchers:   row.TotalVouchers,
		ActiveVouchers:  row.ActiveVouchers,
		TotalUsage:      row.TotalUsage,
		ExpiredVouchers: row.ExpiredVouchers,
	}, nil
}

func (s *VoucherService) load(id string) (*models.Voucher, error) {
	if !isVoucherID(id) {
		return nil, ErrVoucherNotFound
	}
	voucher, err := s.repo.GetByID(strings.TrimSpace(id))
	if err != nil {
		return nil, wrapStorage("voucher_get", err)
	}
	if voucher == nil {
		return nil, ErrVoucherNotFound
	}
	return voucher, nil
}
