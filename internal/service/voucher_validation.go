package service

import (
	"errors"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/salon-next/internal/constants"
	"github.com/salon-next/internal/models"

	"github.com/go-playground/validator/v10"
)

// VoucherFields 优惠券可写字段（创建与合并更新后的完整输入）
type VoucherFields struct {
	Code        string        `json:"code" validate:"required,max=20"`
	Title       string        `json:"title" validate:"required,max=50"`
	Description string        `json:"description" validate:"max=200"`
	Discount    *models.Money `json:"discount" validate:"required,min=0"`
	Type        string        `json:"type" validate:"required,oneof=percentage fixed"`
	ValidFrom   *time.Time    `json:"validFrom" validate:"required"`
	ValidUntil  *time.Time    `json:"validUntil" validate:"required"`
	MinSpend    models.Money  `json:"minSpend" validate:"min=0"`
	MaxDiscount *models.Money `json:"maxDiscount" validate:"omitempty,min=0"`
	UsageLimit  *int          `json:"usageLimit" validate:"required,min=1"`
	UsedCount   int           `json:"usedCount" validate:"min=0"`
	Category    string        `json:"category" validate:"required,oneof=general first-time premium loyalty special"`
	Active      bool          `json:"active"`
}

// voucherFieldMessages 以 "字段.规则" 为键的错误提示
var voucherFieldMessages = map[string]string{
	"code.required":        "Voucher code is required",
	"code.max":             "Voucher code cannot exceed 20 characters",
	"title.required":       "Title is required",
	"title.max":            "Title cannot exceed 50 characters",
	"description.max":      "Description cannot exceed 200 characters",
	"discount.required":    "Discount value is required",
	"discount.min":         "Discount cannot be negative",
	"type.required":        "Voucher type is required",
	"type.oneof":           "Voucher type must be percentage or fixed",
	"validFrom.required":   "Start date is required",
	"validUntil.required":  "Expiry date is required",
	"minSpend.min":         "Minimum spend cannot be negative",
	"maxDiscount.min":      "Maximum discount cannot be negative",
	"usageLimit.required":  "Usage limit is required",
	"usageLimit.min":       "Usage limit must be at least 1",
	"usedCount.min":        "Used count cannot be negative",
	"category.required":    "Category is required",
	"category.oneof":       "Category must be one of general, first-time, premium, loyalty, special",
}

var (
	fieldValidatorOnce sync.Once
	fieldValidator     *validator.Validate
)

// fieldValidate 共享校验器：金额按浮点比较，字段名取 json 标签
func fieldValidate() *validator.Validate {
	fieldValidatorOnce.Do(func() {
		v := validator.New()
		v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
			if m, ok := field.Interface().(models.Money); ok {
				return m.Decimal.InexactFloat64()
			}
			return nil
		}, models.Money{})
		v.RegisterTagNameFunc(func(field reflect.StructField) string {
			name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		fieldValidator = v
	})
	return fieldValidator
}

// firstFieldError 将校验器错误转换为首个字段的 ValidationError
func firstFieldError(err error, messages map[string]string) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return newValidationError("", err.Error())
	}
	fe := verrs[0]
	if msg, ok := messages[fe.Field()+"."+fe.Tag()]; ok {
		return newValidationError(fe.Field(), msg)
	}
	return newValidationError(fe.Field(), fe.Field()+" is invalid")
}

// NormalizeVoucher 规范化优惠券输入
func NormalizeVoucher(fields VoucherFields) VoucherFields {
	fields.Code = strings.ToUpper(strings.TrimSpace(fields.Code))
	fields.Title = strings.TrimSpace(fields.Title)
	fields.Description = strings.TrimSpace(fields.Description)
	fields.Type = strings.ToLower(strings.TrimSpace(fields.Type))
	if fields.Type == "" {
		fields.Type = constants.VoucherTypePercentage
	}
	fields.Category = strings.ToLower(strings.TrimSpace(fields.Category))
	if fields.Category == "" {
		fields.Category = constants.VoucherCategoryGeneral
	}
	if fields.Type == constants.VoucherTypeFixed {
		fields.MaxDiscount = nil
	}
	return fields
}

// ValidateVoucher 校验优惠券字段，返回第一个不合法字段的 ValidationError
func ValidateVoucher(fields VoucherFields) error {
	if err := fieldValidate().Struct(fields); err != nil {
		return firstFieldError(err, voucherFieldMessages)
	}
	if !fields.ValidUntil.After(*fields.ValidFrom) {
		return newValidationError("validUntil", "Expiry date must be after start date")
	}
	if fields.UsedCount > *fields.UsageLimit {
		return newValidationError("usedCount", "Used count cannot exceed usage limit")
	}
	return nil
}

// fieldsFromVoucher 从已存储记录还原可写字段
func fieldsFromVoucher(v *models.Voucher) VoucherFields {
	discount := v.Discount
	from := v.ValidFrom
	until := v.ValidUntil
	limit := v.UsageLimit
	var maxDiscount *models.Money
	if v.MaxDiscount != nil {
		maxDiscount = models.MoneyPtr(*v.MaxDiscount)
	}
	return VoucherFields{
		Code:        v.Code,
		Title:       v.Title,
		Description: v.Description,
		Discount:    &discount,
		Type:        v.Type,
		ValidFrom:   &from,
		ValidUntil:  &until,
		MinSpend:    v.MinSpend,
		MaxDiscount: maxDiscount,
		UsageLimit:  &limit,
		UsedCount:   v.UsedCount,
		Category:    v.Category,
		Active:      v.Active,
	}
}

// applyVoucherFields 将已校验字段写回记录（不含 used_count）
func applyVoucherFields(v *models.Voucher, fields VoucherFields) {
	v.Code = fields.Code
	v.Title = fields.Title
	v.Description = fields.Description
	v.Discount = *fields.Discount
	v.Type = fields.Type
	v.ValidFrom = *fields.ValidFrom
	v.ValidUntil = *fields.ValidUntil
	v.MinSpend = fields.MinSpend
	v.MaxDiscount = fields.MaxDiscount
	v.UsageLimit = *fields.UsageLimit
	v.Category = fields.Category
	v.Active = fields.Active
}
