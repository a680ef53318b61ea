package service

import (
	"strings"

	"github.com/salon-next/internal/constants"
	"github.com/salon-next/internal/logger"
	"github.com/salon-next/internal/models"
	"github.com/salon-next/internal/repository"

	"github.com/google/uuid"
)

// CatalogService 沙龙服务项目管理
type CatalogService struct {
	repo repository.SalonServiceRepository
}

// NewCatalogService 创建服务项目管理服务
func NewCatalogService(repo repository.SalonServiceRepository) *CatalogService {
	return &CatalogService{repo: repo}
}

// serviceCategories 服务项目分类（保持展示大小写）
var serviceCategories = []string{
	constants.ServiceCategoryHair,
	constants.ServiceCategorySkincare,
	constants.ServiceCategoryNails,
	constants.ServiceCategoryBeauty,
	constants.ServiceCategoryWellness,
}

// SalonServiceFields 服务项目可写字段
type SalonServiceFields struct {
	Name        string        `json:"name" validate:"required,max=100"`
	Description string        `json:"description" validate:"required"`
	Price       *models.Money `json:"price" validate:"required,min=0"`
	Duration    *int          `json:"duration" validate:"required,min=1"`
	Category    string        `json:"category" validate:"required,oneof=Hair Skincare Nails Beauty Wellness"`
	Active      bool          `json:"active"`
}

// SalonServiceInput 创建/更新服务项目输入
type SalonServiceInput struct {
	Name        *string       `json:"name"`
	Description *string       `json:"description"`
	Price       *models.Money `json:"price"`
	Duration    *int          `json:"duration"`
	Category    *string       `json:"category"`
	Active      *bool         `json:"active"`
}

// SalonServiceListInput 服务项目列表筛选
type SalonServiceListInput struct {
	Category string
	Active   *bool
	Search   string
	Page     int
	PageSize int
}

var salonServiceFieldMessages = map[string]string{
	"name.required":        "Please add a service name",
	"name.max":             "Service name cannot exceed 100 characters",
	"description.required": "Please add a description",
	"price.required":       "Please add a price",
	"price.min":            "Price cannot be negative",
	"duration.required":    "Please add a duration",
	"duration.min":         "Duration must be at least 1 minute",
	"category.required":    "Please select a category",
	"category.oneof":       "Category must be one of Hair, Skincare, Nails, Beauty, Wellness",
}

// normalizeServiceCategory 分类不区分大小写匹配
func normalizeServiceCategory(raw string) string {
	raw = strings.TrimSpace(raw)
	for _, c := range serviceCategories {
		if strings.EqualFold(c, raw) {
			return c
		}
	}
	return raw
}

// NormalizeSalonService 规范化服务项目字段
func NormalizeSalonService(fields SalonServiceFields) SalonServiceFields {
	fields.Name = strings.TrimSpace(fields.Name)
	fields.Description = strings.TrimSpace(fields.Description)
	fields.Category = normalizeServiceCategory(fields.Category)
	return fields
}

// ValidateSalonService 校验服务项目字段
func ValidateSalonService(fields SalonServiceFields) error {
	if err := fieldValidate().Struct(fields); err != nil {
		return firstFieldError(err, salonServiceFieldMessages)
	}
	return nil
}

func mergeSalonServiceInput(fields *SalonServiceFields, input SalonServiceInput) {
	if input.Name != nil {
		fields.Name = *input.Name
	}
	if input.Description != nil {
		fields.Description = *input.Description
	}
	if input.Price != nil {
		fields.Price = models.MoneyPtr(*input.Price)
	}
	if input.Duration != nil {
		duration := *input.Duration
		fields.Duration = &duration
	}
	if input.Category != nil {
		fields.Category = *input.Category
	}
	if input.Active != nil {
		fields.Active = *input.Active
	}
}

func applySalonServiceFields(svc *models.SalonService, fields SalonServiceFields) {
	svc.Name = fields.Name
	svc.Description = fields.Description
	svc.Price = *fields.Price
	svc.Duration = *fields.Duration
	svc.Category = fields.Category
	svc.Active = fields.Active
}

// Create 创建服务项目
func (s *CatalogService) Create(input SalonServiceInput) (*models.SalonService, error) {
	fields := SalonServiceFields{Active: true}
	mergeSalonServiceInput(&fields, input)
	fields = NormalizeSalonService(fields)
	if err := ValidateSalonService(fields); err != nil {
		return nil, err
	}

	exist, err := s.repo.GetByName(fields.Name)
	if err != nil {
		return nil, wrapStorage("service_get_by_name", err)
	}
	if exist != nil {
		return nil, ErrServiceNameDuplicate
	}

	svc := &models.SalonService{}
	applySalonServiceFields(svc, fields)
	if err := s.repo.Create(svc); err != nil {
		if repository.IsDuplicateKeyError(err) {
			return nil, ErrServiceNameDuplicate
		}
		return nil, wrapStorage("service_create", err)
	}
	logger.Infow("service_created", "service_id", svc.ID, "name", svc.Name)
	return svc, nil
}

// GetByID 获取服务项目详情
func (s *CatalogService) GetByID(id string) (*models.SalonService, error) {
	if _, err := uuid.Parse(strings.TrimSpace(id)); err != nil {
		return nil, ErrServiceNotFound
	}
	svc, err := s.repo.GetByID(strings.TrimSpace(id))
	if err != nil {
		return nil, wrapStorage("service_get", err)
	}
	if svc == nil {
		return nil, ErrServiceNotFound
	}
	return svc, nil
}

// List 获取服务项目列表
func (s *CatalogService) List(input SalonServiceListInput) ([]models.SalonService, int64, error) {
	category := ""
	if strings.TrimSpace(input.Category) != "" {
		category = normalizeServiceCategory(input.Category)
	}
	items, total, err := s.repo.List(repository.SalonServiceListFilter{
		Category: category,
		Active:   input.Active,
		Search:   input.Search,
		Page:     input.Page,
		PageSize: input.PageSize,
	})
	if err != nil {
		return nil, 0, wrapStorage("service_list", err)
	}
	return items, total, nil
}

// Update 部分更新服务项目
func (s *CatalogService) Update(id string, input SalonServiceInput) (*models.SalonService, error) {
	existing, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	price := existing.Price
	duration := existing.Duration
	fields := SalonServiceFields{
		Name:        existing.Name,
		Description: existing.Description,
		Price:       &price,
		Duration:    &duration,
		Category:    existing.Category,
		Active:      existing.Active,
	}
	mergeSalonServiceInput(&fields, input)
	fields = NormalizeSalonService(fields)
	if err := ValidateSalonService(fields); err != nil {
		return nil, err
	}

	if fields.Name != existing.Name {
		dup, err := s.repo.GetByName(fields.Name)
		if err != nil {
			return nil, wrapStorage("service_get_by_name", err)
		}
		if dup != nil && dup.ID != existing.ID {
			return nil, ErrServiceNameDuplicate
		}
	}

	applySalonServiceFields(existing, fields)
	if err := s.repo.Update(existing); err != nil {
		if repository.IsDuplicateKeyError(err) {
			return nil, ErrServiceNameDuplicate
		}
		return nil, wrapStorage("service_update", err)
	}
	logger.Infow("service_updated", "service_id", existing.ID, "name", existing.Name)
	return existing, nil
}

// SetActive 切换上架状态
func (s *CatalogService) SetActive(id string, active bool) (*models.SalonService, error) {
	if _, err := uuid.Parse(strings.TrimSpace(id)); err != nil {
		return nil, ErrServiceNotFound
	}
	id = strings.TrimSpace(id)
	found, err := s.repo.UpdateActive(id, active)
	if err != nil {
		return nil, wrapStorage("service_update_active", err)
	}
	if !found {
		return nil, ErrServiceNotFound
	}
	logger.Infow("service_status_changed", "service_id", id, "active", active)
	return s.GetByID(id)
}

// Delete 删除服务项目
func (s *CatalogService) Delete(id string) error {
	if _, err := uuid.Parse(strings.TrimSpace(id)); err != nil {
		return ErrServiceNotFound
	}
	removed, err := s.repo.Delete(strings.TrimSpace(id))
	if err != nil {
		return wrapStorage("service_delete", err)
	}
	if !removed {
		return ErrServiceNotFound
	}
	logger.Infow("service_deleted", "service_id", id)
	return nil
}
