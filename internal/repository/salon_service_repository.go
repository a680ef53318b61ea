package repository

import (
	"errors"

	"github.com/salon-next/internal/models"

	"gorm.io/gorm"
)

// SalonServiceRepository 服务项目数据访问接口
type SalonServiceRepository interface {
	GetByID(id string) (*models.SalonService, error)
	GetByName(name string) (*models.SalonService, error)
	Create(service *models.SalonService) error
	Update(service *models.SalonService) error
	UpdateActive(id string, active bool) (bool, error)
	Delete(id string) (bool, error)
	List(filter SalonServiceListFilter) ([]models.SalonService, int64, error)
}

// GormSalonServiceRepository GORM 实现
type GormSalonServiceRepository struct {
	db *gorm.DB
}

// NewSalonServiceRepository 创建服务项目仓库
func NewSalonServiceRepository(db *gorm.DB) *GormSalonServiceRepository {
	return &GormSalonServiceRepository{db: db}
}

// GetByID 根据ID获取服务项目
func (r *GormSalonServiceRepository) GetByID(id string) (*models.SalonService, error) {
	var service models.SalonService
	if err := r.db.Where("id = ?", id).First(&service).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &service, nil
}

// GetByName 根据名称获取服务项目
func (r *GormSalonServiceRepository) GetByName(name string) (*models.SalonService, error) {
	var service models.SalonService
	if err := r.db.Where("name = ?", name).First(&service).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &service, nil
}

// Create 创建服务项目
func (r *GormSalonServiceRepository) Create(service *models.SalonService) error {
	return translateWriteError(r.db.Create(service).Error)
}

// Update 更新服务项目
func (r *GormSalonServiceRepository) Update(service *models.SalonService) error {
	result := r.db.Model(service).
		Select("name", "description", "price", "duration", "category", "active", "updated_at").
		Updates(service)
	return translateWriteError(result.Error)
}

// UpdateActive 切换上架状态
func (r *GormSalonServiceRepository) UpdateActive(id string, active bool) (bool, error) {
	result := r.db.Model(&models.SalonService{}).Where("id = ?", id).Update("active", active)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// Delete 删除服务项目
func (r *GormSalonServiceRepository) Delete(id string) (bool, error) {
	result := r.db.Where("id = ?", id).Delete(&models.SalonService{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// List 获取服务项目列表
func (r *GormSalonServiceRepository) List(filter SalonServiceListFilter) ([]models.SalonService, int64, error) {
	services := make([]models.SalonService, 0)
	query := r.db.Model(&models.SalonService{})

	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Active != nil {
		query = query.Where("active = ?", *filter.Active)
	}
	query = query.Scopes(searchScope(filter.Search, "name", "description"))

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	page := Page{Number: filter.Page, Size: filter.PageSize}
	if err := query.Scopes(paginate(page)).Order("created_at desc").Find(&services).Error; err != nil {
		return nil, 0, err
	}
	return services, total, nil
}
