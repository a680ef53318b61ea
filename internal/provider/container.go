package provider

import (
	"errors"
	"fmt"

	"github.com/salon-next/internal/cache"
	"github.com/salon-next/internal/config"
	"github.com/salon-next/internal/logger"
	"github.com/salon-next/internal/models"
	"github.com/salon-next/internal/queue"
	"github.com/salon-next/internal/repository"
	"github.com/salon-next/internal/service"

	"gorm.io/gorm"
)

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client

	// Repositories
	VoucherRepo           repository.VoucherRepository
	VoucherRedemptionRepo repository.VoucherRedemptionRepository
	SalonServiceRepo      repository.SalonServiceRepository

	// Services
	VoucherService *service.VoucherService
	CatalogService *service.CatalogService
}

// NewContainer 初始化容器
func NewContainer(cfg *config.Config) *Container {
	// 初始化缓存
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	// 初始化队列客户端
	var queueClient *queue.Client
	if cfg.Queue.Enabled {
		qc, err := queue.NewClient(&cfg.Queue)
		if err != nil {
			logger.Errorw("provider_init_queue_client_failed", "error", err)
		} else {
			queueClient = qc
		}
	}

	return NewContainerWithDB(cfg, models.DB, queueClient)
}

// NewContainerWithDB 使用指定数据库初始化容器（测试与种子数据复用）
func NewContainerWithDB(cfg *config.Config, db *gorm.DB, queueClient *queue.Client) *Container {
	c := &Container{
		Config:      cfg,
		QueueClient: queueClient,
	}

	// 1. 初始化 Repositories
	c.initRepositories(db)

	// 2. 初始化 Services
	c.initServices()

	return c
}

func (c *Container) initRepositories(db *gorm.DB) {
	c.VoucherRepo = repository.NewVoucherRepository(db)
	c.VoucherRedemptionRepo = repository.NewVoucherRedemptionRepository(db)
	c.SalonServiceRepo = repository.NewSalonServiceRepository(db)
}

func (c *Container) initServices() {
	c.VoucherService = service.NewVoucherService(c.VoucherRepo, c.VoucherRedemptionRepo, c.QueueClient)
	c.CatalogService = service.NewCatalogService(c.SalonServiceRepo)
}

// Close 释放队列客户端与 Redis 连接
func (c *Container) Close() error {
	var errs []error
	if c.QueueClient != nil {
		if err := c.QueueClient.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close queue client: %w", err))
		}
	}
	if err := cache.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close redis: %w", err))
	}
	return errors.Join(errs...)
}
