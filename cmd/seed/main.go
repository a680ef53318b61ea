package main

import (
	"errors"
	"flag"
	"time"

	"github.com/salon-next/internal/config"
	"github.com/salon-next/internal/logger"
	"github.com/salon-next/internal/models"
	"github.com/salon-next/internal/provider"
	"github.com/salon-next/internal/service"
)

func main() {
	configPath := flag.String("config", "", "配置文件路径")
	flag.Parse()

	cfg, err := config.LoadFrom(*configPath)
	if err != nil {
		logger.StdLogger().Fatalf("Failed to load config: %v", err)
	}
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}

	// 自动迁移
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	// 种子数据不走队列，核销记录无需写入
	container := provider.NewContainerWithDB(cfg, models.DB, nil)

	// 添加服务项目
	services := []service.SalonServiceInput{
		salonService("Classic Haircut", "Precision cut, wash and blow-dry", 45, 45, "Hair"),
		salonService("Hair Color & Highlights", "Full colour or foil highlights with toner", 120, 120, "Hair"),
		salonService("Deep Cleansing Facial", "Exfoliation, extraction and hydrating mask", 65, 60, "Skincare"),
		salonService("Gel Manicure", "Shaping, cuticle care and long-wear gel polish", 35, 45, "Nails"),
		salonService("Spa Pedicure", "Soak, scrub, massage and polish", 55, 60, "Nails"),
		salonService("Brow Lamination", "Brow shaping and setting treatment", 40, 30, "Beauty"),
		salonService("Hot Stone Massage", "Full body massage with heated basalt stones", 90, 75, "Wellness"),
	}
	for _, input := range services {
		created, err := container.CatalogService.Create(input)
		switch {
		case errors.Is(err, service.ErrServiceNameDuplicate):
			stdLog.Printf("Service already exists: %s", *input.Name)
		case err != nil:
			stdLog.Printf("Failed to create service %s: %v", *input.Name, err)
		default:
			stdLog.Printf("Created service: %s", created.Name)
		}
	}

	// 添加优惠券，有效期从今天开始
	today := time.Now().UTC().Truncate(24 * time.Hour)
	vouchers := []service.VoucherInput{
		voucher("WELCOME10", "Welcome Discount", "Get 10% off your first appointment", "percentage", 10, 0, nil, "first-time", today, 180, 500),
		voucher("SAVE20", "$20 Off Premium Services", "Save $20 on services over $80", "fixed", 20, 80, nil, "premium", today, 90, 200),
		voucher("LOYALTY15", "Loyalty Reward", "15% off for returning customers", "percentage", 15, 50, float64Ptr(30), "loyalty", today, 120, 300),
		voucher("WEEKEND25", "Weekend Special", "$25 off weekend appointments", "fixed", 25, 100, nil, "special", today, 60, 100),
	}
	for _, input := range vouchers {
		created, err := container.VoucherService.Create(input)
		switch {
		case errors.Is(err, service.ErrVoucherCodeDuplicate):
			stdLog.Printf("Voucher already exists: %s", *input.Code)
		case err != nil:
			stdLog.Printf("Failed to create voucher %s: %v", *input.Code, err)
		default:
			stdLog.Printf("Created voucher: %s", created.Code)
		}
	}

	stdLog.Println("Seed data created successfully!")
}

func salonService(name, description string, price float64, duration int, category string) service.SalonServiceInput {
	money := models.NewMoneyFromFloat(price)
	return service.SalonServiceInput{
		Name:        &name,
		Description: &description,
		Price:       &money,
		Duration:    &duration,
		Category:    &category,
	}
}

func voucher(code, title, description, kind string, discount, minSpend float64, maxDiscount *float64, category string, from time.Time, days, limit int) service.VoucherInput {
	discountMoney := models.NewMoneyFromFloat(discount)
	minSpendMoney := models.NewMoneyFromFloat(minSpend)
	validFrom := models.NewFlexTime(from)
	validUntil := models.NewFlexTime(from.AddDate(0, 0, days))
	input := service.VoucherInput{
		Code:        &code,
		Title:       &title,
		Description: &description,
		Type:        &kind,
		Discount:    &discountMoney,
		MinSpend:    &minSpendMoney,
		Category:    &category,
		ValidFrom:   validFrom,
		ValidUntil:  validUntil,
		UsageLimit:  &limit,
	}
	if maxDiscount != nil {
		input.MaxDiscount = service.OptionalMoney{Set: true, Value: models.MoneyPtr(models.NewMoneyFromFloat(*maxDiscount))}
	}
	return input
}

func float64Ptr(v float64) *float64 { return &v }
