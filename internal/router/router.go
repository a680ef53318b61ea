package router

import (
	"net/http"

	"github.com/salon-next/internal/cache"
	"github.com/salon-next/internal/config"
	adminhandlers "github.com/salon-next/internal/http/handlers/admin"
	publichandlers "github.com/salon-next/internal/http/handlers/public"
	"github.com/salon-next/internal/http/response"
	"github.com/salon-next/internal/logger"
	"github.com/salon-next/internal/models"
	"github.com/salon-next/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	publicHandler := publichandlers.New(c)
	adminHandler := adminhandlers.New(c)
	redisClient := cache.Client()
	redeemRule := NewRateLimitRule(cache.Key("rate:redeem"), cfg.Security.RedeemRateLimit, "Too many redeem attempts")
	quoteRule := NewRateLimitRule(cache.Key("rate:quote"), cfg.Security.QuoteRateLimit, "Too many quote requests")

	// 中间件
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	apiV1 := r.Group("/api/v1")
	{
		apiV1.GET("/health", healthHandler)

		// 优惠券
		vouchers := apiV1.Group("/vouchers")
		{
			vouchers.GET("", adminHandler.ListVouchers)
			vouchers.POST("", adminHandler.CreateVoucher)
			// stats 必须先于 :id 注册
			vouchers.GET("/stats", adminHandler.GetVoucherStats)
			vouchers.POST("/quote", RateLimitMiddleware(redisClient, quoteRule, KeyByIPAndJSONField("code")), publicHandler.QuoteVoucher)
			vouchers.GET("/:id", adminHandler.GetVoucher)
			vouchers.PUT("/:id", adminHandler.UpdateVoucher)
			vouchers.DELETE("/:id", adminHandler.DeleteVoucher)
			vouchers.POST("/:id/redeem", RateLimitMiddleware(redisClient, redeemRule, KeyByIPAndParam("id")), publicHandler.RedeemVoucher)
			vouchers.GET("/:id/redemptions", adminHandler.ListVoucherRedemptions)
		}

		// 服务项目
		services := apiV1.Group("/services")
		{
			services.GET("", publicHandler.ListServices)
			services.GET("/:id", publicHandler.GetService)
			services.POST("", adminHandler.CreateService)
			services.PUT("/:id", adminHandler.UpdateService)
			services.DELETE("/:id", adminHandler.DeleteService)
			services.PATCH("/:id/status", adminHandler.UpdateServiceStatus)
		}
	}

	r.GET("/health", healthHandler)
	r.NoRoute(func(c *gin.Context) {
		response.NotFound(c, "Route not found")
	})

	return r
}

// healthHandler 健康检查，附带数据库与缓存状态
func healthHandler(c *gin.Context) {
	status := http.StatusOK
	body := gin.H{"status": "ok", "database": "ok", "redis": "disabled"}
	if models.DB == nil {
		status = http.StatusServiceUnavailable
		body["status"] = "degraded"
		body["database"] = "unavailable"
	} else if sqlDB, err := models.DB.DB(); err != nil || sqlDB.PingContext(c.Request.Context()) != nil {
		status = http.StatusServiceUnavailable
		body["status"] = "degraded"
		body["database"] = "unavailable"
	}
	if cache.Enabled() {
		body["redis"] = "ok"
		if err := cache.Ping(c.Request.Context()); err != nil {
			body["redis"] = "unavailable"
		}
	}
	c.JSON(status, body)
}
