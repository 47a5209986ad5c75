package router

import (
	"fmt"
	"strings"

	"github.com/gehna-next/internal/cache"
	"github.com/gehna-next/internal/config"
	adminhandlers "github.com/gehna-next/internal/http/handlers/admin"
	publichandlers "github.com/gehna-next/internal/http/handlers/public"
	"github.com/gehna-next/internal/logger"
	"github.com/gehna-next/internal/metrics"
	"github.com/gehna-next/internal/provider"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	// 初始化 Handler（按前台/后台分组）
	publicHandler := publichandlers.New(c)
	adminHandler := adminhandlers.New(c)
	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = "gehna"
	}
	redisClient := cache.Client()
	loginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:login", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
		BlockSeconds:  cfg.Security.LoginRateLimit.BlockSeconds,
	}

	// 中间件
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))
	r.Use(metrics.PrometheusMiddleware())

	// API 路由组
	apiV1 := r.Group("/api/v1")
	{
		// 认证接口
		auth := apiV1.Group("/auth")
		{
			auth.POST("/login", RateLimitMiddleware(redisClient, loginRule, KeyByIPAndJSONField("username")), publicHandler.Login)
		}

		// 店员接口（需鉴权）
		user := apiV1.Group("")
		user.Use(JWTAuthMiddleware(cfg.JWT.SecretKey, c.UserRepo))
		{
			user.GET("/me", publicHandler.GetCurrentUser)

			user.GET("/products", publicHandler.ListProducts)
			user.GET("/products/:id", publicHandler.GetProduct)
			user.GET("/variants/in-stock", publicHandler.ListInStockVariants)
			user.GET("/variants/:id", publicHandler.GetVariant)

			user.POST("/orders", publicHandler.CreateOrder)
			user.GET("/orders", publicHandler.ListOrders)
			user.GET("/orders/:id", publicHandler.GetOrder)
			user.GET("/orders/by-order-no/:order_no", publicHandler.GetOrderByOrderNo)

			user.POST("/notifications", publicHandler.SendPaymentRequest)
			user.GET("/notifications", publicHandler.ListMyNotifications)
			user.GET("/notifications/unread-count", publicHandler.UnreadNotificationCount)
			user.POST("/notifications/:id/decline", publicHandler.WithdrawPaymentRequest)
			user.POST("/notifications/:id/read", publicHandler.MarkNotificationRead)

			user.POST("/payments/gateway-order", publicHandler.CreateGatewayOrder)
			user.POST("/payments/verify", publicHandler.VerifyPayment)
		}

		// 管理员接口
		admin := apiV1.Group("/admin")
		admin.Use(JWTAuthMiddleware(cfg.JWT.SecretKey, c.UserRepo), AdminOnlyMiddleware())
		{
			// 付款请求审批
			admin.GET("/notifications", adminHandler.ListNotifications)
			admin.GET("/notifications/unread-count", adminHandler.UnreadNotificationCount)
			admin.POST("/notifications/:id/approve", adminHandler.ApproveNotification)
			admin.POST("/notifications/:id/decline", adminHandler.DeclineNotification)
			admin.POST("/notifications/:id/read", adminHandler.MarkNotificationAdminRead)

			// 订单管理
			admin.GET("/orders", adminHandler.AdminListOrders)
			admin.GET("/orders/:id", adminHandler.AdminGetOrder)
			admin.PATCH("/orders/:id", adminHandler.AdminUpdateOrderStatus)
			admin.GET("/orders/:id/invoice", adminHandler.GetOrderInvoice)

			// 商品与变体管理
			admin.POST("/products", adminHandler.CreateProduct)
			admin.POST("/variants", adminHandler.CreateVariant)
			admin.GET("/variants", adminHandler.AdminListVariants)
			admin.GET("/variants/:id/barcode", adminHandler.GetVariantBarcode)

			// 备忘单（Jangad）管理
			admin.POST("/memos", adminHandler.CreateMemo)
			admin.GET("/memos", adminHandler.ListMemos)
			admin.GET("/memos/:id", adminHandler.GetMemo)
			admin.PUT("/memos/:id", adminHandler.UpdateMemo)
			admin.DELETE("/memos/:id", adminHandler.DeleteMemo)
			admin.GET("/memos/:id/details", adminHandler.ListMemoDetails)
			admin.POST("/memos/:id/close", adminHandler.CloseMemo)

			// 质检流程
			admin.POST("/quality-checks/memo", adminHandler.AssignMemoQualityCheck)
			admin.POST("/quality-checks/memo-detail", adminHandler.AssignMemoDetailQualityCheck)
			admin.POST("/quality-checks/variant", adminHandler.AssignVariantQualityCheck)
			admin.POST("/quality-checks/:id/approve", adminHandler.ApproveQualityCheck)
			admin.POST("/quality-checks/:id/reject", adminHandler.RejectQualityCheck)
			admin.GET("/quality-checks", adminHandler.ListQualityChecks)

			// 销售流水
			admin.GET("/sellings", adminHandler.ListSellings)
			admin.GET("/sellings/summary", adminHandler.SellingSummary)

			// 员工管理
			admin.POST("/employees", adminHandler.CreateEmployee)
			admin.GET("/employees", adminHandler.ListEmployees)
			admin.GET("/employees/:id", adminHandler.GetEmployee)
			admin.PUT("/employees/:id", adminHandler.UpdateEmployee)
			admin.POST("/employees/:id/deactivate", adminHandler.DeactivateEmployee)
		}
	}

	// 指标与健康检查
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	return r
}
