package provider

import (
	"github.com/gehna-next/internal/cache"
	"github.com/gehna-next/internal/config"
	"github.com/gehna-next/internal/logger"
	"github.com/gehna-next/internal/models"
	"github.com/gehna-next/internal/queue"
	"github.com/gehna-next/internal/repository"
	"github.com/gehna-next/internal/service"
)

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client

	// Repositories
	UserRepo         repository.UserRepository
	EmployeeRepo     repository.EmployeeRepository
	ProductRepo      repository.ProductRepository
	VariantRepo      repository.VariantRepository
	OrderRepo        repository.OrderRepository
	NotificationRepo repository.NotificationRepository
	SellingRepo      repository.SellingRepository
	MemoRepo         repository.MemoRepository
	QualityCheckRepo repository.QualityCheckRepository

	// Services
	AuthService         *service.AuthService
	EmailService        *service.EmailService
	OrderService        *service.OrderService
	NotificationService *service.NotificationService
	PaymentService      *service.PaymentService
	CatalogService      *service.CatalogService
	QualityCheckService *service.QualityCheckService
	SellingService      *service.SellingService
	MemoService         *service.MemoService
	EmployeeService     *service.EmployeeService
	DocumentService     *service.DocumentService
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

	c := &Container{
		Config:      cfg,
		QueueClient: queueClient,
	}

	c.initRepositories()
	c.initServices()

	return c
}

func (c *Container) initRepositories() {
	db := models.DB
	c.UserRepo = repository.NewUserRepository(db)
	c.EmployeeRepo = repository.NewEmployeeRepository(db)
	c.ProductRepo = repository.NewProductRepository(db)
	c.VariantRepo = repository.NewVariantRepository(db)
	c.OrderRepo = repository.NewOrderRepository(db)
	c.NotificationRepo = repository.NewNotificationRepository(db)
	c.SellingRepo = repository.NewSellingRepository(db)
	c.MemoRepo = repository.NewMemoRepository(db)
	c.QualityCheckRepo = repository.NewQualityCheckRepository(db)
}

func (c *Container) initServices() {
	c.EmailService = service.NewEmailService(&c.Config.Email)
	c.AuthService = service.NewAuthService(c.Config, c.UserRepo)
	c.OrderService = service.NewOrderService(c.Config, c.OrderRepo, c.VariantRepo)
	c.NotificationService = service.NewNotificationService(c.Config, c.NotificationRepo, c.OrderRepo, c.UserRepo, c.QueueClient)
	c.PaymentService = service.NewPaymentService(c.Config, c.OrderRepo, c.VariantRepo, c.SellingRepo, c.QueueClient)
	c.CatalogService = service.NewCatalogService(c.ProductRepo, c.VariantRepo)
	c.QualityCheckService = service.NewQualityCheckService(c.QualityCheckRepo, c.MemoRepo, c.VariantRepo, c.EmployeeRepo)
	c.SellingService = service.NewSellingService(c.SellingRepo)
	c.MemoService = service.NewMemoService(c.MemoRepo, c.VariantRepo)
	c.EmployeeService = service.NewEmployeeService(c.EmployeeRepo)
	c.DocumentService = service.NewDocumentService(c.OrderRepo, c.VariantRepo)
}
