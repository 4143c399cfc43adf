package container

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"storefront-backend/internal/config"
	infraCache "storefront-backend/internal/infrastructure/cache"
	"storefront-backend/internal/infrastructure/database"
	"storefront-backend/internal/infrastructure/email"
	"storefront-backend/internal/infrastructure/queue"
	memstore "storefront-backend/internal/infrastructure/storage"
	"storefront-backend/pkg/jwt"
	"storefront-backend/pkg/logger"
	"storefront-backend/pkg/storage"

	cartHandler "storefront-backend/internal/domains/cart/handler"
	catalogHandler "storefront-backend/internal/domains/catalog/handler"
	catalogRepo "storefront-backend/internal/domains/catalog/repository"
	catalogService "storefront-backend/internal/domains/catalog/service"
	identityHandler "storefront-backend/internal/domains/identity/handler"
	identityRepo "storefront-backend/internal/domains/identity/repository"
	identityService "storefront-backend/internal/domains/identity/service"
	orderHandler "storefront-backend/internal/domains/order/handler"
	orderRepo "storefront-backend/internal/domains/order/repository"
	orderService "storefront-backend/internal/domains/order/service"
	pricingService "storefront-backend/internal/domains/pricing/service"
	sessionService "storefront-backend/internal/domains/session/service"

	"github.com/hibiken/asynq"
)

// Container holds every dependency of the application.
// Initialization order: config, infrastructure, repositories, services, handlers.
type Container struct {
	Config *config.Config

	// Infrastructure
	DB          *database.PostgresDB // postgres backend only
	Redis       *infraCache.RedisStore
	Backend     storage.Backend
	Storage     *storage.Adapter
	JWTManager  *jwt.Manager
	AsynqClient *asynq.Client // nil when the queue is disabled
	Email       email.EmailService

	// Repositories
	CatalogRepo catalogRepo.Repository
	UserRepo    identityRepo.Repository
	OrderRepo   orderRepo.Repository

	// Services
	Catalog       *catalogService.Catalog
	Authenticator *identityService.Authenticator
	Eligibility   *pricingService.Eligibility
	Sessions      *sessionService.Manager
	OrderService  orderService.OrderService

	// Handlers
	CatalogHandler *catalogHandler.Handler
	CartHandler    *cartHandler.Handler
	AuthHandler    *identityHandler.Handler
	OrderHandler   *orderHandler.Handler
}

// NewContainer builds the whole dependency graph
func NewContainer() (*Container, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return NewContainerWithConfig(cfg)
}

func NewContainerWithConfig(cfg *config.Config) (*Container, error) {
	c := &Container{Config: cfg}
	logger.Info("Initializing container", map[string]interface{}{
		"environment": cfg.App.Environment,
		"storage":     cfg.Storage.Backend,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := c.initInfrastructure(ctx); err != nil {
		c.Cleanup()
		return nil, fmt.Errorf("failed to init infrastructure: %w", err)
	}
	if err := c.initRepositories(); err != nil {
		c.Cleanup()
		return nil, fmt.Errorf("failed to init repositories: %w", err)
	}
	if err := c.initServices(ctx); err != nil {
		c.Cleanup()
		return nil, fmt.Errorf("failed to init services: %w", err)
	}
	c.initHandlers()

	logger.Info("Container initialized", nil)
	return c, nil
}

func (c *Container) initInfrastructure(ctx context.Context) error {
	backend, err := c.newBackend(ctx)
	if err != nil {
		return err
	}
	c.Backend = backend
	c.Storage = storage.NewAdapter(backend, c.Config.Storage.Timeout)

	c.JWTManager = jwt.NewManager(c.Config.JWT.Secret, c.Config.JWT.AccessTokenExpiry)

	if c.Config.Queue.Enabled {
		c.AsynqClient = asynq.NewClient(c.RedisClientOpt())
	}

	if c.Config.Email.SMTPHost != "" {
		c.Email = email.NewDevEmailService(c.Config.Email.SMTPHost, c.Config.Email.SMTPPort, c.Config.Email.From)
	} else {
		c.Email = email.NewLogEmailService()
	}
	return nil
}

// newBackend connects the storage backend selected by STORAGE_BACKEND
func (c *Container) newBackend(ctx context.Context) (storage.Backend, error) {
	switch c.Config.Storage.Backend {
	case config.StorageRedis:
		rs := c.redisStore()
		if err := rs.Connect(ctx); err != nil {
			return nil, err
		}
		return rs, nil

	case config.StoragePostgres:
		dbConfig, err := config.LoadDatabaseConfig()
		if err != nil {
			return nil, fmt.Errorf("failed to load database config: %w", err)
		}
		db := database.NewPostgresDB(dbConfig)
		if err := db.Connect(ctx); err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		c.DB = db
		kv := database.NewKVStore(db.Pool)
		if err := kv.EnsureSchema(ctx); err != nil {
			return nil, err
		}
		return kv, nil

	default:
		return memstore.NewMemoryStore(), nil
	}
}

func (c *Container) redisStore() *infraCache.RedisStore {
	if c.Redis == nil {
		c.Redis = infraCache.NewRedisStore(c.Config.Redis.Host, c.Config.Redis.Password, c.Config.Redis.DB, c.Config.Storage.KeyTTL)
	}
	return c.Redis
}

// RedisClientOpt is the asynq connection to the configured Redis
func (c *Container) RedisClientOpt() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     c.Config.Redis.Host,
		Password: c.Config.Redis.Password,
		DB:       c.Config.Redis.DB,
	}
}

func (c *Container) initRepositories() error {
	c.CatalogRepo = catalogRepo.NewJSONFileRepository(c.Config.Catalog.ProductsFile)

	users, err := identityRepo.LoadJSONFile(c.Config.Catalog.UsersFile, c.Config.Catalog.BcryptCost)
	if err != nil {
		return fmt.Errorf("failed to load users: %w", err)
	}
	c.UserRepo = users

	c.OrderRepo = orderRepo.NewAdapterRepository(c.Storage)
	return nil
}

func (c *Container) initServices(ctx context.Context) error {
	c.Catalog = catalogService.NewCatalog(c.CatalogRepo)
	if err := c.Catalog.Reload(ctx); err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}

	c.Authenticator = identityService.NewAuthenticator(c.UserRepo, c.JWTManager)
	c.Eligibility = pricingService.NewEligibility(c.Config.Discount.Domains)
	c.Sessions = sessionService.NewManager(c.Storage, c.Catalog, c.Eligibility, c.Config.Session.IdleTTL)
	c.Sessions.SetMaxSessions(c.Config.Session.MaxSessions)

	var enqueuer orderService.ConfirmationEnqueuer
	if c.AsynqClient != nil {
		enqueuer = queue.NewOrderTasks(c.AsynqClient, c.Config.Queue.MaxRetry)
	}
	c.OrderService = orderService.NewOrderService(c.OrderRepo, enqueuer, c.Config.Location())
	return nil
}

func (c *Container) initHandlers() {
	c.CatalogHandler = catalogHandler.NewHandler(c.Catalog)
	c.CartHandler = cartHandler.NewHandler(c.Catalog)
	c.AuthHandler = identityHandler.NewHandler(c.Authenticator)
	c.OrderHandler = orderHandler.NewHandler(c.OrderService)
}

// HealthCheck pings the storage backend
func (c *Container) HealthCheck(ctx context.Context) (int, map[string]string) {
	status := map[string]string{"storage": "ok"}
	if err := c.Storage.Ping(ctx); err != nil {
		status["storage"] = err.Error()
		return http.StatusServiceUnavailable, status
	}
	return http.StatusOK, status
}

// Cleanup releases connections; safe on a partially built container
func (c *Container) Cleanup() {
	if c.AsynqClient != nil {
		if err := c.AsynqClient.Close(); err != nil {
			logger.Error("Failed to close asynq client", err)
		}
	}
	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			logger.Error("Failed to close Redis", err)
		}
	}
	if c.DB != nil {
		c.DB.Close()
	}
	logger.Info("Container cleanup completed", nil)
}
