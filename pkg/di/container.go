package di

import (
	"fmt"

	"gorm.io/gorm"

	"task-manager-api/application/serviceimpl"
	"task-manager-api/domain/ports"
	"task-manager-api/domain/repositories"
	"task-manager-api/domain/services"
	"task-manager-api/infrastructure/database"
	"task-manager-api/infrastructure/messaging"
	natspkg "task-manager-api/infrastructure/nats"
	redispkg "task-manager-api/infrastructure/redis"
	"task-manager-api/interfaces/api/handlers"
	"task-manager-api/pkg/config"
	"task-manager-api/pkg/logger"
	"task-manager-api/pkg/scheduler"
	"task-manager-api/pkg/utils"
)

type Container struct {
	// Configuration
	Config *config.Config

	// Infrastructure
	DB             *gorm.DB
	RedisClient    *redispkg.Client   // token revocation (optional)
	NATSClient     *natspkg.Client    // NATS connection + JetStream (optional)
	NATSPublisher  *natspkg.Publisher // Publish task events to JetStream
	EventScheduler scheduler.EventScheduler

	// Ports (nil = feature ปิดอยู่)
	TokenBlacklist ports.TokenBlacklist
	TaskEvents     ports.TaskEventPublisher

	// Repositories
	UserRepository     repositories.UserRepository
	TaskRepository     repositories.TaskRepository
	CategoryRepository repositories.CategoryRepository

	// Services
	AuthService            services.AuthService
	TaskService            services.TaskService
	CategoryService        services.CategoryService
	OverdueReminderService services.OverdueReminderService
}

func NewContainer() *Container {
	return &Container{}
}

func (c *Container) Initialize() error {
	if err := c.initConfig(); err != nil {
		return err
	}

	if err := c.initLogger(); err != nil {
		return err
	}

	if err := c.initInfrastructure(); err != nil {
		return err
	}

	if err := c.initRepositories(); err != nil {
		return err
	}

	if err := c.initServices(); err != nil {
		return err
	}

	if err := c.initScheduler(); err != nil {
		return err
	}

	return nil
}

func (c *Container) initConfig() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	c.Config = cfg
	logger.Info("Configuration loaded")
	return nil
}

func (c *Container) initLogger() error {
	logConfig := logger.Config{
		Level:      c.Config.Log.Level,
		Format:     c.Config.Log.Format,
		Output:     c.Config.Log.Output,
		FilePath:   c.Config.Log.FilePath,
		MaxSize:    c.Config.Log.MaxSize,
		MaxBackups: c.Config.Log.MaxBackups,
		MaxAge:     c.Config.Log.MaxAge,
		Compress:   c.Config.Log.Compress,
	}

	if err := logger.Init(logConfig); err != nil {
		return err
	}

	logger.Info("Logger initialized",
		"level", c.Config.Log.Level,
		"format", c.Config.Log.Format,
		"output", c.Config.Log.Output,
		"file", c.Config.Log.FilePath,
	)

	if c.Config.UsesDefaultJWTSecret() {
		logger.Warn("JWT_SECRET is not set, tokens are signed with the built-in development secret")
	}
	return nil
}

func (c *Container) initInfrastructure() error {
	// Initialize Database
	dbConfig := database.DatabaseConfig{
		Driver:   c.Config.Database.Driver,
		Host:     c.Config.Database.Host,
		Port:     c.Config.Database.Port,
		User:     c.Config.Database.User,
		Password: c.Config.Database.Password,
		DBName:   c.Config.Database.DBName,
		SSLMode:  c.Config.Database.SSLMode,
		DSN:      c.Config.Database.DSN,
		LogLevel: c.Config.Log.Level,
	}

	db, err := database.NewDatabase(dbConfig)
	if err != nil {
		return err
	}
	c.DB = db
	logger.Info("Database connected", "driver", c.Config.Database.Driver, "db", c.Config.Database.DBName)

	// Run migrations
	if err := database.Migrate(db); err != nil {
		return err
	}
	logger.Info("Database migrated")

	// Initialize Redis Client (optional - graceful degradation)
	if c.Config.Redis.URL != "" {
		redisClient, err := redispkg.NewClient(&c.Config.Redis)
		if err != nil {
			logger.Warn("Redis client initialization failed (logout will not revoke tokens)", "error", err)
		} else {
			c.RedisClient = redisClient
			c.TokenBlacklist = redispkg.NewTokenBlacklist(redisClient)
			logger.Info("Redis client initialized", "url", c.Config.Redis.URL)
		}
	} else {
		logger.Warn("Token blacklist disabled (REDIS_URL not configured)")
	}

	// Initialize NATS Client + JetStream (optional)
	if c.Config.NATS.URL != "" {
		natsClient, err := natspkg.NewClient(natspkg.ClientConfig{
			URL:           c.Config.NATS.URL,
			SubjectPrefix: c.Config.NATS.SubjectPrefix,
		})
		if err != nil {
			logger.Warn("NATS client initialization failed (task events disabled)", "error", err)
		} else {
			c.NATSClient = natsClient
			c.NATSPublisher = natspkg.NewPublisher(natsClient)
			c.TaskEvents = messaging.NewNATSTaskEventPublisher(c.NATSPublisher)
			logger.Info("NATS client initialized", "url", c.Config.NATS.URL, "subject_prefix", natsClient.SubjectPrefix())
		}
	} else {
		logger.Warn("Task events disabled (NATS_URL not configured)")
	}

	return nil
}

func (c *Container) initRepositories() error {
	c.UserRepository = database.NewUserRepository(c.DB)
	c.TaskRepository = database.NewTaskRepository(c.DB)
	c.CategoryRepository = database.NewCategoryRepository(c.DB)
	logger.Info("Repositories initialized")
	return nil
}

func (c *Container) initServices() error {
	hasher, err := utils.NewPasswordHasher(c.Config.Auth.PasswordScheme)
	if err != nil {
		return fmt.Errorf("password hasher: %w", err)
	}

	c.AuthService = serviceimpl.NewAuthService(c.UserRepository, hasher, c.jwtConfig(), c.TokenBlacklist)
	c.TaskService = serviceimpl.NewTaskService(c.TaskRepository, c.CategoryRepository, c.UserRepository, c.TaskEvents)
	c.CategoryService = serviceimpl.NewCategoryService(c.CategoryRepository)
	logger.Info("Services initialized", "password_scheme", c.Config.Auth.PasswordScheme)
	return nil
}

func (c *Container) initScheduler() error {
	c.EventScheduler = scheduler.NewEventScheduler()

	if !c.Config.Scheduler.Enabled {
		logger.Info("Scheduler disabled (SCHEDULER_ENABLED=false)")
		return nil
	}

	if err := scheduler.ValidateCronExpression(c.Config.Scheduler.OverdueCron); err != nil {
		return fmt.Errorf("invalid SCHEDULER_OVERDUE_CRON: %w", err)
	}

	c.OverdueReminderService = serviceimpl.NewOverdueReminderService(
		serviceimpl.OverdueReminderConfig{Cron: c.Config.Scheduler.OverdueCron},
		c.TaskRepository,
		c.TaskEvents,
		c.EventScheduler,
	)
	if err := c.OverdueReminderService.RegisterJob(); err != nil {
		return fmt.Errorf("register overdue reminder job: %w", err)
	}

	// Start the scheduler
	c.EventScheduler.Start()
	logger.Info("Event scheduler started", "overdue_cron", c.Config.Scheduler.OverdueCron)
	return nil
}

func (c *Container) jwtConfig() utils.JWTConfig {
	return utils.JWTConfig{
		Secret:   c.Config.JWT.Secret,
		Issuer:   c.Config.JWT.Issuer,
		Audience: c.Config.JWT.Audience,
		TTL:      c.Config.JWT.TTL,
	}
}

func (c *Container) Cleanup() error {
	logger.Info("Starting cleanup...")

	// Stop scheduler
	if c.EventScheduler != nil {
		if c.EventScheduler.IsRunning() {
			c.EventScheduler.Stop()
			logger.Info("Event scheduler stopped")
		}
	}

	// Close NATS connection
	if c.NATSClient != nil {
		if err := c.NATSClient.Close(); err != nil {
			logger.Warn("Failed to close NATS connection", "error", err)
		} else {
			logger.Info("NATS connection closed")
		}
	}

	// Close Redis connection
	if c.RedisClient != nil {
		if err := c.RedisClient.Close(); err != nil {
			logger.Warn("Failed to close Redis connection", "error", err)
		} else {
			logger.Info("Redis connection closed")
		}
	}

	// Close database connection
	if c.DB != nil {
		sqlDB, err := c.DB.DB()
		if err == nil {
			if err := sqlDB.Close(); err != nil {
				logger.Warn("Failed to close database connection", "error", err)
			} else {
				logger.Info("Database connection closed")
			}
		}
	}

	logger.Info("Cleanup completed")
	return nil
}

func (c *Container) GetConfig() *config.Config {
	return c.Config
}

// GetAuthMiddlewareConfig คืนค่าที่ middleware.Protected ต้องใช้
func (c *Container) GetAuthMiddlewareConfig() (utils.JWTConfig, ports.TokenBlacklist) {
	return c.jwtConfig(), c.TokenBlacklist
}

func (c *Container) GetHandlerServices() *handlers.Services {
	return &handlers.Services{
		AuthService:     c.AuthService,
		TaskService:     c.TaskService,
		CategoryService: c.CategoryService,
		DB:              c.DB,
		NATSClient:      c.NATSClient,
		Scheduler:       c.EventScheduler,
	}
}
