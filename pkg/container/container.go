package container

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"profile-backend/internal/config"
	profileHandler "profile-backend/internal/domains/profile/handler"
	profileRepo "profile-backend/internal/domains/profile/repository"
	profileService "profile-backend/internal/domains/profile/service"
	infraCache "profile-backend/internal/infrastructure/cache"
	"profile-backend/internal/infrastructure/database"
	"profile-backend/internal/infrastructure/queue"
	"profile-backend/internal/infrastructure/storage"
)

// ========================================
// CONTAINER STRUCT
// ========================================

// Container holds every long-lived dependency of the application.
// Build order: config -> infrastructure -> repository -> service -> handler.
type Container struct {
	// ========================================
	// INFRASTRUCTURE LAYER
	// ========================================
	Config      *config.Config
	SQLite      *sql.DB              // set when DB_DIALECT=sqlite
	Postgres    *database.PostgresDB // set when DB_DIALECT=postgres
	Cache       *infraCache.RedisCache
	Storage     *storage.MinIOStorage
	QueueClient *queue.Client

	// ========================================
	// REPOSITORY LAYER
	// ========================================
	ProfileRepo profileRepo.RepositoryInterface

	// ========================================
	// SERVICE LAYER
	// ========================================
	ProfileService profileService.ServiceInterface

	// ========================================
	// HANDLER LAYER
	// ========================================
	ProfileHandler *profileHandler.ProfileHandler
}

// ========================================
// CONSTRUCTOR: BUILD CONTAINER
// ========================================

// NewContainer builds the dependency graph. The store is mandatory; the
// cache, object storage and queue are optional and only logged when they
// fail to come up.
func NewContainer() (*Container, error) {
	log.Info().Msg("🔧 Initializing DI Container...")

	c := &Container{}

	// ========================================
	// STEP 1: LOAD CONFIGURATION
	// ========================================
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg
	log.Info().Str("environment", cfg.App.Environment).Msg("✅ Config loaded")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// ========================================
	// STEP 2: INITIALIZE DATABASE
	// ========================================
	if err := c.initDatabase(ctx); err != nil {
		c.Cleanup()
		return nil, err
	}

	// ========================================
	// STEP 3: INITIALIZE OPTIONAL INFRASTRUCTURE
	// ========================================
	c.initCache(ctx)
	c.initStorage(ctx)
	c.initQueue()

	// ========================================
	// STEP 4: REPOSITORIES, SERVICES, HANDLERS
	// ========================================
	c.initRepositories()
	c.initServices()
	c.initHandlers()

	log.Info().Msg("🎉 DI Container initialized successfully")
	return c, nil
}

// ========================================
// PRIVATE INITIALIZATION METHODS
// ========================================

func (c *Container) initDatabase(ctx context.Context) error {
	switch c.Config.Database.Dialect {
	case config.DialectPostgres:
		log.Info().Msg("🗄️  Connecting to PostgreSQL...")

		dbConfig, err := config.LoadDatabaseConfig()
		if err != nil {
			return fmt.Errorf("failed to load database config: %w", err)
		}

		db := database.NewPostgresDB(dbConfig)
		if err := db.Connect(ctx); err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		c.Postgres = db

		if err := db.HealthCheck(ctx); err != nil {
			return fmt.Errorf("database health check failed: %w", err)
		}
		if err := profileRepo.EnsurePostgresSchema(ctx, db.Pool); err != nil {
			return err
		}

	default:
		log.Info().Str("path", c.Config.Database.Storage).Msg("🗄️  Opening SQLite...")

		db, err := database.OpenSQLite(ctx, c.Config.Database.Storage)
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		c.SQLite = db

		if err := profileRepo.EnsureSQLiteSchema(ctx, db); err != nil {
			return err
		}
	}

	log.Info().Str("dialect", c.Config.Database.Dialect).Msg("✅ Database connected")
	return nil
}

func (c *Container) initCache(ctx context.Context) {
	if !c.Config.Redis.Enabled {
		return
	}

	rc := infraCache.NewRedisCache(c.Config.Redis.Host, c.Config.Redis.Password, c.Config.Redis.DB)
	if err := rc.Connect(ctx); err != nil {
		// Cache is not critical: the store serves every read without it.
		log.Warn().Err(err).Msg("⚠️  Redis connection failed, snapshot cache disabled")
		_ = rc.Close()
		return
	}

	c.Cache = rc
	log.Info().Msg("✅ Redis connected")
}

func (c *Container) initStorage(ctx context.Context) {
	if !c.Config.MinIO.Enabled {
		return
	}

	s, err := storage.NewMinIOStorage(ctx, c.Config.MinIO)
	if err != nil {
		log.Warn().Err(err).Msg("⚠️  MinIO unavailable, publishing disabled")
		return
	}

	c.Storage = s
	log.Info().Str("bucket", c.Config.MinIO.Bucket).Msg("✅ MinIO connected")
}

func (c *Container) initQueue() {
	if !c.Config.Queue.Enabled {
		return
	}
	c.QueueClient = queue.NewClient(c.Config.Queue.RedisAddr)
	log.Info().Str("redis", c.Config.Queue.RedisAddr).Msg("✅ Queue client ready")
}

func (c *Container) initRepositories() {
	if c.Postgres != nil {
		c.ProfileRepo = profileRepo.NewPostgresRepository(c.Postgres.Pool)
	} else {
		c.ProfileRepo = profileRepo.NewSQLiteRepository(c.SQLite)
	}

	if c.Cache != nil {
		c.ProfileRepo = profileRepo.NewCachedRepository(c.ProfileRepo, c.Cache, c.Config.Redis.CacheTTL)
	}
}

func (c *Container) initServices() {
	// Typed nils must not leak into the interfaces.
	var publisher profileService.Publisher
	if c.Storage != nil {
		publisher = c.Storage
	}
	var enqueuer profileService.TaskEnqueuer
	if c.QueueClient != nil {
		enqueuer = c.QueueClient
	}

	c.ProfileService = profileService.NewProfileService(c.ProfileRepo, publisher, enqueuer)
}

func (c *Container) initHandlers() {
	c.ProfileHandler = profileHandler.NewProfileHandler(c.ProfileService, c.Config.App.RequestTimeout)
}

// Cleanup releases every resource the container opened. Safe on a partially built container.
func (c *Container) Cleanup() {
	log.Info().Msg("🧹 Cleaning up container resources...")

	if c.QueueClient != nil {
		if err := c.QueueClient.Close(); err != nil {
			log.Warn().Err(err).Msg("⚠️  Failed to close queue client")
		}
	}

	if c.Cache != nil {
		if err := c.Cache.Close(); err != nil {
			log.Warn().Err(err).Msg("⚠️  Failed to close Redis")
		}
	}

	if c.Postgres != nil {
		_ = c.Postgres.Close()
	}

	if c.SQLite != nil {
		if err := c.SQLite.Close(); err != nil {
			log.Warn().Err(err).Msg("⚠️  Failed to close SQLite")
		}
	}

	log.Info().Msg("✅ Container cleanup completed")
}
