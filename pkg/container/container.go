package container

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"modelhub-backend/internal/config"
	infraCache "modelhub-backend/internal/infrastructure/cache"
	"modelhub-backend/internal/infrastructure/database"
	"modelhub-backend/internal/infrastructure/mirror"
	"modelhub-backend/internal/infrastructure/storage"
	"modelhub-backend/pkg/cache"
	"modelhub-backend/pkg/jwt"

	"modelhub-backend/internal/domains/account"
	accountHandler "modelhub-backend/internal/domains/account/handler"
	accountRepo "modelhub-backend/internal/domains/account/repository"
	accountService "modelhub-backend/internal/domains/account/service"
	"modelhub-backend/internal/domains/artifact"
	artifactHandler "modelhub-backend/internal/domains/artifact/handler"
	artifactRepo "modelhub-backend/internal/domains/artifact/repository"
	artifactService "modelhub-backend/internal/domains/artifact/service"
)

// Container holds the application's dependency graph. Everything in it is a
// singleton constructed once at startup; initialization order matters:
// config -> infrastructure -> repositories -> services -> handlers.
type Container struct {
	// Infrastructure
	Config     *config.Config
	DB         *database.PostgresDB
	Cache      cache.Cache
	JWTManager *jwt.Manager
	Store      storage.ArtifactStore
	Mirror     mirror.Adapter

	// Repositories
	AccountRepo  account.Repository
	ArtifactRepo artifact.Repository

	// Services
	AccountService  account.Service
	ArtifactService artifact.Service

	// Handlers
	AccountHandler  *accountHandler.AccountHandler
	ArtifactHandler *artifactHandler.ArtifactHandler
}

// NewContainer builds and initializes the whole dependency graph. A failure
// in any critical dependency aborts startup.
func NewContainer() (*Container, error) {
	c := &Container{}

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg
	log.Info().Str("environment", cfg.App.Environment).Msg("config loaded")

	// Database
	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load database config: %w", err)
	}

	db := database.NewPostgresDB(dbConfig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := db.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.HealthCheck(context.Background()); err != nil {
		return nil, fmt.Errorf("database health check failed: %w", err)
	}
	c.DB = db

	// Redis - non-critical, the app degrades to uncached lookups.
	redisCache := infraCache.NewRedisCache(
		cfg.Redis.Host,
		cfg.Redis.Password,
		cfg.Redis.DB,
	)
	if rc, ok := redisCache.(*infraCache.RedisCache); ok {
		if err := rc.Connect(context.Background()); err != nil {
			log.Warn().Err(err).Msg("redis connection failed (non-critical)")
		}
	}
	c.Cache = redisCache

	c.JWTManager = jwt.NewManager(cfg.JWT.Secret)

	// Artifact store backend
	switch cfg.Storage.Backend {
	case "minio":
		store, err := storage.NewMinIOStore(cfg.MinIO)
		if err != nil {
			return nil, fmt.Errorf("failed to init minio store: %w", err)
		}
		c.Store = store
	default:
		c.Store = storage.NewLocalStore(cfg.Storage.Root)
	}

	// Mirror adapter - best-effort by contract, so init failures are only
	// logged inside Init.
	if cfg.MirrorActive() {
		dvc := mirror.NewDVC(cfg.Mirror.Bin, cfg.Mirror.WorkDir)
		dvc.Init(context.Background())
		c.Mirror = dvc
	} else {
		if cfg.Mirror.Enabled {
			log.Warn().Str("backend", cfg.Storage.Backend).Msg("mirroring requires the local storage backend; disabled")
		}
		c.Mirror = mirror.Noop{}
	}

	c.initRepositories()
	c.initServices()
	c.initHandlers()

	log.Info().Msg("container initialized")
	return c, nil
}

func (c *Container) initRepositories() {
	c.AccountRepo = accountRepo.NewPostgresRepository(c.DB.Pool, c.Cache, c.Config.Catalog.AccountsTable)
	c.ArtifactRepo = artifactRepo.NewPostgresRepository(c.DB.Pool, c.Config.Catalog.ArtifactsTable)
}

func (c *Container) initServices() {
	c.AccountService = accountService.NewAccountService(c.AccountRepo, c.JWTManager, c.Config.Auth.BcryptCost)
	c.ArtifactService = artifactService.NewArtifactService(c.ArtifactRepo, c.Store, c.Mirror)
}

func (c *Container) initHandlers() {
	c.AccountHandler = accountHandler.NewAccountHandler(c.AccountService)
	c.ArtifactHandler = artifactHandler.NewArtifactHandler(c.ArtifactService)
}

// Cleanup releases resources during graceful shutdown.
func (c *Container) Cleanup() {
	if c.DB != nil {
		c.DB.Close()
	}

	if rc, ok := c.Cache.(*infraCache.RedisCache); ok {
		if err := rc.Close(); err != nil {
			log.Warn().Err(err).Msg("failed to close redis")
		}
	}
}
