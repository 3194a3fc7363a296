// Package container wires the application together: config, database,
// cache, repositories, the title index, services and handlers, in
// dependency order. Cleanup tears down in reverse.
package container

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"bookrec-backend/internal/config"
	bookhandler "bookrec-backend/internal/domains/book/handler"
	"bookrec-backend/internal/domains/book/index"
	bookrepository "bookrec-backend/internal/domains/book/repository"
	bookservice "bookrec-backend/internal/domains/book/service"
	rechandler "bookrec-backend/internal/domains/recommendation/handler"
	recrepository "bookrec-backend/internal/domains/recommendation/repository"
	recservice "bookrec-backend/internal/domains/recommendation/service"
	infracache "bookrec-backend/internal/infrastructure/cache"
	infradatabase "bookrec-backend/internal/infrastructure/database"
	"bookrec-backend/pkg/cache"
)

type Container struct {
	Config *config.Config

	// Infrastructure
	DB    *infradatabase.PostgresDB
	Cache cache.Cache

	// Repositories
	BookRepo bookrepository.BookRepository
	RecRepo  recrepository.RecommendationRepository

	// Title index (suggestion snapshot)
	TitleIndex *index.TitleIndex

	// Services
	BookService bookservice.ServiceInterface
	RecService  recservice.ServiceInterface

	// Handlers
	BookHandler *bookhandler.BookHandler
	RecHandler  *rechandler.RecommendationHandler
}

// NewContainer initializes all dependencies in order.
func NewContainer(ctx context.Context) (*Container, error) {
	c := &Container{}

	if err := c.initConfig(); err != nil {
		return nil, fmt.Errorf("failed to initialize config: %w", err)
	}

	if err := c.initDatabase(ctx); err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	c.initCache(ctx)
	c.initRepositories()

	if err := c.initTitleIndex(ctx); err != nil {
		return nil, fmt.Errorf("failed to initialize title index: %w", err)
	}

	c.initServices()
	c.initHandlers()

	log.Info().Msg("Container initialized")
	return c, nil
}

func (c *Container) initConfig() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	c.Config = cfg
	return nil
}

func (c *Container) initDatabase(ctx context.Context) error {
	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		return err
	}

	db := infradatabase.NewPostgresDB(dbConfig)
	if err := db.Connect(ctx); err != nil {
		return err
	}
	c.DB = db
	return nil
}

// initCache connects Redis. A cache outage is not fatal: reads fall
// through to PostgreSQL and writes log a warning.
func (c *Container) initCache(ctx context.Context) {
	redisCache := infracache.NewRedisCache(
		c.Config.Redis.Host,
		c.Config.Redis.Password,
		c.Config.Redis.DB,
	)

	if rc, ok := redisCache.(interface{ Connect(context.Context) error }); ok {
		if err := rc.Connect(ctx); err != nil {
			log.Warn().Err(err).Msg("Redis unavailable, continuing without warm cache")
		}
	}

	c.Cache = redisCache
}

func (c *Container) initRepositories() {
	c.BookRepo = bookrepository.NewPostgresBookRepository(c.DB.Pool)
	c.RecRepo = recrepository.NewPostgresRecommendationRepository(c.DB.Pool)
}

func (c *Container) initTitleIndex(ctx context.Context) error {
	c.TitleIndex = index.NewTitleIndex(
		c.BookRepo,
		c.Config.Suggest.IndexMaxAge,
		c.Config.Suggest.IndexRefresh,
	)
	return c.TitleIndex.Start(ctx)
}

func (c *Container) initServices() {
	c.BookService = bookservice.NewBookService(
		c.BookRepo,
		c.TitleIndex,
		c.Cache,
		c.Config.Suggest,
		c.Config.Cache.StatsTTL,
	)
	c.RecService = recservice.NewRecommendationService(
		c.RecRepo,
		c.BookService,
		c.Cache,
	)
}

func (c *Container) initHandlers() {
	c.BookHandler = bookhandler.NewBookHandler(c.BookService, c.RecService)
	c.RecHandler = rechandler.NewRecommendationHandler(c.RecService)
}

// Cleanup releases resources in reverse initialization order.
func (c *Container) Cleanup() {
	if c.TitleIndex != nil {
		c.TitleIndex.Stop()
	}

	if c.Cache != nil {
		if closer, ok := c.Cache.(interface{ Close() error }); ok {
			if err := closer.Close(); err != nil {
				log.Warn().Err(err).Msg("Failed to close Redis client")
			}
		}
	}

	if c.DB != nil {
		c.DB.Close()
	}

	log.Info().Msg("Container cleaned up")
}
