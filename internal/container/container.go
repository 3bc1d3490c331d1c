package container

import (
	"context"
	"fmt"

	"storefront/core/internal/auth"
	"storefront/core/internal/cart"
	"storefront/core/internal/catalog"
	"storefront/core/internal/client"
	"storefront/core/internal/config"
	"storefront/core/internal/service"
	"storefront/core/internal/storage"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

// Container holds all initialized components
type Container struct {
	Config  *config.Config
	Client  client.StorefrontClient
	Storage storage.Store
	Catalog *catalog.Cache
	Cart    *cart.Store
	Auth    *auth.Service

	Service *service.Service

	db    *pgxpool.Pool
	redis *redis.Client
}

// New creates a new container with all dependencies initialized
func New(ctx context.Context, cfg *config.Config) (*Container, error) {
	container := &Container{
		Config: cfg,
	}

	store, err := container.newStore(ctx, cfg)
	if err != nil {
		return nil, err
	}
	container.Storage = store

	storefrontClient := client.NewStorefrontClient(cfg.API)
	container.Client = storefrontClient

	container.Catalog = catalog.NewCache(storefrontClient)
	container.Cart = cart.NewStore(ctx, store, cfg.Storage.CartKey)
	container.Auth = auth.NewService(ctx, storefrontClient, store)

	container.Service = service.NewService(
		container.Catalog,
		container.Cart,
		container.Auth,
		storefrontClient,
		cfg.Pagination,
	)

	return container, nil
}

func (c *Container) newStore(ctx context.Context, cfg *config.Config) (storage.Store, error) {
	switch cfg.Storage.Backend {
	case "redis":
		rdb := redis.NewClient(&redis.Options{
			Addr:     fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.Database,
		})

		if _, err := rdb.Ping(ctx).Result(); err != nil {
			return nil, fmt.Errorf("failed to connect to Redis: %w", err)
		}
		log.Info("Connected to Redis successfully")

		c.redis = rdb
		return storage.NewRedisStore(rdb, cfg.Redis.KeyPrefix), nil

	case "postgres":
		db, err := pgxpool.New(ctx,
			fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
				cfg.Database.Host,
				cfg.Database.Port,
				cfg.Database.User,
				cfg.Database.Password,
				cfg.Database.Name,
			))
		if err != nil {
			return nil, fmt.Errorf("failed to connect to Postgres: %w", err)
		}

		_, err = db.Exec(ctx, `CREATE TABLE IF NOT EXISTS kv_store (key TEXT PRIMARY KEY, value BYTEA NOT NULL)`)
		if err != nil {
			return nil, fmt.Errorf("failed to ensure kv_store table: %w", err)
		}
		log.Info("Connected to Postgres successfully")

		c.db = db
		return storage.NewPostgresStore(db), nil

	case "memory":
		return storage.NewMemoryStore(), nil

	case "file", "":
		return storage.NewFileStore(afero.NewOsFs(), cfg.Storage.Dir), nil

	default:
		return nil, fmt.Errorf("unknown storage backend: %s", cfg.Storage.Backend)
	}
}

// Run loads the catalog and walks the first pages as a demo session
func (c *Container) Run(ctx context.Context) error {
	if err := c.Catalog.RefetchAll(ctx); err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}

	log.Infof("Catalog ready: %d products, %d categories",
		c.Catalog.TotalProducts(), len(c.Catalog.Categories()))

	view := c.Service.Browse()
	log.Infof("Page %d of %d (%d products total)",
		view.CurrentPage, view.TotalPages, view.TotalItems)
	for _, p := range view.Items {
		log.Infof("  #%d %s — %.2f [%s]", p.ID, p.Title, p.Price, p.Category)
	}

	log.Infof("Cart: %d items, total %.2f", c.Cart.TotalItems(), c.Cart.TotalPrice())

	return nil
}

// Close performs cleanup when shutting down
func (c *Container) Close() error {
	log.Info("Shutting down container...")

	if c.db != nil {
		c.db.Close()
	}
	if c.redis != nil {
		if err := c.redis.Close(); err != nil {
			return err
		}
	}

	log.Info("Container shut down successfully")
	return nil
}
