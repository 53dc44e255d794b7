package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/ThreeDotsLabs/go-event-driven/common/log"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	tracesdk "go.opentelemetry.io/otel/sdk/trace"
	"golang.org/x/sync/errgroup"

	"museum/catalog"
	"museum/config"
	dbLib "museum/db"
	"museum/entity"
	"museum/http"
	"museum/pubsub"
	"museum/pubsub/bus"
	"museum/pubsub/event"
	"museum/pubsub/outbox"
)

type App struct {
	db              *sqlx.DB
	catalogRepo     *dbLib.CatalogPostgresRepository
	catalogFile     string
	watermillRouter *message.Router
	httpServer      *http.Server
	traceProvider   *tracesdk.TracerProvider
}

// New wires the service. traceProvider may be nil, then nothing is flushed on
// shutdown.
func New(
	cfg config.Config,
	db *sqlx.DB,
	redisClient *redis.Client,
	traceProvider *tracesdk.TracerProvider,
) (App, error) {
	watermillLogger := log.NewWatermill(log.FromContext(context.Background()))

	redisPublisher, err := pubsub.NewRedisPublisher(redisClient, watermillLogger)
	if err != nil {
		return App{}, err
	}

	eventBus, err := bus.NewEventBus(redisPublisher)
	if err != nil {
		return App{}, fmt.Errorf("failed to create event bus: %w", err)
	}

	catalogRepo := dbLib.NewCatalogPostgresRepository(db)
	catalogCache := dbLib.NewCatalogCache(catalogRepo, redisClient, cfg.CatalogCacheTTL)

	postgresSubscriber, err := outbox.NewPostgresSubscriber(db, watermillLogger)
	if err != nil {
		return App{}, err
	}

	watermillRouter, err := pubsub.NewWatermillRouter(
		postgresSubscriber,
		redisPublisher,
		event.NewProcessorConfig(redisClient, watermillLogger),
		event.NewHandler(catalogCache),
		watermillLogger,
	)
	if err != nil {
		return App{}, fmt.Errorf("failed to create watermill router: %w", err)
	}

	httpServer := http.NewServer(
		cfg.HTTPAddr,
		eventBus,
		catalogCache,
		catalogRepo,
	)

	return App{
		db:              db,
		catalogRepo:     catalogRepo,
		catalogFile:     cfg.CatalogFile,
		watermillRouter: watermillRouter,
		httpServer:      httpServer,
		traceProvider:   traceProvider,
	}, nil
}

func (a App) Run(ctx context.Context) error {
	if err := dbLib.InitializeDatabaseSchema(a.db); err != nil {
		return fmt.Errorf("failed to initialize database schema: %w", err)
	}

	if err := a.seedCatalog(ctx); err != nil {
		return err
	}

	g, ctx := errgroup.WithContext(ctx)

	if a.traceProvider != nil {
		g.Go(func() error {
			<-ctx.Done()
			return a.traceProvider.Shutdown(context.Background())
		})
	}

	g.Go(func() error {
		return a.watermillRouter.Run(ctx)
	})

	g.Go(func() error {
		// the service is not healthy before the router runs
		<-a.watermillRouter.Running()

		return a.httpServer.Run(ctx)
	})

	return g.Wait()
}

// seedCatalog stores the configured catalog only when none was stored yet,
// so catalogs replaced over HTTP survive restarts.
func (a App) seedCatalog(ctx context.Context) error {
	_, err := a.catalogRepo.Get(ctx)
	if err == nil {
		return nil
	}
	if !errors.Is(err, entity.ErrNotFound) {
		return fmt.Errorf("failed to check stored catalog: %w", err)
	}

	var seed entity.Catalog
	if a.catalogFile == "" {
		seed, err = catalog.Default()
	} else {
		seed, err = catalog.Load(a.catalogFile)
	}
	if err != nil {
		return fmt.Errorf("failed to load seed catalog: %w", err)
	}

	log.FromContext(ctx).
		WithField("ticket_types", seed.TicketTypeNames()).
		WithField("file", a.catalogFile).
		Info("Seeding catalog")

	if err := a.catalogRepo.Store(ctx, seed); err != nil {
		return fmt.Errorf("failed to seed catalog: %w", err)
	}

	return nil
}
