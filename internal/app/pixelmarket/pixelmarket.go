package pixelmarket

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/pixel-market/internal/cache"
	"github.com/magabrotheeeer/pixel-market/internal/config"
	librabbitmq "github.com/magabrotheeeer/pixel-market/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/pixel-market/internal/migrations"
	"github.com/magabrotheeeer/pixel-market/internal/rabbitmq"
	cartservice "github.com/magabrotheeeer/pixel-market/internal/services/cart"
	catalogservice "github.com/magabrotheeeer/pixel-market/internal/services/catalog"
	entitlementservice "github.com/magabrotheeeer/pixel-market/internal/services/entitlement"
	purchaseservice "github.com/magabrotheeeer/pixel-market/internal/services/purchase"
	"github.com/magabrotheeeer/pixel-market/internal/storage/repository"
)

type App struct {
	server *http.Server
	logger *slog.Logger
	db     *repository.Storage
	rabbit *amqp.Connection
}

func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	rabbitConn, err := rabbitmq.Connect(cfg.AddressRabbit, cfg.Retries, cfg.RetryDelay)
	if err != nil {
		return nil, err
	}
	rabbitCh, err := rabbitmq.SetupChannel(rabbitConn)
	if err != nil {
		return nil, err
	}
	publisher := librabbitmq.NewPublisher(rabbitCh, rabbitmq.PurchasesExchange, rabbitmq.PurchasesRoutingKey)

	entitlements := entitlementservice.New(db, cacheRedis, logger)
	catalogService := catalogservice.NewCatalogService(db, entitlements, cacheRedis, logger)
	cartService := cartservice.NewCartService(db, entitlements, logger)
	purchaseService := purchaseservice.New(db, entitlements, publisher, logger)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, db, catalogService, cartService, purchaseService)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		db:     db,
		rabbit: rabbitConn,
	}, nil
}

func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		a.db.DB.Close()
		a.rabbit.Close()
		return err
	}
}
