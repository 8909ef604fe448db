// Package pixelmarket собирает основное приложение маркетплейса:
// хранилище, кеш, очередь сообщений, сервисы и HTTP-маршруты.
package pixelmarket

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpSwagger "github.com/swaggo/http-swagger"

	assetcreate "github.com/magabrotheeeer/pixel-market/internal/http/handlers/asset/create"
	assetdownload "github.com/magabrotheeeer/pixel-market/internal/http/handlers/asset/download"
	assetlike "github.com/magabrotheeeer/pixel-market/internal/http/handlers/asset/like"
	assetlist "github.com/magabrotheeeer/pixel-market/internal/http/handlers/asset/list"
	assetread "github.com/magabrotheeeer/pixel-market/internal/http/handlers/asset/read"
	assetstats "github.com/magabrotheeeer/pixel-market/internal/http/handlers/asset/stats"
	cartadd "github.com/magabrotheeeer/pixel-market/internal/http/handlers/cart/add"
	cartclear "github.com/magabrotheeeer/pixel-market/internal/http/handlers/cart/clear"
	cartlist "github.com/magabrotheeeer/pixel-market/internal/http/handlers/cart/list"
	cartremove "github.com/magabrotheeeer/pixel-market/internal/http/handlers/cart/remove"
	"github.com/magabrotheeeer/pixel-market/internal/http/handlers/health"
	"github.com/magabrotheeeer/pixel-market/internal/http/handlers/purchase/checkout"
	purchaselist "github.com/magabrotheeeer/pixel-market/internal/http/handlers/purchase/list"
	"github.com/magabrotheeeer/pixel-market/internal/http/handlers/purchase/transactions"
	"github.com/magabrotheeeer/pixel-market/internal/http/middlewarectx"
	cartservice "github.com/magabrotheeeer/pixel-market/internal/services/cart"
	catalogservice "github.com/magabrotheeeer/pixel-market/internal/services/catalog"
	purchaseservice "github.com/magabrotheeeer/pixel-market/internal/services/purchase"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, users middlewarectx.UserProvider,
	catalogService *catalogservice.CatalogService, cartService *cartservice.CartService,
	purchaseService *purchaseservice.Service) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	r.Route("/api/v1", func(r chi.Router) {
		// Открытые конечные точки
		r.Get("/health", health.New(logger).ServeHTTP)
		r.Get("/stats", assetstats.New(logger, catalogService).ServeHTTP)

		// Группа с идентификацией пользователя
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.IdentifyMiddleware(users, logger))
			r.Use(middlewarectx.RateLimitMiddleware(logger))

			r.Post("/assets", assetcreate.New(logger, catalogService).ServeHTTP)
			r.Get("/assets", assetlist.New(logger, catalogService).ServeHTTP)
			r.Get("/assets/{id}", assetread.New(logger, catalogService).ServeHTTP)
			r.Post("/assets/{id}/like", assetlike.New(logger, catalogService).ServeHTTP)
			r.Post("/assets/{id}/download", assetdownload.New(logger, catalogService).ServeHTTP)

			r.Get("/cart", cartlist.New(logger, cartService).ServeHTTP)
			r.Delete("/cart", cartclear.New(logger, cartService).ServeHTTP)
			r.Post("/cart/{id}", cartadd.New(logger, cartService).ServeHTTP)
			r.Delete("/cart/{id}", cartremove.New(logger, cartService).ServeHTTP)

			r.Post("/checkout", checkout.New(logger, purchaseService).ServeHTTP)
			r.Get("/purchases", purchaselist.New(logger, purchaseService).ServeHTTP)
			r.Get("/transactions", transactions.New(logger, purchaseService).ServeHTTP)
		})
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
