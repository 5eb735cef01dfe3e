package main

import (
	"net/http"

	"crumbline-be/internal/catalog"
	"crumbline-be/internal/checkout"
	"crumbline-be/internal/config"
	"crumbline-be/internal/db"
	"crumbline-be/internal/graph"
	"crumbline-be/internal/logger"
	"crumbline-be/internal/middleware"
	"crumbline-be/internal/order"
	"crumbline-be/internal/promo"
	"crumbline-be/internal/session"

	"github.com/99designs/gqlgen/graphql/handler"
	"github.com/99designs/gqlgen/graphql/playground"
	"go.uber.org/zap"
)

func main() {
	cfg := config.LoadConfig()
	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	var catalogRepo catalog.Repository
	var backend checkout.OrderBackend

	if cfg.CatalogStatic {
		catalogRepo = catalog.NewStaticRepository()
		backend = order.NewMemoryBackend(0)
		logger.L().Info("running with static catalog and in-memory orders")
	} else {
		database, err := db.Connect(cfg)
		if err != nil {
			logger.L().Fatal("database unavailable", zap.Error(err))
		}
		defer database.Close()
		catalogRepo = catalog.NewRepository(database)
		backend = order.NewRepository(database)
	}

	registry := session.NewRegistry(backend, promo.DefaultTable(), cfg.SessionTTL)
	defer registry.Close()

	resolver := &graph.Resolver{
		CatalogSvc: catalog.NewService(catalogRepo),
		Sessions:   registry,
	}

	srv := handler.NewDefaultServer(graph.NewSchema(resolver))
	router := setupRouter(srv)

	logger.L().Info("storefront server running", zap.String("port", cfg.AppPort))
	if err := http.ListenAndServe(":"+cfg.AppPort, router); err != nil {
		logger.L().Fatal("server stopped", zap.Error(err))
	}
}

func setupRouter(srv http.Handler) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	mux.Handle("/", playground.Handler("GraphQL Playground", "/query"))

	query := middleware.SessionMiddleware(
		middleware.AuthMiddleware(
			middleware.RateLimitMiddleware(srv),
		),
	)
	mux.Handle("/query", logger.RequestIDMiddleware(logger.LoggingMiddleware(query)))

	return mux
}
