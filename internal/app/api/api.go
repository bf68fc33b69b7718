package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"supply-pulse/internal/common/httpx"
	"supply-pulse/internal/common/logger"
	"supply-pulse/internal/config"
	"supply-pulse/internal/connections/database"
	"supply-pulse/internal/connections/rabbitmq"
	alerthandlers "supply-pulse/internal/microservices/alerts/handlers"
	alertrepo "supply-pulse/internal/microservices/alerts/repository"
	alertservice "supply-pulse/internal/microservices/alerts/service"
	dashhandlers "supply-pulse/internal/microservices/dashboard/handlers"
	dashrepo "supply-pulse/internal/microservices/dashboard/repository"
	orderhandlers "supply-pulse/internal/microservices/orders/handlers"
	orderrepo "supply-pulse/internal/microservices/orders/repository"
	orderservice "supply-pulse/internal/microservices/orders/service"
	predhandlers "supply-pulse/internal/microservices/prediction/handlers"
	predrepo "supply-pulse/internal/microservices/prediction/repository"
	predservice "supply-pulse/internal/microservices/prediction/service"
	suphandlers "supply-pulse/internal/microservices/suppliers/handlers"
	suprepo "supply-pulse/internal/microservices/suppliers/repository"
	supservice "supply-pulse/internal/microservices/suppliers/service"
	"supply-pulse/internal/storage"
)

// Run starts the dashboard HTTP API: purchase orders, suppliers, the
// prediction engine endpoint, alerts and the summary. Blocks until ctx is
// cancelled.
func Run(ctx context.Context, cfg *config.Config, port int) error {
	lg := logger.New("dashboard-api")
	defer lg.Sync()

	pool, err := database.Connect(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer pool.Close()

	if err := storage.RunMigrations(ctx, pool); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	rmq, err := rabbitmq.Dial(cfg.RabbitMQ)
	if err != nil {
		return fmt.Errorf("connect rabbitmq: %w", err)
	}
	defer rmq.Close()
	if err := rmq.DeclareAll(); err != nil {
		return fmt.Errorf("declare rabbitmq topology: %w", err)
	}

	orderSvc := orderservice.NewOrderService(orderrepo.NewOrderRepository(pool), lg)
	predictionSvc := predservice.NewPredictionService(predrepo.NewPredictionRepository(pool), rmq, lg)
	supplierSvc := supservice.NewSupplierService(suprepo.NewSupplierRepository(pool))
	alertSvc := alertservice.NewAlertService(alertrepo.NewAlertRepository(pool), cfg.Alerting.ProbabilityThreshold, lg)

	orderHandler := orderhandlers.NewOrderHandler(orderSvc, lg)
	predictionHandler := predhandlers.NewPredictionHandler(predictionSvc, lg)
	supplierHandler := suphandlers.NewSupplierHandler(supplierSvc, lg)
	alertHandler := alerthandlers.NewAlertHandler(alertSvc, lg)
	summaryHandler := dashhandlers.NewSummaryHandler(dashrepo.NewSummaryRepository(pool), lg)

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Timeout(15 * time.Second))

	router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		httpx.WriteJSON(w, http.StatusOK, map[string]any{"ok": true, "service": "dashboard-api"})
	})

	router.Route("/api", func(r chi.Router) {
		r.Get("/purchase-orders", orderHandler.List)
		r.Post("/purchase-orders", orderHandler.Create)
		r.Get("/suppliers", supplierHandler.List)
		r.Get("/predictions", predictionHandler.List)
		r.Post("/predictions", predictionHandler.Create)
		r.Get("/alerts", alertHandler.List)
		r.Patch("/alerts", alertHandler.Update)
		r.Get("/dashboard/summary", summaryHandler.Get)
	})

	lg.Info("service_started", map[string]any{"port": port})
	srv := httpx.New(fmt.Sprintf(":%d", port), router)
	return srv.Run(ctx, cfg.HTTP.ShutdownTimeout())
}
