package subscriber

import (
	"context"
	"fmt"

	"supply-pulse/internal/common/logger"
	"supply-pulse/internal/config"
	"supply-pulse/internal/connections/database"
	"supply-pulse/internal/connections/rabbitmq"
	alertrepo "supply-pulse/internal/microservices/alerts/repository"
	alertservice "supply-pulse/internal/microservices/alerts/service"
)

// Run starts the alert subscriber: it consumes prediction-scored events and
// turns high-risk ones into delivery alerts. Blocks until ctx is cancelled.
func Run(ctx context.Context, cfg *config.Config) error {
	lg := logger.New("alert-subscriber")
	defer lg.Sync()

	pool, err := database.Connect(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer pool.Close()

	rmq, err := rabbitmq.Dial(cfg.RabbitMQ)
	if err != nil {
		return fmt.Errorf("connect rabbitmq: %w", err)
	}
	defer rmq.Close()

	svc := alertservice.NewAlertService(alertrepo.NewAlertRepository(pool), cfg.Alerting.ProbabilityThreshold, lg)
	return alertservice.NewSubscriber(svc, rmq, lg).Run(ctx)
}
