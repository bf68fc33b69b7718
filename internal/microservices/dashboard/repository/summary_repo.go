package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"supply-pulse/internal/domain"
)

type SummaryRepositoryInterface interface {
	Summary(ctx context.Context) (domain.DashboardSummary, error)
}

type SummaryRepository struct {
	pool *pgxpool.Pool
}

func NewSummaryRepository(pool *pgxpool.Pool) SummaryRepositoryInterface {
	return &SummaryRepository{pool: pool}
}

func (r *SummaryRepository) Summary(ctx context.Context) (domain.DashboardSummary, error) {
	var s domain.DashboardSummary
	err := r.pool.QueryRow(ctx, `
        SELECT
            (SELECT COUNT(*) FROM purchase_orders WHERE status IN ('OPEN', 'IN_TRANSIT')),
            (SELECT COUNT(*) FROM purchase_orders WHERE is_delayed),
            (SELECT COUNT(*) FROM delivery_alerts WHERE status = 'ACTIVE'),
            (SELECT COUNT(*) FROM eta_predictions WHERE delay_probability > 0.7)
    `).Scan(&s.OpenOrders, &s.DelayedOrders, &s.ActiveAlerts, &s.HighRiskPredictions)
	if err != nil {
		return domain.DashboardSummary{}, fmt.Errorf("dashboard summary: %w", err)
	}
	return s, nil
}
