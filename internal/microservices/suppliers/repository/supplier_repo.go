package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"supply-pulse/internal/domain"
)

type SupplierRepositoryInterface interface {
	// ListSuppliersWithStats returns all suppliers ordered by performance
	// score, each with aggregates over its DELIVERED purchase orders.
	ListSuppliersWithStats(ctx context.Context) ([]domain.SupplierView, error)
}

type SupplierRepository struct {
	pool *pgxpool.Pool
}

func NewSupplierRepository(pool *pgxpool.Pool) SupplierRepositoryInterface {
	return &SupplierRepository{pool: pool}
}

func (r *SupplierRepository) ListSuppliersWithStats(ctx context.Context) ([]domain.SupplierView, error) {
	rows, err := r.pool.Query(ctx, `
        SELECT s.id, s.name, s.code, s.country, s.region,
               s.performance_score, s.average_delivery_days, s.on_time_delivery_rate,
               s.created_at, s.updated_at,
               COALESCE(st.total_orders, 0),
               COALESCE(st.delayed_orders, 0),
               COALESCE(st.average_delay_days, 0)
        FROM suppliers s
        LEFT JOIN (
            SELECT supplier_id,
                   COUNT(*) AS total_orders,
                   COUNT(*) FILTER (WHERE is_delayed) AS delayed_orders,
                   AVG(delay_days) AS average_delay_days
            FROM purchase_orders
            WHERE status = 'DELIVERED'
            GROUP BY supplier_id
        ) st ON st.supplier_id = s.id
        ORDER BY s.performance_score DESC
    `)
	if err != nil {
		return nil, fmt.Errorf("query suppliers: %w", err)
	}
	defer rows.Close()

	suppliers := make([]domain.SupplierView, 0)
	for rows.Next() {
		var v domain.SupplierView
		if err := rows.Scan(
			&v.ID, &v.Name, &v.Code, &v.Country, &v.Region,
			&v.PerformanceScore, &v.AverageDeliveryDays, &v.OnTimeDeliveryRate,
			&v.CreatedAt, &v.UpdatedAt,
			&v.RecentStats.TotalOrders,
			&v.RecentStats.DelayedOrders,
			&v.RecentStats.AverageDelayDays,
		); err != nil {
			return nil, fmt.Errorf("scan supplier: %w", err)
		}
		suppliers = append(suppliers, v)
	}
	return suppliers, rows.Err()
}
