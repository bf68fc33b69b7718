package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"supply-pulse/internal/domain"
)

type OrderRepository struct {
	pool *pgxpool.Pool
}

func NewOrderRepository(pool *pgxpool.Pool) OrderRepositoryInterface {
	return &OrderRepository{pool: pool}
}

func (r *OrderRepository) CreatePurchaseOrder(ctx context.Context, po domain.PurchaseOrder) error {
	_, err := r.pool.Exec(ctx, `
        INSERT INTO purchase_orders
            (id, po_number, supplier_id, category_id, order_date, promised_delivery_date,
             order_volume, order_value, shipment_distance, shipment_mode,
             origin_country, destination_country, status, seasonality)
        VALUES
            ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
    `, po.ID, po.PONumber, po.SupplierID, po.CategoryID, po.OrderDate, po.PromisedDeliveryDate,
		po.OrderVolume, po.OrderValue, po.ShipmentDistance, po.ShipmentMode,
		po.OriginCountry, po.DestinationCountry, po.Status, po.Seasonality)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return ErrBadReference
		}
		return fmt.Errorf("insert purchase order: %w", err)
	}
	return nil
}

func (r *OrderRepository) GetOrderCount(ctx context.Context) (int, error) {
	var count int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM purchase_orders`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count purchase orders: %w", err)
	}
	return count, nil
}

func (r *OrderRepository) ListPurchaseOrders(ctx context.Context, f domain.PurchaseOrderFilter) ([]domain.PurchaseOrderView, int, error) {
	page := f.Page
	if page < 1 {
		page = 1
	}
	limit := f.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	offset := (page - 1) * limit

	const filterClause = `
        WHERE ($1 = '' OR po.status = $1)
          AND ($2::boolean IS NULL OR po.is_delayed = $2)
          AND ($3 = '' OR po.supplier_id::text = $3)`

	var total int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM purchase_orders po`+filterClause,
		string(f.Status), f.IsDelayed, f.SupplierID,
	).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("count purchase orders: %w", err)
	}

	// eta_predictions.po_id is unique, so the LEFT JOIN yields at most one
	// prediction row per order.
	rows, err := r.pool.Query(ctx, `
        SELECT po.id, po.po_number, po.supplier_id, po.category_id,
               po.order_date, po.promised_delivery_date, po.actual_delivery_date,
               po.order_volume, po.order_value, po.shipment_distance,
               po.shipment_mode, po.origin_country, po.destination_country,
               po.status, po.delay_days, po.is_delayed, po.seasonality,
               po.created_at, po.updated_at,
               s.id, s.name, s.code, s.country, s.region,
               s.performance_score, s.average_delivery_days, s.on_time_delivery_rate,
               c.id, c.name, c.code, c.complexity, c.average_lead_days, c.risk_level,
               p.id, p.predicted_delivery_date, p.confidence_score, p.delay_probability,
               p.estimated_delay_days, p.risk_factors, p.mitigation_actions, p.model_version,
               (SELECT COUNT(*) FROM delivery_alerts a
                WHERE a.po_id = po.id AND a.status = 'ACTIVE') AS active_alerts
        FROM purchase_orders po
        JOIN suppliers s ON s.id = po.supplier_id
        JOIN product_categories c ON c.id = po.category_id
        LEFT JOIN eta_predictions p ON p.po_id = po.id`+filterClause+`
        ORDER BY po.created_at DESC
        LIMIT $4 OFFSET $5
    `, string(f.Status), f.IsDelayed, f.SupplierID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("query purchase orders: %w", err)
	}
	defer rows.Close()

	items := make([]domain.PurchaseOrderView, 0, limit)
	for rows.Next() {
		var v domain.PurchaseOrderView
		var predID, predVersion *string
		var predPredicted *time.Time
		var predConfidence, predProbability, predDays *float64
		var factors, actions []byte
		if err := rows.Scan(
			&v.ID, &v.PONumber, &v.SupplierID, &v.CategoryID,
			&v.OrderDate, &v.PromisedDeliveryDate, &v.ActualDeliveryDate,
			&v.OrderVolume, &v.OrderValue, &v.ShipmentDistance,
			&v.ShipmentMode, &v.OriginCountry, &v.DestinationCountry,
			&v.Status, &v.DelayDays, &v.IsDelayed, &v.Seasonality,
			&v.CreatedAt, &v.UpdatedAt,
			&v.Supplier.ID, &v.Supplier.Name, &v.Supplier.Code, &v.Supplier.Country, &v.Supplier.Region,
			&v.Supplier.PerformanceScore, &v.Supplier.AverageDeliveryDays, &v.Supplier.OnTimeDeliveryRate,
			&v.Category.ID, &v.Category.Name, &v.Category.Code,
			&v.Category.Complexity, &v.Category.AverageLeadDays, &v.Category.RiskLevel,
			&predID, &predPredicted, &predConfidence, &predProbability,
			&predDays, &factors, &actions, &predVersion,
			&v.ActiveAlerts,
		); err != nil {
			return nil, 0, fmt.Errorf("scan purchase order: %w", err)
		}
		if predID != nil {
			pred := domain.ETAPrediction{
				ID:                    *predID,
				POID:                  v.ID,
				PredictedDeliveryDate: *predPredicted,
				ConfidenceScore:       *predConfidence,
				DelayProbability:      *predProbability,
				EstimatedDelayDays:    *predDays,
				ModelVersion:          *predVersion,
			}
			_ = json.Unmarshal(factors, &pred.RiskFactors)
			_ = json.Unmarshal(actions, &pred.MitigationActions)
			v.LatestPrediction = &pred
		}
		items = append(items, v)
	}
	return items, total, rows.Err()
}
