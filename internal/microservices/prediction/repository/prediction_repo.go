package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"supply-pulse/internal/domain"
)

type PredictionRepository struct {
	pool *pgxpool.Pool
}

func NewPredictionRepository(pool *pgxpool.Pool) PredictionRepositoryInterface {
	return &PredictionRepository{pool: pool}
}

func (r *PredictionRepository) GetPurchaseOrder(ctx context.Context, poID string) (domain.PurchaseOrder, bool, error) {
	var po domain.PurchaseOrder
	err := r.pool.QueryRow(ctx, `
        SELECT po.id, po.po_number, po.supplier_id, po.category_id,
               po.order_date, po.promised_delivery_date,
               po.order_volume, po.order_value, po.shipment_distance,
               po.shipment_mode, po.origin_country, po.destination_country,
               po.status, po.seasonality,
               s.id, s.name, s.code, s.country, s.region,
               s.performance_score, s.average_delivery_days, s.on_time_delivery_rate,
               c.id, c.name, c.code, c.complexity, c.average_lead_days, c.risk_level
        FROM purchase_orders po
        JOIN suppliers s ON s.id = po.supplier_id
        JOIN product_categories c ON c.id = po.category_id
        WHERE po.id = $1
    `, poID).Scan(
		&po.ID, &po.PONumber, &po.SupplierID, &po.CategoryID,
		&po.OrderDate, &po.PromisedDeliveryDate,
		&po.OrderVolume, &po.OrderValue, &po.ShipmentDistance,
		&po.ShipmentMode, &po.OriginCountry, &po.DestinationCountry,
		&po.Status, &po.Seasonality,
		&po.Supplier.ID, &po.Supplier.Name, &po.Supplier.Code, &po.Supplier.Country, &po.Supplier.Region,
		&po.Supplier.PerformanceScore, &po.Supplier.AverageDeliveryDays, &po.Supplier.OnTimeDeliveryRate,
		&po.Category.ID, &po.Category.Name, &po.Category.Code,
		&po.Category.Complexity, &po.Category.AverageLeadDays, &po.Category.RiskLevel,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.PurchaseOrder{}, false, nil
	}
	if err != nil {
		return domain.PurchaseOrder{}, false, fmt.Errorf("query purchase order: %w", err)
	}
	return po, true, nil
}

func (r *PredictionRepository) ListDelayPatterns(ctx context.Context, supplierID, categoryID string) ([]domain.DelayPattern, error) {
	rows, err := r.pool.Query(ctx, `
        SELECT id, supplier_id, category_id, trigger_condition,
               min_order_volume, max_order_volume, shipment_mode, seasonality,
               average_delay_days, delay_probability, confidence, occurrence_count, created_at
        FROM delay_patterns
        WHERE supplier_id = $1 AND category_id = $2
    `, supplierID, categoryID)
	if err != nil {
		return nil, fmt.Errorf("query delay patterns: %w", err)
	}
	defer rows.Close()

	patterns := make([]domain.DelayPattern, 0)
	for rows.Next() {
		var p domain.DelayPattern
		if err := rows.Scan(
			&p.ID, &p.SupplierID, &p.CategoryID, &p.TriggerCondition,
			&p.MinOrderVolume, &p.MaxOrderVolume, &p.ShipmentMode, &p.Seasonality,
			&p.AverageDelayDays, &p.DelayProbability, &p.Confidence, &p.OccurrenceCount, &p.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan delay pattern: %w", err)
		}
		patterns = append(patterns, p)
	}
	return patterns, rows.Err()
}

func (r *PredictionRepository) FindCurrentPrediction(ctx context.Context, poID string) (*domain.ETAPrediction, error) {
	p, err := scanPrediction(r.pool.QueryRow(ctx, `
        SELECT id, po_id, predicted_delivery_date, confidence_score, delay_probability,
               estimated_delay_days, risk_factors, mitigation_actions, model_version,
               created_at, updated_at
        FROM eta_predictions
        WHERE po_id = $1
    `, poID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query prediction: %w", err)
	}
	return &p, nil
}

// UpsertPrediction relies on the unique index on po_id: concurrent scorings
// of the same order resolve inside one statement instead of racing on an
// exists-check. model_version is set at create time only.
func (r *PredictionRepository) UpsertPrediction(ctx context.Context, p domain.ETAPrediction) (domain.ETAPrediction, error) {
	factors, err := json.Marshal(p.RiskFactors)
	if err != nil {
		return domain.ETAPrediction{}, fmt.Errorf("marshal risk factors: %w", err)
	}
	actions, err := json.Marshal(p.MitigationActions)
	if err != nil {
		return domain.ETAPrediction{}, fmt.Errorf("marshal mitigation actions: %w", err)
	}

	saved, err := scanPrediction(r.pool.QueryRow(ctx, `
        INSERT INTO eta_predictions
            (id, po_id, predicted_delivery_date, confidence_score, delay_probability,
             estimated_delay_days, risk_factors, mitigation_actions, model_version)
        VALUES
            ($1, $2, $3, $4, $5, $6, $7::jsonb, $8::jsonb, $9)
        ON CONFLICT (po_id) DO UPDATE SET
            predicted_delivery_date = EXCLUDED.predicted_delivery_date,
            confidence_score        = EXCLUDED.confidence_score,
            delay_probability       = EXCLUDED.delay_probability,
            estimated_delay_days    = EXCLUDED.estimated_delay_days,
            risk_factors            = EXCLUDED.risk_factors,
            mitigation_actions      = EXCLUDED.mitigation_actions,
            updated_at              = NOW()
        RETURNING id, po_id, predicted_delivery_date, confidence_score, delay_probability,
                  estimated_delay_days, risk_factors, mitigation_actions, model_version,
                  created_at, updated_at
    `, p.ID, p.POID, p.PredictedDeliveryDate, p.ConfidenceScore, p.DelayProbability,
		p.EstimatedDelayDays, string(factors), string(actions), p.ModelVersion))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return domain.ETAPrediction{}, ErrConflict
		}
		return domain.ETAPrediction{}, fmt.Errorf("upsert prediction: %w", err)
	}
	return saved, nil
}

func (r *PredictionRepository) ListPredictions(ctx context.Context, poID string, limit int) ([]domain.ETAPrediction, error) {
	if limit <= 0 || limit > 500 {
		limit = 50
	}
	rows, err := r.pool.Query(ctx, `
        SELECT id, po_id, predicted_delivery_date, confidence_score, delay_probability,
               estimated_delay_days, risk_factors, mitigation_actions, model_version,
               created_at, updated_at
        FROM eta_predictions
        WHERE ($1 = '' OR po_id::text = $1)
        ORDER BY created_at DESC
        LIMIT $2
    `, poID, limit)
	if err != nil {
		return nil, fmt.Errorf("query predictions: %w", err)
	}
	defer rows.Close()

	predictions := make([]domain.ETAPrediction, 0, limit)
	for rows.Next() {
		p, err := scanPrediction(rows)
		if err != nil {
			return nil, fmt.Errorf("scan prediction: %w", err)
		}
		predictions = append(predictions, p)
	}
	return predictions, rows.Err()
}

func scanPrediction(row pgx.Row) (domain.ETAPrediction, error) {
	var p domain.ETAPrediction
	var factors, actions []byte
	if err := row.Scan(
		&p.ID, &p.POID, &p.PredictedDeliveryDate, &p.ConfidenceScore, &p.DelayProbability,
		&p.EstimatedDelayDays, &factors, &actions, &p.ModelVersion,
		&p.CreatedAt, &p.UpdatedAt,
	); err != nil {
		return domain.ETAPrediction{}, err
	}
	if err := json.Unmarshal(factors, &p.RiskFactors); err != nil {
		return domain.ETAPrediction{}, fmt.Errorf("decode risk factors: %w", err)
	}
	if err := json.Unmarshal(actions, &p.MitigationActions); err != nil {
		return domain.ETAPrediction{}, fmt.Errorf("decode mitigation actions: %w", err)
	}
	return p, nil
}
