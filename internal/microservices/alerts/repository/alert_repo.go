package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"supply-pulse/internal/domain"
)

const alertColumns = `id, po_id, alert_type, severity, message, recommended_actions,
               status, acknowledged_at, resolved_at, created_at, updated_at`

type AlertRepository struct {
	pool *pgxpool.Pool
}

func NewAlertRepository(pool *pgxpool.Pool) AlertRepositoryInterface {
	return &AlertRepository{pool: pool}
}

func (r *AlertRepository) InsertAlert(ctx context.Context, a domain.DeliveryAlert) error {
	actions, err := json.Marshal(a.RecommendedActions)
	if err != nil {
		return fmt.Errorf("marshal recommended actions: %w", err)
	}

	_, err = r.pool.Exec(ctx, `
        INSERT INTO delivery_alerts
            (id, po_id, alert_type, severity, message, recommended_actions, status)
        VALUES
            ($1, $2, $3, $4, $5, $6::jsonb, $7)
    `, a.ID, a.POID, a.AlertType, a.Severity, a.Message, string(actions), a.Status)
	if err != nil {
		return fmt.Errorf("insert alert: %w", err)
	}
	return nil
}

func (r *AlertRepository) GetAlert(ctx context.Context, id string) (domain.DeliveryAlert, bool, error) {
	a, err := scanAlert(r.pool.QueryRow(ctx, `
        SELECT `+alertColumns+`
        FROM delivery_alerts
        WHERE id = $1
    `, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.DeliveryAlert{}, false, nil
	}
	if err != nil {
		return domain.DeliveryAlert{}, false, fmt.Errorf("query alert: %w", err)
	}
	return a, true, nil
}

func (r *AlertRepository) ListAlerts(ctx context.Context, f domain.AlertFilter) ([]domain.DeliveryAlert, error) {
	limit := f.Limit
	if limit <= 0 || limit > 500 {
		limit = 100
	}

	rows, err := r.pool.Query(ctx, `
        SELECT `+alertColumns+`
        FROM delivery_alerts
        WHERE ($1 = '' OR status = $1)
          AND ($2 = '' OR severity = $2)
          AND ($3 = '' OR alert_type = $3)
        ORDER BY CASE severity
                     WHEN 'CRITICAL' THEN 4
                     WHEN 'HIGH' THEN 3
                     WHEN 'MEDIUM' THEN 2
                     ELSE 1
                 END DESC,
                 created_at DESC
        LIMIT $4
    `, string(f.Status), string(f.Severity), string(f.AlertType), limit)
	if err != nil {
		return nil, fmt.Errorf("query alerts: %w", err)
	}
	defer rows.Close()

	alerts := make([]domain.DeliveryAlert, 0, limit)
	for rows.Next() {
		a, err := scanAlert(rows)
		if err != nil {
			return nil, fmt.Errorf("scan alert: %w", err)
		}
		alerts = append(alerts, a)
	}
	return alerts, rows.Err()
}

func (r *AlertRepository) HasActiveAlert(ctx context.Context, poID string, t domain.AlertType) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `
        SELECT EXISTS (
            SELECT 1 FROM delivery_alerts
            WHERE po_id = $1 AND alert_type = $2 AND status = 'ACTIVE'
        )
    `, poID, t).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check active alert: %w", err)
	}
	return exists, nil
}

func (r *AlertRepository) Transition(ctx context.Context, id string, from []domain.AlertStatus, to domain.AlertStatus) (domain.DeliveryAlert, bool, error) {
	allowed := make([]string, 0, len(from))
	for _, s := range from {
		allowed = append(allowed, string(s))
	}

	a, err := scanAlert(r.pool.QueryRow(ctx, `
        UPDATE delivery_alerts
        SET status = $2,
            updated_at = NOW(),
            acknowledged_at = CASE WHEN $2 = 'ACKNOWLEDGED' THEN NOW() ELSE acknowledged_at END,
            resolved_at     = CASE WHEN $2 = 'RESOLVED' THEN NOW() ELSE resolved_at END
        WHERE id = $1 AND status = ANY($3)
        RETURNING `+alertColumns+`
    `, id, to, allowed))
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.DeliveryAlert{}, false, nil
	}
	if err != nil {
		return domain.DeliveryAlert{}, false, fmt.Errorf("transition alert: %w", err)
	}
	return a, true, nil
}

func scanAlert(row pgx.Row) (domain.DeliveryAlert, error) {
	var a domain.DeliveryAlert
	var actions []byte
	if err := row.Scan(
		&a.ID, &a.POID, &a.AlertType, &a.Severity, &a.Message, &actions,
		&a.Status, &a.AcknowledgedAt, &a.ResolvedAt, &a.CreatedAt, &a.UpdatedAt,
	); err != nil {
		return domain.DeliveryAlert{}, err
	}
	if err := json.Unmarshal(actions, &a.RecommendedActions); err != nil {
		return domain.DeliveryAlert{}, fmt.Errorf("decode recommended actions: %w", err)
	}
	return a, nil
}
