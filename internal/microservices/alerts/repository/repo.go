package repository

import (
	"context"

	"supply-pulse/internal/domain"
)

type AlertRepositoryInterface interface {
	InsertAlert(ctx context.Context, a domain.DeliveryAlert) error
	GetAlert(ctx context.Context, id string) (a domain.DeliveryAlert, ok bool, err error)
	ListAlerts(ctx context.Context, f domain.AlertFilter) ([]domain.DeliveryAlert, error)
	// HasActiveAlert reports whether the order already carries an ACTIVE
	// alert of the given type; used to suppress duplicates on re-scoring.
	HasActiveAlert(ctx context.Context, poID string, t domain.AlertType) (bool, error)
	// Transition moves the alert to the target status only when its current
	// status is one of from; ok is false when no row matched, which covers
	// both a missing alert and a backwards transition.
	Transition(ctx context.Context, id string, from []domain.AlertStatus, to domain.AlertStatus) (domain.DeliveryAlert, bool, error)
}
