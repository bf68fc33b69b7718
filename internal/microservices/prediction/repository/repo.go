package repository

import (
	"context"
	"errors"

	"supply-pulse/internal/domain"
)

// ErrConflict marks an upsert that lost a same-PO race at the storage layer.
// The service retries it once; by then the row exists and the retry resolves
// to an update.
var ErrConflict = errors.New("prediction upsert conflict")

type PredictionRepositoryInterface interface {
	// GetPurchaseOrder loads the order with its supplier and category
	// resolved. ok is false when the order does not exist.
	GetPurchaseOrder(ctx context.Context, poID string) (po domain.PurchaseOrder, ok bool, err error)
	// ListDelayPatterns returns every pattern scoped to the supplier/category
	// pair, unordered, possibly empty.
	ListDelayPatterns(ctx context.Context, supplierID, categoryID string) ([]domain.DelayPattern, error)
	// FindCurrentPrediction returns nil when the order has not been scored.
	FindCurrentPrediction(ctx context.Context, poID string) (*domain.ETAPrediction, error)
	// UpsertPrediction writes the single live prediction for the order,
	// atomically per po_id.
	UpsertPrediction(ctx context.Context, p domain.ETAPrediction) (domain.ETAPrediction, error)
	// ListPredictions returns the newest predictions first, optionally
	// filtered to one order.
	ListPredictions(ctx context.Context, poID string, limit int) ([]domain.ETAPrediction, error)
}
