package repository

import (
	"context"
	"errors"

	"supply-pulse/internal/domain"
)

// ErrBadReference marks a create that points at a missing supplier or
// category.
var ErrBadReference = errors.New("unknown supplier or category reference")

type OrderRepositoryInterface interface {
	CreatePurchaseOrder(ctx context.Context, po domain.PurchaseOrder) error
	GetOrderCount(ctx context.Context) (int, error)
	// ListPurchaseOrders returns one page of orders, newest first, each with
	// supplier, category, its live prediction (if scored) and the count of
	// still-active alerts; total is the unpaginated match count.
	ListPurchaseOrders(ctx context.Context, f domain.PurchaseOrderFilter) (items []domain.PurchaseOrderView, total int, err error)
}
