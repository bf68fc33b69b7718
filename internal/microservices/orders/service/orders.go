package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"supply-pulse/internal/common/logger"
	"supply-pulse/internal/domain"
	"supply-pulse/internal/microservices/orders/repository"
)

var ErrValidation = errors.New("invalid purchase order request")

type OrderServiceInterface interface {
	CreatePurchaseOrder(ctx context.Context, req domain.CreatePurchaseOrderRequest) (domain.CreatePurchaseOrderResponse, error)
	ListPurchaseOrders(ctx context.Context, f domain.PurchaseOrderFilter) ([]domain.PurchaseOrderView, domain.Pagination, error)
}

type OrderService struct {
	db repository.OrderRepositoryInterface
	lg *logger.Logger
}

func NewOrderService(db repository.OrderRepositoryInterface, lg *logger.Logger) OrderServiceInterface {
	return &OrderService{db: db, lg: lg}
}

func (s *OrderService) CreatePurchaseOrder(ctx context.Context, req domain.CreatePurchaseOrderRequest) (domain.CreatePurchaseOrderResponse, error) {
	if err := validateCreate(req); err != nil {
		return domain.CreatePurchaseOrderResponse{}, err
	}

	seasonality := req.Seasonality
	if seasonality == "" {
		seasonality = domain.SeasonNormal
	}

	// PO-<year>-NNNNN, sequence from the current order count.
	count, err := s.db.GetOrderCount(ctx)
	if err != nil {
		return domain.CreatePurchaseOrderResponse{}, fmt.Errorf("generate po number: %w", err)
	}
	now := time.Now().UTC()
	poNumber := fmt.Sprintf("PO-%d-%05d", now.Year(), count+1)

	po := domain.PurchaseOrder{
		ID:                   uuid.NewString(),
		PONumber:             poNumber,
		SupplierID:           req.SupplierID,
		CategoryID:           req.CategoryID,
		OrderDate:            now,
		PromisedDeliveryDate: req.PromisedDeliveryDate,
		OrderVolume:          req.OrderVolume,
		OrderValue:           req.OrderValue,
		ShipmentDistance:     req.ShipmentDistance,
		ShipmentMode:         req.ShipmentMode,
		OriginCountry:        req.OriginCountry,
		DestinationCountry:   req.DestinationCountry,
		Status:               domain.POStatusOpen,
		Seasonality:          seasonality,
	}

	if err := s.db.CreatePurchaseOrder(ctx, po); err != nil {
		if errors.Is(err, repository.ErrBadReference) {
			return domain.CreatePurchaseOrderResponse{}, fmt.Errorf("%w: %v", ErrValidation, err)
		}
		return domain.CreatePurchaseOrderResponse{}, fmt.Errorf("save purchase order: %w", err)
	}

	s.lg.Info("purchase_order_created", map[string]any{"po_number": po.PONumber, "supplier_id": po.SupplierID})
	return domain.CreatePurchaseOrderResponse{ID: po.ID, PONumber: po.PONumber, Status: po.Status}, nil
}

func (s *OrderService) ListPurchaseOrders(ctx context.Context, f domain.PurchaseOrderFilter) ([]domain.PurchaseOrderView, domain.Pagination, error) {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit <= 0 || f.Limit > 100 {
		f.Limit = 20
	}

	items, total, err := s.db.ListPurchaseOrders(ctx, f)
	if err != nil {
		return nil, domain.Pagination{}, err
	}

	pages := total / f.Limit
	if total%f.Limit != 0 {
		pages++
	}
	return items, domain.Pagination{Page: f.Page, Limit: f.Limit, Total: total, Pages: pages}, nil
}

func validateCreate(req domain.CreatePurchaseOrderRequest) error {
	if _, err := uuid.Parse(req.SupplierID); err != nil {
		return fmt.Errorf("%w: supplier_id must be a UUID", ErrValidation)
	}
	if _, err := uuid.Parse(req.CategoryID); err != nil {
		return fmt.Errorf("%w: category_id must be a UUID", ErrValidation)
	}
	if req.OrderVolume <= 0 {
		return fmt.Errorf("%w: order_volume must be positive", ErrValidation)
	}
	if req.PromisedDeliveryDate.IsZero() {
		return fmt.Errorf("%w: promised_delivery_date is required", ErrValidation)
	}
	switch req.ShipmentMode {
	case domain.ModeAir, domain.ModeSea, domain.ModeRoad, domain.ModeRail:
	default:
		return fmt.Errorf("%w: invalid shipment_mode %q", ErrValidation, req.ShipmentMode)
	}
	switch req.Seasonality {
	case "", domain.SeasonPeak, domain.SeasonNormal, domain.SeasonLow:
	default:
		return fmt.Errorf("%w: invalid seasonality %q", ErrValidation, req.Seasonality)
	}
	return nil
}
