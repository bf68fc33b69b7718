package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"supply-pulse/internal/common/logger"
	"supply-pulse/internal/domain"
)

type fakeOrderRepo struct {
	created []domain.PurchaseOrder
	count   int

	items []domain.PurchaseOrderView
	total int
}

func (f *fakeOrderRepo) CreatePurchaseOrder(_ context.Context, po domain.PurchaseOrder) error {
	f.created = append(f.created, po)
	return nil
}

func (f *fakeOrderRepo) GetOrderCount(_ context.Context) (int, error) {
	return f.count, nil
}

func (f *fakeOrderRepo) ListPurchaseOrders(_ context.Context, _ domain.PurchaseOrderFilter) ([]domain.PurchaseOrderView, int, error) {
	return f.items, f.total, nil
}

func validCreateRequest() domain.CreatePurchaseOrderRequest {
	return domain.CreatePurchaseOrderRequest{
		SupplierID:           uuid.NewString(),
		CategoryID:           uuid.NewString(),
		OrderVolume:          75,
		OrderValue:           45000,
		ShipmentDistance:     5000,
		ShipmentMode:         domain.ModeAir,
		OriginCountry:        "China",
		DestinationCountry:   "India",
		PromisedDeliveryDate: time.Now().UTC().Add(14 * 24 * time.Hour),
	}
}

func TestCreatePurchaseOrder_GeneratesSequentialNumber(t *testing.T) {
	repo := &fakeOrderRepo{count: 51}
	svc := NewOrderService(repo, logger.New("test"))

	resp, err := svc.CreatePurchaseOrder(context.Background(), validCreateRequest())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	want := fmt.Sprintf("PO-%d-00052", time.Now().UTC().Year())
	if resp.PONumber != want {
		t.Fatalf("expected %s, got %s", want, resp.PONumber)
	}
	if resp.Status != domain.POStatusOpen {
		t.Fatalf("new orders must be OPEN, got %s", resp.Status)
	}
	if len(repo.created) != 1 {
		t.Fatalf("expected one insert, got %d", len(repo.created))
	}
}

func TestCreatePurchaseOrder_DefaultsSeasonalityToNormal(t *testing.T) {
	repo := &fakeOrderRepo{}
	svc := NewOrderService(repo, logger.New("test"))

	req := validCreateRequest()
	req.Seasonality = ""
	if _, err := svc.CreatePurchaseOrder(context.Background(), req); err != nil {
		t.Fatalf("create: %v", err)
	}
	if repo.created[0].Seasonality != domain.SeasonNormal {
		t.Fatalf("expected NORMAL seasonality, got %s", repo.created[0].Seasonality)
	}
}

func TestCreatePurchaseOrder_Validation(t *testing.T) {
	svc := NewOrderService(&fakeOrderRepo{}, logger.New("test"))

	cases := []struct {
		name   string
		mutate func(*domain.CreatePurchaseOrderRequest)
		detail string
	}{
		{"bad supplier id", func(r *domain.CreatePurchaseOrderRequest) { r.SupplierID = "x" }, "supplier_id"},
		{"bad category id", func(r *domain.CreatePurchaseOrderRequest) { r.CategoryID = "x" }, "category_id"},
		{"zero volume", func(r *domain.CreatePurchaseOrderRequest) { r.OrderVolume = 0 }, "order_volume"},
		{"missing promised date", func(r *domain.CreatePurchaseOrderRequest) { r.PromisedDeliveryDate = time.Time{} }, "promised_delivery_date"},
		{"bad shipment mode", func(r *domain.CreatePurchaseOrderRequest) { r.ShipmentMode = "TRUCK" }, "shipment_mode"},
		{"bad seasonality", func(r *domain.CreatePurchaseOrderRequest) { r.Seasonality = "WINTER" }, "seasonality"},
	}
	for _, c := range cases {
		req := validCreateRequest()
		c.mutate(&req)
		_, err := svc.CreatePurchaseOrder(context.Background(), req)
		if !errors.Is(err, ErrValidation) {
			t.Fatalf("%s: expected ErrValidation, got %v", c.name, err)
		}
		if !strings.Contains(err.Error(), c.detail) {
			t.Fatalf("%s: error %q does not name the field", c.name, err)
		}
	}
}

func TestListPurchaseOrders_PaginationMath(t *testing.T) {
	repo := &fakeOrderRepo{total: 45}
	svc := NewOrderService(repo, logger.New("test"))

	_, page, err := svc.ListPurchaseOrders(context.Background(), domain.PurchaseOrderFilter{Page: 2, Limit: 20})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if page.Pages != 3 || page.Total != 45 || page.Page != 2 || page.Limit != 20 {
		t.Fatalf("unexpected pagination: %+v", page)
	}
}

func TestListPurchaseOrders_NormalizesFilter(t *testing.T) {
	repo := &fakeOrderRepo{total: 5}
	svc := NewOrderService(repo, logger.New("test"))

	_, page, err := svc.ListPurchaseOrders(context.Background(), domain.PurchaseOrderFilter{Page: 0, Limit: 500})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if page.Page != 1 || page.Limit != 20 {
		t.Fatalf("expected page 1 limit 20, got %+v", page)
	}
}
