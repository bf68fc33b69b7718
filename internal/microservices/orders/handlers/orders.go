package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"supply-pulse/internal/common/httpx"
	"supply-pulse/internal/common/logger"
	"supply-pulse/internal/domain"
	"supply-pulse/internal/microservices/orders/service"
)

type OrderHandler struct {
	service service.OrderServiceInterface
	lg      *logger.Logger
}

func NewOrderHandler(svc service.OrderServiceInterface, lg *logger.Logger) *OrderHandler {
	return &OrderHandler{service: svc, lg: lg}
}

// Create handles POST /api/purchase-orders.
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreatePurchaseOrderRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteProblem(w, http.StatusBadRequest, "bad_json", err.Error())
		return
	}

	resp, err := h.service.CreatePurchaseOrder(r.Context(), req)
	if errors.Is(err, service.ErrValidation) {
		httpx.WriteProblem(w, http.StatusBadRequest, "validation_error", err.Error())
		return
	}
	if err != nil {
		h.lg.Error("purchase_order_create_failed", err, nil)
		httpx.WriteProblem(w, http.StatusInternalServerError, "internal_error", "failed to create purchase order")
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, map[string]any{"data": resp})
}

// List handles GET /api/purchase-orders with status/is_delayed/supplier_id
// filters and page/limit pagination.
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	f := domain.PurchaseOrderFilter{
		Status:     domain.POStatus(q.Get("status")),
		SupplierID: q.Get("supplier_id"),
		Page:       atoiDefault(q.Get("page"), 1),
		Limit:      atoiDefault(q.Get("limit"), 20),
	}
	if raw := q.Get("is_delayed"); raw != "" {
		delayed := raw == "true"
		f.IsDelayed = &delayed
	}

	items, pagination, err := h.service.ListPurchaseOrders(r.Context(), f)
	if err != nil {
		h.lg.Error("purchase_order_list_failed", err, nil)
		httpx.WriteProblem(w, http.StatusInternalServerError, "internal_error", "failed to fetch purchase orders")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{"data": items, "pagination": pagination})
}

func atoiDefault(s string, d int) int {
	if s == "" {
		return d
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return d
	}
	return n
}
