package handlers

import (
	"net/http"

	"supply-pulse/internal/common/httpx"
	"supply-pulse/internal/common/logger"
	"supply-pulse/internal/microservices/suppliers/service"
)

type SupplierHandler struct {
	service service.SupplierServiceInterface
	lg      *logger.Logger
}

func NewSupplierHandler(svc service.SupplierServiceInterface, lg *logger.Logger) *SupplierHandler {
	return &SupplierHandler{service: svc, lg: lg}
}

// List handles GET /api/suppliers.
func (h *SupplierHandler) List(w http.ResponseWriter, r *http.Request) {
	suppliers, err := h.service.ListSuppliers(r.Context())
	if err != nil {
		h.lg.Error("supplier_list_failed", err, nil)
		httpx.WriteProblem(w, http.StatusInternalServerError, "internal_error", "failed to fetch suppliers")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{"data": suppliers})
}
