package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"supply-pulse/internal/common/httpx"
	"supply-pulse/internal/common/logger"
	"supply-pulse/internal/domain"
	"supply-pulse/internal/microservices/alerts/service"
)

type AlertHandler struct {
	service service.AlertServiceInterface
	lg      *logger.Logger
}

func NewAlertHandler(svc service.AlertServiceInterface, lg *logger.Logger) *AlertHandler {
	return &AlertHandler{service: svc, lg: lg}
}

// List handles GET /api/alerts?status=&severity=&alert_type=&limit=.
func (h *AlertHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := domain.AlertFilter{
		Status:    domain.AlertStatus(q.Get("status")),
		Severity:  domain.AlertSeverity(q.Get("severity")),
		AlertType: domain.AlertType(q.Get("alert_type")),
		Limit:     atoiDefault(q.Get("limit"), 100),
	}

	alerts, err := h.service.ListAlerts(r.Context(), f)
	if err != nil {
		h.lg.Error("alert_list_failed", err, nil)
		httpx.WriteProblem(w, http.StatusInternalServerError, "internal_error", "failed to fetch alerts")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{"data": alerts})
}

// Update handles PATCH /api/alerts with {alert_id, action}.
func (h *AlertHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req domain.AlertActionRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteProblem(w, http.StatusBadRequest, "bad_json", err.Error())
		return
	}
	if req.AlertID == "" || req.Action == "" {
		httpx.WriteProblem(w, http.StatusBadRequest, "validation_error", "alert_id and action are required")
		return
	}

	alert, err := h.service.Apply(r.Context(), req)
	switch {
	case errors.Is(err, service.ErrUnknownAction):
		httpx.WriteProblem(w, http.StatusBadRequest, "validation_error", err.Error())
		return
	case errors.Is(err, service.ErrAlertNotFound):
		httpx.WriteProblem(w, http.StatusNotFound, "not_found", "alert not found")
		return
	case errors.Is(err, service.ErrInvalidTransition):
		httpx.WriteProblem(w, http.StatusConflict, "invalid_transition", "alert status can only move forward")
		return
	case err != nil:
		h.lg.Error("alert_update_failed", err, map[string]any{"alert_id": req.AlertID})
		httpx.WriteProblem(w, http.StatusInternalServerError, "internal_error", "failed to update alert")
		return
	}

	h.lg.Info("alert_updated", map[string]any{"alert_id": alert.ID, "status": alert.Status})
	httpx.WriteJSON(w, http.StatusOK, map[string]any{"data": alert})
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
