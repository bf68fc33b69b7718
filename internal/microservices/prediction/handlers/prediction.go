package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"supply-pulse/internal/common/httpx"
	"supply-pulse/internal/common/logger"
	"supply-pulse/internal/domain"
	"supply-pulse/internal/microservices/prediction/service"
)

type PredictionHandler struct {
	service service.PredictionServiceInterface
	lg      *logger.Logger
}

func NewPredictionHandler(svc service.PredictionServiceInterface, lg *logger.Logger) *PredictionHandler {
	return &PredictionHandler{service: svc, lg: lg}
}

// Create handles POST /api/predictions: scores one purchase order and returns
// the (re)written prediction.
func (h *PredictionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.PredictionRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteProblem(w, http.StatusBadRequest, "bad_json", err.Error())
		return
	}

	prediction, err := h.service.Predict(r.Context(), req.POID)
	switch {
	case errors.Is(err, service.ErrValidation):
		httpx.WriteProblem(w, http.StatusBadRequest, "validation_error", err.Error())
		return
	case errors.Is(err, service.ErrNotFound):
		httpx.WriteProblem(w, http.StatusNotFound, "not_found", "purchase order not found")
		return
	case err != nil:
		h.lg.Error("prediction_failed", err, map[string]any{"po_id": req.POID})
		httpx.WriteProblem(w, http.StatusInternalServerError, "internal_error", "failed to create prediction")
		return
	}

	h.lg.Info("prediction_created", map[string]any{
		"po_id":             prediction.POID,
		"delay_probability": prediction.DelayProbability,
		"estimated_days":    prediction.EstimatedDelayDays,
	})
	httpx.WriteJSON(w, http.StatusOK, map[string]any{"data": toResponse(prediction)})
}

// List handles GET /api/predictions?po_id=&limit=.
func (h *PredictionHandler) List(w http.ResponseWriter, r *http.Request) {
	poID := r.URL.Query().Get("po_id")
	limit := atoiDefault(r.URL.Query().Get("limit"), 50)

	predictions, err := h.service.ListPredictions(r.Context(), poID, limit)
	if errors.Is(err, service.ErrValidation) {
		httpx.WriteProblem(w, http.StatusBadRequest, "validation_error", err.Error())
		return
	}
	if err != nil {
		h.lg.Error("prediction_list_failed", err, map[string]any{"po_id": poID})
		httpx.WriteProblem(w, http.StatusInternalServerError, "internal_error", "failed to fetch predictions")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{"data": predictions})
}

func toResponse(p domain.ETAPrediction) domain.PredictionResponse {
	return domain.PredictionResponse{
		POID:                  p.POID,
		PredictedDeliveryDate: p.PredictedDeliveryDate,
		ConfidenceScore:       p.ConfidenceScore,
		DelayProbability:      p.DelayProbability,
		EstimatedDelayDays:    p.EstimatedDelayDays,
		RiskFactors:           p.RiskFactors,
		MitigationActions:     p.MitigationActions,
		ModelVersion:          p.ModelVersion,
	}
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
