package handlers

import (
	"net/http"

	"supply-pulse/internal/common/httpx"
	"supply-pulse/internal/common/logger"
	"supply-pulse/internal/microservices/dashboard/repository"
)

type SummaryHandler struct {
	repo repository.SummaryRepositoryInterface
	lg   *logger.Logger
}

func NewSummaryHandler(repo repository.SummaryRepositoryInterface, lg *logger.Logger) *SummaryHandler {
	return &SummaryHandler{repo: repo, lg: lg}
}

// Get handles GET /api/dashboard/summary for the metrics grid.
func (h *SummaryHandler) Get(w http.ResponseWriter, r *http.Request) {
	summary, err := h.repo.Summary(r.Context())
	if err != nil {
		h.lg.Error("dashboard_summary_failed", err, nil)
		httpx.WriteProblem(w, http.StatusInternalServerError, "internal_error", "failed to compute summary")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{"data": summary})
}
