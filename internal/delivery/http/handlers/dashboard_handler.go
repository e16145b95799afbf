package handlers

import (
	"net/http"
	"strconv"

	"github.com/kmfx/kmfx-backoffice-service/internal/infrastructure/logger"
	"github.com/kmfx/kmfx-backoffice-service/internal/usecase"
)

type DashboardHandler struct {
	reportingUC *usecase.DefaultReportingUsecase
	auditLogger logger.AuditLogger
}

func NewDashboardHandler(reportingUC *usecase.DefaultReportingUsecase, auditLogger logger.AuditLogger) *DashboardHandler {
	return &DashboardHandler{
		reportingUC: reportingUC,
		auditLogger: auditLogger,
	}
}

func (h *DashboardHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.reportingUC.DashboardSummary(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, summary)
}

func (h *DashboardHandler) GetAuditLog(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	entries, err := h.auditLogger.ListRecent(r.Context(), limit)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, entries)
}
