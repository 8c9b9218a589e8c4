package http

import (
	"net/http"

	"carrental-backend/internal/service"
)

type ReportHandler struct {
	reportSvc service.ReportService
}

func NewReportHandler(reportSvc service.ReportService) *ReportHandler {
	return &ReportHandler{reportSvc: reportSvc}
}

func (h *ReportHandler) Fleet(w http.ResponseWriter, r *http.Request) {
	report, err := h.reportSvc.FleetReport(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, report)
}

func (h *ReportHandler) Revenue(w http.ResponseWriter, r *http.Request) {
	report, err := h.reportSvc.RevenueReport(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, report)
}

func (h *ReportHandler) CustomerActivity(w http.ResponseWriter, r *http.Request) {
	report, err := h.reportSvc.CustomerActivityReport(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, report)
}
