package api

import (
	"net/http"

	"rentacar/internal/service"
)

type ReportHandler struct {
	Service *service.ReportService
}

func NewReportHandler(svc *service.ReportService) *ReportHandler {
	return &ReportHandler{Service: svc}
}

// Reports accept ?period=diario|semanal|mensual|rango; rango additionally
// takes startDate and endDate (AAAA-MM-DD).
func (h *ReportHandler) RentalReport(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	report, err := h.Service.RentalReport(q.Get("period"), q.Get("startDate"), q.Get("endDate"))
	if err != nil {
		writeError(w, err, "Error al generar el reporte de alquileres")
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (h *ReportHandler) CarReport(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	report, err := h.Service.CarReport(q.Get("period"), q.Get("startDate"), q.Get("endDate"))
	if err != nil {
		writeError(w, err, "Error al generar el reporte de vehículos")
		return
	}
	writeJSON(w, http.StatusOK, report)
}
