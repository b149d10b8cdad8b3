package handlers

import (
	"fmt"
	"net/http"
	"time"

	"horasextras/api"
	"horasextras/middleware"
	"horasextras/reports"
	"horasextras/store"
)

type ReportHandler struct {
	requests *store.RequestStore
}

func NewReportHandler(requests *store.RequestStore) *ReportHandler {
	return &ReportHandler{requests: requests}
}

type reportResponse struct {
	Summaries []reports.ProjectSummary `json:"summaries"`
	Totals    reports.ProjectSummary   `json:"totals"`
}

// Summary serves the per-obra report for the requested project/date window.
func (h *ReportHandler) Summary(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())

	filter, err := filterFromQuery(r)
	if err != nil {
		api.WriteError(w, http.StatusBadRequest, "validation_error", err.Error())
		return
	}

	list, err := h.requests.List(user, filter)
	if err != nil {
		api.WriteDomainError(w, err)
		return
	}

	summaries := reports.Summarize(list)
	api.WriteJSON(w, http.StatusOK, reportResponse{
		Summaries: summaries,
		Totals:    reports.Totals(summaries),
	})
}

// Export streams the same report as a CSV or XLSX attachment.
func (h *ReportHandler) Export(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())

	filter, err := filterFromQuery(r)
	if err != nil {
		api.WriteError(w, http.StatusBadRequest, "validation_error", err.Error())
		return
	}

	list, err := h.requests.List(user, filter)
	if err != nil {
		api.WriteDomainError(w, err)
		return
	}
	summaries := reports.Summarize(list)

	stamp := time.Now().Format("2006_01")
	switch r.URL.Query().Get("format") {
	case "xlsx":
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=horas_extras_%s.xlsx", stamp))
		if err := reports.WriteXLSX(w, summaries); err != nil {
			api.WriteError(w, http.StatusInternalServerError, "internal", "falha ao gerar planilha")
		}
	case "", "csv":
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=horas_extras_%s.csv", stamp))
		if err := reports.WriteCSV(w, summaries); err != nil {
			api.WriteError(w, http.StatusInternalServerError, "internal", "falha ao gerar csv")
		}
	default:
		api.WriteError(w, http.StatusBadRequest, "validation_error", "formato desconhecido, use csv ou xlsx")
	}
}
