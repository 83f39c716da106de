package http

import (
	"net/http"

	"github.com/cmlabs-hris/face-attendance-backend-go/internal/domain/report"
	"github.com/cmlabs-hris/face-attendance-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type ReportHandler interface {
	DailyTotal(w http.ResponseWriter, r *http.Request)
	WeeklyBreakdown(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	reportService report.ReportService
}

func NewReportHandler(reportService report.ReportService) ReportHandler {
	return &reportHandlerImpl{
		reportService: reportService,
	}
}

// DailyTotal implements ReportHandler.
func (h *reportHandlerImpl) DailyTotal(w http.ResponseWriter, r *http.Request) {
	req := report.DailyTotalRequest{
		IdentityID: chi.URLParam(r, "id"),
	}
	if v := r.URL.Query().Get("date"); v != "" {
		req.Date = &v
	}

	resp, err := h.reportService.DailyTotal(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp)
}

// WeeklyBreakdown implements ReportHandler.
func (h *reportHandlerImpl) WeeklyBreakdown(w http.ResponseWriter, r *http.Request) {
	req := report.WeeklyBreakdownRequest{
		IdentityID: chi.URLParam(r, "id"),
	}
	if v := r.URL.Query().Get("as_of"); v != "" {
		req.AsOf = &v
	}

	resp, err := h.reportService.WeeklyBreakdown(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp)
}
