package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gg-eng/portfolio-api/internal/application/analytics"
)

// MetricsHandler exposes the hourly analytics matrix to the site owner.
type MetricsHandler struct {
	svc analytics.Service
}

func NewMetricsHandler(svc analytics.Service) *MetricsHandler {
	return &MetricsHandler{svc: svc}
}

func (h *MetricsHandler) Get(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		date = time.Now().UTC().Format("2006-01-02")
	}
	if _, err := time.Parse("2006-01-02", date); err != nil {
		writeError(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
		return
	}

	metrics, err := h.svc.Metrics(r.Context(), date)
	if err != nil {
		slog.Error("metrics read failed", "date", date, "err", err)
		writeError(w, http.StatusInternalServerError, "failed to read metrics")
		return
	}
	writeJSON(w, http.StatusOK, MetricsEnvelope{Date: date, Metrics: metrics})
}
