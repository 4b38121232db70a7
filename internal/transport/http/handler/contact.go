package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gg-eng/portfolio-api/internal/application/analytics"
	"github.com/gg-eng/portfolio-api/internal/application/contact"
	"github.com/gg-eng/portfolio-api/internal/domain"
	"github.com/gg-eng/portfolio-api/internal/pkg/validate"
)

// ContactHandler handles the CV request form.
type ContactHandler struct {
	svc       contact.Service
	analytics analytics.Service
}

func NewContactHandler(svc contact.Service, analyticsSvc analytics.Service) *ContactHandler {
	return &ContactHandler{svc: svc, analytics: analyticsSvc}
}

func (h *ContactHandler) RequestCV(w http.ResponseWriter, r *http.Request) {
	var req domain.CVRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	// Honeypot: the website field is invisible to humans. Bots that fill it
	// get a fake success so they don't learn they were caught.
	if req.Website != "" {
		writeJSON(w, http.StatusOK, MessageEnvelope{Message: "ok"})
		return
	}

	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.svc.RequestCV(r.Context(), req); err != nil {
		switch {
		case errors.Is(err, domain.ErrNotConfigured):
			writeError(w, http.StatusInternalServerError, "email service not configured")
		case errors.Is(err, domain.ErrDeliveryFailure):
			writeError(w, http.StatusInternalServerError, "failed to send email, please try again later")
		default:
			slog.Error("cv request failed", "err", err)
			writeError(w, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	h.track(r, domain.EventCVRequest, "/contact/request-cv", req.Language)
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "ok"})
}

// TrackPageview records a pageview reported by the frontend.
func (h *ContactHandler) TrackPageview(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Path     string `json:"path"`
		Language string `json:"language"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if body.Path == "" {
		body.Path = "/"
	}
	h.track(r, domain.EventPageview, body.Path, body.Language)
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "ok"})
}

func (h *ContactHandler) track(r *http.Request, typ domain.EventType, path, language string) {
	if h.analytics == nil {
		return
	}
	event := domain.AnalyticsEvent{
		Type:      typ,
		Path:      path,
		Timestamp: time.Now().UnixMilli(),
		UserAgent: r.UserAgent(),
		Referer:   r.Referer(),
		Language:  language,
	}
	// Analytics must never break the request it rides on.
	if err := h.analytics.Track(r.Context(), event); err != nil {
		slog.Warn("analytics track failed", "type", typ, "err", err)
	}
}
