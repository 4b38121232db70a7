package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gg-eng/portfolio-api/internal/application/newsletter"
	"github.com/gg-eng/portfolio-api/internal/domain"
	"github.com/gg-eng/portfolio-api/internal/infrastructure/email"
	"github.com/gg-eng/portfolio-api/internal/pkg/validate"
)

// NewsletterHandler handles the subscription lifecycle endpoints. The whole
// feature sits behind a flag; disabled deployments answer 503 on every route.
type NewsletterHandler struct {
	svc     newsletter.Service
	mailer  email.Sender
	enabled bool
	baseURL string
}

func NewNewsletterHandler(svc newsletter.Service, mailer email.Sender, enabled bool, baseURL string) *NewsletterHandler {
	return &NewsletterHandler{svc: svc, mailer: mailer, enabled: enabled, baseURL: strings.TrimRight(baseURL, "/")}
}

type SubscribeRequest struct {
	Email    string `json:"email" validate:"required,email,max=254"`
	Language string `json:"language" validate:"omitempty,oneof=es en"`
}

type UnsubscribeRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type BroadcastRequest struct {
	Subject     string `json:"subject" validate:"required"`
	HTMLContent string `json:"html_content" validate:"required"`
}

func (h *NewsletterHandler) disabled(w http.ResponseWriter) bool {
	if h.enabled {
		return false
	}
	writeError(w, http.StatusServiceUnavailable, "newsletter feature is currently disabled")
	return true
}

func (h *NewsletterHandler) Subscribe(w http.ResponseWriter, r *http.Request) {
	if h.disabled(w) {
		return
	}
	var req SubscribeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	token, err := h.svc.Subscribe(r.Context(), req.Email)
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrAlreadySubscribed):
		writeError(w, http.StatusBadRequest, "email already subscribed")
		return
	case errors.Is(err, domain.ErrNotConfigured):
		writeError(w, http.StatusInternalServerError, "newsletter service not configured")
		return
	default:
		slog.Error("subscribe failed", "err", err)
		writeError(w, http.StatusInternalServerError, "failed to subscribe")
		return
	}

	// The subscription is committed regardless of what happens to the email:
	// the token stays valid and a repeat subscribe resends it.
	if h.mailer != nil && token != "" {
		lang := domain.Language(req.Language)
		if lang == "" {
			lang = domain.LangEnglish
		}
		subject, html := email.ConfirmationEmail(lang, newsletter.ConfirmURL(h.baseURL, token))
		if err := h.mailer.Send(r.Context(), req.Email, subject, html); err != nil {
			slog.Warn("confirmation email failed", "err", err)
		}
	}

	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "Confirmation email sent. Please check your inbox."})
}

// Confirm handles the link from the confirmation email. All failures redirect
// to the same generic error page so the response never reveals whether an
// email address is subscribed.
func (h *NewsletterHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	if h.disabled(w) {
		return
	}
	token := r.URL.Query().Get("token")
	if token == "" {
		http.Redirect(w, r, h.baseURL+"/?newsletter=error", http.StatusFound)
		return
	}
	if _, err := h.svc.Confirm(r.Context(), token); err != nil {
		http.Redirect(w, r, h.baseURL+"/?newsletter=error", http.StatusFound)
		return
	}
	http.Redirect(w, r, h.baseURL+"/?newsletter=confirmed", http.StatusFound)
}

func (h *NewsletterHandler) Unsubscribe(w http.ResponseWriter, r *http.Request) {
	if h.disabled(w) {
		return
	}
	var req UnsubscribeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.svc.Unsubscribe(r.Context(), req.Email); err != nil {
		slog.Error("unsubscribe failed", "err", err)
		writeError(w, http.StatusInternalServerError, "failed to unsubscribe")
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "unsubscribed"})
}

// Broadcast sends subject + html to every confirmed subscriber, one email per
// recipient. Partial failure is reported in the counts, not as an error.
func (h *NewsletterHandler) Broadcast(w http.ResponseWriter, r *http.Request) {
	if h.disabled(w) {
		return
	}
	var req BroadcastRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if h.mailer == nil {
		writeError(w, http.StatusInternalServerError, "email service not configured")
		return
	}

	subscribers, err := h.svc.ConfirmedSubscribers(r.Context())
	if err != nil {
		slog.Error("listing confirmed subscribers failed", "err", err)
		writeError(w, http.StatusInternalServerError, "failed to list subscribers")
		return
	}
	if len(subscribers) == 0 {
		writeError(w, http.StatusBadRequest, "no confirmed subscribers found")
		return
	}

	sent, failed := 0, 0
	for _, to := range subscribers {
		if err := h.mailer.Send(r.Context(), to, req.Subject, req.HTMLContent); err != nil {
			slog.Warn("newsletter send failed", "to", to, "err", err)
			failed++
			continue
		}
		sent++
	}
	writeJSON(w, http.StatusOK, BroadcastEnvelope{Sent: sent, Failed: failed, Total: len(subscribers)})
}
