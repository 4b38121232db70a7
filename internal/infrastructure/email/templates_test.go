package email

import (
	"testing"
	"time"

	"github.com/gg-eng/portfolio-api/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestConfirmationEmail_Spanish(t *testing.T) {
	subject, html := ConfirmationEmail(domain.LangSpanish, "https://gg-eng.me/v1/newsletter/confirm?token=abc")
	assert.Equal(t, "Confirma tu suscripción al newsletter", subject)
	assert.Contains(t, html, "https://gg-eng.me/v1/newsletter/confirm?token=abc")
	assert.Contains(t, html, "Confirmar suscripción")
	assert.Contains(t, html, "24 horas")
}

func TestConfirmationEmail_English(t *testing.T) {
	subject, html := ConfirmationEmail(domain.LangEnglish, "https://x/confirm?token=t")
	assert.Equal(t, "Confirm your newsletter subscription", subject)
	assert.Contains(t, html, "Confirm subscription")
	assert.Contains(t, html, "24 hours")
}

func TestCVEmail_IncludesCompanyWhenPresent(t *testing.T) {
	req := domain.CVRequest{Name: "Jane", Email: "jane@corp.com", Company: "Corp", Language: "en"}
	_, html := CVEmail(req, "me@example.com")
	assert.Contains(t, html, "Hello Jane,")
	assert.Contains(t, html, "<strong>Corp</strong>")
	assert.Contains(t, html, "mailto:me@example.com")
}

func TestCVNotificationEmail(t *testing.T) {
	req := domain.CVRequest{Name: "Jane", Email: "jane@corp.com", Company: "Corp", Language: "es"}
	subject, html := CVNotificationEmail(req, time.Date(2026, 1, 2, 15, 0, 0, 0, time.UTC))
	assert.Equal(t, "New CV Request - gg-eng.me", subject)
	assert.Contains(t, html, "jane@corp.com")
	assert.Contains(t, html, "Spanish")
}
