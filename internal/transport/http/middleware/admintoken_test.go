package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func serveWithToken(t *testing.T, configured string, mutate func(*http.Request)) int {
	t.Helper()
	h := RequireToken(configured)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	if mutate != nil {
		mutate(req)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec.Code
}

func TestRequireToken_BearerHeader(t *testing.T) {
	code := serveWithToken(t, "s3cret", func(r *http.Request) {
		r.Header.Set("Authorization", "Bearer s3cret")
	})
	assert.Equal(t, http.StatusOK, code)
}

func TestRequireToken_QueryParam(t *testing.T) {
	code := serveWithToken(t, "s3cret", func(r *http.Request) {
		r.URL.RawQuery = "token=s3cret"
	})
	assert.Equal(t, http.StatusOK, code)
}

func TestRequireToken_WrongToken_Unauthorized(t *testing.T) {
	code := serveWithToken(t, "s3cret", func(r *http.Request) {
		r.Header.Set("Authorization", "Bearer nope")
	})
	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestRequireToken_MissingToken_Unauthorized(t *testing.T) {
	assert.Equal(t, http.StatusUnauthorized, serveWithToken(t, "s3cret", nil))
}

func TestRequireToken_EmptyConfigured_DisablesGuard(t *testing.T) {
	assert.Equal(t, http.StatusOK, serveWithToken(t, "", nil))
}
