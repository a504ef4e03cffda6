package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestGenerateNonce(t *testing.T) {
	nonce1, err := GenerateNonce()
	assert.NoError(t, err)
	assert.NotEmpty(t, nonce1)

	nonce2, err := GenerateNonce()
	assert.NoError(t, err)
	assert.NotEqual(t, nonce1, nonce2)
}

func TestCSPNonce(t *testing.T) {
	e := echo.New()

	t.Run("SetsContextAndHeader", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		handler := CSPNonce()(func(c echo.Context) error {
			return c.NoContent(http.StatusOK)
		})
		assert.NoError(t, handler(c))

		nonce := c.Get(string(NonceKey)).(string)
		assert.NotEmpty(t, nonce)
		assert.Equal(t, nonce, GetNonce(c.Request().Context()))

		csp := rec.Header().Get("Content-Security-Policy")
		assert.Contains(t, csp, "'nonce-"+nonce+"'")
		assert.Contains(t, csp, "img-src 'self' data:;")
		assert.NotContains(t, csp, "unsafe-eval")
	})

	t.Run("ExtraImageSources", func(t *testing.T) {
		rec := httptest.NewRecorder()
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

		handler := CSPNonce("https://cdn.example.com")(func(c echo.Context) error {
			return c.NoContent(http.StatusOK)
		})
		assert.NoError(t, handler(c))
		assert.Contains(t, rec.Header().Get("Content-Security-Policy"), "img-src 'self' data: https://cdn.example.com;")
	})
}

func TestGetNonceMissing(t *testing.T) {
	assert.Equal(t, "", GetNonce(context.Background()))
}
