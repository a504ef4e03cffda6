package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"file_bridge_app_go/config"
	"file_bridge_app_go/services/i18n"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func runLocale(t *testing.T, cfg *config.Config, req *http.Request) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := Locale(cfg)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	assert.NoError(t, handler(c))
	return c, rec
}

func findCookie(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == name {
			return cookie
		}
	}
	return nil
}

func TestLocale(t *testing.T) {
	cfg := &config.Config{Environment: "development"}

	t.Run("PriorityQueryParam", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/?lang=es", nil)
		req.AddCookie(&http.Cookie{Name: "lang", Value: "en"})
		c, rec := runLocale(t, cfg, req)

		assert.Equal(t, "es", GetLocale(c))
		assert.Equal(t, "es", i18n.GetLocale(c.Request().Context()))
		cookie := findCookie(rec, "lang")
		if assert.NotNil(t, cookie) {
			assert.Equal(t, "es", cookie.Value)
			assert.False(t, cookie.Secure)
		}
	})

	t.Run("UnsupportedQueryParamIgnored", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/?lang=fr", nil)
		req.Header.Set("Accept-Language", "es")
		c, rec := runLocale(t, cfg, req)

		assert.Equal(t, "es", GetLocale(c))
		assert.Nil(t, findCookie(rec, "lang"))
	})

	t.Run("PriorityCookie", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: "lang", Value: "es"})
		req.Header.Set("Accept-Language", "en-US")
		c, _ := runLocale(t, cfg, req)

		assert.Equal(t, "es", GetLocale(c))
	})

	t.Run("PriorityHeader", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Accept-Language", "es-ES,es;q=0.9")
		c, _ := runLocale(t, cfg, req)

		assert.Equal(t, "es", GetLocale(c))
	})

	t.Run("Default", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		c, _ := runLocale(t, cfg, req)

		assert.Equal(t, "en", GetLocale(c))
		assert.Equal(t, "en", i18n.GetLocale(c.Request().Context()))
	})

	t.Run("SecureCookieInProduction", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/?lang=en", nil)
		_, rec := runLocale(t, &config.Config{Environment: "production"}, req)

		cookie := findCookie(rec, "lang")
		if assert.NotNil(t, cookie) {
			assert.True(t, cookie.Secure)
		}
	})
}

func TestGetLocaleWithoutMiddleware(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	assert.Equal(t, "en", GetLocale(c))
}
