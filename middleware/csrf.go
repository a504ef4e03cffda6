package middleware

import (
	"context"
	"net/http"

	"file_bridge_app_go/config"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
)

const csrfContextKey contextKey = "csrf_token"

// CSRF protects state-changing requests. Forms post the token as _csrf;
// scripts send it in X-CSRF-Token.
func CSRF(cfg *config.Config) echo.MiddlewareFunc {
	csrf := echomiddleware.CSRFWithConfig(echomiddleware.CSRFConfig{
		TokenLookup:    "header:X-CSRF-Token,form:_csrf",
		CookieName:     "_csrf",
		CookiePath:     "/",
		CookieHTTPOnly: true,
		CookieSecure:   cfg.IsProduction(),
		CookieSameSite: http.SameSiteLaxMode,
	})
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		// Copy the token into the request context for templates
		return csrf(func(c echo.Context) error {
			if token := GetCSRFToken(c); token != "" {
				ctx := context.WithValue(c.Request().Context(), csrfContextKey, token)
				c.SetRequest(c.Request().WithContext(ctx))
			}
			return next(c)
		})
	}
}

// GetCSRFToken retrieves the CSRF token from the Echo context
// This token should be included in forms and AJAX requests
func GetCSRFToken(c echo.Context) string {
	if token, ok := c.Get("csrf").(string); ok {
		return token
	}
	return ""
}

// CSRFTokenFromContext returns the token stored by CSRF in a request context.
func CSRFTokenFromContext(ctx context.Context) string {
	if token, ok := ctx.Value(csrfContextKey).(string); ok {
		return token
	}
	return ""
}
