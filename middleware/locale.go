package middleware

import (
	"net/http"
	"time"

	"file_bridge_app_go/config"
	"file_bridge_app_go/services/i18n"

	"github.com/labstack/echo/v4"
)

const langCookie = "lang"

// Locale middleware handles language detection and persistence.
// Priority:
// 1. Query param "lang" (sets cookie)
// 2. Cookie "lang"
// 3. Accept-Language header, matched against the loaded locales
// 4. Default ("en")
func Locale(cfg *config.Config) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			lang := ""
			if q := c.QueryParam("lang"); q != "" && i18n.IsSupported(q) {
				lang = q
				setLanguageCookie(c, cfg, lang)
			} else if cookie, err := c.Cookie(langCookie); err == nil && i18n.IsSupported(cookie.Value) {
				lang = cookie.Value
			}

			if lang == "" {
				lang = i18n.Match(c.Request().Header.Get("Accept-Language"))
			}

			// Echo context for handlers, request context for templates
			c.Set("locale", lang)
			c.SetRequest(c.Request().WithContext(i18n.WithLocale(c.Request().Context(), lang)))

			return next(c)
		}
	}
}

func setLanguageCookie(c echo.Context, cfg *config.Config, lang string) {
	c.SetCookie(&http.Cookie{
		Name:     langCookie,
		Value:    lang,
		Expires:  time.Now().Add(24 * 365 * time.Hour),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   cfg != nil && cfg.IsProduction(),
	})
}

// GetLocale returns the current locale from context
func GetLocale(c echo.Context) string {
	if lang, ok := c.Get("locale").(string); ok {
		return lang
	}
	return "en"
}
