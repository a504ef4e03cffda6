package handlers

import (
	"net/http"

	"file_bridge_app_go/config"
	"file_bridge_app_go/middleware"
	"file_bridge_app_go/services"
	"file_bridge_app_go/services/content"
	"file_bridge_app_go/templates/partials"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
)

func isHTMX(c echo.Context) bool {
	return c.Request().Header.Get("HX-Request") == "true"
}

// render writes component with status code.
func render(c echo.Context, code int, component templ.Component) error {
	c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	c.Response().WriteHeader(code)
	return component.Render(c.Request().Context(), c.Response().Writer)
}

// respondError answers HTMX requests with an error banner partial and
// everything else with an echo HTTP error.
func respondError(c echo.Context, code int, message string) error {
	if isHTMX(c) {
		return render(c, code, partials.FormError(message))
	}
	return echo.NewHTTPError(code, message)
}

func appConfig(c echo.Context) *config.Config {
	return c.Get(middleware.ConfigKey).(*config.Config)
}

func contentStore(c echo.Context) *content.Store {
	return c.Get(middleware.ContentKey).(*content.Store)
}

func statsHub(c echo.Context) *services.StatsHub {
	return c.Get(middleware.StatsHubKey).(*services.StatsHub)
}

// variantParam resolves the ?variant= query parameter. An empty value
// selects the default variant.
func variantParam(c echo.Context) (*content.Content, bool) {
	return contentStore(c).Variant(c.QueryParam("variant"))
}

func unknownVariant(c echo.Context) error {
	return respondError(c, http.StatusNotFound, "Unknown page variant")
}

// variantPath is the public URL of a variant's landing page.
func variantPath(store *content.Store, key string) string {
	if key == store.Catalog().DefaultVariant {
		return "/"
	}
	return "/v/" + key
}
