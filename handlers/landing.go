package handlers

import (
	"net/http"
	"time"

	"file_bridge_app_go/middleware"
	"file_bridge_app_go/services/content"
	"file_bridge_app_go/templates/pages"

	"github.com/labstack/echo/v4"
)

// LandingHandler renders the default variant at /
func LandingHandler(c echo.Context) error {
	return renderLanding(c, contentStore(c).Default())
}

// VariantLandingHandler renders a named variant at /v/:variant
func VariantLandingHandler(c echo.Context) error {
	store := contentStore(c)
	v, ok := store.Catalog().Variants[c.Param("variant")]
	if !ok || v == nil {
		return echo.NewHTTPError(http.StatusNotFound, "Page not found")
	}
	return renderLanding(c, v)
}

func renderLanding(c echo.Context, v *content.Content) error {
	cfg := appConfig(c)
	page, err := pages.Landing(pages.LandingPage{
		Content:          v,
		SEO:              pageSEO(cfg.AppURL, variantPath(contentStore(c), v.Key), middleware.GetLocale(c), v),
		TurnstileSiteKey: cfg.TurnstileSiteKey,
		Year:             time.Now().Year(),
	})
	if err != nil {
		c.Logger().Errorf("Failed to build landing page for %q: %v", v.Key, err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to render page")
	}
	return render(c, http.StatusOK, page)
}
