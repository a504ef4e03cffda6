package handlers

import (
	"file_bridge_app_go/config"
	"file_bridge_app_go/middleware"
	"file_bridge_app_go/services"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
)

// RegisterRoutes mounts every route. The admin group is only mounted when
// admin credentials are configured; monitor tracks its failed logins.
func RegisterRoutes(e *echo.Echo, cfg *config.Config, monitor *services.SecurityMonitor) {
	e.Static("/static", "static")

	e.GET("/", LandingHandler)
	e.GET("/v/:variant", VariantLandingHandler)
	e.GET("/sitemap.xml", GetSitemapHandler)
	e.GET("/robots.txt", RobotsHandler)
	e.GET("/healthz", HealthHandler)

	p := e.Group("/partials")
	p.GET("/menu", MenuPartialHandler)
	p.GET("/services/:tab", ServiceTabPartialHandler)
	p.GET("/testimonials/:index", TestimonialPartialHandler)

	e.GET("/stats/stream", StatsStreamHandler, middleware.StatsStreamRateLimiter.Middleware())
	e.POST("/stats/stream/:id/viewport", ViewportHandler,
		echomiddleware.BodyLimit(viewportBodyLimit), middleware.ViewportRateLimiter.Middleware())

	e.POST("/consultations", CreateConsultationHandler, middleware.ConsultationRateLimiter.Middleware())

	if !cfg.AdminEnabled() {
		return
	}
	admin := e.Group("/admin", middleware.AdminRateLimiter.Middleware(), middleware.AdminAuth(cfg, monitor), middleware.AuditContext())
	admin.GET("/consultations", AdminConsultationsHandler)
	admin.GET("/consultations/export.xlsx", AdminExportHandler)
	admin.POST("/consultations/:id/status", AdminUpdateStatusHandler)
}
