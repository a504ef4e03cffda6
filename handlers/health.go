package handlers

import (
	"net/http"

	"file_bridge_app_go/db"

	"github.com/labstack/echo/v4"
)

// HealthHandler reports whether the database answers and how many stats
// sessions are live.
func HealthHandler(c echo.Context) error {
	status := map[string]interface{}{
		"status":         "ok",
		"stats_sessions": statsHub(c).Len(),
		"variants":       len(contentStore(c).Catalog().Variants),
	}

	if db.DB == nil {
		status["status"] = "degraded"
		status["database"] = "not initialized"
		return c.JSON(http.StatusServiceUnavailable, status)
	}
	sqlDB, err := db.DB.DB()
	if err == nil {
		err = sqlDB.PingContext(c.Request().Context())
	}
	if err != nil {
		status["status"] = "degraded"
		status["database"] = err.Error()
		return c.JSON(http.StatusServiceUnavailable, status)
	}
	status["database"] = "ok"
	return c.JSON(http.StatusOK, status)
}
