package middleware

import (
	"file_bridge_app_go/config"
	"file_bridge_app_go/services"
	"file_bridge_app_go/services/content"

	"github.com/labstack/echo/v4"
)

// Echo context keys shared with the handlers
const (
	ConfigKey   = "config"
	ContentKey  = "content"
	StatsHubKey = "stats_hub"
)

// AppContext makes the configuration, the content store and the stats hub
// available to every handler.
func AppContext(cfg *config.Config, store *content.Store, hub *services.StatsHub) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set(ConfigKey, cfg)
			c.Set(ContentKey, store)
			c.Set(StatsHubKey, hub)
			return next(c)
		}
	}
}
