package middleware

import (
	"net/http"

	"file_bridge_app_go/config"
	"file_bridge_app_go/services"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
)

// AdminAuth guards the admin routes with HTTP basic auth checked against
// ADMIN_USER and the bcrypt ADMIN_PASSWORD_HASH. IPs with too many recent
// failures are refused before their credentials are checked.
func AdminAuth(cfg *config.Config, monitor *services.SecurityMonitor) echo.MiddlewareFunc {
	return echomiddleware.BasicAuthWithConfig(echomiddleware.BasicAuthConfig{
		Realm: "File Bridge Admin",
		Validator: func(user, password string, c echo.Context) (bool, error) {
			ip := c.RealIP()
			if monitor.Blocked(ip) {
				services.LogSecurityEvent("ADMIN_LOGIN_BLOCKED", user, "ip="+ip)
				return false, echo.NewHTTPError(http.StatusTooManyRequests, "Too many failed login attempts")
			}

			if !services.VerifyAdminCredentials(cfg.AdminUser, cfg.AdminPasswordHash, user, password) {
				services.LogSecurityEvent("ADMIN_LOGIN_FAILED", user, "ip="+ip)
				monitor.TrackFailedLogin(ip, user)
				return false, nil
			}

			monitor.ResetLogins(ip)
			c.Set("admin_user", user)
			return true, nil
		},
	})
}
