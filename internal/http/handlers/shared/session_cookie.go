package shared

import (
	"net/http"
	"strings"

	"github.com/ghostform/ghostform/internal/config"
	"github.com/ghostform/ghostform/internal/constants"

	"github.com/gin-gonic/gin"
)

// SessionCookieName resolves the configured cookie name.
func SessionCookieName(cfg config.SessionConfig) string {
	name := strings.TrimSpace(cfg.CookieName)
	if name == "" {
		name = constants.SessionCookieName
	}
	return name
}

// SetSessionCookie writes the login cookie: HttpOnly, SameSite=Strict,
// scoped to the whole site.
func SetSessionCookie(c *gin.Context, cfg config.SessionConfig, token string, maxAgeSeconds int) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(SessionCookieName(cfg), token, maxAgeSeconds, "/", cfg.CookieDomain, cfg.CookieSecure, true)
}

// ClearSessionCookie expires the login cookie.
func ClearSessionCookie(c *gin.Context, cfg config.SessionConfig) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(SessionCookieName(cfg), "", -1, "/", cfg.CookieDomain, cfg.CookieSecure, true)
}
