package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// SessionCookieName is the cookie carrying the session credential.
const SessionCookieName = "access_token"

// TokenFromRequest extracts the session credential from either transport:
// an Authorization bearer header (programmatic callers) or the session
// cookie (browsers). Returns "" when neither is present.
func TokenFromRequest(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return parts[1]
		}
	}
	token, err := c.Cookie(SessionCookieName)
	if err != nil {
		return ""
	}
	return token
}

// SetSessionCookie installs the credential for browser flows. SameSite=None
// so the frontend can be served from another origin; that requires Secure,
// which is relaxed only in debug mode for plain-HTTP local setups.
func SetSessionCookie(c *gin.Context, token string, debugMode bool) {
	c.SetSameSite(http.SameSiteNoneMode)
	c.SetCookie(SessionCookieName, token, int(TokenValidity.Seconds()), "/", "", !debugMode, true)
}
