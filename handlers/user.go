package handlers

import (
	"net/http"

	"albumapi/auth"
	"albumapi/authz"
	"albumapi/config"
	"albumapi/models"

	"github.com/gin-gonic/gin"
)

// GoogleLogin sends the browser to the identity provider.
func GoogleLogin(provider *auth.Provider) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Redirect(http.StatusFound, provider.AuthURL())
	}
}

// GoogleCallback is the Session Issuer: exchange the code for a verified
// identity, provision the local user on first login, sign the session
// credential and hand it to the browser.
func GoogleCallback(cfg *config.Config, provider *auth.Provider) gin.HandlerFunc {
	return func(c *gin.Context) {
		code := c.Query("code")
		if code == "" {
			c.JSON(http.StatusBadRequest, Response{"authorization code not provided"})
			return
		}
		identity, err := provider.ExchangeCode(c.Request.Context(), code)
		if err != nil {
			fail(c, err)
			return
		}
		user, err := models.UserFirstOrCreate(identity.ExternalID, identity.Email, identity.Name, identity.AvatarURL)
		if err != nil {
			fail(c, err)
			return
		}
		token, err := auth.IssueToken([]byte(cfg.JWTSecret), &user)
		if err != nil {
			fail(c, err)
			return
		}
		auth.SetSessionCookie(c, token, cfg.DebugMode)
		c.Redirect(http.StatusFound, cfg.FrontendURL+"/home")
	}
}

func UserProfile(c *gin.Context, caller *authz.Caller) {
	user, err := models.UserByID(caller.ID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}
