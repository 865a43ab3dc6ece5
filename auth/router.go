package auth

import (
	"net/http"

	"albumapi/authz"

	"github.com/gin-gonic/gin"
)

// HandlerFunc receives the verified caller identity alongside the context.
type HandlerFunc func(c *gin.Context, caller *authz.Caller)

// Router is a wrapper over gin that verifies the session credential on every
// registered route and resolves it to a caller before the handler runs.
type Router struct {
	Base   *gin.Engine
	Secret []byte
}

func (r *Router) baseExec(c *gin.Context, handler HandlerFunc) {
	token := TokenFromRequest(c)
	if token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "token not provided"})
		return
	}
	claims, err := VerifyToken(r.Secret, token)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
		return
	}
	handler(c, &authz.Caller{ID: claims.ID, Email: claims.Email, Role: claims.Role})
}

func (r *Router) GET(path string, handler HandlerFunc) {
	r.Base.GET(path, func(c *gin.Context) {
		r.baseExec(c, handler)
	})
}

func (r *Router) POST(path string, handler HandlerFunc) {
	r.Base.POST(path, func(c *gin.Context) {
		r.baseExec(c, handler)
	})
}

func (r *Router) PUT(path string, handler HandlerFunc) {
	r.Base.PUT(path, func(c *gin.Context) {
		r.baseExec(c, handler)
	})
}

func (r *Router) DELETE(path string, handler HandlerFunc) {
	r.Base.DELETE(path, func(c *gin.Context) {
		r.baseExec(c, handler)
	})
}
