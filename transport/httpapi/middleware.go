package httpapi

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/goliatone/go-contacts/pkg/authctx"
	"github.com/goliatone/go-contacts/pkg/types"
)

const msgAuthRequired = "Authentication required"

// requireAuth resolves the bearer token into an actor and stores it on the
// request context.
func (h *handlers) requireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, found := strings.CutPrefix(header, "Bearer ")
		token = strings.TrimSpace(token)
		if !found || token == "" {
			h.fail(c, types.Unauthorized(msgAuthRequired))
			return
		}
		actor, err := h.auth.Authenticate(c.Request.Context(), token)
		if err != nil {
			h.fail(c, err)
			return
		}
		c.Request = c.Request.WithContext(authctx.WithActor(c.Request.Context(), actor))
		c.Next()
	}
}

func (h *handlers) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		h.logger.Debug("go-contacts: http request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency", time.Since(start).String(),
			"client_ip", c.ClientIP(),
		)
	}
}

func actorFrom(c *gin.Context) (types.ActorRef, error) {
	return authctx.ResolveActor(c.Request.Context())
}
