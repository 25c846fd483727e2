package v1

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/adanyl0v/go-todo-api/internal/services"
)

const (
	userIDCtxKey   = "user_id"
	emailCtxKey    = "email"
	usernameCtxKey = "username"
)

func (h *handlerImpl) HandleAuthMiddleware(c *gin.Context) {
	token := c.GetHeader(h.authHeader)
	if token == "" {
		h.logger.Error().
			Str("header", h.authHeader).
			Msg("auth token required")
		abort(c, newUnauthorizedError(msgNoToken))
		return
	}

	identity, err := h.tokens.Verify(token)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to verify token")
		abort(c, newUnauthorizedError(msgInvalidToken))
		return
	}

	c.Set(userIDCtxKey, identity.UserID)
	c.Set(emailCtxKey, identity.Email)
	c.Set(usernameCtxKey, identity.Username)
	c.Next()
}

func identityFromContext(c *gin.Context) (services.Identity, bool) {
	userID := c.GetString(userIDCtxKey)
	if userID == "" {
		return services.Identity{}, false
	}
	return services.Identity{
		UserID:   userID,
		Email:    c.GetString(emailCtxKey),
		Username: c.GetString(usernameCtxKey),
	}, true
}

// RequestLogger logs every request once it has been handled.
func RequestLogger(logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		c.Next()

		status := c.Writer.Status()
		event := logger.Info()
		switch {
		case status >= 500:
			event = logger.Error()
		case status >= 400:
			event = logger.Warn()
		}
		event.
			Str("method", c.Request.Method).
			Str("path", path).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("client_ip", c.ClientIP()).
			Msg("handled request")
	}
}

// Recovery turns a panic into the generic internal error response.
func Recovery(logger zerolog.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logger.Error().
			Interface("panic", recovered).
			Str("path", c.Request.URL.Path).
			Msg("recovered from panic")
		abort(c, newInternalServerError())
	})
}
