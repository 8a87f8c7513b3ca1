// README: Bearer ID token authentication backed by infra.TokenVerifier.
package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"ridecompare/internal/infra"
	"ridecompare/internal/logger"
)

const identityKey = "identity"

// Auth rejects requests without a valid "Authorization: Bearer <token>" header.
func Auth(verifier infra.TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		raw, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(raw) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}
		id, err := verifier.Verify(c.Request.Context(), strings.TrimSpace(raw))
		if err != nil {
			logger.Warn("token verification failed", zap.String("request_id", RequestID(c)), zap.Error(err))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}
		c.Set(identityKey, id)
		c.Next()
	}
}

// Caller returns the identity stored by Auth, or nil.
func Caller(c *gin.Context) *infra.Identity {
	v, ok := c.Get(identityKey)
	if !ok {
		return nil
	}
	id, _ := v.(*infra.Identity)
	return id
}

// CallerUID returns "" for unauthenticated requests.
func CallerUID(c *gin.Context) string {
	if id := Caller(c); id != nil {
		return id.UID
	}
	return ""
}
