package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ridecompare/internal/http/middleware"
)

// Me handles GET /api/me behind middleware.Auth.
func Me(c *gin.Context) {
	id := middleware.Caller(c)
	if id == nil {
		writeError(c, http.StatusUnauthorized, "unauthenticated")
		return
	}
	writeJSON(c, http.StatusOK, id)
}
