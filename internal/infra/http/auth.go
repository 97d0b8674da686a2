package http

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// requireAdmin guards the operations that write to repositories. With no
// admin key configured the service runs open, matching an in-process CI
// embedding where the host already authenticated the caller.
func (s *Server) requireAdmin(c *gin.Context) bool {
	if s.adminAPIKey == "" {
		return true
	}
	key := strings.TrimSpace(c.GetHeader("X-Admin-Key"))
	if key != "" && subtle.ConstantTimeCompare([]byte(key), []byte(s.adminAPIKey)) == 1 {
		return true
	}
	writeErrorCode(c, http.StatusUnauthorized, "UNAUTHORIZED", "admin key required")
	return false
}
