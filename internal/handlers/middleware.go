package handlers

import (
	"net/http"
	"strings"
	"time"

	"habit_tracker/internal/metrics"
	"habit_tracker/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	principalCtx    = "principal"
	requestIDHeader = "X-Request-ID"
)

// userIdentity authenticates the bearer token before any habit route runs.
// Missing or malformed headers are 401; a token that fails verification is 403.
func (h *Handler) userIdentity(c *gin.Context) {
	header := c.GetHeader("Authorization")
	if header == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": "authentication required",
		})
		return
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" || strings.TrimSpace(parts[1]) == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": "invalid Authorization header format",
		})
		return
	}

	p, err := h.services.ParseToken(strings.TrimSpace(parts[1]))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"error": "invalid token",
		})
		return
	}

	// store in Gin context
	c.Set(principalCtx, p)
	c.Next()
}

// currentPrincipal reads what userIdentity stored.
func currentPrincipal(c *gin.Context) (models.Principal, bool) {
	v, ok := c.Get(principalCtx)
	if !ok {
		return models.Principal{}, false
	}
	p, ok := v.(models.Principal)
	return p, ok
}

// accessLog tags the request with an id, then records latency and status.
func (h *Handler) accessLog(c *gin.Context) {
	start := time.Now()

	reqID := c.GetHeader(requestIDHeader)
	if reqID == "" {
		reqID = uuid.NewString()
	}
	c.Header(requestIDHeader, reqID)

	c.Next()

	path := c.FullPath()
	if path == "" {
		path = "unmatched"
	}
	status := c.Writer.Status()
	latency := time.Since(start)

	metrics.RecordHTTPRequestDuration(c.Request.Method, path, status, latency)

	if h.log != nil {
		h.log.Infow("http_request",
			"request_id", reqID,
			"method", c.Request.Method,
			"path", path,
			"status", status,
			"latency_ms", latency.Milliseconds(),
		)
	}
}
