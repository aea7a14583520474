package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/yungbote/contacts-backend/internal/logger"
)

const RequestIDHeader = "X-Request-ID"

// RequestID tags every request with an id, echoing a caller-supplied one when
// present so upstream proxies can correlate.
func RequestID(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set("request_id", requestID)
		c.Writer.Header().Set(RequestIDHeader, requestID)
		if span := trace.SpanFromContext(c.Request.Context()); span.IsRecording() {
			span.SetAttributes(attribute.String("request.id", requestID))
		}
		c.Next()

		status := c.Writer.Status()
		if status >= 500 {
			log.Error("Request failed", "request_id", requestID, "method", c.Request.Method, "path", c.FullPath(), "status", status)
		} else {
			log.Debug("Request served", "request_id", requestID, "method", c.Request.Method, "path", c.FullPath(), "status", status)
		}
	}
}
