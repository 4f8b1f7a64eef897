package middleware

import (
	"net/http"
	"strings"
	"time"

	"payments-pipeline/pkg/apperror"
	"payments-pipeline/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	// HeaderIdempotencyKey carries the client's admission idempotency key.
	HeaderIdempotencyKey = "Idempotency-Key"
	// HeaderTraceID carries the caller's trace id; one is minted if absent.
	HeaderTraceID = "X-Trace-Id"

	// Caller identity headers on the admission endpoint.
	HeaderMerchantID = "X-Merchant-Id"
	HeaderCustomerID = "X-Customer-Id"
	HeaderAccountID  = "X-Account-Id"

	// CtxTraceID is the gin context key for the effective trace id.
	CtxTraceID = "trace_id"
)

// TraceID resolves the request's trace id from the header or mints one, and
// echoes it on the response.
func TraceID() gin.HandlerFunc {
	return func(c *gin.Context) {
		traceID := strings.TrimSpace(c.GetHeader(HeaderTraceID))
		if traceID == "" {
			traceID = uuid.NewString()
		}
		c.Set(CtxTraceID, traceID)
		c.Header(HeaderTraceID, traceID)
		c.Next()
	}
}

// RequestLogger creates a middleware that logs every HTTP request.
func RequestLogger(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)
		status := c.Writer.Status()

		event := log.Info()
		if status >= http.StatusInternalServerError {
			event = log.Error()
		} else if status >= http.StatusBadRequest {
			event = log.Warn()
		}

		event.
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", status).
			Dur("latency", latency).
			Str("client_ip", c.ClientIP()).
			Str("trace_id", c.GetString(CtxTraceID)).
			Msg("http request")
	}
}

// Recovery creates a panic recovery middleware emitting the standard error
// envelope.
func Recovery(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.Error().Interface("panic", r).Str("path", c.Request.URL.Path).Msg("panic recovered")
				if !c.Writer.Written() {
					response.Error(c, apperror.Internal(nil))
				}
				c.Abort()
			}
		}()
		c.Next()
	}
}

// MaxBodySize limits the request body to n bytes.
func MaxBodySize(n int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, n)
		c.Next()
	}
}
