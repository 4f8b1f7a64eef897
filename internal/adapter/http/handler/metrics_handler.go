package handler

import (
	"net/http"

	"payments-pipeline/internal/monitor"

	"github.com/gin-gonic/gin"
)

// Metrics returns the process-local metrics snapshot as JSON.
func Metrics(m *monitor.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, m.Snapshot())
	}
}
