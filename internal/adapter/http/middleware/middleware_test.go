package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEngine() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func TestTraceID_EchoesCallerHeader(t *testing.T) {
	r := newEngine()
	r.Use(TraceID())
	r.GET("/ping", func(c *gin.Context) {
		assert.Equal(t, "trace-abc", c.GetString(CtxTraceID))
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(HeaderTraceID, "trace-abc")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "trace-abc", w.Header().Get(HeaderTraceID))
}

func TestTraceID_MintsWhenAbsent(t *testing.T) {
	r := newEngine()
	r.Use(TraceID())
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	minted := w.Header().Get(HeaderTraceID)
	require.NotEmpty(t, minted)
	_, err := uuid.Parse(minted)
	assert.NoError(t, err)
}

func TestTraceID_TreatsBlankHeaderAsAbsent(t *testing.T) {
	r := newEngine()
	r.Use(TraceID())
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(HeaderTraceID, "   ")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.NotEqual(t, "   ", w.Header().Get(HeaderTraceID))
	assert.NotEmpty(t, strings.TrimSpace(w.Header().Get(HeaderTraceID)))
}

func TestRecovery_EmitsErrorEnvelope(t *testing.T) {
	r := newEngine()
	r.Use(Recovery(zerolog.Nop()))
	r.GET("/boom", func(_ *gin.Context) { panic("kaboom") })

	req := httptest.NewRequest(http.MethodGet, "/boom", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	var envelope struct {
		Error struct {
			Category string `json:"category"`
			Message  string `json:"message"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.Equal(t, "unexpected", envelope.Error.Category)
	assert.NotContains(t, w.Body.String(), "kaboom")
}

func TestRequestLogger_RecordsStatusAndTrace(t *testing.T) {
	var buf bytes.Buffer
	log := zerolog.New(&buf)

	r := newEngine()
	r.Use(TraceID())
	r.Use(RequestLogger(log))
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusTeapot) })

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(HeaderTraceID, "trace-log")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "/ping", entry["path"])
	assert.Equal(t, float64(http.StatusTeapot), entry["status"])
	assert.Equal(t, "trace-log", entry["trace_id"])
	assert.Equal(t, "warn", entry["level"])
}

func TestMaxBodySize_RejectsOversizedBody(t *testing.T) {
	r := newEngine()
	r.Use(MaxBodySize(16))
	r.POST("/echo", func(c *gin.Context) {
		var payload map[string]any
		if err := c.ShouldBindJSON(&payload); err != nil {
			c.AbortWithStatus(http.StatusRequestEntityTooLarge)
			return
		}
		c.Status(http.StatusOK)
	})

	body := bytes.NewReader([]byte(`{"padding":"` + strings.Repeat("x", 64) + `"}`))
	req := httptest.NewRequest(http.MethodPost, "/echo", body)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}
