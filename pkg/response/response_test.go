package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"payments-pipeline/pkg/apperror"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func record(handler gin.HandlerFunc) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	handler(c)
	return w
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) ErrorBody {
	t.Helper()
	var envelope ErrorEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	return envelope.Error
}

func TestError_AppErrorCarriesCategoryAndStatus(t *testing.T) {
	w := record(func(c *gin.Context) {
		Error(c, apperror.RateLimited("merchant"))
	})

	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	body := decodeEnvelope(t, w)
	assert.Equal(t, "rate_limited", body.Category)
	assert.Equal(t, "merchant", body.Dimension)
}

func TestError_WrappedAppErrorIsUnwrapped(t *testing.T) {
	wrapped := fmt.Errorf("admission: %w", apperror.Validation("bad amount"))
	w := record(func(c *gin.Context) {
		Error(c, wrapped)
	})

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, "validation_error", decodeEnvelope(t, w).Category)
}

func TestError_UnknownErrorBecomesGeneric500(t *testing.T) {
	w := record(func(c *gin.Context) {
		Error(c, errors.New("pq: relation payments does not exist"))
	})

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	body := decodeEnvelope(t, w)
	assert.Equal(t, "unexpected", body.Category)
	assert.Equal(t, "Internal server error", body.Message)
	assert.NotContains(t, w.Body.String(), "relation payments")
}

func TestNotFound_UsesValidationCategory(t *testing.T) {
	w := record(func(c *gin.Context) {
		NotFound(c, "payment not found")
	})

	assert.Equal(t, http.StatusNotFound, w.Code)
	body := decodeEnvelope(t, w)
	assert.Equal(t, "validation_error", body.Category)
	assert.Equal(t, "payment not found", body.Message)
}

func TestError_OmitsEmptyDimension(t *testing.T) {
	w := record(func(c *gin.Context) {
		Error(c, apperror.Validation("bad input"))
	})
	assert.NotContains(t, w.Body.String(), "dimension")
}
