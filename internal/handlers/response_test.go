package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"royalcert/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func runWriteError(t *testing.T, err error) (int, map[string]any) {
	t.Helper()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/x", nil)

	writeError(c, err)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w.Code, body
}

func TestWriteErrorStatusMapping(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{service.ErrUnauthorized, http.StatusUnauthorized},
		{service.ErrInvalidCredentials, http.StatusUnauthorized},
		{service.ErrForbidden, http.StatusForbidden},
		{service.ErrInspectionNotFound, http.StatusNotFound},
		{fmt.Errorf("wrapped: %w", service.ErrCustomerNotFound), http.StatusNotFound},
		{service.ErrTransitionNotAllowed, http.StatusBadRequest},
		{service.ErrDuplicateOpenInspection, http.StatusBadRequest},
	}
	for _, tc := range cases {
		t.Run(tc.err.Error(), func(t *testing.T) {
			code, body := runWriteError(t, tc.err)
			assert.Equal(t, tc.code, code)
			assert.NotEmpty(t, body["detail"])
			assert.NotContains(t, body, "details")
		})
	}
}

func TestWriteErrorValidationDetails(t *testing.T) {
	code, body := runWriteError(t, &service.ValidationError{
		Message: "Zorunlu kontrol maddeleri doldurulmadı",
		Details: map[string]any{"missing_items": []int{2, 5}},
	})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Zorunlu kontrol maddeleri doldurulmadı", body["detail"])
	assert.Equal(t, []any{2.0, 5.0}, body["details"].(map[string]any)["missing_items"])
}

func TestWriteErrorUnknownIsInternal(t *testing.T) {
	code, body := runWriteError(t, errors.New("connection reset"))
	assert.Equal(t, http.StatusInternalServerError, code)
	assert.Equal(t, "Sunucu hatası", body["detail"])
}

func TestBindJSONRejectsGarbage(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/x", strings.NewReader("not json"))
	c.Request.Header.Set("Content-Type", "application/json")

	var dst loginRequest
	assert.False(t, bindJSON(c, &dst))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), msgBadRequest)
}

func TestHealthHandler(t *testing.T) {
	r := gin.New()
	r.GET("/health", Health)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"healthy"`)
}
