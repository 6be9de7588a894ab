package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/escrowline/backend/internal/apperr"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(t *testing.T, handler gin.HandlerFunc) (int, Response) {
	t.Helper()
	router := gin.New()
	router.GET("/probe", handler)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	router.ServeHTTP(w, req)

	var resp Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return w.Code, resp
}

func TestSuccess_Envelope(t *testing.T) {
	tests := []struct {
		name     string
		data     any
		expected int
	}{
		{name: "Nil", data: nil, expected: 0},
		{name: "Single", data: map[string]string{"id": "1"}, expected: 1},
		{name: "TypedSlice", data: []string{"a", "b", "c"}, expected: 3},
		{name: "EmptySlice", data: []int{}, expected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, resp := serve(t, func(c *gin.Context) { Success(c, "ok", tt.data) })
			assert.Equal(t, http.StatusOK, code)
			assert.Equal(t, StatusSuccess, resp.Status)
			assert.Equal(t, "ok", resp.Message)
			assert.NotNil(t, resp.Data)
			assert.Len(t, resp.Data, tt.expected)
		})
	}
}

func TestFail_StatusMapping(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantCode    int
		wantMessage string
	}{
		{name: "Validation", err: apperr.Validation("invalid stageType 9"), wantCode: http.StatusBadRequest, wantMessage: "invalid stageType 9"},
		{name: "NotFound", err: apperr.NotFound("CaseId not found"), wantCode: http.StatusBadRequest, wantMessage: "CaseId not found"},
		{name: "Conflict", err: apperr.Conflict("Stage already exists"), wantCode: http.StatusBadRequest, wantMessage: "Stage already exists"},
		{name: "Unauthorized", err: apperr.Unauthorized("token expired"), wantCode: http.StatusUnauthorized, wantMessage: "token expired"},
		{name: "Internal", err: apperr.Internal(errors.New("pq: connection refused"), "failed to create stage"), wantCode: http.StatusInternalServerError, wantMessage: "internal server error"},
		{name: "Unclassified", err: errors.New("boom"), wantCode: http.StatusInternalServerError, wantMessage: "internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, resp := serve(t, func(c *gin.Context) { Fail(c, tt.err) })
			assert.Equal(t, tt.wantCode, code)
			assert.Equal(t, StatusFailed, resp.Status)
			assert.Equal(t, tt.wantMessage, resp.Message)
			assert.Empty(t, resp.Data)
		})
	}
}

func TestBadRequest(t *testing.T) {
	code, resp := serve(t, func(c *gin.Context) { BadRequest(c, errors.New("caseId is required")) })
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, StatusFailed, resp.Status)
	assert.Contains(t, resp.Message, "caseId is required")
}
