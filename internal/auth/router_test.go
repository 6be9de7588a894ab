package auth

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/escrowline/backend/internal/api"
)

func setupAuthRouter(t *testing.T) (*gin.Engine, *recordingMailer) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	svc, mailer := setupAuth(t)
	engine := gin.New()
	NewRouter(svc).Register(engine.Group("/v1"))
	return engine, mailer
}

func call(t *testing.T, engine *gin.Engine, method, path, token string, body any) (int, api.Response) {
	t.Helper()
	var raw []byte
	if body != nil {
		var err error
		raw, err = json.Marshal(body)
		require.NoError(t, err)
	}
	req := httptest.NewRequest(method, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	var resp api.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	return w.Code, resp
}

func TestAuthRoutes(t *testing.T) {
	engine, _ := setupAuthRouter(t)

	code, resp := call(t, engine, http.MethodPost, "/v1/auth/register", "", gin.H{
		"email": "ada@example.com", "password": "analytical-engine", "firstName": "Ada", "lastName": "Lovelace",
	})
	require.Equal(t, http.StatusOK, code, resp.Message)
	user := resp.Data[0].(map[string]any)
	assert.NotContains(t, user, "passwordHash")
	assert.NotContains(t, user, "salt")

	code, resp = call(t, engine, http.MethodPost, "/v1/auth/login", "", gin.H{"email": "ada@example.com", "password": "analytical-engine"})
	require.Equal(t, http.StatusOK, code)
	access := resp.Data[0].(map[string]any)["accessToken"].(string)

	code, resp = call(t, engine, http.MethodGet, "/v1/auth/me", access, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ada@example.com", resp.Data[0].(map[string]any)["email"])

	code, resp = call(t, engine, http.MethodPost, "/v1/auth/update", access, gin.H{"lastName": "King"})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "King", resp.Data[0].(map[string]any)["lastName"])

	code, _ = call(t, engine, http.MethodPost, "/v1/auth/delete", access, nil)
	require.Equal(t, http.StatusOK, code)

	code, resp = call(t, engine, http.MethodGet, "/v1/auth/me", access, nil)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "User not found", resp.Message)
}

func TestRequireAuth(t *testing.T) {
	engine, _ := setupAuthRouter(t)

	tests := []struct {
		name    string
		token   string
		message string
	}{
		{name: "MissingHeader", token: "", message: "authentication required"},
		{name: "Garbage", token: "abc.def.ghi", message: "invalid token"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, resp := call(t, engine, http.MethodGet, "/v1/auth/me", tt.token, nil)
			assert.Equal(t, http.StatusUnauthorized, code)
			assert.Equal(t, api.StatusFailed, resp.Status)
			assert.Equal(t, tt.message, resp.Message)
			assert.Empty(t, resp.Data)
		})
	}
}

func TestPasswordResetRequest_AlwaysSucceeds(t *testing.T) {
	engine, mailer := setupAuthRouter(t)

	code, resp := call(t, engine, http.MethodPost, "/v1/auth/password-reset-request", "", gin.H{"email": "nobody@example.com"})
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, api.StatusSuccess, resp.Status)
	assert.Empty(t, mailer.sent)
}
