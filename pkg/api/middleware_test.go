package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reachforge/sendgate/config"
)

const testAuthSecret = "test-secret"

func signedToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testAuthSecret))
	require.NoError(t, err)
	return token
}

func authTestConfig() *config.Config {
	return &config.Config{
		AuthSecret:         testAuthSecret,
		AuthAllowedIssuers: []string{"https://auth.reachforge.io"},
	}
}

func runAuthMiddleware(cfg *config.Config, authorization string) (*httptest.ResponseRecorder, *http.Request) {
	var seen *http.Request
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = r
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/quota", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	rec := httptest.NewRecorder()
	AuthMiddleware(cfg)(next).ServeHTTP(rec, req)
	return rec, seen
}

func TestAuthMiddlewareAcceptsValidToken(t *testing.T) {
	token := signedToken(t, jwt.MapClaims{
		"iss":          "https://auth.reachforge.io",
		"workspace_id": "ws-1",
		"plan":         "growth",
	})

	rec, seen := runAuthMiddleware(authTestConfig(), "Bearer "+token)

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, seen)
	assert.Equal(t, "ws-1", WorkspaceIDFromContext(seen.Context()))
	assert.Equal(t, "growth", PlanFromContext(seen.Context()))
}

func TestAuthMiddlewareRejectsMissingToken(t *testing.T) {
	rec, seen := runAuthMiddleware(authTestConfig(), "")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Nil(t, seen)
}

func TestAuthMiddlewareRejectsBadSignature(t *testing.T) {
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"iss":          "https://auth.reachforge.io",
		"workspace_id": "ws-1",
	}).SignedString([]byte("wrong-secret"))
	require.NoError(t, err)

	rec, _ := runAuthMiddleware(authTestConfig(), "Bearer "+token)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddlewareRejectsWrongIssuer(t *testing.T) {
	token := signedToken(t, jwt.MapClaims{
		"iss":          "https://evil.example.com",
		"workspace_id": "ws-1",
	})

	rec, _ := runAuthMiddleware(authTestConfig(), "Bearer "+token)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddlewareRejectsTokenWithoutWorkspace(t *testing.T) {
	token := signedToken(t, jwt.MapClaims{
		"iss": "https://auth.reachforge.io",
	})

	rec, _ := runAuthMiddleware(authTestConfig(), "Bearer "+token)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestEnsureJSONContentType(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	tests := []struct {
		name        string
		method      string
		contentType string
		wantCode    int
	}{
		{
			name:        "accepts application/json on POST",
			method:      http.MethodPost,
			contentType: "application/json",
			wantCode:    http.StatusOK,
		},
		{
			name:        "accepts a charset parameter",
			method:      http.MethodPost,
			contentType: "application/json; charset=utf-8",
			wantCode:    http.StatusOK,
		},
		{
			name:        "rejects a non-JSON Content-Type",
			method:      http.MethodPost,
			contentType: "text/plain",
			wantCode:    http.StatusBadRequest,
		},
		{
			name:     "rejects an empty Content-Type on POST",
			method:   http.MethodPost,
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "skips bodyless GET requests",
			method:   http.MethodGet,
			wantCode: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/api/v1/sends", strings.NewReader("{}"))
			if tt.contentType != "" {
				req.Header.Set("Content-Type", tt.contentType)
			}
			rec := httptest.NewRecorder()

			EnsureJSONContentType(next).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantCode, rec.Code)
		})
	}
}
