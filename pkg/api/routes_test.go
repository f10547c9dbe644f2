package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoutesHealthIsPublic(t *testing.T) {
	router := SetupRoutes(authTestConfig(), testHandler(sendCapableMockDB(), &mockTransport{}))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRoutesAPIRequiresAuth(t *testing.T) {
	router := SetupRoutes(authTestConfig(), testHandler(sendCapableMockDB(), &mockTransport{}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/quota", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRoutesQuotaProbeEndToEnd(t *testing.T) {
	router := SetupRoutes(authTestConfig(), testHandler(sendCapableMockDB(), &mockTransport{}))

	token := signedToken(t, jwt.MapClaims{
		"iss":          "https://auth.reachforge.io",
		"workspace_id": "ws-1",
		"plan":         "starter",
	})
	req := httptest.NewRequest(http.MethodGet, "/api/v1/quota", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"allowed":true}`, rec.Body.String())
}

func TestRoutesUnknownPathReturnsJSONError(t *testing.T) {
	router := SetupRoutes(authTestConfig(), testHandler(sendCapableMockDB(), &mockTransport{}))

	req := httptest.NewRequest(http.MethodGet, "/nope", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"Resource not found"}`, rec.Body.String())
}
