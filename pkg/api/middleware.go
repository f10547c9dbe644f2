package api

import (
	"context"
	"mime"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v4"
	"github.com/gorilla/mux"

	"github.com/reachforge/sendgate/config"
)

type contextKey string

const (
	workspaceIDContextKey contextKey = "workspaceID"
	planContextKey        contextKey = "plan"

	workspaceIDClaim = "workspace_id"
	planClaim        = "plan"
)

// WorkspaceIDFromContext returns the authenticated workspace ID, or empty if
// the request did not pass the auth middleware.
func WorkspaceIDFromContext(ctx context.Context) string {
	workspaceID, _ := ctx.Value(workspaceIDContextKey).(string)
	return workspaceID
}

// PlanFromContext returns the plan name carried by the authenticated token.
func PlanFromContext(ctx context.Context) string {
	plan, _ := ctx.Value(planContextKey).(string)
	return plan
}

// EnsureJSONContentType enforces Content-Type: application/json on requests
// that carry a body.
func EnsureJSONContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet || r.Method == http.MethodDelete {
			next.ServeHTTP(w, r)
			return
		}

		contentType := r.Header.Get("Content-Type")
		if contentType == "" {
			writeErrorResponse(w, "empty Content-Type", http.StatusBadRequest)
			return
		}

		mt, _, err := mime.ParseMediaType(contentType)
		if err != nil {
			writeErrorResponse(w, "malformed Content-Type header", http.StatusBadRequest)
			return
		}
		if mt != "application/json" {
			writeErrorResponse(w, "Content-Type header must be application/json", http.StatusBadRequest)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// AuthMiddleware authenticates the bearer token and stores the workspace and
// plan claims in the request context. Handlers trust these over any payload
// fields.
func AuthMiddleware(cfg *config.Config) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rawToken, ok := bearerToken(r)
			if !ok {
				writeErrorResponse(w, "missing bearer token", http.StatusUnauthorized)
				return
			}

			claims := jwt.MapClaims{}
			token, err := jwt.ParseWithClaims(rawToken, claims, func(t *jwt.Token) (interface{}, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, jwt.ErrTokenSignatureInvalid
				}
				return []byte(cfg.AuthSecret), nil
			})
			if err != nil || !token.Valid {
				writeErrorResponse(w, "invalid token", http.StatusUnauthorized)
				return
			}

			if len(cfg.AuthAllowedIssuers) > 0 && !issuerAllowed(claims, cfg.AuthAllowedIssuers) {
				writeErrorResponse(w, "token issuer is not allowed", http.StatusUnauthorized)
				return
			}

			workspaceID, _ := claims[workspaceIDClaim].(string)
			if workspaceID == "" {
				writeErrorResponse(w, "token carries no workspace", http.StatusUnauthorized)
				return
			}
			plan, _ := claims[planClaim].(string)

			ctx := context.WithValue(r.Context(), workspaceIDContextKey, workspaceID)
			ctx = context.WithValue(ctx, planContextKey, plan)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	return parts[1], true
}

func issuerAllowed(claims jwt.MapClaims, allowed []string) bool {
	for _, issuer := range allowed {
		if claims.VerifyIssuer(issuer, true) {
			return true
		}
	}
	return false
}
