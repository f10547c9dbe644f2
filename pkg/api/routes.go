package api

import (
	"net/http"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/reachforge/sendgate/config"
)

// SetupRoutes configures API route mapping
func SetupRoutes(cfg *config.Config, sendHandler *SendHandler) http.Handler {
	router := mux.NewRouter()

	router.NotFoundHandler = http.HandlerFunc(NotFoundHandler)
	router.MethodNotAllowedHandler = http.HandlerFunc(MethodNotAllowedHandler)

	// health stays outside the authenticated prefix
	router.HandleFunc("/health", HealthCheckHandler).Methods("GET")

	apiV1Router := router.PathPrefix("/api/v1").Subrouter()
	apiV1Router.Use(
		EnsureJSONContentType,
		AuthMiddleware(cfg),
	)

	apiV1Router.HandleFunc("/sends", sendHandler.SendEmail).Methods("POST")
	apiV1Router.HandleFunc("/warmups", sendHandler.SendWarmupEmail).Methods("POST")
	apiV1Router.HandleFunc("/quota", sendHandler.CheckQuota).Methods("GET")
	apiV1Router.HandleFunc("/senders", sendHandler.CreateSender).Methods("POST")
	apiV1Router.HandleFunc("/senders/{id}", sendHandler.DisconnectSender).Methods("DELETE")

	cors := handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
		handlers.AllowedMethods([]string{"GET", "POST", "DELETE", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Authorization", "Content-Type"}),
	)

	return handlers.RecoveryHandler()(cors(router))
}
