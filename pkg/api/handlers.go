// Package api exposes the quota engine and send orchestrator over HTTP for
// the UI and the automation sequence runners.
package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/golang/glog"
)

// Envelope is the generic JSON response wrapper.
type Envelope map[string]interface{}

// HealthCheckHandler returns 200 HTTP status code
func HealthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

// NotFoundHandler replies with a JSON error envelope for unknown routes.
func NotFoundHandler(w http.ResponseWriter, r *http.Request) {
	writeErrorResponse(w, "Resource not found", http.StatusNotFound)
}

// MethodNotAllowedHandler replies with a JSON error envelope for bad methods.
func MethodNotAllowedHandler(w http.ResponseWriter, r *http.Request) {
	writeErrorResponse(w, "Method not allowed", http.StatusMethodNotAllowed)
}

func writeJSONResponse(w http.ResponseWriter, body interface{}, statusCode int) error {
	j, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal: %v", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	_, err = w.Write(j)
	if err != nil {
		return fmt.Errorf("failed to write json response: %v", err)
	}

	return nil
}

func writeErrorResponse(w http.ResponseWriter, message string, statusCode int) {
	envelope := Envelope{
		"error": message,
	}

	if err := writeJSONResponse(w, envelope, statusCode); err != nil {
		glog.Errorf("Failed creating error json response: %v", err)
		http.Error(w, "Cannot create error json response", http.StatusInternalServerError)
	}
}
