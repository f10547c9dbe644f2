package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/golang/glog"
	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/reachforge/sendgate/pkg/db"
	"github.com/reachforge/sendgate/pkg/email"
	"github.com/reachforge/sendgate/pkg/quota"
)

// SendHandler serves the send, warm-up and quota-probe endpoints.
type SendHandler struct {
	engine       *quota.Engine
	orchestrator *email.Orchestrator
	store        db.DatabaseClient
}

// NewSendHandler creates a SendHandler.
func NewSendHandler(engine *quota.Engine, orchestrator *email.Orchestrator, store db.DatabaseClient) *SendHandler {
	return &SendHandler{
		engine:       engine,
		orchestrator: orchestrator,
		store:        store,
	}
}

// SendEmail runs the orchestrator for one sequence email. The workspace and
// plan come from the authenticated token, never from the payload, so a caller
// cannot spend another workspace's quota.
func (sh *SendHandler) SendEmail(w http.ResponseWriter, r *http.Request) {
	var request email.SendRequest

	jsonDecoder := json.NewDecoder(r.Body)
	jsonDecoder.DisallowUnknownFields()

	if err := jsonDecoder.Decode(&request); err != nil {
		writeErrorResponse(w, "Cannot decode send email request payload", http.StatusBadRequest)
		return
	}

	request.WorkspaceID = WorkspaceIDFromContext(r.Context())
	request.PlanName = PlanFromContext(r.Context())

	result := sh.orchestrator.SendSequenceEmail(r.Context(), request)

	statusCode := http.StatusOK
	if !result.Success {
		statusCode = http.StatusTooManyRequests
	}
	if err := writeJSONResponse(w, result, statusCode); err != nil {
		glog.Errorf("Failed creating json response: %v", err)
		http.Error(w, "Cannot create json response", http.StatusInternalServerError)
	}
}

// SendWarmupEmail delivers one warm-up email through a pinned inbox.
func (sh *SendHandler) SendWarmupEmail(w http.ResponseWriter, r *http.Request) {
	var request email.WarmupRequest

	jsonDecoder := json.NewDecoder(r.Body)
	jsonDecoder.DisallowUnknownFields()

	if err := jsonDecoder.Decode(&request); err != nil {
		writeErrorResponse(w, "Cannot decode warm-up request payload", http.StatusBadRequest)
		return
	}

	request.WorkspaceID = WorkspaceIDFromContext(r.Context())

	result := sh.orchestrator.SendWarmupEmail(r.Context(), request)

	statusCode := http.StatusOK
	if !result.Success {
		statusCode = http.StatusTooManyRequests
	}
	if err := writeJSONResponse(w, result, statusCode); err != nil {
		glog.Errorf("Failed creating json response: %v", err)
		http.Error(w, "Cannot create json response", http.StatusInternalServerError)
	}
}

// CheckQuota is the pure "can I send?" probe for UI callers. It never mutates
// counters, so polling it is safe.
func (sh *SendHandler) CheckQuota(w http.ResponseWriter, r *http.Request) {
	workspaceID := WorkspaceIDFromContext(r.Context())
	planName := PlanFromContext(r.Context())
	senderID := r.URL.Query().Get("senderId")

	decision := sh.engine.CheckSendAllowed(workspaceID, planName, senderID)

	if err := writeJSONResponse(w, decision, http.StatusOK); err != nil {
		glog.Errorf("Failed creating json response: %v", err)
		http.Error(w, "Cannot create json response", http.StatusInternalServerError)
	}
}

// CreateSenderRequest represents API requests for registering a sender account
type CreateSenderRequest struct {
	Email           string `json:"email"`
	Provider        string `json:"provider"`
	OutreachEnabled bool   `json:"outreachEnabled"`
}

// CreateSender registers a newly connected sender account for the workspace.
// The provider OAuth flow itself happens outside this service.
func (sh *SendHandler) CreateSender(w http.ResponseWriter, r *http.Request) {
	var request CreateSenderRequest

	jsonDecoder := json.NewDecoder(r.Body)
	jsonDecoder.DisallowUnknownFields()

	if err := jsonDecoder.Decode(&request); err != nil {
		writeErrorResponse(w, "Cannot decode sender account payload", http.StatusBadRequest)
		return
	}
	if request.Email == "" {
		writeErrorResponse(w, "Sender account email is required", http.StatusBadRequest)
		return
	}

	account := &db.SenderAccount{
		ID:              uuid.NewString(),
		WorkspaceID:     WorkspaceIDFromContext(r.Context()),
		Email:           request.Email,
		Provider:        request.Provider,
		Connected:       true,
		OutreachEnabled: request.OutreachEnabled,
		CreatedAt:       time.Now().UTC(),
	}

	if err := sh.store.CreateSenderAccount(account); err != nil {
		glog.Errorf("Failed creating sender account: %v", err)
		writeErrorResponse(w, "Cannot create sender account", http.StatusInternalServerError)
		return
	}

	if err := writeJSONResponse(w, account, http.StatusCreated); err != nil {
		glog.Errorf("Failed creating json response: %v", err)
		http.Error(w, "Cannot create json response", http.StatusInternalServerError)
	}
}

// DisconnectSender marks a sender account as disconnected.
func (sh *SendHandler) DisconnectSender(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if err := sh.store.DisconnectSenderAccount(id); err != nil {
		glog.Errorf("Failed disconnecting sender account %s: %v", id, err)
		writeErrorResponse(w, "Cannot disconnect sender account", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
