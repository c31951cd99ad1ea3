package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/damon-houk/account-order-service/internal/domain/entity"
	"github.com/damon-houk/account-order-service/internal/domain/repository"
	"github.com/damon-houk/account-order-service/internal/infrastructure/logger"
	"github.com/damon-houk/account-order-service/internal/infrastructure/middleware"
	"github.com/gorilla/mux"
)

// AccountHandler handles HTTP requests for accounts
type AccountHandler struct {
	repo   repository.AccountRepository
	logger logger.Logger
}

// NewAccountHandler creates a new account handler
func NewAccountHandler(repo repository.AccountRepository, log logger.Logger) *AccountHandler {
	if log == nil {
		log = logger.GetDefaultLogger()
	}

	return &AccountHandler{
		repo:   repo,
		logger: log,
	}
}

// ListAccounts handles retrieving all accounts
func (h *AccountHandler) ListAccounts(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	accounts, err := h.repo.FindAll(r.Context())
	if err != nil {
		h.respondError(w, err, requestID)
		return
	}

	resp := make([]AccountResponse, 0, len(accounts))
	for _, acc := range accounts {
		resp = append(resp, toAccountResponse(acc))
	}

	writeJSON(w, http.StatusOK, resp)
}

// GetAccount handles retrieving an account by ID
func (h *AccountHandler) GetAccount(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	id, ok := h.parseID(w, r, requestID)
	if !ok {
		return
	}

	acc, err := h.repo.FindByID(r.Context(), id)
	if err != nil {
		h.respondError(w, err, requestID)
		return
	}

	writeJSON(w, http.StatusOK, toAccountResponse(acc))
}

// GetAccountDetails handles retrieving an account together with its orders
func (h *AccountHandler) GetAccountDetails(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	id, ok := h.parseID(w, r, requestID)
	if !ok {
		return
	}

	acc, err := h.repo.FindWithOrders(r.Context(), id)
	if err != nil {
		h.respondError(w, err, requestID)
		return
	}

	writeJSON(w, http.StatusOK, toAccountResponse(acc))
}

// CreateAccount handles the creation of a new account
func (h *AccountHandler) CreateAccount(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	h.logger.Info("Handling create account request", map[string]interface{}{
		"request_id": requestID,
	})

	var req AccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendErrorResponse(w, h.logger, "Invalid request body",
			"The request body could not be parsed as valid JSON", http.StatusBadRequest, requestID)
		return
	}

	acc, err := h.repo.Create(r.Context(), &entity.Account{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
	})
	if err != nil {
		h.logger.Warn("Create account failed", map[string]interface{}{
			"request_id": requestID,
			"error":      err.Error(),
		})
		h.respondError(w, err, requestID)
		return
	}

	h.logger.Info("Account created successfully", map[string]interface{}{
		"request_id": requestID,
		"id":         acc.ID,
	})

	writeJSON(w, http.StatusCreated, toAccountResponse(acc))
}

// UpdateAccount handles a full-record replacement of an account
func (h *AccountHandler) UpdateAccount(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	id, ok := h.parseID(w, r, requestID)
	if !ok {
		return
	}

	var req AccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendErrorResponse(w, h.logger, "Invalid request body",
			"The request body could not be parsed as valid JSON", http.StatusBadRequest, requestID)
		return
	}

	acc, err := h.repo.Update(r.Context(), &entity.Account{
		ID:        id,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
	})
	if err != nil {
		h.respondError(w, err, requestID)
		return
	}

	writeJSON(w, http.StatusOK, toAccountResponse(acc))
}

// DeleteAccount handles removing an account
func (h *AccountHandler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	id, ok := h.parseID(w, r, requestID)
	if !ok {
		return
	}

	removed, err := h.repo.Delete(r.Context(), id)
	if err != nil {
		h.respondError(w, err, requestID)
		return
	}

	if !removed {
		sendErrorResponse(w, h.logger, "Account not found",
			"No account exists with the given ID", http.StatusNotFound, requestID)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// RegisterRoutes registers the account handler routes
func (h *AccountHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/accounts", h.ListAccounts).Methods("GET")
	router.HandleFunc("/accounts", h.CreateAccount).Methods("POST")
	router.HandleFunc("/accounts/{id}", h.GetAccount).Methods("GET")
	router.HandleFunc("/accounts/{id}/details", h.GetAccountDetails).Methods("GET")
	router.HandleFunc("/accounts/{id}", h.UpdateAccount).Methods("PUT")
	router.HandleFunc("/accounts/{id}", h.DeleteAccount).Methods("DELETE")
}

func (h *AccountHandler) parseID(w http.ResponseWriter, r *http.Request, requestID string) (uint64, bool) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		sendErrorResponse(w, h.logger, "Invalid account ID",
			"Account ID must be a positive integer", http.StatusBadRequest, requestID)
		return 0, false
	}
	return id, true
}

func (h *AccountHandler) respondError(w http.ResponseWriter, err error, requestID string) {
	respondTaxonomyError(w, h.logger, err, requestID)
}

func toAccountResponse(acc *entity.Account) AccountResponse {
	resp := AccountResponse{
		ID:        acc.ID,
		FirstName: acc.FirstName,
		LastName:  acc.LastName,
		Email:     acc.Email,
	}

	for _, o := range acc.Orders {
		resp.Orders = append(resp.Orders, toOrderResponse(&o))
	}

	return resp
}

// respondTaxonomyError maps a repository error onto the HTTP status vocabulary
func respondTaxonomyError(w http.ResponseWriter, log logger.Logger, err error, requestID string) {
	switch {
	case errors.Is(err, entity.ErrInvalidArgument):
		sendErrorResponse(w, log, "Invalid argument", err.Error(), http.StatusBadRequest, requestID)
	case errors.Is(err, entity.ErrNotFound):
		sendErrorResponse(w, log, "Not found", err.Error(), http.StatusNotFound, requestID)
	case errors.Is(err, entity.ErrConflict):
		sendErrorResponse(w, log, "Conflict", err.Error(), http.StatusConflict, requestID)
	case errors.Is(err, entity.ErrGatewayFailure):
		sendErrorResponse(w, log, "Gateway failure", err.Error(), http.StatusBadGateway, requestID)
	default:
		log.Error("Unexpected error", map[string]interface{}{
			"request_id": requestID,
			"error":      err.Error(),
		})
		sendErrorResponse(w, log, "Internal server error",
			"An unexpected error occurred", http.StatusInternalServerError, requestID)
	}
}

// sendErrorResponse sends a standardized error response
func sendErrorResponse(w http.ResponseWriter, log logger.Logger, message, description string, statusCode int, requestID string) {
	log.Debug("Sending error response", map[string]interface{}{
		"request_id":  requestID,
		"status_code": statusCode,
		"message":     message,
	})

	writeJSON(w, statusCode, ErrorResponse{
		Error:       message,
		Status:      statusCode,
		Description: description,
		RequestID:   requestID,
	})
}

func writeJSON(w http.ResponseWriter, statusCode int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(body)
}
