package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/damon-houk/account-order-service/internal/domain/entity"
	"github.com/damon-houk/account-order-service/internal/domain/repository"
	"github.com/damon-houk/account-order-service/internal/infrastructure/logger"
	"github.com/damon-houk/account-order-service/internal/infrastructure/middleware"
	"github.com/gorilla/mux"
)

// OrderHandler handles HTTP requests for orders
type OrderHandler struct {
	repo   repository.OrderRepository
	logger logger.Logger
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(repo repository.OrderRepository, log logger.Logger) *OrderHandler {
	if log == nil {
		log = logger.GetDefaultLogger()
	}

	return &OrderHandler{
		repo:   repo,
		logger: log,
	}
}

// ListOrders handles retrieving all orders
func (h *OrderHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	orders, err := h.repo.FindAll(r.Context())
	if err != nil {
		respondTaxonomyError(w, h.logger, err, requestID)
		return
	}

	writeJSON(w, http.StatusOK, toOrderResponses(orders))
}

// GetOrder handles retrieving an order by ID
func (h *OrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	id, ok := h.parseID(w, r, requestID)
	if !ok {
		return
	}

	order, err := h.repo.FindByID(r.Context(), id)
	if err != nil {
		respondTaxonomyError(w, h.logger, err, requestID)
		return
	}

	writeJSON(w, http.StatusOK, toOrderResponse(order))
}

// ListAccountOrders handles retrieving all orders belonging to an account
func (h *OrderHandler) ListAccountOrders(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	accountID, ok := h.parseID(w, r, requestID)
	if !ok {
		return
	}

	orders, err := h.repo.FindByAccount(r.Context(), accountID)
	if err != nil {
		respondTaxonomyError(w, h.logger, err, requestID)
		return
	}

	writeJSON(w, http.StatusOK, toOrderResponses(orders))
}

// CreateOrder handles the creation of a new order
func (h *OrderHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	h.logger.Info("Handling create order request", map[string]interface{}{
		"request_id": requestID,
	})

	var req OrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendErrorResponse(w, h.logger, "Invalid request body",
			"The request body could not be parsed as valid JSON", http.StatusBadRequest, requestID)
		return
	}

	order, err := h.repo.Create(r.Context(), &entity.Order{
		AccountID: req.AccountID,
		Product:   req.Product,
		Quantity:  req.Quantity,
		Price:     req.Price,
	})
	if err != nil {
		h.logger.Warn("Create order failed", map[string]interface{}{
			"request_id": requestID,
			"account_id": req.AccountID,
			"error":      err.Error(),
		})
		respondTaxonomyError(w, h.logger, err, requestID)
		return
	}

	h.logger.Info("Order created successfully", map[string]interface{}{
		"request_id": requestID,
		"id":         order.ID,
	})

	writeJSON(w, http.StatusCreated, toOrderResponse(order))
}

// UpdateOrder handles a full-record replacement of an order
func (h *OrderHandler) UpdateOrder(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	id, ok := h.parseID(w, r, requestID)
	if !ok {
		return
	}

	var req OrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendErrorResponse(w, h.logger, "Invalid request body",
			"The request body could not be parsed as valid JSON", http.StatusBadRequest, requestID)
		return
	}

	order, err := h.repo.Update(r.Context(), &entity.Order{
		ID:        id,
		AccountID: req.AccountID,
		Product:   req.Product,
		Quantity:  req.Quantity,
		Price:     req.Price,
	})
	if err != nil {
		respondTaxonomyError(w, h.logger, err, requestID)
		return
	}

	writeJSON(w, http.StatusOK, toOrderResponse(order))
}

// DeleteOrder handles removing an order
func (h *OrderHandler) DeleteOrder(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	id, ok := h.parseID(w, r, requestID)
	if !ok {
		return
	}

	removed, err := h.repo.Delete(r.Context(), id)
	if err != nil {
		respondTaxonomyError(w, h.logger, err, requestID)
		return
	}

	if !removed {
		sendErrorResponse(w, h.logger, "Order not found",
			"No order exists with the given ID", http.StatusNotFound, requestID)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// RegisterRoutes registers the order handler routes
func (h *OrderHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/orders", h.ListOrders).Methods("GET")
	router.HandleFunc("/orders", h.CreateOrder).Methods("POST")
	router.HandleFunc("/orders/{id}", h.GetOrder).Methods("GET")
	router.HandleFunc("/orders/{id}", h.UpdateOrder).Methods("PUT")
	router.HandleFunc("/orders/{id}", h.DeleteOrder).Methods("DELETE")
	router.HandleFunc("/accounts/{id}/orders", h.ListAccountOrders).Methods("GET")
}

func (h *OrderHandler) parseID(w http.ResponseWriter, r *http.Request, requestID string) (uint64, bool) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		sendErrorResponse(w, h.logger, "Invalid ID",
			"ID must be a positive integer", http.StatusBadRequest, requestID)
		return 0, false
	}
	return id, true
}

func toOrderResponse(o *entity.Order) OrderResponse {
	return OrderResponse{
		ID:        o.ID,
		AccountID: o.AccountID,
		Product:   o.Product,
		Quantity:  o.Quantity,
		Price:     o.Price,
	}
}

func toOrderResponses(orders []*entity.Order) []OrderResponse {
	resp := make([]OrderResponse, 0, len(orders))
	for _, o := range orders {
		resp = append(resp, toOrderResponse(o))
	}
	return resp
}
