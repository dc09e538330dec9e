package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"courier/internal/service"
)

// ClosureHandler handles HTTP requests for the daily closure flow.
type ClosureHandler struct {
	closureService *service.ClosureService
}

// NewClosureHandler creates a new ClosureHandler.
func NewClosureHandler(closureService *service.ClosureService) *ClosureHandler {
	return &ClosureHandler{closureService: closureService}
}

// ClosureBatchPayload is the HTTP request body for closing or
// reopening a batch of orders.
type ClosureBatchPayload struct {
	OrderIDs []string `json:"order_ids"`
}

// ClosureBatchResponse reports the size of a completed batch.
type ClosureBatchResponse struct {
	Count int `json:"count"`
}

// ListCandidates handles GET /v1/closure/candidates
func (h *ClosureHandler) ListCandidates(c *gin.Context) {
	orders, err := h.closureService.Candidates(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	summaries := make([]OrderSummary, 0, len(orders))
	for _, o := range orders {
		summaries = append(summaries, newOrderSummary(o))
	}

	respondJSON(c, http.StatusOK, summaries)
}

// CloseOrders handles POST /v1/closure/close
func (h *ClosureHandler) CloseOrders(c *gin.Context) {
	var req ClosureBatchPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	count, err := h.closureService.CloseOrders(c.Request.Context(), req.OrderIDs)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, ClosureBatchResponse{Count: count})
}

// ReopenOrders handles POST /v1/closure/reopen
func (h *ClosureHandler) ReopenOrders(c *gin.Context) {
	var req ClosureBatchPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	count, err := h.closureService.ReopenOrders(c.Request.Context(), req.OrderIDs)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, ClosureBatchResponse{Count: count})
}
