package payment

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"tradebridge/internal/modules/booking"
	"tradebridge/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/payments/callback", h.Callback)
}

func (h *Handler) Callback(c *gin.Context) {
	var req CallbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	b, err := h.service.Confirm(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, booking.ErrNotFound):
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Booking not found")
		case errors.Is(err, booking.ErrInvalidState):
			response.Error(c, http.StatusConflict, "INVALID_STATE", "Booking cannot be paid in its current state")
		default:
			response.Error(c, http.StatusInternalServerError, "PAYMENT_FAILED", "Failed to record payment")
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"booking": b})
}
