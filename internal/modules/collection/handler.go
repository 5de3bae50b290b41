package collection

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"tradebridge/internal/domain"
	"tradebridge/internal/middleware"
	"tradebridge/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/bookings/:id/qr", h.IssueToken)
	rg.POST("/bookings/collect", h.Redeem)
}

func (h *Handler) IssueToken(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	bookingID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid booking id")
		return
	}

	flow := domain.Flow(c.DefaultQuery("flow", string(domain.FlowBorrow)))

	res, err := h.service.IssueToken(c.Request.Context(), bookingID, userID, flow)
	if err != nil {
		writeCollectionError(c, err, "Failed to generate QR token")
		return
	}

	response.Success(c, http.StatusOK, res)
}

func (h *Handler) Redeem(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	var req RedeemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Token is required")
		return
	}

	b, err := h.service.Redeem(c.Request.Context(), req.Token, userID)
	if err != nil {
		writeCollectionError(c, err, "Failed to redeem token")
		return
	}

	msg := "Item collection confirmed"
	if b.Status == domain.BookingCompleted {
		msg = "Item return confirmed"
	}

	response.Success(c, http.StatusOK, gin.H{
		"booking": b,
		"message": msg,
	})
}

func writeCollectionError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrValidation):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Flow must be borrow or return")
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Booking not found")
	case errors.Is(err, ErrForbidden):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "You are not allowed to perform this handoff")
	case errors.Is(err, ErrInvalidState):
		response.Error(c, http.StatusConflict, "INVALID_STATE", "Booking status does not permit this handoff")
	case errors.Is(err, ErrExpired):
		response.Error(c, http.StatusBadRequest, "TOKEN_EXPIRED", "QR code has expired. Please generate a new one")
	case errors.Is(err, ErrInvalidToken):
		response.Error(c, http.StatusBadRequest, "INVALID_TOKEN", "Invalid token")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", fallback)
	}
}
