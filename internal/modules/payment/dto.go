package payment

type CallbackRequest struct {
	BookingID int64  `json:"booking_id" binding:"required"`
	SessionID string `json:"session_id" binding:"required"`
}
