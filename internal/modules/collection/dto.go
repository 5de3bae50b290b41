package collection

import "tradebridge/internal/domain"

type IssueResult struct {
	QRDataURL string      `json:"qr_data_url"`
	ExpiresIn int         `json:"expires_in"`
	Flow      domain.Flow `json:"flow"`
	BookingID int64       `json:"booking_id"`
}

type RedeemRequest struct {
	Token string `json:"token" binding:"required"`
}
