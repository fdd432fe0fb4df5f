package dto

import (
	bookingModel "bamf/internal/domains/booking/model"
	"bamf/shared/constant"
	"bamf/shared/timezone"
)

type InitPaymentRequest struct {
	BookingID string `json:"booking_id" validate:"required"`
	Provider  string `json:"provider"   validate:"required,oneof=paystack monnify"`
}

type InitPaymentResponse struct {
	BookingID        string `json:"booking_id"`
	Provider         string `json:"provider"`
	Reference        string `json:"reference"`
	AuthorizationURL string `json:"authorization_url"`
	PaymentStatus    string `json:"payment_status"`
	AmountMinor      int64  `json:"amount_minor"`
	Currency         string `json:"currency"`
}

type VerifyPaymentResponse struct {
	BookingID      string `json:"booking_id"`
	BookingCode    string `json:"booking_code"`
	Provider       string `json:"provider"`
	Reference      string `json:"reference"`
	PaymentStatus  string `json:"payment_status"`
	Paid           bool   `json:"paid"`
	PaidAt         string `json:"paid_at,omitempty"`
	ProviderStatus string `json:"provider_status,omitempty"`
	AmountMinor    int64  `json:"amount_minor"`
	Currency       string `json:"currency"`
}

func (v *VerifyPaymentResponse) FromModel(mod bookingModel.Booking) {
	v.BookingID = mod.ID
	v.BookingCode = mod.BookingCode
	v.Provider = mod.PaymentProvider
	v.Reference = mod.PaymentReference
	v.PaymentStatus = mod.PaymentStatus
	v.Paid = mod.IsPaid()
	v.AmountMinor = mod.AmountMinor
	v.Currency = mod.Currency

	if mod.PaidAt.Valid {
		v.PaidAt = timezone.Format(mod.PaidAt.Time, constant.DateFormat)
	}
}
