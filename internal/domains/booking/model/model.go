package model

import (
	"database/sql"
	"time"

	"bamf/shared/constant"
	"bamf/shared/model"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID               = "id"
	FieldRoomID           = "room_id"
	FieldBookingCode      = "booking_code"
	FieldCheckIn          = "check_in"
	FieldCheckOut         = "check_out"
	FieldRooms            = "rooms"
	FieldAdults           = "adults"
	FieldChildren         = "children"
	FieldGuests           = "guests"
	FieldFullName         = "full_name"
	FieldEmail            = "email"
	FieldCurrency         = "currency"
	FieldAmountMinor      = "amount_minor"
	FieldPaymentStatus    = "payment_status"
	FieldPaymentMethod    = "payment_method"
	FieldPaymentProvider  = "payment_provider"
	FieldPaymentReference = "payment_reference"
	FieldPaidAt           = "paid_at"
	FieldExpiresAt        = "expires_at"
)

type Booking struct {
	ID               string       `db:"id"`
	RoomID           string       `db:"room_id"`
	BookingCode      string       `db:"booking_code"`
	CheckIn          time.Time    `db:"check_in"`
	CheckOut         time.Time    `db:"check_out"`
	Rooms            int          `db:"rooms"`
	Adults           int          `db:"adults"`
	Children         int          `db:"children"`
	Guests           int          `db:"guests"`
	FullName         string       `db:"full_name"`
	Email            string       `db:"email"`
	Currency         string       `db:"currency"`
	AmountMinor      int64        `db:"amount_minor"`
	PaymentStatus    string       `db:"payment_status"`
	PaymentMethod    string       `db:"payment_method"`
	PaymentProvider  string       `db:"payment_provider"`
	PaymentReference string       `db:"payment_reference"`
	PaidAt           sql.NullTime `db:"paid_at"`
	ExpiresAt        time.Time    `db:"expires_at"`
	model.Metadata
}

// IsPaid reports whether the booking has already been settled, either
// online or at the front desk.
func (b *Booking) IsPaid() bool {
	return b.PaymentStatus == constant.PaymentStatusPaid
}
