package dto

import (
	"strings"
	"time"

	"bamf/internal/domains/booking/model"
	"bamf/shared"
	"bamf/shared/constant"
	gDto "bamf/shared/dto"
	gModel "bamf/shared/model"
	"bamf/shared/timezone"

	"github.com/google/uuid"
)

const (
	minRoomCount = 1
	maxRoomCount = 5
	minAdults    = 1
	maxAdults    = 20
	minChildren  = 0
	maxChildren  = 20
)

type CreateBookingRequest struct {
	RoomID   string `json:"room_id"   validate:"required"`
	FullName string `json:"full_name" validate:"required,max=200"`
	Email    string `json:"email"     validate:"required,email"`
	CheckIn  string `json:"check_in"  validate:"required"`
	CheckOut string `json:"check_out" validate:"required"`
	Rooms    int    `json:"rooms"     validate:"omitempty"`
	Adults   int    `json:"adults"    validate:"omitempty"`
	Children int    `json:"children"  validate:"omitempty"`
}

// Normalize trims the guest identity fields and clamps the occupancy
// counts into their allowed ranges instead of rejecting the request.
func (c *CreateBookingRequest) Normalize() {
	c.FullName = strings.TrimSpace(c.FullName)
	c.Email = strings.ToLower(strings.TrimSpace(c.Email))
	c.Rooms = clamp(c.Rooms, minRoomCount, maxRoomCount)
	c.Adults = clamp(c.Adults, minAdults, maxAdults)
	c.Children = clamp(c.Children, minChildren, maxChildren)
}

func clamp(value, low, high int) int {
	if value < low {
		return low
	}

	if value > high {
		return high
	}

	return value
}

func (c *CreateBookingRequest) ToModel(bookingCode, currency string, checkIn, checkOut time.Time, amountMinor int64, holdHours int) model.Booking {
	now := timezone.Now()

	return model.Booking{
		ID:            uuid.NewString(),
		RoomID:        c.RoomID,
		BookingCode:   bookingCode,
		CheckIn:       checkIn,
		CheckOut:      checkOut,
		Rooms:         c.Rooms,
		Adults:        c.Adults,
		Children:      c.Children,
		Guests:        c.Adults + c.Children,
		FullName:      c.FullName,
		Email:         c.Email,
		Currency:      currency,
		AmountMinor:   amountMinor,
		PaymentStatus: constant.PaymentStatusUnpaid,
		PaymentMethod: constant.PaymentMethodOnline,
		ExpiresAt:     now.Add(time.Duration(holdHours) * time.Hour),
		Metadata: gModel.Metadata{
			CreatedAt:  now,
			ModifiedAt: now,
			CreatedBy:  c.Email,
			ModifiedBy: c.Email,
		},
	}
}

type BookingResponse struct {
	ID               string `json:"id"`
	RoomID           string `json:"room_id"`
	BookingCode      string `json:"booking_code"`
	CheckIn          string `json:"check_in"`
	CheckOut         string `json:"check_out"`
	Rooms            int    `json:"rooms"`
	Adults           int    `json:"adults"`
	Children         int    `json:"children"`
	Guests           int    `json:"guests"`
	FullName         string `json:"full_name"`
	Email            string `json:"email"`
	Currency         string `json:"currency"`
	AmountMinor      int64  `json:"amount_minor"`
	PaymentStatus    string `json:"payment_status"`
	PaymentMethod    string `json:"payment_method"`
	PaymentProvider  string `json:"payment_provider,omitempty"`
	PaymentReference string `json:"payment_reference,omitempty"`
	PaidAt           string `json:"paid_at,omitempty"`
	ExpiresAt        string `json:"expires_at"`
	gDto.Metadata
}

func (b *BookingResponse) FromModel(mod model.Booking) {
	b.ID = mod.ID
	b.RoomID = mod.RoomID
	b.BookingCode = mod.BookingCode
	b.CheckIn = timezone.Format(mod.CheckIn, constant.CalendarFormat)
	b.CheckOut = timezone.Format(mod.CheckOut, constant.CalendarFormat)
	b.Rooms = mod.Rooms
	b.Adults = mod.Adults
	b.Children = mod.Children
	b.Guests = mod.Guests
	b.FullName = mod.FullName
	b.Email = mod.Email
	b.Currency = mod.Currency
	b.AmountMinor = mod.AmountMinor
	b.PaymentStatus = mod.PaymentStatus
	b.PaymentMethod = mod.PaymentMethod
	b.PaymentProvider = mod.PaymentProvider
	b.PaymentReference = mod.PaymentReference
	b.ExpiresAt = timezone.Format(mod.ExpiresAt, constant.DateFormat)

	if mod.PaidAt.Valid {
		b.PaidAt = timezone.Format(mod.PaidAt.Time, constant.DateFormat)
	}

	b.Metadata.FromModel(mod.Metadata)
}

type GetBookingsResponse struct {
	Bookings  []BookingResponse `json:"bookings"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (g *GetBookingsResponse) FromModels(models []model.Booking, totalData, limit int) {
	g.TotalData = totalData
	g.TotalPage = shared.CalculateTotalPage(totalData, limit)

	g.Bookings = make([]BookingResponse, len(models))
	for i, mod := range models {
		g.Bookings[i].FromModel(mod)
	}
}

type BookingEventPayload struct {
	Event         string `json:"event"`
	BookingID     string `json:"booking_id"`
	BookingCode   string `json:"booking_code"`
	RoomID        string `json:"room_id"`
	Email         string `json:"email"`
	Currency      string `json:"currency"`
	AmountMinor   int64  `json:"amount_minor"`
	PaymentStatus string `json:"payment_status"`
	OccurredAt    string `json:"occurred_at"`
}

func NewBookingEventPayload(event string, mod model.Booking) BookingEventPayload {
	return BookingEventPayload{
		Event:         event,
		BookingID:     mod.ID,
		BookingCode:   mod.BookingCode,
		RoomID:        mod.RoomID,
		Email:         mod.Email,
		Currency:      mod.Currency,
		AmountMinor:   mod.AmountMinor,
		PaymentStatus: mod.PaymentStatus,
		OccurredAt:    timezone.Format(timezone.Now(), constant.DateFormat),
	}
}
