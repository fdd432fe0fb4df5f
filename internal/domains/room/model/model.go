package model

import "bamf/shared/model"

const (
	TableName  = "rooms"
	EntityName = "room"

	FieldID            = "id"
	FieldName          = "name"
	FieldDescription   = "description"
	FieldPricePerNight = "price_per_night"
	FieldCurrency      = "currency"
	FieldCapacity      = "capacity"
	FieldImage         = "image"
	FieldActive        = "active"
)

type Room struct {
	ID            string  `db:"id"`
	Name          string  `db:"name"`
	Description   string  `db:"description"`
	PricePerNight float64 `db:"price_per_night"`
	Currency      string  `db:"currency"`
	Capacity      int     `db:"capacity"`
	Image         string  `db:"image"`
	Active        bool    `db:"active"`
	model.Metadata
}
