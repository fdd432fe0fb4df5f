package dto

import (
	"mime/multipart"

	"bamf/internal/domains/room/model"
	"bamf/shared"
	"bamf/shared/constant"
	gDto "bamf/shared/dto"
	gModel "bamf/shared/model"
	"bamf/shared/timezone"

	"github.com/google/uuid"
)

type CreateRoomRequest struct {
	Name          string                `json:"name"            validate:"required,max=100"`
	Description   string                `json:"description"     validate:"omitempty,max=2000"`
	PricePerNight float64               `json:"price_per_night" validate:"required,gte=0"`
	Currency      string                `json:"currency"        validate:"omitempty,len=3"`
	Capacity      int                   `json:"capacity"        validate:"omitempty,min=0"`
	Image         *multipart.FileHeader `json:"image"           validate:"omitempty,mimetypes=image/png image/jpg image/jpeg,maxfilesize=1"`
	ImageFile     multipart.File        `json:"-"`
	Active        *bool                 `json:"active"          validate:"omitempty"`
}

func (c *CreateRoomRequest) ToModel(user string, imageURL string) model.Room {
	active := true
	if c.Active != nil {
		active = *c.Active
	}

	currency := c.Currency
	if currency == "" {
		currency = constant.DefaultCurrency
	}

	return model.Room{
		ID:            uuid.NewString(),
		Name:          c.Name,
		Description:   c.Description,
		PricePerNight: c.PricePerNight,
		Currency:      currency,
		Capacity:      c.Capacity,
		Image:         imageURL,
		Active:        active,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdateRoomRequest struct {
	Name          string                `db:"name"            json:"name"            validate:"omitempty,max=100"`
	Description   string                `db:"description"     json:"description"     validate:"omitempty,max=2000"`
	PricePerNight *float64              `db:"price_per_night" json:"price_per_night" validate:"omitempty,gte=0"`
	Currency      string                `db:"currency"        json:"currency"        validate:"omitempty,len=3"`
	Capacity      *int                  `db:"capacity"        json:"capacity"        validate:"omitempty,min=0"`
	Image         *multipart.FileHeader `json:"image"         validate:"omitempty,mimetypes=image/png image/jpg image/jpeg,maxfilesize=1"`
	ImageFile     multipart.File        `json:"-"`
	Active        *bool                 `db:"active"          json:"active"          validate:"omitempty"`
}

type RoomResponse struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Description   string  `json:"description"`
	PricePerNight float64 `json:"price_per_night"`
	Currency      string  `json:"currency"`
	Capacity      int     `json:"capacity"`
	Image         string  `json:"image"`
	Active        bool    `json:"active"`
	gDto.Metadata
}

func (r *RoomResponse) FromModel(model model.Room) {
	r.ID = model.ID
	r.Name = model.Name
	r.Description = model.Description
	r.PricePerNight = model.PricePerNight
	r.Currency = model.Currency
	r.Capacity = model.Capacity
	r.Image = model.Image
	r.Active = model.Active
	r.Metadata.FromModel(model.Metadata)
}

type GetRoomsResponse struct {
	Rooms     []RoomResponse `json:"rooms"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetRoomsResponse) FromModels(models []model.Room, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Rooms = make([]RoomResponse, len(models))
	for i, mod := range models {
		r.Rooms[i].FromModel(mod)
	}
}
