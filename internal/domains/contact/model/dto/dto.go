package dto

import (
	"strings"

	"bamf/internal/domains/contact/model"
	"bamf/shared"
	gDto "bamf/shared/dto"
	gModel "bamf/shared/model"
	"bamf/shared/timezone"

	"github.com/google/uuid"
)

type CreateContactMessageRequest struct {
	FullName string `json:"full_name" validate:"required,max=200"`
	Email    string `json:"email"     validate:"required,email"`
	Subject  string `json:"subject"   validate:"omitempty,max=200"`
	Message  string `json:"message"   validate:"required,max=5000"`
}

func (c *CreateContactMessageRequest) ToModel() model.ContactMessage {
	email := strings.ToLower(strings.TrimSpace(c.Email))

	return model.ContactMessage{
		ID:       uuid.NewString(),
		FullName: strings.TrimSpace(c.FullName),
		Email:    email,
		Subject:  c.Subject,
		Message:  c.Message,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  email,
			ModifiedBy: email,
		},
	}
}

type ContactMessageResponse struct {
	ID       string `json:"id"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Subject  string `json:"subject"`
	Message  string `json:"message"`
	gDto.Metadata
}

func (c *ContactMessageResponse) FromModel(mod model.ContactMessage) {
	c.ID = mod.ID
	c.FullName = mod.FullName
	c.Email = mod.Email
	c.Subject = mod.Subject
	c.Message = mod.Message
	c.Metadata.FromModel(mod.Metadata)
}

type GetContactMessagesResponse struct {
	Messages  []ContactMessageResponse `json:"messages"`
	TotalPage int                      `json:"total_page"`
	TotalData int                      `json:"total_data"`
}

func (g *GetContactMessagesResponse) FromModels(models []model.ContactMessage, totalData, limit int) {
	g.TotalData = totalData
	g.TotalPage = shared.CalculateTotalPage(totalData, limit)

	g.Messages = make([]ContactMessageResponse, len(models))
	for i, mod := range models {
		g.Messages[i].FromModel(mod)
	}
}
