package model

import "bamf/shared/model"

const (
	TableName  = "contact_messages"
	EntityName = "contact_message"

	FieldID       = "id"
	FieldFullName = "full_name"
	FieldEmail    = "email"
	FieldSubject  = "subject"
	FieldMessage  = "message"
)

type ContactMessage struct {
	ID       string `db:"id"`
	FullName string `db:"full_name"`
	Email    string `db:"email"`
	Subject  string `db:"subject"`
	Message  string `db:"message"`
	model.Metadata
}
