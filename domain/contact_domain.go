package domain

import "errors"

var (
	MessageSuccessSendContact = "message sent successfully"
	MessageFailedSendContact  = "failed to send message"

	ErrContactInboxNotConfigured = errors.New("contact inbox not configured")
)

type ContactRequest struct {
	Name    string `json:"name" validate:"required,max=100"`
	Email   string `json:"email" validate:"required,email"`
	Subject string `json:"subject" validate:"required,max=200"`
	Message string `json:"message" validate:"required,max=5000"`
}
