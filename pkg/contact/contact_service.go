package contact

import (
	"agri-assistant/domain"
	"agri-assistant/internal/utils/mailing"
	"context"
	"fmt"
	"html"
	"strings"
)

type (
	ContactService interface {
		SendMessage(ctx context.Context, req domain.ContactRequest) error
	}

	contactService struct {
		mailer mailing.Mailer
		inbox  string
	}
)

func NewContactService(mailer mailing.Mailer, inbox string) ContactService {
	return &contactService{
		mailer: mailer,
		inbox:  inbox,
	}
}

// SendMessage forwards the form to the contact inbox with Reply-To set to
// the sender.
func (s *contactService) SendMessage(ctx context.Context, req domain.ContactRequest) error {
	if s.inbox == "" {
		return domain.ErrContactInboxNotConfigured
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	subject := "[Contact] " + strings.TrimSpace(req.Subject)
	body := fmt.Sprintf(
		"<p><b>From:</b> %s &lt;%s&gt;</p><p><b>Subject:</b> %s</p><p>%s</p>",
		html.EscapeString(req.Name),
		html.EscapeString(req.Email),
		html.EscapeString(req.Subject),
		strings.ReplaceAll(html.EscapeString(req.Message), "\n", "<br>"),
	)

	if err := s.mailer.SendMail(s.inbox, req.Email, subject, body); err != nil {
		return fmt.Errorf("send contact mail: %w", err)
	}
	return nil
}
