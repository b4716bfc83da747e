package handlers

import (
	"agri-assistant/domain"
	"agri-assistant/internal/api/presenters"
	"agri-assistant/pkg/contact"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	ContactHandler interface {
		SendMessage(c *fiber.Ctx) error
	}

	contactHandler struct {
		contactService contact.ContactService
		validator      *validator.Validate
	}
)

func NewContactHandler(contactService contact.ContactService, validator *validator.Validate) ContactHandler {
	return &contactHandler{
		contactService: contactService,
		validator:      validator,
	}
}

func (h *contactHandler) SendMessage(c *fiber.Ctx) error {
	req := new(domain.ContactRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedSendContact, err)
	}

	if err := h.contactService.SendMessage(c.Context(), *req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadGateway, domain.MessageFailedSendContact, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessSendContact)
}
