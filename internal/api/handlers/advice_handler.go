package handlers

import (
	"agri-assistant/domain"
	"agri-assistant/internal/api/presenters"
	"agri-assistant/pkg/advice"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	AdviceHandler interface {
		GetConversation(c *fiber.Ctx) error
		AskQuestion(c *fiber.Ctx) error
		ClearConversation(c *fiber.Ctx) error
	}

	adviceHandler struct {
		adviceService advice.AdviceService
		validator     *validator.Validate
	}
)

func NewAdviceHandler(adviceService advice.AdviceService, validator *validator.Validate) AdviceHandler {
	return &adviceHandler{
		adviceService: adviceService,
		validator:     validator,
	}
}

func (h *adviceHandler) GetConversation(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	res, err := h.adviceService.GetConversation(c.Context(), userID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedGetConversation, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetConversation)
}

func (h *adviceHandler) AskQuestion(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	req := new(domain.AskQuestionRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedAskQuestion, err)
	}

	res, err := h.adviceService.AskQuestion(c.Context(), *req, userID)
	if err != nil {
		if errors.Is(err, domain.ErrEmptyQuestion) {
			return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedAskQuestion, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedAskQuestion, nil)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessAskQuestion)
}

func (h *adviceHandler) ClearConversation(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	res, err := h.adviceService.ClearConversation(c.Context(), userID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedClearConversation, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessClearConversation)
}
