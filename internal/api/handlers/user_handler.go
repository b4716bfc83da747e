package handlers

import (
	"agri-assistant/domain"
	"agri-assistant/internal/api/presenters"
	"agri-assistant/internal/middleware"
	"agri-assistant/pkg/session"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	UserHandler interface {
		Register(c *fiber.Ctx) error
		Login(c *fiber.Ctx) error
		Logout(c *fiber.Ctx) error
		Me(c *fiber.Ctx) error
	}

	userHandler struct {
		validator *validator.Validate
	}
)

func NewUserHandler(validator *validator.Validate) UserHandler {
	return &userHandler{validator: validator}
}

func (h *userHandler) Register(c *fiber.Ctx) error {
	req := new(domain.RegisterRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if file, err := c.FormFile("profile_image"); err == nil {
		req.ProfileImage = file
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedRegister, err)
	}

	sc := middleware.GetSession(c)
	res := sc.Signup(c.Context(), session.SignupInput{
		Email:        req.Email,
		Password:     req.Password,
		Name:         req.Name,
		Location:     req.Location,
		Phone:        req.Phone,
		ProfileImage: req.ProfileImage,
	})
	if !res.Success {
		// the account and session survive a failed profile write
		if sc.State() == session.StateAuthenticated {
			return presenters.ErrorResponseWithData(c, fiber.StatusBadRequest, domain.MessageFailedRegister, domain.AuthResponse{
				Token: sc.Token(),
				User:  sc.User(),
			}, errors.New(res.Error))
		}
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedRegister, errors.New(res.Error))
	}

	return presenters.SuccessResponse(c, domain.AuthResponse{
		Token: sc.Token(),
		User:  sc.User(),
	}, fiber.StatusCreated, domain.MessageSuccessRegister)
}

func (h *userHandler) Login(c *fiber.Ctx) error {
	req := new(domain.LoginRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedLogin, err)
	}

	sc := middleware.GetSession(c)
	res := sc.Login(c.Context(), req.Email, req.Password)
	if !res.Success {
		return presenters.ErrorResponse(c, fiber.StatusUnauthorized, domain.MessageFailedLogin, errors.New(res.Error))
	}

	return presenters.SuccessResponse(c, domain.AuthResponse{
		Token: sc.Token(),
		User:  sc.User(),
	}, fiber.StatusOK, domain.MessageSuccessLogin)
}

func (h *userHandler) Logout(c *fiber.Ctx) error {
	sc := middleware.GetSession(c)
	sc.Logout(c.Context())
	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessLogout)
}

func (h *userHandler) Me(c *fiber.Ctx) error {
	user := sessionUser(c)
	return presenters.SuccessResponse(c, user, fiber.StatusOK, domain.MessageSuccessGetMe)
}
