package handlers

import (
	"agri-assistant/domain"
	"agri-assistant/internal/api/presenters"
	"agri-assistant/pkg/forum"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	ForumHandler interface {
		GetPosts(c *fiber.Ctx) error
		CreatePost(c *fiber.Ctx) error
		LikePost(c *fiber.Ctx) error
	}

	forumHandler struct {
		forumService forum.ForumService
		validator    *validator.Validate
	}
)

func NewForumHandler(forumService forum.ForumService, validator *validator.Validate) ForumHandler {
	return &forumHandler{
		forumService: forumService,
		validator:    validator,
	}
}

func (h *forumHandler) GetPosts(c *fiber.Ctx) error {
	posts, err := h.forumService.GetPosts(c.Context())
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedGetPosts, err)
	}

	return presenters.SuccessResponse(c, posts, fiber.StatusOK, domain.MessageSuccessGetPosts)
}

func (h *forumHandler) CreatePost(c *fiber.Ctx) error {
	req := new(domain.CreatePostRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreatePost, err)
	}

	post, err := h.forumService.CreatePost(c.Context(), *req, sessionUser(c))
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreatePost, err)
	}

	return presenters.SuccessResponse(c, post, fiber.StatusCreated, domain.MessageSuccessCreatePost)
}

func (h *forumHandler) LikePost(c *fiber.Ctx) error {
	postID, ok := idParam(c)
	if !ok {
		return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedLikePost, domain.ErrPostNotFound)
	}

	res, err := h.forumService.LikePost(c.Context(), postID)
	if err != nil {
		if errors.Is(err, domain.ErrPostNotFound) {
			return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedLikePost, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedLikePost, nil)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessLikePost)
}
