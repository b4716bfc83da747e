package handlers

import (
	"agri-assistant/domain"
	"agri-assistant/internal/api/presenters"
	"agri-assistant/pkg/scan"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	ScanHandler interface {
		ScanCrop(c *fiber.Ctx) error
		GetScanHistory(c *fiber.Ctx) error
		GetScanDetails(c *fiber.Ctx) error
	}

	scanHandler struct {
		scanService scan.ScanService
		validator   *validator.Validate
	}
)

func NewScanHandler(scanService scan.ScanService, validator *validator.Validate) ScanHandler {
	return &scanHandler{
		scanService: scanService,
		validator:   validator,
	}
}

func (h *scanHandler) ScanCrop(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	form, err := c.MultipartForm()
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	files := form.File["image"]
	if len(files) != 1 {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedScanCrop, domain.ErrNoImageSelected)
	}

	req := domain.ScanCropRequest{Image: files[0]}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	res, err := h.scanService.ScanCrop(c.Context(), req, userID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidImageFormat), errors.Is(err, domain.ErrNoImageSelected):
			return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedScanCrop, err)
		default:
			return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedScanCrop, nil)
		}
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessScanCrop)
}

func (h *scanHandler) GetScanHistory(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	page, limit := pageParams(c)

	scans, count, err := h.scanService.GetScanHistory(c.Context(), userID, page, limit)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedGetScanHistory, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{
		"items":      scans,
		"pagination": domain.NewPagination(page, limit, count),
	}, fiber.StatusOK, domain.MessageSuccessGetScanHistory)
}

func (h *scanHandler) GetScanDetails(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	scanID, ok := idParam(c)
	if !ok {
		return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedGetScan, domain.ErrScanNotFound)
	}

	res, err := h.scanService.GetScanByID(c.Context(), scanID, userID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrScanNotFound):
			return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedGetScan, err)
		case errors.Is(err, domain.ErrUnauthorizedScan):
			return presenters.ErrorResponse(c, fiber.StatusForbidden, domain.MessageFailedGetScan, err)
		default:
			return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedGetScan, nil)
		}
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetScan)
}
