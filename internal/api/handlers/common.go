package handlers

import (
	"agri-assistant/domain"
	"agri-assistant/internal/middleware"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// sessionUser is only valid behind AuthMiddleware.
func sessionUser(c *fiber.Ctx) domain.SessionUser {
	if sc := middleware.GetSession(c); sc != nil {
		if u := sc.User(); u != nil {
			return *u
		}
	}
	return domain.SessionUser{}
}

func pageParams(c *fiber.Ctx) (int, int) {
	page, err := strconv.Atoi(c.Query("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}

	limit, err := strconv.Atoi(c.Query("limit", "20"))
	if err != nil || limit < 1 || limit > 100 {
		limit = 20
	}
	return page, limit
}

func coordinates(c *fiber.Ctx) (float64, float64, error) {
	lat, err := strconv.ParseFloat(c.Query("lat"), 64)
	if err != nil {
		return 0, 0, domain.ErrInvalidCoordinates
	}
	lon, err := strconv.ParseFloat(c.Query("lon"), 64)
	if err != nil {
		return 0, 0, domain.ErrInvalidCoordinates
	}
	return lat, lon, nil
}

// idParam returns the :id route param when it is a UUID.
func idParam(c *fiber.Ctx) (string, bool) {
	id := c.Params("id")
	if _, err := uuid.Parse(id); err != nil {
		return "", false
	}
	return id, true
}
