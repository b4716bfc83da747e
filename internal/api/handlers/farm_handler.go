package handlers

import (
	"agri-assistant/domain"
	"agri-assistant/internal/api/presenters"
	"agri-assistant/pkg/advisory"
	"agri-assistant/pkg/calendar"
	"agri-assistant/pkg/market"
	"strconv"

	"github.com/gofiber/fiber/v2"
)

type (
	FarmHandler interface {
		GetWeather(c *fiber.Ctx) error
		GetMarketPrices(c *fiber.Ctx) error
		GetCalendar(c *fiber.Ctx) error
		GetCalendarMonth(c *fiber.Ctx) error
		GetCalendarDay(c *fiber.Ctx) error
	}

	farmHandler struct {
		weather         calendar.WeatherFetcher
		marketService   market.MarketService
		calendarService calendar.CalendarService
	}
)

func NewFarmHandler(weather calendar.WeatherFetcher, marketService market.MarketService, calendarService calendar.CalendarService) FarmHandler {
	return &farmHandler{
		weather:         weather,
		marketService:   marketService,
		calendarService: calendarService,
	}
}

func (h *farmHandler) GetWeather(c *fiber.Ctx) error {
	lat, lon, err := coordinates(c)
	if err != nil || !advisory.ValidCoordinates(lat, lon) {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetWeather, domain.ErrInvalidCoordinates)
	}

	res := advisory.ToWeatherResponse(h.weather.FetchWeather(c.Context(), lat, lon))
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetWeather)
}

func (h *farmHandler) GetMarketPrices(c *fiber.Ctx) error {
	filter := new(domain.MarketPriceFilter)
	if err := c.QueryParser(filter); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	prices, err := h.marketService.GetPrices(c.Context(), *filter)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedGetMarketPrices, err)
	}

	return presenters.SuccessResponse(c, prices, fiber.StatusOK, domain.MessageSuccessGetMarketPrices)
}

func (h *farmHandler) GetCalendar(c *fiber.Ctx) error {
	return presenters.SuccessResponse(c, h.calendarService.GetCalendar(c.Context()), fiber.StatusOK, domain.MessageSuccessGetCalendar)
}

func (h *farmHandler) GetCalendarMonth(c *fiber.Ctx) error {
	month, err := strconv.Atoi(c.Params("month"))
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetCalendar, domain.ErrInvalidMonth)
	}

	res, err := h.calendarService.GetMonth(c.Context(), month)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetCalendar, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetCalendar)
}

func (h *farmHandler) GetCalendarDay(c *fiber.Ctx) error {
	lat, lon, err := coordinates(c)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetCalendar, err)
	}

	res, err := h.calendarService.GetDay(c.Context(), c.Query("date"), lat, lon)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetCalendar, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetCalendar)
}
