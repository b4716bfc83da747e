package domain

import (
	"errors"
	"time"
)

var (
	MessageSuccessGetWeather      = "weather retrieved successfully"
	MessageSuccessGetMarketPrices = "market prices retrieved successfully"
	MessageSuccessGetCalendar     = "planting calendar retrieved successfully"
	MessageSuccessGetDashboard    = "dashboard retrieved successfully"

	MessageFailedGetWeather      = "failed to retrieve weather"
	MessageFailedGetMarketPrices = "Failed to load market prices. Please try again."
	MessageFailedGetCalendar     = "failed to retrieve planting calendar"
	MessageFailedGetDashboard    = "failed to retrieve dashboard"

	ErrInvalidCoordinates = errors.New("invalid coordinates")
	ErrInvalidMonth       = errors.New("month must be between 1 and 12")
	ErrInvalidDate        = errors.New("invalid date, expected YYYY-MM-DD")
)

type (
	WeatherSnapshot struct {
		Description string  `json:"description"`
		Temp        float64 `json:"temp"`
		Humidity    float64 `json:"humidity"`
		WindSpeed   float64 `json:"windSpeed"`
	}

	WeatherResponse struct {
		Weather  WeatherSnapshot `json:"weather"`
		Degraded bool            `json:"degraded"`
	}

	MarketPrice struct {
		Crop   string    `json:"crop"`
		Market string    `json:"market"`
		Price  float64   `json:"price"`
		Unit   string    `json:"unit"`
		Date   time.Time `json:"date"`
	}

	MarketPriceFilter struct {
		Crop   string `query:"crop"`
		Market string `query:"market"`
	}

	PlantingMonth struct {
		Number     int      `json:"number"`
		Month      string   `json:"month"`
		Crops      []string `json:"crops"`
		Activities []string `json:"activities"`
	}

	PlantingDayResponse struct {
		Date     string          `json:"date"`
		Planting PlantingMonth   `json:"planting"`
		Weather  WeatherResponse `json:"weather"`
	}

	DashboardResponse struct {
		Stats       ProfileStatsResponse `json:"stats"`
		RecentScans []ScanResultResponse `json:"recent_scans"`
		Weather     WeatherResponse      `json:"weather"`
		Location    string               `json:"location"`
	}
)
