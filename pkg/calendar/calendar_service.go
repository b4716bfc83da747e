package calendar

import (
	"agri-assistant/domain"
	"agri-assistant/pkg/advisory"
	"context"
	"time"
)

var (
	cropsEarlyYear = []string{"Maize (late)", "Beans", "Groundnuts"}
	cropsMarch     = []string{"Maize (late)", "Rice", "Tobacco"}
	cropsDrySeason = []string{"Maize", "Rice", "Tobacco"}
	cropsLateYear  = []string{"Maize (early)", "Beans", "Groundnuts"}
)

var months = [12]domain.PlantingMonth{
	{Number: 1, Crops: cropsEarlyYear, Activities: []string{"Land preparation", "Planting"}},
	{Number: 2, Crops: cropsEarlyYear, Activities: []string{"Planting", "Weeding"}},
	{Number: 3, Crops: cropsMarch, Activities: []string{"Planting", "Irrigation setup"}},
	{Number: 4, Crops: cropsDrySeason, Activities: []string{"Planting", "Fertilizer application"}},
	{Number: 5, Crops: cropsDrySeason, Activities: []string{"Planting", "Pest control"}},
	{Number: 6, Crops: cropsDrySeason, Activities: []string{"Planting", "Weeding"}},
	{Number: 7, Crops: cropsDrySeason, Activities: []string{"Harvesting", "Storage preparation"}},
	{Number: 8, Crops: cropsDrySeason, Activities: []string{"Harvesting", "Post-harvest"}},
	{Number: 9, Crops: cropsDrySeason, Activities: []string{"Harvesting", "Land preparation"}},
	{Number: 10, Crops: cropsLateYear, Activities: []string{"Planting", "Weeding"}},
	{Number: 11, Crops: cropsLateYear, Activities: []string{"Planting", "Irrigation"}},
	{Number: 12, Crops: cropsLateYear, Activities: []string{"Planting", "Fertilizer"}},
}

type (
	WeatherFetcher interface {
		FetchWeather(ctx context.Context, lat float64, lon float64) advisory.Result[domain.WeatherSnapshot]
	}

	CalendarService interface {
		GetCalendar(ctx context.Context) []domain.PlantingMonth
		GetMonth(ctx context.Context, month int) (domain.PlantingMonth, error)
		GetDay(ctx context.Context, date string, lat float64, lon float64) (domain.PlantingDayResponse, error)
	}

	calendarService struct {
		weather WeatherFetcher
	}
)

func NewCalendarService(weather WeatherFetcher) CalendarService {
	return &calendarService{weather: weather}
}

func monthInfo(month int) domain.PlantingMonth {
	m := months[month-1]
	m.Month = time.Month(month).String()
	m.Crops = append([]string(nil), m.Crops...)
	m.Activities = append([]string(nil), m.Activities...)
	return m
}

func (s *calendarService) GetCalendar(ctx context.Context) []domain.PlantingMonth {
	out := make([]domain.PlantingMonth, 0, len(months))
	for i := 1; i <= len(months); i++ {
		out = append(out, monthInfo(i))
	}
	return out
}

func (s *calendarService) GetMonth(ctx context.Context, month int) (domain.PlantingMonth, error) {
	if month < 1 || month > 12 {
		return domain.PlantingMonth{}, domain.ErrInvalidMonth
	}
	return monthInfo(month), nil
}

// GetDay returns the planting info for the date's month along with the
// current weather at lat/lon.
func (s *calendarService) GetDay(ctx context.Context, date string, lat float64, lon float64) (domain.PlantingDayResponse, error) {
	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return domain.PlantingDayResponse{}, domain.ErrInvalidDate
	}
	if !advisory.ValidCoordinates(lat, lon) {
		return domain.PlantingDayResponse{}, domain.ErrInvalidCoordinates
	}

	return domain.PlantingDayResponse{
		Date:     day.Format("2006-01-02"),
		Planting: monthInfo(int(day.Month())),
		Weather:  advisory.ToWeatherResponse(s.weather.FetchWeather(ctx, lat, lon)),
	}, nil
}
