package advisory

import "agri-assistant/domain"

func ValidCoordinates(lat float64, lon float64) bool {
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}

func ToWeatherResponse(res Result[domain.WeatherSnapshot]) domain.WeatherResponse {
	return domain.WeatherResponse{
		Weather:  res.Value,
		Degraded: res.Degraded(),
	}
}
