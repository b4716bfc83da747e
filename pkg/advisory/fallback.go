package advisory

import (
	"agri-assistant/domain"
	"strings"
)

var FallbackWeather = domain.WeatherSnapshot{
	Description: "clear sky",
	Temp:        25,
	Humidity:    60,
	WindSpeed:   3.5,
}

const (
	adviceMaizeDisease = "For maize diseases, common issues include maize streak virus and gray leaf spot. To prevent these: 1) Use certified seeds, 2) Practice crop rotation, 3) Apply fungicides when necessary, 4) Remove infected plants immediately. If you see yellow streaks on leaves, it might be maize streak virus - consult your local extension officer."
	adviceSoil         = "Soil fertility is crucial for good yields. Test your soil pH first - most crops prefer pH 6.0-7.0. Use organic matter like compost, and consider balanced NPK fertilizers. For maize, apply 100-150kg/ha of compound fertilizer. Always follow recommended application rates to avoid nutrient burn."
	adviceWater        = "Proper irrigation is essential, especially during dry spells. Maize needs about 500-800mm of water throughout the growing season. Water deeply but infrequently to encourage deep root growth. Consider drip irrigation for water efficiency. Monitor soil moisture regularly."
	advicePest         = "Integrated Pest Management (IPM) is recommended. Common maize pests include stem borers, aphids, and armyworms. Use neem-based products, introduce beneficial insects, and practice companion planting. Always identify the pest correctly before applying pesticides."
	adviceDefault      = "That's a great question about farming! Based on Malawi's agricultural context, I'd recommend consulting with your local agricultural extension officer for specific advice tailored to your location and current season. They can provide the most accurate and up-to-date information for your farming needs."
)

// FallbackAdvice picks a canned paragraph by keyword. Rules are checked in
// order and the first match wins.
func FallbackAdvice(question string) string {
	q := strings.ToLower(question)

	switch {
	case strings.Contains(q, "maize") && strings.Contains(q, "disease"):
		return adviceMaizeDisease
	case strings.Contains(q, "fertilizer") || strings.Contains(q, "soil"):
		return adviceSoil
	case strings.Contains(q, "water") || strings.Contains(q, "irrigation"):
		return adviceWater
	case strings.Contains(q, "pest") || strings.Contains(q, "insect"):
		return advicePest
	default:
		return adviceDefault
	}
}
