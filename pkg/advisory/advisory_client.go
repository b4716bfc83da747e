// Package advisory wraps the weather and advice providers. Every failure
// is answered with a static fallback marked Degraded.
package advisory

import (
	"agri-assistant/domain"
	"agri-assistant/internal/utils"
	"agri-assistant/internal/utils/logger"
	"agri-assistant/internal/utils/metrics"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
)

const (
	SystemPrompt = "You are an expert agricultural advisor specializing in farming practices in Malawi. Provide practical, evidence-based advice for farmers. Focus on sustainable farming methods, local crop varieties, and Malawi-specific agricultural challenges."

	adviceMaxTokens   = 1000
	adviceTemperature = 0.7

	providerWeather = "weather"
	providerAdvice  = "advice"
)

var (
	ErrMissingAPIKey = errors.New("provider api key not configured")
	ErrEmptyWeather  = errors.New("weather provider returned no conditions")
	ErrNoChoices     = errors.New("advice provider returned no choices")
)

type (
	Config struct {
		WeatherURL    string
		WeatherKey    string
		AdvisoryURL   string
		AdvisoryKey   string
		AdvisoryModel string
		Timeout       time.Duration
	}

	Client interface {
		FetchWeather(ctx context.Context, lat float64, lon float64) Result[domain.WeatherSnapshot]
		FetchAdvice(ctx context.Context, question string, transcript []domain.ChatMessage) Result[string]
	}

	client struct {
		config     Config
		httpClient *http.Client
		chat       *openai.Client
		log        *logger.Logger
	}
)

func LoadConfig() Config {
	return Config{
		WeatherURL:    utils.GetConfig("WEATHER_API_URL"),
		WeatherKey:    utils.GetConfig("WEATHER_API_KEY"),
		AdvisoryURL:   utils.GetConfig("ADVISORY_API_URL"),
		AdvisoryKey:   utils.GetConfig("ADVISORY_API_KEY"),
		AdvisoryModel: utils.GetConfig("ADVISORY_MODEL"),
		Timeout:       time.Duration(utils.GetConfigInt("REMOTE_TIMEOUT_SECONDS", 30)) * time.Second,
	}
}

func NewClient(config Config, log *logger.Logger) Client {
	httpClient := &http.Client{Timeout: config.Timeout}

	chatConfig := openai.DefaultConfig(config.AdvisoryKey)
	if config.AdvisoryURL != "" {
		chatConfig.BaseURL = strings.TrimRight(config.AdvisoryURL, "/")
	}
	chatConfig.HTTPClient = httpClient

	return &client{
		config:     config,
		httpClient: httpClient,
		chat:       openai.NewClientWithConfig(chatConfig),
		log:        log,
	}
}

func (c *client) FetchWeather(ctx context.Context, lat float64, lon float64) Result[domain.WeatherSnapshot] {
	snapshot, err := c.fetchWeather(ctx, lat, lon)
	if err != nil {
		c.degrade(ctx, providerWeather, err)
		return Degraded(FallbackWeather, err)
	}
	return Ok(snapshot)
}

func (c *client) fetchWeather(ctx context.Context, lat float64, lon float64) (domain.WeatherSnapshot, error) {
	if c.config.WeatherKey == "" {
		return domain.WeatherSnapshot{}, ErrMissingAPIKey
	}

	query := url.Values{}
	query.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	query.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))
	query.Set("appid", c.config.WeatherKey)
	query.Set("units", "metric")
	weatherURL := strings.TrimRight(c.config.WeatherURL, "/") + "/weather?" + query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, weatherURL, nil)
	if err != nil {
		return domain.WeatherSnapshot{}, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.WeatherSnapshot{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		bodyBytes, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return domain.WeatherSnapshot{}, fmt.Errorf("weather API error: %s - %s", resp.Status, string(bodyBytes))
	}

	var weatherResp struct {
		Weather []struct {
			Description string `json:"description"`
		} `json:"weather"`
		Main struct {
			Temp     float64 `json:"temp"`
			Humidity float64 `json:"humidity"`
		} `json:"main"`
		Wind struct {
			Speed float64 `json:"speed"`
		} `json:"wind"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&weatherResp); err != nil {
		return domain.WeatherSnapshot{}, fmt.Errorf("decode weather: %w", err)
	}
	if len(weatherResp.Weather) == 0 {
		return domain.WeatherSnapshot{}, ErrEmptyWeather
	}

	return domain.WeatherSnapshot{
		Description: weatherResp.Weather[0].Description,
		Temp:        weatherResp.Main.Temp,
		Humidity:    weatherResp.Main.Humidity,
		WindSpeed:   weatherResp.Wind.Speed,
	}, nil
}

func (c *client) FetchAdvice(ctx context.Context, question string, transcript []domain.ChatMessage) Result[string] {
	answer, err := c.fetchAdvice(ctx, question, transcript)
	if err != nil {
		c.degrade(ctx, providerAdvice, err)
		return Degraded(FallbackAdvice(question), err)
	}
	return Ok(answer)
}

func (c *client) fetchAdvice(ctx context.Context, question string, transcript []domain.ChatMessage) (string, error) {
	if c.config.AdvisoryKey == "" {
		return "", ErrMissingAPIKey
	}

	messages := make([]openai.ChatCompletionMessage, 0, len(transcript)+2)
	messages = append(messages, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleSystem, Content: SystemPrompt})
	for _, m := range transcript {
		messages = append(messages, openai.ChatCompletionMessage{Role: m.Role, Content: m.Content})
	}
	messages = append(messages, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser, Content: question})

	resp, err := c.chat.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.config.AdvisoryModel,
		Messages:    messages,
		MaxTokens:   adviceMaxTokens,
		Temperature: adviceTemperature,
	})
	if err != nil {
		return "", fmt.Errorf("advice API call failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", ErrNoChoices
	}
	return resp.Choices[0].Message.Content, nil
}

func (c *client) degrade(ctx context.Context, provider string, reason error) {
	metrics.RemoteFallbacksTotal.WithLabelValues(provider).Inc()
	c.log.WarnCtx(ctx, "remote call degraded to fallback", logger.Fields{
		"provider": provider,
		"error":    reason.Error(),
	})
}
