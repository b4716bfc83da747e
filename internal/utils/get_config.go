package utils

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

type Config struct {
	AppPort string `yaml:"APP_PORT"`

	// Database configuration
	DBUser     string `yaml:"DB_USER"`
	DBName     string `yaml:"DB_NAME"`
	DBPassword string `yaml:"DB_PASSWORD"`
	DBPort     string `yaml:"DB_PORT"`
	DBHost     string `yaml:"DB_HOST"`

	JWTSecret string `yaml:"JWT_SECRET"`

	// Mailing configuration
	AppURL           string `yaml:"APP_URL"`
	SMTPHost         string `yaml:"SMTP_HOST"`
	SMTPPort         string `yaml:"SMTP_PORT"`
	SMTPSenderName   string `yaml:"SMTP_SENDER_NAME"`
	SMTPAuthEmail    string `yaml:"SMTP_AUTH_EMAIL"`
	SMTPAuthPassword string `yaml:"SMTP_AUTH_PASSWORD"`
	ContactInbox     string `yaml:"CONTACT_INBOX"`

	// AWS S3 configuration
	AWSS3Bucket  string `yaml:"AWS_S3_BUCKET"`
	AWSS3Region  string `yaml:"AWS_S3_REGION"`
	AWSAccessKey string `yaml:"AWS_ACCESS_KEY"`
	AWSSecretKey string `yaml:"AWS_SECRET_KEY"`

	// Weather provider
	WeatherAPIURL string `yaml:"WEATHER_API_URL"`
	WeatherAPIKey string `yaml:"WEATHER_API_KEY"`

	// Generative-text provider (OpenAI compatible)
	AdvisoryAPIURL string `yaml:"ADVISORY_API_URL"`
	AdvisoryAPIKey string `yaml:"ADVISORY_API_KEY"`
	AdvisoryModel  string `yaml:"ADVISORY_MODEL"`

	// Disease classifier service, random placeholder when empty
	ClassifierURL string `yaml:"CLASSIFIER_URL"`

	RemoteTimeoutSeconds string `yaml:"REMOTE_TIMEOUT_SECONDS"`

	LogLevel  string `yaml:"LOG_LEVEL"`
	LogFormat string `yaml:"LOG_FORMAT"`
}

var config Config

var defaults = map[string]string{
	"APP_PORT":               "8080",
	"WEATHER_API_URL":        "https://api.openweathermap.org/data/2.5",
	"ADVISORY_API_URL":       "https://open.bigmodel.cn/api/paas/v4",
	"ADVISORY_MODEL":         "glm-4",
	"REMOTE_TIMEOUT_SECONDS": "30",
	"LOG_LEVEL":              "info",
	"LOG_FORMAT":             "text",
}

func (c *Config) fields() map[string]*string {
	return map[string]*string{
		"APP_PORT":               &c.AppPort,
		"DB_USER":                &c.DBUser,
		"DB_NAME":                &c.DBName,
		"DB_PASSWORD":            &c.DBPassword,
		"DB_PORT":                &c.DBPort,
		"DB_HOST":                &c.DBHost,
		"JWT_SECRET":             &c.JWTSecret,
		"APP_URL":                &c.AppURL,
		"SMTP_HOST":              &c.SMTPHost,
		"SMTP_PORT":              &c.SMTPPort,
		"SMTP_SENDER_NAME":       &c.SMTPSenderName,
		"SMTP_AUTH_EMAIL":        &c.SMTPAuthEmail,
		"SMTP_AUTH_PASSWORD":     &c.SMTPAuthPassword,
		"CONTACT_INBOX":          &c.ContactInbox,
		"AWS_S3_BUCKET":          &c.AWSS3Bucket,
		"AWS_S3_REGION":          &c.AWSS3Region,
		"AWS_ACCESS_KEY":         &c.AWSAccessKey,
		"AWS_SECRET_KEY":         &c.AWSSecretKey,
		"WEATHER_API_URL":        &c.WeatherAPIURL,
		"WEATHER_API_KEY":        &c.WeatherAPIKey,
		"ADVISORY_API_URL":       &c.AdvisoryAPIURL,
		"ADVISORY_API_KEY":       &c.AdvisoryAPIKey,
		"ADVISORY_MODEL":         &c.AdvisoryModel,
		"CLASSIFIER_URL":         &c.ClassifierURL,
		"REMOTE_TIMEOUT_SECONDS": &c.RemoteTimeoutSeconds,
		"LOG_LEVEL":              &c.LogLevel,
		"LOG_FORMAT":             &c.LogFormat,
	}
}

// LoadConfig reads config.yaml, then fills every empty key from the
// environment (a .env file is loaded first when present) and finally from
// the built-in defaults.
func LoadConfig() {
	loadConfigFrom("config.yaml", ".env")
}

func loadConfigFrom(yamlPath, envPath string) {
	config = Config{}

	file, err := os.ReadFile(yamlPath)
	if err != nil {
		log.Printf("Error reading YAML file: %s\n", err)
	} else if err := yaml.Unmarshal(file, &config); err != nil {
		log.Printf("Error parsing YAML file: %s\n", err)
	}

	if err := godotenv.Load(envPath); err != nil && !os.IsNotExist(err) {
		log.Printf("Error loading env file: %s\n", err)
	}

	for key, field := range config.fields() {
		if *field != "" {
			continue
		}
		if value := os.Getenv(key); value != "" {
			*field = value
			continue
		}
		*field = defaults[key]
	}
}

func GetConfig(key string) string {
	field, ok := config.fields()[key]
	if !ok {
		return ""
	}
	return *field
}

// GetConfigInt returns the integer value of key, or fallback when the value
// is missing or not a number.
func GetConfigInt(key string, fallback int) int {
	n, err := strconv.Atoi(GetConfig(key))
	if err != nil {
		return fallback
	}
	return n
}
