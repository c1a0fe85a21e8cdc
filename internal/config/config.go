package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Database     DatabaseConfig
	JWT          JWTConfig
	App          AppConfig
	OAuth2Google OAuth2GoogleConfig
	Geocoding    GeocodingConfig
	Planning     PlanningConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret            string
	RefreshExpiration string
	AccessExpiration  string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port        int
	Env         string
	LogLevel    string
	FrontendURL string
}

type OAuth2GoogleConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
	Scopes       []string
}

// GeocodingConfig holds the address resolution settings (DAWA).
type GeocodingConfig struct {
	BaseURL     string
	MaxAttempts int
}

// PlanningConfig holds the tunables of the scheduling engine. The weights and
// constants are deliberately configurable so that a deployment can adjust
// them without a rebuild.
type PlanningConfig struct {
	LoadWeight             float64
	DistanceWeight         float64
	DistancePenaltyPerKm   float64
	DistancePenaltyCapKm   float64
	TravelMinutesPerKm     float64
	DefaultWorkRadiusKm    float64
	DefaultDayStart        string
	DefaultDayEnd          string
	DefaultDurationMinutes int
	BaseScore              float64
	MaxScore               float64
}

func Load() (*Config, error) {
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found, relying on environment")
	}

	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "fensterhq-fieldservice"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:        appPort,
		Env:         getEnv("APP_ENV", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		FrontendURL: getEnv("FRONTEND_URL", "http://localhost:3000"),
	}

	// JWT configuration
	config.JWT = JWTConfig{
		Secret:            getEnv("JWT_SECRET_KEY", ""),
		RefreshExpiration: getEnv("JWT_REFRESH_EXPIRATION_TIME", "168h"),
		AccessExpiration:  getEnv("JWT_ACCESS_EXPIRATION_TIME", "1h"),
	}

	// OAuth2 Google configuration
	config.OAuth2Google = OAuth2GoogleConfig{
		ClientID:     getEnv("CLIENT_ID", ""),
		ClientSecret: getEnv("CLIENT_SECRET", ""),
		RedirectURL:  getEnv("REDIRECT_URL", ""),
		Scopes:       getEnvSlice("SCOPES"),
	}

	// Geocoding configuration
	geocodeAttempts, err := strconv.Atoi(getEnv("GEOCODING_MAX_ATTEMPTS", "3"))
	if err != nil {
		return nil, fmt.Errorf("invalid GEOCODING_MAX_ATTEMPTS: %w", err)
	}
	config.Geocoding = GeocodingConfig{
		BaseURL:     getEnv("GEOCODING_BASE_URL", "https://api.dataforsyningen.dk"),
		MaxAttempts: geocodeAttempts,
	}

	// Planning engine configuration
	config.Planning = PlanningConfig{
		LoadWeight:             getEnvFloat("PLANNING_LOAD_WEIGHT", 0.7),
		DistanceWeight:         getEnvFloat("PLANNING_DISTANCE_WEIGHT", 0.3),
		DistancePenaltyPerKm:   getEnvFloat("PLANNING_DISTANCE_PENALTY_PER_KM", 0.1),
		DistancePenaltyCapKm:   getEnvFloat("PLANNING_DISTANCE_PENALTY_CAP", 2.0),
		TravelMinutesPerKm:     getEnvFloat("PLANNING_TRAVEL_MINUTES_PER_KM", 2.5),
		DefaultWorkRadiusKm:    getEnvFloat("PLANNING_DEFAULT_WORK_RADIUS_KM", 100),
		DefaultDayStart:        getEnv("PLANNING_DEFAULT_DAY_START", "08:00"),
		DefaultDayEnd:          getEnv("PLANNING_DEFAULT_DAY_END", "16:00"),
		DefaultDurationMinutes: 60,
		BaseScore:              60,
		MaxScore:               100,
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if c.Planning.LoadWeight <= 0 || c.Planning.DistanceWeight <= 0 {
		return fmt.Errorf("planning weights must be positive")
	}
	if c.Geocoding.MaxAttempts < 1 {
		return fmt.Errorf("GEOCODING_MAX_ATTEMPTS must be at least 1")
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fallback
	}
	return f
}

func getEnvSlice(env string) []string {
	value := getEnv(env, "")
	if value == "" {
		return []string{}
	}
	return strings.Split(value, ",")
}
