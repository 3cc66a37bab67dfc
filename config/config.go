package config

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	awspkg "github.com/yashrajoria/restaurant-service/pkg/aws"
)

const (
	dbCredentialsSecret = "restaurant/DB_CREDENTIALS"
	jwtSecretName       = "restaurant/JWT_SECRET"
)

// Config holds every environment driven setting of the service.
type Config struct {
	Port   string
	AppEnv string

	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresHost     string
	PostgresPort     string
	PostgresSSLMode  string
	PostgresTimeZone string

	RedisURL string

	JWTSecret       string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration

	OrderTaxRate  decimal.Decimal
	TopRatedLimit int
	CacheTTL      time.Duration

	AllowedOrigins string

	EventBackend      string
	EventsSNSTopicARN string
	KafkaBrokers      []string
	KafkaTopic        string

	S3Bucket        string
	S3PublicBaseURL string
	UploadURLExpiry time.Duration

	QRBaseURL string

	CloudWatchEnabled   bool
	CloudWatchNamespace string
	CloudWatchLogGroup  string
}

// SecretGetter is the subset of the Secrets Manager client Load needs.
type SecretGetter interface {
	GetJSONSecret(ctx context.Context, name string) (map[string]string, error)
	GetSecret(ctx context.Context, name string) (string, error)
}

// Load reads .env (if any) and the process environment. When
// AWS_USE_SECRETS=true the DB credentials and JWT secret are overridden from
// Secrets Manager; lookup failures fall back to the environment values.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg, err := FromEnv()
	if err != nil {
		return nil, err
	}

	if os.Getenv("AWS_USE_SECRETS") == "true" {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if awsCfg, err := awspkg.LoadAWSConfig(ctx); err == nil {
			cfg.ApplySecrets(ctx, awspkg.NewSecretsClient(awsCfg))
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// FromEnv builds a Config from environment variables without validating it.
func FromEnv() (*Config, error) {
	taxRate, err := decimal.NewFromString(getEnv("ORDER_TAX_RATE", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid ORDER_TAX_RATE: %w", err)
	}

	cfg := &Config{
		Port:   getEnv("PORT", "8000"),
		AppEnv: getEnv("APP_ENV", "development"),

		PostgresUser:     os.Getenv("POSTGRES_USER"),
		PostgresPassword: os.Getenv("POSTGRES_PASSWORD"),
		PostgresDB:       os.Getenv("POSTGRES_DB"),
		PostgresHost:     getEnv("POSTGRES_HOST", "localhost"),
		PostgresPort:     getEnv("POSTGRES_PORT", "5432"),
		PostgresSSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),
		PostgresTimeZone: getEnv("POSTGRES_TIMEZONE", "UTC"),

		RedisURL: os.Getenv("REDIS_URL"),

		JWTSecret:       os.Getenv("JWT_SECRET"),
		AccessTokenTTL:  getDuration("ACCESS_TOKEN_TTL", 15*time.Minute),
		RefreshTokenTTL: getDuration("REFRESH_TOKEN_TTL", 7*24*time.Hour),

		OrderTaxRate:  taxRate,
		TopRatedLimit: getInt("TOP_RATED_LIMIT", 4),
		CacheTTL:      getDuration("CACHE_TTL", 5*time.Minute),

		AllowedOrigins: os.Getenv("ALLOWED_ORIGINS"),

		EventBackend:      strings.ToLower(getEnv("EVENT_BACKEND", "none")),
		EventsSNSTopicARN: os.Getenv("EVENTS_SNS_TOPIC_ARN"),
		KafkaBrokers:      splitList(os.Getenv("KAFKA_BROKERS")),
		KafkaTopic:        getEnv("KAFKA_TOPIC", "restaurant.events"),

		S3Bucket:        os.Getenv("S3_BUCKET"),
		S3PublicBaseURL: os.Getenv("S3_PUBLIC_BASE_URL"),
		UploadURLExpiry: getDuration("UPLOAD_URL_EXPIRY", 15*time.Minute),

		QRBaseURL: getEnv("QR_BASE_URL", "http://localhost:3000"),

		CloudWatchEnabled:   os.Getenv("CLOUDWATCH_ENABLED") == "true",
		CloudWatchNamespace: getEnv("CLOUDWATCH_NAMESPACE", "Restaurant"),
		CloudWatchLogGroup:  getEnv("CLOUDWATCH_LOG_GROUP", "/restaurant/api"),
	}
	return cfg, nil
}

// ApplySecrets overrides DB credentials and the JWT secret with values from sm.
func (c *Config) ApplySecrets(ctx context.Context, sm SecretGetter) {
	if m, err := sm.GetJSONSecret(ctx, dbCredentialsSecret); err == nil {
		override(&c.PostgresUser, m["POSTGRES_USER"])
		override(&c.PostgresPassword, m["POSTGRES_PASSWORD"])
		override(&c.PostgresDB, m["POSTGRES_DB"])
		override(&c.PostgresHost, m["POSTGRES_HOST"])
		override(&c.PostgresPort, m["POSTGRES_PORT"])
	}
	if jwt, err := sm.GetSecret(ctx, jwtSecretName); err == nil {
		override(&c.JWTSecret, jwt)
	}
}

// MaxAccessTokenTTL bounds ACCESS_TOKEN_TTL.
const MaxAccessTokenTTL = time.Hour

// Validate reports missing required settings.
func (c *Config) Validate() error {
	if c.PostgresUser == "" || c.PostgresPassword == "" || c.PostgresDB == "" || c.PostgresHost == "" {
		return fmt.Errorf("database config incomplete")
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	// Roles ride in the access token; a demoted or deactivated user keeps
	// them until it expires, so its lifetime stays short.
	if c.AccessTokenTTL <= 0 || c.AccessTokenTTL > MaxAccessTokenTTL {
		return fmt.Errorf("ACCESS_TOKEN_TTL must be between 1s and %s", MaxAccessTokenTTL)
	}
	if c.OrderTaxRate.IsNegative() {
		return fmt.Errorf("ORDER_TAX_RATE must not be negative")
	}
	switch c.EventBackend {
	case "none", "":
	case "sns":
		if c.EventsSNSTopicARN == "" {
			return fmt.Errorf("EVENTS_SNS_TOPIC_ARN is required when EVENT_BACKEND=sns")
		}
	case "kafka":
		if len(c.KafkaBrokers) == 0 {
			return fmt.Errorf("KAFKA_BROKERS is required when EVENT_BACKEND=kafka")
		}
	default:
		return fmt.Errorf("unknown EVENT_BACKEND %q", c.EventBackend)
	}
	return nil
}

// PostgresDSN renders the gorm postgres DSN.
func (c *Config) PostgresDSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s",
		c.PostgresHost, c.PostgresUser, c.PostgresPassword, c.PostgresDB, c.PostgresPort, c.PostgresSSLMode, c.PostgresTimeZone,
	)
}

func override(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if v, err := strconv.Atoi(os.Getenv(key)); err == nil && v > 0 {
		return v
	}
	return fallback
}

// getDuration accepts Go duration strings ("15m") or plain seconds.
func getDuration(key string, fallback time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	if d, err := time.ParseDuration(raw); err == nil && d > 0 {
		return d
	}
	if secs, err := strconv.Atoi(raw); err == nil && secs > 0 {
		return time.Duration(secs) * time.Second
	}
	return fallback
}

func splitList(raw string) []string {
	var out []string
	for _, p := range strings.Split(raw, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
