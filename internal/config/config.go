package config

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// ErrMissingJWTSecret is returned when JWT_SECRET_KEY is not configured
var ErrMissingJWTSecret = errors.New("JWT_SECRET_KEY is required")

type Config struct {
	Port           string
	AllowedOrigins []string

	JWTSecret  string
	JWTExpiry  time.Duration
	BcryptCost int

	GlobalRateLimit int
	LoginRateLimit  int
	RateLimitWindow time.Duration

	AMQPURL        string
	AMQPExchange   string
	AMQPRoutingKey string
}

// envBindings maps viper keys to environment variables
var envBindings = map[string]string{
	"server.port": "PORT",

	"database.host":     "DATABASE_HOST",
	"database.port":     "DATABASE_PORT",
	"database.user":     "DATABASE_USER",
	"database.password": "DATABASE_PASSWORD",
	"database.name":     "DATABASE_NAME",
	"database.ssl_mode": "DATABASE_SSL_MODE",

	"redis.host":     "REDIS_HOST",
	"redis.port":     "REDIS_PORT",
	"redis.password": "REDIS_PASSWORD",
	"redis.db":       "REDIS_DB",

	"jwt.secret_key":   "JWT_SECRET_KEY",
	"jwt.expiry_hours": "JWT_EXPIRY_HOURS",
	"bcrypt.cost":      "BCRYPT_COST",

	"ratelimit.global_limit": "RATE_LIMIT_GLOBAL",
	"ratelimit.login_limit":  "RATE_LIMIT_LOGIN",
	"ratelimit.window":       "RATE_LIMIT_WINDOW",

	"amqp.url":         "AMQP_URL",
	"amqp.exchange":    "AMQP_EXCHANGE",
	"amqp.routing_key": "AMQP_ROUTING_KEY",

	"cors.allowed_origins": "CORS_ALLOWED_ORIGINS",
}

func setDefaults() {
	viper.SetDefault("server.port", "8080")
	viper.SetDefault("jwt.expiry_hours", 24)
	viper.SetDefault("bcrypt.cost", 10)
	viper.SetDefault("ratelimit.global_limit", 10)
	viper.SetDefault("ratelimit.login_limit", 5)
	viper.SetDefault("ratelimit.window", time.Minute)
	viper.SetDefault("amqp.exchange", "audit")
	viper.SetDefault("amqp.routing_key", "audit.expense")
	viper.SetDefault("cors.allowed_origins", "https://*,http://*")
}

// Load reads .env (when present) and the environment into the global viper
// instance, which the database package also reads from.
func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")
	viper.AutomaticEnv()

	for key, env := range envBindings {
		if err := viper.BindEnv(key, env); err != nil {
			return nil, err
		}
	}
	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("[CONFIG] Config file not found, using environment: %v", err)
	}

	cfg := &Config{
		Port:            viper.GetString("server.port"),
		AllowedOrigins:  splitList(viper.GetString("cors.allowed_origins")),
		JWTSecret:       viper.GetString("jwt.secret_key"),
		JWTExpiry:       time.Duration(viper.GetInt("jwt.expiry_hours")) * time.Hour,
		BcryptCost:      viper.GetInt("bcrypt.cost"),
		GlobalRateLimit: viper.GetInt("ratelimit.global_limit"),
		LoginRateLimit:  viper.GetInt("ratelimit.login_limit"),
		RateLimitWindow: viper.GetDuration("ratelimit.window"),
		AMQPURL:         viper.GetString("amqp.url"),
		AMQPExchange:    viper.GetString("amqp.exchange"),
		AMQPRoutingKey:  viper.GetString("amqp.routing_key"),
	}

	if cfg.JWTSecret == "" {
		return nil, ErrMissingJWTSecret
	}
	if cfg.JWTExpiry <= 0 {
		cfg.JWTExpiry = 24 * time.Hour
	}
	return cfg, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
