package config

import (
	"encoding/base64"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"
)

type Application struct {
	Name        string
	Environment string
	Port        int
	Debug       bool
	Timeout     time.Duration
	BaseURL     string
}

type CORS struct {
	AllowedOrigins   []string
	AllowedMethods   []string
	AllowedHeaders   []string
	ExposedHeaders   []string
	MaxAge           int
	AllowCredentials bool
}

type JWT struct {
	PrivateKey []byte
	PublicKey  []byte
}

type GCP struct {
	ProjectID      string
	Location       string
	ServiceAccount []byte
}

type Postgres struct {
	Host         string
	Port         int
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
}

type Redis struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type Kafka struct {
	BootstrapServers string
}

type Order struct {
	Expiration time.Duration
}

type Wizard struct {
	TTL time.Duration
}

type Payment struct {
	BaseURL      string
	BasicAuthKey string
}

type Dispatch struct {
	BaseURL    string
	APIKey     string
	PickupName string
}

type Config struct {
	Application Application
	CORS        CORS
	JWT         JWT
	GCP         GCP
	Postgres    Postgres
	Redis       Redis
	Kafka       Kafka
	Order       Order
	Wizard      Wizard
	Payment     Payment
	Dispatch    Dispatch
}

var (
	once sync.Once
	c    *Config
)

func Get() *Config {
	once.Do(func() {
		c = &Config{
			Application: Application{
				Name:        envString("APP_NAME", "cc-order"),
				Environment: envString("APP_ENVIRONMENT", "development"),
				Port:        envInt("APP_PORT", 8080),
				Debug:       envBool("APP_DEBUG", false),
				Timeout:     envDuration("APP_TIMEOUT", 30*time.Second),
				BaseURL:     envString("APP_BASE_URL", "http://localhost:8080"),
			},
			CORS: CORS{
				AllowedOrigins:   envStrings("CORS_ALLOWED_ORIGINS", "*"),
				AllowedMethods:   envStrings("CORS_ALLOWED_METHODS", "GET,POST,PUT,DELETE,OPTIONS"),
				AllowedHeaders:   envStrings("CORS_ALLOWED_HEADERS", "Authorization,Content-Type"),
				ExposedHeaders:   envStrings("CORS_EXPOSED_HEADERS", "X-Trace-Id"),
				MaxAge:           envInt("CORS_MAX_AGE", 3600),
				AllowCredentials: envBool("CORS_ALLOW_CREDENTIALS", true),
			},
			JWT: JWT{
				PrivateKey: envBase64("JWT_PRIVATE_KEY"),
				PublicKey:  envBase64("JWT_PUBLIC_KEY"),
			},
			GCP: GCP{
				ProjectID:      envString("GCP_PROJECT_ID", ""),
				Location:       envString("GCP_LOCATION", "us-central1"),
				ServiceAccount: envBase64("GCP_SERVICE_ACCOUNT"),
			},
			Postgres: Postgres{
				Host:         envString("POSTGRES_HOST", "localhost"),
				Port:         envInt("POSTGRES_PORT", 5432),
				User:         envString("POSTGRES_USER", "postgres"),
				Password:     envString("POSTGRES_PASSWORD", ""),
				Name:         envString("POSTGRES_NAME", "cc_order"),
				SSLMode:      envString("POSTGRES_SSL_MODE", "disable"),
				MaxOpenConns: envInt("POSTGRES_MAX_OPEN_CONNS", 25),
				MaxIdleConns: envInt("POSTGRES_MAX_IDLE_CONNS", 5),
			},
			Redis: Redis{
				Host:     envString("REDIS_HOST", "localhost"),
				Port:     envInt("REDIS_PORT", 6379),
				Password: envString("REDIS_PASSWORD", ""),
				DB:       envInt("REDIS_DB", 0),
			},
			Kafka: Kafka{
				BootstrapServers: envString("KAFKA_BOOTSTRAP_SERVERS", "localhost:9092"),
			},
			Order: Order{
				Expiration: envDuration("ORDER_EXPIRATION", 24*time.Hour),
			},
			Wizard: Wizard{
				TTL: envDuration("WIZARD_TTL", 7*24*time.Hour),
			},
			Payment: Payment{
				BaseURL:      envString("PAYMENT_BASE_URL", ""),
				BasicAuthKey: envString("PAYMENT_BASIC_AUTH_KEY", ""),
			},
			Dispatch: Dispatch{
				BaseURL:    envString("DISPATCH_BASE_URL", ""),
				APIKey:     envString("DISPATCH_API_KEY", ""),
				PickupName: envString("DISPATCH_PICKUP_NAME", "Crave Catering Kitchen"),
			},
		}
	})

	return c
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envStrings(key, fallback string) []string {
	return strings.Split(envString(key, fallback), ",")
}

func envInt(key string, fallback int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}

func envBool(key string, fallback bool) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v, err := time.ParseDuration(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}

func envBase64(key string) []byte {
	v, err := base64.StdEncoding.DecodeString(os.Getenv(key))
	if err != nil {
		return nil
	}
	return v
}
