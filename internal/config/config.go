package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config guarda as configurações lidas uma única vez na inicialização.
type Config struct {
	Port     string
	Env      string
	LogLevel string

	CORSOrigins []string

	SanityProjectID  string
	SanityDataset    string
	SanityAPIToken   string
	SanityAPIVersion string
	SanityUseCDN     bool

	LeadStore   string
	DatabaseURL string

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	CacheTTL      time.Duration

	RabbitMQURL string

	RateLimitRPS   float64
	RateLimitBurst int
}

// Load lê o .env (se existir) e as variáveis de ambiente do processo.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Port:     getEnv("PORT", "8080"),
		Env:      getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		CORSOrigins: splitList(getEnv("CORS_ORIGINS", "http://localhost:3000")),

		SanityProjectID:  getEnv("SANITY_PROJECT_ID", ""),
		SanityDataset:    getEnv("SANITY_DATASET", "production"),
		SanityAPIToken:   getEnv("SANITY_API_TOKEN", ""),
		SanityAPIVersion: getEnv("SANITY_API_VERSION", "2024-01-01"),
		SanityUseCDN:     getEnvAsBool("SANITY_USE_CDN", false),

		LeadStore:   strings.ToLower(getEnv("LEAD_STORE", "sanity")),
		DatabaseURL: getEnv("DATABASE_URL", ""),

		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvAsInt("REDIS_DB", 0),
		CacheTTL:      getEnvAsDuration("CACHE_TTL", time.Hour),

		RabbitMQURL: getEnv("RABBITMQ_URL", ""),

		RateLimitRPS:   getEnvAsFloat("RATE_LIMIT_RPS", 0.2),
		RateLimitBurst: getEnvAsInt("RATE_LIMIT_BURST", 5),
	}
}

// EnvSecrets lê os segredos do ambiente a cada chamada, então um segredo
// rotacionado vale sem reiniciar o processo.
type EnvSecrets struct{}

func (EnvSecrets) RevalidateSecret() string {
	return os.Getenv("SANITY_REVALIDATE_SECRET")
}

func (EnvSecrets) WebhookSecret() string {
	return os.Getenv("SANITY_WEBHOOK_SECRET")
}

// AllowUnsignedWebhook mantém o contrato antigo do webhook: sem segredo
// configurado, todo POST passa.
func (EnvSecrets) AllowUnsignedWebhook() bool {
	return getEnvAsBool("REVALIDATE_WEBHOOK_ALLOW_UNSIGNED", false)
}

func (EnvSecrets) WhatsAppBusinessNumber() string {
	return os.Getenv("WHATSAPP_BUSINESS_NUMBER")
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvAsFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
