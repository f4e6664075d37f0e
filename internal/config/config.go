package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Database struct {
	Host        string
	User        string
	Password    string
	Name        string
	Port        string
	SSLMode     string
	AutoMigrate bool
	MaxRetries  int
}

type Kafka struct {
	Broker  string
	GroupID string
}

type Telegram struct {
	BotToken    string
	AdminChatID int64
}

// App holds the runtime configuration shared by the api, worker and consumer binaries.
type App struct {
	Env            string
	Port           string
	Timezone       *time.Location
	DB             Database
	RedisAddr      string
	Kafka          Kafka
	JWTSecret      string
	UploadDir      string
	MaxUploadBytes int64
	AllowedOrigins []string
	Telegram       Telegram
	OutboxInterval time.Duration
}

// Load reads .env when present and then the process environment.
func Load() App {
	_ = godotenv.Load()

	return App{
		Env:      getEnv("APP_ENV", "development"),
		Port:     getEnv("PORT", "3000"),
		Timezone: locationEnv("APP_TIMEZONE", "Asia/Jakarta"),
		DB: Database{
			Host:        getEnv("DB_HOST", "localhost"),
			User:        getEnv("DB_USER", "postgres"),
			Password:    getEnv("DB_PASSWORD", ""),
			Name:        getEnv("DB_NAME", "absensi"),
			Port:        getEnv("DB_PORT", "5432"),
			SSLMode:     getEnv("DB_SSLMODE", "disable"),
			AutoMigrate: boolEnv("DB_AUTO_MIGRATE", false),
			MaxRetries:  intEnv("DB_MAX_RETRIES", 5),
		},
		RedisAddr: getEnv("REDIS_ADDR", "localhost:6379"),
		Kafka: Kafka{
			Broker:  getEnv("KAFKA_BROKER", ""),
			GroupID: getEnv("KAFKA_GROUP_ID", "absensi"),
		},
		JWTSecret:      getEnv("JWT_SECRET", ""),
		UploadDir:      getEnv("UPLOAD_DIR", "uploads"),
		MaxUploadBytes: int64(intEnv("MAX_UPLOAD_MB", 5)) << 20,
		AllowedOrigins: listEnv("CORS_ALLOWED_ORIGINS", []string{"http://localhost:5173"}),
		Telegram: Telegram{
			BotToken:    getEnv("TELEGRAM_BOT_TOKEN", ""),
			AdminChatID: int64(intEnv("TELEGRAM_ADMIN_CHAT_ID", 0)),
		},
		OutboxInterval: durationEnv("OUTBOX_POLL_INTERVAL", 3*time.Second),
	}
}

func (a App) IsProduction() bool {
	return a.Env == "production"
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func durationEnv(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		d, err := time.ParseDuration(val)
		if err != nil {
			log.Printf("invalid duration for %s: %v, using fallback %s", key, err, fallback)
			return fallback
		}
		return d
	}
	return fallback
}

func boolEnv(key string, fallback bool) bool {
	if val := os.Getenv(key); val != "" {
		parsed, err := strconv.ParseBool(val)
		if err != nil {
			log.Printf("invalid bool for %s, using fallback %v", key, fallback)
			return fallback
		}
		return parsed
	}
	return fallback
}

func intEnv(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		parsed, err := strconv.Atoi(val)
		if err != nil {
			log.Printf("invalid int for %s, using fallback %d", key, fallback)
			return fallback
		}
		return parsed
	}
	return fallback
}

func listEnv(key string, fallback []string) []string {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(val, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func locationEnv(key, fallback string) *time.Location {
	name := getEnv(key, fallback)
	loc, err := time.LoadLocation(name)
	if err != nil {
		log.Printf("invalid timezone %q for %s, using UTC", name, key)
		return time.UTC
	}
	return loc
}
