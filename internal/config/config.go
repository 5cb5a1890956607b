package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Environment   string
	LogLevel      string
	DBDSN         string
	HTTPAddr      string
	MigrationsDir string

	// Расписание салона, время настенное в поясе ShopTimezone
	ShopTimezone    *time.Location
	ShopOpen        string
	ShopClose       string
	SlotStepMinutes int

	ReminderInterval time.Duration
	ReminderLead     time.Duration

	AdminPasswordHash string
	JWTSecret         string
	AdminTokenTTL     time.Duration

	TelegramToken       string
	TelegramAdminChatID int64

	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	MailFrom     string

	RabbitMQURL string

	RedisAddr          string
	RedisPassword      string
	RateLimitPerMinute int
}

func Load() (*Config, error) {
	// Пытаемся загрузить .env файл (игнорируем ошибку, если файла нет)
	if err := godotenv.Load(".env"); err != nil {
		log.Println("⚠️  No .env file found, using environment variables")
	} else {
		log.Println("✅ Loaded configuration from .env file")
	}

	cfg, err := FromEnv(os.Getenv)
	if err != nil {
		return nil, err
	}

	log.Printf("Config loaded\n")

	return cfg, nil
}

// FromEnv собирает конфиг из getenv, подставляет значения по умолчанию и проверяет обязательные поля
func FromEnv(getenv func(string) string) (*Config, error) {
	r := reader{getenv: getenv}

	cfg := &Config{
		Environment:   r.str("ENV", "development"),
		LogLevel:      r.str("LOG_LEVEL", ""),
		DBDSN:         r.str("DB_DSN", ""),
		HTTPAddr:      r.str("HTTP_ADDR", ":8080"),
		MigrationsDir: r.str("MIGRATIONS_DIR", "migrations"),

		ShopOpen:        r.str("SHOP_OPEN", "10:00"),
		ShopClose:       r.str("SHOP_CLOSE", "19:00"),
		SlotStepMinutes: r.integer("SLOT_STEP_MINUTES", 30),

		ReminderInterval: r.duration("REMINDER_INTERVAL", 15*time.Minute),
		ReminderLead:     r.duration("REMINDER_LEAD", 24*time.Hour),

		AdminPasswordHash: r.str("ADMIN_PASSWORD_HASH", ""),
		JWTSecret:         r.str("JWT_SECRET", ""),
		AdminTokenTTL:     r.duration("ADMIN_TOKEN_TTL", 12*time.Hour),

		TelegramToken:       r.str("TELEGRAM_TOKEN", ""),
		TelegramAdminChatID: r.integer64("TELEGRAM_ADMIN_CHAT_ID", 0),

		SMTPHost:     r.str("SMTP_HOST", ""),
		SMTPPort:     r.integer("SMTP_PORT", 587),
		SMTPUsername: r.str("SMTP_USERNAME", ""),
		SMTPPassword: r.str("SMTP_PASSWORD", ""),
		MailFrom:     r.str("MAIL_FROM", ""),

		RabbitMQURL: r.str("RABBITMQ_URL", ""),

		RedisAddr:          r.str("REDIS_ADDR", ""),
		RedisPassword:      r.str("REDIS_PASSWORD", ""),
		RateLimitPerMinute: r.integer("RATE_LIMIT_PER_MINUTE", 10),
	}

	tz := r.str("SHOP_TIMEZONE", "Local")
	loc, err := time.LoadLocation(tz)
	if err != nil {
		r.errs = append(r.errs, fmt.Errorf("SHOP_TIMEZONE: %w", err))
	}
	cfg.ShopTimezone = loc

	if len(r.errs) > 0 {
		return nil, r.errs[0]
	}

	// Проверяем обязательные поля
	if cfg.DBDSN == "" {
		return nil, fmt.Errorf("DB_DSN is required but not set")
	}
	if cfg.SlotStepMinutes <= 0 {
		return nil, fmt.Errorf("SLOT_STEP_MINUTES must be positive, got %d", cfg.SlotStepMinutes)
	}
	if cfg.ReminderInterval <= 0 {
		return nil, fmt.Errorf("REMINDER_INTERVAL must be positive, got %s", cfg.ReminderInterval)
	}

	return cfg, nil
}

type reader struct {
	getenv func(string) string
	errs   []error
}

func (r *reader) str(key, def string) string {
	if v := r.getenv(key); v != "" {
		return v
	}
	return def
}

func (r *reader) integer(key string, def int) int {
	v := r.getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		r.errs = append(r.errs, fmt.Errorf("%s: invalid integer %q", key, v))
		return def
	}
	return n
}

func (r *reader) integer64(key string, def int64) int64 {
	v := r.getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		r.errs = append(r.errs, fmt.Errorf("%s: invalid integer %q", key, v))
		return def
	}
	return n
}

func (r *reader) duration(key string, def time.Duration) time.Duration {
	v := r.getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		r.errs = append(r.errs, fmt.Errorf("%s: invalid duration %q", key, v))
		return def
	}
	return d
}
