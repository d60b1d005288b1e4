package config

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	TelegramToken      string `mapstructure:"TELEGRAM_TOKEN"`
	DBDSN              string `mapstructure:"DB_DSN"`
	RedisAddr          string `mapstructure:"REDIS_ADDR"`
	PlatformAPIURL     string `mapstructure:"PLATFORM_API_URL"`
	PlatformAuthURL    string `mapstructure:"PLATFORM_AUTH_URL"`
	CommunityInviteURL string `mapstructure:"COMMUNITY_INVITE_URL"`
	StatusAddr         string `mapstructure:"STATUS_ADDR"`
	CalendarFontPath   string `mapstructure:"CALENDAR_FONT"`
	MigrationsPath     string `mapstructure:"MIGRATIONS_PATH"`
	Environment        string `mapstructure:"ENV"`
}

func Load() (*Config, error) {
	// Пытаемся загрузить .env файл (игнорируем ошибку, если файла нет)
	if err := godotenv.Load(".env"); err != nil {
		log.Println("⚠️  No .env file found, using environment variables")
	} else {
		log.Println("✅ Loaded configuration from .env file")
	}

	// Читаем напрямую из переменных окружения (после godotenv.Load они там)
	cfg := &Config{
		TelegramToken:      os.Getenv("TELEGRAM_TOKEN"),
		DBDSN:              os.Getenv("DB_DSN"),
		RedisAddr:          os.Getenv("REDIS_ADDR"),
		PlatformAPIURL:     os.Getenv("PLATFORM_API_URL"),
		PlatformAuthURL:    os.Getenv("PLATFORM_AUTH_URL"),
		CommunityInviteURL: os.Getenv("COMMUNITY_INVITE_URL"),
		StatusAddr:         os.Getenv("STATUS_ADDR"),
		CalendarFontPath:   os.Getenv("CALENDAR_FONT"),
		MigrationsPath:     os.Getenv("MIGRATIONS_PATH"),
		Environment:        os.Getenv("ENV"),
	}

	// Устанавливаем дефолтные значения
	if cfg.Environment == "" {
		cfg.Environment = "development"
	}
	if cfg.RedisAddr == "" {
		cfg.RedisAddr = "localhost:6379"
	}
	if cfg.StatusAddr == "" {
		cfg.StatusAddr = ":8081"
	}
	if cfg.MigrationsPath == "" {
		cfg.MigrationsPath = "migrations"
	}

	// Проверяем обязательные поля
	if cfg.TelegramToken == "" {
		return nil, fmt.Errorf("TELEGRAM_TOKEN is required but not set")
	}
	if cfg.DBDSN == "" {
		return nil, fmt.Errorf("DB_DSN is required but not set")
	}
	if cfg.PlatformAPIURL == "" {
		return nil, fmt.Errorf("PLATFORM_API_URL is required but not set")
	}
	if cfg.PlatformAuthURL == "" {
		return nil, fmt.Errorf("PLATFORM_AUTH_URL is required but not set")
	}

	log.Printf("Config loaded\n")

	return cfg, nil
}

func (c *Config) GetDBDSN() string {
	return c.DBDSN
}
