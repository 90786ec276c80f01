package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

const (
	defaultPort          = "8080"
	defaultMaxUploadSize = 2_000_000
	defaultRatePerMinute = 30
)

type Config struct {
	Port string

	OpenAIKey        string
	TranscriptionURL string

	UploadDir     string
	MaxUploadSize int64
	CSRFToken     string
	RatePerMinute int

	DatabaseURL string

	S3 S3Config

	TelegramToken       string
	TelegramAdminChatID int64
}

type S3Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	Region    string
}

func (c S3Config) Enabled() bool { return c.Endpoint != "" }

// Load читает .env (если есть) и переменные окружения.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return fromEnv()
}

func fromEnv() (*Config, error) {
	cfg := &Config{
		Port:             getenv("PORT", defaultPort),
		OpenAIKey:        os.Getenv("OPENAI_API_KEY"),
		TranscriptionURL: os.Getenv("OPENAI_TRANSCRIPTION_URL"),
		UploadDir:        getenv("UPLOAD_DIR", os.TempDir()),
		CSRFToken:        os.Getenv("CSRF_TOKEN"),
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		S3: S3Config{
			Endpoint:  os.Getenv("S3_ENDPOINT"),
			AccessKey: os.Getenv("S3_ACCESS_KEY"),
			SecretKey: os.Getenv("S3_SECRET_KEY"),
			Bucket:    os.Getenv("S3_BUCKET"),
			Region:    os.Getenv("S3_REGION"),
		},
		TelegramToken: os.Getenv("TELEGRAM_BOT_TOKEN"),
	}

	if cfg.OpenAIKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY is not set")
	}

	var err error
	if cfg.MaxUploadSize, err = getInt64("MAX_UPLOAD_SIZE", defaultMaxUploadSize); err != nil {
		return nil, err
	}
	if cfg.MaxUploadSize <= 0 {
		return nil, fmt.Errorf("MAX_UPLOAD_SIZE must be positive")
	}

	rate, err := getInt64("RATE_LIMIT_PER_MINUTE", defaultRatePerMinute)
	if err != nil {
		return nil, err
	}
	cfg.RatePerMinute = int(rate)

	if cfg.TelegramAdminChatID, err = getInt64("TELEGRAM_ADMIN_CHAT_ID", 0); err != nil {
		return nil, err
	}
	if cfg.TelegramToken != "" && cfg.TelegramAdminChatID == 0 {
		return nil, fmt.Errorf("TELEGRAM_ADMIN_CHAT_ID is required with TELEGRAM_BOT_TOKEN")
	}

	if cfg.S3.Enabled() && cfg.S3.Bucket == "" {
		return nil, fmt.Errorf("S3_BUCKET is required with S3_ENDPOINT")
	}

	return cfg, nil
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getInt64(key string, def int64) (int64, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}
