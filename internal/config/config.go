package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds everything the bot needs from the environment.
// Components receive it (or the fields they need) at construction,
// so tests can point them at isolated temp storage.
type Config struct {
	Token       string // Telegram bot token, required
	DBPath      string // sqlite file for stored cookies
	DownloadDir string // parent dir for per-request download dirs
	YtdlpPath   string // yt-dlp binary, resolved via PATH by default
	MaxSizeMB   int64  // Telegram upload limit for bots
	UserAgent   string // sent to source sites on extraction
}

const defaultUserAgent = "Mozilla/5.0 (X11; Linux x86_64; rv:128.0) Gecko/20100101 Firefox/128.0"

// Load reads configuration from the environment. A .env file is
// picked up if present, real env vars win over it.
func Load() (*Config, error) {
	_ = godotenv.Load()

	token := os.Getenv("TELEGRAM_BOT_TOKEN")
	if token == "" {
		return nil, fmt.Errorf("TELEGRAM_BOT_TOKEN environment variable is not set")
	}

	cfg := &Config{
		Token:       token,
		DBPath:      getEnv("DB_PATH", "/data/bot.db"),
		DownloadDir: getEnv("DOWNLOAD_DIR", os.TempDir()),
		YtdlpPath:   getEnv("YTDLP_PATH", "yt-dlp"),
		MaxSizeMB:   getEnvInt64("MAX_FILE_SIZE_MB", 50),
		UserAgent:   getEnv("USER_AGENT", defaultUserAgent),
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt64(key string, fallback int64) int64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}
