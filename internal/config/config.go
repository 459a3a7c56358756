package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port                   string
	DatabaseURL            string
	TaxRate                float64
	InvoiceDueDays         int
	RateLimitPerMinute     int
	RateLimitBurst         int
	ShopRateLimitPerMinute int
	ShopRateLimitBurst     int
	BoardPollInterval      time.Duration
	BoardBatchSize         int
}

func Load() Config {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	return Config{
		Port:                   port,
		DatabaseURL:            os.Getenv("DB_DSN"),
		TaxRate:                readFloat("TAX_RATE", 0.08),
		InvoiceDueDays:         readInt("INVOICE_DUE_DAYS", 30),
		RateLimitPerMinute:     readInt("RATE_LIMIT_PER_MIN", 120),
		RateLimitBurst:         readInt("RATE_LIMIT_BURST", 30),
		ShopRateLimitPerMinute: readInt("SHOP_RATE_LIMIT_PER_MIN", 600),
		ShopRateLimitBurst:     readInt("SHOP_RATE_LIMIT_BURST", 120),
		BoardPollInterval:      readDurationSeconds("BOARD_POLL_INTERVAL_SECONDS", 1),
		BoardBatchSize:         readInt("BOARD_BATCH_SIZE", 100),
	}
}

func readDurationSeconds(key string, fallback int) time.Duration {
	value := readInt(key, fallback)
	if value <= 0 {
		return 0
	}
	return time.Duration(value) * time.Second
}

func readInt(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}

func readFloat(key string, fallback float64) float64 {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil || value < 0 {
		return fallback
	}
	return value
}
