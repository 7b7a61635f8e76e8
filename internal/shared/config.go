package shared

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	AppEnv      string
	HTTPAddr    string
	MetricsAddr string
	MySQLDSN    string
	RedisAddr   string
	RedisDB     int
	RedisPass   string
	MewsBase    string
	MewsKey     string
	MewsRPS     int
	HotelTTL    time.Duration
	PullWorkers int
	PullRunOnce bool
}

func Load() Config {
	// .env is for local development only; absence is fine.
	_ = godotenv.Load()

	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
		}
		return def
	}
	abool := func(k string, def bool) bool {
		if v := os.Getenv(k); v != "" {
			if b, err := strconv.ParseBool(v); err == nil {
				return b
			}
		}
		return def
	}
	c := Config{
		AppEnv:      env("APP_ENV", "prod"),
		HTTPAddr:    env("HTTP_ADDR", ":8080"),
		MetricsAddr: env("METRICS_ADDR", ":9100"),
		MySQLDSN:    env("MYSQL_DSN", "root:root@tcp(localhost:3306)/staysync?parseTime=true&charset=utf8mb4,utf8&loc=UTC"),
		RedisAddr:   env("REDIS_ADDR", "localhost:6379"),
		RedisPass:   env("REDIS_PASSWORD", ""),
		RedisDB:     atoi("REDIS_DB", 0),
		MewsBase:    env("MEWS_BASE_URL", "https://api.mews-demo.local/v1"),
		MewsKey:     env("MEWS_API_KEY", ""),
		MewsRPS:     atoi("MEWS_RPS", 5),
		HotelTTL:    time.Duration(atoi("HOTEL_CACHE_TTL_SECONDS", 3600)) * time.Second,
		PullWorkers: atoi("PULL_WORKERS", 4),
		PullRunOnce: abool("PULL_RUN_ONCE", false),
	}
	if c.MewsKey == "" {
		log.Warn().Msg("MEWS_API_KEY is empty")
	}
	return c
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
