package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"excer/pkg/errors"
)

type Config struct {
	App           AppConfig
	Server        ServerConfig
	Redis         RedisConfig
	Reddit        RedditConfig
	Ingest        IngestConfig
	Poller        PollerConfig
	Telegram      TelegramConfig
	ErrorTracking ErrorTrackingConfig
}

type AppConfig struct {
	Name     string `envconfig:"APP_NAME" default:"excer"`
	Env      string `envconfig:"APP_ENV" default:"development"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
	Version  string `envconfig:"APP_VERSION" default:"dev"`
}

type ServerConfig struct {
	Port int `envconfig:"SERVER_PORT" default:"8080"`
}

type RedisConfig struct {
	Host     string `envconfig:"REDIS_HOST" default:"localhost"`
	Port     int    `envconfig:"REDIS_PORT" default:"6379"`
	Password string `envconfig:"REDIS_PASSWORD"`
	DB       int    `envconfig:"REDIS_DB" default:"0"`
}

func (c RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

type RedditConfig struct {
	ClientID     string        `envconfig:"REDDIT_CLIENT_ID"`
	ClientSecret string        `envconfig:"REDDIT_CLIENT_SECRET"`
	UserAgent    string        `envconfig:"REDDIT_USER_AGENT" default:"ExcerStockTracker/1.0"`
	BaseURL      string        `envconfig:"REDDIT_BASE_URL" default:"https://oauth.reddit.com"`
	AuthURL      string        `envconfig:"REDDIT_AUTH_URL" default:"https://www.reddit.com/api/v1/access_token"`
	Timeout      time.Duration `envconfig:"REDDIT_TIMEOUT" default:"15s"`
	MaxRetries   int           `envconfig:"REDDIT_MAX_RETRIES" default:"5"`
	RetryBackoff time.Duration `envconfig:"REDDIT_RETRY_BACKOFF" default:"10s"`
	// One request every CallDelay keeps us under Reddit's informal limits
	CallDelay time.Duration `envconfig:"REDDIT_CALL_DELAY" default:"2s"`
}

// IngestConfig controls the ingestion worker
type IngestConfig struct {
	Subreddits   []string      `envconfig:"INGEST_SUBREDDITS" default:"pennystocks,wallstreetbets,10xPennyStocks,SmallStreetBets"`
	Interval     time.Duration `envconfig:"INGEST_INTERVAL" default:"15m"`
	Enabled      bool          `envconfig:"INGEST_ENABLED" default:"true"`
	SourceDelay  time.Duration `envconfig:"INGEST_SOURCE_DELAY" default:"30s"`
	PageLimit    int           `envconfig:"INGEST_PAGE_LIMIT" default:"50"`
	TopStocks    int           `envconfig:"INGEST_TOP_STOCKS" default:"20"`
	MinPostScore int           `envconfig:"INGEST_MIN_POST_SCORE" default:"10"`
}

// PollerConfig controls the client-side freshness controller
type PollerConfig struct {
	ServerURL    string        `envconfig:"POLLER_SERVER_URL" default:"http://localhost:8080"`
	RefreshEvery time.Duration `envconfig:"POLLER_REFRESH_EVERY" default:"15m"`
	CheckEvery   time.Duration `envconfig:"POLLER_CHECK_EVERY" default:"5s"`
	PollEvery    time.Duration `envconfig:"POLLER_POLL_EVERY" default:"2m"`
}

type TelegramConfig struct {
	BotToken string `envconfig:"TELEGRAM_BOT_TOKEN"`
	ChatID   int64  `envconfig:"TELEGRAM_CHAT_ID"`
	Enabled  bool   `envconfig:"TELEGRAM_ENABLED" default:"false"`
}

type ErrorTrackingConfig struct {
	Enabled     bool   `envconfig:"ERROR_TRACKING_ENABLED" default:"false"`
	SentryDSN   string `envconfig:"SENTRY_DSN"`
	Environment string `envconfig:"SENTRY_ENVIRONMENT" default:"production"`
}

// Load reads configuration from environment variables
// It first tries to load .env file (useful for local development)
func Load() (*Config, error) {
	// Load .env file if exists (ignore error if not exists)
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, errors.Wrap(err, "failed to process env config")
	}

	return &cfg, nil
}
