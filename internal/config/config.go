package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App    AppConfig
	Server ServerConfig
	DB     DBConfig
	Slack  SlackConfig
	HR     HRConfig
	Sweep  SweepConfig
}

type AppConfig struct {
	Name        string
	Environment string
}

type ServerConfig struct {
	Port string
}

type DBConfig struct {
	URL             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	MigrationsDir   string
	AutoMigrate     bool
}

type SlackConfig struct {
	BotToken             string
	SigningSecret        string
	CelebrationChannelID string
	AdminChannelID       string
}

type HRConfig struct {
	BaseURL         string
	APIToken        string
	ChatHandleField string
	PageSize        int
	SyncInterval    time.Duration
}

type SweepConfig struct {
	Enabled        bool
	Timezone       string
	NotifyHour     int
	CelebrateHour  int
	MilestoneYears []int
	SendDelay      time.Duration
	DedupTTL       time.Duration
	PollInterval   time.Duration
}

func Load() (Config, error) {
	// Load .env file if it exists (ignore error for production where env vars are set directly)
	_ = godotenv.Load()

	cfg := Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "jubilee"),
			Environment: getEnv("APP_ENV", "development"),
		},
		Server: ServerConfig{
			Port: getEnv("APP_PORT", "9080"),
		},
		DB: DBConfig{
			URL:             strings.TrimSpace(os.Getenv("DATABASE_URL")),
			MaxOpenConns:    getInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    getInt("DB_MAX_IDLE_CONNS", 25),
			ConnMaxLifetime: getDuration("DB_CONN_MAX_LIFETIME", 30*time.Minute),
			MigrationsDir:   getEnv("MIGRATIONS_DIR", "db/migrations"),
			AutoMigrate:     getBool("MIGRATIONS_AUTO_APPLY", true),
		},
		Slack: SlackConfig{
			BotToken:             strings.TrimSpace(os.Getenv("SLACK_BOT_TOKEN")),
			SigningSecret:        strings.TrimSpace(os.Getenv("SLACK_SIGNING_SECRET")),
			CelebrationChannelID: strings.TrimSpace(os.Getenv("SLACK_CELEBRATION_CHANNEL_ID")),
			AdminChannelID:       strings.TrimSpace(os.Getenv("SLACK_ADMIN_CHANNEL_ID")),
		},
		HR: HRConfig{
			BaseURL:         strings.TrimSpace(os.Getenv("HR_BASE_URL")),
			APIToken:        strings.TrimSpace(os.Getenv("HR_API_TOKEN")),
			ChatHandleField: getEnv("HR_CHAT_HANDLE_FIELD", "Slack"),
			PageSize:        getInt("HR_PAGE_SIZE", 100),
			SyncInterval:    getDuration("HR_SYNC_INTERVAL", 6*time.Hour),
		},
		Sweep: SweepConfig{
			Enabled:        getBool("SWEEP_ENABLED", true),
			Timezone:       getEnv("SWEEP_TIMEZONE", "UTC"),
			NotifyHour:     getInt("SWEEP_NOTIFY_HOUR", 15),
			CelebrateHour:  getInt("SWEEP_CELEBRATE_HOUR", 9),
			MilestoneYears: getIntList("SWEEP_MILESTONE_YEARS", []int{1, 3, 5, 10}),
			SendDelay:      getDuration("SWEEP_SEND_DELAY", 700*time.Millisecond),
			DedupTTL:       getDuration("CALLBACK_DEDUP_TTL", time.Minute),
			PollInterval:   getDuration("SWEEP_POLL_INTERVAL", time.Minute),
		},
	}

	if cfg.DB.URL == "" {
		return Config{}, fmt.Errorf("DATABASE_URL is required")
	}

	if _, err := time.LoadLocation(cfg.Sweep.Timezone); err != nil {
		return Config{}, fmt.Errorf("invalid SWEEP_TIMEZONE %q: %w", cfg.Sweep.Timezone, err)
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	val := strings.TrimSpace(os.Getenv(key))
	if val == "" {
		return fallback
	}
	return val
}

func getInt(key string, fallback int) int {
	val := strings.TrimSpace(os.Getenv(key))
	if val == "" {
		return fallback
	}

	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func getBool(key string, fallback bool) bool {
	val := strings.TrimSpace(os.Getenv(key))
	if val == "" {
		return fallback
	}

	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func getDuration(key string, fallback time.Duration) time.Duration {
	val := strings.TrimSpace(os.Getenv(key))
	if val == "" {
		return fallback
	}

	parsed, err := time.ParseDuration(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func getIntList(key string, fallback []int) []int {
	val := strings.TrimSpace(os.Getenv(key))
	if val == "" {
		return fallback
	}

	parts := strings.Split(val, ",")
	out := make([]int, 0, len(parts))
	for _, part := range parts {
		parsed, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return fallback
		}
		out = append(out, parsed)
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
