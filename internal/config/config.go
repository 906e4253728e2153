package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"

	"github.com/Veraticus/foxy-spend/internal/common"
	"github.com/Veraticus/foxy-spend/internal/model"
)

// EnvPrefix prefixes every environment variable viper reads, e.g. FOXY_LLM_PROVIDER.
const EnvPrefix = "FOXY"

// Config is the typed application configuration.
type Config struct {
	LLM           LLMConfig
	Logging       LoggingConfig
	Database      DatabaseConfig
	User          UserConfig
	Notifications NotificationsConfig
	Parser        ParserConfig
	Cache         CacheConfig
}

// LLMConfig configures the remote classifier.
type LLMConfig struct {
	Provider    string        `validate:"oneof=deepseek openai local"`
	BaseURL     string        `validate:"omitempty,url"`
	Timeout     time.Duration `validate:"gt=0"`
	Temperature float64       `validate:"gte=0,lte=2"`
	MaxTokens   int           `validate:"gt=0"`
	RateLimit   int           `validate:"gte=0"`
	APIKey      string        // empty runs the local classifier only
	Model       string
}

// LoggingConfig selects the log level and format.
type LoggingConfig struct {
	Level  string `validate:"oneof=debug info warn warning error"`
	Format string `validate:"oneof=console json"`
}

// DatabaseConfig locates the SQLite database.
type DatabaseConfig struct {
	Path string `validate:"required"`
}

// UserConfig holds the defaults for the single local user.
type UserConfig struct {
	ID                string `validate:"required"`
	Timezone          string `validate:"required,timezone"`
	MonthlyLimitCents int64  `validate:"gte=0"`
}

// NotificationsConfig configures reminders, budget alerts and summaries.
type NotificationsConfig struct {
	WeeklySummary  string
	MonthlySummary string
	ReminderSlots  []string      `validate:"dive,timeslot"`
	CheckInterval  time.Duration `validate:"gte=1m"`
	BudgetAlerts   bool
	Reminders      bool
}

// ParserConfig tunes the parsing orchestrator.
type ParserConfig struct {
	Locale               string  `validate:"required"`
	AutoConfirmThreshold float64 `validate:"gt=0,lte=1"`
	MinConfidence        float64 `validate:"gte=0,lte=1"`
}

// CacheConfig sizes the parse result cache.
type CacheConfig struct {
	TTL      time.Duration `validate:"gt=0"`
	Capacity int           `validate:"gt=0"`
}

// SetDefaults registers the default value of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("llm.provider", "deepseek")
	v.SetDefault("llm.temperature", 0.2)
	v.SetDefault("llm.max_tokens", 300)
	v.SetDefault("llm.timeout", "3s")
	v.SetDefault("llm.rate_limit", 30)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	v.SetDefault("cache.ttl", "10s")
	v.SetDefault("cache.capacity", 20)

	v.SetDefault("parser.locale", "es-ES")
	v.SetDefault("parser.auto_confirm_threshold", 0.95)
	v.SetDefault("parser.min_confidence", 0.5)

	v.SetDefault("database.path", "~/.local/share/foxy/foxy.db")

	v.SetDefault("user.id", "local")
	v.SetDefault("user.monthly_limit", "0")
	v.SetDefault("user.timezone", model.DefaultTimezone)

	v.SetDefault("notifications.reminder_slots", []string{"07:00-12:00", "12:00-17:00", "17:00-21:00"})
	v.SetDefault("notifications.budget_alerts", true)
	v.SetDefault("notifications.reminders", true)
	v.SetDefault("notifications.check_interval", "15m")
	v.SetDefault("notifications.weekly_summary", "0 20 * * 0")
	v.SetDefault("notifications.monthly_summary", "0 9 1 * *")
}

// BindEnv makes v read FOXY_* variables, with dots in keys mapped to underscores.
func BindEnv(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

// LoadDotEnv loads variables from the given .env files, or ./.env when none are
// named. Missing files are not an error; variables already set are kept.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return fmt.Errorf("failed to load %s: %w", f, err)
		}
	}
	return nil
}

// Load reads a validated Config from v. Defaults must already be registered.
func Load(v *viper.Viper) (Config, error) {
	limit, err := model.ParseEuros(v.GetString("user.monthly_limit"))
	if err != nil {
		return Config{}, fmt.Errorf("%w: user.monthly_limit: %w", common.ErrInvalidConfig, err)
	}

	cfg := Config{
		LLM: LLMConfig{
			Provider:    strings.ToLower(v.GetString("llm.provider")),
			APIKey:      v.GetString("llm.api_key"),
			BaseURL:     v.GetString("llm.base_url"),
			Model:       v.GetString("llm.model"),
			Timeout:     v.GetDuration("llm.timeout"),
			Temperature: v.GetFloat64("llm.temperature"),
			MaxTokens:   v.GetInt("llm.max_tokens"),
			RateLimit:   v.GetInt("llm.rate_limit"),
		},
		Logging: LoggingConfig{
			Level:  strings.ToLower(v.GetString("logging.level")),
			Format: strings.ToLower(v.GetString("logging.format")),
		},
		Database: DatabaseConfig{
			Path: ExpandPath(v.GetString("database.path")),
		},
		User: UserConfig{
			ID:                v.GetString("user.id"),
			Timezone:          v.GetString("user.timezone"),
			MonthlyLimitCents: limit,
		},
		Notifications: NotificationsConfig{
			WeeklySummary:  v.GetString("notifications.weekly_summary"),
			MonthlySummary: v.GetString("notifications.monthly_summary"),
			ReminderSlots:  v.GetStringSlice("notifications.reminder_slots"),
			CheckInterval:  v.GetDuration("notifications.check_interval"),
			BudgetAlerts:   v.GetBool("notifications.budget_alerts"),
			Reminders:      v.GetBool("notifications.reminders"),
		},
		Parser: ParserConfig{
			Locale:               v.GetString("parser.locale"),
			AutoConfirmThreshold: v.GetFloat64("parser.auto_confirm_threshold"),
			MinConfidence:        v.GetFloat64("parser.min_confidence"),
		},
		Cache: CacheConfig{
			TTL:      v.GetDuration("cache.ttl"),
			Capacity: v.GetInt("cache.capacity"),
		},
	}

	if cfg.LLM.APIKey == "" {
		cfg.LLM.APIKey = providerKey(cfg.LLM.Provider)
	}

	if err := Validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// providerKey reads the provider's conventional API key variable.
func providerKey(provider string) string {
	switch provider {
	case "openai":
		return os.Getenv("OPENAI_API_KEY")
	case "deepseek":
		return os.Getenv("DEEPSEEK_API_KEY")
	}
	return ""
}

// Settings returns the user settings described by the configuration.
func (c Config) Settings() (model.Settings, error) {
	slots, err := model.ParseTimeSlots(c.Notifications.ReminderSlots)
	if err != nil {
		return model.Settings{}, err
	}
	return model.Settings{
		UserID:            c.User.ID,
		Timezone:          c.User.Timezone,
		ReminderSlots:     slots,
		MonthlyLimitCents: c.User.MonthlyLimitCents,
		BudgetAlerts:      c.Notifications.BudgetAlerts,
		Reminders:         c.Notifications.Reminders,
	}, nil
}

// MonthlyLimit returns the configured limit in euros.
func (c Config) MonthlyLimit() decimal.Decimal {
	return decimal.New(c.User.MonthlyLimitCents, -2)
}
