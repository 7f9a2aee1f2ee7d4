package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/aliskhannn/jlpt-quiz-bot/internal/domain/entities"
)

var (
	ErrMissingEnvironmentVariables = errors.New("missing required environment variables")
	ErrInvalidConfig               = errors.New("invalid config")
)

// Config holds application configuration loaded from files and environment variables.
type Config struct {
	Env              string  `mapstructure:"env"`            // current application environment (local, dev, production)
	LogLevel         string  `mapstructure:"log_level"`      // overrides the environment's default level
	TelegramAPIToken string  `mapstructure:"-"`              // Telegram API token loaded from environment
	WordsCSVPath     string  `mapstructure:"words_csv_path"` // path to the vocabulary table
	AdminIDs         []int64 `mapstructure:"admin_ids"`      // users allowed to exclude words
	Quiz             Quiz    `mapstructure:"quiz"`
	DB               DB      `mapstructure:"database"` // database configuration section
}

// Quiz tunes quiz assembly.
type Quiz struct {
	Length             int                `mapstructure:"length"`
	ExcludeMastered    bool               `mapstructure:"exclude_mastered"`
	ExcludeWrong       bool               `mapstructure:"exclude_wrong"`
	ExcludeSeen        bool               `mapstructure:"exclude_seen"`
	Promotion          map[string]float64 `mapstructure:"promotion"` // level -> share of harder words, 0 disables
	MinKanjiConfidence float64            `mapstructure:"min_kanji_confidence"`
}

// Policy returns the exclusion toggles as a ledger policy.
func (q Quiz) Policy() entities.ExclusionPolicy {
	return entities.ExclusionPolicy{
		Mastered:      q.ExcludeMastered,
		ExcludedWrong: q.ExcludeWrong,
		Seen:          q.ExcludeSeen,
	}
}

// PromotionRatios parses the promotion map. Keys are case-insensitive levels.
func (q Quiz) PromotionRatios() (map[entities.Level]float64, error) {
	out := make(map[entities.Level]float64, len(q.Promotion))
	for raw, ratio := range q.Promotion {
		level := entities.ParseLevel(raw)
		if !level.Valid() {
			return nil, fmt.Errorf("%w: promotion level %q", ErrInvalidConfig, raw)
		}
		if ratio < 0 || ratio > 1 {
			return nil, fmt.Errorf("%w: promotion ratio %v for %s", ErrInvalidConfig, ratio, level)
		}
		out[level] = ratio
	}
	return out, nil
}

// DB contains database-related configuration parameters.
type DB struct {
	URL             string        `mapstructure:"-"`                 // database connection string loaded from environment
	MaxConnections  int           `mapstructure:"max_connections"`   // maximum number of open connections in the pool
	MaxConnLifetime time.Duration `mapstructure:"max_conn_lifetime"` // maximum lifetime of a single connection
}

// DSN returns the database connection string if it is configured.
func (db DB) DSN() (string, error) {
	if db.URL == "" {
		return "", ErrMissingEnvironmentVariables
	}
	return db.URL, nil
}

// Load reads .env, config files and environment variables, in increasing
// priority.
func Load() (*Config, error) {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")

	v.SetDefault("env", "local")
	v.SetDefault("log_level", "")
	v.SetDefault("words_csv_path", "assets/jlpt_words.csv")
	v.SetDefault("admin_ids", []int64{})
	v.SetDefault("quiz.length", 10)
	v.SetDefault("quiz.exclude_mastered", true)
	v.SetDefault("quiz.exclude_wrong", true)
	v.SetDefault("quiz.exclude_seen", false)
	v.SetDefault("quiz.promotion", map[string]float64{})
	v.SetDefault("quiz.min_kanji_confidence", 0.5)
	v.SetDefault("database.max_connections", 20)
	v.SetDefault("database.max_conn_lifetime", "30s")

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_")) // map nested keys to ENV style names
	v.AutomaticEnv()

	_ = v.BindEnv("telegram_api_token", "TELEGRAM_API_TOKEN")
	_ = v.BindEnv("database_url", "DATABASE_URL")
	_ = v.BindEnv("env", "APP_ENV")
	_ = v.BindEnv("words_csv_path", "WORDS_CSV_PATH")
	_ = v.BindEnv("log_level", "LOG_LEVEL")

	if err := v.ReadInConfig(); err != nil {
		var fileLookupErr viper.ConfigFileNotFoundError
		if !errors.As(err, &fileLookupErr) {
			return nil, fmt.Errorf("error loading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	if cfg.Quiz.Length <= 0 {
		return nil, fmt.Errorf("%w: quiz.length must be positive", ErrInvalidConfig)
	}
	if _, err := cfg.Quiz.PromotionRatios(); err != nil {
		return nil, err
	}

	// Load sensitive values from environment variables.
	cfg.TelegramAPIToken = v.GetString("telegram_api_token")
	if cfg.TelegramAPIToken == "" {
		return nil, ErrMissingEnvironmentVariables
	}

	cfg.DB.URL = v.GetString("database_url")
	if cfg.DB.URL == "" {
		return nil, ErrMissingEnvironmentVariables
	}

	return &cfg, nil
}
