package config

import (
	"errors"
	"log"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	defaultTimezone   = "UTC"
	configPathEnv     = "NEWS_REPORTER_CONFIG"
	tavilyAPIKeyEnv   = "TAVILY_API_KEY"
	openAIAPIKeyEnv   = "OPENAI_API_KEY"
	openAIModelEnv    = "OPENAI_MODEL"
	databaseDSNEnv    = "DATABASE_DSN"
	telegramTokenEnv  = "TELEGRAM_BOT_TOKEN"
	telegramChatIDEnv = "TELEGRAM_CHAT_ID"
)

// Validation errors surfaced before the pipeline starts.
var (
	ErrMissingTavilyKey = errors.New("config: tavily api key is required (set TAVILY_API_KEY)")
	ErrMissingOpenAIKey = errors.New("config: openai api key is required (set OPENAI_API_KEY)")
)

// Config holds high-level settings required across the application.
type Config struct {
	Logging       LoggingConfig      `yaml:"logging"`
	Search        SearchConfig       `yaml:"search"`
	OpenAI        OpenAIConfig       `yaml:"openai"`
	Report        ReportConfig       `yaml:"report"`
	Database      DatabaseConfig     `yaml:"database"`
	Notifications NotificationConfig `yaml:"notifications"`
	Scheduler     SchedulerConfig    `yaml:"scheduler"`
}

// LoggingConfig controls console log verbosity.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// SearchConfig fixes the discovery query parameters for every run.
type SearchConfig struct {
	Endpoint        string `yaml:"endpoint"`
	APIKey          string `yaml:"apiKey"`
	Query           string `yaml:"query"`
	Topic           string `yaml:"topic"`
	TimeRange       string `yaml:"timeRange"`
	SearchDepth     string `yaml:"searchDepth"`
	MaxResults      int    `yaml:"maxResults"`
	FetchFullText   bool   `yaml:"fetchFullText"`
	MinContentChars int    `yaml:"minContentChars"`
}

// OpenAIConfig defines how to contact the chat-completions API.
type OpenAIConfig struct {
	Endpoint      string  `yaml:"endpoint"`
	Model         string  `yaml:"model"`
	APIKey        string  `yaml:"apiKey"`
	Temperature   float64 `yaml:"temperature"`
	MaxTokens     int     `yaml:"maxTokens"`
	SummaryPrompt string  `yaml:"summaryPrompt"`
	ReportPrompt  string  `yaml:"reportPrompt"`
}

// ReportConfig describes where report files land.
type ReportConfig struct {
	OutputDir  string `yaml:"outputDir"`
	FilePrefix string `yaml:"filePrefix"`
}

// DatabaseConfig describes the optional Postgres run archive.
type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

// NotificationConfig encapsulates outbound channels (Telegram, etc.).
type NotificationConfig struct {
	Telegram TelegramConfig `yaml:"telegram"`
}

// TelegramConfig wires all data required to send messages.
type TelegramConfig struct {
	BotToken string `yaml:"botToken"`
	ChatID   string `yaml:"chatId"`
}

// SchedulerConfig enables recurring runs instead of the default single run.
type SchedulerConfig struct {
	Enabled  bool           `yaml:"enabled"`
	Interval string         `yaml:"interval"`
	Timezone string         `yaml:"timezone"`
	location *time.Location `yaml:"-"`
}

// IntervalDuration parses the configured interval, defaulting to daily.
func (s SchedulerConfig) IntervalDuration() time.Duration {
	d, err := time.ParseDuration(s.Interval)
	if err != nil || d <= 0 {
		return 24 * time.Hour
	}
	return d
}

// Location resolves the scheduler timezone string to a time.Location.
func (s SchedulerConfig) Location() *time.Location {
	if s.location != nil {
		return s.location
	}
	loc, _ := time.LoadLocation(defaultTimezone)
	return loc
}

// Load reads YAML configuration (if present) and applies environment overrides.
func Load() Config {
	cfg := defaultConfig()

	if path := os.Getenv(configPathEnv); path != "" {
		if raw, err := os.ReadFile(path); err != nil {
			log.Printf("config: cannot read %s: %v (falling back to defaults)", path, err)
		} else {
			var fileCfg Config
			if err := yaml.Unmarshal(raw, &fileCfg); err != nil {
				log.Printf("config: cannot parse %s: %v (falling back to defaults)", path, err)
			} else {
				cfg = mergeConfig(cfg, fileCfg)
			}
		}
	}

	cfg.applyEnvOverrides()
	cfg.bindTimezone()

	return cfg
}

// Validate fails fast when required credentials are absent.
func (c Config) Validate() error {
	if c.Search.APIKey == "" {
		return ErrMissingTavilyKey
	}
	if c.OpenAI.APIKey == "" {
		return ErrMissingOpenAIKey
	}
	return nil
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(tavilyAPIKeyEnv); v != "" {
		c.Search.APIKey = v
	}

	if v := os.Getenv(openAIAPIKeyEnv); v != "" {
		c.OpenAI.APIKey = v
	}

	if v := os.Getenv(openAIModelEnv); v != "" {
		c.OpenAI.Model = v
	}

	if v := os.Getenv(databaseDSNEnv); v != "" {
		c.Database.DSN = v
	}

	if v := os.Getenv(telegramTokenEnv); v != "" {
		c.Notifications.Telegram.BotToken = v
	}

	if v := os.Getenv(telegramChatIDEnv); v != "" {
		c.Notifications.Telegram.ChatID = v
	}
}

func (c *Config) bindTimezone() {
	tz := c.Scheduler.Timezone
	if tz == "" {
		tz = defaultTimezone
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		log.Printf("config: unknown timezone %s, reverting to %s", tz, defaultTimezone)
		loc, _ = time.LoadLocation(defaultTimezone)
	}
	c.Scheduler.location = loc
}

func mergeConfig(base, override Config) Config {
	if override.Logging.Level != "" {
		base.Logging.Level = override.Logging.Level
	}

	if override.Search.Endpoint != "" {
		base.Search.Endpoint = override.Search.Endpoint
	}
	if override.Search.APIKey != "" {
		base.Search.APIKey = override.Search.APIKey
	}
	if override.Search.Query != "" {
		base.Search.Query = override.Search.Query
	}
	if override.Search.Topic != "" {
		base.Search.Topic = override.Search.Topic
	}
	if override.Search.TimeRange != "" {
		base.Search.TimeRange = override.Search.TimeRange
	}
	if override.Search.SearchDepth != "" {
		base.Search.SearchDepth = override.Search.SearchDepth
	}
	if override.Search.MaxResults > 0 {
		base.Search.MaxResults = override.Search.MaxResults
	}
	if override.Search.FetchFullText {
		base.Search.FetchFullText = true
	}
	if override.Search.MinContentChars > 0 {
		base.Search.MinContentChars = override.Search.MinContentChars
	}

	if override.OpenAI.Endpoint != "" {
		base.OpenAI.Endpoint = override.OpenAI.Endpoint
	}
	if override.OpenAI.Model != "" {
		base.OpenAI.Model = override.OpenAI.Model
	}
	if override.OpenAI.APIKey != "" {
		base.OpenAI.APIKey = override.OpenAI.APIKey
	}
	if override.OpenAI.Temperature > 0 {
		base.OpenAI.Temperature = override.OpenAI.Temperature
	}
	if override.OpenAI.MaxTokens > 0 {
		base.OpenAI.MaxTokens = override.OpenAI.MaxTokens
	}
	if override.OpenAI.SummaryPrompt != "" {
		base.OpenAI.SummaryPrompt = override.OpenAI.SummaryPrompt
	}
	if override.OpenAI.ReportPrompt != "" {
		base.OpenAI.ReportPrompt = override.OpenAI.ReportPrompt
	}

	if override.Report.OutputDir != "" {
		base.Report.OutputDir = override.Report.OutputDir
	}
	if override.Report.FilePrefix != "" {
		base.Report.FilePrefix = override.Report.FilePrefix
	}

	if override.Database.DSN != "" {
		base.Database = override.Database
	}

	if override.Notifications.Telegram.BotToken != "" {
		base.Notifications.Telegram.BotToken = override.Notifications.Telegram.BotToken
	}
	if override.Notifications.Telegram.ChatID != "" {
		base.Notifications.Telegram.ChatID = override.Notifications.Telegram.ChatID
	}

	if override.Scheduler.Enabled {
		base.Scheduler.Enabled = true
	}
	if override.Scheduler.Interval != "" {
		base.Scheduler.Interval = override.Scheduler.Interval
	}
	if override.Scheduler.Timezone != "" {
		base.Scheduler.Timezone = override.Scheduler.Timezone
	}

	return base
}

func defaultConfig() Config {
	tz, _ := time.LoadLocation(defaultTimezone)
	return Config{
		Logging: LoggingConfig{Level: "info"},
		Search: SearchConfig{
			Endpoint:        "https://api.tavily.com/search",
			Query:           "artificial intelligence and machine learning news",
			Topic:           "news",
			TimeRange:       "week",
			SearchDepth:     "advanced",
			MaxResults:      5,
			MinContentChars: 400,
		},
		OpenAI: OpenAIConfig{
			Endpoint:    "https://api.openai.com/v1/chat/completions",
			Model:       "gpt-4o-mini",
			Temperature: 0.3,
			MaxTokens:   1500,
			SummaryPrompt: "You summarize news articles for a general audience. " +
				"Write a 2-3 sentence summary of the article and explain any " +
				"technical terms in simple language.",
			ReportPrompt: "You are an editor assembling an AI news report. Given a " +
				"list of article summaries, write a markdown report with a short " +
				"introduction, the summaries organized into sections, and a " +
				"further reading section linking every source URL.",
		},
		Report:    ReportConfig{OutputDir: ".", FilePrefix: "ai_news_report"},
		Database:  DatabaseConfig{DSN: ""},
		Scheduler: SchedulerConfig{Interval: "24h", Timezone: defaultTimezone, location: tz},
	}
}
