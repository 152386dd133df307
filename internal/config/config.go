package config

import (
	"log"
	"time"

	"github.com/caarlos0/env/v6"
)

type LLMProvider string

const (
	ProviderOpenAI LLMProvider = "openai"
	ProviderYandex LLMProvider = "yandex"
)

type EngineMode string

const (
	ModeAPI   EngineMode = "api"
	ModeLocal EngineMode = "local"
)

type Config struct {
	HTTPAddr    string   `env:"HTTP_ADDR" envDefault:":5000"`
	CORSOrigins []string `env:"CORS_ORIGINS" envSeparator:"," envDefault:"http://localhost:5000"`
	// StaticDir replaces the built-in chat UI when set.
	StaticDir   string   `env:"STATIC_DIR"`
	LogMode     string   `env:"LOG_MODE" envDefault:"dev"`

	// Engine
	EngineMode    EngineMode `env:"ENGINE_MODE" envDefault:"api"`
	AssistantName string     `env:"ASSISTANT_NAME" envDefault:"DotPi"`
	UserName      string     `env:"USER_NAME" envDefault:"Taiba"`
	TemplatesPath string     `env:"TEMPLATES_PATH"`

	// LLM settings
	LLMProvider      LLMProvider   `env:"LLM_PROVIDER" envDefault:"openai"`
	LLMTemperature   float32       `env:"LLM_TEMPERATURE" envDefault:"0.8"`
	LLMTimeout       time.Duration `env:"LLM_TIMEOUT" envDefault:"20s"`
	OpenAIAPIKey     string        `env:"OPENAI_API_KEY"`
	OpenAIBaseURL    string        `env:"OPENAI_BASE_URL"`
	OpenAIModel      string        `env:"OPENAI_MODEL" envDefault:"gpt-4o-mini"`
	YandexOAuthToken string        `env:"YANDEX_OAUTH_TOKEN"`
	YandexFolderID   string        `env:"YANDEX_FOLDER_ID"`

	// OpenRouter (optional)
	OpenRouterReferrer string `env:"OPENROUTER_REFERRER"`
	OpenRouterTitle    string `env:"OPENROUTER_TITLE"`

	// Storage
	FeedbackFilePath     string `env:"FEEDBACK_FILE_PATH" envDefault:"data/feedback_data.json"`
	ConversationFilePath string `env:"CONVERSATION_FILE_PATH" envDefault:"data/recent_messages.json"`
	InteractionLogPath   string `env:"INTERACTION_LOG_PATH" envDefault:"logs/interactions.jsonl"`

	// Schedules (cron spec)
	PreferenceRefresh string `env:"PREFERENCE_REFRESH" envDefault:"@every 5m"`
	ReportSchedule    string `env:"REPORT_SCHEDULE" envDefault:"0 21 * * *"`
}

// LLMConfigured reports whether credentials for the selected provider are present.
func (c *Config) LLMConfigured() bool {
	switch c.LLMProvider {
	case ProviderYandex:
		return c.YandexOAuthToken != "" && c.YandexFolderID != ""
	default:
		return c.OpenAIAPIKey != ""
	}
}

func New() *Config {
	cfg, err := Parse()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	return cfg
}

// Parse reads the config from the environment without exiting on error.
func Parse() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
