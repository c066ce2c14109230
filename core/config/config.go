package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// TelegramConfig holds Telegram bot related settings that are common for all bots.
type TelegramConfig struct {
	Token   string `yaml:"token" envconfig:"BOT_TOKEN"`
	AdminID int64  `yaml:"admin_id" envconfig:"TELEGRAM_ADMIN_ID"`
	RunMode string `yaml:"run_mode" envconfig:"TELEGRAM_RUN_MODE"`
	// LongPollTimeoutSeconds defines long polling timeout; 0 -> default
	LongPollTimeoutSeconds int `yaml:"longpoll_timeout_seconds" envconfig:"TELEGRAM_LONGPOLL_TIMEOUT_SECONDS"`
}

// WebhookConfig specifies webhook settings.
type WebhookConfig struct {
	URL    string `yaml:"url" envconfig:"WEBHOOK_URL"`
	Listen string `yaml:"listen" envconfig:"WEBHOOK_LISTEN"`
	Port   int    `yaml:"port" envconfig:"WEBHOOK_PORT"`
}

// LoggingConfig defines logging related configuration.
type LoggingConfig struct {
	Level       string `yaml:"level"`
	Format      string `yaml:"format"`
	KeysOrder   string `yaml:"keys_order"`
	DebugSample string `yaml:"debug_sample"`
	Dir         string `yaml:"dir"`
	BotFile     string `yaml:"bot_file"`
	// ErrorsFile additionally receives WARN and above.
	ErrorsFile string `yaml:"errors_file"`
	// Profile indicates environment profile such as "debug" or "prod".
	Profile string `yaml:"profile"`
}

const (
	// RunModeWebhook selects webhook mode for Telegram updates.
	RunModeWebhook = "webhook"
	// RunModeLongpoll selects long-polling mode for Telegram updates.
	RunModeLongpoll = "longpoll"
)

const (
	// UpdateCallback identifies callback updates for rate limit exclusions.
	UpdateCallback = "callback"
	// UpdateMessage identifies message updates for rate limit exclusions.
	UpdateMessage = "message"
	// UpdateInlineQuery identifies inline query updates for rate limit exclusions.
	UpdateInlineQuery = "inline_query"
)

// RateLimitConfig holds settings for rate limiting.
// ExcludeUpdates accepts update types to bypass limiting:
// - "callback": Telegram callback button presses
// - "message": standard text messages
// - "inline_query": inline query updates
type RateLimitConfig struct {
	IntervalMS     int      `yaml:"interval_ms" envconfig:"RATE_LIMIT_INTERVAL_MS"`
	ExcludeUpdates []string `yaml:"exclude_updates" envconfig:"RATE_LIMIT_EXCLUDE_UPDATES"`
}

// PaginatorConfig holds defaults for inline keyboard paginators and the bounds
// of the paginator registry. Zero values keep the built-in defaults.
type PaginatorConfig struct {
	PageSize            int    `yaml:"page_size" envconfig:"PAGINATOR_PAGE_SIZE"`
	ButtonsRowSize      int    `yaml:"buttons_row_size" envconfig:"PAGINATOR_BUTTONS_ROW_SIZE"`
	PageTemplate        string `yaml:"page_template" envconfig:"PAGINATOR_PAGE_TEMPLATE"`
	CurrentPageTemplate string `yaml:"current_page_template" envconfig:"PAGINATOR_CURRENT_PAGE_TEMPLATE"`
	SymbolLeft          string `yaml:"symbol_left" envconfig:"PAGINATOR_SYMBOL_LEFT"`
	SymbolRight         string `yaml:"symbol_right" envconfig:"PAGINATOR_SYMBOL_RIGHT"`
	SymbolFill          string `yaml:"symbol_fill" envconfig:"PAGINATOR_SYMBOL_FILL"`
	ParseMode           string `yaml:"parse_mode" envconfig:"PAGINATOR_PARSE_MODE"`
	// RegistryCapacity bounds tracked messages; 0 -> unbounded
	RegistryCapacity int `yaml:"registry_capacity" envconfig:"PAGINATOR_REGISTRY_CAPACITY"`
	// RegistryTTLSeconds expires tracked messages; 0 -> never
	RegistryTTLSeconds int    `yaml:"registry_ttl_seconds" envconfig:"PAGINATOR_REGISTRY_TTL_SECONDS"`
	ExpiredText        string `yaml:"expired_text" envconfig:"PAGINATOR_EXPIRED_TEXT"`
}

// Config aggregates the configuration that belongs to the reusable core.
type Config struct {
	Telegram  TelegramConfig  `yaml:"telegram"`
	Webhook   WebhookConfig   `yaml:"webhook"`
	Logging   LoggingConfig   `yaml:"logging"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	Paginator PaginatorConfig `yaml:"paginator"`
}

// Load reads configuration from a YAML file and environment variables.
func Load(path string) (*Config, error) {
	var cfg Config
	if err := LoadInto(path, &cfg); err != nil {
		return nil, err
	}
	if err := Normalize(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadInto decodes the YAML file at path into dst and overlays environment
// variables. Bots embedding Config use it to load their own sections.
func LoadInto(path string, dst any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("failed to parse YAML config: %w", err)
	}
	if err := envconfig.Process("", dst); err != nil {
		return fmt.Errorf("failed to process env: %w", err)
	}
	return nil
}

// Normalize performs basic validation of required configuration fields and adjusts defaults.
func Normalize(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("nil config")
	}

	if cfg.Telegram.Token == "" {
		return fmt.Errorf("telegram token is required")
	}

	rm := strings.ToLower(strings.TrimSpace(cfg.Telegram.RunMode))
	if rm == "" {
		rm = RunModeLongpoll
	}
	if rm == "polling" { // accept alias
		rm = RunModeLongpoll
	}
	switch rm {
	case RunModeWebhook:
		if strings.TrimSpace(cfg.Webhook.URL) == "" {
			return fmt.Errorf("webhook.url is required when telegram.run_mode is 'webhook'")
		}
		if strings.TrimSpace(cfg.Webhook.Listen) == "" {
			return fmt.Errorf("webhook.listen is required when telegram.run_mode is 'webhook'")
		}
		if cfg.Webhook.Port <= 0 {
			return fmt.Errorf("webhook.port must be > 0 when telegram.run_mode is 'webhook'")
		}
	case RunModeLongpoll:
		if cfg.Telegram.LongPollTimeoutSeconds < 0 {
			return fmt.Errorf("telegram.longpoll_timeout_seconds must be >= 0")
		}
	default:
		return fmt.Errorf("invalid telegram.run_mode %q; allowed: webhook, longpoll", cfg.Telegram.RunMode)
	}
	cfg.Telegram.RunMode = rm

	allowed := map[string]struct{}{
		UpdateCallback:    {},
		UpdateMessage:     {},
		UpdateInlineQuery: {},
	}
	for i, v := range cfg.RateLimit.ExcludeUpdates {
		key := strings.ToLower(strings.TrimSpace(v))
		if key == "" {
			continue
		}
		if _, ok := allowed[key]; !ok {
			return fmt.Errorf("invalid rate_limit.exclude_updates value %q; allowed: callback, message, inline_query", v)
		}
		cfg.RateLimit.ExcludeUpdates[i] = key
	}

	return normalizePaginator(&cfg.Paginator)
}

func normalizePaginator(p *PaginatorConfig) error {
	if p.PageSize < 0 {
		return fmt.Errorf("paginator.page_size must be >= 0")
	}
	if p.ButtonsRowSize < 0 {
		return fmt.Errorf("paginator.buttons_row_size must be >= 0")
	}
	if p.RegistryCapacity < 0 {
		return fmt.Errorf("paginator.registry_capacity must be >= 0")
	}
	if p.RegistryTTLSeconds < 0 {
		return fmt.Errorf("paginator.registry_ttl_seconds must be >= 0")
	}
	switch strings.ToLower(strings.TrimSpace(p.ParseMode)) {
	case "":
	case "markdown":
		p.ParseMode = "Markdown"
	case "markdownv2":
		p.ParseMode = "MarkdownV2"
	case "html":
		p.ParseMode = "HTML"
	default:
		return fmt.Errorf("invalid paginator.parse_mode %q; allowed: markdown, markdownv2, html", p.ParseMode)
	}
	return nil
}
