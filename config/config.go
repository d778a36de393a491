package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all service configuration.
type Config struct {
	// Environment
	Environment EnvironmentConfig

	// Server
	HTTPServer HTTPServerConfig
	Logger     LoggerConfig

	// Crawler
	Git       GitConfig
	Shortener ShortenerConfig

	// Consumers
	Telegram TelegramConfig

	// Warnings collects non-fatal problems found while loading. They are
	// logged once the logger exists.
	Warnings []string
}

type EnvironmentConfig struct {
	Name string
}

type HTTPServerConfig struct {
	Enabled bool
	Port    int
	Mode    string
}

type LoggerConfig struct {
	Level        string
	Mode         string
	Encoding     string
	ColorEnabled bool
}

// RepoConfig identifies one repository feed.
type RepoConfig struct {
	User string `yaml:"user"`
	Repo string `yaml:"repo"`
}

// GitConfig configures the GitHub event crawler.
type GitConfig struct {
	APIURL         string
	WebURL         string
	Token          string
	TokenInHeader  bool
	Interval       time.Duration // git.timeout, seconds
	Recency        time.Duration // git.recency, seconds
	SeenGrace      time.Duration
	SeenCapacity   int
	RequestTimeout time.Duration
	RatePerSecond  float64
	Burst          int
	MaxConcurrent  int
	RunOnce        bool

	Users []string
	Repos []RepoConfig
	Orgs  []string
}

// ShortenerConfig configures the git.io style URL shortener.
type ShortenerConfig struct {
	Enabled bool
	URL     string
	Timeout time.Duration
}

// TelegramConfig configures the chat announcer. It is optional: without a
// bot token no announcer is registered.
type TelegramConfig struct {
	BotToken string
	ChatIDs  []int64
	LineRate float64 // messages per second
	QueueLen int
}

// Load loads configuration using Viper.
// Config file name: config.yaml, searched in ./config, ., /etc/git-commander/
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")
	viper.AddConfigPath("/etc/git-commander/")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	return fromViper(viper.GetViper())
}

// fromViper maps a populated viper instance onto Config.
func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{}

	// Environment & Server
	cfg.Environment.Name = v.GetString("environment.name")
	cfg.HTTPServer.Enabled = v.GetBool("http_server.enabled")
	cfg.HTTPServer.Port = v.GetInt("http_server.port")
	cfg.HTTPServer.Mode = v.GetString("http_server.mode")
	cfg.Logger.Level = v.GetString("logger.level")
	cfg.Logger.Mode = v.GetString("logger.mode")
	cfg.Logger.Encoding = v.GetString("logger.encoding")
	cfg.Logger.ColorEnabled = v.GetBool("logger.color_enabled")

	// Git crawler
	if !v.InConfig("git") {
		cfg.Warnings = append(cfg.Warnings, "No Github configuration found. Using default values.")
	}
	cfg.Git.APIURL = strings.TrimRight(v.GetString("git.api_url"), "/")
	cfg.Git.WebURL = strings.TrimRight(v.GetString("git.web_url"), "/")
	cfg.Git.Token = v.GetString("git.token")
	if ghToken := v.GetString("github_token"); ghToken != "" {
		cfg.Git.Token = ghToken
	}
	cfg.Git.TokenInHeader = v.GetBool("git.token_in_header")
	cfg.Git.Interval = seconds(v.GetFloat64("git.timeout"))
	cfg.Git.Recency = seconds(v.GetFloat64("git.recency"))
	cfg.Git.SeenGrace = v.GetDuration("git.seen_grace")
	cfg.Git.SeenCapacity = v.GetInt("git.seen_capacity")
	cfg.Git.RequestTimeout = v.GetDuration("git.request_timeout")
	cfg.Git.RatePerSecond = v.GetFloat64("git.rate_per_second")
	cfg.Git.Burst = v.GetInt("git.burst")
	cfg.Git.MaxConcurrent = v.GetInt("git.max_concurrency")
	cfg.Git.RunOnce = v.GetBool("git.run_once")

	cfg.Git.Users = splitList(v.Get("git.users"))
	cfg.Git.Orgs = splitList(v.Get("git.orgs"))
	repos, warnings := parseRepos(v.Get("git.repos"))
	cfg.Git.Repos = repos
	cfg.Warnings = append(cfg.Warnings, warnings...)

	if cfg.Git.Interval <= 0 {
		return nil, fmt.Errorf("git.timeout must be positive, got %v", v.Get("git.timeout"))
	}
	if cfg.Git.Recency < 0 {
		return nil, fmt.Errorf("git.recency must not be negative, got %v", v.Get("git.recency"))
	}
	if len(cfg.Git.Users)+len(cfg.Git.Repos)+len(cfg.Git.Orgs) == 0 {
		cfg.Warnings = append(cfg.Warnings, "No users, repos or orgs configured. Nothing will be crawled.")
	}

	// Shortener
	cfg.Shortener.Enabled = v.GetBool("shortener.enabled")
	cfg.Shortener.URL = strings.TrimRight(v.GetString("shortener.url"), "/")
	cfg.Shortener.Timeout = v.GetDuration("shortener.timeout")

	// Telegram
	cfg.Telegram.BotToken = v.GetString("telegram.bot_token")
	if tgToken := v.GetString("telegram_bot_token"); tgToken != "" {
		cfg.Telegram.BotToken = tgToken
	}
	cfg.Telegram.LineRate = v.GetFloat64("telegram.line_rate")
	cfg.Telegram.QueueLen = v.GetInt("telegram.queue_len")
	for _, raw := range splitList(v.Get("telegram.chat_ids")) {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			cfg.Warnings = append(cfg.Warnings, fmt.Sprintf("Ignoring invalid telegram chat id %q", raw))
			continue
		}
		cfg.Telegram.ChatIDs = append(cfg.Telegram.ChatIDs, id)
	}
	if cfg.Telegram.BotToken != "" && len(cfg.Telegram.ChatIDs) == 0 {
		cfg.Warnings = append(cfg.Warnings, "Telegram bot token set but no chat ids configured")
	}

	return cfg, nil
}

func setDefaults() {
	applyDefaults(viper.GetViper())
}

func applyDefaults(v *viper.Viper) {
	v.SetDefault("environment.name", "development")
	v.SetDefault("http_server.enabled", true)
	v.SetDefault("http_server.port", 8080)
	v.SetDefault("http_server.mode", "release")
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.mode", "debug")
	v.SetDefault("logger.encoding", "console")
	v.SetDefault("logger.color_enabled", true)

	// Git defaults; timeout and recency are in seconds.
	v.SetDefault("git.api_url", "https://api.github.com")
	v.SetDefault("git.web_url", "https://github.com")
	v.SetDefault("git.timeout", 60)
	v.SetDefault("git.recency", 3600)
	v.SetDefault("git.seen_grace", "10m")
	v.SetDefault("git.seen_capacity", 0)
	v.SetDefault("git.request_timeout", "30s")
	v.SetDefault("git.rate_per_second", 0)
	v.SetDefault("git.burst", 1)
	v.SetDefault("git.max_concurrency", 0)

	v.SetDefault("shortener.enabled", true)
	v.SetDefault("shortener.url", "https://git.io")
	v.SetDefault("shortener.timeout", "10s")

	v.SetDefault("telegram.line_rate", 1)
	v.SetDefault("telegram.queue_len", 256)
}

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}

// splitList accepts a YAML list or a comma separated string (env vars).
func splitList(raw interface{}) []string {
	var out []string
	switch val := raw.(type) {
	case []interface{}:
		for _, item := range val {
			if s := strings.TrimSpace(fmt.Sprint(item)); s != "" {
				out = append(out, s)
			}
		}
	case []string:
		for _, item := range val {
			if s := strings.TrimSpace(item); s != "" {
				out = append(out, s)
			}
		}
	case string:
		for _, item := range strings.Split(val, ",") {
			if s := strings.TrimSpace(item); s != "" {
				out = append(out, s)
			}
		}
	case int, int64, float64:
		out = append(out, fmt.Sprint(val))
	}
	return out
}

// parseRepos accepts both {user, repo} maps and "owner/name" strings.
func parseRepos(raw interface{}) ([]RepoConfig, []string) {
	var (
		repos    []RepoConfig
		warnings []string
	)

	add := func(rc RepoConfig, origin interface{}) {
		if rc.User == "" || rc.Repo == "" {
			warnings = append(warnings, fmt.Sprintf("Ignoring invalid repo entry %v", origin))
			return
		}
		repos = append(repos, rc)
	}

	var items []interface{}
	switch val := raw.(type) {
	case []interface{}:
		items = val
	case nil:
		return nil, nil
	default:
		for _, s := range splitList(val) {
			items = append(items, s)
		}
	}

	for _, item := range items {
		switch it := item.(type) {
		case map[string]interface{}:
			add(RepoConfig{
				User: getStringFromMap(it, "user"),
				Repo: getStringFromMap(it, "repo"),
			}, it)
		case string:
			owner, name, _ := strings.Cut(strings.TrimSpace(it), "/")
			add(RepoConfig{User: owner, Repo: name}, it)
		default:
			warnings = append(warnings, fmt.Sprintf("Ignoring invalid repo entry %v", it))
		}
	}

	return repos, warnings
}

// Helper functions to safely extract values from map[string]interface{}
func getStringFromMap(m map[string]interface{}, key string) string {
	if val, ok := m[key]; ok {
		if str, ok := val.(string); ok {
			return strings.TrimSpace(str)
		}
	}
	return ""
}
