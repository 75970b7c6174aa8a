package config

import (
	"fmt"
	"os"
	"time"

	log "github.com/go-pkgz/lgr"
	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"
)

//go:generate go run ../../cmd/schema/main.go schema.json

// Config holds the application configuration
type Config struct {
	Reddit RedditConfig `yaml:"reddit" json:"reddit" jsonschema:"description=Reddit API access"`

	LLM LLMConfig `yaml:"llm" json:"llm" jsonschema:"description=LLM configuration for reply generation"`

	Database struct {
		DSN             string `yaml:"dsn" json:"dsn" jsonschema:"default=file:redditbot.db?cache=shared&mode=rwc,description=Database connection string, postgres:// for supabase"`
		MaxOpenConns    int    `yaml:"max_open_conns" json:"max_open_conns" jsonschema:"default=10,description=Maximum number of open connections"`
		MaxIdleConns    int    `yaml:"max_idle_conns" json:"max_idle_conns" jsonschema:"default=5,description=Maximum number of idle connections"`
		ConnMaxLifetime int    `yaml:"conn_max_lifetime" json:"conn_max_lifetime" jsonschema:"default=3600,description=Connection maximum lifetime in seconds"`
	} `yaml:"database" json:"database" jsonschema:"description=Database configuration"`

	Bot RunnerConfig `yaml:"bot" json:"bot" jsonschema:"description=Bot runner settings"`

	Server struct {
		Listen  string        `yaml:"listen" json:"listen" jsonschema:"default=:8080,description=HTTP server listen address"`
		Timeout time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=HTTP server timeout"`
	} `yaml:"server" json:"server" jsonschema:"description=Tool server HTTP configuration"`

	Tools ToolsConfig `yaml:"tools" json:"tools" jsonschema:"description=Tool server session settings"`
}

// RedditConfig holds process-wide reddit credentials, bot rows may override them
type RedditConfig struct {
	ClientID     string        `yaml:"client_id" json:"client_id" jsonschema:"description=Reddit app client id"`
	ClientSecret string        `yaml:"client_secret" json:"client_secret" jsonschema:"description=Reddit app client secret"`
	RefreshToken string        `yaml:"refresh_token" json:"refresh_token" jsonschema:"description=Refresh token for user context"`
	Username     string        `yaml:"username" json:"username" jsonschema:"description=Username for password grant"`
	Password     string        `yaml:"password" json:"password" jsonschema:"description=Password for password grant"`
	UserAgent    string        `yaml:"user_agent" json:"user_agent" jsonschema:"default=redditbot/1.0,description=User agent sent to reddit"`
	Timeout      time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=Request timeout"`
	TokenURL     string        `yaml:"token_url" json:"token_url" jsonschema:"description=OAuth2 token endpoint override"`
	APIURL       string        `yaml:"api_url" json:"api_url" jsonschema:"description=OAuth API root override"`
	PublicURL    string        `yaml:"public_url" json:"public_url" jsonschema:"description=Public JSON API root override"`
}

// LLMConfig holds LLM configuration for reply generation
type LLMConfig struct {
	Endpoint     string        `yaml:"endpoint" json:"endpoint" jsonschema:"required,default=https://api.groq.com/openai/v1,description=OpenAI-compatible API endpoint"`
	APIKey       string        `yaml:"api_key" json:"api_key" jsonschema:"description=API key (can use environment variable)"`
	Model        string        `yaml:"model" json:"model" jsonschema:"required,default=llama3-8b-8192,description=Model name"`
	Temperature  float64       `yaml:"temperature" json:"temperature" jsonschema:"default=0.7,description=Temperature for response generation"`
	MaxTokens    int           `yaml:"max_tokens" json:"max_tokens" jsonschema:"default=300,description=Maximum tokens in response"`
	Timeout      time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=Request timeout"`
	Attempts     int           `yaml:"attempts" json:"attempts" jsonschema:"default=3,minimum=1,description=Generation attempts before the canned fallback"`
	SystemPrompt string        `yaml:"system_prompt" json:"system_prompt" jsonschema:"description=Default system prompt (optional)"`
}

// RunnerConfig holds bot runner pacing and storage settings
type RunnerConfig struct {
	InteractionLog    string        `yaml:"interaction_log" json:"interaction_log" jsonschema:"default=logs/interaction_log.json,description=Interaction log file"`
	RecentDays        int           `yaml:"recent_days" json:"recent_days" jsonschema:"default=3,description=Subreddits used within this many days are avoided"`
	PostsPerSubreddit int           `yaml:"posts_per_subreddit" json:"posts_per_subreddit" jsonschema:"default=5,description=Posts fetched per subreddit"`
	DryRunPosts       int           `yaml:"dry_run_posts" json:"dry_run_posts" jsonschema:"default=2,description=Posts fetched per subreddit in dry-run mode"`
	CommentsToUpvote  int           `yaml:"comments_to_upvote" json:"comments_to_upvote" jsonschema:"default=3,description=Top comments upvoted per post"`
	ActionDelay       time.Duration `yaml:"action_delay" json:"action_delay" jsonschema:"default=5s,description=Pause after a post without reply"`
	SubredditDelay    time.Duration `yaml:"subreddit_delay" json:"subreddit_delay" jsonschema:"default=10s,description=Pause between subreddits"`
	ReplyDelayMin     time.Duration `yaml:"reply_delay_min" json:"reply_delay_min" jsonschema:"default=60s,description=Minimal pause after a posted reply"`
	ReplyDelayMax     time.Duration `yaml:"reply_delay_max" json:"reply_delay_max" jsonschema:"default=180s,description=Maximal pause after a posted reply"`
	RateLimitDelay    time.Duration `yaml:"rate_limit_delay" json:"rate_limit_delay" jsonschema:"default=60s,description=Pause after reddit rate limit"`
	DiscoveryDelay    time.Duration `yaml:"discovery_delay" json:"discovery_delay" jsonschema:"default=1s,description=Pause between keyword searches"`
	Schedule          string        `yaml:"schedule" json:"schedule" jsonschema:"default=0 */8 * * *,description=Cron schedule for --schedule mode"`
}

// ToolsConfig holds tool server session settings
type ToolsConfig struct {
	HistorySize int           `yaml:"history_size" json:"history_size" jsonschema:"default=100,description=Request history entries kept"`
	CacheTTL    time.Duration `yaml:"cache_ttl" json:"cache_ttl" jsonschema:"default=30s,description=GET response cache TTL"`
	CacheSize   int           `yaml:"cache_size" json:"cache_size" jsonschema:"default=50,description=GET response cache entries"`
}

// Load reads configuration from a YAML file. Empty path gives defaults with environment fallbacks.
func Load(path string) (*Config, error) {
	var cfg Config
	if path != "" {
		data, err := os.ReadFile(path) //nolint:gosec // file path comes from CLI flag
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}

		// expand environment variables
		expanded := os.ExpandEnv(string(data))
		if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	applyEnv(&cfg)
	setDefaults(&cfg)

	// validate configuration
	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	// verify against embedded schema
	if err := VerifyAgainstEmbeddedSchema(&cfg); err != nil {
		// schema validation is supplementary
		log.Printf("[WARN] schema validation failed: %v", err)
	}

	return &cfg, nil
}

// applyEnv fills unset secrets from the well-known environment variables
func applyEnv(cfg *Config) {
	envs := []struct {
		dst *string
		key string
	}{
		{&cfg.Reddit.ClientID, "REDDIT_CLIENT_ID"},
		{&cfg.Reddit.ClientSecret, "REDDIT_CLIENT_SECRET"},
		{&cfg.Reddit.RefreshToken, "REDDIT_REFRESH_TOKEN"},
		{&cfg.Reddit.Username, "REDDIT_USERNAME"},
		{&cfg.Reddit.Password, "REDDIT_PASSWORD"},
		{&cfg.Reddit.UserAgent, "REDDIT_USER_AGENT"},
		{&cfg.LLM.APIKey, "GROQ_API_KEY"},
		{&cfg.Database.DSN, "DATABASE_DSN"},
	}
	for _, e := range envs {
		if *e.dst == "" {
			*e.dst = os.Getenv(e.key)
		}
	}
}

func setDefaults(cfg *Config) {
	// reddit
	if cfg.Reddit.UserAgent == "" {
		cfg.Reddit.UserAgent = "redditbot/1.0"
	}
	if cfg.Reddit.Timeout == 0 {
		cfg.Reddit.Timeout = 30 * time.Second
	}

	// llm, groq by default
	if cfg.LLM.Endpoint == "" {
		cfg.LLM.Endpoint = "https://api.groq.com/openai/v1"
	}
	if cfg.LLM.Model == "" {
		cfg.LLM.Model = "llama3-8b-8192"
	}
	if cfg.LLM.Temperature == 0 {
		cfg.LLM.Temperature = 0.7
	}
	if cfg.LLM.MaxTokens == 0 {
		cfg.LLM.MaxTokens = 300
	}
	if cfg.LLM.Timeout == 0 {
		cfg.LLM.Timeout = 30 * time.Second
	}
	if cfg.LLM.Attempts == 0 {
		cfg.LLM.Attempts = 3
	}

	// database
	if cfg.Database.DSN == "" {
		cfg.Database.DSN = "file:redditbot.db?cache=shared&mode=rwc&_txlock=immediate"
	}
	if cfg.Database.MaxOpenConns == 0 {
		cfg.Database.MaxOpenConns = 10
	}
	if cfg.Database.MaxIdleConns == 0 {
		cfg.Database.MaxIdleConns = 5
	}
	if cfg.Database.ConnMaxLifetime == 0 {
		cfg.Database.ConnMaxLifetime = 3600
	}

	// bot runner
	b := &cfg.Bot
	if b.InteractionLog == "" {
		b.InteractionLog = "logs/interaction_log.json"
	}
	if b.RecentDays == 0 {
		b.RecentDays = 3
	}
	if b.PostsPerSubreddit == 0 {
		b.PostsPerSubreddit = 5
	}
	if b.DryRunPosts == 0 {
		b.DryRunPosts = 2
	}
	if b.CommentsToUpvote == 0 {
		b.CommentsToUpvote = 3
	}
	if b.ActionDelay == 0 {
		b.ActionDelay = 5 * time.Second
	}
	if b.SubredditDelay == 0 {
		b.SubredditDelay = 10 * time.Second
	}
	if b.ReplyDelayMin == 0 {
		b.ReplyDelayMin = 60 * time.Second
	}
	if b.ReplyDelayMax == 0 {
		b.ReplyDelayMax = 180 * time.Second
	}
	if b.RateLimitDelay == 0 {
		b.RateLimitDelay = 60 * time.Second
	}
	if b.DiscoveryDelay == 0 {
		b.DiscoveryDelay = time.Second
	}
	if b.Schedule == "" {
		b.Schedule = "0 */8 * * *"
	}

	// server
	if cfg.Server.Listen == "" {
		cfg.Server.Listen = ":8080"
	}
	if cfg.Server.Timeout == 0 {
		cfg.Server.Timeout = 30 * time.Second
	}

	// tools
	if cfg.Tools.HistorySize == 0 {
		cfg.Tools.HistorySize = 100
	}
	if cfg.Tools.CacheTTL == 0 {
		cfg.Tools.CacheTTL = 30 * time.Second
	}
	if cfg.Tools.CacheSize == 0 {
		cfg.Tools.CacheSize = 50
	}
}

// validate checks configuration for correctness
func validate(cfg *Config) error {
	// validate LLM config
	if cfg.LLM.Endpoint == "" {
		return fmt.Errorf("llm.endpoint is required")
	}
	if cfg.LLM.Model == "" {
		return fmt.Errorf("llm.model is required")
	}
	if cfg.LLM.Temperature < 0 || cfg.LLM.Temperature > 2 {
		return fmt.Errorf("llm.temperature must be between 0 and 2")
	}
	if cfg.LLM.Attempts < 1 {
		return fmt.Errorf("llm.attempts must be at least 1")
	}

	// validate bot runner config
	if cfg.Bot.ReplyDelayMin > cfg.Bot.ReplyDelayMax {
		return fmt.Errorf("bot.reply_delay_min must not exceed bot.reply_delay_max")
	}
	if cfg.Bot.RecentDays < 0 || cfg.Bot.PostsPerSubreddit < 0 || cfg.Bot.CommentsToUpvote < 0 {
		return fmt.Errorf("bot limits must be non-negative")
	}
	if _, err := cron.ParseStandard(cfg.Bot.Schedule); err != nil {
		return fmt.Errorf("bot.schedule %q is invalid: %w", cfg.Bot.Schedule, err)
	}

	// validate server config
	if cfg.Server.Timeout < time.Second {
		return fmt.Errorf("server timeout must be at least 1 second")
	}

	// validate tools config
	if cfg.Tools.HistorySize < 1 {
		return fmt.Errorf("tools.history_size must be at least 1")
	}
	if cfg.Tools.CacheSize < 1 {
		return fmt.Errorf("tools.cache_size must be at least 1")
	}

	return nil
}
