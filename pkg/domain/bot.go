package domain

// default activity limits, used when a bot row or CLI leaves them unset
const (
	DefaultMaxSubreddits = 3
	DefaultMaxReplies    = 10
	DefaultMaxUpvotes    = 20
)

// DefaultKeywords used for subreddit discovery when a bot has none configured
var DefaultKeywords = []string{"slime", "crafts", "kids", "parenting", "home", "toys"}

// BotConfig represents a single bot account and its engagement settings.
// Loaded once per run and not modified afterwards.
type BotConfig struct {
	ID          string   `validate:"required"`
	Keywords    []string `validate:"dive,required"`
	FixedSubs   []string `validate:"dive,required"`
	MaxSubs     int      `validate:"gte=0"`
	MaxReplies  int      `validate:"gte=0"`
	MaxUpvotes  int      `validate:"gte=0"`
	Prompt      string   // custom system prompt for the completion API
	StyleTag    string   // short tone label injected into the prompt
	Active      bool
	Credentials Credentials
}

// Credentials holds per-bot reddit credentials, overriding process-wide ones when set
type Credentials struct {
	ClientID     string
	ClientSecret string
	RefreshToken string
	UserAgent    string
}

// Empty reports whether no credential field is set
func (c Credentials) Empty() bool {
	return c.ClientID == "" && c.ClientSecret == "" && c.RefreshToken == "" && c.UserAgent == ""
}

// WithDefaults returns a copy of the bot config with zero caps and keywords filled in
func (b BotConfig) WithDefaults() BotConfig {
	if b.ID == "" {
		b.ID = "default"
	}
	if len(b.Keywords) == 0 {
		b.Keywords = append([]string(nil), DefaultKeywords...)
	}
	if b.MaxSubs == 0 {
		b.MaxSubs = DefaultMaxSubreddits
	}
	if b.MaxReplies == 0 {
		b.MaxReplies = DefaultMaxReplies
	}
	if b.MaxUpvotes == 0 {
		b.MaxUpvotes = DefaultMaxUpvotes
	}
	return b
}
