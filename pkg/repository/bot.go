package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"

	"github.com/umputun/redditbot/pkg/domain"
)

// sentinel errors for bot lookups
var (
	ErrBotNotFound = errors.New("bot not found")
	ErrBotInactive = errors.New("bot exists but is inactive")
)

// BotRepository handles bot config rows
type BotRepository struct {
	db       *sqlx.DB
	validate *validator.Validate
}

// NewBotRepository creates a new bot repository
func NewBotRepository(db *sqlx.DB) *BotRepository {
	return &BotRepository{db: db, validate: validator.New()}
}

// botRow is the reddit_bots row, most columns are nullable on supabase
type botRow struct {
	ID         string         `db:"id"`
	Keywords   sql.NullString `db:"keywords"`
	FixedSubs  sql.NullString `db:"fixed_subs"`
	MaxSubs    sql.NullInt64  `db:"max_subs"`
	MaxReplies sql.NullInt64  `db:"max_replies"`
	MaxUpvotes sql.NullInt64  `db:"max_upvotes"`
	GroqPrompt sql.NullString `db:"groq_prompt"`
	StyleTag   sql.NullString `db:"style_tag"`
	Active     bool           `db:"active"`
	ClientID   sql.NullString `db:"reddit_client_id"`
	Secret     sql.NullString `db:"reddit_secret"`
	Refresh    sql.NullString `db:"reddit_refresh"`
	UserAgent  sql.NullString `db:"user_agent"`
}

const botColumns = `id, keywords, fixed_subs, max_subs, max_replies, max_upvotes, groq_prompt, style_tag,
	active, reddit_client_id, reddit_secret, reddit_refresh, user_agent`

// Get loads the active bot by id. Returns ErrBotNotFound if there is no such row
// and ErrBotInactive if the row is disabled.
func (r *BotRepository) Get(ctx context.Context, id string) (domain.BotConfig, error) {
	var row botRow
	query := r.db.Rebind(`SELECT ` + botColumns + ` FROM reddit_bots WHERE id = ?`)
	err := r.db.GetContext(ctx, &row, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.BotConfig{}, fmt.Errorf("bot %q: %w", id, ErrBotNotFound)
	}
	if err != nil {
		return domain.BotConfig{}, fmt.Errorf("get bot %q: %w", id, err)
	}
	if !row.Active {
		return domain.BotConfig{}, fmt.Errorf("bot %q: %w", id, ErrBotInactive)
	}

	bot := row.toDomain()
	if err := r.validate.Struct(bot); err != nil {
		return domain.BotConfig{}, fmt.Errorf("invalid bot %q: %w", id, err)
	}
	return bot, nil
}

// ActiveIDs returns ids of all active bots
func (r *BotRepository) ActiveIDs(ctx context.Context) ([]string, error) {
	var ids []string
	query := r.db.Rebind(`SELECT id FROM reddit_bots WHERE active = ? ORDER BY id`)
	if err := r.db.SelectContext(ctx, &ids, query, true); err != nil {
		return nil, fmt.Errorf("get active bots: %w", err)
	}
	return ids, nil
}

// Save creates or replaces the bot row
func (r *BotRepository) Save(ctx context.Context, bot domain.BotConfig) error {
	if err := r.validate.Struct(bot); err != nil {
		return fmt.Errorf("invalid bot %q: %w", bot.ID, err)
	}

	query := r.db.Rebind(`
		INSERT INTO reddit_bots (` + botColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			keywords = excluded.keywords,
			fixed_subs = excluded.fixed_subs,
			max_subs = excluded.max_subs,
			max_replies = excluded.max_replies,
			max_upvotes = excluded.max_upvotes,
			groq_prompt = excluded.groq_prompt,
			style_tag = excluded.style_tag,
			active = excluded.active,
			reddit_client_id = excluded.reddit_client_id,
			reddit_secret = excluded.reddit_secret,
			reddit_refresh = excluded.reddit_refresh,
			user_agent = excluded.user_agent
	`)

	return newRetrier().Do(ctx, func() error {
		_, err := r.db.ExecContext(ctx, query, bot.ID, formatList(bot.Keywords), formatList(bot.FixedSubs),
			nullInt(bot.MaxSubs), nullInt(bot.MaxReplies), nullInt(bot.MaxUpvotes),
			nullString(bot.Prompt), nullString(bot.StyleTag), bot.Active,
			nullString(bot.Credentials.ClientID), nullString(bot.Credentials.ClientSecret),
			nullString(bot.Credentials.RefreshToken), nullString(bot.Credentials.UserAgent))
		if err != nil {
			if isLockError(err) {
				return err // retry
			}
			return &criticalError{err: fmt.Errorf("save bot %q: %w", bot.ID, err)}
		}
		return nil
	}, errCritical)
}

func (b botRow) toDomain() domain.BotConfig {
	return domain.BotConfig{
		ID:         b.ID,
		Keywords:   parseList(b.Keywords.String),
		FixedSubs:  parseList(b.FixedSubs.String),
		MaxSubs:    int(b.MaxSubs.Int64),
		MaxReplies: int(b.MaxReplies.Int64),
		MaxUpvotes: int(b.MaxUpvotes.Int64),
		Prompt:     b.GroqPrompt.String,
		StyleTag:   b.StyleTag.String,
		Active:     b.Active,
		Credentials: domain.Credentials{
			ClientID:     b.ClientID.String,
			ClientSecret: b.Secret.String,
			RefreshToken: b.Refresh.String,
			UserAgent:    b.UserAgent.String,
		},
	}
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullInt(v int) sql.NullInt64 {
	return sql.NullInt64{Int64: int64(v), Valid: v != 0}
}
