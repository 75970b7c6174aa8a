package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
)

// HistoryRepository handles subreddit usage history and the global exclude list
type HistoryRepository struct {
	db *sqlx.DB
}

// NewHistoryRepository creates a new history repository
func NewHistoryRepository(db *sqlx.DB) *HistoryRepository {
	return &HistoryRepository{db: db}
}

// Recent returns subreddits the bot interacted with since the given time
func (r *HistoryRepository) Recent(ctx context.Context, botID string, since time.Time) ([]string, error) {
	var subs []string
	query := r.db.Rebind(`SELECT subreddit FROM subreddit_history
		WHERE bot_id = ? AND last_interaction >= ? ORDER BY last_interaction DESC`)
	if err := r.db.SelectContext(ctx, &subs, query, botID, since.UTC().Truncate(time.Second)); err != nil {
		return nil, fmt.Errorf("get recent subreddits of %q: %w", botID, err)
	}
	return subs, nil
}

// Touch records an interaction of the bot with the subreddit at the given time
func (r *HistoryRepository) Touch(ctx context.Context, botID, subreddit string, at time.Time) error {
	query := r.db.Rebind(`
		INSERT INTO subreddit_history (bot_id, subreddit, last_interaction) VALUES (?, ?, ?)
		ON CONFLICT (bot_id, subreddit) DO UPDATE SET last_interaction = excluded.last_interaction
	`)

	return newRetrier().Do(ctx, func() error {
		_, err := r.db.ExecContext(ctx, query, botID, subreddit, at.UTC().Truncate(time.Second))
		if err != nil {
			if isLockError(err) {
				return err // retry
			}
			return &criticalError{err: fmt.Errorf("update subreddit history: %w", err)}
		}
		return nil
	}, errCritical)
}

// Excluded returns the global exclude list
func (r *HistoryRepository) Excluded(ctx context.Context) ([]string, error) {
	var names []string
	if err := r.db.SelectContext(ctx, &names, `SELECT name FROM excluded_subreddits ORDER BY name`); err != nil {
		return nil, fmt.Errorf("get excluded subreddits: %w", err)
	}
	return names, nil
}

// Exclude adds a subreddit to the global exclude list, names are stored lowercase
func (r *HistoryRepository) Exclude(ctx context.Context, name, reason string) error {
	query := r.db.Rebind(`
		INSERT INTO excluded_subreddits (name, reason) VALUES (?, ?)
		ON CONFLICT (name) DO UPDATE SET reason = excluded.reason
	`)
	if _, err := r.db.ExecContext(ctx, query, strings.ToLower(strings.TrimSpace(name)), reason); err != nil {
		return fmt.Errorf("exclude subreddit %q: %w", name, err)
	}
	return nil
}
