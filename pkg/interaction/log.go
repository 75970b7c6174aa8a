// Package interaction keeps the append-only log of bot actions in a local JSON file.
package interaction

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	log "github.com/go-pkgz/lgr"

	"github.com/umputun/redditbot/pkg/domain"
)

// file is the on-disk layout
type file struct {
	Interactions []domain.Interaction `json:"interactions"`
}

// Log is the interaction log bound to a file. The whole file is rewritten on every record.
type Log struct {
	path    string
	mu      sync.Mutex
	records []domain.Interaction
	replied map[string]bool
	now     func() time.Time
}

// Open loads the log from path. Missing file gives an empty log, unreadable content is reported
// and replaced by an empty log on the next write.
func Open(path string) (*Log, error) {
	res := &Log{path: path, replied: map[string]bool{}, now: time.Now}
	records, err := Load(path)
	if err != nil {
		log.Printf("[WARN] can't load interaction log %s, starting empty: %v", path, err)
		return res, nil
	}
	res.records = records
	for _, r := range records {
		if r.Action == domain.ActionReply && r.PostID != "" {
			res.replied[r.PostID] = true
		}
	}
	log.Printf("[DEBUG] loaded %d interactions from %s", len(records), path)
	return res, nil
}

// Load reads all records from path without binding to it, missing file gives no records
func Load(path string) ([]domain.Interaction, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path comes from config
	if errors.Is(err, os.ErrNotExist) {
		return []domain.Interaction{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read interaction log: %w", err)
	}
	var f file
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse interaction log: %w", err)
	}
	if f.Interactions == nil {
		f.Interactions = []domain.Interaction{}
	}
	return f.Interactions, nil
}

// Record appends the interaction and rewrites the file. Zero timestamp is set to now.
func (l *Log) Record(rec domain.Interaction) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if rec.Timestamp.IsZero() {
		rec.Timestamp = l.now().UTC()
	}
	l.records = append(l.records, rec)
	if rec.Action == domain.ActionReply && rec.PostID != "" {
		l.replied[rec.PostID] = true
	}
	return l.save()
}

// Replied reports whether a reply to the post was recorded
func (l *Log) Replied(postID string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.replied[postID]
}

// Recent returns up to n latest records, oldest first
func (l *Log) Recent(n int) []domain.Interaction {
	l.mu.Lock()
	defer l.mu.Unlock()
	return tail(l.records, n)
}

// Len returns the number of records
func (l *Log) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.records)
}

// Path returns the log file location
func (l *Log) Path() string { return l.path }

// save writes the file atomically through a temp file in the same directory
func (l *Log) save() error {
	data, err := json.MarshalIndent(file{Interactions: l.records}, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal interaction log: %w", err)
	}
	dir := filepath.Dir(l.path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("make log dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".interactions-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp log: %w", err)
	}
	defer os.Remove(tmp.Name()) //nolint:errcheck // gone after rename
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write temp log: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp log: %w", err)
	}
	if err := os.Rename(tmp.Name(), l.path); err != nil {
		return fmt.Errorf("replace interaction log: %w", err)
	}
	return nil
}

func tail(records []domain.Interaction, n int) []domain.Interaction {
	if n <= 0 || n > len(records) {
		n = len(records)
	}
	res := make([]domain.Interaction, n)
	copy(res, records[len(records)-n:])
	return res
}

// Tail returns up to n latest records of the slice, n <= 0 means all
func Tail(records []domain.Interaction, n int) []domain.Interaction {
	return tail(records, n)
}
