package repository

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/go-pkgz/repeater/v2"
)

// criticalError wraps an error to signal repeater to stop retrying
type criticalError struct {
	err error
}

func (e *criticalError) Error() string {
	return e.err.Error()
}

func (e *criticalError) Unwrap() error {
	return e.err
}

// Is matches any criticalError, so errCritical can be passed to repeater as a terminating error
func (e *criticalError) Is(target error) bool {
	_, ok := target.(*criticalError)
	return ok
}

var errCritical = &criticalError{}

// isLockError checks if an error is a SQLite lock/busy error
func isLockError(err error) bool {
	if err == nil {
		return false
	}
	errStr := err.Error()
	return strings.Contains(errStr, "SQLITE_BUSY") ||
		strings.Contains(errStr, "database is locked") ||
		strings.Contains(errStr, "database table is locked")
}

// newRetrier makes the backoff used for writes that may hit a locked database
func newRetrier() *repeater.Repeater {
	return repeater.NewBackoff(5, 50*time.Millisecond, repeater.WithMaxDelay(2*time.Second))
}

// parseList decodes list columns stored as postgres array literals {a,b}, JSON arrays or comma separated text
func parseList(s string) []string {
	s = strings.TrimSpace(s)
	if s == "" || s == "{}" || s == "[]" {
		return []string{}
	}

	if strings.HasPrefix(s, "[") {
		var res []string
		if err := json.Unmarshal([]byte(s), &res); err == nil {
			return cleanList(res)
		}
	}

	if strings.HasPrefix(s, "{") && strings.HasSuffix(s, "}") {
		s = s[1 : len(s)-1]
	}
	return cleanList(strings.Split(s, ","))
}

func cleanList(items []string) []string {
	res := make([]string, 0, len(items))
	for _, item := range items {
		item = strings.Trim(strings.TrimSpace(item), `"`)
		if item != "" {
			res = append(res, item)
		}
	}
	return res
}

// formatList encodes a list as a postgres array literal, readable back by parseList
func formatList(items []string) string {
	quoted := make([]string, 0, len(items))
	for _, item := range items {
		item = strings.ReplaceAll(strings.TrimSpace(item), `"`, "")
		if item != "" {
			quoted = append(quoted, `"`+item+`"`)
		}
	}
	return "{" + strings.Join(quoted, ",") + "}"
}
