package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"

	log "github.com/go-pkgz/lgr"
)

// ErrNoActiveBots returned by RunAll when there is nothing to run
var ErrNoActiveBots = errors.New("no active bots")

// RunAll runs each bot in turn. A failed bot doesn't stop the others, the error lists all failures.
func RunAll(ctx context.Context, ids []string, run func(ctx context.Context, id string) error) error {
	if len(ids) == 0 {
		return ErrNoActiveBots
	}

	var failed []string
	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return err
		}
		log.Printf("[INFO] running bot %s", id)
		if err := run(ctx, id); err != nil {
			log.Printf("[ERROR] bot %s failed: %v", id, err)
			failed = append(failed, id)
		}
	}

	if len(failed) > 0 {
		return fmt.Errorf("%d of %d bots failed: %s", len(failed), len(ids), strings.Join(failed, ", "))
	}
	return nil
}
