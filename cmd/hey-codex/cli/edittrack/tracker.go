package edittrack

import (
	"context"
	"log/slog"

	"github.com/heycodex/cli/cmd/hey-codex/cli/logging"
)

// DefaultReviewThreshold is the distinct-file count that triggers a review suggestion.
const DefaultReviewThreshold = 3

// Tracker records edits against a Store and decides when a review is due.
type Tracker struct {
	store     Store
	threshold int
}

// Result describes the session after one recorded edit.
type Result struct {
	// Distinct is the number of distinct paths edited so far.
	Distinct int
	// Added is true when the path had not been seen in this session before.
	Added bool
	// ReviewDue is true only on the edit that brought Distinct to the threshold.
	ReviewDue bool
}

// NewTracker creates a Tracker. Thresholds below 1 use DefaultReviewThreshold.
func NewTracker(store Store, threshold int) *Tracker {
	if threshold < 1 {
		threshold = DefaultReviewThreshold
	}
	return &Tracker{store: store, threshold: threshold}
}

// Threshold returns the configured review threshold.
func (t *Tracker) Threshold() int {
	return t.threshold
}

// Record adds path to the session identified by key. Store failures degrade
// to an empty history or a lost append; they are logged and never returned.
func (t *Tracker) Record(ctx context.Context, key, path string) Result {
	ctx = logging.WithComponent(ctx, "edittrack")

	existing, err := t.store.Load(ctx, key)
	if err != nil {
		logging.Warn(ctx, "edit counter unreadable, starting empty",
			slog.String("error", err.Error()),
		)
		existing = nil
	}

	set := NewPathSet(existing)
	added := false
	if !set.Contains(path) {
		if err := t.store.Append(ctx, key, path); err != nil {
			logging.Warn(ctx, "edit counter append failed",
				slog.String("error", err.Error()),
			)
		}
		set.Add(path)
		added = true
	}

	distinct := set.Len()
	logging.Debug(ctx, "edit recorded",
		slog.Int("distinct", distinct),
		slog.Bool("added", added),
		slog.Int("threshold", t.threshold),
	)

	return Result{
		Distinct:  distinct,
		Added:     added,
		ReviewDue: added && distinct == t.threshold,
	}
}
