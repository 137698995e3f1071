package cli

import (
	"errors"

	"github.com/sadopc/timetrack/internal/store"
)

var errNothingLeft = errors.New("nothing left to do today")

var explanations = []struct {
	err  error
	text string
}{
	{store.ErrAlreadyOngoing, "Another activity is already running. End it with `timetrack end` first."},
	{store.ErrInvalidID, "No activity or todo with that id."},
	{store.ErrNoCurrentActivity, "No activity is running."},
	{store.ErrPomoOngoing, "A pomodoro is running. Use `timetrack end --force` to stop it early."},
	{store.ErrEqualIDs, "Both positions are the same."},
	{store.ErrFirstInvalid, "The first position does not exist."},
	{store.ErrSecondInvalid, "The second position does not exist."},
	{store.ErrInvalidSelection, "No bucket at that position."},
	{store.ErrInvalidTargetIndex, "The target position does not exist."},
	{store.ErrInvalidBucket, "No such bucket. Create it with `timetrack bucket create`."},
	{errNothingLeft, "Every activity reached its target. Nothing left to do today."},
	{errHistoryDisabled, "Session history is disabled. Set history.enabled = true in the config file."},
}

func isDomainError(err error) bool {
	if err == nil {
		return false
	}
	for _, e := range explanations {
		if errors.Is(err, e.err) {
			return true
		}
	}
	return false
}

// explain returns the one-line message shown for a domain error.
func explain(err error) string {
	for _, e := range explanations {
		if errors.Is(err, e.err) {
			return e.text
		}
	}
	return err.Error()
}
