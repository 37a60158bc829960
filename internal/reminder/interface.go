package reminder

import (
	"context"
	"time"

	"remindme/internal/model"
)

// UseCase defines the business logic interface for the reminder domain.
type UseCase interface {
	// HandleText interprets one user message and produces either a direct
	// reply (list/help/error) or a confirmation prompt for a mutation.
	// now is the reference time for relative date resolution.
	HandleText(ctx context.Context, userID, text string, now time.Time) (Reply, error)

	// ApplyConfirmed applies a confirmed mutation payload to the store and
	// returns the acknowledgement text. A declined or malformed payload is a
	// no-op and returns an empty string.
	ApplyConfirmed(ctx context.Context, userID, payload string) (string, error)

	// RenderList renders the user's reminders, optionally restricted to a
	// half-open timestamp period.
	RenderList(ctx context.Context, userID string, period *model.Period) (string, error)
}
