package repository

import (
	"context"
	"errors"

	"remindme/internal/model"
)

// ErrIndexOutOfRange is returned when an index does not address an existing
// entry in the user's collection.
var ErrIndexOutOfRange = errors.New("index out of range")

// Repository is the narrow interface over the external sorted-set service.
// One ordered collection per user, keyed by due timestamp. All operations are
// atomic at single-entry granularity; the adapter adds no locking of its own,
// so concurrent mutation of one user's collection must be tolerated by
// callers.
type Repository interface {
	// Add inserts a reminder with the due timestamp as its sort score.
	Add(ctx context.Context, userID string, dueAt int64, text string) error

	// RemoveAt removes and returns the entry at the 0-based index.
	RemoveAt(ctx context.Context, userID string, index int) (model.ReminderEntry, error)

	// ReplaceAt replaces the entry at the 0-based index wholesale and
	// returns the previous entry.
	ReplaceAt(ctx context.Context, userID string, index int, dueAt int64, text string) (model.ReminderEntry, error)

	// RangeAll returns all entries ordered by due timestamp ascending.
	RangeAll(ctx context.Context, userID string) ([]model.ReminderEntry, error)

	// RangeByScore returns entries with dueAt in the half-open interval
	// [start, end), ordered ascending.
	RangeByScore(ctx context.Context, userID string, start, end int64) ([]model.ReminderEntry, error)

	// Rank returns the 0-based position of the entry in the collection.
	Rank(ctx context.Context, userID string, entry model.ReminderEntry) (int, error)

	// Count returns the number of pending entries.
	Count(ctx context.Context, userID string) (int, error)

	// PopEarliest atomically removes and returns the earliest-due entry.
	// The second return is false when the collection is empty.
	PopEarliest(ctx context.Context, userID string) (model.ReminderEntry, bool, error)

	// RegisterUser adds the user to the global registry. Membership is added
	// on first reminder creation and never removed.
	RegisterUser(ctx context.Context, userID string) error

	// AllUsers returns every registered user id.
	AllUsers(ctx context.Context) ([]string, error)
}
