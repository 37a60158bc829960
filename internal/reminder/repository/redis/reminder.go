package redis

import (
	"context"
	"errors"
	"fmt"

	goredis "github.com/redis/go-redis/v9"

	"remindme/internal/model"
	"remindme/internal/reminder/repository"
)

// Persistence layout: one sorted set per user keyed by the user id, each
// member the literal "<unixTimestamp>.<taskText>" string scored by the same
// timestamp, plus the global "users" set.

func (r *implRepository) Add(ctx context.Context, userID string, dueAt int64, text string) error {
	entry := model.ReminderEntry{DueAt: dueAt, Text: text}
	err := r.client.ZAdd(ctx, userID, goredis.Z{
		Score:  float64(dueAt),
		Member: entry.Member(),
	}).Err()
	if err != nil {
		return fmt.Errorf("failed to add reminder for user %s: %w", userID, err)
	}
	return nil
}

func (r *implRepository) RemoveAt(ctx context.Context, userID string, index int) (model.ReminderEntry, error) {
	member, err := r.memberAt(ctx, userID, index)
	if err != nil {
		return model.ReminderEntry{}, err
	}
	if err := r.client.ZRem(ctx, userID, member).Err(); err != nil {
		return model.ReminderEntry{}, fmt.Errorf("failed to remove reminder for user %s: %w", userID, err)
	}
	return model.ParseMember(member)
}

func (r *implRepository) ReplaceAt(ctx context.Context, userID string, index int, dueAt int64, text string) (model.ReminderEntry, error) {
	member, err := r.memberAt(ctx, userID, index)
	if err != nil {
		return model.ReminderEntry{}, err
	}
	old, err := model.ParseMember(member)
	if err != nil {
		return model.ReminderEntry{}, err
	}

	// The value is replaced wholesale, never partially updated.
	replacement := model.ReminderEntry{DueAt: dueAt, Text: text}
	if err := r.client.ZRem(ctx, userID, member).Err(); err != nil {
		return model.ReminderEntry{}, fmt.Errorf("failed to replace reminder for user %s: %w", userID, err)
	}
	if err := r.client.ZAdd(ctx, userID, goredis.Z{
		Score:  float64(dueAt),
		Member: replacement.Member(),
	}).Err(); err != nil {
		return model.ReminderEntry{}, fmt.Errorf("failed to replace reminder for user %s: %w", userID, err)
	}
	return old, nil
}

func (r *implRepository) RangeAll(ctx context.Context, userID string) ([]model.ReminderEntry, error) {
	members, err := r.client.ZRange(ctx, userID, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to range reminders for user %s: %w", userID, err)
	}
	return r.parseMembers(ctx, userID, members), nil
}

func (r *implRepository) RangeByScore(ctx context.Context, userID string, start, end int64) ([]model.ReminderEntry, error) {
	members, err := r.client.ZRangeByScore(ctx, userID, &goredis.ZRangeBy{
		Min: fmt.Sprintf("%d", start),
		Max: fmt.Sprintf("(%d", end), // exclusive upper bound
	}).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to range reminders by score for user %s: %w", userID, err)
	}
	return r.parseMembers(ctx, userID, members), nil
}

func (r *implRepository) Rank(ctx context.Context, userID string, entry model.ReminderEntry) (int, error) {
	rank, err := r.client.ZRank(ctx, userID, entry.Member()).Result()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return 0, repository.ErrIndexOutOfRange
		}
		return 0, fmt.Errorf("failed to rank reminder for user %s: %w", userID, err)
	}
	return int(rank), nil
}

func (r *implRepository) Count(ctx context.Context, userID string) (int, error) {
	n, err := r.client.ZCard(ctx, userID).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to count reminders for user %s: %w", userID, err)
	}
	return int(n), nil
}

func (r *implRepository) PopEarliest(ctx context.Context, userID string) (model.ReminderEntry, bool, error) {
	popped, err := r.client.ZPopMin(ctx, userID, 1).Result()
	if err != nil {
		return model.ReminderEntry{}, false, fmt.Errorf("failed to pop earliest reminder for user %s: %w", userID, err)
	}
	if len(popped) == 0 {
		return model.ReminderEntry{}, false, nil
	}
	member, ok := popped[0].Member.(string)
	if !ok {
		return model.ReminderEntry{}, false, fmt.Errorf("unexpected member type %T for user %s", popped[0].Member, userID)
	}
	entry, err := model.ParseMember(member)
	if err != nil {
		return model.ReminderEntry{}, false, err
	}
	return entry, true, nil
}

func (r *implRepository) RegisterUser(ctx context.Context, userID string) error {
	if _, cached := r.knownUsers.Get(userID); cached {
		return nil
	}
	if err := r.client.SAdd(ctx, usersKey, userID).Err(); err != nil {
		return fmt.Errorf("failed to register user %s: %w", userID, err)
	}
	r.knownUsers.Add(userID, struct{}{})
	return nil
}

func (r *implRepository) AllUsers(ctx context.Context) ([]string, error) {
	users, err := r.client.SMembers(ctx, usersKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// memberAt reads the raw member at the 0-based index.
func (r *implRepository) memberAt(ctx context.Context, userID string, index int) (string, error) {
	if index < 0 {
		return "", repository.ErrIndexOutOfRange
	}
	members, err := r.client.ZRange(ctx, userID, int64(index), int64(index)).Result()
	if err != nil {
		return "", fmt.Errorf("failed to read reminder at index %d for user %s: %w", index, userID, err)
	}
	if len(members) == 0 {
		return "", repository.ErrIndexOutOfRange
	}
	return members[0], nil
}

// parseMembers drops malformed members instead of failing the whole range.
func (r *implRepository) parseMembers(ctx context.Context, userID string, members []string) []model.ReminderEntry {
	entries := make([]model.ReminderEntry, 0, len(members))
	for _, member := range members {
		entry, err := model.ParseMember(member)
		if err != nil {
			r.l.Warnf(ctx, "redis repository: skipping malformed member for user %s: %v", userID, err)
			continue
		}
		entries = append(entries, entry)
	}
	return entries
}
