package usecase

import (
	"context"
	"errors"
	"fmt"

	"remindme/internal/confirm"
	"remindme/internal/reminder/repository"
)

// ApplyConfirmed decodes a confirmation payload and applies the encoded store
// mutation. Decoding is total: a declined or malformed payload is a no-op and
// produces no reply text.
func (uc *implUseCase) ApplyConfirmed(ctx context.Context, userID, payload string) (string, error) {
	action, ok := confirm.Decode(payload)
	if !ok {
		return "", nil
	}

	switch action.Kind {
	case confirm.ActionAdd:
		if err := uc.repo.RegisterUser(ctx, userID); err != nil {
			return "", err
		}
		if err := uc.repo.Add(ctx, userID, action.DueAt, action.Text); err != nil {
			return "", err
		}
		return fmt.Sprintf("Reminder has been set to %s", uc.dueTime(action.DueAt).Format(fmtClockDay)), nil

	case confirm.ActionRemove:
		old, err := uc.repo.RemoveAt(ctx, userID, action.Index)
		if errors.Is(err, repository.ErrIndexOutOfRange) {
			return replyMissingKey(action.Index + 1), nil
		}
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("Task %s has been removed!", old.Text), nil

	case confirm.ActionReplace:
		old, err := uc.repo.ReplaceAt(ctx, userID, action.Index, action.DueAt, action.Text)
		if errors.Is(err, repository.ErrIndexOutOfRange) {
			return replyMissingKey(action.Index + 1), nil
		}
		if err != nil {
			return "", err
		}
		if old.Text == action.Text {
			return fmt.Sprintf("Task %q has been moved to %s", old.Text, uc.dueTime(action.DueAt).Format(fmtDayClock)), nil
		}
		return fmt.Sprintf("Task has been updated from %q to %q", old.Text, action.Text), nil
	}

	return "", nil
}
