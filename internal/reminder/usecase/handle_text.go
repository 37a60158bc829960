package usecase

import (
	"context"
	"fmt"
	"time"

	"remindme/internal/confirm"
	"remindme/internal/model"
	"remindme/internal/reminder"
)

// HandleText interprets one user message. List, help and parse failures are
// answered directly; mutating commands are turned into confirmation prompts
// whose Yes button carries the fully encoded mutation, so nothing is stored
// server-side between the prompt and the button press.
func (uc *implUseCase) HandleText(ctx context.Context, userID, text string, now time.Time) (reminder.Reply, error) {
	cmd := uc.interp.Interpret(text, now)

	switch cmd.Kind {
	case model.CommandHelp:
		return reminder.Reply{Text: helpMessage}, nil

	case model.CommandError:
		return reminder.Reply{Text: cmd.Message}, nil

	case model.CommandList:
		rendered, err := uc.RenderList(ctx, userID, cmd.Period)
		if err != nil {
			return reminder.Reply{}, err
		}
		return reminder.Reply{Text: rendered}, nil

	case model.CommandAdd:
		return uc.promptAdd(cmd), nil

	case model.CommandRemove:
		return uc.promptRemove(ctx, userID, cmd)

	case model.CommandAlter:
		return uc.promptAlter(ctx, userID, cmd)

	case model.CommandMove:
		return uc.promptMove(ctx, userID, cmd)
	}

	return reminder.Reply{Text: replyUnparsed}, nil
}

func (uc *implUseCase) promptAdd(cmd model.Command) reminder.Reply {
	payload := confirm.EncodeAdd(cmd.Due.Unix(), cmd.Task)
	return reminder.Reply{
		Text:     fmt.Sprintf("Set reminder to %s: %q?", cmd.Due.In(uc.loc).Format(fmtDayClock), cmd.Task),
		Keyboard: confirmKeyboard(payload),
	}
}

func (uc *implUseCase) promptRemove(ctx context.Context, userID string, cmd model.Command) (reminder.Reply, error) {
	entry, ok, err := uc.entryAt(ctx, userID, cmd.Key-1)
	if err != nil {
		return reminder.Reply{}, err
	}
	if !ok {
		return reminder.Reply{Text: replyMissingKey(cmd.Key)}, nil
	}
	return reminder.Reply{
		Text:     fmt.Sprintf("Remove task %q?", entry.Text),
		Keyboard: confirmKeyboard(confirm.EncodeRemove(cmd.Key - 1)),
	}, nil
}

func (uc *implUseCase) promptAlter(ctx context.Context, userID string, cmd model.Command) (reminder.Reply, error) {
	entry, ok, err := uc.entryAt(ctx, userID, cmd.Key-1)
	if err != nil {
		return reminder.Reply{}, err
	}
	if !ok {
		return reminder.Reply{Text: replyMissingKey(cmd.Key)}, nil
	}
	// The due timestamp survives an alter untouched.
	payload := confirm.EncodeReplace(cmd.Key-1, entry.DueAt, cmd.Task)
	return reminder.Reply{
		Text:     fmt.Sprintf("Change task %q to %q?", entry.Text, cmd.Task),
		Keyboard: confirmKeyboard(payload),
	}, nil
}

func (uc *implUseCase) promptMove(ctx context.Context, userID string, cmd model.Command) (reminder.Reply, error) {
	entry, ok, err := uc.entryAt(ctx, userID, cmd.Key-1)
	if err != nil {
		return reminder.Reply{}, err
	}
	if !ok {
		return reminder.Reply{Text: replyMissingKey(cmd.Key)}, nil
	}

	newDue := cmd.Due
	if cmd.TimeOfDay != nil {
		// Same-day shift: keep the reminder's date, change only the clock time.
		day := uc.dueTime(entry.DueAt)
		newDue = time.Date(day.Year(), day.Month(), day.Day(),
			cmd.TimeOfDay.Hour, cmd.TimeOfDay.Minute, 0, 0, uc.loc)
	}

	payload := confirm.EncodeReplace(cmd.Key-1, newDue.Unix(), entry.Text)
	return reminder.Reply{
		Text:     fmt.Sprintf("Move task %q to %s?", entry.Text, newDue.In(uc.loc).Format(fmtDayClock)),
		Keyboard: confirmKeyboard(payload),
	}, nil
}

// entryAt reads the entry at the 0-based index, reporting false when the
// index does not address an existing entry.
func (uc *implUseCase) entryAt(ctx context.Context, userID string, index int) (model.ReminderEntry, bool, error) {
	if index < 0 {
		return model.ReminderEntry{}, false, nil
	}
	entries, err := uc.repo.RangeAll(ctx, userID)
	if err != nil {
		return model.ReminderEntry{}, false, err
	}
	if index >= len(entries) {
		return model.ReminderEntry{}, false, nil
	}
	return entries[index], true, nil
}
