package usecase

import (
	"context"
	"fmt"
	"strings"

	"remindme/internal/model"
)

// RenderList renders the user's reminders. A nil period means the full list
// with absolute dates; a period restricts the list to one day and shows
// clock times with keys numbered by global rank, so the key printed next to
// an entry addresses it in keyed commands regardless of the filter.
func (uc *implUseCase) RenderList(ctx context.Context, userID string, period *model.Period) (string, error) {
	count, err := uc.repo.Count(ctx, userID)
	if err != nil {
		return "", err
	}
	if count == 0 {
		return replyNoTasks, nil
	}

	if period == nil {
		entries, err := uc.repo.RangeAll(ctx, userID)
		if err != nil {
			return "", err
		}
		return uc.renderEntries("Full list", entries, 0, fmtDayClock), nil
	}

	entries, err := uc.repo.RangeByScore(ctx, userID, period.Start, period.End)
	if err != nil {
		return "", err
	}
	if len(entries) == 0 {
		return replyNoTasksDated, nil
	}

	startIndex, err := uc.repo.Rank(ctx, userID, entries[0])
	if err != nil {
		return "", err
	}
	title := uc.dueTime(period.Start).Format(fmtDay)
	return uc.renderEntries(title, entries, startIndex, fmtClock), nil
}

func (uc *implUseCase) renderEntries(title string, entries []model.ReminderEntry, startIndex int, timeFormat string) string {
	var b strings.Builder
	b.WriteString(title)
	b.WriteByte('\n')
	for i, entry := range entries {
		fmt.Fprintf(&b, "%d) %s %s {%d}\n",
			i+1,
			uc.dueTime(entry.DueAt).Format(timeFormat),
			capitalize(entry.Text),
			i+startIndex+1)
	}
	return b.String()
}
