package model

import (
	"fmt"
	"strconv"
	"strings"
)

// ReminderEntry is one pending reminder in a user's sorted collection.
// DueAt doubles as the sort score and is embedded in the stored member
// string, so it must be unique per user per entry.
type ReminderEntry struct {
	DueAt int64
	Text  string
}

// Member renders the entry in its persisted "<ts>.<text>" form.
func (e ReminderEntry) Member() string {
	return fmt.Sprintf("%d.%s", e.DueAt, e.Text)
}

// ParseMember parses a stored "<ts>.<text>" member string. The text may
// itself contain dots, so only the first separator is significant.
func ParseMember(member string) (ReminderEntry, error) {
	ts, text, found := strings.Cut(member, ".")
	if !found {
		return ReminderEntry{}, fmt.Errorf("malformed reminder member %q", member)
	}
	due, err := strconv.ParseInt(ts, 10, 64)
	if err != nil {
		return ReminderEntry{}, fmt.Errorf("malformed reminder timestamp in %q: %w", member, err)
	}
	return ReminderEntry{DueAt: due, Text: text}, nil
}
