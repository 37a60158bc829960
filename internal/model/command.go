package model

import "time"

// CommandKind tags the variant of a parsed user command.
type CommandKind string

const (
	CommandAdd    CommandKind = "add"
	CommandList   CommandKind = "list"
	CommandRemove CommandKind = "remove"
	CommandAlter  CommandKind = "alter"
	CommandMove   CommandKind = "move"
	CommandHelp   CommandKind = "help"
	CommandError  CommandKind = "error"
	CommandNone   CommandKind = "none"
)

// TimeOfDay is a clock time without a date, used by move commands that
// shift a reminder within its existing day.
type TimeOfDay struct {
	Hour   int
	Minute int
}

// Period is a half-open unix timestamp interval [Start, End).
type Period struct {
	Start int64
	End   int64
}

// Command is the structured result of interpreting one user message.
// Exactly one kind is set; the populated fields depend on the kind:
//
//	Add:    Due, Task
//	List:   Period (nil means "all")
//	Remove: Key
//	Alter:  Key, Task
//	Move:   Key, and either Due or TimeOfDay
//	Error:  Message
type Command struct {
	Kind CommandKind

	Due  time.Time
	Task string

	Period *Period

	// Key is 1-based as presented to the user.
	Key int

	// TimeOfDay is set instead of Due when a move carries no date component.
	TimeOfDay *TimeOfDay

	Message string
}

// Mutating reports whether applying the command changes stored reminders,
// which means it must go through the confirmation workflow first.
func (c Command) Mutating() bool {
	switch c.Kind {
	case CommandAdd, CommandRemove, CommandAlter, CommandMove:
		return true
	}
	return false
}
