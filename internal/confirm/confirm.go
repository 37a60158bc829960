// Package confirm packs a proposed reminder mutation into a compact
// reversible payload string carried by a confirmation button, and unpacks it
// back into an action. The server keeps no state between the prompt and the
// button press; the payload is the whole pending mutation.
//
// Wire format (ASCII, dot-delimited):
//
//	add.<ts>.<task>    create a reminder
//	<key>.<ts>.<text>  replace the entry at 0-based key (alter and move)
//	<key>              remove the entry at 0-based key
//	no                 decline, no-op
package confirm

import (
	"fmt"
	"strconv"
	"strings"
)

// Decline is the payload carried by the "No" button.
const Decline = "no"

const addTag = "add"

// ActionKind tags a decoded confirmation action.
type ActionKind int

const (
	ActionNone ActionKind = iota
	ActionAdd
	ActionReplace
	ActionRemove
)

// Action is a decoded, ready-to-apply store mutation.
type Action struct {
	Kind  ActionKind
	Index int // 0-based position in the user's collection
	DueAt int64
	Text  string
}

// EncodeAdd builds the payload for creating a reminder.
func EncodeAdd(dueAt int64, task string) string {
	return fmt.Sprintf("%s.%d.%s", addTag, dueAt, task)
}

// EncodeReplace builds the payload for replacing the entry at the given
// 0-based index. Alter and move both reduce to this mutation.
func EncodeReplace(index int, dueAt int64, text string) string {
	return fmt.Sprintf("%d.%d.%s", index, dueAt, text)
}

// EncodeRemove builds the payload for removing the entry at the given
// 0-based index.
func EncodeRemove(index int) string {
	return strconv.Itoa(index)
}

// Decode is the exact inverse of the encoders. It is total: any malformed
// payload, including the decline sentinel, yields (Action{}, false) and the
// caller performs no mutation.
func Decode(payload string) (Action, bool) {
	if payload == "" || payload == Decline {
		return Action{}, false
	}

	head, tail, found := strings.Cut(payload, ".")
	if !found {
		index, err := strconv.Atoi(head)
		if err != nil || index < 0 {
			return Action{}, false
		}
		return Action{Kind: ActionRemove, Index: index}, true
	}

	ts, text, found := strings.Cut(tail, ".")
	if !found {
		return Action{}, false
	}
	dueAt, err := strconv.ParseInt(ts, 10, 64)
	if err != nil {
		return Action{}, false
	}

	if head == addTag {
		return Action{Kind: ActionAdd, DueAt: dueAt, Text: text}, true
	}

	index, err := strconv.Atoi(head)
	if err != nil || index < 0 {
		return Action{}, false
	}
	return Action{Kind: ActionReplace, Index: index, DueAt: dueAt, Text: text}, true
}
