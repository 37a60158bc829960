package interpreter

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"remindme/internal/model"
)

// ErrNoKey is the user-facing message for a recognized action keyword with no
// usable reminder key after it.
const ErrNoKey = "No key for action was provided"

const defaultHour = 12

// Interpreter turns free-form Russian text into a structured Command.
// It owns its token tables and compiled patterns; Interpret is a pure
// function of the input text and the supplied reference time.
type Interpreter struct {
	loc       *time.Location
	months    map[string]time.Month
	cardinals map[string]int

	prefixRe *regexp.Regexp
	listRe   *regexp.Regexp
	helpRe   *regexp.Regexp
	dateRe   *regexp.Regexp
	timeRe   *regexp.Regexp
}

// New creates an Interpreter resolving dates in the given location.
func New(loc *time.Location) *Interpreter {
	if loc == nil {
		loc = time.Local
	}
	return &Interpreter{
		loc:       loc,
		months:    monthTable(),
		cardinals: cardinalTable(),
		prefixRe: regexp.MustCompile(
			`^(?:(?P<delete>удалить)|(?P<alter>изменить)|(?P<move>перенести))` +
				`(?:\s+(?:номер\s+)?(?P<key>\d+|один|два|три|четыре|пять|шесть|семь|восемь|девять|десять))?`),
		listRe: regexp.MustCompile(`^список`),
		helpRe: regexp.MustCompile(`^помощь`),
		dateRe: regexp.MustCompile(
			`(?:(?P<today>сегодня)|(?P<tomorrow>завтра)|(?P<day>\b\d{1,2}\b)\s*(?P<month>[а-яё]+))`),
		timeRe: regexp.MustCompile(
			`(?:в\s)?(?:(?P<withsep>\b\d{1,2}:\d{2}\b)|(?P<nosep>\b\d{1,4}\b))`),
	}
}

// Interpret parses one user message against the reference time now.
// Matching precedence: prefix commands first, then free-form add.
// All failure modes resolve to an Error or None command, never a panic.
func (p *Interpreter) Interpret(text string, now time.Time) model.Command {
	lower := strings.ToLower(strings.TrimSpace(text))
	if lower == "" {
		return model.Command{Kind: model.CommandNone}
	}

	if p.helpRe.MatchString(lower) {
		return model.Command{Kind: model.CommandHelp}
	}
	if loc := p.listRe.FindStringIndex(lower); loc != nil {
		return p.interpretList(strings.TrimSpace(lower[loc[1]:]), now)
	}
	if m := p.prefixRe.FindStringSubmatchIndex(lower); m != nil {
		return p.interpretKeyed(lower, m, now)
	}

	return p.interpretAdd(lower, now)
}

func (p *Interpreter) interpretList(rest string, now time.Time) model.Command {
	day, _, ok := p.parseDate(rest, now)
	if !ok {
		return model.Command{Kind: model.CommandList}
	}
	start := day.Unix()
	// Half-open interval covering the whole day.
	return model.Command{
		Kind:   model.CommandList,
		Period: &model.Period{Start: start, End: start + 86400},
	}
}

// interpretKeyed handles delete/alter/move, which all address an existing
// reminder by its 1-based key.
func (p *Interpreter) interpretKeyed(lower string, m []int, now time.Time) model.Command {
	group := func(name string) string {
		i := p.prefixRe.SubexpIndex(name)
		if i < 0 || m[2*i] < 0 {
			return ""
		}
		return lower[m[2*i]:m[2*i+1]]
	}

	keyToken := group("key")
	if keyToken == "" {
		return model.Command{Kind: model.CommandError, Message: ErrNoKey}
	}
	key, ok := p.cardinals[keyToken]
	if !ok {
		n, err := strconv.Atoi(keyToken)
		if err != nil || n < 1 {
			return model.Command{Kind: model.CommandError, Message: ErrNoKey}
		}
		key = n
	}

	rest := strings.TrimSpace(lower[m[1]:])

	switch {
	case group("delete") != "":
		return model.Command{Kind: model.CommandRemove, Key: key}

	case group("alter") != "":
		return model.Command{Kind: model.CommandAlter, Key: key, Task: rest}

	case group("move") != "":
		return p.interpretMove(key, rest, now)
	}

	return model.Command{Kind: model.CommandNone}
}

// interpretMove parses the new time for a move command. A bare time
// expression is a same-day shift and is tagged as a TimeOfDay; only an
// explicit date makes the move absolute.
func (p *Interpreter) interpretMove(key int, rest string, now time.Time) model.Command {
	day, remaining, dateOK := p.parseDate(rest, now)
	if dateOK {
		hour, min := defaultHour, 0
		if h, mn, _, ok := p.parseTime(remaining); ok {
			hour, min = h, mn
		}
		if !clockValid(hour, min) {
			return model.Command{Kind: model.CommandNone}
		}
		return model.Command{
			Kind: model.CommandMove,
			Key:  key,
			Due:  day.Add(time.Duration(hour)*time.Hour + time.Duration(min)*time.Minute),
		}
	}

	if hour, min, _, ok := p.parseTime(rest); ok {
		if !clockValid(hour, min) {
			return model.Command{Kind: model.CommandNone}
		}
		return model.Command{
			Kind:      model.CommandMove,
			Key:       key,
			TimeOfDay: &model.TimeOfDay{Hour: hour, Minute: min},
		}
	}

	return model.Command{Kind: model.CommandNone}
}

// interpretAdd is the free-form fallback: optional date expression, optional
// time expression, remainder is the task text.
func (p *Interpreter) interpretAdd(lower string, now time.Time) model.Command {
	day, rest, dateOK := p.parseDate(lower, now)

	if !dateOK {
		// No date: assume the current day, time expression required.
		hour, min, rest, timeOK := p.parseTime(lower)
		if !timeOK || !clockValid(hour, min) {
			return model.Command{Kind: model.CommandNone}
		}
		day = startOfDay(now, p.loc)
		return p.buildAdd(day, hour, min, rest)
	}

	hour, min := defaultHour, 0
	if h, mn, remaining, ok := p.parseTime(rest); ok {
		hour, min, rest = h, mn, remaining
	}
	if !clockValid(hour, min) {
		return model.Command{Kind: model.CommandNone}
	}
	return p.buildAdd(day, hour, min, rest)
}

func (p *Interpreter) buildAdd(day time.Time, hour, min int, task string) model.Command {
	task = strings.TrimSpace(task)
	if task == "" {
		// Task text is mandatory: a date with nothing to remind about is not a command.
		return model.Command{Kind: model.CommandNone}
	}
	return model.Command{
		Kind: model.CommandAdd,
		Due:  day.Add(time.Duration(hour)*time.Hour + time.Duration(min)*time.Minute),
		Task: task,
	}
}

// parseDate scans text for a date expression and returns the start of the
// resolved day plus the text with the matched span removed. An unknown month
// name fails silently so the caller can fall through to time-only parsing.
func (p *Interpreter) parseDate(text string, now time.Time) (day time.Time, rest string, ok bool) {
	m := p.dateRe.FindStringSubmatchIndex(text)
	if m == nil {
		return time.Time{}, text, false
	}
	group := func(name string) string {
		i := p.dateRe.SubexpIndex(name)
		if i < 0 || m[2*i] < 0 {
			return ""
		}
		return text[m[2*i]:m[2*i+1]]
	}

	switch {
	case group("today") != "":
		day = startOfDay(now, p.loc)
	case group("tomorrow") != "":
		// AddDate normalizes across month and year boundaries.
		day = startOfDay(now, p.loc).AddDate(0, 0, 1)
	default:
		month, known := p.months[group("month")]
		if !known {
			return time.Time{}, text, false
		}
		d, err := strconv.Atoi(group("day"))
		if err != nil || !dayValid(now.Year(), month, d) {
			return time.Time{}, text, false
		}
		day = time.Date(now.Year(), month, d, 0, 0, 0, 0, p.loc)
	}

	return day, cutSpan(text, m[0], m[1]), true
}

// parseTime scans text for a time expression: HH:MM, or a bare 1-4 digit run
// read positionally (1-2 digits: hour, 3: H MM, 4: HH MM). Bounds are not
// checked here; callers validate via clockValid before building a datetime.
func (p *Interpreter) parseTime(text string) (hour, min int, rest string, ok bool) {
	m := p.timeRe.FindStringSubmatchIndex(text)
	if m == nil {
		return 0, 0, text, false
	}
	group := func(name string) string {
		i := p.timeRe.SubexpIndex(name)
		if i < 0 || m[2*i] < 0 {
			return ""
		}
		return text[m[2*i]:m[2*i+1]]
	}

	if withSep := group("withsep"); withSep != "" {
		h, mn, _ := strings.Cut(withSep, ":")
		hour, _ = strconv.Atoi(h)
		min, _ = strconv.Atoi(mn)
		return hour, min, cutSpan(text, m[0], m[1]), true
	}

	noSep := group("nosep")
	switch len(noSep) {
	case 1, 2:
		hour, _ = strconv.Atoi(noSep)
	case 3:
		hour, _ = strconv.Atoi(noSep[:1])
		min, _ = strconv.Atoi(noSep[1:])
	default:
		hour, _ = strconv.Atoi(noSep[:2])
		min, _ = strconv.Atoi(noSep[2:])
	}
	return hour, min, cutSpan(text, m[0], m[1]), true
}

func clockValid(hour, min int) bool {
	return hour >= 0 && hour <= 23 && min >= 0 && min <= 59
}

func dayValid(year int, month time.Month, day int) bool {
	if day < 1 || day > 31 {
		return false
	}
	// Reject days normalized into the next month (e.g. Feb 30).
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return t.Month() == month
}

func startOfDay(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

func cutSpan(s string, start, end int) string {
	return strings.TrimSpace(strings.TrimSpace(s[:start]) + " " + strings.TrimSpace(s[end:]))
}
