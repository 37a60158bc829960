package interpreter_test

import (
	"testing"
	"time"

	"remindme/internal/interpreter"
	"remindme/internal/model"
)

func TestInterpretHelpAndList(t *testing.T) {
	p := interpreter.New(time.UTC)
	now := time.Date(2021, 11, 17, 10, 0, 0, 0, time.UTC)

	t.Run("Help", func(t *testing.T) {
		cmd := p.Interpret("помощь", now)
		if cmd.Kind != model.CommandHelp {
			t.Fatalf("expected help command, got %v", cmd.Kind)
		}
	})

	t.Run("List Full", func(t *testing.T) {
		cmd := p.Interpret("список", now)
		if cmd.Kind != model.CommandList {
			t.Fatalf("expected list command, got %v", cmd.Kind)
		}
		if cmd.Period != nil {
			t.Errorf("expected no period for a bare list, got %+v", cmd.Period)
		}
	})

	t.Run("List Tomorrow", func(t *testing.T) {
		cmd := p.Interpret("список завтра", now)
		if cmd.Kind != model.CommandList {
			t.Fatalf("expected list command, got %v", cmd.Kind)
		}
		if cmd.Period == nil {
			t.Fatal("expected a period for dated list")
		}
		wantStart := time.Date(2021, 11, 18, 0, 0, 0, 0, time.UTC).Unix()
		if cmd.Period.Start != wantStart || cmd.Period.End != wantStart+86400 {
			t.Errorf("expected [%d, %d), got [%d, %d)", wantStart, wantStart+86400, cmd.Period.Start, cmd.Period.End)
		}
	})

	t.Run("List Explicit Date", func(t *testing.T) {
		cmd := p.Interpret("список 20 ноября", now)
		if cmd.Kind != model.CommandList || cmd.Period == nil {
			t.Fatalf("expected dated list command, got %+v", cmd)
		}
		wantStart := time.Date(2021, 11, 20, 0, 0, 0, 0, time.UTC).Unix()
		if cmd.Period.Start != wantStart {
			t.Errorf("expected period start %d, got %d", wantStart, cmd.Period.Start)
		}
	})
}

func TestInterpretKeyedCommands(t *testing.T) {
	p := interpreter.New(time.UTC)
	now := time.Date(2021, 11, 17, 10, 0, 0, 0, time.UTC)

	t.Run("Remove Digit Key", func(t *testing.T) {
		cmd := p.Interpret("удалить 12", now)
		if cmd.Kind != model.CommandRemove || cmd.Key != 12 {
			t.Fatalf("expected remove key 12, got %+v", cmd)
		}
	})

	t.Run("Remove Cardinal Key", func(t *testing.T) {
		cmd := p.Interpret("удалить номер два", now)
		if cmd.Kind != model.CommandRemove || cmd.Key != 2 {
			t.Fatalf("expected remove key 2, got %+v", cmd)
		}
	})

	t.Run("Remove Without Key", func(t *testing.T) {
		cmd := p.Interpret("удалить", now)
		if cmd.Kind != model.CommandError {
			t.Fatalf("expected error command, got %v", cmd.Kind)
		}
		if cmd.Message != interpreter.ErrNoKey {
			t.Errorf("expected %q, got %q", interpreter.ErrNoKey, cmd.Message)
		}
	})

	t.Run("Remove Zero Key", func(t *testing.T) {
		cmd := p.Interpret("удалить 0", now)
		if cmd.Kind != model.CommandError {
			t.Fatalf("expected error command for key 0, got %+v", cmd)
		}
	})

	t.Run("Alter", func(t *testing.T) {
		cmd := p.Interpret("изменить 3 купить хлеб", now)
		if cmd.Kind != model.CommandAlter || cmd.Key != 3 {
			t.Fatalf("expected alter key 3, got %+v", cmd)
		}
		if cmd.Task != "купить хлеб" {
			t.Errorf("expected new text %q, got %q", "купить хлеб", cmd.Task)
		}
	})

	t.Run("Move To Time Of Day", func(t *testing.T) {
		cmd := p.Interpret("перенести 2 на 18:30", now)
		if cmd.Kind != model.CommandMove || cmd.Key != 2 {
			t.Fatalf("expected move key 2, got %+v", cmd)
		}
		if cmd.TimeOfDay == nil || cmd.TimeOfDay.Hour != 18 || cmd.TimeOfDay.Minute != 30 {
			t.Errorf("expected same-day shift to 18:30, got %+v", cmd.TimeOfDay)
		}
		if !cmd.Due.IsZero() {
			t.Errorf("bare time must not produce an absolute due time, got %v", cmd.Due)
		}
	})

	t.Run("Move To Date Without Time", func(t *testing.T) {
		cmd := p.Interpret("перенести 1 завтра", now)
		if cmd.Kind != model.CommandMove || cmd.Key != 1 {
			t.Fatalf("expected move key 1, got %+v", cmd)
		}
		want := time.Date(2021, 11, 18, 12, 0, 0, 0, time.UTC)
		if !cmd.Due.Equal(want) {
			t.Errorf("expected due %v, got %v", want, cmd.Due)
		}
		if cmd.TimeOfDay != nil {
			t.Errorf("dated move must be absolute, got time-of-day %+v", cmd.TimeOfDay)
		}
	})

	t.Run("Move Without Target", func(t *testing.T) {
		cmd := p.Interpret("перенести 1", now)
		if cmd.Kind != model.CommandNone {
			t.Fatalf("expected none for move without target, got %+v", cmd)
		}
	})
}

func TestInterpretAdd(t *testing.T) {
	p := interpreter.New(time.UTC)
	now := time.Date(2021, 11, 17, 10, 0, 0, 0, time.UTC)

	t.Run("Tomorrow With Time", func(t *testing.T) {
		cmd := p.Interpret("завтра в 2:00 встреча", now)
		if cmd.Kind != model.CommandAdd {
			t.Fatalf("expected add command, got %+v", cmd)
		}
		want := time.Date(2021, 11, 18, 2, 0, 0, 0, time.UTC)
		if !cmd.Due.Equal(want) {
			t.Errorf("expected due %v, got %v", want, cmd.Due)
		}
		if cmd.Task != "встреча" {
			t.Errorf("expected task %q, got %q", "встреча", cmd.Task)
		}
	})

	t.Run("Date Without Time Defaults To Noon", func(t *testing.T) {
		cmd := p.Interpret("18 ноября собрание", now)
		if cmd.Kind != model.CommandAdd {
			t.Fatalf("expected add command, got %+v", cmd)
		}
		want := time.Date(2021, 11, 18, 12, 0, 0, 0, time.UTC)
		if !cmd.Due.Equal(want) {
			t.Errorf("expected noon default %v, got %v", want, cmd.Due)
		}
	})

	t.Run("Bare Four Digit Time", func(t *testing.T) {
		cmd := p.Interpret("2330 позвонить маме", now)
		if cmd.Kind != model.CommandAdd {
			t.Fatalf("expected add command, got %+v", cmd)
		}
		want := time.Date(2021, 11, 17, 23, 30, 0, 0, time.UTC)
		if !cmd.Due.Equal(want) {
			t.Errorf("expected due %v, got %v", want, cmd.Due)
		}
		if cmd.Task != "позвонить маме" {
			t.Errorf("expected task %q, got %q", "позвонить маме", cmd.Task)
		}
	})

	t.Run("Bare Three Digit Time", func(t *testing.T) {
		cmd := p.Interpret("900 совещание", now)
		if cmd.Kind != model.CommandAdd {
			t.Fatalf("expected add command, got %+v", cmd)
		}
		want := time.Date(2021, 11, 17, 9, 0, 0, 0, time.UTC)
		if !cmd.Due.Equal(want) {
			t.Errorf("expected due %v, got %v", want, cmd.Due)
		}
	})

	t.Run("Bare Hour", func(t *testing.T) {
		cmd := p.Interpret("сегодня в 18 тренировка", now)
		if cmd.Kind != model.CommandAdd {
			t.Fatalf("expected add command, got %+v", cmd)
		}
		want := time.Date(2021, 11, 17, 18, 0, 0, 0, time.UTC)
		if !cmd.Due.Equal(want) {
			t.Errorf("expected due %v, got %v", want, cmd.Due)
		}
	})

	t.Run("Year Rollover", func(t *testing.T) {
		dec := time.Date(2021, 12, 31, 10, 0, 0, 0, time.UTC)
		cmd := p.Interpret("завтра в 10:00 с новым годом", dec)
		if cmd.Kind != model.CommandAdd {
			t.Fatalf("expected add command, got %+v", cmd)
		}
		want := time.Date(2022, 1, 1, 10, 0, 0, 0, time.UTC)
		if !cmd.Due.Equal(want) {
			t.Errorf("expected calendar-safe rollover to %v, got %v", want, cmd.Due)
		}
	})

	t.Run("Invalid Clock", func(t *testing.T) {
		cmd := p.Interpret("встреча в 25:00", now)
		if cmd.Kind != model.CommandNone {
			t.Fatalf("expected none for invalid clock, got %+v", cmd)
		}
	})

	t.Run("Invalid Day Of Month", func(t *testing.T) {
		cmd := p.Interpret("30 февраля встреча", now)
		if cmd.Kind != model.CommandNone {
			t.Fatalf("expected none for impossible date, got %+v", cmd)
		}
	})

	t.Run("Date Without Task", func(t *testing.T) {
		cmd := p.Interpret("завтра", now)
		if cmd.Kind != model.CommandNone {
			t.Fatalf("expected none for date without task, got %+v", cmd)
		}
	})

	t.Run("Plain Text", func(t *testing.T) {
		cmd := p.Interpret("привет", now)
		if cmd.Kind != model.CommandNone {
			t.Fatalf("expected none for plain text, got %+v", cmd)
		}
	})

	t.Run("Empty Input", func(t *testing.T) {
		cmd := p.Interpret("   ", now)
		if cmd.Kind != model.CommandNone {
			t.Fatalf("expected none for empty input, got %+v", cmd)
		}
	})
}

func TestCommandMutating(t *testing.T) {
	p := interpreter.New(time.UTC)
	now := time.Date(2021, 11, 17, 10, 0, 0, 0, time.UTC)

	for text, want := range map[string]bool{
		"завтра в 2:00 встреча": true,
		"удалить 1":             true,
		"изменить 1 текст":      true,
		"перенести 1 завтра":    true,
		"список":                false,
		"помощь":                false,
		"удалить":               false,
		"привет":                false,
	} {
		if got := p.Interpret(text, now).Mutating(); got != want {
			t.Errorf("%q: Mutating() = %v, want %v", text, got, want)
		}
	}
}

func TestInterpretMonthNames(t *testing.T) {
	p := interpreter.New(time.UTC)
	now := time.Date(2021, 6, 1, 10, 0, 0, 0, time.UTC)

	months := map[string]time.Month{
		"января":   time.January,
		"январь":   time.January,
		"февраля":  time.February,
		"марта":    time.March,
		"апреля":   time.April,
		"мая":      time.May,
		"июня":     time.June,
		"июля":     time.July,
		"августа":  time.August,
		"сентября": time.September,
		"октября":  time.October,
		"ноябрь":   time.November,
		"декабря":  time.December,
	}

	for name, want := range months {
		cmd := p.Interpret("5 "+name+" встреча", now)
		if cmd.Kind != model.CommandAdd {
			t.Errorf("%s: expected add command, got %+v", name, cmd)
			continue
		}
		if cmd.Due.Month() != want || cmd.Due.Day() != 5 {
			t.Errorf("%s: expected day 5 of %v, got %v", name, want, cmd.Due)
		}
	}
}
