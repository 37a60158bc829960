package usecase

import (
	"fmt"
	"time"
	"unicode"
	"unicode/utf8"

	"remindme/internal/confirm"
	"remindme/internal/model"
)

const (
	fmtDayClock = "02.01.06 15:04"
	fmtClockDay = "15:04 02.01.06"
	fmtDay      = "02.01.06"
	fmtClock    = "15:04"
)

const (
	replyUnparsed     = "We were not able to create task from your request"
	replyNoTasks      = "No current tasks waiting to be completed"
	replyNoTasksDated = "No tasks for specified date"
)

const helpMessage = `Основные команды:
1. Команда для добавления задания в список:
	- дата в формате: сегодня|завтра|день, месяц
		пример: десятое октября, восьмое июня
		(если дата не указана задание формируется на сегодняшний день)
	- время в формате: часы, минуты
		пример: одиннадцать ноль ноль, девять тридцать
		(если время не указано задание формируется на двенадцать часов)
	- текст самого задания (если текст отсутствует, то задание не сформируется)
2. Команда для получения списка:
	- список (возможные агрументы - сегодня|завтра|день, месяц)
	возвращает список за указанную дату с указанием ключа {номер} для обращения к заданию
	ключ используется для изменения, удаления и переноса заданий
		пример: 11:00 - Задание 1 {13}
			12:00 - Задание 2 {14}
		(без агрументов - возвращает все задания)
3. Команда для удаления задания:
	- удалить (ключ задания)
4. Команда для изменения задания:
	- изменить (ключ задания) (новое задание)
	(изменяет только содержание задания без изменения времени)
5. Команда для переноса задания:
	- перенести (ключ задания) (новое время в формате: сегодня|завтра|день, месяц)
	(изменяет только время задания без изменения содержания)
	если дата не указана, дата напоминание не изменится, изменится только время`

func replyMissingKey(key int) string {
	return fmt.Sprintf("Task with key %d doesn't exist", key)
}

// confirmKeyboard builds the Yes/No choice controls, one button per row.
// The Yes payload carries the whole encoded mutation.
func confirmKeyboard(payload string) [][]model.KeyboardButton {
	return [][]model.KeyboardButton{
		{{Label: "Yes", Payload: payload}},
		{{Label: "No", Payload: confirm.Decline}},
	}
}

func (uc *implUseCase) dueTime(ts int64) time.Time {
	return time.Unix(ts, 0).In(uc.loc)
}

// capitalize upper-cases the first rune for list display.
func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
