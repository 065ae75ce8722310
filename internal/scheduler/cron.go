package scheduler

import (
	"errors"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/shaiso/Scenarium/internal/domain"
)

// Стандартный пятипольный cron: минуты часы дни месяцы дни_недели.
var cronParser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)

// ErrNoTrigger — в schedule не задан ни cron, ни интервал.
var ErrNoTrigger = errors.New("schedule has neither cron_expr nor interval_sec")

// CalculateNextDue вычисляет момент следующего запуска после from.
//
// Cron-выражение трактуется в timezone расписания (невалидная зона
// деградирует до UTC); интервал от timezone не зависит. Результат
// всегда в UTC — в базе времена хранятся только так.
func CalculateNextDue(sched *domain.Schedule, from time.Time) (time.Time, error) {
	switch {
	case sched.IsCron():
		return nextCron(sched.CronExpr, from.In(scheduleLocation(sched)))
	case sched.IsInterval():
		return from.Add(time.Duration(sched.IntervalSec) * time.Second).UTC(), nil
	default:
		return time.Time{}, ErrNoTrigger
	}
}

// CalculateInitialNextDue — первый запуск только что созданного или
// обновлённого расписания, отсчитанный от текущего момента.
func CalculateInitialNextDue(sched *domain.Schedule) (time.Time, error) {
	return CalculateNextDue(sched, time.Now())
}

// ValidateCronExpr проверяет cron-выражение, не вычисляя времени.
func ValidateCronExpr(cronExpr string) error {
	if _, err := cronParser.Parse(cronExpr); err != nil {
		return fmt.Errorf("invalid cron expression %q: %w", cronExpr, err)
	}
	return nil
}

func scheduleLocation(sched *domain.Schedule) *time.Location {
	loc, err := time.LoadLocation(sched.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func nextCron(cronExpr string, from time.Time) (time.Time, error) {
	schedule, err := cronParser.Parse(cronExpr)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse cron expression %q: %w", cronExpr, err)
	}
	return schedule.Next(from).UTC(), nil
}
