package domain

import (
	"time"

	"github.com/google/uuid"
)

// Schedule — регулярный регрессионный прогон сценария.
//
// Триггер задаётся одним из двух способов: cron-выражением
// ("0 9 * * *" — каждый день в 9:00) либо интервалом в секундах.
// Когда заданы оба, cron побеждает. Scheduler публикует запрос на
// запуск, как только наступает NextDueAt.
type Schedule struct {
	// ID — уникальный идентификатор расписания.
	ID uuid.UUID `json:"id"`

	// ScenarioID — какой сценарий прогонять.
	ScenarioID uuid.UUID `json:"scenario_id"`

	// Name — человекочитаемое имя расписания.
	Name string `json:"name,omitempty"`

	// CronExpr — пятипольное cron-выражение
	// (минуты часы дни месяцы дни_недели). Имеет приоритет над
	// IntervalSec.
	CronExpr string `json:"cron_expr,omitempty"`

	// IntervalSec — пауза между запусками в секундах.
	// Действует только при пустом CronExpr.
	IntervalSec int `json:"interval_sec,omitempty"`

	// Timezone — зона, в которой трактуется cron-выражение.
	// Пустая или неизвестная зона означает UTC.
	Timezone string `json:"timezone"`

	// Enabled — выключенное расписание scheduler не рассматривает.
	Enabled bool `json:"enabled"`

	// NextDueAt — момент следующего запуска (UTC). nil — расписание
	// ещё ни разу не просчитано.
	NextDueAt *time.Time `json:"next_due_at,omitempty"`

	// LastRunAt — момент последней публикации запроса на запуск.
	LastRunAt *time.Time `json:"last_run_at,omitempty"`

	// CreatedAt — время создания.
	CreatedAt time.Time `json:"created_at"`

	// UpdatedAt — время последнего изменения.
	UpdatedAt time.Time `json:"updated_at"`
}

// IsCron сообщает, что расписание работает по cron-выражению.
func (s *Schedule) IsCron() bool {
	return s.CronExpr != ""
}

// IsInterval сообщает, что расписание работает по интервалу.
func (s *Schedule) IsInterval() bool {
	return s.CronExpr == "" && s.IntervalSec > 0
}

// IsDue сообщает, что расписанию пора сработать: оно включено,
// просчитано и его время не позже now.
func (s *Schedule) IsDue(now time.Time) bool {
	if !s.Enabled || s.NextDueAt == nil {
		return false
	}
	return !now.Before(*s.NextDueAt)
}

// RecordRun фиксирует публикацию запроса и переводит расписание
// на следующий момент срабатывания.
func (s *Schedule) RecordRun(nextDue time.Time) {
	now := time.Now()
	s.LastRunAt = &now
	s.NextDueAt = &nextDue
	s.UpdatedAt = now
}
