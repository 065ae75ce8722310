package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/shaiso/Scenarium/internal/domain"
	"github.com/shaiso/Scenarium/internal/mq"
	"github.com/shaiso/Scenarium/internal/repo"
)

// Scheduler — планировщик, публикующий запросы на запуск due schedules.
type Scheduler struct {
	scheduleRepo *repo.ScheduleRepo
	scenarioRepo *repo.ScenarioRepo
	publisher    *mq.Publisher
	logger       *slog.Logger
	batchSize    int
}

// Config — конфигурация Scheduler.
type Config struct {
	ScheduleRepo *repo.ScheduleRepo
	ScenarioRepo *repo.ScenarioRepo
	Publisher    *mq.Publisher
	Logger       *slog.Logger
	BatchSize    int // количество schedules за один тик (default: 100)
}

// New создаёт новый Scheduler.
func New(cfg Config) *Scheduler {
	batchSize := cfg.BatchSize
	if batchSize <= 0 {
		batchSize = 100
	}

	return &Scheduler{
		scheduleRepo: cfg.ScheduleRepo,
		scenarioRepo: cfg.ScenarioRepo,
		publisher:    cfg.Publisher,
		logger:       cfg.Logger,
		batchSize:    batchSize,
	}
}

// Tick выполняет один тик планировщика.
//
// 1. Находит due schedules (enabled=true, next_due_at <= now)
// 2. Для каждого schedule публикует run.requested в RabbitMQ
// 3. Обновляет next_due_at
//
// Ошибки одного schedule не блокируют обработку остальных.
func (s *Scheduler) Tick(ctx context.Context) error {
	now := time.Now()

	schedules, err := s.scheduleRepo.ListDue(ctx, now, s.batchSize)
	if err != nil {
		return fmt.Errorf("list due schedules: %w", err)
	}

	if len(schedules) == 0 {
		return nil
	}

	s.logger.Debug("found due schedules", "count", len(schedules))

	var processed, published int
	for i := range schedules {
		sched := &schedules[i]

		ok, err := s.processSchedule(ctx, sched, now)
		if err != nil {
			s.logger.Error("failed to process schedule",
				"schedule_id", sched.ID,
				"schedule_name", sched.Name,
				"error", err,
			)
			// Продолжаем обработку остальных
			continue
		}

		processed++
		if ok {
			published++
		}
	}

	s.logger.Info("scheduler tick completed",
		"due", len(schedules),
		"processed", processed,
		"published", published,
	)
	return nil
}

// processSchedule обрабатывает один due schedule.
// Возвращает true, если запрос на запуск был опубликован.
func (s *Scheduler) processSchedule(ctx context.Context, sched *domain.Schedule, now time.Time) (bool, error) {
	// 1. Проверяем, что сценарий ещё существует
	scenario, err := s.scenarioRepo.GetByID(ctx, sched.ScenarioID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			// Сценарий удалён — выключаем осиротевший schedule
			s.logger.Warn("scenario deleted, disabling schedule",
				"schedule_id", sched.ID,
				"scenario_id", sched.ScenarioID,
			)
			if err := s.scheduleRepo.SetEnabled(ctx, sched.ID, false); err != nil {
				return false, fmt.Errorf("disable orphan schedule: %w", err)
			}
			return false, nil
		}
		return false, fmt.Errorf("get scenario: %w", err)
	}

	// 2. Публикуем запрос на запуск
	published := true
	err = s.publisher.PublishRunRequested(ctx, mq.RunRequestedPayload{
		ScenarioID: scenario.ID,
		ScheduleID: &sched.ID,
	})
	if err != nil {
		// Не фатальная ошибка — next_due_at всё равно сдвигаем,
		// иначе сломанный брокер заспамит очередь после восстановления
		s.logger.Warn("failed to publish run.requested",
			"schedule_id", sched.ID,
			"scenario_id", scenario.ID,
			"error", err,
		)
		published = false
	} else {
		s.logger.Info("published run request from schedule",
			"schedule_id", sched.ID,
			"schedule_name", sched.Name,
			"scenario_id", scenario.ID,
			"scenario_name", scenario.Name,
		)
	}

	// 3. Вычисляем следующее время выполнения
	nextDue, err := CalculateNextDue(sched, now)
	if err != nil {
		s.logger.Error("failed to calculate next due, disabling schedule",
			"schedule_id", sched.ID,
			"error", err,
		)
		if err := s.scheduleRepo.SetEnabled(ctx, sched.ID, false); err != nil {
			return published, fmt.Errorf("disable broken schedule: %w", err)
		}
		return published, nil
	}

	// 4. Обновляем schedule
	sched.RecordRun(nextDue)
	if err := s.scheduleRepo.Update(ctx, sched); err != nil {
		return published, fmt.Errorf("update schedule: %w", err)
	}

	return published, nil
}
