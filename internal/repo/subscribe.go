package repo

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ScenarioChange — событие изменения сценария.
type ScenarioChange struct {
	// ScenarioID — какой сценарий изменился (или был удалён).
	ScenarioID uuid.UUID
}

// Subscriber слушает канал pg_notify и раздаёт события об изменениях
// сценариев. Подписчик сразу получает текущее состояние (синтетическое
// событие на каждый существующий сценарий), а затем — каждое изменение.
type Subscriber struct {
	pool   *pgxpool.Pool
	repo   *ScenarioRepo
	logger *slog.Logger
}

// NewSubscriber создаёт новый Subscriber.
func NewSubscriber(pool *pgxpool.Pool, repo *ScenarioRepo, logger *slog.Logger) *Subscriber {
	return &Subscriber{pool: pool, repo: repo, logger: logger}
}

// Subscribe блокируется и вызывает fn на каждое изменение сценария.
// Перед ожиданием уведомлений fn вызывается для каждого существующего
// сценария — подписчик начинает с актуального состояния.
// Возвращается при отмене ctx.
func (s *Subscriber) Subscribe(ctx context.Context, fn func(ScenarioChange)) error {
	scenarios, err := s.repo.List(ctx, 1000, 0)
	if err != nil {
		return fmt.Errorf("initial state: %w", err)
	}
	for _, sc := range scenarios {
		fn(ScenarioChange{ScenarioID: sc.ID})
	}

	for {
		if err := s.listen(ctx, fn); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			s.logger.Warn("scenario listen lost, reconnecting", "error", err)
			select {
			case <-time.After(2 * time.Second):
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}
}

// listen держит выделенное соединение с LISTEN до первой ошибки.
func (s *Subscriber) listen(ctx context.Context, fn func(ScenarioChange)) error {
	conn, err := s.pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("acquire conn: %w", err)
	}
	defer conn.Release()

	if _, err := conn.Exec(ctx, `LISTEN `+scenarioChannel); err != nil {
		return fmt.Errorf("listen: %w", err)
	}

	for {
		notification, err := conn.Conn().WaitForNotification(ctx)
		if err != nil {
			return fmt.Errorf("wait notification: %w", err)
		}

		id, err := uuid.Parse(notification.Payload)
		if err != nil {
			s.logger.Warn("bad notification payload", "payload", notification.Payload)
			continue
		}
		fn(ScenarioChange{ScenarioID: id})
	}
}
