package repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shaiso/Scenarium/internal/domain"
)

// scenarioChannel — канал pg_notify для уведомлений об изменениях сценариев.
// Payload — UUID изменённого сценария.
const scenarioChannel = "scenario_changed"

// ScenarioRepo — репозиторий для работы со scenarios.
type ScenarioRepo struct {
	pool *pgxpool.Pool
}

// NewScenarioRepo создаёт новый ScenarioRepo.
func NewScenarioRepo(pool *pgxpool.Pool) *ScenarioRepo {
	return &ScenarioRepo{pool: pool}
}

// Create создаёт новый сценарий и шлёт уведомление подписчикам.
func (r *ScenarioRepo) Create(ctx context.Context, scenario *domain.Scenario) error {
	stepsJSON, err := json.Marshal(scenario.Steps)
	if err != nil {
		return fmt.Errorf("marshal steps: %w", err)
	}
	bundleJSON, err := json.Marshal(scenario.Bundle)
	if err != nil {
		return fmt.Errorf("marshal bundle: %w", err)
	}

	query := `
		INSERT INTO scenarios (id, name, description, steps, bundle, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err = r.pool.Exec(ctx, query,
		scenario.ID,
		scenario.Name,
		nullString(scenario.Description),
		stepsJSON,
		bundleJSON,
		scenario.CreatedAt,
		scenario.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert scenario: %w", err)
	}

	r.notify(ctx, scenario.ID)
	return nil
}

// GetByID возвращает сценарий по ID.
func (r *ScenarioRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Scenario, error) {
	query := `
		SELECT id, name, description, steps, bundle, created_at, updated_at
		FROM scenarios
		WHERE id = $1
	`
	return r.scanScenario(r.pool.QueryRow(ctx, query, id))
}

// List возвращает список сценариев, новые первыми.
func (r *ScenarioRepo) List(ctx context.Context, limit, offset int) ([]domain.Scenario, error) {
	query := `
		SELECT id, name, description, steps, bundle, created_at, updated_at
		FROM scenarios
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`
	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list scenarios: %w", err)
	}
	defer rows.Close()

	var scenarios []domain.Scenario
	for rows.Next() {
		scenario, err := r.scanScenario(rows)
		if err != nil {
			return nil, err
		}
		scenarios = append(scenarios, *scenario)
	}
	return scenarios, rows.Err()
}

// Update обновляет сценарий и шлёт уведомление подписчикам.
func (r *ScenarioRepo) Update(ctx context.Context, scenario *domain.Scenario) error {
	stepsJSON, err := json.Marshal(scenario.Steps)
	if err != nil {
		return fmt.Errorf("marshal steps: %w", err)
	}
	bundleJSON, err := json.Marshal(scenario.Bundle)
	if err != nil {
		return fmt.Errorf("marshal bundle: %w", err)
	}

	query := `
		UPDATE scenarios
		SET name = $2, description = $3, steps = $4, bundle = $5, updated_at = $6
		WHERE id = $1
	`
	result, err := r.pool.Exec(ctx, query,
		scenario.ID,
		scenario.Name,
		nullString(scenario.Description),
		stepsJSON,
		bundleJSON,
		scenario.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update scenario: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}

	r.notify(ctx, scenario.ID)
	return nil
}

// Delete удаляет сценарий и шлёт уведомление подписчикам.
func (r *ScenarioRepo) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM scenarios WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete scenario: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}

	r.notify(ctx, id)
	return nil
}

// notify публикует уведомление об изменении сценария.
// Ошибки notify не роняют операцию: запись уже зафиксирована.
func (r *ScenarioRepo) notify(ctx context.Context, id uuid.UUID) {
	_, _ = r.pool.Exec(ctx, `SELECT pg_notify($1, $2)`, scenarioChannel, id.String())
}

// --- Helpers ---

func (r *ScenarioRepo) scanScenario(row pgx.Row) (*domain.Scenario, error) {
	var s domain.Scenario
	var description *string
	var stepsJSON, bundleJSON []byte

	err := row.Scan(
		&s.ID,
		&s.Name,
		&description,
		&stepsJSON,
		&bundleJSON,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan scenario: %w", err)
	}

	if description != nil {
		s.Description = *description
	}
	if stepsJSON != nil {
		if err := json.Unmarshal(stepsJSON, &s.Steps); err != nil {
			return nil, fmt.Errorf("unmarshal steps: %w", err)
		}
	}
	if bundleJSON != nil {
		if err := json.Unmarshal(bundleJSON, &s.Bundle); err != nil {
			return nil, fmt.Errorf("unmarshal bundle: %w", err)
		}
	}
	return &s, nil
}

func nullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func nullInt(i int) *int {
	if i == 0 {
		return nil
	}
	return &i
}
