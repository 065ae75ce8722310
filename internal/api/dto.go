package api

import (
	"time"

	"github.com/google/uuid"
	"github.com/shaiso/Scenarium/internal/domain"
	"github.com/shaiso/Scenarium/internal/steps"
)

// Scenario DTOs

// AssetPayload — один файл стилей или скриптов в запросе.
type AssetPayload struct {
	Name    string `json:"name"`
	Content string `json:"content"`
}

// CreateScenarioRequest — запрос на создание сценария.
type CreateScenarioRequest struct {
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	Markup      *string        `json:"markup,omitempty"`
	Styles      []AssetPayload `json:"styles,omitempty"`
	Scripts     []AssetPayload `json:"scripts,omitempty"`
}

// UpdateScenarioRequest — запрос на обновление сценария.
// Непереданные поля не меняются; styles/scripts заменяются целиком.
type UpdateScenarioRequest struct {
	Name        *string        `json:"name,omitempty"`
	Description *string        `json:"description,omitempty"`
	Markup      *string        `json:"markup,omitempty"`
	Styles      []AssetPayload `json:"styles,omitempty"`
	Scripts     []AssetPayload `json:"scripts,omitempty"`
}

// assetsFromPayload конвертирует AssetPayload в domain.Asset.
func assetsFromPayload(in []AssetPayload) []domain.Asset {
	if len(in) == 0 {
		return nil
	}
	out := make([]domain.Asset, len(in))
	for i, a := range in {
		out[i] = domain.Asset{Name: a.Name, Content: a.Content}
	}
	return out
}

// StepResponse — один шаг сценария в ответе API.
type StepResponse struct {
	Index  int               `json:"index"`
	Kind   string            `json:"kind"`
	Title  string            `json:"title"`
	Params map[string]string `json:"params"`
}

// ScenarioResponse — ответ со сценарием.
type ScenarioResponse struct {
	ID          uuid.UUID      `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	Steps       []StepResponse `json:"steps"`
	HasMarkup   bool           `json:"has_markup"`
	StyleCount  int            `json:"style_count"`
	ScriptCount int            `json:"script_count"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// ScenarioFromDomain конвертирует domain.Scenario в ScenarioResponse.
// Шаги неизвестных типов отдаются с пустым title.
func ScenarioFromDomain(sc *domain.Scenario, registry *steps.Registry) ScenarioResponse {
	stepDTOs := make([]StepResponse, 0, len(sc.Steps))
	for i, st := range sc.Steps {
		title := ""
		if kind, err := registry.Get(st.Kind); err == nil {
			title = kind.Title()
		}
		stepDTOs = append(stepDTOs, StepResponse{
			Index:  i,
			Kind:   st.Kind,
			Title:  title,
			Params: st.Params,
		})
	}

	return ScenarioResponse{
		ID:          sc.ID,
		Name:        sc.Name,
		Description: sc.Description,
		Steps:       stepDTOs,
		HasMarkup:   sc.Bundle.Markup != nil,
		StyleCount:  len(sc.Bundle.Styles),
		ScriptCount: len(sc.Bundle.Scripts),
		CreatedAt:   sc.CreatedAt,
		UpdatedAt:   sc.UpdatedAt,
	}
}

// Step DTOs

// InsertStepRequest — запрос на вставку шага.
// At == nil означает вставку в конец.
type InsertStepRequest struct {
	Kind string `json:"kind"`
	At   *int   `json:"at,omitempty"`
}

// ReorderStepRequest — запрос на перемещение шага.
type ReorderStepRequest struct {
	From int `json:"from"`
	To   int `json:"to"`
}

// UpdateStepParamRequest — запрос на изменение параметра шага.
type UpdateStepParamRequest struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Kind DTOs

// ParamDefResponse — описание параметра типа шага для палитры редактора.
type ParamDefResponse struct {
	Key         string `json:"key"`
	Label       string `json:"label"`
	Input       string `json:"input"`
	Placeholder string `json:"placeholder,omitempty"`
}

// KindResponse — тип шага в палитре редактора.
type KindResponse struct {
	Name        string             `json:"name"`
	Title       string             `json:"title"`
	Description string             `json:"description"`
	Icon        string             `json:"icon"`
	Params      []ParamDefResponse `json:"params"`
}

// KindFromSteps конвертирует steps.Kind в KindResponse.
func KindFromSteps(kind steps.Kind) KindResponse {
	defs := kind.Params()
	params := make([]ParamDefResponse, 0, len(defs))
	for _, d := range defs {
		params = append(params, ParamDefResponse{
			Key:         d.Key,
			Label:       d.Label,
			Input:       d.Input,
			Placeholder: d.Placeholder,
		})
	}
	return KindResponse{
		Name:        kind.Name(),
		Title:       kind.Title(),
		Description: kind.Description(),
		Icon:        kind.Icon(),
		Params:      params,
	}
}

// Schedule DTOs

// CreateScheduleRequest — запрос на создание schedule.
type CreateScheduleRequest struct {
	Name        string `json:"name"`
	CronExpr    string `json:"cron_expr,omitempty"`
	IntervalSec int    `json:"interval_sec,omitempty"`
	Timezone    string `json:"timezone,omitempty"`
	Enabled     bool   `json:"enabled"`
}

// UpdateScheduleRequest — запрос на обновление schedule.
type UpdateScheduleRequest struct {
	Name        *string `json:"name,omitempty"`
	CronExpr    *string `json:"cron_expr,omitempty"`
	IntervalSec *int    `json:"interval_sec,omitempty"`
	Timezone    *string `json:"timezone,omitempty"`
}

// SetEnabledRequest — запрос на включение/выключение schedule.
type SetEnabledRequest struct {
	Enabled bool `json:"enabled"`
}

// ScheduleResponse — ответ со schedule.
type ScheduleResponse struct {
	ID          uuid.UUID  `json:"id"`
	ScenarioID  uuid.UUID  `json:"scenario_id"`
	Name        string     `json:"name,omitempty"`
	CronExpr    string     `json:"cron_expr,omitempty"`
	IntervalSec int        `json:"interval_sec,omitempty"`
	Timezone    string     `json:"timezone"`
	Enabled     bool       `json:"enabled"`
	NextDueAt   *time.Time `json:"next_due_at,omitempty"`
	LastRunAt   *time.Time `json:"last_run_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// ScheduleFromDomain конвертирует domain.Schedule в ScheduleResponse.
func ScheduleFromDomain(s *domain.Schedule) ScheduleResponse {
	return ScheduleResponse{
		ID:          s.ID,
		ScenarioID:  s.ScenarioID,
		Name:        s.Name,
		CronExpr:    s.CronExpr,
		IntervalSec: s.IntervalSec,
		Timezone:    s.Timezone,
		Enabled:     s.Enabled,
		NextDueAt:   s.NextDueAt,
		LastRunAt:   s.LastRunAt,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

// Viewport DTOs

// ViewportResponse — текущее состояние viewport.
type ViewportResponse struct {
	RunnerID *uuid.UUID `json:"runner_id,omitempty"`
	Bound    bool       `json:"bound"`
}
