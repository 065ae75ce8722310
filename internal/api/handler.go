package api

import (
	"log/slog"

	"github.com/shaiso/Scenarium/internal/repo"
	"github.com/shaiso/Scenarium/internal/runner"
	"github.com/shaiso/Scenarium/internal/steps"
)

// Handler — главный обработчик API с зависимостями.
type Handler struct {
	scenarioRepo *repo.ScenarioRepo
	scheduleRepo *repo.ScheduleRepo
	manager      *runner.Manager
	registry     *steps.Registry
	logger       *slog.Logger
}

// Config — конфигурация для создания Handler.
type Config struct {
	ScenarioRepo *repo.ScenarioRepo
	ScheduleRepo *repo.ScheduleRepo
	Manager      *runner.Manager
	Registry     *steps.Registry
	Logger       *slog.Logger
}

// NewHandler создаёт новый Handler.
func NewHandler(cfg Config) *Handler {
	return &Handler{
		scenarioRepo: cfg.ScenarioRepo,
		scheduleRepo: cfg.ScheduleRepo,
		manager:      cfg.Manager,
		registry:     cfg.Registry,
		logger:       cfg.Logger,
	}
}
