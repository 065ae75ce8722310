package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/shaiso/Scenarium/internal/domain"
	"github.com/shaiso/Scenarium/internal/editor"
	"github.com/shaiso/Scenarium/internal/export"
)

// ListScenarios возвращает список сценариев.
// GET /api/v1/scenarios?limit=...&offset=...
func (h *Handler) ListScenarios(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		limit = int(mustParseInt(limitStr, 50))
	}
	offset := int(mustParseInt(r.URL.Query().Get("offset"), 0))

	scenarios, err := h.scenarioRepo.List(r.Context(), limit, offset)
	if HandleRepoError(w, h.logger, err, "") {
		return
	}

	result := make([]ScenarioResponse, len(scenarios))
	for i := range scenarios {
		result[i] = ScenarioFromDomain(&scenarios[i], h.registry)
	}

	List(w, result, len(result))
}

// CreateScenario создаёт новый сценарий.
// POST /api/v1/scenarios
func (h *Handler) CreateScenario(w http.ResponseWriter, r *http.Request) {
	var req CreateScenarioRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		BadRequest(w, "invalid request body")
		return
	}

	if req.Name == "" {
		BadRequest(w, "name is required")
		return
	}

	now := time.Now()
	scenario := &domain.Scenario{
		ID:          uuid.New(),
		Name:        req.Name,
		Description: req.Description,
		Bundle: domain.SiteBundle{
			Markup:  req.Markup,
			Styles:  assetsFromPayload(req.Styles),
			Scripts: assetsFromPayload(req.Scripts),
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := h.scenarioRepo.Create(r.Context(), scenario); err != nil {
		InternalError(w, h.logger, err)
		return
	}

	Created(w, ScenarioFromDomain(scenario, h.registry))
}

// GetScenario возвращает сценарий по ID.
// GET /api/v1/scenarios/{id}
func (h *Handler) GetScenario(w http.ResponseWriter, r *http.Request) {
	scenario, ok := h.loadScenario(w, r)
	if !ok {
		return
	}
	Success(w, ScenarioFromDomain(scenario, h.registry))
}

// UpdateScenario обновляет имя, описание и снимок сайта сценария.
// PUT /api/v1/scenarios/{id}
func (h *Handler) UpdateScenario(w http.ResponseWriter, r *http.Request) {
	var req UpdateScenarioRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		BadRequest(w, "invalid request body")
		return
	}

	scenario, ok := h.loadScenario(w, r)
	if !ok {
		return
	}

	if req.Name != nil {
		scenario.Name = *req.Name
	}
	if req.Description != nil {
		scenario.Description = *req.Description
	}
	if req.Markup != nil {
		scenario.Bundle.Markup = req.Markup
	}
	if req.Styles != nil {
		scenario.Bundle.Styles = assetsFromPayload(req.Styles)
	}
	if req.Scripts != nil {
		scenario.Bundle.Scripts = assetsFromPayload(req.Scripts)
	}
	scenario.UpdatedAt = time.Now()

	if err := h.scenarioRepo.Update(r.Context(), scenario); err != nil {
		InternalError(w, h.logger, err)
		return
	}

	Success(w, ScenarioFromDomain(scenario, h.registry))
}

// DeleteScenario удаляет сценарий. Живой runner сценария закрывается.
// DELETE /api/v1/scenarios/{id}
func (h *Handler) DeleteScenario(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		BadRequest(w, "invalid scenario id")
		return
	}

	if err := h.scenarioRepo.Delete(r.Context(), id); err != nil {
		if HandleRepoError(w, h.logger, err, "scenario not found") {
			return
		}
	}

	if rn, ok := h.manager.GetByScenario(id); ok {
		if err := h.manager.Close(rn.ID); err != nil {
			h.logger.Warn("close runner of deleted scenario", "runner_id", rn.ID, "error", err)
		}
	}

	NoContent(w)
}

// InsertStep вставляет шаг в сценарий.
// POST /api/v1/scenarios/{id}/steps
func (h *Handler) InsertStep(w http.ResponseWriter, r *http.Request) {
	var req InsertStepRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		BadRequest(w, "invalid request body")
		return
	}

	h.editSteps(w, r, func(ed *editor.Editor) error {
		if req.At == nil {
			_, err := ed.Append(req.Kind)
			return err
		}
		_, err := ed.Insert(req.Kind, *req.At)
		return err
	})
}

// ReorderStep перемещает шаг сценария с позиции from на позицию to.
// POST /api/v1/scenarios/{id}/steps/reorder
func (h *Handler) ReorderStep(w http.ResponseWriter, r *http.Request) {
	var req ReorderStepRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		BadRequest(w, "invalid request body")
		return
	}

	h.editSteps(w, r, func(ed *editor.Editor) error {
		return ed.Reorder(req.From, req.To)
	})
}

// UpdateStepParam изменяет параметр шага.
// PUT /api/v1/scenarios/{id}/steps/{index}/params
func (h *Handler) UpdateStepParam(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(r.PathValue("index"))
	if err != nil {
		BadRequest(w, "invalid step index")
		return
	}

	var req UpdateStepParamRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		BadRequest(w, "invalid request body")
		return
	}

	h.editSteps(w, r, func(ed *editor.Editor) error {
		return ed.UpdateParam(index, req.Key, req.Value)
	})
}

// DeleteStep удаляет шаг сценария.
// DELETE /api/v1/scenarios/{id}/steps/{index}
func (h *Handler) DeleteStep(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(r.PathValue("index"))
	if err != nil {
		BadRequest(w, "invalid step index")
		return
	}

	h.editSteps(w, r, func(ed *editor.Editor) error {
		return ed.Delete(index)
	})
}

// ExportScenario отдаёт сценарий как Robot Framework скрипт.
// GET /api/v1/scenarios/{id}/export
func (h *Handler) ExportScenario(w http.ResponseWriter, r *http.Request) {
	scenario, ok := h.loadScenario(w, r)
	if !ok {
		return
	}

	script := export.Script(scenario.Name, scenario.Steps, h.registry)

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(script))
}

// ListKinds возвращает палитру типов шагов.
// GET /api/v1/kinds
func (h *Handler) ListKinds(w http.ResponseWriter, r *http.Request) {
	kinds := h.registry.Kinds()
	result := make([]KindResponse, len(kinds))
	for i, k := range kinds {
		result[i] = KindFromSteps(k)
	}
	List(w, result, len(result))
}

// --- Helpers ---

// loadScenario достаёт сценарий по {id} из пути.
// false означает, что ответ об ошибке уже отправлен.
func (h *Handler) loadScenario(w http.ResponseWriter, r *http.Request) (*domain.Scenario, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		BadRequest(w, "invalid scenario id")
		return nil, false
	}

	scenario, err := h.scenarioRepo.GetByID(r.Context(), id)
	if HandleRepoError(w, h.logger, err, "scenario not found") {
		return nil, false
	}
	return scenario, true
}

// editSteps применяет одну операцию редактора к шагам сценария
// и сохраняет результат.
func (h *Handler) editSteps(w http.ResponseWriter, r *http.Request, op func(*editor.Editor) error) {
	scenario, ok := h.loadScenario(w, r)
	if !ok {
		return
	}

	ed := editor.New(h.registry)
	ed.Load(scenario.Steps)

	if err := op(ed); err != nil {
		switch {
		case errors.Is(err, editor.ErrUnknownKind):
			BadRequest(w, err.Error())
		case errors.Is(err, editor.ErrIndexOutOfRange):
			BadRequest(w, err.Error())
		case errors.Is(err, editor.ErrUnknownParam):
			BadRequest(w, err.Error())
		default:
			InternalError(w, h.logger, err)
		}
		return
	}

	scenario.Steps = ed.Steps()
	scenario.UpdatedAt = time.Now()

	if err := h.scenarioRepo.Update(r.Context(), scenario); err != nil {
		InternalError(w, h.logger, err)
		return
	}

	Success(w, ScenarioFromDomain(scenario, h.registry))
}

// mustParseInt парсит строку в int с дефолтным значением.
func mustParseInt(s string, defaultVal int64) int64 {
	if s == "" {
		return defaultVal
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n
	}
	return defaultVal
}
