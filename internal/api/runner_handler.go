package api

import (
	"net/http"

	"github.com/google/uuid"
)

// OpenRunner запускает сценарий: открывает runner и стартует пайплайн.
// Повторный вызов для того же сценария разворачивает существующий runner.
// POST /api/v1/scenarios/{id}/open
func (h *Handler) OpenRunner(w http.ResponseWriter, r *http.Request) {
	scenario, ok := h.loadScenario(w, r)
	if !ok {
		return
	}

	rn, err := h.manager.Open(scenario)
	if HandleRunnerError(w, h.logger, err) {
		return
	}

	Created(w, rn.Snapshot())
}

// ListRunners возвращает все runner'ы в порядке трекинг-панели.
// GET /api/v1/runners
func (h *Handler) ListRunners(w http.ResponseWriter, r *http.Request) {
	snapshots := h.manager.List()
	List(w, snapshots, len(snapshots))
}

// GetRunner возвращает срез состояния runner'а.
// GET /api/v1/runners/{id}
func (h *Handler) GetRunner(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		BadRequest(w, "invalid runner id")
		return
	}

	rn, err := h.manager.Get(id)
	if HandleRunnerError(w, h.logger, err) {
		return
	}

	Success(w, rn.Snapshot())
}

// GetRunnerLog возвращает накопленный лог запуска.
// GET /api/v1/runners/{id}/log
func (h *Handler) GetRunnerLog(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		BadRequest(w, "invalid runner id")
		return
	}

	rn, err := h.manager.Get(id)
	if HandleRunnerError(w, h.logger, err) {
		return
	}

	entries := rn.Log.Entries()
	List(w, entries, len(entries))
}

// MaximizeRunner разворачивает runner во viewport.
// POST /api/v1/runners/{id}/maximize
func (h *Handler) MaximizeRunner(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		BadRequest(w, "invalid runner id")
		return
	}

	if err := h.manager.Maximize(id); HandleRunnerError(w, h.logger, err) {
		return
	}
	NoContent(w)
}

// MinimizeRunner сворачивает runner на трекинг-панель.
// Фоновое выполнение не прерывается.
// POST /api/v1/runners/{id}/minimize
func (h *Handler) MinimizeRunner(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		BadRequest(w, "invalid runner id")
		return
	}

	if err := h.manager.Minimize(id); HandleRunnerError(w, h.logger, err) {
		return
	}
	NoContent(w)
}

// RerunRunner перезапускает пайплайн runner'а.
// Если запуск ещё идёт, запрос молча игнорируется.
// POST /api/v1/runners/{id}/rerun
func (h *Handler) RerunRunner(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		BadRequest(w, "invalid runner id")
		return
	}

	if err := h.manager.Rerun(id); HandleRunnerError(w, h.logger, err) {
		return
	}
	NoContent(w)
}

// CloseRunner закрывает runner и освобождает его surface.
// DELETE /api/v1/runners/{id}
func (h *Handler) CloseRunner(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		BadRequest(w, "invalid runner id")
		return
	}

	if err := h.manager.Close(id); HandleRunnerError(w, h.logger, err) {
		return
	}
	NoContent(w)
}

// GetViewport возвращает текущее состояние viewport.
// GET /api/v1/viewport
func (h *Handler) GetViewport(w http.ResponseWriter, r *http.Request) {
	resp := ViewportResponse{}
	if id, bound := h.manager.Viewport().Current(); bound {
		resp.RunnerID = &id
		resp.Bound = true
	}
	Success(w, resp)
}
