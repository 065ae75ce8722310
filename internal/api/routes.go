package api

import (
	"net/http"
)

// RegisterRoutes регистрирует все маршруты API.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	// Middleware chain
	chain := Chain(
		Recovery(h.logger),
		Logging(h.logger),
	)

	// Scenarios
	mux.Handle("GET /api/v1/scenarios", chain(http.HandlerFunc(h.ListScenarios)))
	mux.Handle("POST /api/v1/scenarios", chain(http.HandlerFunc(h.CreateScenario)))
	mux.Handle("GET /api/v1/scenarios/{id}", chain(http.HandlerFunc(h.GetScenario)))
	mux.Handle("PUT /api/v1/scenarios/{id}", chain(http.HandlerFunc(h.UpdateScenario)))
	mux.Handle("DELETE /api/v1/scenarios/{id}", chain(http.HandlerFunc(h.DeleteScenario)))

	// Steps
	mux.Handle("POST /api/v1/scenarios/{id}/steps", chain(http.HandlerFunc(h.InsertStep)))
	mux.Handle("POST /api/v1/scenarios/{id}/steps/reorder", chain(http.HandlerFunc(h.ReorderStep)))
	mux.Handle("PUT /api/v1/scenarios/{id}/steps/{index}/params", chain(http.HandlerFunc(h.UpdateStepParam)))
	mux.Handle("DELETE /api/v1/scenarios/{id}/steps/{index}", chain(http.HandlerFunc(h.DeleteStep)))
	mux.Handle("GET /api/v1/scenarios/{id}/export", chain(http.HandlerFunc(h.ExportScenario)))
	mux.Handle("GET /api/v1/kinds", chain(http.HandlerFunc(h.ListKinds)))

	// Runners
	mux.Handle("POST /api/v1/scenarios/{id}/open", chain(http.HandlerFunc(h.OpenRunner)))
	mux.Handle("GET /api/v1/runners", chain(http.HandlerFunc(h.ListRunners)))
	mux.Handle("GET /api/v1/runners/{id}", chain(http.HandlerFunc(h.GetRunner)))
	mux.Handle("GET /api/v1/runners/{id}/log", chain(http.HandlerFunc(h.GetRunnerLog)))
	mux.Handle("POST /api/v1/runners/{id}/maximize", chain(http.HandlerFunc(h.MaximizeRunner)))
	mux.Handle("POST /api/v1/runners/{id}/minimize", chain(http.HandlerFunc(h.MinimizeRunner)))
	mux.Handle("POST /api/v1/runners/{id}/rerun", chain(http.HandlerFunc(h.RerunRunner)))
	mux.Handle("DELETE /api/v1/runners/{id}", chain(http.HandlerFunc(h.CloseRunner)))
	mux.Handle("GET /api/v1/viewport", chain(http.HandlerFunc(h.GetViewport)))

	// Schedules
	mux.Handle("GET /api/v1/schedules", chain(http.HandlerFunc(h.ListSchedules)))
	mux.Handle("POST /api/v1/scenarios/{id}/schedules", chain(http.HandlerFunc(h.CreateSchedule)))
	mux.Handle("GET /api/v1/schedules/{id}", chain(http.HandlerFunc(h.GetSchedule)))
	mux.Handle("PUT /api/v1/schedules/{id}", chain(http.HandlerFunc(h.UpdateSchedule)))
	mux.Handle("DELETE /api/v1/schedules/{id}", chain(http.HandlerFunc(h.DeleteSchedule)))
	mux.Handle("PUT /api/v1/schedules/{id}/enabled", chain(http.HandlerFunc(h.SetScheduleEnabled)))
}
