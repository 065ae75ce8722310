package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// --- Response types (дублируются из api/dto.go, CLI не импортирует internal/api) ---

// StepResponse — шаг сценария из API.
type StepResponse struct {
	Index  int               `json:"index"`
	Kind   string            `json:"kind"`
	Title  string            `json:"title"`
	Params map[string]string `json:"params"`
}

// ScenarioResponse — сценарий из API.
type ScenarioResponse struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	Steps       []StepResponse `json:"steps"`
	HasMarkup   bool           `json:"has_markup"`
	StyleCount  int            `json:"style_count"`
	ScriptCount int            `json:"script_count"`
	CreatedAt   string         `json:"created_at"`
	UpdatedAt   string         `json:"updated_at"`
}

// RunnerResponse — runner из API.
type RunnerResponse struct {
	ID         string `json:"id"`
	ScenarioID string `json:"scenario_id"`
	Name       string `json:"name"`
	Status     string `json:"status"`
	Minimized  bool   `json:"minimized"`
	Executing  bool   `json:"executing"`
	StepCount  int    `json:"step_count"`
	LogLines   int    `json:"log_lines"`
	StartedAt  string `json:"started_at,omitempty"`
	FinishedAt string `json:"finished_at,omitempty"`
	CreatedAt  string `json:"created_at"`
}

// LogEntryResponse — строка лога запуска из API.
type LogEntryResponse struct {
	Time string `json:"time"`
	Line string `json:"line"`
}

// ViewportResponse — состояние viewport из API.
type ViewportResponse struct {
	RunnerID string `json:"runner_id,omitempty"`
	Bound    bool   `json:"bound"`
}

// ParamDefResponse — параметр типа шага из API.
type ParamDefResponse struct {
	Key         string `json:"key"`
	Label       string `json:"label"`
	Input       string `json:"input"`
	Placeholder string `json:"placeholder,omitempty"`
}

// KindResponse — тип шага из API.
type KindResponse struct {
	Name        string             `json:"name"`
	Title       string             `json:"title"`
	Description string             `json:"description"`
	Icon        string             `json:"icon"`
	Params      []ParamDefResponse `json:"params"`
}

// ScheduleResponse — schedule из API.
type ScheduleResponse struct {
	ID          string `json:"id"`
	ScenarioID  string `json:"scenario_id"`
	Name        string `json:"name"`
	CronExpr    string `json:"cron_expr,omitempty"`
	IntervalSec int    `json:"interval_sec,omitempty"`
	Timezone    string `json:"timezone"`
	Enabled     bool   `json:"enabled"`
	NextDueAt   string `json:"next_due_at,omitempty"`
	LastRunAt   string `json:"last_run_at,omitempty"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

// --- Request types ---

// CreateScenarioRequest — создание сценария.
type CreateScenarioRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Markup      *string `json:"markup,omitempty"`
}

// UpdateScenarioRequest — обновление сценария.
type UpdateScenarioRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Markup      *string `json:"markup,omitempty"`
}

// InsertStepRequest — вставка шага.
type InsertStepRequest struct {
	Kind string `json:"kind"`
	At   *int   `json:"at,omitempty"`
}

// ReorderStepRequest — перемещение шага.
type ReorderStepRequest struct {
	From int `json:"from"`
	To   int `json:"to"`
}

// UpdateStepParamRequest — изменение параметра шага.
type UpdateStepParamRequest struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// CreateScheduleRequest — создание schedule.
type CreateScheduleRequest struct {
	Name        string `json:"name"`
	CronExpr    string `json:"cron_expr,omitempty"`
	IntervalSec int    `json:"interval_sec,omitempty"`
	Timezone    string `json:"timezone,omitempty"`
	Enabled     bool   `json:"enabled"`
}

// UpdateScheduleRequest — обновление schedule.
type UpdateScheduleRequest struct {
	Name        *string `json:"name,omitempty"`
	CronExpr    *string `json:"cron_expr,omitempty"`
	IntervalSec *int    `json:"interval_sec,omitempty"`
	Timezone    *string `json:"timezone,omitempty"`
}

// --- API response wrappers ---

type dataResponse struct {
	Data json.RawMessage `json:"data"`
}

type listResponse struct {
	Data  json.RawMessage `json:"data"`
	Total int             `json:"total"`
}

type errorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// --- Client ---

// Client — HTTP-клиент для Scenarium API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient создаёт клиент для API.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// --- Scenarios ---

// ListScenarios возвращает все сценарии.
func (c *Client) ListScenarios() ([]ScenarioResponse, error) {
	var scenarios []ScenarioResponse
	err := c.list("/api/v1/scenarios", nil, &scenarios)
	return scenarios, err
}

// CreateScenario создаёт новый сценарий.
func (c *Client) CreateScenario(req CreateScenarioRequest) (*ScenarioResponse, error) {
	var scenario ScenarioResponse
	err := c.post("/api/v1/scenarios", req, &scenario)
	return &scenario, err
}

// GetScenario возвращает сценарий по ID.
func (c *Client) GetScenario(id string) (*ScenarioResponse, error) {
	var scenario ScenarioResponse
	err := c.get("/api/v1/scenarios/"+id, &scenario)
	return &scenario, err
}

// UpdateScenario обновляет сценарий.
func (c *Client) UpdateScenario(id string, req UpdateScenarioRequest) (*ScenarioResponse, error) {
	var scenario ScenarioResponse
	err := c.put("/api/v1/scenarios/"+id, req, &scenario)
	return &scenario, err
}

// DeleteScenario удаляет сценарий.
func (c *Client) DeleteScenario(id string) error {
	return c.delete("/api/v1/scenarios/" + id)
}

// --- Steps ---

// InsertStep вставляет шаг в сценарий. at == nil — в конец.
func (c *Client) InsertStep(scenarioID, kind string, at *int) (*ScenarioResponse, error) {
	var scenario ScenarioResponse
	err := c.post("/api/v1/scenarios/"+scenarioID+"/steps", InsertStepRequest{Kind: kind, At: at}, &scenario)
	return &scenario, err
}

// ReorderStep перемещает шаг сценария.
func (c *Client) ReorderStep(scenarioID string, from, to int) (*ScenarioResponse, error) {
	var scenario ScenarioResponse
	err := c.post("/api/v1/scenarios/"+scenarioID+"/steps/reorder", ReorderStepRequest{From: from, To: to}, &scenario)
	return &scenario, err
}

// UpdateStepParam изменяет параметр шага.
func (c *Client) UpdateStepParam(scenarioID string, index int, key, value string) (*ScenarioResponse, error) {
	var scenario ScenarioResponse
	path := fmt.Sprintf("/api/v1/scenarios/%s/steps/%d/params", scenarioID, index)
	err := c.put(path, UpdateStepParamRequest{Key: key, Value: value}, &scenario)
	return &scenario, err
}

// DeleteStep удаляет шаг сценария.
func (c *Client) DeleteStep(scenarioID string, index int) error {
	return c.delete(fmt.Sprintf("/api/v1/scenarios/%s/steps/%d", scenarioID, index))
}

// ExportScenario возвращает Robot Framework скрипт сценария.
func (c *Client) ExportScenario(id string) (string, error) {
	resp, err := c.do(http.MethodGet, "/api/v1/scenarios/"+id+"/export", nil)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if err := c.checkError(resp); err != nil {
		return "", err
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}
	return string(data), nil
}

// ListKinds возвращает палитру типов шагов.
func (c *Client) ListKinds() ([]KindResponse, error) {
	var kinds []KindResponse
	err := c.list("/api/v1/kinds", nil, &kinds)
	return kinds, err
}

// --- Runners ---

// OpenRunner запускает сценарий.
func (c *Client) OpenRunner(scenarioID string) (*RunnerResponse, error) {
	var runner RunnerResponse
	err := c.post("/api/v1/scenarios/"+scenarioID+"/open", nil, &runner)
	return &runner, err
}

// ListRunners возвращает все runner'ы.
func (c *Client) ListRunners() ([]RunnerResponse, error) {
	var runners []RunnerResponse
	err := c.list("/api/v1/runners", nil, &runners)
	return runners, err
}

// GetRunner возвращает runner по ID.
func (c *Client) GetRunner(id string) (*RunnerResponse, error) {
	var runner RunnerResponse
	err := c.get("/api/v1/runners/"+id, &runner)
	return &runner, err
}

// GetRunnerLog возвращает лог запуска runner'а.
func (c *Client) GetRunnerLog(id string) ([]LogEntryResponse, error) {
	var entries []LogEntryResponse
	err := c.list("/api/v1/runners/"+id+"/log", nil, &entries)
	return entries, err
}

// MaximizeRunner разворачивает runner во viewport.
func (c *Client) MaximizeRunner(id string) error {
	return c.post("/api/v1/runners/"+id+"/maximize", nil, nil)
}

// MinimizeRunner сворачивает runner.
func (c *Client) MinimizeRunner(id string) error {
	return c.post("/api/v1/runners/"+id+"/minimize", nil, nil)
}

// RerunRunner перезапускает пайплайн runner'а.
func (c *Client) RerunRunner(id string) error {
	return c.post("/api/v1/runners/"+id+"/rerun", nil, nil)
}

// CloseRunner закрывает runner.
func (c *Client) CloseRunner(id string) error {
	return c.delete("/api/v1/runners/" + id)
}

// GetViewport возвращает состояние viewport.
func (c *Client) GetViewport() (*ViewportResponse, error) {
	var viewport ViewportResponse
	err := c.get("/api/v1/viewport", &viewport)
	return &viewport, err
}

// --- Schedules ---

// ListSchedules возвращает schedules. Если scenarioID не пустой — фильтрует.
func (c *Client) ListSchedules(scenarioID string) ([]ScheduleResponse, error) {
	params := url.Values{}
	if scenarioID != "" {
		params.Set("scenario_id", scenarioID)
	}

	var schedules []ScheduleResponse
	err := c.list("/api/v1/schedules", params, &schedules)
	return schedules, err
}

// CreateSchedule создаёт schedule для сценария.
func (c *Client) CreateSchedule(scenarioID string, req CreateScheduleRequest) (*ScheduleResponse, error) {
	var schedule ScheduleResponse
	err := c.post("/api/v1/scenarios/"+scenarioID+"/schedules", req, &schedule)
	return &schedule, err
}

// GetSchedule возвращает schedule по ID.
func (c *Client) GetSchedule(id string) (*ScheduleResponse, error) {
	var schedule ScheduleResponse
	err := c.get("/api/v1/schedules/"+id, &schedule)
	return &schedule, err
}

// UpdateSchedule обновляет schedule.
func (c *Client) UpdateSchedule(id string, req UpdateScheduleRequest) (*ScheduleResponse, error) {
	var schedule ScheduleResponse
	err := c.put("/api/v1/schedules/"+id, req, &schedule)
	return &schedule, err
}

// DeleteSchedule удаляет schedule.
func (c *Client) DeleteSchedule(id string) error {
	return c.delete("/api/v1/schedules/" + id)
}

// EnableSchedule включает schedule.
func (c *Client) EnableSchedule(id string) (*ScheduleResponse, error) {
	var schedule ScheduleResponse
	body := map[string]bool{"enabled": true}
	err := c.put("/api/v1/schedules/"+id+"/enabled", body, &schedule)
	return &schedule, err
}

// DisableSchedule выключает schedule.
func (c *Client) DisableSchedule(id string) (*ScheduleResponse, error) {
	var schedule ScheduleResponse
	body := map[string]bool{"enabled": false}
	err := c.put("/api/v1/schedules/"+id+"/enabled", body, &schedule)
	return &schedule, err
}

// --- HTTP helpers ---

func (c *Client) get(path string, result any) error {
	return c.doData(http.MethodGet, path, nil, result)
}

func (c *Client) post(path string, body any, result any) error {
	return c.doData(http.MethodPost, path, body, result)
}

func (c *Client) put(path string, body any, result any) error {
	return c.doData(http.MethodPut, path, body, result)
}

func (c *Client) delete(path string) error {
	resp, err := c.do(http.MethodDelete, path, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return c.checkError(resp)
}

func (c *Client) list(path string, params url.Values, result any) error {
	if len(params) > 0 {
		path = path + "?" + params.Encode()
	}

	resp, err := c.do(http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := c.checkError(resp); err != nil {
		return err
	}

	var lr listResponse
	if err := json.NewDecoder(resp.Body).Decode(&lr); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return json.Unmarshal(lr.Data, result)
}

func (c *Client) doData(method, path string, body any, result any) error {
	resp, err := c.do(method, path, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := c.checkError(resp); err != nil {
		return err
	}

	// 204 No Content
	if resp.StatusCode == http.StatusNoContent {
		return nil
	}

	var dr dataResponse
	if err := json.NewDecoder(resp.Body).Decode(&dr); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	if result != nil {
		return json.Unmarshal(dr.Data, result)
	}
	return nil
}

func (c *Client) do(method, path string, body any) (*http.Response, error) {
	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, c.baseURL+path, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return c.httpClient.Do(req)
}

func (c *Client) checkError(resp *http.Response) error {
	if resp.StatusCode < 400 {
		return nil
	}

	var er errorResponse
	if err := json.NewDecoder(resp.Body).Decode(&er); err != nil {
		return fmt.Errorf("API error: HTTP %d", resp.StatusCode)
	}

	return fmt.Errorf("%s: %s", er.Error.Code, er.Error.Message)
}
