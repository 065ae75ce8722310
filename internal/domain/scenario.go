package domain

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Scenario — определение теста: последовательность шагов плюс снимок сайта.
//
// Scenario — это "рецепт" проверки. Пользователь собирает упорядоченный
// список шагов (клик, ввод, проверка, ожидание) против загруженного
// снимка сайта. Каждый запуск сценария выполняется отдельным Runner'ом.
type Scenario struct {
	// ID — уникальный идентификатор сценария.
	ID uuid.UUID `json:"id"`

	// Name — имя сценария (например, "login-form", "checkout-happy-path").
	Name string `json:"name"`

	// Description — описание назначения сценария.
	Description string `json:"description,omitempty"`

	// Steps — упорядоченный список шагов. Порядок списка — порядок выполнения.
	Steps StepList `json:"steps"`

	// Bundle — снимок сайта, против которого выполняются шаги.
	Bundle SiteBundle `json:"bundle"`

	// CreatedAt — время создания сценария.
	CreatedAt time.Time `json:"created_at"`

	// UpdatedAt — время последнего обновления.
	UpdatedAt time.Time `json:"updated_at"`
}

// StepInstance — один шаг в сценарии.
//
// Создаётся при вставке в редакторе или при десериализации сохранённого
// сценария. ID уникален на момент генерации и не сохраняется:
// при загрузке из БД идентификаторы генерируются заново.
type StepInstance struct {
	// ID — идентификатор экземпляра шага (не персистентный).
	ID uuid.UUID `json:"id"`

	// Kind — имя типа шага в реестре (например, "click_element").
	Kind string `json:"kind"`

	// Params — параметры шага: ключ параметра → строковое значение.
	// Незаполненные ключи при выполнении получают placeholder типа шага.
	Params map[string]string `json:"params,omitempty"`
}

// NewStepInstance создаёт шаг с новым ID.
func NewStepInstance(kind string, params map[string]string) StepInstance {
	if params == nil {
		params = make(map[string]string)
	}
	return StepInstance{
		ID:     uuid.New(),
		Kind:   kind,
		Params: params,
	}
}

// StepList — упорядоченный список шагов сценария.
//
// Список принадлежит либо редактору, либо одному runner'у —
// конкурентных мутаций не бывает.
type StepList []StepInstance

// persistedStep — сериализованная форма шага: только kind и params.
type persistedStep struct {
	Kind   string            `json:"kind"`
	Params map[string]string `json:"params,omitempty"`
}

// MarshalJSON сериализует список в форму [{kind, params}].
// ID экземпляров не сохраняются.
func (l StepList) MarshalJSON() ([]byte, error) {
	out := make([]persistedStep, len(l))
	for i, s := range l {
		out[i] = persistedStep{Kind: s.Kind, Params: s.Params}
	}
	return json.Marshal(out)
}

// UnmarshalJSON восстанавливает список из формы [{kind, params}],
// генерируя новые ID экземпляров.
func (l *StepList) UnmarshalJSON(data []byte) error {
	var raw []persistedStep
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("unmarshal step list: %w", err)
	}

	steps := make(StepList, len(raw))
	for i, p := range raw {
		steps[i] = NewStepInstance(p.Kind, p.Params)
	}
	*l = steps
	return nil
}

// Clone возвращает глубокую копию списка.
// Runner получает копию, чтобы правки в редакторе не влияли на идущий запуск.
func (l StepList) Clone() StepList {
	out := make(StepList, len(l))
	for i, s := range l {
		params := make(map[string]string, len(s.Params))
		for k, v := range s.Params {
			params[k] = v
		}
		out[i] = StepInstance{ID: s.ID, Kind: s.Kind, Params: params}
	}
	return out
}

// ParseStepList разбирает сохранённый JSON списка шагов.
//
// Повреждённый JSON — не причина падать: возвращается пустой список
// и ошибка, которую вызывающий логирует как предупреждение.
func ParseStepList(data []byte) (StepList, error) {
	if len(data) == 0 {
		return StepList{}, nil
	}

	var steps StepList
	if err := json.Unmarshal(data, &steps); err != nil {
		return StepList{}, fmt.Errorf("malformed steps json: %w", err)
	}
	return steps, nil
}
