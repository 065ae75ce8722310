package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shaiso/Scenarium/internal/domain"
	"github.com/shaiso/Scenarium/internal/sandbox"
	"github.com/shaiso/Scenarium/internal/steps"
	"github.com/shaiso/Scenarium/internal/surface"
)

// Значения по умолчанию.
const (
	// defaultLoadTimeout — лимит ожидания загрузки документа.
	defaultLoadTimeout = 5 * time.Second

	// defaultStepDelay — пауза между шагами для наблюдаемого прогресса,
	// применяется только когда runner развёрнут во viewport.
	defaultStepDelay = 300 * time.Millisecond
)

// Pipeline выполняет последовательность шагов против одного surface.
//
// Алгоритм Run:
//  1. Собрать документ из bundle (sandbox.Build); нечего рендерить — провал.
//  2. Загрузить документ в surface с ограничением по времени.
//  3. Выполнить шаги строго по порядку; первый упавший шаг прерывает
//     оставшиеся.
//
// Все ошибки конвертируются в строки лога плюс статус FAILURE —
// наружу пайплайн ошибок не отдаёт.
type Pipeline struct {
	registry    *steps.Registry
	loadTimeout time.Duration
	stepDelay   time.Duration
}

// Config — конфигурация Pipeline.
type Config struct {
	// Registry — реестр типов шагов (обязателен).
	Registry *steps.Registry

	// LoadTimeout — лимит загрузки документа (default: 5s).
	LoadTimeout time.Duration

	// StepDelay — межшаговая пауза при активном просмотре (default: 300ms).
	// Отрицательное значение отключает паузу.
	StepDelay time.Duration
}

// New создаёт Pipeline.
func New(cfg Config) *Pipeline {
	loadTimeout := cfg.LoadTimeout
	if loadTimeout <= 0 {
		loadTimeout = defaultLoadTimeout
	}

	stepDelay := cfg.StepDelay
	if stepDelay == 0 {
		stepDelay = defaultStepDelay
	} else if stepDelay < 0 {
		stepDelay = 0
	}

	return &Pipeline{
		registry:    cfg.Registry,
		loadTimeout: loadTimeout,
		stepDelay:   stepDelay,
	}
}

// Run выполняет запуск целиком и возвращает финальный статус.
//
// Лог очищается перед стартом; строки добавляются по мере выполнения.
// viewed сообщает, смотрит ли кто-то на runner прямо сейчас — тогда между
// шагами выдерживается пауза видимого прогресса. viewed может быть nil.
func (p *Pipeline) Run(
	ctx context.Context,
	sf surface.Surface,
	bundle domain.SiteBundle,
	list domain.StepList,
	log *Log,
	viewed func() bool,
) domain.RunnerStatus {
	log.Clear()

	// 1. Сборка документа
	doc, ok := sandbox.Build(bundle)
	if !ok {
		return p.fail(log, ErrNoContent)
	}

	// 2. Загрузка в surface с лимитом по времени.
	// Отмена контекста снимает и висящий таймер загрузки.
	loadCtx, cancel := context.WithTimeout(ctx, p.loadTimeout)
	err := sf.Load(loadCtx, doc)
	cancel()
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			err = fmt.Errorf("%w after %s", ErrLoadTimeout, p.loadTimeout)
		}
		return p.fail(log, err)
	}
	log.Append("document loaded")

	// 3. Шаги строго по порядку
	total := len(list)
	for i, step := range list {
		kind, err := p.registry.Get(step.Kind)
		if err != nil {
			// Неизвестный тип на этапе выполнения фатален:
			// выполнять нечего, а молча пропускать шаг в запуске нельзя.
			return p.fail(log, fmt.Errorf("unknown step kind %q", step.Kind))
		}

		log.Appendf("running step %d/%d: %s", i+1, total, kind.Title())

		req := &steps.Request{
			Params:  step.Params,
			Surface: sf,
			Log:     log.Append,
		}
		if err := kind.Execute(ctx, req); err != nil {
			return p.fail(log, err)
		}

		if p.stepDelay > 0 && viewed != nil && viewed() && i < total-1 {
			p.pause(ctx)
		}
	}

	log.Append("run finished successfully")
	return domain.RunnerStatusSuccess
}

// fail логирует ошибку и прерывание, возвращает FAILURE.
func (p *Pipeline) fail(log *Log, err error) domain.RunnerStatus {
	log.Append(err.Error())
	log.Append("run aborted")
	return domain.RunnerStatusFailure
}

// pause выдерживает межшаговую паузу, уважая отмену контекста.
func (p *Pipeline) pause(ctx context.Context) {
	timer := time.NewTimer(p.stepDelay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}
