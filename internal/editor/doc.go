// Package editor реализует авторинг последовательности шагов:
// вставка, перенос, правка параметров, удаление и advisory-выделение.
//
// Редактор — ядро авторинга без транспорта: drag-and-drop, клавиатура
// или API-вызовы сводятся адаптерами к явным операциям Insert/Reorder/
// UpdateParam/Delete/Select. В HTTP API редактор используется
// scenario-handler'ом для операций над шагами сохранённого сценария.
//
// Правила выделения: удаление выделенного шага снимает выделение;
// удаление шага перед выделением сдвигает индекс так, чтобы он указывал
// на тот же логический шаг. Reorder — перенос (remove-then-insert),
// не обмен местами; from == to — no-op.
package editor
