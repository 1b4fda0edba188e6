// Package orchestrator реализует pipeline business rule для RITM.
//
// Pipeline отвечает за:
//   - Проверку состояния записи (gate.go)
//   - Connectivity probe перед обращением к контроллеру
//   - Вычисление extra_vars из catalog variables
//   - Запуск job template на контроллере
//   - Интерпретацию ответа в поля для записи обратно (interpret.go)
//
// Классификация исходов:
//
//	skipped          — запись не в состоянии "2" (ErrPreconditionNotMet, не ошибка)
//	probe_failed     — ErrTransportDiagnosis: проблема окружения, не контроллера
//	transport_failed — ErrTransportFailure: launch-запрос не дошёл
//	rejected         — ErrControllerRejection: ответ не 201
//	malformed        — ErrResponseMalformed: 201 с неразборчивым телом
//	launched         — job запущен, state → "3"
//
// Все ошибки терминальны для прогона, retry нет.
package orchestrator
