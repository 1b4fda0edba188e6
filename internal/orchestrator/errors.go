package orchestrator

import "errors"

// Ошибки pipeline.
var (
	// ErrPreconditionNotMet — запись не в состоянии "2". Ожидаемая ситуация,
	// pipeline завершается молча, удалённых вызовов нет.
	ErrPreconditionNotMet = errors.New("record state precondition not met")

	// ErrTransportDiagnosis — probe не прошёл: окружение не может выполнить HTTPS-запрос.
	ErrTransportDiagnosis = errors.New("connectivity probe failed")

	// ErrTransportFailure — launch-запрос к контроллеру не дошёл.
	ErrTransportFailure = errors.New("controller transport failure")

	// ErrControllerRejection — контроллер ответил не 201.
	ErrControllerRejection = errors.New("controller rejected launch")

	// ErrResponseMalformed — 201, но тело ответа не разобрано.
	ErrResponseMalformed = errors.New("controller response malformed")
)
