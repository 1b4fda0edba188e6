package domain

// RecordState — состояние записи RITM в платформе.
//
// Жизненный цикл, который нас интересует:
//
//	IN_PROCESS ("2") → WORK_IN_PROGRESS ("3")
type RecordState string

const (
	// StateInProcess — запись готова к оркестрации. Единственное состояние, в котором pipeline действует.
	StateInProcess RecordState = "2"

	// StateWorkInProgress — job запущен, запись переводится сюда после успешного launch.
	StateWorkInProgress RecordState = "3"
)

// IsActionable возвращает true, если запись можно передавать в pipeline.
func (s RecordState) IsActionable() bool {
	return s == StateInProcess
}

// String возвращает строковое представление RecordState.
func (s RecordState) String() string {
	return string(s)
}

// JobStatus — значение поля u_aap_job_status.
type JobStatus string

const (
	// JobStatusRunning — job принят контроллером и выполняется.
	JobStatusRunning JobStatus = "running"
)

// Outcome — итог одного прогона pipeline.
type Outcome string

const (
	// OutcomeLaunched — job запущен (201 + корректный ответ).
	OutcomeLaunched Outcome = "launched"

	// OutcomeSkipped — запись не в состоянии "2", удалённых вызовов не было.
	OutcomeSkipped Outcome = "skipped"

	// OutcomeProbeFailed — probe не прошёл, окружение не может выполнять HTTPS.
	OutcomeProbeFailed Outcome = "probe_failed"

	// OutcomeRejected — контроллер ответил не 201.
	OutcomeRejected Outcome = "rejected"

	// OutcomeTransportFailed — запрос к контроллеру не дошёл.
	OutcomeTransportFailed Outcome = "transport_failed"

	// OutcomeMalformed — 201, но тело ответа не разобрано.
	OutcomeMalformed Outcome = "malformed"

	// OutcomeInvalidVariables — extra_vars не прошли проверку, launch не выполнялся.
	OutcomeInvalidVariables Outcome = "invalid_variables"
)

// IsFailure возвращает true для исходов, о которых нужно сообщать оператору.
func (o Outcome) IsFailure() bool {
	switch o {
	case OutcomeLaunched, OutcomeSkipped:
		return false
	default:
		return true
	}
}
