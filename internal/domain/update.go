package domain

import (
	"fmt"

	"github.com/google/uuid"
)

// RecordUpdate — поля, которые были бы записаны обратно в RITM.
//
// Сама запись в платформу вне области этого модуля: RecordUpdate только
// описывает, что было бы изменено.
type RecordUpdate struct {
	// WorkNotes — текст для журнала работ.
	WorkNotes string `json:"work_notes"`

	// AAPJobID — идентификатор job на контроллере. Пусто, если job не запущен.
	AAPJobID string `json:"u_aap_job_id,omitempty"`

	// AAPJobStatus — статус job. Пусто, если job не запущен.
	AAPJobStatus JobStatus `json:"u_aap_job_status,omitempty"`

	// State — новое состояние записи. Пусто, если перехода нет.
	State RecordState `json:"state,omitempty"`
}

// HasStateTransition возвращает true, если обновление переводит запись в новое состояние.
func (u *RecordUpdate) HasStateTransition() bool {
	return u != nil && u.State != ""
}

// LaunchedUpdate формирует обновление для успешно запущенного job.
func LaunchedUpdate(jobID string) *RecordUpdate {
	return &RecordUpdate{
		WorkNotes:    fmt.Sprintf("AAP Job launched successfully. Job ID: %s", jobID),
		AAPJobID:     jobID,
		AAPJobStatus: JobStatusRunning,
		State:        StateWorkInProgress,
	}
}

// RejectedUpdate формирует work note для отказа контроллера.
func RejectedUpdate(statusCode int, body string) *RecordUpdate {
	return &RecordUpdate{
		WorkNotes: fmt.Sprintf("Failed to launch AAP job. Status: %d, Response: %s", statusCode, body),
	}
}

// TransportFailedUpdate формирует work note для сетевой ошибки.
func TransportFailedUpdate(err error) *RecordUpdate {
	return &RecordUpdate{
		WorkNotes: fmt.Sprintf("Exception launching AAP job. Error: %v", err),
	}
}

// Report — итог одного прогона pipeline.
type Report struct {
	// RunID — идентификатор прогона, попадает в логи как run_id.
	RunID uuid.UUID `json:"run_id"`

	// RecordNumber — номер RITM.
	RecordNumber string `json:"record_number"`

	// Outcome — итог прогона.
	Outcome Outcome `json:"outcome"`

	// Variables — вычисленные extra_vars. Nil, если pipeline до них не дошёл.
	Variables *OrchestrationVariables `json:"variables,omitempty"`

	// JobID — идентификатор запущенного job.
	JobID string `json:"job_id,omitempty"`

	// JobURL — ссылка на job в UI контроллера.
	JobURL string `json:"job_url,omitempty"`

	// Update — поля для записи обратно. Nil для skipped, probe_failed, malformed и invalid_variables.
	Update *RecordUpdate `json:"update,omitempty"`

	// Error — текст ошибки для неуспешных исходов.
	Error string `json:"error,omitempty"`

	// Journal — сообщения info/error sinks в порядке появления.
	Journal []JournalEntry `json:"journal,omitempty"`
}

// JournalEntry — одно сообщение sink.
type JournalEntry struct {
	Level string `json:"level"`
	Text  string `json:"text"`
}
