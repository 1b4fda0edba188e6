package domain

import "strings"

// ChangeRequestRecord — запись requested item (RITM), пришедшая из платформы.
//
// Запись принадлежит внешней платформе и в рамках одного прогона pipeline
// только читается. Валидация здесь не выполняется: проверку состояния
// делает gate оркестратора.
type ChangeRequestRecord struct {
	// SysID — системный идентификатор записи.
	SysID string `json:"sys_id" yaml:"sys_id"`

	// Number — человекочитаемый номер, например "RITM0010022".
	Number string `json:"number" yaml:"number"`

	// State — состояние жизненного цикла. Действие выполняется только для StateInProcess.
	State RecordState `json:"state" yaml:"state"`

	// CatalogItem — ссылка на элемент каталога, из которого создан запрос.
	CatalogItem string `json:"cat_item,omitempty" yaml:"cat_item,omitempty"`

	// Request — родительский запрос (REQ).
	Request RequestRef `json:"request" yaml:"request"`
}

// RequestRef — ссылка на родительский запрос.
type RequestRef struct {
	Number       string  `json:"number" yaml:"number"`
	RequestedFor UserRef `json:"requested_for" yaml:"requested_for"`
}

// UserRef — пользователь, для которого создан запрос.
type UserRef struct {
	UserName string `json:"user_name" yaml:"user_name"`
}

// RecordState возвращает состояние записи.
func (r ChangeRequestRecord) RecordState() RecordState {
	return r.State
}

// RequestNumber возвращает номер родительского запроса.
func (r ChangeRequestRecord) RequestNumber() string {
	return r.Request.Number
}

// RequesterUserName возвращает имя пользователя заявителя.
func (r ChangeRequestRecord) RequesterUserName() string {
	return r.Request.RequestedFor.UserName
}

// Ключи catalog variables.
const (
	VarProjectName           = "project_name"
	VarDisplayName           = "display_name"
	VarEnvironment           = "environment"
	VarRequestorFirstName    = "requestor_first_name"
	VarRequestorLastName     = "requestor_last_name"
	VarTeamMembers           = "team_members"
	VarBusinessJustification = "business_justification"
)

// CatalogVariables — переменные, собранные формой каталога.
// Любой ключ может отсутствовать.
type CatalogVariables map[string]string

// Get возвращает значение по ключу как есть.
// Для отсутствующего ключа (и nil map) возвращает "".
func (c CatalogVariables) Get(key string) string {
	return c[key]
}

// isBlank — пустая строка или строка из одних пробелов.
func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
